// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command makever writes a version file describing the version of the node
// project in the current directory.
package main

import (
	"context"
	"errors"
	"log"
	"os"

	"github.com/yeetrun/makever/pkg/car"
	"github.com/yeetrun/makever/pkg/config"
	"github.com/yeetrun/makever/pkg/gitutil"
	"github.com/yeetrun/makever/pkg/manifest"
	"github.com/yeetrun/makever/pkg/npm"
	"github.com/yeetrun/makever/pkg/pretty"
	"github.com/yeetrun/makever/pkg/store"
)

// Process boundaries, swapped in tests.
var (
	gitStatus  = gitutil.GetStatus
	gitTag     = gitutil.Tag
	gitPush    = gitutil.Push
	npmVersion = npm.Version
)

var errVersionWithTag = errors.New(`invalid operation: cannot combine "-v" and "-r", tag after the version update`)

type app struct {
	ctx context.Context
	pr  *pretty.Printer
	cfg *config.Config

	// root is the project directory. rootErr is set when there is none,
	// which only matters once a command needs the project.
	root    string
	rootErr error
	store   *store.Store

	args car.Args

	// callbackErr is set by standalone option callbacks, which run during
	// the scan.
	callbackErr error
}

func newApp(ctx context.Context, cwd, pwd string) *app {
	a := &app{ctx: ctx, cfg: config.Default()}
	a.root, a.rootErr = manifest.FindRoot(cwd, pwd)
	if a.rootErr == nil {
		cfg, err := config.Load(a.root)
		if err != nil {
			a.rootErr = err
		} else {
			a.cfg = cfg
		}
	}
	a.pr = pretty.New(a.cfg.Label)
	a.pr.TipFreq = a.cfg.Tips
	a.pr.NoColor = a.pr.NoColor || a.cfg.NoColor
	if a.rootErr == nil {
		a.store = store.New(a.cfg.StorePath(a.root))
	}
	return a
}

func main() {
	log.SetFlags(0)
	log.SetPrefix("makever: ")

	cwd, err := os.Getwd()
	if err != nil {
		log.Fatalf("failed to get working directory: %v", err)
	}
	a := newApp(context.Background(), cwd, os.Getenv("PWD"))
	// car scans from index 2, after the interpreter and script entries.
	argv := append([]string{"makever"}, os.Args...)
	os.Exit(a.main(argv))
}

// main scans argv, runs the selected command and returns the exit status.
func (a *app) main(argv []string) int {
	s := car.Scanner{Spec: a.spec(), Aliases: aliases, Failed: a.failed}
	args, err := s.Scan(argv)
	if err != nil {
		if a.callbackErr != nil {
			a.pr.Error(a.callbackErr.Error())
			return 1
		}
		return car.ExitCode(err)
	}
	a.args = args
	a.pr.Quiet = args.Flag("-q") && !args.Flag("-t")
	if args.Flag("--no-color") {
		a.pr.NoColor = true
	}
	if err := a.dispatch(); err != nil {
		a.pr.Error(err.Error())
		return 1
	}
	return 0
}

func (a *app) dispatch() error {
	if a.rootErr != nil {
		return a.rootErr
	}
	bump, dry, tag := a.args.Has("-v"), a.args.Flag("-t"), a.args.Flag("-r")
	switch {
	case dry:
		return a.dryRun()
	case bump && tag:
		return errVersionWithTag
	case bump:
		return a.bumpVersion()
	case tag:
		return a.tag()
	}
	return a.write()
}
