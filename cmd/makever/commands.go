// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/yeetrun/makever/pkg/codename"
	"github.com/yeetrun/makever/pkg/gitutil"
	"github.com/yeetrun/makever/pkg/manifest"
	"github.com/yeetrun/makever/pkg/store"
	"github.com/yeetrun/makever/pkg/version"
)

// plan is a version file about to be written.
type plan struct {
	dir, file string
	codename  string
	ver       *semver.Version
	prev      *version.Previous
	contents  version.Contents
}

func (p *plan) setVersion(v *semver.Version, bumpArg string) {
	p.ver = v
	kind := version.Prerelease(v, bumpArg, p.prev)
	p.contents = version.NewContents(v, p.codename, version.InferBranch(v, p.prev), kind)
}

// path returns the version file path relative to the project root.
func (p *plan) path() string {
	return filepath.Join(p.dir, p.file)
}

func previous(d *store.Data) *version.Previous {
	if d == nil || len(d.Version) == 0 {
		return nil
	}
	flags := version.Contents{Premajor: d.Premajor, Preminor: d.Preminor, Prepatch: d.Prepatch}
	return &version.Previous{
		Version:    d.Version,
		Branch:     d.Branch,
		Prerelease: d.Prerelease,
		PreKind:    flags.PreKind(),
	}
}

// sameVersion reports whether d was stored for v.
func sameVersion(d *store.Data, v *semver.Version) bool {
	parts := version.NewContents(v, "", "", "").Parts()
	return slices.Equal(d.Version, parts) && d.Prerelease == v.Prerelease()
}

// newPlan builds the version file for the package version. With
// reuseCodename the stored codename is kept if it was stored for the same
// version.
func (a *app) newPlan(reuseCodename bool) (*plan, error) {
	d, err := a.store.Get()
	if err != nil {
		return nil, err
	}
	pkg, err := manifest.Load(a.root)
	if err != nil {
		return nil, err
	}
	v, err := pkg.Semver()
	if err != nil {
		return nil, err
	}

	fallback := a.cfg.Output
	if d.HasFile() {
		fallback = filepath.Join(d.Directory, d.Filename)
	}
	dir, file, err := version.ResolveOutput(a.args.String("-o"), fallback, a.args.Flag("--std"))
	if err != nil {
		return nil, err
	}

	p := &plan{dir: dir, file: file, prev: previous(d)}
	switch {
	case a.args.Has("-c"):
		if p.codename, err = version.ValidateCodename(a.args.String("-c")); err != nil {
			a.pr.Info("Codename may be similar to: 'baby-face', '123Super', 'Marine44', 'AQUA' and be 3-50 chars long")
			return nil, err
		}
	case reuseCodename && d.Codename != "" && sameVersion(d, v):
		p.codename = d.Codename
	default:
		a.pr.Info("makever generates a random codename when none is provided")
		p.codename = codename.Random("-")
	}
	p.setVersion(v, "")
	return p, nil
}

// emit writes the version file, or prints it with --std, and remembers it
// in the store.
func (a *app) emit(p *plan) error {
	b, err := p.contents.JSON()
	if err != nil {
		return err
	}
	if a.args.Flag("--std") {
		fmt.Fprintln(a.pr.Out, string(b))
		return nil
	}
	if err := version.WriteFile(filepath.Join(a.root, p.path()), p.contents); err != nil {
		return fmt.Errorf("failed to write version file: %w", err)
	}
	if _, err := a.store.Mutate(func(d *store.Data) error {
		d.Codename = p.contents.Codename
		d.Directory = p.dir
		d.Filename = p.file
		d.Version = p.contents.Parts()
		d.Branch = p.contents.Branch
		d.Prerelease = p.contents.Prerelease
		d.Premajor = p.contents.Premajor
		d.Preminor = p.contents.Preminor
		d.Prepatch = p.contents.Prepatch
		return nil
	}); err != nil {
		log.Printf("failed to update store %s: %v", a.store.Path(), err)
	}
	a.pr.Success(fmt.Sprintf("wrote %s for v%s, codename %s", p.path(), p.contents.Full, p.contents.Codename))
	return nil
}

// write is the default command.
func (a *app) write() error {
	p, err := a.newPlan(true)
	if err != nil {
		return err
	}
	if !a.args.Flag("-f") && !a.args.Flag("--std") {
		cur, err := version.ReadFile(filepath.Join(a.root, p.path()))
		if err == nil && cur.Full == p.contents.Full {
			a.pr.Log("A version file already exists for this version")
			a.pr.Log(`Use "-f" to overwrite the existing version file or "-o" to write to a new file`)
			a.pr.Tip(`see "makever -h" for command options`)
			return nil
		}
	}
	return a.emit(p)
}

func (a *app) commitMessage(fallback string, ph version.Placeholders) string {
	msg := a.args.String("-m")
	if msg == "" {
		msg = a.cfg.Message
	}
	if msg == "" {
		msg = fallback
	}
	return version.ReplacePlaceholders(msg, ph)
}

// bumpVersion runs "npm version" and writes the version file for the new
// version.
func (a *app) bumpVersion() error {
	p, err := a.newPlan(false)
	if err != nil {
		return err
	}
	ph := version.Placeholders{Codename: p.codename}
	msg := a.commitMessage("Update to %v, codename %c", ph)
	bump := version.ReplacePlaceholders(a.args.String("-v"), ph)

	v, err := npmVersion(a.ctx, a.root, bump, msg)
	if err != nil {
		a.pr.Tip(`see "makever -h"`)
		a.pr.Tip("see " + npmVersionDocs)
		return err
	}
	p.setVersion(v, bump)
	return a.emit(p)
}

// tag tags the last commit with the stored or package version.
func (a *app) tag() error {
	d, err := a.store.Get()
	if err != nil {
		return err
	}
	ver := strings.Join(d.Version, ".")
	if ver != "" && d.Prerelease != "" {
		ver += "-" + d.Prerelease
	}
	if ver == "" {
		pkg, err := manifest.Load(a.root)
		if err != nil {
			return err
		}
		v, err := pkg.Semver()
		if err != nil {
			return err
		}
		ver = v.String()
	}
	name := d.Codename
	if a.args.Has("-c") {
		if name, err = version.ValidateCodename(a.args.String("-c")); err != nil {
			return err
		}
	}

	if !gitutil.IsRepo(a.root) {
		a.pr.Log("Not a repository. Didn't tag")
		return nil
	}
	st, err := gitStatus(a.ctx, a.root)
	if err != nil {
		return fmt.Errorf("could not verify repo: %w", err)
	}
	if !st.Clean() && !a.args.Flag("-f") {
		a.pr.Info("Cannot tag a repo with current changes")
		a.pr.Log("Please commit or stash your current changes before tagging")
		return nil
	}

	ph := version.Placeholders{Version: ver, Codename: name}
	msg := a.commitMessage("Codename %c", ph)
	if err := gitTag(a.ctx, a.root, "v"+ver, msg); err != nil {
		return err
	}
	a.pr.Success("Last commit tagged v" + ver)

	ok, err := a.pr.Confirm("commit and push annotated tag?")
	if err != nil {
		return err
	}
	if !ok {
		a.pr.Log("Tag not pushed")
		return nil
	}
	if err := gitPush(a.ctx, a.root, fmt.Sprintf("v%s - %s", ver, name)); err != nil {
		return err
	}
	a.pr.Success("Tag pushed")
	return nil
}

// dryRun prints what the command would do without side effects.
func (a *app) dryRun() error {
	p, err := a.newPlan(!a.args.Has("-v"))
	if err != nil {
		return err
	}
	if a.args.Has("-v") {
		bump := version.ReplacePlaceholders(a.args.String("-v"), version.Placeholders{Codename: p.codename})
		v, err := version.Bump(p.ver, bump)
		if err != nil {
			a.pr.Tip("see " + npmVersionDocs)
			return err
		}
		p.setVersion(v, bump)
	}

	quiet, std := a.args.Flag("-q"), a.args.Flag("--std")
	where := "the current directory"
	if p.dir != "." {
		where = fmt.Sprintf("directory %q", p.dir)
	}
	switch {
	case quiet:
		a.pr.Log(`Ran in "Shh mode". The command runs silently`)
	case std:
		a.pr.Log(`Would not write a version file. Output data to stdout by "--std"`)
	default:
		a.pr.Log("Would write a new version file")
		a.pr.Logf("The file %q would be written to %s", p.file, where)
	}
	if !quiet && a.args.Flag("-f") {
		a.pr.Log(`Force ran this command. "-f" only forces certain operations, otherwise it is ignored`)
	}
	if !quiet {
		b, err := p.contents.YAML()
		if err != nil {
			return err
		}
		a.pr.Raw(strings.TrimRight(string(b), "\n"))
	}
	a.pr.Success("Dry run complete")
	return nil
}

// dump prints the last written version file.
func (a *app) dump() error {
	if a.rootErr != nil {
		return a.rootErr
	}
	d, err := a.store.Get()
	if err != nil {
		return err
	}
	if !d.HasFile() {
		a.pr.Log("No contents to dump")
		a.pr.Tip(`"makever -h"`)
		return nil
	}
	b, err := os.ReadFile(filepath.Join(a.root, d.Directory, d.Filename))
	if err != nil {
		return fmt.Errorf("failed to read version file: %w", err)
	}
	fmt.Fprint(a.pr.Out, string(b))
	return nil
}
