// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/yeetrun/makever/pkg/car"
)

const npmVersionDocs = "https://docs.npmjs.com/cli/version"

// aliases maps long forms to the canonical options in spec.
var aliases = car.Aliases{
	"--codename": "-c",
	"--version":  "-v",
	"--help":     "-h",
	"--output":   "-o",
	"--dump":     "-d",
	"--view":     "-d",
	"--quiet":    "-q",
	"--dry-run":  "-t",
	"--force":    "-f",
	"--tag":      "-r",
	"--message":  "-m",
}

func (a *app) spec() car.Spec {
	return car.Spec{
		"-c":         {Kind: car.Valued, OnHelp: a.optionHelp},
		"-o":         {Kind: car.Valued, OnHelp: a.optionHelp},
		"-v":         {Kind: car.Valued, OnHelp: a.optionHelp},
		"-m":         {Kind: car.Valued, OnHelp: a.optionHelp},
		"-q":         {Kind: car.Flag},
		"--std":      {Kind: car.Flag},
		"-r":         {Kind: car.Flag},
		"-t":         {Kind: car.Flag},
		"-f":         {Kind: car.Flag},
		"--no-color": {Kind: car.Flag},
		"-d": {Kind: car.Flag, Standalone: true, OnAccept: func(car.Args) {
			a.callbackErr = a.dump()
		}},
		"-h": {Kind: car.Flag, Standalone: true, OnAccept: func(car.Args) {
			a.help()
		}},
	}
}

// failed is the scan failure sink.
func (a *app) failed(msg string) {
	a.pr.Error(msg)
	a.pr.Tip(`see accepted arguments by: "makever -h"`)
}

type helpEntry struct {
	option  string // canonical name
	names   string
	section string
	lines   []string
}

var helpSections = []string{"Basic", "Output", "Misc"}

var helpEntries = []helpEntry{
	{"-c", "-c, --codename", "Basic", []string{
		"Set the codename. It may contain letters, numbers, underscores and dashes",
		"A random codename is generated when none is given",
	}},
	{"-o", "-o, --output", "Basic", []string{
		`The name of the version file. Pass a name or a name + ".json". Default "version.json"`,
	}},
	{"-r", "-r, --tag", "Basic", []string{
		"Tag the last commit with an annotated tag for the current version and codename",
	}},
	{"-v", "-v, --version", "Basic", []string{
		"[<newversion> | major | minor | patch | premajor |",
		" preminor | prepatch | prerelease [--preid=<prerelease-id>] | from-git]",
		"Run \"npm version\" and write the new version file. See " + npmVersionDocs,
	}},
	{"-m", "-m, --message", "Basic", []string{
		`Commit message for "npm version" or the tag. %c and %v are replaced by the codename and version`,
	}},
	{"--std", "--std", "Output", []string{
		"Write to standard output instead of a file",
	}},
	{"-d", "-d, --dump", "Output", []string{
		"Dump the version file contents to stdout",
	}},
	{"-t", "-t, --dry-run", "Output", []string{
		"Test mode. Mock the command behaviour and output to stdout",
	}},
	{"--no-color", "--no-color", "Output", []string{
		"Disable colored output",
	}},
	{"-h", "-h, --help", "Misc", []string{
		"Show help",
	}},
	{"-q", "-q, --quiet", "Misc", []string{
		`"Shh mode". Run silently`,
	}},
	{"-f", "-f, --force", "Misc", []string{
		"Force an action that would not otherwise run without this flag",
	}},
}

func (a *app) help() {
	a.pr.Title("makever -c=<codename>")
	tw := tabwriter.NewWriter(a.pr.Out, 0, 8, 4, ' ', 0)
	for i, section := range helpSections {
		if i > 0 {
			fmt.Fprintln(tw)
		}
		fmt.Fprintf(tw, "%s:\n", section)
		for _, e := range helpEntries {
			if e.section == section {
				writeEntry(tw, e)
			}
		}
	}
	tw.Flush()
}

// optionHelp prints the help entry of a single option.
func (a *app) optionHelp(name string) {
	for _, e := range helpEntries {
		if e.option != name {
			continue
		}
		tw := tabwriter.NewWriter(a.pr.Out, 0, 8, 4, ' ', 0)
		writeEntry(tw, e)
		tw.Flush()
		return
	}
}

func writeEntry(tw *tabwriter.Writer, e helpEntry) {
	for i, l := range e.lines {
		names := e.names
		if i > 0 {
			names = ""
		}
		fmt.Fprintf(tw, "%s\t%s\n", names, strings.TrimRight(l, " "))
	}
}
