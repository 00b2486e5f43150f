// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package car reads and validates command-line arguments against a
// declarative option specification.
//
// A Spec maps canonical option names (usually short forms such as "-c") to
// their behavior, and an Aliases table rewrites long forms ("--codename") to
// those canonical names before anything else happens:
//
//	spec := car.Spec{
//	    "-c": {Kind: car.Valued},
//	    "-v": {Kind: car.Valued, Default: "patch"},
//	    "-f": {Kind: car.Flag},
//	    "-h": {Kind: car.Flag, Standalone: true, OnAccept: showHelp},
//	}
//	aliases := car.Aliases{"--codename": "-c", "--help": "-h"}
//
//	s := car.Scanner{Spec: spec, Aliases: aliases, Failed: printErr}
//	args, err := s.Scan(os.Args)
//	if err != nil {
//	    os.Exit(car.ExitCode(err))
//	}
//
// # Argument Syntax
//
// The scanner accepts:
//   - Flags: -f, --force
//   - Valued options with an inline value: -c=name, --codename=name
//   - Valued options followed by their value: -c name
//   - An append tail: everything after a literal "--" is joined by single
//     spaces and becomes the value of the first valued option scanned.
//
// Scanning starts at index 2 of the argument vector, skipping the
// executable and script entries of the platform argv convention.
//
// # Outcomes
//
// Scan never exits the process. It returns one of three outcomes:
//   - the parsed Args and a nil error;
//   - an *Error (unknown argument, missing or invalid value, repeated
//     option), after the Failed sink has been called;
//   - an *Exit, when help was requested or a standalone flag was seen.
//     Both are successful terminations.
//
// ExitCode maps an outcome to a process status, and Read is a convenience
// that terminates the process the way a CLI entry point would.
package car
