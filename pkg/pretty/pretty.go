// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package pretty writes labelled, colored messages for the makever CLI.
package pretty

import (
	"fmt"
	"io"
	"math/rand/v2"
	"os"

	"github.com/fatih/color"
	"github.com/yeetrun/makever/pkg/cmdutil"
	"golang.org/x/term"
)

// MaxTipFreq is the largest tip display frequency that still prints.
const MaxTipFreq = 5

var isTerminalFn = term.IsTerminal

// Printer writes messages to Out and Err.
type Printer struct {
	Out io.Writer
	Err io.Writer
	In  io.Reader

	// Label is written before every message, e.g. "makever".
	Label string

	// TipFreq controls how often tips and infos print, from 0 (always) to
	// MaxTipFreq (rarely). A tip prints about once every TipFreq+1 calls.
	TipFreq int

	// Quiet suppresses everything except errors and prompts.
	Quiet bool

	// NoColor disables ANSI colors.
	NoColor bool

	// Interactive reports whether In is a terminal. Confirm never reads
	// from a non-interactive input.
	Interactive bool

	intn func(n int) int
}

// New returns a Printer on the process's standard streams.
func New(label string) *Printer {
	return &Printer{
		Out:         os.Stdout,
		Err:         os.Stderr,
		In:          os.Stdin,
		Label:       label,
		NoColor:     color.NoColor,
		Interactive: isTerminalFn(int(os.Stdin.Fd())),
	}
}

var (
	errorTag   = color.New(color.FgRed, color.BgBlack)
	tipTag     = color.New(color.FgGreen, color.BgBlack)
	successTag = color.New(color.FgBlack, color.BgGreen)
	infoTag    = color.New(color.FgBlue, color.BgBlack)
	labelTag   = color.New(color.FgYellow, color.BgBlack)
)

// Error prints msg to Err. Errors print even in quiet mode.
func (p *Printer) Error(msg string) {
	p.write(p.Err, errorTag, "err!", msg)
}

// Tip prints msg at the tip display frequency.
func (p *Printer) Tip(msg string) {
	if p.Quiet || !p.roll() {
		return
	}
	p.write(p.Out, tipTag, "tip!", msg)
}

// Info prints msg at the tip display frequency.
func (p *Printer) Info(msg string) {
	if p.Quiet || !p.roll() {
		return
	}
	p.write(p.Out, infoTag, "info!", msg)
}

// Success prints msg unless quiet.
func (p *Printer) Success(msg string) {
	if p.Quiet {
		return
	}
	p.write(p.Out, successTag, "success!", msg)
}

// Log prints a plain msg unless quiet.
func (p *Printer) Log(msg string) {
	if p.Quiet {
		return
	}
	p.write(p.Out, nil, "", msg)
}

// Logf is Log with formatting.
func (p *Printer) Logf(format string, args ...any) {
	p.Log(fmt.Sprintf(format, args...))
}

// Title prints msg highlighted, as used by the help header.
func (p *Printer) Title(msg string) {
	if p.Quiet {
		return
	}
	fmt.Fprintln(p.Out, p.paint(labelTag, msg))
}

// Raw prints msg without a label unless quiet.
func (p *Printer) Raw(msg string) {
	if p.Quiet {
		return
	}
	fmt.Fprintln(p.Out, msg)
}

// Confirm asks msg and reports whether the user answered yes. It answers
// no without prompting when the input is not a terminal.
func (p *Printer) Confirm(msg string) (bool, error) {
	if !p.Interactive {
		return false, nil
	}
	return cmdutil.Confirm(p.In, p.Out, p.prefix()+msg)
}

// roll reports whether a tip should print this time.
func (p *Printer) roll() bool {
	freq := p.TipFreq
	if freq <= 0 {
		return true
	}
	if freq > MaxTipFreq {
		return false
	}
	intn := p.intn
	if intn == nil {
		intn = rand.IntN
	}
	return intn(freq+1) == freq
}

func (p *Printer) prefix() string {
	if p.Label == "" {
		return ""
	}
	return p.Label + " "
}

func (p *Printer) paint(c *color.Color, s string) string {
	if c == nil || p.NoColor {
		return s
	}
	// p.NoColor overrides color's package-level detection.
	cc := *c
	cc.EnableColor()
	return cc.Sprint(s)
}

func (p *Printer) write(w io.Writer, c *color.Color, tag, msg string) {
	if tag == "" {
		fmt.Fprintf(w, "%s%s\n", p.prefix(), msg)
		return
	}
	fmt.Fprintf(w, "%s%s %s\n", p.prefix(), p.paint(c, tag), msg)
}
