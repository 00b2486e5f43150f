// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package car

import (
	"os"
	"strings"
)

const (
	equalOp      = "="
	appendOp     = "--"
	argIndicator = "-"

	// firstArg skips the executable and script entries of argv.
	firstArg = 2
)

// osExit is swapped in tests.
var osExit = os.Exit

// Scanner scans an argument vector against Spec.
type Scanner struct {
	Spec    Spec
	Aliases Aliases

	// Failed, if set, receives the message of every failure before Scan
	// returns it.
	Failed func(msg string)
}

// Scan reads argv from index 2 onward.
//
// On success it returns the scanned Args and a nil error. On failure it
// calls Failed and returns a nil Args and an *Error. When help is requested
// or a standalone flag is scanned it returns the Args recorded so far and
// an *Exit; no token after that point is scanned.
func (s *Scanner) Scan(argv []string) (Args, error) {
	st := &scan{
		Scanner: s,
		argv:    argv,
		args:    make(Args),
		payload: appendPayload(argv),
	}
	if err := s.Spec.Validate(); err != nil {
		return nil, st.fail(err)
	}
	for st.i = firstArg; st.i < len(argv) && !st.stop; st.i++ {
		if err := st.step(); err != nil {
			if IsExit(err) {
				return st.args, err
			}
			return nil, err
		}
	}
	return st.args, nil
}

// Read scans argv and terminates the process on failure or early exit.
// It only returns on success.
func Read(spec Spec, aliases Aliases, argv []string, failed func(msg string)) Args {
	s := Scanner{Spec: spec, Aliases: aliases, Failed: failed}
	args, err := s.Scan(argv)
	if err != nil {
		osExit(ExitCode(err))
	}
	return args
}

// appendPayload joins every token after the first append marker.
func appendPayload(argv []string) string {
	for i := firstArg; i < len(argv); i++ {
		if argv[i] == appendOp {
			return strings.TrimSpace(strings.Join(argv[i+1:], " "))
		}
	}
	return ""
}

// scan is the state of a single Scan call.
type scan struct {
	*Scanner
	argv    []string
	args    Args
	payload string

	i    int
	stop bool
}

func (st *scan) step() error {
	tok := st.argv[st.i]
	head, tail, _ := strings.Cut(tok, equalOp)
	name := st.Aliases.resolve(head)

	opt, ok := st.Spec[name]
	if !ok {
		if tok == appendOp {
			// Nothing before the marker took the payload, so the tail is
			// passthrough and is never classified.
			st.stop = true
			return nil
		}
		return st.fail(&Error{Kind: UnknownArgument, Token: tok})
	}

	switch {
	case opt.Kind == Valued:
		return st.readValue(tok, name, opt, tail)
	case opt.Combinable():
		if st.args.Has(name) {
			return st.fail(&Error{Kind: RepeatedOption, Token: tok, Option: name})
		}
		st.record(name, true, opt)
		return nil
	default:
		recorded := st.i == firstArg
		if recorded {
			st.record(name, true, opt)
		}
		return &Exit{Reason: NonCombinable, Option: name, Recorded: recorded}
	}
}

func (st *scan) record(name string, v any, opt Option) {
	st.args[name] = v
	if opt.OnAccept != nil {
		opt.OnAccept(st.args)
	}
}

func (st *scan) fail(err error) error {
	if st.Failed != nil {
		st.Failed(err.Error())
	}
	return err
}

func (st *scan) help(name string, opt Option) error {
	if opt.OnHelp != nil {
		opt.OnHelp(name)
	}
	return &Exit{Reason: HelpRequested, Option: name}
}

// candidate is the raw material for a valued option's value.
type candidate struct {
	opt Option

	payload string

	// raw is the inline value, or else the next token.
	raw    string
	hasRaw bool
	// consume is set when raw is the next token and that token is not
	// itself an option or the append marker.
	consume    bool
	usePayload bool
}

// valid reports whether v can be a value without colliding with option syntax.
func valid(v string) bool {
	return v != "" && !strings.HasPrefix(v, argIndicator) && v != equalOp
}

// A valueSource yields a value for a valued option or reports ok=false to
// let the next source try.
type valueSource func(c *candidate) (v string, ok bool)

// valueSources are tried in order. When none yields a value, a help token
// in the candidate requests help, and anything else is a failure.
var valueSources = []valueSource{
	fromAppend,
	fromExplicit,
	fromDefault,
}

func fromAppend(c *candidate) (string, bool) {
	if c.payload == "" {
		return "", false
	}
	c.usePayload = true
	return c.payload, true
}

func fromExplicit(c *candidate) (string, bool) {
	if !c.hasRaw || !valid(c.raw) {
		return "", false
	}
	return c.raw, true
}

func fromDefault(c *candidate) (string, bool) {
	if c.opt.Default == "" {
		return "", false
	}
	return c.opt.Default, true
}

func (st *scan) candidate(opt Option, tail string) *candidate {
	c := &candidate{opt: opt, payload: st.payload}
	switch {
	case tail != "":
		c.raw, c.hasRaw = tail, true
	case st.i+1 < len(st.argv):
		next := st.argv[st.i+1]
		c.raw, c.hasRaw = next, true
		c.consume = !st.isOption(next)
	}
	return c
}

// isOption reports whether tok names a spec entry or is the append marker,
// so it must be left for the next step.
func (st *scan) isOption(tok string) bool {
	if tok == appendOp {
		return true
	}
	head, _, _ := strings.Cut(tok, equalOp)
	_, ok := st.Spec[st.Aliases.resolve(head)]
	return ok
}

func (st *scan) readValue(tok, name string, opt Option, tail string) error {
	c := st.candidate(opt, tail)

	var (
		v  string
		ok bool
	)
	for _, src := range valueSources {
		if v, ok = src(c); ok {
			break
		}
	}
	if !ok {
		switch {
		case opt.isHelp(c.raw):
			return st.help(name, opt)
		case !c.hasRaw:
			return st.fail(&Error{Kind: MissingValue, Token: tok, Option: name})
		default:
			return st.fail(&Error{Kind: InvalidValue, Token: tok, Option: name, Value: c.raw})
		}
	}
	if opt.isHelp(v) {
		return st.help(name, opt)
	}
	if st.args.Has(name) {
		return st.fail(&Error{Kind: RepeatedOption, Token: tok, Option: name})
	}

	if c.consume && !c.usePayload {
		st.i++
	}
	if c.usePayload {
		st.stop = true
	}
	st.record(name, v, opt)
	return nil
}
