// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package car

import (
	"fmt"
	"slices"
	"sort"
)

// Kind is the shape of an option. The zero Kind is invalid.
type Kind int

const (
	// Flag is a boolean option that never carries a value.
	Flag Kind = iota + 1
	// Valued is an option paired with a string value.
	Valued
)

func (k Kind) String() string {
	switch k {
	case Flag:
		return "flag"
	case Valued:
		return "valued"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Option describes how a single canonical option is scanned.
type Option struct {
	Kind Kind

	// Standalone marks a flag that must be used alone. Scanning one ends the
	// scan; it is only recorded when it is the first argument.
	Standalone bool

	// Default is used by a Valued option when no usable value follows it.
	// An empty Default means the option has none.
	Default string

	// HelpTrigger is a value that requests help for this option, in
	// addition to the help tokens "--help", "help" and "-h".
	HelpTrigger string

	// OnAccept, if set, runs with the accumulated Args each time the option
	// is recorded.
	OnAccept func(Args)

	// OnHelp, if set, runs when help is requested through this option's
	// value. It receives the canonical option name.
	OnHelp func(name string)
}

// Combinable reports whether the option may appear with other arguments.
func (o Option) Combinable() bool {
	return !o.Standalone
}

var helpTokens = []string{"--help", "help", "-h"}

func (o Option) isHelp(v string) bool {
	if v == "" {
		return false
	}
	return slices.Contains(helpTokens, v) || (o.HelpTrigger != "" && v == o.HelpTrigger)
}

// Spec maps canonical option names to their behavior.
type Spec map[string]Option

// Validate checks that every option has a valid Kind.
func (s Spec) Validate() error {
	for name, opt := range s {
		if opt.Kind != Flag && opt.Kind != Valued {
			return fmt.Errorf("%w: %q has kind %v", ErrInvalidSpec, name, opt.Kind)
		}
	}
	return nil
}

// Aliases maps long-form spellings to canonical option names.
type Aliases map[string]string

func (a Aliases) resolve(name string) string {
	if canonical, ok := a[name]; ok {
		return canonical
	}
	return name
}

// Args holds the scanned options keyed by canonical name. Flags hold true
// and valued options hold their string value.
type Args map[string]any

// Has reports whether name was scanned.
func (a Args) Has(name string) bool {
	_, ok := a[name]
	return ok
}

// Flag reports whether the flag name was scanned.
func (a Args) Flag(name string) bool {
	v, _ := a[name].(bool)
	return v
}

// String returns the value of the valued option name, or "".
func (a Args) String(name string) string {
	v, _ := a[name].(string)
	return v
}

// Keys returns the scanned option names in sorted order.
func (a Args) Keys() []string {
	keys := make([]string, 0, len(a))
	for k := range a {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
