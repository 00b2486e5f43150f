// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package car

import (
	"errors"
	"fmt"
)

// Sentinel errors matched by *Error through errors.Is.
var (
	ErrUnknownArgument = errors.New("invalid argument")
	ErrMissingValue    = errors.New("no valid value to read")
	ErrInvalidValue    = errors.New("invalid value")
	ErrRepeatedOption  = errors.New("repeated option")

	// ErrInvalidSpec is returned when an Option has no valid Kind.
	ErrInvalidSpec = errors.New("invalid option spec")
)

// ErrorKind classifies a scan failure.
type ErrorKind int

const (
	UnknownArgument ErrorKind = iota + 1
	MissingValue
	InvalidValue
	RepeatedOption
)

func (k ErrorKind) String() string {
	switch k {
	case UnknownArgument:
		return "unknown-argument"
	case MissingValue:
		return "missing-value"
	case InvalidValue:
		return "invalid-value"
	case RepeatedOption:
		return "repeated-option"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

func (k ErrorKind) sentinel() error {
	switch k {
	case UnknownArgument:
		return ErrUnknownArgument
	case MissingValue:
		return ErrMissingValue
	case InvalidValue:
		return ErrInvalidValue
	case RepeatedOption:
		return ErrRepeatedOption
	}
	return nil
}

// Error is a scan failure. The process should exit with status 1.
type Error struct {
	Kind   ErrorKind
	Token  string // raw token that failed, as it appeared in argv
	Option string // canonical option name, empty for UnknownArgument
	Value  string // offending value, set for InvalidValue
}

func (e *Error) Error() string {
	switch e.Kind {
	case UnknownArgument:
		return fmt.Sprintf("invalid argument %q", e.Token)
	case MissingValue:
		return fmt.Sprintf("no valid value to read for option %q", e.Option)
	case InvalidValue:
		return fmt.Sprintf("invalid value %q for option %q", e.Value, e.Option)
	case RepeatedOption:
		return fmt.Sprintf("repeated option %q", e.Option)
	}
	return fmt.Sprintf("%v: %q", e.Kind, e.Token)
}

func (e *Error) Is(target error) bool {
	return target != nil && target == e.Kind.sentinel()
}

// ExitReason describes why a scan ended early with success.
type ExitReason int

const (
	// NonCombinable means a standalone flag was scanned.
	NonCombinable ExitReason = iota + 1
	// HelpRequested means a valued option was given a help token.
	HelpRequested
)

func (r ExitReason) String() string {
	switch r {
	case NonCombinable:
		return "non-combinable"
	case HelpRequested:
		return "help"
	default:
		return fmt.Sprintf("ExitReason(%d)", int(r))
	}
}

// Exit is returned when scanning stops early on purpose. It is not a
// failure: callers should exit with status 0 after any callback output.
type Exit struct {
	Reason ExitReason
	Option string
	// Recorded reports whether Option was added to the scanned Args.
	Recorded bool
}

func (e *Exit) Error() string {
	return fmt.Sprintf("%v exit at %q", e.Reason, e.Option)
}

// ExitCode returns the process status for an outcome returned by Scan.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var exit *Exit
	if errors.As(err, &exit) {
		return 0
	}
	return 1
}

// IsExit reports whether err is an early successful termination.
func IsExit(err error) bool {
	var exit *Exit
	return errors.As(err, &exit)
}
