// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package version

import (
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

var (
	ErrStdWithOutput   = errors.New(`invalid operation: cannot combine "--std" and "-o"`)
	ErrBadFilename     = errors.New("output file must be a valid name and a json file")
	ErrNotJSON         = errors.New("generated file must be a json file")
	ErrInvalidCodename = errors.New("invalid codename")
)

var (
	filenameRe = regexp.MustCompile(`[\w/]{3,}`)
	codenameRe = regexp.MustCompile(`[\w-]{3,50}`)
)

// ResolveOutput picks the version file path from the -o value or fallback
// and splits it into a directory and a file name. A name without an
// extension gets ".json"; any other extension is rejected. -o cannot be
// combined with writing to standard output.
func ResolveOutput(output, fallback string, std bool) (dir, file string, err error) {
	if output != "" && std {
		return "", "", ErrStdWithOutput
	}
	name := output
	if name == "" {
		name = fallback
	}
	ext := filepath.Ext(name)
	base := strings.TrimSuffix(name, ext)
	if !filenameRe.MatchString(base) {
		return "", "", fmt.Errorf("%w: %q must have a name of at least 3 characters", ErrBadFilename, name)
	}
	switch ext {
	case ".json":
	case "":
		name += ".json"
	default:
		return "", "", fmt.Errorf("%w: %q", ErrNotJSON, name)
	}
	dir, file = filepath.Split(name)
	if dir == "" {
		dir = "."
	}
	return filepath.Clean(dir), file, nil
}

// ValidateCodename returns the first run of 3 to 50 letters, digits,
// underscores or dashes in s.
func ValidateCodename(s string) (string, error) {
	m := codenameRe.FindString(s)
	if m == "" {
		return "", fmt.Errorf("%w: %q please provide a valid codename", ErrInvalidCodename, s)
	}
	return m, nil
}

// Placeholders are substituted into commit and tag messages.
type Placeholders struct {
	Version  string
	Codename string
}

// ReplacePlaceholders substitutes %codename and %c with the codename and
// %version and %v with the version. An empty version becomes "%s", which
// npm version replaces with the new version itself.
func ReplacePlaceholders(s string, p Placeholders) string {
	ver := p.Version
	if ver == "" {
		ver = "%s"
	}
	r := strings.NewReplacer(
		"%codename", p.Codename,
		"%version", ver,
		"%c", p.Codename,
		"%v", ver,
	)
	return r.Replace(s)
}
