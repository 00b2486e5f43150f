// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package version

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// ErrInvalidBump is returned for npm version arguments Bump cannot apply.
var ErrInvalidBump = errors.New(`invalid "npm version" option`)

// Bump applies an npm version argument to v without running npm. It
// accepts major, minor, patch, premajor, preminor, prepatch and prerelease,
// each optionally followed by --preid=<id>, or an explicit version.
func Bump(v *semver.Version, arg string) (*semver.Version, error) {
	fields := strings.Fields(arg)
	if len(fields) == 0 {
		return nil, fmt.Errorf("%w: empty", ErrInvalidBump)
	}
	kind, preid := fields[0], parsePreid(fields[1:])
	major, minor, patch, pre := v.Major(), v.Minor(), v.Patch(), v.Prerelease()

	switch kind {
	case "major":
		if pre != "" && minor == 0 && patch == 0 {
			return build(major, 0, 0, "")
		}
		return build(major+1, 0, 0, "")
	case "minor":
		if pre != "" && patch == 0 {
			return build(major, minor, 0, "")
		}
		return build(major, minor+1, 0, "")
	case "patch":
		if pre != "" {
			return build(major, minor, patch, "")
		}
		return build(major, minor, patch+1, "")
	case "premajor":
		return build(major+1, 0, 0, firstPre(preid))
	case "preminor":
		return build(major, minor+1, 0, firstPre(preid))
	case "prepatch":
		return build(major, minor, patch+1, firstPre(preid))
	case "prerelease":
		if pre == "" {
			return build(major, minor, patch+1, firstPre(preid))
		}
		return build(major, minor, patch, nextPre(pre, preid))
	case "from-git":
		return nil, fmt.Errorf("%w: from-git needs git tags and cannot be simulated", ErrInvalidBump)
	}

	nv, err := semver.StrictNewVersion(strings.TrimPrefix(kind, "v"))
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidBump, arg)
	}
	if nv.Equal(v) {
		return nil, fmt.Errorf("%w: version not changed", ErrInvalidBump)
	}
	return nv, nil
}

func parsePreid(args []string) string {
	for i, a := range args {
		if id, ok := strings.CutPrefix(a, "--preid="); ok {
			return id
		}
		if a == "--preid" && i+1 < len(args) {
			return args[i+1]
		}
	}
	return ""
}

func firstPre(preid string) string {
	if preid == "" {
		return "0"
	}
	return preid + ".0"
}

// nextPre increments the trailing number of pre, the way npm does for
// "prerelease". A new preid restarts the count.
func nextPre(pre, preid string) string {
	if preid != "" && !strings.HasPrefix(pre, preid+".") && pre != preid {
		return firstPre(preid)
	}
	parts := strings.Split(pre, ".")
	last := parts[len(parts)-1]
	if n, err := strconv.ParseUint(last, 10, 64); err == nil {
		parts[len(parts)-1] = strconv.FormatUint(n+1, 10)
		return strings.Join(parts, ".")
	}
	return pre + ".0"
}

func build(major, minor, patch uint64, pre string) (*semver.Version, error) {
	s := fmt.Sprintf("%d.%d.%d", major, minor, patch)
	if pre != "" {
		s += "-" + pre
	}
	return semver.StrictNewVersion(s)
}
