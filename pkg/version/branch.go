// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package version

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// Previous is what the store remembers about the last written version.
type Previous struct {
	Version    []string // major, minor, patch
	Branch     string
	Prerelease string
	PreKind    PreKind
}

func (p *Previous) parts() (major, minor, patch uint64, ok bool) {
	if p == nil || len(p.Version) < 3 {
		return 0, 0, 0, false
	}
	var err error
	if major, err = strconv.ParseUint(p.Version[0], 10, 64); err != nil {
		return 0, 0, 0, false
	}
	if minor, err = strconv.ParseUint(p.Version[1], 10, 64); err != nil {
		return 0, 0, 0, false
	}
	// Older stores kept "3-beta" style patches.
	pp, _, _ := strings.Cut(p.Version[2], "-")
	if patch, err = strconv.ParseUint(pp, 10, 64); err != nil {
		return 0, 0, 0, false
	}
	return major, minor, patch, true
}

func (p *Previous) same(v *semver.Version) bool {
	major, minor, patch, ok := p.parts()
	return ok && major == v.Major() && minor == v.Minor() && patch == v.Patch()
}

// InferBranch names the part of the version that moved, replacing it with
// "x": "x.0.0" for a major release, "1.x.0" for a minor one and "1.2.x"
// for a patch. With a previous version the moved part is found by
// comparison; an unchanged version keeps the previous branch. Without one
// it is guessed from zeros. It returns "" when nothing can be inferred.
func InferBranch(v *semver.Version, prev *Previous) string {
	major, minor, patch := v.Major(), v.Minor(), v.Patch()
	majorBr := fmt.Sprintf("x.%d.%d", minor, patch)
	minorBr := fmt.Sprintf("%d.x.%d", major, patch)
	patchBr := fmt.Sprintf("%d.%d.x", major, minor)

	if pm, pi, pp, ok := prev.parts(); ok {
		switch {
		case major > pm:
			return majorBr
		case major == pm && minor > pi:
			return minorBr
		case major == pm && minor == pi && patch > pp:
			return patchBr
		case major == pm && minor == pi && patch == pp:
			return prev.Branch
		}
		return ""
	}

	switch {
	case minor == 0 && patch == 0:
		return majorBr
	case major == 0 && patch == 0:
		return minorBr
	case major == 0 && minor == 0:
		return patchBr
	}
	return ""
}

// PreKindOf returns the prerelease kind named in an npm version argument.
func PreKindOf(bumpArg string) PreKind {
	switch {
	case strings.Contains(bumpArg, string(Prepatch)):
		return Prepatch
	case strings.Contains(bumpArg, string(Preminor)):
		return Preminor
	case strings.Contains(bumpArg, string(Premajor)):
		return Premajor
	}
	return ""
}

// Prerelease returns the prerelease kind for v. The bump argument wins;
// otherwise a prerelease of the previous version carries its kind over.
func Prerelease(v *semver.Version, bumpArg string, prev *Previous) PreKind {
	if kind := PreKindOf(bumpArg); kind != "" {
		return kind
	}
	if v.Prerelease() != "" && prev.same(v) && prev.Prerelease == v.Prerelease() {
		return prev.PreKind
	}
	return ""
}
