// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package version builds and validates makever version files.
package version

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/Masterminds/semver/v3"
	"github.com/yeetrun/makever/pkg/fileutil"
	"gopkg.in/yaml.v3"
)

// PreKind is the kind of prerelease bump that produced a version.
type PreKind string

const (
	Premajor PreKind = "premajor"
	Preminor PreKind = "preminor"
	Prepatch PreKind = "prepatch"
)

// Contents is the data written to a version file.
type Contents struct {
	Codename   string `json:"codename" yaml:"codename"`
	Branch     string `json:"branch" yaml:"branch"`
	Full       string `json:"full" yaml:"full"`
	Raw        string `json:"raw" yaml:"raw"`
	Major      string `json:"major" yaml:"major"`
	Minor      string `json:"minor" yaml:"minor"`
	Patch      string `json:"patch" yaml:"patch"`
	Prerelease string `json:"prerelease,omitempty" yaml:"prerelease,omitempty"`
	Premajor   bool   `json:"premajor,omitempty" yaml:"premajor,omitempty"`
	Preminor   bool   `json:"preminor,omitempty" yaml:"preminor,omitempty"`
	Prepatch   bool   `json:"prepatch,omitempty" yaml:"prepatch,omitempty"`
}

// NewContents describes v.
func NewContents(v *semver.Version, codename, branch string, kind PreKind) Contents {
	c := Contents{
		Codename:   codename,
		Branch:     branch,
		Full:       v.String(),
		Raw:        "v" + v.String(),
		Major:      strconv.FormatUint(v.Major(), 10),
		Minor:      strconv.FormatUint(v.Minor(), 10),
		Patch:      strconv.FormatUint(v.Patch(), 10),
		Prerelease: v.Prerelease(),
	}
	c.SetPreKind(kind)
	return c
}

// SetPreKind sets the flag for kind and clears the others.
func (c *Contents) SetPreKind(kind PreKind) {
	c.Premajor = kind == Premajor
	c.Preminor = kind == Preminor
	c.Prepatch = kind == Prepatch
}

// PreKind returns the prerelease kind flagged in c, if any.
func (c Contents) PreKind() PreKind {
	switch {
	case c.Premajor:
		return Premajor
	case c.Preminor:
		return Preminor
	case c.Prepatch:
		return Prepatch
	}
	return ""
}

// Parts returns the major, minor and patch parts.
func (c Contents) Parts() []string {
	return []string{c.Major, c.Minor, c.Patch}
}

// JSON encodes c the way version files are written.
func (c Contents) JSON() ([]byte, error) {
	return json.MarshalIndent(c, "", "    ")
}

// YAML encodes c for human-readable previews.
func (c Contents) YAML() ([]byte, error) {
	return yaml.Marshal(c)
}

// requiredKeys are the keys every version file has.
var requiredKeys = []string{"codename", "branch", "full", "raw", "major", "minor", "patch"}

// ErrNotVersionFile is returned by ReadFile for JSON that is not a version file.
var ErrNotVersionFile = errors.New("not a version file")

// IsVersionFile reports whether m holds every version file key.
func IsVersionFile(m map[string]any) bool {
	if m == nil {
		return false
	}
	for _, k := range requiredKeys {
		if _, ok := m[k]; !ok {
			return false
		}
	}
	return true
}

// ReadFile reads the version file name.
func ReadFile(name string) (*Contents, error) {
	b, err := os.ReadFile(name)
	if err != nil {
		return nil, err
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotVersionFile, err)
	}
	if !IsVersionFile(m) {
		return nil, ErrNotVersionFile
	}
	c := new(Contents)
	if err := json.Unmarshal(b, c); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotVersionFile, err)
	}
	return c, nil
}

// WriteFile writes c to name, creating parent directories. An identical
// file is left untouched.
func WriteFile(name string, c Contents) error {
	b, err := c.JSON()
	if err != nil {
		return err
	}
	b = append(b, '\n')
	if same, err := fileutil.Identical(name, b); err == nil && same {
		return nil
	}
	return fileutil.WriteFile(name, b, 0644)
}
