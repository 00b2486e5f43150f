// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package manifest locates and reads the host project's package.json.
package manifest

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Masterminds/semver/v3"
	"github.com/yeetrun/makever/pkg/fileutil"
)

// FileName is the manifest file of a node project.
const FileName = "package.json"

var (
	// ErrNoProject is returned when no directory holds a package.json.
	ErrNoProject = errors.New("can't run: no valid node project found")
	// ErrInvalidVersion is returned when the manifest version is not semver.
	ErrInvalidVersion = errors.New("invalid package.json version")
)

// Package is the subset of package.json makever reads.
type Package struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// FindRoot returns the project root: cwd if it holds a package.json, or
// else pwd (the shell's $PWD, which may differ from cwd after a chdir).
func FindRoot(cwd, pwd string) (string, error) {
	for _, dir := range []string{cwd, pwd} {
		if dir == "" {
			continue
		}
		if fileutil.Exists(filepath.Join(dir, FileName)) {
			return dir, nil
		}
	}
	return "", ErrNoProject
}

// Load reads the package.json in root.
func Load(root string) (*Package, error) {
	b, err := os.ReadFile(filepath.Join(root, FileName))
	if err != nil {
		return nil, err
	}
	var p Package
	if err := json.Unmarshal(b, &p); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", FileName, err)
	}
	return &p, nil
}

// Semver parses the package version. It must be a full major.minor.patch
// version, optionally with a prerelease.
func (p *Package) Semver() (*semver.Version, error) {
	v, err := semver.StrictNewVersion(p.Version)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %v", ErrInvalidVersion, p.Version, err)
	}
	return v, nil
}
