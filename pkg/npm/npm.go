// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package npm wraps "npm version".
package npm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/yeetrun/makever/pkg/cmdutil"
)

// ErrNpmVersion is returned when npm rejects the version arguments.
var ErrNpmVersion = errors.New("npm version failed")

var run cmdutil.Runner = cmdutil.Run

// Version runs "npm version <bumpArgs> -m <message>" in root and returns
// the version npm moved to.
func Version(ctx context.Context, root, bumpArgs, message string) (*semver.Version, error) {
	fields := strings.Fields(bumpArgs)
	if len(fields) == 0 {
		return nil, fmt.Errorf("%w: no version arguments", ErrNpmVersion)
	}
	args := append([]string{"version"}, fields...)
	if message != "" {
		args = append(args, "-m", message)
	}
	out, err := run(ctx, root, "npm", args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %q is not a valid option: %v", ErrNpmVersion, bumpArgs, err)
	}
	if msg := strings.TrimSpace(out.Stderr); msg != "" {
		return nil, fmt.Errorf("%w: %s", ErrNpmVersion, msg)
	}
	return parseVersion(out.Stdout)
}

// parseVersion finds the "v1.2.3" line npm prints last. Lifecycle scripts
// may print before it.
func parseVersion(stdout string) (*semver.Version, error) {
	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		l := strings.TrimSpace(lines[i])
		if !strings.HasPrefix(l, "v") {
			continue
		}
		if v, err := semver.StrictNewVersion(l[1:]); err == nil {
			return v, nil
		}
	}
	return nil, fmt.Errorf("%w: no version in output %q", ErrNpmVersion, stdout)
}
