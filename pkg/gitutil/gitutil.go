// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package gitutil runs the git commands used to tag a release.
package gitutil

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/yeetrun/makever/pkg/cmdutil"
	"golang.org/x/sync/errgroup"
)

var run cmdutil.Runner = cmdutil.Run

// IsRepo reports whether root is the top of a git work tree.
func IsRepo(root string) bool {
	_, err := os.Stat(filepath.Join(root, ".git"))
	return err == nil
}

// Status is the state of a work tree.
type Status struct {
	// Changed lists tracked files with uncommitted changes.
	Changed []string
	// Untracked lists paths that git clean would remove.
	Untracked []string
}

// Clean reports whether there is nothing to commit.
func (s Status) Clean() bool {
	return len(s.Changed) == 0 && len(s.Untracked) == 0
}

// GetStatus reads the work tree state of the repo at root.
func GetStatus(ctx context.Context, root string) (Status, error) {
	var st Status
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		out, err := run(ctx, root, "git", "status", "--porcelain")
		if err != nil {
			return fmt.Errorf("failed to read git status: %w", err)
		}
		st.Changed = lines(out.Stdout)
		return nil
	})
	g.Go(func() error {
		out, err := run(ctx, root, "git", "clean", "-nd")
		if err != nil {
			return fmt.Errorf("failed to list untracked files: %w", err)
		}
		for _, l := range lines(out.Stdout) {
			st.Untracked = append(st.Untracked, strings.TrimPrefix(l, "Would remove "))
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return Status{}, err
	}
	return st, nil
}

// Tag creates or moves the annotated tag on the last commit.
func Tag(ctx context.Context, root, tag, msg string) error {
	if _, err := run(ctx, root, "git", "tag", "-f", "-a", tag, "-m", msg); err != nil {
		return fmt.Errorf("failed to tag last commit: %w", err)
	}
	return nil
}

// Push commits every change with msg and pushes the tags.
func Push(ctx context.Context, root, msg string) error {
	steps := [][]string{
		{"add", "."},
		{"commit", "--allow-empty", "-m", msg},
		{"push", "--tags"},
	}
	for _, args := range steps {
		if _, err := run(ctx, root, "git", args...); err != nil {
			return fmt.Errorf("failed to push tag: %w", err)
		}
	}
	return nil
}

func lines(s string) []string {
	var out []string
	for _, l := range strings.Split(s, "\n") {
		if l = strings.TrimSpace(l); l != "" {
			out = append(out, l)
		}
	}
	return out
}
