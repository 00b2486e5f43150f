// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gitutil

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/yeetrun/makever/pkg/cmdutil"
)

type fakeGit struct {
	mu    sync.Mutex
	calls []string
	out   map[string]string
	fail  map[string]error
}

func (f *fakeGit) run(_ context.Context, _, name string, args ...string) (cmdutil.Output, error) {
	key := strings.Join(append([]string{name}, args...), " ")
	f.mu.Lock()
	f.calls = append(f.calls, key)
	f.mu.Unlock()
	return cmdutil.Output{Stdout: f.out[key]}, f.fail[key]
}

func withFake(t *testing.T, f *fakeGit) {
	t.Helper()
	old := run
	t.Cleanup(func() { run = old })
	run = f.run
}

func TestIsRepo(t *testing.T) {
	dir := t.TempDir()
	if IsRepo(dir) {
		t.Fatalf("IsRepo(empty dir) = true")
	}
	if err := os.Mkdir(filepath.Join(dir, ".git"), 0o755); err != nil {
		t.Fatalf("Mkdir error: %v", err)
	}
	if !IsRepo(dir) {
		t.Fatalf("IsRepo = false with .git")
	}
}

func TestGetStatus(t *testing.T) {
	f := &fakeGit{out: map[string]string{
		"git status --porcelain": " M package.json\n?? notes.txt\n",
		"git clean -nd":          "Would remove notes.txt\nWould remove tmp/\n",
	}}
	withFake(t, f)

	st, err := GetStatus(context.Background(), "/repo")
	if err != nil {
		t.Fatalf("GetStatus error: %v", err)
	}
	want := Status{
		Changed:   []string{"M package.json", "?? notes.txt"},
		Untracked: []string{"notes.txt", "tmp/"},
	}
	if diff := cmp.Diff(want, st); diff != "" {
		t.Fatalf("status mismatch (-want +got):\n%s", diff)
	}
	if st.Clean() {
		t.Fatalf("Clean() = true")
	}
}

func TestGetStatusClean(t *testing.T) {
	withFake(t, &fakeGit{})
	st, err := GetStatus(context.Background(), "/repo")
	if err != nil {
		t.Fatalf("GetStatus error: %v", err)
	}
	if !st.Clean() {
		t.Fatalf("Clean() = false for %+v", st)
	}
}

func TestGetStatusError(t *testing.T) {
	boom := errors.New("boom")
	withFake(t, &fakeGit{fail: map[string]error{"git clean -nd": boom}})
	if _, err := GetStatus(context.Background(), "/repo"); !errors.Is(err, boom) {
		t.Fatalf("GetStatus err = %v, want %v", err, boom)
	}
}

func TestTagAndPush(t *testing.T) {
	f := &fakeGit{}
	withFake(t, f)
	ctx := context.Background()
	if err := Tag(ctx, "/repo", "v1.2.3", "Codename brave-otter"); err != nil {
		t.Fatalf("Tag error: %v", err)
	}
	if err := Push(ctx, "/repo", "v1.2.3 - brave-otter"); err != nil {
		t.Fatalf("Push error: %v", err)
	}
	want := []string{
		"git tag -f -a v1.2.3 -m Codename brave-otter",
		"git add .",
		"git commit --allow-empty -m v1.2.3 - brave-otter",
		"git push --tags",
	}
	if diff := cmp.Diff(want, f.calls); diff != "" {
		t.Fatalf("calls mismatch (-want +got):\n%s", diff)
	}
}

func TestPushStopsOnError(t *testing.T) {
	f := &fakeGit{fail: map[string]error{"git add .": errors.New("locked")}}
	withFake(t, f)
	if err := Push(context.Background(), "/repo", "msg"); err == nil {
		t.Fatalf("Push error = nil")
	}
	if len(f.calls) != 1 {
		t.Fatalf("calls = %v, want only git add", f.calls)
	}
}
