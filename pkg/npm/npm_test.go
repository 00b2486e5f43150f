// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package npm

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/yeetrun/makever/pkg/cmdutil"
)

func fakeRun(t *testing.T, out cmdutil.Output, err error) *[]string {
	t.Helper()
	var got []string
	old := run
	t.Cleanup(func() { run = old })
	run = func(_ context.Context, dir, name string, args ...string) (cmdutil.Output, error) {
		got = append([]string{dir, name}, args...)
		return out, err
	}
	return &got
}

func TestVersion(t *testing.T) {
	got := fakeRun(t, cmdutil.Output{Stdout: "v1.3.0-beta.0\n"}, nil)
	v, err := Version(context.Background(), "/proj", "preminor --preid=beta", "Update to %s, codename fox")
	if err != nil {
		t.Fatalf("Version error: %v", err)
	}
	if v.String() != "1.3.0-beta.0" {
		t.Fatalf("Version = %s, want 1.3.0-beta.0", v)
	}
	want := []string{"/proj", "npm", "version", "preminor", "--preid=beta", "-m", "Update to %s, codename fox"}
	if !reflect.DeepEqual(*got, want) {
		t.Fatalf("command = %q, want %q", *got, want)
	}
}

func TestVersionLifecycleOutput(t *testing.T) {
	fakeRun(t, cmdutil.Output{Stdout: "> pkg@1.2.4 version\n> echo ok\nok\nv1.2.4\n"}, nil)
	v, err := Version(context.Background(), "/proj", "patch", "")
	if err != nil {
		t.Fatalf("Version error: %v", err)
	}
	if v.String() != "1.2.4" {
		t.Fatalf("Version = %s, want 1.2.4", v)
	}
}

func TestVersionErrors(t *testing.T) {
	tests := []struct {
		name string
		args string
		out  cmdutil.Output
		err  error
	}{
		{"no args", "", cmdutil.Output{}, nil},
		{"exit error", "sideways", cmdutil.Output{}, errors.New("exit status 1")},
		{"stderr", "patch", cmdutil.Output{Stdout: "v1.2.4\n", Stderr: "npm ERR! Git working directory not clean."}, nil},
		{"no version", "patch", cmdutil.Output{Stdout: "done\n"}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fakeRun(t, tt.out, tt.err)
			if _, err := Version(context.Background(), "/proj", tt.args, "msg"); !errors.Is(err, ErrNpmVersion) {
				t.Fatalf("Version err = %v, want ErrNpmVersion", err)
			}
		})
	}
}
