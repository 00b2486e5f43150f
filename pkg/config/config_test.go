// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func writeConfig(t *testing.T, dir, body string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, FileName), []byte(body), 0o644); err != nil {
		t.Fatalf("WriteFile error: %v", err)
	}
}

func TestLoadMissing(t *testing.T) {
	t.Setenv("MAKEVER_CACHE_DIR", "")
	t.Setenv("MAKEVER_LABEL", "")
	t.Setenv("MAKEVER_TIPS", "")
	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if diff := cmp.Diff(Default(), cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadFile(t *testing.T) {
	t.Setenv("MAKEVER_CACHE_DIR", "")
	t.Setenv("MAKEVER_LABEL", "")
	t.Setenv("MAKEVER_TIPS", "")
	dir := t.TempDir()
	writeConfig(t, dir, `
output = "meta/version.json"
tips = 2
no_color = true
message = "release %v (%c)"
`)
	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	want := &Config{
		Output:   "meta/version.json",
		CacheDir: DefaultCacheDir,
		Label:    DefaultLabel,
		Tips:     2,
		NoColor:  true,
		Message:  "release %v (%c)",
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `cache_dir = "from-file"`)
	t.Setenv("MAKEVER_CACHE_DIR", "/tmp/mv-cache")
	t.Setenv("MAKEVER_LABEL", "mv")
	t.Setenv("MAKEVER_TIPS", "4")

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.CacheDir != "/tmp/mv-cache" || cfg.Label != "mv" || cfg.Tips != 4 {
		t.Fatalf("cfg = %+v", cfg)
	}
	if got := cfg.StorePath(dir); got != "/tmp/mv-cache/store.json" {
		t.Fatalf("StorePath = %q", got)
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `outptu = "typo.json"`)
	_, err := Load(dir)
	if err == nil || !strings.Contains(err.Error(), "outptu") {
		t.Fatalf("Load error = %v, want unknown key", err)
	}
}

func TestStorePathRelative(t *testing.T) {
	cfg := Default()
	if got, want := cfg.StorePath("/proj"), filepath.Join("/proj", ".makever", "store.json"); got != want {
		t.Fatalf("StorePath = %q, want %q", got, want)
	}
}

func TestLoadTipsRange(t *testing.T) {
	t.Setenv("MAKEVER_CACHE_DIR", "")
	t.Setenv("MAKEVER_LABEL", "")
	tests := []struct {
		env     string
		wantErr bool
	}{
		{"0", false},
		{"5", false},
		{"-1", true},
		{"6", true},
		{"40", true},
	}
	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			t.Setenv("MAKEVER_TIPS", tt.env)
			_, err := Load(t.TempDir())
			if gotErr := err != nil; gotErr != tt.wantErr {
				t.Fatalf("Load with tips %s error = %v, wantErr %v", tt.env, err, tt.wantErr)
			}
			if err != nil && !strings.Contains(err.Error(), "between 0 and 5") {
				t.Fatalf("Load error = %v, want range message", err)
			}
		})
	}
}
