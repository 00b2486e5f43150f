// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package store

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestGetMissing(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "cache", "store.json"))
	d, err := s.Get()
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if d.HasFile() || d.Codename != "" {
		t.Fatalf("data = %+v, want empty", d)
	}
	if _, err := os.Stat(s.Path()); !os.IsNotExist(err) {
		t.Fatalf("Get created the store file")
	}
}

func TestMutatePersists(t *testing.T) {
	file := filepath.Join(t.TempDir(), "cache", "store.json")
	s := New(file)
	_, err := s.Mutate(func(d *Data) error {
		d.Codename = "brave-otter"
		d.Filename = "version.json"
		d.Version = []string{"1", "2", "3"}
		d.Branch = "1.2.x"
		return nil
	})
	if err != nil {
		t.Fatalf("Mutate error: %v", err)
	}

	got, err := New(file).Get()
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	want := &Data{
		DataVersion: CurrentDataVersion,
		Codename:    "brave-otter",
		Filename:    "version.json",
		Version:     []string{"1", "2", "3"},
		Branch:      "1.2.x",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("data mismatch (-want +got):\n%s", diff)
	}
}

func TestMutateErrorKeepsData(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "store.json"))
	if _, err := s.Mutate(func(d *Data) error { d.Codename = "kept"; return nil }); err != nil {
		t.Fatalf("Mutate error: %v", err)
	}
	boom := errors.New("boom")
	if _, err := s.Mutate(func(d *Data) error { d.Codename = "lost"; return boom }); err == nil {
		t.Fatalf("Mutate succeeded, want error")
	}
	d, _ := s.Get()
	if d.Codename != "kept" {
		t.Fatalf("Codename = %q, want %q", d.Codename, "kept")
	}
}

func TestGetReturnsCopy(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "store.json"))
	if _, err := s.Mutate(func(d *Data) error { d.Version = []string{"1", "0", "0"}; return nil }); err != nil {
		t.Fatalf("Mutate error: %v", err)
	}
	d, _ := s.Get()
	d.Version[0] = "9"
	again, _ := s.Get()
	if again.Version[0] != "1" {
		t.Fatalf("Get shares memory with the store")
	}
}

func TestCorruptStoreStartsOver(t *testing.T) {
	file := filepath.Join(t.TempDir(), "store.json")
	if err := os.WriteFile(file, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("WriteFile error: %v", err)
	}
	d, err := New(file).Get()
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if d.HasFile() {
		t.Fatalf("data = %+v, want empty", d)
	}
}

func TestNewerDataVersion(t *testing.T) {
	file := filepath.Join(t.TempDir(), "store.json")
	if err := os.WriteFile(file, []byte(`{"dataVersion": 99}`), 0o644); err != nil {
		t.Fatalf("WriteFile error: %v", err)
	}
	if _, err := New(file).Get(); err == nil {
		t.Fatalf("Get succeeded, want data version error")
	}
}
