// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package store provides the JSON file-backed makever cache.
package store

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"slices"
	"sync"

	"github.com/yeetrun/makever/pkg/fileutil"
)

// CurrentDataVersion is the version of the data format written by Store.
const CurrentDataVersion = 1

// Data is the full JSON structure of the store. It remembers what the last
// successful run wrote so the next run can infer branches and reuse names.
type Data struct {
	// DataVersion is the version of the data format.
	DataVersion int `json:"dataVersion,omitempty"`

	Codename  string `json:"codename,omitempty"`
	Directory string `json:"directory"`
	Filename  string `json:"filename,omitempty"`
	// Version holds the major, minor and patch parts of the last version.
	Version []string `json:"version,omitempty"`
	Branch  string   `json:"branch,omitempty"`

	Prerelease string `json:"prerelease,omitempty"`
	Premajor   bool   `json:"premajor,omitempty"`
	Preminor   bool   `json:"preminor,omitempty"`
	Prepatch   bool   `json:"prepatch,omitempty"`
}

// Clone returns a deep copy of d.
func (d *Data) Clone() *Data {
	if d == nil {
		return nil
	}
	c := *d
	c.Version = slices.Clone(d.Version)
	return &c
}

// HasFile reports whether a version file was recorded.
func (d *Data) HasFile() bool {
	return d != nil && d.Filename != ""
}

// Store reads and writes Data to a single JSON file.
type Store struct {
	file string

	mu sync.Mutex // protects the following
	d  *Data
}

// New returns a Store backed by file. The file is created on first write.
func New(file string) *Store {
	return &Store{file: file}
}

// Path returns the backing file.
func (s *Store) Path() string {
	return s.file
}

// Get returns a copy of the stored data. A missing file yields empty Data.
func (s *Store) Get() (*Data, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.loadLocked(); err != nil {
		return nil, err
	}
	return s.d.Clone(), nil
}

// Mutate applies f to the stored data and saves the result.
func (s *Store) Mutate(f func(*Data) error) (*Data, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.loadLocked(); err != nil {
		return nil, fmt.Errorf("failed to get data: %v", err)
	}
	d := s.d.Clone()
	if err := f(d); err != nil {
		return nil, fmt.Errorf("failed to mutate data: %v", err)
	}
	d.DataVersion = CurrentDataVersion
	s.d = d
	if err := s.saveLocked(); err != nil {
		return nil, fmt.Errorf("failed to save data: %v", err)
	}
	return d.Clone(), nil
}

func (s *Store) loadLocked() error {
	if s.d != nil {
		return nil
	}
	b, err := os.ReadFile(s.file)
	if os.IsNotExist(err) {
		s.d = &Data{DataVersion: CurrentDataVersion}
		return nil
	}
	if err != nil {
		return err
	}
	d := new(Data)
	if len(b) > 0 {
		if err := json.Unmarshal(b, d); err != nil {
			// A corrupt cache only loses inference hints, so start over.
			log.Printf("ignoring unreadable store %s: %v", s.file, err)
			d = new(Data)
		}
	}
	if d.DataVersion > CurrentDataVersion {
		return fmt.Errorf("store %s has data version %d, newer than supported %d", s.file, d.DataVersion, CurrentDataVersion)
	}
	s.d = d
	return nil
}

func (s *Store) saveLocked() error {
	b, err := json.MarshalIndent(s.d, "", "  ")
	if err != nil {
		return err
	}
	return fileutil.WriteFile(s.file, b, 0644)
}
