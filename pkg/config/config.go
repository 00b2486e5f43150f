// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config loads the optional makever.toml project configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/BurntSushi/toml"
	"github.com/yeetrun/makever/pkg/pretty"
)

const (
	// FileName is the project configuration file, next to package.json.
	FileName = "makever.toml"

	DefaultOutput   = "version.json"
	DefaultCacheDir = ".makever"
	DefaultLabel    = "makever"
	DefaultTipFreq  = 0
)

// Config holds project settings. Zero fields take their defaults.
type Config struct {
	// Output is the version file written when -o is not given.
	Output string `toml:"output,omitempty"`
	// CacheDir holds the makever store, relative to the project root.
	CacheDir string `toml:"cache_dir,omitempty"`
	// Label prefixes every printed message.
	Label string `toml:"label,omitempty"`
	// Tips is the tip display frequency, 0 (always) to 5 (rarely).
	Tips int `toml:"tips,omitempty"`
	// NoColor disables colored output.
	NoColor bool `toml:"no_color,omitempty"`
	// Message is the default npm version commit message template.
	Message string `toml:"message,omitempty"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Output:   DefaultOutput,
		CacheDir: DefaultCacheDir,
		Label:    DefaultLabel,
		Tips:     DefaultTipFreq,
	}
}

// Load reads makever.toml from root, applies environment overrides and
// fills defaults. A missing file is not an error.
func Load(root string) (*Config, error) {
	cfg := new(Config)
	path := filepath.Join(root, FileName)
	md, err := toml.DecodeFile(path, cfg)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if err == nil {
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("unknown key %q in %s", undecoded[0].String(), path)
		}
	}
	cfg.applyEnv()
	cfg.fillDefaults()
	if cfg.Tips < 0 || cfg.Tips > pretty.MaxTipFreq {
		return nil, fmt.Errorf("tips must be between 0 and %d, got %d", pretty.MaxTipFreq, cfg.Tips)
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	if dir := os.Getenv("MAKEVER_CACHE_DIR"); dir != "" {
		c.CacheDir = dir
	}
	if label := os.Getenv("MAKEVER_LABEL"); label != "" {
		c.Label = label
	}
	if tips := os.Getenv("MAKEVER_TIPS"); tips != "" {
		if n, err := strconv.Atoi(tips); err == nil {
			c.Tips = n
		}
	}
}

func (c *Config) fillDefaults() {
	d := Default()
	if c.Output == "" {
		c.Output = d.Output
	}
	if c.CacheDir == "" {
		c.CacheDir = d.CacheDir
	}
	if c.Label == "" {
		c.Label = d.Label
	}
}

// StorePath returns the store file for a project rooted at root.
func (c *Config) StorePath(root string) string {
	dir := c.CacheDir
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(root, dir)
	}
	return filepath.Join(dir, "store.json")
}
