// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config contains the configuration of the dx2refl tool,
// which is read from TOML or YAML files.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"cogentcore.org/dx2/storage"
	"cogentcore.org/dx2/store"
	"github.com/mitchellh/go-homedir"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// DefaultFile is the config file read when none is specified.
const DefaultFile = "~/.config/dx2/config.toml"

// Config is the configuration for reading and writing reflection tables.
type Config struct {

	// Group is the group within files that holds the reflection table.
	Group string `toml:"group" yaml:"group"`

	// Backend is the file format, or auto to detect it.
	Backend store.Format `toml:"backend" yaml:"backend"`

	// LogLevel is the minimum level of log messages to show.
	LogLevel slog.Level `toml:"log_level" yaml:"log_level"`

	// Compression enables block compression for formats that support it.
	Compression bool `toml:"compression" yaml:"compression"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Group:       storage.DefaultGroup,
		Backend:     store.Auto,
		LogLevel:    slog.LevelInfo,
		Compression: true,
	}
}

// StoreOptions returns the options for creating files.
func (c *Config) StoreOptions() store.Options {
	return store.Options{Format: c.Backend, NoCompression: !c.Compression}
}

// Open returns the configuration in the given file, with defaults for
// any values not in the file. A leading ~ is expanded to the home
// directory. The format is chosen from the extension, with TOML for
// anything other than .yaml or .yml.
func Open(file string) (*Config, error) {
	fn, err := homedir.Expand(file)
	if err != nil {
		return nil, err
	}
	b, err := os.ReadFile(fn)
	if err != nil {
		return nil, err
	}
	c := Default()
	if isYAML(fn) {
		err = yaml.Unmarshal(b, c)
	} else {
		err = toml.NewDecoder(bytes.NewReader(b)).DisallowUnknownFields().Decode(c)
	}
	if err != nil {
		return nil, fmt.Errorf("config: %s: %w", fn, err)
	}
	return c, nil
}

// OpenDefault returns the configuration in [DefaultFile],
// or the defaults if that file does not exist.
func OpenDefault() (*Config, error) {
	c, err := Open(DefaultFile)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return c, err
}

// Save writes the configuration to the given file, in the format
// given by its extension, creating the directory if needed.
func (c *Config) Save(file string) error {
	fn, err := homedir.Expand(file)
	if err != nil {
		return err
	}
	var b []byte
	if isYAML(fn) {
		b, err = yaml.Marshal(c)
	} else {
		b, err = toml.Marshal(c)
	}
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(fn), 0755); err != nil {
		return err
	}
	return os.WriteFile(fn, b, 0666)
}

func isYAML(fn string) bool {
	ext := strings.ToLower(filepath.Ext(fn))
	return ext == ".yaml" || ext == ".yml"
}
