// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package store opens reflection files with the appropriate
// [storage.Backend], detecting the format of existing files.
package store

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"cogentcore.org/dx2/base/errors"
	"cogentcore.org/dx2/h5store"
	"cogentcore.org/dx2/kvstore"
	"cogentcore.org/dx2/storage"
	"github.com/h2non/filetype"
)

// Format is a storage file format.
type Format int32

const (
	// Auto detects the format from the file contents, or for new
	// files from the file extension.
	Auto Format = iota

	// HDF5 is an HDF5 file.
	HDF5

	// LevelDB is a LevelDB database directory.
	LevelDB

	FormatN
)

var formatNames = [FormatN]string{"auto", "hdf5", "leveldb"}

func (f Format) String() string {
	if f < 0 || f >= FormatN {
		return fmt.Sprintf("Format(%d)", int32(f))
	}
	return formatNames[f]
}

// Set sets the format from its name, as used for flags and config files.
func (f *Format) Set(s string) error {
	for i, n := range formatNames {
		if strings.EqualFold(n, s) {
			*f = Format(i)
			return nil
		}
	}
	switch strings.ToLower(s) {
	case "h5":
		*f = HDF5
		return nil
	case "kv", "ldb":
		*f = LevelDB
		return nil
	}
	return fmt.Errorf("store: unknown format %q", s)
}

// Type returns the flag type name.
func (f *Format) Type() string { return "format" }

func (f Format) MarshalText() ([]byte, error) { return []byte(f.String()), nil }

func (f *Format) UnmarshalText(b []byte) error { return f.Set(string(b)) }

var hdf5Magic = []byte("\x89HDF\r\n\x1a\n")

var hdf5Type = filetype.NewType("h5", "application/x-hdf5")

func init() {
	filetype.AddMatcher(hdf5Type, func(buf []byte) bool {
		return bytes.HasPrefix(buf, hdf5Magic)
	})
}

// hdf5Exts are the extensions of new files created as HDF5 by [Auto].
var hdf5Exts = []string{".refl", ".h5", ".hdf5", ".nxs"}

// Detect returns the format of the existing file or directory at path.
// Directories are LevelDB databases.
func Detect(path string) (Format, error) {
	st, err := os.Stat(path)
	if err != nil {
		return Auto, err
	}
	if st.IsDir() {
		return LevelDB, nil
	}
	kind, err := filetype.MatchFile(path)
	if err != nil {
		return Auto, err
	}
	if kind == hdf5Type {
		return HDF5, nil
	}
	return Auto, fmt.Errorf("store: %q is not a recognized reflection file (detected %q)", path, kind.Extension)
}

// formatFor returns the format to create a new file at path with.
func formatFor(path string) Format {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range hdf5Exts {
		if ext == e {
			return HDF5
		}
	}
	return LevelDB
}

// Open opens the existing reflection file at path for reading,
// with the given format, or detecting it if [Auto].
func Open(path string, f Format) (storage.Backend, error) {
	if f == Auto {
		var err error
		if f, err = Detect(path); err != nil {
			return nil, fmt.Errorf("store: unable to open file %q: %w", path, err)
		}
	}
	switch f {
	case HDF5:
		return h5store.Open(path)
	case LevelDB:
		return kvstore.OpenReadOnly(path)
	}
	return nil, fmt.Errorf("store: unable to open file %q: unknown format %v", path, f)
}

// Options are options for [Create].
type Options struct {
	// Format is the format to create, which for [Auto] is the
	// format of an existing file, or derived from the extension.
	Format Format

	// NoCompression disables block compression where supported.
	NoCompression bool
}

// Create opens the reflection file at path for writing, creating it
// if it does not exist. Existing contents are kept.
func Create(path string, o Options) (storage.Backend, error) {
	f := o.Format
	if f == Auto {
		ex, err := exists(path)
		if err != nil {
			return nil, err
		}
		if ex {
			if f, err = Detect(path); err != nil {
				return nil, fmt.Errorf("store: unable to open file %q: %w", path, err)
			}
		} else {
			f = formatFor(path)
		}
	}
	switch f {
	case HDF5:
		return h5store.OpenOrCreate(path)
	case LevelDB:
		return kvstore.OpenOptions(path, kvstore.Options{NoCompression: o.NoCompression})
	}
	return nil, fmt.Errorf("store: unable to create file %q: unknown format %v", path, f)
}

// exists returns whether a file or directory exists at path.
func exists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, err
}
