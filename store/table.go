// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package store

import (
	"cogentcore.org/dx2/base/errors"
	"cogentcore.org/dx2/refl"
)

// LoadTable opens the reflection file at path with the given format,
// detecting it if [Auto], and loads the table in the given group.
// It is an error if the file cannot be opened.
func LoadTable(path, group string, f Format) (*refl.Table, error) {
	st, err := Open(path, f)
	if err != nil {
		return nil, err
	}
	defer func() { errors.Log(st.Close()) }()
	return refl.Load(st, group)
}

// WriteTable writes the table to the given group of the reflection
// file at path, creating the file if it does not exist.
func WriteTable(dt *refl.Table, path, group string, o Options) error {
	st, err := Create(path, o)
	if err != nil {
		return err
	}
	if err := dt.Write(st, group); err != nil {
		errors.Log(st.Close())
		return err
	}
	return st.Close()
}
