// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package storage defines the narrow interface through which reflection
// tables are read from and written to a hierarchical store of groups,
// datasets and group attributes, such as an HDF5 file.
// Implementations are in the h5store, kvstore and memfs packages.
package storage

import (
	"errors"
	"fmt"
	"io"

	"cogentcore.org/dx2/dtype"
)

// DefaultGroup is the group in which reflection datasets and
// experiment metadata attributes are stored within a file.
const DefaultGroup = "/dials/processing/group_0"

// Names of the group attributes holding the experiment metadata.
const (
	ExperimentIDsAttr = "experiment_ids"
	IdentifiersAttr   = "identifiers"
)

var (
	// ErrNotFound is returned for groups, datasets or attributes
	// that do not exist.
	ErrNotFound = errors.New("not found")

	// ErrShape is returned when a buffer does not match a shape.
	ErrShape = errors.New("shape does not match number of values")
)

// Storage is a hierarchical store of groups, where each group holds
// n-dimensional array datasets and named attributes.
// Paths are slash separated, and relative paths are relative to the root.
// A Storage is not safe for concurrent use.
type Storage interface {
	// Datasets returns the full paths of the datasets that are immediate
	// children of the given group, in storage order. Sub-groups are skipped.
	// It returns an error wrapping [ErrNotFound] if the group does not exist.
	Datasets(group string) ([]string, error)

	// DatasetKind returns the element type of the dataset at the given path.
	// It returns an error wrapping [dtype.ErrUnsupportedType] if the stored
	// type is not one of the supported kinds.
	DatasetKind(path string) (dtype.Kind, error)

	// ReadArray reads the dataset at the given path into dst, which must be
	// a pointer to a slice of the dataset's element type (e.g. *[]float64),
	// and returns the shape of the dataset.
	ReadArray(path string, dst any) ([]int, error)

	// WriteArray writes values, a flat row-major slice of a supported type,
	// as a dataset with the given name and shape in the given group,
	// replacing any existing dataset of that name.
	WriteArray(group, name string, values any, shape []int) error

	// ReadMetadata reads the experiment ids and identifiers attributes of
	// the given group. Missing attributes are returned as nil slices.
	// On error, the attributes read before the failure are returned.
	ReadMetadata(group string) (ids []uint64, identifiers []string, err error)

	// WriteMetadata writes the experiment ids and identifiers attributes
	// of the given group.
	WriteMetadata(group string, ids []uint64, identifiers []string) error

	// EnsureGroup opens the given group, creating it and any missing
	// parent groups if they do not exist.
	EnsureGroup(group string) error
}

// Backend is a [Storage] that owns an open resource, such as a file,
// which must be closed after use.
type Backend interface {
	Storage
	io.Closer
}

// ReadArray reads the dataset at the given path as values of type T,
// returning the flat values and the shape. The element type of the dataset
// must be exactly T, otherwise an error wrapping [dtype.ErrUnsupportedType]
// is returned.
func ReadArray[T dtype.Number](st Storage, path string) ([]T, []int, error) {
	k, err := st.DatasetKind(path)
	if err != nil {
		return nil, nil, err
	}
	if want := dtype.KindOf[T](); k != want {
		return nil, nil, fmt.Errorf("storage.ReadArray %q: %w: dataset is %v, not %v", path, dtype.ErrUnsupportedType, k, want)
	}
	var vals []T
	shape, err := st.ReadArray(path, &vals)
	if err != nil {
		return nil, nil, err
	}
	if err := CheckShape(len(vals), shape); err != nil {
		return nil, nil, fmt.Errorf("storage.ReadArray %q: %w", path, err)
	}
	return vals, shape, nil
}

// WriteArray writes the given values with the given shape as dataset
// name in group.
func WriteArray[T dtype.Number](st Storage, group, name string, values []T, shape []int) error {
	if err := CheckShape(len(values), shape); err != nil {
		return fmt.Errorf("storage.WriteArray %q: %w", name, err)
	}
	return st.WriteArray(group, name, values, shape)
}

// CheckShape returns an error wrapping [ErrShape] if the shape has no
// dimensions, a negative size, or a product different from n.
func CheckShape(n int, shape []int) error {
	if len(shape) == 0 {
		return fmt.Errorf("%w: no dimensions", ErrShape)
	}
	total := 1
	for _, s := range shape {
		if s < 0 {
			return fmt.Errorf("%w: negative size in %v", ErrShape, shape)
		}
		total *= s
	}
	if total != n {
		return fmt.Errorf("%w: shape %v needs %d values, got %d", ErrShape, shape, total, n)
	}
	return nil
}
