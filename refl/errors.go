// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package refl

import "errors"

var (
	// ErrMissingColumn is returned when a named column does not exist.
	ErrMissingColumn = errors.New("column not found")

	// ErrShapeMismatch is returned when the number of values in a new
	// column does not match the product of its shape.
	ErrShapeMismatch = errors.New("values do not match shape")

	// ErrRowMismatch is returned when a new column does not have the
	// same number of rows as the existing columns of the table, or when
	// rows are selected from a loaded table with uneven columns.
	ErrRowMismatch = errors.New("row count does not match table")

	// ErrMaskLength is returned when a selection mask does not have
	// one entry per row.
	ErrMaskLength = errors.New("mask length does not match row count")

	// ErrEmptyMetadata is returned when writing a table without
	// experiment ids or identifiers.
	ErrEmptyMetadata = errors.New("experiment ids and identifiers must not be empty")
)
