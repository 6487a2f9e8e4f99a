// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package column provides named, typed, n-dimensional columns of numbers
// in row-major order, where the outermost dimension is the row.
// [Column] is the type-erased interface used by tables, and [Typed]
// is the generic implementation for each [dtype.Number] type.
// Use [As] to safely recover the typed column from a [Column].
package column

import (
	"fmt"

	"cogentcore.org/dx2/dtype"
)

// Column is the interface for a named n-dimensional column of values.
// Per C / Go / Python conventions, indexes are Row-Major, ordered from
// outer to inner left-to-right, so the inner-most is right-most.
// It is implemented by [Typed] for each of the [dtype.Number] types.
type Column interface {
	fmt.Stringer

	// Name returns the name of the column.
	Name() string

	// Kind returns the element type tag of the column.
	Kind() dtype.Kind

	// Shape returns a copy of the shape of the column.
	Shape() Shape

	// NumRows returns the size of the outermost (row) dimension.
	NumRows() int

	// Len returns the number of elements in the column,
	// which is the product of all shape dimensions.
	Len() int

	// Sizeof returns the number of bytes of the values.
	Sizeof() int64

	// Values returns the flat []T slice of values, as an any.
	// This is the actual underlying data, used by storage backends
	// for writing, and it must not be modified.
	Values() any

	// FloatRowCell returns the value at given row and cell, where row is
	// the outermost dimension, and cell is a 1D index into the remaining
	// inner dimensions, converted to a float64.
	FloatRowCell(row, cell int) float64

	// Clone returns a deep copy of the column.
	Clone() Column

	// CloneFiltered returns a new column with exactly the given rows,
	// in the given order. Indexes out of range panic.
	CloneFiltered(rows []int) Column
}

// New returns a new zero-valued column of the given kind, name and shape.
// It returns [dtype.ErrUnsupportedType] for an unsupported kind.
func New(kind dtype.Kind, name string, sizes ...int) (Column, error) {
	switch kind {
	case dtype.Int32:
		return NewTyped[int32](name, sizes...), nil
	case dtype.Int64:
		return NewTyped[int64](name, sizes...), nil
	case dtype.Uint32:
		return NewTyped[uint32](name, sizes...), nil
	case dtype.Uint64:
		return NewTyped[uint64](name, sizes...), nil
	case dtype.Float32:
		return NewTyped[float32](name, sizes...), nil
	case dtype.Float64:
		return NewTyped[float64](name, sizes...), nil
	}
	return nil, fmt.Errorf("column.New %q: %w", name, kind.Validate())
}

// As returns the given column as a [Typed] column of element type T,
// and false if the column holds a different element type.
func As[T dtype.Number](c Column) (*Typed[T], bool) {
	if c == nil {
		return nil, false
	}
	tc, ok := c.(*Typed[T])
	return tc, ok
}
