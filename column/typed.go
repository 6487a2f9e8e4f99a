// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package column

import (
	"fmt"
	"slices"
	"unsafe"

	"cogentcore.org/dx2/dtype"
)

// Typed is a named n-dimensional column of values of type T,
// stored as a flat row-major slice.
type Typed[T dtype.Number] struct {
	name  string
	shape Shape

	// Data is the flat row-major slice of values,
	// with len(Data) == shape.Len().
	Data []T
}

// NewTyped returns a new zero-valued column with the given name and shape.
func NewTyped[T dtype.Number](name string, sizes ...int) *Typed[T] {
	sh := NewShape(sizes...)
	return &Typed[T]{name: name, shape: sh, Data: make([]T, sh.Len())}
}

// FromValues returns a new column with the given name that takes
// ownership of the given values. If no sizes are given, the shape is
// 1D with one row per value. It returns an error if the number of values
// does not match the product of the sizes.
func FromValues[T dtype.Number](name string, values []T, sizes ...int) (*Typed[T], error) {
	sh := NewShape(sizes...)
	if len(sh) == 0 {
		sh = Shape{len(values)}
	}
	if err := sh.Validate(); err != nil {
		return nil, fmt.Errorf("column %q: %w", name, err)
	}
	if sh.Len() != len(values) {
		return nil, fmt.Errorf("column %q: shape %v needs %d values, got %d", name, sh, sh.Len(), len(values))
	}
	return &Typed[T]{name: name, shape: sh, Data: values}, nil
}

func (c *Typed[T]) Name() string { return c.name }

func (c *Typed[T]) Kind() dtype.Kind { return dtype.KindOf[T]() }

func (c *Typed[T]) Shape() Shape { return c.shape.Clone() }

func (c *Typed[T]) NumRows() int { return c.shape.NumRows() }

func (c *Typed[T]) Len() int { return len(c.Data) }

func (c *Typed[T]) Sizeof() int64 {
	var v T
	return int64(unsafe.Sizeof(v)) * int64(len(c.Data))
}

func (c *Typed[T]) Values() any { return c.Data }

func (c *Typed[T]) String() string {
	return fmt.Sprintf("%s [%v %v]", c.name, c.Kind(), c.shape)
}

// RowCellSize returns the number of rows, and the number of values
// in each row (the stride).
func (c *Typed[T]) RowCellSize() (rows, cells int) {
	return c.shape.RowCellSize()
}

// At returns the value at the given row and component, for columns
// of 1 or 2 dimensions. For 1D columns the component must be 0.
// Higher dimensional columns are not supported and panic: use [Typed.Row].
func (c *Typed[T]) At(row, comp int) T {
	switch len(c.shape) {
	case 1:
		if comp != 0 {
			panic(fmt.Sprintf("column.At %q: component %d out of range for 1D column", c.name, comp))
		}
		return c.Data[row]
	case 2:
		if row < 0 || row >= c.shape[0] || comp < 0 || comp >= c.shape[1] {
			panic(fmt.Sprintf("column.At %q: index (%d, %d) out of range for shape %v", c.name, row, comp, c.shape))
		}
		return c.Data[row*c.shape[1]+comp]
	}
	panic(fmt.Sprintf("column.At %q: indexed access needs 1 or 2 dimensions, shape is %v", c.name, c.shape))
}

// Row returns the cell values of the given row, as a view onto the
// column data that must not be modified. The returned slice is clipped
// so that appending to it does not affect the column.
func (c *Typed[T]) Row(row int) []T {
	_, cells := c.shape.RowCellSize()
	st := row * cells
	return slices.Clip(c.Data[st : st+cells])
}

// FloatRowCell returns the value at the given row and cell as a float64.
func (c *Typed[T]) FloatRowCell(row, cell int) float64 {
	_, cells := c.shape.RowCellSize()
	return float64(c.Data[row*cells+cell])
}

// Clone returns a deep copy of the column.
func (c *Typed[T]) Clone() Column { return c.CloneTyped() }

// CloneTyped returns a deep copy of the column with its concrete type.
func (c *Typed[T]) CloneTyped() *Typed[T] {
	return &Typed[T]{name: c.name, shape: c.shape.Clone(), Data: slices.Clone(c.Data)}
}

// CloneFiltered returns a new column with exactly the given rows,
// in the given order.
func (c *Typed[T]) CloneFiltered(rows []int) Column { return c.Filtered(rows) }

// Filtered returns a new column with its concrete type that contains
// exactly the given rows, in the given order, preserving the cell size
// of each row. Row indexes out of range panic.
func (c *Typed[T]) Filtered(rows []int) *Typed[T] {
	nr, cells := c.shape.RowCellSize()
	data := make([]T, 0, len(rows)*cells)
	for _, r := range rows {
		if r < 0 || r >= nr {
			panic(fmt.Sprintf("column.Filtered %q: row %d out of range [0..%d)", c.name, r, nr))
		}
		st := r * cells
		data = append(data, c.Data[st:st+cells]...)
	}
	return &Typed[T]{name: c.name, shape: c.shape.WithRows(len(rows)), Data: data}
}
