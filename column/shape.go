// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package column

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Shape has the sizes of each dimension of a column, in row-major order:
// the outermost dimension is first, and is the number of rows.
// All remaining inner dimensions comprise the "cell" of each row.
type Shape []int

// NewShape returns a new shape with the given sizes.
func NewShape(sizes ...int) Shape {
	return slices.Clone(Shape(sizes))
}

// Len returns the total number of elements, which is the product
// of all the sizes. An empty shape has length 0.
func (sh Shape) Len() int {
	if len(sh) == 0 {
		return 0
	}
	n := 1
	for _, s := range sh {
		n *= s
	}
	return n
}

// NumDims returns the number of dimensions (the rank).
func (sh Shape) NumDims() int { return len(sh) }

// DimSize returns the size of the given dimension.
func (sh Shape) DimSize(dim int) int { return sh[dim] }

// NumRows returns the size of the outermost dimension, 0 if empty.
func (sh Shape) NumRows() int {
	if len(sh) == 0 {
		return 0
	}
	return sh[0]
}

// RowCellSize returns the size of the outermost row dimension,
// and the size of all the remaining inner dimensions (the "cell" size),
// which is the stride between consecutive rows in the flat data.
func (sh Shape) RowCellSize() (rows, cells int) {
	if len(sh) == 0 {
		return 0, 0
	}
	rows = sh[0]
	cells = 1
	for _, s := range sh[1:] {
		cells *= s
	}
	return
}

// WithRows returns a copy of the shape with the given number of rows.
func (sh Shape) WithRows(rows int) Shape {
	ns := slices.Clone(sh)
	if len(ns) == 0 {
		return Shape{rows}
	}
	ns[0] = rows
	return ns
}

// Equal returns true if both shapes have the same sizes.
func (sh Shape) Equal(other Shape) bool { return slices.Equal(sh, other) }

// Clone returns a copy of the shape.
func (sh Shape) Clone() Shape { return slices.Clone(sh) }

// Normalized returns the shape used when persisting a column:
// a 2D shape with a single column, (N, 1), becomes (N).
// All other shapes are returned unchanged.
func (sh Shape) Normalized() Shape {
	if len(sh) == 2 && sh[1] == 1 {
		return Shape{sh[0]}
	}
	return sh.Clone()
}

// Validate returns an error if the shape has no dimensions
// or any negative size.
func (sh Shape) Validate() error {
	if len(sh) == 0 {
		return fmt.Errorf("column.Shape: must have at least one dimension")
	}
	for i, s := range sh {
		if s < 0 {
			return fmt.Errorf("column.Shape: dimension %d has negative size %d", i, s)
		}
	}
	return nil
}

// String returns the shape as a parenthesized list, e.g., (10, 3).
func (sh Shape) String() string {
	var b strings.Builder
	b.WriteByte('(')
	for i, s := range sh {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(strconv.Itoa(s))
	}
	b.WriteByte(')')
	return b.String()
}
