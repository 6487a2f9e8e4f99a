// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package refl

import (
	"fmt"

	"cogentcore.org/dx2/column"
	"cogentcore.org/dx2/dtype"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// typedColumn returns the named column with element type T, or an error
// wrapping [ErrMissingColumn] or [dtype.ErrUnsupportedType].
func typedColumn[T dtype.Number](dt *Table, name string) (*column.Typed[T], error) {
	c, ok := dt.columns.Get(name)
	if !ok {
		return nil, fmt.Errorf("refl: column %q: %w", name, ErrMissingColumn)
	}
	tc, ok := column.As[T](c)
	if !ok {
		return nil, fmt.Errorf("refl: column %q: %w: column is %v, not %v", name, dtype.ErrUnsupportedType, c.Kind(), dtype.KindOf[T]())
	}
	return tc, nil
}

// Mask returns a selection mask with an entry for each row of the named
// column, which is true where the predicate returns true for the cell
// values of the row. The row slice passed to the predicate is only
// valid during the call. Errors are as for [Select].
func Mask[T dtype.Number](dt *Table, name string, pred func(row []T) bool) ([]bool, error) {
	tc, err := typedColumn[T](dt, name)
	if err != nil {
		return nil, err
	}
	mask := make([]bool, tc.NumRows())
	for i := range mask {
		mask[i] = pred(tc.Row(i))
	}
	return mask, nil
}

// Select returns a new table with the rows for which the predicate
// returns true, given the cell values of each row of the named column.
// The predicate is called once per row in ascending row order.
// Every column of the table is copied with the selected rows, and the
// experiment metadata is copied as is. It returns an error wrapping
// [ErrMissingColumn] if there is no such column,
// [dtype.ErrUnsupportedType] if its element type is not T, or
// [ErrRowMismatch] if the columns have different numbers of rows.
func Select[T dtype.Number](dt *Table, name string, pred func(row []T) bool) (*Table, error) {
	tc, err := typedColumn[T](dt, name)
	if err != nil {
		return nil, err
	}
	if err := dt.checkRowCounts(tc.NumRows()); err != nil {
		return nil, err
	}
	var rows []int
	for i := range tc.NumRows() {
		if pred(tc.Row(i)) {
			rows = append(rows, i)
		}
	}
	return dt.SelectRows(rows)
}

// SelectRows returns a new table with the given rows of every column,
// in the given order, and a copy of the experiment metadata.
// It returns an error wrapping [ErrRowMismatch] if the columns have
// different numbers of rows. Row indexes out of range panic.
func (dt *Table) SelectRows(rows []int) (*Table, error) {
	if err := dt.checkRowCounts(dt.NumRows()); err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []int{}
	}
	cp := &Table{Identity: dt.Identity.clone(), columns: orderedmap.New[string, column.Column](dt.columns.Len())}
	for pair := dt.columns.Oldest(); pair != nil; pair = pair.Next() {
		cp.columns.Set(pair.Key, pair.Value.CloneFiltered(rows))
	}
	return cp, nil
}

// checkRowCounts returns an error wrapping [ErrRowMismatch] if any
// column does not have n rows, as can happen for loaded tables.
func (dt *Table) checkRowCounts(n int) error {
	for pair := dt.columns.Oldest(); pair != nil; pair = pair.Next() {
		if nr := pair.Value.NumRows(); nr != n {
			return fmt.Errorf("refl: %w: column %q has %d rows, not %d", ErrRowMismatch, pair.Key, nr, n)
		}
	}
	return nil
}

// SelectMask returns a new table with the rows where mask is true.
// It returns an error wrapping [ErrMaskLength] if the mask does not
// have one entry per row, or as for [Table.SelectRows].
func (dt *Table) SelectMask(mask []bool) (*Table, error) {
	if len(mask) != dt.NumRows() {
		return nil, fmt.Errorf("refl.SelectMask: %w: mask has %d entries, table has %d rows", ErrMaskLength, len(mask), dt.NumRows())
	}
	var rows []int
	for i, m := range mask {
		if m {
			rows = append(rows, i)
		}
	}
	return dt.SelectRows(rows)
}

// AndMasks returns the element-wise and of the given masks,
// which must all have the same length.
func AndMasks(masks ...[]bool) ([]bool, error) {
	return combineMasks(masks, func(a, b bool) bool { return a && b })
}

// OrMasks returns the element-wise or of the given masks,
// which must all have the same length.
func OrMasks(masks ...[]bool) ([]bool, error) {
	return combineMasks(masks, func(a, b bool) bool { return a || b })
}

func combineMasks(masks [][]bool, op func(a, b bool) bool) ([]bool, error) {
	if len(masks) == 0 {
		return nil, nil
	}
	out := append([]bool(nil), masks[0]...)
	for _, m := range masks[1:] {
		if len(m) != len(out) {
			return nil, fmt.Errorf("refl: %w: masks have %d and %d entries", ErrMaskLength, len(out), len(m))
		}
		for i, v := range m {
			out[i] = op(out[i], v)
		}
	}
	return out, nil
}
