// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package refl provides the reflection table: a collection of named,
// typed, n-dimensional columns sharing a common row dimension, together
// with the experiment metadata identifying the runs the rows came from.
// Tables are loaded from and written to any [storage.Storage], and rows
// can be selected into independent copies with predicates on a column.
//
// A Table is not safe for concurrent use.
package refl

import (
	"fmt"
	"strings"

	"cogentcore.org/dx2/column"
	"cogentcore.org/dx2/dtype"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Table is a reflection table: an ordered set of columns, indexed by name,
// together with the [Identity] metadata of the experiments.
// Columns keep the order in which they were added or loaded, which is
// the order in which they are written.
type Table struct {
	Identity

	columns *orderedmap.OrderedMap[string, column.Column]
}

// New returns a new empty table with one freshly generated
// experiment id and identifier.
func New() *Table {
	dt := newTable()
	dt.GenerateNewAttributes()
	return dt
}

// NewWithIdentity returns a new empty table with copies of the given
// experiment ids and identifiers. Ids generated afterwards start past
// the largest given id.
func NewWithIdentity(ids []uint64, identifiers []string) *Table {
	dt := newTable()
	dt.SetExperimentIDs(ids)
	dt.SetIdentifiers(identifiers)
	dt.resetCounter()
	return dt
}

// newTable returns a table with no columns and no metadata.
func newTable() *Table {
	return &Table{columns: orderedmap.New[string, column.Column]()}
}

// NumColumns returns the number of columns.
func (dt *Table) NumColumns() int { return dt.columns.Len() }

// NumRows returns the number of rows, which is the row count of
// the first column, or 0 if there are no columns.
func (dt *Table) NumRows() int {
	if pair := dt.columns.Oldest(); pair != nil {
		return pair.Value.NumRows()
	}
	return 0
}

// ColumnNames returns the names of the columns, in order.
func (dt *Table) ColumnNames() []string {
	names := make([]string, 0, dt.columns.Len())
	for pair := dt.columns.Oldest(); pair != nil; pair = pair.Next() {
		names = append(names, pair.Key)
	}
	return names
}

// Columns returns the columns, in order.
// The columns are shared with the table and must not be modified.
func (dt *Table) Columns() []column.Column {
	cols := make([]column.Column, 0, dt.columns.Len())
	for pair := dt.columns.Oldest(); pair != nil; pair = pair.Next() {
		cols = append(cols, pair.Value)
	}
	return cols
}

// HasColumn returns true if the table has a column of the given name.
func (dt *Table) HasColumn(name string) bool {
	_, ok := dt.columns.Get(name)
	return ok
}

// ColumnByName returns the column of the given name, as a type-erased
// [column.Column], and false if there is no such column.
func (dt *Table) ColumnByName(name string) (column.Column, bool) {
	return dt.columns.Get(name)
}

// ColumnKind returns the element type of the named column.
func (dt *Table) ColumnKind(name string) (dtype.Kind, error) {
	c, ok := dt.columns.Get(name)
	if !ok {
		return dtype.Invalid, fmt.Errorf("refl: column %q: %w", name, ErrMissingColumn)
	}
	return c.Kind(), nil
}

// Column returns the named column with its concrete element type T.
// It returns false if there is no such column or if the column holds
// a different element type. The returned column is shared with the
// table and must not be modified.
func Column[T dtype.Number](dt *Table, name string) (*column.Typed[T], bool) {
	c, ok := dt.columns.Get(name)
	if !ok {
		return nil, false
	}
	return column.As[T](c)
}

// DeleteColumn deletes the named column, returning false if not found.
func (dt *Table) DeleteColumn(name string) bool {
	_, ok := dt.columns.Delete(name)
	return ok
}

// AddColumn adds a column of the given name holding the given flat
// row-major values with the given shape, which defaults to one row per
// value. The table takes ownership of values. A column of the same name
// is replaced in place. It returns [ErrShapeMismatch] if the number of
// values does not match the shape, and [ErrRowMismatch] if the table has
// other columns with a different number of rows.
func AddColumn[T dtype.Number](dt *Table, name string, values []T, shape ...int) error {
	sh := column.NewShape(shape...)
	if len(sh) == 0 {
		sh = column.Shape{len(values)}
	}
	if err := sh.Validate(); err != nil {
		return fmt.Errorf("refl.AddColumn %q: %w: %w", name, ErrShapeMismatch, err)
	}
	if sh.Len() != len(values) {
		return fmt.Errorf("refl.AddColumn %q: %w: shape %v needs %d values, got %d", name, ErrShapeMismatch, sh, sh.Len(), len(values))
	}
	if err := dt.checkRows(name, sh.NumRows()); err != nil {
		return err
	}
	c, err := column.FromValues(name, values, sh...)
	if err != nil {
		return err
	}
	dt.columns.Set(name, c)
	return nil
}

// SetColumn adds the given column, replacing any column of the same name.
// It returns [ErrRowMismatch] if the table has other columns with a
// different number of rows.
func (dt *Table) SetColumn(c column.Column) error {
	if err := dt.checkRows(c.Name(), c.NumRows()); err != nil {
		return err
	}
	dt.columns.Set(c.Name(), c)
	return nil
}

// checkRows checks that a column with the given name and row count
// fits the other columns of the table.
func (dt *Table) checkRows(name string, rows int) error {
	for pair := dt.columns.Oldest(); pair != nil; pair = pair.Next() {
		if pair.Key == name {
			continue
		}
		if nr := pair.Value.NumRows(); nr != rows {
			return fmt.Errorf("refl.AddColumn %q: %w: has %d rows, table has %d", name, ErrRowMismatch, rows, nr)
		}
		break
	}
	return nil
}

// Clone returns a deep copy of the table, including its metadata.
func (dt *Table) Clone() *Table {
	cp := &Table{Identity: dt.Identity.clone(), columns: orderedmap.New[string, column.Column](dt.columns.Len())}
	for pair := dt.columns.Oldest(); pair != nil; pair = pair.Next() {
		cp.columns.Set(pair.Key, pair.Value.Clone())
	}
	return cp
}

// Sizeof returns the total number of bytes of column data.
func (dt *Table) Sizeof() int64 {
	var n int64
	for pair := dt.columns.Oldest(); pair != nil; pair = pair.Next() {
		n += pair.Value.Sizeof()
	}
	return n
}

// String returns a summary of the table: the row count,
// the metadata, and one line per column.
func (dt *Table) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Table: %d rows, %d columns, experiments %v\n", dt.NumRows(), dt.NumColumns(), dt.ids)
	for pair := dt.columns.Oldest(); pair != nil; pair = pair.Next() {
		b.WriteString("\t" + pair.Value.String() + "\n")
	}
	return b.String()
}
