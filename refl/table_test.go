// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package refl

import (
	"testing"

	"cogentcore.org/dx2/column"
	"cogentcore.org/dx2/dtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// makeTestTable returns a table with 4 rows of id, xyzobs.px.value (N,3)
// and intensity columns.
func makeTestTable(t *testing.T) *Table {
	dt := New()
	require.NoError(t, AddColumn(dt, "id", []int32{0, 0, 1, 1}))
	require.NoError(t, AddColumn(dt, "xyzobs.px.value", []float64{
		10, 20, 0.5,
		11, 21, 1.5,
		12, 22, 2.5,
		13, 23, 0.9,
	}, 4, 3))
	require.NoError(t, AddColumn(dt, "intensity.sum.value", []float32{100, 200, 300, 400}))
	return dt
}

func TestNew(t *testing.T) {
	dt := New()
	assert.Equal(t, 0, dt.NumRows())
	assert.Equal(t, 0, dt.NumColumns())
	assert.Equal(t, []uint64{0}, dt.ExperimentIDs())
	require.Len(t, dt.Identifiers(), 1)
	assert.Len(t, dt.Identifiers()[0], 36)
	assert.Equal(t, uint64(1), dt.NextID())
}

func TestAddColumn(t *testing.T) {
	dt := makeTestTable(t)
	assert.Equal(t, 4, dt.NumRows())
	assert.Equal(t, 3, dt.NumColumns())
	assert.Equal(t, []string{"id", "xyzobs.px.value", "intensity.sum.value"}, dt.ColumnNames())

	xyz, ok := Column[float64](dt, "xyzobs.px.value")
	require.True(t, ok)
	assert.Equal(t, column.Shape{4, 3}, xyz.Shape())
	assert.Equal(t, 2.5, xyz.At(2, 2))

	err := AddColumn(dt, "bad", []int32{1, 2, 3})
	assert.ErrorIs(t, err, ErrRowMismatch)
	err = AddColumn(dt, "bad", []int32{1, 2, 3}, 2, 2)
	assert.ErrorIs(t, err, ErrShapeMismatch)
	assert.False(t, dt.HasColumn("bad"))

	// replacing a column keeps its position
	require.NoError(t, AddColumn(dt, "id", []int64{5, 6, 7, 8}))
	assert.Equal(t, []string{"id", "xyzobs.px.value", "intensity.sum.value"}, dt.ColumnNames())
	k, err := dt.ColumnKind("id")
	require.NoError(t, err)
	assert.Equal(t, dtype.Int64, k)

	// a sole column can be replaced with any row count
	one := New()
	require.NoError(t, AddColumn(one, "a", []int32{1, 2}))
	require.NoError(t, AddColumn(one, "a", []int32{1, 2, 3}))
	assert.Equal(t, 3, one.NumRows())

	assert.True(t, dt.DeleteColumn("id"))
	assert.False(t, dt.DeleteColumn("id"))
	_, err = dt.ColumnKind("id")
	assert.ErrorIs(t, err, ErrMissingColumn)
}

func TestNumPixelsColumn(t *testing.T) {
	dt := makeTestTable(t)
	n := dt.NumRows()
	pix := make([]int32, n)
	for i := range pix {
		pix[i] = int32(i * 10)
	}
	require.NoError(t, AddColumn(dt, "num_pixels", pix))

	col, ok := Column[int32](dt, "num_pixels")
	require.True(t, ok)
	assert.Equal(t, column.Shape{n}, col.Shape())
	assert.Equal(t, int32(30), col.At(3, 0))
}

func TestWrongType(t *testing.T) {
	dt := makeTestTable(t)
	_, ok := Column[int32](dt, "xyzobs.px.value")
	assert.False(t, ok)
	_, ok = Column[float32](dt, "xyzobs.px.value")
	assert.False(t, ok)
	_, ok = Column[float64](dt, "nope")
	assert.False(t, ok)
	c, ok := dt.ColumnByName("id")
	require.True(t, ok)
	assert.Equal(t, dtype.Int32, c.Kind())
}

func TestSetColumn(t *testing.T) {
	dt := makeTestTable(t)
	require.NoError(t, dt.SetColumn(column.NewTyped[uint64]("flags", 4)))
	assert.ErrorIs(t, dt.SetColumn(column.NewTyped[uint64]("short", 2)), ErrRowMismatch)
	assert.Equal(t, 4, dt.NumColumns())
}

func TestIdentity(t *testing.T) {
	dt := New()
	seen := map[string]bool{dt.Identifiers()[0]: true}
	last := dt.ExperimentIDs()[0]
	for range 20 {
		id, ident := dt.GenerateNewAttributes()
		assert.Greater(t, id, last)
		assert.False(t, seen[ident], "identifier %q repeated", ident)
		seen[ident] = true
		last = id
	}
	assert.Len(t, dt.ExperimentIDs(), 21)
	assert.Len(t, dt.Identifiers(), 21)

	ids := dt.ExperimentIDs()
	ids[0] = 99
	assert.Equal(t, uint64(0), dt.ExperimentIDs()[0])

	dt.SetExperimentIDs([]uint64{5, 6})
	dt.SetIdentifiers([]string{"a", "b"})
	assert.Equal(t, []uint64{5, 6}, dt.ExperimentIDs())
	assert.Equal(t, []string{"a", "b"}, dt.Identifiers())
	assert.Equal(t, uint64(21), dt.NextID())

	ids = []uint64{3, 9}
	nt := NewWithIdentity(ids, []string{"x", "y"})
	ids[0] = 0
	assert.Equal(t, 0, nt.NumColumns())
	assert.Equal(t, []uint64{3, 9}, nt.ExperimentIDs())
	assert.Equal(t, []string{"x", "y"}, nt.Identifiers())
	id, _ := nt.GenerateNewAttributes()
	assert.Equal(t, uint64(10), id)
	assert.Equal(t, uint64(0), NewWithIdentity(nil, nil).NextID())
}

func TestCloneAndString(t *testing.T) {
	dt := makeTestTable(t)
	cp := dt.Clone()
	xyz, _ := Column[float64](cp, "xyzobs.px.value")
	xyz.Data[0] = -1
	orig, _ := Column[float64](dt, "xyzobs.px.value")
	assert.Equal(t, 10.0, orig.Data[0])
	assert.Equal(t, dt.Identifiers(), cp.Identifiers())
	assert.Equal(t, int64(4*4+12*8+4*4), dt.Sizeof())
	assert.Contains(t, dt.String(), "Table: 4 rows, 3 columns")
	assert.Contains(t, dt.String(), "\txyzobs.px.value [float64 (4, 3)]\n")
	assert.Len(t, dt.Columns(), 3)
}
