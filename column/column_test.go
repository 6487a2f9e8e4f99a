// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package column

import (
	"testing"

	"cogentcore.org/dx2/dtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShape(t *testing.T) {
	sh := NewShape(4, 3)
	assert.Equal(t, 12, sh.Len())
	assert.Equal(t, 2, sh.NumDims())
	assert.Equal(t, 4, sh.NumRows())
	r, c := sh.RowCellSize()
	assert.Equal(t, 4, r)
	assert.Equal(t, 3, c)
	assert.Equal(t, "(4, 3)", sh.String())
	assert.Equal(t, Shape{0, 3}, sh.WithRows(0))
	assert.Equal(t, Shape{4, 3}, sh)

	assert.Equal(t, Shape{5}, NewShape(5, 1).Normalized())
	assert.Equal(t, Shape{5, 2}, NewShape(5, 2).Normalized())
	assert.Equal(t, Shape{5, 1, 1}, NewShape(5, 1, 1).Normalized())

	r, c = NewShape(2, 3, 4).RowCellSize()
	assert.Equal(t, 2, r)
	assert.Equal(t, 12, c)

	assert.Equal(t, 0, Shape{}.Len())
	assert.Error(t, Shape{}.Validate())
	assert.Error(t, Shape{3, -1}.Validate())
	assert.NoError(t, Shape{0, 3}.Validate())
}

func TestFromValues(t *testing.T) {
	c, err := FromValues("x", []float64{1, 2, 3, 4, 5, 6}, 2, 3)
	require.NoError(t, err)
	assert.Equal(t, "x", c.Name())
	assert.Equal(t, dtype.Float64, c.Kind())
	assert.Equal(t, Shape{2, 3}, c.Shape())
	assert.Equal(t, 2, c.NumRows())
	assert.Equal(t, 6, c.Len())
	assert.Equal(t, int64(48), c.Sizeof())
	assert.Equal(t, 6.0, c.At(1, 2))
	assert.Equal(t, 2.0, c.At(0, 1))
	assert.Equal(t, []float64{4, 5, 6}, c.Row(1))
	assert.Equal(t, 5.0, c.FloatRowCell(1, 1))
	assert.Equal(t, "x [float64 (2, 3)]", c.String())

	d, err := FromValues("id", []int64{7, 8, 9})
	require.NoError(t, err)
	assert.Equal(t, Shape{3}, d.Shape())
	assert.Equal(t, int64(8), d.At(1, 0))
	assert.Panics(t, func() { d.At(1, 1) })

	_, err = FromValues("bad", []int32{1, 2, 3}, 2, 2)
	assert.Error(t, err)
}

func TestAtHighRank(t *testing.T) {
	c := NewTyped[uint32]("cube", 2, 2, 2)
	assert.Equal(t, 8, c.Len())
	assert.Panics(t, func() { c.At(0, 0) })
	c.Data[7] = 3
	assert.Equal(t, []uint32{0, 0, 0, 3}, c.Row(1))
}

func TestRowIsClipped(t *testing.T) {
	c, err := FromValues("v", []int32{1, 2, 3, 4}, 2, 2)
	require.NoError(t, err)
	r := c.Row(0)
	r = append(r, 99)
	assert.Equal(t, []int32{1, 2, 3, 4}, c.Data)
	assert.Len(t, r, 3)
}

func TestCloneFiltered(t *testing.T) {
	c, err := FromValues("xyz", []float64{
		0, 0, 0,
		1, 1, 1,
		2, 2, 2,
		3, 3, 3,
	}, 4, 3)
	require.NoError(t, err)

	f := c.CloneFiltered([]int{3, 1})
	ft, ok := As[float64](f)
	require.True(t, ok)
	assert.Equal(t, Shape{2, 3}, ft.Shape())
	assert.Equal(t, []float64{3, 3, 3, 1, 1, 1}, ft.Data)
	assert.Equal(t, "xyz", ft.Name())

	ft.Data[0] = 100
	assert.Equal(t, 3.0, c.At(3, 0))

	empty := c.Filtered(nil)
	assert.Equal(t, Shape{0, 3}, empty.Shape())
	assert.Equal(t, 0, empty.Len())

	assert.Panics(t, func() { c.Filtered([]int{4}) })
	assert.Panics(t, func() { c.Filtered([]int{-1}) })
}

func TestClone(t *testing.T) {
	c, err := FromValues("n", []uint64{1, 2, 3})
	require.NoError(t, err)
	cl := c.Clone()
	ct, ok := As[uint64](cl)
	require.True(t, ok)
	ct.Data[0] = 10
	assert.Equal(t, uint64(1), c.Data[0])
}

func TestAs(t *testing.T) {
	c, err := New(dtype.Float64, "xyzobs.px.value", 3, 3)
	require.NoError(t, err)
	_, ok := As[int32](c)
	assert.False(t, ok)
	_, ok = As[float32](c)
	assert.False(t, ok)
	fc, ok := As[float64](c)
	assert.True(t, ok)
	assert.Len(t, fc.Data, 9)

	_, ok = As[float64](nil)
	assert.False(t, ok)
}

func TestNewKinds(t *testing.T) {
	for _, k := range dtype.Kinds() {
		c, err := New(k, "c", 2, 1)
		require.NoError(t, err)
		assert.Equal(t, k, c.Kind())
		assert.Equal(t, 2, c.Len())
		vk, ok := dtype.KindOfValues(c.Values())
		assert.True(t, ok)
		assert.Equal(t, k, vk)
	}
	_, err := New(dtype.Invalid, "c", 2)
	assert.ErrorIs(t, err, dtype.ErrUnsupportedType)
}
