// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package h5store

import (
	"path/filepath"
	"strings"
	"testing"

	"cogentcore.org/dx2/dtype"
	"cogentcore.org/dx2/refl"
	"cogentcore.org/dx2/storage"
	"gonum.org/v1/hdf5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ storage.Backend = (*File)(nil)

func TestRoundTrip(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "test.refl")
	grp := storage.DefaultGroup

	f, err := OpenOrCreate(fn)
	require.NoError(t, err)
	require.NoError(t, f.EnsureGroup(grp))
	require.NoError(t, storage.WriteArray(f, grp, "id", []int32{0, 0, 1}, []int{3}))
	require.NoError(t, storage.WriteArray(f, grp, "xyzobs.px.value", []float64{
		1, 2, 0.5,
		3, 4, 1.5,
		5, 6, 2.5,
	}, []int{3, 3}))
	require.NoError(t, storage.WriteArray(f, grp, "flags", []uint64{1, 2, 4}, []int{3}))
	require.NoError(t, f.WriteMetadata(grp, []uint64{0, 1}, []string{"first", "second-identifier"}))
	require.NoError(t, f.Close())

	f, err = Open(fn)
	require.NoError(t, err)
	defer f.Close()

	paths, err := f.Datasets(grp)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{grp + "/id", grp + "/xyzobs.px.value", grp + "/flags"}, paths)

	k, err := f.DatasetKind(grp + "/xyzobs.px.value")
	require.NoError(t, err)
	assert.Equal(t, dtype.Float64, k)

	xyz, shape, err := storage.ReadArray[float64](f, grp+"/xyzobs.px.value")
	require.NoError(t, err)
	assert.Equal(t, []int{3, 3}, shape)
	assert.InDelta(t, 2.5, xyz[8], 1e-12)

	ids, _, err := storage.ReadArray[int32](f, grp+"/id")
	require.NoError(t, err)
	assert.Equal(t, []int32{0, 0, 1}, ids)

	_, _, err = storage.ReadArray[float32](f, grp+"/flags")
	assert.ErrorIs(t, err, dtype.ErrUnsupportedType)

	eids, idents, err := f.ReadMetadata(grp)
	require.NoError(t, err)
	assert.Equal(t, []uint64{0, 1}, eids)
	assert.Equal(t, []string{"first", "second-identifier"}, idents)

	_, err = f.Datasets("/missing")
	assert.ErrorIs(t, err, storage.ErrNotFound)
	_, err = f.DatasetKind(grp + "/missing")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestOverwrite(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "test.h5")
	f, err := Create(fn)
	require.NoError(t, err)
	defer f.Close()

	require.NoError(t, f.WriteArray("/a/b", "v", []int32{1, 2}, []int{2}))
	require.NoError(t, f.WriteArray("/a/b", "v", []int32{3, 4}, []int{2}))
	vals, _, err := storage.ReadArray[int32](f, "/a/b/v")
	require.NoError(t, err)
	assert.Equal(t, []int32{3, 4}, vals)

	assert.Error(t, f.WriteArray("/a/b", "v", []float64{3, 4}, []int{2}))
	assert.ErrorIs(t, f.WriteArray("/a/b", "w", []int32{3, 4}, []int{3}), storage.ErrShape)

	require.NoError(t, f.WriteMetadata("/a", []uint64{7}, []string{"x"}))
	require.NoError(t, f.WriteMetadata("/a", []uint64{8}, []string{"y"}))
	ids, idents, err := f.ReadMetadata("/a")
	require.NoError(t, err)
	assert.Equal(t, []uint64{8}, ids)
	assert.Equal(t, []string{"y"}, idents)
	assert.Error(t, f.WriteMetadata("/a", nil, nil))
}

func TestOpenMissing(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "nope.h5"))
	assert.Error(t, err)
}

// writeFixedStrings writes a 1D attribute of NUL padded fixed size strings.
func writeFixedStrings(t *testing.T, g *hdf5.Group, name string, ss []string) {
	size := 1
	for _, s := range ss {
		size = max(size, len(s)+1)
	}
	st, err := hdf5.T_C_S1.Copy()
	require.NoError(t, err)
	defer st.Close()
	require.NoError(t, st.SetSize(uint(size)))
	buf := make([]byte, len(ss)*size)
	for i, s := range ss {
		copy(buf[i*size:], s)
	}
	require.NoError(t, writeAttr(g, name, st, len(ss), &buf[0]))
}

func TestVariableStrings(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "strings.refl")
	f, err := Create(fn)
	require.NoError(t, err)
	defer f.Close()

	long := strings.Repeat("x", 300)
	g, err := f.ensureGroup("/vlen")
	require.NoError(t, err)
	require.NoError(t, writeAttr(g, storage.ExperimentIDsAttr, hdf5.T_NATIVE_UINT64, 2, &[]uint64{3, 5}[0]))
	require.NoError(t, writeStrings(g, storage.IdentifiersAttr, []string{"a1b2", long}))
	require.NoError(t, g.Close())

	ids, idents, err := f.ReadMetadata("/vlen")
	require.NoError(t, err)
	assert.Equal(t, []uint64{3, 5}, ids)
	assert.Equal(t, []string{"a1b2", long}, idents)

	g, err = f.ensureGroup("/fixed")
	require.NoError(t, err)
	writeFixedStrings(t, g, storage.IdentifiersAttr, []string{"old", "older"})
	require.NoError(t, g.Close())
	_, idents, err = f.ReadMetadata("/fixed")
	require.NoError(t, err)
	assert.Equal(t, []string{"old", "older"}, idents)

	// fixed size identifiers are replaced by variable length ones
	require.NoError(t, f.WriteMetadata("/fixed", []uint64{1, 2}, []string{"new", long}))
	_, idents, err = f.ReadMetadata("/fixed")
	require.NoError(t, err)
	assert.Equal(t, []string{"new", long}, idents)

	g, err = f.ensureGroup("/bad")
	require.NoError(t, err)
	require.NoError(t, writeAttr(g, storage.ExperimentIDsAttr, hdf5.T_NATIVE_UINT64, 1, &[]uint64{9}[0]))
	require.NoError(t, writeAttr(g, storage.IdentifiersAttr, hdf5.T_NATIVE_UINT64, 1, &[]uint64{9}[0]))
	require.NoError(t, g.Close())
	ids, idents, err = f.ReadMetadata("/bad")
	assert.Error(t, err)
	assert.Equal(t, []uint64{9}, ids)
	assert.Nil(t, idents)
}

func TestTableVariableStrings(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "table.refl")
	grp := storage.DefaultGroup
	f, err := Create(fn)
	require.NoError(t, err)
	require.NoError(t, storage.WriteArray(f, grp, "id", []int32{0, 1}, []int{2}))
	g, err := f.ensureGroup(grp)
	require.NoError(t, err)
	require.NoError(t, writeAttr(g, storage.ExperimentIDsAttr, hdf5.T_NATIVE_UINT64, 2, &[]uint64{0, 1}[0]))
	require.NoError(t, writeStrings(g, storage.IdentifiersAttr, []string{"exp-0", "exp-1"}))
	require.NoError(t, g.Close())

	dt, err := refl.Load(f, grp)
	require.NoError(t, err)
	assert.Equal(t, []uint64{0, 1}, dt.ExperimentIDs())
	assert.Equal(t, []string{"exp-0", "exp-1"}, dt.Identifiers())
	assert.Equal(t, uint64(2), dt.NextID())

	dt.GenerateNewAttributes()
	require.NoError(t, dt.Write(f, grp))
	require.NoError(t, f.Close())

	f, err = Open(fn)
	require.NoError(t, err)
	defer f.Close()
	rt, err := refl.Load(f, grp)
	require.NoError(t, err)
	assert.Equal(t, []uint64{0, 1, 2}, rt.ExperimentIDs())
	assert.Equal(t, dt.Identifiers(), rt.Identifiers())
	assert.Equal(t, 2, rt.NumRows())
}

func TestBigEndian(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "be.h5")
	f, err := Create(fn)
	require.NoError(t, err)
	defer f.Close()

	g, err := f.ensureGroup("/be")
	require.NoError(t, err)
	space, err := hdf5.CreateSimpleDataspace([]uint{3}, nil)
	require.NoError(t, err)
	d, err := g.CreateDataset("v", hdf5.T_IEEE_F64BE, space)
	require.NoError(t, err)
	space.Close()
	require.NoError(t, d.Close())
	require.NoError(t, g.Close())

	require.NoError(t, f.WriteArray("/be", "v", []float64{1.5, -2, 1e10}, []int{3}))
	k, err := f.DatasetKind("/be/v")
	require.NoError(t, err)
	assert.Equal(t, dtype.Float64, k)
	vals, _, err := storage.ReadArray[float64](f, "/be/v")
	require.NoError(t, err)
	assert.Equal(t, []float64{1.5, -2, 1e10}, vals)
}
