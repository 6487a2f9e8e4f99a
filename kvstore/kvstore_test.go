// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package kvstore

import (
	"path/filepath"
	"testing"

	"cogentcore.org/dx2/dtype"
	"cogentcore.org/dx2/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ storage.Backend = (*Store)(nil)

func openTest(t *testing.T) (*Store, string) {
	dir := filepath.Join(t.TempDir(), "refl.db")
	s, err := Open(dir)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s, dir
}

func TestRoundTrip(t *testing.T) {
	s, dir := openTest(t)
	grp := storage.DefaultGroup

	require.NoError(t, storage.WriteArray(s, grp, "id", []int32{0, 1, -1}, []int{3}))
	require.NoError(t, storage.WriteArray(s, grp, "xyzobs.px.value", []float64{1, 2, 3.5, 4, 5, 6}, []int{2, 3}))
	require.NoError(t, storage.WriteArray(s, grp, "flags", []uint64{1 << 40, 2}, []int{2}))
	require.NoError(t, storage.WriteArray(s, grp, "d", []float32{0.25}, []int{1}))
	require.NoError(t, storage.WriteArray(s, grp, "n", []int64{-1 << 40}, []int{1}))
	require.NoError(t, storage.WriteArray(s, grp, "u", []uint32{7}, []int{1, 1}))
	require.NoError(t, s.WriteMetadata(grp, []uint64{3, 4}, []string{"x", "y"}))
	require.NoError(t, s.Close())

	s, err := OpenReadOnly(dir)
	require.NoError(t, err)
	defer s.Close()

	paths, err := s.Datasets(grp)
	require.NoError(t, err)
	assert.Equal(t, []string{
		grp + "/id", grp + "/xyzobs.px.value", grp + "/flags",
		grp + "/d", grp + "/n", grp + "/u",
	}, paths)

	ids, shape, err := storage.ReadArray[int32](s, grp+"/id")
	require.NoError(t, err)
	assert.Equal(t, []int32{0, 1, -1}, ids)
	assert.Equal(t, []int{3}, shape)

	xyz, shape, err := storage.ReadArray[float64](s, grp+"/xyzobs.px.value")
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2, 3.5, 4, 5, 6}, xyz)
	assert.Equal(t, []int{2, 3}, shape)

	flags, _, err := storage.ReadArray[uint64](s, grp+"/flags")
	require.NoError(t, err)
	assert.Equal(t, []uint64{1 << 40, 2}, flags)

	d, _, err := storage.ReadArray[float32](s, grp+"/d")
	require.NoError(t, err)
	assert.Equal(t, []float32{0.25}, d)

	n, _, err := storage.ReadArray[int64](s, grp+"/n")
	require.NoError(t, err)
	assert.Equal(t, []int64{-1 << 40}, n)

	u, shape, err := storage.ReadArray[uint32](s, grp+"/u")
	require.NoError(t, err)
	assert.Equal(t, []uint32{7}, u)
	assert.Equal(t, []int{1, 1}, shape)

	eids, idents, err := s.ReadMetadata(grp)
	require.NoError(t, err)
	assert.Equal(t, []uint64{3, 4}, eids)
	assert.Equal(t, []string{"x", "y"}, idents)

	groups, err := s.Groups()
	require.NoError(t, err)
	assert.Equal(t, []string{"/dials", "/dials/processing", grp}, groups)

	assert.Error(t, s.EnsureGroup("/other"))
}

func TestReplaceAndErrors(t *testing.T) {
	s, _ := openTest(t)
	require.NoError(t, s.WriteArray("/g", "v", []int32{1, 2}, []int{2}))
	require.NoError(t, s.WriteArray("/g", "v", []float64{3}, []int{1}))

	paths, err := s.Datasets("/g")
	require.NoError(t, err)
	assert.Equal(t, []string{"/g/v"}, paths)
	k, err := s.DatasetKind("/g/v")
	require.NoError(t, err)
	assert.Equal(t, dtype.Float64, k)

	var wrong []int32
	_, err = s.ReadArray("/g/v", &wrong)
	assert.ErrorIs(t, err, dtype.ErrUnsupportedType)

	_, err = s.Datasets("/missing")
	assert.ErrorIs(t, err, storage.ErrNotFound)
	_, err = s.DatasetKind("/g/missing")
	assert.ErrorIs(t, err, storage.ErrNotFound)
	_, _, err = s.ReadMetadata("/missing")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	assert.ErrorIs(t, s.WriteArray("/g", "bad", []int32{1}, []int{2}), storage.ErrShape)
	assert.ErrorIs(t, s.WriteArray("/g", "bad", []int{1}, []int{1}), dtype.ErrUnsupportedType)
	assert.Error(t, s.EnsureGroup("/g/v/sub"))

	require.NoError(t, s.EnsureGroup("/g/sub"))
	assert.Error(t, s.WriteArray("/g", "sub", []int32{1}, []int{1}))
	paths, err = s.Datasets("/g")
	require.NoError(t, err)
	assert.Equal(t, []string{"/g/v"}, paths)

	ids, idents, err := s.ReadMetadata("/g")
	require.NoError(t, err)
	assert.Nil(t, ids)
	assert.Nil(t, idents)

	size, err := s.SizeOf("/g")
	require.NoError(t, err)
	assert.GreaterOrEqual(t, size, int64(0))
}

func TestOpenMissing(t *testing.T) {
	_, err := OpenReadOnly(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}

func TestCodec(t *testing.T) {
	h := &header{kind: dtype.Uint32, shape: []int{4, 2, 1}}
	b := append(encodeHeader(h), 1, 2, 3)
	got, rest, err := decodeHeader(b)
	require.NoError(t, err)
	assert.Equal(t, h, got)
	assert.Equal(t, []byte{1, 2, 3}, rest)

	_, _, err = decodeHeader([]byte{byte(dtype.KindN), 1, 1})
	assert.ErrorIs(t, err, dtype.ErrUnsupportedType)
	_, _, err = decodeHeader(nil)
	assert.Error(t, err)

	ss, err := decodeStrings(encodeStrings([]string{"", "ab", "c"}))
	require.NoError(t, err)
	assert.Equal(t, []string{"", "ab", "c"}, ss)
	_, err = decodeStrings([]byte{2, 5, 'a'})
	assert.Error(t, err)

	us, err := decodeUint64s(encodeUint64s([]uint64{0, 1 << 63}))
	require.NoError(t, err)
	assert.Equal(t, []uint64{0, 1 << 63}, us)

	vals, err := decodeValues(dtype.Float32, encodeValues([]float32{1.5, -2}))
	require.NoError(t, err)
	assert.Equal(t, []float32{1.5, -2}, vals)
}
