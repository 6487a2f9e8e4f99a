// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package h5store

import (
	"cogentcore.org/dx2/dtype"
	"gonum.org/v1/hdf5"
)

// fileTypes are the on-disk types recognized for each kind,
// in addition to the native type.
var fileTypes = map[dtype.Kind][]*hdf5.Datatype{
	dtype.Int32:   {hdf5.T_STD_I32LE, hdf5.T_STD_I32BE},
	dtype.Int64:   {hdf5.T_STD_I64LE, hdf5.T_STD_I64BE},
	dtype.Uint32:  {hdf5.T_STD_U32LE, hdf5.T_STD_U32BE},
	dtype.Uint64:  {hdf5.T_STD_U64LE, hdf5.T_STD_U64BE},
	dtype.Float32: {hdf5.T_IEEE_F32LE, hdf5.T_IEEE_F32BE},
	dtype.Float64: {hdf5.T_IEEE_F64LE, hdf5.T_IEEE_F64BE},
}

func nativeType(k dtype.Kind) *hdf5.Datatype {
	switch k {
	case dtype.Int32:
		return hdf5.T_NATIVE_INT32
	case dtype.Int64:
		return hdf5.T_NATIVE_INT64
	case dtype.Uint32:
		return hdf5.T_NATIVE_UINT32
	case dtype.Uint64:
		return hdf5.T_NATIVE_UINT64
	case dtype.Float32:
		return hdf5.T_NATIVE_FLOAT
	case dtype.Float64:
		return hdf5.T_NATIVE_DOUBLE
	}
	return nil
}

// kindOf returns the kind of the given dataset type, or
// [dtype.Invalid] if it is not a supported numeric type.
func kindOf(dt *hdf5.Datatype) dtype.Kind {
	for _, k := range dtype.Kinds() {
		if dt.Equal(nativeType(k)) {
			return k
		}
		for _, ft := range fileTypes[k] {
			if dt.Equal(ft) {
				return k
			}
		}
	}
	return dtype.Invalid
}

// firstElem returns a pointer to the first element of a non-empty
// supported []T, which is how the bindings address a buffer.
func firstElem(values any) any {
	switch x := values.(type) {
	case []int32:
		return &x[0]
	case []int64:
		return &x[0]
	case []uint32:
		return &x[0]
	case []uint64:
		return &x[0]
	case []float32:
		return &x[0]
	case []float64:
		return &x[0]
	}
	return nil
}

func uintDims(shape []int) []uint {
	dims := make([]uint, len(shape))
	for i, s := range shape {
		dims[i] = uint(s)
	}
	return dims
}

func equalDims(dims []uint, shape []int) bool {
	if len(dims) != len(shape) {
		return false
	}
	for i, d := range dims {
		if int(d) != shape[i] {
			return false
		}
	}
	return true
}
