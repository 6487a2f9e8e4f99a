// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dtype

import (
	"fmt"
	"slices"
)

// Number is the closed set of Go element types that columns can hold.
// Each one corresponds to exactly one [Kind].
type Number interface {
	int32 | int64 | uint32 | uint64 | float32 | float64
}

// KindOf returns the [Kind] tag for the Go type T.
func KindOf[T Number]() Kind {
	var v T
	switch any(v).(type) {
	case int32:
		return Int32
	case int64:
		return Int64
	case uint32:
		return Uint32
	case uint64:
		return Uint64
	case float32:
		return Float32
	case float64:
		return Float64
	}
	return Invalid
}

// KindOfValues returns the [Kind] of a []T or *[]T value where T is one
// of the [Number] types, and false for anything else.
// Storage backends use it to recover the element type of the type-erased
// buffers they are handed, without any unchecked conversion.
func KindOfValues(v any) (Kind, bool) {
	switch v.(type) {
	case []int32, *[]int32:
		return Int32, true
	case []int64, *[]int64:
		return Int64, true
	case []uint32, *[]uint32:
		return Uint32, true
	case []uint64, *[]uint64:
		return Uint64, true
	case []float32, *[]float32:
		return Float32, true
	case []float64, *[]float64:
		return Float64, true
	}
	return Invalid, false
}

// MakeValues returns a new []T of length n for the Go type of the given kind,
// as an any, or [ErrUnsupportedType].
func MakeValues(k Kind, n int) (any, error) {
	switch k {
	case Int32:
		return make([]int32, n), nil
	case Int64:
		return make([]int64, n), nil
	case Uint32:
		return make([]uint32, n), nil
	case Uint64:
		return make([]uint64, n), nil
	case Float32:
		return make([]float32, n), nil
	case Float64:
		return make([]float64, n), nil
	}
	return nil, k.Validate()
}

// ValuesLen returns the length of a []T or *[]T of a [Number] type,
// and -1 if v is not one.
func ValuesLen(v any) int {
	switch x := v.(type) {
	case []int32:
		return len(x)
	case *[]int32:
		return len(*x)
	case []int64:
		return len(x)
	case *[]int64:
		return len(*x)
	case []uint32:
		return len(x)
	case *[]uint32:
		return len(*x)
	case []uint64:
		return len(x)
	case *[]uint64:
		return len(*x)
	case []float32:
		return len(x)
	case *[]float32:
		return len(*x)
	case []float64:
		return len(x)
	case *[]float64:
		return len(*x)
	}
	return -1
}

// SetValues stores src, a []T, into dst, a *[]T of the same element type.
// The slice is stored as-is (not copied). It returns [ErrUnsupportedType]
// if the values are not [Number] slices of the same kind.
func SetValues(dst, src any) error {
	ok := false
	switch d := dst.(type) {
	case *[]int32:
		*d, ok = setFrom[int32](*d, src)
	case *[]int64:
		*d, ok = setFrom[int64](*d, src)
	case *[]uint32:
		*d, ok = setFrom[uint32](*d, src)
	case *[]uint64:
		*d, ok = setFrom[uint64](*d, src)
	case *[]float32:
		*d, ok = setFrom[float32](*d, src)
	case *[]float64:
		*d, ok = setFrom[float64](*d, src)
	default:
		return fmt.Errorf("%w: destination %T is not a pointer to a supported slice", ErrUnsupportedType, dst)
	}
	if !ok {
		return fmt.Errorf("%w: cannot store %T into %T", ErrUnsupportedType, src, dst)
	}
	return nil
}

func setFrom[T Number](cur []T, src any) ([]T, bool) {
	s, ok := src.([]T)
	if !ok {
		return cur, false
	}
	return s, true
}

// CloneValues returns a copy of v, a []T of a [Number] type,
// and false if v is not one.
func CloneValues(v any) (any, bool) {
	switch x := v.(type) {
	case []int32:
		return slices.Clone(x), true
	case []int64:
		return slices.Clone(x), true
	case []uint32:
		return slices.Clone(x), true
	case []uint64:
		return slices.Clone(x), true
	case []float32:
		return slices.Clone(x), true
	case []float64:
		return slices.Clone(x), true
	}
	return nil, false
}
