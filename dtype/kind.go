// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package dtype defines the closed set of element types that reflection
// table columns can hold, as a [Kind] tag, and the mapping between
// those tags and the concrete Go types in the [Number] constraint.
package dtype

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnsupportedType is returned whenever a type tag or a Go type
// is outside of the closed set of supported element types.
var ErrUnsupportedType = errors.New("unsupported element type")

// Kind is the element type tag of a column.
type Kind uint8

const (
	// Invalid is the zero Kind, which is never a supported type.
	Invalid Kind = iota

	// Int32 is a signed 32-bit integer.
	Int32

	// Int64 is a signed 64-bit integer.
	Int64

	// Uint32 is an unsigned 32-bit integer.
	Uint32

	// Uint64 is an unsigned 64-bit integer.
	Uint64

	// Float32 is a single precision float.
	Float32

	// Float64 is a double precision float.
	Float64

	// KindN is the number of defined kinds, including Invalid.
	KindN
)

var kindNames = [KindN]string{"invalid", "int32", "int64", "uint32", "uint64", "float32", "float64"}

var kindSizes = [KindN]int{0, 4, 8, 4, 8, 4, 8}

// Kinds returns all of the supported kinds, in tag order.
func Kinds() []Kind {
	return []Kind{Int32, Int64, Uint32, Uint64, Float32, Float64}
}

// String returns the lower-case Go name of the kind.
func (k Kind) String() string {
	if k >= KindN {
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
	return kindNames[k]
}

// IsValid returns true if k is one of the supported kinds.
func (k Kind) IsValid() bool { return k > Invalid && k < KindN }

// Size returns the number of bytes in one element of this kind,
// or 0 for an unsupported kind.
func (k Kind) Size() int {
	if !k.IsValid() {
		return 0
	}
	return kindSizes[k]
}

// IsFloat returns true for the floating point kinds.
func (k Kind) IsFloat() bool { return k == Float32 || k == Float64 }

// IsSigned returns true for the signed integer and floating point kinds.
func (k Kind) IsSigned() bool { return k == Int32 || k == Int64 || k.IsFloat() }

// Validate returns [ErrUnsupportedType] if k is not a supported kind.
func (k Kind) Validate() error {
	if !k.IsValid() {
		return fmt.Errorf("%w: %v", ErrUnsupportedType, k)
	}
	return nil
}

// ParseKind returns the kind with the given name (case insensitive).
// The C-style aliases "int", "double" and "float" are also accepted.
func ParseKind(s string) (Kind, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "int":
		return Int32, nil
	case "double":
		return Float64, nil
	case "float":
		return Float32, nil
	}
	for k := Int32; k < KindN; k++ {
		if kindNames[k] == s {
			return k, nil
		}
	}
	return Invalid, fmt.Errorf("%w: %q", ErrUnsupportedType, s)
}

// MarshalText implements [encoding.TextMarshaler].
func (k Kind) MarshalText() ([]byte, error) {
	if err := k.Validate(); err != nil {
		return nil, err
	}
	return []byte(k.String()), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (k *Kind) UnmarshalText(text []byte) error {
	v, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = v
	return nil
}
