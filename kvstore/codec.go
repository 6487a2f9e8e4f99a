// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package kvstore

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"cogentcore.org/dx2/dtype"
	"github.com/golang/snappy"
)

var errCorrupt = errors.New("corrupt value")

type header struct {
	kind  dtype.Kind
	shape []int
}

func encodeHeader(h *header) []byte {
	b := []byte{byte(h.kind)}
	b = binary.AppendUvarint(b, uint64(len(h.shape)))
	for _, d := range h.shape {
		b = binary.AppendUvarint(b, uint64(d))
	}
	return b
}

// decodeHeader returns the header and the remaining bytes.
func decodeHeader(b []byte) (*header, []byte, error) {
	if len(b) < 1 {
		return nil, nil, errCorrupt
	}
	h := &header{kind: dtype.Kind(b[0])}
	b = b[1:]
	rank, n := binary.Uvarint(b)
	if n <= 0 || rank > 32 {
		return nil, nil, errCorrupt
	}
	b = b[n:]
	h.shape = make([]int, rank)
	for i := range h.shape {
		d, n := binary.Uvarint(b)
		if n <= 0 || d > math.MaxInt32 {
			return nil, nil, errCorrupt
		}
		h.shape[i] = int(d)
		b = b[n:]
	}
	if !h.kind.IsValid() {
		return h, b, fmt.Errorf("%w: kind tag %d", dtype.ErrUnsupportedType, byte(h.kind))
	}
	return h, b, nil
}

// encodeValues returns the snappy block of the little-endian values,
// which must be a supported []T.
func encodeValues(values any) []byte {
	var raw []byte
	switch x := values.(type) {
	case []int32:
		raw = appendAll(x, func(b []byte, v int32) []byte { return binary.LittleEndian.AppendUint32(b, uint32(v)) })
	case []int64:
		raw = appendAll(x, func(b []byte, v int64) []byte { return binary.LittleEndian.AppendUint64(b, uint64(v)) })
	case []uint32:
		raw = appendAll(x, binary.LittleEndian.AppendUint32)
	case []uint64:
		raw = appendAll(x, binary.LittleEndian.AppendUint64)
	case []float32:
		raw = appendAll(x, func(b []byte, v float32) []byte { return binary.LittleEndian.AppendUint32(b, math.Float32bits(v)) })
	case []float64:
		raw = appendAll(x, func(b []byte, v float64) []byte { return binary.LittleEndian.AppendUint64(b, math.Float64bits(v)) })
	}
	return snappy.Encode(nil, raw)
}

func appendAll[T any](vals []T, put func([]byte, T) []byte) []byte {
	b := make([]byte, 0, len(vals)*8)
	for _, v := range vals {
		b = put(b, v)
	}
	return b
}

// decodeValues decodes a snappy block into a []T of the given kind.
func decodeValues(k dtype.Kind, block []byte) (any, error) {
	raw, err := snappy.Decode(nil, block)
	if err != nil {
		return nil, err
	}
	sz := k.Size()
	if sz == 0 {
		return nil, fmt.Errorf("%w: %v", dtype.ErrUnsupportedType, k)
	}
	if len(raw)%sz != 0 {
		return nil, errCorrupt
	}
	n := len(raw) / sz
	le := binary.LittleEndian
	switch k {
	case dtype.Int32:
		return readAll(n, func(i int) int32 { return int32(le.Uint32(raw[i*4:])) }), nil
	case dtype.Int64:
		return readAll(n, func(i int) int64 { return int64(le.Uint64(raw[i*8:])) }), nil
	case dtype.Uint32:
		return readAll(n, func(i int) uint32 { return le.Uint32(raw[i*4:]) }), nil
	case dtype.Uint64:
		return readAll(n, func(i int) uint64 { return le.Uint64(raw[i*8:]) }), nil
	case dtype.Float32:
		return readAll(n, func(i int) float32 { return math.Float32frombits(le.Uint32(raw[i*4:])) }), nil
	case dtype.Float64:
		return readAll(n, func(i int) float64 { return math.Float64frombits(le.Uint64(raw[i*8:])) }), nil
	}
	return nil, fmt.Errorf("%w: %v", dtype.ErrUnsupportedType, k)
}

func readAll[T dtype.Number](n int, at func(i int) T) []T {
	vals := make([]T, n)
	for i := range vals {
		vals[i] = at(i)
	}
	return vals
}

func encodeStrings(ss []string) []byte {
	b := binary.AppendUvarint(nil, uint64(len(ss)))
	for _, s := range ss {
		b = binary.AppendUvarint(b, uint64(len(s)))
		b = append(b, s...)
	}
	return b
}

func decodeStrings(b []byte) ([]string, error) {
	n, m := binary.Uvarint(b)
	if m <= 0 || n > uint64(len(b)) {
		return nil, errCorrupt
	}
	b = b[m:]
	if n == 0 {
		return nil, nil
	}
	ss := make([]string, n)
	for i := range ss {
		l, m := binary.Uvarint(b)
		if m <= 0 || l > uint64(len(b)-m) {
			return nil, errCorrupt
		}
		ss[i] = string(b[m : m+int(l)])
		b = b[m+int(l):]
	}
	return ss, nil
}

func encodeUint64s(vals []uint64) []byte {
	b := binary.AppendUvarint(nil, uint64(len(vals)))
	for _, v := range vals {
		b = binary.LittleEndian.AppendUint64(b, v)
	}
	return b
}

func decodeUint64s(b []byte) ([]uint64, error) {
	n, m := binary.Uvarint(b)
	if m <= 0 || n*8 != uint64(len(b)-m) {
		return nil, errCorrupt
	}
	b = b[m:]
	if n == 0 {
		return nil, nil
	}
	vals := make([]uint64, n)
	for i := range vals {
		vals[i] = binary.LittleEndian.Uint64(b[i*8:])
	}
	return vals, nil
}
