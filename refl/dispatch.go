// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package refl

import (
	"fmt"

	"cogentcore.org/dx2/column"
	"cogentcore.org/dx2/dtype"
	"cogentcore.org/dx2/storage"
)

// handler has the storage functions instantiated for one element type.
type handler struct {
	load  func(st storage.Storage, path string) (column.Column, error)
	write func(st storage.Storage, group string, c column.Column) error
}

func newHandler[T dtype.Number]() handler {
	return handler{load: loadColumn[T], write: writeColumn[T]}
}

// handlers is indexed by [dtype.Kind].
var handlers = [dtype.KindN]handler{
	dtype.Int32:   newHandler[int32](),
	dtype.Int64:   newHandler[int64](),
	dtype.Uint32:  newHandler[uint32](),
	dtype.Uint64:  newHandler[uint64](),
	dtype.Float32: newHandler[float32](),
	dtype.Float64: newHandler[float64](),
}

// handlerFor returns the handler for the given kind, or an error
// wrapping [dtype.ErrUnsupportedType].
func handlerFor(k dtype.Kind) (handler, error) {
	if err := k.Validate(); err != nil {
		return handler{}, err
	}
	return handlers[k], nil
}

// loadColumn reads the dataset at path as a column of element type T,
// named by the last element of the path.
func loadColumn[T dtype.Number](st storage.Storage, path string) (column.Column, error) {
	vals, shape, err := storage.ReadArray[T](st, path)
	if err != nil {
		return nil, err
	}
	c, err := column.FromValues(storage.Leaf(path), vals, shape...)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// writeColumn writes the column, which must have element type T,
// as a dataset in group. A trailing dimension of 1 on a 2D column
// is dropped.
func writeColumn[T dtype.Number](st storage.Storage, group string, c column.Column) error {
	tc, ok := column.As[T](c)
	if !ok {
		return fmt.Errorf("column %q: %w: %v is not %v", c.Name(), dtype.ErrUnsupportedType, c.Kind(), dtype.KindOf[T]())
	}
	return storage.WriteArray(st, group, tc.Name(), tc.Data, tc.Shape().Normalized())
}
