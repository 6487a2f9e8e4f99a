// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package h5store implements [storage.Storage] on HDF5 files,
// using the gonum HDF5 bindings, which require cgo and libhdf5.
package h5store

import (
	"errors"
	"fmt"

	"cogentcore.org/dx2/dtype"
	"cogentcore.org/dx2/storage"
	"gonum.org/v1/hdf5"
)

// File is an open HDF5 file.
type File struct {
	f    *hdf5.File
	path string
}

// Open opens an existing HDF5 file for reading.
func Open(path string) (*File, error) {
	f, err := hdf5.OpenFile(path, hdf5.F_ACC_RDONLY)
	if err != nil {
		return nil, fmt.Errorf("h5store: unable to open file %q: %w", path, err)
	}
	return &File{f: f, path: path}, nil
}

// OpenOrCreate opens an existing HDF5 file for reading and writing,
// creating it if it does not exist.
func OpenOrCreate(path string) (*File, error) {
	f, err := hdf5.OpenFile(path, hdf5.F_ACC_RDWR)
	if err != nil {
		f, err = hdf5.CreateFile(path, hdf5.F_ACC_EXCL)
	}
	if err != nil {
		return nil, fmt.Errorf("h5store: unable to open or create file %q: %w", path, err)
	}
	return &File{f: f, path: path}, nil
}

// Create creates a new HDF5 file, truncating any existing file.
func Create(path string) (*File, error) {
	f, err := hdf5.CreateFile(path, hdf5.F_ACC_TRUNC)
	if err != nil {
		return nil, fmt.Errorf("h5store: unable to create file %q: %w", path, err)
	}
	return &File{f: f, path: path}, nil
}

// Path returns the file path.
func (h *File) Path() string { return h.path }

// Close flushes and closes the file.
func (h *File) Close() error { return h.f.Close() }

func (h *File) openGroup(group string) (*hdf5.Group, error) {
	g, err := h.f.OpenGroup(storage.Clean(group))
	if err != nil {
		return nil, fmt.Errorf("h5store: group %q: %w", group, storage.ErrNotFound)
	}
	return g, nil
}

// ensureGroup opens the given group, creating it and any missing parents.
func (h *File) ensureGroup(group string) (*hdf5.Group, error) {
	cur, err := h.f.OpenGroup("/")
	if err != nil {
		return nil, err
	}
	path := "/"
	for _, el := range storage.Split(group) {
		path = storage.Join(path, el)
		var next *hdf5.Group
		if cur.LinkExists(el) {
			next, err = cur.OpenGroup(el)
		} else {
			next, err = cur.CreateGroup(el)
		}
		cur.Close()
		if err != nil {
			return nil, fmt.Errorf("h5store: unable to create or open group %q: %w", path, err)
		}
		cur = next
	}
	return cur, nil
}

func (h *File) Datasets(group string) ([]string, error) {
	g, err := h.openGroup(group)
	if err != nil {
		return nil, err
	}
	defer g.Close()
	n, err := g.NumObjects()
	if err != nil {
		return nil, fmt.Errorf("h5store: group %q: %w", group, err)
	}
	var paths []string
	for i := range n {
		typ, err := g.ObjectTypeByIndex(i)
		if err != nil || typ != hdf5.H5G_DATASET {
			continue
		}
		name, err := g.ObjectNameByIndex(i)
		if err != nil {
			continue
		}
		paths = append(paths, storage.Join(group, name))
	}
	return paths, nil
}

func (h *File) openDataset(path string) (*hdf5.Dataset, error) {
	d, err := h.f.OpenDataset(storage.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("h5store: unable to open dataset %q: %w", path, storage.ErrNotFound)
	}
	return d, nil
}

func (h *File) DatasetKind(path string) (dtype.Kind, error) {
	d, err := h.openDataset(path)
	if err != nil {
		return dtype.Invalid, err
	}
	defer d.Close()
	return datasetKind(d, path)
}

func datasetKind(d *hdf5.Dataset, path string) (dtype.Kind, error) {
	dt, err := d.Datatype()
	if err != nil {
		return dtype.Invalid, fmt.Errorf("h5store: dataset %q: %w", path, err)
	}
	defer dt.Close()
	if k := kindOf(dt); k != dtype.Invalid {
		return k, nil
	}
	return dtype.Invalid, fmt.Errorf("h5store: dataset %q: %w: %d byte element", path, dtype.ErrUnsupportedType, dt.Size())
}

func (h *File) ReadArray(path string, dst any) ([]int, error) {
	d, err := h.openDataset(path)
	if err != nil {
		return nil, err
	}
	defer d.Close()
	k, err := datasetKind(d, path)
	if err != nil {
		return nil, err
	}
	if dk, ok := dtype.KindOfValues(dst); !ok || dk != k {
		return nil, fmt.Errorf("h5store: dataset %q: %w: %v into %T", path, dtype.ErrUnsupportedType, k, dst)
	}
	space := d.Space()
	defer space.Close()
	dims, _, err := space.SimpleExtentDims()
	if err != nil {
		return nil, fmt.Errorf("h5store: dataset %q: %w", path, err)
	}
	if len(dims) == 0 {
		return nil, fmt.Errorf("h5store: dataset %q has invalid dimensionality", path)
	}
	shape := make([]int, len(dims))
	n := 1
	for i, d := range dims {
		shape[i] = int(d)
		n *= int(d)
	}
	vals, err := dtype.MakeValues(k, n)
	if err != nil {
		return nil, err
	}
	if n > 0 {
		if err := readNative(d, nativeType(k), vals); err != nil {
			return nil, fmt.Errorf("h5store: unable to read dataset %q: %w", path, err)
		}
	}
	if err := dtype.SetValues(dst, vals); err != nil {
		return nil, err
	}
	return shape, nil
}

func (h *File) WriteArray(group, name string, values any, shape []int) error {
	path := storage.Join(group, name)
	k, ok := dtype.KindOfValues(values)
	if !ok {
		return fmt.Errorf("h5store: dataset %q: %w: %T", path, dtype.ErrUnsupportedType, values)
	}
	n := dtype.ValuesLen(values)
	if err := storage.CheckShape(n, shape); err != nil {
		return fmt.Errorf("h5store: dataset %q: %w", path, err)
	}
	g, err := h.ensureGroup(group)
	if err != nil {
		return err
	}
	defer g.Close()

	var d *hdf5.Dataset
	if g.LinkExists(name) {
		d, err = g.OpenDataset(name)
		if err == nil {
			err = checkExisting(d, k, shape)
		}
	} else {
		var space *hdf5.Dataspace
		space, err = hdf5.CreateSimpleDataspace(uintDims(shape), nil)
		if err == nil {
			d, err = g.CreateDataset(name, nativeType(k), space)
			space.Close()
		}
	}
	if err != nil {
		return fmt.Errorf("h5store: unable to write dataset %q: %w", path, err)
	}
	defer d.Close()
	if n == 0 {
		return nil
	}
	if err := writeNative(d, nativeType(k), values); err != nil {
		return fmt.Errorf("h5store: unable to write dataset %q: %w", path, err)
	}
	return nil
}

// checkExisting returns an error if an existing dataset cannot be
// overwritten in place with values of the given kind and shape.
func checkExisting(d *hdf5.Dataset, k dtype.Kind, shape []int) error {
	dk, err := datasetKind(d, "")
	if err != nil {
		d.Close()
		return err
	}
	space := d.Space()
	dims, _, err := space.SimpleExtentDims()
	space.Close()
	if err == nil && (dk != k || !equalDims(dims, shape)) {
		err = fmt.Errorf("existing dataset is %v %v", dk, dims)
	}
	if err != nil {
		d.Close()
	}
	return err
}

func (h *File) ReadMetadata(group string) ([]uint64, []string, error) {
	g, err := h.openGroup(group)
	if err != nil {
		return nil, nil, err
	}
	defer g.Close()
	var ids []uint64
	var idents []string
	if a, err := g.OpenAttribute(storage.ExperimentIDsAttr); err == nil {
		ids, err = readIDs(a)
		a.Close()
		if err != nil {
			return nil, nil, fmt.Errorf("h5store: attribute %q: %w", storage.ExperimentIDsAttr, err)
		}
	}
	if a, err := g.OpenAttribute(storage.IdentifiersAttr); err == nil {
		idents, err = readStrings(a)
		a.Close()
		if err != nil {
			return ids, nil, fmt.Errorf("h5store: attribute %q: %w", storage.IdentifiersAttr, err)
		}
	}
	return ids, idents, nil
}

func readIDs(a *hdf5.Attribute) ([]uint64, error) {
	space := a.Space()
	defer space.Close()
	n := space.SimpleExtentNPoints()
	if n == 0 {
		return nil, nil
	}
	ids := make([]uint64, n)
	if err := a.Read(&ids[0], hdf5.T_NATIVE_UINT64); err != nil {
		return nil, err
	}
	return ids, nil
}

func (h *File) WriteMetadata(group string, ids []uint64, identifiers []string) error {
	if len(ids) == 0 || len(identifiers) == 0 {
		return errors.New("h5store: experiment ids and identifiers must not be empty")
	}
	g, err := h.ensureGroup(group)
	if err != nil {
		return err
	}
	defer g.Close()
	if err := writeAttr(g, storage.ExperimentIDsAttr, hdf5.T_NATIVE_UINT64, len(ids), &ids[0]); err != nil {
		return err
	}
	return writeStrings(g, storage.IdentifiersAttr, identifiers)
}

// writeAttr writes a 1D attribute with n elements of the given type,
// overwriting an existing attribute of the same size in place and
// replacing one of a different size.
func writeAttr(g *hdf5.Group, name string, dt *hdf5.Datatype, n int, data any) error {
	a, err := g.OpenAttribute(name)
	if err == nil {
		space := a.Space()
		npts := space.SimpleExtentNPoints()
		space.Close()
		if npts != n {
			a.Close()
			if err := deleteAttr(g, name); err != nil {
				return err
			}
			a = nil
		}
	}
	if a == nil || err != nil {
		space, err := hdf5.CreateSimpleDataspace([]uint{uint(n)}, nil)
		if err != nil {
			return err
		}
		a, err = g.CreateAttribute(name, dt, space)
		space.Close()
		if err != nil {
			return fmt.Errorf("h5store: unable to create attribute %q: %w", name, err)
		}
	}
	defer a.Close()
	if err := a.Write(data, dt); err != nil {
		return fmt.Errorf("h5store: unable to write attribute %q: %w", name, err)
	}
	return nil
}

func (h *File) EnsureGroup(group string) error {
	g, err := h.ensureGroup(group)
	if err != nil {
		return err
	}
	return g.Close()
}
