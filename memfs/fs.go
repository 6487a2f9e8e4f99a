// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package memfs

import (
	"fmt"

	"cogentcore.org/dx2/dtype"
	"cogentcore.org/dx2/storage"
)

// fs.go contains the [storage.Storage] implementation.

// FS is an in-memory [storage.Backend] rooted at a group node.
// All values are copied on the way in and out, so no data is
// shared between the store and its callers.
type FS struct {
	root *Node
}

// New returns a new empty in-memory store.
func New() *FS {
	return &FS{root: NewGroup("/")}
}

// Root returns the root group of the store.
func (s *FS) Root() *Node { return s.root }

// Close is a no-op that satisfies [storage.Backend].
func (s *FS) Close() error { return nil }

// Clone returns a deep copy of the store.
func (s *FS) Clone() *FS {
	return &FS{root: s.root.Clone()}
}

func (s *FS) group(group string) (*Node, error) {
	nd, err := s.root.NodeAtPath(group)
	if err != nil {
		return nil, fmt.Errorf("memfs: group %q: %w", group, storage.ErrNotFound)
	}
	if !nd.IsGroup() {
		return nil, fmt.Errorf("memfs: %q is not a group: %w", group, storage.ErrNotFound)
	}
	return nd, nil
}

func (s *FS) dataset(path string) (*Node, error) {
	nd, err := s.root.NodeAtPath(path)
	if err != nil {
		return nil, fmt.Errorf("memfs: dataset %q: %w", path, storage.ErrNotFound)
	}
	if nd.IsGroup() {
		return nil, fmt.Errorf("memfs: %q is a group, not a dataset: %w", path, storage.ErrNotFound)
	}
	return nd, nil
}

func (s *FS) Datasets(group string) ([]string, error) {
	dir, err := s.group(group)
	if err != nil {
		return nil, err
	}
	var paths []string
	for _, nd := range dir.Nodes() {
		if !nd.IsGroup() {
			paths = append(paths, storage.Join(group, nd.name))
		}
	}
	return paths, nil
}

func (s *FS) DatasetKind(path string) (dtype.Kind, error) {
	nd, err := s.dataset(path)
	if err != nil {
		return dtype.Invalid, err
	}
	k, ok := dtype.KindOfValues(nd.values)
	if !ok {
		return dtype.Invalid, fmt.Errorf("memfs: dataset %q: %w: %T", path, dtype.ErrUnsupportedType, nd.values)
	}
	return k, nil
}

func (s *FS) ReadArray(path string, dst any) ([]int, error) {
	nd, err := s.dataset(path)
	if err != nil {
		return nil, err
	}
	vals, ok := dtype.CloneValues(nd.values)
	if !ok {
		return nil, fmt.Errorf("memfs: dataset %q: %w: %T", path, dtype.ErrUnsupportedType, nd.values)
	}
	if err := dtype.SetValues(dst, vals); err != nil {
		return nil, fmt.Errorf("memfs: dataset %q: %w", path, err)
	}
	return nd.Shape(), nil
}

func (s *FS) WriteArray(group, name string, values any, shape []int) error {
	dir, err := s.root.MkdirAll(group)
	if err != nil {
		return fmt.Errorf("memfs: group %q: %w", group, err)
	}
	vals, ok := dtype.CloneValues(values)
	if !ok {
		return fmt.Errorf("memfs: dataset %q: %w: %T", name, dtype.ErrUnsupportedType, values)
	}
	_, err = dir.SetValues(name, vals, shape)
	return err
}

func (s *FS) ReadMetadata(group string) ([]uint64, []string, error) {
	dir, err := s.group(group)
	if err != nil {
		return nil, nil, err
	}
	var ids []uint64
	var idents []string
	if v, ok := dir.Attr(storage.ExperimentIDsAttr); ok {
		x, ok := v.([]uint64)
		if !ok {
			return nil, nil, fmt.Errorf("memfs: attribute %q has type %T, not []uint64", storage.ExperimentIDsAttr, v)
		}
		ids = cloneAttr(x).([]uint64)
	}
	if v, ok := dir.Attr(storage.IdentifiersAttr); ok {
		x, ok := v.([]string)
		if !ok {
			return nil, nil, fmt.Errorf("memfs: attribute %q has type %T, not []string", storage.IdentifiersAttr, v)
		}
		idents = cloneAttr(x).([]string)
	}
	return ids, idents, nil
}

func (s *FS) WriteMetadata(group string, ids []uint64, identifiers []string) error {
	dir, err := s.root.MkdirAll(group)
	if err != nil {
		return fmt.Errorf("memfs: group %q: %w", group, err)
	}
	if err := dir.SetAttr(storage.ExperimentIDsAttr, cloneAttr(ids)); err != nil {
		return err
	}
	return dir.SetAttr(storage.IdentifiersAttr, cloneAttr(identifiers))
}

func (s *FS) EnsureGroup(group string) error {
	_, err := s.root.MkdirAll(group)
	return err
}
