// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package kvstore implements [storage.Storage] on a LevelDB database
// directory, as a pure Go alternative to HDF5 files.
//
// Keys are laid out as follows:
//
//	g\x00<group>               group marker, value is the ordered dataset names
//	d\x00<group>/<name>        dataset header and snappy compressed values
//	a\x00<group>\x00<attr>     group attribute
//
// A dataset value is a kind byte, the rank and dims as uvarints, and then
// a snappy block of the little-endian element values.
package kvstore

import (
	"errors"
	"fmt"
	"slices"

	"cogentcore.org/dx2/dtype"
	"cogentcore.org/dx2/storage"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/opt"
	"github.com/syndtr/goleveldb/leveldb/util"
)

const (
	groupPrefix   = "g\x00"
	datasetPrefix = "d\x00"
	attrPrefix    = "a\x00"
)

// Options are the options for opening a store.
type Options struct {
	// ReadOnly opens an existing store without write access.
	ReadOnly bool

	// NoCompression disables LevelDB block compression.
	// Dataset values are always snappy compressed.
	NoCompression bool
}

// Store is a LevelDB backed [storage.Backend].
type Store struct {
	db   *leveldb.DB
	path string
}

// Open opens the store in the given directory, creating it if it
// does not exist.
func Open(path string) (*Store, error) {
	return OpenOptions(path, Options{})
}

// OpenReadOnly opens an existing store for reading. It is an error
// if the store does not exist.
func OpenReadOnly(path string) (*Store, error) {
	return OpenOptions(path, Options{ReadOnly: true})
}

// OpenOptions opens the store in the given directory with the given options.
func OpenOptions(path string, o Options) (*Store, error) {
	lo := &opt.Options{
		ReadOnly:       o.ReadOnly,
		ErrorIfMissing: o.ReadOnly,
	}
	if o.NoCompression {
		lo.Compression = opt.NoCompression
	}
	db, err := leveldb.OpenFile(path, lo)
	if err != nil {
		return nil, fmt.Errorf("kvstore: open %q: %w", path, err)
	}
	return &Store{db: db, path: path}, nil
}

// Path returns the directory of the store.
func (s *Store) Path() string { return s.path }

// Close closes the underlying database.
func (s *Store) Close() error { return s.db.Close() }

func groupKey(group string) []byte {
	return []byte(groupPrefix + storage.Clean(group))
}

func datasetKey(path string) []byte {
	return []byte(datasetPrefix + storage.Clean(path))
}

func attrKey(group, name string) []byte {
	return []byte(attrPrefix + storage.Clean(group) + "\x00" + name)
}

func (s *Store) get(key []byte) ([]byte, error) {
	v, err := s.db.Get(key, nil)
	if errors.Is(err, leveldb.ErrNotFound) {
		return nil, storage.ErrNotFound
	}
	return v, err
}

// groupNames returns the dataset names of the group.
func (s *Store) groupNames(group string) ([]string, error) {
	v, err := s.get(groupKey(group))
	if err != nil {
		return nil, fmt.Errorf("kvstore: group %q: %w", group, err)
	}
	names, err := decodeStrings(v)
	if err != nil {
		return nil, fmt.Errorf("kvstore: group %q: %w", group, err)
	}
	return names, nil
}

// Groups returns the paths of all groups in the store, in key order.
func (s *Store) Groups() ([]string, error) {
	it := s.db.NewIterator(util.BytesPrefix([]byte(groupPrefix)), nil)
	defer it.Release()
	var groups []string
	for it.Next() {
		groups = append(groups, string(it.Key()[len(groupPrefix):]))
	}
	return groups, it.Error()
}

// SizeOf returns the approximate number of bytes used on disk
// by the datasets of the given group.
func (s *Store) SizeOf(group string) (int64, error) {
	prefix := datasetPrefix + storage.Clean(group) + "/"
	sizes, err := s.db.SizeOf([]util.Range{*util.BytesPrefix([]byte(prefix))})
	if err != nil {
		return 0, err
	}
	return sizes.Sum(), nil
}

func (s *Store) Datasets(group string) ([]string, error) {
	names, err := s.groupNames(group)
	if err != nil {
		return nil, err
	}
	paths := make([]string, len(names))
	for i, n := range names {
		paths[i] = storage.Join(group, n)
	}
	return paths, nil
}

func (s *Store) dataset(path string) (*header, []byte, error) {
	v, err := s.get(datasetKey(path))
	if err != nil {
		return nil, nil, fmt.Errorf("kvstore: dataset %q: %w", path, err)
	}
	h, rest, err := decodeHeader(v)
	if err != nil {
		return nil, nil, fmt.Errorf("kvstore: dataset %q: %w", path, err)
	}
	return h, rest, nil
}

func (s *Store) DatasetKind(path string) (dtype.Kind, error) {
	h, _, err := s.dataset(path)
	if err != nil {
		return dtype.Invalid, err
	}
	return h.kind, nil
}

func (s *Store) ReadArray(path string, dst any) ([]int, error) {
	h, block, err := s.dataset(path)
	if err != nil {
		return nil, err
	}
	if k, ok := dtype.KindOfValues(dst); !ok || k != h.kind {
		return nil, fmt.Errorf("kvstore: dataset %q: %w: %v into %T", path, dtype.ErrUnsupportedType, h.kind, dst)
	}
	vals, err := decodeValues(h.kind, block)
	if err != nil {
		return nil, fmt.Errorf("kvstore: dataset %q: %w", path, err)
	}
	if err := storage.CheckShape(dtype.ValuesLen(vals), h.shape); err != nil {
		return nil, fmt.Errorf("kvstore: dataset %q: %w", path, err)
	}
	if err := dtype.SetValues(dst, vals); err != nil {
		return nil, fmt.Errorf("kvstore: dataset %q: %w", path, err)
	}
	return h.shape, nil
}

func (s *Store) WriteArray(group, name string, values any, shape []int) error {
	path := storage.Join(group, name)
	k, ok := dtype.KindOfValues(values)
	if !ok {
		return fmt.Errorf("kvstore: dataset %q: %w: %T", path, dtype.ErrUnsupportedType, values)
	}
	if err := storage.CheckShape(dtype.ValuesLen(values), shape); err != nil {
		return fmt.Errorf("kvstore: dataset %q: %w", path, err)
	}
	if _, err := s.get(groupKey(path)); err == nil {
		return fmt.Errorf("kvstore: dataset %q: a group of that name exists", path)
	}
	b := new(leveldb.Batch)
	if err := s.ensureGroup(b, group); err != nil {
		return err
	}
	names, err := s.groupNames(group)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return err
	}
	if !slices.Contains(names, name) {
		names = append(names, name)
	}
	b.Put(groupKey(group), encodeStrings(names))
	hdr := encodeHeader(&header{kind: k, shape: shape})
	b.Put(datasetKey(path), append(hdr, encodeValues(values)...))
	if err := s.db.Write(b, nil); err != nil {
		return fmt.Errorf("kvstore: dataset %q: %w", path, err)
	}
	return nil
}

func (s *Store) ReadMetadata(group string) ([]uint64, []string, error) {
	if _, err := s.get(groupKey(group)); err != nil {
		return nil, nil, fmt.Errorf("kvstore: group %q: %w", group, err)
	}
	var ids []uint64
	var idents []string
	v, err := s.get(attrKey(group, storage.ExperimentIDsAttr))
	switch {
	case err == nil:
		if ids, err = decodeUint64s(v); err != nil {
			return nil, nil, fmt.Errorf("kvstore: attribute %q: %w", storage.ExperimentIDsAttr, err)
		}
	case !errors.Is(err, storage.ErrNotFound):
		return nil, nil, err
	}
	v, err = s.get(attrKey(group, storage.IdentifiersAttr))
	switch {
	case err == nil:
		if idents, err = decodeStrings(v); err != nil {
			return nil, nil, fmt.Errorf("kvstore: attribute %q: %w", storage.IdentifiersAttr, err)
		}
	case !errors.Is(err, storage.ErrNotFound):
		return nil, nil, err
	}
	return ids, idents, nil
}

func (s *Store) WriteMetadata(group string, ids []uint64, identifiers []string) error {
	b := new(leveldb.Batch)
	if err := s.ensureGroup(b, group); err != nil {
		return err
	}
	b.Put(attrKey(group, storage.ExperimentIDsAttr), encodeUint64s(ids))
	b.Put(attrKey(group, storage.IdentifiersAttr), encodeStrings(identifiers))
	return s.db.Write(b, nil)
}

func (s *Store) EnsureGroup(group string) error {
	b := new(leveldb.Batch)
	if err := s.ensureGroup(b, group); err != nil {
		return err
	}
	if b.Len() == 0 {
		return nil
	}
	return s.db.Write(b, nil)
}

// ensureGroup adds markers for the group and any missing parents to b.
func (s *Store) ensureGroup(b *leveldb.Batch, group string) error {
	cur := "/"
	for _, el := range storage.Split(group) {
		cur = storage.Join(cur, el)
		if _, err := s.get(datasetKey(cur)); err == nil {
			return fmt.Errorf("kvstore: group %q: a dataset of that name exists", cur)
		}
		_, err := s.get(groupKey(cur))
		if err == nil {
			continue
		}
		if !errors.Is(err, storage.ErrNotFound) {
			return err
		}
		b.Put(groupKey(cur), encodeStrings(nil))
	}
	return nil
}
