// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package memfs provides an in-memory hierarchical store of groups and
// array datasets, with attributes on groups, that implements
// [storage.Storage]. It has the same layout as a reflection file,
// and is useful for tests and for staging tables without a file.
package memfs

import (
	"errors"
	"fmt"
	"io/fs"
	"slices"
	"time"

	"cogentcore.org/dx2/dtype"
	"cogentcore.org/dx2/storage"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Node is the element type for the store, which can represent either
// an array dataset as a "file" equivalent, or a group "directory"
// containing other Nodes, in insertion order, and attributes.
type Node struct {
	// Parent is the parent group.
	Parent *Node

	// name is the name of this node.  it is not a path.
	name string

	// modTime tracks time added to the group.
	modTime time.Time

	// values is the flat []T slice of a dataset.
	values any

	// shape is the shape of a dataset.
	shape []int

	// nodes has the child nodes of a group, nil for a dataset.
	nodes *orderedmap.OrderedMap[string, *Node]

	// attrs are the group attributes.
	attrs map[string]any
}

// NewGroup returns a new root group with the given name.
func NewGroup(name string) *Node {
	return &Node{name: name, modTime: time.Now(), nodes: orderedmap.New[string, *Node]()}
}

// newNode returns a new Node in the given group, which can be nil.
// If a node already exists in dir with that name, that node is returned
// with an [fs.ErrExist] error, and the caller can decide how to proceed.
func newNode(dir *Node, name string) (*Node, error) {
	if dir == nil {
		return &Node{name: name, modTime: time.Now()}, nil
	}
	if err := dir.mustGroup("newNode", name); err != nil {
		return nil, err
	}
	if ex, ok := dir.nodes.Get(name); ok {
		return ex, fs.ErrExist
	}
	nd := &Node{Parent: dir, name: name, modTime: time.Now()}
	dir.nodes.Set(name, nd)
	return nd, nil
}

// Name returns the name of the node, which is not a path.
func (nd *Node) Name() string { return nd.name }

// ModTime returns the time the node was added or last written.
func (nd *Node) ModTime() time.Time { return nd.modTime }

// IsGroup returns true if the node is a group.
func (nd *Node) IsGroup() bool { return nd.nodes != nil }

// Shape returns a copy of the dataset shape.
func (nd *Node) Shape() []int { return slices.Clone(nd.shape) }

// Kind returns the element type of a dataset, [dtype.Invalid] for a group.
func (nd *Node) Kind() dtype.Kind {
	k, _ := dtype.KindOfValues(nd.values)
	return k
}

// Path returns the full absolute path of the node from the root.
func (nd *Node) Path() string {
	if nd.Parent == nil {
		return "/"
	}
	return storage.Join(nd.Parent.Path(), nd.name)
}

func (nd *Node) mustGroup(op, path string) error {
	if !nd.IsGroup() {
		return &fs.PathError{Op: op, Path: path, Err: errors.New(nd.name + " is not a group")}
	}
	return nil
}

// Nodes returns the child nodes of a group, in insertion order.
func (dir *Node) Nodes() []*Node {
	if !dir.IsGroup() {
		return nil
	}
	nodes := make([]*Node, 0, dir.nodes.Len())
	for pair := dir.nodes.Oldest(); pair != nil; pair = pair.Next() {
		nodes = append(nodes, pair.Value)
	}
	return nodes
}

// Node returns the child node of the given name, or nil.
func (dir *Node) Node(name string) *Node {
	if !dir.IsGroup() {
		return nil
	}
	nd, _ := dir.nodes.Get(name)
	return nd
}

// NodeAtPath returns the node at the given path relative to this group.
// Leading slashes are ignored, so absolute paths are relative to dir.
func (dir *Node) NodeAtPath(path string) (*Node, error) {
	cur := dir
	for _, el := range storage.Split(path) {
		if err := cur.mustGroup("NodeAtPath", path); err != nil {
			return nil, err
		}
		nd, ok := cur.nodes.Get(el)
		if !ok {
			return nil, &fs.PathError{Op: "NodeAtPath", Path: path, Err: storage.ErrNotFound}
		}
		cur = nd
	}
	return cur, nil
}

// Mkdir creates a child group with the given name, returning the existing
// group with an [fs.ErrExist] error if it already exists.
func (dir *Node) Mkdir(name string) (*Node, error) {
	nd, err := newNode(dir, name)
	if err != nil {
		if errors.Is(err, fs.ErrExist) && !nd.IsGroup() {
			return nil, &fs.PathError{Op: "Mkdir", Path: name, Err: errors.New("a dataset of that name exists")}
		}
		return nd, err
	}
	nd.nodes = orderedmap.New[string, *Node]()
	return nd, nil
}

// MkdirAll returns the group at the given path relative to dir,
// creating it and any missing parents.
func (dir *Node) MkdirAll(path string) (*Node, error) {
	cur := dir
	for _, el := range storage.Split(path) {
		nd, err := cur.Mkdir(el)
		if err != nil && !errors.Is(err, fs.ErrExist) {
			return nil, err
		}
		cur = nd
	}
	return cur, nil
}

// SetValues creates or replaces the dataset of the given name in this
// group, taking ownership of the given []T values with the given shape.
func (dir *Node) SetValues(name string, values any, shape []int) (*Node, error) {
	if _, ok := dtype.KindOfValues(values); !ok {
		return nil, fmt.Errorf("memfs: dataset %q: %w: %T", name, dtype.ErrUnsupportedType, values)
	}
	if err := storage.CheckShape(dtype.ValuesLen(values), shape); err != nil {
		return nil, fmt.Errorf("memfs: dataset %q: %w", name, err)
	}
	nd, err := newNode(dir, name)
	if err != nil && !errors.Is(err, fs.ErrExist) {
		return nil, err
	}
	if nd.IsGroup() {
		return nil, &fs.PathError{Op: "SetValues", Path: name, Err: errors.New("a group of that name exists")}
	}
	nd.values = values
	nd.shape = slices.Clone(shape)
	nd.modTime = time.Now()
	return nd, nil
}

// SetAttr sets the attribute of the given name on a group.
func (dir *Node) SetAttr(name string, value any) error {
	if err := dir.mustGroup("SetAttr", name); err != nil {
		return err
	}
	if dir.attrs == nil {
		dir.attrs = make(map[string]any)
	}
	dir.attrs[name] = value
	return nil
}

// Attr returns the attribute of the given name, and false if not set.
func (dir *Node) Attr(name string) (any, bool) {
	v, ok := dir.attrs[name]
	return v, ok
}

// Delete removes the child node with the given name,
// returning false if it does not exist.
func (dir *Node) Delete(name string) bool {
	if !dir.IsGroup() {
		return false
	}
	_, ok := dir.nodes.Delete(name)
	return ok
}

// Clone returns a deep copy of this node, recursively cloning
// groups, datasets and attributes. The clone has no parent.
func (nd *Node) Clone() *Node {
	cp := &Node{name: nd.name, modTime: nd.modTime, shape: slices.Clone(nd.shape)}
	if nd.values != nil {
		cp.values, _ = dtype.CloneValues(nd.values)
	}
	if len(nd.attrs) > 0 {
		cp.attrs = make(map[string]any, len(nd.attrs))
		for k, v := range nd.attrs {
			cp.attrs[k] = cloneAttr(v)
		}
	}
	if nd.IsGroup() {
		cp.nodes = orderedmap.New[string, *Node]()
		for _, it := range nd.Nodes() {
			c := it.Clone()
			c.Parent = cp
			cp.nodes.Set(c.name, c)
		}
	}
	return cp
}

func cloneAttr(v any) any {
	switch x := v.(type) {
	case []string:
		return slices.Clone(x)
	case []uint64:
		return slices.Clone(x)
	}
	if cv, ok := dtype.CloneValues(v); ok {
		return cv
	}
	return v
}
