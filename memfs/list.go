// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package memfs

import (
	"fmt"
	"strings"
)

const (
	// DirOnly lists only the given group.
	DirOnly = false

	// Recursive descends into sub-groups.
	Recursive = true
)

func (nd *Node) String() string {
	if !nd.IsGroup() {
		return fmt.Sprintf("%s [%v %v]", nd.name, nd.Kind(), nd.shape)
	}
	return nd.List(DirOnly)
}

// List returns a listing of the nodes in the given group,
// one per line, with the type and shape of datasets.
func (dir *Node) List(recursive bool) string {
	var b strings.Builder
	dir.list(&b, recursive, 0)
	return b.String()
}

func (dir *Node) list(b *strings.Builder, recursive bool, depth int) {
	for _, it := range dir.Nodes() {
		b.WriteString(strings.Repeat("\t", depth))
		if it.IsGroup() {
			b.WriteString(it.name + "/\n")
			if recursive {
				it.list(b, recursive, depth+1)
			}
			continue
		}
		b.WriteString(it.String() + "\n")
	}
}
