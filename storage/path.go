// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package storage

import (
	"path"
	"strings"
)

// Clean returns the canonical absolute form of a group or dataset path,
// e.g., "dials//processing/" becomes "/dials/processing".
func Clean(p string) string {
	return path.Clean("/" + p)
}

// Join returns the path of the given name within the given group.
func Join(group, name string) string {
	return Clean(group + "/" + name)
}

// Leaf returns the last element of the given path, which is the
// column name for a dataset path.
func Leaf(p string) string {
	p = strings.TrimRight(p, "/")
	if i := strings.LastIndexByte(p, '/'); i >= 0 {
		return p[i+1:]
	}
	return p
}

// Split returns the elements of the given path, without empty elements.
// The root path returns nil.
func Split(p string) []string {
	var parts []string
	for _, s := range strings.Split(p, "/") {
		if s != "" && s != "." {
			parts = append(parts, s)
		}
	}
	return parts
}

// Parent returns the group containing the given path.
func Parent(p string) string {
	return path.Dir(Clean(p))
}
