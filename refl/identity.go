// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package refl

import (
	"slices"

	"github.com/google/uuid"
)

// Identity holds the experiment metadata of a table: parallel lists of
// numeric experiment ids and unique string identifiers, and the counter
// from which new experiment ids are allocated.
// The two lists are expected to have the same length, but this is
// only checked with a warning on write.
type Identity struct {
	ids         []uint64
	identifiers []string

	// nextID is the next experiment id to allocate.
	nextID uint64
}

// GenerateNewAttributes allocates a new experiment id from the counter,
// along with a new random identifier, appends both to the metadata,
// and returns them. Successive calls return strictly increasing ids.
func (id *Identity) GenerateNewAttributes() (uint64, string) {
	eid := id.nextID
	id.nextID++
	ident := uuid.NewString()
	id.ids = append(id.ids, eid)
	id.identifiers = append(id.identifiers, ident)
	return eid, ident
}

// ExperimentIDs returns a copy of the experiment ids.
func (id *Identity) ExperimentIDs() []uint64 { return slices.Clone(id.ids) }

// Identifiers returns a copy of the identifiers.
func (id *Identity) Identifiers() []string { return slices.Clone(id.identifiers) }

// SetExperimentIDs replaces the experiment ids with a copy of the given ids.
// The id counter is not changed, so ids generated afterwards may
// collide with ids set here.
func (id *Identity) SetExperimentIDs(ids []uint64) { id.ids = slices.Clone(ids) }

// SetIdentifiers replaces the identifiers with a copy of the given list.
func (id *Identity) SetIdentifiers(identifiers []string) {
	id.identifiers = slices.Clone(identifiers)
}

// NextID returns the experiment id that the next call to
// [Identity.GenerateNewAttributes] will allocate.
func (id *Identity) NextID() uint64 { return id.nextID }

// clone returns a copy with its own lists and the same counter.
func (id *Identity) clone() Identity {
	return Identity{ids: slices.Clone(id.ids), identifiers: slices.Clone(id.identifiers), nextID: id.nextID}
}

// resetCounter sets the counter past the largest current id.
func (id *Identity) resetCounter() {
	if len(id.ids) == 0 {
		return
	}
	id.nextID = slices.Max(id.ids) + 1
}
