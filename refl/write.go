// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package refl

import (
	"fmt"
	"log/slog"

	"cogentcore.org/dx2/storage"
)

// Write writes the experiment metadata and all columns of the table to
// the given group of the storage, creating the group if needed.
// Empty metadata is an error wrapping [ErrEmptyMetadata], and nothing
// is written. Columns that cannot be written are skipped with a warning,
// so a nil error does not mean every column was written.
func (dt *Table) Write(st storage.Storage, group string) error {
	if len(dt.ids) == 0 || len(dt.identifiers) == 0 {
		return fmt.Errorf("refl.Write group %q: %w", group, ErrEmptyMetadata)
	}
	if err := st.EnsureGroup(group); err != nil {
		return fmt.Errorf("refl.Write group %q: %w", group, err)
	}
	if err := st.WriteMetadata(group, dt.ids, dt.identifiers); err != nil {
		return fmt.Errorf("refl.Write group %q: %w", group, err)
	}
	if len(dt.ids) != len(dt.identifiers) {
		slog.Warn("refl.Write: number of experiment ids and identifiers differ", "ids", len(dt.ids), "identifiers", len(dt.identifiers))
	}
	if !dt.HasColumn("id") {
		slog.Warn("refl.Write: table has no id column", "group", group)
	}
	for pair := dt.columns.Oldest(); pair != nil; pair = pair.Next() {
		c := pair.Value
		h, err := handlerFor(c.Kind())
		if err == nil {
			err = h.write(st, group, c)
		}
		if err != nil {
			slog.Warn("refl.Write: skipping column", "column", pair.Key, "err", err)
			continue
		}
		slog.Debug("refl.Write: wrote column", "column", c.String())
	}
	return nil
}
