// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package refl

import (
	"fmt"
	"log/slog"
	"time"

	"cogentcore.org/dx2/base/errors"
	"cogentcore.org/dx2/column"
	"cogentcore.org/dx2/storage"
)

// Load returns a new table with a column for each dataset in the given
// group of the storage, and the experiment metadata of the group.
// A missing group results in an empty table, with a warning.
// Datasets of unsupported types, or that cannot be read, are skipped
// with a warning. No new experiment ids are generated: the id counter
// is set past the largest loaded id.
func Load(st storage.Storage, group string) (*Table, error) {
	start := time.Now()
	dt := newTable()
	paths, err := st.Datasets(group)
	if errors.Is(err, storage.ErrNotFound) {
		slog.Warn("refl.Load: missing group, returning empty table", "group", group)
		return dt, nil
	}
	if err != nil {
		return nil, fmt.Errorf("refl.Load group %q: %w", group, err)
	}

	ids, idents, err := st.ReadMetadata(group)
	if err != nil {
		slog.Warn("refl.Load: unable to read experiment metadata", "group", group, "err", err)
	}
	dt.ids = ids
	dt.identifiers = idents
	dt.resetCounter()

	nrows := -1
	for _, path := range paths {
		c, err := loadDataset(st, path)
		if err != nil {
			slog.Warn("refl.Load: skipping dataset", "dataset", path, "err", err)
			continue
		}
		if nrows < 0 {
			nrows = c.NumRows()
		} else if c.NumRows() != nrows {
			slog.Warn("refl.Load: column row count differs from table", "column", c.Name(), "rows", c.NumRows(), "tableRows", nrows)
		}
		dt.columns.Set(c.Name(), c)
		slog.Debug("refl.Load: loaded column", "column", c.String())
	}
	slog.Debug("refl.Load", "group", group, "columns", dt.NumColumns(), "rows", dt.NumRows(), "time", time.Since(start))
	return dt, nil
}

func loadDataset(st storage.Storage, path string) (column.Column, error) {
	k, err := st.DatasetKind(path)
	if err != nil {
		return nil, err
	}
	h, err := handlerFor(k)
	if err != nil {
		return nil, err
	}
	return h.load(st, path)
}
