// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"cogentcore.org/dx2/base/errors"
	"cogentcore.org/dx2/config"
	"cogentcore.org/dx2/dtype"
	"cogentcore.org/dx2/kvstore"
	"cogentcore.org/dx2/refl"
	"cogentcore.org/dx2/store"
	"cogentcore.org/dx2/synth"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

func newInfoCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "info <file>",
		Short: "Print the columns and experiments of a reflection table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return info(cmd.OutOrStdout(), cfg, args[0])
		},
	}
}

func info(w io.Writer, cfg *config.Config, path string) error {
	st, err := store.Open(path, cfg.Backend)
	if err != nil {
		return err
	}
	defer func() { errors.Log(st.Close()) }()
	dt, err := refl.Load(st, cfg.Group)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "%s: %s rows, %d columns, %s in memory\n", path,
		humanize.Comma(int64(dt.NumRows())), dt.NumColumns(), humanize.IBytes(uint64(dt.Sizeof())))
	if kv, ok := st.(*kvstore.Store); ok {
		if sz, err := kv.SizeOf(cfg.Group); err == nil {
			fmt.Fprintf(w, "on disk: %s\n", humanize.IBytes(uint64(sz)))
		}
	} else if fi, err := os.Stat(path); err == nil {
		fmt.Fprintf(w, "on disk: %s\n", humanize.IBytes(uint64(fi.Size())))
	}
	ids, idents := dt.ExperimentIDs(), dt.Identifiers()
	for i, id := range ids {
		ident := ""
		if i < len(idents) {
			ident = idents[i]
		}
		fmt.Fprintf(w, "experiment %d: %s\n", id, ident)
	}
	for _, c := range dt.Columns() {
		fmt.Fprintf(w, "  %-32s %-8v %-12v %s\n", c.Name(), c.Kind(), c.Shape(), humanize.IBytes(uint64(c.Sizeof())))
	}
	return nil
}

// rangeOptions select rows where one component of a column
// is within a range.
type rangeOptions struct {
	column    string
	component int
	min, max  float64
}

// rangeMask returns the mask of rows in the range, dispatching
// on the element type of the column.
func rangeMask(dt *refl.Table, o *rangeOptions) ([]bool, error) {
	k, err := dt.ColumnKind(o.column)
	if err != nil {
		return nil, err
	}
	switch k {
	case dtype.Int32:
		return inRange[int32](dt, o)
	case dtype.Int64:
		return inRange[int64](dt, o)
	case dtype.Uint32:
		return inRange[uint32](dt, o)
	case dtype.Uint64:
		return inRange[uint64](dt, o)
	case dtype.Float32:
		return inRange[float32](dt, o)
	case dtype.Float64:
		return inRange[float64](dt, o)
	}
	return nil, k.Validate()
}

func inRange[T dtype.Number](dt *refl.Table, o *rangeOptions) ([]bool, error) {
	var cerr error
	mask, err := refl.Mask(dt, o.column, func(row []T) bool {
		if o.component >= len(row) {
			cerr = fmt.Errorf("column %q has %d components, not %d", o.column, len(row), o.component+1)
			return false
		}
		v := float64(row[o.component])
		return v >= o.min && v <= o.max
	})
	if err == nil {
		err = cerr
	}
	return mask, err
}

func newSelectCmd(cfg *config.Config) *cobra.Command {
	o := &rangeOptions{}
	cmd := &cobra.Command{
		Use:   "select <in> <out>",
		Short: "Write the rows where a column component is within a range",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			dt, err := store.LoadTable(args[0], cfg.Group, cfg.Backend)
			if err != nil {
				return err
			}
			mask, err := rangeMask(dt, o)
			if err != nil {
				return err
			}
			sel, err := dt.SelectMask(mask)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "selected %s of %s rows\n", humanize.Comma(int64(sel.NumRows())), humanize.Comma(int64(dt.NumRows())))
			return write(cfg, sel, args[1])
		},
	}
	fs := cmd.Flags()
	fs.StringVarP(&o.column, "column", "c", "xyzobs.px.value", "column to select on")
	fs.IntVar(&o.component, "component", 0, "component of the column")
	fs.Float64Var(&o.min, "min", -1e300, "minimum value, inclusive")
	fs.Float64Var(&o.max, "max", 1e300, "maximum value, inclusive")
	return cmd
}

func write(cfg *config.Config, dt *refl.Table, path string) error {
	return store.WriteTable(dt, path, cfg.Group, cfg.StoreOptions())
}

func newConvertCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "convert <in> <out>",
		Short: "Copy a reflection table to another file, which can be of another format",
		Long: "Copy a reflection table to another file. The output format is set by --backend, " +
			"or by the extension of the output: " + strings.Join([]string{".refl", ".h5", ".hdf5", ".nxs"}, ", ") +
			" for HDF5, and LevelDB otherwise.",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			dt, err := store.LoadTable(args[0], cfg.Group, store.Auto)
			if err != nil {
				return err
			}
			return write(cfg, dt, args[1])
		},
	}
}

func newGenCmd(cfg *config.Config) *cobra.Command {
	o := synth.Defaults()
	cmd := &cobra.Command{
		Use:   "gen <out>",
		Short: "Write a synthetic reflection table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dt, err := synth.Generate(o)
			if err != nil {
				return err
			}
			return write(cfg, dt, args[0])
		},
	}
	fs := cmd.Flags()
	fs.IntVarP(&o.Rows, "rows", "n", o.Rows, "number of reflections")
	fs.IntVar(&o.Experiments, "experiments", o.Experiments, "number of experiments")
	fs.Float64Var(&o.Images, "images", o.Images, "number of images in the scan")
	fs.Float64Var(&o.MeanIntensity, "intensity", o.MeanIntensity, "mean intensity")
	fs.Uint64Var(&o.Seed, "seed", o.Seed, "random seed")
	return cmd
}
