// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command dx2refl inspects, filters, converts and generates
// reflection table files.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"cogentcore.org/dx2/config"
	"cogentcore.org/dx2/store"
	"github.com/lmittmann/tint"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

// flags are the global flags, which override the config file.
type flags struct {
	config   string
	group    string
	backend  store.Format
	logLevel string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "dx2refl: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var f flags
	cfg := config.Default()
	root := &cobra.Command{
		Use:           "dx2refl",
		Short:         "Inspect and process reflection table files",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			c, err := loadConfig(cmd, &f)
			if err != nil {
				return err
			}
			*cfg = *c
			setupLogging(cfg.LogLevel)
			return nil
		},
	}
	pf := root.PersistentFlags()
	pf.StringVar(&f.config, "config", "", "config file (default "+config.DefaultFile+" if it exists)")
	pf.StringVarP(&f.group, "group", "g", "", "group holding the table within files")
	pf.Var(&f.backend, "backend", "file format: auto, hdf5 or leveldb")
	pf.StringVar(&f.logLevel, "log-level", "", "log level: debug, info, warn or error")

	root.AddCommand(newInfoCmd(cfg), newSelectCmd(cfg), newConvertCmd(cfg), newGenCmd(cfg))
	return root
}

// loadConfig returns the configuration from the config file,
// with any flags that were set applied on top.
func loadConfig(cmd *cobra.Command, f *flags) (*config.Config, error) {
	var c *config.Config
	var err error
	if f.config != "" {
		c, err = config.Open(f.config)
	} else {
		c, err = config.OpenDefault()
	}
	if err != nil {
		return nil, err
	}
	pf := cmd.Flags()
	if pf.Changed("group") {
		c.Group = f.group
	}
	if pf.Changed("backend") {
		c.Backend = f.backend
	}
	if pf.Changed("log-level") {
		if err := c.LogLevel.UnmarshalText([]byte(f.logLevel)); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func setupLogging(level slog.Level) {
	slog.SetDefault(slog.New(tint.NewHandler(colorable.NewColorable(os.Stderr), &tint.Options{
		Level:      level,
		TimeFormat: "15:04:05.000",
		NoColor:    !isatty.IsTerminal(os.Stderr.Fd()),
	})))
}
