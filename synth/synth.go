// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package synth generates synthetic reflection tables, with plausible
// spot positions, intensities and pixel counts, for demonstrations
// and tests.
package synth

import (
	"fmt"
	"math"

	"cogentcore.org/dx2/refl"
)

// Options are the parameters of a generated table.
type Options struct {
	// Rows is the number of reflections.
	Rows int

	// Experiments is the number of experiments the rows are spread over.
	Experiments int

	// Width and Height are the detector size in pixels.
	Width, Height float64

	// Images is the number of images in the scan, which is the
	// range of the z coordinate.
	Images float64

	// MeanIntensity is the mean summed intensity of a reflection.
	MeanIntensity float64

	// Seed is the random seed.
	Seed uint64
}

// Defaults returns default options.
func Defaults() Options {
	return Options{
		Rows:          1000,
		Experiments:   1,
		Width:         2463,
		Height:        2527,
		Images:        10,
		MeanIntensity: 200,
		Seed:          1,
	}
}

// Generate returns a new table with o.Rows reflections spread evenly
// over o.Experiments experiments, with the columns id, miller_index,
// xyzobs.px.value, intensity.sum.value, intensity.sum.variance,
// num_pixels and flags.
func Generate(o Options) (*refl.Table, error) {
	if o.Rows < 0 || o.Experiments < 1 {
		return nil, fmt.Errorf("synth: invalid rows %d or experiments %d", o.Rows, o.Experiments)
	}
	rnd := NewRand(o.Seed)
	n := o.Rows
	dt := refl.New()
	for range o.Experiments - 1 {
		dt.GenerateNewAttributes()
	}
	eids := dt.ExperimentIDs()

	ids := make([]int32, n)
	hkl := make([]int32, 3*n)
	xyz := make([]float64, 3*n)
	isum := make([]float64, n)
	ivar := make([]float64, n)
	npix := make([]int32, n)
	flags := make([]uint64, n)
	for i := range n {
		ids[i] = int32(eids[i*len(eids)/max(n, 1)])
		for c := range 3 {
			hkl[3*i+c] = int32(rnd.IntN(41) - 20)
		}
		xyz[3*i] = rnd.Float64() * o.Width
		xyz[3*i+1] = rnd.Float64() * o.Height
		xyz[3*i+2] = rnd.Float64() * o.Images
		counts := PoissonGen(o.MeanIntensity, rnd)
		isum[i] = counts
		ivar[i] = math.Max(counts, 1)
		npix[i] = int32(max(1, math.Round(GaussianGen(9, 3, rnd))))
		if counts > 0 {
			flags[i] = 1 << 5
		}
	}
	for _, err := range []error{
		refl.AddColumn(dt, "id", ids),
		refl.AddColumn(dt, "miller_index", hkl, n, 3),
		refl.AddColumn(dt, "xyzobs.px.value", xyz, n, 3),
		refl.AddColumn(dt, "intensity.sum.value", isum),
		refl.AddColumn(dt, "intensity.sum.variance", ivar),
		refl.AddColumn(dt, "num_pixels", npix),
		refl.AddColumn(dt, "flags", flags),
	} {
		if err != nil {
			return nil, err
		}
	}
	return dt, nil
}
