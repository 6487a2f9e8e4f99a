// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package synth

import (
	"math"
	"testing"

	"cogentcore.org/dx2/column"
	"cogentcore.org/dx2/refl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	o := Defaults()
	o.Rows = 100
	o.Experiments = 2
	dt, err := Generate(o)
	require.NoError(t, err)
	assert.Equal(t, 100, dt.NumRows())
	assert.Equal(t, 7, dt.NumColumns())
	assert.Equal(t, []uint64{0, 1}, dt.ExperimentIDs())

	ids, ok := refl.Column[int32](dt, "id")
	require.True(t, ok)
	assert.Equal(t, int32(0), ids.Data[0])
	assert.Equal(t, int32(1), ids.Data[99])

	xyz, ok := refl.Column[float64](dt, "xyzobs.px.value")
	require.True(t, ok)
	assert.Equal(t, column.Shape{100, 3}, xyz.Shape())
	for i := range xyz.NumRows() {
		assert.Less(t, xyz.At(i, 2), o.Images)
	}

	again, err := Generate(o)
	require.NoError(t, err)
	x2, _ := refl.Column[float64](again, "xyzobs.px.value")
	assert.Equal(t, xyz.Data, x2.Data)

	_, err = Generate(Options{Rows: 1})
	assert.Error(t, err)

	empty, err := Generate(Options{Experiments: 1})
	require.NoError(t, err)
	assert.Equal(t, 0, empty.NumRows())
}

func TestPoisson(t *testing.T) {
	rnd := NewRand(3)
	for _, lambda := range []float64{2, 50} {
		n := 20000
		sum, sumsq := 0.0, 0.0
		for range n {
			v := PoissonGen(lambda, rnd)
			sum += v
			sumsq += v * v
		}
		mean := sum / float64(n)
		vr := sumsq/float64(n) - mean*mean
		assert.InDelta(t, lambda, mean, 0.05*lambda)
		assert.InDelta(t, lambda, vr, 0.1*lambda)
	}
	assert.InDelta(t, 5.0, GaussianGen(5, 0, rnd), 1e-12)
	assert.False(t, math.IsNaN(GaussianGen(0, 1, rnd)))
}
