// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package synth

import (
	"math"
	"math/rand/v2"
)

// Rand is the subset of [rand.Rand] methods used for generation,
// so that a deterministic source can be supplied.
type Rand interface {
	// Float64 returns a number in the half-open interval [0.0,1.0).
	Float64() float64

	// NormFloat64 returns a standard normally distributed float64.
	NormFloat64() float64

	// ExpFloat64 returns an exponentially distributed float64
	// with rate parameter 1.
	ExpFloat64() float64

	// IntN returns a number in the half-open interval [0,n).
	IntN(n int) int
}

// NewRand returns a new deterministic random source with the given seed.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// PoissonGen returns a Poisson distributed count with the given mean.
func PoissonGen(lambda float64, rnd Rand) float64 {
	// NUMERICAL RECIPES IN C, p. 294, for small means.
	if lambda < 10.0 {
		var em float64
		t := 0.0
		for {
			t += rnd.ExpFloat64()
			if t >= lambda {
				break
			}
			em++
		}
		return em
	}
	// W. Hörmann, "The transformed rejection method for generating
	// Poisson random variables", Insurance: Mathematics and
	// Economics 12.1 (1993): 39-45.
	b := 0.931 + 2.53*math.Sqrt(lambda)
	a := -0.059 + 0.02483*b
	invalpha := 1.1239 + 1.1328/(b-3.4)
	vr := 0.9277 - 3.6224/(b-2)
	for {
		U := rnd.Float64() - 0.5
		V := rnd.Float64()
		us := 0.5 - math.Abs(U)
		k := math.Floor((2*a/us+b)*U + lambda + 0.43)
		if us >= 0.07 && V <= vr {
			return k
		}
		if k <= 0 || (us < 0.013 && V > us) {
			continue
		}
		lg, _ := math.Lgamma(k + 1)
		if math.Log(V*invalpha/(a/(us*us)+b)) <= k*math.Log(lambda)-lambda-lg {
			return k
		}
	}
}

// GaussianGen returns a normally distributed number with the given
// mean and standard deviation.
func GaussianGen(mean, sigma float64, rnd Rand) float64 {
	return mean + sigma*rnd.NormFloat64()
}
