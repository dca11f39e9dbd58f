// Copyright 2025 CardinalHQ, Inc
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package regression holds the fixed regression table of the Vlachos et al.
// (2018) site-specific ground motion model and derives the scenario
// conditioned mean and covariance of its normal-space parameters.
package regression

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/cardinalhq/tremor/pkg/distribution"
)

const (
	NumParameters = 18
	NumCovariates = 7

	// Vs30 upper bounds (m/s) of the soft and medium site classes.
	SoftSiteMaxVs30   = 300.0
	MediumSiteMaxVs30 = 450.0
)

// Normalized holds the scenario descriptors as the regression uses them.
type Normalized struct {
	Magnitude float64 // M / 6
	Distance  float64 // (R + 5) / 30
	Vs30      float64 // Vs30 / 450
}

func Normalize(magnitude, distanceKm, vs30 float64) Normalized {
	return Normalized{
		Magnitude: magnitude / 6.0,
		Distance:  (distanceKm + 5.0) / 30.0,
		Vs30:      vs30 / 450.0,
	}
}

// Covariates returns the conditional-mean design vector
// [1, m, ln r, m ln r, soft ln v, medium ln v, hard ln v]. The site class is
// picked from the raw Vs30.
func Covariates(magnitude, distanceKm, vs30 float64) []float64 {
	n := Normalize(magnitude, distanceKm, vs30)
	var soft, medium, hard float64
	switch {
	case vs30 <= SoftSiteMaxVs30:
		soft = 1
	case vs30 <= MediumSiteMaxVs30:
		medium = 1
	default:
		hard = 1
	}
	lnR := math.Log(n.Distance)
	lnV := math.Log(n.Vs30)
	return []float64{
		1,
		n.Magnitude,
		lnR,
		n.Magnitude * lnR,
		soft * lnV,
		medium * lnV,
		hard * lnV,
	}
}

// ConditionalMean returns covariates · betaᵀ.
func ConditionalMean(magnitude, distanceKm, vs30 float64) []float64 {
	x := mat.NewVecDense(NumCovariates, Covariates(magnitude, distanceKm, vs30))
	var mean mat.VecDense
	mean.MulVec(Beta(), x)
	return mean.RawVector().Data
}

// Covariance returns corr[i][j]·σi·σj with σ the square root of the
// parameter variances.
func Covariance() *mat.SymDense {
	sigma := make([]float64, NumParameters)
	for i, v := range variance {
		sigma[i] = math.Sqrt(v)
	}
	cov := mat.NewSymDense(NumParameters, nil)
	for i := range NumParameters {
		for j := i; j < NumParameters; j++ {
			cov.SetSym(i, j, correlation[i][j]*sigma[i]*sigma[j])
		}
	}
	return cov
}

// Beta returns a copy of the 18×7 coefficient matrix.
func Beta() *mat.Dense {
	b := mat.NewDense(NumParameters, NumCovariates, nil)
	for i, row := range beta {
		b.SetRow(i, row[:])
	}
	return b
}

func Variance() []float64 {
	out := make([]float64, NumParameters)
	copy(out, variance[:])
	return out
}

// Correlation returns a copy of the correlation matrix.
func Correlation() *mat.SymDense {
	c := mat.NewSymDense(NumParameters, nil)
	for i := range NumParameters {
		for j := i; j < NumParameters; j++ {
			c.SetSym(i, j, correlation[i][j])
		}
	}
	return c
}

type marginalSpec struct {
	kind   distribution.Kind
	params []float64
}

// Physical-space marginal of each parameter slot.
var marginalSpecs = [NumParameters]marginalSpec{
	{distribution.KindLogNormal, []float64{-1.735, 0.523}},
	{distribution.KindLogNormal, []float64{1.009, 0.422}},
	{distribution.KindNormal, []float64{0.249, 1.759}},
	{distribution.KindNormal, []float64{0.768, 1.958}},
	{distribution.KindLogNormal, []float64{2.568, 0.557}},
	{distribution.KindNormal, []float64{0.034, 1.471}},
	{distribution.KindNormal, []float64{0.441, 1.733}},
	{distribution.KindLogNormal, []float64{3.356, 0.473}},
	{distribution.KindBeta, []float64{2.516, 9.714}},
	{distribution.KindBeta, []float64{3.582, 15.209}},
	{distribution.KindLogNormal, []float64{0.746, 0.404}},
	{distribution.KindStudentsT, []float64{0.205, 0.232, 7.250}},
	{distribution.KindInverseGaussian, []float64{0.499, 0.213}},
	{distribution.KindLogNormal, []float64{0.702, 0.435}},
	{distribution.KindStudentsT, []float64{0.792, 0.157, 4.223}},
	{distribution.KindInverseGaussian, []float64{0.350, 0.170}},
	{distribution.KindLogNormal, []float64{9.470, 1.317}},
	{distribution.KindLogNormal, []float64{3.658, 0.375}},
}

// Marginals builds the physical-space marginal of every parameter slot.
func Marginals() ([]distribution.Marginal, error) {
	out := make([]distribution.Marginal, NumParameters)
	for i, ms := range marginalSpecs {
		d, err := distribution.New(ms.kind, ms.params...)
		if err != nil {
			return nil, fmt.Errorf("marginal of parameter %d: %w", i, err)
		}
		out[i] = d
	}
	return out, nil
}
