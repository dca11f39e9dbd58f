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

package distribution

import (
	"math"
)

const maxQuantileIterations = 200

// InverseGaussian is the Wald distribution with the given mean and shape λ.
type InverseGaussian struct {
	Mean  float64
	Shape float64
}

func NewInverseGaussian(mean, shape float64) (InverseGaussian, error) {
	if err := positive("mean", mean); err != nil {
		return InverseGaussian{}, err
	}
	if err := positive("shape", shape); err != nil {
		return InverseGaussian{}, err
	}
	return InverseGaussian{Mean: mean, Shape: shape}, nil
}

func (d InverseGaussian) Kind() Kind        { return KindInverseGaussian }
func (d InverseGaussian) Params() []float64 { return []float64{d.Mean, d.Shape} }
func (InverseGaussian) marginal()           {}

func stdNormalCDF(z float64) float64 {
	return 0.5 * math.Erfc(-z/math.Sqrt2)
}

func (d InverseGaussian) PDF(x float64) float64 {
	if x <= 0 || math.IsInf(x, 1) {
		return 0
	}
	dev := x - d.Mean
	return math.Sqrt(d.Shape/(2*math.Pi*x*x*x)) * math.Exp(-d.Shape*dev*dev/(2*d.Mean*d.Mean*x))
}

func (d InverseGaussian) CDF(x float64) float64 {
	if math.IsNaN(x) {
		return math.NaN()
	}
	if x <= 0 {
		return 0
	}
	if math.IsInf(x, 1) {
		return 1
	}
	s := math.Sqrt(d.Shape / x)
	p := stdNormalCDF(s * (x/d.Mean - 1))
	// exp(2λ/μ) overflows long before the tail term underflows, so the
	// product is taken in log space.
	if tail := stdNormalCDF(-s * (x/d.Mean + 1)); tail > 0 {
		p += math.Exp(2*d.Shape/d.Mean + math.Log(tail))
	}
	return math.Min(p, 1)
}

// Quantile inverts the CDF with Newton steps kept inside a shrinking
// bisection bracket.
func (d InverseGaussian) Quantile(p float64) float64 {
	switch {
	case math.IsNaN(p) || p < 0 || p > 1:
		return math.NaN()
	case p == 0:
		return 0
	case p == 1:
		return math.Inf(1)
	}

	lo, hi := 0.0, d.Mean
	for d.CDF(hi) < p {
		lo = hi
		hi *= 2
		if math.IsInf(hi, 1) {
			return hi
		}
	}

	x := 0.5 * (lo + hi)
	for range maxQuantileIterations {
		f := d.CDF(x) - p
		if f == 0 {
			return x
		}
		if f < 0 {
			lo = x
		} else {
			hi = x
		}
		next := 0.5 * (lo + hi)
		if pdf := d.PDF(x); pdf > 0 {
			if step := x - f/pdf; step > lo && step < hi {
				next = step
			}
		}
		if math.Abs(next-x) <= 1e-15*math.Max(1, x) {
			return next
		}
		x = next
	}
	return x
}
