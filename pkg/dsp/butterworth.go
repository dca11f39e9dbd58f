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

// Package dsp has the small set of signal processing helpers the ground
// motion pipeline needs: Butterworth high-pass design, impulse responses,
// linear convolution and trapezoidal integration.
package dsp

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/cardinalhq/tremor/pkg/brokenwing"
)

const (
	MinFilterOrder = 1
	MaxFilterOrder = 12
)

// HighPassButterworth designs a digital Butterworth high-pass filter by
// bilinear transform of the analog prototype. wn is the corner frequency
// normalized to Nyquist, so 0 < wn < 1. The returned coefficients follow
// the transfer function B(z)/A(z) with a[0] == 1.
func HighPassButterworth(order int, wn float64) (b, a []float64, err error) {
	if order < MinFilterOrder || order > MaxFilterOrder {
		return nil, nil, fmt.Errorf("%w: %d not in [%d, %d]",
			brokenwing.ErrInvalidFilterOrder, order, MinFilterOrder, MaxFilterOrder)
	}
	if !(wn > 0 && wn < 1) {
		return nil, nil, fmt.Errorf("%w: normalized corner %v not in (0, 1)",
			brokenwing.ErrFilterDesignFailure, wn)
	}

	// prewarped analog corner for a sample rate of 2
	warped := 4 * math.Tan(math.Pi*wn/2)

	poles := make([]complex128, order)
	zeros := make([]complex128, order)
	n := float64(order)
	for k := 1; k <= order; k++ {
		p := cmplx.Exp(complex(0, math.Pi*(2*float64(k)+n-1)/(2*n)))
		hp := complex(warped, 0) / p
		poles[k-1] = (4 + hp) / (4 - hp)
		zeros[k-1] = 1
	}

	a = polyFromRoots(poles)
	b = polyFromRoots(zeros)

	// unit gain at Nyquist
	num := evalAtNyquist(b)
	den := evalAtNyquist(a)
	if num == 0 || math.IsNaN(den) || math.IsInf(den, 0) {
		return nil, nil, fmt.Errorf("%w: degenerate gain at order %d, wn %v",
			brokenwing.ErrFilterDesignFailure, order, wn)
	}
	gain := math.Abs(den / num)
	for i := range b {
		b[i] *= gain
	}
	return b, a, nil
}

// polyFromRoots expands prod(z - r) into real coefficients, highest power
// first. Roots come in conjugate pairs so the imaginary parts cancel.
func polyFromRoots(roots []complex128) []float64 {
	c := make([]complex128, 1, len(roots)+1)
	c[0] = 1
	for _, r := range roots {
		next := make([]complex128, len(c)+1)
		for i, v := range c {
			next[i] += v
			next[i+1] -= v * r
		}
		c = next
	}
	out := make([]float64, len(c))
	for i, v := range c {
		out[i] = real(v)
	}
	return out
}

func evalAtNyquist(c []float64) float64 {
	sum := 0.0
	sign := 1.0
	for _, v := range c {
		sum += sign * v
		sign = -sign
	}
	return sum
}
