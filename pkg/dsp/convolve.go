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

package dsp

import (
	"gonum.org/v1/gonum/floats"
)

// Convolve returns the full linear convolution of a and b, of length
// len(a)+len(b)-1. Either input empty yields nil.
func Convolve(a, b []float64) []float64 {
	if len(a) == 0 || len(b) == 0 {
		return nil
	}
	if len(a) < len(b) {
		a, b = b, a
	}
	out := make([]float64, len(a)+len(b)-1)
	for j, bj := range b {
		if bj == 0 {
			continue
		}
		floats.AddScaled(out[j:j+len(a)], bj, a)
	}
	return out
}

// Trapezoid integrates uniformly spaced samples y with spacing dx.
func Trapezoid(y []float64, dx float64) float64 {
	n := len(y)
	if n < 2 {
		return 0
	}
	return (floats.Sum(y) - 0.5*(y[0]+y[n-1])) * dx
}
