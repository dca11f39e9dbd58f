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
	"math"
	"slices"
)

// ImpulseLength is the number of impulse response samples kept for a
// high-pass filter of the given order and corner (Hz) at sample spacing dt.
func ImpulseLength(order int, cornerHz, dt float64) int {
	seconds := math.Round(1.5 * float64(order) / (2 * cornerHz))
	return int(math.Round(seconds/dt)) + 1
}

// ImpulseResponse runs a unit impulse through the difference equation
// a[0]y[n] = sum b[k]x[n-k] - sum_{k>0} a[k]y[n-k] for n samples.
func ImpulseResponse(b, a []float64, n int) []float64 {
	if n <= 0 || len(a) == 0 || a[0] == 0 {
		return nil
	}
	y := make([]float64, n)
	for i := range n {
		// x is the unit impulse, so only b[i] survives the forward sum
		var acc float64
		if i < len(b) {
			acc = b[i]
		}
		for k := 1; k < len(a) && k <= i; k++ {
			acc -= a[k] * y[i-k]
		}
		y[i] = acc / a[0]
	}
	return y
}

// ZeroPhase returns h convolved with its time reverse. The result is
// symmetric about index len(h)-1 and has the squared magnitude response
// of h with zero phase.
func ZeroPhase(h []float64) []float64 {
	rev := slices.Clone(h)
	slices.Reverse(rev)
	return Convolve(h, rev)
}
