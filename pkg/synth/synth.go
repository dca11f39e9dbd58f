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

// Package synth turns an evolutionary power spectrum into one acceleration
// time history by spectral representation with random phases.
package synth

import (
	"math"
	"math/rand/v2"

	"github.com/cardinalhq/tremor/pkg/spectrum"
)

// Phasors are advanced by complex rotation and recomputed exactly this
// often to keep rounding drift bounded.
const reanchorInterval = 512

// Phases draws one uniform phase in [0, 2π) per frequency bin, in
// frequency order.
func Phases(n int, r *rand.Rand) []float64 {
	phases := make([]float64, n)
	for j := range phases {
		phases[j] = 2 * math.Pi * r.Float64()
	}
	return phases
}

// TimeHistory returns
//
//	a(t_i) = 2·sqrt(Δf)·Σ_j sqrt(S(t_i, f_j))·cos(2π f_j t_i + φ_j)
//
// with t_i in seconds and the phases drawn from r before any summation.
// The spectrum is only read.
func TimeHistory(s *spectrum.Spectrum, r *rand.Rand) []float64 {
	phases := Phases(s.NumFreqs(), r)
	return withPhases(s, phases)
}

func withPhases(s *spectrum.Spectrum, phases []float64) []float64 {
	nt, nf := s.NumTimes(), s.NumFreqs()
	dt := s.TimeStep()
	freqs := s.Frequencies()
	scale := 2 * math.Sqrt(s.FreqStep())

	re := make([]float64, nf)
	im := make([]float64, nf)
	stepRe := make([]float64, nf)
	stepIm := make([]float64, nf)
	for j, f := range freqs {
		stepIm[j], stepRe[j] = math.Sincos(2 * math.Pi * f * dt)
	}

	amp := make([]float64, nf)
	out := make([]float64, nt)
	for i := range nt {
		if i%reanchorInterval == 0 {
			t := float64(i) * dt
			for j, f := range freqs {
				im[j], re[j] = math.Sincos(2*math.Pi*f*t + phases[j])
			}
		}

		amp = s.RowTo(amp, i)
		var sum float64
		for j := range nf {
			sum += math.Sqrt(amp[j]) * re[j]
		}
		out[i] = scale * sum

		for j := range nf {
			re[j], im[j] = re[j]*stepRe[j]-im[j]*stepIm[j], re[j]*stepIm[j]+im[j]*stepRe[j]
		}
	}
	return out
}
