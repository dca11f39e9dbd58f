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

package spectrum

import (
	"math"
)

// EnergyAccumulation is the normalized cumulative energy at each
// normalized time, exp(-(t/p0)^-p1) / exp(-(1/p0)^-p1).
func EnergyAccumulation(params [2]float64, times []float64) []float64 {
	p0, p1 := params[0], params[1]
	denom := math.Exp(-math.Pow(1/p0, -p1))
	out := make([]float64, len(times))
	for i, t := range times {
		out[i] = math.Exp(-math.Pow(t/p0, -p1)) / denom
	}
	return out
}

// ModalFrequencies evaluates Q·(0.5+e)^α·(1.5-e)^β for params (α, β, Q).
func ModalFrequencies(params [3]float64, energy []float64) []float64 {
	alpha, beta, q := params[0], params[1], params[2]
	out := make([]float64, len(energy))
	for i, e := range energy {
		out[i] = q * math.Pow(0.5+e, alpha) * math.Pow(1.5-e, beta)
	}
	return out
}

// ModalParticipationExponent is log10 of the participation factor: two
// Gaussian bumps in energy, offset by -2.
func ModalParticipationExponent(params [6]float64, energy []float64) []float64 {
	out := make([]float64, len(energy))
	for i, e := range energy {
		a := (e - params[1]) / params[2]
		b := (e - params[4]) / params[5]
		out[i] = params[0]*math.Exp(-a*a) + params[3]*math.Exp(-b*b) - 2
	}
	return out
}

func ModalParticipationFactor(params [6]float64, energy []float64) []float64 {
	out := ModalParticipationExponent(params, energy)
	for i, x := range out {
		out[i] = math.Pow(10, x)
	}
	return out
}

// AmplitudeModulation is the time envelope for strong motion duration D
// and total energy E, with params the energy accumulation parameters.
// It is NaN at t = 0.
func AmplitudeModulation(duration, totalEnergy float64, params [2]float64, times []float64) []float64 {
	p0, p1 := params[0], params[1]
	scale := totalEnergy * p1 / (p0 * duration)
	offset := math.Pow(1/p0, -p1)
	out := make([]float64, len(times))
	for i, t := range times {
		x := t / p0
		out[i] = scale * math.Exp(offset-math.Pow(x, -p1)) * math.Pow(x, -1-p1)
	}
	return out
}

// HighPassEnergy is the energy transfer r²/(1+r²) of a high-pass filter
// with corner fc, r = f/fc.
func HighPassEnergy(freqs []float64, fc float64) []float64 {
	out := make([]float64, len(freqs))
	for i, f := range freqs {
		r2 := (f / fc) * (f / fc)
		out[i] = r2 / (1 + r2)
	}
	return out
}

// KT2 is the two-mode Kanai-Tajimi power spectrum for params
// (ω1, ζ1, S1, ω2, ζ2, S2), weighted by the high-pass energy hp.
func KT2(params [6]float64, freqs, hp []float64) []float64 {
	out := make([]float64, len(freqs))
	for i, f := range freqs {
		out[i] = (kanaiTajimi(f, params[0], params[1], params[2]) +
			kanaiTajimi(f, params[3], params[4], params[5])) * hp[i]
	}
	return out
}

func kanaiTajimi(f, omega, zeta, scale float64) float64 {
	r2 := (f / omega) * (f / omega)
	damp := 4 * zeta * zeta * r2
	return scale * (1 + damp) / ((1-r2)*(1-r2) + damp)
}
