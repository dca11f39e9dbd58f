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

// Package spectrum builds the two-mode evolutionary power spectrum of the
// site-specific ground motion model from identified parameters.
package spectrum

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/cardinalhq/tremor/pkg/brokenwing"
	"github.com/cardinalhq/tremor/pkg/dsp"
	"github.com/cardinalhq/tremor/pkg/identify"
	"github.com/cardinalhq/tremor/pkg/regression"
)

const (
	DefaultTimeStep       = 0.005
	DefaultFreqStep       = 0.2
	DefaultCutoffFreq     = 220.0
	DefaultHighPassCorner = 0.20

	// replaces the zero normalized time, where the energy model is singular
	firstNormalizedTime = 1e-6
)

// Spectrum is an immutable evolutionary power spectral density sampled on
// a time by frequency grid.
type Spectrum struct {
	timeStep         float64
	freqStep         float64
	times            []float64
	freqs            []float64
	logParticipation []float64
	values           *mat.Dense
}

func (s *Spectrum) NumTimes() int      { return len(s.times) }
func (s *Spectrum) NumFreqs() int      { return len(s.freqs) }
func (s *Spectrum) TimeStep() float64  { return s.timeStep }
func (s *Spectrum) FreqStep() float64  { return s.freqStep }
func (s *Spectrum) At(i, j int) float64 { return s.values.At(i, j) }

// Times returns the sample times in seconds.
func (s *Spectrum) Times() []float64 {
	return append([]float64(nil), s.times...)
}

// Frequencies returns the frequency bins in Hz.
func (s *Spectrum) Frequencies() []float64 {
	return append([]float64(nil), s.freqs...)
}

// Row returns a copy of the spectrum at time index i.
func (s *Spectrum) Row(i int) []float64 {
	return mat.Row(nil, i, s.values)
}

// RowTo copies row i into dst, which must hold NumFreqs values, and
// returns it. A nil dst is allocated.
func (s *Spectrum) RowTo(dst []float64, i int) []float64 {
	return mat.Row(dst, i, s.values)
}

// LogParticipation returns log10 of the second mode participation factor
// at each time sample.
func (s *Spectrum) LogParticipation() []float64 {
	return append([]float64(nil), s.logParticipation...)
}

// Synthesizer holds the grid settings for Build. Zero fields take the
// package defaults.
type Synthesizer struct {
	TimeStep       float64
	FreqStep       float64
	CutoffFreq     float64
	HighPassCorner float64
}

func (s Synthesizer) withDefaults() Synthesizer {
	if s.TimeStep <= 0 {
		s.TimeStep = DefaultTimeStep
	}
	if s.FreqStep <= 0 {
		s.FreqStep = DefaultFreqStep
	}
	if s.CutoffFreq <= 0 {
		s.CutoffFreq = DefaultCutoffFreq
	}
	if s.HighPassCorner <= 0 {
		s.HighPassCorner = DefaultHighPassCorner
	}
	return s
}

// Build evaluates the spectrum for one identified parameter vector. Each
// time row is a KT2 shape rescaled so its integral over frequency equals
// the amplitude envelope at that time.
func (s *Synthesizer) Build(p identify.Parameters) (*Spectrum, error) {
	cfg := s.withDefaults()
	v := p.Values
	if len(v) != regression.NumParameters {
		return nil, fmt.Errorf("expected %d parameters, got %d", regression.NumParameters, len(v))
	}

	numTimes := int(math.Ceil(v[17] / cfg.TimeStep))
	numFreqs := int(math.Ceil(cfg.CutoffFreq / cfg.FreqStep))
	if numTimes < 2 || numFreqs < 2 {
		return nil, fmt.Errorf("%w: %d time samples by %d frequencies",
			brokenwing.ErrDegenerateSpectrumRow, numTimes, numFreqs)
	}

	totalTime := float64(numTimes-1) * cfg.TimeStep
	times := make([]float64, numTimes)
	normalized := make([]float64, numTimes)
	for i := range times {
		times[i] = float64(i) * cfg.TimeStep
		normalized[i] = times[i] / totalTime
	}
	normalized[0] = firstNormalizedTime

	freqs := make([]float64, numFreqs)
	for j := range freqs {
		freqs[j] = float64(j) * cfg.FreqStep
	}

	energyParams := [2]float64{v[0], v[1]}
	energy := finiteOrZero(EnergyAccumulation(energyParams, normalized))
	mode1 := ModalFrequencies([3]float64{v[2], v[3], v[4]}, energy)
	mode2 := ModalFrequencies([3]float64{v[5], v[6], v[7]}, energy)
	participationParams := [6]float64{v[10], v[11], v[12], v[13], v[14], v[15]}
	participation := ModalParticipationFactor(participationParams, energy)
	envelope := finiteOrZero(AmplitudeModulation(v[17], v[16], energyParams, normalized))
	hp := HighPassEnergy(freqs, cfg.HighPassCorner)

	values := mat.NewDense(numTimes, numFreqs, nil)
	for i := range numTimes {
		row := KT2([6]float64{mode1[i], v[8], 1.0, mode2[i], v[9], participation[i]}, freqs, hp)
		integral := dsp.Trapezoid(row, cfg.FreqStep)
		if integral == 0 || math.IsNaN(integral) || math.IsInf(integral, 0) {
			return nil, fmt.Errorf("%w: row %d integrates to %v",
				brokenwing.ErrDegenerateSpectrumRow, i, integral)
		}
		floats.Scale(envelope[i]/integral, row)
		values.SetRow(i, row)
	}

	return &Spectrum{
		timeStep:         cfg.TimeStep,
		freqStep:         cfg.FreqStep,
		times:            times,
		freqs:            freqs,
		logParticipation: ModalParticipationExponent(participationParams, energy),
		values:           values,
	}, nil
}

func finiteOrZero(x []float64) []float64 {
	for i, v := range x {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			x[i] = 0
		}
	}
	return x
}
