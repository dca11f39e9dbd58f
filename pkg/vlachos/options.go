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

package vlachos

import (
	"fmt"
	"log/slog"
	"runtime"

	"github.com/cardinalhq/tremor/pkg/identify"
	"github.com/cardinalhq/tremor/pkg/postprocess"
	"github.com/cardinalhq/tremor/pkg/spectrum"
)

const (
	DefaultFilterOrder  = 4
	DefaultFilterCorner = 0.20
	maxDefaultWorkers   = 4
)

type Units int

const (
	MetersPerSecondSquared Units = iota
	StandardGravity
)

func (u Units) String() string {
	switch u {
	case MetersPerSecondSquared:
		return "mps2"
	case StandardGravity:
		return "g"
	}
	return fmt.Sprintf("Units(%d)", int(u))
}

func ParseUnits(s string) (Units, error) {
	switch s {
	case "", "mps2":
		return MetersPerSecondSquared, nil
	case "g":
		return StandardGravity, nil
	}
	return 0, fmt.Errorf("unknown units %q, want mps2 or g", s)
}

// FilterMode selects how the high-pass filter is applied. ZeroPhase runs
// the filter forward and backward and is the default.
type FilterMode int

const (
	ZeroPhase FilterMode = iota
	Causal
)

func (m FilterMode) String() string {
	switch m {
	case ZeroPhase:
		return "zeroPhase"
	case Causal:
		return "causal"
	}
	return fmt.Sprintf("FilterMode(%d)", int(m))
}

func ParseFilterMode(s string) (FilterMode, error) {
	switch s {
	case "", "zeroPhase":
		return ZeroPhase, nil
	case "causal":
		return Causal, nil
	}
	return 0, fmt.Errorf("unknown filter mode %q, want zeroPhase or causal", s)
}

type settings struct {
	timeStep     float64
	freqStep     float64
	cutoffFreq   float64
	filterOrder  int
	filterCorner float64
	taperSeconds float64
	maxAttempts  int
	units        Units
	filterMode   FilterMode
	workers      int
	skipFailed   bool
	logger       *slog.Logger
	observer     Observer
}

func defaultSettings() settings {
	return settings{
		timeStep:     spectrum.DefaultTimeStep,
		freqStep:     spectrum.DefaultFreqStep,
		cutoffFreq:   spectrum.DefaultCutoffFreq,
		filterOrder:  DefaultFilterOrder,
		filterCorner: DefaultFilterCorner,
		taperSeconds: postprocess.DefaultTaperSeconds,
		maxAttempts:  identify.DefaultMaxAttempts,
		units:        MetersPerSecondSquared,
		filterMode:   ZeroPhase,
		workers:      min(runtime.GOMAXPROCS(0), maxDefaultWorkers),
		logger:       slog.Default(),
	}
}

type Option func(*settings)

// WithTimeStep sets the sample spacing in seconds.
func WithTimeStep(dt float64) Option {
	return func(s *settings) {
		if dt > 0 {
			s.timeStep = dt
		}
	}
}

// WithFreqStep sets the frequency bin width in Hz.
func WithFreqStep(df float64) Option {
	return func(s *settings) {
		if df > 0 {
			s.freqStep = df
		}
	}
}

func WithCutoffFreq(hz float64) Option {
	return func(s *settings) {
		if hz > 0 {
			s.cutoffFreq = hz
		}
	}
}

// WithFilter sets the Butterworth high-pass order and corner frequency in
// Hz. The order is validated when the model is built.
func WithFilter(order int, cornerHz float64) Option {
	return func(s *settings) {
		s.filterOrder = order
		if cornerHz > 0 {
			s.filterCorner = cornerHz
		}
	}
}

func WithTaper(seconds float64) Option {
	return func(s *settings) {
		if seconds > 0 {
			s.taperSeconds = seconds
		}
	}
}

func WithMaxAttempts(n int) Option {
	return func(s *settings) {
		if n > 0 {
			s.maxAttempts = n
		}
	}
}

func WithUnits(u Units) Option {
	return func(s *settings) {
		s.units = u
	}
}

func WithFilterMode(m FilterMode) Option {
	return func(s *settings) {
		s.filterMode = m
	}
}

func WithWorkers(n int) Option {
	return func(s *settings) {
		if n > 0 {
			s.workers = n
		}
	}
}

// WithSkipFailedSpectra drops spectra whose identification or synthesis
// fails instead of failing the whole run.
func WithSkipFailedSpectra(skip bool) Option {
	return func(s *settings) {
		s.skipFailed = skip
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(s *settings) {
		if l != nil {
			s.logger = l
		}
	}
}

func WithObserver(o Observer) Option {
	return func(s *settings) {
		s.observer = o
	}
}
