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
	"math"
	"sync"
	"time"

	"gonum.org/v1/gonum/floats"
)

type RunStats struct {
	Event    string
	Seed     uint64
	Units    Units
	Scenario Scenario
	Started  time.Time
	Elapsed  time.Duration
	Spectra  []SpectrumStats
}

type SpectrumStats struct {
	Index       int
	Attempts    int
	NumTimes    int
	NumFreqs    int
	Failed      bool
	Started     time.Time
	Elapsed     time.Duration
	Simulations []SimulationStats
}

// SimulationStats holds the peak absolute acceleration of each component.
type SimulationStats struct {
	Index int
	PeakX float64
	PeakY float64
}

// Progress is reported after every finished simulation.
type Progress struct {
	Spectrum int
	Sim      int
	Done     int
	Total    int
	Elapsed  time.Duration
}

// Observer receives progress from a running model. Calls are serialized.
type Observer interface {
	Observe(Progress)
}

type progressTracker struct {
	sync.Mutex
	observer Observer
	count    int
	total    int
	started  time.Time
}

func newProgressTracker(o Observer, total int, started time.Time) *progressTracker {
	return &progressTracker{observer: o, total: total, started: started}
}

func (p *progressTracker) complete(spectrum, sim int) {
	if p.observer == nil {
		return
	}
	p.Lock()
	defer p.Unlock()
	p.count++
	p.observer.Observe(Progress{
		Spectrum: spectrum,
		Sim:      sim,
		Done:     p.count,
		Total:    p.total,
		Elapsed:  time.Since(p.started),
	})
}

func peak(x []float64) float64 {
	if len(x) == 0 {
		return 0
	}
	return floats.Norm(x, math.Inf(1))
}
