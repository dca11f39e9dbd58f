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

// Package identify rejection-samples model parameters until they satisfy
// the physical ordering constraints of the two-mode spectrum.
package identify

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/cardinalhq/tremor/pkg/brokenwing"
	"github.com/cardinalhq/tremor/pkg/marginal"
	"github.com/cardinalhq/tremor/pkg/sampler"
)

const (
	DefaultMaxAttempts = 10000

	energyGridPoints = 21
)

// Parameter slots checked for feasibility.
const (
	slotMode1Alpha = 2
	slotMode1Beta  = 3
	slotMode1Q     = 4
	slotMode2Alpha = 5
	slotMode2Beta  = 6
	slotMode2Q     = 7
	slotPeak1      = 11
	slotPeak2      = 14
)

type State int

const (
	Sampling State = iota
	Accepted
)

func (s State) String() string {
	switch s {
	case Sampling:
		return "Sampling"
	case Accepted:
		return "Accepted"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Parameters is a feasible physical-space parameter vector.
type Parameters struct {
	Values   []float64
	Attempts int
}

type Identifier struct {
	sampler     *sampler.Sampler
	transformer *marginal.Transformer
	maxAttempts int
}

type Option func(*Identifier)

func WithMaxAttempts(n int) Option {
	return func(id *Identifier) {
		if n > 0 {
			id.maxAttempts = n
		}
	}
}

func New(s *sampler.Sampler, t *marginal.Transformer, opts ...Option) *Identifier {
	id := &Identifier{
		sampler:     s,
		transformer: t,
		maxAttempts: DefaultMaxAttempts,
	}
	for _, opt := range opts {
		opt(id)
	}
	return id
}

// Identify tests the pre-drawn normal-space vector first and, while it is
// infeasible, replaces it with fresh draws from r. Every draw, accepted or
// not, counts as one attempt.
func (id *Identifier) Identify(initial []float64, r *rand.Rand) (Parameters, error) {
	candidate := initial
	state := Sampling
	attempts := 0
	var physical []float64
	for state == Sampling {
		if attempts >= id.maxAttempts {
			return Parameters{Attempts: attempts}, fmt.Errorf("%w after %d attempts",
				brokenwing.ErrIdentificationDidNotConverge, attempts)
		}
		if attempts > 0 {
			candidate = id.sampler.Draw(r)
		}
		attempts++

		var err error
		physical, err = id.transformer.Transform(candidate)
		if err != nil {
			return Parameters{Attempts: attempts}, err
		}
		if Feasible(physical) {
			state = Accepted
		}
	}
	return Parameters{Values: physical, Attempts: attempts}, nil
}

// EnergyGrid returns the normalized energy points 0, 0.05, ..., 1.
func EnergyGrid() []float64 {
	grid := make([]float64, energyGridPoints)
	for i := range grid {
		grid[i] = float64(i) / float64(energyGridPoints-1)
	}
	return grid
}

// Feasible reports whether the first mode stays at or below the second at
// every energy grid point and the first participation peak does not come
// after the second.
func Feasible(p []float64) bool {
	if p[slotPeak1] > p[slotPeak2] {
		return false
	}
	for _, e := range EnergyGrid() {
		f1 := modeFrequency(p[slotMode1Alpha], p[slotMode1Beta], p[slotMode1Q], e)
		f2 := modeFrequency(p[slotMode2Alpha], p[slotMode2Beta], p[slotMode2Q], e)
		if !(f1 <= f2) {
			return false
		}
	}
	return true
}

func modeFrequency(alpha, beta, q, e float64) float64 {
	return q * math.Pow(0.5+e, alpha) * math.Pow(1.5-e, beta)
}
