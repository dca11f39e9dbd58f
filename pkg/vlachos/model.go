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

// Package vlachos generates families of synthetic horizontal ground
// acceleration histories for an earthquake scenario with the Vlachos et al.
// (2018) site-specific stochastic model.
package vlachos

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"math/rand/v2"
	"sync"
	"time"

	"gonum.org/v1/gonum/mat"
	"golang.org/x/sync/errgroup"

	"github.com/cardinalhq/tremor/internal/logging"
	"github.com/cardinalhq/tremor/pkg/brokenwing"
	"github.com/cardinalhq/tremor/pkg/dsp"
	"github.com/cardinalhq/tremor/pkg/identify"
	"github.com/cardinalhq/tremor/pkg/marginal"
	"github.com/cardinalhq/tremor/pkg/postprocess"
	"github.com/cardinalhq/tremor/pkg/regression"
	"github.com/cardinalhq/tremor/pkg/result"
	"github.com/cardinalhq/tremor/pkg/sampler"
	"github.com/cardinalhq/tremor/pkg/spectrum"
	"github.com/cardinalhq/tremor/pkg/state"
	"github.com/cardinalhq/tremor/pkg/synth"
)

const (
	ModelName = "VlachosSiteSpecificEQ"
	EventType = "Seismic"
)

// Scenario describes the earthquake and how many motions to generate.
type Scenario struct {
	Magnitude      float64
	DistanceKm     float64
	Vs30           float64
	OrientationDeg float64
	NumSpectra     int
	NumSims        int
	// Seed makes the run reproducible. nil draws one from process entropy.
	Seed *uint64
}

func (sc Scenario) Validate() error {
	for name, v := range map[string]float64{
		"magnitude":   sc.Magnitude,
		"distance":    sc.DistanceKm,
		"vs30":        sc.Vs30,
		"orientation": sc.OrientationDeg,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %s is %v", brokenwing.ErrInvalidScenario, name, v)
		}
	}
	switch {
	case sc.Magnitude <= 0:
		return fmt.Errorf("%w: magnitude must be positive", brokenwing.ErrInvalidScenario)
	case sc.DistanceKm < 0:
		return fmt.Errorf("%w: distance must not be negative", brokenwing.ErrInvalidScenario)
	case sc.Vs30 <= 0:
		return fmt.Errorf("%w: vs30 must be positive", brokenwing.ErrInvalidScenario)
	case sc.NumSpectra < 1:
		return fmt.Errorf("%w: need at least one spectrum", brokenwing.ErrInvalidScenario)
	case sc.NumSims < 1:
		return fmt.Errorf("%w: need at least one simulation per spectrum", brokenwing.ErrInvalidScenario)
	}
	return nil
}

// Model is built once per scenario. Parameters are identified on the first
// run and reused, so repeated runs of one model give identical output.
type Model struct {
	scenario    Scenario
	seed        uint64
	cfg         settings
	sampler     *sampler.Sampler
	identifier  *identify.Identifier
	synthesizer *spectrum.Synthesizer
	post        *postprocess.PostProcessor
	// samples to drop from the front of the filtered history
	filterDelay int

	identifyOnce sync.Once
	initial      *mat.Dense
	paramRNG     *rand.Rand
	identified   []identify.Parameters
	identifyErrs []error
}

func NewModel(sc Scenario, opts ...Option) (*Model, error) {
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	cfg := defaultSettings()
	for _, opt := range opts {
		opt(&cfg)
	}

	s, err := sampler.New(regression.ConditionalMean(sc.Magnitude, sc.DistanceKm, sc.Vs30), regression.Covariance())
	if err != nil {
		return nil, &brokenwing.StageError{Stage: brokenwing.StageSample, Spectrum: -1, Sim: -1, Err: err}
	}
	targets, err := regression.Marginals()
	if err != nil {
		return nil, &brokenwing.StageError{Stage: brokenwing.StageIdentify, Spectrum: -1, Sim: -1, Err: err}
	}
	transformer := marginal.New(targets)
	if s.Dim() != transformer.Dim() {
		return nil, &brokenwing.StageError{Stage: brokenwing.StageIdentify, Spectrum: -1, Sim: -1,
			Err: fmt.Errorf("sampler has %d parameters, marginals %d", s.Dim(), transformer.Dim())}
	}

	b, a, err := dsp.HighPassButterworth(cfg.filterOrder, 2*cfg.filterCorner*cfg.timeStep)
	if err != nil {
		return nil, &brokenwing.StageError{Stage: brokenwing.StageFilter, Spectrum: -1, Sim: -1, Err: err}
	}
	impulse := dsp.ImpulseResponse(b, a, dsp.ImpulseLength(cfg.filterOrder, cfg.filterCorner, cfg.timeStep))
	if cfg.filterMode == ZeroPhase {
		impulse = dsp.ZeroPhase(impulse)
	}
	post, err := postprocess.New(cfg.timeStep, cfg.taperSeconds, impulse)
	if err != nil {
		return nil, &brokenwing.StageError{Stage: brokenwing.StagePostprocess, Spectrum: -1, Sim: -1, Err: err}
	}
	delay := 0
	if cfg.filterMode == ZeroPhase {
		// the zero-phase response is centred
		delay = (post.ImpulseLen() - 1) / 2
	}

	seed := state.ResolveSeed(sc.Seed)
	m := &Model{
		scenario:   sc,
		seed:       seed,
		cfg:        cfg,
		sampler:    s,
		identifier: identify.New(s, transformer, identify.WithMaxAttempts(cfg.maxAttempts)),
		synthesizer: &spectrum.Synthesizer{
			TimeStep:       cfg.timeStep,
			FreqStep:       cfg.freqStep,
			CutoffFreq:     cfg.cutoffFreq,
			HighPassCorner: cfg.filterCorner,
		},
		post:        post,
		filterDelay: delay,
	}

	rng := state.SubRNG(seed, state.StreamParameters)
	m.initial = s.Generate(sc.NumSpectra, rng)
	m.paramRNG = rng
	return m, nil
}

func (m *Model) Seed() uint64 {
	return m.seed
}

func (m *Model) Scenario() Scenario {
	return m.scenario
}

// identifyAll runs the identifier for every spectrum, in spectrum order, on
// the single parameter stream.
func (m *Model) identifyAll() {
	m.identifyOnce.Do(func() {
		n := m.scenario.NumSpectra
		m.identified = make([]identify.Parameters, n)
		m.identifyErrs = make([]error, n)
		for i := range n {
			p, err := m.identifier.Identify(mat.Col(nil, i, m.initial), m.paramRNG)
			m.identified[i] = p
			if err != nil {
				m.identifyErrs[i] = &brokenwing.StageError{Stage: brokenwing.StageIdentify, Spectrum: i, Sim: -1, Err: err}
				continue
			}
			m.cfg.logger.Debug("identified parameters",
				slog.Int("spectrum", i),
				slog.Int("attempts", p.Attempts))
		}
	})
}

// Run is the outcome of one generation.
type Run struct {
	Result *result.Result
	Stats  RunStats
}

// Generate synthesizes NumSpectra × NumSims events named after eventName.
func (m *Model) Generate(ctx context.Context, eventName string) (*result.Result, error) {
	run, err := m.Run(ctx, eventName)
	if err != nil {
		return nil, err
	}
	return run.Result, nil
}

// GenerateToFile generates and writes the result as JSON to path. The
// boolean reports success; the error says why it failed.
func (m *Model) GenerateToFile(ctx context.Context, eventName, path string) (bool, error) {
	res, err := m.Generate(ctx, eventName)
	if err != nil {
		return false, err
	}
	if err := res.WriteFile(path); err != nil {
		return false, &brokenwing.StageError{Stage: brokenwing.StageWrite, Spectrum: -1, Sim: -1, Err: err}
	}
	return true, nil
}

type spectrumOutcome struct {
	events []result.Event
	stats  SpectrumStats
	err    error
}

// Run generates the events together with run statistics.
func (m *Model) Run(ctx context.Context, eventName string) (*Run, error) {
	started := time.Now()
	m.identifyAll()

	n := m.scenario.NumSpectra
	if !m.cfg.skipFailed {
		for _, err := range m.identifyErrs {
			if err != nil {
				return nil, err
			}
		}
	}

	outcomes := make([]spectrumOutcome, n)
	progress := newProgressTracker(m.cfg.observer, n*m.scenario.NumSims, started)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(m.cfg.workers)
	for i := range n {
		if err := m.identifyErrs[i]; err != nil {
			outcomes[i] = spectrumOutcome{err: err, stats: SpectrumStats{Index: i, Attempts: m.identified[i].Attempts, Failed: true}}
			m.cfg.logger.Warn("skipping spectrum", slog.Int("spectrum", i), slog.Any("error", err))
			continue
		}
		g.Go(func() error {
			out := m.runSpectrum(gctx, eventName, i, progress)
			outcomes[i] = out
			if out.err == nil {
				return nil
			}
			if m.cfg.skipFailed && gctx.Err() == nil {
				m.cfg.logger.Warn("skipping spectrum", slog.Int("spectrum", i), slog.Any("error", out.err))
				return nil
			}
			return out.err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	stats := RunStats{
		Event:    eventName,
		Seed:     m.seed,
		Units:    m.cfg.units,
		Scenario: m.scenario,
		Started:  started,
		Spectra:  make([]SpectrumStats, n),
	}
	res := &result.Result{}
	var firstErr error
	for i, out := range outcomes {
		stats.Spectra[i] = out.stats
		if out.err != nil {
			if firstErr == nil {
				firstErr = out.err
			}
			continue
		}
		res.Events = append(res.Events, out.events...)
	}
	if len(res.Events) == 0 && firstErr != nil {
		return nil, firstErr
	}
	stats.Elapsed = time.Since(started)
	return &Run{Result: res, Stats: stats}, nil
}

func (m *Model) runSpectrum(ctx context.Context, eventName string, i int, progress *progressTracker) spectrumOutcome {
	params := m.identified[i]
	started := time.Now()
	out := spectrumOutcome{stats: SpectrumStats{Index: i, Attempts: params.Attempts, Started: started}}
	fail := func(err error) spectrumOutcome {
		out.err = err
		out.stats.Failed = true
		out.stats.Elapsed = time.Since(started)
		return out
	}

	if err := ctx.Err(); err != nil {
		return fail(err)
	}
	spec, err := m.synthesizer.Build(params)
	if err != nil {
		return fail(&brokenwing.StageError{Stage: brokenwing.StageSpectrum, Spectrum: i, Sim: -1, Err: err})
	}
	out.stats.NumTimes = spec.NumTimes()
	out.stats.NumFreqs = spec.NumFreqs()
	m.cfg.logger.Debug("built spectrum",
		slog.Int("spectrum", i),
		slog.Int("times", spec.NumTimes()),
		slog.Int("frequencies", spec.NumFreqs()))

	for sim := range m.scenario.NumSims {
		if err := ctx.Err(); err != nil {
			return fail(err)
		}
		history := synth.TimeHistory(spec, state.SubRNG(m.seed, state.StreamPhases, i, sim))
		filtered, err := m.post.Apply(history)
		if err != nil {
			return fail(&brokenwing.StageError{Stage: brokenwing.StagePostprocess, Spectrum: i, Sim: sim, Err: err})
		}
		accel := filtered[m.filterDelay : m.filterDelay+len(history)]
		x, y, err := Rotate(accel, m.scenario.OrientationDeg, m.cfg.units)
		if err != nil {
			return fail(&brokenwing.StageError{Stage: brokenwing.StageRotate, Spectrum: i, Sim: sim, Err: err})
		}

		sims := SimulationStats{Index: sim, PeakX: peak(x), PeakY: peak(y)}
		m.cfg.logger.Log(ctx, logging.LevelTrace, "synthesized simulation",
			slog.Int("spectrum", i),
			slog.Int("sim", sim),
			slog.Float64("peakX", sims.PeakX),
			slog.Float64("peakY", sims.PeakY))
		out.stats.Simulations = append(out.stats.Simulations, sims)
		out.events = append(out.events, m.event(eventName, i, sim, params, spec, x, y, sims))
		progress.complete(i, sim)
	}
	out.stats.Elapsed = time.Since(started)
	return out
}

func (m *Model) event(eventName string, i, sim int, params identify.Parameters, spec *spectrum.Spectrum, x, y []float64, sims SimulationStats) result.Event {
	name := fmt.Sprintf("%s_%d_%d", eventName, i, sim)
	xName, yName := name+"_x", name+"_y"
	return result.Event{
		Name:        name,
		Type:        EventType,
		Description: ModelName,
		TimeSeries: []result.TimeSeries{
			{Name: xName, Dt: m.cfg.timeStep, Data: x},
			{Name: yName, Dt: m.cfg.timeStep, Data: y},
		},
		Pattern: []result.Pattern{
			{Name: xName, Type: result.PatternUniformAcceleration, TimeSeries: xName, Dof: 1},
			{Name: yName, Type: result.PatternUniformAcceleration, TimeSeries: yName, Dof: 2},
		},
		Metadata: &result.Metadata{
			Model:       ModelName,
			Spectrum:    i,
			Simulation:  sim,
			Seed:        m.seed,
			Units:       m.cfg.units.String(),
			Magnitude:   m.scenario.Magnitude,
			DistanceKm:  m.scenario.DistanceKm,
			Vs30:        m.scenario.Vs30,
			Orientation: m.scenario.OrientationDeg,
			Attempts:    params.Attempts,
			Parameters:  append([]float64(nil), params.Values...),
			PeakX:       sims.PeakX,
			PeakY:       sims.PeakY,
			FilterMode:  m.cfg.filterMode.String(),
			TimeSteps:   spec.NumTimes(),
			FreqSteps:   spec.NumFreqs(),

			LogParticipation: spec.LogParticipation(),
		},
	}
}
