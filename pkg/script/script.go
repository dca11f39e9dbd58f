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

package script

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/cardinalhq/tremor/pkg/brokenwing"
	"github.com/cardinalhq/tremor/pkg/config"
	"github.com/cardinalhq/tremor/pkg/emitter"
	"github.com/cardinalhq/tremor/pkg/scriptaction"
	"github.com/cardinalhq/tremor/pkg/state"
	"github.com/cardinalhq/tremor/pkg/vlachos"
)

// Script is the ordered set of scenario actions of a config together with
// the emitters that receive each run.
type Script struct {
	actions  []scriptaction.ScriptAction
	emitters []emitter.Emitter
	options  []vlachos.Option
	logger   *slog.Logger
}

func NewScript() *Script {
	return &Script{
		actions: []scriptaction.ScriptAction{},
		logger:  slog.Default(),
	}
}

func (s *Script) AddAction(action scriptaction.ScriptAction) {
	s.actions = append(s.actions, action)
}

func (s *Script) AddEmitter(e emitter.Emitter) {
	s.emitters = append(s.emitters, e)
}

// AddOption appends a model option applied after the config's own.
func (s *Script) AddOption(opt vlachos.Option) {
	s.options = append(s.options, opt)
}

func (s *Script) SetLogger(l *slog.Logger) {
	if l != nil {
		s.logger = l
	}
}

// Run executes every scenario of cfg, plus any actions added to script, in
// name order and hands each run to the emitters.
func Run(ctx context.Context, cfg *config.Config, script *Script) error {
	actions, err := prepareActions(slices.Concat(script.actions, cfg.Scenarios))
	if err != nil {
		return err
	}

	for _, action := range actions {
		if err := ctx.Err(); err != nil {
			return err
		}
		model, err := CreateModel(action, cfg, slices.Concat([]vlachos.Option{vlachos.WithLogger(script.logger)}, script.options)...)
		if err != nil {
			return fmt.Errorf("scenario %s: %w", action.Name, err)
		}
		script.logger.Info("Generating scenario",
			slog.String("name", action.Name),
			slog.Uint64("seed", model.Seed()),
			slog.Int("spectra", model.Scenario().NumSpectra),
			slog.Int("sims", model.Scenario().NumSims))

		run, err := model.Run(ctx, action.Name)
		if err != nil {
			return fmt.Errorf("scenario %s: %w", action.Name, err)
		}
		for _, e := range script.emitters {
			if err := e.Emit(ctx, run); err != nil {
				return fmt.Errorf("scenario %s: emit: %w", action.Name, err)
			}
		}
	}
	return nil
}

func prepareActions(all []scriptaction.ScriptAction) ([]scriptaction.ScriptAction, error) {
	actions := slices.DeleteFunc(slices.Clone(all), func(a scriptaction.ScriptAction) bool {
		return a.Disabled
	})
	if len(actions) == 0 {
		return nil, brokenwing.ErrNoScenarios
	}
	slices.SortStableFunc(actions, func(a, b scriptaction.ScriptAction) int {
		return strings.Compare(a.Name, b.Name)
	})
	for i, a := range actions {
		if a.Name == "" {
			return nil, fmt.Errorf("%w: scenario %d has no name", brokenwing.ErrInvalidScenario, i)
		}
		if i > 0 && actions[i-1].Name == a.Name {
			return nil, fmt.Errorf("%w: %s", brokenwing.ErrDuplicateScenario, a.Name)
		}
	}
	return actions, nil
}

// VlachosSpec is the spec block of a vlachos scenario action.
type VlachosSpec struct {
	Magnitude   float64 `mapstructure:"magnitude"`
	Distance    float64 `mapstructure:"distance"`
	Vs30        float64 `mapstructure:"vs30"`
	Orientation float64 `mapstructure:"orientation"`
	NumSpectra  int     `mapstructure:"numSpectra"`
	NumSims     int     `mapstructure:"numSims"`
	Seed        *uint64 `mapstructure:"seed"`
}

// CreateModel builds the model named by the action's type. The scenario
// seed is the spec's own, else derived from the config seed and the action
// name, else drawn from entropy.
func CreateModel(action scriptaction.ScriptAction, cfg *config.Config, extra ...vlachos.Option) (*vlachos.Model, error) {
	switch action.Type {
	case "vlachos", vlachos.ModelName:
	default:
		return nil, fmt.Errorf("%w: %q", brokenwing.ErrUnknownModel, action.Type)
	}

	spec := VlachosSpec{NumSpectra: 1, NumSims: 1}
	decoder, err := config.NewMapstructureDecoder(&spec)
	if err != nil {
		return nil, fmt.Errorf("failed to create decoder: %w", err)
	}
	if err := decoder.Decode(action.Spec); err != nil {
		return nil, &brokenwing.DecodeError{Name: action.Name, Err: err}
	}

	seed := spec.Seed
	if seed == nil && cfg.Seed != 0 {
		derived := state.NamedSeed(cfg.Seed, action.Name)
		seed = &derived
	}

	opts, err := cfg.ModelOptions()
	if err != nil {
		return nil, err
	}
	return vlachos.NewModel(vlachos.Scenario{
		Magnitude:      spec.Magnitude,
		DistanceKm:     spec.Distance,
		Vs30:           spec.Vs30,
		OrientationDeg: spec.Orientation,
		NumSpectra:     spec.NumSpectra,
		NumSims:        spec.NumSims,
		Seed:           seed,
	}, append(opts, extra...)...)
}
