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

package commands

import (
	"github.com/spf13/cobra"

	"github.com/cardinalhq/tremor/pkg/config"
	"github.com/cardinalhq/tremor/pkg/scriptaction"
	"github.com/cardinalhq/tremor/pkg/vlachos"
)

type scenarioOptions struct {
	name        string
	magnitude   float64
	distance    float64
	vs30        float64
	orientation float64
	spectra     int
	sims        int
	seed        uint64
	units       string
	output      string
	archive     string
	workers     int
	maxAttempts int
	filterMode  string
	skipFailed  bool
	outputFlags
}

var scenarioOpts scenarioOptions

var ScenarioCmd = &cobra.Command{
	Use:   "scenario",
	Short: "Generate one scenario described by flags",
	Example: `  tremor scenario --magnitude 7 --distance 10 --vs30 500 --spectra 2 --sims 3 --seed 42
  tremor scenario --magnitude 6.5 --distance 25 --vs30 250 --units g --output out/`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := scenarioOpts.config(cmd)
		if err != nil {
			return err
		}
		return generate(cmd.Context(), cfg, scenarioOpts.outputFlags, cmd.OutOrStdout(), cmd.ErrOrStderr())
	},
}

func init() {
	f := ScenarioCmd.Flags()
	f.StringVar(&scenarioOpts.name, "name", "scenario", "event name prefix")
	f.Float64Var(&scenarioOpts.magnitude, "magnitude", 0, "moment magnitude")
	f.Float64Var(&scenarioOpts.distance, "distance", 0, "closest-to-rupture distance in km")
	f.Float64Var(&scenarioOpts.vs30, "vs30", 0, "site Vs30 in m/s")
	f.Float64Var(&scenarioOpts.orientation, "orientation", 0, "orientation of the motion in degrees from the x axis")
	f.IntVar(&scenarioOpts.spectra, "spectra", 1, "number of power spectra")
	f.IntVar(&scenarioOpts.sims, "sims", 1, "number of simulations per spectrum")
	f.Uint64Var(&scenarioOpts.seed, "seed", 0, "random seed (default from entropy)")
	f.StringVar(&scenarioOpts.units, "units", vlachos.MetersPerSecondSquared.String(), "output units: mps2 or g")
	f.StringVar(&scenarioOpts.output, "output", "", "directory for <name>.json (default stdout)")
	f.StringVar(&scenarioOpts.archive, "archive", "", "SQLite archive to record the run in")
	f.IntVar(&scenarioOpts.workers, "workers", 0, "parallel spectra (default min(GOMAXPROCS, 4))")
	f.IntVar(&scenarioOpts.maxAttempts, "max-attempts", 0, "identification attempts per spectrum")
	f.StringVar(&scenarioOpts.filterMode, "filter-mode", vlachos.ZeroPhase.String(), "high-pass filter: zeroPhase or causal")
	f.BoolVar(&scenarioOpts.skipFailed, "skip-failed", false, "drop spectra that fail instead of failing the run")
	scenarioOpts.outputFlags.register(ScenarioCmd)

	for _, name := range []string{"magnitude", "distance", "vs30"} {
		_ = ScenarioCmd.MarkFlagRequired(name)
	}
}

func (o *scenarioOptions) config(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.Default()
	cfg.Units = o.units
	cfg.Output = o.output
	cfg.Archive = o.archive
	cfg.Workers = o.workers
	cfg.Model.FilterMode = o.filterMode
	cfg.Model.SkipFailedSpectra = o.skipFailed
	if o.maxAttempts > 0 {
		cfg.Model.MaxAttempts = o.maxAttempts
	}

	spec := map[string]any{
		"magnitude":   o.magnitude,
		"distance":    o.distance,
		"vs30":        o.vs30,
		"orientation": o.orientation,
		"numSpectra":  o.spectra,
		"numSims":     o.sims,
	}
	if cmd.Flags().Changed("seed") {
		spec["seed"] = o.seed
	}
	cfg.Scenarios = []scriptaction.ScriptAction{{Name: o.name, Type: "vlachos", Spec: spec}}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
