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

// Package sweep expands grids of scenario parameters into scenario actions.
package sweep

import (
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/cardinalhq/tremor/pkg/brokenwing"
	"github.com/cardinalhq/tremor/pkg/config"
	"github.com/cardinalhq/tremor/pkg/scriptaction"
	"github.com/cardinalhq/tremor/pkg/state"
)

type Document struct {
	Sweeps []Sweep `yaml:"sweeps" json:"sweeps"`
}

// Sweep is the cartesian product of its magnitude, distance and Vs30 lists.
type Sweep struct {
	Name        string    `yaml:"name" json:"name"`
	Type        string    `yaml:"type,omitempty" json:"type,omitempty"`
	Magnitudes  []float64 `yaml:"magnitudes" json:"magnitudes"`
	Distances   []float64 `yaml:"distances" json:"distances"`
	Vs30s       []float64 `yaml:"vs30s" json:"vs30s"`
	Orientation float64   `yaml:"orientation,omitempty" json:"orientation,omitempty"`
	NumSpectra  int       `yaml:"numSpectra,omitempty" json:"numSpectra,omitempty"`
	NumSims     int       `yaml:"numSims,omitempty" json:"numSims,omitempty"`
	Seed        *uint64   `yaml:"seed,omitempty" json:"seed,omitempty"`
}

// ParseSweeps reads a YAML (or JSON) sweep document.
func ParseSweeps(b []byte) (*Document, error) {
	var doc Document
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// MergeIntoConfig appends one scenario action per grid point to cfg.
func (d *Document) MergeIntoConfig(cfg *config.Config) error {
	for _, s := range d.Sweeps {
		actions, err := s.Actions()
		if err != nil {
			return err
		}
		cfg.Scenarios = append(cfg.Scenarios, actions...)
	}
	return nil
}

func (s Sweep) Actions() ([]scriptaction.ScriptAction, error) {
	if s.Name == "" {
		return nil, fmt.Errorf("%w: sweep has no name", brokenwing.ErrInvalidScenario)
	}
	if len(s.Magnitudes) == 0 || len(s.Distances) == 0 || len(s.Vs30s) == 0 {
		return nil, fmt.Errorf("%w: sweep %s needs magnitudes, distances and vs30s", brokenwing.ErrInvalidScenario, s.Name)
	}
	modelType := s.Type
	if modelType == "" {
		modelType = "vlachos"
	}

	actions := make([]scriptaction.ScriptAction, 0, len(s.Magnitudes)*len(s.Distances)*len(s.Vs30s))
	for _, m := range s.Magnitudes {
		for _, r := range s.Distances {
			for _, v := range s.Vs30s {
				name := makeName(s.Name, m, r, v)
				spec := map[string]any{
					"magnitude":   m,
					"distance":    r,
					"vs30":        v,
					"orientation": s.Orientation,
					"numSpectra":  max(s.NumSpectra, 1),
					"numSims":     max(s.NumSims, 1),
				}
				if s.Seed != nil {
					spec["seed"] = state.NamedSeed(*s.Seed, name)
				}
				actions = append(actions, scriptaction.ScriptAction{Name: name, Type: modelType, Spec: spec})
			}
		}
	}
	return actions, nil
}

func makeName(prefix string, m, r, v float64) string {
	f := func(x float64) string {
		return strconv.FormatFloat(x, 'f', -1, 64)
	}
	return prefix + "_M" + f(m) + "_R" + f(r) + "_V" + f(v)
}
