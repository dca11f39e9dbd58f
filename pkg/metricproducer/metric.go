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

package metricproducer

import (
	"maps"
	"strconv"

	"go.opentelemetry.io/collector/pdata/pmetric"

	"github.com/cardinalhq/tremor/pkg/vlachos"
)

const (
	MetricIdentifyAttempts = "tremor.identify.attempts"
	MetricSpectrumSamples  = "tremor.spectrum.samples"
	MetricSimulationPGA    = "tremor.simulation.pga"
	MetricGenerateDuration = "tremor.generate.duration"

	DefaultServiceName = "tremor"
)

type Attributes struct {
	Resource  map[string]any `mapstructure:"resource,omitempty" yaml:"resource,omitempty" json:"resource,omitempty"`
	Scope     map[string]any `mapstructure:"scope,omitempty" yaml:"scope,omitempty" json:"scope,omitempty"`
	Datapoint map[string]any `mapstructure:"datapoint,omitempty" yaml:"datapoint,omitempty" json:"datapoint,omitempty"`
}

// RunProducer turns the stats of a finished run into gauge metrics.
type RunProducer struct {
	Attributes Attributes
}

func NewRunProducer(attrs Attributes) *RunProducer {
	if attrs.Resource == nil {
		attrs.Resource = map[string]any{}
	}
	if _, ok := attrs.Resource["service.name"]; !ok {
		attrs.Resource["service.name"] = DefaultServiceName
	}
	return &RunProducer{Attributes: attrs}
}

func (p *RunProducer) Produce(stats vlachos.RunStats) (pmetric.Metrics, error) {
	base := map[string]any{
		"event": stats.Event,
		"seed":  strconv.FormatUint(stats.Seed, 10),
	}
	maps.Copy(base, p.Attributes.Datapoint)
	with := func(extra map[string]any) map[string]any {
		out := maps.Clone(base)
		maps.Copy(out, extra)
		return out
	}

	gauges := []gauge{
		{name: MetricGenerateDuration, unit: "s"},
		{name: MetricIdentifyAttempts, unit: "1"},
		{name: MetricSpectrumSamples, unit: "1"},
		{name: MetricSimulationPGA, unit: stats.Units.String()},
	}
	gauges[0].add(with(nil), stats.Elapsed.Seconds())
	for _, s := range stats.Spectra {
		gauges[1].add(with(map[string]any{"spectrum": s.Index, "failed": s.Failed}), float64(s.Attempts))
		if s.Failed {
			continue
		}
		gauges[2].add(with(map[string]any{"spectrum": s.Index, "axis": "time"}), float64(s.NumTimes))
		gauges[2].add(with(map[string]any{"spectrum": s.Index, "axis": "frequency"}), float64(s.NumFreqs))
		for _, sim := range s.Simulations {
			gauges[3].add(with(map[string]any{"spectrum": s.Index, "sim": sim.Index, "component": "x"}), sim.PeakX)
			gauges[3].add(with(map[string]any{"spectrum": s.Index, "sim": sim.Index, "component": "y"}), sim.PeakY)
		}
	}

	return p.build(gauges, stats.Started.Add(stats.Elapsed))
}
