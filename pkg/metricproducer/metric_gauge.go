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
	"fmt"
	"time"

	"github.com/cardinalhq/oteltools/signalbuilder"
	"go.opentelemetry.io/collector/pdata/pcommon"
	"go.opentelemetry.io/collector/pdata/pmetric"
)

type gaugePoint struct {
	attrs map[string]any
	value float64
}

type gauge struct {
	name   string
	unit   string
	points []gaugePoint
}

func (g *gauge) add(attrs map[string]any, value float64) {
	g.points = append(g.points, gaugePoint{attrs: attrs, value: value})
}

func (p *RunProducer) build(gauges []gauge, at time.Time) (pmetric.Metrics, error) {
	mb := signalbuilder.NewMetricsBuilder()

	rattr := pcommon.NewMap()
	if err := rattr.FromRaw(p.Attributes.Resource); err != nil {
		return pmetric.NewMetrics(), fmt.Errorf("failed to create resource attributes: %w", err)
	}
	r := mb.Resource(rattr)

	sattr := pcommon.NewMap()
	if err := sattr.FromRaw(p.Attributes.Scope); err != nil {
		return pmetric.NewMetrics(), fmt.Errorf("failed to create scope attributes: %w", err)
	}
	s := r.Scope(sattr)

	ts := pcommon.NewTimestampFromTime(at)
	for _, g := range gauges {
		if len(g.points) == 0 {
			continue
		}
		mm, err := s.Metric(g.name, g.unit, pmetric.MetricTypeGauge)
		if err != nil {
			return pmetric.NewMetrics(), fmt.Errorf("failed to create metric %s: %w", g.name, err)
		}
		for _, pt := range g.points {
			dattr := pcommon.NewMap()
			if err := dattr.FromRaw(pt.attrs); err != nil {
				return pmetric.NewMetrics(), fmt.Errorf("failed to create datapoint attributes: %w", err)
			}
			dp, _, _ := mm.Datapoint(dattr, ts)
			dp.SetDoubleValue(pt.value)
		}
	}

	return mb.Build(), nil
}
