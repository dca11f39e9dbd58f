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

package traceproducer

import (
	"fmt"
	"math/rand/v2"
	"strconv"
	"time"

	"go.opentelemetry.io/collector/pdata/pcommon"
	"go.opentelemetry.io/collector/pdata/ptrace"

	"github.com/cardinalhq/tremor/pkg/metricproducer"
	"github.com/cardinalhq/tremor/pkg/state"
	"github.com/cardinalhq/tremor/pkg/vlachos"
)

const (
	SpanRun      = "tremor.run"
	SpanSpectrum = "tremor.spectrum"

	streamTraceIDs uint64 = 0x74726163
)

// RunTracer turns the stats of a finished run into one trace: a root span
// for the run with a child span per spectrum.
type RunTracer struct {
	Attributes metricproducer.Attributes
}

func NewRunTracer(attrs metricproducer.Attributes) *RunTracer {
	if attrs.Resource == nil {
		attrs.Resource = map[string]any{}
	}
	if _, ok := attrs.Resource["service.name"]; !ok {
		attrs.Resource["service.name"] = metricproducer.DefaultServiceName
	}
	return &RunTracer{Attributes: attrs}
}

func randomTraceID(r *rand.Rand) pcommon.TraceID {
	var id pcommon.TraceID
	for i := range id {
		id[i] = byte(r.IntN(256))
	}
	return id
}

func randomSpanID(r *rand.Rand) pcommon.SpanID {
	var id pcommon.SpanID
	for i := range id {
		id[i] = byte(r.IntN(256))
	}
	return id
}

func (t *RunTracer) Produce(stats vlachos.RunStats) (ptrace.Traces, error) {
	td := ptrace.NewTraces()
	rs := td.ResourceSpans().AppendEmpty()
	if err := rs.Resource().Attributes().FromRaw(t.Attributes.Resource); err != nil {
		return ptrace.NewTraces(), fmt.Errorf("failed to create resource attributes: %w", err)
	}
	ss := rs.ScopeSpans().AppendEmpty()
	if err := ss.Scope().Attributes().FromRaw(t.Attributes.Scope); err != nil {
		return ptrace.NewTraces(), fmt.Errorf("failed to create scope attributes: %w", err)
	}

	// trace ids derive from the seed and the start time
	r := state.SubRNG(stats.Seed, streamTraceIDs, int(stats.Started.UnixNano()))
	traceID := randomTraceID(r)
	rootID := randomSpanID(r)

	failed := 0
	for _, s := range stats.Spectra {
		if s.Failed {
			failed++
		}
	}

	root := ss.Spans().AppendEmpty()
	if err := root.Attributes().FromRaw(t.Attributes.Datapoint); err != nil {
		return ptrace.NewTraces(), fmt.Errorf("failed to create span attributes: %w", err)
	}
	root.Attributes().PutStr("event", stats.Event)
	root.Attributes().PutStr("seed", strconv.FormatUint(stats.Seed, 10))
	root.Attributes().PutStr("units", stats.Units.String())
	root.Attributes().PutDouble("magnitude", stats.Scenario.Magnitude)
	root.Attributes().PutDouble("distance", stats.Scenario.DistanceKm)
	root.Attributes().PutDouble("vs30", stats.Scenario.Vs30)
	root.Attributes().PutInt("spectra.failed", int64(failed))
	setSpan(root, SpanRun, traceID, rootID, pcommon.NewSpanIDEmpty(), stats.Started, stats.Elapsed, failed == len(stats.Spectra) && failed > 0)

	for _, s := range stats.Spectra {
		span := ss.Spans().AppendEmpty()
		span.Attributes().PutStr("event", stats.Event)
		span.Attributes().PutInt("spectrum", int64(s.Index))
		span.Attributes().PutInt("attempts", int64(s.Attempts))
		span.Attributes().PutInt("timeSteps", int64(s.NumTimes))
		span.Attributes().PutInt("freqSteps", int64(s.NumFreqs))
		span.Attributes().PutInt("simulations", int64(len(s.Simulations)))
		start := s.Started
		if start.IsZero() {
			start = stats.Started
		}
		setSpan(span, SpanSpectrum, traceID, randomSpanID(r), rootID, start, s.Elapsed, s.Failed)
	}

	return td, nil
}

func setSpan(span ptrace.Span, name string, traceID pcommon.TraceID, spanID, parentID pcommon.SpanID, start time.Time, elapsed time.Duration, failed bool) {
	span.SetName(name)
	span.SetKind(ptrace.SpanKindInternal)
	span.SetTraceID(traceID)
	span.SetSpanID(spanID)
	span.SetParentSpanID(parentID)
	span.SetStartTimestamp(pcommon.NewTimestampFromTime(start))
	span.SetEndTimestamp(pcommon.NewTimestampFromTime(start.Add(elapsed)))
	if failed {
		span.Status().SetCode(ptrace.StatusCodeError)
		span.Status().SetMessage("failed")
	} else {
		span.Status().SetCode(ptrace.StatusCodeOk)
	}
}
