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

package emitter

import (
	"context"
	"fmt"

	"github.com/cardinalhq/tremor/pkg/traceemitter"
	"github.com/cardinalhq/tremor/pkg/traceproducer"
	"github.com/cardinalhq/tremor/pkg/vlachos"
)

// TraceEmitter converts run stats to a trace and forwards it.
type TraceEmitter struct {
	tracer *traceproducer.RunTracer
	out    traceemitter.Emitter
}

func NewTraceEmitter(tracer *traceproducer.RunTracer, out traceemitter.Emitter) *TraceEmitter {
	return &TraceEmitter{
		tracer: tracer,
		out:    out,
	}
}

func (e *TraceEmitter) Emit(ctx context.Context, run *vlachos.Run) error {
	td, err := e.tracer.Produce(run.Stats)
	if err != nil {
		return fmt.Errorf("failed to build run trace: %w", err)
	}
	return e.out.Emit(ctx, td)
}
