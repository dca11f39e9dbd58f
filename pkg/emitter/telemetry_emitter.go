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

	"github.com/cardinalhq/tremor/pkg/metricemitter"
	"github.com/cardinalhq/tremor/pkg/metricproducer"
	"github.com/cardinalhq/tremor/pkg/vlachos"
)

// TelemetryEmitter converts run stats to metrics and forwards them.
type TelemetryEmitter struct {
	producer *metricproducer.RunProducer
	out      metricemitter.Emitter
}

func NewTelemetryEmitter(producer *metricproducer.RunProducer, out metricemitter.Emitter) *TelemetryEmitter {
	return &TelemetryEmitter{
		producer: producer,
		out:      out,
	}
}

func (e *TelemetryEmitter) Emit(ctx context.Context, run *vlachos.Run) error {
	md, err := e.producer.Produce(run.Stats)
	if err != nil {
		return fmt.Errorf("failed to build run metrics: %w", err)
	}
	return e.out.Emit(ctx, md)
}
