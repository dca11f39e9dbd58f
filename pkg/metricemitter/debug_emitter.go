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

package metricemitter

import (
	"context"
	"fmt"
	"io"

	"go.opentelemetry.io/collector/pdata/pmetric"
)

// DebugMetricEmitter writes each batch as one line of OTLP JSON.
type DebugMetricEmitter struct {
	out io.Writer
}

func NewDebugMetricEmitter(out io.Writer) *DebugMetricEmitter {
	return &DebugMetricEmitter{
		out: out,
	}
}

func (e *DebugMetricEmitter) Emit(_ context.Context, md pmetric.Metrics) error {
	if md.DataPointCount() == 0 {
		return nil
	}

	marshaller := pmetric.JSONMarshaler{}

	msgBody, err := marshaller.MarshalMetrics(md)
	if err != nil {
		return fmt.Errorf("failed to marshal metrics: %w", err)
	}

	if _, err := e.out.Write(append(msgBody, '\n')); err != nil {
		return fmt.Errorf("failed to write metrics: %w", err)
	}
	return nil
}
