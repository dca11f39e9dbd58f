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

package traceemitter

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"go.opentelemetry.io/collector/pdata/ptrace"
	"go.opentelemetry.io/collector/pdata/ptrace/ptraceotlp"

	"github.com/cardinalhq/tremor/internal/otlphttp"
)

// Emitter ships run traces somewhere.
type Emitter interface {
	Emit(ctx context.Context, td ptrace.Traces) error
}

var (
	_ Emitter = (*DebugTraceEmitter)(nil)
	_ Emitter = (*OTLPTraceEmitter)(nil)
)

// DebugTraceEmitter writes each batch as one line of OTLP JSON.
type DebugTraceEmitter struct {
	out io.Writer
}

func NewDebugTraceEmitter(out io.Writer) *DebugTraceEmitter {
	return &DebugTraceEmitter{
		out: out,
	}
}

func (e *DebugTraceEmitter) Emit(_ context.Context, td ptrace.Traces) error {
	if td.SpanCount() == 0 {
		return nil
	}

	marshaller := ptrace.JSONMarshaler{}

	msgBody, err := marshaller.MarshalTraces(td)
	if err != nil {
		return fmt.Errorf("failed to marshal traces: %w", err)
	}
	if _, err := e.out.Write(append(msgBody, '\n')); err != nil {
		return fmt.Errorf("failed to write traces: %w", err)
	}
	return nil
}

// OTLPTraceEmitter ships run traces to <endpoint>/v1/traces. Spans the
// collector reports as rejected fail the emit.
type OTLPTraceEmitter struct {
	client *otlphttp.Client
}

func NewOTLPTraceEmitter(client *http.Client, endpoint string, headers map[string]string) (*OTLPTraceEmitter, error) {
	c, err := otlphttp.New(client, endpoint, headers)
	if err != nil {
		return nil, err
	}
	return &OTLPTraceEmitter{client: c}, nil
}

func (e *OTLPTraceEmitter) Emit(ctx context.Context, td ptrace.Traces) error {
	spans := td.SpanCount()
	if spans == 0 {
		return nil
	}

	body, err := ptraceotlp.NewExportRequestFromTraces(td).MarshalProto()
	if err != nil {
		return fmt.Errorf("failed to marshal traces to protobuf: %w", err)
	}
	respBody, err := e.client.Post(ctx, otlphttp.TracesPath, body)
	if err != nil || len(respBody) == 0 {
		return err
	}

	resp := ptraceotlp.NewExportResponse()
	if err := resp.UnmarshalProto(respBody); err != nil {
		return fmt.Errorf("failed to decode collector response: %w", err)
	}
	if rejected := resp.PartialSuccess().RejectedSpans(); rejected > 0 {
		return fmt.Errorf("collector rejected %d of %d spans: %s",
			rejected, spans, resp.PartialSuccess().ErrorMessage())
	}
	return nil
}
