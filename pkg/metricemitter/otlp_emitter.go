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
	"net/http"

	"go.opentelemetry.io/collector/pdata/pmetric"
	"go.opentelemetry.io/collector/pdata/pmetric/pmetricotlp"

	"github.com/cardinalhq/tremor/internal/otlphttp"
)

// OTLPMetricEmitter ships run telemetry to <endpoint>/v1/metrics. A run's
// gauges go out in one request, and any data points the collector reports
// as rejected fail the emit.
type OTLPMetricEmitter struct {
	client *otlphttp.Client
}

func NewOTLPMetricEmitter(client *http.Client, endpoint string, headers map[string]string) (*OTLPMetricEmitter, error) {
	c, err := otlphttp.New(client, endpoint, headers)
	if err != nil {
		return nil, err
	}
	return &OTLPMetricEmitter{client: c}, nil
}

func (e *OTLPMetricEmitter) Emit(ctx context.Context, md pmetric.Metrics) error {
	points := md.DataPointCount()
	if points == 0 {
		return nil
	}

	body, err := pmetricotlp.NewExportRequestFromMetrics(md).MarshalProto()
	if err != nil {
		return fmt.Errorf("failed to marshal run telemetry: %w", err)
	}
	respBody, err := e.client.Post(ctx, otlphttp.MetricsPath, body)
	if err != nil {
		return err
	}
	if len(respBody) == 0 {
		return nil
	}

	resp := pmetricotlp.NewExportResponse()
	if err := resp.UnmarshalProto(respBody); err != nil {
		return fmt.Errorf("failed to decode collector response: %w", err)
	}
	if rejected := resp.PartialSuccess().RejectedDataPoints(); rejected > 0 {
		return fmt.Errorf("collector rejected %d of %d run data points: %s",
			rejected, points, resp.PartialSuccess().ErrorMessage())
	}
	return nil
}
