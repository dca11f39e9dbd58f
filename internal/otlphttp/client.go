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

// Package otlphttp posts OTLP protobuf export requests to a collector.
package otlphttp

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
)

const (
	MetricsPath = "/v1/metrics"
	TracesPath  = "/v1/traces"

	userAgent = "tremor"
	// collector error bodies are cut to this many bytes
	maxErrorBody = 1024
)

type Client struct {
	http     *http.Client
	endpoint string
	headers  map[string]string
}

// New returns a client for the collector at endpoint. A nil client uses
// http.DefaultClient.
func New(client *http.Client, endpoint string, headers map[string]string) (*Client, error) {
	endpoint = strings.TrimRight(endpoint, "/")
	if endpoint == "" {
		return nil, fmt.Errorf("otlp endpoint is required")
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &Client{http: client, endpoint: endpoint, headers: headers}, nil
}

func (c *Client) URL(path string) string {
	return c.endpoint + path
}

// Post sends body to the signal path and returns the response body of a
// 2xx reply.
func (c *Client) Post(ctx context.Context, path string, body []byte) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.URL(path), bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP request: %w", err)
	}
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}
	req.Header.Set("Content-Type", "application/x-protobuf")
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to post to %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, fmt.Errorf("collector returned %s for %s: %s", resp.Status, path, strings.TrimSpace(string(respBody)))
	}
	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read collector response: %w", err)
	}
	return respBody, nil
}
