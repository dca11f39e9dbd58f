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

package otlphttp

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPost(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, TracesPath, r.URL.Path)
		assert.Equal(t, "application/x-protobuf", r.Header.Get("Content-Type"))
		assert.Equal(t, "tremor", r.Header.Get("User-Agent"))
		assert.Equal(t, "secret", r.Header.Get("x-api-key"))
		body, err := io.ReadAll(r.Body)
		assert.NoError(t, err)
		assert.Equal(t, "payload", string(body))
		w.WriteHeader(http.StatusAccepted)
		_, _ = w.Write([]byte("ack"))
	}))
	defer srv.Close()

	c, err := New(srv.Client(), srv.URL+"//", map[string]string{"x-api-key": "secret"})
	require.NoError(t, err)
	assert.Equal(t, srv.URL+MetricsPath, c.URL(MetricsPath))

	got, err := c.Post(context.Background(), TracesPath, []byte("payload"))
	require.NoError(t, err)
	assert.Equal(t, "ack", string(got))
}

func TestPostErrors(t *testing.T) {
	_, err := New(nil, "/", nil)
	assert.Error(t, err)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, strings.Repeat("x", 4*maxErrorBody), http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c, err := New(nil, srv.URL, nil)
	require.NoError(t, err)
	_, err = c.Post(context.Background(), MetricsPath, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
	assert.Less(t, len(err.Error()), 2*maxErrorBody)
}
