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

package result

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleResult() *Result {
	return &Result{
		Events: []Event{
			{
				Name: "quake_0_0",
				TimeSeries: []TimeSeries{
					{Name: "quake_0_0_x", Dt: 0.005, Data: []float64{0.1, -0.2}},
					{Name: "quake_0_0_y", Dt: 0.005, Data: []float64{0.05, 0.3}},
				},
				Pattern: []Pattern{
					{Name: "quake_0_0_x", Type: PatternUniformAcceleration, TimeSeries: "quake_0_0_x", Dof: 1},
					{Name: "quake_0_0_y", Type: PatternUniformAcceleration, TimeSeries: "quake_0_0_y", Dof: 2},
				},
				Metadata: &Metadata{Model: "VlachosSiteSpecificEQ", Seed: 1<<63 + 5},
			},
		},
	}
}

func TestEncodeKeys(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, sampleResult().Encode(&buf))
	for _, key := range []string{`"Events"`, `"name"`, `"timeSeries"`, `"dt"`, `"data"`, `"pattern"`, `"dof"`} {
		assert.Contains(t, buf.String(), key)
	}
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.json")

	r := sampleResult()
	require.NoError(t, r.WriteFile(path))

	got, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, r, got)
	assert.Equal(t, 4, got.Samples())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary files are cleaned up")

	err = r.WriteFile(filepath.Join(dir, "missing", "out.json"))
	assert.Error(t, err)
}
