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

package archive

import (
	"context"
	"math"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cardinalhq/tremor/pkg/brokenwing"
	"github.com/cardinalhq/tremor/pkg/result"
	"github.com/cardinalhq/tremor/pkg/vlachos"
)

func tempStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(filepath.Join(t.TempDir(), "archive.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func sampleResult() *result.Result {
	return &result.Result{Events: []result.Event{
		{
			Name:        "quake_0_0",
			Type:        vlachos.EventType,
			Description: vlachos.ModelName,
			TimeSeries: []result.TimeSeries{
				{Name: "quake_0_0_x", Dt: 0.005, Data: []float64{0, 1.5e-3, -2.25e-4, math.SmallestNonzeroFloat64}},
				{Name: "quake_0_0_y", Dt: 0.005, Data: []float64{0, -7e-4, 3.1e-5, 0}},
			},
			Pattern: []result.Pattern{
				{Name: "quake_0_0_x", Type: result.PatternUniformAcceleration, TimeSeries: "quake_0_0_x", Dof: 1},
				{Name: "quake_0_0_y", Type: result.PatternUniformAcceleration, TimeSeries: "quake_0_0_y", Dof: 2},
			},
			Metadata: &result.Metadata{Model: vlachos.ModelName, Seed: math.MaxUint64, Attempts: 3, Parameters: []float64{1, 2}},
		},
		{
			Name:       "quake_1_0",
			TimeSeries: []result.TimeSeries{{Name: "quake_1_0_x", Dt: 0.01, Data: []float64{9}}},
			Pattern:    []result.Pattern{},
		},
	}}
}

func TestSaveAndLoadRun(t *testing.T) {
	s := tempStore(t)
	ctx := context.Background()
	created := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	res := sampleResult()
	id, err := s.SaveRun(ctx, RunRecord{
		Event:      "quake",
		Model:      vlachos.ModelName,
		Seed:       math.MaxUint64,
		Units:      "g",
		Magnitude:  7,
		DistanceKm: 10,
		Vs30:       500,
		NumSpectra: 2,
		NumSims:    1,
		Elapsed:    1500 * time.Millisecond,
		CreatedAt:  created,
	}, res)
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	runs, err := s.ListRuns(ctx)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, id, runs[0].RunID)
	assert.Equal(t, uint64(math.MaxUint64), runs[0].Seed)
	assert.Equal(t, 2, runs[0].NumEvents)
	assert.Equal(t, 1500*time.Millisecond, runs[0].Elapsed)
	assert.True(t, created.Equal(runs[0].CreatedAt))

	got, err := s.LoadResult(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, res, got)
}

func TestLoadResultUnknownRun(t *testing.T) {
	_, err := tempStore(t).LoadResult(context.Background(), "nope")
	assert.ErrorIs(t, err, brokenwing.ErrRunNotFound)
}

func TestListRunsOrder(t *testing.T) {
	s := tempStore(t)
	ctx := context.Background()
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, name := range []string{"late", "early"} {
		_, err := s.SaveRun(ctx, RunRecord{
			RunID:     name,
			Event:     name,
			CreatedAt: base.Add(time.Duration(1-i) * time.Hour),
		}, &result.Result{})
		require.NoError(t, err)
	}

	runs, err := s.ListRuns(ctx)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "early", runs[0].RunID)
	assert.Equal(t, "late", runs[1].RunID)

	_, err = s.SaveRun(ctx, RunRecord{RunID: "late"}, &result.Result{})
	assert.Error(t, err)
}

func TestListRunsSubSecondOrder(t *testing.T) {
	s := tempStore(t)
	ctx := context.Background()
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	// saved out of order, with fractions that differ in trailing zeros
	for _, tt := range []struct {
		id   string
		nano int
	}{
		{"c", 120_000_000},
		{"a", 0},
		{"b", 100_000_000},
	} {
		_, err := s.SaveRun(ctx, RunRecord{RunID: tt.id, Event: tt.id, CreatedAt: base.Add(time.Duration(tt.nano))}, &result.Result{})
		require.NoError(t, err)
	}

	runs, err := s.ListRuns(ctx)
	require.NoError(t, err)
	require.Len(t, runs, 3)
	assert.Equal(t, []string{"a", "b", "c"}, []string{runs[0].RunID, runs[1].RunID, runs[2].RunID})
	assert.True(t, base.Add(120*time.Millisecond).Equal(runs[2].CreatedAt))
}

func TestEmitArchivesRun(t *testing.T) {
	s := tempStore(t)
	run := &vlachos.Run{
		Result: sampleResult(),
		Stats: vlachos.RunStats{
			Event:    "quake",
			Seed:     99,
			Units:    vlachos.StandardGravity,
			Scenario: vlachos.Scenario{Magnitude: 6.5, DistanceKm: 20, Vs30: 300, OrientationDeg: 45, NumSpectra: 2, NumSims: 1},
			Started:  time.Now(),
			Elapsed:  time.Second,
		},
	}
	require.NoError(t, s.Emit(context.Background(), run))

	runs, err := s.ListRuns(context.Background())
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "g", runs[0].Units)
	assert.Equal(t, 6.5, runs[0].Magnitude)
	assert.Equal(t, 45.0, runs[0].Orientation)
	assert.Equal(t, uint64(99), runs[0].Seed)
}
