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

package script

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cardinalhq/tremor/pkg/brokenwing"
	"github.com/cardinalhq/tremor/pkg/config"
	"github.com/cardinalhq/tremor/pkg/scriptaction"
	"github.com/cardinalhq/tremor/pkg/state"
	"github.com/cardinalhq/tremor/pkg/vlachos"
)

type recordingEmitter struct {
	runs []*vlachos.Run
}

func (r *recordingEmitter) Emit(_ context.Context, run *vlachos.Run) error {
	r.runs = append(r.runs, run)
	return nil
}

func scenarioSpec() map[string]any {
	return map[string]any{
		"magnitude":   7,
		"distance":    10,
		"vs30":        "500",
		"orientation": 30,
		"numSpectra":  1,
		"numSims":     1,
	}
}

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.Seed = 17
	cfg.Model.CutoffFreq = 25
	return cfg
}

func TestPrepareActions(t *testing.T) {
	tests := []struct {
		name    string
		actions []scriptaction.ScriptAction
		want    []string
		wantErr error
	}{
		{
			name:    "sorted by name",
			actions: []scriptaction.ScriptAction{{Name: "b"}, {Name: "a"}, {Name: "c"}},
			want:    []string{"a", "b", "c"},
		},
		{
			name:    "disabled dropped",
			actions: []scriptaction.ScriptAction{{Name: "b", Disabled: true}, {Name: "a"}},
			want:    []string{"a"},
		},
		{
			name:    "no actions",
			wantErr: brokenwing.ErrNoScenarios,
		},
		{
			name:    "all disabled",
			actions: []scriptaction.ScriptAction{{Name: "a", Disabled: true}},
			wantErr: brokenwing.ErrNoScenarios,
		},
		{
			name:    "duplicate names",
			actions: []scriptaction.ScriptAction{{Name: "a"}, {Name: "b"}, {Name: "a"}},
			wantErr: brokenwing.ErrDuplicateScenario,
		},
		{
			name:    "missing name",
			actions: []scriptaction.ScriptAction{{Name: "a"}, {}},
			wantErr: brokenwing.ErrInvalidScenario,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := prepareActions(tt.actions)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			var names []string
			for _, a := range got {
				names = append(names, a.Name)
			}
			assert.Equal(t, tt.want, names)
		})
	}
}

func TestCreateModel(t *testing.T) {
	cfg := testConfig()

	t.Run("unknown type", func(t *testing.T) {
		_, err := CreateModel(scriptaction.ScriptAction{Name: "x", Type: "boore"}, cfg)
		assert.ErrorIs(t, err, brokenwing.ErrUnknownModel)
	})

	t.Run("unknown spec key", func(t *testing.T) {
		spec := scenarioSpec()
		spec["magnitud"] = 7
		_, err := CreateModel(scriptaction.ScriptAction{Name: "x", Type: "vlachos", Spec: spec}, cfg)
		var de *brokenwing.DecodeError
		require.True(t, errors.As(err, &de))
		assert.Equal(t, "x", de.Name)
	})

	t.Run("invalid scenario", func(t *testing.T) {
		spec := scenarioSpec()
		spec["vs30"] = 0
		_, err := CreateModel(scriptaction.ScriptAction{Name: "x", Type: "vlachos", Spec: spec}, cfg)
		assert.ErrorIs(t, err, brokenwing.ErrInvalidScenario)
	})

	t.Run("seed derived from config", func(t *testing.T) {
		m, err := CreateModel(scriptaction.ScriptAction{Name: "near", Type: vlachos.ModelName, Spec: scenarioSpec()}, cfg)
		require.NoError(t, err)
		assert.Equal(t, state.NamedSeed(17, "near"), m.Seed())
		assert.Equal(t, 500.0, m.Scenario().Vs30)
		assert.Equal(t, 30.0, m.Scenario().OrientationDeg)
	})

	t.Run("spec seed wins", func(t *testing.T) {
		spec := scenarioSpec()
		spec["seed"] = 5
		m, err := CreateModel(scriptaction.ScriptAction{Name: "near", Type: "vlachos", Spec: spec}, cfg)
		require.NoError(t, err)
		assert.Equal(t, uint64(5), m.Seed())
	})

	t.Run("config options applied", func(t *testing.T) {
		bad := testConfig()
		bad.Model.FilterOrder = 20
		_, err := CreateModel(scriptaction.ScriptAction{Name: "near", Type: "vlachos", Spec: scenarioSpec()}, bad)
		assert.ErrorIs(t, err, brokenwing.ErrInvalidFilterOrder)
	})
}

func TestRun(t *testing.T) {
	run := func() []*vlachos.Run {
		cfg := testConfig()
		cfg.Scenarios = []scriptaction.ScriptAction{
			{Name: "far", Type: "vlachos", Spec: scenarioSpec()},
			{Name: "near", Type: "vlachos", Spec: scenarioSpec()},
		}
		rec := &recordingEmitter{}
		s := NewScript()
		s.AddEmitter(rec)
		s.AddAction(scriptaction.ScriptAction{Name: "extra", Type: "vlachos", Spec: scenarioSpec(), Disabled: true})
		require.NoError(t, Run(context.Background(), cfg, s))
		return rec.runs
	}

	first := run()
	require.Len(t, first, 2)
	assert.Equal(t, "far", first[0].Stats.Event)
	assert.Equal(t, "near", first[1].Stats.Event)
	assert.Equal(t, "far_0_0", first[0].Result.Events[0].Name)
	assert.NotEqual(t, first[0].Stats.Seed, first[1].Stats.Seed)

	second := run()
	assert.Equal(t, first[1].Result, second[1].Result)
}

func TestRunErrors(t *testing.T) {
	cfg := testConfig()
	assert.ErrorIs(t, Run(context.Background(), cfg, NewScript()), brokenwing.ErrNoScenarios)

	cfg.Scenarios = []scriptaction.ScriptAction{{Name: "odd", Type: "mystery"}}
	assert.ErrorIs(t, Run(context.Background(), cfg, NewScript()), brokenwing.ErrUnknownModel)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	cfg.Scenarios = []scriptaction.ScriptAction{{Name: "near", Type: "vlachos", Spec: scenarioSpec()}}
	assert.ErrorIs(t, Run(ctx, cfg, NewScript()), context.Canceled)
}

func TestRunReusesScript(t *testing.T) {
	cfg := testConfig()
	cfg.Scenarios = []scriptaction.ScriptAction{{Name: "near", Type: "vlachos", Spec: scenarioSpec()}}
	rec := &recordingEmitter{}
	s := NewScript()
	s.AddEmitter(rec)

	require.NoError(t, Run(context.Background(), cfg, s))
	require.NoError(t, Run(context.Background(), cfg, s))
	require.Len(t, rec.runs, 2)
	assert.Equal(t, rec.runs[0].Result, rec.runs[1].Result)
	assert.Empty(t, s.actions)
}
