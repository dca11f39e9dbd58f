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

package commands

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cardinalhq/tremor/pkg/archive"
	"github.com/cardinalhq/tremor/pkg/config"
	"github.com/cardinalhq/tremor/pkg/result"
	"github.com/cardinalhq/tremor/pkg/scriptaction"
)

func smallConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	cfg := config.Default()
	cfg.Seed = 3
	cfg.Output = filepath.Join(dir, "out")
	cfg.Archive = filepath.Join(dir, "runs.db")
	cfg.Model.CutoffFreq = 25
	cfg.Scenarios = []scriptaction.ScriptAction{{
		Name: "near",
		Type: "vlachos",
		Spec: map[string]any{"magnitude": 7, "distance": 10, "vs30": 500},
	}}
	return cfg
}

func TestGenerateWritesOutputs(t *testing.T) {
	cfg := smallConfig(t)
	var stdout, stderr bytes.Buffer
	flags := outputFlags{debug: true, progress: true, debugMetrics: true, debugTraces: true}
	require.NoError(t, generate(context.Background(), cfg, flags, &stdout, &stderr))

	assert.Empty(t, stdout.String())
	res, err := result.ReadFile(filepath.Join(cfg.Output, "near.json"))
	require.NoError(t, err)
	require.Len(t, res.Events, 1)
	assert.Equal(t, "near_0_0", res.Events[0].Name)

	assert.Contains(t, stderr.String(), `"event":"near_0_0"`)
	assert.Contains(t, stderr.String(), "Sim 1/1 100.00%")
	assert.Contains(t, stderr.String(), "tremor.simulation.pga")
	assert.Contains(t, stderr.String(), "tremor.run")

	store, err := archive.NewStore(cfg.Archive)
	require.NoError(t, err)
	defer store.Close()
	runs, err := store.ListRuns(context.Background())
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "near", runs[0].Event)

	t.Run("archive list", func(t *testing.T) {
		var out bytes.Buffer
		archiveListCmd.SetOut(&out)
		archiveListCmd.SetContext(context.Background())
		require.NoError(t, archiveListCmd.RunE(archiveListCmd, []string{cfg.Archive}))
		lines := strings.Split(strings.TrimSpace(out.String()), "\n")
		require.Len(t, lines, 2)
		assert.True(t, strings.HasPrefix(lines[1], runs[0].RunID))
	})

	t.Run("archive export", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "export.json")
		archiveExportCmd.SetContext(context.Background())
		require.NoError(t, archiveExportCmd.RunE(archiveExportCmd, []string{cfg.Archive, runs[0].RunID, path}))
		exported, err := result.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, res, exported)
	})
}

func TestGenerateToStdout(t *testing.T) {
	cfg := smallConfig(t)
	cfg.Output = ""
	cfg.Archive = ""
	var stdout, stderr bytes.Buffer
	require.NoError(t, generate(context.Background(), cfg, outputFlags{}, &stdout, &stderr))

	res, err := result.Decode(&stdout)
	require.NoError(t, err)
	assert.Len(t, res.Events, 1)
}

func TestGenerateCommandNeedsFiles(t *testing.T) {
	assert.Error(t, GenerateCmd.RunE(GenerateCmd, nil))

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("units: cubits\n"), 0o644))
	assert.Error(t, GenerateCmd.RunE(GenerateCmd, []string{path}))
}

func TestScenarioConfig(t *testing.T) {
	o := scenarioOptions{
		name:       "quake",
		magnitude:  6.5,
		distance:   25,
		vs30:       250,
		spectra:    2,
		sims:       3,
		units:      "g",
		filterMode: "causal",
	}
	cfg, err := o.config(ScenarioCmd)
	require.NoError(t, err)
	assert.Equal(t, "g", cfg.Units)
	assert.Equal(t, "causal", cfg.Model.FilterMode)
	require.Len(t, cfg.Scenarios, 1)
	assert.Equal(t, "quake", cfg.Scenarios[0].Name)
	assert.Equal(t, 6.5, cfg.Scenarios[0].Spec["magnitude"])
	assert.NotContains(t, cfg.Scenarios[0].Spec, "seed")

	o.units = "furlongs"
	_, err = o.config(ScenarioCmd)
	assert.Error(t, err)
}

func TestMergeSweeps(t *testing.T) {
	path := filepath.Join(t.TempDir(), "grid.yaml")
	require.NoError(t, os.WriteFile(path, []byte("sweeps:\n  - name: g\n    magnitudes: [6, 7]\n    distances: [10]\n    vs30s: [300]\n"), 0o644))

	cfg := config.Default()
	require.NoError(t, mergeSweeps(cfg, []string{path}))
	require.Len(t, cfg.Scenarios, 2)
	assert.Equal(t, "g_M6_R10_V300", cfg.Scenarios[0].Name)

	assert.Error(t, mergeSweeps(cfg, []string{filepath.Join(t.TempDir(), "missing.yaml")}))
}
