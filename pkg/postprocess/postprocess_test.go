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

package postprocess

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cardinalhq/tremor/pkg/brokenwing"
)

func TestWindow(t *testing.T) {
	pp, err := New(0.005, DefaultTaperSeconds, []float64{1})
	require.NoError(t, err)

	_, err = pp.Window(200)
	assert.ErrorIs(t, err, brokenwing.ErrSignalTooShortForWindow)

	w, err := pp.Window(201)
	require.NoError(t, err)
	assert.Len(t, w, 201)

	w, err = pp.Window(300)
	require.NoError(t, err)
	require.Len(t, w, 300)

	tests := []struct {
		index int
		want  float64
	}{
		{0, 0},
		{50, 0.5},
		{99, 0.5 * (1 - math.Cos(2*math.Pi*99/200))},
		{100, 1},
		{150, 1},
		{199, 1},
		{200, 0.5 * (1 - math.Cos(2*math.Pi*99/200))},
		{249, 0.5},
		{299, 0},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, w[tt.index], 1e-12, "index %d", tt.index)
	}
}

func TestApply(t *testing.T) {
	t.Run("identity filter tapers and de-means", func(t *testing.T) {
		pp, err := New(0.005, 1, []float64{1})
		require.NoError(t, err)

		history := make([]float64, 300)
		for i := range history {
			history[i] = 3 + math.Sin(float64(i)/7)
		}
		input := append([]float64(nil), history...)

		out, err := pp.Apply(history)
		require.NoError(t, err)
		require.Len(t, out, 300)
		assert.Equal(t, input, history)

		var mean float64
		for _, v := range history {
			mean += v
		}
		mean /= float64(len(history))
		w, _ := pp.Window(300)
		for i := range out {
			assert.InDelta(t, (history[i]-mean)*w[i], out[i], 1e-12)
		}
	})

	t.Run("constant input vanishes", func(t *testing.T) {
		pp, err := New(0.005, 1, []float64{0.5, 0.25})
		require.NoError(t, err)
		history := make([]float64, 250)
		for i := range history {
			history[i] = 5
		}
		out, err := pp.Apply(history)
		require.NoError(t, err)
		require.Len(t, out, 251)
		for _, v := range out {
			assert.InDelta(t, 0, v, 1e-12)
		}
	})

	t.Run("too short", func(t *testing.T) {
		pp, err := New(0.005, 1, []float64{1})
		require.NoError(t, err)
		_, err = pp.Apply(make([]float64, 10))
		assert.ErrorIs(t, err, brokenwing.ErrSignalTooShortForWindow)
	})
}

func TestNewErrors(t *testing.T) {
	_, err := New(0, 1, []float64{1})
	assert.Error(t, err)
	_, err = New(0.005, 1, nil)
	assert.Error(t, err)
	_, err = New(0.005, math.Inf(1), []float64{1})
	assert.Error(t, err)

	pp, err := New(0.005, 1, []float64{1, 2, 1})
	require.NoError(t, err)
	assert.Equal(t, 3, pp.ImpulseLen())
}
