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

package sampler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/cardinalhq/tremor/pkg/brokenwing"
	"github.com/cardinalhq/tremor/pkg/regression"
	"github.com/cardinalhq/tremor/pkg/state"
)

func TestNewRejectsIndefiniteCovariance(t *testing.T) {
	cov := mat.NewSymDense(2, []float64{1, 2, 2, 1})
	_, err := New([]float64{0, 0}, cov)
	assert.ErrorIs(t, err, brokenwing.ErrNonPositiveSemidefiniteCovariance)

	_, err = New([]float64{0}, mat.NewSymDense(2, []float64{1, 0, 0, 1}))
	assert.Error(t, err)
}

func TestGenerateIsDeterministic(t *testing.T) {
	mean := regression.ConditionalMean(7, 10, 500)
	s, err := New(mean, regression.Covariance())
	require.NoError(t, err)

	a := s.Generate(5, state.MakeRNG(100))
	b := s.Generate(5, state.MakeRNG(100))
	assert.True(t, mat.Equal(a, b))

	rows, cols := a.Dims()
	assert.Equal(t, regression.NumParameters, rows)
	assert.Equal(t, 5, cols)

	// column-major draw order: the first column equals a single Draw
	first := s.Draw(state.MakeRNG(100))
	assert.Equal(t, first, mat.Col(nil, 0, a))
}

func TestGenerateMatchesMoments(t *testing.T) {
	mean := []float64{1, -2}
	cov := mat.NewSymDense(2, []float64{4, 1.2, 1.2, 1})
	s, err := New(mean, cov)
	require.NoError(t, err)

	const n = 20000
	draws := s.Generate(n, state.MakeRNG(7))
	x := mat.Row(nil, 0, draws)
	y := mat.Row(nil, 1, draws)

	assert.InDelta(t, 1, stat.Mean(x, nil), 0.05)
	assert.InDelta(t, -2, stat.Mean(y, nil), 0.05)
	assert.InDelta(t, 4, stat.Variance(x, nil), 0.2)
	assert.InDelta(t, 1, stat.Variance(y, nil), 0.05)
	assert.InDelta(t, 1.2, stat.Covariance(x, y, nil), 0.1)
}

func TestGenerateZeroCount(t *testing.T) {
	s, err := New([]float64{0}, mat.NewSymDense(1, []float64{1}))
	require.NoError(t, err)
	assert.True(t, s.Generate(0, state.MakeRNG(1)).IsEmpty())
}
