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

package marginal

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cardinalhq/tremor/pkg/brokenwing"
	"github.com/cardinalhq/tremor/pkg/distribution"
	"github.com/cardinalhq/tremor/pkg/regression"
)

func TestTransformMedians(t *testing.T) {
	targets, err := regression.Marginals()
	require.NoError(t, err)
	tr := New(targets)

	// zero in normal space is the median of every target
	out, err := tr.Transform(make([]float64, regression.NumParameters))
	require.NoError(t, err)
	assert.InDelta(t, math.Exp(-1.735), out[0], 1e-9)
	assert.InDelta(t, 0.249, out[2], 1e-9)
	assert.InDelta(t, 0.205, out[11], 1e-9)
	assert.InDelta(t, math.Exp(3.658), out[17], 1e-9)
	assert.Greater(t, out[8], 0.0)
	assert.Less(t, out[8], 1.0)
}

func TestTransformClampsExtremes(t *testing.T) {
	targets, err := regression.Marginals()
	require.NoError(t, err)
	tr := New(targets)

	for _, z := range []float64{-40, 40, math.Inf(1), math.Inf(-1)} {
		in := make([]float64, regression.NumParameters)
		for i := range in {
			in[i] = z
		}
		out, err := tr.Transform(in)
		require.NoError(t, err, "z=%v", z)
		for i, v := range out {
			assert.False(t, math.IsNaN(v) || math.IsInf(v, 0), "slot %d z=%v", i, z)
		}
	}
}

func TestTransformErrors(t *testing.T) {
	n, _ := distribution.NewNormal(0, 1)
	tr := New([]distribution.Marginal{n})

	_, err := tr.Transform([]float64{0, 1})
	assert.ErrorIs(t, err, brokenwing.ErrMarginalTransformFailure)

	_, err = tr.Transform([]float64{math.NaN()})
	assert.ErrorIs(t, err, brokenwing.ErrMarginalTransformFailure)
}
