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

package regression

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/cardinalhq/tremor/pkg/distribution"
)

func TestCovariatesSiteClass(t *testing.T) {
	tests := []struct {
		name string
		vs30 float64
		slot int
	}{
		{"soft", 250, 4},
		{"soft boundary", 300, 4},
		{"medium", 400, 5},
		{"medium boundary", 450, 5},
		{"hard", 760, 6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Covariates(6.5, 20, tt.vs30)
			require.Len(t, c, NumCovariates)
			for slot := 4; slot < 7; slot++ {
				if slot == tt.slot {
					assert.InDelta(t, math.Log(tt.vs30/450), c[slot], 1e-12)
				} else {
					assert.Equal(t, 0.0, c[slot])
				}
			}
		})
	}

	c := Covariates(6, 25, 500)
	assert.Equal(t, 1.0, c[0])
	assert.Equal(t, 1.0, c[1])
	assert.InDelta(t, 0.0, c[2], 1e-12)
	assert.InDelta(t, 0.0, c[3], 1e-12)
}

func TestConditionalMean(t *testing.T) {
	tests := []struct {
		magnitude, distance, vs30 float64
		want                      map[int]float64
	}{
		{7, 10, 500, map[int]float64{0: -0.4806188797, 16: 1.218410007, 17: 0.4853466876}},
		{6, 25, 250, map[int]float64{0: -0.1070740852, 16: -0.309089772, 17: -0.4401633016}},
	}
	for _, tt := range tests {
		mean := ConditionalMean(tt.magnitude, tt.distance, tt.vs30)
		require.Len(t, mean, NumParameters)
		for slot, want := range tt.want {
			assert.InDelta(t, want, mean[slot], 1e-9, "slot %d", slot)
		}
	}
}

func TestCovarianceIsPositiveDefinite(t *testing.T) {
	cov := Covariance()
	variance := Variance()
	for i := range NumParameters {
		assert.InDelta(t, variance[i], cov.At(i, i), 1e-12)
	}
	assert.InDelta(t, -0.6701*math.Sqrt(0.90*0.80), cov.At(0, 17), 1e-12)
	assert.Equal(t, cov.At(3, 2), cov.At(2, 3))

	var chol mat.Cholesky
	assert.True(t, chol.Factorize(cov))
}

func TestAccessorsReturnCopies(t *testing.T) {
	v := Variance()
	v[0] = 42
	assert.Equal(t, 0.90, Variance()[0])

	b := Beta()
	b.Set(0, 0, 42)
	assert.Equal(t, -1.1417, Beta().At(0, 0))

	c := Correlation()
	assert.Equal(t, 1.0, c.At(17, 17))
	assert.Equal(t, 0.9467, c.At(3, 2))
}

func TestMarginals(t *testing.T) {
	m, err := Marginals()
	require.NoError(t, err)
	require.Len(t, m, NumParameters)

	kinds := map[int]distribution.Kind{
		0:  distribution.KindLogNormal,
		2:  distribution.KindNormal,
		8:  distribution.KindBeta,
		11: distribution.KindStudentsT,
		12: distribution.KindInverseGaussian,
		17: distribution.KindLogNormal,
	}
	for slot, kind := range kinds {
		assert.Equal(t, kind, m[slot].Kind(), "slot %d", slot)
	}
	assert.Equal(t, []float64{0.792, 0.157, 4.223}, m[14].Params())
}
