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
	"fmt"
	"math/rand/v2"

	"gonum.org/v1/gonum/mat"

	"github.com/cardinalhq/tremor/pkg/brokenwing"
)

// Sampler draws correlated normal vectors as mean + L·z, L the lower
// Cholesky factor of the covariance.
type Sampler struct {
	mean  []float64
	lower mat.TriDense
}

func New(mean []float64, cov mat.Symmetric) (*Sampler, error) {
	if n := cov.SymmetricDim(); n != len(mean) {
		return nil, fmt.Errorf("mean has %d entries, covariance is %dx%d", len(mean), n, n)
	}
	var chol mat.Cholesky
	if ok := chol.Factorize(cov); !ok {
		return nil, brokenwing.ErrNonPositiveSemidefiniteCovariance
	}
	s := &Sampler{mean: make([]float64, len(mean))}
	copy(s.mean, mean)
	chol.LTo(&s.lower)
	return s, nil
}

func (s *Sampler) Dim() int {
	return len(s.mean)
}

// Draw returns one realization. The standard normals are consumed from r
// in row order.
func (s *Sampler) Draw(r *rand.Rand) []float64 {
	n := len(s.mean)
	z := make([]float64, n)
	for i := range z {
		z[i] = r.NormFloat64()
	}
	out := make([]float64, n)
	for i := range n {
		sum := s.mean[i]
		for j := 0; j <= i; j++ {
			sum += s.lower.At(i, j) * z[j]
		}
		out[i] = sum
	}
	return out
}

// Generate returns a Dim×count matrix with one realization per column,
// drawn column by column.
func (s *Sampler) Generate(count int, r *rand.Rand) *mat.Dense {
	if count <= 0 {
		return &mat.Dense{}
	}
	out := mat.NewDense(len(s.mean), count, nil)
	for c := range count {
		out.SetCol(c, s.Draw(r))
	}
	return out
}
