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
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/cardinalhq/tremor/pkg/brokenwing"
	"github.com/cardinalhq/tremor/pkg/distribution"
)

// Epsilon bounds the probabilities handed to the quantile functions away
// from 0 and 1.
const Epsilon = 1e-12

// Transformer maps normal-space vectors to physical space slot by slot
// through Quantile(Φ(x)).
type Transformer struct {
	targets []distribution.Marginal
}

func New(targets []distribution.Marginal) *Transformer {
	t := &Transformer{targets: make([]distribution.Marginal, len(targets))}
	copy(t.targets, targets)
	return t
}

func (t *Transformer) Dim() int {
	return len(t.targets)
}

func (t *Transformer) Transform(normal []float64) ([]float64, error) {
	if len(normal) != len(t.targets) {
		return nil, fmt.Errorf("%w: got %d values for %d marginals",
			brokenwing.ErrMarginalTransformFailure, len(normal), len(t.targets))
	}
	out := make([]float64, len(normal))
	for i, x := range normal {
		p := distuv.UnitNormal.CDF(x)
		if math.IsNaN(p) {
			return nil, fmt.Errorf("%w: parameter %d has normal value %v",
				brokenwing.ErrMarginalTransformFailure, i, x)
		}
		p = math.Min(math.Max(p, Epsilon), 1-Epsilon)
		v := t.targets[i].Quantile(p)
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("%w: parameter %d (%s) maps %v to %v",
				brokenwing.ErrMarginalTransformFailure, i, t.targets[i].Kind(), x, v)
		}
		out[i] = v
	}
	return out, nil
}
