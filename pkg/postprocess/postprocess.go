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
	"fmt"
	"math"
	"slices"

	"gonum.org/v1/gonum/dsp/window"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/cardinalhq/tremor/pkg/brokenwing"
	"github.com/cardinalhq/tremor/pkg/dsp"
)

const DefaultTaperSeconds = 1.0

// PostProcessor tapers, de-means and filters raw synthesized histories.
type PostProcessor struct {
	impulse []float64
	ramp    []float64
	minLen  int
}

// New prepares a post-processor for sample spacing dt. The taper ramps
// are the first half of a Hann window spanning taperSeconds, and impulse
// is the filter applied by convolution.
func New(dt, taperSeconds float64, impulse []float64) (*PostProcessor, error) {
	if !(dt > 0) || !(taperSeconds > 0) || math.IsInf(dt, 1) || math.IsInf(taperSeconds, 1) {
		return nil, fmt.Errorf("invalid taper: dt %v, seconds %v", dt, taperSeconds)
	}
	if len(impulse) == 0 {
		return nil, fmt.Errorf("empty impulse response")
	}
	hannLen := int(taperSeconds/dt + 1)
	hann := make([]float64, hannLen)
	for i := range hann {
		hann[i] = 1
	}
	window.Hann(hann)

	return &PostProcessor{
		impulse: slices.Clone(impulse),
		ramp:    hann[:(hannLen-1)/2],
		minLen:  hannLen,
	}, nil
}

// Window returns the taper for a history of n samples: the rising ramp,
// ones, then the ramp reversed.
func (pp *PostProcessor) Window(n int) ([]float64, error) {
	if n < pp.minLen {
		return nil, fmt.Errorf("%w: %d samples, need at least %d",
			brokenwing.ErrSignalTooShortForWindow, n, pp.minLen)
	}
	w := make([]float64, n)
	for i := range w {
		w[i] = 1
	}
	copy(w, pp.ramp)
	for i, v := range pp.ramp {
		w[n-1-i] = v
	}
	return w, nil
}

// Apply returns the filtered history, of length len(history)+len(impulse)-1.
// The input is left untouched.
func (pp *PostProcessor) Apply(history []float64) ([]float64, error) {
	w, err := pp.Window(len(history))
	if err != nil {
		return nil, err
	}
	mean := stat.Mean(history, nil)
	tapered := slices.Clone(history)
	floats.AddConst(-mean, tapered)
	floats.Mul(tapered, w)
	return dsp.Convolve(tapered, pp.impulse), nil
}

// ImpulseLen is the length of the filter the processor convolves with.
func (pp *PostProcessor) ImpulseLen() int {
	return len(pp.impulse)
}
