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

package vlachos

import (
	"fmt"
	"math"
)

const (
	// synthesized histories are in cm/s²
	centimetersPerMeter = 100.0
	StandardGravityMPS2 = 9.81
)

// Rotate splits a single-axis history into two orthogonal horizontal
// components at orientationDeg from the x axis, converted from cm/s² to
// the requested units.
func Rotate(accel []float64, orientationDeg float64, units Units) (x, y []float64, err error) {
	scale := centimetersPerMeter
	switch units {
	case MetersPerSecondSquared:
	case StandardGravity:
		scale *= StandardGravityMPS2
	default:
		return nil, nil, fmt.Errorf("unknown units %d", int(units))
	}
	if math.IsNaN(orientationDeg) || math.IsInf(orientationDeg, 0) {
		return nil, nil, fmt.Errorf("orientation %v is not finite", orientationDeg)
	}

	sin, cos := math.Sincos(orientationDeg * math.Pi / 180)
	x = make([]float64, len(accel))
	y = make([]float64, len(accel))
	for i, h := range accel {
		x[i] = h * cos / scale
		y[i] = h * sin / scale
	}
	return x, y, nil
}
