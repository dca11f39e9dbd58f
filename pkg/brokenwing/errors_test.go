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

package brokenwing

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStageError(t *testing.T) {
	t.Run("spectrum-level failure", func(t *testing.T) {
		err := &StageError{Stage: StageIdentify, Spectrum: 1, Sim: -1, Err: ErrIdentificationDidNotConverge}
		assert.Equal(t, "identify failed for spectrum 1: parameter identification did not converge", err.Error())
		assert.ErrorIs(t, err, ErrIdentificationDidNotConverge)
	})

	t.Run("model-level failure", func(t *testing.T) {
		err := &StageError{Stage: StageFilter, Spectrum: -1, Sim: -1, Err: ErrInvalidFilterOrder}
		assert.Equal(t, "filter failed: invalid filter order", err.Error())
	})

	t.Run("simulation-level failure", func(t *testing.T) {
		inner := fmt.Errorf("history of 10 samples: %w", ErrSignalTooShortForWindow)
		err := fmt.Errorf("generate: %w", &StageError{Stage: StagePostprocess, Spectrum: 0, Sim: 3, Err: inner})
		assert.ErrorIs(t, err, ErrSignalTooShortForWindow)

		var se *StageError
		if assert.True(t, errors.As(err, &se)) {
			assert.Equal(t, StagePostprocess, se.Stage)
			assert.Equal(t, 3, se.Sim)
		}
		assert.Contains(t, err.Error(), "simulation 3")
	})
}

func TestDecodeError(t *testing.T) {
	err := &DecodeError{Name: "northridge", Err: ErrInvalidScenario}
	assert.Equal(t, `unable to decode scenario spec for "northridge": invalid scenario`, err.Error())
	assert.ErrorIs(t, err, ErrInvalidScenario)
}
