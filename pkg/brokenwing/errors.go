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
)

// Custom error types
var (
	ErrNonPositiveSemidefiniteCovariance = errors.New("covariance matrix is not positive semi-definite")
	ErrMarginalTransformFailure          = errors.New("marginal transform failed")
	ErrIdentificationDidNotConverge      = errors.New("parameter identification did not converge")
	ErrSignalTooShortForWindow           = errors.New("signal too short for taper window")
	ErrInvalidFilterOrder                = errors.New("invalid filter order")
	ErrFilterDesignFailure               = errors.New("filter design failed")
	ErrDegenerateSpectrumRow             = errors.New("degenerate power spectrum row")
	ErrInvalidScenario                   = errors.New("invalid scenario")
	ErrUnknownModel                      = errors.New("unknown model type")
	ErrNoScenarios                       = errors.New("no scenario actions found in config")
	ErrDuplicateScenario                 = errors.New("duplicate scenario name")
	ErrRunNotFound                       = errors.New("run not found in archive")
)

// Stage names the pipeline step an error came from.
type Stage string

const (
	StageSample      Stage = "sample"
	StageIdentify    Stage = "identify"
	StageSpectrum    Stage = "spectrum"
	StageFilter      Stage = "filter"
	StagePostprocess Stage = "postprocess"
	StageRotate      Stage = "rotate"
	StageWrite       Stage = "write"
)

// StageError tags a failure with the stage and the spectrum / simulation
// it aborted. Spectrum and Sim are -1 when the failure is not tied to one.
type StageError struct {
	Stage    Stage
	Spectrum int
	Sim      int
	Err      error
}

func (e *StageError) Error() string {
	if e.Spectrum < 0 {
		return fmt.Sprintf("%s failed: %v", e.Stage, e.Err)
	}
	if e.Sim < 0 {
		return fmt.Sprintf("%s failed for spectrum %d: %v", e.Stage, e.Spectrum, e.Err)
	}
	return fmt.Sprintf("%s failed for spectrum %d, simulation %d: %v", e.Stage, e.Spectrum, e.Sim, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

type DecodeError struct {
	Name string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("unable to decode scenario spec for %q: %v", e.Name, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
