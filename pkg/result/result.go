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

package result

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

const PatternUniformAcceleration = "UniformAcceleration"

type Result struct {
	Events []Event `json:"Events"`
}

type Event struct {
	Name        string       `json:"name"`
	Type        string       `json:"type,omitempty"`
	Description string       `json:"description,omitempty"`
	TimeSeries  []TimeSeries `json:"timeSeries"`
	Pattern     []Pattern    `json:"pattern"`
	Metadata    *Metadata    `json:"metadata,omitempty"`
}

type TimeSeries struct {
	Name string    `json:"name"`
	Dt   float64   `json:"dt"`
	Data []float64 `json:"data"`
}

// Pattern applies a time series to a degree of freedom of the structure.
type Pattern struct {
	Name       string `json:"name"`
	Type       string `json:"type"`
	TimeSeries string `json:"timeSeries"`
	Dof        int    `json:"dof"`
}

type Metadata struct {
	Model       string    `json:"model"`
	Spectrum    int       `json:"spectrum"`
	Simulation  int       `json:"simulation"`
	Seed        uint64    `json:"seed"`
	Units       string    `json:"units"`
	Magnitude   float64   `json:"magnitude"`
	DistanceKm  float64   `json:"distance"`
	Vs30        float64   `json:"vs30"`
	Orientation float64   `json:"orientation"`
	Attempts    int       `json:"identificationAttempts"`
	Parameters  []float64 `json:"parameters"`
	PeakX       float64   `json:"pgaX"`
	PeakY       float64   `json:"pgaY"`
	FilterMode  string    `json:"filterMode"`
	TimeSteps   int       `json:"timeSteps"`
	FreqSteps   int       `json:"freqSteps"`
	// log10 of the second mode participation factor at each time step
	LogParticipation []float64 `json:"logParticipation,omitempty"`
}

// Encode writes r as indented JSON.
func (r *Result) Encode(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

func Decode(rd io.Reader) (*Result, error) {
	var r Result
	if err := json.NewDecoder(rd).Decode(&r); err != nil {
		return nil, fmt.Errorf("failed to decode result: %w", err)
	}
	return &r, nil
}

// WriteFile writes r to path through a temporary file in the same
// directory, so readers never see a partial file.
func (r *Result) WriteFile(path string) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() {
		_ = os.Remove(tmpName)
	}()

	if err := r.Encode(tmp); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to write result: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close result file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("failed to move result into place: %w", err)
	}
	return nil
}

func ReadFile(path string) (*Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Decode(f)
}

// Samples counts the data points across all events.
func (r *Result) Samples() int {
	n := 0
	for _, e := range r.Events {
		for _, ts := range e.TimeSeries {
			n += len(ts.Data)
		}
	}
	return n
}
