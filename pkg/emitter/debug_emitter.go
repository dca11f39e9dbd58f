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

package emitter

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/cardinalhq/tremor/pkg/vlachos"
)

type DebugEmitter struct {
	out io.Writer
}

func NewDebugEmitter(out io.Writer) *DebugEmitter {
	return &DebugEmitter{
		out: out,
	}
}

type DebugMessage struct {
	Event      string  `json:"event"`
	Spectrum   int     `json:"spectrum"`
	Simulation int     `json:"simulation"`
	Samples    int     `json:"samples"`
	Dt         float64 `json:"dt"`
	Attempts   int     `json:"attempts"`
	PeakX      float64 `json:"peakX"`
	PeakY      float64 `json:"peakY"`
	Units      string  `json:"units"`
}

// Emit writes one JSON line per event of the run.
func (e *DebugEmitter) Emit(_ context.Context, run *vlachos.Run) error {
	for _, ev := range run.Result.Events {
		msg := DebugMessage{Event: ev.Name}
		if len(ev.TimeSeries) > 0 {
			msg.Samples = len(ev.TimeSeries[0].Data)
			msg.Dt = ev.TimeSeries[0].Dt
		}
		if md := ev.Metadata; md != nil {
			msg.Spectrum = md.Spectrum
			msg.Simulation = md.Simulation
			msg.Attempts = md.Attempts
			msg.PeakX = md.PeakX
			msg.PeakY = md.PeakY
			msg.Units = md.Units
		}

		b, err := json.Marshal(msg)
		if err != nil {
			return fmt.Errorf("failed to marshal debug message: %w", err)
		}
		if _, err := e.out.Write(append(b, '\n')); err != nil {
			return fmt.Errorf("failed to write debug message: %w", err)
		}
	}
	return nil
}
