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
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/cardinalhq/tremor/pkg/vlachos"
)

// TickerEmitter draws a progress line while a model runs and closes it
// when the run is emitted.
type TickerEmitter struct {
	sync.Mutex
	out io.Writer
}

func NewTickerEmitter(out io.Writer) *TickerEmitter {
	return &TickerEmitter{
		out: out,
	}
}

func (e *TickerEmitter) Observe(p vlachos.Progress) {
	e.Lock()
	defer e.Unlock()
	percent := 0.0
	if p.Total > 0 {
		percent = float64(p.Done) / float64(p.Total) * 100
	}
	fmt.Fprintf(e.out, "Sim %d/%d %.2f%% %s\r", p.Done, p.Total, percent, p.Elapsed.Round(time.Millisecond))
}

func (e *TickerEmitter) Emit(_ context.Context, run *vlachos.Run) error {
	e.Lock()
	defer e.Unlock()
	_, err := fmt.Fprintf(e.out, "\n%s: %d events in %s\n", run.Stats.Event, len(run.Result.Events), run.Stats.Elapsed.Round(time.Millisecond))
	return err
}
