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
	"path/filepath"

	"github.com/cardinalhq/tremor/pkg/brokenwing"
	"github.com/cardinalhq/tremor/pkg/vlachos"
)

// JSONEmitter writes each result document to a stream.
type JSONEmitter struct {
	out io.Writer
}

func NewJSONEmitter(out io.Writer) *JSONEmitter {
	return &JSONEmitter{
		out: out,
	}
}

func (e *JSONEmitter) Emit(_ context.Context, run *vlachos.Run) error {
	if err := run.Result.Encode(e.out); err != nil {
		return fmt.Errorf("failed to write result %s: %w", run.Stats.Event, err)
	}
	return nil
}

// FileEmitter writes each result to <dir>/<event>.json.
type FileEmitter struct {
	dir string
}

func NewFileEmitter(dir string) *FileEmitter {
	return &FileEmitter{
		dir: dir,
	}
}

func (e *FileEmitter) Path(event string) string {
	return filepath.Join(e.dir, event+".json")
}

func (e *FileEmitter) Emit(_ context.Context, run *vlachos.Run) error {
	if err := run.Result.WriteFile(e.Path(run.Stats.Event)); err != nil {
		return &brokenwing.StageError{Stage: brokenwing.StageWrite, Spectrum: -1, Sim: -1, Err: err}
	}
	return nil
}
