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

	"github.com/cardinalhq/tremor/pkg/vlachos"
)

// Emitter receives every finished scenario run.
type Emitter interface {
	Emit(ctx context.Context, run *vlachos.Run) error
}

var (
	_ Emitter = (*JSONEmitter)(nil)
	_ Emitter = (*FileEmitter)(nil)
	_ Emitter = (*DebugEmitter)(nil)
	_ Emitter = (*TickerEmitter)(nil)
	_ Emitter = (*TelemetryEmitter)(nil)
	_ Emitter = (*TraceEmitter)(nil)

	_ vlachos.Observer = (*TickerEmitter)(nil)
)
