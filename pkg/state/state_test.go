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

package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveSeed(t *testing.T) {
	seed := uint64(0)
	assert.Equal(t, uint64(0), ResolveSeed(&seed), "an explicit zero seed is honored")

	seed = 10
	assert.Equal(t, uint64(10), ResolveSeed(&seed))
}

func TestMakeRNGIsDeterministic(t *testing.T) {
	a := MakeRNG(123)
	b := MakeRNG(123)
	for range 100 {
		assert.Equal(t, a.NormFloat64(), b.NormFloat64())
	}
}

func TestSubSeed(t *testing.T) {
	assert.Equal(t, SubSeed(1, StreamPhases, 0, 1), SubSeed(1, StreamPhases, 0, 1))
	assert.NotEqual(t, SubSeed(1, StreamPhases, 0, 1), SubSeed(1, StreamPhases, 1, 0))
	assert.NotEqual(t, SubSeed(1, StreamPhases, 0, 1), SubSeed(2, StreamPhases, 0, 1))
	assert.NotEqual(t, SubSeed(1, StreamPhases, 0), SubSeed(1, StreamParameters, 0))

	a := SubRNG(7, StreamPhases, 3, 4)
	b := SubRNG(7, StreamPhases, 3, 4)
	assert.Equal(t, a.Float64(), b.Float64())
}

func TestNamedSeed(t *testing.T) {
	assert.Equal(t, NamedSeed(5, "near"), NamedSeed(5, "near"))
	assert.NotEqual(t, NamedSeed(5, "near"), NamedSeed(5, "far"))
	assert.NotEqual(t, NamedSeed(5, "near"), NamedSeed(6, "near"))
}
