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
	"encoding/binary"
	"math/rand/v2"

	"github.com/cespare/xxhash/v2"
)

// Stream tags keep the parameter and phase sub-streams apart even when
// their indices collide.
const (
	StreamParameters uint64 = 0x70617261
	StreamPhases     uint64 = 0x70686173
)

// ResolveSeed returns *seed when set, otherwise a single draw from the
// process entropy source. Callers resolve once and thread the result.
func ResolveSeed(seed *uint64) uint64 {
	if seed != nil {
		return *seed
	}
	return rand.Uint64()
}

func MakeRNG(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed))
}

// SubSeed derives a deterministic seed for one task from the base seed,
// a stream tag and the task indices.
func SubSeed(base uint64, stream uint64, indices ...int) uint64 {
	buf := make([]byte, 0, 16+8*len(indices))
	buf = binary.LittleEndian.AppendUint64(buf, base)
	buf = binary.LittleEndian.AppendUint64(buf, stream)
	for _, idx := range indices {
		buf = binary.LittleEndian.AppendUint64(buf, uint64(idx))
	}
	return xxhash.Sum64(buf)
}

// SubRNG is MakeRNG(SubSeed(...)).
func SubRNG(base uint64, stream uint64, indices ...int) *rand.Rand {
	return MakeRNG(SubSeed(base, stream, indices...))
}

// NamedSeed derives a seed for a named scenario from a shared base seed.
func NamedSeed(base uint64, name string) uint64 {
	d := xxhash.New()
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], base)
	_, _ = d.Write(b[:])
	_, _ = d.WriteString(name)
	return d.Sum64()
}
