/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package hstate

import (
	"encoding/binary"

	"github.com/zeebo/xxh3"

	"dirpx.dev/shx/apis"
)

// NewRolling wraps a user-supplied (bytes, accumulator) -> accumulator
// reduction as a State. Opening a scope saves the current accumulator
// and restarts from the seed; closing a scope feeds the nested
// accumulator's byte serialization back into the parent accumulator.
func NewRolling(fn apis.RollFunc, seed uint64) apis.State {
	return &rolling{fn: fn, seed: seed, acc: seed}
}

// XXH3Roll is a ready-made rolling reduction over XXH3, seeding each
// chunk's hash with the running accumulator.
func XXH3Roll(b []byte, acc uint64) uint64 {
	return xxh3.HashSeed(b, acc)
}

// rolling keeps one saved accumulator per enclosing open scope.
type rolling struct {
	fn    apis.RollFunc
	seed  uint64
	acc   uint64
	stack []uint64
}

// Ensure rolling implements apis.State.
var _ apis.State = (*rolling)(nil)

// Push folds b into the current accumulator.
func (s *rolling) Push(b []byte) apis.State {
	s.acc = s.fn(b, s.acc)
	return s
}

// OpenScope saves the accumulator and restarts from the seed.
func (s *rolling) OpenScope() apis.State {
	s.stack = append(s.stack, s.acc)
	s.acc = s.seed
	return s
}

// CloseScope folds the nested accumulator into its parent.
func (s *rolling) CloseScope() apis.State {
	if len(s.stack) == 0 {
		panic("hstate: CloseScope without matching OpenScope")
	}
	child := s.acc
	s.acc = s.stack[len(s.stack)-1]
	s.stack = s.stack[:len(s.stack)-1]
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], child)
	s.acc = s.fn(b[:], s.acc)
	return s
}

// Finalize serializes the accumulator in the same fixed byte order used
// for scope folding.
func (s *rolling) Finalize() []byte {
	if len(s.stack) != 0 {
		panic("hstate: Finalize with open scopes")
	}
	b := make([]byte, 8)
	binary.LittleEndian.PutUint64(b, s.acc)
	return b
}
