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

package apis

// State is an opaque hash accumulator. Each operation returns the state
// to use for the next operation; the receiver must be considered consumed.
// This value-passing style keeps ownership explicit: a State (and any
// staging buffer inside it) belongs to exactly one logical stream at a
// time, and handing the returned State onward transfers that ownership.
//
// A State is created once per hash computation and destroyed by Finalize.
// It is not safe to share a live State across goroutines; independent
// computations use independent States.
type State interface {
	// Push appends raw bytes to the logical stream.
	Push(b []byte) State

	// OpenScope starts a delimited sub-structure. Sibling sub-structures
	// of different shapes must not be confusable by flat concatenation,
	// so every structured encoding step brackets its output in a scope.
	OpenScope() State

	// CloseScope ends the innermost open scope.
	CloseScope() State

	// Finalize consumes the state and produces the digest bytes.
	// The state must not be used afterward. All opened scopes must have
	// been closed.
	Finalize() []byte
}

// RollFunc folds a chunk of bytes into a running accumulator. It is the
// contract for rolling (non-cryptographic) hash backends: the backend
// starts from a seed and applies the function to every pushed chunk.
type RollFunc func(b []byte, acc uint64) uint64

// OneShotFunc consumes a complete byte run and returns its digest in a
// single call. Backends adapt it to the streaming State contract by
// staging bytes per scope.
type OneShotFunc func(b []byte) []byte
