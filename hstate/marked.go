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

import "dirpx.dev/shx/apis"

// Scope sentinel bytes written by the marked backend.
const (
	scopeOpen  byte = 0x01
	scopeClose byte = 0x02
)

// NewMarked realizes scope delimiting by writing fixed sentinel bytes
// instead of materializing a nested sub-hash per scope. Strictly faster
// than the direct backend's sub-hashing; the default for the optimized
// context version.
func NewMarked(inner apis.State) apis.State {
	return &marked{inner: inner}
}

// marked tracks scope depth only to catch engine bugs; the sentinel
// bytes carry the structure.
type marked struct {
	inner apis.State
	depth int
}

// Ensure marked implements apis.State.
var _ apis.State = (*marked)(nil)

// Push delegates to the inner backend.
func (s *marked) Push(b []byte) apis.State {
	s.inner = s.inner.Push(b)
	return s
}

// OpenScope writes the open sentinel.
func (s *marked) OpenScope() apis.State {
	s.depth++
	s.inner = s.inner.Push([]byte{scopeOpen})
	return s
}

// CloseScope writes the close sentinel.
func (s *marked) CloseScope() apis.State {
	if s.depth == 0 {
		panic("hstate: CloseScope without matching OpenScope")
	}
	s.depth--
	s.inner = s.inner.Push([]byte{scopeClose})
	return s
}

// Finalize finalizes the inner backend.
func (s *marked) Finalize() []byte {
	if s.depth != 0 {
		panic("hstate: Finalize with open scopes")
	}
	return s.inner.Finalize()
}
