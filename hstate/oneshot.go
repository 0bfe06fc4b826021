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

// NewOneShot adapts an accept-bytes-return-digest function to the State
// contract. Bytes are staged per scope; closing a scope digests the
// staged run and feeds the digest to the parent, mirroring the direct
// backend's sub-hash behavior without a streaming interface.
func NewOneShot(fn apis.OneShotFunc) apis.State {
	return &oneshot{fn: fn, bufs: [][]byte{nil}}
}

// oneshot keeps one staging buffer per open scope, outermost at the
// bottom.
type oneshot struct {
	fn   apis.OneShotFunc
	bufs [][]byte
}

// Ensure oneshot implements apis.State.
var _ apis.State = (*oneshot)(nil)

// Push stages b in the innermost open scope.
func (s *oneshot) Push(b []byte) apis.State {
	s.bufs[len(s.bufs)-1] = append(s.bufs[len(s.bufs)-1], b...)
	return s
}

// OpenScope starts a fresh staging buffer.
func (s *oneshot) OpenScope() apis.State {
	s.bufs = append(s.bufs, nil)
	return s
}

// CloseScope digests the innermost staged run into its parent.
func (s *oneshot) CloseScope() apis.State {
	if len(s.bufs) < 2 {
		panic("hstate: CloseScope without matching OpenScope")
	}
	sub := s.bufs[len(s.bufs)-1]
	s.bufs = s.bufs[:len(s.bufs)-1]
	s.bufs[len(s.bufs)-1] = append(s.bufs[len(s.bufs)-1], s.fn(sub)...)
	return s
}

// Finalize digests the outermost staged run.
func (s *oneshot) Finalize() []byte {
	if len(s.bufs) != 1 {
		panic("hstate: Finalize with open scopes")
	}
	sum := s.fn(s.bufs[0])
	s.bufs = nil
	return sum
}
