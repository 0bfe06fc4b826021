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

// BufferSize is the fixed capacity of the buffered backend's staging
// buffer.
const BufferSize = 4096

// NewBuffered stages pushed bytes in a fixed-capacity buffer and flushes
// full buffers to inner, reducing per-write overhead for the many small
// pushes a traversal produces. The staging buffer is owned by the
// current state chain; the returned State must not be aliased.
func NewBuffered(inner apis.State) apis.State {
	return &buffered{inner: inner}
}

// buffered splits writes across the capacity boundary and always flushes
// before scope transitions and finalization, so the inner backend sees
// the exact logical stream.
type buffered struct {
	inner apis.State
	buf   [BufferSize]byte
	n     int
}

// Ensure buffered implements apis.State.
var _ apis.State = (*buffered)(nil)

// Push stages b, flushing whenever the buffer fills.
func (s *buffered) Push(b []byte) apis.State {
	for len(b) > 0 {
		c := copy(s.buf[s.n:], b)
		s.n += c
		b = b[c:]
		if s.n == BufferSize {
			s.flush()
		}
	}
	return s
}

// OpenScope flushes pending bytes and delegates.
func (s *buffered) OpenScope() apis.State {
	s.flush()
	s.inner = s.inner.OpenScope()
	return s
}

// CloseScope flushes pending bytes and delegates.
func (s *buffered) CloseScope() apis.State {
	s.flush()
	s.inner = s.inner.CloseScope()
	return s
}

// Finalize flushes pending bytes and finalizes the inner backend.
func (s *buffered) Finalize() []byte {
	s.flush()
	return s.inner.Finalize()
}

// flush hands the staged bytes to the inner backend.
func (s *buffered) flush() {
	if s.n == 0 {
		return
	}
	s.inner = s.inner.Push(s.buf[:s.n])
	s.n = 0
}
