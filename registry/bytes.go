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

package registry

import (
	"reflect"
	"sync"

	"dirpx.dev/shx/apis"
)

// NewBytes constructs an empty raw-serialization override table.
func NewBytes() *BytesTable {
	return &BytesTable{}
}

// BytesTable maps value types to raw-serialization overrides for Raw
// rules. Same conflict discipline as the policy table: re-registering a
// type with a different function is an error.
type BytesTable struct {
	mu    sync.Mutex
	m     sync.Map // map[reflect.Type]apis.BytesFunc
	count int
}

// Register associates t with fn.
func (b *BytesTable) Register(t reflect.Type, fn apis.BytesFunc) error {
	if t == nil {
		return ErrNilType
	}
	if fn == nil {
		return ErrNilFunc
	}

	if old, ok := b.m.Load(t); ok {
		if sameBytesFunc(old.(apis.BytesFunc), fn) {
			return nil
		}
		return ErrConflictingRegistration
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if old, ok := b.m.Load(t); ok {
		if sameBytesFunc(old.(apis.BytesFunc), fn) {
			return nil
		}
		return ErrConflictingRegistration
	}

	b.m.Store(t, fn)
	b.count++
	return nil
}

// Lookup returns the override for t, if any.
func (b *BytesTable) Lookup(t reflect.Type) (apis.BytesFunc, bool) {
	if t == nil {
		return nil, false
	}
	if v, ok := b.m.Load(t); ok {
		return v.(apis.BytesFunc), true
	}
	return nil, false
}

// Count returns the number of registered overrides.
func (b *BytesTable) Count() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.count
}

// Reset clears all registered overrides.
func (b *BytesTable) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.m = sync.Map{}
	b.count = 0
}

// sameBytesFunc compares serialization functions by code pointer.
func sameBytesFunc(a, b apis.BytesFunc) bool {
	return reflect.ValueOf(a).Pointer() == reflect.ValueOf(b).Pointer()
}
