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

// Package registry implements the explicit policy table: rule functions
// registered per (value type, context type) pair, plus a
// context-independent per-type table.
package registry

import (
	"errors"
	"reflect"
	"sync"

	"dirpx.dev/shx/apis"
)

var (
	// ErrNilType is returned when a nil reflect.Type is provided.
	ErrNilType = errors.New("shx(registry): nil reflect.Type provided")
	// ErrNilFunc is returned when a nil rule function is provided.
	ErrNilFunc = errors.New("shx(registry): nil rule function provided")
	// ErrConflictingRegistration indicates an attempt to re-register a
	// key with a different rule function. Independently authored
	// registrations for one key are a configuration error, never a
	// silent override.
	ErrConflictingRegistration = errors.New("shx(registry): conflicting policy registration")
)

// New constructs an empty Policies table.
func New() apis.Policies {
	return &policies{}
}

// key identifies one registration. A nil ctx marks a
// context-independent entry.
type key struct {
	t   reflect.Type
	ctx reflect.Type
}

// policies is a Policies implementation backed by sync.Map.
type policies struct {
	// mu guards write-side consistency and counter
	mu sync.Mutex
	// m maps key to apis.RuleFunc.
	m sync.Map
	// count tracks the number of registered entries.
	count int
}

// Register associates a (value type, context type) pair with fn.
// It is idempotent for the same (key, fn) pair.
func (p *policies) Register(t reflect.Type, ctxType reflect.Type, fn apis.RuleFunc) error {
	if t == nil || ctxType == nil {
		return ErrNilType
	}
	return p.register(key{t: t, ctx: ctxType}, fn)
}

// RegisterType associates a value type with a context-independent fn.
func (p *policies) RegisterType(t reflect.Type, fn apis.RuleFunc) error {
	if t == nil {
		return ErrNilType
	}
	return p.register(key{t: t}, fn)
}

// register stores fn under k, detecting conflicts by code pointer.
func (p *policies) register(k key, fn apis.RuleFunc) error {
	if fn == nil {
		return ErrNilFunc
	}

	// Fast read path: idempotency / conflict check without locking.
	if old, ok := p.m.Load(k); ok {
		if sameFunc(old.(apis.RuleFunc), fn) {
			return nil // idempotent re-registration
		}
		return ErrConflictingRegistration
	}

	// Write path: guard with a mutex to keep counter consistent and avoid ABA.
	p.mu.Lock()
	defer p.mu.Unlock()

	// Re-check under lock in case another goroutine stored meanwhile.
	if old, ok := p.m.Load(k); ok {
		if sameFunc(old.(apis.RuleFunc), fn) {
			return nil
		}
		return ErrConflictingRegistration
	}

	p.m.Store(k, fn)
	p.count++
	return nil
}

// Lookup returns the rule function for the exact (type, context type)
// pair, if any.
func (p *policies) Lookup(t reflect.Type, ctxType reflect.Type) (apis.RuleFunc, bool) {
	if t == nil || ctxType == nil {
		return nil, false
	}
	if v, ok := p.m.Load(key{t: t, ctx: ctxType}); ok {
		return v.(apis.RuleFunc), true
	}
	return nil, false
}

// LookupType returns the context-independent rule function for t, if any.
func (p *policies) LookupType(t reflect.Type) (apis.RuleFunc, bool) {
	if t == nil {
		return nil, false
	}
	if v, ok := p.m.Load(key{t: t}); ok {
		return v.(apis.RuleFunc), true
	}
	return nil, false
}

// Entries returns a snapshot for diagnostics/docs (order is unspecified).
func (p *policies) Entries() []apis.PolicyEntry {
	entries := make([]apis.PolicyEntry, 0, p.Count())
	p.m.Range(func(k, v any) bool {
		kk := k.(key)
		entries = append(entries, apis.PolicyEntry{
			Type:    kk.t,
			Context: kk.ctx,
			Fn:      v.(apis.RuleFunc),
		})
		return true
	})
	return entries
}

// Count returns the number of registered entries.
func (p *policies) Count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.count
}

// Reset clears all registered entries.
func (p *policies) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.m = sync.Map{}
	p.count = 0
}

// sameFunc compares rule functions by code pointer.
func sameFunc(a, b apis.RuleFunc) bool {
	return reflect.ValueOf(a).Pointer() == reflect.ValueOf(b).Pointer()
}
