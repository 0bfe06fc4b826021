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

package strategy

import (
	"reflect"

	"dirpx.dev/shx/apis"
)

// NewRegisteredStrategy creates a per-level strategy that consults a
// Policies table for a rule registered under the exact (value type,
// context type) pair. Consulted first at every level of the parent
// walk, so the most specific explicit registration always wins.
func NewRegisteredStrategy(pol apis.Policies) apis.LevelStrategy {
	return &registeredStrategy{pol: pol}
}

// registeredStrategy consults a provided Policies table (reflection-free lookup).
type registeredStrategy struct {
	pol apis.Policies
}

// Ensure registeredStrategy implements apis.LevelStrategy.
var _ apis.LevelStrategy = (*registeredStrategy)(nil)

// TryResolveAt looks up (v's type, level's type) in the policy table.
func (s *registeredStrategy) TryResolveAt(v reflect.Value, level apis.Context, outer apis.Context, _ apis.Config) (apis.Rule, bool, error) {
	if s.pol == nil || !v.IsValid() || level == nil {
		return nil, false, nil
	}
	fn, ok := s.pol.Lookup(v.Type(), reflect.TypeOf(level))
	if !ok {
		return nil, false, nil
	}
	r, err := fn(v, outer)
	if err != nil {
		return nil, false, err
	}
	return r, true, nil
}

// NewTypeRuleStrategy creates a terminal strategy that consults a
// Policies table for a context-independent rule registered for the
// value's type. Consulted only after the whole context chain declined.
func NewTypeRuleStrategy(pol apis.Policies) apis.Strategy {
	return &typeRuleStrategy{pol: pol}
}

// typeRuleStrategy consults the context-independent side of a Policies table.
type typeRuleStrategy struct {
	pol apis.Policies
}

// Ensure typeRuleStrategy implements apis.Strategy.
var _ apis.Strategy = (*typeRuleStrategy)(nil)

// TryResolve looks up v's type in the context-independent table.
func (s *typeRuleStrategy) TryResolve(v reflect.Value, ctx apis.Context, _ apis.Config) (apis.Rule, bool, error) {
	if s.pol == nil || !v.IsValid() {
		return nil, false, nil
	}
	fn, ok := s.pol.LookupType(v.Type())
	if !ok {
		return nil, false, nil
	}
	r, err := fn(v, ctx)
	if err != nil {
		return nil, false, err
	}
	return r, true, nil
}
