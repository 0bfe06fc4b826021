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

// Package resolver maps (value, context) to an encoding rule through an
// ordered fallback chain.
package resolver

import (
	"errors"
	"fmt"
	"reflect"

	"dirpx.dev/shx/apis"
)

// ErrUnresolvedPolicy indicates that no encoding rule was found for a
// (type, context) pair after the full fallback chain. Resolution never
// silently defaults.
var ErrUnresolvedPolicy = errors.New("shx(resolver): no encoding rule")

// New constructs an apis.Resolver over the given strategies. Level
// strategies run once per context in the parent chain, most-derived
// context first; terminal strategies run once after the chain is
// exhausted. Nil strategies are ignored. The returned resolver is safe
// for concurrent use provided the strategies are.
func New(levels []apis.LevelStrategy, terminals []apis.Strategy) apis.Resolver {
	// Filter out nils to avoid nil-interface panics on call sites.
	ls := make([]apis.LevelStrategy, 0, len(levels))
	for _, s := range levels {
		if s != nil {
			ls = append(ls, s)
		}
	}
	ts := make([]apis.Strategy, 0, len(terminals))
	for _, s := range terminals {
		if s != nil {
			ts = append(ts, s)
		}
	}
	return chain{levels: ls, terminals: ts}
}

// chain is an immutable, order-preserving resolver over two strategy sets.
type chain struct {
	levels    []apis.LevelStrategy
	terminals []apis.Strategy
}

// Ensure chain implements apis.Resolver.
var _ apis.Resolver = chain{}

// Resolve walks the context parent chain, retrying the level strategies
// at each ancestor, then falls through to the terminal strategies.
// Exhausting both is a hard error naming the offending type and context.
func (r chain) Resolve(v reflect.Value, ctx apis.Context, cfg apis.Config) (apis.Rule, error) {
	for level := ctx; level != nil; level = level.Parent() {
		for _, s := range r.levels {
			rule, ok, err := s.TryResolveAt(v, level, ctx, cfg)
			if err != nil {
				return nil, err
			}
			if ok {
				return rule, nil
			}
		}
	}
	for _, s := range r.terminals {
		rule, ok, err := s.TryResolve(v, ctx, cfg)
		if err != nil {
			return nil, err
		}
		if ok {
			return rule, nil
		}
	}
	return nil, fmt.Errorf("%w for type %s under context %T", ErrUnresolvedPolicy, typeName(v), ctx)
}

// typeName renders v's type for error messages; invalid values have none.
func typeName(v reflect.Value) string {
	if !v.IsValid() {
		return "<nil>"
	}
	return v.Type().String()
}
