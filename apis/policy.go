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

import "reflect"

// Policies records explicit rule registrations, keyed by value type and
// optionally by context type. Keep it minimal so implementations can be
// lock-free or sync.Map-backed.
//
// Two independently authored registrations for the same key are a
// configuration error, never a silent override.
type Policies interface {
	// Register associates a (value type, context type) pair with a rule
	// function. Idempotent for the same function; conflicting
	// re-registrations return an error.
	Register(t reflect.Type, ctxType reflect.Type, fn RuleFunc) error

	// RegisterType associates a value type with a context-independent
	// rule function, consulted after the whole context chain declined.
	RegisterType(t reflect.Type, fn RuleFunc) error

	// Lookup returns the rule function registered for the exact
	// (value type, context type) pair, if any.
	Lookup(t reflect.Type, ctxType reflect.Type) (RuleFunc, bool)

	// LookupType returns the context-independent rule function for a
	// value type, if any.
	LookupType(t reflect.Type) (RuleFunc, bool)

	// Entries returns a snapshot for diagnostics/docs (order is
	// unspecified). Context-independent entries have a nil Context.
	Entries() []PolicyEntry

	// Count returns the number of registered entries.
	Count() int

	// Reset clears all registered entries.
	Reset()
}

// PolicyEntry is a single registration in a Policies snapshot.
type PolicyEntry struct {
	// Type is the registered value type.
	Type reflect.Type
	// Context is the registered context type, or nil for a
	// context-independent entry.
	Context reflect.Type
	// Fn is the registered rule function.
	Fn RuleFunc
}

// Resolver answers "which encoding rule applies to this value under this
// context". Implementations must be safe for concurrent Resolve calls.
type Resolver interface {
	// Resolve returns the rule for v under ctx, or an error if no rule
	// applies after the full fallback chain.
	Resolve(v reflect.Value, ctx Context, cfg Config) (Rule, error)
}

// LevelStrategy is a resolution step consulted once per context level
// while the resolver walks the parent chain, most-derived level first.
type LevelStrategy interface {
	// TryResolveAt attempts to resolve a rule for v at the given context
	// level. outer is the head of the chain the returned rule will
	// recurse with. It returns handled=false to fall through.
	TryResolveAt(v reflect.Value, level Context, outer Context, cfg Config) (Rule, bool, error)
}

// Strategy is a resolution step consulted after the context chain is
// exhausted (context-independent rules and root defaults).
type Strategy interface {
	// TryResolve attempts to resolve a rule for v under ctx.
	// It returns handled=false to fall through.
	TryResolve(v reflect.Value, ctx Context, cfg Config) (Rule, bool, error)
}
