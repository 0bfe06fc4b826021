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

// Context selects which encoding rules apply during a hash computation.
// Contexts form a single-parent ownership chain that terminates at a
// Root. A context is immutable after construction and is dispatched on
// by its concrete Go type, so wrapper contexts (equivalence relaxations)
// are just types that hold their parent and otherwise delegate.
type Context interface {
	// Parent returns the owning context, or nil for a root context.
	// Nil is the explicit absence-of-parent sentinel.
	Parent() Context
}

// Root is a context with no parent. It defines the behavior for value
// types that no registration, wrapper, or the value itself classifies.
type Root interface {
	Context

	// Version reports the compatibility version of the root. Digests are
	// a compatibility contract per version; versions are never mixed
	// within one computation.
	Version() int

	// Default returns the generic structural rule for an otherwise
	// unclassified type: fixed-layout primitives serialize raw, anything
	// else hashes as a type-tagged field structure.
	Default(t reflect.Type) (Rule, error)
}

// Provider is implemented by contexts that carry built-in rules.
// The resolver consults each context level in the parent chain; a
// provider that does not recognize the value reports handled=false so
// resolution falls through to its parent.
//
// outer is the full context of the active computation (the head of the
// chain), which the returned rule should use when recursing.
type Provider interface {
	ProvideRule(v reflect.Value, outer Context) (Rule, bool, error)
}

// Ruler is implemented by values that carry their own context-independent
// encoding rule. It is consulted only after the whole context chain
// declined, so a context-specific rule always wins over it, and it in
// turn always wins over the root's generic default.
type Ruler interface {
	HashRule(ctx Context) (Rule, error)
}
