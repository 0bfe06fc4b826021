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

// Package rules defines the closed set of encoding rule variants the
// encode engine interprets. Rules are plain data: they carry no identity
// beyond their structural content and are produced freshly each time the
// resolver is consulted.
package rules

import (
	"reflect"

	"dirpx.dev/shx/apis"
)

// ApplyFunc transforms a value before encoding, e.g. a length extractor
// or a type-identity projection.
type ApplyFunc func(v reflect.Value, ctx apis.Context) (any, error)

// Transform derives a replacement context for a Swap rule.
type Transform func(ctx apis.Context) apis.Context

// Raw serializes the value's bytes directly, with no sub-structure.
// Numerics serialize as their fixed-width two's-complement/IEEE pattern
// in a fixed byte order; text serializes as its raw bytes. Per-type
// overrides hook in via apis.RawByter or a BytesFunc registration.
type Raw struct{}

// Iterate encodes each element of an ordered sequence recursively, one
// scope per element.
type Iterate struct{}

// Fields enumerates a value's fields via Source and encodes each one in
// its own scope, optionally preceded by its name.
type Fields struct {
	// Source enumerates the fields. If nil, the value's exported struct
	// fields are used.
	Source apis.FieldSource
	// Order selects ByName (default) or ByOrder visiting order.
	Order apis.FieldOrder
	// Names selects whether field names participate in the digest.
	Names apis.NameHandling
}

// Apply computes fn(value) and encodes the result. If Result is nil the
// result's rule is resolved recursively; a resolution that would loop
// back into the same rule on the same type is a configuration error.
type Apply struct {
	// Fn is the transformation to apply.
	Fn ApplyFunc
	// Result optionally fixes the rule for the transformed value.
	Result apis.Rule
}

// Constant ignores the value entirely and encodes Value instead, tagging
// a structural category ahead of its contents.
type Constant struct {
	// Value is the fixed constant to encode.
	Value any
	// Result optionally fixes the rule for the constant.
	Result apis.Rule
}

// Sequence applies each rule to the same value in turn, each inside its
// own scope. Used to prepend a type or category tag before the
// structural encoding.
type Sequence struct {
	// Rules are applied in order.
	Rules []apis.Rule
}

// Swap recurses into Inner with the active context replaced by
// Transform(current), leaving the value untouched.
type Swap struct {
	// Inner is the rule to apply under the swapped context.
	Inner apis.Rule
	// Transform derives the replacement context.
	Transform Transform
}

// Seq is shorthand for Sequence over the given rules.
func Seq(rs ...apis.Rule) Sequence {
	return Sequence{Rules: rs}
}

// EncodingRule marks the variant set; see apis.Rule.
func (Raw) EncodingRule()      {}
func (Iterate) EncodingRule()  {}
func (Fields) EncodingRule()   {}
func (Apply) EncodingRule()    {}
func (Constant) EncodingRule() {}
func (Sequence) EncodingRule() {}
func (Swap) EncodingRule()     {}

// Compile-time check that all variants satisfy apis.Rule.
var (
	_ apis.Rule = Raw{}
	_ apis.Rule = Iterate{}
	_ apis.Rule = Fields{}
	_ apis.Rule = Apply{}
	_ apis.Rule = Constant{}
	_ apis.Rule = Sequence{}
	_ apis.Rule = Swap{}
)
