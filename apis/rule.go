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

// Rule describes how one value is turned into bytes and sub-scopes.
// The variant set lives in package rules and is closed: the encode
// engine rejects any Rule whose concrete type it does not recognize.
type Rule interface {
	// EncodingRule marks a type as a member of the rule variant set.
	EncodingRule()
}

// FieldOrder controls the visiting order of enumerated fields.
type FieldOrder int

const (
	// ByName sorts fields lexicographically by their stringified name,
	// making field order an implementation detail that does not affect
	// the digest.
	ByName FieldOrder = iota

	// ByOrder keeps the order the field source produced. Choosing it is
	// an explicit contract that the producer's order is semantic.
	ByOrder
)

// NameHandling controls whether field names participate in the digest.
type NameHandling int

const (
	// KeepNames encodes each field name alongside its value.
	KeepNames NameHandling = iota

	// DropNames omits field names from the stream; only the enclosing
	// type tag and the field values matter.
	DropNames
)

// Field is one enumerated (identifier, value) pair of a structured value.
type Field struct {
	// Name is the field identifier used for ordering and, under
	// KeepNames, for hashing.
	Name string
	// Value is the field's value.
	Value reflect.Value
}

// FieldSource enumerates the fields of a value for a Fields rule.
type FieldSource func(v reflect.Value) ([]Field, error)

// RuleFunc produces the encoding rule for a value under a context.
// It is the registration unit for policy overrides.
type RuleFunc func(v reflect.Value, ctx Context) (Rule, error)

// BytesFunc produces the canonical raw bytes of a value for Raw rules.
// It is the registration unit for raw-serialization overrides.
type BytesFunc func(v reflect.Value) ([]byte, error)

// RawByter is implemented by values that serialize themselves for Raw
// rules. An explicit BytesFunc registration for the type takes priority.
type RawByter interface {
	HashBytes() ([]byte, error)
}

// Tabular is implemented by values that expose column-oriented data.
// Under the table-equivalence context such values hash by column
// identity and content only; the concrete container and its column
// order are irrelevant.
type Tabular interface {
	HashColumns() []Column
}

// Column is one named column of a Tabular value.
type Column struct {
	// Name identifies the column.
	Name string
	// Values holds the column content, typically a slice.
	Values any
}
