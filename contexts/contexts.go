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

// Package contexts provides the built-in root contexts (V1 legacy, V2
// optimized) and the opt-in equivalence wrappers (table and view).
// Roots carry the default per-kind rule table of their version; wrappers
// widen the equality class for the values they recognize and delegate
// everything else to their parent.
package contexts

import (
	"errors"
	"fmt"
	"reflect"
	"runtime"

	"dirpx.dev/shx/apis"
	"dirpx.dev/shx/rules"
	"dirpx.dev/shx/typeid"
)

// Symbol is a symbolic atom: a string hashed as an identifier rather
// than as text. Symbols are tagged with ":" instead of a type tag, so
// Symbol("a") and the string "a" never collide.
type Symbol string

// ErrNilFunc indicates an attempt to hash a nil function value, which
// has no name to identify it by.
var ErrNilFunc = errors.New("shx(contexts): cannot hash nil function")

// version distinguishes the two root rule tables where they differ.
type version int

const (
	legacy    version = 1
	optimized version = 2
)

// reflectType is the interface type of runtime type values.
var reflectType = reflect.TypeOf((*reflect.Type)(nil)).Elem()

// symbolType is the Symbol atom type.
var symbolType = reflect.TypeOf(Symbol(""))

// providedRule is the subset of the rule table a root serves at the
// level stage. Structs are deliberately not served here: their rule is
// the generic structural default, which must lose to a context-
// independent type registration or the value's own HashRule. Declining
// them lets resolution flow through those terminals before the root
// default answers.
func providedRule(t reflect.Type, ver version) (apis.Rule, bool, error) {
	if t.Kind() == reflect.Struct && !t.Implements(reflectType) {
		return nil, false, nil
	}
	return kindRule(t, ver)
}

// kindRule is the shared per-kind rule table of both root versions.
// It reports handled=false for kinds the version has no default for
// (channels, unsafe pointers), which surfaces as an unresolved-policy
// error unless the caller registered something.
func kindRule(t reflect.Type, ver version) (apis.Rule, bool, error) {
	// Runtime type values hash by their type identity, not their
	// internal representation.
	if t.Implements(reflectType) {
		return rules.Seq(
			rules.Constant{Value: "DataType", Result: rules.Raw{}},
			rules.Apply{Fn: dataTypeID, Result: rules.Raw{}},
		), true, nil
	}

	switch t.Kind() {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64,
		reflect.Complex64, reflect.Complex128:
		// Fixed-layout primitives carry no sub-structure.
		return rules.Raw{}, true, nil

	case reflect.String:
		if t == symbolType {
			return rules.Seq(
				rules.Constant{Value: ":", Result: rules.Raw{}},
				rules.Raw{},
			), true, nil
		}
		tag, err := tagRule(t, ver)
		if err != nil {
			return nil, false, err
		}
		return rules.Seq(tag, rules.Raw{}), true, nil

	case reflect.Slice:
		tag, err := tagRule(t, ver)
		if err != nil {
			return nil, false, err
		}
		return rules.Seq(
			tag,
			rules.Apply{Fn: rules.Length, Result: rules.Raw{}},
			rules.Iterate{},
		), true, nil

	case reflect.Array:
		// Fixed-size arrays behave like tuples: the length is part of
		// the type tag already.
		tag, err := tagRule(t, ver)
		if err != nil {
			return nil, false, err
		}
		return rules.Seq(tag, rules.Iterate{}), true, nil

	case reflect.Map:
		tag, err := tagRule(t, ver)
		if err != nil {
			return nil, false, err
		}
		if t.Elem() == reflect.TypeOf(struct{}{}) {
			// map[T]struct{} is an unordered set: sort, then hash the
			// collected keys.
			return rules.Seq(tag, rules.Apply{Fn: rules.SortedKeys}), true, nil
		}
		// Map keys are semantic, so names stay in the stream under both
		// versions; ByName makes iteration order irrelevant.
		return rules.Seq(tag, rules.Fields{
			Source: rules.MapSource,
			Order:  apis.ByName,
			Names:  apis.KeepNames,
		}), true, nil

	case reflect.Struct:
		return structRule(t, ver)

	case reflect.Func:
		return rules.Seq(
			rules.Constant{Value: "Function", Result: rules.Raw{}},
			rules.Apply{Fn: funcNameID, Result: rules.Raw{}},
		), true, nil
	}

	return nil, false, nil
}

// structRule is the generic structural default shared by both versions:
// a type tag followed by the name-sorted fields, with names kept in the
// stream under V1 and dropped under V2.
func structRule(t reflect.Type, ver version) (apis.Rule, bool, error) {
	tag, err := tagRule(t, ver)
	if err != nil {
		return nil, false, err
	}
	names := apis.KeepNames
	if ver == optimized {
		names = apis.DropNames
	}
	return rules.Seq(tag, rules.Fields{
		Source: rules.StructSource,
		Order:  apis.ByName,
		Names:  names,
	}), true, nil
}

// tagRule builds the type-tag rule for t: the canonical qualified name
// pushed raw under V1, the 128-bit type identifier under V2.
func tagRule(t reflect.Type, ver version) (apis.Rule, error) {
	if ver == legacy {
		s, err := tagString(t)
		if err != nil {
			return nil, err
		}
		return rules.Constant{Value: s, Result: rules.Raw{}}, nil
	}
	return rules.Apply{Fn: typeIDTag, Result: rules.Raw{}}, nil
}

// tagString returns the canonical name of t, falling back to the
// structural string for unnamed composite types (whose structural form
// is stable in this runtime, unlike anonymous names elsewhere).
func tagString(t reflect.Type) (string, error) {
	s, err := typeid.Canonical(t, typeid.NameMode)
	if errors.Is(err, typeid.ErrUnstableTypeName) {
		return typeid.Canonical(t, typeid.TypeMode)
	}
	return s, err
}

// typeIDOf computes the identifier of t with the same unnamed-type
// fallback as tagString.
func typeIDOf(t reflect.Type) (typeid.ID, error) {
	id, err := typeid.Compute(t, typeid.NameMode)
	if errors.Is(err, typeid.ErrUnstableTypeName) {
		return typeid.Compute(t, typeid.TypeMode)
	}
	return id, err
}

// typeIDTag is the ApplyFunc projecting a value to its type identifier.
func typeIDTag(v reflect.Value, _ apis.Context) (any, error) {
	id, err := typeIDOf(v.Type())
	if err != nil {
		return nil, err
	}
	return id.Bytes(), nil
}

// dataTypeID is the ApplyFunc projecting a runtime type value to the
// identifier of the type it denotes.
func dataTypeID(v reflect.Value, _ apis.Context) (any, error) {
	t, ok := v.Interface().(reflect.Type)
	if !ok || t == nil {
		return nil, fmt.Errorf("shx(contexts): not a runtime type value: %s", v.Type())
	}
	id, err := typeIDOf(t)
	if err != nil {
		return nil, err
	}
	return id.Bytes(), nil
}

// funcNameID is the ApplyFunc projecting a function value to the
// identifier of its qualified name.
func funcNameID(v reflect.Value, _ apis.Context) (any, error) {
	if v.IsNil() {
		return nil, ErrNilFunc
	}
	fn := runtime.FuncForPC(v.Pointer())
	if fn == nil {
		return nil, fmt.Errorf("shx(contexts): no name for function value of %s", v.Type())
	}
	return typeid.Sum(fn.Name()).Bytes(), nil
}
