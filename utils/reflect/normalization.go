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

// Package reflect builds canonical, representation-independent type
// names. Canonical names feed the type-identity digest, so they must be
// identical across runs and across releases for logically identical
// types; everything here exists to scrub incidental formatting variance
// out of reflect's type strings.
package reflect

import (
	"errors"
	"reflect"
	"strings"
)

var (
	// ErrNilType is returned when a nil reflect.Type is provided.
	ErrNilType = errors.New("reflect: nil reflect.Type provided")
	// ErrUnstableName indicates that the type has no name that is stable
	// across runs (an unnamed type in name mode).
	ErrUnstableName = errors.New("reflect: type name is not stable")
)

// BuiltinScope is the canonical module scope for types with no package
// path. Builtins surface with an empty PkgPath in every runtime version;
// folding them into one fixed scope keeps their identity independent of
// how the runtime spells its core namespace.
const BuiltinScope = "go"

// Scope returns the canonical module scope of t: its defining package
// path, or BuiltinScope for builtin and unnamed types.
func Scope(t reflect.Type) string {
	if p := t.PkgPath(); p != "" {
		return p
	}
	return BuiltinScope
}

// CanonicalName builds the canonical string identifying t.
//
// With full=false (name mode) the string is "scope.ShortName" with any
// generic instantiation parameters stripped, so all instantiations of a
// parameterized type share one identity. Unnamed types have no stable
// short name and yield ErrUnstableName.
//
// With full=true (type mode) the string is "scope.StructuralString",
// including parameterization and, for unnamed types, the full
// structural form. Incidental whitespace after separators is collapsed.
func CanonicalName(t reflect.Type, full bool) (string, error) {
	if t == nil {
		return "", ErrNilType
	}
	if full {
		return Scope(t) + "." + CollapseSpaces(t.String()), nil
	}
	name := t.Name()
	if name == "" {
		return "", ErrUnstableName
	}
	return Scope(t) + "." + StripTypeParams(name), nil
}

// StripTypeParams removes generic type instantiation suffix: "T[int,string]" -> "T".
func StripTypeParams(s string) string {
	if i := strings.IndexByte(s, '['); i >= 0 {
		return s[:i]
	}
	return s
}

// CollapseSpaces removes the single spaces reflect inserts after
// separators in structural type strings ("struct { A int; B string }"),
// leaving a fixed spelling regardless of formatting changes between
// runtime versions. Spaces that separate a field name from its type are
// semantic and kept.
func CollapseSpaces(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == ' ' && i > 0 {
			switch s[i-1] {
			case ',', ';', '{':
				continue
			}
			if i+1 < len(s) && s[i+1] == '}' {
				continue
			}
		}
		b.WriteByte(c)
	}
	return b.String()
}

// Deref unwraps pointer and interface indirection up to max levels and
// returns the underlying value. ok is false when a nil is encountered,
// in which case there is no underlying value to encode.
func Deref(v reflect.Value, max int) (reflect.Value, bool) {
	for i := 0; i < max; i++ {
		switch v.Kind() {
		case reflect.Pointer, reflect.Interface:
			if v.IsNil() {
				return v, false
			}
			v = v.Elem()
		default:
			return v, v.IsValid()
		}
	}
	return v, v.IsValid()
}
