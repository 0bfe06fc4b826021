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

package contexts

import (
	"reflect"

	"dirpx.dev/shx/apis"
	"dirpx.dev/shx/rules"
)

// ViewEq widens the equality class of sequences and text: slices,
// arrays, and strings hash under fixed category tags instead of their
// concrete type tags, so a sub-view and a freshly materialized copy
// with identical contents hash identically. Everything else delegates
// to the parent.
type ViewEq struct {
	// P is the wrapped parent context.
	P apis.Context
}

// Compile-time interface check.
var _ apis.Provider = ViewEq{}

// Parent returns the wrapped context.
func (c ViewEq) Parent() apis.Context { return c.P }

// ProvideRule overrides sequences and text, stripping the concrete
// subtype tag, and declines the rest.
func (c ViewEq) ProvideRule(v reflect.Value, _ apis.Context) (apis.Rule, bool, error) {
	switch v.Kind() {
	case reflect.Slice, reflect.Array:
		return rules.Seq(
			rules.Constant{Value: "AbstractArray", Result: rules.Raw{}},
			rules.Apply{Fn: rules.Length, Result: rules.Raw{}},
			rules.Iterate{},
		), true, nil
	case reflect.String:
		if v.Type() == symbolType {
			// Symbols are atoms, not text views.
			return nil, false, nil
		}
		return rules.Seq(
			rules.Constant{Value: "AbstractString", Result: rules.Raw{}},
			rules.Raw{},
		), true, nil
	}
	return nil, false, nil
}
