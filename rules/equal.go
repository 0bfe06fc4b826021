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

package rules

import (
	"reflect"

	"dirpx.dev/shx/apis"
)

// Equal reports whether two rules are structurally identical. Functions
// compare by code pointer, everything else by value. The encode engine
// uses it as the self-reference guard: a rule that resolves to itself on
// an unchanged value type would recurse forever and must be rejected.
func Equal(a, b apis.Rule) bool {
	if a == nil || b == nil {
		return a == b
	}
	switch x := a.(type) {
	case Raw:
		_, ok := b.(Raw)
		return ok
	case Iterate:
		_, ok := b.(Iterate)
		return ok
	case Fields:
		y, ok := b.(Fields)
		return ok &&
			fnPtr(x.Source) == fnPtr(y.Source) &&
			x.Order == y.Order &&
			x.Names == y.Names
	case Apply:
		y, ok := b.(Apply)
		return ok && fnPtr(x.Fn) == fnPtr(y.Fn) && Equal(x.Result, y.Result)
	case Constant:
		y, ok := b.(Constant)
		return ok && reflect.DeepEqual(x.Value, y.Value) && Equal(x.Result, y.Result)
	case Sequence:
		y, ok := b.(Sequence)
		if !ok || len(x.Rules) != len(y.Rules) {
			return false
		}
		for i := range x.Rules {
			if !Equal(x.Rules[i], y.Rules[i]) {
				return false
			}
		}
		return true
	case Swap:
		y, ok := b.(Swap)
		return ok && Equal(x.Inner, y.Inner) && fnPtr(x.Transform) == fnPtr(y.Transform)
	default:
		// Unknown variants never compare equal; the engine rejects them
		// separately.
		return false
	}
}

// fnPtr returns the code pointer of fn, or 0 for nil.
func fnPtr(fn any) uintptr {
	v := reflect.ValueOf(fn)
	if !v.IsValid() || v.IsNil() {
		return 0
	}
	return v.Pointer()
}
