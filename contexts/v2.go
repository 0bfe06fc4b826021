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
)

// V2 is the optimized root context. Type tags are 128-bit type
// identifiers, struct encodings drop field names from the stream (the
// type tag already pins the layout) while still sorting by name, and
// the hash state stacks sentinel scope marking over buffering.
//
// V1 and V2 digests are distinct compatibility contracts; a computation
// never mixes them.
type V2 struct{}

// Compile-time interface checks.
var (
	_ apis.Root     = V2{}
	_ apis.Provider = V2{}
)

// Parent returns nil: V2 is a root.
func (V2) Parent() apis.Context { return nil }

// Version reports the compatibility version.
func (V2) Version() int { return 2 }

// ProvideRule serves the built-in per-kind rule table. Structs are
// declined here and answered by Default after the terminals have run.
func (V2) ProvideRule(v reflect.Value, _ apis.Context) (apis.Rule, bool, error) {
	return providedRule(v.Type(), optimized)
}

// Default serves the generic structural default for unclassified types.
func (V2) Default(t reflect.Type) (apis.Rule, error) {
	r, _, err := kindRule(t, optimized)
	return r, err
}
