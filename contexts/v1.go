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

// V1 is the legacy root context and the default. Type tags are the
// canonical qualified-name strings, struct encodings keep field names in
// the stream sorted by name, and the hash state is the bare direct
// backend for strict reproducibility with historical digests.
type V1 struct{}

// Compile-time interface checks.
var (
	_ apis.Root     = V1{}
	_ apis.Provider = V1{}
)

// Parent returns nil: V1 is a root.
func (V1) Parent() apis.Context { return nil }

// Version reports the compatibility version.
func (V1) Version() int { return 1 }

// ProvideRule serves the built-in per-kind rule table. Structs are
// declined here and answered by Default after the terminals have run.
func (V1) ProvideRule(v reflect.Value, _ apis.Context) (apis.Rule, bool, error) {
	return providedRule(v.Type(), legacy)
}

// Default serves the generic structural default for unclassified types.
// A nil rule with no error means even the default has nothing, which the
// resolver reports as an unresolved policy.
func (V1) Default(t reflect.Type) (apis.Rule, error) {
	r, _, err := kindRule(t, legacy)
	return r, err
}
