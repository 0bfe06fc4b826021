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

package strategy

import (
	"reflect"

	"dirpx.dev/shx/apis"
)

// NewProviderStrategy creates a per-level strategy that asks the context
// level itself for a built-in rule. Wrapper contexts (equivalence
// relaxations) handle the values they recognize and fall through for
// everything else, which is what lets the parent walk continue into the
// wrapped context.
func NewProviderStrategy() apis.LevelStrategy {
	return providerStrategy{}
}

// providerStrategy dispatches to apis.Provider implementations.
type providerStrategy struct{}

// Ensure providerStrategy implements apis.LevelStrategy.
var _ apis.LevelStrategy = providerStrategy{}

// TryResolveAt asks level for a built-in rule if it is a Provider.
func (providerStrategy) TryResolveAt(v reflect.Value, level apis.Context, outer apis.Context, _ apis.Config) (apis.Rule, bool, error) {
	p, ok := level.(apis.Provider)
	if !ok || !v.IsValid() {
		return nil, false, nil
	}
	return p.ProvideRule(v, outer)
}
