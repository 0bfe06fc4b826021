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

// NewRulerStrategy creates a terminal strategy for values that carry
// their own encoding rule via apis.Ruler. A type defining its own rule
// beats the root's generic default but never a context-specific rule,
// which is why this runs after the parent walk.
func NewRulerStrategy() apis.Strategy {
	return rulerStrategy{}
}

// rulerStrategy is the fast path for self-describing values.
type rulerStrategy struct{}

// Ensure rulerStrategy implements apis.Strategy.
var _ apis.Strategy = rulerStrategy{}

// TryResolve checks whether v implements apis.Ruler and uses its rule.
func (rulerStrategy) TryResolve(v reflect.Value, ctx apis.Context, _ apis.Config) (apis.Rule, bool, error) {
	if !v.IsValid() || !v.CanInterface() {
		return nil, false, nil
	}
	r, ok := v.Interface().(apis.Ruler)
	if !ok {
		return nil, false, nil
	}
	rule, err := r.HashRule(ctx)
	if err != nil {
		return nil, false, err
	}
	return rule, true, nil
}
