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

// NewRootDefaultStrategy creates the last-resort strategy: the chain's
// root context supplies its version's generic structural default for an
// otherwise unclassified type. Running it last keeps the contract that
// a type-specific rule always beats a context catch-all.
func NewRootDefaultStrategy() apis.Strategy {
	return rootDefaultStrategy{}
}

// rootDefaultStrategy walks to the terminal context and asks its Default.
type rootDefaultStrategy struct{}

// Ensure rootDefaultStrategy implements apis.Strategy.
var _ apis.Strategy = rootDefaultStrategy{}

// TryResolve asks the chain's root for the generic structural default.
func (rootDefaultStrategy) TryResolve(v reflect.Value, ctx apis.Context, _ apis.Config) (apis.Rule, bool, error) {
	if !v.IsValid() {
		return nil, false, nil
	}
	root := Terminal(ctx)
	r, ok := root.(apis.Root)
	if !ok {
		return nil, false, nil
	}
	rule, err := r.Default(v.Type())
	if err != nil {
		return nil, false, err
	}
	if rule == nil {
		return nil, false, nil
	}
	return rule, true, nil
}

// Terminal returns the last context in the parent chain, or nil for a
// nil chain.
func Terminal(ctx apis.Context) apis.Context {
	for ctx != nil {
		p := ctx.Parent()
		if p == nil {
			return ctx
		}
		ctx = p
	}
	return nil
}
