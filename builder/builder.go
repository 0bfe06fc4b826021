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

// Package builder provides the default factory for policy tables and
// resolvers.
package builder

import (
	"dirpx.dev/shx/apis"
	"dirpx.dev/shx/registry"
	"dirpx.dev/shx/resolver"
	"dirpx.dev/shx/strategy"
)

// New creates and returns a new instance of an apis.Builder.
func New() apis.Builder {
	return &bld{}
}

// bld is an empty struct to be used as a receiver for builder methods.
type bld struct{}

// BuildPolicies builds and returns a new apis.Policies table based on the
// provided configuration and pre-existing table. If a pre-existing table
// is provided, its entries are copied into the new one.
func (b *bld) BuildPolicies(_ apis.Config, prev apis.Policies, _ any) apis.Policies {
	npol := registry.New()
	if prev != nil {
		for _, e := range prev.Entries() {
			if e.Context == nil {
				_ = npol.RegisterType(e.Type, e.Fn)
				continue
			}
			_ = npol.Register(e.Type, e.Context, e.Fn)
		}
	}
	return npol
}

// BuildResolver builds and returns a new apis.Resolver based on the
// provided configuration and policy table. The strategy order encodes
// the resolution contract: explicit registrations beat context built-ins
// at every chain level, and type-specific fallbacks beat the root's
// generic default.
func (b *bld) BuildResolver(_ apis.Config, pol apis.Policies, _ apis.Resolver, _ any) apis.Resolver {
	return resolver.New(
		[]apis.LevelStrategy{
			strategy.NewRegisteredStrategy(pol),
			strategy.NewProviderStrategy(),
		},
		[]apis.Strategy{
			strategy.NewTypeRuleStrategy(pol),
			strategy.NewRulerStrategy(),
			strategy.NewRootDefaultStrategy(),
		},
	)
}
