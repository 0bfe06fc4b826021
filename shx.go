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

package shx

import (
	"errors"
	"reflect"
	"sync"
	"sync/atomic"

	"dirpx.dev/shx/apis"
	"dirpx.dev/shx/builder"
	"dirpx.dev/shx/config"
	"dirpx.dev/shx/contexts"
	"dirpx.dev/shx/registry"
)

// Symbol is re-exported for convenience; see contexts.Symbol.
type Symbol = contexts.Symbol

// init initializes the global snapshot.
func init() {
	// Initialize state with default cfg, pol, and res.
	s := &state{cfg: config.DefaultConfig()}
	b := builder.New()
	s.pol = b.BuildPolicies(s.cfg, nil, nil)
	s.res = b.BuildResolver(s.cfg, s.pol, nil, nil)
	s.bts = registry.NewBytes()
	s.bld = b
	// Store the initial state atomically.
	st.Store(s)
}

var (
	// ErrNilPolicies is returned when a builder returns a nil policy table.
	ErrNilPolicies = errors.New("shx: builder returned nil policy table")
	// ErrNilResolver is returned when a builder returns a nil resolver.
	ErrNilResolver = errors.New("shx: builder returned nil resolver")
)

// Hash computes the stable digest of v. Per-call options are applied
// over the global configuration: by default the legacy V1 root context
// and the default algorithm.
//
// This is a convenience wrapper around the global snapshot; it is safe
// for concurrent use, and concurrent calls see a consistent snapshot.
func Hash(v any, opts ...config.Option) ([]byte, error) {
	s := st.Load()
	cfg := s.cfg
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.MaxDepth <= 0 {
		cfg.MaxDepth = config.DefaultMaxDepth
	}
	e := &Engine{cfg: cfg, pol: s.pol, res: s.res, bts: s.bts}
	return e.hash(v)
}

// Register adds a policy override for the exact (value type, context
// type) pair to the global table.
// This is a convenience wrapper around the global pol.
func Register(t reflect.Type, ctxType reflect.Type, fn apis.RuleFunc) error {
	return st.Load().pol.Register(t, ctxType, fn)
}

// RegisterTypeRule adds a context-independent policy override for a
// type to the global table.
// This is a convenience wrapper around the global pol.
func RegisterTypeRule(t reflect.Type, fn apis.RuleFunc) error {
	return st.Load().pol.RegisterType(t, fn)
}

// RegisterBytes adds a raw-serialization override for a type to the
// global table.
// This is a convenience wrapper around the global bts.
func RegisterBytes(t reflect.Type, fn apis.BytesFunc) error {
	return st.Load().bts.Register(t, fn)
}

// SetAll explicitly sets all global snapshot components.
//
// Nil arguments leave the corresponding component unchanged,
// except for ext which is always replaced.
//
// This is a convenience wrapper around the global state.
func SetAll(cfg *apis.Config, ext any, pol apis.Policies, res apis.Resolver, bld apis.Builder) {
	buildMu.Lock()
	defer buildMu.Unlock()

	// Load the old state.
	old := st.Load()

	// Configuration
	ncfg := old.cfg
	if cfg != nil {
		ncfg = *cfg
	}

	// Extension
	next := ext

	// Builder
	nbld := old.bld
	if bld != nil {
		nbld = bld
	}

	// Policies
	npol := pol
	nppol := false
	if npol == nil {
		npol = nbld.BuildPolicies(ncfg, old.pol, next)
	} else {
		nppol = true
	}

	// Resolver
	nres := res
	npres := false
	if nres == nil {
		nres = nbld.BuildResolver(ncfg, npol, old.res, next)
	} else {
		npres = true
	}

	// Ensure non-nil pol and res.
	if npol == nil {
		panic(ErrNilPolicies)
	}
	if nres == nil {
		panic(ErrNilResolver)
	}

	// Store the new state atomically. The bytes table is config-free and
	// carries over; call Bytes().Reset() for a clean slate.
	st.Store(
		&state{
			cfg:  ncfg,
			ext:  next,
			pol:  npol,
			res:  nres,
			bts:  old.bts,
			bld:  nbld,
			ppol: nppol,
			pres: npres,
		},
	)
}

// Config returns the global configuration.
func Config() apis.Config {
	return st.Load().cfg
}

// SetConfig sets the global configuration to cfg.
// It rebuilds the global pol and res using the new configuration.
// This is a convenience wrapper around the global state.
func SetConfig(cfg apis.Config) {
	buildMu.Lock()
	defer buildMu.Unlock()

	// Load the old state.
	old := st.Load()
	b := old.bld

	// Keep the context valid: a nil context means the default root.
	if cfg.Context == nil {
		cfg.Context = contexts.V1{}
	}

	// Build new pol and res based on the new cfg and old state.
	npol := old.pol
	if !old.ppol {
		npol = b.BuildPolicies(cfg, old.pol, old.ext)
	}
	nres := old.res
	if !old.pres {
		nres = b.BuildResolver(cfg, npol, old.res, old.ext)
	}

	// Ensure non-nil pol and res.
	if npol == nil {
		panic(ErrNilPolicies)
	}
	if nres == nil {
		panic(ErrNilResolver)
	}

	// Store the new state atomically.
	st.Store(
		&state{
			cfg:  cfg,
			ext:  old.ext,
			pol:  npol,
			res:  nres,
			bts:  old.bts,
			bld:  b,
			ppol: old.ppol,
			pres: old.pres,
		},
	)
}

// Policies returns the global policy table.
func Policies() apis.Policies {
	return st.Load().pol
}

// SetPolicies sets the global policy table to pol and pins it.
// It uses the global configuration to rebuild the global res.
// This is a convenience wrapper around the global state.
func SetPolicies(pol apis.Policies) {
	if pol == nil {
		return
	}

	buildMu.Lock()
	defer buildMu.Unlock()

	// Load the old state.
	old := st.Load()
	b := old.bld

	// Build new res based on the old cfg and new pol.
	nres := old.res
	if !old.pres {
		nres = b.BuildResolver(old.cfg, pol, old.res, old.ext)
	}

	// Ensure non-nil res.
	if nres == nil {
		panic(ErrNilResolver)
	}

	// Store the new state atomically.
	st.Store(
		&state{
			cfg:  old.cfg,
			ext:  old.ext,
			pol:  pol,
			res:  nres,
			bts:  old.bts,
			bld:  b,
			ppol: true,
			pres: old.pres,
		},
	)
}

// Resolver returns the global resolver.
func Resolver() apis.Resolver {
	return st.Load().res
}

// SetResolver sets the global resolver to res and pins it.
// This is a convenience wrapper around the global state.
func SetResolver(res apis.Resolver) {
	if res == nil {
		return
	}

	buildMu.Lock()
	defer buildMu.Unlock()

	// Load the old state.
	old := st.Load()

	// Store the new state atomically.
	st.Store(
		&state{
			cfg:  old.cfg,
			ext:  old.ext,
			pol:  old.pol,
			res:  res,
			bts:  old.bts,
			bld:  old.bld,
			ppol: old.ppol,
			pres: true,
		},
	)
}

// Bytes returns the global raw-serialization override table.
func Bytes() *registry.BytesTable {
	return st.Load().bts
}

// Builder returns the global builder.
func Builder() apis.Builder {
	return st.Load().bld
}

// SetBuilder sets the global builder to b.
// This is a convenience wrapper around the global state.
func SetBuilder(b apis.Builder) {
	if b == nil {
		return
	}

	buildMu.Lock()
	defer buildMu.Unlock()

	// Load the old state.
	old := st.Load()

	// Build new pol and res based on the new builder and old state.
	npol := old.pol
	if !old.ppol {
		npol = b.BuildPolicies(old.cfg, old.pol, old.ext)
	}
	nres := old.res
	if !old.pres {
		nres = b.BuildResolver(old.cfg, npol, old.res, old.ext)
	}

	// Ensure non-nil pol and res.
	if npol == nil {
		panic(ErrNilPolicies)
	}
	if nres == nil {
		panic(ErrNilResolver)
	}

	// Store the new state atomically.
	st.Store(
		&state{
			cfg:  old.cfg,
			ext:  old.ext,
			pol:  npol,
			res:  nres,
			bts:  old.bts,
			bld:  b,
			ppol: old.ppol,
			pres: old.pres,
		},
	)
}

// SetExt replaces extension config and rebuilds non-pinned layers via the builder.
func SetExt[T any](ext T) {
	buildMu.Lock()
	defer buildMu.Unlock()

	// Load the old state.
	old := st.Load()
	b := old.bld

	// Build new pol and res based on the new ext and old state.
	npol := old.pol
	if !old.ppol {
		npol = b.BuildPolicies(old.cfg, old.pol, ext)
	}
	nres := old.res
	if !old.pres {
		nres = b.BuildResolver(old.cfg, npol, old.res, ext)
	}

	// Ensure non-nil pol and res.
	if npol == nil {
		panic(ErrNilPolicies)
	}
	if nres == nil {
		panic(ErrNilResolver)
	}

	// Store the new state atomically.
	st.Store(
		&state{
			cfg:  old.cfg,
			ext:  ext,
			pol:  npol,
			res:  nres,
			bts:  old.bts,
			bld:  b,
			ppol: old.ppol,
			pres: old.pres,
		},
	)
}

// ExtAs returns the global extension config as type T.
func ExtAs[T any]() (T, bool) {
	ext, ok := st.Load().ext.(T)
	return ext, ok
}

// IsPoliciesPinned returns whether the global policy table is pinned.
func IsPoliciesPinned() bool {
	return st.Load().ppol
}

// UnpinPolicies makes the global policy table rebuildable again.
func UnpinPolicies() {
	buildMu.Lock()
	defer buildMu.Unlock()

	// Load the old state.
	old := st.Load()

	// Store the new state atomically.
	st.Store(
		&state{
			cfg:  old.cfg,
			ext:  old.ext,
			pol:  old.pol,
			res:  old.res,
			bts:  old.bts,
			bld:  old.bld,
			ppol: false,
			pres: old.pres,
		},
	)
}

// IsResolverPinned returns whether the global resolver is pinned.
func IsResolverPinned() bool {
	return st.Load().pres
}

// UnpinResolver makes the global resolver rebuildable again.
func UnpinResolver() {
	buildMu.Lock()
	defer buildMu.Unlock()

	// Load the old state.
	old := st.Load()

	// Store the new state atomically.
	st.Store(
		&state{
			cfg:  old.cfg,
			ext:  old.ext,
			pol:  old.pol,
			res:  old.res,
			bts:  old.bts,
			bld:  old.bld,
			ppol: old.ppol,
			pres: false,
		},
	)
}

// buildMu serializes writers (reconfigurations/swaps) so we never publish
// partially-built snapshots.
var buildMu sync.Mutex

// st is the global snapshot.
var st atomic.Pointer[state]

// state is the global snapshot.
// Immutable snapshot published atomically via st.Store; never mutate fields
// of a published state. Writers create a new state and swap it atomically.
// The policy and bytes tables themselves accept concurrent registrations.
type state struct {
	// cfg is the global configuration.
	cfg apis.Config
	// ext is the global extension configuration.
	ext any
	// pol is the global policy table.
	pol apis.Policies
	// res is the global resolver.
	res apis.Resolver
	// bts is the global raw-serialization override table.
	bts *registry.BytesTable
	// bld is the global builder.
	bld apis.Builder
	// ppol indicates whether the policy table is pinned (not rebuilt).
	ppol bool
	// pres indicates whether the resolver is pinned (not rebuilt).
	pres bool
}
