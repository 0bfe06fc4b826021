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
	"fmt"
	"reflect"
	"sort"

	"dirpx.dev/shx/apis"
	"dirpx.dev/shx/builder"
	"dirpx.dev/shx/config"
	"dirpx.dev/shx/hstate"
	"dirpx.dev/shx/registry"
	"dirpx.dev/shx/resolver"
	"dirpx.dev/shx/rules"
	"dirpx.dev/shx/strategy"
	"dirpx.dev/shx/typeid"
	uref "dirpx.dev/shx/utils/reflect"
)

var (
	// ErrUnresolvedPolicy indicates that no encoding rule was found for a
	// (type, context) pair after the full fallback chain.
	ErrUnresolvedPolicy = resolver.ErrUnresolvedPolicy
	// ErrInvalidRule indicates a resolved rule whose concrete type the
	// encode engine does not recognize (malformed extension).
	ErrInvalidRule = errors.New("shx: unrecognized encoding rule")
	// ErrSelfReferentialRule indicates a rule that would recurse into
	// itself on an unchanged value type; the caller must supply a
	// terminating result rule.
	ErrSelfReferentialRule = errors.New("shx: self-referential encoding rule")
	// ErrUnstableTypeName indicates a type whose canonical name cannot be
	// made stable across runs.
	ErrUnstableTypeName = typeid.ErrUnstableTypeName
	// ErrInvalidConfiguration indicates an illegal enumeration value or a
	// rule applied to a value it cannot encode.
	ErrInvalidConfiguration = errors.New("shx: invalid configuration")
	// ErrMaxDepth indicates that encoding exceeded the recursion bound,
	// almost always a cyclic pointer graph.
	ErrMaxDepth = errors.New("shx: max encode depth exceeded")
)

// nothingTag is the fixed encoding of an absent value (nil pointer,
// nil interface, untyped nil).
var nothingTag = []byte("Nothing")

// Interface types the engine must not unwrap away before resolution.
var (
	reflectTypeIface = reflect.TypeOf((*reflect.Type)(nil)).Elem()
	rulerIface       = reflect.TypeOf((*apis.Ruler)(nil)).Elem()
	tabularIface     = reflect.TypeOf((*apis.Tabular)(nil)).Elem()
	rawByterIface    = reflect.TypeOf((*apis.RawByter)(nil)).Elem()
)

// Engine computes digests under one fixed configuration with its own
// policy and serialization tables. The zero value is not usable; use
// New. An Engine is safe for concurrent Hash calls once registrations
// are done.
type Engine struct {
	cfg apis.Config
	pol apis.Policies
	res apis.Resolver
	bts *registry.BytesTable
}

// New constructs an Engine from the given options over the defaults.
func New(opts ...config.Option) *Engine {
	cfg := config.NewConfig(opts...)
	b := builder.New()
	pol := b.BuildPolicies(cfg, nil, nil)
	return &Engine{
		cfg: cfg,
		pol: pol,
		res: b.BuildResolver(cfg, pol, nil, nil),
		bts: registry.NewBytes(),
	}
}

// Register adds a policy override for the exact (value type, context
// type) pair.
func (e *Engine) Register(t reflect.Type, ctxType reflect.Type, fn apis.RuleFunc) error {
	return e.pol.Register(t, ctxType, fn)
}

// RegisterTypeRule adds a context-independent policy override for a type.
func (e *Engine) RegisterTypeRule(t reflect.Type, fn apis.RuleFunc) error {
	return e.pol.RegisterType(t, fn)
}

// RegisterBytes adds a raw-serialization override for a type.
func (e *Engine) RegisterBytes(t reflect.Type, fn apis.BytesFunc) error {
	return e.bts.Register(t, fn)
}

// Hash computes the digest of v under the engine's configuration.
func (e *Engine) Hash(v any) ([]byte, error) {
	return e.hash(v)
}

// hash is the single entry point of a computation: it creates the hash
// state, resolves the top-level rule, drives the recursive encode, and
// finalizes. The state is owned by this call end to end.
func (e *Engine) hash(v any) ([]byte, error) {
	newHash := e.cfg.NewHash
	if newHash == nil && e.cfg.Roll == nil && e.cfg.OneShot == nil {
		var err error
		newHash, err = config.NewDigester(e.cfg.Algorithm)
		if err != nil {
			return nil, err
		}
	}

	version := 1
	if r, ok := strategy.Terminal(e.cfg.Context).(apis.Root); ok {
		version = r.Version()
	}

	st := hstate.New(e.cfg, newHash, version)
	st, err := e.encodeValue(st, reflect.ValueOf(v), e.cfg.Context, 0)
	if err != nil {
		return nil, err
	}
	return st.Finalize(), nil
}

// encodeValue unwraps indirection, resolves the rule for the value
// under ctx, and encodes it.
func (e *Engine) encodeValue(st apis.State, v reflect.Value, ctx apis.Context, depth int) (apis.State, error) {
	if depth > e.cfg.MaxDepth {
		return nil, fmt.Errorf("%w (%d)", ErrMaxDepth, e.cfg.MaxDepth)
	}
	if !v.IsValid() {
		return st.Push(nothingTag), nil
	}
	if !selfDescribing(v.Type()) {
		var ok bool
		v, ok = uref.Deref(v, e.cfg.MaxDepth)
		if !ok {
			return st.Push(nothingTag), nil
		}
	}
	r, err := e.res.Resolve(v, ctx, e.cfg)
	if err != nil {
		return nil, err
	}
	return e.encode(st, v, ctx, r, depth)
}

// encode drives the hash state according to one rule. Every structured
// variant brackets its sub-encodings in scopes so sibling
// sub-structures of different shapes stay distinguishable.
func (e *Engine) encode(st apis.State, v reflect.Value, ctx apis.Context, r apis.Rule, depth int) (apis.State, error) {
	if depth > e.cfg.MaxDepth {
		return nil, fmt.Errorf("%w (%d)", ErrMaxDepth, e.cfg.MaxDepth)
	}

	switch rule := r.(type) {
	case rules.Raw:
		b, err := e.rawBytes(v)
		if err != nil {
			return nil, err
		}
		return st.Push(b), nil

	case rules.Iterate:
		return e.encodeElements(st, v, ctx, depth)

	case rules.Fields:
		return e.encodeFields(st, v, ctx, rule, depth)

	case rules.Apply:
		y, err := rule.Fn(v, ctx)
		if err != nil {
			return nil, err
		}
		return e.encodeDerived(st, v, reflect.ValueOf(y), ctx, r, rule.Result, depth)

	case rules.Constant:
		return e.encodeDerived(st, v, reflect.ValueOf(rule.Value), ctx, r, rule.Result, depth)

	case rules.Sequence:
		var err error
		for _, sub := range rule.Rules {
			st = st.OpenScope()
			st, err = e.encode(st, v, ctx, sub, depth+1)
			if err != nil {
				return nil, err
			}
			st = st.CloseScope()
		}
		return st, nil

	case rules.Swap:
		if rule.Transform == nil {
			return nil, fmt.Errorf("%w: context swap without transform", ErrInvalidConfiguration)
		}
		st = st.OpenScope()
		st, err := e.encode(st, v, rule.Transform(ctx), rule.Inner, depth+1)
		if err != nil {
			return nil, err
		}
		return st.CloseScope(), nil
	}

	return nil, fmt.Errorf("%w: %T", ErrInvalidRule, r)
}

// encodeDerived encodes the value an Apply or Constant rule produced.
// If the derived value has the same runtime type as the original and
// resolves back to the producing rule, encoding would never terminate;
// that is a caller-configuration error reported before any recursion.
func (e *Engine) encodeDerived(st apis.State, orig, derived reflect.Value, ctx apis.Context, current apis.Rule, result apis.Rule, depth int) (apis.State, error) {
	if result != nil {
		if !derived.IsValid() {
			return st.Push(nothingTag), nil
		}
		return e.encode(st, derived, ctx, result, depth+1)
	}
	if !derived.IsValid() {
		return st.Push(nothingTag), nil
	}
	if !selfDescribing(derived.Type()) {
		var ok bool
		derived, ok = uref.Deref(derived, e.cfg.MaxDepth)
		if !ok {
			return st.Push(nothingTag), nil
		}
	}
	next, err := e.res.Resolve(derived, ctx, e.cfg)
	if err != nil {
		return nil, err
	}
	if orig.IsValid() && derived.Type() == orig.Type() && rules.Equal(next, current) {
		return nil, fmt.Errorf("%w for type %s", ErrSelfReferentialRule, orig.Type())
	}
	return e.encode(st, derived, ctx, next, depth+1)
}

// encodeElements encodes an ordered sequence, one scope per element.
func (e *Engine) encodeElements(st apis.State, v reflect.Value, ctx apis.Context, depth int) (apis.State, error) {
	switch v.Kind() {
	case reflect.Slice, reflect.Array:
	default:
		return nil, fmt.Errorf("%w: iterate over %s", ErrInvalidConfiguration, v.Type())
	}
	var err error
	for i := 0; i < v.Len(); i++ {
		st = st.OpenScope()
		st, err = e.encodeValue(st, v.Index(i), ctx, depth+1)
		if err != nil {
			return nil, err
		}
		st = st.CloseScope()
	}
	return st, nil
}

// encodeFields enumerates, orders, and encodes a value's fields.
func (e *Engine) encodeFields(st apis.State, v reflect.Value, ctx apis.Context, rule rules.Fields, depth int) (apis.State, error) {
	source := rule.Source
	if source == nil {
		source = rules.StructSource
	}
	fields, err := source(v)
	if err != nil {
		return nil, err
	}

	switch rule.Order {
	case apis.ByName:
		sort.SliceStable(fields, func(i, j int) bool { return fields[i].Name < fields[j].Name })
	case apis.ByOrder:
		// Keep the source's order.
	default:
		return nil, fmt.Errorf("%w: field order %d", ErrInvalidConfiguration, rule.Order)
	}
	if rule.Names != apis.KeepNames && rule.Names != apis.DropNames {
		return nil, fmt.Errorf("%w: name handling %d", ErrInvalidConfiguration, rule.Names)
	}

	for _, f := range fields {
		st = st.OpenScope()
		if rule.Names == apis.KeepNames {
			st = st.OpenScope()
			st = st.Push([]byte(f.Name))
			st = st.CloseScope()
			st = st.OpenScope()
			st, err = e.encodeValue(st, f.Value, ctx, depth+1)
			if err != nil {
				return nil, err
			}
			st = st.CloseScope()
		} else {
			st, err = e.encodeValue(st, f.Value, ctx, depth+1)
			if err != nil {
				return nil, err
			}
		}
		st = st.CloseScope()
	}
	return st, nil
}

// selfDescribing reports whether values of t must reach resolution
// without pointer/interface unwrapping because an interface they
// implement is what classifies them.
func selfDescribing(t reflect.Type) bool {
	return t.Implements(reflectTypeIface) ||
		t.Implements(rulerIface) ||
		t.Implements(tabularIface) ||
		t.Implements(rawByterIface)
}
