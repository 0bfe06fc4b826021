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

package builder_test

import (
	"errors"
	"reflect"
	"testing"

	apis "dirpx.dev/shx/apis"
	"dirpx.dev/shx/builder"
	"dirpx.dev/shx/config"
	"dirpx.dev/shx/contexts"
	"dirpx.dev/shx/resolver"
	"dirpx.dev/shx/rules"
)

// userType is a plain named type with no special behavior.
// It is used to test fallback to the root context's defaults.
type userType struct{ N int }

// hotType implements apis.Ruler. Channel kinds are declined by the
// built-in contexts, so resolution for it must come from the Ruler
// fallback (or an explicit registration).
type hotType chan int

func (hotType) HashRule(ctx apis.Context) (apis.Rule, error) {
	return rules.Raw{}, nil
}

func override(v reflect.Value, ctx apis.Context) (apis.Rule, error) {
	return rules.Iterate{}, nil
}

// TestBuildPolicies_Basic asserts that BuildPolicies returns a non-nil,
// working table that supports Register/Lookup/Entries/Count.
func TestBuildPolicies_Basic(t *testing.T) {
	b := builder.New()

	// prev may be nil; this must still produce a valid table.
	pol := b.BuildPolicies(config.DefaultConfig(), nil, nil)
	if pol == nil {
		t.Fatal("BuildPolicies returned nil")
	}

	tt := reflect.TypeOf(userType{})
	ct := reflect.TypeOf(contexts.V1{})
	if err := pol.Register(tt, ct, override); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	if fn, ok := pol.Lookup(tt, ct); !ok || fn == nil {
		t.Fatalf("Lookup mismatch: ok=%v fn=%v", ok, fn)
	}

	if c := pol.Count(); c < 1 {
		t.Fatalf("Count too small: %d", c)
	}

	snap := pol.Entries()
	if len(snap) < 1 {
		t.Fatalf("Entries returned empty snapshot")
	}
}

// TestBuildPolicies_MigratesPrev asserts that entries of a previous
// table survive a rebuild, both contextual and context-independent.
func TestBuildPolicies_MigratesPrev(t *testing.T) {
	b := builder.New()

	prev := b.BuildPolicies(config.DefaultConfig(), nil, nil)
	tt := reflect.TypeOf(userType{})
	ct := reflect.TypeOf(contexts.V1{})
	if err := prev.Register(tt, ct, override); err != nil {
		t.Fatalf("Register: %v", err)
	}
	ht := reflect.TypeOf(hotType(nil))
	if err := prev.RegisterType(ht, override); err != nil {
		t.Fatalf("RegisterType: %v", err)
	}

	pol := b.BuildPolicies(config.DefaultConfig(), prev, nil)
	if pol == prev {
		t.Fatal("BuildPolicies returned prev instead of a fresh table")
	}
	if _, ok := pol.Lookup(tt, ct); !ok {
		t.Fatal("contextual entry lost in rebuild")
	}
	if _, ok := pol.LookupType(ht); !ok {
		t.Fatal("context-independent entry lost in rebuild")
	}
	if pol.Count() != 2 {
		t.Fatalf("Count = %d, want 2", pol.Count())
	}
}

// TestBuildResolver_Order walks the resolution contract end to end:
// explicit registration beats the context built-in, the Ruler fallback
// answers for otherwise-unknown values, the root default covers plain
// types, and unresolvable values yield ErrUnresolvedPolicy.
func TestBuildResolver_Order(t *testing.T) {
	b := builder.New()
	cfg := config.DefaultConfig()
	pol := b.BuildPolicies(cfg, nil, nil)
	res := b.BuildResolver(cfg, pol, nil, nil)
	if res == nil {
		t.Fatal("BuildResolver returned nil")
	}

	ctx := contexts.V1{}

	// Root default answers for a plain struct.
	r, err := res.Resolve(reflect.ValueOf(userType{N: 1}), ctx, cfg)
	if err != nil {
		t.Fatalf("Resolve(userType): %v", err)
	}
	if _, ok := r.(rules.Sequence); !ok {
		t.Fatalf("Resolve(userType) = %T, want rules.Sequence (tag + fields)", r)
	}

	// Ruler answers for hotType, a channel kind the context declines.
	rr, err := res.Resolve(reflect.ValueOf(make(hotType)), ctx, cfg)
	if err != nil {
		t.Fatalf("Resolve(hotType): %v", err)
	}
	if _, ok := rr.(rules.Raw); !ok {
		t.Fatalf("Resolve(hotType) = %T, want rules.Raw (Ruler fallback)", rr)
	}

	// A registration for the exact (type, context) pair wins over the
	// context built-in.
	if err := pol.Register(reflect.TypeOf(userType{}), reflect.TypeOf(ctx), override); err != nil {
		t.Fatalf("Register: %v", err)
	}
	r, err = res.Resolve(reflect.ValueOf(userType{}), ctx, cfg)
	if err != nil {
		t.Fatalf("Resolve(userType) after Register: %v", err)
	}
	if _, ok := r.(rules.Iterate); !ok {
		t.Fatalf("Resolve(userType) after Register = %T, want rules.Iterate", r)
	}

	// Channels resolve nowhere.
	ch := make(chan int)
	if _, err := res.Resolve(reflect.ValueOf(ch), ctx, cfg); !errors.Is(err, resolver.ErrUnresolvedPolicy) {
		t.Fatalf("Resolve(chan): err = %v, want ErrUnresolvedPolicy", err)
	}
}

// TestBuildResolver_TypeRuleBeatsStructDefault asserts a context-
// independent registration for a struct type wins over the root's
// generic structural default.
func TestBuildResolver_TypeRuleBeatsStructDefault(t *testing.T) {
	b := builder.New()
	cfg := config.DefaultConfig()
	pol := b.BuildPolicies(cfg, nil, nil)
	res := b.BuildResolver(cfg, pol, nil, nil)

	if err := pol.RegisterType(reflect.TypeOf(userType{}), override); err != nil {
		t.Fatalf("RegisterType: %v", err)
	}
	r, err := res.Resolve(reflect.ValueOf(userType{}), contexts.V1{}, cfg)
	if err != nil {
		t.Fatalf("Resolve(userType): %v", err)
	}
	if _, ok := r.(rules.Iterate); !ok {
		t.Fatalf("Resolve(userType) = %T, want rules.Iterate (type registration wins over struct default)", r)
	}
}

// pickyType is a struct that carries its own encoding rule.
type pickyType struct{ N int }

func (pickyType) HashRule(ctx apis.Context) (apis.Rule, error) {
	return rules.Iterate{}, nil
}

// TestBuildResolver_RulerBeatsStructDefault asserts a struct's own
// HashRule wins over the root's generic structural default.
func TestBuildResolver_RulerBeatsStructDefault(t *testing.T) {
	b := builder.New()
	cfg := config.DefaultConfig()
	pol := b.BuildPolicies(cfg, nil, nil)
	res := b.BuildResolver(cfg, pol, nil, nil)

	r, err := res.Resolve(reflect.ValueOf(pickyType{}), contexts.V1{}, cfg)
	if err != nil {
		t.Fatalf("Resolve(pickyType): %v", err)
	}
	if _, ok := r.(rules.Iterate); !ok {
		t.Fatalf("Resolve(pickyType) = %T, want rules.Iterate (HashRule wins over struct default)", r)
	}
}

// TestBuildResolver_RulerPriority asserts the Ruler fallback loses to a
// context-independent type registration.
func TestBuildResolver_RulerPriority(t *testing.T) {
	b := builder.New()
	cfg := config.DefaultConfig()
	pol := b.BuildPolicies(cfg, nil, nil)
	res := b.BuildResolver(cfg, pol, nil, nil)

	if err := pol.RegisterType(reflect.TypeOf(hotType(nil)), override); err != nil {
		t.Fatalf("RegisterType: %v", err)
	}
	r, err := res.Resolve(reflect.ValueOf(make(hotType)), contexts.V1{}, cfg)
	if err != nil {
		t.Fatalf("Resolve(hotType): %v", err)
	}
	if _, ok := r.(rules.Iterate); !ok {
		t.Fatalf("Resolve(hotType) = %T, want rules.Iterate (type registration wins)", r)
	}
}
