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

package reflect_test

import (
	"reflect"
	"testing"

	uref "dirpx.dev/shx/utils/reflect"
)

// Local test types.
type A struct{}
type B struct{ X int }
type G[T any] struct{}
type W[T any] struct{ V T }

const pkg = "dirpx.dev/shx/utils/reflect_test"

func TestCanonicalName_NameMode(t *testing.T) {
	cases := []struct {
		name string
		typ  reflect.Type
		want string
	}{
		{"named struct", reflect.TypeOf(A{}), pkg + ".A"},
		{"builtin", reflect.TypeOf(int(0)), "go.int"},
		{"builtin string", reflect.TypeOf(""), "go.string"},
		{"generic int", reflect.TypeOf(G[int]{}), pkg + ".G"},
		{"generic string", reflect.TypeOf(G[string]{}), pkg + ".G"},
		{"nested generic", reflect.TypeOf(W[G[int]]{}), pkg + ".W"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := uref.CanonicalName(tc.typ, false)
			if err != nil {
				t.Fatalf("CanonicalName(%v): %v", tc.typ, err)
			}
			if got != tc.want {
				t.Fatalf("CanonicalName(%v) = %q, want %q", tc.typ, got, tc.want)
			}
		})
	}
}

func TestCanonicalName_NameMode_GenericInstancesCollide(t *testing.T) {
	// All instantiations of one parameterized type share one identity.
	a, err := uref.CanonicalName(reflect.TypeOf(G[int]{}), false)
	if err != nil {
		t.Fatalf("G[int]: %v", err)
	}
	b, err := uref.CanonicalName(reflect.TypeOf(G[A]{}), false)
	if err != nil {
		t.Fatalf("G[A]: %v", err)
	}
	if a != b {
		t.Fatalf("instantiations differ: %q vs %q", a, b)
	}
}

func TestCanonicalName_NameMode_UnnamedErrors(t *testing.T) {
	unnamed := []reflect.Type{
		reflect.TypeOf([]int{}),
		reflect.TypeOf(map[string]int{}),
		reflect.TypeOf(struct{ X int }{}),
		reflect.TypeOf(&A{}),
	}
	for _, typ := range unnamed {
		if _, err := uref.CanonicalName(typ, false); err != uref.ErrUnstableName {
			t.Fatalf("CanonicalName(%v): want ErrUnstableName, got %v", typ, err)
		}
	}
}

func TestCanonicalName_TypeMode(t *testing.T) {
	cases := []struct {
		name string
		typ  reflect.Type
		want string
	}{
		{"slice", reflect.TypeOf([]int{}), "go.[]int"},
		{"map", reflect.TypeOf(map[string]int{}), "go.map[string]int"},
		{"generic", reflect.TypeOf(G[int]{}), pkg + ".reflect_test.G[int]"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := uref.CanonicalName(tc.typ, true)
			if err != nil {
				t.Fatalf("CanonicalName(%v, full): %v", tc.typ, err)
			}
			if got != tc.want {
				t.Fatalf("CanonicalName(%v, full) = %q, want %q", tc.typ, got, tc.want)
			}
		})
	}
}

func TestCanonicalName_TypeMode_DistinguishesInstantiations(t *testing.T) {
	a, _ := uref.CanonicalName(reflect.TypeOf(G[int]{}), true)
	b, _ := uref.CanonicalName(reflect.TypeOf(G[string]{}), true)
	if a == b {
		t.Fatalf("type mode collapsed distinct instantiations: %q", a)
	}
}

func TestCanonicalName_NilType(t *testing.T) {
	if _, err := uref.CanonicalName(nil, false); err != uref.ErrNilType {
		t.Fatalf("want ErrNilType, got %v", err)
	}
	if _, err := uref.CanonicalName(nil, true); err != uref.ErrNilType {
		t.Fatalf("full: want ErrNilType, got %v", err)
	}
}

func TestStripTypeParams(t *testing.T) {
	cases := []struct{ in, want string }{
		{"G[int]", "G"},
		{"G[int,string]", "G"},
		{"G", "G"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := uref.StripTypeParams(tc.in); got != tc.want {
			t.Fatalf("StripTypeParams(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestCollapseSpaces(t *testing.T) {
	cases := []struct{ in, want string }{
		{"map[string, int]", "map[string,int]"},
		{"struct { A int; B string }", "struct {A int;B string}"},
		{"[]int", "[]int"},
		{"A int", "A int"}, // field separator spaces are semantic
	}
	for _, tc := range cases {
		if got := uref.CollapseSpaces(tc.in); got != tc.want {
			t.Fatalf("CollapseSpaces(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestScope(t *testing.T) {
	if got := uref.Scope(reflect.TypeOf(A{})); got != pkg {
		t.Fatalf("Scope(A) = %q, want %q", got, pkg)
	}
	if got := uref.Scope(reflect.TypeOf(0)); got != uref.BuiltinScope {
		t.Fatalf("Scope(int) = %q, want %q", got, uref.BuiltinScope)
	}
	if got := uref.Scope(reflect.TypeOf([]A{})); got != uref.BuiltinScope {
		t.Fatalf("Scope([]A) = %q, want %q", got, uref.BuiltinScope)
	}
}

func TestDeref(t *testing.T) {
	b := B{X: 7}
	pb := &b
	ppb := &pb

	v, ok := uref.Deref(reflect.ValueOf(ppb), 8)
	if !ok || v.Type() != reflect.TypeOf(B{}) {
		t.Fatalf("Deref(**B): got (%v,%v), want (B,true)", v.Type(), ok)
	}

	var iface any = pb
	v, ok = uref.Deref(reflect.ValueOf(&iface).Elem(), 8)
	if !ok || v.Type() != reflect.TypeOf(B{}) {
		t.Fatalf("Deref(interface->*B): got (%v,%v), want (B,true)", v.Type(), ok)
	}

	var nilPtr *B
	if _, ok := uref.Deref(reflect.ValueOf(nilPtr), 8); ok {
		t.Fatalf("Deref(nil *B): got ok=true, want false")
	}

	// Non-indirect values pass through untouched.
	v, ok = uref.Deref(reflect.ValueOf(42), 8)
	if !ok || v.Kind() != reflect.Int {
		t.Fatalf("Deref(42): got (%v,%v), want (int,true)", v.Kind(), ok)
	}
}
