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

package rules

import (
	"fmt"
	"reflect"
	"sort"

	"dirpx.dev/shx/apis"
)

// StructSource enumerates the exported fields of a struct value in
// declaration order. It is the default Source of a Fields rule.
func StructSource(v reflect.Value) ([]apis.Field, error) {
	if v.Kind() != reflect.Struct {
		return nil, fmt.Errorf("rules: struct field source applied to %s", v.Type())
	}
	t := v.Type()
	fields := make([]apis.Field, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		fields = append(fields, apis.Field{Name: f.Name, Value: v.Field(i)})
	}
	return fields, nil
}

// MapSource enumerates a map's entries as fields, using the stringified
// key as the field identifier. Combined with ByName ordering this gives
// maps a deterministic, insertion-order-independent encoding.
func MapSource(v reflect.Value) ([]apis.Field, error) {
	if v.Kind() != reflect.Map {
		return nil, fmt.Errorf("rules: map field source applied to %s", v.Type())
	}
	fields := make([]apis.Field, 0, v.Len())
	iter := v.MapRange()
	for iter.Next() {
		fields = append(fields, apis.Field{
			Name:  fmt.Sprint(iter.Key().Interface()),
			Value: iter.Value(),
		})
	}
	return fields, nil
}

// Length is an ApplyFunc returning the element count of the value.
func Length(v reflect.Value, _ apis.Context) (any, error) {
	switch v.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map, reflect.String, reflect.Chan:
		return int64(v.Len()), nil
	}
	return nil, fmt.Errorf("rules: length of %s", v.Type())
}

// SortedKeys is an ApplyFunc returning a map's keys sorted by their
// string form. It gives unordered sets (map[T]struct{}) a deterministic
// encoding independent of iteration order.
func SortedKeys(v reflect.Value, _ apis.Context) (any, error) {
	if v.Kind() != reflect.Map {
		return nil, fmt.Errorf("rules: sorted keys of %s", v.Type())
	}
	type entry struct {
		name string
		key  reflect.Value
	}
	entries := make([]entry, 0, v.Len())
	iter := v.MapRange()
	for iter.Next() {
		k := iter.Key()
		entries = append(entries, entry{name: fmt.Sprint(k.Interface()), key: k})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].name < entries[j].name })
	keys := make([]any, len(entries))
	for i, e := range entries {
		keys[i] = e.key.Interface()
	}
	return keys, nil
}
