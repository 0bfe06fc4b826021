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
	"fmt"
	"reflect"
	"sort"

	"dirpx.dev/shx/apis"
	"dirpx.dev/shx/rules"
)

// TableEq widens the equality class of tabular data: any value
// implementing apis.Tabular hashes by column identity and per-column
// content only. Column order and the concrete container type are
// irrelevant. Non-tabular values delegate to the parent.
type TableEq struct {
	// P is the wrapped parent context.
	P apis.Context
}

// Compile-time interface check.
var _ apis.Provider = TableEq{}

// Parent returns the wrapped context.
func (c TableEq) Parent() apis.Context { return c.P }

// ProvideRule overrides the rule for tabular values and declines the
// rest, letting resolution fall through to the parent.
func (c TableEq) ProvideRule(v reflect.Value, _ apis.Context) (apis.Rule, bool, error) {
	if !v.CanInterface() {
		return nil, false, nil
	}
	if _, ok := v.Interface().(apis.Tabular); !ok {
		return nil, false, nil
	}
	return rules.Seq(
		rules.Constant{Value: "istable", Result: rules.Raw{}},
		rules.Apply{
			Fn: tableColumns,
			Result: rules.Fields{
				Source: columnSource,
				Order:  apis.ByOrder,
				Names:  apis.KeepNames,
			},
		},
	), true, nil
}

// tableColumns is the ApplyFunc projecting a Tabular value to its
// columns sorted by name, which is what makes column order irrelevant.
func tableColumns(v reflect.Value, _ apis.Context) (any, error) {
	tab, ok := v.Interface().(apis.Tabular)
	if !ok {
		return nil, fmt.Errorf("shx(contexts): not a tabular value: %s", v.Type())
	}
	cols := tab.HashColumns()
	sorted := make([]apis.Column, len(cols))
	copy(sorted, cols)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })
	return sorted, nil
}

// columnSource enumerates sorted columns as (name, content) fields.
func columnSource(v reflect.Value) ([]apis.Field, error) {
	cols, ok := v.Interface().([]apis.Column)
	if !ok {
		return nil, fmt.Errorf("shx(contexts): not a column list: %s", v.Type())
	}
	fields := make([]apis.Field, len(cols))
	for i, col := range cols {
		fields[i] = apis.Field{Name: col.Name, Value: reflect.ValueOf(col.Values)}
	}
	return fields, nil
}
