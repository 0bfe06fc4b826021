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

package typeid_test

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dirpx.dev/shx/typeid"
)

type thing struct{ N int }
type other struct{ N int }
type box[T any] struct{ V T }

func TestCompute_Deterministic(t *testing.T) {
	tt := reflect.TypeOf(thing{})

	a, err := typeid.Compute(tt, typeid.NameMode)
	require.NoError(t, err)
	b, err := typeid.Compute(tt, typeid.NameMode)
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.Len(t, a.Bytes(), typeid.Size)
}

func TestCompute_DistinctTypesDistinctIDs(t *testing.T) {
	a, err := typeid.Compute(reflect.TypeOf(thing{}), typeid.NameMode)
	require.NoError(t, err)
	b, err := typeid.Compute(reflect.TypeOf(other{}), typeid.NameMode)
	require.NoError(t, err)

	assert.NotEqual(t, a, b, "structurally identical but differently named types must differ")
}

func TestCompute_MatchesCanonicalSum(t *testing.T) {
	tt := reflect.TypeOf(thing{})

	name, err := typeid.Canonical(tt, typeid.NameMode)
	require.NoError(t, err)
	id, err := typeid.Compute(tt, typeid.NameMode)
	require.NoError(t, err)

	assert.Equal(t, typeid.Sum(name), id)
}

func TestCompute_GenericModes(t *testing.T) {
	intBox := reflect.TypeOf(box[int]{})
	strBox := reflect.TypeOf(box[string]{})

	// Name mode folds instantiations together.
	a, err := typeid.Compute(intBox, typeid.NameMode)
	require.NoError(t, err)
	b, err := typeid.Compute(strBox, typeid.NameMode)
	require.NoError(t, err)
	assert.Equal(t, a, b)

	// Type mode keeps them apart.
	a, err = typeid.Compute(intBox, typeid.TypeMode)
	require.NoError(t, err)
	b, err = typeid.Compute(strBox, typeid.TypeMode)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestCompute_UnnamedRejectedInNameMode(t *testing.T) {
	for _, tt := range []reflect.Type{
		reflect.TypeOf([]int{}),
		reflect.TypeOf(map[string]int{}),
		reflect.TypeOf(struct{ X int }{}),
	} {
		_, err := typeid.Compute(tt, typeid.NameMode)
		assert.ErrorIs(t, err, typeid.ErrUnstableTypeName, "type %s", tt)

		// The same types are fine structurally.
		_, err = typeid.Compute(tt, typeid.TypeMode)
		assert.NoError(t, err, "type %s", tt)
	}
}

func TestSum_FixedVectors(t *testing.T) {
	// Sum must never change across releases: identifiers are part of
	// the encoded stream.
	a := typeid.Sum("go.int")
	b := typeid.Sum("go.int")
	c := typeid.Sum("go.uint")

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Len(t, a.String(), 2*typeid.Size)
}

func TestCanonical(t *testing.T) {
	name, err := typeid.Canonical(reflect.TypeOf(0), typeid.NameMode)
	require.NoError(t, err)
	assert.Equal(t, "go.int", name)

	_, err = typeid.Canonical(reflect.TypeOf([]int{}), typeid.NameMode)
	assert.ErrorIs(t, err, typeid.ErrUnstableTypeName)
}
