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

// Package typeid computes fixed-width, cross-version-stable type
// identifiers. The identifier is a 128-bit BLAKE3 digest of a canonical
// type string, so two runtime types that canonicalize to the same
// string are identical for hashing purposes regardless of incidental
// representation differences.
//
// The digest function here is fixed and independent of the configurable
// main hash algorithm: type identifiers are part of the encoded stream
// and must not change when the caller picks a different digest.
package typeid

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/zeebo/blake3"

	uref "dirpx.dev/shx/utils/reflect"
)

// Size is the identifier width in bytes (128 bits).
const Size = 16

// ErrUnstableTypeName indicates that a type's canonical name cannot be
// made stable across runs, so no identifier can be derived for it.
var ErrUnstableTypeName = errors.New("typeid: type name is not stable")

// ID is a fixed-width type identifier.
type ID [Size]byte

// Bytes returns the identifier as a byte slice.
func (id ID) Bytes() []byte { return id[:] }

// String returns the identifier in lowercase hex.
func (id ID) String() string { return fmt.Sprintf("%x", id[:]) }

// Mode selects how much of a type's structure participates in its
// identity.
type Mode int

const (
	// NameMode identifies a type by scope and base name only; generic
	// instantiations of one container share a single identity.
	NameMode Mode = iota

	// TypeMode identifies a type by its full structural string,
	// making the identity sensitive to parameterization.
	TypeMode
)

// cacheKey memoizes per (type, mode); identifiers are pure functions of
// both.
type cacheKey struct {
	t    reflect.Type
	mode Mode
}

// cache holds computed identifiers. Entries are never invalidated:
// reflect.Type values are canonical per process and the digest is fixed.
var cache sync.Map // key: cacheKey, val: ID

// Compute derives the identifier for t under the given mode.
// Types whose canonical name is unstable (unnamed types in NameMode)
// are rejected with ErrUnstableTypeName.
func Compute(t reflect.Type, mode Mode) (ID, error) {
	key := cacheKey{t: t, mode: mode}
	if v, ok := cache.Load(key); ok {
		return v.(ID), nil
	}
	name, err := uref.CanonicalName(t, mode == TypeMode)
	if err != nil {
		if errors.Is(err, uref.ErrUnstableName) {
			return ID{}, fmt.Errorf("%w: %s", ErrUnstableTypeName, t)
		}
		return ID{}, err
	}
	id := Sum(name)
	cache.Store(key, id)
	return id, nil
}

// Sum digests an arbitrary canonical string into an identifier.
// Exposed for identities that are not types (e.g. function names).
func Sum(canonical string) ID {
	h := blake3.New()
	_, _ = h.Write([]byte(canonical))
	var id ID
	_, _ = h.Digest().Read(id[:])
	return id
}

// Canonical returns the canonical string Compute would digest for t.
func Canonical(t reflect.Type, mode Mode) (string, error) {
	s, err := uref.CanonicalName(t, mode == TypeMode)
	if err != nil {
		if errors.Is(err, uref.ErrUnstableName) {
			return "", fmt.Errorf("%w: %s", ErrUnstableTypeName, t)
		}
		return "", err
	}
	return s, nil
}
