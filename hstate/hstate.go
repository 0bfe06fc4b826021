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

// Package hstate implements the hash-state backends: byte accumulation,
// nested-scope delimiting, and finalization over a pluggable digest
// function.
//
// Backends compose. The legacy context version uses a bare direct
// backend for strict historical reproducibility; the optimized version
// stacks delimiter marking over buffering over the direct backend.
// Scope misuse (closing an unopened scope, finalizing with open scopes)
// is an engine bug, not caller input, and panics.
package hstate

import (
	"hash"

	"dirpx.dev/shx/apis"
)

// New selects and composes a backend for the given configuration.
// A rolling reduction takes priority, then the one-shot adapter, then
// the direct streaming backend over newHash. version is the root
// context's compatibility version: version 2 and later wrap the base
// backend in buffering and sentinel-byte scope marking.
func New(cfg apis.Config, newHash func() hash.Hash, version int) apis.State {
	if cfg.Roll != nil {
		return NewRolling(cfg.Roll, cfg.Seed)
	}
	var base apis.State
	if cfg.OneShot != nil {
		base = NewOneShot(cfg.OneShot)
	} else {
		base = NewDirect(newHash)
	}
	if version >= 2 {
		base = NewMarked(NewBuffered(base))
	}
	return base
}
