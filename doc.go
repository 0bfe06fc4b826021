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

// Package shx computes structural, cross-process-stable digests of Go
// values.
//
// shx is responsible for turning "some Go value" into a byte digest
// that depends only on the value's content and structure, never on
// memory layout, pointer identity, map iteration order, or which
// process computed it. Two values that are structurally equal hash to
// the same digest on any machine, today or a year from now. Digests
// are suitable for content-addressed caching, change detection, and
// cache keys shared across binaries.
//
// # Design
//
// A digest computation has three layers:
//
//   - Hash state (hstate): an incremental accumulator behind the
//     apis.State interface. Push feeds bytes; OpenScope/CloseScope
//     bracket nested substructures so that different groupings of the
//     same bytes produce different digests. Concrete states wrap any
//     crypto-grade hash.Hash, a rolling 64-bit reducer, or a one-shot
//     digest function, with optional buffering and scope sentinels
//     layered on top.
//
//   - Rules (rules): small declarative values that say how to encode
//     one value. Raw pushes the value's fixed-width serialization;
//     Iterate recurses over elements; Fields recurses over named
//     fields; Apply derives a replacement value; Constant injects a
//     literal; Sequence chains rules; Swap changes the context for a
//     subtree.
//
//   - Resolution (registry, strategy, resolver): answers "which rule
//     encodes this value under this context?". The resolver walks the
//     context parent chain; at each level it consults explicit
//     registrations first and the context's own built-ins second, then
//     falls through to context-independent registrations, the value's
//     apis.Ruler implementation, and finally the root context's
//     per-kind defaults. No answer anywhere is ErrUnresolvedPolicy.
//
// Contexts (contexts) select encoding dialects. V1 tags values with
// canonical type-name strings; V2 tags them with 128-bit type
// identifiers (typeid) and drops struct field names for speed. TableEq
// and ViewEq are wrapper contexts that widen equivalence: TableEq
// makes any apis.Tabular with equal columns hash alike, ViewEq makes
// slices, arrays, and string views with equal contents hash alike.
//
// # Global API
//
// The package keeps a read-mostly global snapshot (state) holding the
// active Config, policy table, resolver, raw-bytes override table, and
// Builder. Readers load the snapshot atomically; writers build a new
// snapshot under a mutex and publish it with one pointer swap. The hot
// path is therefore lock-free:
//
//	sum, err := shx.Hash(myValue)
//	sum, err := shx.Hash(myValue, config.WithContext(contexts.V2{}))
//
// Registration helpers (Register, RegisterTypeRule, RegisterBytes)
// write into the published tables, which accept concurrent
// registrations. Snapshot mutators (SetConfig, SetBuilder, SetExt,
// SetPolicies, SetResolver, SetAll) rebuild the non-pinned layers
// through the Builder and publish atomically; SetPolicies and
// SetResolver pin the layer they set until the matching Unpin call.
//
// For isolated tables, or to avoid the global snapshot entirely,
// construct an Engine:
//
//	e := shx.New(config.WithAlgorithm(config.AlgorithmBLAKE3))
//	sum, err := e.Hash(myValue)
//
// # Stability contract
//
// For a fixed context version and algorithm, digests are stable across
// processes, architectures, and releases. Multi-byte scalars are
// encoded little-endian at fixed widths; struct fields are ordered by
// name (or by a rule's explicit order); map entries are keyed by their
// printed form. Types whose canonical name cannot be computed (unnamed
// function types, for example) yield ErrUnstableTypeName rather than a
// digest that could silently drift.
//
// # Scope
//
// shx does one job: structural value hashing. It is not a
// serialization codec, not an equality library, and not a DI
// container. Anything that needs the digest (caches, indexes, sync
// protocols) belongs to higher layers.
package shx
