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

package apis

import "hash"

// Config carries read-only knobs for a hash computation.
// It is passed by value and should be treated as immutable by implementations.
type Config struct {
	// Context is the policy context digests are computed under.
	// If nil, the legacy V1 root context is used.
	Context Context

	// Algorithm names a registered digest algorithm (e.g. "sha-256",
	// "blake2b-256"). Ignored when NewHash, Roll, or OneShot is set.
	Algorithm string

	// NewHash supplies a streaming hash factory directly, bypassing the
	// algorithm table. Each call must return a fresh hash.Hash.
	NewHash func() hash.Hash

	// Roll selects the rolling backend: pushed bytes are folded into a
	// uint64 accumulator starting from Seed.
	Roll RollFunc

	// Seed is the initial accumulator for the rolling backend.
	Seed uint64

	// OneShot selects the accept-bytes-return-digest backend.
	OneShot OneShotFunc

	// MaxDepth bounds encode recursion. Cyclic pointer graphs have no
	// stable finite encoding, so exceeding the bound is a hard error.
	MaxDepth int
}
