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

package hstate

import (
	"hash"

	"dirpx.dev/shx/apis"
)

// NewDirect wraps a streaming hash function as a State. Each opened
// scope gets its own fresh sub-hash; closing the scope finalizes the
// sub-hash and feeds its digest into the parent as ordinary bytes.
func NewDirect(newHash func() hash.Hash) apis.State {
	return &direct{newHash: newHash, stack: []hash.Hash{newHash()}}
}

// direct maintains a stack of live hash.Hash instances, one per open
// scope, with the outermost computation at the bottom.
type direct struct {
	newHash func() hash.Hash
	stack   []hash.Hash
}

// Ensure direct implements apis.State.
var _ apis.State = (*direct)(nil)

// Push writes b into the innermost open scope's hash.
func (d *direct) Push(b []byte) apis.State {
	// hash.Hash.Write never returns an error.
	_, _ = d.stack[len(d.stack)-1].Write(b)
	return d
}

// OpenScope starts a fresh sub-hash for the nested sub-structure.
func (d *direct) OpenScope() apis.State {
	d.stack = append(d.stack, d.newHash())
	return d
}

// CloseScope finalizes the innermost sub-hash and feeds its digest to
// the enclosing scope.
func (d *direct) CloseScope() apis.State {
	if len(d.stack) < 2 {
		panic("hstate: CloseScope without matching OpenScope")
	}
	sub := d.stack[len(d.stack)-1]
	d.stack = d.stack[:len(d.stack)-1]
	_, _ = d.stack[len(d.stack)-1].Write(sub.Sum(nil))
	return d
}

// Finalize produces the digest of the outermost scope.
func (d *direct) Finalize() []byte {
	if len(d.stack) != 1 {
		panic("hstate: Finalize with open scopes")
	}
	sum := d.stack[0].Sum(nil)
	d.stack = nil
	return sum
}
