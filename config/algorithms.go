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

package config

import (
	"crypto/sha256"
	"crypto/sha512"
	"errors"
	"fmt"
	"hash"

	"github.com/cespare/xxhash/v2"
	"github.com/zeebo/blake3"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/sha3"
)

// Registered digest algorithm names.
const (
	// SHA-2 family (NIST FIPS 180-4)
	AlgorithmSHA256 = "sha-256"
	AlgorithmSHA512 = "sha-512"

	// SHA-3 family (NIST FIPS 202)
	AlgorithmSHA3256 = "sha3-256"
	AlgorithmSHA3512 = "sha3-512"

	// BLAKE2b family (RFC 7693)
	AlgorithmBLAKE2b256 = "blake2b-256"
	AlgorithmBLAKE2b512 = "blake2b-512"

	// BLAKE3
	AlgorithmBLAKE3 = "blake3"

	// XXH64, non-cryptographic. Digests carry only the collision
	// guarantees of the underlying function.
	AlgorithmXXH64 = "xxhash64"
)

// ErrUnknownAlgorithm is returned for names outside the table above.
var ErrUnknownAlgorithm = errors.New("shx(config): unknown digest algorithm")

// NewDigester returns a factory of streaming hash instances for a
// registered algorithm name.
func NewDigester(algorithm string) (func() hash.Hash, error) {
	switch algorithm {
	case AlgorithmSHA256:
		return sha256.New, nil
	case AlgorithmSHA512:
		return sha512.New, nil
	case AlgorithmSHA3256:
		return func() hash.Hash { return sha3.New256() }, nil
	case AlgorithmSHA3512:
		return func() hash.Hash { return sha3.New512() }, nil
	case AlgorithmBLAKE2b256:
		return func() hash.Hash {
			h, _ := blake2b.New256(nil) // only errs on oversized keys
			return h
		}, nil
	case AlgorithmBLAKE2b512:
		return func() hash.Hash {
			h, _ := blake2b.New512(nil)
			return h
		}, nil
	case AlgorithmBLAKE3:
		return func() hash.Hash { return blake3.New() }, nil
	case AlgorithmXXH64:
		return func() hash.Hash { return xxhash.New() }, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, algorithm)
}
