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

package config_test

import (
	"crypto/sha256"
	"hash"
	"testing"

	"dirpx.dev/shx/config"
	"dirpx.dev/shx/contexts"
	"dirpx.dev/shx/hstate"
)

func TestDefaultConfigValues(t *testing.T) {
	got := config.DefaultConfig()

	if _, ok := got.Context.(contexts.V1); !ok {
		t.Fatalf("Context = %T, want contexts.V1", got.Context)
	}
	if got.Algorithm != config.DefaultAlgorithm {
		t.Fatalf("Algorithm = %q, want %q", got.Algorithm, config.DefaultAlgorithm)
	}
	if got.MaxDepth != config.DefaultMaxDepth {
		t.Fatalf("MaxDepth = %d, want %d", got.MaxDepth, config.DefaultMaxDepth)
	}
	if got.NewHash != nil || got.Roll != nil || got.OneShot != nil {
		t.Fatalf("default config carries an explicit backend: %+v", got)
	}
}

func TestWithContext(t *testing.T) {
	c := config.NewConfig(config.WithContext(contexts.V2{}))
	if _, ok := c.Context.(contexts.V2); !ok {
		t.Fatalf("Context = %T, want contexts.V2", c.Context)
	}

	// nil resets to the default root
	c2 := config.NewConfig(config.WithContext(nil))
	if _, ok := c2.Context.(contexts.V1); !ok {
		t.Fatalf("Context = %T, want contexts.V1", c2.Context)
	}
}

func TestWithAlgorithmAndHash(t *testing.T) {
	c := config.NewConfig(config.WithAlgorithm(config.AlgorithmBLAKE3))
	if c.Algorithm != config.AlgorithmBLAKE3 {
		t.Fatalf("Algorithm = %q, want %q", c.Algorithm, config.AlgorithmBLAKE3)
	}

	c2 := config.NewConfig(config.WithHash(func() hash.Hash { return sha256.New() }))
	if c2.NewHash == nil {
		t.Fatalf("NewHash = nil, want factory")
	}
	if c2.NewHash() == nil {
		t.Fatalf("NewHash() = nil, want hash.Hash")
	}
}

func TestWithRolling(t *testing.T) {
	c := config.NewConfig(config.WithRolling(hstate.XXH3Roll, 42))
	if c.Roll == nil {
		t.Fatalf("Roll = nil, want reduction function")
	}
	if c.Seed != 42 {
		t.Fatalf("Seed = %d, want 42", c.Seed)
	}
}

func TestWithOneShot(t *testing.T) {
	c := config.NewConfig(config.WithOneShot(func(b []byte) []byte {
		sum := sha256.Sum256(b)
		return sum[:]
	}))
	if c.OneShot == nil {
		t.Fatalf("OneShot = nil, want digest function")
	}
}

func TestWithMaxDepth(t *testing.T) {
	c := config.NewConfig(config.WithMaxDepth(8))
	if c.MaxDepth != 8 {
		t.Fatalf("MaxDepth = %d, want 8", c.MaxDepth)
	}

	// The constructor resets non-positive values.
	c2 := config.NewConfig(config.WithMaxDepth(-1))
	if c2.MaxDepth != config.DefaultMaxDepth {
		t.Fatalf("MaxDepth = %d, want default %d", c2.MaxDepth, config.DefaultMaxDepth)
	}
	c3 := config.NewConfig(config.WithMaxDepth(0))
	if c3.MaxDepth != config.DefaultMaxDepth {
		t.Fatalf("MaxDepth = %d, want default %d", c3.MaxDepth, config.DefaultMaxDepth)
	}
}

func TestOptionsOrder_LastWins(t *testing.T) {
	c := config.NewConfig(
		config.WithAlgorithm(config.AlgorithmSHA512),
		config.WithAlgorithm(config.AlgorithmXXH64),
		config.WithMaxDepth(2),
		config.WithMaxDepth(5),
		config.WithContext(contexts.V1{}),
		config.WithContext(contexts.V2{}),
	)

	if c.Algorithm != config.AlgorithmXXH64 {
		t.Errorf("Algorithm = %q, want %q (last option wins)", c.Algorithm, config.AlgorithmXXH64)
	}
	if c.MaxDepth != 5 {
		t.Errorf("MaxDepth = %d, want 5 (last option wins)", c.MaxDepth)
	}
	if _, ok := c.Context.(contexts.V2); !ok {
		t.Errorf("Context = %T, want contexts.V2 (last option wins)", c.Context)
	}
}

func TestNewDigester(t *testing.T) {
	names := []string{
		config.AlgorithmSHA256, config.AlgorithmSHA512,
		config.AlgorithmSHA3256, config.AlgorithmSHA3512,
		config.AlgorithmBLAKE2b256, config.AlgorithmBLAKE2b512,
		config.AlgorithmBLAKE3, config.AlgorithmXXH64,
	}
	for _, name := range names {
		t.Run(name, func(t *testing.T) {
			newHash, err := config.NewDigester(name)
			if err != nil {
				t.Fatalf("NewDigester(%q): %v", name, err)
			}
			h := newHash()
			if h == nil {
				t.Fatalf("NewDigester(%q): factory returned nil", name)
			}
			if _, err := h.Write([]byte("payload")); err != nil {
				t.Fatalf("Write: %v", err)
			}
			if len(h.Sum(nil)) == 0 {
				t.Fatalf("Sum returned empty digest")
			}
		})
	}
}

func TestNewDigester_Unknown(t *testing.T) {
	if _, err := config.NewDigester("md5"); err == nil {
		t.Fatalf("NewDigester(md5): expected error, got nil")
	}
}
