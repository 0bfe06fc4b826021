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

// Package config builds hash computation configurations from functional
// options and names the supported digest algorithms.
package config

import (
	"hash"

	"dirpx.dev/shx/apis"
	"dirpx.dev/shx/contexts"
)

const (
	// DefaultAlgorithm is the digest algorithm used when none is chosen.
	DefaultAlgorithm = AlgorithmSHA256
	// DefaultMaxDepth bounds encode recursion. Legitimate structures
	// rarely nest past a few dozen levels; the guard exists for cyclic
	// pointer graphs, which have no stable finite encoding.
	DefaultMaxDepth = 256
)

// NewConfig constructs an apis.Config from the given options.
func NewConfig(opts ...Option) apis.Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	// Ensure MaxDepth is valid.
	if cfg.MaxDepth <= 0 {
		cfg.MaxDepth = DefaultMaxDepth
	}
	return cfg
}

// DefaultConfig is the default configuration used when none is provided:
// the legacy V1 root context over the default algorithm.
func DefaultConfig() apis.Config {
	return apis.Config{
		Context:   contexts.V1{},
		Algorithm: DefaultAlgorithm,
		MaxDepth:  DefaultMaxDepth,
	}
}

// Option is a functional option that mutates an apis.Config during construction.
type Option func(*apis.Config)

// WithContext selects the policy context digests are computed under.
// A nil ctx resets to the default V1 root.
func WithContext(ctx apis.Context) Option {
	return func(c *apis.Config) {
		if ctx == nil {
			c.Context = contexts.V1{}
			return
		}
		c.Context = ctx
	}
}

// WithAlgorithm selects a digest algorithm by registered name.
func WithAlgorithm(name string) Option {
	return func(c *apis.Config) {
		c.Algorithm = name
	}
}

// WithHash supplies a streaming hash factory directly (algorithm
// plug-in, streaming kind). Each call must return a fresh hash.Hash.
func WithHash(newHash func() hash.Hash) Option {
	return func(c *apis.Config) {
		c.NewHash = newHash
	}
}

// WithRolling selects the rolling backend over the given reduction and
// seed (algorithm plug-in, rolling-accumulator kind).
func WithRolling(fn apis.RollFunc, seed uint64) Option {
	return func(c *apis.Config) {
		c.Roll = fn
		c.Seed = seed
	}
}

// WithOneShot selects the accept-bytes-return-digest backend
// (algorithm plug-in, one-shot kind).
func WithOneShot(fn apis.OneShotFunc) Option {
	return func(c *apis.Config) {
		c.OneShot = fn
	}
}

// WithMaxDepth sets the recursion bound. A non-positive value resets to
// the default.
func WithMaxDepth(max int) Option {
	return func(c *apis.Config) {
		if max <= 0 {
			c.MaxDepth = DefaultMaxDepth
			return
		}
		c.MaxDepth = max
	}
}
