// This is free and unencumbered software released into the public domain.
//
// Anyone is free to copy, modify, publish, use, compile, sell, or
// distribute this software, either in source code form or as a compiled
// binary, for any purpose, commercial or non-commercial, and by any
// means.
//
// In jurisdictions that recognize copyright laws, the author or authors
// of this software dedicate any and all copyright interest in the
// software to the public domain. We make this dedication for the benefit
// of the public at large and to the detriment of our heirs and
// successors. We intend this dedication to be an overt act of
// relinquishment in perpetuity of all present and future rights to this
// software under copyright law.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND,
// EXPRESS OR IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF
// MERCHANTABILITY, FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT.
// IN NO EVENT SHALL THE AUTHORS BE LIABLE FOR ANY CLAIM, DAMAGES OR
// OTHER LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE,
// ARISING FROM, OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR
// OTHER DEALINGS IN THE SOFTWARE.
//
// For more information, please refer to <https://unlicense.org>

// Package verkle implements a 256-ary Verkle trie: an authenticated
// key-value map whose membership and non-membership proofs are a single
// constant-size vector-commitment opening rather than a Merkle path.
package verkle

import (
	"sync"

	"github.com/verkle-trie/verkle/ipa"
)

// crsDomainSeparator is the label NewCRS hashes against; it is the one
// place the trusted-setup-free setup is pinned, matching every other
// deployment of this scheme so commitments made by different processes
// are comparable.
const crsDomainSeparator = "eth_verkle_oct_2021"

// Config bundles the three pieces of process-wide immutable state every
// trie operation reads: the CRS, the precomputed barycentric weights,
// and a committer fast enough to use on every insert. It is built once
// and never mutated afterwards.
type Config struct {
	CRS       *ipa.CRS
	Weights   *ipa.PrecomputedWeights
	Committer *ipa.PrecomputeLagrange
}

var (
	defaultConfig     *Config
	defaultConfigOnce sync.Once
	configOverride    *Config
	configMu          sync.RWMutex
)

func buildConfig() *Config {
	crs := ipa.NewCRS(crsDomainSeparator, ipa.NumGenerators)
	return &Config{
		CRS:       crs,
		Weights:   ipa.NewPrecomputedWeights(ipa.NumGenerators),
		Committer: ipa.NewPrecomputeLagrange(crs.G),
	}
}

// GetConfig returns the process-wide Config, building it lazily on first
// use (the hash-to-curve CRS search and the 256 precomputed tables are
// the only nontrivial startup cost in this package). A test override
// installed via SetConfigForTesting takes precedence.
func GetConfig() *Config {
	configMu.RLock()
	override := configOverride
	configMu.RUnlock()
	if override != nil {
		return override
	}
	defaultConfigOnce.Do(func() {
		defaultConfig = buildConfig()
	})
	return defaultConfig
}

// SetConfigForTesting installs cfg as the process-wide Config until the
// returned restore function is called. It exists so tests can run against
// a tiny CRS instead of paying the full 256-generator hash-to-curve
// search on every run.
func SetConfigForTesting(cfg *Config) (restore func()) {
	configMu.Lock()
	prev := configOverride
	configOverride = cfg
	configMu.Unlock()
	return func() {
		configMu.Lock()
		configOverride = prev
		configMu.Unlock()
	}
}
