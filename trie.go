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

package verkle

import "github.com/verkle-trie/verkle/bandersnatch/fr"

// Trie is a 256-ary Verkle trie: an authenticated key-value map whose
// root is a single group element and whose membership proofs are a
// single constant-size polynomial-commitment opening. A zero-value Trie
// is not usable; construct one with New.
type Trie struct {
	cfg     *Config
	storage *Storage
}

// New returns an empty trie using the process-wide Config.
func New() *Trie {
	return &Trie{cfg: GetConfig(), storage: NewStorage()}
}

// Get returns the value stored at key, if any.
func (t *Trie) Get(key Key) ([32]byte, bool) { return t.storage.GetLeaf(key) }

// Root returns the trie's root commitment.
func (t *Trie) Root() [32]byte { return t.storage.Root().ToBytes() }

// RootHash returns the root commitment's map-to-scalar-field hash: the
// value used as "the root" wherever a scalar, rather than a group
// element, is needed (e.g. the zero hash of an empty trie).
func (t *Trie) RootHash() fr.Element { return t.storage.RootHash() }
