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

import "testing"

func TestEmptyTrieRootIsThirtyTwoZeroBytes(t *testing.T) {
	trie := New()
	root := trie.Root()
	for i, b := range root {
		if b != 0 {
			t.Fatalf("empty trie root byte %d is %#x, want 0", i, b)
		}
	}
	if !trie.RootHash().IsZero() {
		t.Fatalf("empty trie RootHash should be zero")
	}
}

func TestGetOnEmptyTrieMisses(t *testing.T) {
	trie := New()
	var k Key
	k[0] = 1
	if _, ok := trie.Get(k); ok {
		t.Fatalf("Get on an empty trie should miss")
	}
}

func TestInsertThenGetRoundTrips(t *testing.T) {
	trie := New()
	var k Key
	k[0] = 0xaa
	k[31] = 3
	var v [32]byte
	v[0] = 0x42

	if err := trie.Insert(k, v); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	got, ok := trie.Get(k)
	if !ok {
		t.Fatalf("Get missed a key that was just inserted")
	}
	if got != v {
		t.Fatalf("Get returned %x, want %x", got, v)
	}
	if trie.RootHash().IsZero() {
		t.Fatalf("root hash should change after an insert")
	}
}

func TestInsertChangesRootDeterministically(t *testing.T) {
	keyOf := func(b byte) Key {
		var k Key
		k[0] = b
		return k
	}

	t1 := New()
	t1.Insert(keyOf(1), [32]byte{1})
	t1.Insert(keyOf(2), [32]byte{2})

	t2 := New()
	t2.Insert(keyOf(2), [32]byte{2})
	t2.Insert(keyOf(1), [32]byte{1})

	if t1.Root() != t2.Root() {
		t.Fatalf("root should not depend on insertion order")
	}
}
