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

import (
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/verkle-trie/verkle/bandersnatch"
)

// fixtureTrie builds a small trie exercising present keys under several
// distinct stems (including two keys sharing a stem, one in C1 and one in
// C2), plus stems never inserted at all, for absence proofs.
func fixtureTrie(t *testing.T) (trie *Trie, present []Key, values map[Key][32]byte) {
	t.Helper()
	trie = New()
	values = make(map[Key][32]byte)

	add := func(seed byte, suffix byte, val byte) Key {
		var k Key
		for i := 0; i < 31; i++ {
			k[i] = seed
		}
		k[31] = suffix
		var v [32]byte
		v[0] = val
		if err := trie.Insert(k, v); err != nil {
			t.Fatalf("Insert: %v", err)
		}
		values[k] = v
		present = append(present, k)
		return k
	}

	add(0x11, 3, 1)
	add(0x11, 200, 2) // shares the 0x11 stem, lands in C2
	add(0x22, 5, 3)   // a different stem entirely
	add(0x99, 0, 4)

	return trie, present, values
}

func rootElement(t *testing.T, trie *Trie) *bandersnatch.Element {
	t.Helper()
	b := trie.Root()
	e, err := bandersnatch.FromBytes(b)
	if err != nil {
		t.Fatalf("decoding root: %v", err)
	}
	return e
}

func TestProveVerifyPresentKeys(t *testing.T) {
	trie, present, values := fixtureTrie(t)
	root := rootElement(t, trie)

	proof, err := trie.Prove(present)
	if err != nil {
		t.Fatalf("Prove: %v", err)
	}

	valuePtrs := make([]*[32]byte, len(present))
	for i, k := range present {
		v := values[k]
		valuePtrs[i] = &v
	}

	ok, hint, err := Check(trie.cfg, proof, present, valuePtrs, root)
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if !ok {
		t.Fatalf("Check rejected an honest proof of present keys")
	}
	if hint == nil {
		t.Fatalf("Check returned a nil hint on success")
	}
}

func TestProveVerifyAbsentKeys(t *testing.T) {
	trie, _, _ := fixtureTrie(t)
	root := rootElement(t, trie)

	var absentDifferentStem, absentNoStem Key
	for i := 0; i < 31; i++ {
		absentDifferentStem[i] = 0x11
	}
	absentDifferentStem[31] = 50 // same stem as an existing stem, unused suffix
	for i := 0; i < 31; i++ {
		absentNoStem[i] = 0xab
	}
	absentNoStem[31] = 0 // a stem never touched

	keys := []Key{absentDifferentStem, absentNoStem}
	proof, err := trie.Prove(keys)
	if err != nil {
		t.Fatalf("Prove: %v", err)
	}

	values := []*[32]byte{nil, nil}
	ok, _, err := Check(trie.cfg, proof, keys, values, root)
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if !ok {
		t.Fatalf("Check rejected an honest absence proof")
	}
}

func TestCheckRejectsTamperedValue(t *testing.T) {
	trie, present, values := fixtureTrie(t)
	root := rootElement(t, trie)

	proof, err := trie.Prove(present)
	if err != nil {
		t.Fatalf("Prove: %v", err)
	}

	valuePtrs := make([]*[32]byte, len(present))
	for i, k := range present {
		v := values[k]
		v[1] ^= 0xff // tamper with a byte the prover never claimed
		valuePtrs[i] = &v
	}

	ok, _, err := Check(trie.cfg, proof, present, valuePtrs, root)
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if ok {
		t.Fatalf("Check accepted a tampered claimed value")
	}
}

func TestCheckRejectsTamperedCommitment(t *testing.T) {
	trie, present, values := fixtureTrie(t)
	root := rootElement(t, trie)

	proof, err := trie.Prove(present)
	if err != nil {
		t.Fatalf("Prove: %v", err)
	}
	if len(proof.CommsSorted) == 0 {
		t.Fatalf("expected at least one non-root commitment for this fixture")
	}
	tampered := *proof
	commsCopy := append([][32]byte{}, proof.CommsSorted...)
	commsCopy[0][0] ^= 0xff
	tampered.CommsSorted = commsCopy

	valuePtrs := make([]*[32]byte, len(present))
	for i, k := range present {
		v := values[k]
		valuePtrs[i] = &v
	}

	ok, _, err := Check(trie.cfg, &tampered, present, valuePtrs, root)
	if err == nil && ok {
		t.Fatalf("Check accepted a tampered commitment list")
	}
}

func TestCheckRejectsWrongRoot(t *testing.T) {
	trie, present, values := fixtureTrie(t)

	proof, err := trie.Prove(present)
	if err != nil {
		t.Fatalf("Prove: %v", err)
	}

	valuePtrs := make([]*[32]byte, len(present))
	for i, k := range present {
		v := values[k]
		valuePtrs[i] = &v
	}

	wrongRoot := bandersnatch.Double(rootElement(t, trie))
	ok, _, err := Check(trie.cfg, proof, present, valuePtrs, wrongRoot)
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if ok {
		t.Fatalf("Check accepted a proof verified against the wrong root")
	}
}

// TestProveVerifyManyStemsBatch exercises a proof spanning many distinct
// stems and a couple of absent keys in one request, dumping the failing
// key/value batch with spew on a mismatch since a bad index here is hard
// to spot from a bare boolean.
func TestProveVerifyManyStemsBatch(t *testing.T) {
	trie := New()
	type entry struct {
		key     Key
		value   [32]byte
		present bool
	}
	var entries []entry
	for seed := byte(1); seed <= 20; seed++ {
		var k Key
		for i := 0; i < 31; i++ {
			k[i] = seed
		}
		k[31] = seed % 7
		present := seed%5 != 0
		e := entry{key: k, present: present}
		if present {
			e.value[0] = seed
			if err := trie.Insert(k, e.value); err != nil {
				t.Fatalf("Insert: %v", err)
			}
		}
		entries = append(entries, e)
	}

	root := rootElement(t, trie)
	keys := make([]Key, len(entries))
	values := make([]*[32]byte, len(entries))
	for i, e := range entries {
		keys[i] = e.key
		if e.present {
			v := e.value
			values[i] = &v
		}
	}

	proof, err := trie.Prove(keys)
	if err != nil {
		t.Fatalf("Prove: %v\nbatch: %s", err, spew.Sdump(entries))
	}
	ok, _, err := Check(trie.cfg, proof, keys, values, root)
	if err != nil {
		t.Fatalf("Check: %v\nbatch: %s", err, spew.Sdump(entries))
	}
	if !ok {
		t.Fatalf("Check rejected a multi-stem batch proof\nbatch: %s", spew.Sdump(entries))
	}
}

func TestProveRejectsDuplicateKeys(t *testing.T) {
	trie, present, _ := fixtureTrie(t)
	dup := []Key{present[0], present[0]}
	if _, err := trie.Prove(dup); err != ErrDuplicateKeys {
		t.Fatalf("Prove with duplicate keys returned %v, want ErrDuplicateKeys", err)
	}
}
