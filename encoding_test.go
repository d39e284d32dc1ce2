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

//go:build go1.18
// +build go1.18

package verkle

import "testing"

func TestEncodeExtDepthRoundTrip(t *testing.T) {
	cases := []struct {
		ext   ExtPresent
		depth byte
	}{
		{ExtNone, 0},
		{ExtDifferentStem, 5},
		{ExtPresentHere, 31},
		{ExtPresentHere, 32},
	}
	for _, c := range cases {
		b := encodeExtDepth(c.ext, c.depth)
		gotExt, gotDepth, err := decodeExtDepth(b)
		if err != nil {
			t.Fatalf("decodeExtDepth(%#x): %v", b, err)
		}
		if gotExt != c.ext || gotDepth != c.depth {
			t.Fatalf("round trip (%v, %d) -> %#x -> (%v, %d)", c.ext, c.depth, b, gotExt, gotDepth)
		}
	}
}

func TestEncodeExtDepthCapsAtThirtyTwo(t *testing.T) {
	b := encodeExtDepth(ExtNone, 200)
	_, depth, err := decodeExtDepth(b)
	if err != nil {
		t.Fatalf("decodeExtDepth: %v", err)
	}
	if depth != 32 {
		t.Fatalf("depth = %d, want capped at 32", depth)
	}
}

func TestDecodeExtDepthRejectsOutOfRangeExt(t *testing.T) {
	// ExtPresentHere is 2; bit pattern 3 in the low three bits is not a
	// valid ExtPresent value.
	if _, _, err := decodeExtDepth(0x03); err != ErrProofMalformed {
		t.Fatalf("decodeExtDepth with an invalid ExtPresent returned %v, want ErrProofMalformed", err)
	}
}

func TestProofEncodeDecodeRoundTrip(t *testing.T) {
	trie, present, values := fixtureTrie(t)

	proof, err := trie.Prove(present)
	if err != nil {
		t.Fatalf("Prove: %v", err)
	}

	encoded := proof.Encode()
	decoded, err := DecodeProof(encoded)
	if err != nil {
		t.Fatalf("DecodeProof: %v", err)
	}

	root := rootElement(t, trie)
	valuePtrs := make([]*[32]byte, len(present))
	for i, k := range present {
		v := values[k]
		valuePtrs[i] = &v
	}

	ok, _, err := Check(trie.cfg, decoded, present, valuePtrs, root)
	if err != nil {
		t.Fatalf("Check after decode: %v", err)
	}
	if !ok {
		t.Fatalf("Check rejected a proof round-tripped through Encode/DecodeProof")
	}

	reencoded := decoded.Encode()
	if len(encoded) != len(reencoded) {
		t.Fatalf("re-encoding a decoded proof changed its length: %d vs %d", len(encoded), len(reencoded))
	}
	for i := range encoded {
		if encoded[i] != reencoded[i] {
			t.Fatalf("re-encoding a decoded proof diverged at byte %d", i)
		}
	}
}

func TestDecodeProofRejectsTruncatedInput(t *testing.T) {
	trie, present, _ := fixtureTrie(t)
	proof, err := trie.Prove(present)
	if err != nil {
		t.Fatalf("Prove: %v", err)
	}
	encoded := proof.Encode()

	if _, err := DecodeProof(encoded[:len(encoded)-1]); err != ErrProofTruncated {
		t.Fatalf("DecodeProof on truncated input returned %v, want ErrProofTruncated", err)
	}
	if _, err := DecodeProof(nil); err != ErrProofTruncated {
		t.Fatalf("DecodeProof on empty input returned %v, want ErrProofTruncated", err)
	}
}

func TestDecodeProofRejectsTrailingGarbage(t *testing.T) {
	trie, present, _ := fixtureTrie(t)
	proof, err := trie.Prove(present)
	if err != nil {
		t.Fatalf("Prove: %v", err)
	}
	encoded := append(proof.Encode(), 0x00)

	if _, err := DecodeProof(encoded); err != ErrProofMalformed {
		t.Fatalf("DecodeProof with trailing garbage returned %v, want ErrProofMalformed", err)
	}
}

// FuzzEncodeDecode feeds arbitrary byte strings to DecodeProof. It never
// has a correctness oracle for random input (most inputs aren't a valid
// wire-format proof at all), so the only property under test is that
// decoding malformed input returns an error instead of panicking, and
// that whatever DecodeProof does accept survives an Encode round trip.
func FuzzEncodeDecode(f *testing.F) {
	f.Add([]byte{})
	f.Add([]byte{0x00})

	seed := New()
	var k Key
	k[0] = 0x11
	var v [32]byte
	v[0] = 0x22
	if err := seed.Insert(k, v); err != nil {
		f.Fatalf("seeding insert: %v", err)
	}
	if proof, err := seed.Prove([]Key{k}); err == nil {
		f.Add(proof.Encode())
	}

	f.Fuzz(func(t *testing.T, data []byte) {
		decoded, err := DecodeProof(data)
		if err != nil {
			return
		}
		reencoded := decoded.Encode()
		redecoded, err := DecodeProof(reencoded)
		if err != nil {
			t.Fatalf("re-decoding a just-encoded proof failed: %v", err)
		}
		if len(reencoded) != len(redecoded.Encode()) {
			t.Fatalf("decode->encode->decode->encode is not idempotent in length")
		}
	})
}
