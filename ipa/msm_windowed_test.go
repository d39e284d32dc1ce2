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

package ipa

import (
	"math/big"
	"testing"

	"github.com/verkle-trie/verkle/bandersnatch"
	"github.com/verkle-trie/verkle/bandersnatch/fr"
)

func TestWindowedMSMMatchesNaiveMSM(t *testing.T) {
	bases := []*bandersnatch.Element{
		bandersnatch.Generator(),
		bandersnatch.Double(bandersnatch.Generator()),
		bandersnatch.Double(bandersnatch.Double(bandersnatch.Generator())),
	}
	scalars := []fr.Element{fr.FromUint64(5), fr.FromUint64(0), fr.FromUint64(123456789)}

	w := NewWindowedMSM(bases, 4)
	got := w.Mul(scalars)
	want := bandersnatch.MSM(bases, scalars)
	if !bandersnatch.Equal(got, want) {
		t.Fatalf("WindowedMSM disagrees with naive MSM")
	}
}

func TestWindowedMSMHandlesScalarsNearTheFieldModulus(t *testing.T) {
	bases := []*bandersnatch.Element{bandersnatch.Generator()}
	nearModulus := fr.FromBigInt(new(big.Int).Sub(fr.Modulus, big.NewInt(1)))
	scalars := []fr.Element{nearModulus}

	w := NewWindowedMSM(bases, 4)
	got := w.Mul(scalars)
	want := bandersnatch.MSM(bases, scalars)
	if !bandersnatch.Equal(got, want) {
		t.Fatalf("WindowedMSM disagrees with naive MSM near the scalar field modulus")
	}
}

func TestWindowedMSMMultipleBasesDifferentWindowSizes(t *testing.T) {
	bases := []*bandersnatch.Element{
		bandersnatch.Generator(),
		bandersnatch.Double(bandersnatch.Generator()),
	}
	scalars := []fr.Element{fr.FromUint64(777), fr.FromUint64(999)}
	want := bandersnatch.MSM(bases, scalars)

	for _, windowSize := range []int{2, 4, 8} {
		w := NewWindowedMSM(bases, windowSize)
		got := w.Mul(scalars)
		if !bandersnatch.Equal(got, want) {
			t.Fatalf("WindowedMSM with window size %d disagrees with naive MSM", windowSize)
		}
	}
}
