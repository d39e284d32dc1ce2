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

package bandersnatch

import (
	"testing"

	"github.com/verkle-trie/verkle/bandersnatch/fr"
)

func TestMSMMatchesManualAccumulation(t *testing.T) {
	bases := []*Element{Generator(), Double(Generator()), Double(Double(Generator()))}
	scalars := []fr.Element{fr.FromUint64(3), fr.FromUint64(0), fr.FromUint64(11)}

	want := Add(ScalarMul(bases[0], scalars[0]), ScalarMul(bases[2], scalars[2]))
	got := MSM(bases, scalars)
	if !Equal(want, got) {
		t.Fatalf("MSM result does not match manual accumulation")
	}
}

func TestMSMEmptyIsIdentity(t *testing.T) {
	got := MSM(nil, nil)
	if !got.IsIdentity() {
		t.Fatalf("MSM of no terms should be identity")
	}
}

func TestMSMPanicsOnLengthMismatch(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic on mismatched MSM lengths")
		}
	}()
	MSM([]*Element{Generator()}, nil)
}
