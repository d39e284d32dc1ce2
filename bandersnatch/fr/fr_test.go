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

package fr

import "testing"

func TestAddSubRoundTrip(t *testing.T) {
	a := FromUint64(12345)
	b := FromUint64(98765)
	sum := a.Add(b)
	if !sum.Sub(b).Equal(a) {
		t.Fatalf("(a+b)-b != a")
	}
}

func TestNegAndZero(t *testing.T) {
	a := FromUint64(7)
	if !a.Add(a.Neg()).IsZero() {
		t.Fatalf("a + (-a) != 0")
	}
	if !Zero().Neg().IsZero() {
		t.Fatalf("-0 != 0")
	}
}

func TestInverse(t *testing.T) {
	a := FromUint64(424242)
	inv := a.Inverse()
	if !a.Mul(inv).Equal(One()) {
		t.Fatalf("a * a^-1 != 1")
	}
}

func TestInverseOfZeroPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic inverting zero")
		}
	}()
	Zero().Inverse()
}

func TestBatchInvert(t *testing.T) {
	xs := []Element{FromUint64(2), FromUint64(3), FromUint64(5), Zero(), FromUint64(7)}
	want := make([]Element, len(xs))
	for i, x := range xs {
		if x.IsZero() {
			want[i] = Zero()
			continue
		}
		want[i] = x.Inverse()
	}
	BatchInvert(xs)
	for i := range xs {
		if !xs[i].Equal(want[i]) {
			t.Fatalf("batch invert mismatch at %d", i)
		}
	}
}

func TestBytesRoundTrip(t *testing.T) {
	a := FromUint64(0xdeadbeef)
	var got Element
	be := a.Bytes()
	got.SetBytes(be[:])
	if !got.Equal(a) {
		t.Fatalf("big-endian round trip mismatch")
	}
	var gotLE Element
	le := a.BytesLE()
	gotLE.SetBytesLE(le[:])
	if !gotLE.Equal(a) {
		t.Fatalf("little-endian round trip mismatch")
	}
}

func TestFromLEBytesModOrderReducesLargeInput(t *testing.T) {
	big := make([]byte, 64)
	for i := range big {
		big[i] = 0xff
	}
	e := FromLEBytesModOrder(big)
	if e.BigInt().Cmp(Modulus) >= 0 {
		t.Fatalf("reduced element not less than modulus")
	}
}

func TestMulDistributesOverAdd(t *testing.T) {
	a, b, c := FromUint64(11), FromUint64(13), FromUint64(17)
	lhs := a.Mul(b.Add(c))
	rhs := a.Mul(b).Add(a.Mul(c))
	if !lhs.Equal(rhs) {
		t.Fatalf("a*(b+c) != a*b + a*c")
	}
}
