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
	"testing"

	"github.com/verkle-trie/verkle/bandersnatch/fr"
)

func samplePoly(domainSize int) *LagrangeBasis {
	values := make([]fr.Element, domainSize)
	for i := range values {
		// f(i) = 3*i^2 + 5*i + 7, evaluated directly at each domain point.
		x := fr.FromUint64(uint64(i))
		values[i] = fr.FromUint64(3).Mul(x).Mul(x).Add(fr.FromUint64(5).Mul(x)).Add(fr.FromUint64(7))
	}
	return NewLagrangeBasis(values)
}

func TestDivideByLinearVanishingMatchesDirectQuotient(t *testing.T) {
	const domainSize = 16
	pw := NewPrecomputedWeights(domainSize)
	f := samplePoly(domainSize)
	index := 4

	q := f.DivideByLinearVanishing(pw, index)

	for j := 0; j < domainSize; j++ {
		if j == index {
			continue
		}
		want := f.Values[j].Sub(f.Values[index]).Mul(fr.FromUint64(uint64(j)).Sub(fr.FromUint64(uint64(index))).Inverse())
		if !q.Values[j].Equal(want) {
			t.Fatalf("quotient mismatch at j=%d: got %v want %v", j, q.Values[j].BigInt(), want.BigInt())
		}
	}
}

func TestEvaluateOutsideDomainMatchesEvaluateLagrangeCoefficients(t *testing.T) {
	const domainSize = 16
	pw := NewPrecomputedWeights(domainSize)
	f := samplePoly(domainSize)
	point := fr.FromUint64(1000)

	direct := f.EvaluateOutsideDomain(pw, point)

	coeffs := EvaluateLagrangeCoefficients(pw, domainSize, point)
	viaInner := fr.Zero()
	for i, c := range coeffs {
		viaInner = viaInner.Add(c.Mul(f.Values[i]))
	}

	if !direct.Equal(viaInner) {
		t.Fatalf("EvaluateOutsideDomain disagrees with the Lagrange-coefficient inner product")
	}
}

func TestEvaluateLagrangeCoefficientsAgreeAtSeveralProbes(t *testing.T) {
	const domainSize = 8
	pw := NewPrecomputedWeights(domainSize)
	f := samplePoly(domainSize)

	// Each probe point idx+10000 lies outside the domain; at every one of
	// them the Lagrange-coefficient inner product must reproduce
	// EvaluateOutsideDomain.
	for _, idx := range []int{0, 3, 7} {
		point := fr.FromUint64(uint64(idx) + 10000)
		coeffs := EvaluateLagrangeCoefficients(pw, domainSize, point)
		sum := fr.Zero()
		for i, c := range coeffs {
			sum = sum.Add(c.Mul(f.Values[i]))
		}
		if !sum.Equal(f.EvaluateOutsideDomain(pw, point)) {
			t.Fatalf("coefficient reconstruction mismatch at probe %d", idx)
		}
	}
}

func TestLagrangeBasisArithmetic(t *testing.T) {
	const domainSize = 8
	f := samplePoly(domainSize)
	g := samplePoly(domainSize)

	sum := f.Add(g)
	for i := range sum.Values {
		want := f.Values[i].Add(g.Values[i])
		if !sum.Values[i].Equal(want) {
			t.Fatalf("Add mismatch at %d", i)
		}
	}

	diff := sum.Sub(g)
	for i := range diff.Values {
		if !diff.Values[i].Equal(f.Values[i]) {
			t.Fatalf("(f+g)-g != f at %d", i)
		}
	}

	scaled := f.Scale(fr.FromUint64(2))
	for i := range scaled.Values {
		want := f.Values[i].Add(f.Values[i])
		if !scaled.Values[i].Equal(want) {
			t.Fatalf("Scale(2) != self-add at %d", i)
		}
	}

	sub := f.SubConst(fr.FromUint64(7))
	for i := range sub.Values {
		want := f.Values[i].Sub(fr.FromUint64(7))
		if !sub.Values[i].Equal(want) {
			t.Fatalf("SubConst mismatch at %d", i)
		}
	}
}

func TestZeroLagrangeBasisIsAdditiveIdentity(t *testing.T) {
	const domainSize = 8
	f := samplePoly(domainSize)
	zero := ZeroLagrangeBasis(domainSize)
	sum := f.Add(zero)
	for i := range sum.Values {
		if !sum.Values[i].Equal(f.Values[i]) {
			t.Fatalf("f + 0 != f at %d", i)
		}
	}
}
