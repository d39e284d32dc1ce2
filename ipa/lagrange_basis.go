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

import "github.com/verkle-trie/verkle/bandersnatch/fr"

// PrecomputedWeights caches the barycentric weights A'(i), 1/A'(i) for the
// fixed domain {0,...,domainSize-1}, plus ±1/k for k in [1,domainSize-1],
// so that in-domain polynomial division and out-of-domain evaluation are
// both O(domainSize) instead of needing a fresh inversion each time.
type PrecomputedWeights struct {
	domainSize int
	// barycentricWeights[0:domainSize]            = A'(i)
	// barycentricWeights[domainSize:2*domainSize] = 1/A'(i)
	barycentricWeights []fr.Element
	// invertedDomain[0:domainSize-1]               = 1/k, k=1..domainSize-1
	// invertedDomain[domainSize-1:2*(domainSize-1)] = -1/k
	invertedDomain []fr.Element
}

// computeBarycentricWeightFor returns A'(i) = prod_{j != i} (i - j) over
// the integer domain {0,...,domainSize-1}.
func computeBarycentricWeightFor(domainSize, i int) fr.Element {
	acc := fr.One()
	for j := 0; j < domainSize; j++ {
		if j == i {
			continue
		}
		diff := fr.FromUint64(uint64(i)).Sub(fr.FromUint64(uint64(j)))
		acc = acc.Mul(diff)
	}
	return acc
}

// NewPrecomputedWeights builds the weight tables for a domain of size
// domainSize (256 everywhere in this module).
func NewPrecomputedWeights(domainSize int) *PrecomputedWeights {
	bw := make([]fr.Element, 2*domainSize)
	for i := 0; i < domainSize; i++ {
		bw[i] = computeBarycentricWeightFor(domainSize, i)
	}
	inv := make([]fr.Element, domainSize)
	copy(inv, bw[:domainSize])
	fr.BatchInvert(inv)
	copy(bw[domainSize:], inv)

	invDom := make([]fr.Element, 2*(domainSize-1))
	for k := 1; k < domainSize; k++ {
		invDom[k-1] = fr.FromUint64(uint64(k))
	}
	fr.BatchInvert(invDom[:domainSize-1])
	for k := 1; k < domainSize; k++ {
		invDom[domainSize-1+k-1] = invDom[k-1].Neg()
	}

	return &PrecomputedWeights{domainSize: domainSize, barycentricWeights: bw, invertedDomain: invDom}
}

// GetBarycentricWeight returns A'(i).
func (pw *PrecomputedWeights) GetBarycentricWeight(i int) fr.Element {
	return pw.barycentricWeights[i]
}

// GetInverseBarycentricWeight returns 1/A'(i).
func (pw *PrecomputedWeights) GetInverseBarycentricWeight(i int) fr.Element {
	return pw.barycentricWeights[pw.domainSize+i]
}

// GetRatioOfBarycentricWeights returns A'(m) * (1/A'(i)) = A'(m)/A'(i).
func (pw *PrecomputedWeights) GetRatioOfBarycentricWeights(m, i int) fr.Element {
	return pw.GetBarycentricWeight(m).Mul(pw.GetInverseBarycentricWeight(i))
}

// GetInvertedElement returns 1/k (isNegative = false) or -1/k
// (isNegative = true) for k in [1, domainSize-1].
func (pw *PrecomputedWeights) GetInvertedElement(k int, isNegative bool) fr.Element {
	if isNegative {
		return pw.invertedDomain[pw.domainSize-1+k-1]
	}
	return pw.invertedDomain[k-1]
}

// LagrangeBasis is a degree-<domainSize polynomial represented by its
// values at the fixed domain {0,...,domainSize-1}.
type LagrangeBasis struct {
	Values []fr.Element
}

// NewLagrangeBasis wraps a slice of evaluations; it does not copy.
func NewLagrangeBasis(values []fr.Element) *LagrangeBasis {
	return &LagrangeBasis{Values: values}
}

// ZeroLagrangeBasis returns the all-zero polynomial over a domain of the
// given size, the fold identity used when summing a variable number of
// aggregated query polynomials.
func ZeroLagrangeBasis(domainSize int) *LagrangeBasis {
	return &LagrangeBasis{Values: make([]fr.Element, domainSize)}
}

// Add returns the pointwise sum of lb and other.
func (lb *LagrangeBasis) Add(other *LagrangeBasis) *LagrangeBasis {
	out := make([]fr.Element, len(lb.Values))
	for i := range out {
		out[i] = lb.Values[i].Add(other.Values[i])
	}
	return &LagrangeBasis{Values: out}
}

// Scale returns lb with every evaluation multiplied by c.
func (lb *LagrangeBasis) Scale(c fr.Element) *LagrangeBasis {
	out := make([]fr.Element, len(lb.Values))
	for i := range out {
		out[i] = lb.Values[i].Mul(c)
	}
	return &LagrangeBasis{Values: out}
}

// Sub returns the pointwise difference lb - other.
func (lb *LagrangeBasis) Sub(other *LagrangeBasis) *LagrangeBasis {
	out := make([]fr.Element, len(lb.Values))
	for i := range out {
		out[i] = lb.Values[i].Sub(other.Values[i])
	}
	return &LagrangeBasis{Values: out}
}

// SubConst returns lb with the constant c subtracted from every
// evaluation, i.e. the evaluation-form representation of f(X) - c.
func (lb *LagrangeBasis) SubConst(c fr.Element) *LagrangeBasis {
	out := make([]fr.Element, len(lb.Values))
	for i := range out {
		out[i] = lb.Values[i].Sub(c)
	}
	return &LagrangeBasis{Values: out}
}

// DivideByLinearVanishing computes q = (f - f(index)) / (X - index) for
// an in-domain index, using only the precomputed weight tables: no
// inversions beyond those already cached in pw.
func (lb *LagrangeBasis) DivideByLinearVanishing(pw *PrecomputedWeights, index int) *LagrangeBasis {
	domainSize := len(lb.Values)
	fi := lb.Values[index]
	q := make([]fr.Element, domainSize)
	for j := 0; j < domainSize; j++ {
		if j == index {
			continue
		}
		num := lb.Values[j].Sub(fi)
		diff := j - index
		var invK fr.Element
		if diff > 0 {
			invK = pw.GetInvertedElement(diff, false)
		} else {
			invK = pw.GetInvertedElement(-diff, true)
		}
		q[j] = num.Mul(invK)
	}
	sum := fr.Zero()
	for j := 0; j < domainSize; j++ {
		if j == index {
			continue
		}
		ratio := pw.GetRatioOfBarycentricWeights(index, j)
		sum = sum.Add(ratio.Mul(q[j]))
	}
	q[index] = sum.Neg()
	return &LagrangeBasis{Values: q}
}

// EvaluateInDomain returns f(i) for an in-domain index.
func (lb *LagrangeBasis) EvaluateInDomain(i int) fr.Element { return lb.Values[i] }

// domainDiffsAndProduct computes (point - i) for every domain index, its
// batch inverse, and the product A(point) = prod_i (point - i), shared by
// both out-of-domain evaluation forms.
func domainDiffsAndProduct(domainSize int, point fr.Element) (diffs, invDiffs []fr.Element, product fr.Element) {
	diffs = make([]fr.Element, domainSize)
	for i := 0; i < domainSize; i++ {
		diffs[i] = point.Sub(fr.FromUint64(uint64(i)))
	}
	invDiffs = make([]fr.Element, domainSize)
	copy(invDiffs, diffs)
	fr.BatchInvert(invDiffs)
	product = fr.One()
	for _, d := range diffs {
		product = product.Mul(d)
	}
	return
}

// EvaluateOutsideDomain evaluates lb at a point outside {0,...,domainSize-1}
// via the direct barycentric form: A(t) * sum_i f(i) * w_i / (t - i).
func (lb *LagrangeBasis) EvaluateOutsideDomain(pw *PrecomputedWeights, point fr.Element) fr.Element {
	domainSize := len(lb.Values)
	_, invDiffs, product := domainDiffsAndProduct(domainSize, point)
	sum := fr.Zero()
	for i := 0; i < domainSize; i++ {
		wi := pw.GetInverseBarycentricWeight(i)
		term := lb.Values[i].Mul(wi).Mul(invDiffs[i])
		sum = sum.Add(term)
	}
	return sum.Mul(product)
}

// EvaluateLagrangeCoefficients returns the vector b with b_i = L_i(point),
// the barycentric Lagrange coefficients at an out-of-domain point; taking
// the inner product of b with a set of evaluations reproduces
// EvaluateOutsideDomain, and IPA verification uses b directly as the
// public evaluation vector.
func EvaluateLagrangeCoefficients(pw *PrecomputedWeights, domainSize int, point fr.Element) []fr.Element {
	_, invDiffs, product := domainDiffsAndProduct(domainSize, point)
	out := make([]fr.Element, domainSize)
	for i := 0; i < domainSize; i++ {
		wi := pw.GetInverseBarycentricWeight(i)
		out[i] = product.Mul(wi).Mul(invDiffs[i])
	}
	return out
}
