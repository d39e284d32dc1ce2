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
	"errors"
	"math/bits"

	"github.com/verkle-trie/verkle/bandersnatch"
	"github.com/verkle-trie/verkle/bandersnatch/fr"
)

// ErrIPACheckFailed is returned when an IPA verification fails.
var ErrIPACheckFailed = errors.New("ipa: check failed")

// IPAProof is a halo-style log-n argument that a committed vector a
// satisfies C = <a, G> and f(z) = <a, b> for a public evaluation vector b.
type IPAProof struct {
	L []*bandersnatch.Element
	R []*bandersnatch.Element
	A fr.Element
}

func innerProduct(a, b []fr.Element) fr.Element {
	sum := fr.Zero()
	for i := range a {
		sum = sum.Add(a[i].Mul(b[i]))
	}
	return sum
}

func msmFr(scalars []fr.Element, points []*bandersnatch.Element) *bandersnatch.Element {
	return bandersnatch.MSM(points, scalars)
}

// CreateIPA runs the prover side of the protocol: aVec is the witness,
// bVec the public evaluation vector, aComm the (already computed)
// Pedersen commitment to aVec, evalPoint the point b was evaluated at
// (folded into the transcript only, never used arithmetically here).
// len(aVec) must be a power of two. Returns the proof and the claimed
// inner product v = <a, b>.
func CreateIPA(tr *Transcript, crs *CRS, aVec []fr.Element, aComm *bandersnatch.Element, bVec []fr.Element, evalPoint fr.Element) (*IPAProof, fr.Element) {
	n := len(aVec)
	if n == 0 || n&(n-1) != 0 || len(bVec) != n {
		panic("ipa: vector length must be a non-zero power of two")
	}

	tr.DomainSep("ipa")
	v := innerProduct(aVec, bVec)
	tr.AppendPoint("C", aComm)
	tr.AppendScalar("input point", evalPoint)
	tr.AppendScalar("output point", v)
	w := tr.ChallengeScalar("w")
	qPrime := bandersnatch.ScalarMul(crs.Q, w)

	aCur := append([]fr.Element(nil), aVec...)
	bCur := append([]fr.Element(nil), bVec...)
	gCur := append([]*bandersnatch.Element(nil), crs.G[:n]...)

	numRounds := bits.Len(uint(n)) - 1
	ls := make([]*bandersnatch.Element, 0, numRounds)
	rs := make([]*bandersnatch.Element, 0, numRounds)

	for m := n; m > 1; m /= 2 {
		half := m / 2
		aL, aR := aCur[:half], aCur[half:m]
		bL, bR := bCur[:half], bCur[half:m]
		gL, gR := gCur[:half], gCur[half:m]

		zL := innerProduct(aR, bL)
		zR := innerProduct(aL, bR)

		L := bandersnatch.Add(msmFr(aR, gL), bandersnatch.ScalarMul(qPrime, zL))
		R := bandersnatch.Add(msmFr(aL, gR), bandersnatch.ScalarMul(qPrime, zR))
		ls = append(ls, L)
		rs = append(rs, R)

		tr.AppendPoint("L", L)
		tr.AppendPoint("R", R)
		x := tr.ChallengeScalar("x")
		xInv := x.Inverse()

		newA := make([]fr.Element, half)
		newB := make([]fr.Element, half)
		newG := make([]*bandersnatch.Element, half)
		for i := 0; i < half; i++ {
			newA[i] = aL[i].Add(x.Mul(aR[i]))
			newB[i] = bL[i].Add(xInv.Mul(bR[i]))
			newG[i] = bandersnatch.Add(gL[i], bandersnatch.ScalarMul(gR[i], xInv))
		}
		aCur, bCur, gCur = newA, newB, newG
	}

	return &IPAProof{L: ls, R: rs, A: aCur[0]}, v
}

// replayChallenges reconstructs w, Q' and the per-round x challenges by
// feeding the proof's own L/R points back through a fresh copy of the
// verifier's transcript state. Shared by Verify and VerifyMultiExp so the
// two can never silently diverge on what a "valid transcript" means.
func replayChallenges(tr *Transcript, crs *CRS, aComm *bandersnatch.Element, evalPoint, v fr.Element, proof *IPAProof) (qPrime *bandersnatch.Element, xs, xInvs []fr.Element, ok bool) {
	numRounds := len(proof.L)
	if len(proof.R) != numRounds {
		return nil, nil, nil, false
	}

	tr.DomainSep("ipa")
	tr.AppendPoint("C", aComm)
	tr.AppendScalar("input point", evalPoint)
	tr.AppendScalar("output point", v)
	w := tr.ChallengeScalar("w")
	qPrime = bandersnatch.ScalarMul(crs.Q, w)

	xs = make([]fr.Element, numRounds)
	for i := 0; i < numRounds; i++ {
		tr.AppendPoint("L", proof.L[i])
		tr.AppendPoint("R", proof.R[i])
		xs[i] = tr.ChallengeScalar("x")
	}
	xInvs = append([]fr.Element(nil), xs...)
	fr.BatchInvert(xInvs)
	return qPrime, xs, xInvs, true
}

// VerifyIPA is the basic sequential-fold verifier: it reconstructs the
// challenges, folds G and b round by round exactly as the prover did, and
// checks the final point equation.
func VerifyIPA(tr *Transcript, crs *CRS, aComm *bandersnatch.Element, evalPoint fr.Element, bVec []fr.Element, v fr.Element, proof *IPAProof) bool {
	n := len(bVec)
	if n == 0 || n&(n-1) != 0 {
		return false
	}
	qPrime, xs, xInvs, ok := replayChallenges(tr, crs, aComm, evalPoint, v, proof)
	if !ok || 1<<len(xs) != n {
		return false
	}

	acc := bandersnatch.Add(aComm, bandersnatch.ScalarMul(qPrime, v))
	for i := range xs {
		acc = bandersnatch.Add(acc, bandersnatch.ScalarMul(proof.L[i], xs[i]))
		acc = bandersnatch.Add(acc, bandersnatch.ScalarMul(proof.R[i], xInvs[i]))
	}

	gCur := append([]*bandersnatch.Element(nil), crs.G[:n]...)
	bCur := append([]fr.Element(nil), bVec...)
	for i := range xs {
		half := len(gCur) / 2
		xInv := xInvs[i]
		newG := make([]*bandersnatch.Element, half)
		newB := make([]fr.Element, half)
		for j := 0; j < half; j++ {
			newG[j] = bandersnatch.Add(gCur[j], bandersnatch.ScalarMul(gCur[half+j], xInv))
			newB[j] = bCur[j].Add(xInv.Mul(bCur[half+j]))
		}
		gCur, bCur = newG, newB
	}

	expected := bandersnatch.Add(
		bandersnatch.ScalarMul(gCur[0], proof.A),
		bandersnatch.ScalarMul(qPrime, proof.A.Mul(bCur[0])),
	)
	return bandersnatch.Equal(acc, expected)
}

// foldWeight returns, for original index i and numRounds challenges,
// the product of the per-round fold weights that the sequential G/b fold
// would have applied to index i: x_r^{-1} wherever round r placed i in
// the "high" half (bit (numRounds-1-r) of i set), 1 otherwise.
func foldWeight(i, numRounds int, xInvs []fr.Element) fr.Element {
	w := fr.One()
	for r := 0; r < numRounds; r++ {
		bit := (i >> uint(numRounds-1-r)) & 1
		if bit == 1 {
			w = w.Mul(xInvs[r])
		}
	}
	return w
}

// VerifyMultiExp is the multi-exponentiation verifier (component G's
// "multi-exp verifier"): it never folds G or b, instead expressing the
// would-be-folded G_0 as a single MSM sum(g_i * G_i) and b_0 as a direct
// inner product, with g_i read off the binary expansion of i.
func VerifyMultiExp(tr *Transcript, crs *CRS, aComm *bandersnatch.Element, evalPoint fr.Element, bVec []fr.Element, v fr.Element, proof *IPAProof) bool {
	n := len(bVec)
	if n == 0 || n&(n-1) != 0 {
		return false
	}
	qPrime, xs, xInvs, ok := replayChallenges(tr, crs, aComm, evalPoint, v, proof)
	if !ok || 1<<len(xs) != n {
		return false
	}
	numRounds := len(xs)

	acc := bandersnatch.Add(aComm, bandersnatch.ScalarMul(qPrime, v))
	for i := range xs {
		acc = bandersnatch.Add(acc, bandersnatch.ScalarMul(proof.L[i], xs[i]))
		acc = bandersnatch.Add(acc, bandersnatch.ScalarMul(proof.R[i], xInvs[i]))
	}

	g := make([]fr.Element, n)
	bFinal := fr.Zero()
	for i := 0; i < n; i++ {
		g[i] = foldWeight(i, numRounds, xInvs)
		bFinal = bFinal.Add(g[i].Mul(bVec[i]))
	}
	gFinal := bandersnatch.MSM(crs.G[:n], g)

	expected := bandersnatch.Add(
		bandersnatch.ScalarMul(gFinal, proof.A),
		bandersnatch.ScalarMul(qPrime, proof.A.Mul(bFinal)),
	)
	return bandersnatch.Equal(acc, expected)
}

// verifySemiMultiExp is an alternate, explicitly bit-unrolled form of
// VerifyMultiExp kept only to cross-check the closed-form bit test above
// against an independent computation of the same weights; it is not used
// outside tests.
func verifySemiMultiExp(tr *Transcript, crs *CRS, aComm *bandersnatch.Element, evalPoint fr.Element, bVec []fr.Element, v fr.Element, proof *IPAProof) bool {
	n := len(bVec)
	if n == 0 || n&(n-1) != 0 {
		return false
	}
	qPrime, xs, xInvs, ok := replayChallenges(tr, crs, aComm, evalPoint, v, proof)
	if !ok || 1<<len(xs) != n {
		return false
	}
	numRounds := len(xs)

	acc := bandersnatch.Add(aComm, bandersnatch.ScalarMul(qPrime, v))
	for i := range xs {
		acc = bandersnatch.Add(acc, bandersnatch.ScalarMul(proof.L[i], xs[i]))
		acc = bandersnatch.Add(acc, bandersnatch.ScalarMul(proof.R[i], xInvs[i]))
	}

	g := make([]fr.Element, n)
	for i := 0; i < n; i++ {
		bitsOf := make([]int, numRounds)
		rem := i
		for r := numRounds - 1; r >= 0; r-- {
			bitsOf[r] = rem & 1
			rem >>= 1
		}
		w := fr.One()
		for r := 0; r < numRounds; r++ {
			if bitsOf[numRounds-1-r] == 1 {
				w = w.Mul(xInvs[r])
			}
		}
		g[i] = w
	}
	bFinal := fr.Zero()
	for i := 0; i < n; i++ {
		bFinal = bFinal.Add(g[i].Mul(bVec[i]))
	}
	gFinal := bandersnatch.MSM(crs.G[:n], g)

	expected := bandersnatch.Add(
		bandersnatch.ScalarMul(gFinal, proof.A),
		bandersnatch.ScalarMul(qPrime, proof.A.Mul(bFinal)),
	)
	return bandersnatch.Equal(acc, expected)
}
