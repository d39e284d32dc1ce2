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
	"github.com/verkle-trie/verkle/bandersnatch"
	"github.com/verkle-trie/verkle/bandersnatch/fr"
)

// Committer is the subset of PrecomputeLagrange that the multipoint
// reduction needs; it lets callers swap in the naive MSM committer in
// tests without dragging the full precomputed-table type along.
type Committer interface {
	CommitLagrange(evaluations []fr.Element) *bandersnatch.Element
}

// ProverQuery is one (commitment, polynomial, in-domain point, claimed
// evaluation) tuple the prover wants to fold into a single multipoint
// proof. Point is an index into the fixed {0,...,255} domain, not an
// arbitrary field element: every trie commitment is opened in-domain.
type ProverQuery struct {
	Commitment *bandersnatch.Element
	Poly       *LagrangeBasis
	Point      int
	Result     fr.Element
}

// VerifierQuery is the verifier-side counterpart: it never sees the
// polynomial, only the claimed evaluation and the point as a field
// element (so the verifier can also be handed out-of-domain openings
// produced elsewhere).
type VerifierQuery struct {
	Commitment *bandersnatch.Element
	Point      fr.Element
	Result     fr.Element
}

// ToVerifierQuery drops the polynomial and reduces the domain index to a
// scalar, matching the prover/verifier query conversion used once a
// multipoint proof has been produced.
func (pq ProverQuery) ToVerifierQuery() VerifierQuery {
	return VerifierQuery{Commitment: pq.Commitment, Point: fr.FromUint64(uint64(pq.Point)), Result: pq.Result}
}

// MultiProof batches any number of polynomial openings, each at its own
// domain point, into a single log-n IPA: component H of the scheme.
type MultiProof struct {
	Proof *IPAProof
	D     *bandersnatch.Element // commitment to g(X), the aggregated quotient
}

func powersOf(x fr.Element, n int) []fr.Element {
	out := make([]fr.Element, n)
	cur := fr.One()
	for i := 0; i < n; i++ {
		out[i] = cur
		cur = cur.Mul(x)
	}
	return out
}

// groupAndAggregate folds every query's polynomial, scaled by its r-power
// challenge, into one running sum per distinct opening point. The returned
// order slice fixes an iteration order so prover and verifier never need
// to agree on map iteration (Go maps do not guarantee one).
func groupAndAggregate(domainSize int, queries []ProverQuery, powersOfR []fr.Element) (order []int, aggregated map[int][]fr.Element) {
	aggregated = make(map[int][]fr.Element)
	for i, q := range queries {
		agg, ok := aggregated[q.Point]
		if !ok {
			agg = make([]fr.Element, domainSize)
			for j := range agg {
				agg[j] = fr.Zero()
			}
			aggregated[q.Point] = agg
			order = append(order, q.Point)
		}
		challenge := powersOfR[i]
		for j, v := range q.Poly.Values {
			agg[j] = agg[j].Add(v.Mul(challenge))
		}
	}
	return order, aggregated
}

// OpenMultiProof is the prover side: it aggregates queries sharing an
// opening point, builds the quotient g(X) = sum_i (agg_i(X)-agg_i(z_i))/(X-z_i),
// commits to it, draws a random evaluation point t, folds the per-point
// aggregates into g_1(X) = sum_i agg_i(X)/(t-z_i), and opens g_1(X)-g(X)
// at t with a single IPA.
func OpenMultiProof(tr *Transcript, crs *CRS, committer Committer, pw *PrecomputedWeights, queries []ProverQuery) *MultiProof {
	n := len(crs.G)
	tr.DomainSep("multiproof")
	for _, q := range queries {
		tr.AppendPoint("C", q.Commitment)
		tr.AppendScalar("z", fr.FromUint64(uint64(q.Point)))
		tr.AppendScalar("y", q.Result)
	}

	r := tr.ChallengeScalar("r")
	powersOfR := powersOf(r, len(queries))

	order, aggregated := groupAndAggregate(n, queries, powersOfR)

	gX := ZeroLagrangeBasis(n)
	for _, point := range order {
		agg := NewLagrangeBasis(aggregated[point])
		gX = gX.Add(agg.DivideByLinearVanishing(pw, point))
	}

	gComm := committer.CommitLagrange(gX.Values)
	tr.AppendPoint("D", gComm)

	t := tr.ChallengeScalar("t")

	denInv := make([]fr.Element, len(order))
	for i, point := range order {
		denInv[i] = t.Sub(fr.FromUint64(uint64(point)))
	}
	fr.BatchInvert(denInv)

	g1X := ZeroLagrangeBasis(n)
	for i, point := range order {
		agg := aggregated[point]
		scaled := make([]fr.Element, n)
		for j, c := range agg {
			scaled[j] = c.Mul(denInv[i])
		}
		g1X = g1X.Add(NewLagrangeBasis(scaled))
	}

	g1Comm := committer.CommitLagrange(g1X.Values)
	tr.AppendPoint("E", g1Comm)

	g3X := g1X.Sub(gX)
	g3Comm := bandersnatch.Sub(g1Comm, gComm)

	b := EvaluateLagrangeCoefficients(pw, n, t)
	proof, _ := CreateIPA(tr, crs, g3X.Values, g3Comm, b, t)

	return &MultiProof{Proof: proof, D: gComm}
}

// Check is the verifier side: it reconstructs r, t and the helper
// scalars r_i/(t-z_i) from the claimed evaluations alone (it never sees
// the polynomials), recombines [g_1(X)] as a single MSM over the query
// commitments, and checks the final IPA on [g_1(X)] - D via the
// multi-exp verifier.
func (mp *MultiProof) Check(tr *Transcript, crs *CRS, pw *PrecomputedWeights, queries []VerifierQuery) bool {
	n := len(crs.G)
	tr.DomainSep("multiproof")
	for _, q := range queries {
		tr.AppendPoint("C", q.Commitment)
		tr.AppendScalar("z", q.Point)
		tr.AppendScalar("y", q.Result)
	}

	r := tr.ChallengeScalar("r")
	powersOfR := powersOf(r, len(queries))

	tr.AppendPoint("D", mp.D)
	t := tr.ChallengeScalar("t")

	g2Den := make([]fr.Element, len(queries))
	for i, q := range queries {
		g2Den[i] = t.Sub(q.Point)
	}
	fr.BatchInvert(g2Den)

	helper := make([]fr.Element, len(queries))
	for i := range queries {
		helper[i] = g2Den[i].Mul(powersOfR[i])
	}

	g2t := fr.Zero()
	for i, q := range queries {
		g2t = g2t.Add(helper[i].Mul(q.Result))
	}

	comms := make([]*bandersnatch.Element, len(queries))
	for i, q := range queries {
		comms[i] = q.Commitment
	}
	g1Comm := bandersnatch.MSM(comms, helper)
	tr.AppendPoint("E", g1Comm)

	g3Comm := bandersnatch.Sub(g1Comm, mp.D)
	b := EvaluateLagrangeCoefficients(pw, n, t)

	return VerifyMultiExp(tr, crs, g3Comm, t, b, g2t, mp.Proof)
}
