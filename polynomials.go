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
	"github.com/verkle-trie/verkle/bandersnatch/fr"
	"github.com/verkle-trie/verkle/ipa"
)

// branchPolynomial rebuilds the full 256-evaluation Lagrange polynomial a
// branch's commitment is over: f(i) is the map-to-scalar hash of the
// child living at index i, or zero if that slot is empty. Storage never
// keeps this vector materialized (only the folded commitment), so the
// prover reconstructs it on demand from the sparse child table.
func branchPolynomial(s *Storage, path []byte) *ipa.LagrangeBasis {
	values := make([]fr.Element, ipa.NumGenerators)
	for i := 0; i < ipa.NumGenerators; i++ {
		child, ok := s.GetChild(path, byte(i))
		if !ok {
			values[i] = fr.Zero()
			continue
		}
		if child.IsStem {
			meta, _ := s.GetStem(child.Stem)
			values[i] = meta.HashExtComm
		} else {
			values[i] = child.Branch.HashCommitment
		}
	}
	return ipa.NewLagrangeBasis(values)
}

// extCommPolynomial rebuilds a stem's ext_comm polynomial: {1, stem,
// hash_c1, hash_c2, 0, ..., 0}.
func extCommPolynomial(meta *StemMeta) *ipa.LagrangeBasis {
	values := make([]fr.Element, ipa.NumGenerators)
	values[extSlotOne] = fr.One()
	values[extSlotStem] = stemScalar(meta.Stem)
	values[extSlotHashC1] = meta.HashC1
	values[extSlotHashC2] = meta.HashC2
	return ipa.NewLagrangeBasis(values)
}

// suffixHalfPolynomial rebuilds the 256-evaluation polynomial behind C1
// (isC2 = false) or C2 (isC2 = true): even indices carry a present
// suffix's low half (plus the 2^128 flag), odd indices its high half.
func suffixHalfPolynomial(s *Storage, stem [31]byte, isC2 bool) *ipa.LagrangeBasis {
	values := make([]fr.Element, ipa.NumGenerators)
	base := byte(0)
	if isC2 {
		base = 128
	}
	for i := 0; i < 128; i++ {
		var key Key
		copy(key[:31], stem[:])
		key[31] = base + byte(i)
		value, ok := s.GetLeaf(key)
		if !ok {
			continue
		}
		low, high := splitValue(value, true)
		values[2*i] = low
		values[2*i+1] = high
	}
	return ipa.NewLagrangeBasis(values)
}
