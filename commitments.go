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
	"github.com/verkle-trie/verkle/bandersnatch"
	"github.com/verkle-trie/verkle/bandersnatch/fr"
)

// extComm generator slots: G0 carries the constant 1, G1 the stem as a
// scalar, G2 hash(C1), G3 hash(C2). Every other coefficient of a stem's
// extension commitment is zero.
const (
	extSlotOne    = 0
	extSlotStem   = 1
	extSlotHashC1 = 2
	extSlotHashC2 = 3
)

// bootstrapStemMeta creates the metadata for a stem's first leaf: C1 and
// C2 start at the identity (no suffixes populated yet), and ext_comm is
// seeded with just the constant and stem-scalar terms.
func bootstrapStemMeta(cfg *Config, stem [31]byte) *StemMeta {
	extComm := bandersnatch.Add(
		cfg.Committer.ScalarMul(fr.One(), extSlotOne),
		cfg.Committer.ScalarMul(stemScalar(stem), extSlotStem),
	)
	return &StemMeta{
		Stem:        stem,
		C1:          bandersnatch.Identity(),
		HashC1:      fr.Zero(),
		C2:          bandersnatch.Identity(),
		HashC2:      fr.Zero(),
		ExtComm:     extComm,
		HashExtComm: extComm.MapToScalarField(),
	}
}

// applyLeafUpdate folds a single leaf write into meta's C1/C2 and
// ext_comm via delta MSMs touching only the two generator positions the
// suffix owns, then the one ext_comm slot (G2 or G3) the affected half
// owns. It returns meta's ext_comm hash as it was before this update, the
// value a containing branch needs to compute its own delta against.
func applyLeafUpdate(cfg *Config, meta *StemMeta, suffix byte, oldValue [32]byte, hadOld bool, newValue [32]byte) fr.Element {
	oldExtHash := meta.HashExtComm

	newLow, newHigh := splitValue(newValue, true)
	var oldLow, oldHigh fr.Element
	if hadOld {
		oldLow, oldHigh = splitValue(oldValue, true)
	} else {
		oldLow, oldHigh = fr.Zero(), fr.Zero()
	}
	deltaLow := newLow.Sub(oldLow)
	deltaHigh := newHigh.Sub(oldHigh)

	isC2, posMod128 := suffixHalf(suffix)
	lowIndex := 2 * posMod128
	highIndex := lowIndex + 1
	genLow := cfg.Committer.ScalarMul(deltaLow, lowIndex)
	genHigh := cfg.Committer.ScalarMul(deltaHigh, highIndex)
	delta := bandersnatch.Add(genLow, genHigh)

	if !isC2 {
		meta.C1 = bandersnatch.Add(meta.C1, delta)
		newHashC1 := meta.C1.MapToScalarField()
		c1Delta := newHashC1.Sub(meta.HashC1)
		meta.HashC1 = newHashC1
		meta.ExtComm = bandersnatch.Add(meta.ExtComm, cfg.Committer.ScalarMul(c1Delta, extSlotHashC1))
	} else {
		meta.C2 = bandersnatch.Add(meta.C2, delta)
		newHashC2 := meta.C2.MapToScalarField()
		c2Delta := newHashC2.Sub(meta.HashC2)
		meta.HashC2 = newHashC2
		meta.ExtComm = bandersnatch.Add(meta.ExtComm, cfg.Committer.ScalarMul(c2Delta, extSlotHashC2))
	}
	meta.HashExtComm = meta.ExtComm.MapToScalarField()

	return oldExtHash
}

// applyBranchChildUpdate returns the branch metadata obtained by folding
// in the change of one child's digest (oldHash -> newHash) at childIndex,
// via a single delta MSM against that one generator.
func applyBranchChildUpdate(cfg *Config, branch *BranchMeta, childIndex byte, oldHash, newHash fr.Element) *BranchMeta {
	delta := newHash.Sub(oldHash)
	updated := bandersnatch.Add(branch.Commitment, cfg.Committer.ScalarMul(delta, int(childIndex)))
	return &BranchMeta{Commitment: updated, HashCommitment: updated.MapToScalarField()}
}
