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
	"github.com/verkle-trie/verkle/ipa"
)

// VerificationHint is the proof's bookkeeping payload: enough information
// for the verifier to rederive the exact set of opening queries the
// prover built, without re-walking a trie it does not have.
type VerificationHint struct {
	Depths          []byte       // one per requested key, in request order
	Ext             []ExtPresent // one per requested key, in request order
	DiffStemNoProof [][31]byte   // sorted, deduplicated "other stem" set
}

// VerkleProof bundles a verification hint, the sorted non-root
// commitments the hint's derived open-set references, and the single
// multipoint proof covering every opening.
type VerkleProof struct {
	Hint        VerificationHint
	CommsSorted [][32]byte
	Multiproof  *ipa.MultiProof
}

// stemOpenedScalars carries whichever of a stem's C1/C2 the proof
// actually opened (as both the group element and its hash), the values
// UpdateRoot needs to compute a presence-aware C1/C2 delta for a stem it
// cannot otherwise inspect.
type stemOpenedScalars struct {
	c1, c2         *bandersnatch.Element
	hashC1, hashC2 fr.Element
	hasC1, hasC2   bool
	extComm        *bandersnatch.Element
}

// UpdateHint is returned by Check on success: enough bookkeeping for a
// caller to recompute the root after applying value changes without
// redoing the proof's own work.
type UpdateHint struct {
	ByStem            map[[31]byte]stemHint
	ByPath            map[string]*bandersnatch.Element // branch path -> commitment
	OtherStemByPrefix map[string][31]byte               // parent branch path -> other stem found there
	otherStemExtComm  map[[31]byte]*bandersnatch.Element
	opened            map[[31]byte]stemOpenedScalars
}

type stemHint struct {
	Ext   ExtPresent
	Depth int
}
