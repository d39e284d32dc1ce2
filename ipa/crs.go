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
	"crypto/sha256"
	"encoding/binary"

	"github.com/verkle-trie/verkle/bandersnatch"
)

// NumGenerators is the width of the vector commitment: every branch and
// every stem half-commitment is over exactly this many evaluation points.
const NumGenerators = 256

// CRS is the fixed tuple (G[0..256], Q) of independent group elements the
// whole commitment scheme is built on. It is deterministically derived
// from a domain separator, never from a secret, so there is no trusted
// setup to protect.
type CRS struct {
	G []*bandersnatch.Element
	Q *bandersnatch.Element
}

// NewCRS derives a CRS of n generators plus a tie-breaker Q by
// hash-and-increment: for candidate index i, repeatedly hash
// (label, i, attempt) into a candidate x-coordinate and accept the first
// one that decodes to a valid subgroup element. This gives a
// reproducible, secretless setup matching the spec's "hash-to-curve until
// n subgroup points are found" requirement.
func NewCRS(label string, n int) *CRS {
	gens := make([]*bandersnatch.Element, n)
	for i := 0; i < n; i++ {
		gens[i] = hashToCurve(label, uint64(i))
	}
	q := hashToCurve(label, uint64(n))
	return &CRS{G: gens, Q: q}
}

// hashToCurve performs a try-and-increment search: it hashes
// (label || index || attempt) to a 32-byte candidate and accepts the
// first successful bandersnatch.FromBytes decode, which already performs
// the curve-equation solve and prime-order subgroup check.
func hashToCurve(label string, index uint64) *bandersnatch.Element {
	var idxBuf [8]byte
	binary.LittleEndian.PutUint64(idxBuf[:], index)
	for attempt := uint64(0); ; attempt++ {
		var attBuf [8]byte
		binary.LittleEndian.PutUint64(attBuf[:], attempt)

		h := sha256.New()
		h.Write([]byte(label))
		h.Write(idxBuf[:])
		h.Write(attBuf[:])
		digest := h.Sum(nil)

		var candidate [32]byte
		copy(candidate[:], digest)
		// Clear the top two bits so the candidate is always < the base
		// field modulus regardless of digest value.
		candidate[0] &= 0x3f

		if p, err := bandersnatch.FromBytes(candidate); err == nil && !p.IsIdentity() {
			return p
		}
	}
}
