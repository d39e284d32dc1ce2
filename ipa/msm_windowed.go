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
	"golang.org/x/sync/errgroup"

	"github.com/verkle-trie/verkle/bandersnatch"
	"github.com/verkle-trie/verkle/bandersnatch/fr"
)

// WindowedMSM is the third interoperable MSM implementation (component
// C.3): a windowed signed-Booth multi-scalar multiplication over
// arbitrary (non-CRS) base vectors. The IPA prover and verifiers in this
// package do not call it; they use bandersnatch.MSM.
type WindowedMSM struct {
	tables     [][]*bandersnatch.Element // per base, numWindows * 2^(windowSize-1) entries
	numWindows int
	windowSize int
}

// NewWindowedMSM precomputes, for each base, (2^{iw})*k*P for every
// window i and every digit k in [1, 2^(windowSize-1)].
func NewWindowedMSM(bases []*bandersnatch.Element, windowSize int) *WindowedMSM {
	numWindows := fr.Modulus.BitLen()/windowSize + 1
	tables := make([][]*bandersnatch.Element, len(bases))
	var g errgroup.Group
	for i, base := range bases {
		i, base := i, base
		g.Go(func() error {
			tables[i] = precomputeWindowTable(base, windowSize, numWindows)
			return nil
		})
	}
	_ = g.Wait()
	return &WindowedMSM{tables: tables, numWindows: numWindows, windowSize: windowSize}
}

func precomputeWindowTable(point *bandersnatch.Element, windowSize, numWindows int) []*bandersnatch.Element {
	digitsPerWindow := 1 << (windowSize - 1)
	windowScalar := fr.FromUint64(1 << uint(windowSize))
	table := make([]*bandersnatch.Element, numWindows*digitsPerWindow)
	for w := 0; w < numWindows; w++ {
		scaledPoint := bandersnatch.ScalarMul(point, powFr(windowScalar, w))
		cur := scaledPoint
		base := w * digitsPerWindow
		table[base] = cur
		for i := 1; i < digitsPerWindow; i++ {
			cur = bandersnatch.Add(cur, scaledPoint)
			table[base+i] = cur
		}
	}
	return table
}

// Mul computes sum(scalars[i] * bases[i]) using the precomputed windowed
// tables: at most one non-zero addition per window per base.
func (w *WindowedMSM) Mul(scalars []fr.Element) *bandersnatch.Element {
	scalarBytes := make([][32]byte, len(scalars))
	for i, s := range scalars {
		scalarBytes[i] = s.BytesLE()
	}
	digitsPerWindow := 1 << (w.windowSize - 1)
	result := bandersnatch.Identity()
	for windowIdx := 0; windowIdx < w.numWindows; windowIdx++ {
		for scalarIdx := range scalarBytes {
			digit := getBoothIndex(windowIdx, w.windowSize, scalarBytes[scalarIdx][:])
			if digit == 0 {
				continue
			}
			sign := digit > 0
			pointIdx := digit
			if !sign {
				pointIdx = -pointIdx
			}
			scaledIdx := windowIdx*digitsPerWindow + int(pointIdx) - 1
			p := w.tables[scalarIdx][scaledIdx]
			if !sign {
				p = bandersnatch.Neg(p)
			}
			result = bandersnatch.Add(result, p)
		}
	}
	return result
}

// getBoothIndex extracts the signed Booth digit for a given window from a
// little-endian scalar byte stream. Ported directly from the windowed
// signed-digit MSM reference: step by windowSize bits, slice windowSize+1
// bits with a 1-bit overlap between adjacent windows, and append a zero
// bit at the least-significant end so the whole scalar is covered.
func getBoothIndex(windowIndex, windowSize int, el []byte) int32 {
	skipBits := windowIndex * windowSize
	if skipBits > 0 {
		skipBits--
	}
	skipBytes := skipBits / 8

	var v [4]byte
	for i := 0; i < 4 && skipBytes+i < len(el); i++ {
		v[i] = el[skipBytes+i]
	}
	tmp := uint32(v[0]) | uint32(v[1])<<8 | uint32(v[2])<<16 | uint32(v[3])<<24

	if windowIndex == 0 {
		tmp <<= 1
	}
	tmp >>= uint(skipBits - skipBytes*8)
	tmp &= (1 << uint(windowSize+1)) - 1

	sign := tmp&(1<<uint(windowSize)) == 0
	tmp = (tmp + 1) >> 1

	if sign {
		return int32(tmp)
	}
	masked := (^(tmp - 1)) & ((1 << uint(windowSize)) - 1)
	return -int32(masked)
}
