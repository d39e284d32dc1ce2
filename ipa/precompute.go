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

const bytesPerScalar = 32
const valuesPerByte = 255

// lagrangeTablePoints holds, for one generator G, the 32x255 table of
// precomputed multiples k*256^row*G used to commit to a scalar without
// any doublings: the scalar's byte decomposition directly selects one
// entry per row.
type lagrangeTablePoints struct {
	matrix []*bandersnatch.Element // 32 * 255 entries, row-major
}

func powFr(base fr.Element, exp int) fr.Element {
	result := fr.One()
	b := base
	for e := exp; e > 0; e >>= 1 {
		if e&1 == 1 {
			result = result.Mul(b)
		}
		b = b.Mul(b)
	}
	return result
}

func newLagrangeTablePoints(point *bandersnatch.Element) *lagrangeTablePoints {
	matrix := make([]*bandersnatch.Element, bytesPerScalar*valuesPerByte)
	base256 := fr.FromUint64(256)
	for row := 0; row < bytesPerScalar; row++ {
		scaledPoint := bandersnatch.ScalarMul(point, powFr(base256, row))
		cur := scaledPoint
		matrix[row*valuesPerByte] = cur
		for k := 1; k < valuesPerByte; k++ {
			cur = bandersnatch.Add(cur, scaledPoint)
			matrix[row*valuesPerByte+k] = cur
		}
	}
	return &lagrangeTablePoints{matrix: matrix}
}

// point returns value*256^bytePos*G, or the identity when value is 0.
func (t *lagrangeTablePoints) point(bytePos int, value byte) *bandersnatch.Element {
	if value == 0 {
		return bandersnatch.Identity()
	}
	return t.matrix[bytePos*valuesPerByte+int(value)-1]
}

// PrecomputeLagrange is the precomputed-table committer (component C.2):
// one lagrangeTablePoints per CRS generator, letting Commit and ScalarMul
// run in O(32) additions per non-zero scalar with no doublings at all.
type PrecomputeLagrange struct {
	tables []*lagrangeTablePoints
}

// NewPrecomputeLagrange builds the full table set for the given
// generators. Table construction is independent per generator, so it
// fans out across an errgroup: the result is bit-identical to serial
// construction, only the wall-clock differs, matching the "internal
// parallelism is optional" concurrency contract.
func NewPrecomputeLagrange(generators []*bandersnatch.Element) *PrecomputeLagrange {
	tables := make([]*lagrangeTablePoints, len(generators))
	var g errgroup.Group
	for i, gen := range generators {
		i, gen := i, gen
		g.Go(func() error {
			tables[i] = newLagrangeTablePoints(gen)
			return nil
		})
	}
	_ = g.Wait()
	return &PrecomputeLagrange{tables: tables}
}

// CommitLagrange computes sum(evaluations[j] * G_j) using the
// precomputed tables, one table lookup per non-zero scalar byte.
func (p *PrecomputeLagrange) CommitLagrange(evaluations []fr.Element) *bandersnatch.Element {
	result := bandersnatch.Identity()
	for j, scalar := range evaluations {
		if scalar.IsZero() {
			continue
		}
		result = bandersnatch.Add(result, p.scalarMulTable(j, scalar))
	}
	return result
}

// ScalarMul computes value * G_lagrangeIndex using the single table for
// that generator: the operation behind a single-index delta update.
func (p *PrecomputeLagrange) ScalarMul(value fr.Element, lagrangeIndex int) *bandersnatch.Element {
	if value.IsZero() {
		return bandersnatch.Identity()
	}
	return p.scalarMulTable(lagrangeIndex, value)
}

func (p *PrecomputeLagrange) scalarMulTable(index int, scalar fr.Element) *bandersnatch.Element {
	table := p.tables[index]
	bytes := scalar.BytesLE()
	result := bandersnatch.Identity()
	for bytePos, v := range bytes {
		if v == 0 {
			continue
		}
		result = bandersnatch.Add(result, table.point(bytePos, v))
	}
	return result
}
