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

// Package bandersnatch implements the Banderwagon group: the prime-order
// quotient, by its 2-torsion subgroup, of the Bandersnatch twisted Edwards
// curve defined over the BLS12-381 scalar field. Quotienting the 2-torsion
// out gives prime-order group semantics (no cofactor headaches for the
// caller) while keeping the fast, complete Edwards addition law.
package bandersnatch

import (
	"errors"
	"math/big"

	"github.com/verkle-trie/verkle/bandersnatch/fr"
)

// BaseFieldModulus is the coordinate field of the curve: the BLS12-381
// scalar field order. Curve coordinates (x, y, t, z) all live here; the
// group's own scalar field is the smaller subgroup order in package fr.
var BaseFieldModulus, _ = new(big.Int).SetString(
	"73eda753299d7d483339d80809a1d80553bda402fffe5bfeffffffff00000001", 16)

// curveA and curveD are the twisted Edwards parameters of
// a*x^2 + y^2 = 1 + d*x^2*y^2, i.e. a = -5 and d as published for
// Bandersnatch.
var (
	curveA = new(big.Int).Mod(big.NewInt(-5), BaseFieldModulus)
	curveD = func() *big.Int {
		d, _ := new(big.Int).SetString(
			"6389c12633c267cbc66e3bf86be3b6d8cb66677177e54f92b369f2f5188d58e7", 16)
		return d
	}()
)

var (
	genX, _ = new(big.Int).SetString(
		"29c132cc2c0b34c5743711777bbe42f32b79c022ad998465e1e71866a252ae18", 16)
	genY, _ = new(big.Int).SetString(
		"2a6c669eda123e0f157d8b50badcd586358cad81eee464605e3167b6cc974166", 16)
)

// ErrInvalidPoint is returned by FromBytes when the input does not decode
// to a valid subgroup element: no x for the given encoding, no square y^2,
// or the subgroup (quadratic-residue) check fails.
var ErrInvalidPoint = errors.New("bandersnatch: invalid point encoding")

func fq(v *big.Int) *big.Int { return new(big.Int).Mod(v, BaseFieldModulus) }

func fqAdd(a, b *big.Int) *big.Int { return fq(new(big.Int).Add(a, b)) }
func fqSub(a, b *big.Int) *big.Int { return fq(new(big.Int).Sub(a, b)) }
func fqMul(a, b *big.Int) *big.Int { return fq(new(big.Int).Mul(a, b)) }
func fqSqr(a *big.Int) *big.Int    { return fqMul(a, a) }
func fqNeg(a *big.Int) *big.Int {
	if a.Sign() == 0 {
		return new(big.Int)
	}
	return new(big.Int).Sub(BaseFieldModulus, fq(a))
}
func fqInv(a *big.Int) *big.Int { return new(big.Int).ModInverse(a, BaseFieldModulus) }

// Element is a point on the Bandersnatch curve in extended twisted
// Edwards coordinates (X, Y, T, Z), x = X/Z, y = Y/Z, T = X*Y/Z. Two
// representatives (x, y) and (-x, -y) denote the same Banderwagon element;
// Equal and the canonical encoding both respect this quotient.
type Element struct {
	x, y, t, z *big.Int
}

// Identity returns the neutral element of the group.
func Identity() *Element {
	return &Element{x: new(big.Int), y: big.NewInt(1), t: new(big.Int), z: big.NewInt(1)}
}

// Generator returns the standard Banderwagon generator.
func Generator() *Element {
	return &Element{x: new(big.Int).Set(genX), y: new(big.Int).Set(genY), t: fqMul(genX, genY), z: big.NewInt(1)}
}

// Set copies src into dst's storage.
func (e *Element) Set(src *Element) *Element {
	e.x = new(big.Int).Set(src.x)
	e.y = new(big.Int).Set(src.y)
	e.t = new(big.Int).Set(src.t)
	e.z = new(big.Int).Set(src.z)
	return e
}

// IsIdentity reports whether e is the neutral element (X == 0 in extended
// coordinates is sufficient since Z is never zero for a valid element).
func (e *Element) IsIdentity() bool { return e.x.Sign() == 0 }

// isOnCurve reports whether affine (x, y) satisfies a*x^2 + y^2 = 1 + d*x^2*y^2.
func isOnCurve(x, y *big.Int) bool {
	x2, y2 := fqSqr(x), fqSqr(y)
	lhs := fqAdd(fqMul(curveA, x2), y2)
	rhs := fqAdd(big.NewInt(1), fqMul(curveD, fqMul(x2, y2)))
	return lhs.Cmp(rhs) == 0
}

// FromAffineUnchecked builds an Element from affine coordinates without
// any curve-membership check; used internally once a point is already
// known to be valid (e.g. after getPointFromX).
func FromAffineUnchecked(x, y *big.Int) *Element {
	xm, ym := fq(x), fq(y)
	return &Element{x: xm, y: ym, t: fqMul(xm, ym), z: big.NewInt(1)}
}

// FromAffine builds an Element from affine coordinates, checking that the
// point lies on the curve (not necessarily in the prime-order subgroup;
// use FromBytes for a fully-checked decode).
func FromAffine(x, y *big.Int) (*Element, error) {
	if !isOnCurve(x, y) {
		return nil, ErrInvalidPoint
	}
	return FromAffineUnchecked(x, y), nil
}

// Affine returns the (x, y) affine coordinates of e.
func (e *Element) Affine() (x, y *big.Int) {
	if e.z.Cmp(big.NewInt(1)) == 0 {
		return new(big.Int).Set(e.x), new(big.Int).Set(e.y)
	}
	zInv := fqInv(e.z)
	return fqMul(e.x, zInv), fqMul(e.y, zInv)
}

// Add returns p + q using the Hisil et al. unified twisted-Edwards
// addition formula in extended coordinates.
func Add(p, q *Element) *Element {
	A := fqMul(p.x, q.x)
	B := fqMul(p.y, q.y)
	C := fqMul(fqMul(p.t, curveD), q.t)
	D := fqMul(p.z, q.z)
	E := fqSub(fqMul(fqAdd(p.x, p.y), fqAdd(q.x, q.y)), fqAdd(A, B))
	F := fqSub(D, C)
	G := fqAdd(D, C)
	H := fqSub(B, fqMul(curveA, A))
	return &Element{x: fqMul(E, F), y: fqMul(G, H), t: fqMul(E, H), z: fqMul(F, G)}
}

// Double returns 2*p using the dedicated twisted-Edwards doubling formula.
func Double(p *Element) *Element {
	A := fqSqr(p.x)
	B := fqSqr(p.y)
	C := fqMul(big.NewInt(2), fqSqr(p.z))
	D := fqMul(curveA, A)
	E := fqSub(fqSqr(fqAdd(p.x, p.y)), fqAdd(A, B))
	G := fqAdd(D, B)
	F := fqSub(G, C)
	H := fqSub(D, B)
	return &Element{x: fqMul(E, F), y: fqMul(G, H), t: fqMul(E, H), z: fqMul(F, G)}
}

// Neg returns -p. For twisted Edwards curves, -(x, y) = (-x, y).
func Neg(p *Element) *Element {
	return &Element{x: fqNeg(p.x), y: new(big.Int).Set(p.y), t: fqNeg(p.t), z: new(big.Int).Set(p.z)}
}

// Sub returns p - q.
func Sub(p, q *Element) *Element { return Add(p, Neg(q)) }

// ScalarMul returns k*p via left-to-right double-and-add. k is an fr
// (subgroup scalar field) element.
func ScalarMul(p *Element, k fr.Element) *Element {
	kb := k.BigInt()
	if kb.Sign() == 0 || p.IsIdentity() {
		return Identity()
	}
	result := Identity()
	for i := kb.BitLen() - 1; i >= 0; i-- {
		result = Double(result)
		if kb.Bit(i) == 1 {
			result = Add(result, p)
		}
	}
	return result
}

// Equal reports whether p and q represent the same Banderwagon element,
// i.e. the same coset of the 2-torsion quotient rather than the same raw
// curve point: x1*y2 == x2*y1, which identifies (x,y) with its 2-torsion
// translate (-x,-y) the same way ToBytes and MapToScalarField already do.
// x1, y1, x2, y2 are the affine coordinates p.x/p.z, p.y/p.z, q.x/q.z,
// q.y/q.z; the shared denominator p.z*q.z cancels out of the comparison,
// so it multiplies the raw extended coordinates directly.
func Equal(p, q *Element) bool {
	lhs := fqMul(p.x, q.y)
	rhs := fqMul(q.x, p.y)
	return lhs.Cmp(rhs) == 0
}

// legendre computes the Legendre symbol of a modulo BaseFieldModulus:
// 1 if a is a non-zero QR, -1 if a non-residue, 0 if a == 0.
func legendre(a *big.Int) int {
	if a.Sign() == 0 {
		return 0
	}
	exp := new(big.Int).Rsh(new(big.Int).Sub(BaseFieldModulus, big.NewInt(1)), 1)
	r := new(big.Int).Exp(a, exp, BaseFieldModulus)
	if r.Cmp(big.NewInt(1)) == 0 {
		return 1
	}
	return -1
}

// subgroupCheck implements the spec's legendre(1 - a*x^2) = QR condition
// that distinguishes the prime-order subgroup from the other cosets of
// the curve's order-4 cofactor.
func subgroupCheck(x *big.Int) bool {
	v := fqSub(big.NewInt(1), fqMul(curveA, fqSqr(x)))
	return legendre(v) >= 0
}

// getPointFromX solves a*x^2 + y^2 = 1 + d*x^2*y^2 for y given x, returning
// the representative with the lexicographically-positive y (per the sign
// convention used by ToBytes/FromBytes).
func getPointFromX(x *big.Int) (y *big.Int, ok bool) {
	x2 := fqSqr(x)
	num := fqSub(big.NewInt(1), fqMul(curveA, x2))
	den := fqSub(big.NewInt(1), fqMul(curveD, x2))
	if den.Sign() == 0 {
		return nil, false
	}
	y2 := fqMul(num, fqInv(den))
	yy := new(big.Int).ModSqrt(y2, BaseFieldModulus)
	if yy == nil {
		return nil, false
	}
	if !isPositive(yy) {
		yy = fqNeg(yy)
	}
	return yy, true
}

// isPositive implements the encoding's sign convention: y is "positive"
// when it is the lexicographically larger of {y, -y}, i.e. y > (p-1)/2.
func isPositive(y *big.Int) bool {
	half := new(big.Int).Rsh(BaseFieldModulus, 1)
	return y.Cmp(half) > 0
}

// ToBytes canonically encodes e as 32 big-endian bytes carrying x*sign(y).
func (e *Element) ToBytes() [32]byte {
	var out [32]byte
	if e.IsIdentity() {
		return out
	}
	x, y := e.Affine()
	if !isPositive(y) {
		x = fqNeg(x)
	}
	b := x.Bytes()
	copy(out[32-len(b):], b)
	return out
}

// FromBytes decodes a canonical 32-byte big-endian encoding, recovering y
// and enforcing the prime-order subgroup check. Returns ErrInvalidPoint on
// any failure.
func FromBytes(data [32]byte) (*Element, error) {
	x := new(big.Int).SetBytes(data[:])
	if x.Cmp(BaseFieldModulus) >= 0 {
		return nil, ErrInvalidPoint
	}
	if x.Sign() == 0 {
		return Identity(), nil
	}
	if !subgroupCheck(x) {
		return nil, ErrInvalidPoint
	}
	y, ok := getPointFromX(x)
	if !ok {
		return nil, ErrInvalidPoint
	}
	if !isOnCurve(x, y) {
		return nil, ErrInvalidPoint
	}
	return FromAffineUnchecked(x, y), nil
}

// Uncompressed encodes e as 64 bytes, x then y, each big-endian, with no
// sign-quotienting. Used only for internal caching (e.g. precomputed MSM
// tables) where repeatedly re-deriving y and re-running the subgroup check
// would be wasted work; never compare these bytes for semantic equality.
func (e *Element) Uncompressed() [64]byte {
	var out [64]byte
	x, y := e.Affine()
	xb, yb := x.Bytes(), y.Bytes()
	copy(out[32-len(xb):32], xb)
	copy(out[64-len(yb):64], yb)
	return out
}

// FromUncompressedUnchecked decodes the 64-byte caching format without
// re-running curve-membership or subgroup checks; callers must only use
// it on bytes produced by Uncompressed on a value already known valid.
func FromUncompressedUnchecked(data [64]byte) *Element {
	x := new(big.Int).SetBytes(data[:32])
	y := new(big.Int).SetBytes(data[32:])
	return FromAffineUnchecked(x, y)
}

// MapToScalarField computes x/y reduced into the scalar field fr, the
// standard Banderwagon point-to-scalar hash used to fold a child's or a
// stem's commitment into its parent's polynomial. The identity maps to
// zero.
func (e *Element) MapToScalarField() fr.Element {
	if e.IsIdentity() {
		return fr.Zero()
	}
	x, y := e.Affine()
	yInv := fqInv(y)
	return fr.FromBigInt(fqMul(x, yInv))
}

// BatchMapToScalarField maps many elements to scalars at once, batching
// the y-coordinate inversions into a single Montgomery-trick pass.
func BatchMapToScalarField(es []*Element) []fr.Element {
	ys := make([]*big.Int, len(es))
	xs := make([]*big.Int, len(es))
	zero := make([]bool, len(es))
	for i, e := range es {
		if e.IsIdentity() {
			zero[i] = true
			continue
		}
		x, y := e.Affine()
		xs[i], ys[i] = x, y
	}
	invs := batchInvertFq(ys, zero)
	out := make([]fr.Element, len(es))
	for i := range es {
		if zero[i] {
			out[i] = fr.Zero()
			continue
		}
		out[i] = fr.FromBigInt(fqMul(xs[i], invs[i]))
	}
	return out
}

func batchInvertFq(ys []*big.Int, skip []bool) []*big.Int {
	n := len(ys)
	prefix := make([]*big.Int, n)
	acc := big.NewInt(1)
	for i := range ys {
		prefix[i] = new(big.Int).Set(acc)
		if skip[i] {
			continue
		}
		acc = fqMul(acc, ys[i])
	}
	accInv := fqInv(acc)
	out := make([]*big.Int, n)
	for i := n - 1; i >= 0; i-- {
		if skip[i] {
			out[i] = new(big.Int)
			continue
		}
		out[i] = fqMul(prefix[i], accInv)
		accInv = fqMul(accInv, ys[i])
	}
	return out
}
