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

// Package fr implements arithmetic in the scalar field of the Bandersnatch
// prime-order subgroup: the field that IPA challenges, polynomial
// coefficients and Lagrange-basis evaluations live in.
package fr

import "math/big"

// Modulus is the order of the Bandersnatch prime-order subgroup.
var Modulus, _ = new(big.Int).SetString(
	"1cfb69d4ca675f520cce760202687600ff8f87007419047174fd06b52876e7e1", 16)

// Element is a scalar field element, always kept reduced modulo Modulus.
type Element struct {
	v *big.Int
}

// Zero returns the additive identity.
func Zero() Element { return Element{v: new(big.Int)} }

// One returns the multiplicative identity.
func One() Element { return Element{v: big.NewInt(1)} }

// FromUint64 builds an Element from a small non-negative integer.
func FromUint64(x uint64) Element {
	return Element{v: new(big.Int).SetUint64(x)}
}

// FromBigInt reduces an arbitrary *big.Int modulo Modulus.
func FromBigInt(x *big.Int) Element {
	v := new(big.Int).Mod(x, Modulus)
	return Element{v: v}
}

func (e Element) bi() *big.Int {
	if e.v == nil {
		return new(big.Int)
	}
	return e.v
}

// BigInt returns the canonical non-negative representative, in [0, Modulus).
func (e Element) BigInt() *big.Int { return new(big.Int).Set(e.bi()) }

// IsZero reports whether e is the additive identity.
func (e Element) IsZero() bool { return e.bi().Sign() == 0 }

// Equal reports whether e and other represent the same field element.
func (e Element) Equal(other Element) bool { return e.bi().Cmp(other.bi()) == 0 }

// Add returns e + other.
func (e Element) Add(other Element) Element {
	return Element{v: new(big.Int).Mod(new(big.Int).Add(e.bi(), other.bi()), Modulus)}
}

// Sub returns e - other.
func (e Element) Sub(other Element) Element {
	v := new(big.Int).Sub(e.bi(), other.bi())
	return Element{v: v.Mod(v, Modulus)}
}

// Mul returns e * other.
func (e Element) Mul(other Element) Element {
	return Element{v: new(big.Int).Mod(new(big.Int).Mul(e.bi(), other.bi()), Modulus)}
}

// Square returns e * e.
func (e Element) Square() Element { return e.Mul(e) }

// Neg returns -e.
func (e Element) Neg() Element {
	if e.IsZero() {
		return Zero()
	}
	return Element{v: new(big.Int).Sub(Modulus, e.bi())}
}

// Inverse returns e^-1. Panics if e is zero: callers must never invert a
// zero scalar, this is a programmer error per the degenerate-case policy.
func (e Element) Inverse() Element {
	if e.IsZero() {
		panic("fr: inverse of zero")
	}
	return Element{v: new(big.Int).ModInverse(e.bi(), Modulus)}
}

// BatchInvert inverts every non-zero element of xs in place, in one pass,
// using Montgomery's trick (one modular inversion regardless of len(xs)).
// Zero entries are left as zero.
func BatchInvert(xs []Element) {
	n := len(xs)
	if n == 0 {
		return
	}
	prefix := make([]Element, n)
	acc := One()
	for i, x := range xs {
		if x.IsZero() {
			prefix[i] = acc
			continue
		}
		prefix[i] = acc
		acc = acc.Mul(x)
	}
	accInv := acc.Inverse()
	for i := n - 1; i >= 0; i-- {
		if xs[i].IsZero() {
			continue
		}
		xs[i], accInv = prefix[i].Mul(accInv), accInv.Mul(xs[i])
	}
}

// SetBytesLE reduces a little-endian byte slice modulo Modulus.
func (e *Element) SetBytesLE(b []byte) {
	be := make([]byte, len(b))
	for i, c := range b {
		be[len(b)-1-i] = c
	}
	e.v = new(big.Int).Mod(new(big.Int).SetBytes(be), Modulus)
}

// SetBytes reduces a big-endian byte slice modulo Modulus.
func (e *Element) SetBytes(b []byte) {
	e.v = new(big.Int).Mod(new(big.Int).SetBytes(b), Modulus)
}

// BytesLE encodes e as 32 little-endian bytes.
func (e Element) BytesLE() [32]byte {
	var out [32]byte
	be := e.bi().Bytes()
	for i, c := range be {
		out[len(be)-1-i] = c
	}
	return out
}

// Bytes encodes e as 32 big-endian bytes.
func (e Element) Bytes() [32]byte {
	var out [32]byte
	be := e.bi().Bytes()
	copy(out[32-len(be):], be)
	return out
}

// FromLEBytesModOrder reduces an arbitrary-length little-endian byte
// string into an Element, matching the Rust source's
// `from_le_bytes_mod_order` used for transcript challenges.
func FromLEBytesModOrder(b []byte) Element {
	be := make([]byte, len(b))
	for i, c := range b {
		be[len(b)-1-i] = c
	}
	return Element{v: new(big.Int).Mod(new(big.Int).SetBytes(be), Modulus)}
}
