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

import "github.com/verkle-trie/verkle/bandersnatch/fr"

// Key is a 32-byte trie key: its first 31 bytes (the Stem) select a stem
// node, its last byte (the Suffix) selects one of the 256 leaves grouped
// under that stem.
type Key [32]byte

// Stem returns the 31-byte stem identifying which stem node a key
// belongs to.
func (k Key) Stem() (s [31]byte) {
	copy(s[:], k[:31])
	return s
}

// Suffix returns the last byte of the key: the index of this key's leaf
// within its stem's 256-entry suffix space.
func (k Key) Suffix() byte { return k[31] }

// stemScalar reinterprets a 31-byte stem as a little-endian scalar, the
// value folded into G1 of a stem's extension commitment.
func stemScalar(stem [31]byte) fr.Element {
	var buf [32]byte
	copy(buf[:31], stem[:])
	var e fr.Element
	e.SetBytesLE(buf[:])
	return e
}

// suffixHalf reports which of the two half-commitments (C1 for suffixes
// 0..127, C2 for 128..255) a suffix belongs to, and its row index within
// that half.
func suffixHalf(suffix byte) (isC2 bool, posMod128 int) {
	return suffix >= 128, int(suffix) % 128
}

// splitValue decomposes a 32-byte leaf value into its low and high
// 16-byte halves, each read as a little-endian scalar. The low half
// additionally carries the +2^128 presence flag whenever present is
// true, the convention that lets the low half distinguish a stored
// all-zero value from an absent leaf.
func splitValue(value [32]byte, present bool) (low, high fr.Element) {
	low = fr.FromLEBytesModOrder(value[:16])
	high = fr.FromLEBytesModOrder(value[16:])
	if present {
		low = low.Add(twoPow128)
	}
	return low, high
}

// twoPow128 is the presence-flag offset folded into the low half of
// every stored leaf value.
var twoPow128 = func() fr.Element {
	var buf [32]byte
	buf[16] = 1
	return fr.FromLEBytesModOrder(buf[:])
}()
