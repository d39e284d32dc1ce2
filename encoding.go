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
	"encoding/binary"

	"github.com/verkle-trie/verkle/bandersnatch"
	"github.com/verkle-trie/verkle/bandersnatch/fr"
	"github.com/verkle-trie/verkle/ipa"
)

// ipaRounds is log2(ipa.NumGenerators): the fixed number of (L, R)
// folding rounds every IPA proof over this trie's 256-wide domain
// carries, and therefore the fixed number of L/R points the wire format
// streams regardless of proof content.
const ipaRounds = 8

// Encode serializes a VerkleProof to the wire format: other-stems,
// per-key (ExtPresent, depth) bytes, sorted commitments, then the
// multipoint proof (D, IPA L/R points, final scalar) — in that exact
// order, matching the layout a verifier decodes with DecodeProof.
func (p *VerkleProof) Encode() []byte {
	var buf []byte

	buf = appendU32(buf, uint32(len(p.Hint.DiffStemNoProof)))
	for _, s := range p.Hint.DiffStemNoProof {
		buf = append(buf, s[:]...)
	}

	n := len(p.Hint.Depths)
	buf = appendU32(buf, uint32(n))
	for i := 0; i < n; i++ {
		buf = append(buf, encodeExtDepth(p.Hint.Ext[i], p.Hint.Depths[i]))
	}

	buf = appendU32(buf, uint32(len(p.CommsSorted)))
	for _, c := range p.CommsSorted {
		buf = append(buf, c[:]...)
	}

	dBytes := p.Multiproof.D.ToBytes()
	buf = append(buf, dBytes[:]...)
	ipaProof := p.Multiproof.Proof
	for _, l := range ipaProof.L {
		lb := l.ToBytes()
		buf = append(buf, lb[:]...)
	}
	for _, r := range ipaProof.R {
		rb := r.ToBytes()
		buf = append(buf, rb[:]...)
	}
	ab := ipaProof.A.BytesLE()
	buf = append(buf, ab[:]...)

	return buf
}

// DecodeProof parses the wire format Encode produces. It fails fast with
// ErrProofTruncated when fewer bytes are present than a field's declared
// length requires, ErrProofMalformed when a per-key byte carries an
// out-of-range ExtPresent value or bytes remain after the final scalar,
// and ErrInvalidPoint when an embedded point does not decode. The final
// scalar is read little-endian and reduced modulo the field order, so it
// never fails to decode.
func DecodeProof(data []byte) (*VerkleProof, error) {
	r := &byteReader{buf: data}

	numOther, err := r.u32()
	if err != nil {
		return nil, err
	}
	otherStems := make([][31]byte, numOther)
	for i := range otherStems {
		b, err := r.take(31)
		if err != nil {
			return nil, err
		}
		copy(otherStems[i][:], b)
	}

	numKeys, err := r.u32()
	if err != nil {
		return nil, err
	}
	depths := make([]byte, numKeys)
	exts := make([]ExtPresent, numKeys)
	for i := range depths {
		b, err := r.take(1)
		if err != nil {
			return nil, err
		}
		ext, depth, err := decodeExtDepth(b[0])
		if err != nil {
			return nil, err
		}
		exts[i] = ext
		depths[i] = depth
	}

	numComms, err := r.u32()
	if err != nil {
		return nil, err
	}
	comms := make([][32]byte, numComms)
	for i := range comms {
		b, err := r.take(32)
		if err != nil {
			return nil, err
		}
		copy(comms[i][:], b)
	}

	dBytes, err := r.take(32)
	if err != nil {
		return nil, err
	}
	var dArr [32]byte
	copy(dArr[:], dBytes)
	d, err := bandersnatch.FromBytes(dArr)
	if err != nil {
		return nil, ErrInvalidPoint
	}

	ls := make([]*bandersnatch.Element, ipaRounds)
	for i := range ls {
		ls[i], err = r.point()
		if err != nil {
			return nil, err
		}
	}
	rs := make([]*bandersnatch.Element, ipaRounds)
	for i := range rs {
		rs[i], err = r.point()
		if err != nil {
			return nil, err
		}
	}
	aBytes, err := r.take(32)
	if err != nil {
		return nil, err
	}
	var a fr.Element
	a.SetBytesLE(aBytes)

	if !r.exhausted() {
		return nil, ErrProofMalformed
	}

	return &VerkleProof{
		Hint: VerificationHint{
			Depths:          depths,
			Ext:             exts,
			DiffStemNoProof: otherStems,
		},
		CommsSorted: comms,
		Multiproof: &ipa.MultiProof{
			Proof: &ipa.IPAProof{L: ls, R: rs, A: a},
			D:     d,
		},
	}, nil
}

// encodeExtDepth packs one key's classification into the single byte §6
// describes: ExtPresent in the low 3 bits, depth (capped at 32) shifted
// left by 3.
func encodeExtDepth(ext ExtPresent, depth byte) byte {
	if depth > 32 {
		depth = 32
	}
	return byte(ext) | (depth << 3)
}

func decodeExtDepth(b byte) (ExtPresent, byte, error) {
	ext := ExtPresent(b & 0x7)
	if ext > ExtPresentHere {
		return 0, 0, ErrProofMalformed
	}
	depth := b >> 3
	return ext, depth, nil
}

func appendU32(buf []byte, v uint32) []byte {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	return append(buf, b[:]...)
}

// byteReader is a minimal forward-only cursor over a decode buffer,
// returning ErrProofTruncated the moment a read would run past the end.
type byteReader struct {
	buf []byte
	pos int
}

func (r *byteReader) take(n int) ([]byte, error) {
	if r.pos+n > len(r.buf) {
		return nil, ErrProofTruncated
	}
	b := r.buf[r.pos : r.pos+n]
	r.pos += n
	return b, nil
}

func (r *byteReader) u32() (uint32, error) {
	b, err := r.take(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

func (r *byteReader) point() (*bandersnatch.Element, error) {
	b, err := r.take(32)
	if err != nil {
		return nil, err
	}
	var arr [32]byte
	copy(arr[:], b)
	p, err := bandersnatch.FromBytes(arr)
	if err != nil {
		return nil, ErrInvalidPoint
	}
	return p, nil
}

func (r *byteReader) exhausted() bool { return r.pos == len(r.buf) }
