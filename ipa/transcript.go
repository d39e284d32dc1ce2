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
	"hash"

	"github.com/verkle-trie/verkle/bandersnatch"
	"github.com/verkle-trie/verkle/bandersnatch/fr"
)

// Transcript is a Fiat-Shamir challenge oracle over SHA-256. Every
// sub-protocol (IPA, multiproof) begins with its own domain-separator
// label so transcripts from different protocols never collide. Unlike a
// simple hash-chain, the accumulated bytes are only finalized when a
// challenge is drawn: ChallengeScalar finalizes and resets the hasher,
// then feeds the resulting scalar into the now-empty hasher, guaranteeing
// two successive challenges under the same label never collide.
type Transcript struct {
	h hash.Hash
}

// NewTranscript seeds a new transcript with a protocol label.
func NewTranscript(label string) *Transcript {
	t := &Transcript{h: sha256.New()}
	t.h.Write([]byte(label))
	return t
}

func (t *Transcript) appendMessage(label string, message []byte) {
	t.h.Write([]byte(label))
	t.h.Write(message)
}

// DomainSep folds a bare label into the transcript state without an
// accompanying message.
func (t *Transcript) DomainSep(label string) {
	t.h.Write([]byte(label))
}

// AppendPoint folds a group element's canonical 32-byte encoding into the
// transcript exactly as ToBytes produces it (big-endian x*sign(y)), the
// byte order the original rust-verkle transcript hashes points in.
func (t *Transcript) AppendPoint(label string, p *bandersnatch.Element) {
	b := p.ToBytes()
	t.appendMessage(label, b[:])
}

// AppendPoints folds a sequence of group elements under one label each.
func (t *Transcript) AppendPoints(label string, ps []*bandersnatch.Element) {
	for _, p := range ps {
		t.AppendPoint(label, p)
	}
}

// AppendScalar folds a scalar's 32-byte little-endian encoding into the
// transcript, matching arkworks CanonicalSerialize for Fr.
func (t *Transcript) AppendScalar(label string, s fr.Element) {
	b := s.BytesLE()
	t.appendMessage(label, b[:])
}

func reverse(b [32]byte) [32]byte {
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
	return b
}

// ChallengeScalar draws a challenge: it finalizes and resets the running
// hash to a 32-byte digest, reduces that digest into a scalar, then
// re-seeds the now-empty hasher with that scalar before returning it.
func (t *Transcript) ChallengeScalar(label string) fr.Element {
	t.DomainSep(label)
	digest := t.h.Sum(nil)
	t.h = sha256.New()
	challenge := fr.FromLEBytesModOrder(digest)
	t.AppendScalar(label, challenge)
	return challenge
}
