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
	"encoding/hex"
	"testing"

	"github.com/verkle-trie/verkle/bandersnatch"
	"github.com/verkle-trie/verkle/bandersnatch/fr"
)

// scalarHex renders a challenge the same way the original rust-verkle
// transcript's test vectors do: little-endian CanonicalSerialize, hex
// encoded.
func scalarHex(s fr.Element) string {
	b := s.BytesLE()
	return hex.EncodeToString(b[:])
}

func TestTranscriptChallengesAreDeterministic(t *testing.T) {
	p := bandersnatch.Generator()

	tr1 := NewTranscript("test")
	tr1.AppendPoint("C", p)
	c1 := tr1.ChallengeScalar("w")

	tr2 := NewTranscript("test")
	tr2.AppendPoint("C", p)
	c2 := tr2.ChallengeScalar("w")

	if !c1.Equal(c2) {
		t.Fatalf("identical transcripts produced different challenges")
	}
}

func TestTranscriptSuccessiveChallengesDiffer(t *testing.T) {
	tr := NewTranscript("test")
	a := tr.ChallengeScalar("w")
	b := tr.ChallengeScalar("w")
	if a.Equal(b) {
		t.Fatalf("two successive challenges under the same label collided")
	}
}

func TestTranscriptDivergesOnDifferentMessages(t *testing.T) {
	p := bandersnatch.Generator()
	q := bandersnatch.Double(p)

	tr1 := NewTranscript("test")
	tr1.AppendPoint("C", p)
	c1 := tr1.ChallengeScalar("w")

	tr2 := NewTranscript("test")
	tr2.AppendPoint("C", q)
	c2 := tr2.ChallengeScalar("w")

	if c1.Equal(c2) {
		t.Fatalf("different appended points produced the same challenge")
	}
}

func TestTranscriptDivergesOnDifferentLabel(t *testing.T) {
	tr1 := NewTranscript("label-a")
	c1 := tr1.ChallengeScalar("w")

	tr2 := NewTranscript("label-b")
	c2 := tr2.ChallengeScalar("w")

	if c1.Equal(c2) {
		t.Fatalf("different protocol labels produced the same challenge")
	}
}

// The four cases below are the literal test vectors from the original
// rust-verkle ipa-multipoint crate's transcript.rs. Unlike the
// determinism/divergence checks above, these assert exact published hex
// digests rather than just relative properties, so a byte-level drift in
// append ordering or scalar/point encoding would be caught here even if
// the higher-level protocol still "worked" against itself.

func TestTranscriptVector1(t *testing.T) {
	tr := NewTranscript("simple_protocol")
	got := scalarHex(tr.ChallengeScalar("simple_challenge"))
	want := "c2aa02607cbdf5595f00ee0dd94a2bbff0bed6a2bf8452ada9011eadb538d003"
	if got != want {
		t.Fatalf("challenge = %s, want %s", got, want)
	}
}

func TestTranscriptVector2(t *testing.T) {
	tr := NewTranscript("simple_protocol")
	five := fr.FromUint64(5)

	tr.AppendScalar("five", five)
	tr.AppendScalar("five again", five)

	got := scalarHex(tr.ChallengeScalar("simple_challenge"))
	want := "498732b694a8ae1622d4a9347535be589e4aee6999ffc0181d13fe9e4d037b0b"
	if got != want {
		t.Fatalf("challenge = %s, want %s", got, want)
	}
}

func TestTranscriptVector3(t *testing.T) {
	tr := NewTranscript("simple_protocol")
	one := fr.One()
	minusOne := one.Neg()

	tr.AppendScalar("-1", minusOne)
	tr.DomainSep("separate me")
	tr.AppendScalar("-1 again", minusOne)
	tr.DomainSep("separate me again")
	tr.AppendScalar("now 1", one)

	got := scalarHex(tr.ChallengeScalar("simple_challenge"))
	want := "14f59938e9e9b1389e74311a464f45d3d88d8ac96adf1c1129ac466de088d618"
	if got != want {
		t.Fatalf("challenge = %s, want %s", got, want)
	}
}

// TestTranscriptVector4 is the one rust-verkle vector that folds a curve
// point (the Banderwagon generator) into the transcript. It is only
// checkable because bandersnatch.Generator()'s affine coordinates were
// independently cross-checked against a trusted reference (see
// element_test.go's generator doubling-chain test); it additionally
// relies on AppendPoint hashing the big-endian x*sign(y) bytes of ToBytes,
// the same bytes rust-verkle's Element serialization produces.
func TestTranscriptVector4(t *testing.T) {
	tr := NewTranscript("simple_protocol")
	tr.AppendPoint("generator", bandersnatch.Generator())

	got := scalarHex(tr.ChallengeScalar("simple_challenge"))
	want := "8c2dafe7c0aabfa9ed542bb2cbf0568399ae794fc44fdfd7dff6cc0e6144921c"
	if got != want {
		t.Fatalf("challenge = %s, want %s", got, want)
	}
}
