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
	"sort"

	"github.com/verkle-trie/verkle/bandersnatch"
	"github.com/verkle-trie/verkle/bandersnatch/fr"
	"github.com/verkle-trie/verkle/ipa"
)

// branchPathKey and stem-keyed commitment tags must match prove.go's
// queryBuilder tagging exactly, since the verifier rebuilds the same
// commitment identifiers from public data and zips them, in sorted
// order, against the proof's transmitted commitment list.
func branchPathKey(path []byte) string { return "b:" + string(path) }
func stemExtKey(stem [31]byte) string  { return "s:" + string(stem[:]) }
func stemC1Key(stem [31]byte) string   { return "c1:" + string(stem[:]) }
func stemC2Key(stem [31]byte) string   { return "c2:" + string(stem[:]) }

// findOtherStem locates, among the proof's declared "other stems", the
// one sharing key's first depth bytes: the unique stem that could
// structurally occupy the branch position this key bottomed out at.
func findOtherStem(other [][31]byte, key Key, depth int) ([31]byte, bool) {
	for _, s := range other {
		match := true
		for i := 0; i < depth; i++ {
			if s[i] != key[i] {
				match = false
				break
			}
		}
		if match {
			return s, true
		}
	}
	return [31]byte{}, false
}

// Check verifies proof against (keys, values, root): values[i] == nil
// claims key[i] is absent from the trie. On success it returns an
// UpdateHint a caller can feed to UpdateRoot to recompute the root after
// changing some of these values, without redoing the proof's own work.
func Check(cfg *Config, proof *VerkleProof, keys []Key, values []*[32]byte, root *bandersnatch.Element) (bool, *UpdateHint, error) {
	if err := checkDuplicateKeys(keys); err != nil {
		return false, nil, err
	}
	if len(keys) != len(values) {
		return false, nil, ErrUnexpectedUpdatedLength
	}
	hint := proof.Hint
	if len(hint.Depths) != len(keys) || len(hint.Ext) != len(keys) {
		return false, nil, ErrProofMalformed
	}

	// Determine, per present stem, whether C1 and/or C2 must have been
	// opened, mirroring the prover's own pass.
	neededC1 := make(map[[31]byte]bool)
	neededC2 := make(map[[31]byte]bool)
	for i, k := range keys {
		if hint.Ext[i] == ExtPresentHere {
			if k.Suffix() < 128 {
				neededC1[k.Stem()] = true
			} else {
				neededC2[k.Stem()] = true
			}
		}
		if (hint.Ext[i] == ExtNone || hint.Ext[i] == ExtDifferentStem) && values[i] != nil {
			return false, nil, nil // an absent key cannot carry a claimed value
		}
	}

	// Rebuild the set of non-root commitment keys the prover must have
	// transmitted, in the same canonical form, then sort and zip with
	// the wire-supplied bytes.
	commKeySet := make(map[string]bool)
	otherStemForKey := make(map[int][31]byte)
	for i, k := range keys {
		depth := int(hint.Depths[i])
		for d := 0; d < depth; d++ {
			if d == 0 {
				continue // root is never transmitted
			}
			commKeySet[branchPathKey(k[:d])] = true
		}
		switch hint.Ext[i] {
		case ExtDifferentStem:
			other, ok := findOtherStem(hint.DiffStemNoProof, k, depth)
			if !ok {
				return false, nil, ErrProofMalformed
			}
			otherStemForKey[i] = other
			commKeySet[stemExtKey(other)] = true
		case ExtPresentHere:
			commKeySet[stemExtKey(k.Stem())] = true
			if neededC1[k.Stem()] {
				commKeySet[stemC1Key(k.Stem())] = true
			}
			if neededC2[k.Stem()] {
				commKeySet[stemC2Key(k.Stem())] = true
			}
		}
	}
	sortedKeys := make([]string, 0, len(commKeySet))
	for k := range commKeySet {
		sortedKeys = append(sortedKeys, k)
	}
	sort.Strings(sortedKeys)
	if len(sortedKeys) != len(proof.CommsSorted) {
		return false, nil, ErrProofMalformed
	}
	commMap := make(map[string]*bandersnatch.Element, len(sortedKeys))
	for i, k := range sortedKeys {
		p, err := bandersnatch.FromBytes(proof.CommsSorted[i])
		if err != nil {
			return false, nil, ErrInvalidPoint
		}
		commMap[k] = p
	}

	seen := make(map[string]bool)
	var vqs []ipa.VerifierQuery
	addVQ := func(dedupKey string, commitment *bandersnatch.Element, point int, result fr.Element) {
		if seen[dedupKey] {
			return
		}
		seen[dedupKey] = true
		vqs = append(vqs, ipa.VerifierQuery{Commitment: commitment, Point: fr.FromUint64(uint64(point)), Result: result})
	}

	byPath := make(map[string]*bandersnatch.Element)
	for i, k := range keys {
		depth := int(hint.Depths[i])
		for d := 0; d < depth; d++ {
			path := k[:d]
			var branchComm *bandersnatch.Element
			if d == 0 {
				branchComm = root
			} else {
				branchComm = commMap[branchPathKey(path)]
			}
			byPath[branchPathKey(path)] = branchComm

			var childHash fr.Element
			if d+1 < depth {
				childHash = commMap[branchPathKey(k[:d+1])].MapToScalarField()
			} else {
				switch hint.Ext[i] {
				case ExtNone:
					childHash = fr.Zero()
				case ExtDifferentStem:
					childHash = commMap[stemExtKey(otherStemForKey[i])].MapToScalarField()
				case ExtPresentHere:
					childHash = commMap[stemExtKey(k.Stem())].MapToScalarField()
				}
			}
			addVQ(branchPathKey(path)+"#"+string(rune(k[d])), branchComm, int(k[d]), childHash)
		}

		switch hint.Ext[i] {
		case ExtDifferentStem:
			addExtVQs(addVQ, commMap, otherStemForKey[i], neededC1[k.Stem()], neededC2[k.Stem()])
		case ExtPresentHere:
			addExtVQs(addVQ, commMap, k.Stem(), neededC1[k.Stem()], neededC2[k.Stem()])
			addSuffixVQs(addVQ, commMap, k, values[i])
		}
	}

	tr := ipa.NewTranscript("vt")
	ok := proof.Multiproof.Check(tr, cfg.CRS, cfg.Weights, vqs)
	if !ok {
		return false, nil, nil
	}

	byStem := make(map[[31]byte]stemHint, len(keys))
	otherStemByPrefix := make(map[string][31]byte)
	otherStemExtComm := make(map[[31]byte]*bandersnatch.Element)
	opened := make(map[[31]byte]stemOpenedScalars)
	for i, k := range keys {
		depth := int(hint.Depths[i])
		byStem[k.Stem()] = stemHint{Ext: hint.Ext[i], Depth: depth}
		if hint.Ext[i] == ExtDifferentStem {
			other := otherStemForKey[i]
			otherStemByPrefix[string(k[:depth-1])] = other
			otherStemExtComm[other] = commMap[stemExtKey(other)]
		}
		if hint.Ext[i] == ExtPresentHere {
			stem := k.Stem()
			sc := opened[stem]
			sc.extComm = commMap[stemExtKey(stem)]
			if neededC1[stem] {
				sc.hasC1 = true
				sc.c1 = commMap[stemC1Key(stem)]
				sc.hashC1 = sc.c1.MapToScalarField()
			}
			if neededC2[stem] {
				sc.hasC2 = true
				sc.c2 = commMap[stemC2Key(stem)]
				sc.hashC2 = sc.c2.MapToScalarField()
			}
			opened[stem] = sc
		}
	}

	return true, &UpdateHint{
		ByStem:            byStem,
		ByPath:            byPath,
		OtherStemByPrefix: otherStemByPrefix,
		otherStemExtComm:  otherStemExtComm,
		opened:            opened,
	}, nil
}

func addExtVQs(addVQ func(string, *bandersnatch.Element, int, fr.Element), commMap map[string]*bandersnatch.Element, stem [31]byte, wantC1, wantC2 bool) {
	comm := commMap[stemExtKey(stem)]
	addVQ("ext0:"+string(stem[:]), comm, extSlotOne, fr.One())
	addVQ("ext1:"+string(stem[:]), comm, extSlotStem, stemScalar(stem))
	if wantC1 {
		hashC1 := commMap[stemC1Key(stem)].MapToScalarField()
		addVQ("ext2:"+string(stem[:]), comm, extSlotHashC1, hashC1)
	}
	if wantC2 {
		hashC2 := commMap[stemC2Key(stem)].MapToScalarField()
		addVQ("ext3:"+string(stem[:]), comm, extSlotHashC2, hashC2)
	}
}

func addSuffixVQs(addVQ func(string, *bandersnatch.Element, int, fr.Element), commMap map[string]*bandersnatch.Element, key Key, value *[32]byte) {
	stem := key.Stem()
	isC2, posMod128 := suffixHalf(key.Suffix())
	lowIndex := 2 * posMod128
	highIndex := lowIndex + 1
	var low, high fr.Element
	if value != nil {
		low, high = splitValue(*value, true)
	} else {
		low, high = fr.Zero(), fr.Zero()
	}
	if !isC2 {
		comm := commMap[stemC1Key(stem)]
		addVQ("c1l:"+string(stem[:])+string(rune(lowIndex)), comm, lowIndex, low)
		addVQ("c1h:"+string(stem[:])+string(rune(highIndex)), comm, highIndex, high)
	} else {
		comm := commMap[stemC2Key(stem)]
		addVQ("c2l:"+string(stem[:])+string(rune(lowIndex)), comm, lowIndex, low)
		addVQ("c2h:"+string(stem[:])+string(rune(highIndex)), comm, highIndex, high)
	}
}
