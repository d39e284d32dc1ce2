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
	"github.com/verkle-trie/verkle/ipa"
)

func checkDuplicateKeys(keys []Key) error {
	seen := make(map[Key]bool, len(keys))
	for _, k := range keys {
		if seen[k] {
			return ErrDuplicateKeys
		}
		seen[k] = true
	}
	return nil
}

// queryBuilder accumulates deduplicated opening queries plus the
// path/stem -> commitment table used to produce the proof's sorted
// commitment list; it is shared, verbatim, between proving (where every
// commitment comes from real storage) and nothing else, since the
// verifier never has storage to query.
type queryBuilder struct {
	cfg      *Config
	seen     map[string]bool
	queries  []ipa.ProverQuery
	comms    map[string]*bandersnatch.Element
	commKeys []string
}

func newQueryBuilder(cfg *Config) *queryBuilder {
	return &queryBuilder{cfg: cfg, seen: map[string]bool{}, comms: map[string]*bandersnatch.Element{}}
}

func (qb *queryBuilder) add(tag string, commitment *bandersnatch.Element, poly *ipa.LagrangeBasis, point int, trackComm bool, commKey string) {
	dedupKey := tag + "#" + string(rune(point))
	if qb.seen[dedupKey] {
		return
	}
	qb.seen[dedupKey] = true
	qb.queries = append(qb.queries, ipa.ProverQuery{
		Commitment: commitment,
		Poly:       poly,
		Point:      point,
		Result:     poly.EvaluateInDomain(point),
	})
	if trackComm {
		if _, ok := qb.comms[commKey]; !ok {
			qb.commKeys = append(qb.commKeys, commKey)
		}
		qb.comms[commKey] = commitment
	}
}

func (qb *queryBuilder) sortedComms() [][32]byte {
	keys := append([]string{}, qb.commKeys...)
	sort.Strings(keys)
	out := make([][32]byte, len(keys))
	for i, k := range keys {
		out[i] = qb.comms[k].ToBytes()
	}
	return out
}

// Prove produces a VerkleProof attesting to the keys' membership or
// non-membership (and, for present keys, their values) in the trie.
func (t *Trie) Prove(keys []Key) (*VerkleProof, error) {
	if err := checkDuplicateKeys(keys); err != nil {
		return nil, err
	}

	kps := make([]KeyPath, len(keys))
	for i, k := range keys {
		kps[i] = findKeyPath(t.storage, k)
	}

	neededC1 := make(map[[31]byte]bool)
	neededC2 := make(map[[31]byte]bool)
	for i, k := range keys {
		if kps[i].Ext == ExtPresentHere {
			if k.Suffix() < 128 {
				neededC1[k.Stem()] = true
			} else {
				neededC2[k.Stem()] = true
			}
		}
	}

	qb := newQueryBuilder(t.cfg)
	depths := make([]byte, len(keys))
	exts := make([]ExtPresent, len(keys))
	otherStems := make(map[[31]byte]bool)

	for i, k := range keys {
		kp := kps[i]
		depths[i] = byte(kp.Depth + 1)
		exts[i] = kp.Ext

		for _, node := range kp.Nodes {
			branch := t.storage.GetBranch(node.Path)
			poly := branchPolynomial(t.storage, node.Path)
			trackComm := len(node.Path) > 0
			qb.add("branch:"+string(node.Path), branch.Commitment, poly, int(node.Index), trackComm, "b:"+string(node.Path))
		}

		// The level at which the walk actually terminated (empty slot, a
		// different stem, or this key's own stem) still needs its own
		// opening: it carries the claimed child hash and is not part of
		// kp.Nodes, which only records levels fallen through to a
		// further branch.
		terminalPath := k[:kp.Depth]
		terminalBranch := t.storage.GetBranch(terminalPath)
		terminalPoly := branchPolynomial(t.storage, terminalPath)
		qb.add("branch:"+string(terminalPath), terminalBranch.Commitment, terminalPoly, int(kp.Index), len(terminalPath) > 0, "b:"+string(terminalPath))

		switch kp.Ext {
		case ExtNone:
			// The absence is fully witnessed by the last traversed
			// branch's opening at kp.Index claiming zero; no further
			// queries are needed.
		case ExtDifferentStem:
			otherStems[kp.Other] = true
			addExtQueries(qb, kp.Stem, neededC1[k.Stem()], neededC2[k.Stem()])
		case ExtPresentHere:
			addExtQueries(qb, kp.Stem, neededC1[k.Stem()], neededC2[k.Stem()])
			addSuffixQueries(qb, t.storage, kp.Stem, k)
		}
	}

	sortedOther := make([][31]byte, 0, len(otherStems))
	for s := range otherStems {
		sortedOther = append(sortedOther, s)
	}
	sort.Slice(sortedOther, func(i, j int) bool { return string(sortedOther[i][:]) < string(sortedOther[j][:]) })

	tr := ipa.NewTranscript("vt")
	mp := ipa.OpenMultiProof(tr, t.cfg.CRS, t.cfg.Committer, t.cfg.Weights, qb.queries)

	return &VerkleProof{
		Hint: VerificationHint{
			Depths:          depths,
			Ext:             exts,
			DiffStemNoProof: sortedOther,
		},
		CommsSorted: qb.sortedComms(),
		Multiproof:  mp,
	}, nil
}

// addExtQueries opens a stem's ext_comm at points 0 and 1 always, and at
// point 2 or 3 whenever a queried suffix needs hash_c1 or hash_c2 to
// compute its claimed value.
func addExtQueries(qb *queryBuilder, meta *StemMeta, wantC1, wantC2 bool) {
	poly := extCommPolynomial(meta)
	commKey := "s:" + string(meta.Stem[:])
	qb.add("ext0:"+string(meta.Stem[:]), meta.ExtComm, poly, extSlotOne, true, commKey)
	qb.add("ext1:"+string(meta.Stem[:]), meta.ExtComm, poly, extSlotStem, true, commKey)
	if wantC1 {
		qb.add("ext2:"+string(meta.Stem[:]), meta.ExtComm, poly, extSlotHashC1, true, commKey)
	}
	if wantC2 {
		qb.add("ext3:"+string(meta.Stem[:]), meta.ExtComm, poly, extSlotHashC2, true, commKey)
	}
}

// addSuffixQueries opens the two generator positions (low, high) a
// present key's suffix owns within C1 or C2.
func addSuffixQueries(qb *queryBuilder, s *Storage, meta *StemMeta, key Key) {
	isC2, posMod128 := suffixHalf(key.Suffix())
	lowIndex := 2 * posMod128
	highIndex := lowIndex + 1
	if !isC2 {
		poly := suffixHalfPolynomial(s, meta.Stem, false)
		commKey := "c1:" + string(meta.Stem[:])
		qb.add("c1l:"+string(meta.Stem[:])+string(rune(lowIndex)), meta.C1, poly, lowIndex, true, commKey)
		qb.add("c1h:"+string(meta.Stem[:])+string(rune(highIndex)), meta.C1, poly, highIndex, true, commKey)
	} else {
		poly := suffixHalfPolynomial(s, meta.Stem, true)
		commKey := "c2:" + string(meta.Stem[:])
		qb.add("c2l:"+string(meta.Stem[:])+string(rune(lowIndex)), meta.C2, poly, lowIndex, true, commKey)
		qb.add("c2h:"+string(meta.Stem[:])+string(rune(highIndex)), meta.C2, poly, highIndex, true, commKey)
	}
}
