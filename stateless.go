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
	"github.com/verkle-trie/verkle/bandersnatch"
	"github.com/verkle-trie/verkle/bandersnatch/fr"
)

// buildUpdateStorage replays an UpdateHint's bookkeeping into a throwaway
// Storage that holds exactly the branch and stem metadata the hint
// proved, nothing more. It is deliberately shaped so the real Insert
// machinery (insert.go) can walk it unmodified: every branch level a key
// crosses gets a branch_child entry pointing at the right commitment, and
// every key's terminal slot gets either its own stem, the other stem the
// proof witnessed, or nothing at all (ExtNone), exactly mirroring what a
// full trie's storage would report for that key.
func buildUpdateStorage(hint *UpdateHint, root *bandersnatch.Element, keys []Key, oldValues []*[32]byte) (*Storage, error) {
	s := NewStorage()
	s.root = &BranchMeta{Commitment: root, HashCommitment: root.MapToScalarField()}

	for key, comm := range hint.ByPath {
		path := []byte(key[len("b:"):])
		if len(path) == 0 {
			continue // the root, already seeded above
		}
		meta := &BranchMeta{Commitment: comm, HashCommitment: comm.MapToScalarField()}
		s.setChildBranch(path[:len(path)-1], path[len(path)-1], meta)
	}

	placed := make(map[[31]byte]bool, len(keys))
	for _, k := range keys {
		stem := k.Stem()
		if placed[stem] {
			continue
		}
		placed[stem] = true

		h, ok := hint.ByStem[stem]
		if !ok {
			return nil, ErrProofMalformed
		}
		if h.Depth == 0 {
			return nil, ErrEmptyPrefix
		}
		parentPath := k[:h.Depth-1]
		childIndex := k[h.Depth-1]

		switch h.Ext {
		case ExtPresentHere:
			opened, ok := hint.opened[stem]
			if !ok || opened.extComm == nil {
				return nil, ErrProofMalformed
			}
			meta := &StemMeta{
				Stem:        stem,
				ExtComm:     opened.extComm,
				HashExtComm: opened.extComm.MapToScalarField(),
			}
			if opened.hasC1 {
				meta.C1, meta.HashC1 = opened.c1, opened.hashC1
			} else {
				meta.C1, meta.HashC1 = bandersnatch.Identity(), fr.Zero()
			}
			if opened.hasC2 {
				meta.C2, meta.HashC2 = opened.c2, opened.hashC2
			} else {
				meta.C2, meta.HashC2 = bandersnatch.Identity(), fr.Zero()
			}
			s.setStem(meta)
			s.setChildStem(parentPath, childIndex, stem)
		case ExtDifferentStem:
			other, ok := hint.OtherStemByPrefix[string(parentPath)]
			if !ok {
				return nil, ErrProofMalformed
			}
			otherComm, ok := hint.otherStemExtComm[other]
			if !ok {
				return nil, ErrProofMalformed
			}
			s.setStem(&StemMeta{
				Stem:        other,
				C1:          bandersnatch.Identity(),
				C2:          bandersnatch.Identity(),
				ExtComm:     otherComm,
				HashExtComm: otherComm.MapToScalarField(),
			})
			s.setChildStem(parentPath, childIndex, other)
		case ExtNone:
			// Slot is proven empty; nothing to place.
		}
	}

	for i, k := range keys {
		h := hint.ByStem[k.Stem()]
		if h.Ext == ExtPresentHere && oldValues[i] != nil {
			s.setLeaf(k, *oldValues[i])
		}
	}

	return s, nil
}

// UpdateRoot recomputes the trie's root after changing some of the
// values a successful Check already proved, without access to the full
// trie: it replays the verifier's UpdateHint into a minimal synthetic
// Storage (buildUpdateStorage) and reinserts each new value through the
// same instruction-list machinery Insert uses, so the result is, by
// construction, identical to inserting the new values into the real
// trie from scratch (the "update = reinsert" property).
//
// oldValues[i] must be nil exactly when hint classifies keys[i] as
// absent (ExtNone or ExtDifferentStem); passing a non-nil old value for
// an absent key is rejected with ErrOldValueIsPopulated, since it would
// silently corrupt the delta a present-stem update computes.
func UpdateRoot(cfg *Config, hint *UpdateHint, root *bandersnatch.Element, keys []Key, oldValues, newValues []*[32]byte) (*bandersnatch.Element, error) {
	if len(keys) != len(oldValues) || len(keys) != len(newValues) {
		return nil, ErrUnexpectedUpdatedLength
	}
	if err := checkDuplicateKeys(keys); err != nil {
		return nil, err
	}
	for i, k := range keys {
		h, ok := hint.ByStem[k.Stem()]
		if !ok {
			return nil, ErrProofMalformed
		}
		if oldValues[i] != nil && h.Ext != ExtPresentHere {
			return nil, ErrOldValueIsPopulated
		}
		if newValues[i] == nil {
			return nil, ErrUnexpectedUpdatedLength
		}
	}

	storage, err := buildUpdateStorage(hint, root, keys, oldValues)
	if err != nil {
		return nil, err
	}
	t := &Trie{cfg: cfg, storage: storage}
	for i, k := range keys {
		if err := t.Insert(k, *newValues[i]); err != nil {
			return nil, err
		}
	}
	return t.storage.Root(), nil
}
