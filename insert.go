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

// maxStemDepth is the deepest a branch chain can get while still
// resolving two distinct 31-byte stems: byte position 30 is the last one
// that can differ, so a chain of branches never needs to go past depth
// 31 before it bottoms out at the first differing byte.
const maxStemDepth = 31

// insUpdateLeaf updates (or creates) a single leaf: either the branch slot
// the key's path reaches is empty, in which case the stem is created
// there, or it already holds this same stem.
type insUpdateLeaf struct {
	key              Key
	newValue         [32]byte
	branchPath       []byte
	branchChildIndex byte
}

// insFallThrough records a branch that the forward walk passed through
// unmodified except for the digest change propagating up from its
// (already-processed) child.
type insFallThrough struct {
	path        []byte
	index       byte
	oldChildHash fr.Element
}

// insChainInsert records a stem split: an existing stem at parentPath's
// childIndex shares a prefix with the new key's stem longer than the
// trie currently represents as branches, so a new chain of branches must
// be built from parentPath down to the first byte at which the two stems
// actually differ.
type insChainInsert struct {
	parentPath   []byte
	chainPath    []byte // relative bytes consumed below parentPath, chainPath[0] == parent's child index
	oldStem      [31]byte
	oldLeafIndex byte
	newLeafKey   Key
	newLeafValue [32]byte
	newLeafIndex byte
}

type insStep struct {
	updateLeaf  *insUpdateLeaf
	fallThrough *insFallThrough
	chainInsert *insChainInsert
}

// createInsertInstructions walks from the root one key byte at a time and
// returns the straight-line instruction list that, replayed back-to-front,
// performs the insert. A nil, non-error return means the write is a no-op
// (the stored value already equals newValue).
func createInsertInstructions(s *Storage, key Key, newValue [32]byte) ([]insStep, error) {
	var steps []insStep
	stem := key.Stem()

	for depth := 0; depth < maxStemDepth; depth++ {
		path := key[:depth]
		index := key[depth]
		child, ok := s.GetChild(path, index)
		if !ok {
			steps = append(steps, insStep{updateLeaf: &insUpdateLeaf{
				key: key, newValue: newValue, branchPath: path, branchChildIndex: index,
			}})
			return steps, nil
		}
		if !child.IsStem {
			steps = append(steps, insStep{fallThrough: &insFallThrough{
				path: path, index: index, oldChildHash: child.Branch.HashCommitment,
			}})
			continue
		}

		if child.Stem == stem {
			if old, had := s.GetLeaf(key); had && old == newValue {
				return nil, nil // idempotent: no-op
			}
			steps = append(steps, insStep{updateLeaf: &insUpdateLeaf{
				key: key, newValue: newValue, branchPath: path, branchChildIndex: index,
			}})
			return steps, nil
		}

		diffPos := depth
		for diffPos < len(stem) && stem[diffPos] == child.Stem[diffPos] {
			diffPos++
		}
		if diffPos >= len(stem) {
			// Unreachable for well-formed distinct stems: 31 matching
			// bytes means the stems are identical.
			return nil, ErrKeyCollisionDepth
		}
		chainPath := make([]byte, diffPos-depth)
		copy(chainPath, stem[depth:diffPos])
		steps = append(steps, insStep{chainInsert: &insChainInsert{
			parentPath:   path,
			chainPath:    chainPath,
			oldStem:      child.Stem,
			oldLeafIndex: child.Stem[diffPos],
			newLeafKey:   key,
			newLeafValue: newValue,
			newLeafIndex: stem[diffPos],
		}})
		return steps, nil
	}
	return nil, ErrKeyCollisionDepth
}

// processInsertInstructions replays steps back-to-front, mutating
// storage in place.
func processInsertInstructions(cfg *Config, s *Storage, steps []insStep) {
	for i := len(steps) - 1; i >= 0; i-- {
		step := steps[i]
		switch {
		case step.updateLeaf != nil:
			processUpdateLeaf(cfg, s, step.updateLeaf)
		case step.chainInsert != nil:
			processChainInsert(cfg, s, step.chainInsert)
		case step.fallThrough != nil:
			processFallThrough(cfg, s, step.fallThrough)
		}
	}
}

func processUpdateLeaf(cfg *Config, s *Storage, u *insUpdateLeaf) {
	stem := u.key.Stem()
	meta, hadStem := s.GetStem(stem)
	if !hadStem {
		meta = bootstrapStemMeta(cfg, stem)
	}
	oldValue, hadOld := s.GetLeaf(u.key)
	oldExtHash := applyLeafUpdate(cfg, meta, u.key.Suffix(), oldValue, hadOld, u.newValue)
	s.setLeaf(u.key, u.newValue)
	s.setStem(meta)
	if !hadStem {
		// The branch slot was empty, so it held zero, not the bootstrap hash.
		oldExtHash = fr.Zero()
		s.setChildStem(u.branchPath, u.branchChildIndex, stem)
	}

	branch := s.GetBranch(u.branchPath)
	updated := applyBranchChildUpdate(cfg, branch, u.branchChildIndex, oldExtHash, meta.HashExtComm)
	s.setBranch(u.branchPath, updated)
}

func processFallThrough(cfg *Config, s *Storage, f *insFallThrough) {
	child := s.GetBranch(append(append([]byte{}, f.path...), f.index))
	branch := s.GetBranch(f.path)
	updated := applyBranchChildUpdate(cfg, branch, f.index, f.oldChildHash, child.HashCommitment)
	s.setBranch(f.path, updated)
}

func processChainInsert(cfg *Config, s *Storage, c *insChainInsert) {
	m := len(c.chainPath)
	bottomPath := make([]byte, len(c.parentPath)+m)
	copy(bottomPath, c.parentPath)
	copy(bottomPath[len(c.parentPath):], c.chainPath)

	oldStemMeta, _ := s.GetStem(c.oldStem)

	newStemMeta := bootstrapStemMeta(cfg, c.newLeafKey.Stem())
	applyLeafUpdate(cfg, newStemMeta, c.newLeafKey.Suffix(), [32]byte{}, false, c.newLeafValue)
	s.setLeaf(c.newLeafKey, c.newLeafValue)
	s.setStem(newStemMeta)

	bottom := zeroBranchMeta()
	bottom = applyBranchChildUpdate(cfg, bottom, c.oldLeafIndex, fr.Zero(), oldStemMeta.HashExtComm)
	bottom = applyBranchChildUpdate(cfg, bottom, c.newLeafIndex, fr.Zero(), newStemMeta.HashExtComm)
	s.setBranch(bottomPath, bottom)
	s.setChildStem(bottomPath, c.oldLeafIndex, c.oldStem)
	s.setChildStem(bottomPath, c.newLeafIndex, c.newLeafKey.Stem())

	currentHash := bottom.HashCommitment
	for k := m - 2; k >= 0; k-- {
		branchPath := make([]byte, len(c.parentPath)+k+1)
		copy(branchPath, c.parentPath)
		copy(branchPath[len(c.parentPath):], c.chainPath[:k+1])

		branch := zeroBranchMeta()
		branch = applyBranchChildUpdate(cfg, branch, c.chainPath[k+1], fr.Zero(), currentHash)
		s.setBranch(branchPath, branch)

		currentHash = branch.HashCommitment
	}

	parent := s.GetBranch(c.parentPath)
	updatedParent := applyBranchChildUpdate(cfg, parent, c.chainPath[0], oldStemMeta.HashExtComm, currentHash)
	s.setBranch(c.parentPath, updatedParent)
}

// Insert writes key -> value, creating or splitting stems and branches
// as needed. It is idempotent: inserting a value already stored under
// key is a no-op.
func (t *Trie) Insert(key Key, value [32]byte) error {
	steps, err := createInsertInstructions(t.storage, key, value)
	if err != nil {
		return err
	}
	if steps == nil {
		return nil
	}
	processInsertInstructions(t.cfg, t.storage, steps)
	return nil
}
