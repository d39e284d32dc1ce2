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

// StemMeta is the metadata recorded for a single stem: its two
// half-commitments over the 256 possible suffix values, their
// map-to-scalar hashes, and the stem's own extension commitment (what the
// parent branch actually sees as this stem's digest).
type StemMeta struct {
	Stem        [31]byte
	C1          *bandersnatch.Element
	HashC1      fr.Element
	C2          *bandersnatch.Element
	HashC2      fr.Element
	ExtComm     *bandersnatch.Element
	HashExtComm fr.Element
}

// BranchMeta is the metadata recorded for a branch node: its commitment
// to its (up to 256) children and that commitment's map-to-scalar hash.
type BranchMeta struct {
	Commitment     *bandersnatch.Element
	HashCommitment fr.Element
}

// zeroBranchMeta returns the metadata of an as-yet-uncommitted branch:
// commitment zero, hash zero.
func zeroBranchMeta() *BranchMeta {
	return &BranchMeta{Commitment: bandersnatch.Identity(), HashCommitment: fr.Zero()}
}

// BranchChild is one entry of a branch's child table: either the id of a
// stem living directly below this branch, or the metadata of a branch
// living below it.
type BranchChild struct {
	IsStem bool
	Stem   [31]byte
	Branch *BranchMeta
}

// Storage holds the trie's logical tables: leaf values, per-stem
// metadata, and the branch_child table keyed by (path, index). It has no
// on-disk representation of its own; that is left to callers.
type Storage struct {
	leaves   map[Key][32]byte
	stems    map[[31]byte]*StemMeta
	children map[string]*BranchChild
	root     *BranchMeta
}

// NewStorage returns an empty trie's storage: no leaves, no stems, and a
// root branch at commitment zero.
func NewStorage() *Storage {
	return &Storage{
		leaves:   make(map[Key][32]byte),
		stems:    make(map[[31]byte]*StemMeta),
		children: make(map[string]*BranchChild),
		root:     zeroBranchMeta(),
	}
}

// pathKey builds the map key for a branch_child table entry: the path of
// bytes from the root, followed by the child index at that branch.
func pathKey(path []byte, index byte) string {
	buf := make([]byte, len(path)+1)
	copy(buf, path)
	buf[len(path)] = index
	return string(buf)
}

// GetLeaf returns the value stored at key, if any.
func (s *Storage) GetLeaf(key Key) ([32]byte, bool) {
	v, ok := s.leaves[key]
	return v, ok
}

func (s *Storage) setLeaf(key Key, value [32]byte) { s.leaves[key] = value }

// GetStem returns the stem metadata for a 31-byte stem id, if any stem
// has been created there yet.
func (s *Storage) GetStem(stem [31]byte) (*StemMeta, bool) {
	m, ok := s.stems[stem]
	return m, ok
}

func (s *Storage) setStem(m *StemMeta) { s.stems[m.Stem] = m }

// GetChild returns the branch_child entry at (path, index).
func (s *Storage) GetChild(path []byte, index byte) (*BranchChild, bool) {
	c, ok := s.children[pathKey(path, index)]
	return c, ok
}

func (s *Storage) setChildStem(path []byte, index byte, stem [31]byte) {
	s.children[pathKey(path, index)] = &BranchChild{IsStem: true, Stem: stem}
}

func (s *Storage) setChildBranch(path []byte, index byte, meta *BranchMeta) {
	s.children[pathKey(path, index)] = &BranchChild{IsStem: false, Branch: meta}
}

// GetBranch returns the metadata of the branch living at path (the empty
// path denotes the root, which always exists).
func (s *Storage) GetBranch(path []byte) *BranchMeta {
	if len(path) == 0 {
		return s.root
	}
	c, ok := s.GetChild(path[:len(path)-1], path[len(path)-1])
	if !ok || c.IsStem {
		return nil
	}
	return c.Branch
}

func (s *Storage) setBranch(path []byte, meta *BranchMeta) {
	if len(path) == 0 {
		s.root = meta
		return
	}
	s.setChildBranch(path[:len(path)-1], path[len(path)-1], meta)
}

// Root returns the trie's root commitment.
func (s *Storage) Root() *bandersnatch.Element { return s.root.Commitment }

// RootHash returns the map-to-scalar-field hash of the root commitment,
// the 0x00...00 value for an empty trie.
func (s *Storage) RootHash() fr.Element { return s.root.HashCommitment }
