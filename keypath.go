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

// ExtPresent classifies what a stem's extension looks like at the point
// a key's search bottomed out: no stem at all, a different stem (proof
// of absence by stem mismatch), or this key's own stem (whether or not
// the specific suffix is populated).
type ExtPresent uint8

const (
	ExtNone ExtPresent = iota
	ExtDifferentStem
	ExtPresentHere
)

// KeyPath is the result of walking a key from the root: every branch
// level crossed, plus how the walk terminated.
type KeyPath struct {
	Nodes  []KeyPathNode
	Depth  int // number of branch levels crossed before termination
	Index  byte
	Ext    ExtPresent
	Other  [31]byte // valid only when Ext == ExtDifferentStem
	Stem   *StemMeta // the stem found at termination, nil when Ext == ExtNone
	Found  bool       // valid only when Ext == ExtPresentHere: whether the leaf itself exists
}

// KeyPathNode is one branch level crossed while walking a key: the
// branch living at Path was opened at Index, claiming the hash of
// whatever child lives there.
type KeyPathNode struct {
	Path  []byte
	Index byte
}

// findKeyPath walks key from the root, recording every branch passed and
// classifying how the walk ends.
func findKeyPath(s *Storage, key Key) KeyPath {
	stem := key.Stem()
	var nodes []KeyPathNode
	for depth := 0; depth < maxStemDepth; depth++ {
		path := key[:depth]
		index := key[depth]
		child, ok := s.GetChild(path, index)
		if !ok {
			return KeyPath{Nodes: nodes, Depth: depth, Index: index, Ext: ExtNone}
		}
		if !child.IsStem {
			nodes = append(nodes, KeyPathNode{Path: path, Index: index})
			continue
		}
		meta, _ := s.GetStem(child.Stem)
		if child.Stem != stem {
			return KeyPath{Nodes: nodes, Depth: depth, Index: index, Ext: ExtDifferentStem, Other: child.Stem, Stem: meta}
		}
		_, found := s.GetLeaf(key)
		return KeyPath{Nodes: nodes, Depth: depth, Index: index, Ext: ExtPresentHere, Stem: meta, Found: found}
	}
	return KeyPath{Nodes: nodes, Depth: maxStemDepth, Ext: ExtNone}
}
