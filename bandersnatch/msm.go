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

package bandersnatch

import "github.com/verkle-trie/verkle/bandersnatch/fr"

// MSM computes sum(scalars[i] * bases[i]) with a plain double-and-add
// accumulator. It exists purely as a correctness oracle: the precomputed
// Lagrange-table and windowed-Booth MSM implementations in package ipa
// must agree with this on every input.
func MSM(bases []*Element, scalars []fr.Element) *Element {
	if len(bases) != len(scalars) {
		panic("bandersnatch: MSM length mismatch")
	}
	result := Identity()
	for i, s := range scalars {
		if s.IsZero() {
			continue
		}
		result = Add(result, ScalarMul(bases[i], s))
	}
	return result
}
