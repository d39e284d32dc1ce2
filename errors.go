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

import "errors"

// Decode-class errors: fail fast on malformed input bytes.
var (
	ErrInvalidPoint          = errors.New("verkle: invalid point encoding")
	ErrScalarDecode          = errors.New("verkle: invalid scalar encoding")
	ErrProofTruncated        = errors.New("verkle: proof bytes truncated")
	ErrProofMalformed        = errors.New("verkle: proof bytes malformed")
	ErrMismatchedKeyLength   = errors.New("verkle: key is not 32 bytes")
	ErrUnexpectedUpdatedLength = errors.New("verkle: update value slice length mismatch")
)

// Semantic errors: verification/update precondition violations, reported
// through the (ok bool, *UpdateHint) / update_root contract rather than
// these alone, but still surfaced where a caller can act on them directly.
var (
	ErrIpaCheckFailed        = errors.New("verkle: ipa check failed")
	ErrMultipointCheckFailed = errors.New("verkle: multipoint check failed")
	ErrDuplicateKeys         = errors.New("verkle: duplicate keys in request")
	ErrOldValueIsPopulated   = errors.New("verkle: old value already populated")
	ErrEmptyPrefix           = errors.New("verkle: empty shared prefix")
)

// ErrKeyCollisionDepth is raised by Insert when a key would need to chain
// past depth 32: two distinct 31-byte stems cannot actually collide, so
// this only fires if a key differing only in its final byte is inserted
// after its stem has already chained to the maximum depth.
var ErrKeyCollisionDepth = errors.New("verkle: key insertion would exceed maximum trie depth")
