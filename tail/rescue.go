// Copyright ©2026 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tail

import (
	"fmt"
	"strings"
)

// Rescue reexamines the last aligned block of a and returns the alignment
// with mismatched trailing A/T bases moved from the templated region into
// the untemplated tail.
//
// The block's trailing run of A and T letters in the query is compared
// with the target; every base from the first mismatch within the run to
// the end of the block is clipped. The target and query ends and the
// last block shrink by the clipped length and the clipped query bases,
// upper cased, are prepended to AddedSeq. When nothing is clipped a is
// returned unaltered. Rescue applied to its own result is a no-op.
func Rescue(a Alignment) (Alignment, error) {
	r := a.Record
	if !r.HasSeq() {
		return Alignment{}, fmt.Errorf("%w: read %q: alignment has no block sequences", ErrMalformedInput, r.QName)
	}
	last := r.BlockCount() - 1
	qEnd := r.QSeq[last]
	tEnd := r.TSeq[last]
	if qEnd == tEnd {
		return a, nil
	}
	if len(qEnd) != len(tEnd) || len(qEnd) != r.BlockSizes[last] {
		return Alignment{}, fmt.Errorf("%w: read %q: block sequence lengths %d and %d disagree with block size %d",
			ErrMalformedAlignment, r.QName, len(qEnd), len(tEnd), r.BlockSizes[last])
	}

	scanStart := trailingRun(qEnd)
	if scanStart == len(qEnd) {
		return a, nil
	}
	qSub := qEnd[scanStart:]
	tSub := tEnd[scanStart:]
	if qSub == tSub {
		return a, nil
	}
	first := firstMismatch(qSub, tSub)
	clip := len(qSub) - first
	if clip <= 0 {
		return a, nil
	}
	if r.TEnd < clip {
		return Alignment{}, fmt.Errorf("%w: read %q: clipping %d bases from target end %d",
			ErrMalformedAlignment, r.QName, clip, r.TEnd)
	}
	if r.QEnd < clip {
		return Alignment{}, fmt.Errorf("%w: read %q: clipping %d bases from query end %d",
			ErrMalformedAlignment, r.QName, clip, r.QEnd)
	}

	a = a.Clone()
	c := a.Record
	c.TEnd -= clip
	c.QEnd -= clip
	c.BlockSizes[last] -= clip
	c.QSeq[last] = qEnd[:len(qEnd)-clip]
	c.TSeq[last] = tEnd[:len(tEnd)-clip]
	for i := first; i < len(qSub); i++ {
		if qSub[i] == tSub[i] {
			c.Match = decrement(c.Match)
		} else {
			c.Mismatch = decrement(c.Mismatch)
		}
	}
	a.AddedSeq = strings.ToUpper(qSub[first:]) + a.AddedSeq
	return a, nil
}

// trailingRun returns the index of the start of the longest suffix of s
// made only of A and T letters in either case. If s does not end in A or
// T, len(s) is returned.
func trailingRun(s string) int {
	i := len(s)
	for i > 0 {
		switch s[i-1] {
		case 'A', 'a', 'T', 't':
			i--
		default:
			return i
		}
	}
	return i
}

// firstMismatch returns the first position at which a and b differ, or
// len(a) if they share every position.
func firstMismatch(a, b string) int {
	for i := 0; i < len(a); i++ {
		if a[i] != b[i] {
			return i
		}
	}
	return len(a)
}

// decrement returns n-1 floored at zero; positions counted as N or
// repeat matches by the aligner are not held in Match or Mismatch.
func decrement(n int) int {
	if n > 0 {
		return n - 1
	}
	return 0
}
