// Copyright ©2026 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tail

import "fmt"

// Extract returns a copy of a holding the full read sequence and the
// untemplated tail, the part of readSeq beyond the alignment's query end.
// The read must have the query length reported by the alignment.
func Extract(a Alignment, readSeq string) (Alignment, error) {
	if len(readSeq) != a.Record.QSize {
		return Alignment{}, fmt.Errorf("%w: read %q: read length %d differs from query size %d",
			ErrMalformedAlignment, a.Record.QName, len(readSeq), a.Record.QSize)
	}
	if a.Record.QEnd > len(readSeq) {
		return Alignment{}, fmt.Errorf("%w: read %q: query end %d beyond read length %d",
			ErrMalformedAlignment, a.Record.QName, a.Record.QEnd, len(readSeq))
	}
	a = a.Clone()
	a.ReadSeq = readSeq
	a.AddedSeq = readSeq[a.Record.QEnd:]
	return a, nil
}
