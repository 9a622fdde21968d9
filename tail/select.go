// Copyright ©2026 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tail

import (
	"fmt"
	"sort"

	"github.com/biogo/tails/psl"
)

// Key is a PSL record field used to rank candidate alignments.
type Key int

const (
	Match Key = iota
	Mismatch
	QGapCount
	TGapCount
	QGapBases
	TGapBases
)

func (k Key) value(r *psl.Record) int {
	switch k {
	case Match:
		return r.Match
	case Mismatch:
		return r.Mismatch
	case QGapCount:
		return r.QGapCount
	case TGapCount:
		return r.TGapCount
	case QGapBases:
		return r.QGapBases
	case TGapBases:
		return r.TGapBases
	}
	panic(fmt.Sprintf("tail: invalid sort key %d", int(k)))
}

func (k Key) String() string {
	switch k {
	case Match:
		return "match"
	case Mismatch:
		return "mismatch"
	case QGapCount:
		return "qGapCount"
	case TGapCount:
		return "tGapCount"
	case QGapBases:
		return "qGapBases"
	case TGapBases:
		return "tGapBases"
	}
	return fmt.Sprintf("Key(%d)", int(k))
}

// Direction is the preferred direction of a Key.
type Direction int

const (
	Ascending  Direction = iota // Smaller values rank first.
	Descending                  // Larger values rank first.
)

// SortKey is a single ranking criterion.
type SortKey struct {
	Key       Key
	Direction Direction
}

// Ordering is a lexicographic ranking of candidate alignments; earlier
// keys take precedence.
type Ordering []SortKey

// DefaultOrdering returns the ranking used to choose between alignments of
// the same read: most matches first, then fewest mismatches, query gaps,
// target gaps, query gap bases and target gap bases.
func DefaultOrdering() Ordering {
	return Ordering{
		{Match, Descending},
		{Mismatch, Ascending},
		{QGapCount, Ascending},
		{TGapCount, Ascending},
		{QGapBases, Ascending},
		{TGapBases, Ascending},
	}
}

// Less returns whether a ranks strictly before b.
func (o Ordering) Less(a, b *psl.Record) bool {
	for _, k := range o {
		va, vb := k.Key.value(a), k.Key.value(b)
		if va == vb {
			continue
		}
		if k.Direction == Descending {
			return va > vb
		}
		return va < vb
	}
	return false
}

// Select chooses the best ranked forward strand alignment for each query
// name in recs. Candidates that rank equally are resolved in favour of the
// earliest in recs. The returned alignments hold copies of the chosen
// records and are ordered by ascending sequence number; two reads with the
// same sequence number are an error.
func Select(recs []*psl.Record, o Ordering) ([]Alignment, error) {
	best := make(map[string]int)
	var chosen []*psl.Record
	for _, r := range recs {
		if r.Strand != psl.Forward {
			continue
		}
		i, ok := best[r.QName]
		if !ok {
			best[r.QName] = len(chosen)
			chosen = append(chosen, r)
			continue
		}
		if o.Less(r, chosen[i]) {
			chosen[i] = r
		}
	}

	sel := make([]Alignment, len(chosen))
	for i, r := range chosen {
		seqNo, count, err := ParseQueryName(r.QName)
		if err != nil {
			return nil, err
		}
		sel[i] = Alignment{Record: r.Clone(), SeqNo: seqNo, ReadCount: count}
	}
	sort.Stable(bySeqNo(sel))
	for i := 1; i < len(sel); i++ {
		if sel[i].SeqNo == sel[i-1].SeqNo {
			return nil, fmt.Errorf("%w: reads %q and %q share sequence number %d",
				ErrMalformedInput, sel[i-1].Record.QName, sel[i].Record.QName, sel[i].SeqNo)
		}
	}
	return sel, nil
}

type bySeqNo []Alignment

func (a bySeqNo) Len() int           { return len(a) }
func (a bySeqNo) Less(i, j int) bool { return a[i].SeqNo < a[j].SeqNo }
func (a bySeqNo) Swap(i, j int)      { a[i], a[j] = a[j], a[i] }
