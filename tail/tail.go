// Copyright ©2026 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package tail identifies the reference hairpin and untemplated 3′ addition
// of small RNA reads from their PSLx alignments.
//
// For each read, a single forward strand alignment is chosen among the
// candidates, the read bases beyond the aligned query end are reported as
// the untemplated tail, and optionally mismatched trailing A/T runs of the
// last aligned block are moved from the templated region into the tail.
package tail

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/biogo/tails/psl"
)

// Error classes. Every error returned by the package because of invalid
// data wraps exactly one of these.
var (
	ErrNotFound           = errors.New("tail: not found")
	ErrMalformedAlignment = errors.New("tail: malformed alignment")
	ErrMalformedInput     = errors.New("tail: malformed input")
)

// Alignment is the alignment selected for a single read, together with
// the read's sequence and untemplated tail once they are known.
type Alignment struct {
	// Record is owned by the Alignment; it is
	// never shared with the input table.
	Record *psl.Record

	SeqNo     int
	ReadCount int

	ReadSeq  string
	AddedSeq string
}

// Clone returns a copy of a that shares no mutable state with it.
func (a Alignment) Clone() Alignment {
	if a.Record != nil {
		a.Record = a.Record.Clone()
	}
	return a
}

// ParseQueryName parses a read name of the form "<seqNo>-<readCount>".
// Both parts must be non-negative decimal integers.
func ParseQueryName(name string) (seqNo, readCount int, err error) {
	s, c, ok := strings.Cut(name, "-")
	if !ok {
		return 0, 0, fmt.Errorf("%w: read name %q lacks '-' separator", ErrMalformedInput, name)
	}
	seqNo, err = parseCount(s)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: read name %q: invalid sequence number: %v", ErrMalformedInput, name, err)
	}
	readCount, err = parseCount(c)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: read name %q: invalid read count: %v", ErrMalformedInput, name, err)
	}
	return seqNo, readCount, nil
}

func parseCount(s string) (int, error) {
	if s == "" || s[0] == '+' || s[0] == '-' {
		return 0, fmt.Errorf("not a non-negative integer: %q", s)
	}
	return strconv.Atoi(s)
}
