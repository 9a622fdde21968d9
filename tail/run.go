// Copyright ©2026 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tail

import (
	"errors"
	"fmt"
	"io"

	"github.com/biogo/tails/fai"
	"github.com/biogo/tails/fasta"
	"github.com/biogo/tails/psl"
)

// SequenceResolver returns sequences by name. *fasta.Cursor, fasta.Map
// and *fai.File satisfy SequenceResolver.
type SequenceResolver interface {
	Sequence(name string) (string, error)
}

// Config holds the settings of a Run.
type Config struct {
	// Rescue enables trailing A/T rescue.
	Rescue bool

	// Ordering ranks candidate alignments of
	// a read. DefaultOrdering is used if nil.
	Ordering Ordering
}

// Result is the outcome of a Run.
type Result struct {
	// Records is the number of alignment records
	// read and Forward the number of those on
	// the forward strand.
	Records int
	Forward int

	// Rescued is the number of reads changed
	// by trailing A/T rescue.
	Rescued int

	// Alignments holds the final alignment of
	// each read in ascending sequence number
	// order.
	Alignments []Alignment
}

// Rows returns the output table rows for the result.
func (r *Result) Rows() []Row {
	rows := make([]Row, len(r.Alignments))
	for i, a := range r.Alignments {
		rows[i] = Assemble(a)
	}
	return rows
}

// Run reads all alignments from alns, selects one alignment per read and
// determines each read's untemplated tail. Read sequences are requested
// from reads in ascending sequence number order. If refs is not nil, each
// selected hairpin must be present in refs with the length reported by its
// alignment.
func Run(alns psl.RecordReader, reads, refs SequenceResolver, cfg Config) (*Result, error) {
	recs, err := psl.ReadAll(alns)
	if err != nil {
		var pe *psl.ParseError
		if errors.As(err, &pe) {
			return nil, fmt.Errorf("%w: %v", ErrMalformedInput, err)
		}
		return nil, err
	}
	res := Result{Records: len(recs)}
	for _, r := range recs {
		if r.Strand == psl.Forward {
			res.Forward++
		}
	}

	o := cfg.Ordering
	if o == nil {
		o = DefaultOrdering()
	}
	sel, err := Select(recs, o)
	if err != nil {
		return nil, err
	}

	for i, a := range sel {
		if refs != nil {
			err = checkReference(refs, a.Record)
			if err != nil {
				return nil, err
			}
		}
		seq, err := reads.Sequence(a.Record.QName)
		if err != nil {
			return nil, resolveError("read", a.Record.QName, err)
		}
		a, err = Extract(a, seq)
		if err != nil {
			return nil, err
		}
		if cfg.Rescue {
			before := a.Record.TEnd
			a, err = Rescue(a)
			if err != nil {
				return nil, err
			}
			if a.Record.TEnd != before {
				res.Rescued++
			}
		}
		sel[i] = a
	}
	res.Alignments = sel
	return &res, nil
}

// LengthResolver is implemented by SequenceResolvers that can report
// the length of a sequence without retrieving it. *fai.File is a
// LengthResolver.
type LengthResolver interface {
	Length(name string) (int, error)
}

func checkReference(refs SequenceResolver, r *psl.Record) error {
	var n int
	if lr, ok := refs.(LengthResolver); ok {
		var err error
		n, err = lr.Length(r.TName)
		if err != nil {
			return resolveError("hairpin", r.TName, err)
		}
	} else {
		seq, err := refs.Sequence(r.TName)
		if err != nil {
			return resolveError("hairpin", r.TName, err)
		}
		n = len(seq)
	}
	if n != r.TSize {
		return fmt.Errorf("%w: read %q: hairpin %q has length %d, alignment reports %d",
			ErrMalformedAlignment, r.QName, r.TName, n, r.TSize)
	}
	return nil
}

func resolveError(kind, name string, err error) error {
	if errors.Is(err, fasta.ErrNotFound) || errors.Is(err, fai.ErrNotFound) {
		return fmt.Errorf("%w: %s %q", ErrNotFound, kind, name)
	}
	return fmt.Errorf("tail: resolving %s %q: %w", kind, name, err)
}

// WriteTable writes the rows of res to w as a tab-separated table with
// a header line. The refEndPos column is included when refEnd is true.
func WriteTable(w io.Writer, res *Result, refEnd bool) error {
	tw, err := NewWriter(w, refEnd)
	if err != nil {
		return err
	}
	for _, row := range res.Rows() {
		err = tw.Write(row)
		if err != nil {
			return err
		}
	}
	return tw.Flush()
}
