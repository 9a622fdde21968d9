// Copyright ©2026 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package psl

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
)

const (
	matchField = iota
	mismatchField
	repMatchField
	nField
	qGapCountField
	qGapBasesField
	tGapCountField
	tGapBasesField
	strandField
	qNameField
	qSizeField
	qStartField
	qEndField
	tNameField
	tSizeField
	tStartField
	tEndField
	blockCountField
	blockSizesField
	qStartsField
	tStartsField
	qSeqField
	tSeqField

	pslFields  = qSeqField
	pslxFields = tSeqField + 1
)

var (
	errBlockCount = errors.New("block list length does not match block count")
	errNegative   = errors.New("negative value")
)

// ParseError is returned when a PSL line cannot be parsed. Column is the
// zero-based column index of the offending field.
type ParseError struct {
	Line   int
	Column int
	Err    error
}

func (e *ParseError) Error() string {
	if e.Line == 0 {
		return fmt.Sprintf("psl: column %d: %v", e.Column, e.Err)
	}
	return fmt.Sprintf("psl: line %d, column %d: %v", e.Line, e.Column, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Record represents a PSL or PSLx alignment record. Coordinates are
// zero-based and half-open, as in the PSL format.
type Record struct {
	Match     int
	Mismatch  int
	RepMatch  int
	Ns        int
	QGapCount int
	QGapBases int
	TGapCount int
	TGapBases int

	Strand Strand

	QName  string
	QSize  int
	QStart int
	QEnd   int

	TName  string
	TSize  int
	TStart int
	TEnd   int

	BlockSizes []int
	QStarts    []int
	TStarts    []int

	// QSeq and TSeq hold the aligned block
	// sequences of PSLx records. They are
	// nil for plain PSL records.
	QSeq []string
	TSeq []string
}

// BlockCount returns the number of aligned blocks in the record.
func (r *Record) BlockCount() int { return len(r.BlockSizes) }

// HasSeq returns whether the record carries PSLx block sequences.
func (r *Record) HasSeq() bool { return r.QSeq != nil && r.TSeq != nil }

// Clone returns a deep copy of the record.
func (r *Record) Clone() *Record {
	c := *r
	c.BlockSizes = append([]int(nil), r.BlockSizes...)
	c.QStarts = append([]int(nil), r.QStarts...)
	c.TStarts = append([]int(nil), r.TStarts...)
	if r.QSeq != nil {
		c.QSeq = append([]string{}, r.QSeq...)
	}
	if r.TSeq != nil {
		c.TSeq = append([]string{}, r.TSeq...)
	}
	return &c
}

// String returns a string representation of the Record.
func (r *Record) String() string {
	b, err := r.MarshalText()
	if err != nil {
		return fmt.Sprintf("%%!ERROR(%v)", err)
	}
	return string(b)
}

// UnmarshalText implements the encoding.TextUnmarshaler. It parses a single
// tab-separated PSL line of 21 fields or PSLx line of 23 fields.
func (r *Record) UnmarshalText(b []byte) error {
	f := bytes.Split(b, []byte{'\t'})
	if len(f) != pslFields && len(f) != pslxFields {
		return &ParseError{Column: len(f), Err: fmt.Errorf("unexpected field count %d", len(f))}
	}

	var p fieldParser
	rec := Record{
		Match:     p.count(f, matchField),
		Mismatch:  p.count(f, mismatchField),
		RepMatch:  p.count(f, repMatchField),
		Ns:        p.count(f, nField),
		QGapCount: p.count(f, qGapCountField),
		QGapBases: p.count(f, qGapBasesField),
		TGapCount: p.count(f, tGapCountField),
		TGapBases: p.count(f, tGapBasesField),

		QName:  string(f[qNameField]),
		QSize:  p.count(f, qSizeField),
		QStart: p.count(f, qStartField),
		QEnd:   p.count(f, qEndField),

		TName:  string(f[tNameField]),
		TSize:  p.count(f, tSizeField),
		TStart: p.count(f, tStartField),
		TEnd:   p.count(f, tEndField),
	}
	if p.err != nil {
		return p.err
	}

	var err error
	rec.Strand, err = ParseStrand(f[strandField])
	if err != nil {
		return &ParseError{Column: strandField, Err: err}
	}
	if len(f[qNameField]) == 0 {
		return &ParseError{Column: qNameField, Err: errors.New("empty query name")}
	}
	if len(f[tNameField]) == 0 {
		return &ParseError{Column: tNameField, Err: errors.New("empty target name")}
	}
	if rec.QStart > rec.QEnd || rec.QEnd > rec.QSize {
		return &ParseError{Column: qEndField, Err: fmt.Errorf("query interval [%d,%d) outside query of length %d", rec.QStart, rec.QEnd, rec.QSize)}
	}
	if rec.TStart > rec.TEnd || rec.TEnd > rec.TSize {
		return &ParseError{Column: tEndField, Err: fmt.Errorf("target interval [%d,%d) outside target of length %d", rec.TStart, rec.TEnd, rec.TSize)}
	}

	n := p.count(f, blockCountField)
	if p.err == nil && n == 0 {
		return &ParseError{Column: blockCountField, Err: errors.New("zero block count")}
	}
	rec.BlockSizes = p.ints(f, blockSizesField, n)
	rec.QStarts = p.ints(f, qStartsField, n)
	rec.TStarts = p.ints(f, tStartsField, n)
	if len(f) == pslxFields {
		rec.QSeq = p.strings(f, qSeqField, n)
		rec.TSeq = p.strings(f, tSeqField, n)
	}
	if p.err != nil {
		return p.err
	}

	*r = rec
	return nil
}

// fieldParser accumulates the first error encountered while parsing
// the fields of a line.
type fieldParser struct {
	err error
}

func (p *fieldParser) fail(col int, err error) {
	if p.err == nil {
		p.err = &ParseError{Column: col, Err: err}
	}
}

func (p *fieldParser) count(f [][]byte, col int) int {
	if p.err != nil {
		return 0
	}
	v, err := strconv.Atoi(string(f[col]))
	if err != nil {
		p.fail(col, err)
		return 0
	}
	if v < 0 {
		p.fail(col, errNegative)
		return 0
	}
	return v
}

// list splits a comma-joined list, allowing a single trailing comma.
func (p *fieldParser) list(f [][]byte, col, n int) [][]byte {
	if p.err != nil {
		return nil
	}
	b := f[col]
	if len(b) != 0 && b[len(b)-1] == ',' {
		b = b[:len(b)-1]
	}
	l := bytes.Split(b, []byte{','})
	if len(l) != n {
		p.fail(col, errBlockCount)
		return nil
	}
	return l
}

func (p *fieldParser) ints(f [][]byte, col, n int) []int {
	l := p.list(f, col, n)
	if l == nil {
		return nil
	}
	v := make([]int, len(l))
	for i, e := range l {
		x, err := strconv.Atoi(string(e))
		if err != nil {
			p.fail(col, err)
			return nil
		}
		if x < 0 {
			p.fail(col, errNegative)
			return nil
		}
		v[i] = x
	}
	return v
}

func (p *fieldParser) strings(f [][]byte, col, n int) []string {
	l := p.list(f, col, n)
	if l == nil {
		return nil
	}
	v := make([]string, len(l))
	for i, e := range l {
		v[i] = string(e)
	}
	return v
}

// MarshalText implements encoding.TextMarshaler. Records holding block
// sequences are written as 23 field PSLx lines, others as 21 field PSL.
func (r *Record) MarshalText() ([]byte, error) {
	n := r.BlockCount()
	if len(r.QStarts) != n || len(r.TStarts) != n {
		return nil, fmt.Errorf("psl: %v", errBlockCount)
	}
	if r.HasSeq() && (len(r.QSeq) != n || len(r.TSeq) != n) {
		return nil, fmt.Errorf("psl: %v", errBlockCount)
	}
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "%d\t%d\t%d\t%d\t%d\t%d\t%d\t%d\t%s\t%s\t%d\t%d\t%d\t%s\t%d\t%d\t%d\t%d\t",
		r.Match, r.Mismatch, r.RepMatch, r.Ns,
		r.QGapCount, r.QGapBases, r.TGapCount, r.TGapBases,
		r.Strand,
		r.QName, r.QSize, r.QStart, r.QEnd,
		r.TName, r.TSize, r.TStart, r.TEnd,
		n,
	)
	formatInts(&buf, r.BlockSizes)
	buf.WriteByte('\t')
	formatInts(&buf, r.QStarts)
	buf.WriteByte('\t')
	formatInts(&buf, r.TStarts)
	if r.HasSeq() {
		buf.WriteByte('\t')
		formatStrings(&buf, r.QSeq)
		buf.WriteByte('\t')
		formatStrings(&buf, r.TSeq)
	}
	return buf.Bytes(), nil
}

func formatInts(buf *bytes.Buffer, v []int) {
	for _, e := range v {
		buf.WriteString(strconv.Itoa(e))
		buf.WriteByte(',')
	}
}

func formatStrings(buf *bytes.Buffer, v []string) {
	for _, e := range v {
		buf.WriteString(e)
		buf.WriteByte(',')
	}
}
