// Copyright ©2026 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package psl implements PSL and PSLx alignment file reading and writing.
// The PSL format is described in the UCSC genome browser documentation.
//
// https://genome.ucsc.edu/FAQ/FAQformat.html#format2
package psl

import (
	"bufio"
	"bytes"
	"io"
)

// psLayoutMagic is the first token of the optional BLAT header.
var psLayoutMagic = []byte("psLayout")

// Reader implements PSL format reading.
type Reader struct {
	r    *bufio.Reader
	line int
}

// NewReader returns a new Reader, reading from the given io.Reader. If the
// stream begins with a psLayout header, the header is consumed.
func NewReader(r io.Reader) (*Reader, error) {
	pr := &Reader{r: bufio.NewReader(r)}

	p, err := pr.r.Peek(len(psLayoutMagic))
	if err != nil && err != io.EOF {
		return nil, err
	}
	if !bytes.Equal(p, psLayoutMagic) {
		return pr, nil
	}

	// The header ends with a line made only of dashes.
	for {
		l, err := pr.r.ReadBytes('\n')
		pr.line++
		if err != nil {
			return nil, io.ErrUnexpectedEOF
		}
		l = bytes.TrimSpace(l)
		if len(l) != 0 && len(bytes.Trim(l, "-")) == 0 {
			break
		}
	}
	return pr, nil
}

// Read returns the next psl.Record in the PSL stream. Blank lines are
// skipped. Malformed lines are reported as a *ParseError.
func (r *Reader) Read() (*Record, error) {
	for {
		b, err := r.r.ReadBytes('\n')
		if len(b) == 0 {
			return nil, err
		}
		r.line++
		b = bytes.TrimRight(b, "\r\n")
		if len(b) == 0 {
			if err != nil {
				return nil, err
			}
			continue
		}
		var rec Record
		perr := rec.UnmarshalText(b)
		if perr != nil {
			if pe, ok := perr.(*ParseError); ok {
				pe.Line = r.line
			}
			return nil, perr
		}
		return &rec, nil
	}
}

// RecordReader wraps types that can read PSL Records.
type RecordReader interface {
	Read() (*Record, error)
}

// ReadAll reads every Record from r until io.EOF, returning the records in
// stream order.
func ReadAll(r RecordReader) ([]*Record, error) {
	var recs []*Record
	it := NewIterator(r)
	for it.Next() {
		recs = append(recs, it.Record())
	}
	return recs, it.Error()
}

// Iterator wraps a Reader to provide a convenient loop interface for reading PSL data.
// Successive calls to the Next method will step through the records of the provided
// Reader. Iteration stops unrecoverably at EOF or the first error.
type Iterator struct {
	r   RecordReader
	rec *Record
	err error
}

// NewIterator returns an Iterator to read from r.
//
//  it := NewIterator(r)
//  for it.Next() {
//  	fn(it.Record())
//  }
//  return it.Error()
//
func NewIterator(r RecordReader) *Iterator { return &Iterator{r: r} }

// Next advances the Iterator past the next record, which will then be available through
// the Record method. It returns false when the iteration stops, either by reaching the end of the
// input or an error. After Next returns false, the Error method will return any error that
// occurred during iteration, except that if it was io.EOF, Error will return nil.
func (i *Iterator) Next() bool {
	if i.err != nil {
		return false
	}
	i.rec, i.err = i.r.Read()
	return i.err == nil
}

// Error returns the first non-EOF error that was encountered by the Iterator.
func (i *Iterator) Error() error {
	if i.err == io.EOF {
		return nil
	}
	return i.err
}

// Record returns the most recent record read by a call to Next.
func (i *Iterator) Record() *Record { return i.rec }

// Writer implements PSL format writing. No psLayout header is written.
type Writer struct {
	w io.Writer
}

// NewWriter returns a Writer to the given io.Writer.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Write writes r to the PSL stream.
func (w *Writer) Write(r *Record) error {
	b, err := r.MarshalText()
	if err != nil {
		return err
	}
	b = append(b, '\n')
	_, err = w.w.Write(b)
	return err
}
