// Copyright ©2026 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package fasta implements sequential FASTA reading and name based
// sequence lookup over FASTA streams.
package fasta

import (
	"errors"
	"fmt"
	"io"

	"github.com/biogo/biogo/alphabet"
	bfasta "github.com/biogo/biogo/io/seqio/fasta"
	"github.com/biogo/biogo/seq/linear"
)

// ErrNotFound is returned when a requested sequence is not present.
var ErrNotFound = errors.New("fasta: no sequence")

// Record is a single FASTA sequence. Name is the first whitespace
// delimited word of the description line.
type Record struct {
	Name string
	Seq  []byte
}

// Reader implements FASTA format reading. Sequence letters are
// returned unaltered; line breaks and white space are removed.
type Reader struct {
	r   *bfasta.Reader
	err error
}

// NewReader returns a new Reader, reading from the given io.Reader.
func NewReader(r io.Reader) *Reader {
	return &Reader{r: bfasta.NewReader(r, linear.NewSeq("", nil, alphabet.DNA))}
}

// Read returns the next Record in the FASTA stream. At the end of the
// stream Read returns io.EOF. Errors are sticky.
func (r *Reader) Read() (*Record, error) {
	if r.err != nil {
		return nil, r.err
	}
	s, err := r.r.Read()
	if err != nil {
		r.err = err
		return nil, err
	}
	ls, ok := s.(*linear.Seq)
	if !ok {
		r.err = fmt.Errorf("fasta: unexpected sequence type %T", s)
		return nil, r.err
	}
	if ls.Name() == "" {
		r.err = errors.New("fasta: missing sequence name")
		return nil, r.err
	}
	b := make([]byte, len(ls.Seq))
	for i, l := range ls.Seq {
		b[i] = byte(l)
	}
	return &Record{Name: ls.Name(), Seq: b}, nil
}

// Cursor provides forward-only lookup of sequences by name over a FASTA
// stream. Names passed to Sequence must arrive in the order the records
// appear in the stream; the same name may be requested repeatedly. Records
// passed over are discarded, so memory use is bounded by the largest
// record.
type Cursor struct {
	r   *Reader
	cur *Record
	err error
}

// NewCursor returns a Cursor reading from r.
func NewCursor(r io.Reader) *Cursor {
	return &Cursor{r: NewReader(r)}
}

// Sequence advances the cursor to the record with the given name and
// returns its sequence. If the stream is exhausted before the name is
// found, an error wrapping ErrNotFound is returned and all subsequent
// lookups will fail.
func (c *Cursor) Sequence(name string) (string, error) {
	for {
		if c.cur != nil && c.cur.Name == name {
			return string(c.cur.Seq), nil
		}
		if c.err != nil {
			if c.err == io.EOF {
				return "", fmt.Errorf("%w: %q", ErrNotFound, name)
			}
			return "", c.err
		}
		c.cur, c.err = c.r.Read()
	}
}

// Map is a materialized name to sequence mapping.
type Map map[string]string

// ReadMap reads all records from r into a Map. Duplicate names are an error.
func ReadMap(r io.Reader) (Map, error) {
	m := make(Map)
	fr := NewReader(r)
	for {
		rec, err := fr.Read()
		if err == io.EOF {
			return m, nil
		}
		if err != nil {
			return nil, err
		}
		if _, exists := m[rec.Name]; exists {
			return nil, fmt.Errorf("fasta: duplicate sequence identifier %s", rec.Name)
		}
		m[rec.Name] = string(rec.Seq)
	}
}

// Sequence returns the sequence with the given name.
func (m Map) Sequence(name string) (string, error) {
	s, ok := m[name]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return s, nil
}
