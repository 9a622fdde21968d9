// Copyright ©2013 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package fai implements FAI fasta sequence file index handling and
// indexed retrieval of reference sequences.
package fai

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
)

const (
	nameField = iota
	lengthField
	startField
	basesField
	bytesField
)

var (
	// ErrNonUnique is returned when an index holds a name more than once.
	ErrNonUnique = errors.New("non-unique record name")

	// ErrNotFound is returned when a sequence name is absent from an index.
	ErrNotFound = errors.New("fai: no sequence")
)

// Index is an FAI index.
type Index map[string]Record

// NewIndex returns a new Index constructed from the FASTA sequence
// in the provided io.Reader. All lines of a sequence except the last
// must have the same length.
func NewIndex(fasta io.Reader) (Index, error) {
	br := bufio.NewReader(fasta)
	idx := make(Index)
	var (
		rec    Record
		offset int64

		// short is set when a line shorter than the
		// record's line width has been seen; only a
		// description line may follow it.
		short bool
	)
	add := func() {
		if rec.Name != "" {
			idx[rec.Name] = rec
		}
		rec = Record{}
	}
	for {
		raw, err := br.ReadBytes('\n')
		if len(raw) == 0 && err != nil {
			if err == io.EOF {
				break
			}
			return nil, err
		}
		line := bytes.TrimSpace(raw)
		switch {
		case len(line) == 0:
			switch {
			case rec.Length != 0:
				short = true
			case rec.Name != "":
				// Blank lines before the first sequence line.
				rec.Start = offset + int64(len(raw))
			}
		case line[0] == '>':
			add()
			name := bytes.Fields(line[1:])
			if len(name) == 0 {
				return nil, fmt.Errorf("fai: missing sequence name at %d", offset)
			}
			rec.Name = string(name[0])
			if _, exists := idx[rec.Name]; exists {
				return nil, fmt.Errorf("fai: duplicate sequence identifier %s at %d", rec.Name, offset)
			}
			rec.Start = offset + int64(len(raw))
			short = false
		default:
			if short {
				return nil, fmt.Errorf("fai: unexpected short line before offset %d", offset)
			}
			if rec.BytesPerLine == 0 {
				rec.BytesPerLine = len(raw)
				rec.BasesPerLine = len(line)
			}
			switch {
			case len(raw) > rec.BytesPerLine, len(line) > rec.BasesPerLine:
				return nil, fmt.Errorf("fai: unexpected long line at offset %d", offset)
			case len(raw) < rec.BytesPerLine, len(line) < rec.BasesPerLine:
				short = true
			}
			rec.Length += len(line)
		}
		offset += int64(len(raw))
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
	}
	add()
	return idx, nil
}

// Record is a single FAI index record.
type Record struct {
	// Name is the name of the sequence.
	Name string
	// Length is the length of the sequence.
	Length int
	// Start is the starting seek offset of
	// the sequence.
	Start int64
	// BasesPerLine is the number of sequences
	// bases per line.
	BasesPerLine int
	// BytesPerLine is the number of bytes
	// used to represent each line.
	BytesPerLine int
}

// position returns the seek offset of the sequence position p.
func (r Record) position(p int) int64 {
	return r.Start + int64(p/r.BasesPerLine*r.BytesPerLine+p%r.BasesPerLine)
}

// ReadFrom returns an Index from the stream provided by an io.Reader or an error. If the input
// contains non-unique records the error is a csv.ParseError identifying the second non-unique
// record.
func ReadFrom(r io.Reader) (Index, error) {
	tr := csv.NewReader(r)
	tr.Comma = '\t'
	tr.FieldsPerRecord = 5
	var idx Index
	for line := 1; ; line++ {
		f, err := tr.Read()
		if err == io.EOF {
			return idx, nil
		}
		if err != nil {
			return nil, err
		}
		if idx == nil {
			idx = make(Index)
		} else if _, exists := idx[f[nameField]]; exists {
			return nil, parseError(line, nameField, ErrNonUnique)
		}
		rec := Record{Name: f[nameField]}
		for _, col := range []struct {
			field int
			dst   *int
		}{
			{lengthField, &rec.Length},
			{basesField, &rec.BasesPerLine},
			{bytesField, &rec.BytesPerLine},
		} {
			*col.dst, err = strconv.Atoi(f[col.field])
			if err != nil {
				return nil, parseError(line, col.field, err)
			}
		}
		rec.Start, err = strconv.ParseInt(f[startField], 10, 64)
		if err != nil {
			return nil, parseError(line, startField, err)
		}
		idx[rec.Name] = rec
	}
}

func parseError(line, column int, err error) *csv.ParseError {
	return &csv.ParseError{
		StartLine: line,
		Line:      line,
		Column:    column,
		Err:       err,
	}
}
