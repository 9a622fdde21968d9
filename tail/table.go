// Copyright ©2026 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tail

import (
	"encoding/csv"
	"io"
	"strconv"
)

// Row is a single line of the output table.
type Row struct {
	Hairpin   string
	SeqNo     int
	ReadCount int
	ReadSeq   string
	RefEndPos int
	AddedSeq  string
}

// Assemble returns the output row for a.
func Assemble(a Alignment) Row {
	return Row{
		Hairpin:   a.Record.TName,
		SeqNo:     a.SeqNo,
		ReadCount: a.ReadCount,
		ReadSeq:   a.ReadSeq,
		RefEndPos: a.Record.TEnd,
		AddedSeq:  a.AddedSeq,
	}
}

// Writer writes tab-separated output tables.
type Writer struct {
	w      *csv.Writer
	refEnd bool
	rec    []string
}

// NewWriter returns a Writer to w and writes the table header. If refEnd
// is true the table includes the refEndPos column.
func NewWriter(w io.Writer, refEnd bool) (*Writer, error) {
	tw := &Writer{w: csv.NewWriter(w), refEnd: refEnd}
	tw.w.Comma = '\t'
	hdr := []string{"hairpin", "seqNo", "readCount", "readSeq", "addedSeq"}
	if refEnd {
		hdr = []string{"hairpin", "seqNo", "readCount", "readSeq", "refEndPos", "addedSeq"}
	}
	err := tw.w.Write(hdr)
	if err != nil {
		return nil, err
	}
	return tw, nil
}

// Write writes r to the table.
func (w *Writer) Write(r Row) error {
	w.rec = append(w.rec[:0], r.Hairpin, strconv.Itoa(r.SeqNo), strconv.Itoa(r.ReadCount), r.ReadSeq)
	if w.refEnd {
		w.rec = append(w.rec, strconv.Itoa(r.RefEndPos))
	}
	w.rec = append(w.rec, r.AddedSeq)
	return w.w.Write(w.rec)
}

// Flush writes any buffered data to the underlying io.Writer.
func (w *Writer) Flush() error {
	w.w.Flush()
	return w.w.Error()
}
