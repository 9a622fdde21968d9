// Copyright ©2026 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package psl

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/kortschak/utter"
	"gopkg.in/check.v1"
)

func Test(t *testing.T) { check.TestingT(t) }

type S struct{}

var _ = check.Suite(&S{})

const (
	pslxLine = "19\t2\t0\t0\t1\t2\t0\t0\t+\t5-2\t25\t0\t23\tmmu-mir-1a-1\t71\t10\t31\t2\t10,11,\t0,12,\t10,20,\tACGTACGTAC,GTACGTACGAA,\tACGTACGTAC,GTACGTACGGG,"
	pslLine  = "21\t0\t0\t0\t0\t0\t0\t0\t-\t7-1\t21\t0\t21\tmmu-let-7a-1\t94\t3\t24\t1\t21,\t0,\t3,"
)

var pslxRecord = &Record{
	Match: 19, Mismatch: 2, QGapCount: 1, QGapBases: 2,
	Strand: Forward,
	QName:  "5-2", QSize: 25, QStart: 0, QEnd: 23,
	TName: "mmu-mir-1a-1", TSize: 71, TStart: 10, TEnd: 31,
	BlockSizes: []int{10, 11},
	QStarts:    []int{0, 12},
	TStarts:    []int{10, 20},
	QSeq:       []string{"ACGTACGTAC", "GTACGTACGAA"},
	TSeq:       []string{"ACGTACGTAC", "GTACGTACGGG"},
}

func (s *S) TestUnmarshalText(c *check.C) {
	var r Record
	err := r.UnmarshalText([]byte(pslxLine))
	c.Assert(err, check.Equals, nil)
	c.Check(&r, check.DeepEquals, pslxRecord, check.Commentf("got:\n%s", utter.Sdump(r)))
	c.Check(r.HasSeq(), check.Equals, true)
	c.Check(r.BlockCount(), check.Equals, 2)

	err = r.UnmarshalText([]byte(pslLine))
	c.Assert(err, check.Equals, nil)
	c.Check(r.Strand, check.Equals, Reverse)
	c.Check(r.HasSeq(), check.Equals, false)
	c.Check(r.BlockSizes, check.DeepEquals, []int{21})
}

func (s *S) TestMarshalText(c *check.C) {
	for _, line := range []string{pslxLine, pslLine} {
		var r Record
		c.Assert(r.UnmarshalText([]byte(line)), check.Equals, nil)
		b, err := r.MarshalText()
		c.Assert(err, check.Equals, nil)
		c.Check(string(b), check.Equals, line)
	}
}

func (s *S) TestUnmarshalTextErrors(c *check.C) {
	replace := func(col int, v string) string {
		f := strings.Split(pslxLine, "\t")
		f[col] = v
		return strings.Join(f, "\t")
	}
	for _, test := range []struct {
		line   string
		column int
	}{
		{line: "1\t2\t3", column: 3},
		{line: pslxLine + "\textra", column: 24},
		{line: replace(matchField, "x"), column: matchField},
		{line: replace(mismatchField, "-1"), column: mismatchField},
		{line: replace(strandField, "++"), column: strandField},
		{line: replace(strandField, "."), column: strandField},
		{line: replace(qNameField, ""), column: qNameField},
		{line: replace(qEndField, "26"), column: qEndField},
		{line: replace(tStartField, "32"), column: tEndField},
		{line: replace(blockCountField, "0"), column: blockCountField},
		{line: replace(blockCountField, "3"), column: blockSizesField},
		{line: replace(qStartsField, "0,x,"), column: qStartsField},
		{line: replace(tSeqField, "ACGTACGTAC,"), column: tSeqField},
	} {
		var r Record
		err := r.UnmarshalText([]byte(test.line))
		var pe *ParseError
		if !errors.As(err, &pe) {
			c.Errorf("expected parse error for %q, got: %v", test.line, err)
			continue
		}
		c.Check(pe.Column, check.Equals, test.column, check.Commentf("line %q: %v", test.line, err))
	}
}

func (s *S) TestClone(c *check.C) {
	cl := pslxRecord.Clone()
	c.Check(cl, check.DeepEquals, pslxRecord)
	cl.BlockSizes[1] = 9
	cl.QSeq[1] = "GTACGTACG"
	c.Check(pslxRecord.BlockSizes[1], check.Equals, 11)
	c.Check(pslxRecord.QSeq[1], check.Equals, "GTACGTACGAA")
}

const psLayoutHeader = `psLayout version 3

match	mis- 	rep. 	N's	Q gap	Q gap	T gap	T gap	strand	Q        	Q   	Q    	Q  	T        	T   	T    	T  	block	blockSizes 	qStarts	 tStarts
     	match	match	   	count	bases	count	bases	      	name     	size	start	end	name     	size	start	end	count
---------------------------------------------------------------------------------------------------------------------------------------------------------------
`

func (s *S) TestReader(c *check.C) {
	for _, in := range []string{
		pslxLine + "\n" + pslLine + "\n",
		pslxLine + "\r\n\n" + pslLine,
		psLayoutHeader + pslxLine + "\n" + pslLine + "\n",
	} {
		r, err := NewReader(strings.NewReader(in))
		c.Assert(err, check.Equals, nil)
		recs, err := ReadAll(r)
		c.Assert(err, check.Equals, nil)
		c.Assert(recs, check.HasLen, 2)
		c.Check(recs[0], check.DeepEquals, pslxRecord)
		c.Check(recs[1].QName, check.Equals, "7-1")
	}
}

func (s *S) TestReaderEmpty(c *check.C) {
	r, err := NewReader(strings.NewReader(""))
	c.Assert(err, check.Equals, nil)
	_, err = r.Read()
	c.Check(err, check.Equals, io.EOF)
}

func (s *S) TestReaderTruncatedHeader(c *check.C) {
	_, err := NewReader(strings.NewReader("psLayout version 3\n\nmatch\n"))
	c.Check(err, check.Equals, io.ErrUnexpectedEOF)
}

func (s *S) TestReaderParseErrorLine(c *check.C) {
	in := pslxLine + "\n" + strings.Replace(pslLine, "\t-\t", "\t*\t", 1) + "\n"
	r, err := NewReader(strings.NewReader(in))
	c.Assert(err, check.Equals, nil)
	_, err = ReadAll(r)
	var pe *ParseError
	c.Assert(errors.As(err, &pe), check.Equals, true)
	c.Check(pe.Line, check.Equals, 2)
	c.Check(pe.Column, check.Equals, strandField)
}

func (s *S) TestWriter(c *check.C) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	c.Assert(w.Write(pslxRecord), check.Equals, nil)
	c.Check(buf.String(), check.Equals, pslxLine+"\n")

	bad := pslxRecord.Clone()
	bad.QSeq = bad.QSeq[:1]
	c.Check(w.Write(bad), check.Not(check.Equals), nil)
}
