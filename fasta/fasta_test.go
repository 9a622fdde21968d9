// Copyright ©2026 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fasta

import (
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

const reads = `>1-120
TGGAATGTAAAGAAGTATGTATAA
>2-57 sample=ovary
UAGCAGCACGUAAAUAUUGGCG
ttt

>3-9
TGAGGTAGTAGGTTGTATAGTT
>5-2
ACGTACGTACGTACGTACGTAAAA
`

func (s *S) TestReader(c *check.C) {
	r := NewReader(strings.NewReader(reads))
	var got []*Record
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		c.Assert(err, check.Equals, nil)
		got = append(got, rec)
	}
	want := []*Record{
		{Name: "1-120", Seq: []byte("TGGAATGTAAAGAAGTATGTATAA")},
		{Name: "2-57", Seq: []byte("UAGCAGCACGUAAAUAUUGGCGttt")},
		{Name: "3-9", Seq: []byte("TGAGGTAGTAGGTTGTATAGTT")},
		{Name: "5-2", Seq: []byte("ACGTACGTACGTACGTACGTAAAA")},
	}
	c.Check(got, check.DeepEquals, want, check.Commentf("got:\n%s", utter.Sdump(got)))
}

func (s *S) TestReaderUnterminated(c *check.C) {
	r := NewReader(strings.NewReader(">a\nAC\nGT"))
	rec, err := r.Read()
	c.Assert(err, check.Equals, nil)
	c.Check(string(rec.Seq), check.Equals, "ACGT")
	_, err = r.Read()
	c.Check(err, check.Equals, io.EOF)

	r = NewReader(strings.NewReader(">a"))
	rec, err = r.Read()
	c.Assert(err, check.Equals, nil)
	c.Check(rec.Name, check.Equals, "a")
	c.Check(rec.Seq, check.HasLen, 0)
}

func (s *S) TestReaderErrors(c *check.C) {
	for _, test := range []struct {
		in  string
		err string
	}{
		{in: "ACGT\n>a\nACGT\n", err: "fasta: .*line 1"},
		{in: ">a\nACGT\n>  \nACGT\n", err: "fasta: missing sequence name"},
	} {
		r := NewReader(strings.NewReader(test.in))
		var err error
		for err == nil {
			_, err = r.Read()
		}
		c.Check(err, check.ErrorMatches, test.err)
	}
}

func (s *S) TestCursor(c *check.C) {
	cur := NewCursor(strings.NewReader(reads))
	for _, test := range []struct {
		name string
		want string
	}{
		{name: "1-120", want: "TGGAATGTAAAGAAGTATGTATAA"},
		{name: "1-120", want: "TGGAATGTAAAGAAGTATGTATAA"},
		{name: "3-9", want: "TGAGGTAGTAGGTTGTATAGTT"},
		{name: "5-2", want: "ACGTACGTACGTACGTACGTAAAA"},
	} {
		got, err := cur.Sequence(test.name)
		c.Check(err, check.Equals, nil)
		c.Check(got, check.Equals, test.want)
	}
}

func (s *S) TestCursorNotFound(c *check.C) {
	cur := NewCursor(strings.NewReader(reads))
	_, err := cur.Sequence("3-9")
	c.Assert(err, check.Equals, nil)

	// Passed over names are not revisited.
	_, err = cur.Sequence("2-57")
	c.Check(errors.Is(err, ErrNotFound), check.Equals, true)
	_, err = cur.Sequence("5-2")
	c.Check(errors.Is(err, ErrNotFound), check.Equals, true)
}

func (s *S) TestMap(c *check.C) {
	m, err := ReadMap(strings.NewReader(reads))
	c.Assert(err, check.Equals, nil)
	c.Check(m, check.HasLen, 4)
	got, err := m.Sequence("2-57")
	c.Check(err, check.Equals, nil)
	c.Check(got, check.Equals, "UAGCAGCACGUAAAUAUUGGCGttt")
	_, err = m.Sequence("4-1")
	c.Check(errors.Is(err, ErrNotFound), check.Equals, true)

	_, err = ReadMap(strings.NewReader(">a\nAC\n>a\nGT\n"))
	c.Check(err, check.ErrorMatches, "fasta: duplicate sequence identifier a")
}
