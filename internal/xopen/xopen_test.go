// Copyright ©2026 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xopen

import (
	"bytes"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"syscall"
	"testing"

	"github.com/biogo/hts/bgzf"
	"github.com/ulikunitz/xz"
)

const content = "19\t2\t0\t0\t1\t2\t0\t0\t+\t5-2\t25\t0\t23\tmmu-mir-1a-1\t71\t10\t31\n"

func TestOpen(t *testing.T) {
	dir := t.TempDir()
	for _, test := range []struct {
		name     string
		compress func(io.Writer) (io.WriteCloser, error)
	}{
		{
			name:     "plain.psl",
			compress: func(w io.Writer) (io.WriteCloser, error) { return nopWriteCloser{w}, nil },
		},
		{
			name:     "gzip.psl.gz",
			compress: func(w io.Writer) (io.WriteCloser, error) { return gzip.NewWriter(w), nil },
		},
		{
			name:     "bgzf.psl.gz",
			compress: func(w io.Writer) (io.WriteCloser, error) { return bgzf.NewWriter(w, 1), nil },
		},
		{
			name:     "xz.psl.xz",
			compress: func(w io.Writer) (io.WriteCloser, error) { return xz.NewWriter(w) },
		},
		{
			name:     "empty.psl",
			compress: nil,
		},
	} {
		path := filepath.Join(dir, test.name)
		var buf bytes.Buffer
		want := ""
		if test.compress != nil {
			w, err := test.compress(&buf)
			if err != nil {
				t.Fatalf("unexpected error creating %s: %v", test.name, err)
			}
			_, err = io.WriteString(w, content)
			if err != nil {
				t.Fatalf("unexpected error writing %s: %v", test.name, err)
			}
			err = w.Close()
			if err != nil {
				t.Fatalf("unexpected error closing %s: %v", test.name, err)
			}
			want = content
		}
		err := os.WriteFile(path, buf.Bytes(), 0o644)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		r, err := Open(path)
		if err != nil {
			t.Errorf("unexpected error opening %s: %v", test.name, err)
			continue
		}
		got, err := io.ReadAll(r)
		if err != nil {
			t.Errorf("unexpected error reading %s: %v", test.name, err)
		}
		if string(got) != want {
			t.Errorf("unexpected content for %s: got:%q want:%q", test.name, got, want)
		}
		err = r.Close()
		if err != nil {
			t.Errorf("unexpected error closing %s: %v", test.name, err)
		}
	}
}

func TestOpenMissing(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "missing.psl"))
	if !os.IsNotExist(err) {
		t.Errorf("expected not exist error, got: %v", err)
	}
}

func TestCreate(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"out.tsv", "out.tsv.gz"} {
		path := filepath.Join(dir, name)
		w, err := Create(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		_, err = io.WriteString(w, content)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		err = w.Close()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		raw, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if compressed := isBGZF(raw); compressed != (filepath.Ext(name) == ".gz") {
			t.Errorf("unexpected compression state for %s: %t", name, compressed)
		}

		r, err := Open(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		got, err := io.ReadAll(r)
		r.Close()
		if err != nil {
			t.Errorf("unexpected error: %v", err)
		}
		if string(got) != content {
			t.Errorf("unexpected round trip content for %s: got:%q want:%q", name, got, content)
		}
	}
}

func TestIsBrokenPipe(t *testing.T) {
	for _, test := range []struct {
		err  error
		want bool
	}{
		{err: nil, want: false},
		{err: io.EOF, want: false},
		{err: syscall.EPIPE, want: true},
		{err: fmt.Errorf("write output: %w", syscall.EPIPE), want: true},
		{err: &os.PathError{Op: "write", Path: "/dev/stdout", Err: syscall.EPIPE}, want: true},
		{err: io.ErrClosedPipe, want: true},
	} {
		if got := IsBrokenPipe(test.err); got != test.want {
			t.Errorf("unexpected result for %v: got:%t want:%t", test.err, got, test.want)
		}
	}
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }
