// Copyright ©2026 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package xopen opens possibly compressed input and output streams.
package xopen

import (
	"bufio"
	"bytes"
	"compress/gzip"
	"errors"
	"io"
	"os"
	"strings"
	"syscall"

	"github.com/biogo/hts/bgzf"
	"github.com/ulikunitz/xz"
)

// Std is the path naming the standard input or output stream.
const Std = "-"

var (
	gzipMagic = []byte{0x1f, 0x8b}
	xzMagic   = []byte{0xfd, '7', 'z', 'X', 'Z', 0x00}
)

// isBGZF returns whether h begins a gzip member carrying the BGZF
// block size extra field.
func isBGZF(h []byte) bool {
	const fextra = 1 << 2
	return len(h) >= 14 && bytes.HasPrefix(h, gzipMagic) && h[3]&fextra != 0 && h[12] == 'B' && h[13] == 'C'
}

// Open opens the file at path for reading. BGZF, gzip and xz compressed
// files are decompressed transparently, detected by their magic numbers.
// The path "-" is the standard input.
func Open(path string) (io.ReadCloser, error) {
	var f io.ReadCloser
	if path == Std {
		f = io.NopCloser(os.Stdin)
	} else {
		var err error
		f, err = os.Open(path)
		if err != nil {
			return nil, err
		}
	}
	br := bufio.NewReader(f)
	h, err := br.Peek(18)
	if err != nil && err != io.EOF {
		f.Close()
		return nil, err
	}

	var r io.Reader
	closers := []io.Closer{f}
	switch {
	case isBGZF(h):
		bg, err := bgzf.NewReader(br, 1)
		if err != nil {
			f.Close()
			return nil, err
		}
		r = bg
		closers = append([]io.Closer{bg}, closers...)
	case bytes.HasPrefix(h, gzipMagic):
		gz, err := gzip.NewReader(br)
		if err != nil {
			f.Close()
			return nil, err
		}
		r = gz
		closers = append([]io.Closer{gz}, closers...)
	case bytes.HasPrefix(h, xzMagic):
		xr, err := xz.NewReader(br)
		if err != nil {
			f.Close()
			return nil, err
		}
		r = xr
	default:
		r = br
	}
	return &multiReadCloser{Reader: r, closers: closers}, nil
}

// multiReadCloser closes multiple io.Closers in order when Close is called.
type multiReadCloser struct {
	io.Reader
	closers []io.Closer
}

func (m *multiReadCloser) Close() error {
	var err error
	for _, c := range m.closers {
		if cerr := c.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}

// Create creates the file at path for buffered writing. Paths with a
// .gz suffix are written BGZF compressed. The path "-" is the standard
// output, which is not closed by Close.
func Create(path string) (io.WriteCloser, error) {
	var (
		f       io.Writer
		closers []io.Closer
	)
	if path == Std {
		f = os.Stdout
	} else {
		fh, err := os.Create(path)
		if err != nil {
			return nil, err
		}
		f = fh
		closers = append(closers, fh)
	}
	if strings.HasSuffix(path, ".gz") {
		bg := bgzf.NewWriter(f, 1)
		f = bg
		closers = append([]io.Closer{bg}, closers...)
	}
	return &bufWriteCloser{Writer: bufio.NewWriter(f), closers: closers}, nil
}

type bufWriteCloser struct {
	*bufio.Writer
	closers []io.Closer
}

func (b *bufWriteCloser) Close() error {
	err := b.Flush()
	for _, c := range b.closers {
		if cerr := c.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}

// IsBrokenPipe reports whether err is a broken or closed pipe, as happens
// when a downstream consumer such as head exits early.
func IsBrokenPipe(err error) bool {
	return err != nil && (errors.Is(err, syscall.EPIPE) || errors.Is(err, io.ErrClosedPipe))
}
