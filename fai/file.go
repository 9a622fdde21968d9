// Copyright ©2020 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fai

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"golang.org/x/exp/mmap"
)

// File is a sequence file with an FAI index. File access is implemented via mmapped
// file memory, so integer indexing limits may impact on access to large files.
type File struct {
	f   *mmap.ReaderAt
	idx Index
}

// Open opens the FASTA file at the given path for indexed retrieval. If an
// index file with the .fai suffix exists beside the FASTA file it is used,
// otherwise the index is built by scanning the sequence file.
func Open(path string) (*File, error) {
	idx, err := loadIndex(path)
	if err != nil {
		return nil, err
	}
	return OpenFile(path, idx)
}

func loadIndex(path string) (Index, error) {
	fi, err := os.Open(path + ".fai")
	if err == nil {
		defer fi.Close()
		return ReadFrom(fi)
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return NewIndex(f)
}

// OpenFile opens the sequence file at the given path and associates it with
// the specified index.
func OpenFile(path string, idx Index) (*File, error) {
	f, err := mmap.Open(path)
	if err != nil {
		return nil, err
	}
	return &File{f: f, idx: idx}, nil
}

// Close closes the sequence file and releases the index.
func (f *File) Close() error {
	err := f.f.Close()
	*f = File{}
	return err
}

// Length returns the length of the named sequence.
func (f *File) Length(name string) (int, error) {
	rec, ok := f.idx[name]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return rec.Length, nil
}

// Sequence returns the complete sequence identified by the given name,
// with line breaks removed.
func (f *File) Sequence(name string) (string, error) {
	rec, ok := f.idx[name]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	if rec.Length == 0 {
		return "", nil
	}
	end := rec.position(rec.Length-1) + 1
	if end > int64(f.f.Len()) {
		return "", fmt.Errorf("fai: sequence %q extends beyond end of file", name)
	}
	b := make([]byte, rec.Length)
	for p := 0; p < rec.Length; p += rec.BasesPerLine {
		n := min(rec.BasesPerLine, rec.Length-p)
		_, err := f.f.ReadAt(b[p:p+n], rec.position(p))
		if err != nil {
			return "", err
		}
	}
	return string(b), nil
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
