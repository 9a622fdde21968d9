// Copyright ©2026 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package psl

import "fmt"

// A Strand represents the query strand of a PSL alignment.
type Strand int8

const (
	Forward Strand = 1  // The query aligns to the forward strand of the target.
	Reverse Strand = -1 // The query aligns to the reverse strand of the target.
)

// ParseStrand returns the Strand encoded by b. Only the single character
// forms "+" and "-" are accepted.
func ParseStrand(b []byte) (Strand, error) {
	if len(b) == 1 {
		switch b[0] {
		case '+':
			return Forward, nil
		case '-':
			return Reverse, nil
		}
	}
	return 0, fmt.Errorf("psl: invalid strand %q", b)
}

// String returns the PSL representation of the strand.
func (s Strand) String() string {
	switch s {
	case Forward:
		return "+"
	case Reverse:
		return "-"
	}
	return "?"
}
