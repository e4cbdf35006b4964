// Package glyph turns annotated features into renderable glyph records.
//
// A record carries the polygon of its glyph (an arrow for stranded features
// such as genes, a box for regions), its colour and its label placement.
// Records are kept sorted by ascending start so that the window manager can
// slice them by index.
package glyph

import (
	"fmt"
	"strings"
)

// Strand is the orientation of a feature on the sequence.
type Strand int8

const (
	StrandNone    Strand = 0
	StrandForward Strand = 1
	StrandReverse Strand = -1
)

// ParseStrand converts "+", "-" or "." to a Strand.
func ParseStrand(s string) (Strand, error) {
	switch strings.TrimSpace(s) {
	case "+", "1":
		return StrandForward, nil
	case "-", "-1":
		return StrandReverse, nil
	case ".", "", "0":
		return StrandNone, nil
	default:
		return StrandNone, fmt.Errorf("invalid strand %q", s)
	}
}

// String returns the strand symbol.
func (s Strand) String() string {
	switch s {
	case StrandForward:
		return "+"
	case StrandReverse:
		return "-"
	default:
		return "."
	}
}

// Feature is one annotated interval of the sequence.
// Left < Right regardless of strand.
type Feature struct {
	Left   int
	Right  int
	Strand Strand
	Type   string
	Name   string
}

// Size returns the feature length in bases.
func (f Feature) Size() int {
	return f.Right - f.Left
}

// Middle returns the feature midpoint.
func (f Feature) Middle() float64 {
	return float64(f.Left+f.Right) / 2
}

// Start returns the strand-aware start: Right for reverse features.
func (f Feature) Start() int {
	if f.Strand == StrandReverse {
		return f.Right
	}
	return f.Left
}

// End returns the strand-aware end: Left for reverse features.
func (f Feature) End() int {
	if f.Strand == StrandReverse {
		return f.Left
	}
	return f.Right
}
