package glyph

import (
	"errors"
	"fmt"
)

// ErrUnsortedGlyphs indicates records that are not in ascending start order.
var ErrUnsortedGlyphs = errors.New("glyphs not sorted by start")

// OrderError reports the first record out of order.
type OrderError struct {
	Index int
	Prev  float64
	Start float64
}

// Error implements the error interface.
func (e *OrderError) Error() string {
	return fmt.Sprintf("glyph %d starts at %g before previous start %g", e.Index, e.Start, e.Prev)
}

// Unwrap returns ErrUnsortedGlyphs.
func (e *OrderError) Unwrap() error {
	return ErrUnsortedGlyphs
}

// Validate checks that records are sorted by ascending span start.
// It is meant to run once when a track is loaded, not per viewport change.
func Validate(records []Record) error {
	for i := 1; i < len(records); i++ {
		prev, _ := records[i-1].Span()
		start, _ := records[i].Span()
		if start < prev {
			return &OrderError{Index: i, Prev: prev, Start: start}
		}
	}
	return nil
}
