// Package viewport provides the visible coordinate interval of the sequence
// axis and the range control that moves it.
package viewport

import (
	"fmt"
	"math"
)

// Viewport is the currently visible coordinate interval along the sequence axis.
// Start is inclusive, End exclusive; a valid viewport has Start < End.
type Viewport struct {
	Start float64
	End   float64
}

// New creates a viewport spanning [start, end).
func New(start, end float64) Viewport {
	return Viewport{Start: start, End: end}
}

// Span returns End - Start.
func (v Viewport) Span() float64 {
	return v.End - v.Start
}

// Center returns the midpoint of the viewport.
func (v Viewport) Center() float64 {
	return v.Start + v.Span()/2
}

// Validate reports whether the viewport has a strictly positive, finite span.
// Zero-width viewports are rejected like negative ones.
func (v Viewport) Validate() error {
	switch {
	case math.IsNaN(v.Start) || math.IsNaN(v.End):
		return &ViewportError{Start: v.Start, End: v.End, Reason: "coordinate is NaN"}
	case math.IsInf(v.Start, 0) || math.IsInf(v.End, 0):
		return &ViewportError{Start: v.Start, End: v.End, Reason: "coordinate is infinite"}
	case v.End <= v.Start:
		return &ViewportError{Start: v.Start, End: v.End, Reason: "span is not positive"}
	}
	return nil
}

// Contains returns true if x lies within [Start, End).
func (v Viewport) Contains(x float64) bool {
	return x >= v.Start && x < v.End
}

// Overlaps returns true if the closed span [lo, hi] intersects the viewport.
func (v Viewport) Overlaps(lo, hi float64) bool {
	return hi >= v.Start && lo <= v.End
}

// FirstBase returns floor(Start), the first base touched by the viewport.
func (v Viewport) FirstBase() int {
	return int(math.Floor(v.Start))
}

// LastBase returns floor(End).
func (v Viewport) LastBase() int {
	return int(math.Floor(v.End))
}

// PixelsPerBase returns the screen distance between adjacent bases for a
// surface of the given pixel width.
func (v Viewport) PixelsPerBase(widthPx float64) float64 {
	return widthPx / v.Span()
}

// ToPixel converts a sequence coordinate to a horizontal pixel offset.
func (v Viewport) ToPixel(x, widthPx float64) float64 {
	return (x - v.Start) * v.PixelsPerBase(widthPx)
}

// FromPixel converts a horizontal pixel offset to a sequence coordinate.
func (v Viewport) FromPixel(px, widthPx float64) float64 {
	return v.Start + px/v.PixelsPerBase(widthPx)
}

// String returns a compact representation for logs.
func (v Viewport) String() string {
	return fmt.Sprintf("[%.2f, %.2f)", v.Start, v.End)
}

// Frac returns the fractional part x - floor(x). It is always in [0, 1).
func Frac(x float64) float64 {
	return x - math.Floor(x)
}
