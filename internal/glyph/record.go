package glyph

import (
	"math"
	"sort"
)

// Record is one renderable glyph.
type Record struct {
	// XS and YS are the polygon vertices in sequence and track units.
	XS []float64
	YS []float64

	// XBoxMin is the left edge of the glyph body, excluding an arrow head
	// pointing left.
	XBoxMin float64

	Shape Shape
	Color string
	Alpha float64

	Name   string
	Label  string
	Type   string
	Strand Strand

	// Pos is the feature midpoint; labels are centred on it.
	Pos    float64
	LabelX float64
	LabelY float64
}

// Span returns the minimum and maximum x of the polygon.
func (r Record) Span() (lo, hi float64) {
	if len(r.XS) == 0 {
		return 0, 0
	}
	lo, hi = r.XS[0], r.XS[0]
	for _, x := range r.XS[1:] {
		lo = math.Min(lo, x)
		hi = math.Max(hi, x)
	}
	return lo, hi
}

// ArrowCoordinates returns the five-point arrow polygon for f.
// The head points towards the strand-aware end and is at most MaxArrowHead long.
func ArrowCoordinates(f Feature, height float64) (xs, ys []float64, xBoxMin float64) {
	head := float64(min(f.Size(), MaxArrowHead))
	start, end := float64(f.Start()), float64(f.End())

	var base float64
	if f.Strand == StrandReverse {
		base = end + head
		xBoxMin = base
	} else {
		base = end - head
		xBoxMin = start
	}

	yMin, yMax := yBounds(height)
	xs = []float64{start, start, base, end, base}
	ys = []float64{yMin, yMax, yMax, (yMin + yMax) / 2, yMin}
	return xs, ys, xBoxMin
}

// BoxCoordinates returns the four-point box polygon for f.
func BoxCoordinates(f Feature, height float64) (xs, ys []float64, xBoxMin float64) {
	left, right := float64(f.Left), float64(f.Right)
	yMin, yMax := yBounds(height)
	xs = []float64{left, left, right, right}
	ys = []float64{yMin, yMax, yMax, yMin}
	return xs, ys, left
}

func yBounds(height float64) (yMin, yMax float64) {
	offset := FeatureHeight * (1 - height) / 2
	return TrackBase + offset, TrackBase + FeatureHeight - offset
}

// NewRecord builds the glyph record for f using style st.
func NewRecord(f Feature, st Style) Record {
	var xs, ys []float64
	var xBoxMin float64
	if st.Shape == ShapeBox {
		xs, ys, xBoxMin = BoxCoordinates(f, st.Height)
	} else {
		xs, ys, xBoxMin = ArrowCoordinates(f, st.Height)
	}

	r := Record{
		XS:      xs,
		YS:      ys,
		XBoxMin: xBoxMin,
		Shape:   st.Shape,
		Color:   st.ColorFor(f.Strand),
		Alpha:   st.Alpha,
		Name:    f.Name,
		Type:    f.Type,
		Strand:  f.Strand,
		Pos:     f.Middle(),
	}
	if st.ShowName {
		r.Label = f.Name
	}
	r.LabelX = r.Pos
	r.LabelY = minOf(ys) + FeatureHeight + LabelVerticalOffset
	return r
}

// Build converts features to records sorted by ascending span start.
// The input slice is not modified.
func Build(features []Feature, styles Styles) []Record {
	sorted := make([]Feature, len(features))
	copy(sorted, features)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Left < sorted[j].Left
	})

	records := make([]Record, len(sorted))
	for i, f := range sorted {
		records[i] = NewRecord(f, styles.Lookup(f.Type))
	}
	return records
}

func minOf(vs []float64) float64 {
	m := math.Inf(1)
	for _, v := range vs {
		m = math.Min(m, v)
	}
	return m
}
