package glyph

// Shape is the outline used to draw a feature.
type Shape uint8

const (
	ShapeArrow Shape = iota
	ShapeBox
)

// String returns the shape name.
func (s Shape) String() string {
	if s == ShapeBox {
		return "box"
	}
	return "arrow"
}

// Track geometry in track units (the annotation track is 0..1 high).
const (
	FeatureHeight       = 0.15
	TrackBase           = 0.05
	LabelVerticalOffset = 0.03
	MaxArrowHead        = 100
)

// Style describes how features of one type are drawn.
type Style struct {
	Shape Shape

	// Colors holds one colour for all strands, or two for forward and reverse.
	Colors []string
	Alpha  float64

	ShowName bool

	// Height is relative to FeatureHeight, in (0, 1].
	Height float64
}

// ColorFor returns the colour name for a strand.
func (s Style) ColorFor(strand Strand) string {
	switch len(s.Colors) {
	case 0:
		return ""
	case 1:
		return s.Colors[0]
	}
	if strand == StrandReverse {
		return s.Colors[1]
	}
	return s.Colors[0]
}

// Styles maps feature types to styles. Unknown types use Default.
type Styles struct {
	Default Style
	ByType  map[string]Style
}

// Lookup returns the style for a feature type.
func (s Styles) Lookup(featureType string) Style {
	if st, ok := s.ByType[featureType]; ok {
		return st
	}
	return s.Default
}

// DefaultArrowColors and DefaultBoxColors are the stock palettes.
var (
	DefaultArrowColors = []string{"purple", "orange"}
	DefaultBoxColors   = []string{"grey"}
)

// DefaultStyles returns the stock style table: genes and RNAs as arrows,
// repeat regions and exons as shorter unlabeled boxes.
func DefaultStyles(arrowColors, boxColors []string) Styles {
	if len(arrowColors) == 0 {
		arrowColors = DefaultArrowColors
	}
	if len(boxColors) == 0 {
		boxColors = DefaultBoxColors
	}
	arrow := Style{Shape: ShapeArrow, Colors: arrowColors, Alpha: 0.8, ShowName: true, Height: 1}
	box := Style{Shape: ShapeBox, Colors: boxColors, Alpha: 1, ShowName: false, Height: 0.8}

	st := Styles{Default: arrow, ByType: make(map[string]Style)}
	for _, t := range []string{"CDS", "ncRNA", "rRNA", "tRNA"} {
		st.ByType[t] = arrow
	}
	st.ByType["repeat_region"] = box
	st.ByType["exon"] = box
	return st
}

// WithAlpha returns a copy of the table with arrow and box alphas replaced.
func (s Styles) WithAlpha(arrowAlpha, boxAlpha float64) Styles {
	out := Styles{Default: s.Default, ByType: make(map[string]Style, len(s.ByType))}
	apply := func(st Style) Style {
		if st.Shape == ShapeBox {
			st.Alpha = boxAlpha
		} else {
			st.Alpha = arrowAlpha
		}
		return st
	}
	out.Default = apply(out.Default)
	for k, v := range s.ByType {
		out.ByType[k] = apply(v)
	}
	return out
}
