package letters

import "github.com/dshills/seqview/internal/renderer/viewport"

// DefaultLetterWidth is the estimated pixel width of one rendered character.
const DefaultLetterWidth = 9.6

// Mode is the sequence display mode selected for a viewport.
type Mode uint8

const (
	// ModeGlyph hides the letters; the viewport spans too many bases.
	ModeGlyph Mode = iota
	// ModeLetter shows one character per base.
	ModeLetter
)

// String returns the mode name.
func (m Mode) String() string {
	if m == ModeLetter {
		return "letter"
	}
	return "glyph"
}

// Projection is the visible slice of the sequence for one viewport.
type Projection struct {
	Mode Mode

	// Text holds the letters of bases [First, First+len(Text)).
	Text  string
	First int

	// Stale is set when the buffer does not cover the viewport.
	// Text is empty and the host should load a fresh buffer.
	Stale bool
}

// Empty returns true if there is nothing to draw.
func (p Projection) Empty() bool {
	return p.Text == ""
}

// Projector selects the display mode and extracts the visible letters.
type Projector struct {
	// LetterWidth is the pixel width estimate per character.
	// Zero means DefaultLetterWidth.
	LetterWidth float64
}

// NewProjector creates a projector with the given letter width.
func NewProjector(letterWidth float64) *Projector {
	return &Projector{LetterWidth: letterWidth}
}

func (p *Projector) letterWidth() float64 {
	if p == nil || p.LetterWidth <= 0 {
		return DefaultLetterWidth
	}
	return p.LetterWidth
}

// Visible reports whether letters fit in widthPx for the viewport.
func (p *Projector) Visible(vp viewport.Viewport, widthPx float64) bool {
	return p.letterWidth()*vp.Span() < widthPx
}

// Project returns the letters to show for vp on a surface widthPx wide.
// It never slices past the buffer: if the buffer does not cover
// [floor(Start), floor(End)) the projection is empty and marked stale.
func (p *Projector) Project(vp viewport.Viewport, buf Buffer, widthPx float64) (Projection, error) {
	if err := vp.Validate(); err != nil {
		return Projection{}, err
	}
	if !p.Visible(vp, widthPx) {
		return Projection{Mode: ModeGlyph}, nil
	}
	if err := buf.Validate(); err != nil {
		return Projection{}, err
	}

	first, last := vp.FirstBase(), vp.LastBase()
	proj := Projection{Mode: ModeLetter, First: first}

	lo, hi := first-buf.Bounds[0], last-buf.Bounds[0]
	if clampIndex(lo, buf.Len()) != lo || clampIndex(hi, buf.Len()) != hi {
		proj.Stale = true
		return proj, nil
	}
	proj.Text = buf.Letters[lo:hi]
	return proj, nil
}

func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i > n {
		return n
	}
	return i
}
