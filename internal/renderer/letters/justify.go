package letters

import (
	"fmt"
	"html"
	"math"
	"strings"

	"github.com/dshills/seqview/internal/renderer/viewport"
)

// Layout places justified letters on a text surface.
//
// The host spreads the characters evenly between PadLeft and Width-PadRight.
// Trailer non-breaking spaces follow the text in a no-wrap run so that the
// justification engine distributes the real characters over the full line.
type Layout struct {
	Text string

	// PadLeft and PadRight are pixel insets, each in [0, Spacing).
	PadLeft  int
	PadRight int

	// Spacing is the pixel distance between adjacent bases.
	Spacing float64

	// Trailer is the number of non-breaking spaces appended after Text.
	Trailer int

	// Width is the surface width in pixels.
	Width float64
}

// Justify computes the layout of text for vp on a surface widthPx wide.
// The span of vp must be positive; an invalid viewport is returned as an
// error and no padding is computed.
func Justify(vp viewport.Viewport, text string, widthPx float64) (Layout, error) {
	if err := vp.Validate(); err != nil {
		return Layout{}, err
	}
	spacing := widthPx / vp.Span()
	return Layout{
		Text:     text,
		PadLeft:  int(math.Floor(spacing * (1 - viewport.Frac(vp.Start)))),
		PadRight: int(math.Floor(spacing * viewport.Frac(vp.End))),
		Spacing:  spacing,
		Trailer:  int(widthPx / 4),
		Width:    widthPx,
	}, nil
}

// Empty returns true if the layout has no letters.
func (l Layout) Empty() bool {
	return l.Text == ""
}

// Count returns the number of letters in the layout.
func (l Layout) Count() int {
	return len(l.Text)
}

// SlotX returns the pixel position of letter i after justification.
// Letters are distributed evenly from PadLeft to Width-PadRight.
func (l Layout) SlotX(i int) float64 {
	n := l.Count()
	if n <= 1 {
		return float64(l.PadLeft)
	}
	avail := l.Width - float64(l.PadLeft) - float64(l.PadRight)
	return float64(l.PadLeft) + float64(i)*avail/float64(n-1)
}

// Markup renders the layout for an HTML text surface. The insets are applied
// as padding on the container by the host; Markup produces the text body.
func (l Layout) Markup() string {
	if l.Empty() {
		return ""
	}
	var sb strings.Builder
	sb.Grow(len(l.Text) + l.Trailer*6 + 48)
	sb.WriteString(html.EscapeString(l.Text))
	sb.WriteString(` <span style="white-space: nowrap">`)
	sb.WriteString(strings.Repeat("&nbsp;", l.Trailer))
	sb.WriteString("</span>")
	return sb.String()
}

// Style returns the container inset style for an HTML text surface.
func (l Layout) Style() string {
	return fmt.Sprintf("padding-left: %dpx; padding-right: %dpx; text-align: justify", l.PadLeft, l.PadRight)
}
