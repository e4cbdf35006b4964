package renderer

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/dshills/seqview/internal/glyph"
	"github.com/dshills/seqview/internal/renderer/backend"
	"github.com/dshills/seqview/internal/renderer/core"
	"github.com/dshills/seqview/internal/renderer/letters"
	"github.com/dshills/seqview/internal/renderer/statusline"
	"github.com/dshills/seqview/internal/renderer/viewport"
)

// Screen rows, top to bottom. The status line takes the last row.
const (
	RowAxis = iota
	RowTicks
	RowLetters
	RowForward
	RowForwardLabels
	RowReverse
	RowReverseLabels

	// MinHeight is the height needed to show every row plus the status line.
	MinHeight = RowReverseLabels + 2
)

// minTickGap is the minimum number of columns between ruler labels.
const minTickGap = 12

// Options configures the renderer.
type Options struct {
	// CellWidthPx is the pixel width of one column. Letter slots and the
	// render width handed to the session are expressed in pixels.
	CellWidthPx float64

	// ShowLabels draws feature names under their glyphs.
	ShowLabels bool
}

// DefaultOptions returns sensible default options.
func DefaultOptions() Options {
	return Options{
		CellWidthPx: letters.DefaultLetterWidth,
		ShowLabels:  true,
	}
}

// Frame is everything one render needs.
type Frame struct {
	SeqID         string
	Viewport      viewport.Viewport
	Display       letters.Display
	Glyphs        []glyph.Record
	ScrollPercent float64
}

// Renderer is the main rendering facade.
type Renderer struct {
	opts    Options
	backend backend.Backend
	width   int
	height  int

	palette *glyph.Palette
	status  *statusline.StatusLine
	printer *message.Printer

	frameCount uint64
}

// New creates a renderer drawing on b with glyph colours composited onto
// palette's background.
func New(b backend.Backend, palette *glyph.Palette, opts Options) *Renderer {
	if opts.CellWidthPx <= 0 {
		opts.CellWidthPx = letters.DefaultLetterWidth
	}
	width, height := b.Size()
	r := &Renderer{
		opts:    opts,
		backend: b,
		palette: palette,
		status:  statusline.New(),
		printer: message.NewPrinter(language.English),
	}
	r.Resize(width, height)
	return r
}

// Resize handles terminal resize events.
func (r *Renderer) Resize(width, height int) {
	r.width = width
	r.height = height
	r.status.Resize(width)
}

// Size returns the drawing area in cells.
func (r *Renderer) Size() (width, height int) {
	return r.width, r.height
}

// WidthPx returns the pixel width of the sequence axis.
func (r *Renderer) WidthPx() float64 {
	return float64(r.width) * r.opts.CellWidthPx
}

// Options returns the current options.
func (r *Renderer) Options() Options {
	return r.opts
}

// SetStyle replaces the palette and label setting after a style reload.
func (r *Renderer) SetStyle(palette *glyph.Palette, showLabels bool) {
	r.palette = palette
	r.opts.ShowLabels = showLabels
}

// StatusLine returns the status line for mode and message updates.
func (r *Renderer) StatusLine() *statusline.StatusLine {
	return r.status
}

// FrameCount returns the number of frames rendered.
func (r *Renderer) FrameCount() uint64 {
	return r.frameCount
}

// Render draws f and flushes it to the display.
func (r *Renderer) Render(f Frame) {
	bg := r.background()
	r.backend.Fill(core.Rect{Right: r.width, Bottom: r.height}, core.Cell{Rune: ' ', Width: 1, Style: bg})

	r.renderRuler(f.Viewport, bg)
	r.renderLetters(f.Display, bg)
	for _, rec := range f.Glyphs {
		r.renderGlyph(f.Viewport, rec, bg)
	}

	r.status.SetSequence(f.SeqID)
	r.status.SetRange(f.Viewport.Start, f.Viewport.End)
	r.status.SetLetters(f.Display.Mode == letters.ModeLetter, f.Display.Stale)
	r.status.SetScrollPercent(int(math.Round(f.ScrollPercent * 100)))
	r.status.Render(r.backend, r.height-1)

	r.backend.Show()
	r.frameCount++
}

func (r *Renderer) background() core.Style {
	if r.palette == nil {
		return core.DefaultStyle()
	}
	return core.DefaultStyle().WithBackground(core.ColorFromColorful(r.palette.Background()))
}

// column maps a sequence coordinate to a screen column. The result is not
// clipped.
func (r *Renderer) column(vp viewport.Viewport, x float64) int {
	return int(math.Floor((x - vp.Start) / vp.Span() * float64(r.width)))
}

// renderRuler draws the axis line and grouped coordinate labels.
func (r *Renderer) renderRuler(vp viewport.Viewport, bg core.Style) {
	axis := bg.Dim()
	for x := 0; x < r.width; x++ {
		r.backend.SetCell(x, RowAxis, core.NewStyledCell('─', axis))
	}

	step := TickStep(vp.Span(), r.width)
	if step <= 0 {
		return
	}
	next := 0
	for pos := math.Ceil(vp.Start/step) * step; pos < vp.End; pos += step {
		col := r.column(vp, pos)
		if col < next || col >= r.width {
			continue
		}
		r.backend.SetCell(col, RowAxis, core.NewStyledCell('┬', axis))
		label := r.printer.Sprintf("%d", int64(pos))
		next = r.text(col, RowTicks, label, bg) + 1
	}
}

// TickStep returns a 1, 2 or 5 times power-of-ten step that keeps ruler
// labels at least minTickGap columns apart.
func TickStep(span float64, width int) float64 {
	if span <= 0 || width <= 0 {
		return 0
	}
	raw := span * minTickGap / float64(width)
	mag := math.Pow(10, math.Floor(math.Log10(raw)))
	for _, m := range []float64{1, 2, 5, 10} {
		if step := m * mag; step >= raw {
			return math.Max(step, 1)
		}
	}
	return math.Max(10*mag, 1)
}

// renderLetters places each visible base at its justified slot.
func (r *Renderer) renderLetters(d letters.Display, bg core.Style) {
	if d.Stale {
		r.text(0, RowLetters, "…", bg.Dim())
		return
	}
	if d.Mode != letters.ModeLetter {
		return
	}
	if d.Layout.Width <= 0 {
		return
	}
	// Slots span [0, Width] pixels; the last column must still fit a letter.
	scale := float64(r.width-1) / d.Layout.Width
	for i := 0; i < d.Layout.Count(); i++ {
		col := int(math.Round(d.Layout.SlotX(i) * scale))
		base := d.Layout.Text[i]
		r.backend.SetCell(col, RowLetters, core.NewStyledCell(rune(base), bg.WithForeground(BaseColor(base)).Bold()))
	}
}

// BaseColor returns the colour used for a nucleotide letter.
func BaseColor(base byte) core.Color {
	switch base {
	case 'A', 'a':
		return core.ColorFromRGB(0x2e, 0xcc, 0x40)
	case 'C', 'c':
		return core.ColorFromRGB(0x00, 0x74, 0xd9)
	case 'G', 'g':
		return core.ColorFromRGB(0xff, 0xdc, 0x00)
	case 'T', 't', 'U', 'u':
		return core.ColorFromRGB(0xff, 0x41, 0x36)
	default:
		return core.ColorFromRGB(0xaa, 0xaa, 0xaa)
	}
}

// renderGlyph draws one record on its strand row, with its label below.
func (r *Renderer) renderGlyph(vp viewport.Viewport, rec glyph.Record, bg core.Style) {
	lo, hi := rec.Span()
	if !vp.Overlaps(lo, hi) {
		return
	}
	c0 := r.column(vp, lo)
	c1 := max(r.column(vp, hi), c0+1)

	row := RowForward
	if rec.Strand == glyph.StrandReverse {
		row = RowReverse
	}

	style := bg
	if r.palette != nil {
		style = bg.WithForeground(core.ColorFromColorful(r.palette.Shade(rec)))
	}

	body := '█'
	if rec.Shape == glyph.ShapeArrow {
		body = '━'
	}
	for x := max(c0, 0); x < min(c1, r.width); x++ {
		r.backend.SetCell(x, row, core.NewStyledCell(body, style))
	}
	if rec.Shape == glyph.ShapeArrow {
		if rec.Strand == glyph.StrandReverse && c0 >= 0 {
			r.backend.SetCell(c0, row, core.NewStyledCell('◀', style))
		} else if rec.Strand != glyph.StrandReverse && c1-1 < r.width {
			r.backend.SetCell(c1-1, row, core.NewStyledCell('▶', style))
		}
	}

	if !r.opts.ShowLabels || rec.Label == "" {
		return
	}
	left, right := max(c0, 0), min(c1, r.width)
	label := core.Truncate(rec.Label, right-left)
	if label == "" {
		return
	}
	w := core.StringWidth(label)
	center := min(max(r.column(vp, rec.LabelX), left+w/2), right-(w-w/2))
	r.text(center-w/2, row+1, label, style)
}

// text writes s starting at col and returns the column after it.
func (r *Renderer) text(col, row int, s string, style core.Style) int {
	for _, ch := range s {
		cell := core.NewStyledCell(ch, style)
		r.backend.SetCell(col, row, cell)
		col += max(cell.Width, 1)
	}
	return col
}
