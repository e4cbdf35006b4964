// Package raster renders a browser frame to an image.
//
// Letters are drawn at their justified pixel slots and glyphs as filled
// polygons on a track whose y axis runs from 0 at the bottom to 1 at the top.
package raster

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	"github.com/dshills/seqview/internal/glyph"
	"github.com/dshills/seqview/internal/renderer"
	"github.com/dshills/seqview/internal/renderer/letters"
	"github.com/dshills/seqview/internal/renderer/viewport"
)

// LetterBand is the pixel height of the letter strip above the track.
const LetterBand = 20

// Options configures an image render.
type Options struct {
	Width  int
	Height int

	// ShowLabels draws feature names at their label anchors.
	ShowLabels bool

	// Face is the font for letters and labels. Nil means basicfont.Face7x13.
	Face font.Face
}

// DefaultOptions returns a 1200x240 render with labels.
func DefaultOptions() Options {
	return Options{Width: 1200, Height: 240, ShowLabels: true}
}

// Render draws f onto a new image. The frame's letter layout must have been
// computed for opts.Width pixels.
func Render(f renderer.Frame, palette *glyph.Palette, opts Options) (*image.RGBA, error) {
	if opts.Width <= 0 || opts.Height <= LetterBand {
		return nil, fmt.Errorf("raster: image %dx%d too small", opts.Width, opts.Height)
	}
	if err := f.Viewport.Validate(); err != nil {
		return nil, err
	}
	if opts.Face == nil {
		opts.Face = basicfont.Face7x13
	}

	img := image.NewRGBA(image.Rect(0, 0, opts.Width, opts.Height))
	bg := colorful.Color{}
	if palette != nil {
		bg = palette.Background()
	}
	draw.Draw(img, img.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)

	p := &painter{img: img, vp: f.Viewport, opts: opts}
	p.letters(f.Display)
	for _, rec := range f.Glyphs {
		p.glyph(rec, palette)
	}
	return img, nil
}

// WriteFile encodes img as PNG at path.
func WriteFile(path string, img image.Image) error {
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(out, img); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

type painter struct {
	img  *image.RGBA
	vp   viewport.Viewport
	opts Options
}

func (p *painter) x(pos float64) float32 {
	w := float64(p.opts.Width)
	return float32(max(-w, min(2*w, p.vp.ToPixel(pos, w))))
}

func (p *painter) y(track float64) float32 {
	band := float64(p.opts.Height - LetterBand)
	return float32(LetterBand + (1-track)*band)
}

func (p *painter) letters(d letters.Display) {
	if d.Mode != letters.ModeLetter || d.Stale {
		return
	}
	ascent := p.opts.Face.Metrics().Ascent.Ceil()
	for i := 0; i < d.Layout.Count(); i++ {
		c := renderer.BaseColor(d.Layout.Text[i])
		dr := &font.Drawer{
			Dst:  p.img,
			Src:  image.NewUniform(color.RGBA{R: c.R, G: c.G, B: c.B, A: 255}),
			Face: p.opts.Face,
			Dot:  fixed.Point26_6{X: fixed.I(int(d.Layout.SlotX(i))), Y: fixed.I(ascent + 2)},
		}
		dr.DrawString(string(d.Layout.Text[i]))
	}
}

func (p *painter) glyph(rec glyph.Record, palette *glyph.Palette) {
	lo, hi := rec.Span()
	if !p.vp.Overlaps(lo, hi) || len(rec.XS) < 3 || len(rec.XS) != len(rec.YS) {
		return
	}
	var shade color.Color = color.Gray{Y: 128}
	if palette != nil {
		shade = palette.Shade(rec)
	}

	z := vector.NewRasterizer(p.opts.Width, p.opts.Height)
	z.DrawOp = draw.Over
	z.MoveTo(p.x(rec.XS[0]), p.y(rec.YS[0]))
	for i := 1; i < len(rec.XS); i++ {
		z.LineTo(p.x(rec.XS[i]), p.y(rec.YS[i]))
	}
	z.ClosePath()
	z.Draw(p.img, p.img.Bounds(), image.NewUniform(shade), image.Point{})

	if !p.opts.ShowLabels || rec.Label == "" {
		return
	}
	dr := &font.Drawer{Dst: p.img, Src: image.NewUniform(shade), Face: p.opts.Face}
	width := dr.MeasureString(rec.Label)
	x := fixed.Int26_6(p.x(rec.LabelX)*64) - width/2
	dr.Dot = fixed.Point26_6{X: x, Y: fixed.Int26_6(p.y(rec.LabelY) * 64)}
	dr.DrawString(rec.Label)
}
