package glyph

import (
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// namedColors holds the CSS colour names accepted in style configuration.
var namedColors = map[string]string{
	"black":      "#000000",
	"white":      "#ffffff",
	"red":        "#ff0000",
	"green":      "#008000",
	"blue":       "#0000ff",
	"yellow":     "#ffff00",
	"cyan":       "#00ffff",
	"magenta":    "#ff00ff",
	"purple":     "#800080",
	"orange":     "#ffa500",
	"grey":       "#808080",
	"gray":       "#808080",
	"lightgrey":  "#d3d3d3",
	"darkgrey":   "#a9a9a9",
	"brown":      "#a52a2a",
	"pink":       "#ffc0cb",
	"navy":       "#000080",
	"teal":       "#008080",
	"olive":      "#808000",
	"maroon":     "#800000",
	"firebrick":  "#b22222",
	"dodgerblue": "#1e90ff",
	"steelblue":  "#4682b4",
	"seagreen":   "#2e8b57",
	"gold":       "#ffd700",
	"salmon":     "#fa8072",
	"violet":     "#ee82ee",
}

// ParseColor converts a CSS colour name or a #rrggbb string to a colour.
func ParseColor(s string) (colorful.Color, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	if hex, ok := namedColors[key]; ok {
		key = hex
	}
	if !strings.HasPrefix(key, "#") {
		return colorful.Color{}, fmt.Errorf("unknown colour %q", s)
	}
	c, err := colorful.Hex(key)
	if err != nil {
		return colorful.Color{}, fmt.Errorf("invalid colour %q: %w", s, err)
	}
	return c, nil
}

// Blend composites fg over bg with the given alpha in [0, 1].
func Blend(fg, bg colorful.Color, alpha float64) colorful.Color {
	alpha = max(0, min(1, alpha))
	return bg.BlendRgb(fg, alpha).Clamped()
}

// Palette resolves record colours against a background, caching results.
type Palette struct {
	background colorful.Color
	fallback   colorful.Color
	cache      map[paletteKey]colorful.Color
}

type paletteKey struct {
	name  string
	alpha float64
}

// NewPalette creates a palette compositing onto background.
// Unknown record colours resolve to grey.
func NewPalette(background string) (*Palette, error) {
	bg, err := ParseColor(background)
	if err != nil {
		return nil, err
	}
	fallback, _ := ParseColor("grey")
	return &Palette{
		background: bg,
		fallback:   fallback,
		cache:      make(map[paletteKey]colorful.Color),
	}, nil
}

// Background returns the background colour.
func (p *Palette) Background() colorful.Color {
	return p.background
}

// Shade returns the displayed colour of r.
func (p *Palette) Shade(r Record) colorful.Color {
	key := paletteKey{name: r.Color, alpha: r.Alpha}
	if c, ok := p.cache[key]; ok {
		return c
	}
	fg, err := ParseColor(r.Color)
	if err != nil {
		fg = p.fallback
	}
	c := Blend(fg, p.background, r.Alpha)
	p.cache[key] = c
	return c
}

// ValidateColors checks that every name parses.
func ValidateColors(names []string) error {
	for _, n := range names {
		if _, err := ParseColor(n); err != nil {
			return err
		}
	}
	return nil
}
