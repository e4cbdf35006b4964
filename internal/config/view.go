package config

import "github.com/dshills/seqview/internal/renderer/viewport"

// Limits returns the range control limits for a sequence spanning bounds.
func (v ViewConfig) Limits(bounds [2]int) viewport.Limits {
	return viewport.Limits{
		Lower:       float64(bounds[0]),
		Upper:       float64(bounds[1]),
		MinInterval: v.MinInterval,
		MaxInterval: v.MaxInterval,
	}
}

// InitialViewport returns the first viewport, InitWin wide and centred on
// InitPos, or starting at the sequence start when InitPos is unset.
// inBounds is false when InitPos lies outside bounds; the viewport is then
// still returned and the range control clamps it.
func (v ViewConfig) InitialViewport(bounds [2]int) (vp viewport.Viewport, inBounds bool) {
	if v.InitPos == nil {
		start := float64(bounds[0])
		return viewport.New(start, start+v.InitWin), true
	}
	pos := *v.InitPos
	inBounds = pos >= float64(bounds[0]) && pos <= float64(bounds[1])
	return viewport.New(pos-v.InitWin/2, pos+v.InitWin/2), inBounds
}
