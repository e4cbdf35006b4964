package viewport

import "math"

// Limits constrains where the range control may move the viewport.
type Limits struct {
	// Lower and Upper are the sequence bounds; the viewport never leaves them.
	Lower float64
	Upper float64

	// MinInterval and MaxInterval bound the viewport span.
	// A zero value disables the corresponding limit.
	MinInterval float64
	MaxInterval float64
}

// Range is the interactive range control that owns the viewport.
// Every method leaves the viewport valid and inside the limits.
type Range struct {
	vp     Viewport
	limits Limits
}

// NewRange creates a range control showing initial, clamped to limits.
func NewRange(initial Viewport, limits Limits) *Range {
	r := &Range{limits: limits}
	r.vp = r.clamp(initial)
	return r
}

// Viewport returns the current viewport.
func (r *Range) Viewport() Viewport {
	return r.vp
}

// Limits returns the configured limits.
func (r *Range) Limits() Limits {
	return r.limits
}

// SetViewport replaces the viewport, clamping it to the limits.
// Returns true if the viewport moved.
func (r *Range) SetViewport(v Viewport) bool {
	return r.set(r.clamp(v))
}

// PanBy moves the viewport by delta bases, preserving its span.
func (r *Range) PanBy(delta float64) bool {
	return r.SetViewport(Viewport{Start: r.vp.Start + delta, End: r.vp.End + delta})
}

// PanPages moves the viewport by a fraction of its own span.
func (r *Range) PanPages(fraction float64) bool {
	return r.PanBy(r.vp.Span() * fraction)
}

// ZoomBy scales the span by factor around anchor. Factors below 1 zoom in.
// The anchor keeps its relative screen position.
func (r *Range) ZoomBy(factor, anchor float64) bool {
	if factor <= 0 || math.IsNaN(factor) {
		return false
	}
	span := r.clampSpan(r.vp.Span() * factor)
	rel := 0.5
	if s := r.vp.Span(); s > 0 {
		rel = (anchor - r.vp.Start) / s
	}
	start := anchor - rel*span
	return r.SetViewport(Viewport{Start: start, End: start + span})
}

// ZoomCenter scales the span by factor around the viewport center.
func (r *Range) ZoomCenter(factor float64) bool {
	return r.ZoomBy(factor, r.vp.Center())
}

// CenterOn centers the viewport on pos, preserving its span.
func (r *Range) CenterOn(pos float64) bool {
	half := r.vp.Span() / 2
	return r.SetViewport(Viewport{Start: pos - half, End: pos + half})
}

// ShowRange centers on [lo, hi] and widens the span to fit it when possible.
func (r *Range) ShowRange(lo, hi float64) bool {
	span := r.vp.Span()
	if hi-lo > span {
		span = hi - lo
	}
	span = r.clampSpan(span)
	mid := lo + (hi-lo)/2
	return r.SetViewport(Viewport{Start: mid - span/2, End: mid + span/2})
}

// ScrollPercent returns how far through the bounds the viewport has moved (0.0 to 1.0).
func (r *Range) ScrollPercent() float64 {
	travel := (r.limits.Upper - r.limits.Lower) - r.vp.Span()
	if travel <= 0 {
		return 0
	}
	return (r.vp.Start - r.limits.Lower) / travel
}

func (r *Range) set(v Viewport) bool {
	if v == r.vp {
		return false
	}
	r.vp = v
	return true
}

// clampSpan applies the interval limits and the bounds width to a span.
func (r *Range) clampSpan(span float64) float64 {
	if r.limits.MaxInterval > 0 && span > r.limits.MaxInterval {
		span = r.limits.MaxInterval
	}
	if r.limits.MinInterval > 0 && span < r.limits.MinInterval {
		span = r.limits.MinInterval
	}
	if width := r.limits.Upper - r.limits.Lower; width > 0 && span > width {
		span = width
	}
	return span
}

// clamp fits v inside the limits, shifting rather than shrinking where possible.
func (r *Range) clamp(v Viewport) Viewport {
	span := v.Span()
	if span <= 0 || math.IsNaN(span) {
		span = r.clampSpan(r.limits.MinInterval)
		if span <= 0 {
			span = 1
		}
	}
	span = r.clampSpan(span)

	start := v.Start
	if math.IsNaN(start) {
		start = r.limits.Lower
	}
	if r.limits.Upper > r.limits.Lower {
		if start+span > r.limits.Upper {
			start = r.limits.Upper - span
		}
		if start < r.limits.Lower {
			start = r.limits.Lower
		}
	}
	return Viewport{Start: start, End: start + span}
}
