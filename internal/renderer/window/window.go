// Package window keeps a sliding window of glyph records materialised around
// the viewport and reloads it when the viewport nears its edges.
package window

import (
	"fmt"

	"github.com/dshills/seqview/internal/glyph"
	"github.com/dshills/seqview/internal/renderer/viewport"
)

// Default prefetch parameters.
const (
	DefaultMargin   = 2000
	DefaultMaxRange = 20000
)

// LoadedWindow is the coordinate range covered by the current glyph window.
type LoadedWindow struct {
	Start float64
	End   float64

	// MaxRange is how far beyond the viewport a reload extends.
	MaxRange float64
}

// String returns a compact representation for logs.
func (w LoadedWindow) String() string {
	return fmt.Sprintf("[%.0f, %.0f] +/-%.0f", w.Start, w.End, w.MaxRange)
}

// Reload describes the outcome of a reload check.
type Reload struct {
	// Triggered is set when the viewport was within the margin of an edge.
	Triggered bool

	// Changed is set when the window was replaced with a different slice.
	Changed bool

	// First and Last are the inclusive index bounds of the window.
	First int
	Last  int

	Loaded LoadedWindow
	Zone   viewport.EdgeZone
}

// Manager owns the glyph window over an immutable, sorted record set.
// It is not safe for concurrent use.
type Manager struct {
	all    []glyph.Record
	index  *Index
	margin float64

	loaded LoadedWindow
	first  int
	last   int // inclusive; last < first means empty
}

// NewManager creates a manager over all, which must be sorted by span start.
// margin is the distance to an edge that triggers a reload; maxRange is the
// prefetch distance beyond the viewport. The window starts empty.
func NewManager(all []glyph.Record, margin, maxRange float64) *Manager {
	return &Manager{
		all:    all,
		index:  NewIndex(all),
		margin: margin,
		loaded: LoadedWindow{MaxRange: maxRange},
		first:  0,
		last:   -1,
	}
}

// Len returns the size of the backing record set.
func (m *Manager) Len() int {
	return len(m.all)
}

// All returns the backing record set.
func (m *Manager) All() []glyph.Record {
	return m.all
}

// Margin returns the reload trigger margin.
func (m *Manager) Margin() float64 {
	return m.margin
}

// Loaded returns the current loaded window.
func (m *Manager) Loaded() LoadedWindow {
	return m.loaded
}

// Window returns the records currently materialised. The slice shares the
// backing array and must not be modified.
func (m *Manager) Window() []glyph.Record {
	if m.last < m.first {
		return nil
	}
	return m.all[m.first : m.last+1]
}

// Indices returns the inclusive index bounds of the window.
func (m *Manager) Indices() (first, last int) {
	return m.first, m.last
}

// NeedsReload reports whether vp is within the margin of either loaded edge.
func (m *Manager) NeedsReload(vp viewport.Viewport) (bool, viewport.EdgeZone) {
	zone := vp.Zone(m.loaded.Start, m.loaded.End, m.margin)
	return zone.NearEdge(), zone
}

// Load unconditionally re-slices the window around vp.
// With no records the window stays empty.
func (m *Manager) Load(vp viewport.Viewport) Reload {
	first, last, ok := m.index.Bounds(vp.Start, vp.End, m.loaded.MaxRange)
	if !ok {
		return Reload{First: m.first, Last: m.last, Loaded: m.loaded}
	}

	changed := first != m.first || last != m.last
	m.first, m.last = first, last
	lo, _ := m.index.Span(first)
	_, hi := m.index.Span(last)
	m.loaded.Start, m.loaded.End = lo, hi

	return Reload{Changed: changed, First: first, Last: last, Loaded: m.loaded}
}

// MaybeReload reloads the window if vp is near an edge of the loaded range.
// The window is replaced only when the new slice differs from the current one,
// so repeated calls with the same viewport reload at most once.
func (m *Manager) MaybeReload(vp viewport.Viewport) Reload {
	near, zone := m.NeedsReload(vp)
	if !near || len(m.all) == 0 {
		return Reload{Triggered: near, First: m.first, Last: m.last, Loaded: m.loaded, Zone: zone}
	}
	r := m.Load(vp)
	r.Triggered = true
	r.Zone = zone
	return r
}
