package viewport

// EdgeZone describes where the viewport sits relative to the edges of a loaded
// coordinate window, given a reload margin.
type EdgeZone uint8

const (
	ZoneInside      EdgeZone = iota // Clear of both margins
	ZoneStartMargin                 // Start is within margin of the window start
	ZoneEndMargin                   // End is within margin of the window end
	ZoneBothMargins                 // Window is too small to keep either edge clear
)

// String returns the zone name.
func (z EdgeZone) String() string {
	switch z {
	case ZoneInside:
		return "inside"
	case ZoneStartMargin:
		return "start-margin"
	case ZoneEndMargin:
		return "end-margin"
	case ZoneBothMargins:
		return "both-margins"
	default:
		return "unknown"
	}
}

// NearEdge returns true for any zone other than ZoneInside.
func (z EdgeZone) NearEdge() bool {
	return z != ZoneInside
}

// Zone classifies v against the window [start, end].
// The viewport is near the start edge when v.Start < start+margin and near
// the end edge when v.End > end-margin.
func (v Viewport) Zone(start, end, margin float64) EdgeZone {
	nearStart := v.Start < start+margin
	nearEnd := v.End > end-margin
	switch {
	case nearStart && nearEnd:
		return ZoneBothMargins
	case nearStart:
		return ZoneStartMargin
	case nearEnd:
		return ZoneEndMargin
	default:
		return ZoneInside
	}
}
