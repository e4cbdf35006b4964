package viewport

import "testing"

func TestZone(t *testing.T) {
	tests := []struct {
		name   string
		v      Viewport
		start  float64
		end    float64
		margin float64
		want   EdgeZone
	}{
		{"well inside", New(9000, 9100), 0, 20000, 2000, ZoneInside},
		{"start inside margin", New(1500, 1600), 0, 20000, 2000, ZoneStartMargin},
		{"start exactly at margin", New(2000, 2100), 0, 20000, 2000, ZoneInside},
		{"end inside margin", New(18000, 18100), 0, 20000, 2000, ZoneEndMargin},
		{"end exactly at margin", New(17900, 18000), 0, 20000, 2000, ZoneInside},
		{"small window", New(100, 900), 0, 1000, 2000, ZoneBothMargins},
		{"zero margin", New(0, 1000), 0, 1000, 0, ZoneInside},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.v.Zone(tt.start, tt.end, tt.margin)
			if got != tt.want {
				t.Errorf("Zone() = %s, want %s", got, tt.want)
			}
			if got.NearEdge() != (tt.want != ZoneInside) {
				t.Errorf("NearEdge() = %v for %s", got.NearEdge(), got)
			}
		})
	}
}

func TestEdgeZoneString(t *testing.T) {
	tests := []struct {
		z    EdgeZone
		want string
	}{
		{ZoneInside, "inside"},
		{ZoneStartMargin, "start-margin"},
		{ZoneEndMargin, "end-margin"},
		{ZoneBothMargins, "both-margins"},
		{EdgeZone(99), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.z.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}
