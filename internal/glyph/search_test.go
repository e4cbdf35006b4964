package glyph

import "testing"

func testRecords() []Record {
	styles := DefaultStyles(nil, nil)
	return Build([]Feature{
		{Left: 100, Right: 200, Type: "CDS", Name: "dnaA"},
		{Left: 300, Right: 400, Type: "CDS", Name: "dnaN"},
		{Left: 500, Right: 600, Type: "CDS", Name: "recF"},
	}, styles)
}

func TestFind(t *testing.T) {
	records := testRecords()

	tests := []struct {
		name string
		want int
	}{
		{"dnaA", 0},
		{"DNAN", 1},
		{" recF ", 2},
		{"gyrB", -1},
		{"", -1},
	}

	for _, tt := range tests {
		if got := Find(records, tt.name); got != tt.want {
			t.Errorf("Find(%q) = %d, want %d", tt.name, got, tt.want)
		}
	}
}

func TestSearch(t *testing.T) {
	records := testRecords()

	if got := Search(records, "dna", 0); len(got) != 2 || got[0] != 0 || got[1] != 1 {
		t.Errorf("expected [0 1], got %v", got)
	}
	if got := Search(records, "dna", 1); len(got) != 1 {
		t.Errorf("expected limit of 1, got %v", got)
	}
	if got := Search(records, "  ", 0); got != nil {
		t.Errorf("expected nil for blank query, got %v", got)
	}
}
