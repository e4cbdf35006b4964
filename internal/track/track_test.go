package track

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dshills/seqview/internal/glyph"
)

const testDoc = `{
  "seq_id": "NC_000913.3",
  "bounds": [100, 120],
  "sequence": "acgtacgtacgtacgtacgt",
  "features": [
    {"start": 110, "end": 118, "strand": "-", "type": "CDS", "name": "thrL"},
    {"start": 100, "end": 105, "strand": "+", "type": "repeat_region", "attributes": {"gene": "rep"}},
    {"start": 104, "end": 109}
  ]
}`

func TestParse(t *testing.T) {
	tr, err := Parse("test.json", []byte(testDoc))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if tr.SeqID != "NC_000913.3" {
		t.Errorf("SeqID = %q", tr.SeqID)
	}
	if tr.Bounds != [2]int{100, 120} || tr.Len() != 20 {
		t.Errorf("Bounds = %v", tr.Bounds)
	}
	if !strings.HasPrefix(tr.Sequence, "ACGT") {
		t.Errorf("sequence should be upper-cased, got %q", tr.Sequence[:4])
	}
	if len(tr.Features) != 3 {
		t.Fatalf("expected 3 features, got %d", len(tr.Features))
	}

	f := tr.Features[0]
	if f.Left != 110 || f.Right != 118 || f.Strand != glyph.StrandReverse || f.Name != "thrL" {
		t.Errorf("unexpected feature: %+v", f)
	}
	if tr.Features[1].Name != "rep" {
		t.Errorf("name should fall back to attributes.gene, got %q", tr.Features[1].Name)
	}
	if tr.Features[2].Type != "CDS" || tr.Features[2].Strand != glyph.StrandNone {
		t.Errorf("missing type and strand should default, got %+v", tr.Features[2])
	}

	records := tr.Records(glyph.DefaultStyles(nil, nil))
	if err := glyph.Validate(records); err != nil {
		t.Errorf("records should be sorted: %v", err)
	}
}

func TestParseDefaultBounds(t *testing.T) {
	tr, err := Parse("seq", []byte(`{"sequence": "ACGTA"}`))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if tr.Bounds != [2]int{0, 5} {
		t.Errorf("bounds from sequence = %v, want [0 5]", tr.Bounds)
	}

	tr, err = Parse("features", []byte(`{"features": [{"start": 10, "end": 900}, {"start": 5, "end": 50}]}`))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if tr.Bounds != [2]int{0, 900} || tr.HasSequence() {
		t.Errorf("bounds from features = %v, want [0 900]", tr.Bounds)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		doc   string
		field string
	}{
		{"not json", `{"features": [`, ""},
		{"not object", `[1, 2]`, ""},
		{"features not array", `{"features": 3}`, "features"},
		{"feature without end", `{"features": [{"start": 1}]}`, "features.0"},
		{"reversed feature", `{"features": [{"start": 1, "end": 5}, {"start": 9, "end": 2}]}`, "features.1"},
		{"bad strand", `{"features": [{"start": 1, "end": 5, "strand": "?"}]}`, "features.0.strand"},
		{"bad bounds", `{"bounds": [5], "sequence": "A"}`, "bounds"},
		{"sequence mismatch", `{"bounds": [0, 10], "sequence": "ACGT"}`, "sequence"},
		{"empty axis", `{}`, "bounds"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse("doc", []byte(tt.doc))
			if !errors.Is(err, ErrInvalidTrack) {
				t.Fatalf("expected ErrInvalidTrack, got %v", err)
			}
			var le *LoadError
			if !errors.As(err, &le) {
				t.Fatalf("expected *LoadError, got %T", err)
			}
			if le.Field != tt.field {
				t.Errorf("Field = %q, want %q", le.Field, tt.field)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "track.json")
	if err := os.WriteFile(path, []byte(testDoc), 0644); err != nil {
		t.Fatal(err)
	}

	tr, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(tr.Features) != 3 {
		t.Errorf("expected 3 features, got %d", len(tr.Features))
	}

	_, err = Load(filepath.Join(t.TempDir(), "missing.json"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected not-exist error, got %v", err)
	}
}
