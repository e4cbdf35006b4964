package track

import (
	"os"

	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"

	"github.com/dshills/seqview/internal/glyph"
	"github.com/dshills/seqview/internal/renderer/letters"
	"github.com/dshills/seqview/internal/renderer/viewport"
	"github.com/dshills/seqview/internal/renderer/window"
)

// Snapshot is an exportable record of what the browser shows.
type Snapshot struct {
	Session  string
	SeqID    string
	Viewport viewport.Viewport
	Display  letters.Display
	Loaded   window.LoadedWindow
	Glyphs   []glyph.Record
}

// JSON encodes the snapshot as indented JSON.
func (s Snapshot) JSON() ([]byte, error) {
	doc := []byte(`{}`)
	set := func(path string, v any) error {
		var err error
		doc, err = sjson.SetBytes(doc, path, v)
		return err
	}

	steps := []struct {
		path string
		v    any
	}{
		{"session", s.Session},
		{"seq_id", s.SeqID},
		{"viewport.start", s.Viewport.Start},
		{"viewport.end", s.Viewport.End},
		{"letters.mode", s.Display.Mode.String()},
		{"letters.first", s.Display.First},
		{"letters.text", s.Display.Text},
		{"letters.stale", s.Display.Stale},
		{"letters.pad_left", s.Display.Layout.PadLeft},
		{"letters.pad_right", s.Display.Layout.PadRight},
		{"letters.spacing", s.Display.Layout.Spacing},
		{"loaded.start", s.Loaded.Start},
		{"loaded.end", s.Loaded.End},
		{"loaded.max_range", s.Loaded.MaxRange},
		{"glyphs", []any{}},
	}
	for _, st := range steps {
		if err := set(st.path, st.v); err != nil {
			return nil, err
		}
	}

	for _, r := range s.Glyphs {
		lo, hi := r.Span()
		entry := map[string]any{
			"name":   r.Name,
			"type":   r.Type,
			"strand": r.Strand.String(),
			"start":  lo,
			"end":    hi,
			"color":  r.Color,
		}
		// -1 appends to the array
		if err := set("glyphs.-1", entry); err != nil {
			return nil, err
		}
	}

	return pretty.Pretty(doc), nil
}

// WriteFile writes the snapshot JSON to path.
func (s Snapshot) WriteFile(path string) error {
	data, err := s.JSON()
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
