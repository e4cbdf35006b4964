// Package track loads annotation tracks and serves sequence buffers.
//
// A track document is JSON:
//
//	{
//	  "seq_id": "chr1",
//	  "bounds": [0, 48000],
//	  "sequence": "ACGT...",
//	  "features": [
//	    {"start": 1200, "end": 2400, "strand": "+", "type": "CDS", "name": "dnaA"}
//	  ]
//	}
//
// Coordinates are zero-based and end-exclusive. The sequence holds the bases
// of bounds[0]..bounds[1]; bounds default to the sequence length, or to the
// furthest feature end when there is no sequence.
package track

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/dshills/seqview/internal/glyph"
)

// ErrInvalidTrack indicates a malformed track document.
var ErrInvalidTrack = errors.New("invalid track")

// LoadError describes why a track document was rejected.
type LoadError struct {
	// Path is the document source.
	Path string
	// Field is the JSON path of the offending value, if any.
	Field   string
	Message string
	Err     error
}

// Error implements the error interface.
func (e *LoadError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("track %s: %s: %s", e.Path, e.Field, e.Message)
	}
	return fmt.Sprintf("track %s: %s", e.Path, e.Message)
}

// Unwrap returns the underlying error, or ErrInvalidTrack.
func (e *LoadError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrInvalidTrack
}

// Track is a loaded sequence with its annotations.
type Track struct {
	SeqID    string
	Bounds   [2]int
	Sequence string
	Features []glyph.Feature
}

// Len returns the length of the sequence axis.
func (t *Track) Len() int {
	return t.Bounds[1] - t.Bounds[0]
}

// HasSequence returns true if the track carries bases.
func (t *Track) HasSequence() bool {
	return t.Sequence != ""
}

// Records builds sorted glyph records for the track features.
func (t *Track) Records(styles glyph.Styles) []glyph.Record {
	return glyph.Build(t.Features, styles)
}

// Load reads a track document from path.
func Load(path string) (*Track, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Path: path, Message: "cannot read", Err: err}
	}
	return Parse(path, data)
}

// Parse decodes a track document. source names the document in errors.
func Parse(source string, data []byte) (*Track, error) {
	if !gjson.ValidBytes(data) {
		return nil, &LoadError{Path: source, Message: "not valid JSON"}
	}
	doc := gjson.ParseBytes(data)
	if !doc.IsObject() {
		return nil, &LoadError{Path: source, Message: "document must be an object"}
	}

	t := &Track{
		SeqID:    doc.Get("seq_id").String(),
		Sequence: strings.ToUpper(doc.Get("sequence").String()),
	}

	features, err := parseFeatures(source, doc.Get("features"))
	if err != nil {
		return nil, err
	}
	t.Features = features

	if err := t.resolveBounds(source, doc.Get("bounds")); err != nil {
		return nil, err
	}
	return t, nil
}

func parseFeatures(source string, list gjson.Result) ([]glyph.Feature, error) {
	if !list.Exists() {
		return nil, nil
	}
	if !list.IsArray() {
		return nil, &LoadError{Path: source, Field: "features", Message: "must be an array"}
	}

	var (
		out []glyph.Feature
		err error
	)
	list.ForEach(func(key, value gjson.Result) bool {
		field := fmt.Sprintf("features.%d", key.Int())
		var f glyph.Feature
		f, err = parseFeature(source, field, value)
		if err != nil {
			return false
		}
		out = append(out, f)
		return true
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func parseFeature(source, field string, v gjson.Result) (glyph.Feature, error) {
	if !v.IsObject() {
		return glyph.Feature{}, &LoadError{Path: source, Field: field, Message: "must be an object"}
	}
	start, end := v.Get("start"), v.Get("end")
	if start.Type != gjson.Number || end.Type != gjson.Number {
		return glyph.Feature{}, &LoadError{Path: source, Field: field, Message: "start and end must be numbers"}
	}
	if end.Int() <= start.Int() {
		return glyph.Feature{}, &LoadError{Path: source, Field: field,
			Message: fmt.Sprintf("end %d must be after start %d", end.Int(), start.Int())}
	}
	strand, err := glyph.ParseStrand(v.Get("strand").String())
	if err != nil {
		return glyph.Feature{}, &LoadError{Path: source, Field: field + ".strand", Message: err.Error()}
	}

	featureType := v.Get("type").String()
	if featureType == "" {
		featureType = "CDS"
	}
	name := v.Get("name").String()
	if name == "" {
		name = v.Get("attributes.gene").String()
	}
	if name == "" {
		name = v.Get("attributes.locus_tag").String()
	}

	return glyph.Feature{
		Left:   int(start.Int()),
		Right:  int(end.Int()),
		Strand: strand,
		Type:   featureType,
		Name:   name,
	}, nil
}

func (t *Track) resolveBounds(source string, b gjson.Result) error {
	switch {
	case b.Exists():
		arr := b.Array()
		if len(arr) != 2 || arr[0].Type != gjson.Number || arr[1].Type != gjson.Number {
			return &LoadError{Path: source, Field: "bounds", Message: "must be [start, end]"}
		}
		t.Bounds = [2]int{int(arr[0].Int()), int(arr[1].Int())}
	case t.HasSequence():
		t.Bounds = [2]int{0, len(t.Sequence)}
	default:
		for _, f := range t.Features {
			t.Bounds[1] = max(t.Bounds[1], f.Right)
		}
	}

	if t.Bounds[1] <= t.Bounds[0] {
		return &LoadError{Path: source, Field: "bounds", Message: "sequence axis is empty"}
	}
	if t.HasSequence() && len(t.Sequence) != t.Len() {
		return &LoadError{Path: source, Field: "sequence",
			Message: fmt.Sprintf("has %d bases, bounds need %d", len(t.Sequence), t.Len())}
	}
	return nil
}
