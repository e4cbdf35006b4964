package letters

import (
	"errors"
	"strings"
	"testing"

	"github.com/dshills/seqview/internal/renderer/viewport"
)

// testBuffer returns a buffer of repeating ACGT starting at start.
func testBuffer(start, n int) Buffer {
	return NewBuffer(start, strings.Repeat("ACGT", n/4+1)[:n])
}

func TestBufferValidate(t *testing.T) {
	if err := NewBuffer(10, "ACGT").Validate(); err != nil {
		t.Errorf("expected valid buffer, got %v", err)
	}

	bad := Buffer{Bounds: [2]int{0, 10}, Letters: "ACGT"}
	if err := bad.Validate(); !errors.Is(err, ErrInvalidBuffer) {
		t.Errorf("expected ErrInvalidBuffer, got %v", err)
	}
}

func TestProjectLettersShown(t *testing.T) {
	// 9.6 * 20 = 192 < 200
	p := NewProjector(DefaultLetterWidth)
	buf := testBuffer(0, 1000)

	proj, err := p.Project(viewport.New(100, 120), buf, 200)
	if err != nil {
		t.Fatalf("Project failed: %v", err)
	}
	if proj.Mode != ModeLetter {
		t.Errorf("expected letter mode, got %s", proj.Mode)
	}
	if len(proj.Text) != 20 {
		t.Errorf("expected 20 letters, got %d", len(proj.Text))
	}
	if proj.First != 100 {
		t.Errorf("expected first base 100, got %d", proj.First)
	}
	if proj.Stale {
		t.Error("covered buffer should not be stale")
	}
}

func TestProjectLettersHidden(t *testing.T) {
	p := NewProjector(DefaultLetterWidth)

	proj, err := p.Project(viewport.New(1000, 50000), testBuffer(0, 100), 800)
	if err != nil {
		t.Fatalf("Project failed: %v", err)
	}
	if proj.Mode != ModeGlyph {
		t.Errorf("expected glyph mode, got %s", proj.Mode)
	}
	if !proj.Empty() {
		t.Errorf("expected empty display, got %q", proj.Text)
	}
	if proj.Stale {
		t.Error("hidden letters never need a buffer")
	}
}

func TestProjectThreshold(t *testing.T) {
	p := NewProjector(10)
	buf := testBuffer(0, 100)

	// Exactly equal pitch hides letters
	proj, _ := p.Project(viewport.New(0, 20), buf, 200)
	if proj.Mode != ModeGlyph {
		t.Error("pitch equal to width should hide letters")
	}

	proj, _ = p.Project(viewport.New(0, 19.9), buf, 200)
	if proj.Mode != ModeLetter {
		t.Error("pitch below width should show letters")
	}
}

func TestProjectMatchesBuffer(t *testing.T) {
	p := NewProjector(DefaultLetterWidth)
	buf := testBuffer(5000, 200)

	tests := []viewport.Viewport{
		viewport.New(5000, 5010),
		viewport.New(5010.4, 5030.9),
		viewport.New(5150.99, 5199.5),
		viewport.New(5000.5, 5001.5),
	}

	for _, vp := range tests {
		proj, err := p.Project(vp, buf, 1000)
		if err != nil {
			t.Fatalf("Project(%v) failed: %v", vp, err)
		}
		want := vp.LastBase() - vp.FirstBase()
		if len(proj.Text) != want {
			t.Errorf("Project(%v): expected %d letters, got %d", vp, want, len(proj.Text))
			continue
		}
		for i := 0; i < len(proj.Text); i++ {
			if proj.Text[i] != buf.Letters[vp.FirstBase()+i-buf.Bounds[0]] {
				t.Errorf("Project(%v): letter %d mismatch", vp, i)
				break
			}
		}
	}
}

func TestProjectStaleBuffer(t *testing.T) {
	p := NewProjector(DefaultLetterWidth)

	tests := []struct {
		name string
		vp   viewport.Viewport
		buf  Buffer
	}{
		{"before buffer", viewport.New(90, 110), testBuffer(100, 100)},
		{"after buffer", viewport.New(190, 210), testBuffer(100, 100)},
		{"no buffer", viewport.New(0, 10), Buffer{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			proj, err := p.Project(tt.vp, tt.buf, 1000)
			if err != nil {
				t.Fatalf("stale buffer should not be an error: %v", err)
			}
			if !proj.Stale {
				t.Error("expected stale projection")
			}
			if !proj.Empty() {
				t.Errorf("stale projection must not carry partial text, got %q", proj.Text)
			}
		})
	}
}

func TestProjectInvalidViewport(t *testing.T) {
	p := NewProjector(DefaultLetterWidth)

	_, err := p.Project(viewport.New(10, 10), testBuffer(0, 100), 200)
	if !errors.Is(err, viewport.ErrInvalidViewport) {
		t.Errorf("expected ErrInvalidViewport, got %v", err)
	}
}

func TestProjectorDefaultWidth(t *testing.T) {
	var p Projector
	if !p.Visible(viewport.New(100, 120), 200) {
		t.Error("zero projector should use the default letter width")
	}
}
