package statusline

import (
	"strings"
	"testing"

	"github.com/dshills/seqview/internal/renderer/backend"
)

func newTestLine(width int) (*StatusLine, *backend.NullBackend) {
	b := backend.NewNullBackend(width, 3)
	b.Init()
	s := New()
	s.Resize(width)
	return s, b
}

func TestFormatPosition(t *testing.T) {
	s := New()
	s.SetRange(12000.5, 24400.25)
	s.SetScrollPercent(50)

	if got, want := s.FormatPosition(), "12,000-24,400 (12,400 bp) | 50%"; got != want {
		t.Errorf("FormatPosition() = %q, want %q", got, want)
	}

	s.SetLetters(true, false)
	if got := s.FormatPosition(); !strings.Contains(got, "bp) ACGT |") {
		t.Errorf("letter mode missing: %q", got)
	}

	s.SetLetters(true, true)
	if got := s.FormatPosition(); !strings.Contains(got, "bp) ... |") {
		t.Errorf("stale marker missing: %q", got)
	}
}

func TestRenderStatusBar(t *testing.T) {
	s, b := newTestLine(60)
	s.SetSequence("chr1")
	s.SetRange(100, 200)
	s.Render(b, 2)

	row := b.Row(2)
	if !strings.HasPrefix(row, " BROWSE  chr1") {
		t.Errorf("unexpected status bar %q", row)
	}
	if !strings.HasSuffix(strings.TrimRight(row, " "), "100-200 (100 bp) | 0%") {
		t.Errorf("position missing from %q", row)
	}
}

func TestRenderNarrowDropsPosition(t *testing.T) {
	s, b := newTestLine(16)
	s.SetSequence("chromosome-one")
	s.Render(b, 0)

	if row := b.Row(0); strings.Contains(row, "bp") {
		t.Errorf("position should not fit, got %q", row)
	}
}

func TestRenderPromptAndMessage(t *testing.T) {
	s, b := newTestLine(40)

	s.SetPrompt("/", "dna")
	s.Render(b, 1)
	if row := b.Row(1); !strings.HasPrefix(row, "/dna_") {
		t.Errorf("unexpected prompt %q", row)
	}

	s.SetPrompt("", "")
	s.SetMessage("no feature named xyz", MessageError)
	s.Render(b, 1)
	if row := b.Row(1); !strings.HasPrefix(row, "no feature named xyz") {
		t.Errorf("unexpected message %q", row)
	}
	if s.Message() == "" {
		t.Error("message should be kept")
	}

	s.ClearMessage()
	s.Render(b, 1)
	if row := b.Row(1); !strings.HasPrefix(row, " BROWSE ") {
		t.Errorf("expected status bar after clearing, got %q", row)
	}
}
