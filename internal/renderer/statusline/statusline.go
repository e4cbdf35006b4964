// Package statusline provides the browser status line and prompt.
package statusline

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/dshills/seqview/internal/renderer/backend"
	"github.com/dshills/seqview/internal/renderer/core"
)

// StatusLine renders the bottom status line including the mode and the
// current coordinates.
type StatusLine struct {
	// Display state
	mode    string // Current mode name (e.g., "BROWSE", "SEARCH")
	seqID   string
	start   float64
	end     float64
	letters bool // Letters are shown base by base
	stale   bool // Sequence buffer is being refreshed
	percent int  // Scroll percentage (0-100)

	// Prompt state
	promptActive bool
	prompt       string
	input        string

	// Message display
	message     string
	messageType MessageType

	printer    *message.Printer
	modeStyles map[string]core.Style
	width      int
}

// MessageType indicates the type of status message.
type MessageType int

const (
	MessageNone MessageType = iota
	MessageInfo
	MessageWarning
	MessageError
)

var (
	colorWhite  = core.ColorFromRGB(255, 255, 255)
	colorBlack  = core.ColorFromRGB(0, 0, 0)
	colorGray   = core.ColorFromRGB(88, 88, 88)
	colorBlue   = core.ColorFromRGB(0, 95, 175)
	colorYellow = core.ColorFromRGB(215, 175, 0)
	colorRed    = core.ColorFromRGB(215, 0, 0)
)

// New creates a new status line.
func New() *StatusLine {
	return &StatusLine{
		mode:       "BROWSE",
		printer:    message.NewPrinter(language.English),
		modeStyles: defaultModeStyles(),
	}
}

func defaultModeStyles() map[string]core.Style {
	return map[string]core.Style{
		"BROWSE": core.DefaultStyle().Bold().WithBackground(colorBlue).WithForeground(colorWhite),
		"SEARCH": core.DefaultStyle().Bold().WithBackground(colorYellow).WithForeground(colorBlack),
		"GOTO":   core.DefaultStyle().Bold().WithBackground(colorYellow).WithForeground(colorBlack),
	}
}

// SetMode updates the displayed mode.
func (s *StatusLine) SetMode(mode string) {
	s.mode = mode
}

// SetSequence updates the displayed sequence name.
func (s *StatusLine) SetSequence(seqID string) {
	s.seqID = seqID
}

// SetRange updates the displayed viewport coordinates.
func (s *StatusLine) SetRange(start, end float64) {
	s.start = start
	s.end = end
}

// SetLetters updates the letter mode indicators.
func (s *StatusLine) SetLetters(visible, stale bool) {
	s.letters = visible
	s.stale = stale
}

// SetScrollPercent updates the scroll percentage.
func (s *StatusLine) SetScrollPercent(percent int) {
	s.percent = percent
}

// SetPrompt activates the prompt line with the given label.
// An empty label deactivates it.
func (s *StatusLine) SetPrompt(label, input string) {
	s.promptActive = label != ""
	s.prompt = label
	s.input = input
}

// SetMessage displays a status message.
func (s *StatusLine) SetMessage(msg string, msgType MessageType) {
	s.message = msg
	s.messageType = msgType
}

// ClearMessage clears the status message.
func (s *StatusLine) ClearMessage() {
	s.message = ""
	s.messageType = MessageNone
}

// Message returns the current message.
func (s *StatusLine) Message() string {
	return s.message
}

// Resize updates the status line width.
func (s *StatusLine) Resize(width int) {
	s.width = width
}

// Render draws the status line to the backend at the given row.
func (s *StatusLine) Render(b backend.Backend, row int) {
	switch {
	case s.promptActive:
		s.renderPrompt(b, row)
	case s.message != "":
		s.renderMessage(b, row)
	default:
		s.renderStatusBar(b, row)
	}
}

// renderStatusBar renders the mode and coordinate line.
func (s *StatusLine) renderStatusBar(b backend.Backend, row int) {
	modeStyle, ok := s.modeStyles[s.mode]
	if !ok {
		modeStyle = core.DefaultStyle().Bold().WithBackground(colorGray)
	}
	barStyle := core.DefaultStyle().WithBackground(colorGray).WithForeground(colorWhite)
	s.clear(b, row, barStyle)

	col := s.put(b, 0, row, " "+s.mode+" ", modeStyle)
	col = s.put(b, col+1, row, s.seqID, barStyle)

	info := s.FormatPosition()
	if start := s.width - core.StringWidth(info) - 1; start > col {
		s.put(b, start, row, info, barStyle)
	}
}

// renderPrompt renders the prompt and its input.
func (s *StatusLine) renderPrompt(b backend.Backend, row int) {
	style := core.DefaultStyle()
	s.clear(b, row, style)
	col := s.put(b, 0, row, s.prompt, style.Bold())
	col = s.put(b, col, row, s.input, style)
	s.put(b, col, row, "_", style.Reverse())
}

// renderMessage renders a status message.
func (s *StatusLine) renderMessage(b backend.Backend, row int) {
	var style core.Style
	switch s.messageType {
	case MessageError:
		style = core.DefaultStyle().WithForeground(colorRed).Bold()
	case MessageWarning:
		style = core.DefaultStyle().WithForeground(colorYellow)
	default:
		style = core.DefaultStyle()
	}
	s.clear(b, row, style)
	s.put(b, 0, row, s.message, style)
}

func (s *StatusLine) clear(b backend.Backend, row int, style core.Style) {
	b.Fill(core.RectFromSize(row, 0, 1, s.width), core.Cell{Rune: ' ', Width: 1, Style: style})
}

// put writes text at (col, row) clipped to the line width and returns the
// column after it.
func (s *StatusLine) put(b backend.Backend, col, row int, text string, style core.Style) int {
	for _, r := range core.Truncate(text, s.width-col) {
		cell := core.NewStyledCell(r, style)
		b.SetCell(col, row, cell)
		col += max(cell.Width, 1)
	}
	return col
}

// FormatPosition formats the coordinate info for the right side.
func (s *StatusLine) FormatPosition() string {
	// Format: "12,001-12,400 (400 bp) ACGT | 50%"
	start := int64(s.start)
	end := int64(s.end)
	result := s.printer.Sprintf("%d-%d (%d bp)", start, end, end-start)
	switch {
	case s.stale:
		result += " ..."
	case s.letters:
		result += " ACGT"
	}
	return result + s.printer.Sprintf(" | %d%%", s.percent)
}
