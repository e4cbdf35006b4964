// Package renderer draws the genome browser view.
//
// The renderer is responsible for:
//   - Placing sequence letters at their justified slots
//   - Drawing the glyph track with arrow heads and labels
//   - The coordinate ruler and status line
//
// Architecture:
//
//	┌─────────────────────────────────────────┐
//	│           Renderer (Facade)             │
//	├─────────────────────────────────────────┤
//	│  Ruler │ Letters │ Glyphs │ StatusLine  │
//	├─────────────────────────────────────────┤
//	│           Backend Abstraction           │
//	├─────────────────────────────────────────┤
//	│  Terminal (tcell) │ NullBackend         │
//	└─────────────────────────────────────────┘
//
// The session controller decides what is visible; the renderer only
// converts a Frame into cells.
//
// Usage:
//
//	b, _ := backend.NewTerminal()
//	r := renderer.New(b, palette, renderer.DefaultOptions())
//	r.Render(frame)
package renderer
