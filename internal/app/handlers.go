package app

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dshills/seqview/internal/glyph"
	"github.com/dshills/seqview/internal/renderer/backend"
	"github.com/dshills/seqview/internal/renderer/statusline"
	"github.com/dshills/seqview/internal/renderer/viewport"
	"github.com/dshills/seqview/internal/track"
)

// Pan and zoom steps for the browse keys.
const (
	panStep   = 0.1
	zoomIn    = 0.5
	zoomOut   = 2.0
	maxSearch = 50
)

// ErrBadPosition is returned for goto input that is not a position or range.
var ErrBadPosition = errors.New("expected a position or start-end range")

// inputMode selects how key events are interpreted.
type inputMode uint8

const (
	modeBrowse inputMode = iota
	modeSearch
	modeGoto
)

// String returns the mode name shown in the status line.
func (m inputMode) String() string {
	switch m {
	case modeSearch:
		return "SEARCH"
	case modeGoto:
		return "GOTO"
	default:
		return "BROWSE"
	}
}

func (m inputMode) prompt() string {
	switch m {
	case modeSearch:
		return "/"
	case modeGoto:
		return "goto: "
	default:
		return ""
	}
}

// styleReload is posted by the config watcher when the style file changes.
type styleReload struct {
	path string
}

// handleBackendEvent processes a single backend event.
func (app *Application) handleBackendEvent(ev backend.Event) error {
	switch ev.Type {
	case backend.EventKey:
		return app.handleKey(ev)
	case backend.EventResize:
		return app.handleResize(ev.Width, ev.Height)
	case backend.EventInterrupt:
		if r, ok := ev.Data.(styleReload); ok {
			app.reloadStyle(r.path)
		}
	}
	return nil
}

func (app *Application) handleResize(width, height int) error {
	if app.renderer == nil {
		return nil
	}
	app.renderer.Resize(width, height)
	app.controller.SetRenderWidth(app.renderer.WidthPx())
	app.dirty = true
	return app.refresh()
}

func (app *Application) handleKey(ev backend.Event) error {
	if ev.Key == backend.KeyCtrlC {
		return ErrQuit
	}
	if app.mode != modeBrowse {
		return app.handlePromptKey(ev)
	}
	return app.handleBrowseKey(ev)
}

func (app *Application) handleBrowseKey(ev backend.Event) error {
	moved := false
	limits := app.rng.Limits()

	switch ev.Key {
	case backend.KeyLeft:
		moved = app.rng.PanPages(-panStep)
	case backend.KeyRight:
		moved = app.rng.PanPages(panStep)
	case backend.KeyPageUp:
		moved = app.rng.PanPages(-1)
	case backend.KeyPageDown:
		moved = app.rng.PanPages(1)
	case backend.KeyUp:
		moved = app.rng.ZoomCenter(zoomIn)
	case backend.KeyDown:
		moved = app.rng.ZoomCenter(zoomOut)
	case backend.KeyHome:
		moved = app.rng.PanBy(limits.Lower - app.rng.Viewport().Start)
	case backend.KeyEnd:
		moved = app.rng.PanBy(limits.Upper - app.rng.Viewport().End)
	case backend.KeyEscape:
		app.clearMessage()
	case backend.KeyRune:
		switch ev.Rune {
		case 'q':
			return ErrQuit
		case 'h':
			moved = app.rng.PanPages(-panStep)
		case 'l':
			moved = app.rng.PanPages(panStep)
		case 'H':
			moved = app.rng.PanPages(-1)
		case 'L':
			moved = app.rng.PanPages(1)
		case '+', '=':
			moved = app.rng.ZoomCenter(zoomIn)
		case '-', '_':
			moved = app.rng.ZoomCenter(zoomOut)
		case '/':
			app.enterMode(modeSearch)
		case 'g':
			app.enterMode(modeGoto)
		case 'n':
			moved = app.nextMatch()
		case 's':
			app.snapshotKey()
		}
	}

	if moved {
		return app.refresh()
	}
	return nil
}

func (app *Application) handlePromptKey(ev backend.Event) error {
	switch ev.Key {
	case backend.KeyEscape:
		app.enterMode(modeBrowse)
	case backend.KeyBackspace:
		if app.input != "" {
			r := []rune(app.input)
			app.input = string(r[:len(r)-1])
		}
	case backend.KeyEnter:
		mode, input := app.mode, app.input
		app.enterMode(modeBrowse)
		return app.execute(mode, input)
	case backend.KeyRune:
		app.input += string(ev.Rune)
	}
	app.syncPrompt()
	return nil
}

func (app *Application) enterMode(m inputMode) {
	app.mode = m
	app.input = ""
	app.syncPrompt()
}

func (app *Application) syncPrompt() {
	app.dirty = true
	if app.renderer == nil {
		return
	}
	app.renderer.StatusLine().SetPrompt(app.mode.prompt(), app.input)
}

func (app *Application) execute(mode inputMode, input string) error {
	var moved bool
	switch mode {
	case modeSearch:
		moved = app.search(input)
	case modeGoto:
		var err error
		moved, err = app.gotoPosition(input)
		if err != nil {
			app.setMessage(fmt.Sprintf("goto %q: %v", input, err), statusline.MessageError)
			return nil
		}
	}
	if moved {
		return app.refresh()
	}
	return nil
}

// search jumps to the glyph named query, or to the first glyph whose name
// contains it. Later matches are reached with nextMatch.
func (app *Application) search(query string) bool {
	all := app.controller.AllGlyphs()
	app.lastQuery = query
	app.matchIdx = 0
	if i := glyph.Find(all, query); i >= 0 {
		app.matches = []int{i}
	} else {
		app.matches = glyph.Search(all, query, maxSearch)
	}
	if len(app.matches) == 0 {
		app.setMessage(fmt.Sprintf("search %q: %v", query, ErrNotFound), statusline.MessageWarning)
		return false
	}
	if len(app.matches) > 1 {
		app.setMessage(fmt.Sprintf("%d features match %q", len(app.matches), query), statusline.MessageInfo)
	} else {
		app.clearMessage()
	}
	return app.showMatch()
}

func (app *Application) nextMatch() bool {
	if len(app.matches) == 0 {
		return false
	}
	app.matchIdx = (app.matchIdx + 1) % len(app.matches)
	return app.showMatch()
}

func (app *Application) showMatch() bool {
	rec := app.controller.AllGlyphs()[app.matches[app.matchIdx]]
	lo, hi := rec.Span()
	app.logger.Debug("showing %s at [%g, %g]", rec.Name, lo, hi)
	return app.rng.ShowRange(lo, hi)
}

// gotoPosition centres on a position, or shows a start-end range exactly.
// Thousands separators are accepted.
func (app *Application) gotoPosition(input string) (bool, error) {
	input = strings.ReplaceAll(strings.TrimSpace(input), ",", "")
	if input == "" {
		return false, ErrBadPosition
	}
	if lo, hi, ok := strings.Cut(input, "-"); ok {
		start, err1 := strconv.ParseFloat(strings.TrimSpace(lo), 64)
		end, err2 := strconv.ParseFloat(strings.TrimSpace(hi), 64)
		if err1 != nil || err2 != nil {
			return false, ErrBadPosition
		}
		vp := viewport.New(start, end)
		if err := vp.Validate(); err != nil {
			return false, err
		}
		return app.rng.SetViewport(vp), nil
	}
	pos, err := strconv.ParseFloat(input, 64)
	if err != nil {
		return false, ErrBadPosition
	}
	return app.rng.CenterOn(pos), nil
}

// refresh pushes the range control viewport into the session. When the
// letter buffer no longer covers the viewport a fresh one is served and the
// display recomputed.
func (app *Application) refresh() error {
	vp := app.rng.Viewport()
	res, err := app.controller.OnViewportChange(vp)
	if err != nil {
		return &OperationError{Op: "viewport", Target: vp.String(), Err: err}
	}
	if res.Stale && !app.source.Empty() {
		if err := app.controller.SetBuffer(app.source.BufferFor(vp)); err != nil {
			return &OperationError{Op: "sequence", Target: vp.String(), Err: err}
		}
		if _, err := app.controller.OnViewportChange(vp); err != nil {
			return &OperationError{Op: "viewport", Target: vp.String(), Err: err}
		}
	}
	app.dirty = true
	return nil
}

func (app *Application) snapshotKey() {
	if err := app.WriteSnapshot(app.opts.SnapshotPath); err != nil {
		app.setMessage(err.Error(), statusline.MessageError)
		return
	}
	app.setMessage("snapshot written to "+app.opts.SnapshotPath, statusline.MessageInfo)
}

// snapshot describes the current view, listing the loaded glyphs that
// overlap the viewport.
func (app *Application) snapshot() track.Snapshot {
	vp := app.controller.Viewport()
	var visible []glyph.Record
	for _, rec := range app.controller.GlyphWindow() {
		if lo, hi := rec.Span(); vp.Overlaps(lo, hi) {
			visible = append(visible, rec)
		}
	}
	return track.Snapshot{
		Session:  app.controller.ID(),
		SeqID:    app.track.SeqID,
		Viewport: vp,
		Display:  app.controller.Display(),
		Loaded:   app.controller.Loaded(),
		Glyphs:   visible,
	}
}

func (app *Application) setMessage(msg string, t statusline.MessageType) {
	switch t {
	case statusline.MessageError:
		app.logger.Error("%s", msg)
	case statusline.MessageWarning:
		app.logger.Warn("%s", msg)
	default:
		app.logger.Info("%s", msg)
	}
	app.dirty = true
	if app.renderer != nil {
		app.renderer.StatusLine().SetMessage(msg, t)
	}
}

func (app *Application) clearMessage() {
	app.dirty = true
	if app.renderer != nil {
		app.renderer.StatusLine().ClearMessage()
	}
}
