// Package app provides the main application structure and coordination
// for the seqview genome browser. It wires the configuration, the track,
// the viewport session and the terminal view, and runs the event loop.
package app

import (
	"errors"
	"io"
	"sync"
	"sync/atomic"

	"github.com/dshills/seqview/internal/config"
	"github.com/dshills/seqview/internal/config/watcher"
	"github.com/dshills/seqview/internal/glyph"
	"github.com/dshills/seqview/internal/notify"
	"github.com/dshills/seqview/internal/renderer"
	"github.com/dshills/seqview/internal/renderer/backend"
	"github.com/dshills/seqview/internal/renderer/session"
	"github.com/dshills/seqview/internal/renderer/viewport"
	"github.com/dshills/seqview/internal/track"
)

// DefaultSnapshotPath is where the snapshot key writes when no path is set.
const DefaultSnapshotPath = "seqview-snapshot.json"

// Application is the central coordinator for all seqview components.
// Everything except Shutdown must be called from the event loop goroutine.
type Application struct {
	opts   Options
	config config.Config

	logger    *Logger
	logCloser io.Closer

	// Data
	track   *track.Track
	source  *track.Source
	styles  glyph.Styles
	palette *glyph.Palette

	// Session
	notifier   *notify.Notifier
	controller *session.Controller
	rng        *viewport.Range
	started    bool
	subs       []*notify.Subscription

	// View
	backend  backend.Backend
	renderer *renderer.Renderer
	watcher  *watcher.Watcher
	dirty    bool

	// Input
	mode      inputMode
	input     string
	lastQuery string
	matches   []int
	matchIdx  int

	// State
	running  atomic.Bool
	done     chan struct{}
	doneOnce sync.Once
}

// Options configures the application.
type Options struct {
	// ConfigPath is the path to the TOML configuration file.
	ConfigPath string

	// TrackPath is the JSON track document to browse.
	TrackPath string

	// NoEnv disables SEQVIEW_* environment overrides.
	NoEnv bool

	// LogLevel and LogFile override the [log] section when set.
	LogLevel string
	LogFile  string

	// LogOutput receives logs when no log file is configured.
	// Nil discards them.
	LogOutput io.Writer

	// InitPos and InitWin override the [view] section when set.
	InitPos *float64
	InitWin float64

	// SnapshotPath is where the snapshot key writes.
	SnapshotPath string
}

// New creates a new Application with the given options.
func New(opts Options) (*Application, error) {
	if opts.SnapshotPath == "" {
		opts.SnapshotPath = DefaultSnapshotPath
	}
	app := &Application{
		opts: opts,
		done: make(chan struct{}),
	}

	if err := app.bootstrap(); err != nil {
		app.Close()
		return nil, err
	}
	return app, nil
}

// Logger returns the application's logger instance.
func (app *Application) Logger() *Logger {
	return app.logger
}

// Config returns the effective configuration.
func (app *Application) Config() config.Config {
	return app.config
}

// Track returns the loaded track.
func (app *Application) Track() *track.Track {
	return app.track
}

// Viewport returns the viewport held by the range control.
func (app *Application) Viewport() viewport.Viewport {
	return app.rng.Viewport()
}

// Controller returns the current session controller.
func (app *Application) Controller() *session.Controller {
	return app.controller
}

// IsRunning returns true while the event loop runs.
func (app *Application) IsRunning() bool {
	return app.running.Load()
}

// SetBackend sets the display backend.
// Must be called before Run().
func (app *Application) SetBackend(b backend.Backend) error {
	if app.running.Load() {
		return ErrAlreadyRunning
	}
	app.backend = b
	return nil
}

// Run starts the application main loop.
// Blocks until the user quits or Shutdown is called.
func (app *Application) Run() error {
	if !app.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer app.running.Store(false)

	if app.backend == nil {
		return ErrNoBackend
	}
	if err := app.backend.Init(); err != nil {
		return &InitError{Component: "backend", Err: err}
	}
	defer app.backend.Shutdown()

	app.renderer = renderer.New(app.backend, app.palette, renderer.Options{
		CellWidthPx: app.config.View.CellWidthPx,
		ShowLabels:  app.config.Style.ShowLabels,
	})
	if err := app.start(app.renderer.WidthPx()); err != nil {
		return err
	}

	app.startWatcher()
	defer app.stopWatcher()

	app.logger.Info("browsing %s (%d features, bounds [%d, %d))",
		app.track.SeqID, len(app.track.Features), app.track.Bounds[0], app.track.Bounds[1])
	app.render()
	return app.eventLoop()
}

// eventLoop is the main application loop.
func (app *Application) eventLoop() error {
	for {
		select {
		case <-app.done:
			return nil
		default:
		}

		ev := app.backend.PollEvent()
		if err := app.handleBackendEvent(ev); err != nil {
			if errors.Is(err, ErrQuit) {
				return nil
			}
			return err
		}
		if app.dirty {
			app.render()
		}
	}
}

// render draws the current frame.
func (app *Application) render() {
	if app.renderer == nil {
		return
	}
	app.renderer.StatusLine().SetMode(app.mode.String())
	app.renderer.Render(app.frame())
	app.dirty = false
}

// frame collects what the view shows.
func (app *Application) frame() renderer.Frame {
	return renderer.Frame{
		SeqID:         app.track.SeqID,
		Viewport:      app.controller.Viewport(),
		Display:       app.controller.Display(),
		Glyphs:        app.controller.GlyphWindow(),
		ScrollPercent: app.rng.ScrollPercent(),
	}
}

// Shutdown asks a running event loop to return. Safe to call from any
// goroutine and more than once.
func (app *Application) Shutdown() {
	app.doneOnce.Do(func() {
		close(app.done)
		if app.backend != nil && app.running.Load() {
			app.backend.PostEvent(backend.Event{Type: backend.EventInterrupt})
		}
	})
}

// Close releases the log file and drops subscriptions.
func (app *Application) Close() error {
	for _, s := range app.subs {
		s.Unsubscribe()
	}
	app.subs = nil
	if app.notifier != nil {
		app.notifier.Close()
	}
	if app.logCloser != nil {
		err := app.logCloser.Close()
		app.logCloser = nil
		return err
	}
	return nil
}
