package app

import (
	"github.com/dshills/seqview/internal/config"
	"github.com/dshills/seqview/internal/glyph"
	"github.com/dshills/seqview/internal/notify"
	"github.com/dshills/seqview/internal/renderer/session"
	"github.com/dshills/seqview/internal/renderer/viewport"
	"github.com/dshills/seqview/internal/track"
)

// bootstrap initializes all components in dependency order.
func (app *Application) bootstrap() error {
	// 1. Config
	cfg, err := config.Load(config.Options{Path: app.opts.ConfigPath, NoEnv: app.opts.NoEnv})
	if err != nil {
		return &InitError{Component: "config", Err: err}
	}
	if app.opts.LogLevel != "" {
		cfg.Log.Level = app.opts.LogLevel
	}
	if app.opts.LogFile != "" {
		cfg.Log.File = app.opts.LogFile
	}
	if app.opts.InitPos != nil {
		cfg.View.InitPos = app.opts.InitPos
	}
	if app.opts.InitWin > 0 {
		cfg.View.InitWin = app.opts.InitWin
	}
	app.config = cfg

	// 2. Logging
	app.logger, app.logCloser, err = openLogger(cfg.Log.Level, cfg.Log.File, app.opts.LogOutput)
	if err != nil {
		return &InitError{Component: "logging", Err: err}
	}
	log := app.logger.WithComponent("bootstrap")
	for _, key := range cfg.Unknown {
		log.Warn("unknown config key %s", key)
	}

	// 3. Track
	app.track, err = track.Load(app.opts.TrackPath)
	if err != nil {
		return &InitError{Component: "track", Err: err}
	}
	app.source = track.NewSource(app.track, cfg.Window.SequenceChunk)
	if app.source.Empty() {
		log.Info("track %s carries no sequence; letters will not be shown", app.opts.TrackPath)
	}

	// 4. Glyphs and palette
	app.styles = cfg.Style.Styles()
	records := app.track.Records(app.styles)
	if err := glyph.Validate(records); err != nil {
		return &InitError{Component: "glyphs", Err: err}
	}
	app.palette, err = glyph.NewPalette(cfg.Style.Background)
	if err != nil {
		return &InitError{Component: "palette", Err: err}
	}

	// 5. Session
	app.notifier = notify.New()
	app.controller = app.newController(records)
	app.subscribe()

	// 6. Range control
	vp, inBounds := cfg.View.InitialViewport(app.track.Bounds)
	if !inBounds {
		log.Warn("init_pos %v is outside [%d, %d]; clamping", *cfg.View.InitPos,
			app.track.Bounds[0], app.track.Bounds[1])
	}
	app.rng = viewport.NewRange(vp, cfg.View.Limits(app.track.Bounds))

	log.Debug("loaded %d glyphs, viewport %s", len(records), app.rng.Viewport())
	return nil
}

// newController creates a session over records sharing the application notifier.
func (app *Application) newController(records []glyph.Record) *session.Controller {
	return session.New(records, session.Options{
		LetterWidth: app.config.Window.LetterWidth,
		Margin:      app.config.Window.ReloadMargin,
		MaxRange:    app.config.Window.MaxRange,
		Logger:      app.logger.WithComponent("session"),
		Notifier:    app.notifier,
	})
}

// start sizes the letter surface and loads the first viewport.
// Later calls only resize and refresh.
func (app *Application) start(widthPx float64) error {
	app.controller.SetRenderWidth(widthPx)
	if app.started {
		return app.refresh()
	}

	vp := app.rng.Viewport()
	if err := app.controller.SetBuffer(app.source.BufferFor(vp)); err != nil {
		return &InitError{Component: "sequence", Err: err}
	}
	if _, err := app.controller.Init(vp); err != nil {
		return &InitError{Component: "session", Err: err}
	}
	app.started = true
	app.dirty = true
	return nil
}
