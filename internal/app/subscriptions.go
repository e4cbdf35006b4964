package app

import (
	"github.com/dshills/seqview/internal/config"
	"github.com/dshills/seqview/internal/config/watcher"
	"github.com/dshills/seqview/internal/glyph"
	"github.com/dshills/seqview/internal/notify"
	"github.com/dshills/seqview/internal/renderer/backend"
	"github.com/dshills/seqview/internal/renderer/statusline"
	"github.com/dshills/seqview/internal/renderer/window"
)

// subscribe connects the session outputs to the view.
func (app *Application) subscribe() {
	log := app.logger.WithComponent("notify")

	app.subs = append(app.subs,
		app.notifier.SubscribePath(notify.PathDisplayLetters, func(notify.Change) {
			app.dirty = true
		}),
		app.notifier.SubscribePath(notify.PathGlyphWindow, func(c notify.Change) {
			if recs, ok := c.Value.([]glyph.Record); ok {
				log.Debug("glyph window now holds %d records", len(recs))
			}
			app.dirty = true
		}),
		app.notifier.SubscribePath(notify.PathLoadedRange, func(c notify.Change) {
			if lw, ok := c.Value.(window.LoadedWindow); ok {
				log.Debug("loaded range %s", lw)
			}
		}),
		app.notifier.SubscribePath(notify.PathStyle, func(c notify.Change) {
			if st, ok := c.Value.(config.StyleConfig); ok {
				app.applyStyle(st)
			}
		}),
	)
}

// reloadStyle re-reads the style section of path and publishes it.
func (app *Application) reloadStyle(path string) {
	st, err := config.LoadStyle(path, nil)
	if err != nil {
		app.setMessage("style reload: "+err.Error(), statusline.MessageError)
		return
	}
	app.notifier.NotifyUpdate(notify.PathStyle, st, "watcher")
}

// applyStyle rebuilds the glyph records with st and swaps in a new session
// positioned at the current viewport.
func (app *Application) applyStyle(st config.StyleConfig) {
	palette, err := glyph.NewPalette(st.Background)
	if err != nil {
		app.setMessage("style reload: "+err.Error(), statusline.MessageError)
		return
	}

	old := app.controller
	app.config.Style = st
	app.styles = st.Styles()
	app.palette = palette

	ctrl := app.newController(app.track.Records(app.styles))
	ctrl.SetRenderWidth(old.RenderWidth())
	if err := ctrl.SetBuffer(old.Buffer()); err != nil {
		app.setMessage("style reload: "+err.Error(), statusline.MessageError)
		return
	}
	app.controller = ctrl
	if app.started {
		if _, err := ctrl.Init(app.rng.Viewport()); err != nil {
			app.setMessage("style reload: "+err.Error(), statusline.MessageError)
			return
		}
	}

	if app.renderer != nil {
		app.renderer.SetStyle(palette, st.ShowLabels)
	}
	app.setMessage("style reloaded", statusline.MessageInfo)
}

// startWatcher watches the config file and posts style reloads to the
// event loop.
func (app *Application) startWatcher() {
	if app.opts.ConfigPath == "" || app.backend == nil {
		return
	}
	log := app.logger.WithComponent("watcher")

	w, err := watcher.New(watcher.WithErrorHandler(func(err error) {
		log.Warn("config watcher: %v", err)
	}))
	if err != nil {
		log.Warn("config watcher unavailable: %v", err)
		return
	}
	if err := w.Watch(app.opts.ConfigPath); err != nil {
		log.Warn("watch %s: %v", app.opts.ConfigPath, err)
		w.Close()
		return
	}

	b := app.backend
	w.OnChange(func(ev watcher.Event) {
		if ev.Op == watcher.OpRemove {
			return
		}
		b.PostEvent(backend.Event{Type: backend.EventInterrupt, Data: styleReload{path: ev.Path}})
	})
	w.Start()
	app.watcher = w
	log.Debug("watching %s", app.opts.ConfigPath)
}

func (app *Application) stopWatcher() {
	if app.watcher != nil {
		app.watcher.Close()
		app.watcher = nil
	}
}
