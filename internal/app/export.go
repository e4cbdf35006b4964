package app

import (
	"github.com/dshills/seqview/internal/renderer/raster"
)

// RenderPNG renders the current view to a PNG at path without a terminal.
// Non-positive dimensions use the raster defaults.
func (app *Application) RenderPNG(path string, width, height int) error {
	opts := raster.DefaultOptions()
	if width > 0 {
		opts.Width = width
	}
	if height > 0 {
		opts.Height = height
	}
	opts.ShowLabels = app.config.Style.ShowLabels

	if err := app.start(float64(opts.Width)); err != nil {
		return err
	}

	img, err := raster.Render(app.frame(), app.palette, opts)
	if err != nil {
		return &OperationError{Op: "render", Target: path, Err: err}
	}
	if err := raster.WriteFile(path, img); err != nil {
		return &OperationError{Op: "write", Target: path, Err: err}
	}
	app.logger.Info("rendered %s to %s", app.controller.Viewport(), path)
	return nil
}

// WriteSnapshot writes the current view as JSON to path. Without a running
// terminal the letter surface is as wide as a default PNG render.
func (app *Application) WriteSnapshot(path string) error {
	if !app.started {
		if err := app.start(float64(raster.DefaultOptions().Width)); err != nil {
			return err
		}
	}
	if err := app.snapshot().WriteFile(path); err != nil {
		return &OperationError{Op: "snapshot", Target: path, Err: err}
	}
	app.logger.Debug("snapshot written to %s", path)
	return nil
}
