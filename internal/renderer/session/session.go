// Package session owns the per-browser view state and recomputes the letter
// display and the glyph window whenever the viewport changes.
//
// A Controller is driven by a single host event loop. It performs no I/O and
// never blocks; fresh sequence buffers are supplied by the host when a result
// is marked stale.
package session

import (
	"github.com/google/uuid"

	"github.com/dshills/seqview/internal/glyph"
	"github.com/dshills/seqview/internal/notify"
	"github.com/dshills/seqview/internal/renderer/letters"
	"github.com/dshills/seqview/internal/renderer/viewport"
	"github.com/dshills/seqview/internal/renderer/window"
)

// Logger is the logging surface the controller needs.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Warn(string, ...any)  {}
func (nopLogger) Error(string, ...any) {}

// Options configures a Controller.
type Options struct {
	// LetterWidth is the per-character pixel estimate. Zero means the default.
	LetterWidth float64

	// Margin is the distance to a loaded edge that triggers a glyph reload.
	Margin float64

	// MaxRange is how far beyond the viewport a reload extends.
	MaxRange float64

	// RenderWidth is the pixel width of the letter surface.
	RenderWidth float64

	Logger   Logger
	Notifier *notify.Notifier
}

// DefaultOptions returns the stock prefetch parameters.
func DefaultOptions() Options {
	return Options{
		LetterWidth: letters.DefaultLetterWidth,
		Margin:      window.DefaultMargin,
		MaxRange:    window.DefaultMaxRange,
	}
}

// Result reports what a viewport change did.
type Result struct {
	// LettersChanged is set whenever the letter display was signalled,
	// which is every successful call.
	LettersChanged bool

	// TextChanged is set when the letters or their layout differ from
	// the previous display.
	TextChanged bool

	GlyphsChanged      bool
	LoadedRangeChanged bool

	// Stale is set when the sequence buffer does not cover the viewport.
	Stale bool

	Display letters.Display
	Reload  window.Reload
}

// Controller is the viewport change entry point.
// It is not safe for concurrent use.
type Controller struct {
	id        string
	projector *letters.Projector
	manager   *window.Manager
	notifier  *notify.Notifier
	log       Logger

	buffer  letters.Buffer
	widthPx float64

	vp      viewport.Viewport
	display letters.Display
}

// New creates a controller over all, which must be sorted by span start.
func New(all []glyph.Record, opts Options) *Controller {
	if opts.Logger == nil {
		opts.Logger = nopLogger{}
	}
	if opts.Notifier == nil {
		opts.Notifier = notify.New()
	}
	return &Controller{
		id:        uuid.New().String(),
		projector: letters.NewProjector(opts.LetterWidth),
		manager:   window.NewManager(all, opts.Margin, opts.MaxRange),
		notifier:  opts.Notifier,
		log:       opts.Logger,
		widthPx:   opts.RenderWidth,
	}
}

// ID returns the session id used as the source of notifications.
func (c *Controller) ID() string {
	return c.id
}

// Notifier returns the notifier carrying display change signals.
func (c *Controller) Notifier() *notify.Notifier {
	return c.notifier
}

// Subscribe registers an observer for changes under path.
// An empty path receives every change.
func (c *Controller) Subscribe(path string, obs notify.Observer) *notify.Subscription {
	return c.notifier.SubscribePath(path, obs)
}

// SetBuffer replaces the sequence buffer. The next viewport change uses it.
func (c *Controller) SetBuffer(buf letters.Buffer) error {
	if err := buf.Validate(); err != nil {
		return err
	}
	c.buffer = buf
	return nil
}

// Buffer returns the current sequence buffer.
func (c *Controller) Buffer() letters.Buffer {
	return c.buffer
}

// SetRenderWidth sets the pixel width of the letter surface.
func (c *Controller) SetRenderWidth(px float64) {
	c.widthPx = px
}

// RenderWidth returns the pixel width of the letter surface.
func (c *Controller) RenderWidth() float64 {
	return c.widthPx
}

// Viewport returns the last accepted viewport.
func (c *Controller) Viewport() viewport.Viewport {
	return c.vp
}

// Display returns the current letter display.
func (c *Controller) Display() letters.Display {
	return c.display
}

// GlyphWindow returns the records currently loaded for rendering.
func (c *Controller) GlyphWindow() []glyph.Record {
	return c.manager.Window()
}

// AllGlyphs returns the full record set.
func (c *Controller) AllGlyphs() []glyph.Record {
	return c.manager.All()
}

// Loaded returns the loaded window bounds.
func (c *Controller) Loaded() window.LoadedWindow {
	return c.manager.Loaded()
}

// Init sets the first viewport and loads the initial glyph window around it
// regardless of the reload trigger.
func (c *Controller) Init(vp viewport.Viewport) (Result, error) {
	return c.apply(vp, true)
}

// OnViewportChange recomputes the outputs for vp.
// The letter display is always recomputed and signalled; the glyph window is
// replaced only when vp nears a loaded edge and the new slice differs.
// An invalid viewport is rejected with viewport.ErrInvalidViewport and leaves
// every output untouched.
func (c *Controller) OnViewportChange(vp viewport.Viewport) (Result, error) {
	return c.apply(vp, false)
}

func (c *Controller) apply(vp viewport.Viewport, force bool) (Result, error) {
	if err := vp.Validate(); err != nil {
		c.log.Error("rejected viewport: %v", err)
		return Result{}, err
	}

	display, err := c.projector.Compute(vp, c.buffer, c.widthPx)
	if err != nil {
		c.log.Error("letter display for %s: %v", vp, err)
		return Result{}, err
	}

	var reload window.Reload
	if force {
		reload = c.manager.Load(vp)
		reload.Triggered = true
	} else {
		reload = c.manager.MaybeReload(vp)
	}

	res := Result{
		LettersChanged:     true,
		TextChanged:        display != c.display,
		GlyphsChanged:      reload.Changed,
		LoadedRangeChanged: reload.Changed,
		Stale:              display.Stale,
		Display:            display,
		Reload:             reload,
	}
	c.vp = vp
	c.display = display

	if res.Stale {
		c.log.Debug("sequence buffer [%d, %d) does not cover %s",
			c.buffer.Bounds[0], c.buffer.Bounds[1], vp)
	}
	if reload.Changed {
		c.log.Debug("glyph window reloaded: indices [%d, %d] loaded %s zone %s",
			reload.First, reload.Last, reload.Loaded, reload.Zone)
	}

	c.emit(res)
	return res, nil
}

// emit signals every mutated output once all mutations are complete.
func (c *Controller) emit(res Result) {
	b := c.notifier.NewBatch()
	if res.Display.Empty() {
		b.Clear(notify.PathDisplayLetters, c.id)
	} else {
		b.Update(notify.PathDisplayLetters, res.Display, c.id)
	}
	if res.GlyphsChanged {
		b.Update(notify.PathGlyphWindow, c.manager.Window(), c.id)
	}
	if res.LoadedRangeChanged {
		b.Update(notify.PathLoadedRange, res.Reload.Loaded, c.id)
	}
	b.Commit()
}
