// Package config provides seqview settings.
//
// Settings come from built-in defaults, an optional TOML file and SEQVIEW_*
// environment variables, in increasing order of precedence:
//
//	[window]  letter_width, reload_margin, max_range, sequence_chunk
//	[view]    init_pos, init_win, max_interval, min_interval, cell_width_px
//	[style]   arrow_colors, box_colors, arrow_alpha, box_alpha, background, show_labels
//	[log]     level, file
//
// The window section is fixed for a session. The style section may be
// reloaded while running; see the watcher package.
package config

import (
	"errors"

	"github.com/dshills/seqview/internal/config/loader"
	"github.com/dshills/seqview/internal/glyph"
	"github.com/dshills/seqview/internal/renderer/letters"
	"github.com/dshills/seqview/internal/renderer/window"
)

// Config is the complete seqview configuration.
type Config struct {
	Window WindowConfig
	View   ViewConfig
	Style  StyleConfig
	Log    LogConfig

	// Unknown lists setting paths that were present but not recognized.
	Unknown []string
}

// WindowConfig holds the windowing parameters, constant for a session.
type WindowConfig struct {
	// LetterWidth is the estimated pixel width of one character.
	LetterWidth float64
	// ReloadMargin is the distance to a loaded edge that triggers a glyph reload.
	ReloadMargin float64
	// MaxRange is how far beyond the viewport a glyph reload extends.
	MaxRange float64
	// SequenceChunk is the number of bases served per sequence buffer.
	SequenceChunk int
}

// ViewConfig holds the initial view and zoom limits.
type ViewConfig struct {
	// InitPos is the initial centre. Nil starts at the sequence start.
	InitPos *float64
	InitWin float64

	MaxInterval float64
	MinInterval float64

	// CellWidthPx is the pixel width assigned to one terminal cell.
	CellWidthPx float64
}

// StyleConfig holds glyph colours and label visibility.
type StyleConfig struct {
	ArrowColors []string
	BoxColors   []string
	ArrowAlpha  float64
	BoxAlpha    float64
	Background  string
	ShowLabels  bool
}

// LogConfig selects log level and destination.
type LogConfig struct {
	Level string
	File  string
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Window: WindowConfig{
			LetterWidth:   letters.DefaultLetterWidth,
			ReloadMargin:  window.DefaultMargin,
			MaxRange:      window.DefaultMaxRange,
			SequenceChunk: 50000,
		},
		View: ViewConfig{
			InitWin:     10000,
			MaxInterval: 100000,
			MinInterval: 10,
			CellWidthPx: letters.DefaultLetterWidth,
		},
		Style: DefaultStyle(),
		Log: LogConfig{
			Level: "info",
		},
	}
}

// DefaultStyle returns the built-in style section.
func DefaultStyle() StyleConfig {
	return StyleConfig{
		ArrowColors: append([]string(nil), glyph.DefaultArrowColors...),
		BoxColors:   append([]string(nil), glyph.DefaultBoxColors...),
		ArrowAlpha:  0.8,
		BoxAlpha:    1.0,
		Background:  "#000000",
		ShowLabels:  true,
	}
}

// Options configures Load.
type Options struct {
	// Path is the TOML file. Empty or missing files are skipped.
	Path string

	// EnvPrefix defaults to SEQVIEW_. Set NoEnv to skip the environment.
	EnvPrefix string
	NoEnv     bool

	// FS overrides the file system used to read Path.
	FS loader.FileSystem
}

// Load reads and validates the configuration.
func Load(opts Options) (Config, error) {
	fsys := opts.FS
	if fsys == nil {
		fsys = loader.DefaultFS()
	}

	merged, err := loader.NewTOMLLoaderWithFS(fsys, opts.Path).Load()
	if err != nil {
		return Config{}, err
	}

	if !opts.NoEnv {
		prefix := opts.EnvPrefix
		if prefix == "" {
			prefix = loader.DefaultEnvPrefix
		}
		env, err := loader.NewEnvLoader(prefix).Load()
		if err != nil {
			return Config{}, err
		}
		merged = loader.DeepMerge(merged, env)
	}

	cfg, err := Decode(merged)
	if err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadStyle re-reads only the style section of the file at path.
// Environment overrides are not applied; the style section is the part of the
// configuration that may change while the browser runs.
func LoadStyle(path string, fsys loader.FileSystem) (StyleConfig, error) {
	if fsys == nil {
		fsys = loader.DefaultFS()
	}
	m, err := loader.NewTOMLLoaderWithFS(fsys, path).Load()
	if err != nil {
		return StyleConfig{}, err
	}
	style, err := DecodeStyle(m)
	if err != nil {
		return StyleConfig{}, err
	}
	if err := style.Validate(); err != nil {
		return StyleConfig{}, err
	}
	return style, nil
}

// Validate checks every setting and returns all failures joined.
func (c Config) Validate() error {
	var errs []error
	positive := func(path string, v float64) {
		if v <= 0 {
			errs = append(errs, &ValidationError{Path: path, Message: "must be positive", Value: v, Code: ErrCodeOutOfRange})
		}
	}
	nonNegative := func(path string, v float64) {
		if v < 0 {
			errs = append(errs, &ValidationError{Path: path, Message: "must not be negative", Value: v, Code: ErrCodeOutOfRange})
		}
	}

	positive("window.letter_width", c.Window.LetterWidth)
	nonNegative("window.reload_margin", c.Window.ReloadMargin)
	nonNegative("window.max_range", c.Window.MaxRange)
	positive("window.sequence_chunk", float64(c.Window.SequenceChunk))

	positive("view.init_win", c.View.InitWin)
	positive("view.max_interval", c.View.MaxInterval)
	nonNegative("view.min_interval", c.View.MinInterval)
	positive("view.cell_width_px", c.View.CellWidthPx)
	if c.View.MinInterval > c.View.MaxInterval {
		errs = append(errs, &ValidationError{
			Path:    "view.min_interval",
			Message: "must not exceed view.max_interval",
			Value:   c.View.MinInterval,
			Code:    ErrCodeInconsistent,
		})
	}

	if err := c.Style.Validate(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Validate checks the style section.
func (s StyleConfig) Validate() error {
	var errs []error
	for _, group := range []struct {
		path   string
		colors []string
	}{
		{"style.arrow_colors", s.ArrowColors},
		{"style.box_colors", s.BoxColors},
		{"style.background", []string{s.Background}},
	} {
		if err := glyph.ValidateColors(group.colors); err != nil {
			errs = append(errs, &ValidationError{Path: group.path, Message: err.Error(), Value: group.colors, Code: ErrCodeInvalidColor})
		}
	}
	for _, a := range []struct {
		path string
		v    float64
	}{
		{"style.arrow_alpha", s.ArrowAlpha},
		{"style.box_alpha", s.BoxAlpha},
	} {
		if a.v < 0 || a.v > 1 {
			errs = append(errs, &ValidationError{Path: a.path, Message: "must be between 0 and 1", Value: a.v, Code: ErrCodeOutOfRange})
		}
	}
	return errors.Join(errs...)
}

// Styles returns the glyph style table for this style section.
func (s StyleConfig) Styles() glyph.Styles {
	return glyph.DefaultStyles(s.ArrowColors, s.BoxColors).WithAlpha(s.ArrowAlpha, s.BoxAlpha)
}
