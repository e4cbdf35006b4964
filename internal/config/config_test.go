package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "seqview.toml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Window.LetterWidth != 9.6 {
		t.Errorf("letter_width = %v, want 9.6", cfg.Window.LetterWidth)
	}
	if cfg.Window.ReloadMargin != 2000 || cfg.Window.MaxRange != 20000 {
		t.Errorf("unexpected prefetch defaults: %+v", cfg.Window)
	}
	if cfg.View.InitWin != 10000 || cfg.View.MaxInterval != 100000 {
		t.Errorf("unexpected view defaults: %+v", cfg.View)
	}
	if !reflect.DeepEqual(cfg.Style.ArrowColors, []string{"purple", "orange"}) {
		t.Errorf("arrow_colors = %v", cfg.Style.ArrowColors)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
[window]
reload_margin = 1000
max_range = 5000

[view]
init_pos = 25000
min_interval = 20

[style]
box_colors = ["steelblue"]
show_labels = false

[extras]
ignored = 1
`)

	cfg, err := Load(Options{Path: path, NoEnv: true})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Window.ReloadMargin != 1000 || cfg.Window.MaxRange != 5000 {
		t.Errorf("window not decoded: %+v", cfg.Window)
	}
	if cfg.Window.LetterWidth != 9.6 {
		t.Error("unset settings should keep their defaults")
	}
	if cfg.View.InitPos == nil || *cfg.View.InitPos != 25000 {
		t.Errorf("init_pos = %v, want 25000", cfg.View.InitPos)
	}
	if cfg.Style.ShowLabels {
		t.Error("show_labels should be false")
	}
	if !reflect.DeepEqual(cfg.Style.BoxColors, []string{"steelblue"}) {
		t.Errorf("box_colors = %v", cfg.Style.BoxColors)
	}
	if !reflect.DeepEqual(cfg.Unknown, []string{"extras.ignored"}) {
		t.Errorf("Unknown = %v, want [extras.ignored]", cfg.Unknown)
	}
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(Options{Path: filepath.Join(t.TempDir(), "none.toml"), NoEnv: true})
	if err != nil {
		t.Fatalf("missing file should fall back to defaults: %v", err)
	}
	if cfg.Window.MaxRange != 20000 {
		t.Errorf("expected defaults, got %+v", cfg.Window)
	}
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "[window]\nmax_range = 5000\n")
	t.Setenv("SEQVIEW_WINDOW_MAX_RANGE", "7000")
	t.Setenv("SEQVIEW_STYLE_BACKGROUND", "#202020")

	cfg, err := Load(Options{Path: path})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Window.MaxRange != 7000 {
		t.Errorf("max_range = %v, want 7000 from environment", cfg.Window.MaxRange)
	}
	if cfg.Style.Background != "#202020" {
		t.Errorf("background = %q, want #202020", cfg.Style.Background)
	}
}

func TestLoadParseError(t *testing.T) {
	path := writeConfig(t, "[window\n")

	_, err := Load(Options{Path: path, NoEnv: true})
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("expected *ParseError, got %v", err)
	}
}

func TestDecodeTypeErrors(t *testing.T) {
	_, err := Decode(map[string]any{
		"window": map[string]any{"letter_width": "wide"},
		"style":  map[string]any{"arrow_colors": []any{"red", 3}},
	})
	if !errors.Is(err, ErrTypeMismatch) {
		t.Fatalf("expected ErrTypeMismatch, got %v", err)
	}

	var te *TypeError
	if !errors.As(err, &te) || te.Path != "window.letter_width" {
		t.Errorf("expected type error for window.letter_width, got %v", err)
	}
}

func TestDecodeCoercion(t *testing.T) {
	cfg, err := Decode(map[string]any{
		"window": map[string]any{"letter_width": int64(10), "sequence_chunk": "2000"},
		"style":  map[string]any{"arrow_colors": "red, blue", "show_labels": "false"},
	})
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if cfg.Window.LetterWidth != 10 || cfg.Window.SequenceChunk != 2000 {
		t.Errorf("numbers not coerced: %+v", cfg.Window)
	}
	if !reflect.DeepEqual(cfg.Style.ArrowColors, []string{"red", "blue"}) {
		t.Errorf("arrow_colors = %v", cfg.Style.ArrowColors)
	}
	if cfg.Style.ShowLabels {
		t.Error("show_labels should parse from string")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		path   string
	}{
		{"zero letter width", func(c *Config) { c.Window.LetterWidth = 0 }, "window.letter_width"},
		{"negative margin", func(c *Config) { c.Window.ReloadMargin = -1 }, "window.reload_margin"},
		{"negative range", func(c *Config) { c.Window.MaxRange = -5 }, "window.max_range"},
		{"zero cell width", func(c *Config) { c.View.CellWidthPx = 0 }, "view.cell_width_px"},
		{"min above max", func(c *Config) { c.View.MinInterval = 200000 }, "view.min_interval"},
		{"bad colour", func(c *Config) { c.Style.ArrowColors = []string{"notacolour"} }, "style.arrow_colors"},
		{"alpha above one", func(c *Config) { c.Style.BoxAlpha = 1.5 }, "style.box_alpha"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if !errors.Is(err, ErrValidationFailed) {
				t.Fatalf("expected ErrValidationFailed, got %v", err)
			}
			var ve *ValidationError
			if !errors.As(err, &ve) || ve.Path != tt.path {
				t.Errorf("expected failure at %s, got %v", tt.path, err)
			}
		})
	}
}

func TestStyles(t *testing.T) {
	style := DefaultStyle()
	style.ArrowAlpha = 0.5
	style.ArrowColors = []string{"red"}

	st := style.Styles()
	cds := st.Lookup("CDS")
	if cds.Alpha != 0.5 || cds.ColorFor(-1) != "red" {
		t.Errorf("unexpected CDS style: %+v", cds)
	}
	if st.Lookup("exon").Alpha != 1 {
		t.Error("box alpha should be unchanged")
	}
}

func TestInitialViewport(t *testing.T) {
	v := Default().View
	bounds := [2]int{1000, 500000}

	vp, ok := v.InitialViewport(bounds)
	if !ok || vp.Start != 1000 || vp.End != 11000 {
		t.Errorf("unset init_pos: got %v, %v", vp, ok)
	}

	pos := 20000.0
	v.InitPos = &pos
	vp, ok = v.InitialViewport(bounds)
	if !ok || vp.Start != 15000 || vp.End != 25000 {
		t.Errorf("centred init_pos: got %v, %v", vp, ok)
	}

	pos = 900000
	if _, ok := v.InitialViewport(bounds); ok {
		t.Error("init_pos past the end should be reported")
	}

	l := v.Limits(bounds)
	if l.Lower != 1000 || l.Upper != 500000 || l.MaxInterval != 100000 {
		t.Errorf("unexpected limits: %+v", l)
	}
}

func TestLoadStyle(t *testing.T) {
	path := writeConfig(t, `
[window]
max_range = 5

[style]
arrow_colors = ["red"]
box_alpha = 0.5
`)
	style, err := LoadStyle(path, nil)
	if err != nil {
		t.Fatalf("LoadStyle failed: %v", err)
	}
	if !reflect.DeepEqual(style.ArrowColors, []string{"red"}) || style.BoxAlpha != 0.5 {
		t.Errorf("unexpected style %+v", style)
	}
	if style.Background != DefaultStyle().Background {
		t.Errorf("unset keys should keep defaults, background = %q", style.Background)
	}

	bad := writeConfig(t, "[style]\nbackground = \"nope\"\n")
	if _, err := LoadStyle(bad, nil); !errors.Is(err, ErrValidationFailed) {
		t.Errorf("expected validation failure, got %v", err)
	}
}
