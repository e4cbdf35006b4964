package config

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// Decode builds a Config from a merged settings map on top of the defaults.
// Numbers may be integers, floats or numeric strings. Unknown settings are
// collected in Config.Unknown rather than rejected.
func Decode(m map[string]any) (Config, error) {
	cfg := Default()
	d := decoder{data: m}

	d.floatAt("window.letter_width", &cfg.Window.LetterWidth)
	d.floatAt("window.reload_margin", &cfg.Window.ReloadMargin)
	d.floatAt("window.max_range", &cfg.Window.MaxRange)
	d.intAt("window.sequence_chunk", &cfg.Window.SequenceChunk)

	if _, ok := d.lookup("view.init_pos"); ok {
		var pos float64
		if d.floatAt("view.init_pos", &pos) {
			cfg.View.InitPos = &pos
		}
	}
	d.floatAt("view.init_win", &cfg.View.InitWin)
	d.floatAt("view.max_interval", &cfg.View.MaxInterval)
	d.floatAt("view.min_interval", &cfg.View.MinInterval)
	d.floatAt("view.cell_width_px", &cfg.View.CellWidthPx)

	d.decodeStyle(&cfg.Style)

	d.stringAt("log.level", &cfg.Log.Level)
	d.stringAt("log.file", &cfg.Log.File)

	cfg.Unknown = d.unknown()
	if len(d.errs) > 0 {
		return Config{}, errors.Join(d.errs...)
	}
	return cfg, nil
}

// DecodeStyle decodes only the style section on top of the style defaults.
func DecodeStyle(m map[string]any) (StyleConfig, error) {
	style := DefaultStyle()
	d := decoder{data: m}
	d.decodeStyle(&style)
	if len(d.errs) > 0 {
		return StyleConfig{}, errors.Join(d.errs...)
	}
	return style, nil
}

func (d *decoder) decodeStyle(s *StyleConfig) {
	d.stringsAt("style.arrow_colors", &s.ArrowColors)
	d.stringsAt("style.box_colors", &s.BoxColors)
	d.floatAt("style.arrow_alpha", &s.ArrowAlpha)
	d.floatAt("style.box_alpha", &s.BoxAlpha)
	d.stringAt("style.background", &s.Background)
	d.boolAt("style.show_labels", &s.ShowLabels)
}

type decoder struct {
	data map[string]any
	seen map[string]bool
	errs []error
}

func (d *decoder) lookup(path string) (any, bool) {
	section, key, ok := strings.Cut(path, ".")
	if !ok {
		return nil, false
	}
	sec, ok := d.data[section].(map[string]any)
	if !ok {
		return nil, false
	}
	v, ok := sec[key]
	if ok {
		if d.seen == nil {
			d.seen = make(map[string]bool)
		}
		d.seen[path] = true
	}
	return v, ok
}

func (d *decoder) fail(path, expected string, v any) {
	d.errs = append(d.errs, &TypeError{Path: path, Expected: expected, Actual: fmt.Sprintf("%T", v)})
}

func (d *decoder) floatAt(path string, dst *float64) bool {
	v, ok := d.lookup(path)
	if !ok {
		return false
	}
	switch x := v.(type) {
	case float64:
		*dst = x
	case int64:
		*dst = float64(x)
	case int:
		*dst = float64(x)
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil {
			d.fail(path, "number", v)
			return false
		}
		*dst = f
	default:
		d.fail(path, "number", v)
		return false
	}
	if math.IsNaN(*dst) || math.IsInf(*dst, 0) {
		d.fail(path, "finite number", v)
		return false
	}
	return true
}

func (d *decoder) intAt(path string, dst *int) {
	var f float64
	if !d.floatAt(path, &f) {
		return
	}
	if f != math.Trunc(f) {
		d.fail(path, "integer", f)
		return
	}
	*dst = int(f)
}

func (d *decoder) stringAt(path string, dst *string) {
	v, ok := d.lookup(path)
	if !ok {
		return
	}
	s, ok := v.(string)
	if !ok {
		d.fail(path, "string", v)
		return
	}
	*dst = s
}

func (d *decoder) boolAt(path string, dst *bool) {
	v, ok := d.lookup(path)
	if !ok {
		return
	}
	switch x := v.(type) {
	case bool:
		*dst = x
	case string:
		b, err := strconv.ParseBool(x)
		if err != nil {
			d.fail(path, "bool", v)
			return
		}
		*dst = b
	default:
		d.fail(path, "bool", v)
	}
}

// stringsAt accepts an array of strings or a single comma-separated string.
func (d *decoder) stringsAt(path string, dst *[]string) {
	v, ok := d.lookup(path)
	if !ok {
		return
	}
	switch x := v.(type) {
	case []any:
		out := make([]string, 0, len(x))
		for _, item := range x {
			s, ok := item.(string)
			if !ok {
				d.fail(path, "array of strings", v)
				return
			}
			out = append(out, s)
		}
		*dst = out
	case []string:
		*dst = append([]string(nil), x...)
	case string:
		var out []string
		for _, s := range strings.Split(x, ",") {
			if s = strings.TrimSpace(s); s != "" {
				out = append(out, s)
			}
		}
		*dst = out
	default:
		d.fail(path, "array of strings", v)
	}
}

// unknown returns every leaf path in data that was never looked up.
func (d *decoder) unknown() []string {
	var out []string
	for section, v := range d.data {
		sec, ok := v.(map[string]any)
		if !ok {
			out = append(out, section)
			continue
		}
		for key := range sec {
			if path := section + "." + key; !d.seen[path] {
				out = append(out, path)
			}
		}
	}
	sort.Strings(out)
	return out
}
