package loader

import (
	"errors"
	"io/fs"
	"strings"
	"testing"
	"time"
)

// MemFS is an in-memory file system for testing.
type MemFS struct {
	files map[string][]byte
}

func NewMemFS() *MemFS {
	return &MemFS{files: make(map[string][]byte)}
}

func (m *MemFS) AddFile(path string, content string) {
	m.files[path] = []byte(content)
}

func (m *MemFS) ReadFile(path string) ([]byte, error) {
	data, ok := m.files[path]
	if !ok {
		return nil, fs.ErrNotExist
	}
	return data, nil
}

func (m *MemFS) Stat(path string) (fs.FileInfo, error) {
	if _, ok := m.files[path]; ok {
		return &memFileInfo{name: path}, nil
	}
	return nil, fs.ErrNotExist
}

type memFileInfo struct {
	name string
}

func (f *memFileInfo) Name() string       { return f.name }
func (f *memFileInfo) Size() int64        { return 0 }
func (f *memFileInfo) Mode() fs.FileMode  { return 0644 }
func (f *memFileInfo) ModTime() time.Time { return time.Now() }
func (f *memFileInfo) IsDir() bool        { return false }
func (f *memFileInfo) Sys() any           { return nil }

func TestTOMLLoader_Load(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/seqview.toml", `
[window]
letter_width = 9.6
reload_margin = 2000

[style]
arrow_colors = ["purple", "orange"]
show_labels = false
`)

	config, err := NewTOMLLoaderWithFS(memfs, "/seqview.toml").Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	window, ok := config["window"].(map[string]any)
	if !ok {
		t.Fatal("expected window to be a map")
	}
	if window["letter_width"] != 9.6 {
		t.Errorf("letter_width = %v (%T), want 9.6", window["letter_width"], window["letter_width"])
	}
	if window["reload_margin"] != int64(2000) {
		t.Errorf("reload_margin = %v (%T), want 2000", window["reload_margin"], window["reload_margin"])
	}

	style, ok := config["style"].(map[string]any)
	if !ok {
		t.Fatal("expected style to be a map")
	}
	colors, ok := style["arrow_colors"].([]any)
	if !ok || len(colors) != 2 || colors[1] != "orange" {
		t.Errorf("arrow_colors = %v, want [purple orange]", style["arrow_colors"])
	}
	if style["show_labels"] != false {
		t.Errorf("show_labels = %v, want false", style["show_labels"])
	}
}

func TestTOMLLoader_LoadNonExistent(t *testing.T) {
	config, err := NewTOMLLoaderWithFS(NewMemFS(), "/missing.toml").Load()
	if err != nil {
		t.Errorf("missing file should not be an error: %v", err)
	}
	if config != nil {
		t.Errorf("expected nil config, got %v", config)
	}

	config, err = NewTOMLLoader("").Load()
	if err != nil || config != nil {
		t.Errorf("empty path should load nothing, got %v, %v", config, err)
	}
}

func TestTOMLLoader_LoadInvalid(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/bad.toml", "[window]\nletter_width = = 3\n")

	_, err := NewTOMLLoaderWithFS(memfs, "/bad.toml").Load()
	if err == nil {
		t.Fatal("expected parse error")
	}

	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("expected *ParseError, got %T", err)
	}
	if pe.Path != "/bad.toml" {
		t.Errorf("Path = %q, want /bad.toml", pe.Path)
	}
	if pe.Line != 2 {
		t.Errorf("Line = %d, want 2", pe.Line)
	}
}

func TestTOMLLoader_LoadFromReader(t *testing.T) {
	config, err := NewTOMLLoader("").LoadFromReader(strings.NewReader("[view]\ninit_win = 500\n"))
	if err != nil {
		t.Fatalf("LoadFromReader failed: %v", err)
	}
	view := config["view"].(map[string]any)
	if view["init_win"] != int64(500) {
		t.Errorf("init_win = %v, want 500", view["init_win"])
	}
}

func TestDeepMerge(t *testing.T) {
	dst := map[string]any{
		"window": map[string]any{"max_range": 20000, "reload_margin": 2000},
		"view":   map[string]any{"init_win": 10000},
	}
	src := map[string]any{
		"window": map[string]any{"max_range": 5000},
		"style":  map[string]any{"show_labels": false},
	}

	got := DeepMerge(dst, src)

	window := got["window"].(map[string]any)
	if window["max_range"] != 5000 || window["reload_margin"] != 2000 {
		t.Errorf("window merged incorrectly: %v", window)
	}
	if got["view"].(map[string]any)["init_win"] != 10000 {
		t.Error("untouched section should survive")
	}
	if got["style"].(map[string]any)["show_labels"] != false {
		t.Error("new section should be added")
	}

	if m := DeepMerge(nil, nil); m == nil {
		t.Error("DeepMerge(nil, nil) should return an empty map")
	}
}
