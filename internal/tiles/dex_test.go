package tiles

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoadDex(t *testing.T) {
	path := writeFile(t, t.TempDir(), "tiles.json", `{
  "categories": [
    {"name": "Pipes", "color": "#808080", "tiles": [
      {"name": "Vertical Pipe", "glyph": "│"},
      {"name": "Horizontal Pipe", "glyph": "─", "color": "#ff0000"}
    ]},
    {"name": "Machinery", "tiles": [
      {"name": "Big Wheel", "size": [3, 2]}
    ]}
  ]
}`)

	d, err := LoadDex(path)
	if err != nil {
		t.Fatalf("LoadDex: %v", err)
	}
	if d.Len() != 3 {
		t.Errorf("Len() = %d, want 3", d.Len())
	}
	if got := d.Categories(); len(got) != 2 || got[0] != "Pipes" || got[1] != "Machinery" {
		t.Errorf("Categories() = %v", got)
	}

	v, ok := d.Tile("Vertical Pipe")
	if !ok {
		t.Fatal("Vertical Pipe not found")
	}
	if v.Glyph != '│' || v.Category != "Pipes" || v.Color != "#808080" || v.Width != 1 || v.Height != 1 || v.Multi() {
		t.Errorf("Vertical Pipe = %+v", v)
	}
	if h, _ := d.Tile("Horizontal Pipe"); h.Color != "#ff0000" {
		t.Errorf("Horizontal Pipe color = %q", h.Color)
	}

	w, _ := d.Tile("Big Wheel")
	if w.Width != 3 || w.Height != 2 || !w.Multi() || w.Glyph != 0 {
		t.Errorf("Big Wheel = %+v", w)
	}
	if _, ok := d.Tile("Missing"); ok {
		t.Error("Tile(Missing) reported found")
	}
	if got := d.TilesOf("Pipes"); len(got) != 2 || got[0].Name != "Vertical Pipe" {
		t.Errorf("TilesOf(Pipes) = %v", got)
	}
	if d.TilesOf("Nope") != nil {
		t.Error("TilesOf(unknown) should be nil")
	}
}

func TestLoadDexErrors(t *testing.T) {
	tests := []struct {
		name    string
		json    string
		wantDup bool
	}{
		{"bad json", `{`, false},
		{"duplicate tile", `{"categories":[{"name":"A","tiles":[{"name":"x"}]},{"name":"B","tiles":[{"name":"x"}]}]}`, true},
		{"duplicate category", `{"categories":[{"name":"A","tiles":[]},{"name":"A","tiles":[]}]}`, true},
		{"empty tile name", `{"categories":[{"name":"A","tiles":[{"name":""}]}]}`, false},
		{"empty category name", `{"categories":[{"name":"","tiles":[]}]}`, false},
		{"negative size", `{"categories":[{"name":"A","tiles":[{"name":"x","size":[-1,1]}]}]}`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, t.TempDir(), "tiles.json", tt.json)
			_, err := LoadDex(path)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if got := errors.Is(err, ErrDuplicateTile); got != tt.wantDup {
				t.Errorf("errors.Is(ErrDuplicateTile) = %v, want %v (err: %v)", got, tt.wantDup, err)
			}
		})
	}
}

func TestLoadDexDir(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.json", `{"categories":[{"name":"A","tiles":[{"name":"one"}]}]}`)
	writeFile(t, dir, "b.json", `{"categories":[{"name":"B","tiles":[{"name":"two"},{"name":"three"}]}]}`)
	writeFile(t, dir, "notes.txt", `ignored`)

	d, err := LoadDexDir(dir)
	if err != nil {
		t.Fatalf("LoadDexDir: %v", err)
	}
	if d.Len() != 3 {
		t.Errorf("Len() = %d, want 3", d.Len())
	}
	if got := d.Names(); got[0] != "one" || got[1] != "three" || got[2] != "two" {
		t.Errorf("Names() = %v", got)
	}

	writeFile(t, dir, "c.json", `{"categories":[{"name":"C","tiles":[{"name":"one"}]}]}`)
	if _, err := LoadDexDir(dir); !errors.Is(err, ErrDuplicateTile) {
		t.Errorf("duplicate across files: err = %v", err)
	}
}

func TestDefaultDex(t *testing.T) {
	d := DefaultDex()
	for _, name := range []string{"Vertical Pipe", "Pipe TJunct E", "insidePipeRU", "WallWires X Section", "Block Corner SW"} {
		if _, ok := d.Tile(name); !ok {
			t.Errorf("default dex missing %q", name)
		}
	}
	if w, _ := d.Tile("Big Wheel"); !w.Multi() {
		t.Error("Big Wheel should be multi-cell")
	}
}
