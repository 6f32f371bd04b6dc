package geo

import (
	"errors"
	"io/fs"
	"path/filepath"
	"strings"
	"testing"
)

const sampleDocument = `{
  "name": "sample",
  "width": 4,
  "height": 3,
  "legend": {"x": "glass"},
  "layers": [
    ["####", "#.2#", "##x#"],
    ["....", "....", "...."]
  ],
  "features": [
    {"x": 1, "y": 1, "z": 0, "names": ["crack", "rock"]},
    {"x": 0, "y": 0, "z": 1, "names": ["horizontal_pole"]}
  ]
}`

func TestParseDocument(t *testing.T) {
	doc, err := Parse([]byte(sampleDocument))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	m := doc.Matrix
	if doc.Name != "sample" || m.Width() != 4 || m.Height() != 3 || m.Layers() != Layers {
		t.Fatalf("got %q %dx%dx%d", doc.Name, m.Width(), m.Height(), m.Layers())
	}

	tests := []struct {
		x, y, z int
		want    CellType
	}{
		{0, 0, 0, Solid},
		{1, 1, 0, Air},
		{2, 1, 0, SlopeNE},
		{2, 2, 0, Glass},
		{3, 2, 1, Air},
		{0, 0, 2, Air}, // layers not in the file stay empty
	}
	for _, tt := range tests {
		if got := m.At(tt.x, tt.y, tt.z).Type; got != tt.want {
			t.Errorf("At(%d,%d,%d) = %s, want %s", tt.x, tt.y, tt.z, got, tt.want)
		}
	}

	if fs := m.At(1, 1, 0).Features; !fs.Has(Crack) || !fs.Has(Rock) || fs.Len() != 2 {
		t.Errorf("features at (1,1,0) = %v, want [crack rock]", fs.List())
	}
	if !m.At(0, 0, 1).Features.Has(HorizontalPole) {
		t.Error("missing horizontal pole at (0,0,1)")
	}
}

func TestParseDocumentErrors(t *testing.T) {
	tests := []struct {
		name    string
		json    string
		wantErr string
	}{
		{"bad json", `{`, "parse geometry JSON"},
		{"zero size", `{"width":0,"height":1,"layers":[[""]]}`, "invalid dimensions"},
		{"no layers", `{"width":1,"height":1,"layers":[]}`, "layer count"},
		{"too many layers", `{"width":1,"height":1,"layers":[["."],["."],["."],["."]]}`, "layer count"},
		{"short layer", `{"width":1,"height":2,"layers":[["."]]}`, "rows 1 != declared height 2"},
		{"short row", `{"width":2,"height":1,"layers":[["."]]}`, "has 1 cells, expected 2"},
		{"unknown cell", `{"width":1,"height":1,"layers":[["?"]]}`, "unknown cell"},
		{"bad legend key", `{"width":1,"height":1,"legend":{"ab":"solid"},"layers":[["."]]}`, "single character"},
		{"bad legend value", `{"width":1,"height":1,"legend":{"x":"lava"},"layers":[["x"]]}`, "unknown cell type"},
		{"feature out of bounds", `{"width":1,"height":1,"layers":[["."]],"features":[{"x":1,"y":0,"z":0,"names":["rock"]}]}`, "out of bounds"},
		{"unknown feature", `{"width":1,"height":1,"layers":[["."]],"features":[{"x":0,"y":0,"z":0,"names":["lava"]}]}`, "unknown feature"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.json))
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want it to contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestDocumentSaveLoad(t *testing.T) {
	doc, err := Parse([]byte(sampleDocument))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	path := filepath.Join(t.TempDir(), "level.json")
	if err := doc.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	for z := 0; z < Layers; z++ {
		for y := 0; y < 3; y++ {
			for x := 0; x < 4; x++ {
				if a, b := doc.Matrix.At(x, y, z), got.Matrix.At(x, y, z); a != b {
					t.Errorf("(%d,%d,%d): saved %+v, loaded %+v", x, y, z, a, b)
				}
			}
		}
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("Load(missing) = %v, want a not-exist error", err)
	}
}

func TestLoadSampleLevel(t *testing.T) {
	doc, err := Load(filepath.Join("..", "..", "assets", "levels", "sample.json"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	m := doc.Matrix
	if m.Width() != 40 || m.Height() != 16 || m.Layers() != Layers {
		t.Fatalf("size = %dx%dx%d", m.Width(), m.Height(), m.Layers())
	}

	// Every slope in the sample agrees with its walls.
	for y := 0; y < m.Height(); y++ {
		for x := 0; x < m.Width(); x++ {
			c := m.At(x, y, 0)
			if !c.Type.IsSlope() {
				continue
			}
			if got, ok := ResolveSlope(ContextAt(m, x, y, 0)); !ok || got != c.Type {
				t.Errorf("slope at (%d,%d) is %s, walls say %s (%v)", x, y, c.Type, got, ok)
			}
		}
	}

	if v := ResolveVariant(Entrance, ContextAt(m, 36, 12, 0)); v != VariantEntranceTop {
		t.Errorf("sample entrance variant = %d, want %d", v, VariantEntranceTop)
	}
}
