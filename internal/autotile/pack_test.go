package autotile

import (
	"errors"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"autotile/internal/tiles"
)

var placeholderBox = BoxPackSpec{
	Name: "box",
	Left: "L", Top: "T", Right: "R", Bottom: "B",
	TopLeft: "TL", TopRight: "TR", BottomRight: "BR", BottomLeft: "BL",
}

func boxLookup() fakeLookup {
	return newFakeLookup("L", "T", "R", "B", "TL", "TR", "BR", "BL", "I1", "I2", "I3")
}

func placeholderBorder(t *testing.T, interior ...string) *BorderPack {
	t.Helper()
	spec := placeholderBox
	spec.Interior = interior
	p, err := NewBorderPack(boxLookup(), spec)
	if err != nil {
		t.Fatalf("NewBorderPack: %v", err)
	}
	return p
}

func TestNewConnectorPackErrors(t *testing.T) {
	lookup := newFakeLookup("V", "H", "TL", "TR", "BR", "BL", "X")

	tests := []struct {
		name    string
		mutate  func(*PathPackSpec)
		wantErr error
	}{
		{"missing vertical", func(s *PathPackSpec) { s.Vertical = "" }, ErrMissingPiece},
		{"missing corner", func(s *PathPackSpec) { s.BottomLeft = "" }, ErrMissingPiece},
		{"unknown mandatory", func(s *PathPackSpec) { s.Horizontal = "nope" }, ErrUnknownTile},
		{"unknown optional", func(s *PathPackSpec) { s.Cross = "nope" }, ErrUnknownTile},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec := PathPackSpec{
				Name:     "p",
				Vertical: "V", Horizontal: "H",
				TopLeft: "TL", TopRight: "TR", BottomRight: "BR", BottomLeft: "BL",
			}
			tt.mutate(&spec)
			p, err := NewConnectorPack(lookup, spec)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
			if p != nil {
				t.Error("invalid pack was returned")
			}
		})
	}
}

func TestConnectorPackOptionalSlots(t *testing.T) {
	p, err := NewConnectorPack(newFakeLookup("V", "H", "TL", "TR", "BR", "BL"), PathPackSpec{
		Name:     "minimal",
		Vertical: "V", Horizontal: "H",
		TopLeft: "TL", TopRight: "TR", BottomRight: "BR", BottomLeft: "BL",
	})
	if err != nil {
		t.Fatalf("NewConnectorPack: %v", err)
	}
	for _, s := range Shapes() {
		if got := p.Piece(s); (got == nil) != s.Optional() {
			t.Errorf("Piece(%s) = %v", s, got)
		}
	}
	if p.Piece(Shape(200)) != nil {
		t.Error("Piece(out of range) should be nil")
	}
}

func TestNewBorderPackErrors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*BoxPackSpec)
		wantErr error
	}{
		{"missing edge", func(s *BoxPackSpec) { s.Right = "" }, ErrMissingPiece},
		{"missing corner", func(s *BoxPackSpec) { s.TopLeft = "" }, ErrMissingPiece},
		{"unknown corner", func(s *BoxPackSpec) { s.BottomRight = "nope" }, ErrUnknownTile},
		{"unknown interior", func(s *BoxPackSpec) { s.Interior = []string{"I1", "nope"} }, ErrUnknownTile},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec := placeholderBox
			tt.mutate(&spec)
			if _, err := NewBorderPack(boxLookup(), spec); !errors.Is(err, tt.wantErr) {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestResolveRectCorners(t *testing.T) {
	pack := placeholderBorder(t)
	got := ResolveRect(Coord{0, 0, 0}, 3, 2, pack, nil)

	byCoord := make(map[Coord]string)
	for _, a := range got {
		if prev, dup := byCoord[a.Coord]; dup {
			t.Errorf("cell %v assigned twice (%s, %s)", a.Coord, prev, tileName(a))
		}
		byCoord[a.Coord] = tileName(a)
	}

	want := map[Coord]string{
		{0, 0, 0}: "TL", {1, 0, 0}: "T", {2, 0, 0}: "T", {3, 0, 0}: "TR",
		{0, 1, 0}: "L", {1, 1, 0}: "<nil>", {2, 1, 0}: "<nil>", {3, 1, 0}: "R",
		{0, 2, 0}: "BL", {1, 2, 0}: "B", {2, 2, 0}: "B", {3, 2, 0}: "BR",
	}
	if len(byCoord) != len(want) {
		t.Errorf("got %d cells, want %d", len(byCoord), len(want))
	}
	for c, w := range want {
		if byCoord[c] != w {
			t.Errorf("cell %v = %q, want %q", c, byCoord[c], w)
		}
	}

	var corners []Coord
	for c, name := range byCoord {
		switch name {
		case "TL", "TR", "BL", "BR":
			corners = append(corners, c)
		}
	}
	if len(corners) != 4 {
		t.Errorf("got %d corners, want exactly 4: %v", len(corners), corners)
	}
}

func TestResolveRectEdgesEveryRow(t *testing.T) {
	pack := placeholderBorder(t)
	origin := Coord{5, 10, 2}
	got := ResolveRect(origin, 2, 5, pack, nil)

	left, right := 0, 0
	for _, a := range got {
		if a.Z != 2 {
			t.Errorf("assignment on layer %d, want 2", a.Z)
		}
		switch tileName(a) {
		case "L":
			left++
			if a.X != 5 {
				t.Errorf("left edge at x=%d", a.X)
			}
		case "R":
			right++
			if a.X != 7 {
				t.Errorf("right edge at x=%d", a.X)
			}
		}
	}
	if left != 4 || right != 4 {
		t.Errorf("left=%d right=%d, want 4 each", left, right)
	}
}

func TestResolveRectZeroArea(t *testing.T) {
	pack := placeholderBorder(t, "I1")
	tests := []struct{ w, h int }{{0, 0}, {0, 5}, {5, 0}, {-1, 3}, {3, -2}}
	for _, tt := range tests {
		if got := ResolveRect(Coord{1, 1, 0}, tt.w, tt.h, pack, nil); len(got) != 0 {
			t.Errorf("ResolveRect(%d, %d) = %d assignments, want none", tt.w, tt.h, len(got))
		}
	}
}

func TestResolveRectInterior(t *testing.T) {
	pack := placeholderBorder(t, "I1", "I2", "I3")
	rng := rand.New(rand.NewSource(1))
	got := ResolveRect(Coord{0, 0, 0}, 12, 9, pack, rng)

	allowed := map[string]bool{"I1": true, "I2": true, "I3": true}
	seen := make(map[string]int)
	interior := 0
	for _, a := range got {
		if a.X == 0 || a.X == 12 || a.Y == 0 || a.Y == 9 {
			continue
		}
		interior++
		name := tileName(a)
		if !allowed[name] {
			t.Errorf("interior %v drew %q", a.Coord, name)
		}
		seen[name]++
	}
	if interior != 11*8 {
		t.Errorf("got %d interior cells, want %d", interior, 11*8)
	}
	if len(seen) != 3 {
		t.Logf("variant counts: %v", seen)
		t.Errorf("expected all three variants across %d draws", interior)
	}
}

func TestDefaultLibrary(t *testing.T) {
	lib, err := NewLibrary(tiles.DefaultDex(), DefaultPackSpecs())
	if err != nil {
		t.Fatalf("NewLibrary: %v", err)
	}
	want := []string{"Thin Pipes", "Thin Plain Pipes", "Wall Wires", "Inside Thin Pipes"}
	names := lib.PathPackNames()
	if len(names) != len(want) {
		t.Fatalf("PathPackNames() = %v", names)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("PathPackNames()[%d] = %q, want %q", i, names[i], want[i])
		}
	}

	inside := lib.PathPack("Inside Thin Pipes")
	if inside == nil || inside.Piece(Cross) != nil || inside.Piece(TopLeft).Name != "insidePipeRD" {
		t.Errorf("Inside Thin Pipes resolved unexpectedly: %+v", inside)
	}
	if p := lib.PathPack("Thin Pipes"); p.Piece(RightBottomLeft).Name != "Pipe TJunct S" {
		t.Errorf("Thin Pipes RightBottomLeft = %q", p.Piece(RightBottomLeft).Name)
	}
	box := lib.BoxPack("Su Patterns")
	if box == nil || box.TopLeft.Name != "Block Corner NW" || len(box.Interior) != 0 {
		t.Errorf("Su Patterns resolved unexpectedly: %+v", box)
	}
	if lib.PathPack("missing") != nil || lib.BoxPack("missing") != nil {
		t.Error("lookup of a missing pack should be nil")
	}
}

func TestNewLibraryErrors(t *testing.T) {
	empty, err := tiles.NewDex(nil)
	if err != nil {
		t.Fatalf("NewDex: %v", err)
	}
	if _, err := NewLibrary(empty, DefaultPackSpecs()); !errors.Is(err, ErrUnknownTile) {
		t.Errorf("empty dex: err = %v, want ErrUnknownTile", err)
	}

	specs := DefaultPackSpecs()
	specs.PathPacks = append(specs.PathPacks, specs.PathPacks[0])
	if _, err := NewLibrary(tiles.DefaultDex(), specs); err == nil {
		t.Error("duplicate pack name accepted")
	}
}

func TestLoadPackSpecs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "packs.json")
	data := `{
  "path_packs": [
    {"name": "p", "vertical": "V", "horizontal": "H", "top_left": "TL",
     "top_right": "TR", "bottom_right": "BR", "bottom_left": "BL"}
  ],
  "box_packs": [
    {"name": "b", "left": "L", "top": "T", "right": "R", "bottom": "B",
     "top_left": "TL", "top_right": "TR", "bottom_right": "BR", "bottom_left": "BL",
     "interior": ["I1", "I2"]}
  ]
}`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	specs, err := LoadPackSpecs(path)
	if err != nil {
		t.Fatalf("LoadPackSpecs: %v", err)
	}
	lookup := newFakeLookup("V", "H", "TL", "TR", "BR", "BL", "L", "T", "R", "B", "I1", "I2")
	lib, err := NewLibrary(lookup, specs)
	if err != nil {
		t.Fatalf("NewLibrary: %v", err)
	}
	if got := len(lib.BoxPack("b").Interior); got != 2 {
		t.Errorf("interior variants = %d, want 2", got)
	}
	if lib.PathPack("p").Piece(Cross) != nil {
		t.Error("unset cross slot resolved to a tile")
	}

	if _, err := LoadPackSpecs(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("missing file accepted")
	}
}

func TestShippedAssets(t *testing.T) {
	assets := filepath.Join("..", "..", "assets")
	dex, err := tiles.LoadDex(filepath.Join(assets, "tiles.json"))
	if err != nil {
		t.Fatalf("LoadDex: %v", err)
	}
	specs, err := LoadPackSpecs(filepath.Join(assets, "packs.json"))
	if err != nil {
		t.Fatalf("LoadPackSpecs: %v", err)
	}
	lib, err := NewLibrary(dex, specs)
	if err != nil {
		t.Fatalf("NewLibrary: %v", err)
	}

	// The shipped files extend the built-in packs.
	for _, name := range DefaultPackSpecs().PathPacks {
		if lib.PathPack(name.Name) == nil {
			t.Errorf("path pack %q missing from packs.json", name.Name)
		}
	}
	if b := lib.BoxPack("Su Blocks"); b == nil || len(b.Interior) != 2 {
		t.Errorf("Su Blocks = %+v, want two interior variants", b)
	}
}
