package editor

import (
	"math/rand"
	"strings"
	"testing"

	"autotile/internal/autotile"
	"autotile/internal/geo"
	"autotile/internal/tiles"
)

func testLibrary(t *testing.T) *autotile.Library {
	t.Helper()
	lib, err := autotile.NewLibrary(tiles.DefaultDex(), autotile.DefaultPackSpecs())
	if err != nil {
		t.Fatalf("NewLibrary: %v", err)
	}
	return lib
}

func at(x, y int) autotile.Coord { return autotile.Coord{X: x, Y: y} }

// formatTiles renders layer 0 of the tile matrix with glyphs for logging.
func formatTiles(l *Level) string {
	var sb strings.Builder
	for y := 0; y < l.Height(); y++ {
		for x := 0; x < l.Width(); x++ {
			switch cell := l.Tiles.At(at(x, y)).(type) {
			case HeadCell:
				sb.WriteRune(cell.Def.Glyph)
			case BodyCell:
				sb.WriteByte('+')
			case MaterialCell:
				sb.WriteByte('m')
			default:
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func headName(l *Level, c autotile.Coord) string {
	if h, ok := l.Tiles.At(c).(HeadCell); ok {
		return h.Def.Name
	}
	return ""
}

func TestToolMicroStroke(t *testing.T) {
	tool := NewTool(testLibrary(t))
	tool.Press(at(0, 0))
	for _, c := range []autotile.Coord{at(0, 0), at(1, 0), at(1, 0), at(2, 0), at(2, 1)} {
		tool.Move(c)
	}
	if got := len(tool.Preview()); got != 4 {
		t.Errorf("preview has %d cells, want 4 (repeats skipped)", got)
	}

	as := tool.Release(at(2, 1))
	want := []string{"Horizontal Pipe", "Horizontal Pipe", "Pipe WS", "Vertical Pipe"}
	if len(as) != len(want) {
		t.Fatalf("got %d assignments, want %d", len(as), len(want))
	}
	for i, w := range want {
		if as[i].Tile == nil || as[i].Tile.Name != w {
			t.Errorf("assignment %d = %v, want %s", i, as[i].Tile, w)
		}
	}
	if tool.Drawing() {
		t.Error("tool still drawing after release")
	}
	if tool.Release(at(0, 0)) != nil {
		t.Error("release without press should resolve nothing")
	}
}

func TestToolMacroStroke(t *testing.T) {
	tool := NewTool(testLibrary(t))
	tool.Mode = ModeMacro
	tool.YFirst = true

	tool.Press(at(0, 0))
	tool.Move(at(5, 5))
	tool.Move(at(2, 2))
	if got := len(tool.Preview()); got != 5 {
		t.Errorf("preview has %d cells, want 5", got)
	}

	as := tool.Release(at(2, 2))
	want := []autotile.Coord{at(0, 0), at(0, 1), at(0, 2), at(1, 2), at(2, 2)}
	if len(as) != len(want) {
		t.Fatalf("got %d assignments, want %d", len(as), len(want))
	}
	for i, w := range want {
		if as[i].Coord != w {
			t.Errorf("assignment %d at %v, want %v", i, as[i].Coord, w)
		}
	}
	if as[2].Tile.Name != "Pipe EN" {
		t.Errorf("corner = %s, want Pipe EN", as[2].Tile.Name)
	}
}

func TestToolRectStroke(t *testing.T) {
	tool := NewTool(testLibrary(t))
	tool.Mode = ModeRect
	tool.SetRand(rand.New(rand.NewSource(1)))

	tool.Press(at(4, 3))
	tool.Move(at(1, 1))
	if got := len(tool.Preview()); got != 10 {
		t.Errorf("preview border has %d cells, want 10", got)
	}
	as := tool.Release(at(1, 1))
	corners := map[autotile.Coord]string{}
	for _, a := range as {
		if a.Tile != nil && strings.HasPrefix(a.Tile.Name, "Block Corner") {
			corners[a.Coord] = a.Tile.Name
		}
	}
	want := map[autotile.Coord]string{
		at(1, 1): "Block Corner NW",
		at(4, 1): "Block Corner NE",
		at(1, 3): "Block Corner SW",
		at(4, 3): "Block Corner SE",
	}
	for c, w := range want {
		if corners[c] != w {
			t.Errorf("corner %v = %q, want %q", c, corners[c], w)
		}
	}
}

func TestToolCycling(t *testing.T) {
	lib := testLibrary(t)
	tool := NewTool(lib)
	if tool.PackName() != "Thin Pipes" {
		t.Fatalf("initial pack = %q", tool.PackName())
	}
	tool.CyclePack(lib)
	if tool.PackName() != "Thin Plain Pipes" {
		t.Errorf("after cycle pack = %q", tool.PackName())
	}
	for i := 0; i < 3; i++ {
		tool.CyclePack(lib)
	}
	if tool.PackName() != "Thin Pipes" {
		t.Errorf("pack cycle did not wrap: %q", tool.PackName())
	}

	tool.Press(at(0, 0))
	tool.CycleMode()
	if tool.Mode != ModeMacro || tool.Drawing() {
		t.Errorf("CycleMode: mode=%s drawing=%v", tool.Mode, tool.Drawing())
	}
	tool.CycleMode()
	if tool.PackName() != "Su Patterns" {
		t.Errorf("rect pack = %q", tool.PackName())
	}
	tool.CycleMode()
	if tool.Mode != ModeMicro {
		t.Errorf("mode did not wrap: %s", tool.Mode)
	}
}

func TestApply(t *testing.T) {
	dex := tiles.DefaultDex()
	pipe, _ := dex.Tile("Vertical Pipe")
	wheel, _ := dex.Tile("Big Wheel")
	l := NewLevel("test", 5, 4)

	n := Apply(l, []autotile.Assignment{
		{Coord: at(0, 0), Tile: pipe},
		{Coord: at(1, 0), Tile: nil},
		{Coord: at(-1, 0), Tile: pipe},
		{Coord: at(3, 2), Tile: wheel}, // footprint clipped at the edge
	})
	t.Logf("tiles:\n%s", formatTiles(l))
	if n != 2 {
		t.Errorf("Apply placed %d, want 2", n)
	}
	if headName(l, at(0, 0)) != "Vertical Pipe" {
		t.Errorf("(0,0) = %v", l.Tiles.At(at(0, 0)))
	}
	if _, ok := l.Tiles.At(at(1, 0)).(EmptyCell); !ok {
		t.Errorf("nil tile overwrote (1,0): %v", l.Tiles.At(at(1, 0)))
	}
	for _, c := range []autotile.Coord{at(4, 2), at(3, 3), at(4, 3)} {
		b, ok := l.Tiles.At(c).(BodyCell)
		if !ok || b.Head != at(3, 2) {
			t.Errorf("%v = %v, want body of (3,2)", c, l.Tiles.At(c))
		}
		if l.TileAt(c) != wheel {
			t.Errorf("TileAt(%v) = %v, want Big Wheel", c, l.TileAt(c))
		}
	}

	// Placing over a body cell removes the whole wheel.
	Apply(l, []autotile.Assignment{{Coord: at(4, 3), Tile: pipe}})
	if headName(l, at(4, 3)) != "Vertical Pipe" {
		t.Errorf("(4,3) = %v", l.Tiles.At(at(4, 3)))
	}
	for _, c := range []autotile.Coord{at(3, 2), at(4, 2), at(3, 3)} {
		if _, ok := l.Tiles.At(c).(EmptyCell); !ok {
			t.Errorf("%v = %v, want empty after overwrite", c, l.Tiles.At(c))
		}
	}
}

func TestErase(t *testing.T) {
	l := NewLevel("test", 3, 3)
	l.Tiles.Set(at(0, 0), MaterialCell{Name: "concrete"})
	Erase(l, at(0, 0))
	if _, ok := l.Tiles.At(at(0, 0)).(EmptyCell); !ok {
		t.Error("material not erased")
	}

	// A body cell whose head is gone is cleared on its own.
	l.Tiles.Set(at(1, 1), BodyCell{Head: at(0, 1)})
	Erase(l, at(1, 1))
	if _, ok := l.Tiles.At(at(1, 1)).(EmptyCell); !ok {
		t.Error("orphan body not erased")
	}
}

func TestOrientSlope(t *testing.T) {
	doc, err := geo.Parse([]byte(`{"name":"s","width":3,"height":3,"layers":[["...","#..","##."]]}`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	l := LevelFromDocument(doc)

	if !OrientSlope(l, 1, 1, 0) {
		t.Fatal("OrientSlope(1,1) = false")
	}
	if got := l.Geo.At(1, 1, 0).Type; got != geo.SlopeNE {
		t.Errorf("(1,1) = %s, want slope_ne", got)
	}
	// (2,2) now has a slope above-left diagonal only; its straight pattern is
	// left solid only, so it stays put.
	if OrientSlope(l, 2, 2, 0) {
		t.Error("OrientSlope(2,2) should be indeterminate")
	}
	if OrientSlope(l, 9, 9, 0) {
		t.Error("out-of-bounds OrientSlope reported success")
	}
}

func TestRefreshEntrances(t *testing.T) {
	doc, err := geo.Parse([]byte(`{
  "name": "e", "width": 5, "height": 4,
  "layers": [["#####", "#####", "##.##", "#####"]],
  "features": [
    {"x": 2, "y": 1, "z": 0, "names": ["entrance"]},
    {"x": 2, "y": 2, "z": 0, "names": ["shortcut_path"]},
    {"x": 0, "y": 3, "z": 0, "names": ["entrance"]}
  ]
}`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	l := LevelFromDocument(doc)

	if n := RefreshEntrances(l, 0); n != 1 {
		t.Errorf("RefreshEntrances = %d, want 1", n)
	}
	if got := l.Geo.At(2, 1, 0).Type; got != geo.ShortcutEntrance {
		t.Errorf("(2,1) = %s, want shortcut_entrance", got)
	}
	if got := l.Geo.At(0, 3, 0).Type; got != geo.Solid {
		t.Errorf("corner entrance changed to %s", got)
	}
	if n := RefreshEntrances(l, 0); n != 0 {
		t.Errorf("second RefreshEntrances = %d, want 0", n)
	}
}

func TestLoopEditing(t *testing.T) {
	lp := NewLoop(NewLevel("loop", 8, 6), testLibrary(t))
	id, ch := lp.AddEditor("alice")

	send := func(actions ...Action) {
		for _, a := range actions {
			lp.processInput(InputEvent{EditorID: id, Action: a})
		}
	}

	// Cursor starts at the center (4,3); draw three cells to the right.
	send(ActionPen, ActionRight, ActionRight, ActionPen)
	lp.tick()

	snap := <-ch
	if snap.Tick != 1 || len(snap.Editors) != 1 {
		t.Fatalf("snapshot tick=%d editors=%d", snap.Tick, len(snap.Editors))
	}
	if snap.Editors[0].Cursor != at(6, 3) {
		t.Errorf("cursor = %v, want (6,3)", snap.Editors[0].Cursor)
	}
	for x := 4; x <= 6; x++ {
		if got := headName(snap.Level, at(x, 3)); got != "Horizontal Pipe" {
			t.Errorf("(%d,3) = %q, want Horizontal Pipe", x, got)
		}
	}
	t.Logf("tiles:\n%s", formatTiles(snap.Level))

	// Snapshots are copies; later edits don't leak into them.
	send(ActionErase)
	lp.tick()
	next := <-ch
	if headName(next.Level, at(6, 3)) != "" {
		t.Error("erase not visible in next snapshot")
	}
	if headName(snap.Level, at(6, 3)) == "" {
		t.Error("earlier snapshot was modified")
	}

	// The cursor stops at the level edge.
	for i := 0; i < 10; i++ {
		send(ActionUp)
	}
	lp.tick()
	if got := (<-ch).Editors[0].Cursor; got.Y != 0 {
		t.Errorf("cursor y = %d, want clamped to 0", got.Y)
	}

	send(ActionMode)
	lp.RemoveEditor(id)
	if _, open := <-ch; open {
		t.Error("snapshot channel still open after RemoveEditor")
	}

	// Reconnecting restores cursor and mode.
	id2, ch2 := lp.AddEditor("alice")
	lp.tick()
	ed := (<-ch2).Editors[0]
	if id2 != "alice" || ed.Cursor != at(6, 0) || ed.Mode != ModeMacro {
		t.Errorf("restored editor = %+v", ed)
	}
}

func TestLoopGeometryActions(t *testing.T) {
	lp := NewLoop(NewLevel("geo", 5, 5), testLibrary(t))
	id, ch := lp.AddEditor("bob")
	send := func(actions ...Action) {
		for _, a := range actions {
			lp.processInput(InputEvent{EditorID: id, Action: a})
		}
	}

	// Cursor at (2,2): make (1,2) and (2,3) solid, then orient (2,2).
	send(ActionLeft, ActionSolid, ActionRight, ActionDown, ActionSolid, ActionUp, ActionSlope, ActionCrack)
	lp.tick()
	snap := <-ch
	c := snap.Level.Geo.At(2, 2, 0)
	if c.Type != geo.SlopeNE || !c.Features.Has(geo.Crack) {
		t.Errorf("(2,2) = %s %v, want slope_ne with crack", c.Type, c.Features.List())
	}

	send(ActionLayer, ActionSolid)
	lp.tick()
	snap = <-ch
	if snap.Level.Geo.At(2, 2, 1).Type != geo.Solid || snap.Editors[0].Cursor.Z != 1 {
		t.Errorf("layer edit: cell=%s cursor=%v", snap.Level.Geo.At(2, 2, 1).Type, snap.Editors[0].Cursor)
	}

	// Unknown editors are ignored.
	lp.processInput(InputEvent{EditorID: "ghost", Action: ActionSolid})
}
