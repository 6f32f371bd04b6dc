package main

import (
	"flag"
	"fmt"
	"io"
	"log"

	"github.com/gdamore/tcell/v2"

	"autotile/internal/autotile"
	"autotile/internal/editor"
	"autotile/internal/geo"
	"autotile/internal/render"
	"autotile/internal/tiles"
)

const hudRows = 2

// app is the local single-user editor.
type app struct {
	screen tcell.Screen
	level  *editor.Level
	lib    *autotile.Library
	tool   *editor.Tool
	out    string

	center autotile.Coord // camera center; Z is the edited layer
	mouse  autotile.Coord
	status string
}

func main() {
	log.SetFlags(log.Ltime | log.Lshortfile)

	tilesFile := flag.String("tiles", "assets/tiles.json", "tile dex JSON file (empty: built-in)")
	packsFile := flag.String("packs", "assets/packs.json", "pack specs JSON file (empty: built-in)")
	levelFile := flag.String("level", "", "level JSON file to open (empty: new level)")
	size := flag.String("size", "72x40", "size of a new level as WxH")
	out := flag.String("out", "", "save target (default: -level)")
	flag.Parse()

	lib, err := loadLibrary(*tilesFile, *packsFile)
	if err != nil {
		log.Fatalf("Pack error: %v", err)
	}

	var level *editor.Level
	if *levelFile != "" {
		doc, err := geo.Load(*levelFile)
		if err != nil {
			log.Fatalf("Level error: %v", err)
		}
		level = editor.LevelFromDocument(doc)
	} else {
		var w, h int
		if _, err := fmt.Sscanf(*size, "%dx%d", &w, &h); err != nil || w < 1 || h < 1 {
			log.Fatalf("Invalid size %q (expected WxH)", *size)
		}
		level = editor.NewLevel("Untitled", w, h)
	}
	if *out == "" {
		*out = *levelFile
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatalf("Screen error: %v", err)
	}
	if err := screen.Init(); err != nil {
		log.Fatalf("Screen error: %v", err)
	}
	defer screen.Fini()
	log.SetOutput(io.Discard) // the screen owns the terminal from here on
	screen.EnableMouse()
	screen.SetTitle("tiledraw: " + level.Name)

	a := &app{
		screen: screen,
		level:  level,
		lib:    lib,
		tool:   editor.NewTool(lib),
		out:    *out,
		center: autotile.Coord{X: level.Width() / 2, Y: level.Height() / 2},
	}
	a.run()
}

func loadLibrary(tilesPath, packsPath string) (*autotile.Library, error) {
	dex := tiles.DefaultDex()
	if tilesPath != "" {
		d, err := tiles.LoadDex(tilesPath)
		if err != nil {
			log.Printf("Warning: %v, using built-in tiles", err)
		} else {
			dex = d
		}
	}
	specs := autotile.DefaultPackSpecs()
	if packsPath != "" {
		s, err := autotile.LoadPackSpecs(packsPath)
		if err != nil {
			log.Printf("Warning: %v, using built-in packs", err)
		} else {
			specs = s
		}
	}
	return autotile.NewLibrary(dex, specs)
}

func (a *app) run() {
	a.draw()
	for {
		switch ev := a.screen.PollEvent().(type) {
		case nil:
			return
		case *tcell.EventResize:
			a.screen.Sync()
		case *tcell.EventKey:
			if !a.key(ev) {
				return
			}
		case *tcell.EventMouse:
			a.mouseEvent(ev)
		}
		a.draw()
	}
}

func (a *app) viewport() render.Viewport {
	w, h := a.screen.Size()
	return render.NewViewport(a.center.X, a.center.Y, w, h, a.level.Width(), a.level.Height(), hudRows)
}

// key handles one key press and reports whether the editor keeps running.
func (a *app) key(ev *tcell.EventKey) bool {
	c := a.mouse
	switch ev.Key() {
	case tcell.KeyCtrlC:
		return false
	case tcell.KeyEscape:
		a.tool.Cancel()
	case tcell.KeyUp:
		a.pan(0, -1)
	case tcell.KeyDown:
		a.pan(0, 1)
	case tcell.KeyLeft:
		a.pan(-1, 0)
	case tcell.KeyRight:
		a.pan(1, 0)
	case tcell.KeyDelete, tcell.KeyBackspace, tcell.KeyBackspace2:
		editor.Erase(a.level, c)
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			return false
		case 'm':
			a.tool.CycleMode()
		case 'p':
			a.tool.CyclePack(a.lib)
		case 'l':
			a.tool.Cancel()
			a.center.Z = (a.center.Z + 1) % a.level.Layers()
			a.mouse.Z = a.center.Z
		case 'x':
			a.tool.YFirst = !a.tool.YFirst
		case '#':
			editor.ToggleSolid(a.level, c)
		case '/':
			if !editor.OrientSlope(a.level, c.X, c.Y, c.Z) {
				a.status = "no slope fits here"
			}
		case 'c':
			editor.ToggleFeature(a.level, c, geo.Crack)
		case 'e':
			editor.ToggleFeature(a.level, c, geo.Entrance)
			editor.RefreshEntrances(a.level, c.Z)
		case 's':
			a.save()
		}
	}
	return true
}

func (a *app) pan(dx, dy int) {
	a.center.X = max(0, min(a.level.Width()-1, a.center.X+dx))
	a.center.Y = max(0, min(a.level.Height()-1, a.center.Y+dy))
}

// mouseEvent drives strokes: the left button draws with the tool, the right
// button erases.
func (a *app) mouseEvent(ev *tcell.EventMouse) {
	sx, sy := ev.Position()
	wx, wy, ok := a.viewport().ScreenToWorld(sx, sy)
	if !ok {
		return
	}
	c := autotile.Coord{X: wx, Y: wy, Z: a.center.Z}
	a.mouse = c

	switch btn := ev.Buttons(); {
	case btn&tcell.Button1 != 0:
		if a.tool.Drawing() {
			a.tool.Move(c)
		} else {
			a.tool.Press(c)
		}
	case btn&tcell.Button2 != 0:
		editor.Erase(a.level, c)
	case btn == tcell.ButtonNone && a.tool.Drawing():
		n := editor.Apply(a.level, a.tool.Release(c))
		a.status = fmt.Sprintf("placed %d tiles", n)
	}
}

func (a *app) save() {
	if a.out == "" {
		a.status = "no save target, use -out"
		return
	}
	if err := a.level.Document().Save(a.out); err != nil {
		a.status = err.Error()
		return
	}
	a.status = "saved " + a.out
}

func style(c render.Cell) tcell.Style {
	st := tcell.StyleDefault.
		Foreground(tcell.NewRGBColor(int32(c.Fg.R), int32(c.Fg.G), int32(c.Fg.B))).
		Background(tcell.NewRGBColor(int32(c.Bg.R), int32(c.Bg.G), int32(c.Bg.B)))
	return st.Bold(c.Bold)
}

func (a *app) draw() {
	s := a.screen
	s.Clear()
	w, h := s.Size()
	vp := a.viewport()
	z := a.center.Z

	preview := make(map[autotile.Coord]bool)
	for _, c := range a.tool.Preview() {
		preview[c] = true
	}
	previewBg := render.EditorColor(0).Scale(0.45)

	for sy := 0; sy < vp.ViewH; sy++ {
		for sx := 0; sx < vp.ViewW; sx++ {
			wx, wy, ok := vp.ScreenToWorld(sx, sy)
			if !ok || wx >= a.level.Width() || wy >= a.level.Height() {
				continue
			}
			cell := render.LevelCell(a.level, wx, wy, z)
			c := autotile.Coord{X: wx, Y: wy, Z: z}
			if preview[c] {
				cell.Bg = previewBg
			}
			if c == a.mouse {
				cell.Bg = render.EditorColor(0)
			}
			s.SetContent(sx, sy, cell.Ch, nil, style(cell))
		}
	}

	hud := tcell.StyleDefault.Background(tcell.NewRGBColor(15, 18, 30)).Foreground(tcell.NewRGBColor(180, 180, 195))
	line1 := fmt.Sprintf(" %s  layer %d  %s: %s  (%d,%d)  %s",
		a.level.Name, z+1, a.tool.Mode, a.tool.PackName(), a.mouse.X, a.mouse.Y, a.status)
	line2 := " drag: draw  right: erase  m mode  p pack  l layer  x axis  # solid  / slope  c crack  e entrance  s save  q quit"
	for row, text := range []string{line1, line2} {
		y := h - hudRows + row
		if y < 0 {
			continue
		}
		col := 0
		for _, r := range text {
			if col >= w {
				break
			}
			s.SetContent(col, y, r, nil, hud)
			col++
		}
		for ; col < w; col++ {
			s.SetContent(col, y, ' ', nil, hud)
		}
	}
	s.Show()
}
