package render

import (
	"fmt"
	"strings"

	"autotile/internal/autotile"
	"autotile/internal/editor"
)

const HUDRows = 3

// Cell represents a single terminal cell with full RGB color.
type Cell struct {
	Ch     rune
	Fg, Bg RGB
	Bold   bool
}

var sentinel = Cell{Ch: '\x00', Fg: RGB{R: 255}, Bg: RGB{B: 255}, Bold: true}

// Engine is a per-session double-buffer diff renderer.
type Engine struct {
	width, height int
	current       [][]Cell
	next          [][]Cell
	firstFrame    bool
}

// NewEngine creates a renderer for the given terminal dimensions.
func NewEngine(width, height int) *Engine {
	e := &Engine{
		width:      width,
		height:     height,
		firstFrame: true,
	}
	e.current = e.makeBuffer(sentinel)
	e.next = e.makeBuffer(Cell{})
	return e
}

// Resize adjusts the renderer for a new terminal size.
func (e *Engine) Resize(width, height int) {
	e.width = width
	e.height = height
	e.current = e.makeBuffer(sentinel)
	e.next = e.makeBuffer(Cell{})
	e.firstFrame = true
}

func (e *Engine) makeBuffer(fill Cell) [][]Cell {
	buf := make([][]Cell, e.height)
	for y := 0; y < e.height; y++ {
		buf[y] = make([]Cell, e.width)
		for x := 0; x < e.width; x++ {
			buf[y][x] = fill
		}
	}
	return buf
}

// Render produces the ANSI output that brings the terminal from the previous
// frame to this snapshot, as seen by viewerID.
func (e *Engine) Render(viewerID string, snap editor.Snapshot, termW, termH int) string {
	if termW != e.width || termH != e.height {
		e.Resize(termW, termH)
	}
	e.compose(viewerID, snap)
	return e.flush()
}

func (e *Engine) compose(viewerID string, snap editor.Snapshot) {
	var viewer editor.EditorSnapshot
	for _, ed := range snap.Editors {
		if ed.ID == viewerID {
			viewer = ed
			break
		}
	}

	bgCell := Cell{Ch: ' ', Bg: background}
	for y := 0; y < e.height; y++ {
		for x := 0; x < e.width; x++ {
			e.next[y][x] = bgCell
		}
	}

	l := snap.Level
	if l == nil {
		e.drawHUD(viewer, "", len(snap.Editors))
		return
	}

	z := viewer.Cursor.Z
	vp := NewViewport(viewer.Cursor.X, viewer.Cursor.Y, e.width, e.height, l.Width(), l.Height(), HUDRows)

	// Pass 1: level cells
	for ty := 0; ty < vp.ViewH && ty < e.height; ty++ {
		for tx := 0; tx < vp.ViewW && tx < e.width; tx++ {
			wx, wy := vp.CamX+tx, vp.CamY+ty
			if wx >= l.Width() || wy >= l.Height() {
				continue
			}
			e.next[ty][tx] = LevelCell(l, wx, wy, z)
		}
	}

	// Pass 2: stroke previews
	for _, ed := range snap.Editors {
		for _, c := range ed.Preview {
			if c.Z != z {
				continue
			}
			e.tint(vp, c, previewBg.Blend(EditorColor(ed.Color), 0.3))
		}
	}

	// Pass 3: cursors, viewer last
	for _, ed := range snap.Editors {
		if ed.ID == viewerID || ed.Cursor.Z != z {
			continue
		}
		e.tint(vp, ed.Cursor, EditorColor(ed.Color).Scale(0.6))
	}
	if viewer.ID != "" {
		if sx, sy := vp.WorldToScreen(viewer.Cursor.X, viewer.Cursor.Y); sx > 0 {
			c := &e.next[sy-1][sx-1]
			c.Bg = EditorColor(viewer.Color)
			c.Fg = background
			c.Bold = true
			if c.Ch == ' ' {
				c.Ch = '+'
			}
		}
	}

	e.drawHUD(viewer, l.Name, len(snap.Editors))
}

// tint sets the background of the screen cell showing c.
func (e *Engine) tint(vp Viewport, c autotile.Coord, bg RGB) {
	sx, sy := vp.WorldToScreen(c.X, c.Y)
	if sx < 1 || sy > e.height || sx > e.width {
		return
	}
	e.next[sy-1][sx-1].Bg = bg
}

// flush diffs current vs next, emits only changed cells and swaps buffers.
func (e *Engine) flush() string {
	var sb strings.Builder
	sb.Grow(16384)

	lastRow, lastCol := -1, -1
	for y := 0; y < e.height; y++ {
		for x := 0; x < e.width; x++ {
			nc := e.next[y][x]
			if e.firstFrame || nc != e.current[y][x] {
				// Only emit cursor position if not consecutive
				if y != lastRow || x != lastCol {
					sb.WriteString(MoveTo(y+1, x+1))
				}
				WriteCellSGR(&sb, nc)
				lastRow = y
				lastCol = x + 1
			}
		}
	}

	if sb.Len() > 0 {
		sb.WriteString(Reset)
	}

	e.current, e.next = e.next, e.current
	e.firstFrame = false

	return sb.String()
}

// --- HUD ---

func (e *Engine) drawHUD(viewer editor.EditorSnapshot, levelName string, editorCount int) {
	hudY := e.height - HUDRows
	if hudY < 0 {
		return
	}
	bg := RGB{15, 18, 30}

	// Row 0: separator
	for x := 0; x < e.width; x++ {
		e.next[hudY][x] = Cell{Ch: '━', Fg: RGB{50, 80, 100}, Bg: bg}
	}
	for row := 1; row < HUDRows; row++ {
		for x := 0; x < e.width; x++ {
			e.next[hudY+row][x] = Cell{Ch: ' ', Bg: bg}
		}
	}

	sep := RGB{60, 65, 85}
	text := RGB{180, 180, 195}

	// Row 1: who and what
	row1 := hudY + 1
	col := e.writeText(row1, 1, viewer.Name, EditorColor(viewer.Color), bg, true)
	col = e.writeText(row1, col, "  │  ", sep, bg, false)
	col = e.writeText(row1, col, levelName, text, bg, false)
	col = e.writeText(row1, col, "  │  ", sep, bg, false)
	col = e.writeText(row1, col, fmt.Sprintf("layer %d", viewer.Cursor.Z+1), text, bg, false)
	col = e.writeText(row1, col, "  │  ", sep, bg, false)
	col = e.writeText(row1, col, fmt.Sprintf("%s: %s", viewer.Mode, viewer.PackName), RGB{100, 220, 220}, bg, true)
	col = e.writeText(row1, col, "  │  ", sep, bg, false)
	col = e.writeText(row1, col, fmt.Sprintf("(%d,%d)", viewer.Cursor.X, viewer.Cursor.Y), text, bg, false)
	col = e.writeText(row1, col, "  │  ", sep, bg, false)
	e.writeText(row1, col, fmt.Sprintf("%d online", editorCount), text, bg, false)

	// Row 2: controls
	e.writeText(hudY+2, 1,
		"←↑↓→ Move  Space Pen  Esc Cancel  M Mode  P Pack  L Layer  X Axis  # Solid  / Slope  C Crack  E Entrance  Del Erase  Q Quit",
		RGB{130, 130, 145}, bg, false)
}

// writeText writes colored text from col to the right edge. Returns the next column position.
func (e *Engine) writeText(row, col int, s string, fg, bg RGB, bold bool) int {
	for _, r := range s {
		if col >= e.width {
			break
		}
		if row >= 0 && row < e.height && col >= 0 {
			e.next[row][col] = Cell{Ch: r, Fg: fg, Bg: bg, Bold: bold}
		}
		col++
	}
	return col
}
