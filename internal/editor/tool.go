package editor

import (
	"math/rand"

	"autotile/internal/autotile"
)

// Mode selects how a stroke turns into assignments.
type Mode int

const (
	ModeMicro Mode = iota // freehand path, one cell per move
	ModeMacro             // L-shaped path between press and release
	ModeRect              // border pack rectangle between press and release
	numModes
)

func (m Mode) String() string {
	switch m {
	case ModeMicro:
		return "micro"
	case ModeMacro:
		return "macro"
	case ModeRect:
		return "rect"
	}
	return "unknown"
}

// Tool is one user's drawing state. It is not safe for concurrent use; the
// Loop owns every tool.
type Tool struct {
	Mode     Mode
	YFirst   bool // macro paths walk the vertical leg first
	PathPack *autotile.ConnectorPack
	BoxPack  *autotile.BorderPack

	drawing bool
	anchor  autotile.Coord
	last    autotile.Coord
	stroke  []autotile.Coord
	rng     *rand.Rand
}

// NewTool creates a tool with the first pack of each kind selected.
func NewTool(lib *autotile.Library) *Tool {
	t := &Tool{}
	if lib != nil {
		if ps := lib.PathPacks(); len(ps) > 0 {
			t.PathPack = ps[0]
		}
		if bs := lib.BoxPacks(); len(bs) > 0 {
			t.BoxPack = bs[0]
		}
	}
	return t
}

// SetRand fixes the source used for rectangle interiors.
func (t *Tool) SetRand(rng *rand.Rand) { t.rng = rng }

// Drawing reports whether a stroke is in progress.
func (t *Tool) Drawing() bool { return t.drawing }

// Press starts a stroke at c.
func (t *Tool) Press(c autotile.Coord) {
	t.drawing = true
	t.anchor = c
	t.last = c
	t.stroke = append(t.stroke[:0], c)
}

// Move extends the stroke to c. In micro mode a repeat of the last cell is
// ignored.
func (t *Tool) Move(c autotile.Coord) {
	if !t.drawing {
		return
	}
	t.last = c
	if t.Mode == ModeMicro && t.stroke[len(t.stroke)-1] != c {
		t.stroke = append(t.stroke, c)
	}
}

// Release ends the stroke at c and resolves it through the selected pack.
// It returns nil when no stroke was in progress or no pack is selected.
func (t *Tool) Release(c autotile.Coord) []autotile.Assignment {
	if !t.drawing {
		return nil
	}
	t.Move(c)
	t.drawing = false

	switch t.Mode {
	case ModeMicro:
		if t.PathPack == nil {
			return nil
		}
		return autotile.Resolve(t.stroke, t.PathPack)
	case ModeMacro:
		if t.PathPack == nil {
			return nil
		}
		return autotile.Resolve(autotile.LPath(t.anchor, c, t.YFirst), t.PathPack)
	case ModeRect:
		if t.BoxPack == nil {
			return nil
		}
		origin, w, h := t.rect(c)
		return autotile.ResolveRect(origin, w, h, t.BoxPack, t.rng)
	}
	return nil
}

// Cancel drops the stroke in progress.
func (t *Tool) Cancel() {
	t.drawing = false
	t.stroke = t.stroke[:0]
}

// Preview returns the cells the stroke would cover if released now.
func (t *Tool) Preview() []autotile.Coord {
	if !t.drawing {
		return nil
	}
	switch t.Mode {
	case ModeMacro:
		return autotile.LPath(t.anchor, t.last, t.YFirst)
	case ModeRect:
		origin, w, h := t.rect(t.last)
		var out []autotile.Coord
		for y := origin.Y; y <= origin.Y+h; y++ {
			for x := origin.X; x <= origin.X+w; x++ {
				if x == origin.X || x == origin.X+w || y == origin.Y || y == origin.Y+h {
					out = append(out, autotile.Coord{X: x, Y: y, Z: origin.Z})
				}
			}
		}
		return out
	}
	return append([]autotile.Coord(nil), t.stroke...)
}

// rect normalizes the anchor and c into a top-left origin and extents.
func (t *Tool) rect(c autotile.Coord) (autotile.Coord, int, int) {
	origin := autotile.Coord{X: min(t.anchor.X, c.X), Y: min(t.anchor.Y, c.Y), Z: t.anchor.Z}
	return origin, abs(c.X - t.anchor.X), abs(c.Y - t.anchor.Y)
}

// CycleMode switches to the next mode, dropping any stroke in progress.
func (t *Tool) CycleMode() {
	t.Cancel()
	t.Mode = (t.Mode + 1) % numModes
}

// CyclePack selects the next pack of the kind the current mode uses.
func (t *Tool) CyclePack(lib *autotile.Library) {
	if lib == nil {
		return
	}
	if t.Mode == ModeRect {
		t.BoxPack = nextPack(lib.BoxPacks(), t.BoxPack)
		return
	}
	t.PathPack = nextPack(lib.PathPacks(), t.PathPack)
}

func nextPack[P comparable](packs []P, cur P) P {
	var zero P
	if len(packs) == 0 {
		return zero
	}
	for i, p := range packs {
		if p == cur {
			return packs[(i+1)%len(packs)]
		}
	}
	return packs[0]
}

// PackName returns the name of the pack the current mode draws with.
func (t *Tool) PackName() string {
	if t.Mode == ModeRect {
		if t.BoxPack != nil {
			return t.BoxPack.Name
		}
		return ""
	}
	if t.PathPack != nil {
		return t.PathPack.Name
	}
	return ""
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
