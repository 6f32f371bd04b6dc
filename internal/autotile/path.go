package autotile

import (
	"errors"

	"autotile/internal/tiles"
)

// ErrNotSimpleChain is returned by ResolveLinear for paths that revisit a
// coordinate or touch themselves away from their own links.
var ErrNotSimpleChain = errors.New("path is not a simple chain")

// Coord is a grid position on one layer.
type Coord struct {
	X, Y, Z int
}

// Add returns c offset by (dx, dy) on the same layer.
func (c Coord) Add(dx, dy int) Coord {
	return Coord{c.X + dx, c.Y + dy, c.Z}
}

// Assignment is one resolved cell. A nil Tile means "leave the cell as is".
// Shape is only meaningful for path assignments.
type Assignment struct {
	Coord
	Shape Shape
	Tile  *tiles.Definition
}

// adjacency returns the connection bit pointing from a to b, or 0 when b is
// not a straight neighbor of a.
func adjacency(a, b Coord) uint8 {
	if a.Z != b.Z {
		return 0
	}
	switch {
	case b.Y == a.Y && b.X == a.X-1:
		return ConnLeft
	case b.Y == a.Y && b.X == a.X+1:
		return ConnRight
	case b.X == a.X && b.Y == a.Y-1:
		return ConnTop
	case b.X == a.X && b.Y == a.Y+1:
		return ConnBottom
	}
	return 0
}

// opposite flips a single connection bit.
func opposite(bit uint8) uint8 {
	switch bit {
	case ConnLeft:
		return ConnRight
	case ConnRight:
		return ConnLeft
	case ConnTop:
		return ConnBottom
	case ConnBottom:
		return ConnTop
	}
	return 0
}

func assign(c Coord, mask uint8, pack *ConnectorPack) Assignment {
	shape := ShapeOf(NodeFromMask(mask))
	return Assignment{Coord: c, Shape: shape, Tile: pack.Piece(shape)}
}

// ResolveExhaustive assigns a connector piece to every position of path. A
// position connects toward each straight neighbor occupied by any other
// position, so revisited and crossing cells see the whole path. The output has
// one assignment per position, in path order.
func ResolveExhaustive(path []Coord, pack *ConnectorPack) []Assignment {
	out := make([]Assignment, len(path))
	for i, c := range path {
		var mask uint8
		for j, o := range path {
			if i == j {
				continue
			}
			mask |= adjacency(c, o)
		}
		out[i] = assign(c, mask, pack)
	}
	return out
}

// IsSimpleChain reports whether path has no repeated coordinates and no two
// positions are straight neighbors unless they are consecutive.
func IsSimpleChain(path []Coord) bool {
	index := make(map[Coord]int, len(path))
	for i, c := range path {
		if _, dup := index[c]; dup {
			return false
		}
		index[c] = i
	}
	for i, c := range path {
		for _, n := range [...]Coord{c.Add(-1, 0), c.Add(1, 0), c.Add(0, -1), c.Add(0, 1)} {
			j, ok := index[n]
			if !ok {
				continue
			}
			if j != i-1 && j != i+1 {
				return false
			}
		}
	}
	return true
}

// ResolveLinear is the single-pass form of ResolveExhaustive. It links each
// position to its predecessor and emits the predecessor once both of its links
// are known. Only simple chains are accepted, which is exactly where the two
// agree.
func ResolveLinear(path []Coord, pack *ConnectorPack) ([]Assignment, error) {
	if !IsSimpleChain(path) {
		return nil, ErrNotSimpleChain
	}
	return resolveChain(path, pack), nil
}

// resolveChain is ResolveLinear without the chain check.
func resolveChain(path []Coord, pack *ConnectorPack) []Assignment {
	out := make([]Assignment, 0, len(path))
	masks := make(map[Coord]uint8, len(path))
	for i := 1; i < len(path); i++ {
		prev, c := path[i-1], path[i]
		if bit := adjacency(prev, c); bit != 0 {
			masks[prev] |= bit
			masks[c] |= opposite(bit)
		}
		out = append(out, assign(prev, masks[prev], pack))
	}
	if n := len(path); n > 0 {
		last := path[n-1]
		out = append(out, assign(last, masks[last], pack))
	}
	return out
}

// Resolve assigns connector pieces with the exhaustive semantics, taking the
// linear pass when the path allows it.
func Resolve(path []Coord, pack *ConnectorPack) []Assignment {
	if IsSimpleChain(path) {
		return resolveChain(path, pack)
	}
	return ResolveExhaustive(path, pack)
}

// span returns the integers from a to b inclusive, in either direction.
func span(a, b int) []int {
	step := 1
	if b < a {
		step = -1
	}
	out := make([]int, 0, abs(b-a)+1)
	for v := a; ; v += step {
		out = append(out, v)
		if v == b {
			break
		}
	}
	return out
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// LPath builds the axis-aligned L-shaped path between two clicks on from's
// layer. With yFirst the vertical leg is walked first.
func LPath(from, to Coord, yFirst bool) []Coord {
	var out []Coord
	if yFirst {
		for _, y := range span(from.Y, to.Y) {
			out = append(out, Coord{from.X, y, from.Z})
		}
		for _, x := range span(from.X, to.X)[1:] {
			out = append(out, Coord{x, to.Y, from.Z})
		}
		return out
	}
	for _, x := range span(from.X, to.X) {
		out = append(out, Coord{x, from.Y, from.Z})
	}
	for _, y := range span(from.Y, to.Y)[1:] {
		out = append(out, Coord{to.X, y, from.Z})
	}
	return out
}
