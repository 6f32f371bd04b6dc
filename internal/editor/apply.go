package editor

import (
	"autotile/internal/autotile"
	"autotile/internal/geo"
	"autotile/internal/tiles"
)

// Apply writes resolved assignments into the level's tile matrix and returns
// how many tiles were placed. Assignments with a nil tile or an out-of-bounds
// head are skipped. Multi-cell tiles get body cells over the part of their
// footprint that lies inside the level.
func Apply(l *Level, assignments []autotile.Assignment) int {
	placed := 0
	for _, a := range assignments {
		if a.Tile == nil || !l.InBounds(a.Coord) {
			continue
		}
		place(l, a.Coord, a.Tile)
		placed++
	}
	return placed
}

func place(l *Level, head autotile.Coord, def *tiles.Definition) {
	for dy := 0; dy < def.Height; dy++ {
		for dx := 0; dx < def.Width; dx++ {
			c := head.Add(dx, dy)
			if !l.InBounds(c) {
				continue
			}
			Erase(l, c)
			if dx == 0 && dy == 0 {
				l.Tiles.Set(c, HeadCell{Def: def})
			} else {
				l.Tiles.Set(c, BodyCell{Head: head})
			}
		}
	}
}

// Erase clears the tile covering c. A multi-cell tile is removed as a whole.
func Erase(l *Level, c autotile.Coord) {
	head := c
	switch cell := l.Tiles.At(c).(type) {
	case EmptyCell:
		return
	case MaterialCell:
		l.Tiles.Set(c, EmptyCell{})
		return
	case BodyCell:
		head = cell.Head
	}

	h, ok := l.Tiles.At(head).(HeadCell)
	if !ok {
		l.Tiles.Set(c, EmptyCell{})
		return
	}
	for dy := 0; dy < h.Def.Height; dy++ {
		for dx := 0; dx < h.Def.Width; dx++ {
			bc := head.Add(dx, dy)
			if b, ok := l.Tiles.At(bc).(BodyCell); ok && b.Head == head {
				l.Tiles.Set(bc, EmptyCell{})
			}
		}
	}
	l.Tiles.Set(head, EmptyCell{})
}

// OrientSlope turns the cell at (x, y, z) into the slope its straight
// neighbors call for. The cell is left alone when the pattern is
// indeterminate.
func OrientSlope(l *Level, x, y, z int) bool {
	if !l.Geo.InBounds(x, y, z) {
		return false
	}
	t, ok := geo.ResolveSlope(geo.ContextAt(l.Geo, x, y, z))
	if !ok {
		return false
	}
	c := l.Geo.At(x, y, z)
	c.Type = t
	l.Geo.Set(x, y, z, c)
	return true
}

// RefreshEntrances converts every entrance on layer z that resolves to a
// directional variant into a shortcut entrance cell, and returns how many
// cells changed. Variants are resolved against the layer as it was before the
// call.
func RefreshEntrances(l *Level, z int) int {
	type hit struct{ x, y int }
	var hits []hit
	for y := 0; y < l.Geo.Height(); y++ {
		for x := 0; x < l.Geo.Width(); x++ {
			c := l.Geo.At(x, y, z)
			if !c.Features.Has(geo.Entrance) || c.Type == geo.ShortcutEntrance {
				continue
			}
			if geo.ResolveVariant(geo.Entrance, geo.ContextAt(l.Geo, x, y, z)).Directional() {
				hits = append(hits, hit{x, y})
			}
		}
	}
	for _, h := range hits {
		c := l.Geo.At(h.x, h.y, z)
		c.Type = geo.ShortcutEntrance
		l.Geo.Set(h.x, h.y, z, c)
	}
	return len(hits)
}

// ToggleSolid flips the cell at c between air and solid. Slopes and other
// types become air.
func ToggleSolid(l *Level, c autotile.Coord) {
	cell := l.Geo.At(c.X, c.Y, c.Z)
	if cell.Type == geo.Solid {
		cell.Type = geo.Air
	} else {
		cell.Type = geo.Solid
	}
	l.Geo.Set(c.X, c.Y, c.Z, cell)
}

// ToggleFeature adds f to the cell at c, or removes it if present.
func ToggleFeature(l *Level, c autotile.Coord, f geo.Feature) {
	cell := l.Geo.At(c.X, c.Y, c.Z)
	if cell.Features.Has(f) {
		cell.Features = cell.Features.Without(f)
	} else {
		cell.Features = cell.Features.With(f)
	}
	l.Geo.Set(c.X, c.Y, c.Z, cell)
}
