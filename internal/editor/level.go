package editor

import (
	"autotile/internal/autotile"
	"autotile/internal/geo"
	"autotile/internal/tiles"
)

// Level is the editable state: a geometry matrix and a tile matrix of the same
// dimensions.
type Level struct {
	Name  string
	Geo   *geo.Matrix
	Tiles *TileMatrix
}

// NewLevel creates an all-air level with geo.Layers layers.
func NewLevel(name string, width, height int) *Level {
	return &Level{
		Name:  name,
		Geo:   geo.NewMatrix(width, height, geo.Layers, geo.Cell{}),
		Tiles: NewTileMatrix(width, height, geo.Layers),
	}
}

// LevelFromDocument wraps loaded geometry with an empty tile layer.
func LevelFromDocument(doc *geo.Document) *Level {
	m := doc.Matrix
	return &Level{
		Name:  doc.Name,
		Geo:   m,
		Tiles: NewTileMatrix(m.Width(), m.Height(), m.Layers()),
	}
}

// Document returns the geometry part of the level for saving.
func (l *Level) Document() *geo.Document {
	return &geo.Document{Name: l.Name, Matrix: l.Geo}
}

func (l *Level) Width() int  { return l.Geo.Width() }
func (l *Level) Height() int { return l.Geo.Height() }
func (l *Level) Layers() int { return l.Geo.Layers() }

// InBounds reports whether c lies inside the level.
func (l *Level) InBounds(c autotile.Coord) bool {
	return l.Geo.InBounds(c.X, c.Y, c.Z)
}

// Clone returns a deep copy of the level's cells.
func (l *Level) Clone() *Level {
	return &Level{Name: l.Name, Geo: l.Geo.Clone(), Tiles: l.Tiles.Clone()}
}

// TileAt returns the definition covering c, following body cells to their
// head, or nil.
func (l *Level) TileAt(c autotile.Coord) *tiles.Definition {
	switch cell := l.Tiles.At(c).(type) {
	case HeadCell:
		return cell.Def
	case BodyCell:
		if head, ok := l.Tiles.At(cell.Head).(HeadCell); ok {
			return head.Def
		}
	}
	return nil
}
