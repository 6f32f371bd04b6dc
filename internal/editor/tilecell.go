package editor

import (
	"autotile/internal/autotile"
	"autotile/internal/tiles"
)

// TileCell is the content of one cell of the tile layer. It is one of
// EmptyCell, MaterialCell, HeadCell or BodyCell.
type TileCell interface {
	isTileCell()
}

// EmptyCell holds nothing.
type EmptyCell struct{}

// MaterialCell is filled with a named material.
type MaterialCell struct {
	Name string
}

// HeadCell is the top-left cell of a placed tile.
type HeadCell struct {
	Def *tiles.Definition
}

// BodyCell is covered by the multi-cell tile whose head is at Head.
type BodyCell struct {
	Head autotile.Coord
}

func (EmptyCell) isTileCell()    {}
func (MaterialCell) isTileCell() {}
func (HeadCell) isTileCell()     {}
func (BodyCell) isTileCell()     {}

// TileMatrix is a width x height x layers grid of tile cells.
type TileMatrix struct {
	width, height, layers int
	cells                 []TileCell // nil reads as EmptyCell
}

// NewTileMatrix creates an empty tile matrix.
func NewTileMatrix(width, height, layers int) *TileMatrix {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	if layers < 1 {
		layers = 1
	}
	return &TileMatrix{
		width:  width,
		height: height,
		layers: layers,
		cells:  make([]TileCell, width*height*layers),
	}
}

func (m *TileMatrix) Width() int  { return m.width }
func (m *TileMatrix) Height() int { return m.height }
func (m *TileMatrix) Layers() int { return m.layers }

// InBounds reports whether c addresses a cell of the matrix.
func (m *TileMatrix) InBounds(c autotile.Coord) bool {
	return c.X >= 0 && c.X < m.width && c.Y >= 0 && c.Y < m.height && c.Z >= 0 && c.Z < m.layers
}

// At returns the cell at c, or EmptyCell out of bounds.
func (m *TileMatrix) At(c autotile.Coord) TileCell {
	if !m.InBounds(c) {
		return EmptyCell{}
	}
	if cell := m.cells[m.index(c)]; cell != nil {
		return cell
	}
	return EmptyCell{}
}

// Set writes the cell at c. Out-of-bounds writes are ignored and reported as false.
func (m *TileMatrix) Set(c autotile.Coord, cell TileCell) bool {
	if !m.InBounds(c) {
		return false
	}
	if _, empty := cell.(EmptyCell); empty {
		cell = nil
	}
	m.cells[m.index(c)] = cell
	return true
}

// Clone returns a copy of the matrix. Definitions are shared.
func (m *TileMatrix) Clone() *TileMatrix {
	c := *m
	c.cells = append([]TileCell(nil), m.cells...)
	return &c
}

func (m *TileMatrix) index(c autotile.Coord) int {
	return (c.Y*m.width+c.X)*m.layers + c.Z
}
