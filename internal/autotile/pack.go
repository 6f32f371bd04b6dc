package autotile

import (
	"errors"
	"fmt"

	"autotile/internal/tiles"
)

var (
	// ErrMissingPiece means a mandatory pack slot has no tile name.
	ErrMissingPiece = errors.New("missing mandatory piece")
	// ErrUnknownTile means a pack names a tile the lookup cannot resolve.
	ErrUnknownTile = errors.New("unknown tile")
)

// PathPackSpec names the tiles of a connector pack, as stored in pack files.
// Empty optional names leave the slot unset.
type PathPackSpec struct {
	Name            string `json:"name"`
	Vertical        string `json:"vertical"`
	Horizontal      string `json:"horizontal"`
	TopLeft         string `json:"top_left"`
	TopRight        string `json:"top_right"`
	BottomRight     string `json:"bottom_right"`
	BottomLeft      string `json:"bottom_left"`
	Cross           string `json:"cross,omitempty"`
	RightBottomLeft string `json:"right_bottom_left,omitempty"`
	BottomLeftTop   string `json:"bottom_left_top,omitempty"`
	LeftTopRight    string `json:"left_top_right,omitempty"`
	TopRightBottom  string `json:"top_right_bottom,omitempty"`
}

// pieces returns the tile names in Shape order.
func (s PathPackSpec) pieces() [numShapes]string {
	return [numShapes]string{
		Vertical:        s.Vertical,
		Horizontal:      s.Horizontal,
		TopLeft:         s.TopLeft,
		TopRight:        s.TopRight,
		BottomRight:     s.BottomRight,
		BottomLeft:      s.BottomLeft,
		Cross:           s.Cross,
		RightBottomLeft: s.RightBottomLeft,
		BottomLeftTop:   s.BottomLeftTop,
		LeftTopRight:    s.LeftTopRight,
		TopRightBottom:  s.TopRightBottom,
	}
}

// ConnectorPack maps each connector shape to a tile. Only optional shapes may
// be unset.
type ConnectorPack struct {
	Name   string
	pieces [numShapes]*tiles.Definition
}

// NewConnectorPack resolves every name of spec through lookup.
func NewConnectorPack(lookup tiles.Lookup, spec PathPackSpec) (*ConnectorPack, error) {
	p := &ConnectorPack{Name: spec.Name}
	for i, name := range spec.pieces() {
		shape := Shape(i)
		if name == "" {
			if shape.Optional() {
				continue
			}
			return nil, fmt.Errorf("path pack %q %s: %w", spec.Name, shape, ErrMissingPiece)
		}
		def, ok := lookup.Tile(name)
		if !ok {
			return nil, fmt.Errorf("path pack %q %s %q: %w", spec.Name, shape, name, ErrUnknownTile)
		}
		p.pieces[shape] = def
	}
	return p, nil
}

// Piece returns the tile for shape, or nil when the slot is unset.
func (p *ConnectorPack) Piece(shape Shape) *tiles.Definition {
	if shape >= numShapes {
		return nil
	}
	return p.pieces[shape]
}

// BoxPackSpec names the tiles of a border pack, as stored in pack files.
type BoxPackSpec struct {
	Name        string   `json:"name"`
	Left        string   `json:"left"`
	Top         string   `json:"top"`
	Right       string   `json:"right"`
	Bottom      string   `json:"bottom"`
	TopLeft     string   `json:"top_left"`
	TopRight    string   `json:"top_right"`
	BottomRight string   `json:"bottom_right"`
	BottomLeft  string   `json:"bottom_left"`
	Interior    []string `json:"interior,omitempty"`
}

// BorderPack holds the edge, corner and interior tiles for rectangles.
// Edges and corners are never nil; Interior may be empty.
type BorderPack struct {
	Name string

	Left, Top, Right, Bottom                   *tiles.Definition
	TopLeft, TopRight, BottomRight, BottomLeft *tiles.Definition

	Interior []*tiles.Definition
}

// NewBorderPack resolves every name of spec through lookup.
func NewBorderPack(lookup tiles.Lookup, spec BoxPackSpec) (*BorderPack, error) {
	p := &BorderPack{Name: spec.Name}
	slots := []struct {
		slot string
		name string
		dst  **tiles.Definition
	}{
		{"left", spec.Left, &p.Left},
		{"top", spec.Top, &p.Top},
		{"right", spec.Right, &p.Right},
		{"bottom", spec.Bottom, &p.Bottom},
		{"top_left", spec.TopLeft, &p.TopLeft},
		{"top_right", spec.TopRight, &p.TopRight},
		{"bottom_right", spec.BottomRight, &p.BottomRight},
		{"bottom_left", spec.BottomLeft, &p.BottomLeft},
	}
	for _, s := range slots {
		if s.name == "" {
			return nil, fmt.Errorf("box pack %q %s: %w", spec.Name, s.slot, ErrMissingPiece)
		}
		def, ok := lookup.Tile(s.name)
		if !ok {
			return nil, fmt.Errorf("box pack %q %s %q: %w", spec.Name, s.slot, s.name, ErrUnknownTile)
		}
		*s.dst = def
	}

	for _, name := range spec.Interior {
		def, ok := lookup.Tile(name)
		if !ok {
			return nil, fmt.Errorf("box pack %q interior %q: %w", spec.Name, name, ErrUnknownTile)
		}
		p.Interior = append(p.Interior, def)
	}
	return p, nil
}
