package autotile

import (
	"encoding/json"
	"fmt"
	"os"

	"autotile/internal/tiles"
)

// PackSpecs is the on-disk pack file.
type PackSpecs struct {
	PathPacks []PathPackSpec `json:"path_packs"`
	BoxPacks  []BoxPackSpec  `json:"box_packs"`
}

// DefaultPackSpecs returns the packs the editor ships with.
func DefaultPackSpecs() PackSpecs {
	return PackSpecs{
		PathPacks: []PathPackSpec{
			{
				Name:     "Thin Pipes",
				Vertical: "Vertical Pipe", Horizontal: "Horizontal Pipe",
				TopLeft: "Pipe ES", TopRight: "Pipe WS", BottomRight: "Pipe WN", BottomLeft: "Pipe EN",
				Cross:           "Pipe XJunct",
				RightBottomLeft: "Pipe TJunct S", BottomLeftTop: "Pipe TJunct W",
				LeftTopRight: "Pipe TJunct N", TopRightBottom: "Pipe TJunct E",
			},
			{
				Name:     "Thin Plain Pipes",
				Vertical: "Vertical Plain Pipe", Horizontal: "Horizontal Plain Pipe",
				TopLeft: "Pipe ES", TopRight: "Pipe WS", BottomRight: "Pipe WN", BottomLeft: "Pipe EN",
				Cross:           "Pipe XJunct",
				RightBottomLeft: "Pipe TJunct S", BottomLeftTop: "Pipe TJunct W",
				LeftTopRight: "Pipe TJunct N", TopRightBottom: "Pipe TJunct E",
			},
			{
				Name:     "Wall Wires",
				Vertical: "WallWires Vertical A", Horizontal: "WallWires Horizontal A",
				TopLeft: "WallWires Square SE", TopRight: "WallWires Square SW",
				BottomRight: "WallWires Square NW", BottomLeft: "WallWires Square NE",
				Cross:           "WallWires X Section",
				RightBottomLeft: "WallWires T Section S", BottomLeftTop: "WallWires T Section W",
				LeftTopRight: "WallWires T Section N", TopRightBottom: "WallWires T Section E",
			},
			{
				Name:     "Inside Thin Pipes",
				Vertical: "insidePipeVertical", Horizontal: "insidePipeHorizontal",
				TopLeft: "insidePipeRD", TopRight: "insidePipeLD",
				BottomRight: "insidePipeLU", BottomLeft: "insidePipeRU",
			},
		},
		BoxPacks: []BoxPackSpec{
			{
				Name: "Su Patterns",
				Left: "Block Edge W", Top: "Block Edge N", Right: "Block Edge E", Bottom: "Block Edge S",
				TopLeft: "Block Corner NW", TopRight: "Block Corner NE",
				BottomRight: "Block Corner SE", BottomLeft: "Block Corner SW",
			},
		},
	}
}

// LoadPackSpecs reads a JSON pack file from disk.
func LoadPackSpecs(path string) (PackSpecs, error) {
	var specs PackSpecs
	data, err := os.ReadFile(path)
	if err != nil {
		return specs, fmt.Errorf("read pack file: %w", err)
	}
	if err := json.Unmarshal(data, &specs); err != nil {
		return specs, fmt.Errorf("parse pack JSON: %w", err)
	}
	return specs, nil
}

// Library holds validated packs in declaration order.
type Library struct {
	pathPacks []*ConnectorPack
	boxPacks  []*BorderPack
}

// NewLibrary validates every pack of specs against lookup. The first invalid
// pack rejects the whole library.
func NewLibrary(lookup tiles.Lookup, specs PackSpecs) (*Library, error) {
	lib := &Library{}
	seenPath := make(map[string]bool)
	for _, s := range specs.PathPacks {
		if seenPath[s.Name] {
			return nil, fmt.Errorf("duplicate path pack %q", s.Name)
		}
		seenPath[s.Name] = true
		p, err := NewConnectorPack(lookup, s)
		if err != nil {
			return nil, err
		}
		lib.pathPacks = append(lib.pathPacks, p)
	}
	seenBox := make(map[string]bool)
	for _, s := range specs.BoxPacks {
		if seenBox[s.Name] {
			return nil, fmt.Errorf("duplicate box pack %q", s.Name)
		}
		seenBox[s.Name] = true
		p, err := NewBorderPack(lookup, s)
		if err != nil {
			return nil, err
		}
		lib.boxPacks = append(lib.boxPacks, p)
	}
	return lib, nil
}

// PathPack returns the named connector pack, or nil.
func (l *Library) PathPack(name string) *ConnectorPack {
	for _, p := range l.pathPacks {
		if p.Name == name {
			return p
		}
	}
	return nil
}

// BoxPack returns the named border pack, or nil.
func (l *Library) BoxPack(name string) *BorderPack {
	for _, p := range l.boxPacks {
		if p.Name == name {
			return p
		}
	}
	return nil
}

// PathPacks returns the connector packs in declaration order.
func (l *Library) PathPacks() []*ConnectorPack { return l.pathPacks }

// BoxPacks returns the border packs in declaration order.
func (l *Library) BoxPacks() []*BorderPack { return l.boxPacks }

// PathPackNames returns connector pack names in declaration order.
func (l *Library) PathPackNames() []string {
	names := make([]string, len(l.pathPacks))
	for i, p := range l.pathPacks {
		names[i] = p.Name
	}
	return names
}

// BoxPackNames returns border pack names in declaration order.
func (l *Library) BoxPackNames() []string {
	names := make([]string, len(l.boxPacks))
	for i, p := range l.boxPacks {
		names[i] = p.Name
	}
	return names
}
