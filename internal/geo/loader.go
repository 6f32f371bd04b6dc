package geo

import (
	"encoding/json"
	"fmt"
	"os"
)

// DefaultLegend maps level-file characters to cell types.
var DefaultLegend = map[rune]CellType{
	'.': Air,
	'#': Solid,
	'2': SlopeNE,
	'3': SlopeNW,
	'4': SlopeES,
	'5': SlopeSW,
	'-': Platform,
	'7': ShortcutEntrance,
	'g': Glass,
}

// Document is a named geometry matrix as stored on disk.
type Document struct {
	Name   string
	Matrix *Matrix
}

// jsonDocument is the on-disk JSON format. Each layer is a list of rows, one
// character per cell.
type jsonDocument struct {
	Name     string            `json:"name"`
	Width    int               `json:"width"`
	Height   int               `json:"height"`
	Legend   map[string]string `json:"legend,omitempty"`
	Layers   [][]string        `json:"layers"`
	Features []jsonFeature     `json:"features,omitempty"`
}

type jsonFeature struct {
	X     int      `json:"x"`
	Y     int      `json:"y"`
	Z     int      `json:"z"`
	Names []string `json:"names"`
}

// Load reads a JSON geometry document from disk.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read geometry file: %w", err)
	}
	doc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// Parse decodes a JSON geometry document.
func Parse(data []byte) (*Document, error) {
	var jd jsonDocument
	if err := json.Unmarshal(data, &jd); err != nil {
		return nil, fmt.Errorf("parse geometry JSON: %w", err)
	}

	legend := make(map[rune]CellType, len(DefaultLegend)+len(jd.Legend))
	for ch, t := range DefaultLegend {
		legend[ch] = t
	}
	for key, name := range jd.Legend {
		runes := []rune(key)
		if len(runes) != 1 {
			return nil, fmt.Errorf("legend key %q must be a single character", key)
		}
		t, err := ParseCellType(name)
		if err != nil {
			return nil, fmt.Errorf("legend %q: %w", key, err)
		}
		legend[runes[0]] = t
	}

	if jd.Width <= 0 || jd.Height <= 0 {
		return nil, fmt.Errorf("invalid dimensions %dx%d", jd.Width, jd.Height)
	}
	if len(jd.Layers) == 0 || len(jd.Layers) > Layers {
		return nil, fmt.Errorf("layer count %d out of range [1..%d]", len(jd.Layers), Layers)
	}

	m := NewMatrix(jd.Width, jd.Height, Layers, Cell{})
	for z, rows := range jd.Layers {
		if len(rows) != jd.Height {
			return nil, fmt.Errorf("layer %d: rows %d != declared height %d", z, len(rows), jd.Height)
		}
		for y, row := range rows {
			runes := []rune(row)
			if len(runes) != jd.Width {
				return nil, fmt.Errorf("layer %d row %d has %d cells, expected %d", z, y, len(runes), jd.Width)
			}
			for x, ch := range runes {
				t, ok := legend[ch]
				if !ok {
					return nil, fmt.Errorf("layer %d (%d,%d): unknown cell %q", z, x, y, ch)
				}
				m.Set(x, y, z, Cell{Type: t})
			}
		}
	}

	for _, jf := range jd.Features {
		if !m.InBounds(jf.X, jf.Y, jf.Z) {
			return nil, fmt.Errorf("feature at (%d,%d,%d) is out of bounds", jf.X, jf.Y, jf.Z)
		}
		c := m.At(jf.X, jf.Y, jf.Z)
		for _, name := range jf.Names {
			f, err := ParseFeature(name)
			if err != nil {
				return nil, fmt.Errorf("feature at (%d,%d,%d): %w", jf.X, jf.Y, jf.Z, err)
			}
			c.Features = c.Features.With(f)
		}
		m.Set(jf.X, jf.Y, jf.Z, c)
	}

	return &Document{Name: jd.Name, Matrix: m}, nil
}

// Marshal encodes the document using the default legend.
func (d *Document) Marshal() ([]byte, error) {
	chars := make(map[CellType]rune, len(DefaultLegend))
	for ch, t := range DefaultLegend {
		chars[t] = ch
	}

	m := d.Matrix
	jd := jsonDocument{
		Name:   d.Name,
		Width:  m.Width(),
		Height: m.Height(),
		Layers: make([][]string, m.Layers()),
	}
	for z := 0; z < m.Layers(); z++ {
		rows := make([]string, m.Height())
		for y := 0; y < m.Height(); y++ {
			row := make([]rune, m.Width())
			for x := 0; x < m.Width(); x++ {
				c := m.At(x, y, z)
				ch, ok := chars[c.Type]
				if !ok {
					return nil, fmt.Errorf("cell (%d,%d,%d): no legend entry for %s", x, y, z, c.Type)
				}
				row[x] = ch
				if c.Features != 0 {
					names := make([]string, 0, c.Features.Len())
					for _, f := range c.Features.List() {
						names = append(names, f.String())
					}
					jd.Features = append(jd.Features, jsonFeature{X: x, Y: y, Z: z, Names: names})
				}
			}
			rows[y] = string(row)
		}
		jd.Layers[z] = rows
	}

	return json.MarshalIndent(jd, "", "  ")
}

// Save writes the document to path as indented JSON.
func (d *Document) Save(path string) error {
	data, err := d.Marshal()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("write geometry file: %w", err)
	}
	return nil
}
