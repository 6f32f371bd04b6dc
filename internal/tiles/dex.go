package tiles

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"
)

// ErrDuplicateTile is returned when two definitions or two categories share a name.
var ErrDuplicateTile = errors.New("duplicate tile")

// Definition describes one placeable tile. Width and Height are in cells; the
// head cell sits at the top-left of the footprint.
type Definition struct {
	Name     string
	Category string
	Width    int
	Height   int
	Glyph    rune   // preview glyph, zero when the file gives none
	Color    string // "#rrggbb"; inherited from the category when empty
}

// Multi reports whether the tile covers more than one cell.
func (d *Definition) Multi() bool {
	return d.Width > 1 || d.Height > 1
}

// Lookup resolves tile names to definitions.
type Lookup interface {
	Tile(name string) (*Definition, bool)
}

// Category is an ordered group of definitions.
type Category struct {
	Name  string
	Color string
	Tiles []*Definition
}

// Dex is an in-memory tile dictionary, indexed by name and grouped by category.
type Dex struct {
	byName     map[string]*Definition
	categories []*Category
}

// jsonDex is the on-disk JSON format.
type jsonDex struct {
	Categories []jsonCategory `json:"categories"`
}

type jsonCategory struct {
	Name  string     `json:"name"`
	Color string     `json:"color,omitempty"`
	Tiles []jsonTile `json:"tiles"`
}

type jsonTile struct {
	Name  string `json:"name"`
	Size  [2]int `json:"size,omitempty"`
	Glyph string `json:"glyph,omitempty"`
	Color string `json:"color,omitempty"`
}

// NewDex builds a dex from categories. Definitions get their Category field
// set from the group they belong to.
func NewDex(categories []*Category) (*Dex, error) {
	d := &Dex{byName: make(map[string]*Definition)}
	seenCat := make(map[string]bool)
	for _, c := range categories {
		if err := d.add(c, seenCat); err != nil {
			return nil, err
		}
	}
	return d, nil
}

func (d *Dex) add(c *Category, seenCat map[string]bool) error {
	if c.Name == "" {
		return fmt.Errorf("category with empty name")
	}
	if seenCat[c.Name] {
		return fmt.Errorf("%w: category %q", ErrDuplicateTile, c.Name)
	}
	seenCat[c.Name] = true

	for _, def := range c.Tiles {
		if def.Name == "" {
			return fmt.Errorf("category %q: tile with empty name", c.Name)
		}
		if def.Width < 1 || def.Height < 1 {
			return fmt.Errorf("tile %q: invalid size %dx%d", def.Name, def.Width, def.Height)
		}
		if prev, exists := d.byName[def.Name]; exists {
			return fmt.Errorf("%w: %q in %q and %q", ErrDuplicateTile, def.Name, prev.Category, c.Name)
		}
		def.Category = c.Name
		if def.Color == "" {
			def.Color = c.Color
		}
		d.byName[def.Name] = def
	}
	d.categories = append(d.categories, c)
	return nil
}

// LoadDex reads a JSON tile dictionary from disk.
func LoadDex(path string) (*Dex, error) {
	cats, err := loadCategories(path)
	if err != nil {
		return nil, err
	}
	return NewDex(cats)
}

// LoadDexDir scans a directory for *.json files and merges them into one dex.
// Files are read in name order; names must be unique across all files.
func LoadDexDir(dir string) (*Dex, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read tiles directory: %w", err)
	}

	var all []*Category
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		cats, err := loadCategories(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("load %s: %w", entry.Name(), err)
		}
		all = append(all, cats...)
	}
	return NewDex(all)
}

func loadCategories(path string) ([]*Category, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read tiles file: %w", err)
	}

	var jd jsonDex
	if err := json.Unmarshal(data, &jd); err != nil {
		return nil, fmt.Errorf("parse tiles JSON: %w", err)
	}

	cats := make([]*Category, 0, len(jd.Categories))
	for _, jc := range jd.Categories {
		c := &Category{Name: jc.Name, Color: jc.Color}
		for _, jt := range jc.Tiles {
			w, h := jt.Size[0], jt.Size[1]
			if w == 0 && h == 0 {
				w, h = 1, 1
			}
			var glyph rune
			if jt.Glyph != "" {
				glyph, _ = utf8.DecodeRuneInString(jt.Glyph)
			}
			c.Tiles = append(c.Tiles, &Definition{
				Name:   jt.Name,
				Width:  w,
				Height: h,
				Glyph:  glyph,
				Color:  jt.Color,
			})
		}
		cats = append(cats, c)
	}
	return cats, nil
}

// Tile returns the definition with the given name.
func (d *Dex) Tile(name string) (*Definition, bool) {
	def, ok := d.byName[name]
	return def, ok
}

// Len returns the number of definitions.
func (d *Dex) Len() int { return len(d.byName) }

// Categories returns category names in load order.
func (d *Dex) Categories() []string {
	names := make([]string, len(d.categories))
	for i, c := range d.categories {
		names[i] = c.Name
	}
	return names
}

// Category returns the named category, or nil.
func (d *Dex) Category(name string) *Category {
	for _, c := range d.categories {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// TilesOf returns the definitions of a category in declaration order.
func (d *Dex) TilesOf(category string) []*Definition {
	if c := d.Category(category); c != nil {
		return c.Tiles
	}
	return nil
}

// Names returns every tile name, sorted.
func (d *Dex) Names() []string {
	names := make([]string, 0, len(d.byName))
	for name := range d.byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
