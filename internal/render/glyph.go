package render

import (
	"unicode"

	"autotile/internal/autotile"
	"autotile/internal/editor"
	"autotile/internal/geo"
	"autotile/internal/tiles"
)

// geoGlyphs maps each cell type to its preview glyph. Slopes show the filled
// half on the side of their two solid neighbors.
var geoGlyphs = map[geo.CellType]rune{
	geo.Air:              ' ',
	geo.Solid:            '█',
	geo.SlopeNE:          '◣',
	geo.SlopeNW:          '◢',
	geo.SlopeES:          '◤',
	geo.SlopeSW:          '◥',
	geo.Platform:         '▔',
	geo.ShortcutEntrance: '▣',
	geo.Glass:            '▒',
}

// GeoGlyph returns the preview glyph for a cell type, '?' for unknown types.
func GeoGlyph(t geo.CellType) rune {
	if g, ok := geoGlyphs[t]; ok {
		return g
	}
	return '?'
}

// variantGlyphs is indexed by feature variant.
var variantGlyphs = [...]rune{
	geo.VariantHorizontalPole:       '-',
	geo.VariantVerticalPole:         '|',
	geo.VariantBatHive:              'B',
	geo.VariantShortcutPath:         '·',
	geo.VariantCrackBottomLeft:      '┐',
	geo.VariantCrackBottomRight:     '┌',
	geo.VariantCrackCross:           '┼',
	geo.VariantCrackHorizontal:      '─',
	geo.VariantCrackLeftBottomRight: '┬',
	geo.VariantCrackTopBottomRight:  '├',
	geo.VariantCrackTopLeft:         '┘',
	geo.VariantCrackTopLeftBottom:   '┤',
	geo.VariantCrackTopLeftRight:    '┴',
	geo.VariantCrackTopRight:        '└',
	geo.VariantCrackIsolated:        '×',
	geo.VariantCrackVertical:        '│',
	geo.VariantGarbageWormHole:      'g',
	geo.VariantScavengerHole:        's',
	geo.VariantRock:                 '●',
	geo.VariantWaterfall:            '≈',
	geo.VariantWackAMoleHole:        'w',
	geo.VariantWormGrass:            '"',
	geo.VariantEntranceBottom:       '▽',
	geo.VariantEntranceLeft:         '◁',
	geo.VariantEntranceRight:        '▷',
	geo.VariantEntranceTop:          '△',
	geo.VariantEntranceLoose:        '◇',
	geo.VariantPassage:              '○',
	geo.VariantDragonDen:            'D',
	geo.VariantSpear:                '↑',
	geo.VariantForbidFlyChains:      '#',
	geo.VariantCrackBottom:          '╷',
	geo.VariantCrackRight:           '╶',
	geo.VariantCrackTop:             '╵',
	geo.VariantCrackLeft:            '╴',
}

// VariantGlyph returns the glyph for a feature variant, or 0 for NoVariant.
func VariantGlyph(v geo.Variant) rune {
	if v < 0 || int(v) >= len(variantGlyphs) {
		return 0
	}
	return variantGlyphs[v]
}

// TileGlyph returns the definition's glyph, falling back to the first letter
// of its name.
func TileGlyph(def *tiles.Definition) rune {
	if def.Glyph != 0 {
		return def.Glyph
	}
	for _, r := range def.Name {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return unicode.ToUpper(r)
		}
	}
	return '?'
}

// TileColor returns the definition's color override or its category color.
func TileColor(def *tiles.Definition) RGB {
	if c, ok := ParseColor(def.Color); ok {
		return c
	}
	return CategoryColor(def.Category)
}

// LevelCell composes the preview of one level cell on layer z: geometry,
// then the first feature that resolves to a variant, then the tile on top.
func LevelCell(l *editor.Level, x, y, z int) Cell {
	gc := l.Geo.At(x, y, z)
	cell := Cell{Ch: GeoGlyph(gc.Type), Fg: slopeFg, Bg: background}
	switch gc.Type {
	case geo.Solid:
		cell.Fg, cell.Bg = solidFg, solidBg
	case geo.Platform:
		cell.Fg = platformFg
	case geo.Glass:
		cell.Fg = glassFg
	case geo.ShortcutEntrance:
		cell.Fg = entranceFg
	}

	if gc.Features != 0 {
		ctx := geo.ContextAt(l.Geo, x, y, z)
		for _, f := range gc.Features.List() {
			v := geo.ResolveVariant(f, ctx)
			if v == geo.NoVariant {
				continue
			}
			cell.Ch = VariantGlyph(v)
			cell.Fg = featureFg
			if v.Directional() || v == geo.VariantEntranceLoose {
				cell.Fg = entranceFg
			}
			break
		}
	}

	c := autotile.Coord{X: x, Y: y, Z: z}
	switch tc := l.Tiles.At(c).(type) {
	case editor.HeadCell:
		cell.Ch = TileGlyph(tc.Def)
		cell.Fg = TileColor(tc.Def)
		cell.Bold = true
	case editor.BodyCell:
		if def := l.TileAt(c); def != nil {
			cell.Ch = '▪'
			cell.Fg = TileColor(def).Scale(0.7)
		}
	case editor.MaterialCell:
		cell.Ch = '▓'
		cell.Fg = CategoryColor(tc.Name)
	}
	return cell
}
