package tiles

// single builds 1x1 definitions from name/glyph pairs.
func single(pairs ...any) []*Definition {
	defs := make([]*Definition, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		defs = append(defs, &Definition{
			Name:   pairs[i].(string),
			Width:  1,
			Height: 1,
			Glyph:  pairs[i+1].(rune),
		})
	}
	return defs
}

// DefaultDex returns the built-in dictionary holding every tile the built-in
// packs reference, for when no tiles file is available.
func DefaultDex() *Dex {
	d, err := NewDex([]*Category{
		{Name: "Pipes", Tiles: single(
			"Vertical Pipe", '│',
			"Horizontal Pipe", '─',
			"Vertical Plain Pipe", '┃',
			"Horizontal Plain Pipe", '━',
			"Pipe ES", '┌',
			"Pipe WS", '┐',
			"Pipe WN", '┘',
			"Pipe EN", '└',
			"Pipe XJunct", '┼',
			"Pipe TJunct S", '┬',
			"Pipe TJunct W", '┤',
			"Pipe TJunct N", '┴',
			"Pipe TJunct E", '├',
		)},
		{Name: "Inside Pipes", Tiles: single(
			"insidePipeVertical", '║',
			"insidePipeHorizontal", '═',
			"insidePipeRD", '╔',
			"insidePipeLD", '╗',
			"insidePipeLU", '╝',
			"insidePipeRU", '╚',
		)},
		{Name: "Wall Wires", Tiles: single(
			"WallWires Vertical A", '╎',
			"WallWires Horizontal A", '╌',
			"WallWires Square SE", '╭',
			"WallWires Square SW", '╮',
			"WallWires Square NW", '╯',
			"WallWires Square NE", '╰',
			"WallWires X Section", '╋',
			"WallWires T Section S", '┳',
			"WallWires T Section W", '┫',
			"WallWires T Section N", '┻',
			"WallWires T Section E", '┣',
		)},
		{Name: "Su Patterns", Tiles: single(
			"Block Edge W", '▌',
			"Block Edge N", '▀',
			"Block Edge E", '▐',
			"Block Edge S", '▄',
			"Block Corner NW", '▛',
			"Block Corner NE", '▜',
			"Block Corner SE", '▟',
			"Block Corner SW", '▙',
			"Block Fill A", '░',
			"Block Fill B", '▒',
		)},
		{Name: "Machinery", Tiles: []*Definition{
			{Name: "Big Wheel", Width: 3, Height: 3, Glyph: '◎'},
			{Name: "Vent", Width: 2, Height: 1, Glyph: '▤'},
		}},
	})
	if err != nil {
		// Built-in names are unique; a failure here is a programming error.
		panic(err)
	}
	return d
}
