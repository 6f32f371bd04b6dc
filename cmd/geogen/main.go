package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"strconv"
	"strings"
	"time"

	"autotile/internal/geo"
)

func main() {
	seed := flag.Int64("seed", 0, "random seed (0 = random)")
	size := flag.String("size", "72x40", "level size as WxH")
	name := flag.String("name", "Cave", "level name")
	cracks := flag.Int("cracks", 12, "number of crack lines to scatter")
	poles := flag.Int("poles", 8, "number of poles to place")
	out := flag.String("out", "", "output file (default: stdout)")
	flag.Parse()

	w, h, err := parseSize(*size)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}

	fmt.Fprintf(os.Stderr, "Generating %dx%d cave %q (seed %d)...\n", w, h, *name, *seed)

	m := generateCave(w, h, *seed)
	rng := rand.New(rand.NewSource(*seed + 100))
	slopes := placeSlopes(m, newSimplex(*seed+3))
	nCracks := scatterCracks(m, rng, *cracks)
	nPoles := placePoles(m, rng, *poles)

	doc := &geo.Document{Name: *name, Matrix: m}
	if *out == "" {
		data, err := doc.Marshal()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error marshaling JSON: %v\n", err)
			os.Exit(1)
		}
		os.Stdout.Write(data)
		os.Stdout.WriteString("\n")
	} else {
		if err := doc.Save(*out); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "Wrote %s\n", *out)
	}

	counts := make(map[geo.CellType]int)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			counts[m.At(x, y, 0).Type]++
		}
	}
	total := w * h
	fmt.Fprintf(os.Stderr, "\nLayer 1 distribution:\n")
	for _, t := range []geo.CellType{geo.Air, geo.Solid, geo.SlopeNE, geo.SlopeNW, geo.SlopeES, geo.SlopeSW, geo.Platform} {
		if c, ok := counts[t]; ok {
			fmt.Fprintf(os.Stderr, "  %-10s %5d (%5.1f%%)\n", t, c, float64(c)/float64(total)*100)
		}
	}
	fmt.Fprintf(os.Stderr, "Slopes: %d  Crack cells: %d  Poles: %d\n", slopes, nCracks, nPoles)
}

func parseSize(s string) (int, int, error) {
	parts := strings.SplitN(s, "x", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid size %q (expected WxH)", s)
	}
	w, err := strconv.Atoi(parts[0])
	if err != nil || w < 10 {
		return 0, 0, fmt.Errorf("invalid width %q (minimum 10)", parts[0])
	}
	h, err := strconv.Atoi(parts[1])
	if err != nil || h < 10 {
		return 0, 0, fmt.Errorf("invalid height %q (minimum 10)", parts[1])
	}
	return w, h, nil
}

// generateCave fills the three layers: the front layer is a smoothed noise
// cave walled in on every edge, the back layers are progressively denser
// backdrops.
func generateCave(w, h int, seed int64) *geo.Matrix {
	m := geo.NewMatrix(w, h, geo.Layers, geo.Cell{})
	rock := newSimplex(seed)
	back := newSimplex(seed + 1)

	solid := make([]bool, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			edge := x == 0 || y == 0 || x == w-1 || y == h-1
			solid[y*w+x] = edge || rock.fbm(float64(x), float64(y), 0.06, 4) > 0.52
		}
	}
	for pass := 0; pass < 3; pass++ {
		solid = smooth(solid, w, h)
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if solid[y*w+x] {
				m.Set(x, y, 0, geo.Cell{Type: geo.Solid})
			}
			n := back.fbm(float64(x), float64(y), 0.04, 3)
			if solid[y*w+x] || n > 0.45 {
				m.Set(x, y, 1, geo.Cell{Type: geo.Solid})
			}
			if n > 0.3 {
				m.Set(x, y, 2, geo.Cell{Type: geo.Solid})
			}
		}
	}
	return m
}

// smooth runs one cellular automaton step: a cell becomes solid with five or
// more solid cells among itself and its eight neighbors. Edges stay solid.
func smooth(solid []bool, w, h int) []bool {
	next := make([]bool, len(solid))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if x == 0 || y == 0 || x == w-1 || y == h-1 {
				next[y*w+x] = true
				continue
			}
			n := 0
			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					if solid[(y+dy)*w+x+dx] {
						n++
					}
				}
			}
			next[y*w+x] = n >= 5
		}
	}
	return next
}

// placeSlopes turns front-layer air cells into slopes where the walls call
// for one and the detail noise allows it.
func placeSlopes(m *geo.Matrix, detail *simplex) int {
	placed := 0
	for y := 0; y < m.Height(); y++ {
		for x := 0; x < m.Width(); x++ {
			c := m.At(x, y, 0)
			if c.Type != geo.Air || detail.fbm(float64(x), float64(y), 0.2, 2) < 0.45 {
				continue
			}
			t, ok := geo.ResolveSlope(geo.ContextAt(m, x, y, 0))
			if !ok {
				continue
			}
			c.Type = t
			m.Set(x, y, 0, c)
			placed++
		}
	}
	return placed
}

// scatterCracks draws short straight crack lines through front-layer walls.
func scatterCracks(m *geo.Matrix, rng *rand.Rand, lines int) int {
	cells := 0
	for i := 0; i < lines; i++ {
		x, y := rng.Intn(m.Width()), rng.Intn(m.Height())
		if m.At(x, y, 0).Type != geo.Solid {
			continue
		}
		dx, dy := 1, 0
		if rng.Intn(2) == 0 {
			dx, dy = 0, 1
		}
		for n := 2 + rng.Intn(4); n > 0; n-- {
			c := m.At(x, y, 0)
			if c.Type != geo.Solid {
				break
			}
			if !c.Features.Has(geo.Crack) {
				c.Features = c.Features.With(geo.Crack)
				m.Set(x, y, 0, c)
				cells++
			}
			x, y = x+dx, y+dy
		}
	}
	return cells
}

// placePoles spans short gaps between walls with horizontal or vertical poles.
func placePoles(m *geo.Matrix, rng *rand.Rand, count int) int {
	const maxSpan = 10
	placed := 0
	for try := 0; try < count*20 && placed < count; try++ {
		x, y := rng.Intn(m.Width()), rng.Intn(m.Height())
		if m.At(x, y, 0).Type != geo.Air {
			continue
		}
		f, dx, dy := geo.HorizontalPole, 1, 0
		if rng.Intn(2) == 0 {
			f, dx, dy = geo.VerticalPole, 0, 1
		}

		// Walk back to the wall, then forward to the opposite wall.
		for m.At(x-dx, y-dy, 0).Type == geo.Air && m.InBounds(x-dx, y-dy, 0) {
			x, y = x-dx, y-dy
		}
		span := 0
		for m.At(x+dx*span, y+dy*span, 0).Type == geo.Air && m.InBounds(x+dx*span, y+dy*span, 0) {
			span++
		}
		if span > maxSpan || m.At(x+dx*span, y+dy*span, 0).Type != geo.Solid {
			continue
		}
		for i := 0; i < span; i++ {
			c := m.At(x+dx*i, y+dy*i, 0)
			c.Features = c.Features.With(f)
			m.Set(x+dx*i, y+dy*i, 0, c)
		}
		placed++
	}
	return placed
}
