package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"strconv"
	"strings"

	"autotile/internal/autotile"
	"autotile/internal/editor"
	"autotile/internal/geo"
	"autotile/internal/render"
	"autotile/internal/tiles"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	switch cmd {
	case "validate":
		os.Exit(runValidate(args))
	case "path":
		os.Exit(runPath(args))
	case "rect":
		os.Exit(runRect(args))
	case "slopes":
		os.Exit(runSlopes(args))
	case "features":
		os.Exit(runFeatures(args))
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, `Usage: tiletools <command> [flags] <args>

Commands:
  validate [-tiles f] [-packs f] [level.json...]   Check the dex, the packs and levels
  path     [-pack name] [-l] [-yfirst] x,y ...     Resolve a path and draw it
  rect     [-pack name] [-seed n] WxH               Resolve a rectangle and draw it
  slopes   [-fix] [-out f] <level.json>             Report slopes that disagree with their walls
  features <level.json>                             Draw resolved feature variants per layer`)
}

// common flags shared by the resolving commands
type sources struct {
	tiles, packs string
	plain        bool
}

func (s *sources) register(fs *flag.FlagSet) {
	fs.StringVar(&s.tiles, "tiles", "assets/tiles.json", "tile dex JSON file (empty: built-in)")
	fs.StringVar(&s.packs, "packs", "assets/packs.json", "pack specs JSON file (empty: built-in)")
	fs.BoolVar(&s.plain, "plain", false, "print without colors")
}

func (s *sources) library() (*autotile.Library, error) {
	dex := tiles.DefaultDex()
	if s.tiles != "" {
		d, err := tiles.LoadDex(s.tiles)
		if err != nil {
			return nil, err
		}
		dex = d
	}
	specs := autotile.DefaultPackSpecs()
	if s.packs != "" {
		sp, err := autotile.LoadPackSpecs(s.packs)
		if err != nil {
			return nil, err
		}
		specs = sp
	}
	return autotile.NewLibrary(dex, specs)
}

// --- validate ---

func runValidate(args []string) int {
	fs := flag.NewFlagSet("validate", flag.ExitOnError)
	var src sources
	src.register(fs)
	fs.Parse(args)

	lib, err := src.library()
	if err != nil {
		fmt.Fprintf(os.Stderr, "FAIL: %v\n", err)
		return 1
	}
	fmt.Printf("Packs OK: %s | %s\n", strings.Join(lib.PathPackNames(), ", "), strings.Join(lib.BoxPackNames(), ", "))
	for _, p := range lib.PathPacks() {
		var missing []string
		for _, s := range autotile.Shapes() {
			if p.Piece(s) == nil {
				missing = append(missing, s.String())
			}
		}
		if len(missing) > 0 {
			fmt.Printf("  %s: no piece for %s (left unchanged when resolved)\n", p.Name, strings.Join(missing, ", "))
		}
	}

	errors := 0
	for _, path := range fs.Args() {
		doc, err := geo.Load(path)
		if err != nil {
			fmt.Printf("  ERROR: %v\n", err)
			errors++
			continue
		}
		m := doc.Matrix
		fmt.Printf("  OK %s: %q (%dx%dx%d)\n", path, doc.Name, m.Width(), m.Height(), m.Layers())
	}
	if errors > 0 {
		fmt.Printf("\n%d error(s) found\n", errors)
		return 1
	}
	return 0
}

// --- path ---

func runPath(args []string) int {
	fs := flag.NewFlagSet("path", flag.ExitOnError)
	var src sources
	src.register(fs)
	packName := fs.String("pack", "Thin Pipes", "path pack name")
	lShape := fs.Bool("l", false, "join consecutive points with L-shaped legs")
	yFirst := fs.Bool("yfirst", false, "walk the vertical leg first (with -l)")
	fs.Parse(args)

	lib, err := src.library()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	pack := lib.PathPack(*packName)
	if pack == nil {
		fmt.Fprintf(os.Stderr, "Error: unknown path pack %q (available: %s)\n", *packName, strings.Join(lib.PathPackNames(), ", "))
		return 1
	}

	points := make([]autotile.Coord, 0, fs.NArg())
	for _, a := range fs.Args() {
		c, err := parseCoord(a)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		points = append(points, c)
	}
	if len(points) == 0 {
		fmt.Fprintln(os.Stderr, "Error: no points given")
		return 1
	}

	path := points
	if *lShape {
		path = []autotile.Coord{points[0]}
		for i := 1; i < len(points); i++ {
			path = append(path, autotile.LPath(points[i-1], points[i], *yFirst)[1:]...)
		}
	}

	strategy := "exhaustive"
	if autotile.IsSimpleChain(path) {
		strategy = "linear"
	}
	assignments := autotile.Resolve(path, pack)
	fmt.Printf("%d positions, %s resolution\n", len(path), strategy)
	for _, a := range assignments {
		name := "-"
		if a.Tile != nil {
			name = a.Tile.Name
		}
		fmt.Printf("  (%d,%d,%d) %-18s %s\n", a.X, a.Y, a.Z, a.Shape, name)
	}
	fmt.Println()
	printAssignments(assignments, src.plain)
	return 0
}

// --- rect ---

func runRect(args []string) int {
	fs := flag.NewFlagSet("rect", flag.ExitOnError)
	var src sources
	src.register(fs)
	packName := fs.String("pack", "Su Patterns", "box pack name")
	seed := fs.Int64("seed", 0, "random seed for interior variants (0 = random)")
	fs.Parse(args)

	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Usage: tiletools rect [-pack name] [-seed n] WxH")
		return 1
	}
	w, h, err := parseSize(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	lib, err := src.library()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	pack := lib.BoxPack(*packName)
	if pack == nil {
		fmt.Fprintf(os.Stderr, "Error: unknown box pack %q (available: %s)\n", *packName, strings.Join(lib.BoxPackNames(), ", "))
		return 1
	}

	var rng *rand.Rand
	if *seed != 0 {
		rng = rand.New(rand.NewSource(*seed))
	}
	assignments := autotile.ResolveRect(autotile.Coord{}, w, h, pack, rng)
	fmt.Printf("%s %dx%d: %d assignments\n\n", pack.Name, w, h, len(assignments))
	printAssignments(assignments, src.plain)
	return 0
}

// --- slopes ---

func runSlopes(args []string) int {
	fs := flag.NewFlagSet("slopes", flag.ExitOnError)
	fix := fs.Bool("fix", false, "re-orient every slope that has a determinate orientation")
	out := fs.String("out", "", "write the fixed level here (default: overwrite the input)")
	fs.Parse(args)

	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Usage: tiletools slopes [-fix] [-out f] <level.json>")
		return 1
	}
	doc, err := geo.Load(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	l := editor.LevelFromDocument(doc)

	wrong, stuck, fixed := 0, 0, 0
	for z := 0; z < l.Layers(); z++ {
		for y := 0; y < l.Height(); y++ {
			for x := 0; x < l.Width(); x++ {
				cur := l.Geo.At(x, y, z).Type
				if !cur.IsSlope() {
					continue
				}
				want, ok := geo.ResolveSlope(geo.ContextAt(l.Geo, x, y, z))
				switch {
				case !ok:
					fmt.Printf("  (%d,%d,%d) %s: no wall pattern\n", x, y, z, cur)
					stuck++
				case want != cur:
					fmt.Printf("  (%d,%d,%d) %s: walls say %s\n", x, y, z, cur, want)
					wrong++
					if *fix && editor.OrientSlope(l, x, y, z) {
						fixed++
					}
				}
			}
		}
	}
	fmt.Printf("\n%d misoriented, %d indeterminate\n", wrong, stuck)

	if *fix && fixed > 0 {
		dst := *out
		if dst == "" {
			dst = fs.Arg(0)
		}
		if err := l.Document().Save(dst); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		fmt.Printf("Fixed %d slope(s), wrote %s\n", fixed, dst)
	}
	if wrong > fixed {
		return 1
	}
	return 0
}

// --- features ---

func runFeatures(args []string) int {
	fs := flag.NewFlagSet("features", flag.ExitOnError)
	plain := fs.Bool("plain", false, "print without colors")
	fs.Parse(args)

	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Usage: tiletools features <level.json>")
		return 1
	}
	doc, err := geo.Load(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	l := editor.LevelFromDocument(doc)
	fmt.Printf("%s (%dx%d)\n", l.Name, l.Width(), l.Height())

	for z := 0; z < l.Layers(); z++ {
		counts := make(map[geo.Variant]int)
		layer := l.Geo.Layer(z)
		for y := 0; y < layer.Height; y++ {
			for x := 0; x < layer.Width; x++ {
				fset := layer.At(x, y).Features
				if fset == 0 {
					continue
				}
				ctx := geo.BufferContext(layer, x, y)
				for _, f := range fset.List() {
					counts[geo.ResolveVariant(f, ctx)]++
				}
			}
		}
		fmt.Printf("\n=== layer %d ===\n", z+1)
		printLayer(l, z, *plain)
		for v := geo.NoVariant; v <= geo.VariantCrackLeft; v++ {
			if n := counts[v]; n > 0 {
				fmt.Printf("  %c variant %2d: %d\n", max(render.VariantGlyph(v), ' '), v, n)
			}
		}
	}
	return 0
}

// --- output ---

// printAssignments applies the assignments to a scratch level that just fits
// them and prints its first layer.
func printAssignments(as []autotile.Assignment, plain bool) {
	if len(as) == 0 {
		return
	}
	minX, minY, maxX, maxY := as[0].X, as[0].Y, as[0].X, as[0].Y
	for _, a := range as {
		minX, minY = min(minX, a.X), min(minY, a.Y)
		maxX, maxY = max(maxX, a.X), max(maxY, a.Y)
	}
	l := editor.NewLevel("scratch", maxX-minX+1, maxY-minY+1)
	shifted := make([]autotile.Assignment, len(as))
	for i, a := range as {
		a.Coord = autotile.Coord{X: a.X - minX, Y: a.Y - minY}
		shifted[i] = a
	}
	editor.Apply(l, shifted)
	printLayer(l, 0, plain)
}

func printLayer(l *editor.Level, z int, plain bool) {
	for y := 0; y < l.Height(); y++ {
		var sb strings.Builder
		for x := 0; x < l.Width(); x++ {
			cell := render.LevelCell(l, x, y, z)
			if plain {
				sb.WriteRune(cell.Ch)
			} else {
				render.WriteCellSGR(&sb, cell)
			}
		}
		if !plain {
			sb.WriteString(render.Reset)
		}
		fmt.Println(sb.String())
	}
}

func parseCoord(s string) (autotile.Coord, error) {
	parts := strings.Split(s, ",")
	if len(parts) < 2 || len(parts) > 3 {
		return autotile.Coord{}, fmt.Errorf("invalid point %q (expected x,y or x,y,z)", s)
	}
	var v [3]int
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return autotile.Coord{}, fmt.Errorf("invalid point %q: %w", s, err)
		}
		v[i] = n
	}
	return autotile.Coord{X: v[0], Y: v[1], Z: v[2]}, nil
}

func parseSize(s string) (int, int, error) {
	parts := strings.SplitN(s, "x", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid size %q (expected WxH)", s)
	}
	w, err := strconv.Atoi(parts[0])
	if err != nil || w < 0 {
		return 0, 0, fmt.Errorf("invalid width %q", parts[0])
	}
	h, err := strconv.Atoi(parts[1])
	if err != nil || h < 0 {
		return 0, 0, fmt.Errorf("invalid height %q", parts[1])
	}
	return w, h, nil
}
