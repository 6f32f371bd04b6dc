package autotile

import (
	"math/rand"
	"time"

	"autotile/internal/tiles"
)

// ResolveRect assigns border pieces to the rectangle spanning
// [origin.X, origin.X+width] x [origin.Y, origin.Y+height], both edges
// inclusive. Zero or negative width or height gives no assignments.
//
// Interior cells draw a random variant from pack.Interior, or get a nil tile
// when the pack has none. A nil rng uses a fresh time-seeded source.
func ResolveRect(origin Coord, width, height int, pack *BorderPack, rng *rand.Rand) []Assignment {
	if width <= 0 || height <= 0 {
		return nil
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	x0, y0 := origin.X, origin.Y
	x1, y1 := x0+width, y0+height
	at := func(x, y int, def *tiles.Definition) Assignment {
		return Assignment{Coord: Coord{x, y, origin.Z}, Tile: def}
	}

	out := make([]Assignment, 0, (width+1)*(height+1))

	for i := x0; i <= x1; i++ {
		switch i {
		case x0:
			out = append(out, at(i, y0, pack.TopLeft), at(i, y1, pack.BottomLeft))
		case x1:
			out = append(out, at(i, y0, pack.TopRight), at(i, y1, pack.BottomRight))
		default:
			out = append(out, at(i, y0, pack.Top), at(i, y1, pack.Bottom))
		}
	}

	for k := y0 + 1; k < y1; k++ {
		out = append(out, at(x0, k, pack.Left), at(x1, k, pack.Right))
	}

	for k := y0 + 1; k < y1; k++ {
		for i := x0 + 1; i < x1; i++ {
			var def *tiles.Definition
			if n := len(pack.Interior); n > 0 {
				def = pack.Interior[rng.Intn(n)]
			}
			out = append(out, at(i, k, def))
		}
	}
	return out
}
