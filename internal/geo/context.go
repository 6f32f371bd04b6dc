package geo

// Context is a 3x3 snapshot of cells indexed [row][col]; [1][1] is the center.
// Neighbors past the grid edge hold the empty cell.
type Context [3][3]Cell

// ContextAt samples the 3x3 window around (x, y) on layer z.
func ContextAt(m *Matrix, x, y, z int) Context {
	var ctx Context
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			ctx[row][col] = m.At(x+col-1, y+row-1, z)
		}
	}
	return ctx
}

// BufferContext samples the 3x3 window around (x, y) of a flat buffer.
func BufferContext(b *Buffer, x, y int) Context {
	var ctx Context
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			ctx[row][col] = b.At(x+col-1, y+row-1)
		}
	}
	return ctx
}

func (c Context) Center() Cell { return c[1][1] }
func (c Context) Top() Cell    { return c[0][1] }
func (c Context) Left() Cell   { return c[1][0] }
func (c Context) Right() Cell  { return c[1][2] }
func (c Context) Bottom() Cell { return c[2][1] }

// Straight returns the four straight neighbors in top, right, bottom, left order.
func (c Context) Straight() [4]Cell {
	return [4]Cell{c.Top(), c.Right(), c.Bottom(), c.Left()}
}

// AnyNeighbor reports whether pred holds for any of the eight cells around the center.
func (c Context) AnyNeighbor(pred func(Cell) bool) bool {
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			if row == 1 && col == 1 {
				continue
			}
			if pred(c[row][col]) {
				return true
			}
		}
	}
	return false
}
