package geo

// Layers is the number of depth layers in a level.
const Layers = 3

// Matrix is a width x height x layers geometry matrix.
type Matrix struct {
	width, height, layers int
	cells                 []Cell // index: (y*width+x)*layers + z
}

// NewMatrix creates a matrix with every cell set to fill.
func NewMatrix(width, height, layers int, fill Cell) *Matrix {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	if layers < 1 {
		layers = 1
	}
	m := &Matrix{
		width:  width,
		height: height,
		layers: layers,
		cells:  make([]Cell, width*height*layers),
	}
	if fill != (Cell{}) {
		for i := range m.cells {
			m.cells[i] = fill
		}
	}
	return m
}

// Width returns the matrix width in cells.
func (m *Matrix) Width() int { return m.width }

// Height returns the matrix height in cells.
func (m *Matrix) Height() int { return m.height }

// Layers returns the number of depth layers.
func (m *Matrix) Layers() int { return m.layers }

// InBounds reports whether (x, y, z) addresses a cell of the matrix.
func (m *Matrix) InBounds(x, y, z int) bool {
	return x >= 0 && x < m.width && y >= 0 && y < m.height && z >= 0 && z < m.layers
}

// At returns the cell at (x, y, z).
// Returns the empty cell for out-of-bounds coordinates.
func (m *Matrix) At(x, y, z int) Cell {
	if !m.InBounds(x, y, z) {
		return Cell{}
	}
	return m.cells[m.index(x, y, z)]
}

// Set writes the cell at (x, y, z). Out-of-bounds writes are ignored and
// reported as false.
func (m *Matrix) Set(x, y, z int, c Cell) bool {
	if !m.InBounds(x, y, z) {
		return false
	}
	m.cells[m.index(x, y, z)] = c
	return true
}

// Layer copies one depth layer into a flat 2D buffer.
func (m *Matrix) Layer(z int) *Buffer {
	b := NewBuffer(m.width, m.height)
	for y := 0; y < m.height; y++ {
		for x := 0; x < m.width; x++ {
			b.Set(x, y, m.At(x, y, z))
		}
	}
	return b
}

// Clone returns a deep copy of the matrix.
func (m *Matrix) Clone() *Matrix {
	c := *m
	c.cells = append([]Cell(nil), m.cells...)
	return &c
}

func (m *Matrix) index(x, y, z int) int {
	return (y*m.width+x)*m.layers + z
}

// Buffer is a flat 2D geometry buffer, used for copy/paste slices.
type Buffer struct {
	Width, Height int
	Cells         []Cell // index: y*Width + x
}

// NewBuffer creates an empty width x height buffer.
func NewBuffer(width, height int) *Buffer {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &Buffer{Width: width, Height: height, Cells: make([]Cell, width*height)}
}

// At returns the cell at (x, y), or the empty cell out of bounds.
func (b *Buffer) At(x, y int) Cell {
	if x < 0 || x >= b.Width || y < 0 || y >= b.Height {
		return Cell{}
	}
	return b.Cells[y*b.Width+x]
}

// Set writes the cell at (x, y); out-of-bounds writes are ignored.
func (b *Buffer) Set(x, y int, c Cell) {
	if x < 0 || x >= b.Width || y < 0 || y >= b.Height {
		return
	}
	b.Cells[y*b.Width+x] = c
}
