// Package autotile picks connector and border tile pieces for paths and
// rectangles drawn in the level editor.
package autotile

// Node is the connection signature of one path position: which of its four
// straight neighbors are also on the path.
type Node struct {
	Left, Top, Right, Bottom bool
}

// Connection bits of a node mask.
const (
	ConnLeft uint8 = 1 << iota
	ConnTop
	ConnRight
	ConnBottom
)

// Mask packs the node into 4 bits.
func (n Node) Mask() uint8 {
	var m uint8
	if n.Left {
		m |= ConnLeft
	}
	if n.Top {
		m |= ConnTop
	}
	if n.Right {
		m |= ConnRight
	}
	if n.Bottom {
		m |= ConnBottom
	}
	return m
}

// NodeFromMask unpacks a 4-bit mask; higher bits are ignored.
func NodeFromMask(m uint8) Node {
	return Node{
		Left:   m&ConnLeft != 0,
		Top:    m&ConnTop != 0,
		Right:  m&ConnRight != 0,
		Bottom: m&ConnBottom != 0,
	}
}

// Shape is a connector piece category. Corner shapes are named after the
// corner of a loop they would sit in, so TopLeft connects right and bottom.
type Shape uint8

const (
	Vertical Shape = iota
	Horizontal
	TopLeft
	TopRight
	BottomRight
	BottomLeft
	Cross
	RightBottomLeft
	BottomLeftTop
	LeftTopRight
	TopRightBottom

	numShapes
)

var shapeNames = [numShapes]string{
	Vertical:        "vertical",
	Horizontal:      "horizontal",
	TopLeft:         "top_left",
	TopRight:        "top_right",
	BottomRight:     "bottom_right",
	BottomLeft:      "bottom_left",
	Cross:           "cross",
	RightBottomLeft: "right_bottom_left",
	BottomLeftTop:   "bottom_left_top",
	LeftTopRight:    "left_top_right",
	TopRightBottom:  "top_right_bottom",
}

func (s Shape) String() string {
	if s < numShapes {
		return shapeNames[s]
	}
	return "shape(?)"
}

// Optional reports whether a pack may leave the slot for s unset.
func (s Shape) Optional() bool {
	return s >= Cross && s < numShapes
}

// Shapes lists every shape in pack slot order.
func Shapes() []Shape {
	out := make([]Shape, numShapes)
	for i := range out {
		out[i] = Shape(i)
	}
	return out
}

// shapeLUT maps a node mask to its shape. Dead ends and isolated nodes fall in
// the straight group.
var shapeLUT = [16]Shape{
	0:  Vertical,        // isolated
	1:  Horizontal,      // L
	2:  Vertical,        // T
	3:  BottomRight,     // L+T
	4:  Horizontal,      // R
	5:  Horizontal,      // L+R
	6:  BottomLeft,      // T+R
	7:  LeftTopRight,    // L+T+R
	8:  Vertical,        // B
	9:  TopRight,        // L+B
	10: Vertical,        // T+B
	11: BottomLeftTop,   // L+T+B
	12: TopLeft,         // R+B
	13: RightBottomLeft, // L+R+B
	14: TopRightBottom,  // T+R+B
	15: Cross,           // all
}

// ShapeOf returns the connector shape for a node.
func ShapeOf(n Node) Shape {
	return shapeLUT[n.Mask()]
}
