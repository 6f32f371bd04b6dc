package render

import (
	"hash/fnv"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// RGB is a 24-bit terminal color.
type RGB struct {
	R, G, B uint8
}

func fromColorful(c colorful.Color) RGB {
	r, g, b := c.Clamped().RGB255()
	return RGB{r, g, b}
}

// Scale darkens (f < 1) or brightens (f > 1) a color by its Lab lightness.
func (c RGB) Scale(f float64) RGB {
	cc := colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
	l, a, b := cc.Lab()
	return fromColorful(colorful.Lab(l*f, a, b))
}

// Blend mixes c toward o by t in [0, 1].
func (c RGB) Blend(o RGB, t float64) RGB {
	a := colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
	b := colorful.Color{R: float64(o.R) / 255, G: float64(o.G) / 255, B: float64(o.B) / 255}
	return fromColorful(a.BlendLab(b, t))
}

// CategoryColor derives a stable foreground color from a category name.
func CategoryColor(name string) RGB {
	h := fnv.New32a()
	h.Write([]byte(name))
	hue := float64(h.Sum32()%360) + 0.5
	return fromColorful(colorful.Hcl(hue, 0.55, 0.75))
}

// ParseColor reads a "#rrggbb" string. ok is false for empty or malformed input.
func ParseColor(hex string) (RGB, bool) {
	if hex == "" {
		return RGB{}, false
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		return RGB{}, false
	}
	return fromColorful(c), true
}

// goldenAngle spreads consecutive editor colors around the hue circle.
var goldenAngle = 180 * (3 - math.Sqrt(5))

// EditorColor returns the cursor color for the editor with palette index i.
func EditorColor(i int) RGB {
	hue := math.Mod(float64(i)*goldenAngle+20, 360)
	return fromColorful(colorful.Hsv(hue, 0.65, 0.85))
}

// Geometry colors.
var (
	background = RGB{10, 10, 15}
	solidFg    = RGB{120, 120, 135}
	solidBg    = RGB{55, 55, 65}
	slopeFg    = RGB{150, 150, 165}
	platformFg = RGB{170, 140, 90}
	glassFg    = RGB{120, 190, 220}
	entranceFg = RGB{230, 200, 90}
	featureFg  = RGB{210, 120, 90}
	previewBg  = RGB{45, 60, 95}
)
