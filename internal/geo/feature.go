package geo

// Variant is an index into the feature texture atlas.
type Variant int

// NoVariant means "do not render a decoration".
const NoVariant Variant = -1

const (
	VariantHorizontalPole       Variant = 0
	VariantVerticalPole         Variant = 1
	VariantBatHive              Variant = 2
	VariantShortcutPath         Variant = 3
	VariantCrackBottomLeft      Variant = 4
	VariantCrackBottomRight     Variant = 5
	VariantCrackCross           Variant = 6
	VariantCrackHorizontal      Variant = 7
	VariantCrackLeftBottomRight Variant = 8
	VariantCrackTopBottomRight  Variant = 9
	VariantCrackTopLeft         Variant = 10
	VariantCrackTopLeftBottom   Variant = 11
	VariantCrackTopLeftRight    Variant = 12
	VariantCrackTopRight        Variant = 13
	VariantCrackIsolated        Variant = 14
	VariantCrackVertical        Variant = 15
	VariantGarbageWormHole      Variant = 16
	VariantScavengerHole        Variant = 17
	VariantRock                 Variant = 18
	VariantWaterfall            Variant = 19
	VariantWackAMoleHole        Variant = 20
	VariantWormGrass            Variant = 21
	VariantEntranceBottom       Variant = 22
	VariantEntranceLeft         Variant = 23
	VariantEntranceRight        Variant = 24
	VariantEntranceTop          Variant = 25
	VariantEntranceLoose        Variant = 26
	VariantPassage              Variant = 27
	VariantDragonDen            Variant = 28
	VariantSpear                Variant = 29
	VariantForbidFlyChains      Variant = 30
	VariantCrackBottom          Variant = 31
	VariantCrackRight           Variant = 32
	VariantCrackTop             Variant = 33
	VariantCrackLeft            Variant = 34
)

// Directional reports whether v is one of the four oriented entrance variants.
func (v Variant) Directional() bool {
	return v >= VariantEntranceBottom && v <= VariantEntranceTop
}

// staticVariants holds the features whose variant never depends on neighbors.
var staticVariants = map[Feature]Variant{
	HorizontalPole:  VariantHorizontalPole,
	VerticalPole:    VariantVerticalPole,
	BatHive:         VariantBatHive,
	ShortcutPath:    VariantShortcutPath,
	Passage:         VariantPassage,
	DragonDen:       VariantDragonDen,
	Rock:            VariantRock,
	Spear:           VariantSpear,
	ForbidFlyChains: VariantForbidFlyChains,
	GarbageWormHole: VariantGarbageWormHole,
	Waterfall:       VariantWaterfall,
	WackAMoleHole:   VariantWackAMoleHole,
	WormGrass:       VariantWormGrass,
	ScavengerHole:   VariantScavengerHole,
}

// ResolveVariant picks the atlas variant for feature f on the center of ctx.
// Unknown features resolve to NoVariant.
func ResolveVariant(f Feature, ctx Context) Variant {
	switch f {
	case Entrance:
		return entranceVariant(ctx)
	case Crack:
		return crackVariant(ctx)
	}
	if v, ok := staticVariants[f]; ok {
		return v
	}
	return NoVariant
}

// Straight-neighbor bits, shared by the crack and entrance patterns.
const (
	sideTop uint8 = 1 << iota
	sideRight
	sideBottom
	sideLeft
)

func straightMask(ctx Context, pred func(Cell) bool) uint8 {
	var mask uint8
	if pred(ctx.Top()) {
		mask |= sideTop
	}
	if pred(ctx.Right()) {
		mask |= sideRight
	}
	if pred(ctx.Bottom()) {
		mask |= sideBottom
	}
	if pred(ctx.Left()) {
		mask |= sideLeft
	}
	return mask
}

// carriesPathBundle reports whether a cell carries the shortcut path bundle.
// The level format folds the five flags with XOR, so the bundle is present on
// odd parity.
func carriesPathBundle(c Cell) bool {
	n := 0
	for _, f := range [...]Feature{ShortcutPath, Passage, DragonDen, WackAMoleHole, ScavengerHole} {
		if c.Features.Has(f) {
			n++
		}
	}
	return n%2 == 1
}

func entranceVariant(ctx Context) Variant {
	if ctx.AnyNeighbor(func(c Cell) bool { return c.Features.Has(Entrance) }) {
		return VariantEntranceLoose
	}

	var candidate Variant
	var openRow, openCol int
	switch straightMask(ctx, carriesPathBundle) {
	case sideTop:
		candidate, openRow, openCol = VariantEntranceTop, 0, 1
	case sideRight:
		candidate, openRow, openCol = VariantEntranceRight, 1, 2
	case sideBottom:
		candidate, openRow, openCol = VariantEntranceBottom, 2, 1
	case sideLeft:
		candidate, openRow, openCol = VariantEntranceLeft, 1, 0
	default:
		return VariantEntranceLoose
	}

	// The entrance must be walled in on every side except the open one.
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			if row == 1 && col == 1 {
				continue
			}
			if row == openRow && col == openCol {
				continue
			}
			if ctx[row][col].Type != Solid {
				return VariantEntranceLoose
			}
		}
	}

	switch ctx[openRow][openCol].Type {
	case Air, Platform:
		return candidate
	}
	return VariantEntranceLoose
}

type crackRule struct {
	mask    uint8
	variant Variant
}

// crackRules is matched in order against the straight neighbors carrying Crack.
var crackRules = [...]crackRule{
	{sideTop, VariantCrackTop},
	{sideRight, VariantCrackRight},
	{sideBottom, VariantCrackBottom},
	{sideLeft, VariantCrackLeft},

	{sideTop | sideRight, VariantCrackTopRight},
	{sideRight | sideBottom, VariantCrackBottomRight},
	{sideLeft | sideBottom, VariantCrackBottomLeft},
	{sideTop | sideLeft, VariantCrackTopLeft},

	{sideTop | sideLeft | sideRight, VariantCrackTopLeftRight},
	{sideTop | sideRight | sideBottom, VariantCrackTopBottomRight},
	{sideLeft | sideRight | sideBottom, VariantCrackLeftBottomRight},
	{sideTop | sideLeft | sideBottom, VariantCrackTopLeftBottom},

	{sideLeft | sideRight, VariantCrackHorizontal},
	{sideTop | sideBottom, VariantCrackVertical},

	{sideTop | sideRight | sideBottom | sideLeft, VariantCrackCross},
}

func crackVariant(ctx Context) Variant {
	mask := straightMask(ctx, func(c Cell) bool { return c.Features.Has(Crack) })
	if mask == 0 {
		return isolatedCrackVariant(ctx)
	}
	for _, r := range crackRules {
		if r.mask == mask {
			return r.variant
		}
	}
	return VariantCrackIsolated
}

// isolatedCrackVariant orients a lone crack across the wall it sits in.
func isolatedCrackVariant(ctx Context) Variant {
	if !ctx.Center().Type.IsSolid() {
		return VariantCrackIsolated
	}
	// Reads the straight bottom neighbor, not the bottom-left diagonal.
	solid := straightMask(ctx, func(c Cell) bool { return c.Type.IsSolid() })
	switch solid {
	case sideLeft | sideRight:
		return VariantCrackVertical
	case sideTop | sideBottom:
		return VariantCrackHorizontal
	}
	return VariantCrackIsolated
}
