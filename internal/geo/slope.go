package geo

// ResolveSlope determines the slope orientation for the center of ctx from the
// solidity of its straight neighbors. It reports false when the pattern is not
// exactly two adjacent solid sides, or when any straight neighbor is itself a
// slope.
func ResolveSlope(ctx Context) (CellType, bool) {
	var slope CellType
	switch straightMask(ctx, func(c Cell) bool { return c.Type.IsSolid() }) {
	case sideLeft | sideBottom:
		slope = SlopeNE
	case sideRight | sideBottom:
		slope = SlopeNW
	case sideLeft | sideTop:
		slope = SlopeES
	case sideRight | sideTop:
		slope = SlopeSW
	default:
		return Air, false
	}

	for _, c := range ctx.Straight() {
		if c.Type.IsSlope() {
			return Air, false
		}
	}
	return slope, true
}
