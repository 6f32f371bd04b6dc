package geo

import (
	"fmt"
	"math/bits"
	"strings"
)

// CellType is the base geometry of a cell. Numeric values match the level format.
type CellType uint8

const (
	Air              CellType = 0
	Solid            CellType = 1
	SlopeNE          CellType = 2
	SlopeNW          CellType = 3
	SlopeES          CellType = 4
	SlopeSW          CellType = 5
	Platform         CellType = 6
	ShortcutEntrance CellType = 7
	Glass            CellType = 9
)

var cellTypeNames = map[CellType]string{
	Air:              "air",
	Solid:            "solid",
	SlopeNE:          "slope_ne",
	SlopeNW:          "slope_nw",
	SlopeES:          "slope_es",
	SlopeSW:          "slope_sw",
	Platform:         "platform",
	ShortcutEntrance: "shortcut_entrance",
	Glass:            "glass",
}

func (t CellType) String() string {
	if name, ok := cellTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("celltype(%d)", uint8(t))
}

// IsSlope reports whether t is one of the four slope orientations.
func (t CellType) IsSlope() bool {
	return t >= SlopeNE && t <= SlopeSW
}

// IsSolid reports whether t is a full solid block.
func (t CellType) IsSolid() bool {
	return t == Solid
}

// ParseCellType resolves a level-format name such as "slope_ne".
func ParseCellType(name string) (CellType, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for t, n := range cellTypeNames {
		if n == name {
			return t, nil
		}
	}
	return Air, fmt.Errorf("unknown cell type %q", name)
}

// Feature identifies a decorative or functional flag stacked on a cell.
type Feature uint8

const (
	FeatureNone            Feature = 0
	HorizontalPole         Feature = 1
	VerticalPole           Feature = 2
	BatHive                Feature = 3
	Entrance               Feature = 4 // shortcut/room entrance; directional
	ShortcutPath           Feature = 5
	Passage                Feature = 6
	DragonDen              Feature = 7
	Rock                   Feature = 9
	Spear                  Feature = 10
	Crack                  Feature = 11
	ForbidFlyChains        Feature = 12
	GarbageWormHole        Feature = 13
	Waterfall              Feature = 18
	WackAMoleHole          Feature = 19
	WormGrass              Feature = 20
	ScavengerHole          Feature = 21
	maxFeature                     = 21
)

var featureNames = map[Feature]string{
	HorizontalPole:  "horizontal_pole",
	VerticalPole:    "vertical_pole",
	BatHive:         "bat_hive",
	Entrance:        "entrance",
	ShortcutPath:    "shortcut_path",
	Passage:         "passage",
	DragonDen:       "dragon_den",
	Rock:            "rock",
	Spear:           "spear",
	Crack:           "crack",
	ForbidFlyChains: "forbid_fly_chains",
	GarbageWormHole: "garbage_worm_hole",
	Waterfall:       "waterfall",
	WackAMoleHole:   "wack_a_mole_hole",
	WormGrass:       "worm_grass",
	ScavengerHole:   "scavenger_hole",
}

func (f Feature) String() string {
	if name, ok := featureNames[f]; ok {
		return name
	}
	return fmt.Sprintf("feature(%d)", uint8(f))
}

// ParseFeature resolves a level-format feature name.
func ParseFeature(name string) (Feature, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for f, n := range featureNames {
		if n == name {
			return f, nil
		}
	}
	return FeatureNone, fmt.Errorf("unknown feature %q", name)
}

// FeatureSet is a bit-set of features; bit n is Feature(n).
type FeatureSet uint32

// Features builds a set from the given features.
func Features(fs ...Feature) FeatureSet {
	var s FeatureSet
	for _, f := range fs {
		s = s.With(f)
	}
	return s
}

// Has reports whether f is in the set.
func (s FeatureSet) Has(f Feature) bool {
	if f == FeatureNone || f > maxFeature {
		return false
	}
	return s&(1<<f) != 0
}

// With returns the set with f added. Unknown ids are ignored.
func (s FeatureSet) With(f Feature) FeatureSet {
	if f == FeatureNone || f > maxFeature {
		return s
	}
	return s | 1<<f
}

// Without returns the set with f removed.
func (s FeatureSet) Without(f Feature) FeatureSet {
	if f == FeatureNone || f > maxFeature {
		return s
	}
	return s &^ (1 << f)
}

// Len returns the number of features in the set.
func (s FeatureSet) Len() int {
	return bits.OnesCount32(uint32(s))
}

// List returns the features in ascending id order.
func (s FeatureSet) List() []Feature {
	var out []Feature
	for f := Feature(1); f <= maxFeature; f++ {
		if s.Has(f) {
			out = append(out, f)
		}
	}
	return out
}

// Cell is one cell of the geometry matrix. The zero value is the empty cell.
type Cell struct {
	Type     CellType
	Features FeatureSet
}

// Empty reports whether c is air without features.
func (c Cell) Empty() bool {
	return c.Type == Air && c.Features == 0
}
