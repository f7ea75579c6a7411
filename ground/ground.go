// Package ground classifies the terrain under a map pixel.
package ground

// Ground is the terrain kind of a map point, defined by static tiles or
// overridden by a dynamic entity.
type Ground uint8

const (
	Empty Ground = iota
	Traversable
	Wall
	LowWall
	WallTopRight
	WallTopLeft
	WallBottomLeft
	WallBottomRight
	WallTopRightWater
	WallTopLeftWater
	WallBottomLeftWater
	WallBottomRightWater
	DeepWater
	ShallowWater
	Grass
	Hole
	Ice
	Ladder
	Prickle
	Lava

	numGrounds
)

var names = [numGrounds]string{
	Empty:                "empty",
	Traversable:          "traversable",
	Wall:                 "wall",
	LowWall:              "low_wall",
	WallTopRight:         "wall_top_right",
	WallTopLeft:          "wall_top_left",
	WallBottomLeft:       "wall_bottom_left",
	WallBottomRight:      "wall_bottom_right",
	WallTopRightWater:    "wall_top_right_water",
	WallTopLeftWater:     "wall_top_left_water",
	WallBottomLeftWater:  "wall_bottom_left_water",
	WallBottomRightWater: "wall_bottom_right_water",
	DeepWater:            "deep_water",
	ShallowWater:         "shallow_water",
	Grass:                "grass",
	Hole:                 "hole",
	Ice:                  "ice",
	Ladder:               "ladder",
	Prickle:              "prickles",
	Lava:                 "lava",
}

var byName = func() map[string]Ground {
	m := make(map[string]Ground, numGrounds)
	for g, n := range names {
		m[n] = Ground(g)
	}
	return m
}()

func (g Ground) String() string {
	if g >= numGrounds {
		return "unknown"
	}
	return names[g]
}

// Parse resolves a ground name as written in map files.
func Parse(name string) (Ground, bool) {
	g, ok := byName[name]
	return g, ok
}

// MarshalText implements encoding.TextMarshaler.
func (g Ground) MarshalText() ([]byte, error) {
	return []byte(g.String()), nil
}

// IsDiagonal reports whether g is one of the eight diagonal wall kinds.
func (g Ground) IsDiagonal() bool {
	return g >= WallTopRight && g <= WallBottomRightWater
}

// IsWaterDiagonal reports whether g is a diagonal wall whose open side is deep water.
func (g Ground) IsWaterDiagonal() bool {
	return g >= WallTopRightWater && g <= WallBottomRightWater
}

// OpenGround is the ground on the open side of a diagonal wall.
func (g Ground) OpenGround() Ground {
	if g.IsWaterDiagonal() {
		return DeepWater
	}
	return Traversable
}

// corner folds the water variants onto their dry counterpart.
func (g Ground) corner() Ground {
	if g.IsWaterDiagonal() {
		return g - (WallTopRightWater - WallTopRight)
	}
	return g
}
