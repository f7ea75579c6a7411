package entity

import (
	"github.com/milk9111/questcore/common"
	"github.com/milk9111/questcore/ground"
)

// DynamicTile is a tile that can be enabled, disabled or removed at runtime.
// Its ground overrides the static tiles below it while enabled.
type DynamicTile struct {
	Base
	Pattern string
}

func NewDynamicTile(name string, layer int, box common.Rect, g ground.Ground) *DynamicTile {
	t := &DynamicTile{Base: NewBase(name, layer, box)}
	t.SetModifiedGround(g)
	return t
}

func (t *DynamicTile) Kind() Kind { return KindDynamicTile }

// Wall is an invisible obstacle for selected kinds of entities.
type Wall struct {
	Base
	stops map[Kind]bool
}

// NewWall creates a wall stopping the given kinds, or every kind when none
// is given.
func NewWall(name string, layer int, box common.Rect, stops ...Kind) *Wall {
	w := &Wall{Base: NewBase(name, layer, box)}
	if len(stops) > 0 {
		w.stops = make(map[Kind]bool, len(stops))
		for _, k := range stops {
			w.stops[k] = true
		}
	}
	return w
}

func (w *Wall) Kind() Kind { return KindWall }

func (w *Wall) IsObstacleFor(mover Entity) bool {
	return w.stops == nil || w.stops[mover.Kind()]
}
