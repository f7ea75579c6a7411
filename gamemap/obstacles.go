package gamemap

import (
	"github.com/milk9111/questcore/common"
	"github.com/milk9111/questcore/entity"
	"github.com/milk9111/questcore/ground"
)

// TestCollisionWithBorder reports whether box leaves the map.
func (m *Map) TestCollisionWithBorder(box common.Rect) bool {
	return box.X < 0 || box.Y < 0 || box.Right() > m.width || box.Bottom() > m.height
}

// TestCollisionWithBorderPoint reports whether (x, y) is outside the map.
func (m *Map) TestCollisionWithBorderPoint(x, y int) bool {
	return x < 0 || y < 0 || x >= m.width || y >= m.height
}

// testCollisionWithGround reports whether the ground at (x, y) stops mover.
// foundDiagonal is set when that ground is a diagonal wall. The open half of
// a water diagonal is deep water.
func (m *Map) testCollisionWithGround(layer, x, y int, mover entity.Entity, foundDiagonal *bool) bool {
	g := m.Ground(layer, x, y, mover)
	switch {
	case g == ground.Empty:
		return false
	case g.IsDiagonal():
		*foundDiagonal = true
		if ground.IsDiagonalObstacle(g, x, y) {
			return true
		}
		g = g.OpenGround()
	}
	if mover == nil {
		return defaultGroundObstacle(g)
	}
	return mover.IsGroundObstacle(g)
}

func defaultGroundObstacle(g ground.Ground) bool {
	var b entity.Base
	return b.IsGroundObstacle(g)
}

// TestCollisionWithObstacles reports whether mover would hit the map border,
// the ground or an entity if it occupied box on layer.
//
// The ground is sampled along the border of box every 8 pixels, which is
// enough for square obstacles. When a diagonal wall is met, the whole border
// is scanned since a diagonal can cut a corner between two samples.
func (m *Map) TestCollisionWithObstacles(layer int, box common.Rect, mover entity.Entity) bool {
	if box.Empty() || m.TestCollisionWithBorder(box) {
		return true
	}

	x1, y1 := box.X, box.Y
	x2, y2 := box.Right()-1, box.Bottom()-1
	foundDiagonal := false
	hit := func(x, y int) bool {
		return m.testCollisionWithGround(layer, x, y, mover, &foundDiagonal)
	}

	for i := x1; i <= x2; i += common.CellSize {
		j := min(i+common.CellSize-1, x2)
		if hit(i, y1) || hit(j, y1) || hit(i, y2) || hit(j, y2) {
			return true
		}
	}
	for i := y1; i <= y2; i += common.CellSize {
		j := min(i+common.CellSize-1, y2)
		if hit(x1, i) || hit(x1, j) || hit(x2, i) || hit(x2, j) {
			return true
		}
	}

	if foundDiagonal {
		for x := x1; x <= x2; x++ {
			if hit(x, y1) || hit(x, y2) {
				return true
			}
		}
		for y := y1; y <= y2; y++ {
			if hit(x1, y) || hit(x2, y) {
				return true
			}
		}
	}

	return m.testCollisionWithEntities(layer, box, mover)
}

// TestCollisionWithObstaclesPoint is the single-pixel form of
// TestCollisionWithObstacles.
func (m *Map) TestCollisionWithObstaclesPoint(layer int, p common.Point, mover entity.Entity) bool {
	if m.TestCollisionWithBorderPoint(p.X, p.Y) {
		return true
	}
	var foundDiagonal bool
	if m.testCollisionWithGround(layer, p.X, p.Y, mover, &foundDiagonal) {
		return true
	}
	return m.testCollisionWithEntities(layer, common.NewRect(p.X, p.Y, 1, 1), mover)
}

// testCollisionWithEntities reports whether an entity of layer blocks mover
// inside box. Without a mover, entities are ignored.
func (m *Map) testCollisionWithEntities(layer int, box common.Rect, mover entity.Entity) bool {
	if mover == nil {
		return false
	}
	for _, e := range m.EntitiesInRectZSorted(box) {
		b := e.Core()
		if e == mover || !entity.Alive(e) {
			continue
		}
		if b.Layer() != layer && !b.IsLayerIndependent() {
			continue
		}
		if e.IsObstacleFor(mover) {
			return true
		}
	}
	return false
}
