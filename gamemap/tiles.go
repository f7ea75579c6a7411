package gamemap

import (
	"fmt"

	"github.com/milk9111/questcore/common"
	"github.com/milk9111/questcore/entity"
	"github.com/milk9111/questcore/ground"
)

// SetTileGround applies g to every cell covered by box on layer. Diagonal
// grounds spanning several cells are split along the box diagonal. Cells
// outside the map are ignored.
func (m *Map) SetTileGround(layer int, box common.Rect, g ground.Ground) error {
	if layer < 0 || layer >= len(m.tiles) {
		return fmt.Errorf("gamemap: set ground on layer %d: %w", layer, ErrOutOfBounds)
	}
	if box.Empty() {
		return nil
	}
	if g.IsDiagonal() && (box.Width != box.Height || box.Width%common.CellSize != 0 ||
		box.X%common.CellSize != 0 || box.Y%common.CellSize != 0) {
		log.WithField("box", box).WithField("ground", g.String()).
			Warn("diagonal tile is not a square of whole cells, its cells become traversable")
	}

	cs := common.CellSize
	c0 := max(box.X/cs, 0)
	r0 := max(box.Y/cs, 0)
	c1 := min((box.Right()+cs-1)/cs, m.cols)
	r1 := min((box.Bottom()+cs-1)/cs, m.rows)
	for r := r0; r < r1; r++ {
		for c := c0; c < c1; c++ {
			p := common.Point{X: c * cs, Y: r * cs}
			m.tiles[layer][r*m.cols+c] = ground.InSquare(g, box, p)
		}
	}
	return nil
}

// TileGround returns the static ground at a pixel, ignoring entities.
func (m *Map) TileGround(layer, x, y int) ground.Ground {
	if layer < 0 || layer >= len(m.tiles) || m.TestCollisionWithBorderPoint(x, y) {
		return ground.Empty
	}
	return m.tiles[layer][(y/common.CellSize)*m.cols+x/common.CellSize]
}

// Ground returns the ground at a pixel. The topmost enabled entity of the
// layer that modifies the ground there wins over the static tiles; exclude
// is never considered. Points outside the map are Empty.
func (m *Map) Ground(layer, x, y int, exclude entity.Entity) ground.Ground {
	if m == nil || m.TestCollisionWithBorderPoint(x, y) {
		return ground.Empty
	}

	candidates := m.EntitiesInRectZSorted(common.NewRect(x, y, 1, 1))
	for i := len(candidates) - 1; i >= 0; i-- {
		e := candidates[i]
		b := e.Core()
		if e == exclude || b.Layer() != layer || !entity.Alive(e) {
			continue
		}
		g := b.ModifiedGround()
		if g == ground.Empty || !b.Box().Contains(x, y) {
			continue
		}
		return ground.InSquare(g, b.Box(), common.Point{X: x, Y: y})
	}
	return m.TileGround(layer, x, y)
}
