package gamemap

import (
	"testing"

	"github.com/milk9111/questcore/common"
	"github.com/milk9111/questcore/entity"
	"github.com/milk9111/questcore/ground"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMap(t *testing.T) *Map {
	t.Helper()
	return New(64, 64, 2)
}

func TestBorder(t *testing.T) {
	m := newTestMap(t)
	assert.False(t, m.TestCollisionWithBorder(common.NewRect(0, 0, 64, 64)))
	assert.True(t, m.TestCollisionWithBorder(common.NewRect(-1, 0, 8, 8)))
	assert.True(t, m.TestCollisionWithBorder(common.NewRect(57, 0, 8, 8)))
	assert.True(t, m.TestCollisionWithBorderPoint(64, 0))
	assert.False(t, m.TestCollisionWithBorderPoint(63, 63))
}

func TestTileGround(t *testing.T) {
	m := newTestMap(t)
	require.NoError(t, m.SetTileGround(0, common.NewRect(8, 8, 16, 16), ground.WallTopRight))
	require.ErrorIs(t, m.SetTileGround(5, common.NewRect(0, 0, 8, 8), ground.Wall), ErrOutOfBounds)

	assert.Equal(t, ground.WallTopRight, m.TileGround(0, 8, 8))
	assert.Equal(t, ground.Wall, m.TileGround(0, 16, 8))
	assert.Equal(t, ground.Traversable, m.TileGround(0, 8, 16))
	assert.Equal(t, ground.WallTopRight, m.TileGround(0, 23, 23))
	assert.Equal(t, ground.Traversable, m.TileGround(1, 8, 8))
	assert.Equal(t, ground.Empty, m.TileGround(0, -1, 0))
	assert.Equal(t, ground.Empty, m.Ground(0, 64, 0, nil))
}

func TestWallBlocksMover(t *testing.T) {
	m := newTestMap(t)
	require.NoError(t, m.SetTileGround(0, common.NewRect(24, 0, 8, 64), ground.Wall))
	hero := entity.NewHero(0, 0, 0)
	m.AddEntity(hero)

	assert.False(t, m.TestCollisionWithObstacles(0, common.NewRect(8, 0, 16, 16), hero))
	assert.True(t, m.TestCollisionWithObstacles(0, common.NewRect(9, 0, 16, 16), hero))
	assert.False(t, m.TestCollisionWithObstacles(1, common.NewRect(9, 0, 16, 16), hero), "other layer")
	assert.True(t, m.TestCollisionWithObstaclesPoint(0, common.Point{X: 30, Y: 5}, hero))
	assert.False(t, m.TestCollisionWithObstaclesPoint(0, common.Point{X: 23, Y: 5}, hero))
}

func TestDiagonalPixels(t *testing.T) {
	m := newTestMap(t)
	require.NoError(t, m.SetTileGround(0, common.NewRect(8, 8, 8, 8), ground.WallTopRight))
	hero := entity.NewHero(40, 40, 0)
	m.AddEntity(hero)

	// Top-right half of the cell, diagonal included, is solid.
	assert.True(t, m.TestCollisionWithObstaclesPoint(0, common.Point{X: 15, Y: 8}, hero))
	assert.True(t, m.TestCollisionWithObstaclesPoint(0, common.Point{X: 12, Y: 12}, hero))
	assert.False(t, m.TestCollisionWithObstaclesPoint(0, common.Point{X: 8, Y: 15}, hero))
}

func TestWaterDiagonalOpenHalfIsDeepWater(t *testing.T) {
	m := newTestMap(t)
	require.NoError(t, m.SetTileGround(0, common.NewRect(8, 8, 8, 8), ground.WallTopRightWater))
	block := entity.NewBlock("block", 0, 40, 40)
	hero := entity.NewHero(40, 24, 0)
	m.AddEntity(block)
	m.AddEntity(hero)

	open := common.Point{X: 8, Y: 15}
	assert.True(t, m.TestCollisionWithObstaclesPoint(0, open, block))
	assert.True(t, m.TestCollisionWithObstaclesPoint(0, open, nil))
	assert.False(t, m.TestCollisionWithObstaclesPoint(0, open, hero), "the hero may plunge")
	assert.True(t, m.TestCollisionWithObstaclesPoint(0, common.Point{X: 15, Y: 8}, hero))
}

func TestBorderScanEscalation(t *testing.T) {
	m := newTestMap(t)
	require.NoError(t, m.SetTileGround(0, common.NewRect(8, 0, 8, 8), ground.WallBottomLeft))
	mover := entity.NewBlock("probe", 0, 40, 40)
	m.AddEntity(mover)

	box := common.NewRect(6, 2, 8, 8)
	// Every 8px sample of the border misses the wall half of the diagonal...
	for _, p := range []common.Point{{X: 6, Y: 2}, {X: 13, Y: 2}, {X: 6, Y: 9}, {X: 13, Y: 9}} {
		g := m.Ground(0, p.X, p.Y, mover)
		assert.False(t, g.IsDiagonal() && ground.IsDiagonalObstacle(g, p.X, p.Y), "sample %v", p)
	}
	// ...but (8, 2) on the top edge is inside it.
	assert.True(t, ground.IsDiagonalObstacle(ground.WallBottomLeft, 8, 2))
	assert.True(t, m.TestCollisionWithObstacles(0, box, mover))
}

func TestEntityObstacles(t *testing.T) {
	m := newTestMap(t)
	hero := entity.NewHero(0, 0, 0)
	block := entity.NewBlock("block", 0, 32, 0)
	stairs := entity.NewStairs("stairs", 0, common.NewRect(32, 32, 16, 16), 1)
	enemy := entity.NewEnemy("enemy", 0, 0, 40, 1)
	m.AddEntity(hero)
	m.AddEntity(block)
	m.AddEntity(stairs)
	m.AddEntity(enemy)

	assert.True(t, m.TestCollisionWithObstacles(0, common.NewRect(20, 0, 16, 16), hero))
	assert.False(t, m.TestCollisionWithObstacles(0, common.NewRect(30, 30, 16, 16), hero), "stairs let the hero through")
	assert.True(t, m.TestCollisionWithObstacles(0, common.NewRect(30, 30, 16, 16), enemy))

	block.SetEnabled(false)
	assert.False(t, m.TestCollisionWithObstacles(0, common.NewRect(20, 0, 16, 16), hero))
	block.SetEnabled(true)
	m.RemoveEntity(block)
	assert.False(t, m.TestCollisionWithObstacles(0, common.NewRect(20, 0, 16, 16), hero))
}

func TestDisabledDynamicTileContributesNoGround(t *testing.T) {
	m := newTestMap(t)
	hero := entity.NewHero(0, 0, 0)
	hole := entity.NewDynamicTile("hole", 0, common.NewRect(16, 0, 16, 16), ground.Hole)
	m.AddEntity(hero)
	m.AddEntity(hole)

	assert.Equal(t, ground.Hole, m.Ground(0, 20, 4, hero))
	block := entity.NewBlock("b", 0, 40, 40)
	m.AddEntity(block)
	assert.False(t, m.TestCollisionWithObstacles(0, common.NewRect(8, 0, 16, 16), block), "blocks slide into holes")
	enemy := entity.NewEnemy("e", 0, 40, 20, 1)
	m.AddEntity(enemy)
	assert.True(t, m.TestCollisionWithObstacles(0, common.NewRect(8, 0, 16, 16), enemy))

	hole.SetEnabled(false)
	assert.Equal(t, ground.Traversable, m.Ground(0, 20, 4, hero))
	assert.False(t, m.TestCollisionWithObstacles(0, common.NewRect(8, 0, 16, 16), enemy))
	assert.True(t, m.TryMove(hero, 8, 0))
	assert.Equal(t, ground.Traversable, hero.GroundBelow())
	assert.Equal(t, entity.HeroFree, hero.State())
}

func TestTopmostGroundModifierWins(t *testing.T) {
	m := newTestMap(t)
	water := entity.NewDynamicTile("water", 0, common.NewRect(0, 0, 32, 32), ground.DeepWater)
	bridge := entity.NewDynamicTile("bridge", 0, common.NewRect(8, 0, 8, 32), ground.Traversable)
	upper := entity.NewDynamicTile("upper", 1, common.NewRect(0, 0, 32, 32), ground.Lava)
	m.AddEntity(water)
	m.AddEntity(bridge)
	m.AddEntity(upper)

	assert.Equal(t, ground.Traversable, m.Ground(0, 10, 10, nil))
	assert.Equal(t, ground.DeepWater, m.Ground(0, 2, 10, nil))
	assert.Equal(t, ground.DeepWater, m.Ground(0, 10, 10, bridge), "excluded entity is skipped")
	assert.Equal(t, ground.Lava, m.Ground(1, 10, 10, nil))
}

func TestLargeDiagonalTileIsSplit(t *testing.T) {
	m := newTestMap(t)
	tile := entity.NewDynamicTile("slope", 0, common.NewRect(16, 16, 16, 16), ground.WallBottomRight)
	m.AddEntity(tile)

	assert.Equal(t, ground.Traversable, m.Ground(0, 17, 17, nil))
	assert.Equal(t, ground.WallBottomRight, m.Ground(0, 25, 17, nil))
	assert.Equal(t, ground.WallBottomRight, m.Ground(0, 17, 25, nil))
	assert.Equal(t, ground.Wall, m.Ground(0, 25, 25, nil))
}
