package entity

import (
	"github.com/milk9111/questcore/common"
	"github.com/milk9111/questcore/ground"
)

const (
	blockPushDistance = 16
	blockPushCooldown = 20
)

// Block is a pushable obstacle.
type Block struct {
	Base
	// MaxMoves limits how many times the block can be pushed, -1 for no
	// limit.
	MaxMoves int

	moves    int
	cooldown int
}

func NewBlock(name string, layer int, x, y int) *Block {
	b := &Block{Base: NewBase(name, layer, common.NewRect(x, y, 16, 16)), MaxMoves: -1}
	b.SetCollisionModes(CollisionFacing)
	return b
}

func (b *Block) Kind() Kind { return KindBlock }
func (b *Block) Moves() int { return b.moves }

// Push moves the block one push distance in dir, stopping at the first
// obstacle. It returns whether the block moved at all.
func (b *Block) Push(dir int) bool {
	if b.cooldown > 0 || (b.MaxMoves >= 0 && b.moves >= b.MaxMoves) {
		return false
	}
	dx, dy := DirectionDelta(dir)
	moved := 0
	for moved < blockPushDistance && !b.IsBeingRemoved() && b.tryMove(dx, dy) {
		moved++
	}
	if moved == 0 {
		return false
	}
	b.moves++
	b.cooldown = blockPushCooldown
	b.emit("block_moved", b)
	return true
}

func (b *Block) Update() {
	if b.cooldown > 0 {
		b.cooldown--
	}
}

// IsGroundObstacle lets blocks slide into holes, where they fall.
func (b *Block) IsGroundObstacle(g ground.Ground) bool {
	if g == ground.Hole {
		return false
	}
	return b.Base.IsGroundObstacle(g)
}

func (b *Block) NotifyGroundBelowChanged(g ground.Ground) {
	if g == ground.Hole {
		b.emit("block_fell", b)
		b.Remove()
	}
}

func (b *Block) IsObstacleFor(Entity) bool { return true }

func (b *Block) NotifyCollision(other Entity, mode CollisionMode) {
	other.NotifyCollisionWithBlock(b, mode)
}

func (b *Block) NotifyCollisionSprite(Entity, *Sprite, *Sprite) {}

func (b *Block) NotifyCollisionWithSwitch(s *Switch, mode CollisionMode) {
	if mode == CollisionOverlapping && s.Type == SwitchWalkable {
		s.TryActivate(b)
	}
}
