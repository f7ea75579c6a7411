package entity

import "github.com/milk9111/questcore/common"

// Stairs move the hero to another layer when it walks into them.
type Stairs struct {
	Base
	// TargetLayer is the layer the hero ends up on, -1 to keep it.
	TargetLayer int
}

func NewStairs(name string, layer int, box common.Rect, targetLayer int) *Stairs {
	s := &Stairs{Base: NewBase(name, layer, box), TargetLayer: targetLayer}
	s.SetCollisionModes(CollisionFacing)
	return s
}

func (s *Stairs) Kind() Kind { return KindStairs }

// Take moves the hero through the stairs.
func (s *Stairs) Take(h *Hero) {
	if s.TargetLayer >= 0 && s.TargetLayer != h.Layer() {
		h.SetLayer(s.TargetLayer)
	}
	s.emit("stairs_taken", s)
}

// IsObstacleFor stops everything but the hero.
func (s *Stairs) IsObstacleFor(mover Entity) bool {
	return mover.Kind() != KindHero
}

func (s *Stairs) NotifyCollision(other Entity, mode CollisionMode) {
	other.NotifyCollisionWithStairs(s, mode)
}

func (s *Stairs) NotifyCollisionSprite(Entity, *Sprite, *Sprite) {}
