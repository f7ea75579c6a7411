package entity

import (
	"github.com/milk9111/questcore/common"
	"github.com/milk9111/questcore/ecs"
	"github.com/milk9111/questcore/ground"
)

// Directions, counter-clockwise from right.
const (
	DirRight = iota
	DirUp
	DirLeft
	DirDown
)

// DirectionDelta returns the unit step of a 4-way direction.
func DirectionDelta(dir int) (dx, dy int) {
	switch dir {
	case DirRight:
		return 1, 0
	case DirUp:
		return 0, -1
	case DirLeft:
		return -1, 0
	case DirDown:
		return 0, 1
	}
	return 0, 0
}

// Base carries the state shared by every entity kind. Kinds embed it and
// return it from Core.
type Base struct {
	Name string

	box    common.Rect
	origin common.Point
	layer  int
	dir    int

	enabled          bool
	removed          bool
	suspended        bool
	layerIndependent bool

	modifiedGround ground.Ground
	groundBelow    ground.Ground
	modes          CollisionMode
	sprites        []*Sprite

	ctx    Context
	owner  Entity
	handle ecs.Entity
	z      uint64
}

// NewBase creates an enabled entity occupying box on layer. The origin is the
// bottom-center of the box.
func NewBase(name string, layer int, box common.Rect) Base {
	return Base{
		Name:    name,
		box:     box,
		origin:  common.Point{X: box.Width / 2, Y: box.Height - 3},
		layer:   layer,
		enabled: true,
	}
}

func (b *Base) Core() *Base { return b }

func (b *Base) Box() common.Rect { return b.box }

// SetBox places the entity without any obstacle check. Entities on a map
// move through Context.TryMove so the spatial index follows.
func (b *Base) SetBox(r common.Rect) { b.box = r }

func (b *Base) Layer() int         { return b.layer }
func (b *Base) SetLayer(layer int) { b.layer = layer }

// Origin returns the reference point of the entity in map coordinates.
func (b *Base) Origin() common.Point {
	return common.Point{X: b.box.X + b.origin.X, Y: b.box.Y + b.origin.Y}
}

// SetOrigin sets the origin relative to the top-left corner of the box.
func (b *Base) SetOrigin(p common.Point) { b.origin = p }

func (b *Base) Direction() int       { return b.dir }
func (b *Base) SetDirection(dir int) { b.dir = dir & 3 }

func (b *Base) IsEnabled() bool { return b.enabled }

// SetEnabled toggles whether the entity exists for collisions and ground.
func (b *Base) SetEnabled(enabled bool) { b.enabled = enabled }

func (b *Base) IsBeingRemoved() bool { return b.removed }

// MarkRemoved flags the entity for removal at the end of the map update.
func (b *Base) MarkRemoved() { b.removed = true }

func (b *Base) IsSuspended() bool        { return b.suspended }
func (b *Base) SetSuspended(s bool)      { b.suspended = s }
func (b *Base) IsLayerIndependent() bool { return b.layerIndependent }

// SetLayerIndependent makes the entity collide with entities of any layer.
func (b *Base) SetLayerIndependent(v bool) { b.layerIndependent = v }

// SharesLayer reports whether b and other can interact.
func (b *Base) SharesLayer(other *Base) bool {
	return b.layer == other.layer || b.layerIndependent || other.layerIndependent
}

// ModifiedGround is the ground this entity imposes on the map, or Empty.
func (b *Base) ModifiedGround() ground.Ground         { return b.modifiedGround }
func (b *Base) SetModifiedGround(g ground.Ground)     { b.modifiedGround = g }
func (b *Base) GroundBelow() ground.Ground            { return b.groundBelow }
func (b *Base) SetGroundBelow(g ground.Ground)        { b.groundBelow = g }
func (b *Base) CollisionModes() CollisionMode         { return b.modes }
func (b *Base) SetCollisionModes(m CollisionMode)     { b.modes = m }
func (b *Base) AddCollisionModes(m CollisionMode)     { b.modes |= m }
func (b *Base) HasCollisionMode(m CollisionMode) bool { return b.modes&m != 0 }

func (b *Base) Overlaps(other *Base) bool       { return b.box.Overlaps(other.box) }
func (b *Base) OverlapsRect(r common.Rect) bool { return b.box.Overlaps(r) }

// Sprites returns the sprites attached to the entity.
func (b *Base) Sprites() []*Sprite { return b.sprites }

// AddSprite attaches s to the entity and returns it.
func (b *Base) AddSprite(s *Sprite) *Sprite {
	s.owner = b
	b.sprites = append(b.sprites, s)
	return s
}

// Sprite returns the attached sprite called name.
func (b *Base) Sprite(name string) *Sprite {
	for _, s := range b.sprites {
		if s.Name == name {
			return s
		}
	}
	return nil
}

func (b *Base) Context() Context   { return b.ctx }
func (b *Base) Handle() ecs.Entity { return b.handle }

// Z is the insertion order of the entity on its map.
func (b *Base) Z() uint64 { return b.z }

// Attach is called by the map when self, whose Base is b, is added to it.
func (b *Base) Attach(ctx Context, self Entity, handle ecs.Entity, z uint64) {
	b.ctx = ctx
	b.owner = self
	b.handle = handle
	b.z = z
	b.removed = false
}

// Detach is called by the map once the entity is purged.
func (b *Base) Detach() {
	b.ctx = nil
	b.owner = nil
	b.handle = 0
}

func (b *Base) self() (Entity, bool) {
	return b.owner, b.owner != nil
}

func (b *Base) emit(event string, data any) {
	if b.ctx != nil {
		b.ctx.Emit(event, data)
	}
}

// Remove asks the map to remove the entity.
func (b *Base) Remove() {
	if b.removed {
		return
	}
	if b.ctx != nil && b.owner != nil {
		b.ctx.RemoveEntity(b.owner)
		return
	}
	b.removed = true
}

func (b *Base) tryMove(dx, dy int) bool {
	if b.ctx == nil || b.owner == nil {
		b.box = b.box.Translate(dx, dy)
		return true
	}
	return b.ctx.TryMove(b.owner, dx, dy)
}

func (b *Base) Update() {}

// IsGroundObstacle is the default ground policy: walls, low walls, deep
// water, holes, lava, prickles and ladders stop the entity.
func (b *Base) IsGroundObstacle(g ground.Ground) bool {
	switch g {
	case ground.Wall, ground.LowWall, ground.DeepWater, ground.Hole,
		ground.Lava, ground.Prickle, ground.Ladder:
		return true
	}
	return false
}

func (b *Base) IsObstacleFor(Entity) bool { return false }

func (b *Base) NotifyCollisionWithSwitch(*Switch, CollisionMode)       {}
func (b *Base) NotifyCollisionWithCrystal(*Crystal, CollisionMode)     {}
func (b *Base) NotifyCollisionWithStairs(*Stairs, CollisionMode)       {}
func (b *Base) NotifyCollisionWithExplosion(*Explosion, CollisionMode) {}
func (b *Base) NotifyCollisionWithEnemy(*Enemy, CollisionMode)         {}
func (b *Base) NotifyCollisionWithBlock(*Block, CollisionMode)         {}
func (b *Base) NotifyGroundBelowChanged(ground.Ground)                 {}
