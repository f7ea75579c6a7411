package entity

import (
	"github.com/milk9111/questcore/common"
	"github.com/milk9111/questcore/ground"
)

const (
	bombFuseTicks  = 90
	explosionTicks = 20
	explosionSize  = 48
)

// Bomb explodes when its fuse runs out or when another explosion reaches it.
type Bomb struct {
	Base
	Fuse     int
	exploded bool
}

func NewBomb(layer, x, y int) *Bomb {
	return &Bomb{Base: NewBase("bomb", layer, common.NewRect(x, y, 16, 16)), Fuse: bombFuseTicks}
}

func (b *Bomb) Kind() Kind { return KindBomb }

func (b *Bomb) Update() {
	b.Fuse--
	if b.Fuse <= 0 {
		b.Explode()
	}
}

// Explode replaces the bomb with an explosion centered on it.
func (b *Bomb) Explode() {
	if b.exploded || b.IsBeingRemoved() {
		return
	}
	b.exploded = true
	c := b.Box().Center()
	x := NewExplosion(b.Layer(), c.X, c.Y)
	if ctx := b.Context(); ctx != nil {
		ctx.AddEntity(x)
	}
	b.Remove()
}

func (b *Bomb) NotifyCollisionWithExplosion(*Explosion, CollisionMode) {
	b.Explode()
}

func (b *Bomb) NotifyGroundBelowChanged(g ground.Ground) {
	switch g {
	case ground.Hole, ground.DeepWater, ground.Lava:
		b.emit("bomb_lost", b)
		b.Remove()
	}
}

// Explosion hurts and triggers every entity it overlaps, once each.
type Explosion struct {
	Base
	ticks int
	hit   map[Entity]struct{}
}

// NewExplosion creates an explosion centered on (cx, cy).
func NewExplosion(layer, cx, cy int) *Explosion {
	box := common.NewRect(cx-explosionSize/2, cy-explosionSize/2, explosionSize, explosionSize)
	x := &Explosion{
		Base:  NewBase("explosion", layer, box),
		ticks: explosionTicks,
		hit:   make(map[Entity]struct{}),
	}
	x.SetCollisionModes(CollisionOverlapping)
	return x
}

func (x *Explosion) Kind() Kind { return KindExplosion }

func (x *Explosion) Update() {
	if ctx := x.Context(); ctx != nil {
		ctx.CheckCollisionFromDetector(x)
	}
	x.ticks--
	if x.ticks <= 0 {
		x.Remove()
	}
}

func (x *Explosion) NotifyCollision(other Entity, mode CollisionMode) {
	if _, done := x.hit[other]; done {
		return
	}
	x.hit[other] = struct{}{}
	other.NotifyCollisionWithExplosion(x, mode)
}

func (x *Explosion) NotifyCollisionSprite(Entity, *Sprite, *Sprite) {}
