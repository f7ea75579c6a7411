package entity

import (
	"github.com/milk9111/questcore/common"
	"github.com/milk9111/questcore/ground"
)

const enemyInvincible = 20

// Enemy patrols back and forth and hurts the hero on contact.
type Enemy struct {
	Base
	life Life

	Damage   int
	Speed    int
	Flying   bool
	Swimming bool
}

func NewEnemy(name string, layer int, x, y, life int) *Enemy {
	e := &Enemy{
		Base:   NewBase(name, layer, common.NewRect(x, y, 16, 16)),
		life:   NewLife(life),
		Damage: 1,
		Speed:  1,
	}
	e.SetCollisionModes(CollisionOverlapping)
	return e
}

func (e *Enemy) Kind() Kind  { return KindEnemy }
func (e *Enemy) Life() *Life { return &e.life }

// Hurt removes life points and kills the enemy at zero.
func (e *Enemy) Hurt(damage int) {
	if !e.life.Hurt(damage, enemyInvincible) {
		return
	}
	e.emit("enemy_hurt", e)
	if !e.life.IsAlive() {
		e.emit("enemy_killed", e)
		e.Remove()
	}
}

func (e *Enemy) Update() {
	e.life.Tick()
	dx, dy := DirectionDelta(e.Direction())
	for range e.Speed {
		if !e.tryMove(dx, dy) {
			e.SetDirection(e.Direction() + 2)
			return
		}
	}
}

func (e *Enemy) IsGroundObstacle(g ground.Ground) bool {
	switch {
	case e.Flying:
		return g == ground.Wall
	case e.Swimming && g == ground.DeepWater:
		return false
	}
	return e.Base.IsGroundObstacle(g)
}

func (e *Enemy) NotifyCollision(other Entity, mode CollisionMode) {
	other.NotifyCollisionWithEnemy(e, mode)
}

func (e *Enemy) NotifyCollisionSprite(Entity, *Sprite, *Sprite) {}

func (e *Enemy) NotifyCollisionWithExplosion(*Explosion, CollisionMode) {
	e.Hurt(2)
}
