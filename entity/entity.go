// Package entity defines the map entities, their collision modes and the
// notifications exchanged when a detector meets another entity.
package entity

import (
	"github.com/milk9111/questcore/common"
	"github.com/milk9111/questcore/ground"
	"github.com/sirupsen/logrus"
)

var log = logrus.WithField("pkg", "entity")

// Kind is the closed set of entity types known to the engine.
type Kind uint8

const (
	KindHero Kind = iota + 1
	KindEnemy
	KindBlock
	KindSwitch
	KindCrystal
	KindCrystalBlock
	KindBomb
	KindArrow
	KindExplosion
	KindStairs
	KindDynamicTile
	KindWall
)

var kindNames = map[Kind]string{
	KindHero:         "hero",
	KindEnemy:        "enemy",
	KindBlock:        "block",
	KindSwitch:       "switch",
	KindCrystal:      "crystal",
	KindCrystalBlock: "crystal_block",
	KindBomb:         "bomb",
	KindArrow:        "arrow",
	KindExplosion:    "explosion",
	KindStairs:       "stairs",
	KindDynamicTile:  "dynamic_tile",
	KindWall:         "wall",
}

func (k Kind) String() string {
	if n, ok := kindNames[k]; ok {
		return n
	}
	return "unknown"
}

// ParseKind resolves a kind from its name.
func ParseKind(name string) (Kind, bool) {
	for k, n := range kindNames {
		if n == name {
			return k, true
		}
	}
	return 0, false
}

// Entity is anything placed on a map.
type Entity interface {
	Core() *Base
	Kind() Kind
	Update()

	// IsGroundObstacle reports whether the entity may not enter a point of
	// ground g. Diagonal walls are resolved per pixel by the map.
	IsGroundObstacle(g ground.Ground) bool
	// IsObstacleFor reports whether this entity blocks mover.
	IsObstacleFor(mover Entity) bool

	Reactor
}

// Reactor holds the notifications a detector sends to the entity it collided
// with. Base implements all of them as no-ops.
type Reactor interface {
	NotifyCollisionWithSwitch(s *Switch, mode CollisionMode)
	NotifyCollisionWithCrystal(c *Crystal, mode CollisionMode)
	NotifyCollisionWithStairs(s *Stairs, mode CollisionMode)
	NotifyCollisionWithExplosion(x *Explosion, mode CollisionMode)
	NotifyCollisionWithEnemy(e *Enemy, mode CollisionMode)
	NotifyCollisionWithBlock(b *Block, mode CollisionMode)
	NotifyGroundBelowChanged(g ground.Ground)
}

// Detector is an entity that reacts to other entities entering it according
// to its collision modes.
type Detector interface {
	Entity
	NotifyCollision(other Entity, mode CollisionMode)
	NotifyCollisionSprite(other Entity, mine, theirs *Sprite)
}

// CustomCollider is implemented by detectors using the Custom mode.
type CustomCollider interface {
	TestCollisionCustom(other Entity) bool
}

// Context is the map as seen by its entities.
type Context interface {
	Ground(layer, x, y int, exclude Entity) ground.Ground
	TestCollisionWithObstacles(layer int, box common.Rect, mover Entity) bool
	TryMove(e Entity, dx, dy int) bool
	MoveEntity(e Entity, box common.Rect)
	AddEntity(e Entity)
	RemoveEntity(e Entity)
	Emit(event string, data any)

	CrystalState() bool
	ToggleCrystalState()

	CheckCollisionWithDetectors(e Entity)
	CheckCollisionFromDetector(d Detector)
	CheckCollisionWithDetectorsSprite(e Entity, s *Sprite)
	CheckCollisionFromDetectorSprite(d Detector, s *Sprite)
}

// IsDetector reports whether e takes part in detector scans.
func IsDetector(e Entity) (Detector, bool) {
	d, ok := e.(Detector)
	if !ok || d.Core().CollisionModes() == 0 {
		return nil, false
	}
	return d, true
}

// Alive reports whether e can take part in collisions.
func Alive(e Entity) bool {
	if e == nil {
		return false
	}
	b := e.Core()
	return b.IsEnabled() && !b.IsBeingRemoved()
}
