package entity

import (
	"github.com/milk9111/questcore/common"
	"github.com/milk9111/questcore/ground"
)

const arrowSpeed = 4

// Arrow flies straight until it hits something.
type Arrow struct {
	Base
	Speed int
}

// NewArrow creates an arrow at (x, y) flying towards dir.
func NewArrow(layer, x, y, dir int) *Arrow {
	w, h := 16, 8
	if dir == DirUp || dir == DirDown {
		w, h = 8, 16
	}
	a := &Arrow{Base: NewBase("arrow", layer, common.NewRect(x, y, w, h)), Speed: arrowSpeed}
	a.SetDirection(dir)
	return a
}

func (a *Arrow) Kind() Kind { return KindArrow }

func (a *Arrow) Update() {
	dx, dy := DirectionDelta(a.Direction())
	for range a.Speed {
		if a.IsBeingRemoved() {
			return
		}
		if !a.tryMove(dx, dy) {
			a.emit("arrow_stopped", a)
			a.Remove()
			return
		}
	}
}

// IsGroundObstacle lets arrows fly over everything but walls.
func (a *Arrow) IsGroundObstacle(g ground.Ground) bool {
	return g == ground.Wall
}

func (a *Arrow) NotifyCollisionWithSwitch(s *Switch, _ CollisionMode) {
	if s.Type != SwitchArrowTarget {
		return
	}
	s.TryActivate(a)
	a.Remove()
}

func (a *Arrow) NotifyCollisionWithCrystal(c *Crystal, _ CollisionMode) {
	c.Activate(a)
	a.Remove()
}

func (a *Arrow) NotifyCollisionWithEnemy(e *Enemy, _ CollisionMode) {
	e.Hurt(1)
	a.Remove()
}
