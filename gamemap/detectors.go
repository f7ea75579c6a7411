package gamemap

import (
	"github.com/milk9111/questcore/common"
	"github.com/milk9111/questcore/entity"
)

// detectorMargin widens scans so touching and facing points just outside a
// box still find their detector.
const detectorMargin = common.CellSize

func sharesLayer(a, b entity.Entity) bool {
	return a.Core().SharesLayer(b.Core())
}

// detecting reports whether e may take part in a detector scan.
func detecting(e entity.Entity) bool {
	return entity.Alive(e) && !e.Core().IsSuspended()
}

// CheckCollisionWithDetectors notifies the detectors near e that satisfy a
// collision mode with it. Liveness is checked again before each notification
// since a callback may remove or disable entities; the scan stops once e
// itself is gone. Nothing is notified while the map is suspended.
func (m *Map) CheckCollisionWithDetectors(e entity.Entity) {
	if m.suspended || !entity.Alive(e) {
		return
	}
	for _, c := range m.EntitiesInRectZSorted(e.Core().Box().Extend(detectorMargin, detectorMargin)) {
		if !entity.Alive(e) {
			return
		}
		if c == e || !detecting(c) || !sharesLayer(c, e) {
			continue
		}
		if d, ok := entity.IsDetector(c); ok {
			entity.CheckCollision(d, e)
		}
	}
}

// CheckCollisionFromDetector tests d against the entities around it, heroes
// first.
func (m *Map) CheckCollisionFromDetector(d entity.Detector) {
	if m.suspended || !detecting(d) {
		return
	}
	for _, h := range m.Heroes() {
		if !entity.Alive(d) {
			return
		}
		if entity.Entity(h) == entity.Entity(d) || !detecting(h) || !sharesLayer(d, h) {
			continue
		}
		entity.CheckCollision(d, h)
	}
	for _, c := range m.EntitiesInRectZSorted(d.Core().Box().Extend(detectorMargin, detectorMargin)) {
		if !entity.Alive(d) {
			return
		}
		if _, isHero := c.(*entity.Hero); isHero {
			continue
		}
		if c == entity.Entity(d) || !detecting(c) || !sharesLayer(d, c) {
			continue
		}
		entity.CheckCollision(d, c)
	}
}

// CheckCollisionWithDetectorsSprite tests the sprite s of e against the
// pixel-precise detectors of the map. Sprites can reach outside their
// owner's box, so every detector is considered.
func (m *Map) CheckCollisionWithDetectorsSprite(e entity.Entity, s *entity.Sprite) {
	if m.suspended || !entity.Alive(e) || !s.PixelCollisions {
		return
	}
	for _, c := range m.Entities() {
		if !entity.Alive(e) {
			return
		}
		if c == e || !detecting(c) || !sharesLayer(c, e) {
			continue
		}
		d, ok := entity.IsDetector(c)
		if !ok || !d.Core().HasCollisionMode(entity.CollisionSprite) {
			continue
		}
		entity.CheckCollisionSprite(d, e, s)
	}
}

// CheckCollisionFromDetectorSprite tests the sprite s of detector d against
// the sprites of every entity, heroes first.
func (m *Map) CheckCollisionFromDetectorSprite(d entity.Detector, s *entity.Sprite) {
	if m.suspended || !detecting(d) || !s.PixelCollisions {
		return
	}
	others := make([]entity.Entity, 0, m.Len())
	for _, h := range m.heroes {
		others = append(others, h)
	}
	for _, c := range m.Entities() {
		if _, isHero := c.(*entity.Hero); !isHero {
			others = append(others, c)
		}
	}
	for _, c := range others {
		if !entity.Alive(d) {
			return
		}
		if c == entity.Entity(d) || !detecting(c) || !sharesLayer(d, c) {
			continue
		}
		entity.CheckCollisionFromSprite(d, c, s)
	}
}
