package gamemap

import (
	"cmp"
	"slices"

	"github.com/milk9111/questcore/common"
	"github.com/milk9111/questcore/entity"
	"github.com/sirupsen/logrus"
)

// AddEntity places e on the map. Entities added during an update take part
// in collisions immediately and are updated from the next tick on.
func (m *Map) AddEntity(e entity.Entity) {
	if e == nil {
		return
	}
	b := e.Core()
	if b.Context() != nil {
		log.WithField("entity", b.Name).Warn("entity already on a map")
		return
	}
	h := m.handles.Create()
	m.nextZ++
	b.Attach(m, e, h, m.nextZ)
	b.SetSuspended(m.suspended)
	m.entities.Set(h, e)
	m.index.put(h, b.Box())
	if hero, ok := e.(*entity.Hero); ok {
		m.heroes = append(m.heroes, hero)
	}
	b.SetGroundBelow(m.Ground(b.Layer(), b.Origin().X, b.Origin().Y, e))

	log.WithFields(logrus.Fields{
		"entity": b.Name,
		"kind":   e.Kind().String(),
		"handle": h.String(),
	}).Debug("entity added")
}

// RemoveEntity marks e as being removed. It stops taking part in collisions
// and grounds right away and is purged at the end of the current update.
func (m *Map) RemoveEntity(e entity.Entity) {
	if !m.Contains(e) || e.Core().IsBeingRemoved() {
		return
	}
	e.Core().MarkRemoved()
	m.removed = append(m.removed, e)
	m.Emit("entity_removed", e)
}

// Contains reports whether e is on this map.
func (m *Map) Contains(e entity.Entity) bool {
	if e == nil {
		return false
	}
	got, ok := m.entities.Get(e.Core().Handle())
	return ok && got == e
}

func (m *Map) purge() {
	if len(m.removed) == 0 {
		return
	}
	removed := m.removed
	m.removed = nil
	for _, e := range removed {
		b := e.Core()
		h := b.Handle()
		m.index.remove(h)
		m.entities.Remove(h)
		m.handles.Destroy(h)
		if hero, ok := e.(*entity.Hero); ok {
			m.heroes = slices.DeleteFunc(m.heroes, func(x *entity.Hero) bool { return x == hero })
		}
		b.Detach()
	}
}

// Len returns the number of entities on the map, including the ones being
// removed.
func (m *Map) Len() int { return m.entities.Len() }

// Heroes returns the heroes on the map.
func (m *Map) Heroes() []*entity.Hero { return slices.Clone(m.heroes) }

// Hero returns the first hero, or nil.
func (m *Map) Hero() *entity.Hero {
	if len(m.heroes) == 0 {
		return nil
	}
	return m.heroes[0]
}

// EntityByName returns the first live entity called name.
func (m *Map) EntityByName(name string) entity.Entity {
	for _, e := range m.Entities() {
		if e.Core().Name == name && !e.Core().IsBeingRemoved() {
			return e
		}
	}
	return nil
}

// Entities returns every entity in z order.
func (m *Map) Entities() []entity.Entity {
	return m.zSorted(m.entities.Values())
}

// EntitiesInRectZSorted returns the entities not being removed whose box
// overlaps box, lowest layer first and in insertion order within a layer.
func (m *Map) EntitiesInRectZSorted(box common.Rect) []entity.Entity {
	var out []entity.Entity
	for _, h := range m.index.query(box) {
		e, ok := m.entities.Get(h)
		if !ok || e.Core().IsBeingRemoved() || !e.Core().Box().Overlaps(box) {
			continue
		}
		out = append(out, e)
	}
	return m.zSorted(out)
}

func (m *Map) zSorted(list []entity.Entity) []entity.Entity {
	out := slices.Clone(list)
	slices.SortFunc(out, func(a, b entity.Entity) int {
		if c := cmp.Compare(a.Core().Layer(), b.Core().Layer()); c != 0 {
			return c
		}
		return cmp.Compare(a.Core().Z(), b.Core().Z())
	})
	return out
}

// MoveEntity places e at box without obstacle checks, then updates the
// ground below it and runs the detector checks of the new position.
func (m *Map) MoveEntity(e entity.Entity, box common.Rect) {
	if !m.Contains(e) {
		e.Core().SetBox(box)
		return
	}
	b := e.Core()
	b.SetBox(box)
	m.index.put(b.Handle(), box)
	m.refreshGroundBelow(e)

	if !entity.Alive(e) {
		return
	}
	m.CheckCollisionWithDetectors(e)
	if d, ok := entity.IsDetector(e); ok && entity.Alive(e) {
		m.CheckCollisionFromDetector(d)
	}
}

// TryMove moves e by (dx, dy) if the destination is free of obstacles.
func (m *Map) TryMove(e entity.Entity, dx, dy int) bool {
	b := e.Core()
	dest := b.Box().Translate(dx, dy)
	if m.TestCollisionWithObstacles(b.Layer(), dest, e) {
		return false
	}
	m.MoveEntity(e, dest)
	return true
}

func (m *Map) refreshGroundBelow(e entity.Entity) {
	b := e.Core()
	o := b.Origin()
	g := m.Ground(b.Layer(), o.X, o.Y, e)
	if g == b.GroundBelow() {
		return
	}
	b.SetGroundBelow(g)
	e.NotifyGroundBelowChanged(g)
}
