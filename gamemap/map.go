// Package gamemap holds a map's static grounds and entities and answers the
// movement questions entities ask: which ground is here, can I go there, who
// am I touching.
package gamemap

import (
	"errors"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/questcore/common"
	"github.com/milk9111/questcore/ecs"
	"github.com/milk9111/questcore/entity"
	"github.com/milk9111/questcore/ground"
	"github.com/sirupsen/logrus"
)

var log = logrus.WithField("pkg", "gamemap")

var ErrOutOfBounds = errors.New("gamemap: out of bounds")

var _ entity.Context = (*Map)(nil)

// Map is one loaded map. Sizes are in pixels and multiples of the 8px cell.
type Map struct {
	Name string

	width, height int
	cols, rows    int
	tiles         [][]ground.Ground

	handles  *ecs.Pool
	entities ecs.SparseSet[entity.Entity]
	index    *spatialIndex
	heroes   []*entity.Hero
	removed  []entity.Entity
	nextZ    uint64

	crystal   bool
	suspended bool
	events    ecs.EventQueue
}

// New creates a map of the given pixel size and number of layers, filled with
// traversable ground. Sizes are rounded up to the cell size.
func New(width, height, layers int) *Map {
	width = common.AlignUp(max(width, 0))
	height = common.AlignUp(max(height, 0))
	layers = max(layers, 1)

	m := &Map{
		width:   width,
		height:  height,
		cols:    width / common.CellSize,
		rows:    height / common.CellSize,
		handles: ecs.NewPool(),
		index:   newSpatialIndex(),
	}
	m.tiles = make([][]ground.Ground, layers)
	for l := range m.tiles {
		cells := make([]ground.Ground, m.cols*m.rows)
		for i := range cells {
			cells[i] = ground.Traversable
		}
		m.tiles[l] = cells
	}
	return m
}

func (m *Map) Width() int  { return m.width }
func (m *Map) Height() int { return m.height }
func (m *Map) Layers() int { return len(m.tiles) }

// Bounds returns the map rectangle.
func (m *Map) Bounds() common.Rect { return common.NewRect(0, 0, m.width, m.height) }

// Suspend stops or resumes entity updates. The flag is propagated to every
// entity.
func (m *Map) Suspend(suspended bool) {
	if m.suspended == suspended {
		return
	}
	m.suspended = suspended
	for _, e := range m.entities.Values() {
		e.Core().SetSuspended(suspended)
	}
	log.WithFields(logrus.Fields{"map": m.Name, "suspended": suspended}).Debug("suspension changed")
}

func (m *Map) IsSuspended() bool { return m.suspended }

// CrystalState is the on/off state shared by crystals and crystal blocks.
func (m *Map) CrystalState() bool { return m.crystal }

func (m *Map) ToggleCrystalState() {
	m.crystal = !m.crystal
	m.Emit("crystal_state_changed", m.crystal)
}

// Emit queues an event for the game layer.
func (m *Map) Emit(event string, data any) {
	m.events.Push(ecs.Event{Type: event, Data: data})
}

// Events drains the queued events.
func (m *Map) Events() []ecs.Event {
	return m.events.Drain()
}

// Update runs one tick: every live entity is updated in z order unless the
// map is suspended, heroes see the ground below them again, then removed
// entities are purged.
func (m *Map) Update() {
	if !m.suspended {
		for _, e := range m.zSorted(m.entities.Values()) {
			if !entity.Alive(e) || e.Core().IsSuspended() {
				continue
			}
			e.Update()
		}
		for _, h := range m.heroes {
			if entity.Alive(h) {
				m.refreshGroundBelow(h)
			}
		}
	}
	m.purge()
}

// Space exposes the physics space backing the spatial index, for debug
// drawing.
func (m *Map) Space() *cp.Space { return m.index.space }
