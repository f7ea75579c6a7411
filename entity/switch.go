package entity

import "github.com/milk9111/questcore/common"

// SwitchType selects what can activate a switch.
type SwitchType uint8

const (
	// SwitchWalkable is pressed by the hero or a block standing on it.
	SwitchWalkable SwitchType = iota
	// SwitchArrowTarget is activated by arrows.
	SwitchArrowTarget
	// SwitchSolid is an obstacle activated by the sword.
	SwitchSolid
)

var switchTypeNames = [...]string{
	SwitchWalkable:    "walkable",
	SwitchArrowTarget: "arrow_target",
	SwitchSolid:       "solid",
}

func (t SwitchType) String() string {
	if int(t) < len(switchTypeNames) {
		return switchTypeNames[t]
	}
	return "unknown"
}

// ParseSwitchType resolves a switch type name.
func ParseSwitchType(name string) (SwitchType, bool) {
	for i, n := range switchTypeNames {
		if n == name {
			return SwitchType(i), true
		}
	}
	return 0, false
}

// Switch emits switch_activated when the right entity triggers it.
type Switch struct {
	Base
	Type SwitchType
	// NeedsBlock restricts a walkable switch to blocks.
	NeedsBlock bool
	// InactivateWhenLeaving releases a walkable switch once its activator
	// leaves it.
	InactivateWhenLeaving bool
	Locked                bool

	activated bool
	activator Entity
}

func NewSwitch(name string, t SwitchType, layer int, box common.Rect) *Switch {
	s := &Switch{Base: NewBase(name, layer, box), Type: t}
	switch t {
	case SwitchWalkable:
		s.SetCollisionModes(CollisionOverlapping)
	case SwitchArrowTarget:
		s.SetCollisionModes(CollisionOverlapping | CollisionFacing)
	case SwitchSolid:
		s.SetCollisionModes(CollisionSprite)
	}
	return s
}

func (s *Switch) Kind() Kind        { return KindSwitch }
func (s *Switch) IsActivated() bool { return s.activated }
func (s *Switch) Activator() Entity { return s.activator }

// TryActivate activates the switch on behalf of by. It returns false if the
// switch was locked or already on.
func (s *Switch) TryActivate(by Entity) bool {
	if s.Locked || s.activated {
		return false
	}
	s.activated = true
	s.activator = by
	log.WithField("switch", s.Name).Debug("switch activated")
	s.emit("switch_activated", s)
	return true
}

// SetActivated changes the state without notifying anyone.
func (s *Switch) SetActivated(on bool) {
	s.activated = on
	if !on {
		s.activator = nil
	}
}

func (s *Switch) Update() {
	if !s.InactivateWhenLeaving || !s.activated || s.activator == nil {
		return
	}
	if Alive(s.activator) && s.Overlaps(s.activator.Core()) {
		return
	}
	s.activated = false
	s.activator = nil
	s.emit("switch_inactivated", s)
}

func (s *Switch) IsObstacleFor(Entity) bool {
	return s.Type == SwitchSolid
}

func (s *Switch) NotifyCollision(other Entity, mode CollisionMode) {
	other.NotifyCollisionWithSwitch(s, mode)
}

func (s *Switch) NotifyCollisionSprite(other Entity, _, theirs *Sprite) {
	if s.Type == SwitchSolid && theirs.Name == "sword" {
		s.TryActivate(other)
	}
}
