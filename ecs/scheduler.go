package ecs

// System runs once per tick.
type System interface {
	Update()
}

// SystemFunc adapts a function to System.
type SystemFunc func()

func (f SystemFunc) Update() { f() }

// Scheduler runs systems in registration order. The main loop relies on this
// order: input pump, command dispatch, map logic.
type Scheduler struct {
	systems []System
}

func NewScheduler(systems ...System) *Scheduler {
	copied := append([]System(nil), systems...)
	return &Scheduler{systems: copied}
}

func (s *Scheduler) Add(system System) {
	if system == nil {
		return
	}
	s.systems = append(s.systems, system)
}

func (s *Scheduler) Update() {
	for _, system := range s.systems {
		system.Update()
	}
}

func (s *Scheduler) Systems() []System {
	systems := make([]System, 0, len(s.systems))
	return append(systems, s.systems...)
}
