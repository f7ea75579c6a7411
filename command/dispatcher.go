package command

import (
	"slices"
	"weak"

	"github.com/milk9111/questcore/ecs"
	"github.com/sirupsen/logrus"
)

// Dispatcher fans raw input out to every live Commands value it created. It
// only holds weak references: dropping the last reference to a Commands value
// or closing it removes it from the fan-out.
type Dispatcher struct {
	handles   *ecs.Pool
	listeners ecs.SparseSet[weak.Pointer[Commands]]
}

func NewDispatcher() *Dispatcher {
	return &Dispatcher{handles: ecs.NewPool()}
}

// CreateCommandsFromGame creates a Commands value delivering its control
// events to game. Bindings saved by game are applied over the defaults.
func (d *Dispatcher) CreateCommandsFromGame(game Listener) *Commands {
	c := NewCommands(game)
	if r, ok := game.(ErrorReporter); ok {
		c.SetErrorHandler(r.ReportBindingError)
	}
	if src, ok := game.(BindingSource); ok {
		if saved := src.SavedBindings(); len(saved) > 0 {
			// Errors already went to the log and the error handler.
			_ = c.ApplyBindings(saved)
		}
	}
	d.register(c)
	return c
}

// CreateCommandsFromDefault creates a Commands value with default bindings
// and no listener.
func (d *Dispatcher) CreateCommandsFromDefault() *Commands {
	c := NewCommands(nil)
	d.register(c)
	return c
}

func (d *Dispatcher) register(c *Commands) {
	h := d.handles.Create()
	d.listeners.Set(h, weak.Make(c))
	c.handle = h
	c.unregister = func() { d.unregister(h) }
	log.WithField("listener", h.String()).Debug("commands registered")
}

func (d *Dispatcher) unregister(h ecs.Entity) {
	if d.listeners.Remove(h) {
		d.handles.Destroy(h)
		log.WithField("listener", h.String()).Debug("commands unregistered")
	}
}

// NotifyInput delivers ev to each live Commands value. Expired or closed
// entries are pruned on the way, including ones closed by an earlier delivery
// of the same event.
func (d *Dispatcher) NotifyInput(ev InputEvent) {
	// Delivery may close listeners, which removes them from the set.
	for _, h := range slices.Clone(d.listeners.Entities()) {
		c, ok := d.live(h)
		if !ok {
			continue
		}
		c.NotifyInput(ev)
	}
}

// Len prunes expired entries and returns the number of live Commands values.
func (d *Dispatcher) Len() int {
	for _, h := range slices.Clone(d.listeners.Entities()) {
		d.live(h)
	}
	return d.listeners.Len()
}

func (d *Dispatcher) live(h ecs.Entity) (*Commands, bool) {
	wp, ok := d.listeners.Get(h)
	if !ok {
		return nil, false
	}
	c := wp.Value()
	if c == nil || c.closed {
		if c == nil {
			log.WithFields(logrus.Fields{"listener": h.String()}).Debug("pruning expired commands")
		}
		d.unregister(h)
		return nil, false
	}
	return c, true
}
