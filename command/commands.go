package command

import (
	"math"
	"slices"

	"github.com/milk9111/questcore/ecs"
	"github.com/sirupsen/logrus"
)

var log = logrus.WithField("pkg", "command")

// DefaultDeadzone is the distance from center under which a joypad axis counts
// as centered.
const DefaultDeadzone = 1e-5

// KeyboardAxisBinding is the pair of keys driving an axis towards -1 and +1.
type KeyboardAxisBinding struct {
	Minus Key
	Plus  Key
}

func (b KeyboardAxisBinding) IsNone() bool {
	return b.Minus == KeyNone && b.Plus == KeyNone
}

// Commands translates raw input into control events for one listener. It
// owns its binding tables, the pressed command set and the axis states.
//
// A Commands value is not safe for concurrent use; the main loop drives it.
type Commands struct {
	listener Listener

	keyboard     map[Key]Command
	joypad       map[JoypadBinding]Command
	keyboardAxes map[Axis]KeyboardAxisBinding
	joypadAxes   map[int]Axis

	pressed  map[Command]struct{}
	axes     map[Axis]float64
	keysHeld map[Key]struct{}

	customizing bool
	toCustomize Command
	onCustomize func(cmd Command, ok bool)
	cancelKey   Key

	deadzone float64
	onError  func(error)

	handle     ecs.Entity
	unregister func()
	closed     bool
}

// NewCommands creates a Commands value with the default bindings. Only
// values created through a Dispatcher receive input automatically.
func NewCommands(listener Listener) *Commands {
	c := &Commands{
		listener:     listener,
		keyboard:     make(map[Key]Command),
		joypad:       make(map[JoypadBinding]Command),
		keyboardAxes: make(map[Axis]KeyboardAxisBinding),
		joypadAxes:   make(map[int]Axis),
		pressed:      make(map[Command]struct{}),
		axes:         make(map[Axis]float64),
		keysHeld:     make(map[Key]struct{}),
		deadzone:     DefaultDeadzone,
	}
	c.ResetBindings()
	return c
}

// ResetBindings restores the default keyboard and joypad tables.
func (c *Commands) ResetBindings() {
	clear(c.keyboard)
	clear(c.joypad)
	clear(c.keyboardAxes)
	clear(c.joypadAxes)

	c.keyboard[KeySpace] = Action
	c.keyboard["c"] = Attack
	c.keyboard["x"] = Item1
	c.keyboard["v"] = Item2
	c.keyboard["d"] = Pause
	c.keyboard[KeyRight] = Right
	c.keyboard[KeyUp] = Up
	c.keyboard[KeyLeft] = Left
	c.keyboard[KeyDown] = Down

	c.joypad[ButtonBinding(0)] = Action
	c.joypad[ButtonBinding(1)] = Attack
	c.joypad[ButtonBinding(2)] = Item1
	c.joypad[ButtonBinding(3)] = Item2
	c.joypad[ButtonBinding(4)] = Pause
	c.joypad[AxisBinding(0, 1)] = Right
	c.joypad[AxisBinding(1, -1)] = Up
	c.joypad[AxisBinding(0, -1)] = Left
	c.joypad[AxisBinding(1, 1)] = Down

	c.keyboardAxes[AxisX] = KeyboardAxisBinding{Minus: KeyLeft, Plus: KeyRight}
	c.keyboardAxes[AxisY] = KeyboardAxisBinding{Minus: KeyUp, Plus: KeyDown}
	c.joypadAxes[0] = AxisX
	c.joypadAxes[1] = AxisY
}

func (c *Commands) SetListener(l Listener) { c.listener = l }
func (c *Commands) Listener() Listener     { return c.listener }

// SetJoypadDeadzone changes the centered threshold of joypad axes.
func (c *Commands) SetJoypadDeadzone(deadzone float64) {
	if deadzone < 0 {
		deadzone = 0
	}
	c.deadzone = deadzone
}

func (c *Commands) JoypadDeadzone() float64 { return c.deadzone }

// SetErrorHandler installs the function receiving binding-table errors, in
// addition to the log.
func (c *Commands) SetErrorHandler(fn func(error)) { c.onError = fn }

func (c *Commands) reportError(err error) {
	if err == nil {
		return
	}
	log.WithError(err).Warn("binding error")
	if c.onError != nil {
		c.onError(err)
	}
}

// Close unregisters c from its dispatcher. A closed Commands value ignores
// input.
func (c *Commands) Close() {
	if c.closed {
		return
	}
	c.closed = true
	c.customizing = false
	c.onCustomize = nil
	if c.unregister != nil {
		c.unregister()
		c.unregister = nil
	}
}

func (c *Commands) IsClosed() bool { return c.closed }

func (c *Commands) IsCommandPressed(cmd Command) bool {
	_, ok := c.pressed[cmd]
	return ok
}

// PressedCommands returns the held commands in command order.
func (c *Commands) PressedCommands() []Command {
	out := make([]Command, 0, len(c.pressed))
	for cmd := range c.pressed {
		out = append(out, cmd)
	}
	slices.SortFunc(out, Command.Compare)
	return out
}

// CommandAxisState returns the current state of a, in [-1, 1].
func (c *Commands) CommandAxisState(a Axis) float64 {
	return c.axes[a]
}

// Keyboard bindings.

func (c *Commands) KeyboardBinding(cmd Command) Key {
	k, _ := bindingOf(c.keyboard, cmd)
	return k
}

// SetKeyboardBinding binds key to cmd. A command previously bound to key
// takes over the old key of cmd. None as cmd unbinds key; KeyNone as key
// unbinds cmd.
func (c *Commands) SetKeyboardBinding(cmd Command, key Key) {
	rebind(c.keyboard, cmd, key, KeyNone)
}

func (c *Commands) CommandFromKey(key Key) Command {
	return c.keyboard[key]
}

// Joypad bindings.

func (c *Commands) JoypadBinding(cmd Command) JoypadBinding {
	b, _ := bindingOf(c.joypad, cmd)
	return b
}

// SetJoypadBinding is the joypad counterpart of SetKeyboardBinding.
func (c *Commands) SetJoypadBinding(cmd Command, b JoypadBinding) {
	rebind(c.joypad, cmd, b, JoypadBinding{})
}

func (c *Commands) CommandFromJoypad(b JoypadBinding) Command {
	return c.joypad[b]
}

// Axis bindings.

func (c *Commands) KeyboardAxisBinding(a Axis) KeyboardAxisBinding {
	return c.keyboardAxes[a]
}

func (c *Commands) SetKeyboardAxisBinding(a Axis, b KeyboardAxisBinding) {
	if a.IsNone() {
		return
	}
	if b.IsNone() {
		delete(c.keyboardAxes, a)
		return
	}
	c.keyboardAxes[a] = b
}

// JoypadAxisBinding returns the physical axis driving a, or -1.
func (c *Commands) JoypadAxisBinding(a Axis) int {
	for axis, bound := range c.joypadAxes {
		if bound == a {
			return axis
		}
	}
	return -1
}

// SetJoypadAxisBinding makes the physical axis drive a. A negative axis
// unbinds a.
func (c *Commands) SetJoypadAxisBinding(a Axis, axis int) {
	if a.IsNone() {
		return
	}
	if prev := c.JoypadAxisBinding(a); prev >= 0 {
		delete(c.joypadAxes, prev)
	}
	if axis < 0 {
		return
	}
	c.joypadAxes[axis] = a
}

// Customization.

// Customize makes the next input event become the binding of cmd. done is
// called with ok false when that event could not become a binding.
func (c *Commands) Customize(cmd Command, done func(cmd Command, ok bool)) {
	if cmd.IsNone() {
		log.Warn("customize: ignoring none command")
		return
	}
	c.customizing = true
	c.toCustomize = cmd
	c.onCustomize = done
}

func (c *Commands) IsCustomizing() bool { return c.customizing }

// CommandToCustomize returns the command being customized.
func (c *Commands) CommandToCustomize() (Command, error) {
	if !c.customizing {
		return None, ErrNotCustomizing
	}
	return c.toCustomize, nil
}

// SetCancelKey makes key abort customization instead of becoming a binding.
// KeyNone disables cancelling.
func (c *Commands) SetCancelKey(key Key) { c.cancelKey = key }

func (c *Commands) endCustomizing() (Command, func(Command, bool)) {
	cmd, done := c.toCustomize, c.onCustomize
	c.customizing = false
	c.toCustomize = None
	c.onCustomize = nil
	return cmd, done
}

func (c *Commands) customized(cmd Command, done func(Command, bool), ok bool) {
	if ok {
		c.pressed[cmd] = struct{}{}
	}
	log.WithFields(logrus.Fields{
		"command": cmd.String(),
		"ok":      ok,
	}).Debug("customization finished")
	if done != nil {
		done(cmd, ok)
	}
}

// Simulation helpers for scripts and menus.

// SimulatePressed acts as if a physical input bound to cmd was pressed.
func (c *Commands) SimulatePressed(cmd Command) { c.commandPressed(cmd) }

// SimulateReleased acts as if a physical input bound to cmd was released.
func (c *Commands) SimulateReleased(cmd Command) { c.commandReleased(cmd) }

// ReleaseAll releases every held command and recenters every axis.
func (c *Commands) ReleaseAll() {
	for _, cmd := range c.PressedCommands() {
		c.commandReleased(cmd)
	}
	for a, state := range c.axes {
		if state != 0 {
			c.setAxisState(a, 0)
		}
	}
	clear(c.keysHeld)
}

// NotifyInput feeds one raw input event.
func (c *Commands) NotifyInput(ev InputEvent) {
	if c.closed {
		return
	}
	switch ev.Kind {
	case KeyPressed:
		c.keyPressed(ev.Key)
	case KeyReleased:
		c.keyReleased(ev.Key)
	case JoypadButtonPressed:
		c.joypadButtonPressed(ev.Index)
	case JoypadButtonReleased:
		c.joypadButtonReleased(ev.Index)
	case JoypadAxisMoved:
		c.joypadAxisMoved(ev.Index, ev.Value)
	case JoypadHatMoved:
		c.joypadHatMoved(ev.Index, ev.Direction)
	default:
		log.WithField("kind", ev.Kind).Debug("ignoring input event")
	}
}

func (c *Commands) keyPressed(key Key) {
	if c.customizing {
		cmd, done := c.endCustomizing()
		if key == c.cancelKey && c.cancelKey != KeyNone {
			c.customized(cmd, done, false)
			return
		}
		if c.KeyboardBinding(cmd) != key {
			c.SetKeyboardBinding(cmd, key)
		}
		c.keysHeld[key] = struct{}{}
		c.customized(cmd, done, true)
		return
	}

	c.keysHeld[key] = struct{}{}
	c.updateKeyboardAxes(key)
	if cmd, ok := c.keyboard[key]; ok {
		c.commandPressed(cmd)
	}
}

func (c *Commands) keyReleased(key Key) {
	delete(c.keysHeld, key)
	if c.customizing {
		cmd, done := c.endCustomizing()
		c.updateKeyboardAxes(key)
		c.commandReleased(c.keyboard[key])
		c.customized(cmd, done, false)
		return
	}

	c.updateKeyboardAxes(key)
	if cmd, ok := c.keyboard[key]; ok {
		c.commandReleased(cmd)
	}
}

func (c *Commands) updateKeyboardAxes(key Key) {
	for a, b := range c.keyboardAxes {
		if key != b.Minus && key != b.Plus {
			continue
		}
		state := 0.0
		if _, ok := c.keysHeld[b.Plus]; ok && b.Plus != KeyNone {
			state++
		}
		if _, ok := c.keysHeld[b.Minus]; ok && b.Minus != KeyNone {
			state--
		}
		c.setAxisState(a, state)
	}
}

func (c *Commands) joypadButtonPressed(button int) {
	b := ButtonBinding(button)
	if c.customizing {
		cmd, done := c.endCustomizing()
		if c.JoypadBinding(cmd) != b {
			c.SetJoypadBinding(cmd, b)
		}
		c.customized(cmd, done, true)
		return
	}
	if cmd, ok := c.joypad[b]; ok {
		c.commandPressed(cmd)
	}
}

func (c *Commands) joypadButtonReleased(button int) {
	b := ButtonBinding(button)
	if c.customizing {
		cmd, done := c.endCustomizing()
		c.commandReleased(c.joypad[b])
		c.customized(cmd, done, false)
		return
	}
	if cmd, ok := c.joypad[b]; ok {
		c.commandReleased(cmd)
	}
}

func (c *Commands) joypadAxisMoved(axis int, value float64) {
	value = max(-1, min(1, value))
	centered := math.Abs(value) < c.deadzone

	if c.customizing {
		cmd, done := c.endCustomizing()
		if centered {
			c.customized(cmd, done, false)
			return
		}
		b := AxisBinding(axis, sign(value))
		if c.JoypadBinding(cmd) != b {
			c.SetJoypadBinding(cmd, b)
		}
		c.customized(cmd, done, true)
		return
	}

	plus, hasPlus := c.joypad[AxisBinding(axis, 1)]
	minus, hasMinus := c.joypad[AxisBinding(axis, -1)]
	switch {
	case centered:
		value = 0
		if hasPlus {
			c.commandReleased(plus)
		}
		if hasMinus {
			c.commandReleased(minus)
		}
	case value > 0:
		if hasMinus {
			c.commandReleased(minus)
		}
		if hasPlus {
			c.commandPressed(plus)
		}
	default:
		if hasPlus {
			c.commandReleased(plus)
		}
		if hasMinus {
			c.commandPressed(minus)
		}
	}

	if a, ok := c.joypadAxes[axis]; ok {
		c.setAxisState(a, value)
	}
}

var hatCardinals = [...]int{HatRight, HatUp, HatLeft, HatDown}

func (c *Commands) joypadHatMoved(hat, direction int) {
	x, y := hatComponents(direction)

	if c.customizing {
		cmd, done := c.endCustomizing()
		wanted := x
		if wanted == HatCentered {
			wanted = y
		}
		if wanted == HatCentered {
			c.customized(cmd, done, false)
			return
		}
		b := HatBinding(hat, wanted)
		if c.JoypadBinding(cmd) != b {
			c.SetJoypadBinding(cmd, b)
		}
		c.customized(cmd, done, true)
		return
	}

	for _, dir := range hatCardinals {
		if dir == x || dir == y {
			continue
		}
		if cmd, ok := c.joypad[HatBinding(hat, dir)]; ok {
			c.commandReleased(cmd)
		}
	}
	for _, dir := range hatCardinals {
		if dir != x && dir != y {
			continue
		}
		if cmd, ok := c.joypad[HatBinding(hat, dir)]; ok {
			c.commandPressed(cmd)
		}
	}
}

func (c *Commands) commandPressed(cmd Command) {
	if cmd.IsNone() || c.IsCommandPressed(cmd) {
		return
	}
	c.pressed[cmd] = struct{}{}
	c.emit(ControlEvent{Kind: CommandPressed, Command: cmd})
}

func (c *Commands) commandReleased(cmd Command) {
	if !c.IsCommandPressed(cmd) {
		return
	}
	delete(c.pressed, cmd)
	c.emit(ControlEvent{Kind: CommandReleased, Command: cmd})
}

func (c *Commands) setAxisState(a Axis, state float64) {
	if c.axes[a] == state {
		return
	}
	c.axes[a] = state
	c.emit(ControlEvent{Kind: AxisChanged, Axis: a, State: state})
}

func (c *Commands) emit(ev ControlEvent) {
	ev.Emitter = c
	if c.listener == nil {
		return
	}
	c.listener.NotifyCommand(ev)
}

func sign(v float64) int {
	if v < 0 {
		return -1
	}
	return 1
}

func bindingOf[K comparable](m map[K]Command, cmd Command) (K, bool) {
	for k, bound := range m {
		if bound == cmd {
			return k, true
		}
	}
	var zero K
	return zero, false
}

// rebind binds input to cmd in m. The command previously owning input moves
// to the old input of cmd, or is left unbound when cmd had none.
func rebind[K comparable](m map[K]Command, cmd Command, input, none K) {
	if cmd.IsNone() {
		if input != none {
			delete(m, input)
		}
		return
	}

	prevCmd, taken := m[input]
	if taken && prevCmd == cmd {
		return
	}
	prevInput, hadInput := bindingOf(m, cmd)
	if hadInput {
		delete(m, prevInput)
	}
	if input == none {
		return
	}
	m[input] = cmd
	if taken && hadInput {
		m[prevInput] = prevCmd
	}
}
