package command

// InputKind discriminates low-level input events.
type InputKind uint8

const (
	KeyPressed InputKind = iota + 1
	KeyReleased
	JoypadButtonPressed
	JoypadButtonReleased
	JoypadAxisMoved
	JoypadHatMoved
)

func (k InputKind) String() string {
	switch k {
	case KeyPressed:
		return "key_pressed"
	case KeyReleased:
		return "key_released"
	case JoypadButtonPressed:
		return "joypad_button_pressed"
	case JoypadButtonReleased:
		return "joypad_button_released"
	case JoypadAxisMoved:
		return "joypad_axis_moved"
	case JoypadHatMoved:
		return "joypad_hat_moved"
	}
	return "unknown"
}

// InputEvent is one raw event from the windowing backend.
type InputEvent struct {
	Kind InputKind
	Key  Key
	// Index is the joypad button, axis or hat number.
	Index int
	// Value is the axis position in [-1, 1].
	Value float64
	// Direction is the hat position, HatCentered or 0..7.
	Direction int
}

func PressKey(k Key) InputEvent { return InputEvent{Kind: KeyPressed, Key: k} }
func ReleaseKey(k Key) InputEvent { return InputEvent{Kind: KeyReleased, Key: k} }
func PressButton(button int) InputEvent { return InputEvent{Kind: JoypadButtonPressed, Index: button} }
func ReleaseButton(button int) InputEvent { return InputEvent{Kind: JoypadButtonReleased, Index: button} }

func AxisMoved(axis int, value float64) InputEvent {
	return InputEvent{Kind: JoypadAxisMoved, Index: axis, Value: value}
}

func HatMoved(hat, direction int) InputEvent {
	return InputEvent{Kind: JoypadHatMoved, Index: hat, Direction: direction}
}

// ControlKind discriminates high-level control events.
type ControlKind uint8

const (
	CommandPressed ControlKind = iota + 1
	CommandReleased
	AxisChanged
)

func (k ControlKind) String() string {
	switch k {
	case CommandPressed:
		return "pressed"
	case CommandReleased:
		return "released"
	case AxisChanged:
		return "axis_moved"
	}
	return "unknown"
}

// ControlEvent is a semantic press, release or axis move. Emitter identifies
// the Commands value that produced it so listeners can filter by origin.
type ControlEvent struct {
	Kind    ControlKind
	Command Command
	Axis    Axis
	State   float64
	Emitter *Commands
}

// Listener receives the control events of a Commands value.
type Listener interface {
	NotifyCommand(ev ControlEvent)
}

// ListenerFunc adapts a function to Listener.
type ListenerFunc func(ev ControlEvent)

func (f ListenerFunc) NotifyCommand(ev ControlEvent) { f(ev) }
