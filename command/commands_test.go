package command

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	events []ControlEvent
}

func (r *recorder) NotifyCommand(ev ControlEvent) { r.events = append(r.events, ev) }

func (r *recorder) count(kind ControlKind, cmd Command) int {
	n := 0
	for _, ev := range r.events {
		if ev.Kind == kind && ev.Command == cmd {
			n++
		}
	}
	return n
}

func TestCommandOrderingAndNames(t *testing.T) {
	assert.True(t, Action.Less(Attack))
	assert.True(t, Down.Less(Custom("jump")))
	assert.True(t, Custom("dash").Less(Custom("jump")))
	assert.Equal(t, 0, Custom("jump").Compare(Custom("jump")))
	assert.Equal(t, Right, Custom("right"))
	assert.Equal(t, "item_1", Item1.String())
	assert.Equal(t, "none", None.String())

	_, err := ParseCommand("jump")
	assert.ErrorIs(t, err, ErrUnknownCommand)
	c, err := ParseCommand("jump", "dash", "jump")
	require.NoError(t, err)
	assert.True(t, c.IsCustom())

	a, err := ParseAxis("x")
	require.NoError(t, err)
	assert.Equal(t, AxisX, a)
	_, err = ParseAxis("z")
	assert.ErrorIs(t, err, ErrUnknownAxis)
}

func TestWantedDirection8(t *testing.T) {
	expected := [16]int{-1, 0, 2, 1, 4, -1, 3, -1, 6, 7, -1, -1, 5, -1, -1, -1}
	cmds := []Command{Right, Up, Left, Down}

	for mask := range 16 {
		c := NewCommands(nil)
		for bit, cmd := range cmds {
			if mask&(1<<bit) != 0 {
				c.SimulatePressed(cmd)
			}
		}
		assert.Equal(t, expected[mask], c.WantedDirection8(), "mask %04b", mask)
	}
}

func TestKeyboardBindingSwap(t *testing.T) {
	c := NewCommands(nil)

	c.SetKeyboardBinding(Action, "k")
	c.SetKeyboardBinding(Attack, "k")
	assert.Equal(t, Key("k"), c.KeyboardBinding(Attack))
	assert.Equal(t, Key("c"), c.KeyboardBinding(Action), "action takes the old key of attack")
	assert.Equal(t, Attack, c.CommandFromKey("k"))
	assert.Equal(t, Action, c.CommandFromKey("c"))

	c.SetKeyboardBinding(Custom("jump"), "k")
	assert.Equal(t, KeyNone, c.KeyboardBinding(Attack), "attack had no other key to fall back to")
	assert.Equal(t, Key("k"), c.KeyboardBinding(Custom("jump")))

	c.SetKeyboardBinding(Custom("jump"), "k")
	assert.Equal(t, Key("k"), c.KeyboardBinding(Custom("jump")))

	c.SetKeyboardBinding(None, "k")
	assert.Equal(t, None, c.CommandFromKey("k"))
	assert.Equal(t, KeyNone, c.KeyboardBinding(Custom("jump")))

	seen := map[Command]Key{}
	for key, cmd := range c.keyboard {
		if prev, dup := seen[cmd]; dup {
			t.Fatalf("%s bound to both %s and %s", cmd, prev, key)
		}
		seen[cmd] = key
	}
}

func TestJoypadBindingSwap(t *testing.T) {
	c := NewCommands(nil)
	c.SetJoypadBinding(Pause, ButtonBinding(0))
	assert.Equal(t, ButtonBinding(0), c.JoypadBinding(Pause))
	assert.Equal(t, ButtonBinding(4), c.JoypadBinding(Action))

	c.SetJoypadBinding(Pause, JoypadBinding{})
	assert.True(t, c.JoypadBinding(Pause).IsNone())
	assert.Equal(t, None, c.CommandFromJoypad(ButtonBinding(0)))
}

func TestKeyPressRelease(t *testing.T) {
	r := &recorder{}
	c := NewCommands(r)
	c.SetKeyboardBinding(Right, "d")

	c.NotifyInput(PressKey("d"))
	assert.True(t, c.IsCommandPressed(Right))
	assert.Equal(t, 1, r.count(CommandPressed, Right))

	c.NotifyInput(PressKey("d"))
	assert.Equal(t, 1, r.count(CommandPressed, Right), "held key repeats are not new presses")

	c.NotifyInput(ReleaseKey("d"))
	assert.False(t, c.IsCommandPressed(Right))
	assert.Equal(t, 1, r.count(CommandReleased, Right))

	for _, ev := range r.events {
		assert.Same(t, c, ev.Emitter)
	}
}

func TestCustomizationConsumesOneEvent(t *testing.T) {
	events := []InputEvent{
		PressKey("q"),
		ReleaseKey("q"),
		PressButton(7),
		ReleaseButton(7),
		AxisMoved(2, 0.8),
		AxisMoved(2, 0),
		HatMoved(0, HatUp),
		HatMoved(0, HatCentered),
	}
	for _, ev := range events {
		t.Run(ev.Kind.String(), func(t *testing.T) {
			r := &recorder{}
			c := NewCommands(r)
			calls := 0
			c.Customize(Attack, func(cmd Command, ok bool) {
				calls++
				assert.Equal(t, Attack, cmd)
			})
			require.True(t, c.IsCustomizing())

			c.NotifyInput(ev)
			assert.False(t, c.IsCustomizing())
			assert.Equal(t, 1, calls)
			assert.Empty(t, r.events, "intercepted input is not dispatched")

			_, err := c.CommandToCustomize()
			assert.ErrorIs(t, err, ErrNotCustomizing)
		})
	}
}

func TestCustomizeKey(t *testing.T) {
	r := &recorder{}
	c := NewCommands(r)

	var gotOK bool
	c.Customize(Attack, func(_ Command, ok bool) { gotOK = ok })
	cmd, err := c.CommandToCustomize()
	require.NoError(t, err)
	assert.Equal(t, Attack, cmd)

	c.NotifyInput(PressKey(KeySpace))
	assert.True(t, gotOK)
	assert.Equal(t, Key(KeySpace), c.KeyboardBinding(Attack))
	assert.Equal(t, Key("c"), c.KeyboardBinding(Action), "dislodged action takes over c")
	assert.True(t, c.IsCommandPressed(Attack))

	c.NotifyInput(ReleaseKey(KeySpace))
	assert.False(t, c.IsCommandPressed(Attack))
	assert.Equal(t, 1, r.count(CommandReleased, Attack))
}

func TestReleaseWhileCustomizingEndsPress(t *testing.T) {
	r := &recorder{}
	c := NewCommands(r)
	c.SetJoypadBinding(Attack, ButtonBinding(3))

	c.NotifyInput(PressKey(KeySpace))
	c.NotifyInput(PressButton(3))
	require.True(t, c.IsCommandPressed(Action))
	require.True(t, c.IsCommandPressed(Attack))

	oks := []bool{}
	done := func(_ Command, ok bool) { oks = append(oks, ok) }
	c.Customize(Item1, done)
	c.NotifyInput(ReleaseKey(KeySpace))
	c.Customize(Item1, done)
	c.NotifyInput(ReleaseButton(3))

	assert.Equal(t, []bool{false, false}, oks)
	assert.False(t, c.IsCommandPressed(Action))
	assert.False(t, c.IsCommandPressed(Attack))
	assert.Equal(t, 1, r.count(CommandReleased, Action))
	assert.Equal(t, 1, r.count(CommandReleased, Attack))
	assert.Empty(t, c.PressedCommands())
}

func TestCustomizeSameBindingIsNoop(t *testing.T) {
	c := NewCommands(nil)
	before := c.Bindings()
	c.Customize(Attack, nil)
	c.NotifyInput(PressKey("c"))
	assert.False(t, c.IsCustomizing())
	assert.Equal(t, before, c.Bindings())
}

func TestCustomizeEscapeBecomesBindingUnlessCancelKey(t *testing.T) {
	c := NewCommands(nil)
	c.Customize(Item1, nil)
	c.NotifyInput(PressKey(KeyEscape))
	assert.Equal(t, Key(KeyEscape), c.KeyboardBinding(Item1))

	c.SetCancelKey(KeyEscape)
	ok := true
	c.Customize(Item2, func(_ Command, done bool) { ok = done })
	c.NotifyInput(PressKey(KeyEscape))
	assert.False(t, ok)
	assert.False(t, c.IsCustomizing())
	assert.Equal(t, Key("v"), c.KeyboardBinding(Item2))
}

func TestCustomizeJoypadInputs(t *testing.T) {
	c := NewCommands(nil)

	c.Customize(Action, nil)
	c.NotifyInput(AxisMoved(3, -0.5))
	assert.Equal(t, "axis 3 -", c.JoypadBinding(Action).String())

	c.Customize(Attack, nil)
	c.NotifyInput(HatMoved(0, HatDownLeft))
	assert.Equal(t, "hat 0 left", c.JoypadBinding(Attack).String())

	c.Customize(Pause, nil)
	c.NotifyInput(HatMoved(0, HatDown))
	assert.Equal(t, "hat 0 down", c.JoypadBinding(Pause).String())
}

func TestJoypadAxisMutualExclusion(t *testing.T) {
	r := &recorder{}
	c := NewCommands(r)

	c.NotifyInput(AxisMoved(0, 0.9))
	assert.True(t, c.IsCommandPressed(Right))
	assert.InDelta(t, 0.9, c.CommandAxisState(AxisX), 1e-9)

	c.NotifyInput(AxisMoved(0, -0.7))
	assert.False(t, c.IsCommandPressed(Right))
	assert.True(t, c.IsCommandPressed(Left))
	assert.Equal(t, 1, r.count(CommandReleased, Right))

	c.NotifyInput(AxisMoved(0, 1e-6))
	assert.False(t, c.IsCommandPressed(Left))
	assert.False(t, c.IsCommandPressed(Right))
	assert.Zero(t, c.CommandAxisState(AxisX))

	c.SetJoypadDeadzone(0.25)
	c.NotifyInput(AxisMoved(1, 0.2))
	assert.False(t, c.IsCommandPressed(Down))
}

func TestJoypadHat(t *testing.T) {
	c := NewCommands(nil)
	c.SetJoypadBinding(Right, HatBinding(0, HatRight))
	c.SetJoypadBinding(Up, HatBinding(0, HatUp))
	c.SetJoypadBinding(Left, HatBinding(0, HatLeft))
	c.SetJoypadBinding(Down, HatBinding(0, HatDown))

	c.NotifyInput(HatMoved(0, HatUpRight))
	assert.Equal(t, 1, c.WantedDirection8())

	c.NotifyInput(HatMoved(0, HatUpLeft))
	assert.False(t, c.IsCommandPressed(Right))
	assert.Equal(t, 3, c.WantedDirection8())

	c.NotifyInput(HatMoved(0, HatDown))
	assert.Equal(t, 6, c.WantedDirection8())

	c.NotifyInput(HatMoved(0, HatCentered))
	assert.Equal(t, -1, c.WantedDirection8())
}

func TestKeyboardAxis(t *testing.T) {
	r := &recorder{}
	c := NewCommands(r)

	c.NotifyInput(PressKey(KeyLeft))
	assert.Equal(t, -1.0, c.CommandAxisState(AxisX))
	c.NotifyInput(PressKey(KeyRight))
	assert.Equal(t, 0.0, c.CommandAxisState(AxisX))
	c.NotifyInput(ReleaseKey(KeyLeft))
	assert.Equal(t, 1.0, c.CommandAxisState(AxisX))

	var axisEvents int
	for _, ev := range r.events {
		if ev.Kind == AxisChanged {
			axisEvents++
		}
	}
	assert.Equal(t, 3, axisEvents)
}

func TestJoypadBindingGrammar(t *testing.T) {
	tests := []struct {
		in   string
		want JoypadBinding
		err  bool
	}{
		{in: "button 3", want: ButtonBinding(3)},
		{in: "axis 1 +", want: AxisBinding(1, 1)},
		{in: "axis 0 -", want: AxisBinding(0, -1)},
		{in: "hat 0 left", want: HatBinding(0, HatLeft)},
		{in: "", want: JoypadBinding{}},
		{in: "axis 1", err: true},
		{in: "hat 0 up_left", err: true},
		{in: "button -2", err: true},
		{in: "trigger 1", err: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseJoypadBinding(tt.in)
			if tt.err {
				assert.ErrorIs(t, err, ErrInvalidBinding)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.in, got.String())
		})
	}
}

func TestBindingsPersistence(t *testing.T) {
	c := NewCommands(nil)
	c.SetKeyboardBinding(Custom("jump"), "j")
	c.SetJoypadBinding(Attack, HatBinding(0, HatUp))
	saved := c.Bindings()

	assert.Equal(t, "space", saved["keyboard_action"])
	assert.Equal(t, "hat 0 up", saved["joypad_attack"])
	assert.Equal(t, "j", saved["keyboard_jump"])
	assert.Equal(t, "left,right", saved["keyboard_axis_x"])
	assert.Equal(t, "axis 1", saved["joypad_axis_y"])

	other := NewCommands(nil)
	require.NoError(t, other.ApplyBindings(saved))
	assert.Equal(t, saved, other.Bindings())
}

func TestApplyBindingsFallsBack(t *testing.T) {
	c := NewCommands(nil)
	var reported error
	c.SetErrorHandler(func(err error) { reported = err })

	err := c.ApplyBindings(Bindings{
		"keyboard_attack": "not a key",
		"joypad_pause":    "button x",
		"mouse_action":    "left",
		"keyboard_item_1": "z",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidBinding))
	assert.True(t, errors.Is(err, ErrUnknownCommand))
	assert.Equal(t, err, reported)

	assert.Equal(t, KeyNone, c.KeyboardBinding(Attack))
	assert.True(t, c.JoypadBinding(Pause).IsNone())
	assert.Equal(t, Key("z"), c.KeyboardBinding(Item1))
}

func TestClosedCommandsIgnoreInput(t *testing.T) {
	c := NewCommands(nil)
	c.Close()
	c.NotifyInput(PressKey(KeySpace))
	assert.False(t, c.IsCommandPressed(Action))
	assert.True(t, c.IsClosed())
}
