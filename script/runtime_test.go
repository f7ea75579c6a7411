package script

import (
	"testing"

	"github.com/milk9111/questcore/command"
	"github.com/milk9111/questcore/common"
	"github.com/milk9111/questcore/ecs"
	"github.com/milk9111/questcore/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const questScript = `
on_command := func(engine, state, args) {
	if is_undefined(state.presses) {
		state.presses = 0
	}
	if args.action == "pressed" {
		state.presses = state.presses + 1
		state.last = args.command
		if args.command == "pause" {
			engine.customize("attack")
		}
	}
	state.action_down = engine.is_pressed("action")
}

on_switch := func(engine, state, args) {
	state[args.entity] = args.activated
	if args.activated {
		engine.set_binding("action", "z")
	}
}

on_customized := func(engine, state, args) {
	state.customized = args.command
	state.customized_ok = args.ok
	state.customized_key = args.key
}

on_error := func(engine, state, args) {
	state.error = args.message
}
`

func newRuntime(t *testing.T, src string) (*Runtime, *command.Commands) {
	t.Helper()
	rt, err := New("quest", []byte(src))
	require.NoError(t, err)
	c := command.NewCommands(rt)
	rt.SetCommands(c)
	return rt, c
}

func TestRuntimeHandlers(t *testing.T) {
	rt, _ := newRuntime(t, questScript)

	for _, h := range []string{"on_command", "on_switch", "on_customized", "on_error"} {
		assert.True(t, rt.Handles(h), h)
	}
	assert.False(t, rt.Handles("on_map_event"))
	assert.NoError(t, rt.Dispatch("on_map_event", nil))
}

func TestRuntimeReceivesCommands(t *testing.T) {
	rt, c := newRuntime(t, questScript)

	c.NotifyInput(command.PressKey(command.KeySpace))
	state := rt.State()
	assert.Equal(t, 1, state["presses"])
	assert.Equal(t, "action", state["last"])
	assert.Equal(t, true, state["action_down"])

	c.NotifyInput(command.ReleaseKey(command.KeySpace))
	state = rt.State()
	assert.Equal(t, 1, state["presses"])
	assert.Equal(t, false, state["action_down"])
}

func TestRuntimeCustomize(t *testing.T) {
	rt, c := newRuntime(t, questScript)

	c.SimulatePressed(command.Pause)
	require.True(t, c.IsCustomizing())
	got, err := c.CommandToCustomize()
	require.NoError(t, err)
	assert.Equal(t, command.Attack, got)

	c.NotifyInput(command.PressKey(command.Key("k")))
	assert.False(t, c.IsCustomizing())
	assert.Equal(t, command.Key("k"), c.KeyboardBinding(command.Attack))

	state := rt.State()
	assert.Equal(t, "attack", state["customized"])
	assert.Equal(t, true, state["customized_ok"])
	assert.Equal(t, "k", state["customized_key"])
}

func TestRuntimeSwitchEvents(t *testing.T) {
	rt, c := newRuntime(t, questScript)

	sw := entity.NewSwitch("door_switch", entity.SwitchWalkable, 0, common.NewRect(0, 0, 16, 16))
	require.NoError(t, rt.DispatchMapEvent(ecs.Event{Type: "switch_activated", Data: sw}))
	assert.Equal(t, true, rt.State()["door_switch"])
	assert.Equal(t, command.Key("z"), c.KeyboardBinding(command.Action))

	require.NoError(t, rt.DispatchMapEvent(ecs.Event{Type: "switch_inactivated", Data: sw}))
	assert.Equal(t, false, rt.State()["door_switch"])

	// No on_map_event handler: other events are dropped.
	assert.NoError(t, rt.DispatchMapEvent(ecs.Event{Type: "crystal_state_changed", Data: true}))
}

func TestRuntimeErrors(t *testing.T) {
	_, err := New("broken", []byte(`on_command := func(engine, state, args) {`))
	assert.Error(t, err)

	rt, c := newRuntime(t, `
on_switch := func(engine, state, args) {
	state.result = 1 / args.zero
}

on_error := func(engine, state, args) {
	state.error = args.message
}
`)
	err = rt.Dispatch("on_switch", map[string]any{"zero": 0})
	assert.Error(t, err)

	c.SetErrorHandler(rt.ReportError)
	require.Error(t, c.ApplyBindings(command.Bindings{"joypad_action": "stick 4"}))
	assert.NotEmpty(t, rt.State()["error"])
}

func TestDispatchWithoutCompile(t *testing.T) {
	var rt *Runtime
	assert.ErrorIs(t, rt.Dispatch("on_command", nil), ErrNotCompiled)
}
