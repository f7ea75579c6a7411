package command

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Bindings is the persisted form of a binding table, keyed by savegame
// variable name ("keyboard_action", "joypad_right", "keyboard_axis_x").
type Bindings map[string]string

// BindingSource is implemented by games that persist customized bindings.
type BindingSource interface {
	SavedBindings() Bindings
}

// ErrorReporter is implemented by games that want binding-table errors,
// including those raised while saved bindings are applied.
type ErrorReporter interface {
	ReportBindingError(err error)
}

const (
	keyboardPrefix = "keyboard_"
	joypadPrefix   = "joypad_"
	axisInfix      = "axis_"
)

var keyboardVariables = map[Command]string{
	Action: "keyboard_action",
	Attack: "keyboard_attack",
	Item1:  "keyboard_item_1",
	Item2:  "keyboard_item_2",
	Pause:  "keyboard_pause",
	Right:  "keyboard_right",
	Up:     "keyboard_up",
	Left:   "keyboard_left",
	Down:   "keyboard_down",
}

var joypadVariables = map[Command]string{
	Action: "joypad_action",
	Attack: "joypad_attack",
	Item1:  "joypad_item_1",
	Item2:  "joypad_item_2",
	Pause:  "joypad_pause",
	Right:  "joypad_right",
	Up:     "joypad_up",
	Left:   "joypad_left",
	Down:   "joypad_down",
}

// KeyboardVariable returns the savegame variable holding the key of cmd.
func KeyboardVariable(cmd Command) string {
	if v, ok := keyboardVariables[cmd]; ok {
		return v
	}
	return keyboardPrefix + cmd.String()
}

// JoypadVariable returns the savegame variable holding the joypad binding of
// cmd.
func JoypadVariable(cmd Command) string {
	if v, ok := joypadVariables[cmd]; ok {
		return v
	}
	return joypadPrefix + cmd.String()
}

func KeyboardAxisVariable(a Axis) string { return keyboardPrefix + axisInfix + a.String() }
func JoypadAxisVariable(a Axis) string   { return joypadPrefix + axisInfix + a.String() }

// FormatKeyboardAxis renders a keyboard axis binding as "minus,plus".
func FormatKeyboardAxis(b KeyboardAxisBinding) string {
	if b.IsNone() {
		return ""
	}
	return b.Minus.String() + "," + b.Plus.String()
}

// ParseKeyboardAxis parses the "minus,plus" key pair of an axis.
func ParseKeyboardAxis(s string) (KeyboardAxisBinding, error) {
	if strings.TrimSpace(s) == "" {
		return KeyboardAxisBinding{}, nil
	}
	minus, plus, ok := strings.Cut(s, ",")
	if !ok {
		return KeyboardAxisBinding{}, fmt.Errorf("%w: keyboard axis %q", ErrInvalidBinding, s)
	}
	var b KeyboardAxisBinding
	for _, part := range []struct {
		name string
		dst  *Key
	}{{minus, &b.Minus}, {plus, &b.Plus}} {
		if strings.TrimSpace(part.name) == "" {
			continue
		}
		k, ok := ParseKey(part.name)
		if !ok {
			return KeyboardAxisBinding{}, fmt.Errorf("%w: keyboard axis %q: unknown key %q", ErrInvalidBinding, s, part.name)
		}
		*part.dst = k
	}
	return b, nil
}

// ParseJoypadAxis parses the "axis N" form naming a physical joypad axis.
func ParseJoypadAxis(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return -1, nil
	}
	fields := strings.Fields(s)
	if len(fields) != 2 || fields[0] != "axis" {
		return -1, fmt.Errorf("%w: joypad axis %q", ErrInvalidBinding, s)
	}
	n, err := strconv.Atoi(fields[1])
	if err != nil || n < 0 {
		return -1, fmt.Errorf("%w: joypad axis %q", ErrInvalidBinding, s)
	}
	return n, nil
}

// Bindings exports every binding under its savegame variable name. Built-in
// commands are always present, with an empty value when unbound.
func (c *Commands) Bindings() Bindings {
	out := make(Bindings)
	for _, cmd := range Builtins {
		out[KeyboardVariable(cmd)] = c.KeyboardBinding(cmd).String()
		out[JoypadVariable(cmd)] = c.JoypadBinding(cmd).String()
	}
	for key, cmd := range c.keyboard {
		if cmd.IsCustom() {
			out[KeyboardVariable(cmd)] = key.String()
		}
	}
	for b, cmd := range c.joypad {
		if cmd.IsCustom() {
			out[JoypadVariable(cmd)] = b.String()
		}
	}
	for _, a := range []Axis{AxisX, AxisY} {
		out[KeyboardAxisVariable(a)] = FormatKeyboardAxis(c.KeyboardAxisBinding(a))
		out[JoypadAxisVariable(a)] = ""
	}
	for a, b := range c.keyboardAxes {
		out[KeyboardAxisVariable(a)] = FormatKeyboardAxis(b)
	}
	for axis, a := range c.joypadAxes {
		out[JoypadAxisVariable(a)] = "axis " + strconv.Itoa(axis)
	}
	return out
}

// ApplyBindings loads persisted bindings in variable name order. Entries that
// fail to parse leave the binding absent; their errors are joined, logged and
// reported to the error handler. Unknown variable names are errors too.
func (c *Commands) ApplyBindings(b Bindings) error {
	names := make([]string, 0, len(b))
	for name := range b {
		names = append(names, name)
	}
	slices.Sort(names)

	var errs []error
	for _, name := range names {
		if err := c.applyBinding(name, b[name]); err != nil {
			errs = append(errs, fmt.Errorf("command: apply %s: %w", name, err))
		}
	}
	err := errors.Join(errs...)
	c.reportError(err)
	return err
}

func (c *Commands) applyBinding(name, value string) error {
	var device string
	var rest string
	switch {
	case strings.HasPrefix(name, keyboardPrefix):
		device, rest = "keyboard", strings.TrimPrefix(name, keyboardPrefix)
	case strings.HasPrefix(name, joypadPrefix):
		device, rest = "joypad", strings.TrimPrefix(name, joypadPrefix)
	default:
		return fmt.Errorf("%w: variable %q", ErrUnknownCommand, name)
	}

	if axisName, ok := strings.CutPrefix(rest, axisInfix); ok {
		a := CustomAxis(axisName)
		if a.IsNone() {
			return ErrUnknownAxis
		}
		if device == "keyboard" {
			kb, err := ParseKeyboardAxis(value)
			if err != nil {
				c.SetKeyboardAxisBinding(a, KeyboardAxisBinding{})
				return err
			}
			c.SetKeyboardAxisBinding(a, kb)
			return nil
		}
		axis, err := ParseJoypadAxis(value)
		c.SetJoypadAxisBinding(a, axis)
		return err
	}

	cmd := Custom(rest)
	if cmd.IsNone() {
		return ErrUnknownCommand
	}
	if device == "keyboard" {
		if strings.TrimSpace(value) == "" {
			c.SetKeyboardBinding(cmd, KeyNone)
			return nil
		}
		key, ok := ParseKey(value)
		if !ok {
			c.SetKeyboardBinding(cmd, KeyNone)
			return fmt.Errorf("%w: unknown key %q", ErrInvalidBinding, value)
		}
		c.SetKeyboardBinding(cmd, key)
		return nil
	}
	jb, err := ParseJoypadBinding(value)
	c.SetJoypadBinding(cmd, jb)
	return err
}
