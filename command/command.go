// Package command turns low-level input into semantic game commands.
//
// A Commands value owns one binding table and the pressed state built from it.
// The Dispatcher fans raw input out to every live Commands value without
// keeping any of them alive.
package command

import (
	"cmp"
	"errors"
)

var (
	ErrUnknownCommand = errors.New("command: unknown command")
	ErrUnknownAxis    = errors.New("command: unknown axis")
	ErrInvalidBinding = errors.New("command: invalid binding")
	ErrNotCustomizing = errors.New("command: not customizing")
)

type builtin uint8

const (
	idNone builtin = iota
	idAction
	idAttack
	idItem1
	idItem2
	idPause
	idRight
	idUp
	idLeft
	idDown

	numBuiltins
)

var builtinNames = [numBuiltins]string{
	idNone:   "none",
	idAction: "action",
	idAttack: "attack",
	idItem1:  "item_1",
	idItem2:  "item_2",
	idPause:  "pause",
	idRight:  "right",
	idUp:     "up",
	idLeft:   "left",
	idDown:   "down",
}

// Command is either one of the built-in game commands or a quest-defined
// command identified by name. The zero value is None.
type Command struct {
	id     builtin
	custom string
}

var (
	None   = Command{}
	Action = Command{id: idAction}
	Attack = Command{id: idAttack}
	Item1  = Command{id: idItem1}
	Item2  = Command{id: idItem2}
	Pause  = Command{id: idPause}
	Right  = Command{id: idRight}
	Up     = Command{id: idUp}
	Left   = Command{id: idLeft}
	Down   = Command{id: idDown}
)

// Builtins lists the built-in commands in declaration order, None excluded.
var Builtins = []Command{Action, Attack, Item1, Item2, Pause, Right, Up, Left, Down}

// Custom returns the quest-defined command called name. Names of built-in
// commands resolve to the built-in.
func Custom(name string) Command {
	if c, ok := Lookup(name); ok {
		return c
	}
	return Command{custom: name}
}

// Lookup resolves a built-in command name.
func Lookup(name string) (Command, bool) {
	for id, n := range builtinNames {
		if n == name {
			return Command{id: builtin(id)}, true
		}
	}
	return None, false
}

// ParseCommand resolves name to a built-in command or to one of the declared custom
// commands. Unknown names return None and ErrUnknownCommand.
func ParseCommand(name string, declared ...string) (Command, error) {
	if c, ok := Lookup(name); ok {
		return c, nil
	}
	for _, d := range declared {
		if d == name {
			return Command{custom: name}, nil
		}
	}
	return None, ErrUnknownCommand
}

func (c Command) String() string {
	if c.custom != "" {
		return c.custom
	}
	if c.id >= numBuiltins {
		return "none"
	}
	return builtinNames[c.id]
}

func (c Command) IsNone() bool   { return c == None }
func (c Command) IsCustom() bool { return c.custom != "" }

// Compare orders built-in commands first by declaration, then custom commands
// by name.
func (c Command) Compare(other Command) int {
	if c.IsCustom() != other.IsCustom() {
		if c.IsCustom() {
			return 1
		}
		return -1
	}
	if c.IsCustom() {
		return cmp.Compare(c.custom, other.custom)
	}
	return cmp.Compare(c.id, other.id)
}

func (c Command) Less(other Command) bool {
	return c.Compare(other) < 0
}

// MarshalText implements encoding.TextMarshaler.
func (c Command) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText accepts built-in names and treats anything else as a custom
// command.
func (c *Command) UnmarshalText(b []byte) error {
	*c = Custom(string(b))
	return nil
}
