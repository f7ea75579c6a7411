package command

import (
	"fmt"
	"strconv"
	"strings"
)

// JoypadControl is the physical part of a joypad a binding refers to.
type JoypadControl uint8

const (
	JoypadNone JoypadControl = iota
	JoypadButton
	JoypadAxis
	JoypadHat
)

// Hat directions, counter-clockwise from right. Odd values are diagonals.
const (
	HatCentered  = -1
	HatRight     = 0
	HatUpRight   = 1
	HatUp        = 2
	HatUpLeft    = 3
	HatLeft      = 4
	HatDownLeft  = 5
	HatDown      = 6
	HatDownRight = 7
)

var hatDirectionNames = map[int]string{
	HatRight: "right",
	HatUp:    "up",
	HatLeft:  "left",
	HatDown:  "down",
}

// JoypadBinding designates one bindable joypad input: a button, one half of an
// axis, or one cardinal direction of a hat. The zero value binds nothing.
//
// Its text form is the persisted grammar: "button N", "axis N +", "axis N -"
// and "hat N right|up|left|down".
type JoypadBinding struct {
	Control JoypadControl
	Index   int
	// Direction is +1/-1 for axes and a cardinal Hat* value for hats.
	Direction int
}

func ButtonBinding(button int) JoypadBinding {
	return JoypadBinding{Control: JoypadButton, Index: button}
}

func AxisBinding(axis, sign int) JoypadBinding {
	if sign >= 0 {
		sign = 1
	} else {
		sign = -1
	}
	return JoypadBinding{Control: JoypadAxis, Index: axis, Direction: sign}
}

func HatBinding(hat, direction int) JoypadBinding {
	return JoypadBinding{Control: JoypadHat, Index: hat, Direction: direction}
}

func (b JoypadBinding) IsNone() bool { return b.Control == JoypadNone }

func (b JoypadBinding) String() string {
	switch b.Control {
	case JoypadButton:
		return "button " + strconv.Itoa(b.Index)
	case JoypadAxis:
		sign := "+"
		if b.Direction < 0 {
			sign = "-"
		}
		return "axis " + strconv.Itoa(b.Index) + " " + sign
	case JoypadHat:
		return "hat " + strconv.Itoa(b.Index) + " " + hatDirectionNames[b.Direction]
	}
	return ""
}

// ParseJoypadBinding parses the persisted joypad binding grammar. The empty
// string parses to the zero binding.
func ParseJoypadBinding(s string) (JoypadBinding, error) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return JoypadBinding{}, nil
	}
	if len(fields) < 2 {
		return JoypadBinding{}, fmt.Errorf("%w: joypad %q", ErrInvalidBinding, s)
	}
	index, err := strconv.Atoi(fields[1])
	if err != nil || index < 0 {
		return JoypadBinding{}, fmt.Errorf("%w: joypad %q: bad index", ErrInvalidBinding, s)
	}

	switch fields[0] {
	case "button":
		if len(fields) != 2 {
			break
		}
		return ButtonBinding(index), nil
	case "axis":
		if len(fields) != 3 {
			break
		}
		switch fields[2] {
		case "+":
			return AxisBinding(index, 1), nil
		case "-":
			return AxisBinding(index, -1), nil
		}
	case "hat":
		if len(fields) != 3 {
			break
		}
		for dir, name := range hatDirectionNames {
			if name == fields[2] {
				return HatBinding(index, dir), nil
			}
		}
	}
	return JoypadBinding{}, fmt.Errorf("%w: joypad %q", ErrInvalidBinding, s)
}

func (b JoypadBinding) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}

func (b *JoypadBinding) UnmarshalText(text []byte) error {
	parsed, err := ParseJoypadBinding(string(text))
	if err != nil {
		return err
	}
	*b = parsed
	return nil
}

// hatComponents splits a hat position into its horizontal and vertical
// cardinal directions. Absent components are HatCentered.
func hatComponents(direction int) (x, y int) {
	x, y = HatCentered, HatCentered
	switch direction {
	case HatRight:
		x = HatRight
	case HatUpRight:
		x, y = HatRight, HatUp
	case HatUp:
		y = HatUp
	case HatUpLeft:
		x, y = HatLeft, HatUp
	case HatLeft:
		x = HatLeft
	case HatDownLeft:
		x, y = HatLeft, HatDown
	case HatDown:
		y = HatDown
	case HatDownRight:
		x, y = HatRight, HatDown
	}
	return x, y
}
