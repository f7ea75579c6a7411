package command

import "cmp"

type axisID uint8

const (
	axisNone axisID = iota
	axisX
	axisY

	numAxes
)

var axisNames = [numAxes]string{
	axisNone: "none",
	axisX:    "x",
	axisY:    "y",
}

// Axis is a continuous control, built-in (X, Y) or quest-defined by name.
type Axis struct {
	id     axisID
	custom string
}

var (
	AxisNone = Axis{}
	AxisX    = Axis{id: axisX}
	AxisY    = Axis{id: axisY}
)

// CustomAxis returns the quest-defined axis called name.
func CustomAxis(name string) Axis {
	if a, ok := LookupAxis(name); ok {
		return a
	}
	return Axis{custom: name}
}

// LookupAxis resolves a built-in axis name.
func LookupAxis(name string) (Axis, bool) {
	for id, n := range axisNames {
		if n == name {
			return Axis{id: axisID(id)}, true
		}
	}
	return AxisNone, false
}

// ParseAxis resolves a built-in or declared custom axis name.
func ParseAxis(name string, declared ...string) (Axis, error) {
	if a, ok := LookupAxis(name); ok {
		return a, nil
	}
	for _, d := range declared {
		if d == name {
			return Axis{custom: name}, nil
		}
	}
	return AxisNone, ErrUnknownAxis
}

func (a Axis) String() string {
	if a.custom != "" {
		return a.custom
	}
	if a.id >= numAxes {
		return "none"
	}
	return axisNames[a.id]
}

func (a Axis) IsNone() bool   { return a == AxisNone }
func (a Axis) IsCustom() bool { return a.custom != "" }

func (a Axis) Compare(other Axis) int {
	if a.IsCustom() != other.IsCustom() {
		if a.IsCustom() {
			return 1
		}
		return -1
	}
	if a.IsCustom() {
		return cmp.Compare(a.custom, other.custom)
	}
	return cmp.Compare(a.id, other.id)
}

func (a Axis) Less(other Axis) bool {
	return a.Compare(other) < 0
}
