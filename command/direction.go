package command

const (
	maskRight = 1 << iota
	maskUp
	maskLeft
	maskDown
)

// directions8 maps a pressed-directions mask to a direction in 0..7
// (counter-clockwise from right) or -1 when the combination means stop.
var directions8 = [16]int{
	-1, // none
	0,  // right
	2,  // up
	1,  // right + up
	4,  // left
	-1, // left + right
	3,  // left + up
	-1, // left + right + up
	6,  // down
	7,  // down + right
	-1, // down + up
	-1, // down + right + up
	5,  // down + left
	-1, // down + left + right
	-1, // down + left + up
	-1, // down + left + right + up
}

// WantedDirection8 combines the four directional commands into an 8-way
// direction, -1 meaning no movement.
func (c *Commands) WantedDirection8() int {
	mask := 0
	if c.IsCommandPressed(Right) {
		mask |= maskRight
	}
	if c.IsCommandPressed(Up) {
		mask |= maskUp
	}
	if c.IsCommandPressed(Left) {
		mask |= maskLeft
	}
	if c.IsCommandPressed(Down) {
		mask |= maskDown
	}
	return directions8[mask]
}
