package common

// CellSize is the side of a ground cell in pixels.
const CellSize = 8

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ClampF limits v to [lo, hi].
func ClampF(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// AlignUp rounds v up to the next multiple of CellSize.
func AlignUp(v int) int {
	return (v + CellSize - 1) &^ (CellSize - 1)
}
