package ground

import "github.com/milk9111/questcore/common"

// InSquare resolves the ground an entity of footprint box imposes on pixel p.
//
// Non-diagonal grounds apply to the whole footprint. A diagonal ground spans the
// footprint's own diagonal: cells on the diagonal keep the diagonal ground, cells
// on the wall side become Wall and the others become the open ground. Footprints
// that are not square, 8px-aligned and a multiple of 8 fall back to Traversable.
func InSquare(g Ground, box common.Rect, p common.Point) Ground {
	if !g.IsDiagonal() {
		return g
	}
	const cell = common.CellSize
	if box.Width != box.Height || box.Width%cell != 0 || box.X%cell != 0 || box.Y%cell != 0 {
		return Traversable
	}

	n := box.Width / cell
	if n == 1 {
		return g
	}

	sx := (p.X - box.X) / cell
	sy := (p.Y - box.Y) / cell

	var onDiagonal, onWall bool
	switch g.corner() {
	case WallTopRight:
		onDiagonal = sx == sy
		onWall = sx > sy
	case WallTopLeft:
		onDiagonal = sx+sy == n-1
		onWall = sx+sy < n-1
	case WallBottomLeft:
		onDiagonal = sx == sy
		onWall = sx < sy
	case WallBottomRight:
		onDiagonal = sx+sy == n-1
		onWall = sx+sy > n-1
	}

	switch {
	case onDiagonal:
		return g
	case onWall:
		return Wall
	default:
		return g.OpenGround()
	}
}

// IsDiagonalObstacle reports whether the map pixel (x, y) lies on the wall half
// of a cell whose ground is the diagonal g.
func IsDiagonalObstacle(g Ground, x, y int) bool {
	xi := x & 7
	yi := y & 7
	switch g.corner() {
	case WallTopRight:
		return yi <= xi
	case WallTopLeft:
		return yi <= 7-xi
	case WallBottomLeft:
		return yi >= xi
	case WallBottomRight:
		return yi >= 7-xi
	}
	return false
}
