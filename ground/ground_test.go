package ground

import (
	"testing"

	"github.com/milk9111/questcore/common"
)

func TestParseRoundTrip(t *testing.T) {
	for g := Empty; g < numGrounds; g++ {
		got, ok := Parse(g.String())
		if !ok || got != g {
			t.Fatalf("Parse(%q) = %v, %v", g.String(), got, ok)
		}
	}
	if _, ok := Parse("quicksand"); ok {
		t.Fatalf("unknown ground name should not parse")
	}
}

func TestInSquareTwoByTwo(t *testing.T) {
	box := common.NewRect(16, 32, 16, 16)
	// cell order: top-left, top-right, bottom-left, bottom-right
	cells := []common.Point{{X: 16, Y: 32}, {X: 24, Y: 32}, {X: 16, Y: 40}, {X: 24, Y: 40}}

	cases := []struct {
		ground Ground
		want   [4]Ground
	}{
		{WallTopRight, [4]Ground{WallTopRight, Wall, Traversable, WallTopRight}},
		{WallTopLeft, [4]Ground{Wall, WallTopLeft, WallTopLeft, Traversable}},
		{WallBottomLeft, [4]Ground{WallBottomLeft, Traversable, Wall, WallBottomLeft}},
		{WallBottomRight, [4]Ground{Traversable, WallBottomRight, WallBottomRight, Wall}},
		{WallTopRightWater, [4]Ground{WallTopRightWater, Wall, DeepWater, WallTopRightWater}},
		{WallBottomRightWater, [4]Ground{DeepWater, WallBottomRightWater, WallBottomRightWater, Wall}},
	}
	for _, c := range cases {
		t.Run(c.ground.String(), func(t *testing.T) {
			for i, p := range cells {
				// any pixel of the cell resolves the same way
				for _, q := range []common.Point{p, p.Add(7, 7), p.Add(3, 5)} {
					if got := InSquare(c.ground, box, q); got != c.want[i] {
						t.Fatalf("cell %d pixel %v: got %v, want %v", i, q, got, c.want[i])
					}
				}
			}
		})
	}
}

func TestInSquareThreeByThree(t *testing.T) {
	box := common.NewRect(0, 0, 24, 24)
	grid := func(g Ground) [3][3]Ground {
		var out [3][3]Ground
		for sy := 0; sy < 3; sy++ {
			for sx := 0; sx < 3; sx++ {
				out[sy][sx] = InSquare(g, box, common.Point{X: sx * 8, Y: sy * 8})
			}
		}
		return out
	}
	D, W, T := WallTopLeft, Wall, Traversable
	want := [3][3]Ground{
		{W, W, D},
		{W, D, T},
		{D, T, T},
	}
	if got := grid(WallTopLeft); got != want {
		t.Fatalf("top-left 3x3 = %v, want %v", got, want)
	}
	D = WallBottomLeft
	want = [3][3]Ground{
		{D, T, T},
		{W, D, T},
		{W, W, D},
	}
	if got := grid(WallBottomLeft); got != want {
		t.Fatalf("bottom-left 3x3 = %v, want %v", got, want)
	}
}

func TestInSquareFallbacks(t *testing.T) {
	cases := []struct {
		name string
		box  common.Rect
		want Ground
	}{
		{"single_cell", common.NewRect(8, 8, 8, 8), WallTopRight},
		{"not_square", common.NewRect(0, 0, 16, 8), Traversable},
		{"not_multiple", common.NewRect(0, 0, 12, 12), Traversable},
		{"not_aligned", common.NewRect(4, 0, 16, 16), Traversable},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := InSquare(WallTopRight, c.box, common.Point{X: c.box.X, Y: c.box.Y}); got != c.want {
				t.Fatalf("got %v, want %v", got, c.want)
			}
		})
	}
	if got := InSquare(Hole, common.NewRect(3, 3, 5, 9), common.Point{X: 4, Y: 4}); got != Hole {
		t.Fatalf("non-diagonal ground must pass through, got %v", got)
	}
}

func TestIsDiagonalObstacle(t *testing.T) {
	cases := []struct {
		ground   Ground
		x, y     int
		obstacle bool
	}{
		{WallTopRight, 7, 0, true},
		{WallTopRight, 3, 3, true},
		{WallTopRight, 0, 7, false},
		{WallTopLeft, 0, 0, true},
		{WallTopLeft, 4, 3, true},
		{WallTopLeft, 4, 4, false},
		{WallBottomLeft, 0, 7, true},
		{WallBottomLeft, 5, 4, false},
		{WallBottomRight, 7, 7, true},
		{WallBottomRight, 3, 4, true},
		{WallBottomRight, 3, 3, false},
		{WallBottomRightWater, 15, 15, true},
		{WallTopRightWater, 8, 15, false},
	}
	for _, c := range cases {
		if got := IsDiagonalObstacle(c.ground, c.x, c.y); got != c.obstacle {
			t.Fatalf("%v at (%d,%d) = %v, want %v", c.ground, c.x, c.y, got, c.obstacle)
		}
	}
}
