package common

import "testing"

func TestRectOverlaps(t *testing.T) {
	base := NewRect(0, 0, 16, 16)
	cases := []struct {
		name  string
		other Rect
		want  bool
	}{
		{"same", NewRect(0, 0, 16, 16), true},
		{"inside", NewRect(4, 4, 2, 2), true},
		{"touching_right_edge", NewRect(16, 0, 8, 8), false},
		{"touching_bottom_edge", NewRect(0, 16, 8, 8), false},
		{"one_pixel", NewRect(15, 15, 1, 1), true},
		{"far", NewRect(100, 100, 8, 8), false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := base.Overlaps(c.other); got != c.want {
				t.Fatalf("Overlaps(%v) = %v, want %v", c.other, got, c.want)
			}
		})
	}
}

func TestRectIntersectAndExtend(t *testing.T) {
	r := NewRect(8, 8, 16, 16)
	if got := r.Extend(8, 8); got != NewRect(0, 0, 32, 32) {
		t.Fatalf("Extend = %v", got)
	}
	if got := r.Intersect(NewRect(0, 0, 12, 12)); got != NewRect(8, 8, 4, 4) {
		t.Fatalf("Intersect = %v", got)
	}
	if got := r.Intersect(NewRect(40, 40, 4, 4)); !got.Empty() {
		t.Fatalf("expected empty intersection, got %v", got)
	}
	if !r.Contains(8, 8) || r.Contains(24, 8) {
		t.Fatalf("Contains uses exclusive right/bottom edges")
	}
}

func TestAlignUp(t *testing.T) {
	for in, want := range map[int]int{0: 0, 1: 8, 8: 8, 9: 16, 320: 320} {
		if got := AlignUp(in); got != want {
			t.Fatalf("AlignUp(%d) = %d, want %d", in, got, want)
		}
	}
}
