package entity

import (
	"strings"

	"github.com/milk9111/questcore/common"
)

// CollisionMode is a set of geometric tests a detector applies to the
// entities around it.
type CollisionMode uint16

const (
	CollisionOverlapping CollisionMode = 1 << iota // bounding boxes share a pixel
	CollisionContaining                            // entity box inside the detector
	CollisionOrigin                                // entity origin inside the detector
	CollisionCenter                                // entity center inside the detector
	CollisionFacing                                // point in front of the entity inside the detector
	CollisionTouching                              // a point just outside any side inside the detector
	CollisionSprite                                // pixel-precise sprite overlap
	CollisionCustom                                // TestCollisionCustom decides
)

var modeNames = []struct {
	mode CollisionMode
	name string
}{
	{CollisionOverlapping, "overlapping"},
	{CollisionContaining, "containing"},
	{CollisionOrigin, "origin"},
	{CollisionCenter, "center"},
	{CollisionFacing, "facing"},
	{CollisionTouching, "touching"},
	{CollisionSprite, "sprite"},
	{CollisionCustom, "custom"},
}

func (m CollisionMode) String() string {
	var parts []string
	for _, mn := range modeNames {
		if m&mn.mode != 0 {
			parts = append(parts, mn.name)
		}
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, "|")
}

// ParseCollisionMode resolves a single mode name.
func ParseCollisionMode(name string) (CollisionMode, bool) {
	for _, mn := range modeNames {
		if mn.name == name {
			return mn.mode, true
		}
	}
	return 0, false
}

// TouchingPoint returns the pixel just outside the side of b facing dir.
func TouchingPoint(b *Base, dir int) common.Point {
	box := b.Box()
	c := box.Center()
	switch dir {
	case DirRight:
		return common.Point{X: box.Right(), Y: c.Y}
	case DirUp:
		return common.Point{X: c.X, Y: box.Y - 1}
	case DirLeft:
		return common.Point{X: box.X - 1, Y: c.Y}
	default:
		return common.Point{X: c.X, Y: box.Bottom()}
	}
}

// FacingPoint returns the touching point in the direction b looks at.
func FacingPoint(b *Base) common.Point {
	return TouchingPoint(b, b.Direction())
}

// TestCollision reports whether other satisfies mode against detector d.
// CollisionSprite is not tested here.
func TestCollision(d Detector, other Entity, mode CollisionMode) bool {
	db := d.Core()
	ob := other.Core()
	box := db.Box()
	contains := func(p common.Point) bool { return box.Contains(p.X, p.Y) }

	switch mode {
	case CollisionOverlapping:
		return db.Overlaps(ob)
	case CollisionContaining:
		return box.ContainsRect(ob.Box())
	case CollisionOrigin:
		return contains(ob.Origin())
	case CollisionCenter:
		return contains(ob.Box().Center())
	case CollisionFacing:
		return contains(FacingPoint(ob))
	case CollisionTouching:
		for dir := DirRight; dir <= DirDown; dir++ {
			if contains(TouchingPoint(ob, dir)) {
				return true
			}
		}
		return false
	case CollisionCustom:
		if cc, ok := d.(CustomCollider); ok {
			return cc.TestCollisionCustom(other)
		}
		return false
	}
	return false
}

// CheckCollision tests every geometric mode of d against other and notifies
// d once per satisfied mode. It stops as soon as d or other stops being
// alive.
func CheckCollision(d Detector, other Entity) {
	if Entity(d) == other {
		return
	}
	modes := d.Core().CollisionModes()
	for _, mn := range modeNames {
		if mn.mode == CollisionSprite || modes&mn.mode == 0 {
			continue
		}
		if !Alive(d) || !Alive(other) {
			return
		}
		if TestCollision(d, other, mn.mode) {
			d.NotifyCollision(other, mn.mode)
		}
	}
}

// CheckCollisionSprite tests the sprite s of other against every
// pixel-collision sprite of d.
func CheckCollisionSprite(d Detector, other Entity, s *Sprite) {
	if Entity(d) == other || !d.Core().HasCollisionMode(CollisionSprite) || !s.PixelCollisions {
		return
	}
	for _, mine := range d.Core().Sprites() {
		if !mine.PixelCollisions {
			continue
		}
		if !Alive(d) || !Alive(other) {
			return
		}
		if mine.TestCollision(s) {
			d.NotifyCollisionSprite(other, mine, s)
		}
	}
}

// CheckCollisionFromSprite tests the sprite s of d against every
// pixel-collision sprite of other.
func CheckCollisionFromSprite(d Detector, other Entity, s *Sprite) {
	if Entity(d) == other || !d.Core().HasCollisionMode(CollisionSprite) || !s.PixelCollisions {
		return
	}
	for _, theirs := range other.Core().Sprites() {
		if !theirs.PixelCollisions {
			continue
		}
		if !Alive(d) || !Alive(other) {
			return
		}
		if s.TestCollision(theirs) {
			d.NotifyCollisionSprite(other, s, theirs)
		}
	}
}
