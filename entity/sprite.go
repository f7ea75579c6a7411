package entity

import (
	"image"

	"github.com/milk9111/questcore/common"
)

// Sprite is the collision side of an animated graphic: one alpha mask per
// frame, placed relative to the owner origin.
type Sprite struct {
	Name string
	// Offset is the top-left corner of the frame relative to the owner origin.
	Offset          common.Point
	PixelCollisions bool

	frames []*image.Alpha
	frame  int
	owner  *Base
}

// NewSprite creates a sprite from its frame masks.
func NewSprite(name string, offset common.Point, frames ...*image.Alpha) *Sprite {
	return &Sprite{Name: name, Offset: offset, frames: frames, PixelCollisions: len(frames) > 0}
}

// SolidMask returns a fully opaque w×h mask.
func SolidMask(w, h int) *image.Alpha {
	m := image.NewAlpha(image.Rect(0, 0, w, h))
	for i := range m.Pix {
		m.Pix[i] = 0xff
	}
	return m
}

func (s *Sprite) Frame() int     { return s.frame }
func (s *Sprite) NumFrames() int { return len(s.frames) }

// SetFrame changes the current frame. When the mask changes on a map, the
// sprite is tested again against the detectors around it.
func (s *Sprite) SetFrame(frame int) {
	if len(s.frames) == 0 {
		return
	}
	frame %= len(s.frames)
	if frame < 0 {
		frame += len(s.frames)
	}
	if frame == s.frame {
		return
	}
	s.frame = frame
	s.notifyFrameChanged()
}

// NextFrame advances to the following frame.
func (s *Sprite) NextFrame() { s.SetFrame(s.frame + 1) }

func (s *Sprite) notifyFrameChanged() {
	if s.owner == nil || s.owner.ctx == nil || !s.PixelCollisions {
		return
	}
	self, ok := s.owner.self()
	if !ok {
		return
	}
	ctx := s.owner.ctx
	ctx.CheckCollisionWithDetectorsSprite(self, s)
	if d, ok := IsDetector(self); ok && d.Core().HasCollisionMode(CollisionSprite) {
		ctx.CheckCollisionFromDetectorSprite(d, s)
	}
}

func (s *Sprite) mask() *image.Alpha {
	if len(s.frames) == 0 {
		return nil
	}
	return s.frames[s.frame]
}

// Bounds returns the map rectangle of the current frame.
func (s *Sprite) Bounds() common.Rect {
	m := s.mask()
	if m == nil || s.owner == nil {
		return common.Rect{}
	}
	o := s.owner.Origin()
	size := m.Bounds().Size()
	return common.NewRect(o.X+s.Offset.X, o.Y+s.Offset.Y, size.X, size.Y)
}

// TestCollision reports whether an opaque pixel of s covers an opaque pixel
// of other on the map.
func (s *Sprite) TestCollision(other *Sprite) bool {
	a, b := s.mask(), other.mask()
	if a == nil || b == nil {
		return false
	}
	ra, rb := s.Bounds(), other.Bounds()
	inter := ra.Intersect(rb)
	if inter.Empty() {
		return false
	}
	amin, bmin := a.Bounds().Min, b.Bounds().Min
	for y := inter.Y; y < inter.Bottom(); y++ {
		for x := inter.X; x < inter.Right(); x++ {
			if a.AlphaAt(amin.X+x-ra.X, amin.Y+y-ra.Y).A == 0 {
				continue
			}
			if b.AlphaAt(bmin.X+x-rb.X, bmin.Y+y-rb.Y).A != 0 {
				return true
			}
		}
	}
	return false
}
