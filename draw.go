package main

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/questcore/common"
	"github.com/milk9111/questcore/entity"
	"github.com/milk9111/questcore/gamemap"
	"github.com/milk9111/questcore/ground"
)

var groundColors = map[ground.Ground]color.RGBA{
	ground.Empty:        {0x00, 0x00, 0x00, 0xff},
	ground.Wall:         {0x55, 0x55, 0x66, 0xff},
	ground.LowWall:      {0x77, 0x77, 0x88, 0xff},
	ground.DeepWater:    {0x20, 0x40, 0xa0, 0xff},
	ground.ShallowWater: {0x50, 0x80, 0xd0, 0xff},
	ground.Grass:        {0x40, 0x90, 0x40, 0xff},
	ground.Hole:         {0x10, 0x10, 0x10, 0xff},
	ground.Ice:          {0xc0, 0xe0, 0xf0, 0xff},
	ground.Ladder:       {0x90, 0x60, 0x30, 0xff},
	ground.Prickle:      {0xa0, 0x40, 0x80, 0xff},
	ground.Lava:         {0xe0, 0x50, 0x10, 0xff},
}

var kindColors = map[entity.Kind]color.RGBA{
	entity.KindHero:         {0x30, 0xd0, 0x30, 0xff},
	entity.KindEnemy:        {0xd0, 0x30, 0x30, 0xff},
	entity.KindBlock:        {0xa0, 0x80, 0x50, 0xff},
	entity.KindSwitch:       {0xe0, 0xe0, 0x40, 0xff},
	entity.KindCrystal:      {0x40, 0xe0, 0xe0, 0xff},
	entity.KindCrystalBlock: {0x40, 0x60, 0xe0, 0xff},
	entity.KindBomb:         {0x30, 0x30, 0x30, 0xff},
	entity.KindArrow:        {0xf0, 0xf0, 0xf0, 0xff},
	entity.KindExplosion:    {0xff, 0x90, 0x20, 0xc0},
	entity.KindStairs:       {0xb0, 0xb0, 0xb0, 0xff},
	entity.KindDynamicTile:  {0x80, 0x20, 0x80, 0x80},
	entity.KindWall:         {0xff, 0x00, 0xff, 0x40},
}

var background = color.RGBA{0x60, 0xa0, 0x60, 0xff}

// drawMap renders grounds and entity boxes of m scaled to the screen. In
// debug mode the spatial index shapes and the diagonal pixels are outlined.
func drawMap(screen *ebiten.Image, m *gamemap.Map, debug bool) {
	if screen == nil || m == nil {
		return
	}
	screen.Fill(background)
	scale := mapScale(screen, m)

	cs := common.CellSize
	for layer := 0; layer < m.Layers(); layer++ {
		for y := 0; y < m.Height(); y += cs {
			for x := 0; x < m.Width(); x += cs {
				drawCell(screen, m.TileGround(layer, x, y), x, y, scale, layer == 0)
			}
		}
	}

	for _, e := range m.Entities() {
		b := e.Core()
		if b.IsBeingRemoved() {
			continue
		}
		c := kindColors[e.Kind()]
		if !b.IsEnabled() {
			c.A /= 3
		}
		if cb, ok := e.(*entity.CrystalBlock); ok && !cb.IsRaised() {
			c.A /= 3
		}
		if sw, ok := e.(*entity.Switch); ok && sw.IsActivated() {
			c = color.RGBA{0x80, 0xff, 0x80, 0xff}
		}
		fillRect(screen, b.Box(), scale, c)
		if debug {
			for _, s := range b.Sprites() {
				if s.PixelCollisions && s.NumFrames() > 0 {
					strokeRect(screen, s.Bounds(), scale, color.RGBA{0xff, 0xff, 0xff, 0x80})
				}
			}
		}
	}

	if debug {
		op := &chipmunkDrawer{screen: screen, scale: scale}
		cp.DrawSpace(m.Space(), op)
		ebitenutil.DebugPrintAt(screen, "debug", 0, screen.Bounds().Dy()-16)
	}
}

func mapScale(screen *ebiten.Image, m *gamemap.Map) float64 {
	sw, sh := screen.Bounds().Dx(), screen.Bounds().Dy()
	if m.Width() == 0 || m.Height() == 0 {
		return 1
	}
	return math.Max(1, math.Floor(math.Min(float64(sw)/float64(m.Width()), float64(sh)/float64(m.Height()))))
}

func drawCell(screen *ebiten.Image, g ground.Ground, x, y int, scale float64, bottom bool) {
	if g == ground.Traversable || (g == ground.Empty && !bottom) {
		return
	}
	if g.IsDiagonal() {
		c := groundColors[ground.Wall]
		if g.IsWaterDiagonal() {
			c = groundColors[ground.DeepWater]
		}
		cs := common.CellSize
		for py := 0; py < cs; py++ {
			for px := 0; px < cs; px++ {
				if ground.IsDiagonalObstacle(g, x+px, y+py) {
					fillRect(screen, common.NewRect(x+px, y+py, 1, 1), scale, c)
				}
			}
		}
		return
	}
	c, ok := groundColors[g]
	if !ok {
		return
	}
	fillRect(screen, common.NewRect(x, y, common.CellSize, common.CellSize), scale, c)
}

func fillRect(screen *ebiten.Image, r common.Rect, scale float64, c color.Color) {
	vector.DrawFilledRect(screen, float32(float64(r.X)*scale), float32(float64(r.Y)*scale),
		float32(float64(r.Width)*scale), float32(float64(r.Height)*scale), c, false)
}

func strokeRect(screen *ebiten.Image, r common.Rect, scale float64, c color.Color) {
	vector.StrokeRect(screen, float32(float64(r.X)*scale), float32(float64(r.Y)*scale),
		float32(float64(r.Width)*scale), float32(float64(r.Height)*scale), 1, c, false)
}

// chipmunkDrawer outlines the shapes of the spatial index.
type chipmunkDrawer struct {
	screen *ebiten.Image
	scale  float64
}

func (d *chipmunkDrawer) DrawCircle(pos cp.Vector, angle, radius float64, outline, fill cp.FColor, data interface{}) {
	vector.StrokeCircle(d.screen, float32(pos.X*d.scale), float32(pos.Y*d.scale), float32(radius*d.scale), 1, fcolorToRGBA(outline), false)
}

func (d *chipmunkDrawer) DrawSegment(a, b cp.Vector, fill cp.FColor, data interface{}) {
	d.line(a, b, fcolorToRGBA(fill))
}

func (d *chipmunkDrawer) DrawFatSegment(a, b cp.Vector, radius float64, outline, fill cp.FColor, data interface{}) {
	d.line(a, b, fcolorToRGBA(outline))
}

func (d *chipmunkDrawer) DrawPolygon(count int, verts []cp.Vector, radius float64, outline, fill cp.FColor, data interface{}) {
	c := fcolorToRGBA(outline)
	for i := 0; i < count; i++ {
		d.line(verts[i], verts[(i+1)%count], c)
	}
}

func (d *chipmunkDrawer) DrawDot(size float64, pos cp.Vector, fill cp.FColor, data interface{}) {
	l := size / 2
	c := fcolorToRGBA(fill)
	d.line(cp.Vector{X: pos.X - l, Y: pos.Y}, cp.Vector{X: pos.X + l, Y: pos.Y}, c)
	d.line(cp.Vector{X: pos.X, Y: pos.Y - l}, cp.Vector{X: pos.X, Y: pos.Y + l}, c)
}

func (d *chipmunkDrawer) line(a, b cp.Vector, c color.Color) {
	vector.StrokeLine(d.screen, float32(a.X*d.scale), float32(a.Y*d.scale), float32(b.X*d.scale), float32(b.Y*d.scale), 1, c, false)
}

func (d *chipmunkDrawer) Flags() uint {
	return cp.DRAW_SHAPES
}

func (d *chipmunkDrawer) OutlineColor() cp.FColor {
	return cp.FColor{R: 0.2, G: 1.0, B: 0.2, A: 1.0}
}

func (d *chipmunkDrawer) ShapeColor(shape *cp.Shape, data interface{}) cp.FColor {
	return cp.FColor{R: 1.0, G: 0.85, B: 0.2, A: 1.0}
}

func (d *chipmunkDrawer) ConstraintColor() cp.FColor {
	return cp.FColor{R: 0.7, G: 0.7, B: 0.7, A: 1.0}
}

func (d *chipmunkDrawer) CollisionPointColor() cp.FColor {
	return cp.FColor{R: 1.0, G: 0.1, B: 0.1, A: 1.0}
}

func (d *chipmunkDrawer) Data() interface{} {
	return nil
}

func fcolorToRGBA(c cp.FColor) color.RGBA {
	return color.RGBA{
		R: uint8(math.Round(float64(c.R) * 255)),
		G: uint8(math.Round(float64(c.G) * 255)),
		B: uint8(math.Round(float64(c.B) * 255)),
		A: uint8(math.Round(float64(c.A) * 255)),
	}
}
