package entity

import (
	"github.com/milk9111/questcore/common"
	"github.com/milk9111/questcore/ground"
	"github.com/sirupsen/logrus"
)

// HeroState is what the hero is currently doing.
type HeroState uint8

const (
	HeroFree HeroState = iota
	HeroFalling
	HeroPlunging
	HeroHurt
)

func (s HeroState) String() string {
	switch s {
	case HeroFree:
		return "free"
	case HeroFalling:
		return "falling"
	case HeroPlunging:
		return "plunging"
	case HeroHurt:
		return "hurt"
	}
	return "unknown"
}

const (
	heroFallTicks    = 30
	heroPlungeTicks  = 20
	heroHurtTicks    = 12
	heroInvincible   = 60
	heroAttackTicks  = 12
	heroSwordReach   = 12
	heroKnockback    = 8
	heroDefaultSpeed = 1
)

var directions8 = [8][2]int{
	{1, 0}, {1, -1}, {0, -1}, {-1, -1}, {-1, 0}, {-1, 1}, {0, 1}, {1, 1},
}

// Hero is the player-controlled entity.
type Hero struct {
	Base
	life Life

	// Speed is the walking speed in pixels per tick.
	Speed int

	wanted     int
	state      HeroState
	stateTicks int
	attacking  int
	sword      *Sprite
	lastSolid  common.Rect
}

// NewHero creates a 16×16 hero whose top-left corner is at (x, y).
func NewHero(x, y, layer int) *Hero {
	h := &Hero{
		Base:   NewBase("hero", layer, common.NewRect(x, y, 16, 16)),
		life:   NewLife(6),
		Speed:  heroDefaultSpeed,
		wanted: -1,
	}
	h.SetDirection(DirDown)
	h.lastSolid = h.Box()
	h.sword = h.AddSprite(NewSprite("sword", common.Point{}, SolidMask(heroSwordReach, heroSwordReach)))
	h.sword.PixelCollisions = false
	return h
}

func (h *Hero) Kind() Kind        { return KindHero }
func (h *Hero) Life() *Life       { return &h.life }
func (h *Hero) State() HeroState  { return h.state }
func (h *Hero) IsAttacking() bool { return h.attacking > 0 }

// SetWantedDirection8 sets the 8-way walking direction, -1 to stop.
func (h *Hero) SetWantedDirection8(dir int) {
	if dir < -1 || dir > 7 {
		dir = -1
	}
	h.wanted = dir
	if dir >= 0 && dir%2 == 0 {
		h.SetDirection(dir / 2)
	}
}

func (h *Hero) WantedDirection8() int { return h.wanted }

// Walking reports whether the hero tries to move towards its facing
// direction.
func (h *Hero) Walking() bool {
	if h.wanted < 0 || h.state != HeroFree {
		return false
	}
	dx, dy := DirectionDelta(h.Direction())
	w := directions8[h.wanted]
	return (dx != 0 && dx == w[0]) || (dy != 0 && dy == w[1])
}

// StartAttack swings the sword in the facing direction.
func (h *Hero) StartAttack() {
	if h.state != HeroFree || h.attacking > 0 {
		return
	}
	h.attacking = heroAttackTicks
	h.placeSword()
	h.sword.PixelCollisions = true
	if ctx := h.Context(); ctx != nil {
		ctx.CheckCollisionWithDetectorsSprite(h, h.sword)
	}
}

func (h *Hero) placeSword() {
	box := h.Box()
	o := h.Origin()
	var tl common.Point
	switch h.Direction() {
	case DirRight:
		tl = common.Point{X: box.Right(), Y: box.Y + 2}
	case DirUp:
		tl = common.Point{X: box.X + 2, Y: box.Y - heroSwordReach}
	case DirLeft:
		tl = common.Point{X: box.X - heroSwordReach, Y: box.Y + 2}
	default:
		tl = common.Point{X: box.X + 2, Y: box.Bottom()}
	}
	h.sword.Offset = common.Point{X: tl.X - o.X, Y: tl.Y - o.Y}
}

func (h *Hero) Update() {
	h.life.Tick()

	if h.attacking > 0 {
		h.attacking--
		if h.attacking == 0 {
			h.sword.PixelCollisions = false
		}
	}

	switch h.state {
	case HeroFalling, HeroPlunging:
		h.stateTicks--
		if h.stateTicks <= 0 {
			h.backToSolidGround()
		}
		return
	case HeroHurt:
		h.stateTicks--
		if h.stateTicks <= 0 {
			h.state = HeroFree
		}
		return
	}

	if h.wanted < 0 {
		return
	}
	step := directions8[h.wanted]
	moved := false
	for range max(h.Speed, 1) {
		movedX := step[0] != 0 && h.tryMove(step[0], 0)
		movedY := step[1] != 0 && h.tryMove(0, step[1])
		if !movedX && !movedY {
			break
		}
		moved = true
		if h.state != HeroFree {
			break
		}
	}
	// Blocked heroes still push, climb and talk to what they face.
	if !moved {
		if ctx := h.Context(); ctx != nil {
			ctx.CheckCollisionWithDetectors(h)
		}
	}
}

func (h *Hero) backToSolidGround() {
	h.state = HeroFree
	h.life.Hurt(1, heroInvincible)
	if ctx := h.Context(); ctx != nil {
		ctx.MoveEntity(h, h.lastSolid)
	} else {
		h.SetBox(h.lastSolid)
	}
	h.emit("hero_back_on_solid_ground", h)
}

// IsGroundObstacle lets the hero walk into holes, water, lava, prickles and
// ladders; only walls stop it.
func (h *Hero) IsGroundObstacle(g ground.Ground) bool {
	return g == ground.Wall || g == ground.LowWall
}

func (h *Hero) NotifyGroundBelowChanged(g ground.Ground) {
	log.WithFields(logrus.Fields{"ground": g.String(), "state": h.state.String()}).Debug("hero ground changed")
	h.emit("hero_ground_changed", g)

	if h.state != HeroFree {
		return
	}
	switch g {
	case ground.Hole:
		h.state, h.stateTicks = HeroFalling, heroFallTicks
	case ground.DeepWater, ground.Lava:
		h.state, h.stateTicks = HeroPlunging, heroPlungeTicks
		if g == ground.Lava {
			h.life.Hurt(1, 0)
		}
	case ground.Prickle:
		h.hurtFrom(h.Origin(), 1)
	case ground.Traversable, ground.Grass, ground.ShallowWater, ground.Ice, ground.Ladder:
		h.lastSolid = h.Box()
	}
}

func (h *Hero) hurtFrom(source common.Point, damage int) {
	if !h.life.Hurt(damage, heroInvincible) {
		return
	}
	h.emit("hero_hurt", h)
	h.state, h.stateTicks = HeroHurt, heroHurtTicks

	o := h.Origin()
	dx := common.Clamp(o.X-source.X, -1, 1)
	dy := common.Clamp(o.Y-source.Y, -1, 1)
	for range heroKnockback {
		if (dx == 0 || !h.tryMove(dx, 0)) && (dy == 0 || !h.tryMove(0, dy)) {
			break
		}
	}
}

func (h *Hero) NotifyCollisionWithSwitch(s *Switch, mode CollisionMode) {
	if mode == CollisionOverlapping && s.Type == SwitchWalkable && !s.NeedsBlock {
		s.TryActivate(h)
	}
}

func (h *Hero) NotifyCollisionWithCrystal(c *Crystal, mode CollisionMode) {
	if mode == CollisionSprite && h.IsAttacking() {
		c.Activate(h)
	}
}

func (h *Hero) NotifyCollisionWithStairs(s *Stairs, mode CollisionMode) {
	if mode == CollisionFacing && h.Walking() {
		s.Take(h)
	}
}

func (h *Hero) NotifyCollisionWithExplosion(x *Explosion, _ CollisionMode) {
	h.hurtFrom(x.Box().Center(), 2)
}

func (h *Hero) NotifyCollisionWithEnemy(e *Enemy, _ CollisionMode) {
	h.hurtFrom(e.Box().Center(), e.Damage)
}

func (h *Hero) NotifyCollisionWithBlock(b *Block, mode CollisionMode) {
	if mode == CollisionFacing && h.Walking() {
		b.Push(h.Direction())
	}
}
