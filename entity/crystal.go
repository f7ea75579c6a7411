package entity

import "github.com/milk9111/questcore/common"

const crystalCooldown = 60

// Crystal toggles the crystal state of the map when hit.
type Crystal struct {
	Base
	cooldown int
}

func NewCrystal(name string, layer int, x, y int) *Crystal {
	c := &Crystal{Base: NewBase(name, layer, common.NewRect(x, y, 16, 16))}
	c.AddSprite(NewSprite("crystal", common.Point{X: -8, Y: -13}, SolidMask(16, 16)))
	c.SetCollisionModes(CollisionOverlapping | CollisionFacing | CollisionSprite)
	return c
}

func (c *Crystal) Kind() Kind { return KindCrystal }

// Activate toggles the crystal state unless it was hit too recently.
func (c *Crystal) Activate(by Entity) bool {
	if c.cooldown > 0 {
		return false
	}
	c.cooldown = crystalCooldown
	if ctx := c.Context(); ctx != nil {
		ctx.ToggleCrystalState()
	}
	c.emit("crystal_toggled", c)
	return true
}

func (c *Crystal) Update() {
	if c.cooldown > 0 {
		c.cooldown--
	}
}

func (c *Crystal) IsObstacleFor(Entity) bool { return true }

func (c *Crystal) NotifyCollision(other Entity, mode CollisionMode) {
	other.NotifyCollisionWithCrystal(c, mode)
}

func (c *Crystal) NotifyCollisionSprite(other Entity, _, theirs *Sprite) {
	if theirs.Name == "sword" {
		other.NotifyCollisionWithCrystal(c, CollisionSprite)
	}
}

func (c *Crystal) NotifyCollisionWithExplosion(*Explosion, CollisionMode) {
	c.Activate(nil)
}

// CrystalBlock is raised or lowered by the crystal state.
type CrystalBlock struct {
	Base
	// Blue blocks are raised while the crystal state is on, orange ones while
	// it is off.
	Blue bool
}

func NewCrystalBlock(name string, layer int, box common.Rect, blue bool) *CrystalBlock {
	return &CrystalBlock{Base: NewBase(name, layer, box), Blue: blue}
}

func (b *CrystalBlock) Kind() Kind { return KindCrystalBlock }

func (b *CrystalBlock) IsRaised() bool {
	state := false
	if ctx := b.Context(); ctx != nil {
		state = ctx.CrystalState()
	}
	return state == b.Blue
}

// IsObstacleFor lets an entity already standing on a block that just rose
// walk off it.
func (b *CrystalBlock) IsObstacleFor(mover Entity) bool {
	return b.IsRaised() && !b.Overlaps(mover.Core())
}
