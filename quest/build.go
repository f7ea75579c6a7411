package quest

import (
	"errors"
	"fmt"

	"github.com/milk9111/questcore/common"
	"github.com/milk9111/questcore/entity"
	"github.com/milk9111/questcore/gamemap"
	"github.com/milk9111/questcore/ground"
	"github.com/sirupsen/logrus"
)

var log = logrus.WithField("pkg", "quest")

var (
	ErrUnknownEntityType = errors.New("quest: unknown entity type")
	ErrUnknownGround     = errors.New("quest: unknown ground")
	ErrInvalidMap        = errors.New("quest: invalid map")
	ErrNothingToWatch    = errors.New("quest: no directory to watch")
)

const (
	defaultLayers   = 3
	defaultEntitySize = 16
)

type entityBuildFn func(spec EntitySpec) (entity.Entity, error)

var entityRegistry = map[string]entityBuildFn{
	"hero":          buildHero,
	"enemy":         buildEnemy,
	"block":         buildBlock,
	"switch":        buildSwitch,
	"crystal":       buildCrystal,
	"crystal_block": buildCrystalBlock,
	"bomb":          buildBomb,
	"stairs":        buildStairs,
	"dynamic_tile":  buildDynamicTile,
	"wall":          buildWall,
}

// BuildMap creates a map from its spec. Unknown grounds become traversable
// and unknown entity types are skipped; both are logged.
func BuildMap(spec *MapSpec) (*gamemap.Map, error) {
	if spec == nil || spec.Width <= 0 || spec.Height <= 0 {
		return nil, fmt.Errorf("build map: %w: non-positive size", ErrInvalidMap)
	}
	layers := spec.Layers
	if layers <= 0 {
		layers = defaultLayers
	}
	m := gamemap.New(spec.Width, spec.Height, layers)
	m.Name = spec.Name

	for i, t := range spec.Tiles {
		g, ok := ground.Parse(t.Ground)
		if !ok {
			log.WithFields(logrus.Fields{
				"map":    spec.Name,
				"tile":   i,
				"ground": t.Ground,
			}).Warn("unknown ground, using traversable")
			g = ground.Traversable
		}
		if err := m.SetTileGround(t.Layer, common.NewRect(t.X, t.Y, t.W, t.H), g); err != nil {
			log.WithFields(logrus.Fields{
				"map":  spec.Name,
				"tile": i,
			}).WithError(err).Warn("skipping tile")
		}
	}

	for i, es := range spec.Entities {
		e, err := BuildEntity(es)
		if err != nil {
			log.WithFields(logrus.Fields{
				"map":    spec.Name,
				"entity": i,
				"type":   es.Type,
			}).WithError(err).Warn("skipping entity")
			continue
		}
		if es.Layer < 0 || es.Layer >= layers {
			log.WithFields(logrus.Fields{
				"map":    spec.Name,
				"entity": i,
				"layer":  es.Layer,
			}).Warn("entity layer out of range, skipping")
			continue
		}
		m.AddEntity(e)
	}

	return m, nil
}

// BuildEntity creates one entity through the builder registered for its
// type.
func BuildEntity(spec EntitySpec) (entity.Entity, error) {
	builder, ok := entityRegistry[spec.Type]
	if !ok {
		return nil, fmt.Errorf("build entity %q: %w", spec.Type, ErrUnknownEntityType)
	}
	e, err := builder(spec)
	if err != nil {
		return nil, fmt.Errorf("build entity %q: %w", spec.Type, err)
	}
	return e, nil
}

// EntityTypes lists the registered entity types.
func EntityTypes() []string {
	out := make([]string, 0, len(entityRegistry))
	for name := range entityRegistry {
		out = append(out, name)
	}
	return out
}

func (s EntitySpec) box() common.Rect {
	w, h := s.W, s.H
	if w <= 0 {
		w = defaultEntitySize
	}
	if h <= 0 {
		h = defaultEntitySize
	}
	return common.NewRect(s.X, s.Y, w, h)
}

func (s EntitySpec) name() string {
	if s.Name != "" {
		return s.Name
	}
	return fmt.Sprintf("%s_%d_%d", s.Type, s.X, s.Y)
}

type heroProps struct {
	Speed int `yaml:"speed"`
	Life  int `yaml:"life"`
}

func buildHero(spec EntitySpec) (entity.Entity, error) {
	props, err := DecodeProps[heroProps](spec.Props)
	if err != nil {
		return nil, fmt.Errorf("decode hero props: %w", err)
	}
	h := entity.NewHero(spec.X, spec.Y, spec.Layer)
	if props.Speed > 0 {
		h.Speed = props.Speed
	}
	if props.Life > 0 {
		*h.Life() = entity.NewLife(props.Life)
	}
	return h, nil
}

type enemyProps struct {
	Life     int  `yaml:"life"`
	Damage   int  `yaml:"damage"`
	Speed    int  `yaml:"speed"`
	Flying   bool `yaml:"flying"`
	Swimming bool `yaml:"swimming"`
}

func buildEnemy(spec EntitySpec) (entity.Entity, error) {
	props, err := DecodeProps[enemyProps](spec.Props)
	if err != nil {
		return nil, fmt.Errorf("decode enemy props: %w", err)
	}
	e := entity.NewEnemy(spec.name(), spec.Layer, spec.X, spec.Y, max(props.Life, 1))
	if props.Damage > 0 {
		e.Damage = props.Damage
	}
	if props.Speed > 0 {
		e.Speed = props.Speed
	}
	e.Flying = props.Flying
	e.Swimming = props.Swimming
	return e, nil
}

type blockProps struct {
	MaxMoves *int `yaml:"max_moves"`
}

func buildBlock(spec EntitySpec) (entity.Entity, error) {
	props, err := DecodeProps[blockProps](spec.Props)
	if err != nil {
		return nil, fmt.Errorf("decode block props: %w", err)
	}
	b := entity.NewBlock(spec.name(), spec.Layer, spec.X, spec.Y)
	if props.MaxMoves != nil {
		b.MaxMoves = *props.MaxMoves
	}
	return b, nil
}

type switchProps struct {
	Kind                  string `yaml:"kind"`
	NeedsBlock            bool   `yaml:"needs_block"`
	InactivateWhenLeaving bool   `yaml:"inactivate_when_leaving"`
	Locked                bool   `yaml:"locked"`
}

func buildSwitch(spec EntitySpec) (entity.Entity, error) {
	props, err := DecodeProps[switchProps](spec.Props)
	if err != nil {
		return nil, fmt.Errorf("decode switch props: %w", err)
	}
	t := entity.SwitchWalkable
	if props.Kind != "" {
		var ok bool
		if t, ok = entity.ParseSwitchType(props.Kind); !ok {
			return nil, fmt.Errorf("unknown switch kind %q", props.Kind)
		}
	}
	s := entity.NewSwitch(spec.name(), t, spec.Layer, spec.box())
	s.NeedsBlock = props.NeedsBlock
	s.InactivateWhenLeaving = props.InactivateWhenLeaving
	s.Locked = props.Locked
	return s, nil
}

func buildCrystal(spec EntitySpec) (entity.Entity, error) {
	return entity.NewCrystal(spec.name(), spec.Layer, spec.X, spec.Y), nil
}

type crystalBlockProps struct {
	Blue bool `yaml:"blue"`
}

func buildCrystalBlock(spec EntitySpec) (entity.Entity, error) {
	props, err := DecodeProps[crystalBlockProps](spec.Props)
	if err != nil {
		return nil, fmt.Errorf("decode crystal block props: %w", err)
	}
	return entity.NewCrystalBlock(spec.name(), spec.Layer, spec.box(), props.Blue), nil
}

type bombProps struct {
	Fuse int `yaml:"fuse"`
}

func buildBomb(spec EntitySpec) (entity.Entity, error) {
	props, err := DecodeProps[bombProps](spec.Props)
	if err != nil {
		return nil, fmt.Errorf("decode bomb props: %w", err)
	}
	b := entity.NewBomb(spec.Layer, spec.X, spec.Y)
	if props.Fuse > 0 {
		b.Fuse = props.Fuse
	}
	return b, nil
}

type stairsProps struct {
	TargetLayer int `yaml:"target_layer"`
}

func buildStairs(spec EntitySpec) (entity.Entity, error) {
	props, err := DecodeProps[stairsProps](spec.Props)
	if err != nil {
		return nil, fmt.Errorf("decode stairs props: %w", err)
	}
	return entity.NewStairs(spec.name(), spec.Layer, spec.box(), props.TargetLayer), nil
}

type dynamicTileProps struct {
	Ground  string `yaml:"ground"`
	Enabled *bool  `yaml:"enabled"`
}

func buildDynamicTile(spec EntitySpec) (entity.Entity, error) {
	props, err := DecodeProps[dynamicTileProps](spec.Props)
	if err != nil {
		return nil, fmt.Errorf("decode dynamic tile props: %w", err)
	}
	g, ok := ground.Parse(props.Ground)
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownGround, props.Ground)
	}
	box := spec.box()
	if g.IsDiagonal() && !isWholeCellSquare(box) {
		log.WithFields(logrus.Fields{
			"entity": spec.name(),
			"ground": g.String(),
		}).Warn("diagonal tile is not a square of whole cells, it behaves as traversable")
	}
	t := entity.NewDynamicTile(spec.name(), spec.Layer, box, g)
	if props.Enabled != nil {
		t.SetEnabled(*props.Enabled)
	}
	return t, nil
}

func isWholeCellSquare(box common.Rect) bool {
	cs := common.CellSize
	return box.Width == box.Height && box.Width%cs == 0 && box.X%cs == 0 && box.Y%cs == 0
}

type wallProps struct {
	Stops []string `yaml:"stops"`
}

func buildWall(spec EntitySpec) (entity.Entity, error) {
	props, err := DecodeProps[wallProps](spec.Props)
	if err != nil {
		return nil, fmt.Errorf("decode wall props: %w", err)
	}
	stops := make([]entity.Kind, 0, len(props.Stops))
	for _, name := range props.Stops {
		k, ok := entity.ParseKind(name)
		if !ok {
			return nil, fmt.Errorf("wall stops unknown kind %q", name)
		}
		stops = append(stops, k)
	}
	return entity.NewWall(spec.name(), spec.Layer, spec.box(), stops...), nil
}
