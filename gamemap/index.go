package gamemap

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/questcore/common"
	"github.com/milk9111/questcore/ecs"
)

// spatialIndex keeps one static box per entity in a cp space and answers
// rectangle queries with the space's bounding box tree. Boxes are only an
// index: the space is never stepped.
type spatialIndex struct {
	space         *cp.Space
	shapes        map[ecs.Entity]*cp.Shape
	shapeToEntity map[*cp.Shape]ecs.Entity
}

func newSpatialIndex() *spatialIndex {
	return &spatialIndex{
		space:         cp.NewSpace(),
		shapes:        make(map[ecs.Entity]*cp.Shape),
		shapeToEntity: make(map[*cp.Shape]ecs.Entity),
	}
}

func rectBB(r common.Rect) cp.BB {
	return cp.BB{
		L: float64(r.X),
		B: float64(r.Y),
		R: float64(r.X + max(r.Width, 0)),
		T: float64(r.Y + max(r.Height, 0)),
	}
}

// put inserts or moves the box of h.
func (idx *spatialIndex) put(h ecs.Entity, box common.Rect) {
	idx.remove(h)
	shape := cp.NewBox2(idx.space.StaticBody, rectBB(box), 0)
	shape.SetSensor(true)
	idx.space.AddShape(shape)
	idx.shapes[h] = shape
	idx.shapeToEntity[shape] = h
}

func (idx *spatialIndex) remove(h ecs.Entity) {
	shape, ok := idx.shapes[h]
	if !ok {
		return
	}
	idx.space.RemoveShape(shape)
	delete(idx.shapes, h)
	delete(idx.shapeToEntity, shape)
}

// query returns the handles whose boxes may touch box. Callers filter with
// exact rectangle tests.
func (idx *spatialIndex) query(box common.Rect) []ecs.Entity {
	var out []ecs.Entity
	idx.space.BBQuery(rectBB(box), cp.SHAPE_FILTER_ALL, func(shape *cp.Shape, _ interface{}) {
		if h, ok := idx.shapeToEntity[shape]; ok {
			out = append(out, h)
		}
	}, nil)
	return out
}

func (idx *spatialIndex) len() int { return len(idx.shapes) }
