package mortar

import (
	"github.com/akmonengine/mortar/brick"
	"github.com/go-gl/mathgl/mgl64"
)

// Spatial index backend names accepted by Config.Index.
const (
	IndexGrid   = "grid"
	IndexRTree  = "rtree"
	IndexLinear = "linear"
)

// linearCutoff is the scene size under which the automatic backend
// choice falls back to a plain scan.
const linearCutoff = 64

// SpatialIndex maps world bounding volumes to placement indices.
//
// The index is write-then-read: every Insert happens during scene
// loading, queries only start once loading is finished. Queries are
// exact — a stored box intersecting the query volume is always
// returned, with inclusive bounds. Returned candidates may still be
// filtered by the caller.
type SpatialIndex interface {
	Insert(id int, box brick.AABB)
	// QueryBox returns the ids of all boxes intersecting [min, max].
	QueryBox(min, max mgl64.Vec3) []int
	// QueryPoint returns the ids of all boxes that, expanded by
	// tolerance, contain p.
	QueryPoint(p mgl64.Vec3, tolerance float64) []int
}

// newSpatialIndex picks a backend for the given scene size.
func newSpatialIndex(cfg Config, count int) SpatialIndex {
	backend := cfg.Index
	if backend == "" {
		if count <= linearCutoff {
			backend = IndexLinear
		} else {
			backend = IndexGrid
		}
	}

	switch backend {
	case IndexRTree:
		return NewRTreeIndex()
	case IndexLinear:
		return NewLinearIndex()
	default:
		return NewGridIndex(cfg.GridCellSize, cfg.GridCells)
	}
}

// LinearIndex is the no-structure backend: a slice scan. Exact by
// construction and cheap for small scenes.
type LinearIndex struct {
	ids   []int
	boxes []brick.AABB
}

func NewLinearIndex() *LinearIndex {
	return &LinearIndex{}
}

func (l *LinearIndex) Insert(id int, box brick.AABB) {
	l.ids = append(l.ids, id)
	l.boxes = append(l.boxes, box)
}

func (l *LinearIndex) QueryBox(min, max mgl64.Vec3) []int {
	query := brick.AABB{Min: min, Max: max}
	var hits []int
	for i, box := range l.boxes {
		if box.Overlaps(query) {
			hits = append(hits, l.ids[i])
		}
	}
	return hits
}

func (l *LinearIndex) QueryPoint(p mgl64.Vec3, tolerance float64) []int {
	var hits []int
	for i, box := range l.boxes {
		if box.Expand(tolerance).ContainsPoint(p) {
			hits = append(hits, l.ids[i])
		}
	}
	return hits
}
