package mortar

import (
	"github.com/akmonengine/mortar/brick"
	"github.com/dhconnelly/rtreego"
	"github.com/go-gl/mathgl/mgl64"
)

// rtreePad inflates degenerate extents and query volumes so that flat
// boxes are representable and touching boxes always intersect.
const rtreePad = 1e-9

// RTreeIndex is an R-tree backend over rtreego.
type RTreeIndex struct {
	tree *rtreego.Rtree
}

type rtreeEntry struct {
	id   int
	rect rtreego.Rect
}

func (e *rtreeEntry) Bounds() rtreego.Rect {
	return e.rect
}

func NewRTreeIndex() *RTreeIndex {
	return &RTreeIndex{tree: rtreego.NewTree(3, 8, 16)}
}

func rectFromBox(box brick.AABB) (rtreego.Rect, error) {
	p := rtreego.Point{box.Min.X() - rtreePad, box.Min.Y() - rtreePad, box.Min.Z() - rtreePad}
	lengths := []float64{
		box.Max.X() - box.Min.X() + 2*rtreePad,
		box.Max.Y() - box.Min.Y() + 2*rtreePad,
		box.Max.Z() - box.Min.Z() + 2*rtreePad,
	}
	return rtreego.NewRect(p, lengths)
}

func (r *RTreeIndex) Insert(id int, box brick.AABB) {
	rect, err := rectFromBox(box)
	if err != nil {
		// Only possible with an inverted box, which the scene graph
		// never produces.
		return
	}
	r.tree.Insert(&rtreeEntry{id: id, rect: rect})
}

func (r *RTreeIndex) QueryBox(min, max mgl64.Vec3) []int {
	rect, err := rectFromBox(brick.AABB{Min: min, Max: max})
	if err != nil {
		return nil
	}

	spatials := r.tree.SearchIntersect(rect)
	hits := make([]int, 0, len(spatials))
	for _, s := range spatials {
		hits = append(hits, s.(*rtreeEntry).id)
	}
	return hits
}

func (r *RTreeIndex) QueryPoint(p mgl64.Vec3, tolerance float64) []int {
	e := mgl64.Vec3{tolerance, tolerance, tolerance}
	return r.QueryBox(p.Sub(e), p.Add(e))
}
