package mortar

import (
	"fmt"

	"github.com/akmonengine/mortar/brick"
	"github.com/akmonengine/mortar/catalog"
	"github.com/go-gl/mathgl/mgl64"
)

// SceneGraph owns the flattened placement list and a spatial index
// over each placement's world bounding volume.
//
// It is built once, right after loading, and never mutated afterwards:
// the collision and connection stages may read it from concurrent
// goroutines without locking. Placements whose part id has no catalog
// geometry are kept in the list but flagged unverifiable; they carry a
// geometry-lookup error and are skipped by the geometric stages.
type SceneGraph struct {
	placements []brick.Placement
	geometry   []*brick.PartGeometry // nil where the catalog had no entry
	boxes      []brick.AABB          // world volumes, zero where unverifiable
	index      SpatialIndex
	bounds     brick.AABB

	lookupErrs []ValidationError
}

// NewSceneGraph indexes the flattened placements against the part
// catalog. The index only ever contains verifiable placements.
func NewSceneGraph(placements []brick.Placement, source catalog.Source, cfg Config) *SceneGraph {
	sg := &SceneGraph{
		placements: placements,
		geometry:   make([]*brick.PartGeometry, len(placements)),
		boxes:      make([]brick.AABB, len(placements)),
		index:      newSpatialIndex(cfg, len(placements)),
	}

	first := true
	for i, p := range placements {
		g, err := source.Part(p.PartID)
		if err != nil {
			sg.lookupErrs = append(sg.lookupErrs, ValidationError{
				Kind:       KindGeometryLookup,
				Placements: []int{i},
				Message:    fmt.Sprintf("no geometry for part %q, placement is unverifiable", p.PartID),
			})
			continue
		}

		box := g.Bounds.Transformed(p.Transform)
		sg.geometry[i] = &g
		sg.boxes[i] = box
		sg.index.Insert(i, box)

		if first {
			sg.bounds = box
			first = false
		} else {
			sg.bounds = sg.bounds.Union(box)
		}
	}

	return sg
}

// Len returns the number of placements, verifiable or not.
func (sg *SceneGraph) Len() int {
	return len(sg.placements)
}

// Placement returns the placement at index i.
func (sg *SceneGraph) Placement(i int) brick.Placement {
	return sg.placements[i]
}

// Geometry returns the catalog geometry of placement i, or nil when
// the placement is unverifiable.
func (sg *SceneGraph) Geometry(i int) *brick.PartGeometry {
	return sg.geometry[i]
}

// Verifiable reports whether placement i has catalog geometry.
func (sg *SceneGraph) Verifiable(i int) bool {
	return sg.geometry[i] != nil
}

// WorldBox returns the world bounding volume of placement i. Only
// meaningful for verifiable placements.
func (sg *SceneGraph) WorldBox(i int) brick.AABB {
	return sg.boxes[i]
}

// Bounds returns the envelope of the whole scene.
func (sg *SceneGraph) Bounds() brick.AABB {
	return sg.bounds
}

// QueryBox returns the verifiable placements whose world volume
// intersects [min, max].
func (sg *SceneGraph) QueryBox(min, max mgl64.Vec3) []int {
	return sg.index.QueryBox(min, max)
}

// QueryPoint returns the verifiable placements whose world volume,
// expanded by tolerance, contains p.
func (sg *SceneGraph) QueryPoint(p mgl64.Vec3, tolerance float64) []int {
	return sg.index.QueryPoint(p, tolerance)
}

// LookupErrors returns the geometry-lookup findings recorded while
// building the graph.
func (sg *SceneGraph) LookupErrors() []ValidationError {
	return sg.lookupErrs
}
