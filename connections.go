package mortar

import (
	"fmt"
	"math"
	"sort"

	"github.com/akmonengine/mortar/brick"
	"github.com/go-gl/mathgl/mgl64"
)

// worldConnector is one connection point transformed to world space:
// position through the full placement transform, direction through the
// rotation only.
type worldConnector struct {
	owner int // placement index
	index int // connector index within the owner's geometry
	typ   brick.ConnectorType
	pos   mgl64.Vec3
	dir   mgl64.Vec3
}

// connectorKey identifies one connection point of the scene.
type connectorKey struct {
	owner, index int
}

// Edge is one validated connection between two placements, A < B.
// Several matched point pairs between the same two placements fold
// into one edge.
type Edge struct {
	A, B     int
	Pairs    int     // matched point pairs behind this edge
	Residual float64 // smallest combined deviation among them
}

// ConnectionSet is the connectivity graph produced by the matcher,
// plus its diagnostics.
type ConnectionSet struct {
	Edges       []Edge
	Ambiguities []ValidationError

	adjacency [][]int
	worlds    [][]worldConnector
}

// Neighbors returns the placements sharing an edge with i.
func (cs *ConnectionSet) Neighbors(i int) []int {
	return cs.adjacency[i]
}

// candidate is one anti-connector evaluated against a driving
// connector.
type candidate struct {
	anti      connectorKey
	deviation float64
}

// MatchConnections pairs studs with anti-studs across the scene and
// returns the deduplicated connectivity graph.
//
// Two points mate iff their types complement, the lateral distance
// from the stud axis is within the position tolerance, the offset
// along the axis is a stud height behind the tip within the same
// tolerance, and the directions are anti-parallel within the angular
// tolerance. Among several valid candidates the one with the smallest
// combined positional+angular deviation wins; near-equal runners-up
// are reported as ambiguities. Each connection point contributes to at
// most one pairing.
func MatchConnections(sg *SceneGraph, cfg Config) *ConnectionSet {
	worlds := worldConnectors(sg, cfg.Workers)

	cs := &ConnectionSet{
		adjacency: make([][]int, sg.Len()),
		worlds:    worlds,
	}

	type edgeKey struct{ a, b int }
	edges := make(map[edgeKey]*Edge)
	usedAnti := make(map[connectorKey]bool)

	queryRadius := cfg.PositionTolerance + cfg.StudHeight

	for i := 0; i < sg.Len(); i++ {
		for _, stud := range worlds[i] {
			if !male(stud.typ) {
				continue
			}

			var cands []candidate
			for _, j := range sg.QueryPoint(stud.pos, queryRadius) {
				if j == i {
					continue
				}
				for _, anti := range worlds[j] {
					if !stud.typ.Complements(anti.typ) {
						continue
					}
					dev, ok := mate(stud, anti, cfg)
					if !ok {
						continue
					}
					cands = append(cands, candidate{
						anti:      connectorKey{owner: j, index: anti.index},
						deviation: dev,
					})
				}
			}
			if len(cands) == 0 {
				continue
			}

			// Deterministic tie-break: deviation first, then the lower
			// placement index.
			sort.Slice(cands, func(a, b int) bool {
				if cands[a].deviation != cands[b].deviation {
					return cands[a].deviation < cands[b].deviation
				}
				if cands[a].anti.owner != cands[b].anti.owner {
					return cands[a].anti.owner < cands[b].anti.owner
				}
				return cands[a].anti.index < cands[b].anti.index
			})

			best := cands[0]
			if len(cands) > 1 {
				margin := math.Max(cfg.AmbiguityMargin*best.deviation, cfg.AmbiguityFloor)
				if cands[1].deviation-best.deviation <= margin {
					cs.Ambiguities = append(cs.Ambiguities, ValidationError{
						Kind:       KindConnectionAmbiguity,
						Placements: orderedPair(i, best.anti.owner),
						Message: fmt.Sprintf("connector %d of placement %d has %d near-equal candidates",
							stud.index, i, len(cands)),
					})
				}
			}

			// A socket accepts one stud; take the best still-free
			// candidate.
			matched := candidate{}
			found := false
			for _, c := range cands {
				if !usedAnti[c.anti] {
					matched = c
					found = true
					break
				}
			}
			if !found {
				continue
			}
			usedAnti[matched.anti] = true

			key := edgeKey{a: min(i, matched.anti.owner), b: max(i, matched.anti.owner)}
			if e, ok := edges[key]; ok {
				e.Pairs++
				e.Residual = math.Min(e.Residual, matched.deviation)
			} else {
				edges[key] = &Edge{A: key.a, B: key.b, Pairs: 1, Residual: matched.deviation}
			}
		}
	}

	for _, e := range edges {
		cs.Edges = append(cs.Edges, *e)
	}
	sort.Slice(cs.Edges, func(a, b int) bool {
		if cs.Edges[a].A != cs.Edges[b].A {
			return cs.Edges[a].A < cs.Edges[b].A
		}
		return cs.Edges[a].B < cs.Edges[b].B
	})

	for _, e := range cs.Edges {
		cs.adjacency[e.A] = append(cs.adjacency[e.A], e.B)
		cs.adjacency[e.B] = append(cs.adjacency[e.B], e.A)
	}

	return cs
}

// worldConnectors transforms every placement's connection points to
// world space, fanned out over the configured workers. Unverifiable
// placements get an empty list.
func worldConnectors(sg *SceneGraph, workers int) [][]worldConnector {
	worlds := make([][]worldConnector, sg.Len())

	indices := make([]int, sg.Len())
	for i := range indices {
		indices[i] = i
	}

	task(workers, indices, func(_ int, i int) {
		g := sg.Geometry(i)
		if g == nil {
			return
		}
		t := sg.Placement(i).Transform
		list := make([]worldConnector, 0, len(g.Connectors))
		for k, cp := range g.Connectors {
			list = append(list, worldConnector{
				owner: i,
				index: k,
				typ:   cp.Type,
				pos:   t.Apply(cp.Position),
				dir:   t.ApplyDirection(cp.Direction),
			})
		}
		worlds[i] = list
	})

	return worlds
}

// male reports whether the type drives the matching loop; the female
// side is covered symmetrically.
func male(t brick.ConnectorType) bool {
	return t == brick.ConnectorStud || t == brick.ConnectorPin
}

// mate evaluates one stud/anti-stud pairing and returns its combined
// deviation (lateral + axial misfit in LDU, plus the anti-parallel
// angle in radians).
func mate(stud, anti worldConnector, cfg Config) (float64, bool) {
	delta := anti.pos.Sub(stud.pos)
	axial := delta.Dot(stud.dir)
	lateral := delta.Sub(stud.dir.Mul(axial)).Len()

	// The socket reference sits one stud height behind the tip along
	// the stud axis.
	axialDev := math.Abs(axial + cfg.StudHeight)
	if lateral > cfg.PositionTolerance || axialDev > cfg.PositionTolerance {
		return 0, false
	}

	cos := -stud.dir.Dot(anti.dir)
	angle := math.Acos(mgl64.Clamp(cos, -1, 1))
	if angle > cfg.AngularTolerance {
		return 0, false
	}

	return lateral + axialDev + angle, true
}

func orderedPair(a, b int) []int {
	if a < b {
		return []int{a, b}
	}
	return []int{b, a}
}
