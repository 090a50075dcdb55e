package mortar

import (
	"fmt"
	"math"
)

// groundAnchor reports whether placement i rests on the build surface:
// either the part itself is a ground surface, or it has a
// downward-facing connector within the ground tolerance of the Y = 0
// plane.
func groundAnchor(sg *SceneGraph, worlds [][]worldConnector, i int, cfg Config) bool {
	g := sg.Geometry(i)
	if g == nil {
		return false
	}
	if g.GroundSurface() {
		return true
	}

	for _, c := range worlds[i] {
		if c.dir.Y() >= -0.5 {
			continue
		}
		if math.Abs(c.pos.Y()) <= cfg.GroundTolerance {
			return true
		}
	}
	return false
}

// CheckGrounding traverses the connectivity graph from every ground
// anchor and reports the placements left unreached. One path to ground
// suffices; extra connections are not scored.
func CheckGrounding(sg *SceneGraph, cs *ConnectionSet, cfg Config) []ValidationError {
	if sg.Len() == 0 {
		return nil
	}

	worlds := cs.worlds
	if worlds == nil {
		worlds = worldConnectors(sg, cfg.Workers)
	}

	grounded := make([]bool, sg.Len())
	queue := make([]int, 0, sg.Len())

	for i := 0; i < sg.Len(); i++ {
		if groundAnchor(sg, worlds, i, cfg) {
			grounded[i] = true
			queue = append(queue, i)
		}
	}

	// BFS over connection edges.
	for head := 0; head < len(queue); head++ {
		u := queue[head]
		for _, v := range cs.Neighbors(u) {
			if !grounded[v] {
				grounded[v] = true
				queue = append(queue, v)
			}
		}
	}

	var errs []ValidationError
	for i := 0; i < sg.Len(); i++ {
		if grounded[i] || !sg.Verifiable(i) {
			continue
		}
		errs = append(errs, ValidationError{
			Kind:        KindUngrounded,
			Placements:  []int{i},
			Message:     fmt.Sprintf("placement %d (%s) is not connected to the ground", i, sg.Placement(i).PartID),
			Diagnostics: nearestCandidates(sg, worlds, i, cfg),
		})
	}
	return errs
}

// nearestCandidates looks for the closest complementary connectors a
// floating placement almost reaches, for the error report.
func nearestCandidates(sg *SceneGraph, worlds [][]worldConnector, i int, cfg Config) []string {
	radius := 2 * (cfg.PositionTolerance + cfg.StudHeight)

	bestDist := math.Inf(1)
	var best worldConnector
	found := false

	for _, own := range worlds[i] {
		for _, j := range sg.QueryPoint(own.pos, radius) {
			if j == i {
				continue
			}
			for _, other := range worlds[j] {
				if !own.typ.Complements(other.typ) {
					continue
				}
				if d := other.pos.Sub(own.pos).Len(); d < bestDist {
					bestDist = d
					best = other
					found = true
				}
			}
		}
	}

	if !found {
		return []string{"no connection candidates nearby"}
	}
	return []string{fmt.Sprintf(
		"nearest candidate: %s %d of placement %d at %.2f LDU",
		best.typ, best.index, best.owner, bestDist,
	)}
}
