package mortar

import (
	"fmt"
	"math"

	"github.com/akmonengine/mortar/brick"
	"github.com/akmonengine/mortar/catalog"
)

// CheckGridAlignment flags world studs that land off the stud grid.
// Even-footprint parts put studs at 10 mod 20 on X and Z, odd ones at
// 0 mod 20; anything else is usually a sign of a misrotated or
// misplaced part. Diagnostic only.
func CheckGridAlignment(sg *SceneGraph, cs *ConnectionSet, cfg Config) []ValidationError {
	worlds := cs.worlds
	if worlds == nil {
		worlds = worldConnectors(sg, cfg.Workers)
	}

	var errs []ValidationError
	for i := 0; i < sg.Len(); i++ {
		var off []string
		for _, c := range worlds[i] {
			if c.typ != brick.ConnectorStud {
				continue
			}
			if !onStudGrid(c.pos.X()) || !onStudGrid(c.pos.Z()) {
				off = append(off, fmt.Sprintf("stud %d at (%.2f, %.2f, %.2f)",
					c.index, c.pos.X(), c.pos.Y(), c.pos.Z()))
			}
		}
		if len(off) > 0 {
			errs = append(errs, ValidationError{
				Kind:        KindGridAlignment,
				Placements:  []int{i},
				Message:     fmt.Sprintf("placement %d (%s) has %d studs off the grid", i, sg.Placement(i).PartID, len(off)),
				Diagnostics: off,
			})
		}
	}
	return errs
}

// onStudGrid reports whether a coordinate sits on a half-pitch grid
// line, within rounding slack for rotated transforms.
func onStudGrid(v float64) bool {
	const slack = 0.01
	half := catalog.StudPitch / 2
	_, frac := math.Modf(math.Abs(v)/half + slack)
	return frac <= 2*slack
}
