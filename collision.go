package mortar

import (
	"fmt"
	"sort"
	"sync"
)

// Pair is a pair of placements whose world volumes overlap, a < b.
type Pair struct {
	A, B int
}

// Collision is a confirmed illegal overlap between two placements.
type Collision struct {
	Pair
	// Overlap extents of the unshrunk volumes per axis, for
	// diagnostics.
	Overlap [3]float64
}

// BroadPhase streams candidate pairs from the spatial index. Each
// unordered pair is generated exactly once; unverifiable placements
// never appear (they are not indexed).
func BroadPhase(sg *SceneGraph) <-chan Pair {
	pairs := make(chan Pair, 64)

	go func() {
		defer close(pairs)

		for i := 0; i < sg.Len(); i++ {
			if !sg.Verifiable(i) {
				continue
			}
			box := sg.WorldBox(i)
			for _, j := range sg.QueryBox(box.Min, box.Max) {
				// Deterministic order, no duplicates.
				if j <= i {
					continue
				}
				pairs <- Pair{A: i, B: j}
			}
		}
	}()

	return pairs
}

// NarrowPhase confirms candidate pairs. Both volumes are shrunk by the
// collision tolerance on every side and re-tested; a pair collides
// only when the shrunk volumes still interpenetrate with positive
// extent on all three axes. Touching faces and stud-deep overlaps
// between stacked parts pass.
func NarrowPhase(sg *SceneGraph, pairs <-chan Pair, cfg Config) []Collision {
	workers := max(1, cfg.Workers)
	out := make(chan Collision, workers*2)

	go func() {
		var wg sync.WaitGroup
		defer close(out)

		for range workers {
			wg.Add(1)
			go func() {
				defer wg.Done()

				for p := range pairs {
					boxA := sg.WorldBox(p.A)
					boxB := sg.WorldBox(p.B)

					shrunk := boxA.Shrink(cfg.CollisionShrink).Overlap(boxB.Shrink(cfg.CollisionShrink))
					if shrunk.X() <= 0 || shrunk.Y() <= 0 || shrunk.Z() <= 0 {
						continue
					}

					full := boxA.Overlap(boxB)
					out <- Collision{
						Pair:    p,
						Overlap: [3]float64{full.X(), full.Y(), full.Z()},
					}
				}
			}()
		}
		wg.Wait()
	}()

	collisions := make([]Collision, 0)
	for c := range out {
		collisions = append(collisions, c)
	}

	sort.Slice(collisions, func(a, b int) bool {
		if collisions[a].A != collisions[b].A {
			return collisions[a].A < collisions[b].A
		}
		return collisions[a].B < collisions[b].B
	})
	return collisions
}

// CheckCollisions runs both phases and reports each colliding pair
// exactly once.
func CheckCollisions(sg *SceneGraph, cfg Config) []ValidationError {
	var errs []ValidationError
	for _, c := range NarrowPhase(sg, BroadPhase(sg), cfg) {
		errs = append(errs, ValidationError{
			Kind:       KindCollision,
			Placements: []int{c.A, c.B},
			Message: fmt.Sprintf("placements %d (%s) and %d (%s) overlap",
				c.A, sg.Placement(c.A).PartID, c.B, sg.Placement(c.B).PartID),
			Diagnostics: []string{
				fmt.Sprintf("overlap extents %.2f x %.2f x %.2f LDU", c.Overlap[0], c.Overlap[1], c.Overlap[2]),
			},
		})
	}
	return errs
}
