// Package mortar validates the physical buildability of digitally
// assembled brick models: every part must be free of illegal overlaps
// and reachable from the ground through valid stud connections.
//
// The engine consumes a parsed model dictionary (see the ldraw
// package) and a part-geometry catalog (see the catalog package), and
// reports every finding of a run in one pass.
package mortar

import (
	"sync"
	"time"

	"github.com/akmonengine/mortar/brick"
	"github.com/akmonengine/mortar/catalog"
)

// Validator is the synchronous entry point of the engine. It is
// stateless between runs and safe for concurrent use: each run builds
// its own scene graph, sharing only the read-only catalog.
type Validator struct {
	source catalog.Source
	cfg    Config
}

// New creates a validator over the given catalog and tolerances.
func New(source catalog.Source, cfg Config) *Validator {
	return &Validator{source: source, cfg: cfg}
}

// Validate flattens the root model, indexes the scene and runs every
// check, accumulating all findings rather than failing fast. Collision
// checking and connection matching execute concurrently over the
// immutable scene graph; grounding waits for the connection graph.
// Only a structural failure (cyclic or unresolved submodel reference)
// short-circuits the run.
func (v *Validator) Validate(root string, models map[string]*brick.Model) *Result {
	start := time.Now()
	res := &Result{State: StateUnvalidated}

	loader := NewLoader(models, v.cfg)
	placements, err := loader.Flatten(root)
	if err != nil {
		res.State = StateFailed
		res.Errors = []ValidationError{{Kind: KindStructural, Message: err.Error()}}
		res.Elapsed = time.Since(start)
		return res
	}
	res.State = StateLoaded
	res.Placements = len(placements)

	sg := NewSceneGraph(placements, v.source, v.cfg)
	res.Bounds = sg.Bounds()

	// Both stages are pure reads over the finished scene graph.
	var (
		conns      *ConnectionSet
		collisions []ValidationError
		wg         sync.WaitGroup
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		conns = MatchConnections(sg, v.cfg)
	}()
	go func() {
		defer wg.Done()
		collisions = CheckCollisions(sg, v.cfg)
	}()
	wg.Wait()
	res.State = StateCollisionChecked
	res.Connections = len(conns.Edges)

	grounding := CheckGrounding(sg, conns, v.cfg)
	res.State = StateGroundingChecked

	res.Errors = append(res.Errors, sg.LookupErrors()...)
	res.Errors = append(res.Errors, collisions...)
	res.Errors = append(res.Errors, grounding...)
	res.Errors = append(res.Errors, conns.Ambiguities...)
	if v.cfg.CheckGridAlignment {
		res.Errors = append(res.Errors, CheckGridAlignment(sg, conns, v.cfg)...)
	}

	res.Pass = true
	for _, e := range res.Errors {
		if !e.Kind.Diagnostic() {
			res.Pass = false
			break
		}
	}

	res.State = StateComplete
	res.Elapsed = time.Since(start)
	return res
}
