package mortar

import (
	"fmt"
	"strings"
	"time"

	"github.com/akmonengine/mortar/brick"
)

// RunState tracks the lifecycle of one validation run. Connection
// matching and collision checking only read the finished scene graph,
// so their states are reached in either order.
type RunState int

const (
	StateUnvalidated RunState = iota
	StateLoaded
	// StateConnectionsResolved is the connection-stage counterpart of
	// StateCollisionChecked. Validate runs both stages concurrently and
	// its single State field records the finished pair as
	// StateCollisionChecked; this value is for callers driving
	// MatchConnections on its own.
	StateConnectionsResolved
	StateCollisionChecked
	StateGroundingChecked
	StateComplete
	StateFailed
)

func (s RunState) String() string {
	switch s {
	case StateUnvalidated:
		return "unvalidated"
	case StateLoaded:
		return "loaded"
	case StateConnectionsResolved:
		return "connections-resolved"
	case StateCollisionChecked:
		return "collision-checked"
	case StateGroundingChecked:
		return "grounding-checked"
	case StateComplete:
		return "complete"
	case StateFailed:
		return "failed"
	}
	return "unknown"
}

// Result is the outcome of one validation run. It is immutable after
// construction and the run's only externally visible output.
type Result struct {
	// Pass is true when no blocking findings were recorded.
	// Diagnostic-only kinds never clear it.
	Pass   bool
	Errors []ValidationError
	State  RunState

	// Summary metadata.
	Placements  int
	Bounds      brick.AABB
	Connections int
	Elapsed     time.Duration
}

// String renders a short human-readable report.
func (r *Result) String() string {
	var b strings.Builder
	if r.Pass {
		fmt.Fprintf(&b, "PASS: %d placements, %d connections, %s\n", r.Placements, r.Connections, r.Elapsed.Round(time.Microsecond))
	} else {
		fmt.Fprintf(&b, "FAIL: %d placements, %d findings, %s\n", r.Placements, len(r.Errors), r.Elapsed.Round(time.Microsecond))
	}
	for _, e := range r.Errors {
		fmt.Fprintf(&b, "  %s\n", e)
		for _, d := range e.Diagnostics {
			fmt.Fprintf(&b, "    %s\n", d)
		}
	}
	return b.String()
}
