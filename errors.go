package mortar

import (
	"fmt"
	"strings"
)

// ErrorKind classifies a validation finding.
type ErrorKind int

const (
	// KindStructural marks a cyclic or unresolved submodel reference.
	// Fatal: the run aborts before the scene graph is usable.
	KindStructural ErrorKind = iota
	// KindGeometryLookup marks a placement whose part id has no
	// catalog geometry. The placement is unverifiable; the rest of the
	// model is still validated.
	KindGeometryLookup
	// KindCollision marks an illegal volume overlap between two
	// placements.
	KindCollision
	// KindUngrounded marks a placement unreachable from any ground
	// anchor through valid connections.
	KindUngrounded
	// KindConnectionAmbiguity notes a connection point that had
	// several near-equal candidates. Diagnostic only, never fails a
	// run.
	KindConnectionAmbiguity
	// KindGridAlignment notes world studs landing off the stud grid.
	// Diagnostic only.
	KindGridAlignment
)

func (k ErrorKind) String() string {
	switch k {
	case KindStructural:
		return "structural"
	case KindGeometryLookup:
		return "geometry-lookup"
	case KindCollision:
		return "collision"
	case KindUngrounded:
		return "ungrounded"
	case KindConnectionAmbiguity:
		return "connection-ambiguity"
	case KindGridAlignment:
		return "grid-alignment"
	}
	return "unknown"
}

// MarshalText renders the kind by name in JSON reports.
func (k ErrorKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Fatal reports whether the kind aborts a run.
func (k ErrorKind) Fatal() bool { return k == KindStructural }

// Diagnostic reports whether the kind never affects pass/fail.
func (k ErrorKind) Diagnostic() bool {
	return k == KindConnectionAmbiguity || k == KindGridAlignment
}

// ValidationError is one finding of a validation run.
type ValidationError struct {
	Kind        ErrorKind
	Placements  []int // affected placement indices, ascending
	Message     string
	Diagnostics []string
}

func (e ValidationError) String() string {
	if len(e.Placements) == 0 {
		return fmt.Sprintf("[%s] %s", e.Kind, e.Message)
	}
	return fmt.Sprintf("[%s] %s (placements %v)", e.Kind, e.Message, e.Placements)
}

// StructuralError reports an unresolvable model structure: a cyclic
// reference, an unknown submodel name or pathological nesting depth.
type StructuralError struct {
	Reason string   // "cyclic reference", "unresolved reference", "max depth exceeded"
	Model  string   // model being resolved when the failure occurred
	Ref    string   // offending reference, if any
	Path   []string // reference path from the root model
}

func (e *StructuralError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "structural error: %s", e.Reason)
	if e.Ref != "" {
		fmt.Fprintf(&b, " %q", e.Ref)
	}
	if e.Model != "" {
		fmt.Fprintf(&b, " in model %q", e.Model)
	}
	if len(e.Path) > 0 {
		fmt.Fprintf(&b, " (path %s)", strings.Join(e.Path, " -> "))
	}
	return b.String()
}
