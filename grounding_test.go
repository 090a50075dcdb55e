package mortar

import (
	"testing"
)

func runGrounding(t *testing.T, cfg Config, sg *SceneGraph) []ValidationError {
	t.Helper()
	return CheckGrounding(sg, MatchConnections(sg, cfg), cfg)
}

func TestCheckGroundingTower(t *testing.T) {
	// A three-brick tower: only the base touches Y = 0, the rest is
	// grounded transitively.
	cfg := DefaultConfig()
	sg := testSceneGraph(t, cfg,
		place("3001", 0, 0, 0),
		place("3001", 0, 24, 0),
		place("3001", 0, 48, 0),
	)

	if errs := runGrounding(t, cfg, sg); len(errs) != 0 {
		t.Errorf("ungrounded = %v, want none for a tower", errs)
	}
}

func TestCheckGroundingFloatingBrick(t *testing.T) {
	cfg := DefaultConfig()
	sg := testSceneGraph(t, cfg,
		place("3001", 0, 100, 0),
	)

	errs := runGrounding(t, cfg, sg)
	if len(errs) != 1 {
		t.Fatalf("ungrounded = %d, want 1", len(errs))
	}
	if errs[0].Kind != KindUngrounded || errs[0].Placements[0] != 0 {
		t.Errorf("error = %v, want placement 0 ungrounded", errs[0])
	}
	if len(errs[0].Diagnostics) == 0 {
		t.Errorf("floating report should mention nearby candidates or their absence")
	}
}

func TestCheckGroundingHoveringPair(t *testing.T) {
	// Two connected bricks floating together: both are reported, the
	// connection between them does not rescue either.
	cfg := DefaultConfig()
	sg := testSceneGraph(t, cfg,
		place("3001", 0, 100, 0),
		place("3001", 0, 124, 0),
	)

	errs := runGrounding(t, cfg, sg)
	if len(errs) != 2 {
		t.Fatalf("ungrounded = %d, want 2", len(errs))
	}
}

func TestCheckGroundingBaseplateAnchor(t *testing.T) {
	// A baseplate anchors regardless of connector directions, and a
	// brick seated on its studs is grounded through it.
	cfg := DefaultConfig()
	sg := testSceneGraph(t, cfg,
		place("3811", 0, 0, 0),
		place("3001", 0, 4, 0),
	)

	if errs := runGrounding(t, cfg, sg); len(errs) != 0 {
		t.Errorf("ungrounded = %v, want none on a baseplate", errs)
	}
}

func TestCheckGroundingDisconnectedIsland(t *testing.T) {
	cfg := DefaultConfig()
	sg := testSceneGraph(t, cfg,
		place("3001", 0, 0, 0),
		place("3001", 0, 24, 0),
		place("3001", 200, 50, 0),
	)

	errs := runGrounding(t, cfg, sg)
	if len(errs) != 1 {
		t.Fatalf("ungrounded = %d, want 1", len(errs))
	}
	if errs[0].Placements[0] != 2 {
		t.Errorf("ungrounded placement = %d, want 2", errs[0].Placements[0])
	}
}

func TestCheckGroundingToleranceSlack(t *testing.T) {
	cfg := DefaultConfig()

	tests := []struct {
		name       string
		y          float64
		ungrounded int
	}{
		{"on the plane", 0, 0},
		{"within tolerance", 0.3, 0},
		{"above tolerance", 2, 1},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			sg := testSceneGraph(t, cfg, place("3001", 0, test.y, 0))
			if errs := runGrounding(t, cfg, sg); len(errs) != test.ungrounded {
				t.Errorf("ungrounded = %d, want %d", len(errs), test.ungrounded)
			}
		})
	}
}

func TestCheckGroundingSkipsUnverifiable(t *testing.T) {
	// An unknown part floating in space is reported by the geometry
	// lookup, not as ungrounded.
	cfg := DefaultConfig()
	sg := testSceneGraph(t, cfg,
		place("3001", 0, 0, 0),
		place("nosuchpart", 0, 100, 0),
	)

	if errs := runGrounding(t, cfg, sg); len(errs) != 0 {
		t.Errorf("ungrounded = %v, want none for unverifiable placements", errs)
	}
}

func TestCheckGroundingEmptyScene(t *testing.T) {
	cfg := DefaultConfig()
	sg := testSceneGraph(t, cfg)
	if errs := runGrounding(t, cfg, sg); errs != nil {
		t.Errorf("errors = %v, want nil for an empty scene", errs)
	}
}
