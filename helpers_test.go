package mortar

import (
	"testing"

	"github.com/akmonengine/mortar/brick"
	"github.com/akmonengine/mortar/catalog"
	"github.com/go-gl/mathgl/mgl64"
)

// place positions a part with identity rotation.
func place(id string, x, y, z float64) brick.Placement {
	return brick.Placement{
		PartID: id,
		Transform: brick.Transform{
			Position: mgl64.Vec3{x, y, z},
			Rotation: mgl64.Ident3(),
		},
	}
}

// singleModel wraps placements into a one-model dictionary named main.
func singleModel(placements ...brick.Placement) map[string]*brick.Model {
	return map[string]*brick.Model{
		"main": {Name: "main", Placements: placements},
	}
}

// testSceneGraph builds a scene over the builtin catalog.
func testSceneGraph(t *testing.T, cfg Config, placements ...brick.Placement) *SceneGraph {
	t.Helper()
	return NewSceneGraph(placements, catalog.Builtin(), cfg)
}

func kindCount(errs []ValidationError, kind ErrorKind) int {
	n := 0
	for _, e := range errs {
		if e.Kind == kind {
			n++
		}
	}
	return n
}
