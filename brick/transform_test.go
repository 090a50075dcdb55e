package brick

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestTransformApply(t *testing.T) {
	tests := []struct {
		name     string
		tr       Transform
		point    mgl64.Vec3
		expected mgl64.Vec3
	}{
		{
			"identity",
			NewTransform(),
			mgl64.Vec3{1, 2, 3},
			mgl64.Vec3{1, 2, 3},
		},
		{
			"translation",
			Transform{Position: mgl64.Vec3{10, 20, 30}, Rotation: mgl64.Ident3()},
			mgl64.Vec3{1, 2, 3},
			mgl64.Vec3{11, 22, 33},
		},
		{
			"quarter turn about Y",
			Transform{Rotation: mgl64.Rotate3DY(math.Pi / 2)},
			mgl64.Vec3{1, 0, 0},
			mgl64.Vec3{0, 0, -1},
		},
		{
			"rotation then translation",
			Transform{Position: mgl64.Vec3{5, 0, 0}, Rotation: mgl64.Rotate3DY(math.Pi / 2)},
			mgl64.Vec3{1, 0, 0},
			mgl64.Vec3{5, 0, -1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.tr.Apply(tt.point)
			if !vec3Equal(got, tt.expected, 1e-9) {
				t.Errorf("Apply(%v) = %v, want %v", tt.point, got, tt.expected)
			}
		})
	}
}

func TestTransformApplyDirection(t *testing.T) {
	tr := Transform{Position: mgl64.Vec3{100, 100, 100}, Rotation: mgl64.Rotate3DZ(math.Pi)}

	got := tr.ApplyDirection(mgl64.Vec3{0, 1, 0})
	want := mgl64.Vec3{0, -1, 0}
	if !vec3Equal(got, want, 1e-9) {
		t.Errorf("ApplyDirection = %v, want %v; directions must not translate", got, want)
	}
}

func TestTransformCompose(t *testing.T) {
	parent := Transform{
		Position: mgl64.Vec3{0, 24, 0},
		Rotation: mgl64.Rotate3DY(math.Pi / 2),
	}
	child := Transform{
		Position: mgl64.Vec3{10, 0, 0},
		Rotation: mgl64.Rotate3DY(math.Pi / 2),
	}

	world := parent.Compose(child)

	// Position: parent position plus the rotated child offset.
	wantPos := mgl64.Vec3{0, 24, -10}
	if !vec3Equal(world.Position, wantPos, 1e-9) {
		t.Errorf("composed position = %v, want %v", world.Position, wantPos)
	}

	// Two quarter turns make a half turn.
	got := world.ApplyDirection(mgl64.Vec3{1, 0, 0})
	want := mgl64.Vec3{-1, 0, 0}
	if !vec3Equal(got, want, 1e-9) {
		t.Errorf("composed rotation maps x to %v, want %v", got, want)
	}
}

func TestTransformComposeMatchesSequentialApply(t *testing.T) {
	parent := Transform{Position: mgl64.Vec3{3, -1, 7}, Rotation: mgl64.Rotate3DX(0.3)}
	child := Transform{Position: mgl64.Vec3{-2, 5, 0}, Rotation: mgl64.Rotate3DZ(1.1)}
	point := mgl64.Vec3{0.5, -0.25, 2}

	viaCompose := parent.Compose(child).Apply(point)
	sequential := parent.Apply(child.Apply(point))

	if !vec3Equal(viaCompose, sequential, 1e-9) {
		t.Errorf("Compose+Apply = %v, Apply twice = %v", viaCompose, sequential)
	}
}

func TestTransformPreservesReflection(t *testing.T) {
	mirror := Transform{Rotation: mgl64.Mat3{-1, 0, 0, 0, 1, 0, 0, 0, 1}}
	composed := mirror.Compose(Transform{Rotation: mgl64.Rotate3DY(math.Pi / 3)})

	if det := composed.Rotation.Det(); !mgl64.FloatEqualThreshold(det, -1, 1e-9) {
		t.Errorf("composed determinant = %v, want -1; reflections must survive composition", det)
	}
}
