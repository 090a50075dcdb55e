// Package brick defines the geometric leaf types shared by the
// validation engine: transforms, placements, bounding volumes and
// part geometry.
//
// Coordinates are right-handed with +Y up; the ground plane is Y = 0.
// Lengths are in LDU (stud pitch 20, brick height 24, plate height 8,
// stud height 4).
package brick

import "github.com/go-gl/mathgl/mgl64"

// Transform places a part in world space: a translation plus a 3x3
// rotation matrix applied to column vectors. The matrix is orthonormal
// with determinant ±1; mirrored placements keep their reflection and
// are never renormalized.
type Transform struct {
	Position mgl64.Vec3
	Rotation mgl64.Mat3
}

// NewTransform creates an identity transform
func NewTransform() Transform {
	return Transform{
		Position: mgl64.Vec3{0, 0, 0},
		Rotation: mgl64.Ident3(),
	}
}

// Apply maps a local point to world space: R*p + T.
func (t Transform) Apply(p mgl64.Vec3) mgl64.Vec3 {
	return t.Rotation.Mul3x1(p).Add(t.Position)
}

// ApplyDirection maps a local direction to world space. Directions
// rotate but do not translate.
func (t Transform) ApplyDirection(d mgl64.Vec3) mgl64.Vec3 {
	return t.Rotation.Mul3x1(d)
}

// Compose returns the world transform of a child placed relative to t:
//
//	position = t.Position + t.Rotation × child.Position
//	rotation = t.Rotation × child.Rotation
func (t Transform) Compose(child Transform) Transform {
	return Transform{
		Position: t.Position.Add(t.Rotation.Mul3x1(child.Position)),
		Rotation: t.Rotation.Mul3(child.Rotation),
	}
}
