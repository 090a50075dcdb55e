package brick

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// AABB represents an axis-aligned bounding box
type AABB struct {
	Min mgl64.Vec3
	Max mgl64.Vec3
}

// ContainsPoint checks if a point is inside the AABB
func (a AABB) ContainsPoint(point mgl64.Vec3) bool {
	return point.X() >= a.Min.X() && point.X() <= a.Max.X() &&
		point.Y() >= a.Min.Y() && point.Y() <= a.Max.Y() &&
		point.Z() >= a.Min.Z() && point.Z() <= a.Max.Z()
}

// Overlaps checks if two AABBs overlap. Bounds are inclusive: boxes
// that only share a face still overlap.
func (a AABB) Overlaps(other AABB) bool {
	// AABBs overlap if they overlap on all three axes
	return a.Max.X() >= other.Min.X() && a.Min.X() <= other.Max.X() &&
		a.Max.Y() >= other.Min.Y() && a.Min.Y() <= other.Max.Y() &&
		a.Max.Z() >= other.Min.Z() && a.Min.Z() <= other.Max.Z()
}

// Expand grows the box by d on every side.
func (a AABB) Expand(d float64) AABB {
	e := mgl64.Vec3{d, d, d}
	return AABB{Min: a.Min.Sub(e), Max: a.Max.Add(e)}
}

// Shrink contracts the box by d on every side. A box thinner than 2d
// on some axis inverts there and no longer overlaps anything.
func (a AABB) Shrink(d float64) AABB {
	return a.Expand(-d)
}

// Overlap returns the per-axis overlap extents with other. An extent
// is positive where the volumes interpenetrate, zero where the faces
// touch and negative where they are apart.
func (a AABB) Overlap(other AABB) mgl64.Vec3 {
	return mgl64.Vec3{
		math.Min(a.Max.X(), other.Max.X()) - math.Max(a.Min.X(), other.Min.X()),
		math.Min(a.Max.Y(), other.Max.Y()) - math.Max(a.Min.Y(), other.Min.Y()),
		math.Min(a.Max.Z(), other.Max.Z()) - math.Max(a.Min.Z(), other.Min.Z()),
	}
}

// Union returns the smallest box enclosing both a and other.
func (a AABB) Union(other AABB) AABB {
	return AABB{
		Min: mgl64.Vec3{
			math.Min(a.Min.X(), other.Min.X()),
			math.Min(a.Min.Y(), other.Min.Y()),
			math.Min(a.Min.Z(), other.Min.Z()),
		},
		Max: mgl64.Vec3{
			math.Max(a.Max.X(), other.Max.X()),
			math.Max(a.Max.Y(), other.Max.Y()),
			math.Max(a.Max.Z(), other.Max.Z()),
		},
	}
}

// Transformed returns the axis-aligned envelope of the box under t.
// The eight corners are rotated and translated into world space; the
// result can be larger than the local box, never smaller.
func (a AABB) Transformed(t Transform) AABB {
	corners := [8]mgl64.Vec3{
		{a.Min.X(), a.Min.Y(), a.Min.Z()},
		{a.Max.X(), a.Min.Y(), a.Min.Z()},
		{a.Min.X(), a.Max.Y(), a.Min.Z()},
		{a.Max.X(), a.Max.Y(), a.Min.Z()},
		{a.Min.X(), a.Min.Y(), a.Max.Z()},
		{a.Max.X(), a.Min.Y(), a.Max.Z()},
		{a.Min.X(), a.Max.Y(), a.Max.Z()},
		{a.Max.X(), a.Max.Y(), a.Max.Z()},
	}

	worldCorner := t.Apply(corners[0])
	min := worldCorner
	max := worldCorner

	for i := 1; i < 8; i++ {
		worldCorner = t.Apply(corners[i])

		min[0] = math.Min(min[0], worldCorner[0])
		min[1] = math.Min(min[1], worldCorner[1])
		min[2] = math.Min(min[2], worldCorner[2])

		max[0] = math.Max(max[0], worldCorner[0])
		max[1] = math.Max(max[1], worldCorner[1])
		max[2] = math.Max(max[2], worldCorner[2])
	}

	return AABB{Min: min, Max: max}
}
