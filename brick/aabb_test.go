package brick

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func vec3Equal(a, b mgl64.Vec3, eps float64) bool {
	return math.Abs(a.X()-b.X()) < eps &&
		math.Abs(a.Y()-b.Y()) < eps &&
		math.Abs(a.Z()-b.Z()) < eps
}

func TestAABBOverlaps(t *testing.T) {
	base := AABB{Min: mgl64.Vec3{0, 0, 0}, Max: mgl64.Vec3{10, 10, 10}}

	tests := []struct {
		name     string
		other    AABB
		expected bool
	}{
		{"identical", base, true},
		{"contained", AABB{Min: mgl64.Vec3{2, 2, 2}, Max: mgl64.Vec3{8, 8, 8}}, true},
		{"partial", AABB{Min: mgl64.Vec3{5, 5, 5}, Max: mgl64.Vec3{15, 15, 15}}, true},
		{"touching face", AABB{Min: mgl64.Vec3{10, 0, 0}, Max: mgl64.Vec3{20, 10, 10}}, true},
		{"touching corner", AABB{Min: mgl64.Vec3{10, 10, 10}, Max: mgl64.Vec3{20, 20, 20}}, true},
		{"disjoint x", AABB{Min: mgl64.Vec3{11, 0, 0}, Max: mgl64.Vec3{20, 10, 10}}, false},
		{"disjoint y", AABB{Min: mgl64.Vec3{0, -20, 0}, Max: mgl64.Vec3{10, -1, 10}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := base.Overlaps(tt.other); got != tt.expected {
				t.Errorf("Overlaps(%v) = %v, want %v", tt.other, got, tt.expected)
			}
			if got := tt.other.Overlaps(base); got != tt.expected {
				t.Errorf("Overlaps is not symmetric for %v", tt.other)
			}
		})
	}
}

func TestAABBContainsPoint(t *testing.T) {
	box := AABB{Min: mgl64.Vec3{-1, -1, -1}, Max: mgl64.Vec3{1, 1, 1}}

	tests := []struct {
		name     string
		point    mgl64.Vec3
		expected bool
	}{
		{"center", mgl64.Vec3{0, 0, 0}, true},
		{"face", mgl64.Vec3{1, 0, 0}, true},
		{"corner", mgl64.Vec3{1, 1, 1}, true},
		{"outside", mgl64.Vec3{1.01, 0, 0}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := box.ContainsPoint(tt.point); got != tt.expected {
				t.Errorf("ContainsPoint(%v) = %v, want %v", tt.point, got, tt.expected)
			}
		})
	}
}

func TestAABBShrink(t *testing.T) {
	box := AABB{Min: mgl64.Vec3{0, 0, 0}, Max: mgl64.Vec3{10, 10, 10}}

	shrunk := box.Shrink(2)
	if !vec3Equal(shrunk.Min, mgl64.Vec3{2, 2, 2}, 1e-12) || !vec3Equal(shrunk.Max, mgl64.Vec3{8, 8, 8}, 1e-12) {
		t.Errorf("Shrink(2) = %v", shrunk)
	}

	// A box thinner than the shrink amount inverts and overlaps
	// nothing, itself included.
	thin := AABB{Min: mgl64.Vec3{0, 0, 0}, Max: mgl64.Vec3{10, 3, 10}}.Shrink(2)
	if thin.Overlaps(thin) {
		t.Error("inverted box should not overlap itself")
	}
}

func TestAABBOverlapExtents(t *testing.T) {
	a := AABB{Min: mgl64.Vec3{0, 0, 0}, Max: mgl64.Vec3{10, 10, 10}}
	b := AABB{Min: mgl64.Vec3{6, 10, -5}, Max: mgl64.Vec3{16, 20, 5}}

	got := a.Overlap(b)
	want := mgl64.Vec3{4, 0, 5}
	if !vec3Equal(got, want, 1e-12) {
		t.Errorf("Overlap = %v, want %v", got, want)
	}
}

func TestAABBTransformedIdentityRotation(t *testing.T) {
	// With an identity rotation the world volume is the local box
	// translated by the position.
	box := AABB{Min: mgl64.Vec3{-20, 0, -40}, Max: mgl64.Vec3{20, 28, 40}}
	tr := Transform{Position: mgl64.Vec3{5, 24, -7}, Rotation: mgl64.Ident3()}

	got := box.Transformed(tr)
	wantMin := mgl64.Vec3{-15, 24, -47}
	wantMax := mgl64.Vec3{25, 52, 33}

	if !vec3Equal(got.Min, wantMin, 1e-9) || !vec3Equal(got.Max, wantMax, 1e-9) {
		t.Errorf("Transformed = %v, want [%v, %v]", got, wantMin, wantMax)
	}
}

func TestAABBTransformedQuarterTurns(t *testing.T) {
	// A square footprint keeps its footprint under any multiple of 90°
	// about the vertical axis.
	box := AABB{Min: mgl64.Vec3{-20, 0, -20}, Max: mgl64.Vec3{20, 24, 20}}

	for _, quarters := range []int{0, 1, 2, 3, 4} {
		tr := Transform{Rotation: mgl64.Rotate3DY(float64(quarters) * math.Pi / 2)}
		got := box.Transformed(tr)
		if !vec3Equal(got.Min, box.Min, 1e-9) || !vec3Equal(got.Max, box.Max, 1e-9) {
			t.Errorf("%d quarter turns: got %v, want %v", quarters, got, box)
		}
	}
}

func TestAABBTransformedRotationEnlarges(t *testing.T) {
	// A 45° turn about Y grows the envelope of a non-square box.
	box := AABB{Min: mgl64.Vec3{-20, 0, -40}, Max: mgl64.Vec3{20, 24, 40}}
	tr := Transform{Rotation: mgl64.Rotate3DY(math.Pi / 4)}

	got := box.Transformed(tr)
	extent := math.Sqrt2 * 30 // projection of the widest corner

	if !mgl64.FloatEqualThreshold(got.Max.X(), extent, 1e-9) {
		t.Errorf("rotated Max.X = %v, want %v", got.Max.X(), extent)
	}
	if !mgl64.FloatEqualThreshold(got.Min.Y(), 0, 1e-9) || !mgl64.FloatEqualThreshold(got.Max.Y(), 24, 1e-9) {
		t.Errorf("vertical extent should be unchanged, got [%v, %v]", got.Min.Y(), got.Max.Y())
	}
}

func TestAABBTransformedReflection(t *testing.T) {
	// Mirrored placements (determinant -1) still produce a valid
	// envelope.
	mirror := mgl64.Mat3{-1, 0, 0, 0, 1, 0, 0, 0, 1} // column-major X mirror
	if det := mirror.Det(); !mgl64.FloatEqualThreshold(det, -1, 1e-12) {
		t.Fatalf("mirror determinant = %v, want -1", det)
	}

	box := AABB{Min: mgl64.Vec3{0, 0, 0}, Max: mgl64.Vec3{10, 20, 30}}
	got := box.Transformed(Transform{Rotation: mirror})

	wantMin := mgl64.Vec3{-10, 0, 0}
	wantMax := mgl64.Vec3{0, 20, 30}
	if !vec3Equal(got.Min, wantMin, 1e-12) || !vec3Equal(got.Max, wantMax, 1e-12) {
		t.Errorf("mirrored box = %v, want [%v, %v]", got, wantMin, wantMax)
	}
}

func TestAABBUnion(t *testing.T) {
	a := AABB{Min: mgl64.Vec3{0, 0, 0}, Max: mgl64.Vec3{1, 1, 1}}
	b := AABB{Min: mgl64.Vec3{-5, 2, 0}, Max: mgl64.Vec3{0, 3, 7}}

	got := a.Union(b)
	if !vec3Equal(got.Min, mgl64.Vec3{-5, 0, 0}, 1e-12) || !vec3Equal(got.Max, mgl64.Vec3{1, 3, 7}, 1e-12) {
		t.Errorf("Union = %v", got)
	}
}
