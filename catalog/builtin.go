package catalog

import (
	"fmt"

	"github.com/akmonengine/mortar/brick"
	"github.com/go-gl/mathgl/mgl64"
)

// Standard LDU dimensions of the system bricks.
const (
	StudPitch   = 20.0
	StudHeight  = 4.0
	BrickHeight = 24.0
	PlateHeight = 8.0
	BaseHeight  = 4.0
)

var (
	up   = mgl64.Vec3{0, 1, 0}
	down = mgl64.Vec3{0, -1, 0}
)

// studGrid returns the stud center coordinates of a w x l footprint,
// centered on the part origin.
func studGrid(w, l int) []mgl64.Vec3 {
	centers := make([]mgl64.Vec3, 0, w*l)
	for i := 0; i < w; i++ {
		for j := 0; j < l; j++ {
			centers = append(centers, mgl64.Vec3{
				-float64(w)*StudPitch/2 + StudPitch/2 + float64(i)*StudPitch,
				0,
				-float64(l)*StudPitch/2 + StudPitch/2 + float64(j)*StudPitch,
			})
		}
	}
	return centers
}

// rectPart builds a rectangular part: footprint w x l studs, body
// height h, origin at the bottom center. Studs sit on the top face
// with their tips a stud height above it; anti-studs open on the
// bottom face. The bounding volume includes the studs.
func rectPart(id, name, category string, w, l int, h float64, studs, antiStuds bool) brick.PartGeometry {
	hw := float64(w) * StudPitch / 2
	hl := float64(l) * StudPitch / 2

	top := h
	if studs {
		top += StudHeight
	}

	g := brick.PartGeometry{
		PartID:   id,
		Name:     name,
		Category: category,
		Bounds: brick.AABB{
			Min: mgl64.Vec3{-hw, 0, -hl},
			Max: mgl64.Vec3{hw, top, hl},
		},
	}

	for _, c := range studGrid(w, l) {
		if studs {
			g.Connectors = append(g.Connectors, brick.ConnectionPoint{
				Type:      brick.ConnectorStud,
				Position:  mgl64.Vec3{c.X(), h + StudHeight, c.Z()},
				Direction: up,
			})
		}
		if antiStuds {
			g.Connectors = append(g.Connectors, brick.ConnectionPoint{
				Type:      brick.ConnectorAntiStud,
				Position:  mgl64.Vec3{c.X(), 0, c.Z()},
				Direction: down,
			})
		}
	}
	return g
}

// Brick returns a standard w x l brick.
func Brick(id string, w, l int) brick.PartGeometry {
	return rectPart(id, fmt.Sprintf("Brick %d x %d", w, l), "Brick", w, l, BrickHeight, true, true)
}

// Plate returns a standard w x l plate, a third of a brick tall.
func Plate(id string, w, l int) brick.PartGeometry {
	return rectPart(id, fmt.Sprintf("Plate %d x %d", w, l), "Plate", w, l, PlateHeight, true, true)
}

// Tile returns a w x l tile: smooth top, anti-studs only.
func Tile(id string, w, l int) brick.PartGeometry {
	return rectPart(id, fmt.Sprintf("Tile %d x %d", w, l), "Tile", w, l, PlateHeight, false, true)
}

// Baseplate returns a w x l build surface. Baseplates carry studs but
// no anti-studs and anchor whatever connects to them.
func Baseplate(id string, w, l int) brick.PartGeometry {
	return rectPart(id, fmt.Sprintf("Baseplate %d x %d", w, l), "Baseplate", w, l, BaseHeight, true, false)
}

// Builtin returns a catalog of the common parts, keyed by their LDraw
// part numbers. Used by tests and as the CLI fallback when no catalog
// database is given.
func Builtin() *Memory {
	m := NewMemory()
	for _, g := range []brick.PartGeometry{
		Brick("3001", 2, 4),
		Brick("3002", 2, 3),
		Brick("3003", 2, 2),
		Brick("3004", 1, 2),
		Brick("3005", 1, 1),
		Brick("3008", 1, 8),
		Brick("3010", 1, 4),
		Plate("3020", 2, 4),
		Plate("3021", 2, 3),
		Plate("3022", 2, 2),
		Plate("3023", 1, 2),
		Plate("3024", 1, 1),
		Plate("3710", 1, 4),
		Tile("3068b", 2, 2),
		Tile("3069b", 1, 2),
		Baseplate("3811", 32, 32),
		Baseplate("3867", 16, 16),
	} {
		m.Add(g)
	}
	return m
}
