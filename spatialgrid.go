package mortar

import (
	"math"

	"github.com/akmonengine/mortar/brick"
	"github.com/go-gl/mathgl/mgl64"
)

// cellKey addresses one cell of the uniform grid.
type cellKey struct {
	X, Y, Z int
}

// cell holds the entries overlapping one grid cell.
type cell struct {
	entries []int
}

// GridIndex is a uniform hashed grid. Cell coordinates hash into a
// fixed power-of-two cell array, so memory stays bounded regardless of
// scene extent; hash collisions only ever add false positives, which
// the exact per-entry filter removes.
type GridIndex struct {
	cellSize float64
	cells    []cell
	cellMask int

	ids   []int
	boxes []brick.AABB
}

// NewGridIndex creates a grid with the given cell size and cell count
// (rounded up to a power of two).
func NewGridIndex(cellSize float64, numCells int) *GridIndex {
	numCells = nextPowerOfTwo(numCells)

	cells := make([]cell, numCells)
	for i := range cells {
		cells[i].entries = make([]int, 0, 8)
	}

	return &GridIndex{
		cellSize: cellSize,
		cells:    cells,
		cellMask: numCells - 1,
	}
}

func nextPowerOfTwo(n int) int {
	if n <= 0 {
		return 1
	}
	n--
	n |= n >> 1
	n |= n >> 2
	n |= n >> 4
	n |= n >> 8
	n |= n >> 16
	n++
	return n
}

// Insert registers a box in every cell it touches.
func (g *GridIndex) Insert(id int, box brick.AABB) {
	entry := len(g.ids)
	g.ids = append(g.ids, id)
	g.boxes = append(g.boxes, box)

	minCell := g.worldToCell(box.Min)
	maxCell := g.worldToCell(box.Max)

	for x := minCell.X; x <= maxCell.X; x++ {
		for y := minCell.Y; y <= maxCell.Y; y++ {
			for z := minCell.Z; z <= maxCell.Z; z++ {
				idx := g.hashCell(cellKey{x, y, z})
				g.cells[idx].entries = append(g.cells[idx].entries, entry)
			}
		}
	}
}

func (g *GridIndex) QueryBox(min, max mgl64.Vec3) []int {
	query := brick.AABB{Min: min, Max: max}

	var hits []int
	seen := make(map[int]bool)

	minCell := g.worldToCell(min)
	maxCell := g.worldToCell(max)

	for x := minCell.X; x <= maxCell.X; x++ {
		for y := minCell.Y; y <= maxCell.Y; y++ {
			for z := minCell.Z; z <= maxCell.Z; z++ {
				idx := g.hashCell(cellKey{x, y, z})

				for _, entry := range g.cells[idx].entries {
					// An entry spanning several cells shows up once per
					// cell, and hash collisions pull in entries from
					// unrelated cells. Both are filtered here.
					if seen[entry] {
						continue
					}
					seen[entry] = true

					if g.boxes[entry].Overlaps(query) {
						hits = append(hits, g.ids[entry])
					}
				}
			}
		}
	}

	return hits
}

func (g *GridIndex) QueryPoint(p mgl64.Vec3, tolerance float64) []int {
	e := mgl64.Vec3{tolerance, tolerance, tolerance}
	return g.QueryBox(p.Sub(e), p.Add(e))
}

// worldToCell maps a world position to cell coordinates.
func (g *GridIndex) worldToCell(pos mgl64.Vec3) cellKey {
	return cellKey{
		X: int(math.Floor(pos.X() / g.cellSize)),
		Y: int(math.Floor(pos.Y() / g.cellSize)),
		Z: int(math.Floor(pos.Z() / g.cellSize)),
	}
}

// hashCell maps cell coordinates to an index in the cell array.
func (g *GridIndex) hashCell(key cellKey) int {
	h := (key.X * 73856093) ^ (key.Y * 19349663) ^ (key.Z * 83492791)
	return h & g.cellMask
}
