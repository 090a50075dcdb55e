package mortar

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// Config carries the tolerances and limits of a validation run. The
// zero value is not usable; start from DefaultConfig.
type Config struct {
	// PositionTolerance bounds the lateral distance between a stud and
	// the anti-stud it mates with, in LDU.
	PositionTolerance float64 `yaml:"position_tolerance"`
	// StudHeight is the expected axial offset between a mated stud tip
	// and anti-stud reference point.
	StudHeight float64 `yaml:"stud_height"`
	// AngularTolerance bounds the deviation from anti-parallel of two
	// mated connector directions, in radians.
	AngularTolerance float64 `yaml:"angular_tolerance"`
	// AmbiguityMargin is the relative deviation margin under which a
	// second connection candidate is reported as near-equal.
	AmbiguityMargin float64 `yaml:"ambiguity_margin"`
	// AmbiguityFloor is the absolute margin floor, in LDU. It keeps
	// zero-deviation ties reportable, where a relative margin vanishes.
	AmbiguityFloor float64 `yaml:"ambiguity_floor"`
	// CollisionShrink is the per-side AABB contraction applied before
	// the narrow-phase overlap test. It tolerates studs reaching into
	// the cavities of connected neighbours.
	CollisionShrink float64 `yaml:"collision_shrink"`
	// GroundTolerance bounds the height above the ground plane at
	// which a downward connector still anchors a placement.
	GroundTolerance float64 `yaml:"ground_tolerance"`
	// MaxDepth bounds submodel nesting during loading.
	MaxDepth int `yaml:"max_depth"`

	// Index picks the spatial index backend: "grid", "rtree", "linear"
	// or "" to choose by scene size.
	Index string `yaml:"index"`
	// GridCellSize and GridCells shape the uniform grid backend.
	GridCellSize float64 `yaml:"grid_cell_size"`
	GridCells    int     `yaml:"grid_cells"`

	// Workers bounds the goroutines used by the read-only phases.
	Workers int `yaml:"workers"`

	// CheckGridAlignment enables the diagnostic off-grid stud check.
	CheckGridAlignment bool `yaml:"check_grid_alignment"`
}

// DefaultConfig returns the standard tolerances, in LDU.
func DefaultConfig() Config {
	return Config{
		PositionTolerance:  0.5,
		StudHeight:         4,
		AngularTolerance:   5 * math.Pi / 180,
		AmbiguityMargin:    0.1,
		AmbiguityFloor:     0.05,
		CollisionShrink:    2,
		GroundTolerance:    0.5,
		MaxDepth:           64,
		GridCellSize:       40,
		GridCells:          1024,
		Workers:            1,
		CheckGridAlignment: false,
	}
}

// LoadConfig overlays a YAML file onto the defaults. Fields absent
// from the file keep their default values.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, cfg.validate()
}

func (c Config) validate() error {
	if c.PositionTolerance <= 0 {
		return fmt.Errorf("position_tolerance must be positive, got %v", c.PositionTolerance)
	}
	if c.StudHeight <= 0 {
		return fmt.Errorf("stud_height must be positive, got %v", c.StudHeight)
	}
	if c.AngularTolerance <= 0 || c.AngularTolerance > math.Pi/2 {
		return fmt.Errorf("angular_tolerance must be in (0, pi/2], got %v", c.AngularTolerance)
	}
	if c.AmbiguityFloor < 0 {
		return fmt.Errorf("ambiguity_floor must not be negative, got %v", c.AmbiguityFloor)
	}
	if c.CollisionShrink < 0 {
		return fmt.Errorf("collision_shrink must not be negative, got %v", c.CollisionShrink)
	}
	if c.MaxDepth <= 0 {
		return fmt.Errorf("max_depth must be positive, got %v", c.MaxDepth)
	}
	if c.GridCellSize <= 0 {
		return fmt.Errorf("grid_cell_size must be positive, got %v", c.GridCellSize)
	}
	if c.GridCells <= 0 {
		return fmt.Errorf("grid_cells must be positive, got %d", c.GridCells)
	}
	switch c.Index {
	case "", IndexGrid, IndexRTree, IndexLinear:
	default:
		return fmt.Errorf("unknown index backend %q", c.Index)
	}
	return nil
}
