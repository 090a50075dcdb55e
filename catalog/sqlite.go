package catalog

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/akmonengine/mortar/brick"
	"github.com/go-gl/mathgl/mgl64"
	_ "modernc.org/sqlite" // SQLite driver
)

// SQLite reads part geometry from the catalog database built by the
// catalog tooling. Lookups are cached, so repeated validation runs hit
// the database once per part id.
type SQLite struct {
	db *sql.DB

	mu    sync.RWMutex
	cache map[string]brick.PartGeometry
	miss  map[string]bool
}

const schema = `
CREATE TABLE IF NOT EXISTS parts (
	part_id TEXT PRIMARY KEY,
	part_name TEXT,
	category TEXT,
	bounds_json TEXT,
	studs_json TEXT,
	anti_studs_json TEXT
)`

// OpenSQLite opens (creating if necessary) a catalog database.
func OpenSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init catalog schema: %w", err)
	}

	return &SQLite{
		db:    db,
		cache: make(map[string]brick.PartGeometry),
		miss:  make(map[string]bool),
	}, nil
}

// Close releases the underlying database handle.
func (c *SQLite) Close() error {
	return c.db.Close()
}

// boundsRow mirrors the JSON layout of the bounds_json column:
// axis name to [min, max].
type boundsRow map[string][2]float64

func (c *SQLite) Part(id string) (brick.PartGeometry, error) {
	c.mu.RLock()
	g, hit := c.cache[id]
	missed := c.miss[id]
	c.mu.RUnlock()
	if hit {
		return g, nil
	}
	if missed {
		return brick.PartGeometry{}, fmt.Errorf("%q: %w", id, ErrUnknownPart)
	}

	g, err := c.load(id)
	c.mu.Lock()
	if err == nil {
		c.cache[id] = g
	} else if errors.Is(err, ErrUnknownPart) {
		c.miss[id] = true
	}
	c.mu.Unlock()
	return g, err
}

func (c *SQLite) load(id string) (brick.PartGeometry, error) {
	var (
		name, category           sql.NullString
		boundsJSON               string
		studsJSON, antiStudsJSON sql.NullString
	)

	row := c.db.QueryRow(
		`SELECT part_name, category, bounds_json, studs_json, anti_studs_json
		 FROM parts WHERE part_id = ?`, id)
	if err := row.Scan(&name, &category, &boundsJSON, &studsJSON, &antiStudsJSON); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return brick.PartGeometry{}, fmt.Errorf("%q: %w", id, ErrUnknownPart)
		}
		return brick.PartGeometry{}, fmt.Errorf("load part %q: %w", id, err)
	}

	var bounds boundsRow
	if err := json.Unmarshal([]byte(boundsJSON), &bounds); err != nil {
		return brick.PartGeometry{}, fmt.Errorf("part %q bounds: %w", id, err)
	}

	g := brick.PartGeometry{
		PartID:   id,
		Name:     name.String,
		Category: category.String,
		Bounds: brick.AABB{
			Min: mgl64.Vec3{bounds["x"][0], bounds["y"][0], bounds["z"][0]},
			Max: mgl64.Vec3{bounds["x"][1], bounds["y"][1], bounds["z"][1]},
		},
	}

	studs, err := decodePoints(studsJSON)
	if err != nil {
		return brick.PartGeometry{}, fmt.Errorf("part %q studs: %w", id, err)
	}
	antiStuds, err := decodePoints(antiStudsJSON)
	if err != nil {
		return brick.PartGeometry{}, fmt.Errorf("part %q anti-studs: %w", id, err)
	}

	for _, p := range studs {
		g.Connectors = append(g.Connectors, brick.ConnectionPoint{
			Type:      brick.ConnectorStud,
			Position:  p,
			Direction: up,
		})
	}
	for _, p := range antiStuds {
		g.Connectors = append(g.Connectors, brick.ConnectionPoint{
			Type:      brick.ConnectorAntiStud,
			Position:  p,
			Direction: down,
		})
	}

	return g, nil
}

func decodePoints(col sql.NullString) ([]mgl64.Vec3, error) {
	if !col.Valid || col.String == "" {
		return nil, nil
	}
	var raw [][3]float64
	if err := json.Unmarshal([]byte(col.String), &raw); err != nil {
		return nil, err
	}
	points := make([]mgl64.Vec3, len(raw))
	for i, p := range raw {
		points[i] = mgl64.Vec3{p[0], p[1], p[2]}
	}
	return points, nil
}

// Save writes geometry into the database, replacing any previous row.
// The stud/anti-stud columns keep only connector positions; directions
// are implied by the connector type, matching the catalog tooling.
func (c *SQLite) Save(g brick.PartGeometry) error {
	bounds := boundsRow{
		"x": {g.Bounds.Min.X(), g.Bounds.Max.X()},
		"y": {g.Bounds.Min.Y(), g.Bounds.Max.Y()},
		"z": {g.Bounds.Min.Z(), g.Bounds.Max.Z()},
	}

	var studs, antiStuds [][3]float64
	for _, cp := range g.Connectors {
		p := [3]float64{cp.Position.X(), cp.Position.Y(), cp.Position.Z()}
		switch cp.Type {
		case brick.ConnectorStud:
			studs = append(studs, p)
		case brick.ConnectorAntiStud:
			antiStuds = append(antiStuds, p)
		}
	}

	boundsJSON, err := json.Marshal(bounds)
	if err != nil {
		return err
	}
	studsJSON, err := json.Marshal(studs)
	if err != nil {
		return err
	}
	antiStudsJSON, err := json.Marshal(antiStuds)
	if err != nil {
		return err
	}

	_, err = c.db.Exec(
		`INSERT OR REPLACE INTO parts
		 (part_id, part_name, category, bounds_json, studs_json, anti_studs_json)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		g.PartID, g.Name, g.Category, string(boundsJSON), string(studsJSON), string(antiStudsJSON))
	if err != nil {
		return fmt.Errorf("save part %q: %w", g.PartID, err)
	}

	c.mu.Lock()
	c.cache[g.PartID] = g
	delete(c.miss, g.PartID)
	c.mu.Unlock()
	return nil
}

// Stats reports how many parts the catalog holds.
func (c *SQLite) Stats() (int, error) {
	var n int
	if err := c.db.QueryRow(`SELECT COUNT(*) FROM parts`).Scan(&n); err != nil {
		return 0, fmt.Errorf("catalog stats: %w", err)
	}
	return n, nil
}
