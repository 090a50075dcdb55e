// Package catalog supplies part geometry to the validation engine.
//
// A Source is read-only from the engine's point of view and must be
// safe for concurrent readers: multiple validation runs share one
// Source. Implementations here are an in-memory map (tests, builtin
// parts) and a SQLite database produced by the catalog-building
// tooling.
package catalog

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/akmonengine/mortar/brick"
)

// ErrUnknownPart is returned when a part id has no catalog entry.
var ErrUnknownPart = errors.New("unknown part")

// Source looks up part geometry by part identifier.
type Source interface {
	Part(id string) (brick.PartGeometry, error)
}

// Memory is a map-backed Source.
type Memory struct {
	mu    sync.RWMutex
	parts map[string]brick.PartGeometry
}

// NewMemory creates an empty in-memory catalog.
func NewMemory() *Memory {
	return &Memory{parts: make(map[string]brick.PartGeometry)}
}

// Add registers geometry under its part id, replacing any previous
// entry.
func (m *Memory) Add(g brick.PartGeometry) {
	m.mu.Lock()
	m.parts[g.PartID] = g
	m.mu.Unlock()
}

func (m *Memory) Part(id string) (brick.PartGeometry, error) {
	m.mu.RLock()
	g, ok := m.parts[id]
	m.mu.RUnlock()
	if !ok {
		return brick.PartGeometry{}, fmt.Errorf("%q: %w", id, ErrUnknownPart)
	}
	return g, nil
}

// Len returns the number of catalog entries.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.parts)
}

// IDs returns the registered part ids in sorted order.
func (m *Memory) IDs() []string {
	m.mu.RLock()
	ids := make([]string, 0, len(m.parts))
	for id := range m.parts {
		ids = append(ids, id)
	}
	m.mu.RUnlock()
	sort.Strings(ids)
	return ids
}
