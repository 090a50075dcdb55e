package brick

import "github.com/go-gl/mathgl/mgl64"

// ConnectorType tags a connection primitive.
type ConnectorType int

const (
	// ConnectorStud is the male primitive on top of a brick. Its
	// position is the stud tip, its direction points out of the part.
	ConnectorStud ConnectorType = iota
	// ConnectorAntiStud is the female socket on the underside.
	ConnectorAntiStud
	// ConnectorPin and ConnectorPinHole cover Technic-style typed
	// connectors carried through from richer catalog metadata.
	ConnectorPin
	ConnectorPinHole
)

func (c ConnectorType) String() string {
	switch c {
	case ConnectorStud:
		return "stud"
	case ConnectorAntiStud:
		return "anti-stud"
	case ConnectorPin:
		return "pin"
	case ConnectorPinHole:
		return "pin-hole"
	}
	return "unknown"
}

// Complements reports whether two connector types can mate.
func (c ConnectorType) Complements(other ConnectorType) bool {
	switch c {
	case ConnectorStud:
		return other == ConnectorAntiStud
	case ConnectorAntiStud:
		return other == ConnectorStud
	case ConnectorPin:
		return other == ConnectorPinHole
	case ConnectorPinHole:
		return other == ConnectorPin
	}
	return false
}

// ConnectionPoint is one connection primitive in part-local
// coordinates. Direction is a unit vector pointing out of the part.
type ConnectionPoint struct {
	Type      ConnectorType
	Position  mgl64.Vec3
	Direction mgl64.Vec3
}

// PartGeometry describes one catalog part: its local bounding volume
// and connection primitives. The catalog owns these values; the engine
// only reads them.
type PartGeometry struct {
	PartID     string
	Name       string
	Category   string
	Bounds     AABB
	Connectors []ConnectionPoint
}

// GroundSurface reports whether the part is itself a build surface,
// anchoring anything connected to it.
func (g PartGeometry) GroundSurface() bool {
	return g.Category == "Baseplate"
}
