package brick

// Placement is one part instance. In a parsed model the part id may
// name another model of the same document (a submodel reference); in
// the flattened scene every placement is a leaf part in world space.
// Flattened placements are created once by the loader and never
// mutated afterwards.
type Placement struct {
	PartID    string
	Color     int
	Transform Transform
}

// Model is a named placement list as produced by the parsing front
// end. Placement transforms are relative to the model's own origin.
type Model struct {
	Name       string
	Placements []Placement
}
