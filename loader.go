package mortar

import (
	"strings"

	"github.com/akmonengine/mortar/brick"
)

// Loader flattens nested submodel references into one list of
// world-space placements.
//
// A placement's part id is resolved against the model dictionary
// first (exact name, then with .ldr or .dat appended); anything that
// does not resolve is a leaf part left to the catalog. The one
// exception: a .ldr reference that resolves nowhere can only be a
// missing submodel and fails the run.
type Loader struct {
	models   map[string]*brick.Model
	maxDepth int
}

// NewLoader creates a loader over the given model dictionary.
func NewLoader(models map[string]*brick.Model, cfg Config) *Loader {
	return &Loader{models: models, maxDepth: cfg.MaxDepth}
}

// Flatten resolves the root model into world-space placements. The
// resulting indices are stable for the lifetime of the run.
func (l *Loader) Flatten(root string) ([]brick.Placement, error) {
	name := strings.ToLower(root)
	model := l.resolve(name)
	if model == nil {
		return nil, &StructuralError{
			Reason: "unresolved reference",
			Ref:    root,
		}
	}

	var out []brick.Placement
	if err := l.walk(model, brick.NewTransform(), []string{model.Name}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// walk emits the placements of model under the parent transform,
// recursing into submodels. path is the chain of model names from the
// root down to model; revisiting a name on that path is a cycle.
func (l *Loader) walk(model *brick.Model, parent brick.Transform, path []string, out *[]brick.Placement) error {
	if len(path) > l.maxDepth {
		return &StructuralError{
			Reason: "max depth exceeded",
			Model:  model.Name,
			Path:   append([]string(nil), path...),
		}
	}

	for _, p := range model.Placements {
		world := parent.Compose(p.Transform)

		ref := strings.ToLower(p.PartID)
		if sub := l.resolve(ref); sub != nil {
			for _, seen := range path {
				if seen == sub.Name {
					return &StructuralError{
						Reason: "cyclic reference",
						Model:  model.Name,
						Ref:    sub.Name,
						Path:   append(append([]string(nil), path...), sub.Name),
					}
				}
			}
			if err := l.walk(sub, world, append(path, sub.Name), out); err != nil {
				return err
			}
			continue
		}

		if strings.HasSuffix(ref, ".ldr") {
			return &StructuralError{
				Reason: "unresolved reference",
				Model:  model.Name,
				Ref:    p.PartID,
				Path:   append([]string(nil), path...),
			}
		}

		*out = append(*out, brick.Placement{
			PartID:    p.PartID,
			Color:     p.Color,
			Transform: world,
		})
	}
	return nil
}

func (l *Loader) resolve(name string) *brick.Model {
	if m, ok := l.models[name]; ok {
		return m
	}
	if m, ok := l.models[name+".ldr"]; ok {
		return m
	}
	if m, ok := l.models[name+".dat"]; ok {
		return m
	}
	return nil
}
