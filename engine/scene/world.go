package scene

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/spaghettifunk/corridor/engine/collision"
	"github.com/spaghettifunk/corridor/engine/core"
)

// World holds the models of a scene in insertion order. Collision scans
// the solid ones in that same order.
type World struct {
	Name string

	ids    *core.Identifiers
	models []*Model
	light  DirectionalLight

	// rebuilt lazily after Add or Remove
	collidables []collision.Collidable
	dirty       bool
}

func NewWorld(name string) *World {
	return &World{
		Name:  name,
		ids:   core.NewIdentifiers(),
		light: DefaultDirectionalLight(),
	}
}

// Add assigns the model an identifier and appends it.
func (w *World) Add(m *Model) (uuid.UUID, error) {
	if m == nil {
		return uuid.Nil, fmt.Errorf("nil model: %w", core.ErrInvalidInput)
	}
	m.ID = w.ids.Acquire(m)
	w.models = append(w.models, m)
	w.dirty = true
	return m.ID, nil
}

// Remove drops a model keeping the order of the others. Slices handed
// out earlier are left as they were.
func (w *World) Remove(id uuid.UUID) error {
	if err := w.ids.Release(id); err != nil {
		return err
	}
	kept := make([]*Model, 0, len(w.models))
	for _, m := range w.models {
		if m.ID != id {
			kept = append(kept, m)
		}
	}
	w.models = kept
	w.dirty = true
	return nil
}

func (w *World) Model(id uuid.UUID) (*Model, bool) {
	owner, ok := w.ids.Owner(id)
	if !ok {
		return nil, false
	}
	m, ok := owner.(*Model)
	return m, ok
}

// Models returns the models in insertion order. The slice is shared and
// must not be modified.
func (w *World) Models() []*Model {
	return w.models
}

func (w *World) Len() int {
	return len(w.models)
}

// Collidables returns the solid models in insertion order. A slice
// returned before an Add or Remove keeps its contents.
func (w *World) Collidables() []collision.Collidable {
	if w.dirty || w.collidables == nil {
		solid := make([]collision.Collidable, 0, len(w.models))
		for _, m := range w.models {
			if m.Solid {
				solid = append(solid, m)
			}
		}
		w.collidables = solid
		w.dirty = false
	}
	return w.collidables
}

func (w *World) Light() DirectionalLight {
	return w.light
}

func (w *World) SetLight(light DirectionalLight) {
	w.light = light
}
