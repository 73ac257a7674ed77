package scene

import (
	"fmt"

	"github.com/spaghettifunk/corridor/engine/core"
	"github.com/spaghettifunk/corridor/engine/math"
	"github.com/spaghettifunk/corridor/engine/renderer/metadata"
)

/** @brief A light infinitely far away, shining along Direction. */
type DirectionalLight struct {
	/** @brief Unit vector the light travels along. */
	Direction math.Vec3
	Color     math.Vec3
	/** @brief Light reaching every surface regardless of orientation, 0..1. */
	Ambient float32
}

func DefaultDirectionalLight() DirectionalLight {
	l, _ := NewDirectionalLight(math.NewVec3(-0.5, -1.0, -0.3), math.NewVec3One(), 0.2)
	return l
}

// NewDirectionalLight normalizes the direction and clamps the ambient term.
func NewDirectionalLight(direction, color math.Vec3, ambient float32) (DirectionalLight, error) {
	if direction.LengthSquared() < math.K_FLOAT_EPSILON {
		return DirectionalLight{}, fmt.Errorf("light direction must not be zero: %w", core.ErrInvalidInput)
	}
	return DirectionalLight{
		Direction: direction.Normalize(),
		Color:     color,
		Ambient:   math.Clamp(ambient, 0, 1),
	}, nil
}

// LightFromScene converts a manifest light. A nil light gives the default.
func LightFromScene(l *metadata.SceneLight) (DirectionalLight, error) {
	if l == nil {
		return DefaultDirectionalLight(), nil
	}
	return NewDirectionalLight(
		math.NewVec3(l.Direction[0], l.Direction[1], l.Direction[2]),
		math.NewVec3(l.Color[0], l.Color[1], l.Color[2]),
		l.Ambient,
	)
}
