package components

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/spaghettifunk/corridor/engine/math"
	"github.com/stretchr/testify/assert"
)

func TestNewCameraDefaults(t *testing.T) {
	c := NewCamera()
	assert.Equal(t, math.NewVec3(5, 1.5, 5), c.Position)
	assert.Equal(t, math.NewVec3(0, 0, 1), c.Front)
	assert.Equal(t, math.NewVec3(0, 1, 0), c.Up)
	assert.Equal(t, math.NewVec3(5, 1.5, 6), c.Target())
	// looking down +z with y up, right points to -x
	assert.True(t, c.Right().Compare(math.NewVec3(-1, 0, 0), 1e-6))
}

func TestCameraViewMatchesLookAt(t *testing.T) {
	c := NewCamera()
	c.Position = math.NewVec3(1, 2, 3)
	c.Front = math.NewVec3(1, 0, 0)

	want := mgl32.LookAtV(mgl32.Vec3{1, 2, 3}, mgl32.Vec3{2, 2, 3}, mgl32.Vec3{0, 1, 0})
	assert.True(t, want.ApproxEqual(c.View()))

	// the camera position maps to the view-space origin
	eye := c.View().Mul4x1(mgl32.Vec4{1, 2, 3, 1})
	assert.InDelta(t, 0, eye.Vec3().Len(), 1e-5)

	// a point ahead of the camera lands on the negative z axis
	ahead := c.View().Mul4x1(mgl32.Vec4{5, 2, 3, 1})
	assert.InDelta(t, -4, ahead.Z(), 1e-5)
}
