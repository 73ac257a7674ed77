package components

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/spaghettifunk/corridor/engine/math"
)

/**
 * @brief A first-person camera described by where it stands, where it
 * looks and which way is up. The controller that owns a camera is the
 * only thing allowed to change it.
 */
type Camera struct {
	/** @brief The position of this camera in world space. */
	Position math.Vec3
	/** @brief The unit length viewing direction. */
	Front math.Vec3
	/** @brief The fixed world up vector. */
	Up math.Vec3
}

var (
	DefaultCameraPosition = math.NewVec3(5.0, 1.5, 5.0)
	DefaultCameraFront    = math.NewVec3(0.0, 0.0, 1.0)
	DefaultCameraUp       = math.NewVec3Up()
)

func NewCamera() *Camera {
	camera := &Camera{}
	camera.Reset()
	return camera
}

func (c *Camera) Reset() {
	c.Position = DefaultCameraPosition
	c.Front = DefaultCameraFront
	c.Up = DefaultCameraUp
}

// Target is the point one unit in front of the camera.
func (c Camera) Target() math.Vec3 {
	return c.Position.Add(c.Front)
}

// Right is the normalized cross product of front and up.
func (c Camera) Right() math.Vec3 {
	return c.Front.Cross(c.Up).Normalize()
}

/**
 * @brief Builds the right-handed look-at view matrix from the position,
 * the target one unit ahead and the up vector.
 */
func (c Camera) View() mgl32.Mat4 {
	return mgl32.LookAtV(toMGL(c.Position), toMGL(c.Target()), toMGL(c.Up))
}

func toMGL(v math.Vec3) mgl32.Vec3 {
	return mgl32.Vec3(v.Elements())
}
