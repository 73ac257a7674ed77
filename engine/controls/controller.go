package controls

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/spaghettifunk/corridor/engine/collision"
	"github.com/spaghettifunk/corridor/engine/core"
	"github.com/spaghettifunk/corridor/engine/math"
	"github.com/spaghettifunk/corridor/engine/renderer/components"
)

// MoveKey is one of the four movement intents the controller tracks.
type MoveKey uint8

const (
	MoveForward MoveKey = iota
	MoveBackward
	MoveLeft
	MoveRight
	moveKeyCount
)

func (k MoveKey) String() string {
	switch k {
	case MoveForward:
		return "forward"
	case MoveBackward:
		return "backward"
	case MoveLeft:
		return "left"
	case MoveRight:
		return "right"
	}
	return fmt.Sprintf("MoveKey(%d)", uint8(k))
}

const (
	DEFAULT_SENSITIVITY float32 = 0.5
	// Distance travelled per millisecond while a movement key is held.
	DEFAULT_SPEED      float32 = 0.03
	DEFAULT_EYE_HEIGHT float32 = 2.0
	DEFAULT_YAW        float32 = 90.0
	DEFAULT_PITCH      float32 = 0.0
	// Pointer starts at the center of a 1920x1080 screen.
	DEFAULT_POINTER_X float32 = 1920.0 / 2.0
	DEFAULT_POINTER_Y float32 = 1080.0 / 2.0
	PITCH_LIMIT       float32 = 89.0
)

type ControllerConfig struct {
	Sensitivity float32     `toml:"sensitivity"`
	Speed       float32     `toml:"speed"`
	EyeHeight   float32     `toml:"eye_height"`
	Yaw         float32     `toml:"yaw"`
	Pitch       float32     `toml:"pitch"`
	PointerX    float32     `toml:"pointer_x"`
	PointerY    float32     `toml:"pointer_y"`
	Keys        KeyBindings `toml:"keys"`
}

func DefaultControllerConfig() ControllerConfig {
	return ControllerConfig{
		Sensitivity: DEFAULT_SENSITIVITY,
		Speed:       DEFAULT_SPEED,
		EyeHeight:   DEFAULT_EYE_HEIGHT,
		Yaw:         DEFAULT_YAW,
		Pitch:       DEFAULT_PITCH,
		PointerX:    DEFAULT_POINTER_X,
		PointerY:    DEFAULT_POINTER_Y,
		Keys:        DefaultKeyBindings(),
	}
}

func (c *ControllerConfig) Validate() error {
	if c.Sensitivity <= 0 {
		return fmt.Errorf("%w: controls.sensitivity must be positive, got %v", core.ErrInvalidConfig, c.Sensitivity)
	}
	if c.Speed < 0 {
		return fmt.Errorf("%w: controls.speed must not be negative, got %v", core.ErrInvalidConfig, c.Speed)
	}
	if c.Pitch < -PITCH_LIMIT || c.Pitch > PITCH_LIMIT {
		return fmt.Errorf("%w: controls.pitch must be within ±%v, got %v", core.ErrInvalidConfig, PITCH_LIMIT, c.Pitch)
	}
	_, err := NewKeyMap(c.Keys)
	return err
}

// Controller turns pointer motion, held movement keys and elapsed time into
// a camera pose. It owns its camera: callers only ever see copies.
type Controller struct {
	camera components.Camera
	config ControllerConfig

	lastX float32
	lastY float32

	yaw   float32
	pitch float32

	held [moveKeyCount]bool
}

// NewController takes a copy of the starting camera and points it along
// the configured yaw and pitch.
func NewController(config ControllerConfig, camera components.Camera) *Controller {
	camera.Front = FrontFromAngles(config.Yaw, config.Pitch)
	return &Controller{
		camera: camera,
		config: config,
		lastX:  config.PointerX,
		lastY:  config.PointerY,
		yaw:    config.Yaw,
		pitch:  config.Pitch,
	}
}

// OnPointerMove applies one pointer reading in screen pixels (origin top
// left). Every reading must be delivered, in order.
func (c *Controller) OnPointerMove(x, y float32) {
	xOffset := x - c.lastX
	// screen y grows downwards, pitch grows upwards
	yOffset := c.lastY - y

	c.lastX = x
	c.lastY = y

	c.yaw += xOffset * c.config.Sensitivity
	c.pitch = math.Clamp(c.pitch+yOffset*c.config.Sensitivity, -PITCH_LIMIT, PITCH_LIMIT)

	c.camera.Front = FrontFromAngles(c.yaw, c.pitch)
}

// FrontFromAngles converts yaw and pitch in degrees into a unit direction.
func FrontFromAngles(yaw, pitch float32) math.Vec3 {
	y := math.DegToRad(yaw)
	p := math.DegToRad(pitch)
	cosPitch := math32.Cos(p)
	return math.NewVec3(
		math32.Cos(y)*cosPitch,
		math32.Sin(p),
		math32.Sin(y)*cosPitch,
	).Normalize()
}

// OnKeyEvent adds a key to the held set on press and removes it on release.
func (c *Controller) OnKeyEvent(key MoveKey, action core.KeyAction) {
	if key >= moveKeyCount {
		return
	}
	switch action {
	case core.KEY_ACTION_PRESS:
		c.held[key] = true
	case core.KEY_ACTION_RELEASE:
		c.held[key] = false
	}
}

// Update moves the camera for one frame of deltaMillis milliseconds and
// keeps it out of the given objects. The objects are scanned in order and
// only the first one containing the new position is used.
func (c *Controller) Update(deltaMillis float32, objects []collision.Collidable) {
	speed := c.config.Speed * deltaMillis
	front := c.camera.Front
	next := c.camera.Position

	if c.held[MoveForward] {
		next = next.Add(front.MulScalar(speed))
	} else if c.held[MoveBackward] {
		next = next.Sub(front.MulScalar(speed))
	}
	if c.held[MoveRight] {
		next = next.Add(c.camera.Right().MulScalar(speed))
	} else if c.held[MoveLeft] {
		next = next.Sub(c.camera.Right().MulScalar(speed))
	}

	// walking, not flying
	next.Y = c.config.EyeHeight

	if obj, hit := collision.FirstContaining(objects, next); hit {
		next.X = boundaryX(obj.WorldAABB(), c.camera.Position.X)
	}
	c.camera.Position = next
}

// boundaryX picks the x face of box on the side the camera comes from.
func boundaryX(box collision.AABB, fromX float32) float32 {
	if fromX <= box.Center().X {
		return box.Min.X
	}
	return box.Max.X
}

// Camera returns a copy of the controlled camera.
func (c *Controller) Camera() components.Camera {
	return c.camera
}

func (c *Controller) View() mgl32.Mat4 {
	return c.camera.View()
}

func (c *Controller) Yaw() float32 {
	return c.yaw
}

func (c *Controller) Pitch() float32 {
	return c.pitch
}

func (c *Controller) Held(key MoveKey) bool {
	return key < moveKeyCount && c.held[key]
}
