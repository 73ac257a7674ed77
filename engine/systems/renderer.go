package systems

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/spaghettifunk/corridor/engine/core"
	"github.com/spaghettifunk/corridor/engine/math"
	"github.com/spaghettifunk/corridor/engine/renderer"
	"github.com/spaghettifunk/corridor/engine/renderer/components"
	"github.com/spaghettifunk/corridor/engine/renderer/metadata"
	"github.com/spaghettifunk/corridor/engine/scene"
)

/** @brief The [renderer] config section. */
type RendererSystemConfig struct {
	/** @brief Vertical field of view in degrees. */
	FOV  float32 `toml:"fov"`
	Near float32 `toml:"near"`
	Far  float32 `toml:"far"`
	/** @brief Render a shadow map from the directional light. */
	Shadows       bool   `toml:"shadows"`
	ShadowMapSize uint32 `toml:"shadow_map_size"`
	/** @brief Half the side of the square the shadow map covers around the camera. */
	ShadowDistance float32 `toml:"shadow_distance"`
	/** @brief Shader stem, relative to the assets directory. */
	Shader string `toml:"shader"`
	/** @brief Only "headless" is built in. */
	Backend string `toml:"backend"`
}

func DefaultRendererSystemConfig() RendererSystemConfig {
	return RendererSystemConfig{
		FOV:            90,
		Near:           1,
		Far:            1000,
		Shadows:        true,
		ShadowMapSize:  2048,
		ShadowDistance: 50,
		Shader:         "shaders/world",
		Backend:        "headless",
	}
}

func (c RendererSystemConfig) Validate() error {
	switch {
	case c.FOV <= 0 || c.FOV >= 180:
		return fmt.Errorf("renderer.fov must be in (0, 180), got %v: %w", c.FOV, core.ErrInvalidConfig)
	case c.Near <= 0 || c.Far <= c.Near:
		return fmt.Errorf("renderer.near and renderer.far must satisfy 0 < near < far, got %v and %v: %w", c.Near, c.Far, core.ErrInvalidConfig)
	case c.Shadows && c.ShadowMapSize == 0:
		return fmt.Errorf("renderer.shadow_map_size must be positive when shadows are on: %w", core.ErrInvalidConfig)
	case c.Shadows && c.ShadowDistance <= 0:
		return fmt.Errorf("renderer.shadow_distance must be positive when shadows are on: %w", core.ErrInvalidConfig)
	case c.Shader == "":
		return fmt.Errorf("renderer.shader is required: %w", core.ErrInvalidConfig)
	case c.Backend != "headless":
		return fmt.Errorf("renderer.backend %q is not available: %w", c.Backend, core.ErrInvalidConfig)
	}
	return nil
}

// RendererSystem turns the world and the camera into one RenderPacket per
// frame and drives the backend with it.
type RendererSystem struct {
	backend renderer.RendererBackend
	config  RendererSystemConfig

	// application
	AppName string
	// The current window framebuffer width.
	FramebufferWidth uint32
	// The current window framebuffer height.
	FramebufferHeight uint32

	FrameNumber uint64
	projection  mgl32.Mat4
	Mode        metadata.RendererDebugViewMode
}

func NewRendererSystem(appName string, appWidth, appHeight uint32, config RendererSystemConfig, backend renderer.RendererBackend) (*RendererSystem, error) {
	if backend == nil {
		return nil, fmt.Errorf("renderer system needs a backend: %w", core.ErrInvalidInput)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	r := &RendererSystem{
		backend:           backend,
		config:            config,
		AppName:           appName,
		FramebufferWidth:  appWidth,
		FramebufferHeight: appHeight,
	}
	r.updateProjection()
	return r, nil
}

// Initialize loads the world shader and starts the backend.
func (r *RendererSystem) Initialize(shaderSystem *ShaderSystem) error {
	shader, err := shaderSystem.Acquire(r.config.Shader)
	if err != nil {
		core.LogError("Failed to load world shader %s: %s", r.config.Shader, err)
		return err
	}

	rbc := &metadata.RendererBackendConfig{
		ApplicationName: r.AppName,
		Width:           r.FramebufferWidth,
		Height:          r.FramebufferHeight,
		Shader:          shader,
	}
	if r.config.Shadows {
		rbc.ShadowMapSize = r.config.ShadowMapSize
	}
	if err := r.backend.Initialize(rbc); err != nil {
		return err
	}
	return r.backend.ShaderCreate(shader)
}

func (r *RendererSystem) Shutdown() error {
	return r.backend.Shutdown()
}

// OnResize updates the aspect ratio. A zero size (minimized window) keeps
// the previous projection.
func (r *RendererSystem) OnResize(width, height uint32) error {
	if width == 0 || height == 0 {
		return nil
	}
	r.FramebufferWidth = width
	r.FramebufferHeight = height
	r.updateProjection()
	return r.backend.Resized(width, height)
}

func (r *RendererSystem) updateProjection() {
	aspect := float32(16.0 / 9.0)
	if r.FramebufferWidth > 0 && r.FramebufferHeight > 0 {
		aspect = float32(r.FramebufferWidth) / float32(r.FramebufferHeight)
	}
	r.projection = mgl32.Perspective(math.DegToRad(r.config.FOV), aspect, r.config.Near, r.config.Far)
}

func (r *RendererSystem) Projection() mgl32.Mat4 {
	return r.projection
}

// BuildPacket gathers everything the backend needs for one frame.
func (r *RendererSystem) BuildPacket(camera components.Camera, world *scene.World, deltaTime float64) *metadata.RenderPacket {
	light := world.Light()
	packet := &metadata.RenderPacket{
		DeltaTime:    deltaTime,
		Projection:   r.projection,
		View:         camera.View(),
		ViewPosition: mgl32.Vec3(camera.Position.Elements()),
		DrawCalls:    make([]metadata.DrawCall, 0, world.Len()),
		Light: metadata.Light{
			Direction: mgl32.Vec3(light.Direction.Elements()),
			Color:     mgl32.Vec3(light.Color.Elements()),
			Ambient:   light.Ambient,
		},
		Shadows: r.config.Shadows,
		Mode:    r.Mode,
	}
	for _, m := range world.Models() {
		packet.DrawCalls = append(packet.DrawCalls, metadata.DrawCall{
			Name:        m.Name,
			Vertices:    m.Vertices,
			Stride:      m.Stride,
			VertexCount: m.VertexCount(),
			Model:       mgl32.Mat4(m.Transform.GetWorld().Data),
			CullMode:    m.CullMode,
			Texture:     m.Texture,
		})
	}
	if r.config.Shadows {
		packet.LightSpace = LightSpaceMatrix(light.Direction, camera.Position, r.config.ShadowDistance)
	}
	return packet
}

// DrawFrame hands one packet to the backend.
func (r *RendererSystem) DrawFrame(packet *metadata.RenderPacket) error {
	packet.Frame = r.FrameNumber
	if err := r.backend.BeginFrame(packet.DeltaTime); err != nil {
		return err
	}
	if err := r.backend.DrawFrame(packet); err != nil {
		return err
	}
	if err := r.backend.EndFrame(packet.DeltaTime); err != nil {
		return err
	}
	r.FrameNumber++
	return nil
}

func (r *RendererSystem) TextureCreate(name string, texture *metadata.ImageResourceData) error {
	return r.backend.TextureCreate(name, texture)
}

func (r *RendererSystem) TextureDestroy(name string) error {
	return r.backend.TextureDestroy(name)
}

func (r *RendererSystem) ShaderCreate(shader *metadata.ShaderResourceData) error {
	return r.backend.ShaderCreate(shader)
}

/**
 * @brief Builds the matrix taking world space into the shadow map of a
 * directional light: an orthographic box of half side distance centered
 * on focus, looked at along the light direction.
 */
func LightSpaceMatrix(direction, focus math.Vec3, distance float32) mgl32.Mat4 {
	dir := mgl32.Vec3(direction.Normalize().Elements())
	center := mgl32.Vec3(focus.Elements())
	eye := center.Sub(dir.Mul(distance))

	up := mgl32.Vec3{0, 1, 0}
	if d := dir.Dot(up); d > 0.99 || d < -0.99 {
		up = mgl32.Vec3{0, 0, 1}
	}
	projection := mgl32.Ortho(-distance, distance, -distance, distance, 0.1, 2*distance)
	return projection.Mul4(mgl32.LookAtV(eye, center, up))
}
