package metadata

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

type RendererBackendConfig struct {
	/** @brief The name of the application */
	ApplicationName string
	Width           uint32
	Height          uint32
	/** @brief The shader sources used for the world pass. */
	Shader *ShaderResourceData
	/** @brief Side of the square shadow map in pixels. */
	ShadowMapSize uint32
}

/** @brief Which triangle faces a draw call discards. */
type FaceCullMode int

const (
	FaceCullModeNone FaceCullMode = iota
	FaceCullModeFront
	/** @brief Closed meshes such as cubes. */
	FaceCullModeBack
	FaceCullModeFrontAndBack
)

func (m FaceCullMode) String() string {
	switch m {
	case FaceCullModeNone:
		return "none"
	case FaceCullModeFront:
		return "front"
	case FaceCullModeBack:
		return "back"
	case FaceCullModeFrontAndBack:
		return "front and back"
	}
	return fmt.Sprintf("FaceCullMode(%d)", int(m))
}

type RendererDebugViewMode uint32

const (
	RENDERER_VIEW_MODE_DEFAULT  RendererDebugViewMode = 0
	RENDERER_VIEW_MODE_LIGHTING RendererDebugViewMode = 1
	RENDERER_VIEW_MODE_NORMALS  RendererDebugViewMode = 2
)

/** @brief Light data as the shaders see it. */
type Light struct {
	Direction mgl32.Vec3
	Color     mgl32.Vec3
	Ambient   float32
}

/** @brief One model to draw. */
type DrawCall struct {
	/** @brief The name of the model, used by debug output. */
	Name string
	/** @brief Interleaved vertex data. */
	Vertices []float32
	/** @brief Number of floats per vertex. */
	Stride int
	/** @brief Number of vertices, len(Vertices)/Stride. */
	VertexCount int
	Model       mgl32.Mat4
	CullMode    FaceCullMode
	/** @brief Name of a texture created on the backend, empty for untextured models. */
	Texture string
}

/**
 * @brief A structure which is generated by the application and sent once
 * to the renderer to render a given frame.
 */
type RenderPacket struct {
	DeltaTime  float64
	Frame      uint64
	Projection mgl32.Mat4
	View       mgl32.Mat4
	/** @brief Camera position in world space. */
	ViewPosition mgl32.Vec3
	DrawCalls    []DrawCall
	Light        Light
	/** @brief Only meaningful when Shadows is true. */
	LightSpace mgl32.Mat4
	Shadows    bool
	Mode       RendererDebugViewMode
}
