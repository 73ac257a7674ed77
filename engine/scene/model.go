package scene

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/spaghettifunk/corridor/engine/collision"
	"github.com/spaghettifunk/corridor/engine/math"
	"github.com/spaghettifunk/corridor/engine/renderer/metadata"
)

const (
	/** @brief Floats per vertex of the generated models: position and normal. */
	POSITION_NORMAL_STRIDE = 6
	/** @brief Floats per vertex of meshes read from OBJ files: position only. */
	POSITION_STRIDE = 3
	/** @brief Half the side of the generated cube. */
	CUBE_HALF_EXTENT float32 = 1.5
)

/** @brief How model bounds are computed. Read from the [collision] config section. */
type BoundsConfig struct {
	/** @brief Seed the local box from the first vertex instead of the origin. */
	TightBounds bool `toml:"tight_bounds"`
	/** @brief Place rotated boxes by all eight corners instead of two. */
	ExactRotatedBounds bool `toml:"exact_rotated_bounds"`
}

/**
 * @brief A drawable object of the world. The vertex buffer is kept
 * as built and is never mutated; placement goes through the transform.
 */
type Model struct {
	ID       uuid.UUID
	Name     string
	Vertices []float32
	/** @brief Number of floats per vertex in Vertices. */
	Stride    int
	Transform *math.Transform
	/** @brief Solid models block the camera. */
	Solid    bool
	CullMode metadata.FaceCullMode
	/** @brief Resolved path of the texture drawn on the model, empty for none. */
	Texture string

	local  collision.AABB
	bounds BoundsConfig
}

// NewModel builds a model and its local bounds. The vertex buffer must
// hold at least one complete position.
func NewModel(name string, vertices []float32, stride int, position math.Vec3, bounds BoundsConfig) (*Model, error) {
	build := collision.Build
	if bounds.TightBounds {
		build = collision.BuildTight
	}
	local, err := build(vertices, stride)
	if err != nil {
		return nil, fmt.Errorf("model %q: %w", name, err)
	}
	return &Model{
		Name:      name,
		Vertices:  vertices,
		Stride:    stride,
		Transform: math.TransformFromPosition(position),
		Solid:     true,
		CullMode:  metadata.FaceCullModeBack,
		local:     local,
		bounds:    bounds,
	}, nil
}

func mustModel(name string, vertices []float32, stride int, position math.Vec3, bounds BoundsConfig) *Model {
	m, err := NewModel(name, vertices, stride, position, bounds)
	if err != nil {
		// generated buffers are always well formed
		panic(err)
	}
	return m
}

// CubeModel is a 3x3x3 cube centered on position.
func CubeModel(position math.Vec3, bounds BoundsConfig) *Model {
	return mustModel("cube", cubeVertices(CUBE_HALF_EXTENT), POSITION_NORMAL_STRIDE, position, bounds)
}

// FloorModel is an upward facing rectangle spanning (0, 0) to (x, z) on
// its own plane, lifted to height h.
func FloorModel(x, z, h float32, bounds BoundsConfig) *Model {
	vertices := []float32{
		0, 0, 0, 0, 1, 0,
		x, 0, 0, 0, 1, 0,
		0, 0, z, 0, 1, 0,

		x, 0, z, 0, 1, 0,
		x, 0, 0, 0, 1, 0,
		0, 0, z, 0, 1, 0,
	}
	m := mustModel("floor", vertices, POSITION_NORMAL_STRIDE, math.NewVec3(0, h, 0), bounds)
	m.CullMode = metadata.FaceCullModeNone
	return m
}

// MeshModel places the expanded faces of an OBJ mesh.
func MeshModel(name string, faces []float32, position math.Vec3, solid bool, bounds BoundsConfig) (*Model, error) {
	m, err := NewModel(name, faces, POSITION_STRIDE, position, bounds)
	if err != nil {
		return nil, err
	}
	m.Solid = solid
	return m, nil
}

// VertexCount is the number of vertices to draw.
func (m *Model) VertexCount() int {
	if m.Stride == 0 {
		return 0
	}
	return len(m.Vertices) / m.Stride
}

// LocalAABB is the box of the vertex buffer before placement.
func (m *Model) LocalAABB() collision.AABB {
	return m.local
}

// WorldAABB is the local box placed by the model's world matrix.
func (m *Model) WorldAABB() collision.AABB {
	world := m.Transform.GetWorld()
	if m.bounds.ExactRotatedBounds {
		return m.local.EnclosingTransformedBy(world)
	}
	return m.local.TransformedBy(world)
}

func (m *Model) Contains(p math.Vec3) bool {
	return m.WorldAABB().Contains(p)
}

func (m *Model) String() string {
	return fmt.Sprintf("%s(%s)", m.Name, m.ID)
}

func cubeVertices(h float32) []float32 {
	// six faces, two triangles each: position then normal
	return []float32{
		-h, -h, -h, 0, 0, -1,
		h, -h, -h, 0, 0, -1,
		h, h, -h, 0, 0, -1,
		h, h, -h, 0, 0, -1,
		-h, h, -h, 0, 0, -1,
		-h, -h, -h, 0, 0, -1,

		-h, -h, h, 0, 0, 1,
		h, -h, h, 0, 0, 1,
		h, h, h, 0, 0, 1,
		h, h, h, 0, 0, 1,
		-h, h, h, 0, 0, 1,
		-h, -h, h, 0, 0, 1,

		-h, h, h, -1, 0, 0,
		-h, h, -h, -1, 0, 0,
		-h, -h, -h, -1, 0, 0,
		-h, -h, -h, -1, 0, 0,
		-h, -h, h, -1, 0, 0,
		-h, h, h, -1, 0, 0,

		h, h, h, 1, 0, 0,
		h, h, -h, 1, 0, 0,
		h, -h, -h, 1, 0, 0,
		h, -h, -h, 1, 0, 0,
		h, -h, h, 1, 0, 0,
		h, h, h, 1, 0, 0,

		-h, -h, -h, 0, -1, 0,
		h, -h, -h, 0, -1, 0,
		h, -h, h, 0, -1, 0,
		h, -h, h, 0, -1, 0,
		-h, -h, h, 0, -1, 0,
		-h, -h, -h, 0, -1, 0,

		-h, h, -h, 0, 1, 0,
		h, h, -h, 0, 1, 0,
		h, h, h, 0, 1, 0,
		h, h, h, 0, 1, 0,
		-h, h, h, 0, 1, 0,
		-h, h, -h, 0, 1, 0,
	}
}
