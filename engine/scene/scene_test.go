package scene

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/corridor/engine/collision"
	"github.com/spaghettifunk/corridor/engine/core"
	"github.com/spaghettifunk/corridor/engine/math"
	"github.com/spaghettifunk/corridor/engine/renderer/metadata"
)

func TestCubeModel(t *testing.T) {
	cube := CubeModel(math.NewVec3(3, 1.5, 6), BoundsConfig{})

	assert.Equal(t, POSITION_NORMAL_STRIDE, cube.Stride)
	assert.Equal(t, 36, cube.VertexCount())
	assert.True(t, cube.Solid)
	assert.Equal(t, metadata.FaceCullModeBack, cube.CullMode)

	local := cube.LocalAABB()
	assert.Equal(t, math.NewVec3(-1.5, -1.5, -1.5), local.Min)
	assert.Equal(t, math.NewVec3(1.5, 1.5, 1.5), local.Max)

	world := cube.WorldAABB()
	assert.Equal(t, math.NewVec3(1.5, 0, 4.5), world.Min)
	assert.Equal(t, math.NewVec3(4.5, 3, 7.5), world.Max)

	assert.True(t, cube.Contains(math.NewVec3(3, 2, 6)))
	assert.True(t, cube.Contains(math.NewVec3(4.5, 2, 6)))
	assert.False(t, cube.Contains(math.NewVec3(4.6, 2, 6)))
}

func TestCubeNormalsAreUnitAxes(t *testing.T) {
	cube := CubeModel(math.NewVec3Zero(), BoundsConfig{})
	for i := 0; i < cube.VertexCount(); i++ {
		n := math.NewVec3FromSlice(cube.Vertices[i*cube.Stride+3:])
		assert.InDelta(t, 1.0, n.Length(), 1e-6)
	}
}

func TestFloorModel(t *testing.T) {
	floor := FloorModel(100, 50, 3, BoundsConfig{})

	assert.Equal(t, 6, floor.VertexCount())
	assert.Equal(t, metadata.FaceCullModeNone, floor.CullMode)

	world := floor.WorldAABB()
	assert.Equal(t, math.NewVec3(0, 3, 0), world.Min)
	assert.Equal(t, math.NewVec3(100, 3, 50), world.Max)

	assert.False(t, floor.Contains(math.NewVec3(5, 2, 5)))
	assert.True(t, floor.Contains(math.NewVec3(5, 3, 5)))
}

func TestMeshModelBounds(t *testing.T) {
	faces := []float32{1, 1, 1, 2, 2, 2, 3, 1, 1}

	loose, err := MeshModel("tri", faces, math.NewVec3Zero(), false, BoundsConfig{})
	require.NoError(t, err)
	assert.Equal(t, POSITION_STRIDE, loose.Stride)
	assert.Equal(t, 3, loose.VertexCount())
	assert.False(t, loose.Solid)
	assert.Equal(t, math.NewVec3Zero(), loose.LocalAABB().Min)
	assert.Equal(t, math.NewVec3(3, 2, 2), loose.LocalAABB().Max)

	tight, err := MeshModel("tri", faces, math.NewVec3Zero(), true, BoundsConfig{TightBounds: true})
	require.NoError(t, err)
	assert.Equal(t, math.NewVec3(1, 1, 1), tight.LocalAABB().Min)
	assert.Equal(t, math.NewVec3(3, 2, 2), tight.LocalAABB().Max)
}

func TestMeshModelRejectsEmptyFaces(t *testing.T) {
	_, err := MeshModel("empty", nil, math.NewVec3Zero(), true, BoundsConfig{})
	assert.ErrorIs(t, err, core.ErrInvalidInput)
}

func TestRotatedBounds(t *testing.T) {
	rotation := math.NewQuatFromAxisAngle(math.NewVec3Up(), math.K_PI/4, true)
	limit := float32(1.5) * math.K_SQRT_TWO

	exact := CubeModel(math.NewVec3Zero(), BoundsConfig{ExactRotatedBounds: true})
	exact.Transform.Rotate(rotation)
	box := exact.WorldAABB()
	assert.InDelta(t, limit, box.Max.X, 1e-4)
	assert.InDelta(t, -limit, box.Min.X, 1e-4)
	assert.InDelta(t, limit, box.Max.Z, 1e-4)
	assert.InDelta(t, 1.5, box.Max.Y, 1e-4)
	assert.True(t, exact.Contains(math.NewVec3(2.0, 0, 0)))
}

func TestWorldOrderAndCollidables(t *testing.T) {
	world := NewWorld("test")
	a := CubeModel(math.NewVec3(0, 1.5, 0), BoundsConfig{})
	ghost, err := MeshModel("ghost", []float32{0, 0, 0, 1, 1, 1}, math.NewVec3Zero(), false, BoundsConfig{})
	require.NoError(t, err)
	b := CubeModel(math.NewVec3(3, 1.5, 0), BoundsConfig{})

	for _, m := range []*Model{a, ghost, b} {
		id, err := world.Add(m)
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, id)
	}
	assert.Equal(t, 3, world.Len())
	assert.Equal(t, []*Model{a, ghost, b}, world.Models())
	assert.Equal(t, []collision.Collidable{a, b}, world.Collidables())

	got, ok := world.Model(ghost.ID)
	require.True(t, ok)
	assert.Same(t, ghost, got)

	require.NoError(t, world.Remove(a.ID))
	assert.Equal(t, []*Model{ghost, b}, world.Models())
	assert.Equal(t, []collision.Collidable{b}, world.Collidables())

	_, ok = world.Model(a.ID)
	assert.False(t, ok)
	assert.ErrorIs(t, world.Remove(a.ID), core.ErrUnknownID)

	_, err = world.Add(nil)
	assert.ErrorIs(t, err, core.ErrInvalidInput)
}

func TestWorldSlicesSurviveChanges(t *testing.T) {
	world := NewWorld("test")
	a := CubeModel(math.NewVec3(0, 1.5, 0), BoundsConfig{})
	b := CubeModel(math.NewVec3(3, 1.5, 0), BoundsConfig{})
	c := CubeModel(math.NewVec3(6, 1.5, 0), BoundsConfig{})
	for _, m := range []*Model{a, b, c} {
		_, err := world.Add(m)
		require.NoError(t, err)
	}

	solid := world.Collidables()
	models := world.Models()
	require.NoError(t, world.Remove(a.ID))

	assert.Equal(t, []collision.Collidable{b, c}, world.Collidables())
	assert.Equal(t, []collision.Collidable{a, b, c}, solid)
	assert.Equal(t, []*Model{a, b, c}, models)

	before := world.Collidables()
	_, err := world.Add(a)
	require.NoError(t, err)
	assert.Equal(t, []collision.Collidable{b, c, a}, world.Collidables())
	assert.Equal(t, []collision.Collidable{b, c}, before)
}

func TestBuildMapModels(t *testing.T) {
	grid := &metadata.MapResourceData{
		Rows:  []string{"x.", ".x"},
		Cells: []metadata.MapCell{{Row: 0, Col: 0}, {Row: 1, Col: 1}},
	}
	models := BuildMapModels(grid, DefaultMapLayout(), BoundsConfig{})
	require.Len(t, models, 4)

	assert.Equal(t, math.NewVec3(0, 1.5, 0), models[0].Transform.Position)
	assert.Equal(t, math.NewVec3(3, 1.5, 3), models[1].Transform.Position)
	assert.Equal(t, "cube[1,1]", models[1].Name)

	assert.Equal(t, "floor", models[2].Name)
	assert.Equal(t, float32(0), models[2].Transform.Position.Y)
	assert.Equal(t, "floor", models[3].Name)
	assert.Equal(t, float32(3), models[3].Transform.Position.Y)
	assert.Equal(t, math.NewVec3(100, 3, 100), models[3].WorldAABB().Max)
}

func TestBuildMapModelsNilGrid(t *testing.T) {
	models := BuildMapModels(nil, DefaultMapLayout(), BoundsConfig{})
	assert.Len(t, models, 2)
}

func TestBuildWorld(t *testing.T) {
	manifest := &metadata.SceneResourceData{
		Name:     "hall",
		CellSize: 2,
		Floors:   []metadata.SceneFloor{{Width: 10, Depth: 10, Height: 0}},
		Meshes: []metadata.SceneMesh{
			{Path: "/a/statue.obj", Position: [3]float32{4, 0, 4}, Solid: true},
		},
		Light: &metadata.SceneLight{Direction: [3]float32{0, -2, 0}, Color: [3]float32{1, 0.5, 0.5}, Ambient: 3},
	}
	grid := &metadata.MapResourceData{Cells: []metadata.MapCell{{Row: 2, Col: 1}}}
	meshes := map[string]*metadata.MeshResourceData{
		"/a/statue.obj": {
			Vertices: [][3]float32{{0, 0, 0}, {1, 0, 0}, {0, 2, 0}},
			Faces:    [][3]uint32{{0, 1, 2}},
		},
	}

	world, err := BuildWorld(manifest, grid, meshes, DefaultDirectionalLight(), BoundsConfig{})
	require.NoError(t, err)
	assert.Equal(t, "hall", world.Name)

	models := world.Models()
	require.Len(t, models, 3)
	assert.Equal(t, math.NewVec3(4, 1.5, 2), models[0].Transform.Position)
	assert.Equal(t, "floor", models[1].Name)
	assert.Equal(t, "/a/statue.obj", models[2].Name)
	assert.Equal(t, 3, models[2].VertexCount())
	assert.Len(t, world.Collidables(), 3)

	light := world.Light()
	assert.Equal(t, math.NewVec3(0, -1, 0), light.Direction)
	assert.Equal(t, float32(1), light.Ambient)
}

func TestBuildWorldRotatesMeshes(t *testing.T) {
	manifest := &metadata.SceneResourceData{
		Floors: []metadata.SceneFloor{{Width: 10, Depth: 10, Height: 0}},
		Meshes: []metadata.SceneMesh{
			{Path: "/a/sign.obj", Position: [3]float32{4, 0, 4}, Rotation: [3]float32{0, 45, 0}, Solid: true},
		},
	}
	grid := &metadata.MapResourceData{Cells: []metadata.MapCell{{Row: 1, Col: 1}}}
	meshes := map[string]*metadata.MeshResourceData{
		"/a/sign.obj": {
			Vertices: [][3]float32{{0, 0, 0}, {1, 0, 0}, {0, 2, 0}},
			Faces:    [][3]uint32{{0, 1, 2}},
		},
	}

	corners, err := BuildWorld(manifest, grid, meshes, DefaultDirectionalLight(), BoundsConfig{})
	require.NoError(t, err)
	enclosing, err := BuildWorld(manifest, grid, meshes, DefaultDirectionalLight(), BoundsConfig{ExactRotatedBounds: true})
	require.NoError(t, err)
	require.Equal(t, corners.Len(), enclosing.Len())

	// unrotated models get the same box either way
	for i := 0; i < 2; i++ {
		assert.Equal(t, corners.Models()[i].WorldAABB(), enclosing.Models()[i].WorldAABB(), corners.Models()[i].Name)
	}

	half := float32(0.5) * math.K_SQRT_TWO
	sign := corners.Models()[2]
	assert.NotEqual(t, math.NewQuatIdentity(), sign.Transform.Rotation)

	// the far corner (1, 2, 0) swings to (half, 2, -half)
	moved := sign.WorldAABB()
	assert.InDelta(t, 4+half, moved.Max.X, 1e-4)
	assert.InDelta(t, 4-half, moved.Max.Z, 1e-4)
	assert.True(t, moved.Min.Compare(math.NewVec3(4, 0, 4), 1e-5), "min %v", moved.Min)

	box := enclosing.Models()[2].WorldAABB()
	assert.NotEqual(t, moved, box)
	assert.InDelta(t, 4-half, box.Min.Z, 1e-4)
	assert.InDelta(t, 4, box.Max.Z, 1e-4)
	assert.InDelta(t, 4+half, box.Max.X, 1e-4)

	inside := math.NewVec3(4.3, 1, 3.7)
	assert.True(t, enclosing.Models()[2].Contains(inside))
	assert.False(t, sign.Contains(inside))
}

func TestBuildWorldBindsTextures(t *testing.T) {
	manifest := &metadata.SceneResourceData{
		Floors:       []metadata.SceneFloor{{Width: 10, Depth: 10, Height: 0}},
		WallTexture:  "/t/wall.png",
		FloorTexture: "/t/floor.png",
		Meshes: []metadata.SceneMesh{
			{Path: "/a/statue.obj", Texture: "/t/marble.png"},
			{Path: "/a/plain.obj"},
		},
	}
	grid := &metadata.MapResourceData{Cells: []metadata.MapCell{{Row: 0, Col: 1}}}
	tri := &metadata.MeshResourceData{
		Vertices: [][3]float32{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}},
		Faces:    [][3]uint32{{0, 1, 2}},
	}
	meshes := map[string]*metadata.MeshResourceData{"/a/statue.obj": tri, "/a/plain.obj": tri}

	world, err := BuildWorld(manifest, grid, meshes, DefaultDirectionalLight(), BoundsConfig{})
	require.NoError(t, err)
	var got []string
	for _, m := range world.Models() {
		got = append(got, m.Texture)
	}
	assert.Equal(t, []string{"/t/wall.png", "/t/floor.png", "/t/marble.png", ""}, got)
}

func TestBuildWorldErrors(t *testing.T) {
	_, err := BuildWorld(nil, nil, nil, DefaultDirectionalLight(), BoundsConfig{})
	assert.ErrorIs(t, err, core.ErrInvalidInput)

	manifest := &metadata.SceneResourceData{Meshes: []metadata.SceneMesh{{Path: "/missing.obj"}}}
	_, err = BuildWorld(manifest, nil, nil, DefaultDirectionalLight(), BoundsConfig{})
	assert.ErrorIs(t, err, core.ErrAssetNotFound)
}

func TestBuildWorldKeepsFallbackLight(t *testing.T) {
	fallback, err := NewDirectionalLight(math.NewVec3(1, 0, 0), math.NewVec3One(), 0.5)
	require.NoError(t, err)

	world, err := BuildWorld(&metadata.SceneResourceData{}, nil, nil, fallback, BoundsConfig{})
	require.NoError(t, err)
	assert.Equal(t, fallback, world.Light())
	assert.Equal(t, 2, world.Len())
}

func TestNewDirectionalLight(t *testing.T) {
	_, err := NewDirectionalLight(math.NewVec3Zero(), math.NewVec3One(), 0.2)
	assert.ErrorIs(t, err, core.ErrInvalidInput)

	l := DefaultDirectionalLight()
	assert.InDelta(t, 1.0, l.Direction.Length(), 1e-6)
	assert.Equal(t, float32(0.2), l.Ambient)
}
