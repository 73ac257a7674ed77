package scene

import (
	"fmt"

	"github.com/spaghettifunk/corridor/engine/assets/loaders"
	"github.com/spaghettifunk/corridor/engine/core"
	"github.com/spaghettifunk/corridor/engine/math"
	"github.com/spaghettifunk/corridor/engine/renderer/metadata"
)

/** @brief Where map cells and floors end up in the world. */
type MapLayout struct {
	/** @brief Distance between neighbouring cells on x (rows) and z (columns). */
	CellSize float32
	/** @brief Height of the cube centers. */
	CubeHeight float32
	/** @brief Floors appended after the cubes, in order. */
	Floors []metadata.SceneFloor
	// textures bound to the cubes and the floors, empty for none
	WallTexture  string
	FloorTexture string
}

func DefaultMapLayout() MapLayout {
	return MapLayout{
		CellSize:   loaders.DEFAULT_CELL_SIZE,
		CubeHeight: CUBE_HALF_EXTENT,
		Floors:     loaders.DefaultFloors(),
	}
}

// BuildMapModels places a cube for every solid cell, row r and column c
// going to (r*CellSize, CubeHeight, c*CellSize), then appends the floors.
// A nil grid only yields the floors.
func BuildMapModels(grid *metadata.MapResourceData, layout MapLayout, bounds BoundsConfig) []*Model {
	var cells []metadata.MapCell
	if grid != nil {
		cells = grid.Cells
	}
	models := make([]*Model, 0, len(cells)+len(layout.Floors))
	for _, cell := range cells {
		pos := math.NewVec3(float32(cell.Row)*layout.CellSize, layout.CubeHeight, float32(cell.Col)*layout.CellSize)
		cube := CubeModel(pos, bounds)
		cube.Name = fmt.Sprintf("cube[%d,%d]", cell.Row, cell.Col)
		cube.Texture = layout.WallTexture
		models = append(models, cube)
	}
	for _, f := range layout.Floors {
		floor := FloorModel(f.Width, f.Depth, f.Height, bounds)
		floor.Texture = layout.FloorTexture
		models = append(models, floor)
	}
	return models
}

// BuildWorld assembles a world from a loaded manifest: map cubes, floors,
// then the manifest meshes in declaration order. meshes is keyed by the
// resolved mesh path. A manifest without light keeps fallback.
func BuildWorld(manifest *metadata.SceneResourceData, grid *metadata.MapResourceData, meshes map[string]*metadata.MeshResourceData, fallback DirectionalLight, bounds BoundsConfig) (*World, error) {
	if manifest == nil {
		return nil, fmt.Errorf("nil scene manifest: %w", core.ErrInvalidInput)
	}
	world := NewWorld(manifest.Name)

	layout := DefaultMapLayout()
	if manifest.CellSize > 0 {
		layout.CellSize = manifest.CellSize
	}
	if manifest.Floors != nil {
		layout.Floors = manifest.Floors
	}
	layout.WallTexture = manifest.WallTexture
	layout.FloorTexture = manifest.FloorTexture
	for _, m := range BuildMapModels(grid, layout, bounds) {
		if _, err := world.Add(m); err != nil {
			return nil, err
		}
	}

	for i, sm := range manifest.Meshes {
		mesh, ok := meshes[sm.Path]
		if !ok || mesh == nil {
			return nil, fmt.Errorf("meshes[%d] %s: %w", i, sm.Path, core.ErrAssetNotFound)
		}
		pos := math.NewVec3(sm.Position[0], sm.Position[1], sm.Position[2])
		model, err := MeshModel(sm.Path, mesh.ComputeFaces(), pos, sm.Solid, bounds)
		if err != nil {
			return nil, fmt.Errorf("meshes[%d]: %w", i, err)
		}
		rotate(model.Transform, sm.Rotation)
		model.Texture = sm.Texture
		if _, err := world.Add(model); err != nil {
			return nil, err
		}
	}

	world.SetLight(fallback)
	if manifest.Light != nil {
		light, err := LightFromScene(manifest.Light)
		if err != nil {
			return nil, err
		}
		world.SetLight(light)
	}
	return world, nil
}

var rotationAxes = [3]math.Vec3{{X: 1}, {Y: 1}, {Z: 1}}

// rotate turns t by Euler angles in degrees, x first, then y, then z.
func rotate(t *math.Transform, degrees [3]float32) {
	for i, d := range degrees {
		if d == 0 {
			continue
		}
		t.Rotate(math.NewQuatFromAxisAngle(rotationAxes[i], math.DegToRad(d), true))
	}
}
