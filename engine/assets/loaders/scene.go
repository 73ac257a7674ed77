package loaders

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/spaghettifunk/corridor/engine/core"
	"github.com/spaghettifunk/corridor/engine/renderer/metadata"
)

const (
	DEFAULT_CELL_SIZE  float32 = 3.0
	DEFAULT_FLOOR_SIZE float32 = 100.0
)

// DefaultFloors are used when a manifest does not declare any floor.
func DefaultFloors() []metadata.SceneFloor {
	return []metadata.SceneFloor{
		{Width: DEFAULT_FLOOR_SIZE, Depth: DEFAULT_FLOOR_SIZE, Height: 0},
		{Width: DEFAULT_FLOOR_SIZE, Depth: DEFAULT_FLOOR_SIZE, Height: 3},
	}
}

// SceneLoaderParams tells the scene loader where relative paths start.
// Without it they resolve against the directory of the manifest.
type SceneLoaderParams struct {
	AssetsDir string
}

type SceneLoader struct{}

func (sl *SceneLoader) Load(path string, params interface{}) (*metadata.Resource, error) {
	f, size, err := openAsset(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	baseDir := filepath.Dir(path)
	if p, ok := params.(SceneLoaderParams); ok && p.AssetsDir != "" {
		baseDir = p.AssetsDir
	}

	manifest, err := ParseScene(f, baseDir)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	name := manifest.Name
	if name == "" {
		name = resourceName(path)
	}
	return &metadata.Resource{
		Type:     metadata.ResourceTypeScene,
		Name:     name,
		FullPath: path,
		DataSize: uint64(size),
		Data:     manifest,
	}, nil
}

func (sl *SceneLoader) Unload(res *metadata.Resource) error {
	res.Data = nil
	return nil
}

// ParseScene decodes a YAML scene manifest, fills the defaults and makes
// every relative path absolute against baseDir.
func ParseScene(r io.Reader, baseDir string) (*metadata.SceneResourceData, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)

	manifest := &metadata.SceneResourceData{}
	if err := decoder.Decode(manifest); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("empty scene manifest: %w", core.ErrInvalidInput)
		}
		return nil, fmt.Errorf("%v: %w", err, core.ErrInvalidInput)
	}

	if manifest.CellSize == 0 {
		manifest.CellSize = DEFAULT_CELL_SIZE
	}
	if manifest.CellSize < 0 {
		return nil, fmt.Errorf("cell_size must be positive, got %v: %w", manifest.CellSize, core.ErrInvalidInput)
	}
	if manifest.Floors == nil {
		manifest.Floors = DefaultFloors()
	}
	for i, floor := range manifest.Floors {
		if floor.Width <= 0 || floor.Depth <= 0 {
			return nil, fmt.Errorf("floors[%d]: width and depth must be positive: %w", i, core.ErrInvalidInput)
		}
	}
	if l := manifest.Light; l != nil && l.Direction == [3]float32{} {
		return nil, fmt.Errorf("light direction must not be zero: %w", core.ErrInvalidInput)
	}

	if manifest.Map != "" {
		manifest.Map = resolvePath(baseDir, manifest.Map)
	}
	for i := range manifest.Meshes {
		if manifest.Meshes[i].Path == "" {
			return nil, fmt.Errorf("meshes[%d]: missing path: %w", i, core.ErrInvalidInput)
		}
		manifest.Meshes[i].Path = resolvePath(baseDir, manifest.Meshes[i].Path)
	}
	for i := range manifest.Textures {
		manifest.Textures[i] = resolvePath(baseDir, manifest.Textures[i])
	}

	// textures bound to models are loaded even when not listed
	listed := make(map[string]struct{}, len(manifest.Textures))
	for _, t := range manifest.Textures {
		listed[t] = struct{}{}
	}
	bind := func(path *string) {
		if *path == "" {
			return
		}
		*path = resolvePath(baseDir, *path)
		if _, ok := listed[*path]; !ok {
			listed[*path] = struct{}{}
			manifest.Textures = append(manifest.Textures, *path)
		}
	}
	bind(&manifest.WallTexture)
	bind(&manifest.FloorTexture)
	for i := range manifest.Meshes {
		bind(&manifest.Meshes[i].Texture)
	}
	return manifest, nil
}

func resolvePath(baseDir, path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(baseDir, path)
}
