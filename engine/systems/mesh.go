package systems

import (
	"github.com/spaghettifunk/corridor/engine/assets"
	"github.com/spaghettifunk/corridor/engine/core"
	"github.com/spaghettifunk/corridor/engine/renderer/metadata"
)

// MeshLoaderSystem parses OBJ files on the job system and keeps them
// until invalidated.
type MeshLoaderSystem struct {
	meshes *resourceCache[*metadata.MeshResourceData]
}

func NewMeshLoaderSystem(js *JobSystem, am *assets.AssetManager) (*MeshLoaderSystem, error) {
	return &MeshLoaderSystem{
		meshes: newResourceCache[*metadata.MeshResourceData]("mesh", metadata.ResourceTypeMesh, nil, js, am),
	}, nil
}

func (mls *MeshLoaderSystem) Shutdown() error {
	mls.meshes.clear()
	return nil
}

// Load returns the meshes for paths keyed by resolved path.
func (mls *MeshLoaderSystem) Load(paths []string) (map[string]*metadata.MeshResourceData, error) {
	meshes, err := mls.meshes.load(paths)
	if err != nil {
		return nil, err
	}
	core.LogDebug("meshes ready: %d requested, %d cached", len(paths), mls.meshes.len())
	return meshes, nil
}

func (mls *MeshLoaderSystem) Get(path string) (*metadata.MeshResourceData, bool) {
	return mls.meshes.get(path)
}

// Unload drops a mesh so the next Load parses the file again.
func (mls *MeshLoaderSystem) Unload(path string) bool {
	return mls.meshes.invalidate(path)
}
