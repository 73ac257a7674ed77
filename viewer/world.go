package viewer

import (
	"fmt"

	"github.com/spaghettifunk/corridor/engine/core"
	"github.com/spaghettifunk/corridor/engine/renderer/metadata"
	"github.com/spaghettifunk/corridor/engine/scene"
)

// assetRole says what a watched file is used for.
type assetRole uint8

const (
	roleManifest assetRole = iota
	roleMap
	roleMesh
	roleTexture
	roleShader
)

type reloadRequest struct {
	world    bool
	shader   bool
	meshes   []string
	textures []string
}

func (r reloadRequest) any() bool {
	return r.world || r.shader || len(r.textures) > 0
}

// loadWorld reads the manifest and everything it references, then swaps
// the new world in. On error the current world is kept.
func (v *Viewer) loadWorld() error {
	state := v.state()
	config := v.ApplicationConfig
	am := v.AssetManager
	sm := v.SystemManager

	res, err := am.LoadAsset(config.Application.Scene, metadata.ResourceTypeScene, nil)
	if err != nil {
		return err
	}
	manifest, ok := res.Data.(*metadata.SceneResourceData)
	if !ok {
		return fmt.Errorf("scene %s: unexpected data %T: %w", res.FullPath, res.Data, core.ErrInvalidInput)
	}

	var grid *metadata.MapResourceData
	if manifest.Map != "" {
		mres, err := am.LoadAsset(manifest.Map, metadata.ResourceTypeMap, nil)
		if err != nil {
			return err
		}
		if grid, ok = mres.Data.(*metadata.MapResourceData); !ok {
			return fmt.Errorf("map %s: unexpected data %T: %w", manifest.Map, mres.Data, core.ErrInvalidInput)
		}
	}

	meshPaths := make([]string, 0, len(manifest.Meshes))
	for _, m := range manifest.Meshes {
		meshPaths = append(meshPaths, m.Path)
	}
	meshes, err := sm.MeshLoaderSystem.Load(meshPaths)
	if err != nil {
		return err
	}

	if err := sm.TextureSystem.Acquire(manifest.Textures); err != nil {
		return err
	}

	world, err := scene.BuildWorld(manifest, grid, meshes, state.fallback, config.Collision)
	if err != nil {
		return err
	}

	watched := map[string]assetRole{
		am.Resolve(config.Application.Scene): roleManifest,
	}
	if manifest.Map != "" {
		watched[am.Resolve(manifest.Map)] = roleMap
	}
	for _, p := range meshPaths {
		watched[am.Resolve(p)] = roleMesh
	}
	for _, p := range manifest.Textures {
		watched[am.Resolve(p)] = roleTexture
	}
	shader := config.Renderer.Shader
	watched[am.Resolve(shader+metadata.ShaderStageVertex.Extension())] = roleShader
	watched[am.Resolve(shader+metadata.ShaderStageFragment.Extension())] = roleShader

	// textures the new world no longer draws
	for path, role := range state.watched {
		if role != roleTexture {
			continue
		}
		if _, ok := watched[path]; ok {
			continue
		}
		if err := sm.TextureSystem.Release(path); err != nil {
			core.LogWarn("texture %s release failed: %s", path, err)
		}
	}

	state.world = world
	state.watched = watched
	core.LogInfo("scene %q loaded: %d models, %d solid", world.Name, world.Len(), len(world.Collidables()))
	return nil
}

// requestReload records what a changed file invalidates. The work itself
// happens in the next Update.
func (v *Viewer) requestReload(path string) bool {
	state := v.state()
	role, ok := state.watched[path]
	if !ok {
		return false
	}
	switch role {
	case roleShader:
		state.pending.shader = true
	case roleMesh:
		state.pending.meshes = append(state.pending.meshes, path)
		state.pending.world = true
	case roleTexture:
		state.pending.textures = append(state.pending.textures, path)
	default:
		state.pending.world = true
	}
	return true
}

func (v *Viewer) applyReload() {
	state := v.state()
	req := state.pending
	state.pending = reloadRequest{}

	if req.shader {
		if err := v.reloadShader(); err != nil {
			core.LogError("shader reload failed, keeping the previous one: %s", err)
		}
	}
	for _, p := range req.textures {
		if err := v.SystemManager.TextureSystem.Reload(p); err != nil {
			core.LogError("texture %s reload failed, keeping the previous one: %s", p, err)
		}
	}
	if !req.world {
		return
	}
	for _, p := range req.meshes {
		v.SystemManager.MeshLoaderSystem.Unload(p)
	}
	if err := v.loadWorld(); err != nil {
		core.LogError("scene reload failed, keeping the previous world: %s", err)
	}
}

func (v *Viewer) reloadShader() error {
	s, err := v.SystemManager.ShaderSystem.Reload(v.ApplicationConfig.Renderer.Shader)
	if err != nil {
		return err
	}
	return v.SystemManager.RendererSystem.ShaderCreate(s)
}
