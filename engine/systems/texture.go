package systems

import (
	"github.com/spaghettifunk/corridor/engine/assets"
	"github.com/spaghettifunk/corridor/engine/core"
	"github.com/spaghettifunk/corridor/engine/renderer/metadata"
)

type TextureSystemConfig struct {
	/** @brief Flip images vertically while decoding, as GL texture space starts at the bottom. */
	FlipY bool `toml:"flip_y"`
	/** @brief Largest texture side; bigger images are downscaled. Zero disables it. */
	MaxSize uint32 `toml:"max_size"`
}

func DefaultTextureSystemConfig() TextureSystemConfig {
	return TextureSystemConfig{FlipY: true, MaxSize: 2048}
}

// TextureSystem decodes textures on the job system and hands them to the
// renderer on the calling goroutine.
type TextureSystem struct {
	Config   TextureSystemConfig
	textures *resourceCache[*metadata.ImageResourceData]
	renderer *RendererSystem
	// names already created on the backend
	registered map[string]struct{}
}

func NewTextureSystem(config TextureSystemConfig, js *JobSystem, am *assets.AssetManager, r *RendererSystem) (*TextureSystem, error) {
	params := metadata.ImageResourceParams{FlipY: config.FlipY, MaxSize: config.MaxSize}
	return &TextureSystem{
		Config:     config,
		textures:   newResourceCache[*metadata.ImageResourceData]("texture", metadata.ResourceTypeImage, params, js, am),
		renderer:   r,
		registered: make(map[string]struct{}),
	}, nil
}

// Acquire decodes the textures not loaded yet and creates them on the
// backend. Textures are named by resolved path.
func (ts *TextureSystem) Acquire(paths []string) error {
	textures, err := ts.textures.load(paths)
	if err != nil {
		return err
	}
	for name, tex := range textures {
		if _, ok := ts.registered[name]; ok {
			continue
		}
		if err := ts.renderer.TextureCreate(name, tex); err != nil {
			return err
		}
		ts.registered[name] = struct{}{}
	}
	core.LogDebug("%d textures ready", len(ts.registered))
	return nil
}

func (ts *TextureSystem) Get(path string) (*metadata.ImageResourceData, bool) {
	return ts.textures.get(path)
}

// Release destroys a texture so the next Acquire decodes it again.
func (ts *TextureSystem) Release(path string) error {
	full := ts.textures.assetManager.Resolve(path)
	ts.textures.invalidate(full)
	if _, ok := ts.registered[full]; !ok {
		return nil
	}
	delete(ts.registered, full)
	return ts.renderer.TextureDestroy(full)
}

// Reload decodes a texture again and replaces it on the backend. When the
// file cannot be decoded the previous texture stays in use.
func (ts *TextureSystem) Reload(path string) error {
	full := ts.textures.assetManager.Resolve(path)
	previous, had := ts.textures.get(full)
	ts.textures.invalidate(full)

	loaded, err := ts.textures.load([]string{full})
	if err != nil {
		if had {
			ts.textures.put(full, previous)
		}
		return err
	}
	if err := ts.renderer.TextureCreate(full, loaded[full]); err != nil {
		return err
	}
	ts.registered[full] = struct{}{}
	return nil
}

func (ts *TextureSystem) Shutdown() error {
	for name := range ts.registered {
		if err := ts.renderer.TextureDestroy(name); err != nil {
			return err
		}
	}
	ts.registered = make(map[string]struct{})
	ts.textures.clear()
	return nil
}
