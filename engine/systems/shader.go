package systems

import (
	"fmt"
	"sync"

	"github.com/spaghettifunk/corridor/engine/assets"
	"github.com/spaghettifunk/corridor/engine/core"
	"github.com/spaghettifunk/corridor/engine/renderer/metadata"
)

// ShaderSystem loads shader source pairs by name and keeps them.
type ShaderSystem struct {
	// A lookup table for shader name -> sources
	Lookup map[string]*metadata.ShaderResourceData

	mutex        sync.RWMutex
	assetManager *assets.AssetManager
}

func NewShaderSystem(am *assets.AssetManager) (*ShaderSystem, error) {
	if am == nil {
		err := fmt.Errorf("NewShaderSystem - asset manager is required: %w", core.ErrInvalidInput)
		core.LogError(err.Error())
		return nil, err
	}
	return &ShaderSystem{
		Lookup:       make(map[string]*metadata.ShaderResourceData),
		assetManager: am,
	}, nil
}

func (shaderSystem *ShaderSystem) Shutdown() error {
	shaderSystem.mutex.Lock()
	defer shaderSystem.mutex.Unlock()
	shaderSystem.Lookup = make(map[string]*metadata.ShaderResourceData)
	return nil
}

// Acquire returns the shader called name (a path stem relative to the
// assets directory), loading it on first use.
func (shaderSystem *ShaderSystem) Acquire(name string) (*metadata.ShaderResourceData, error) {
	shaderSystem.mutex.RLock()
	s, ok := shaderSystem.Lookup[name]
	shaderSystem.mutex.RUnlock()
	if ok {
		return s, nil
	}
	return shaderSystem.Reload(name)
}

// Reload reads the shader sources again and replaces the cached ones.
func (shaderSystem *ShaderSystem) Reload(name string) (*metadata.ShaderResourceData, error) {
	res, err := shaderSystem.assetManager.LoadAsset(name, metadata.ResourceTypeShader, nil)
	if err != nil {
		return nil, err
	}
	s, ok := res.Data.(*metadata.ShaderResourceData)
	if !ok {
		return nil, fmt.Errorf("shader %s: unexpected data %T", name, res.Data)
	}

	shaderSystem.mutex.Lock()
	shaderSystem.Lookup[name] = s
	shaderSystem.mutex.Unlock()
	core.LogDebug("shader %s loaded", name)
	return s, nil
}
