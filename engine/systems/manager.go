package systems

import (
	"github.com/spaghettifunk/corridor/engine/assets"
	"github.com/spaghettifunk/corridor/engine/renderer"
	"github.com/spaghettifunk/corridor/engine/renderer/metadata"
)

type SystemManagerConfig struct {
	ApplicationName string
	Width           uint32
	Height          uint32
	/** @brief Job pool size; zero means one worker per CPU. */
	Workers  int
	Renderer RendererSystemConfig
	Textures TextureSystemConfig
}

type SystemManager struct {
	JobSystem        *JobSystem
	MeshLoaderSystem *MeshLoaderSystem
	ShaderSystem     *ShaderSystem
	TextureSystem    *TextureSystem
	RendererSystem   *RendererSystem
}

func NewSystemManager(config SystemManagerConfig, backend renderer.RendererBackend, am *assets.AssetManager) (*SystemManager, error) {
	js, err := NewJobSystem(config.Workers)
	if err != nil {
		return nil, err
	}
	rs, err := NewRendererSystem(config.ApplicationName, config.Width, config.Height, config.Renderer, backend)
	if err != nil {
		js.Shutdown()
		return nil, err
	}
	ssys, err := NewShaderSystem(am)
	if err != nil {
		js.Shutdown()
		return nil, err
	}
	mls, err := NewMeshLoaderSystem(js, am)
	if err != nil {
		js.Shutdown()
		return nil, err
	}
	ts, err := NewTextureSystem(config.Textures, js, am, rs)
	if err != nil {
		js.Shutdown()
		return nil, err
	}
	return &SystemManager{
		JobSystem:        js,
		MeshLoaderSystem: mls,
		ShaderSystem:     ssys,
		TextureSystem:    ts,
		RendererSystem:   rs,
	}, nil
}

func (sm *SystemManager) Initialize() error {
	return sm.RendererSystem.Initialize(sm.ShaderSystem)
}

func (sm *SystemManager) DrawFrame(packet *metadata.RenderPacket) error {
	return sm.RendererSystem.DrawFrame(packet)
}

func (sm *SystemManager) OnResize(width, height uint32) error {
	return sm.RendererSystem.OnResize(width, height)
}

func (sm *SystemManager) Shutdown() error {
	if err := sm.TextureSystem.Shutdown(); err != nil {
		return err
	}
	if err := sm.MeshLoaderSystem.Shutdown(); err != nil {
		return err
	}
	if err := sm.ShaderSystem.Shutdown(); err != nil {
		return err
	}
	if err := sm.RendererSystem.Shutdown(); err != nil {
		return err
	}
	if err := sm.JobSystem.Shutdown(); err != nil {
		return err
	}
	return nil
}
