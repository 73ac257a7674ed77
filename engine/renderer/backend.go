package renderer

import "github.com/spaghettifunk/corridor/engine/renderer/metadata"

// RendererBackend is what the renderer system drives once per frame. A
// backend owns every GPU-side object; callers only hand it CPU data.
type RendererBackend interface {
	Initialize(config *metadata.RendererBackendConfig) error
	Shutdown() error
	Resized(width, height uint32) error
	BeginFrame(deltaTime float64) error
	DrawFrame(packet *metadata.RenderPacket) error
	EndFrame(deltaTime float64) error
	TextureCreate(name string, texture *metadata.ImageResourceData) error
	TextureDestroy(name string) error
	ShaderCreate(shader *metadata.ShaderResourceData) error
}
