package headless

import (
	"fmt"
	"sync"

	"github.com/spaghettifunk/corridor/engine/core"
	"github.com/spaghettifunk/corridor/engine/renderer/metadata"
)

// HeadlessRenderer accepts frames without a GPU. It keeps the last packet
// and counters so tools and tests can inspect what would have been drawn.
type HeadlessRenderer struct {
	FrameNumber             uint64
	cachedFramebufferWidth  uint32
	cachedFramebufferHeight uint32

	mutex       sync.RWMutex
	initialized bool
	inFrame     bool
	lastPacket  *metadata.RenderPacket
	drawCalls   uint64
	textured    uint64
	vertices    uint64
	byCullMode  map[metadata.FaceCullMode]uint64
	textures    map[string]*metadata.ImageResourceData
	shader      *metadata.ShaderResourceData
	shadowSize  uint32
}

func New() *HeadlessRenderer {
	return &HeadlessRenderer{
		textures:   make(map[string]*metadata.ImageResourceData),
		byCullMode: make(map[metadata.FaceCullMode]uint64),
	}
}

func (hr *HeadlessRenderer) Initialize(config *metadata.RendererBackendConfig) error {
	if config == nil {
		return fmt.Errorf("headless renderer: nil config: %w", core.ErrInvalidInput)
	}
	hr.mutex.Lock()
	defer hr.mutex.Unlock()

	hr.cachedFramebufferWidth = config.Width
	hr.cachedFramebufferHeight = config.Height
	hr.shadowSize = config.ShadowMapSize
	if config.Shader != nil {
		hr.shader = config.Shader
	}
	hr.initialized = true
	core.LogInfo("headless renderer initialized for %s (%dx%d)", config.ApplicationName, config.Width, config.Height)
	return nil
}

func (hr *HeadlessRenderer) Shutdown() error {
	hr.mutex.Lock()
	defer hr.mutex.Unlock()

	hr.textures = make(map[string]*metadata.ImageResourceData)
	hr.shader = nil
	hr.lastPacket = nil
	hr.initialized = false
	core.LogDebug("headless renderer shut down after %d frames, %d draw calls", hr.FrameNumber, hr.drawCalls)
	return nil
}

func (hr *HeadlessRenderer) Resized(width, height uint32) error {
	hr.mutex.Lock()
	defer hr.mutex.Unlock()

	hr.cachedFramebufferWidth = width
	hr.cachedFramebufferHeight = height
	return nil
}

func (hr *HeadlessRenderer) BeginFrame(deltaTime float64) error {
	hr.mutex.Lock()
	defer hr.mutex.Unlock()

	if !hr.initialized {
		return fmt.Errorf("headless renderer: frame begun before initialize: %w", core.ErrInvalidInput)
	}
	if hr.inFrame {
		return fmt.Errorf("headless renderer: frame %d already begun: %w", hr.FrameNumber, core.ErrInvalidInput)
	}
	hr.inFrame = true
	return nil
}

func (hr *HeadlessRenderer) DrawFrame(packet *metadata.RenderPacket) error {
	hr.mutex.Lock()
	defer hr.mutex.Unlock()

	if !hr.inFrame {
		return fmt.Errorf("headless renderer: draw outside a frame: %w", core.ErrInvalidInput)
	}
	if packet == nil {
		return fmt.Errorf("headless renderer: nil packet: %w", core.ErrInvalidInput)
	}
	for _, dc := range packet.DrawCalls {
		if dc.Texture == "" {
			continue
		}
		if _, ok := hr.textures[dc.Texture]; !ok {
			return fmt.Errorf("headless renderer: %s samples texture %q: %w", dc.Name, dc.Texture, core.ErrAssetNotFound)
		}
	}
	for _, dc := range packet.DrawCalls {
		hr.vertices += uint64(dc.VertexCount)
		hr.byCullMode[dc.CullMode]++
		if dc.Texture != "" {
			hr.textured++
		}
	}
	hr.drawCalls += uint64(len(packet.DrawCalls))
	hr.lastPacket = packet
	return nil
}

func (hr *HeadlessRenderer) EndFrame(deltaTime float64) error {
	hr.mutex.Lock()
	defer hr.mutex.Unlock()

	if !hr.inFrame {
		return fmt.Errorf("headless renderer: frame ended before it began: %w", core.ErrInvalidInput)
	}
	hr.inFrame = false
	hr.FrameNumber++
	return nil
}

func (hr *HeadlessRenderer) TextureCreate(name string, texture *metadata.ImageResourceData) error {
	if !texture.Consistent() {
		return fmt.Errorf("headless renderer: texture %q has inconsistent size: %w", name, core.ErrInvalidInput)
	}
	hr.mutex.Lock()
	defer hr.mutex.Unlock()

	hr.textures[name] = texture
	core.LogDebug("texture %s created (%dx%d)", name, texture.Width, texture.Height)
	return nil
}

func (hr *HeadlessRenderer) TextureDestroy(name string) error {
	hr.mutex.Lock()
	defer hr.mutex.Unlock()

	if _, ok := hr.textures[name]; !ok {
		return fmt.Errorf("headless renderer: texture %q: %w", name, core.ErrAssetNotFound)
	}
	delete(hr.textures, name)
	return nil
}

func (hr *HeadlessRenderer) ShaderCreate(shader *metadata.ShaderResourceData) error {
	if shader == nil || shader.Vertex == "" || shader.Fragment == "" {
		return fmt.Errorf("headless renderer: incomplete shader: %w", core.ErrInvalidInput)
	}
	hr.mutex.Lock()
	defer hr.mutex.Unlock()

	hr.shader = shader
	core.LogDebug("shader %s created (vertex %d bytes, fragment %d bytes)", shader.Name, len(shader.Vertex), len(shader.Fragment))
	return nil
}

// LastPacket is the packet of the most recent frame, nil before the first.
func (hr *HeadlessRenderer) LastPacket() *metadata.RenderPacket {
	hr.mutex.RLock()
	defer hr.mutex.RUnlock()
	return hr.lastPacket
}

// Stats returns frames ended, draw calls and vertices submitted so far.
func (hr *HeadlessRenderer) Stats() (frames, drawCalls, vertices uint64) {
	hr.mutex.RLock()
	defer hr.mutex.RUnlock()
	return hr.FrameNumber, hr.drawCalls, hr.vertices
}

// TexturedDrawCalls counts submitted draw calls that sampled a texture.
func (hr *HeadlessRenderer) TexturedDrawCalls() uint64 {
	hr.mutex.RLock()
	defer hr.mutex.RUnlock()
	return hr.textured
}

// DrawCallsByCullMode counts submitted draw calls per cull mode name.
func (hr *HeadlessRenderer) DrawCallsByCullMode() map[string]uint64 {
	hr.mutex.RLock()
	defer hr.mutex.RUnlock()
	out := make(map[string]uint64, len(hr.byCullMode))
	for mode, n := range hr.byCullMode {
		out[mode.String()] = n
	}
	return out
}

func (hr *HeadlessRenderer) FramebufferSize() (uint32, uint32) {
	hr.mutex.RLock()
	defer hr.mutex.RUnlock()
	return hr.cachedFramebufferWidth, hr.cachedFramebufferHeight
}

func (hr *HeadlessRenderer) Texture(name string) (*metadata.ImageResourceData, bool) {
	hr.mutex.RLock()
	defer hr.mutex.RUnlock()
	t, ok := hr.textures[name]
	return t, ok
}

func (hr *HeadlessRenderer) Shader() *metadata.ShaderResourceData {
	hr.mutex.RLock()
	defer hr.mutex.RUnlock()
	return hr.shader
}

// ShadowMapSize is the shadow map side requested at initialize, zero when
// shadows are off.
func (hr *HeadlessRenderer) ShadowMapSize() uint32 {
	hr.mutex.RLock()
	defer hr.mutex.RUnlock()
	return hr.shadowSize
}
