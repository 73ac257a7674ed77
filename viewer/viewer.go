package viewer

import (
	"fmt"

	"github.com/spaghettifunk/corridor/engine"
	"github.com/spaghettifunk/corridor/engine/controls"
	"github.com/spaghettifunk/corridor/engine/core"
	"github.com/spaghettifunk/corridor/engine/math"
	"github.com/spaghettifunk/corridor/engine/renderer/metadata"
	"github.com/spaghettifunk/corridor/engine/scene"
)

// Viewer walks a first-person camera through the scene described by the
// configured manifest.
type Viewer struct {
	*engine.Game
}

type viewerState struct {
	controller *controls.Controller
	keyMap     controls.KeyMap
	world      *scene.World
	fallback   scene.DirectionalLight

	// resolved asset paths the current world depends on
	watched map[string]assetRole
	pending reloadRequest

	width  uint32
	height uint32
}

func NewViewer(config *engine.ApplicationConfig) (*Viewer, error) {
	if config == nil {
		return nil, fmt.Errorf("viewer needs a configuration: %w", core.ErrInvalidInput)
	}
	keyMap, err := controls.NewKeyMap(config.Controls.Keys)
	if err != nil {
		return nil, err
	}
	fallback, err := config.Light.DirectionalLight()
	if err != nil {
		return nil, err
	}

	v := &Viewer{
		Game: &engine.Game{
			ApplicationConfig: config,
			State: &viewerState{
				controller: controls.NewController(config.Controls, config.Camera.Camera()),
				keyMap:     keyMap,
				fallback:   fallback,
				watched:    make(map[string]assetRole),
			},
		},
	}

	v.FnInitialize = v.Initialize
	v.FnUpdate = v.Update
	v.FnRender = v.Render
	v.FnOnResize = v.OnResize
	v.FnShutdown = v.Shutdown

	return v, nil
}

func (v *Viewer) state() *viewerState {
	return v.State.(*viewerState)
}

func (v *Viewer) Initialize() error {
	core.LogDebug("Viewer Initialize fn....")

	if v.SystemManager == nil || v.AssetManager == nil {
		return fmt.Errorf("the engine is not yet initialized with all the system managers: %w", core.ErrInvalidInput)
	}

	if err := v.loadWorld(); err != nil {
		core.LogError("failed to load scene %s", v.ApplicationConfig.Application.Scene)
		return err
	}

	v.Events.Register(core.EVENT_CODE_KEY_PRESSED, v, v.onKey)
	v.Events.Register(core.EVENT_CODE_KEY_RELEASED, v, v.onKey)
	v.Events.Register(core.EVENT_CODE_MOUSE_MOVED, v, v.onMouseMove)
	v.Events.Register(core.EVENT_CODE_ASSET_CHANGED, v, v.onAssetChanged)

	return nil
}

// Update applies pending reloads, then moves the camera. deltaTime is in
// seconds; the controller works in milliseconds.
func (v *Viewer) Update(deltaTime float64) error {
	state := v.state()

	if state.pending.any() {
		v.applyReload()
	}

	state.controller.Update(float32(deltaTime)*math.K_SEC_TO_MS_MULTIPLIER, state.world.Collidables())

	if v.released(core.KEY_P) {
		pos := state.controller.Camera().Position
		core.LogInfo("Pos:[%.2f, %.2f, %.2f] Yaw: %.2f Pitch: %.2f", pos.X, pos.Y, pos.Z, state.controller.Yaw(), state.controller.Pitch())
	}

	// RENDERER DEBUG FUNCTIONS
	switch {
	case v.released(core.KEY_1):
		v.setRenderMode(metadata.RENDERER_VIEW_MODE_DEFAULT)
	case v.released(core.KEY_2):
		v.setRenderMode(metadata.RENDERER_VIEW_MODE_LIGHTING)
	case v.released(core.KEY_3):
		v.setRenderMode(metadata.RENDERER_VIEW_MODE_NORMALS)
	}
	return nil
}

func (v *Viewer) Render(deltaTime float64) (*metadata.RenderPacket, error) {
	state := v.state()
	return v.SystemManager.RendererSystem.BuildPacket(state.controller.Camera(), state.world, deltaTime), nil
}

func (v *Viewer) OnResize(width uint32, height uint32) error {
	state := v.state()
	state.width = width
	state.height = height
	return nil
}

func (v *Viewer) Shutdown() error {
	core.LogDebug("Viewer Shutdown fn....")
	if v.Events != nil {
		for _, code := range []core.EventCode{
			core.EVENT_CODE_KEY_PRESSED,
			core.EVENT_CODE_KEY_RELEASED,
			core.EVENT_CODE_MOUSE_MOVED,
			core.EVENT_CODE_ASSET_CHANGED,
		} {
			v.Events.Unregister(code, v)
		}
	}
	return nil
}

// Controller exposes the camera controller to tools and tests.
func (v *Viewer) Controller() *controls.Controller {
	return v.state().controller
}

func (v *Viewer) World() *scene.World {
	return v.state().world
}

// released reports a key that went up during this frame.
func (v *Viewer) released(key core.KeyCode) bool {
	return v.Input.IsKeyUp(key) && v.Input.WasKeyDown(key)
}

func (v *Viewer) setRenderMode(mode metadata.RendererDebugViewMode) {
	rs := v.SystemManager.RendererSystem
	if rs.Mode == mode {
		return
	}
	rs.Mode = mode
	switch mode {
	case metadata.RENDERER_VIEW_MODE_LIGHTING:
		core.LogDebug("renderer mode set to lighting")
	case metadata.RENDERER_VIEW_MODE_NORMALS:
		core.LogDebug("renderer mode set to normals")
	default:
		core.LogDebug("renderer mode set to default")
	}
}
