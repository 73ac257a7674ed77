package engine

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spaghettifunk/corridor/engine/assets"
	"github.com/spaghettifunk/corridor/engine/core"
	"github.com/spaghettifunk/corridor/engine/platform"
	"github.com/spaghettifunk/corridor/engine/renderer"
	"github.com/spaghettifunk/corridor/engine/renderer/headless"
	"github.com/spaghettifunk/corridor/engine/systems"
)

type Stage uint8

const (
	// Engine is in an uninitialized state
	EngineStageUninitialized Stage = iota
	// Engine is currently booting up
	EngineStageBooting
	// Engine completed boot process and is ready to be initialized
	EngineStageBootComplete
	// Engine is currently initializing
	EngineStageInitializing
	// Engine initialization is complete
	EngineStageInitialized
	// Engine is currently running
	EngineStageRunning
	// Engine is in the process of shutting down
	EngineStageShuttingDown
)

func (s Stage) String() string {
	switch s {
	case EngineStageUninitialized:
		return "uninitialized"
	case EngineStageBooting:
		return "booting"
	case EngineStageBootComplete:
		return "boot complete"
	case EngineStageInitializing:
		return "initializing"
	case EngineStageInitialized:
		return "initialized"
	case EngineStageRunning:
		return "running"
	case EngineStageShuttingDown:
		return "shutting down"
	}
	return fmt.Sprintf("Stage(%d)", uint8(s))
}

// Platform is the window and OS event source. Callbacks must feed the
// input system handed to the factory.
type Platform interface {
	Startup(applicationName string, x uint32, y uint32, width uint32, height uint32, captureCursor bool) error
	Shutdown() error
	// PumpMessages returns false once the window was asked to close.
	PumpMessages() bool
	GetAbsoluteTime() float64
	Sleep(ms float64)
}

type PlatformFactory func(input *core.Input) (Platform, error)

type Option func(*Engine)

// WithPlatform replaces the glfw window, typically with a scripted one in tests.
func WithPlatform(factory PlatformFactory) Option {
	return func(e *Engine) {
		e.platformFactory = factory
	}
}

func WithBackend(backend renderer.RendererBackend) Option {
	return func(e *Engine) {
		e.backend = backend
	}
}

func WithClock(clock *core.Clock) Option {
	return func(e *Engine) {
		e.clock = clock
	}
}

type Engine struct {
	currentStage  Stage
	gameInstance  *Game
	isRunning     bool
	isSuspended   bool
	platform      Platform
	events        *core.EventSystem
	input         *core.Input
	assetManager  *assets.AssetManager
	systemManager *systems.SystemManager
	width         uint32
	height        uint32
	clock         *core.Clock
	metrics       *core.Metrics
	lastTime      float64

	platformFactory PlatformFactory
	backend         renderer.RendererBackend
}

func New(g *Game, opts ...Option) (*Engine, error) {
	if g == nil || g.ApplicationConfig == nil {
		return nil, fmt.Errorf("engine needs a game with an application config: %w", core.ErrInvalidInput)
	}
	if g.FnInitialize == nil || g.FnUpdate == nil || g.FnRender == nil || g.FnOnResize == nil {
		return nil, fmt.Errorf("game callbacks FnInitialize, FnUpdate, FnRender and FnOnResize are required: %w", core.ErrInvalidInput)
	}
	config := g.ApplicationConfig
	if err := config.Validate(); err != nil {
		return nil, err
	}
	level, _ := core.ParseLogLevel(config.Application.LogLevel)
	core.SetLogLevel(level)

	e := &Engine{
		currentStage: EngineStageUninitialized,
		gameInstance: g,
		clock:        core.NewClock(),
		metrics:      core.NewMetrics(),
		isRunning:    true,
		isSuspended:  false,
		width:        config.Application.StartWidth,
		height:       config.Application.StartHeight,
		lastTime:     0,
		platformFactory: func(input *core.Input) (Platform, error) {
			return platform.New(input)
		},
	}
	for _, opt := range opts {
		opt(e)
	}
	e.currentStage = EngineStageBooting

	e.events = core.NewEventSystem(core.DEFAULT_EVENT_QUEUE_SIZE)
	e.input = core.NewInput(e.events)

	p, err := e.platformFactory(e.input)
	if err != nil {
		return nil, err
	}
	e.platform = p

	if e.backend == nil {
		e.backend = headless.New()
	}

	am, err := assets.NewAssetManager()
	if err != nil {
		core.LogError(err.Error())
		return nil, err
	}
	e.assetManager = am

	sm, err := systems.NewSystemManager(config.systemManagerConfig(), e.backend, am)
	if err != nil {
		core.LogError(err.Error())
		am.Shutdown()
		return nil, err
	}
	e.systemManager = sm

	g.SystemManager = sm
	g.AssetManager = am
	g.Events = e.events
	g.Input = e.input

	e.currentStage = EngineStageBootComplete
	return e, nil
}

func (e *Engine) Initialize() error {
	if e.currentStage != EngineStageBootComplete {
		return fmt.Errorf("engine cannot initialize in stage %s: %w", e.currentStage, core.ErrInvalidInput)
	}
	e.currentStage = EngineStageInitializing
	app := e.gameInstance.ApplicationConfig.Application

	// register some events
	e.events.Register(core.EVENT_CODE_APPLICATION_QUIT, e, e.onEvent)
	e.events.Register(core.EVENT_CODE_KEY_PRESSED, e, e.onKey)
	e.events.Register(core.EVENT_CODE_RESIZED, e, e.onResized)

	if err := e.platform.Startup(app.Name, app.StartPosX, app.StartPosY, app.StartWidth, app.StartHeight, app.CaptureCursor); err != nil {
		return err
	}

	// initialize subsystems
	assetsDir, err := filepath.Abs(app.AssetsDir)
	if err != nil {
		return err
	}
	if err := e.assetManager.Initialize(assetsDir, app.HotReload); err != nil {
		return err
	}

	if err := e.systemManager.Initialize(); err != nil {
		return err
	}

	if err := e.gameInstance.FnInitialize(); err != nil {
		return err
	}

	if err := e.gameInstance.FnOnResize(e.width, e.height); err != nil {
		return err
	}
	e.currentStage = EngineStageInitialized
	return nil
}

// Run drives the frame loop until the window closes, the application quit
// event fires, a game callback fails or ctx is cancelled.
func (e *Engine) Run(ctx context.Context) error {
	if e.currentStage != EngineStageInitialized {
		return fmt.Errorf("engine cannot run in stage %s: %w", e.currentStage, core.ErrInvalidInput)
	}
	e.currentStage = EngineStageRunning

	e.clock.Start()
	e.clock.Update()

	e.lastTime = e.clock.Elapsed()

	var targetFrameSeconds float64 = 0
	if limit := e.gameInstance.ApplicationConfig.Application.FrameLimit; limit > 0 {
		targetFrameSeconds = 1.0 / float64(limit)
	}

	for e.isRunning {
		if ctx.Err() != nil {
			core.LogInfo("Context cancelled, shutting down.")
			e.isRunning = false
			break
		}

		if !e.platform.PumpMessages() {
			e.isRunning = false
		}

		// Window callbacks queued events while pumping; deliver them in order.
		e.events.Dispatch()
		e.dispatchAssetChanges()

		if !e.isRunning || e.isSuspended {
			continue
		}

		// Update clock and get delta time.
		e.clock.Update()

		var currentTime float64 = e.clock.Elapsed()
		var delta float64 = (currentTime - e.lastTime)
		var frameStartTime float64 = e.platform.GetAbsoluteTime()

		if err := e.gameInstance.FnUpdate(delta); err != nil {
			core.LogError("Game update failed, shutting down: %s", err)
			e.isRunning = false
			return err
		}

		// Call the game's render routine.
		packet, err := e.gameInstance.FnRender(delta)
		if err != nil {
			core.LogError("Game render failed, shutting down: %s", err)
			e.isRunning = false
			return err
		}
		if packet != nil {
			if err := e.systemManager.DrawFrame(packet); err != nil {
				core.LogError("Draw frame failed, shutting down: %s", err)
				e.isRunning = false
				return err
			}
		}

		// Figure out how long the frame took and, if below
		var frameEndTime float64 = e.platform.GetAbsoluteTime()
		var frameElapsedTime float64 = frameEndTime - frameStartTime
		if e.metrics.Update(frameElapsedTime) {
			fps, frameTime := e.metrics.Frame()
			core.LogDebug("FPS: %.0f, frame time: %.3fms", fps, frameTime)
		}

		var remainingSeconds float64 = targetFrameSeconds - frameElapsedTime
		if targetFrameSeconds > 0 && remainingSeconds > 0 {
			// If there is time left, give it back to the OS.
			remainingMS := (remainingSeconds * 1000)
			if remainingMS > 1 {
				e.platform.Sleep(remainingMS - 1)
			}
		}

		// NOTE: Input update/state copying should always be handled
		// after any input should be recorded; I.E. before this line.
		// As a safety, input is the last thing to be updated before
		// this frame ends.
		e.input.Update()

		// Update last time
		e.lastTime = currentTime
	}

	return nil
}

// dispatchAssetChanges fires one event per changed asset file.
func (e *Engine) dispatchAssetChanges() {
	for _, path := range e.assetManager.PollChanges() {
		core.LogDebug("asset changed: %s", path)
		e.events.Fire(core.EventContext{
			Type: core.EVENT_CODE_ASSET_CHANGED,
			Data: &core.AssetEvent{Path: path},
		})
	}
}

func (e *Engine) Shutdown() error {
	e.currentStage = EngineStageShuttingDown
	var firstErr error
	keep := func(err error) {
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if e.gameInstance.FnShutdown != nil {
		keep(e.gameInstance.FnShutdown())
	}
	keep(e.events.Shutdown())
	keep(e.systemManager.Shutdown())
	keep(e.assetManager.Shutdown())
	keep(e.platform.Shutdown())
	e.currentStage = EngineStageUninitialized
	return firstErr
}

func (e *Engine) Stage() Stage {
	return e.currentStage
}

// GetFramebufferSize returns the width and height (in this order)
// of the application Framebuffer
func (e *Engine) GetFramebufferSize() (uint32, uint32) {
	return e.width, e.height
}

func (e *Engine) IsSuspended() bool {
	return e.isSuspended
}

func (e *Engine) onEvent(context core.EventContext) bool {
	switch context.Type {
	case core.EVENT_CODE_APPLICATION_QUIT:
		{
			core.LogInfo("EVENT_CODE_APPLICATION_QUIT received, shutting down.")
			e.isRunning = false
			return true
		}
	}
	return false
}

func (e *Engine) onKey(context core.EventContext) bool {
	ke, ok := context.Data.(*core.KeyEvent)
	if !ok {
		core.LogError("wrong event associated with the event type `%d`", context.Type)
		return false
	}

	if ke.KeyCode == core.KEY_ESCAPE {
		// NOTE: Technically firing an event to itself, but there may be other listeners.
		e.events.Fire(core.EventContext{
			Type: core.EVENT_CODE_APPLICATION_QUIT,
		})
		// Block anything else from processing this.
		return true
	}
	return false
}

func (e *Engine) onResized(context core.EventContext) bool {
	re, ok := context.Data.(*core.ResizeEvent)
	if !ok {
		core.LogError("wrong event associated with the event type `%d`", context.Type)
		return false
	}

	width := re.Width
	height := re.Height

	// Check if different. If so, trigger a resize event.
	if width == e.width && height == e.height {
		return false
	}
	e.width = width
	e.height = height

	core.LogDebug("Window resize: %d, %d", width, height)

	// Handle minimization
	if width == 0 || height == 0 {
		core.LogInfo("Window minimized, suspending application.")
		e.isSuspended = true
		return true
	}
	if e.isSuspended {
		core.LogInfo("Window restored, resuming application.")
		e.isSuspended = false
	}
	if err := e.gameInstance.FnOnResize(width, height); err != nil {
		core.LogError(err.Error())
	}
	if err := e.systemManager.OnResize(width, height); err != nil {
		core.LogError(err.Error())
	}
	// other listeners may care about the new size too
	return false
}
