package engine

import (
	"github.com/spaghettifunk/corridor/engine/assets"
	"github.com/spaghettifunk/corridor/engine/core"
	"github.com/spaghettifunk/corridor/engine/renderer/metadata"
	"github.com/spaghettifunk/corridor/engine/systems"
)

// Game is the application side of the engine. The engine fills in the
// services before FnInitialize is called.
type Game struct {
	ApplicationConfig *ApplicationConfig
	SystemManager     *systems.SystemManager
	AssetManager      *assets.AssetManager
	Events            *core.EventSystem
	Input             *core.Input
	State             interface{}
	FnInitialize      Initialize
	FnUpdate          Update
	FnRender          Render
	FnOnResize        OnResize
	FnShutdown        Shutdown
}

type Initialize func() error

// Update runs once per frame; deltaTime is in seconds.
type Update func(deltaTime float64) error

// Render returns the packet to draw this frame, or nil to skip drawing.
type Render func(deltaTime float64) (*metadata.RenderPacket, error)
type OnResize func(width uint32, height uint32) error
type Shutdown func() error
