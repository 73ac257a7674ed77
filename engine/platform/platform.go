package platform

import (
	"fmt"
	"runtime"
	"time"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/spaghettifunk/corridor/engine/core"
)

func init() {
	// GLFW event handling must run on the main OS thread
	runtime.LockOSThread()
}

// Platform owns the window and turns its callbacks into input state
// changes. Callbacks run inside PumpMessages on the main thread.
type Platform struct {
	Window    *glfw.Window
	input     *core.Input
	startTime float64
}

func New(input *core.Input) (*Platform, error) {
	if input == nil {
		return nil, fmt.Errorf("platform needs an input system: %w", core.ErrInvalidInput)
	}
	return &Platform{
		Window: nil,
		input:  input,
	}, nil
}

// Startup opens the window. With captureCursor the cursor is hidden and
// locked to the window, as a first-person view needs.
func (p *Platform) Startup(applicationName string, x uint32, y uint32, width uint32, height uint32, captureCursor bool) error {
	if err := glfw.Init(); err != nil {
		core.LogError("failed to initialize glfw: %s", err)
		return err
	}

	glfw.WindowHint(glfw.Visible, glfw.False)
	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI) // the backend owns any graphics context

	window, err := glfw.CreateWindow(int(width), int(height), applicationName, nil, nil)
	if err != nil {
		core.LogError("failed to create window: %s", err)
		glfw.Terminate()
		return err
	}
	p.Window = window

	p.Window.SetKeyCallback(p.keyCallback)
	p.Window.SetMouseButtonCallback(p.mouseButtonCallback)
	p.Window.SetCursorPosCallback(p.cursorPosCallback)
	p.Window.SetScrollCallback(p.scrollCallback)
	p.Window.SetFramebufferSizeCallback(p.framebufferSizeCallback)
	if captureCursor {
		p.Window.SetInputMode(glfw.CursorMode, glfw.CursorDisabled)
		if glfw.RawMouseMotionSupported() {
			p.Window.SetInputMode(glfw.RawMouseMotion, glfw.True)
		}
	}
	p.Window.SetPos(int(x), int(y))
	p.Window.Show()

	p.startTime = glfw.GetTime()

	return nil
}

func (p *Platform) Shutdown() error {
	if p.Window != nil {
		p.Window.Destroy()
		p.Window = nil
	}
	glfw.Terminate()
	return nil
}

// PumpMessages processes pending window events. It returns false once the
// window was asked to close.
func (p *Platform) PumpMessages() bool {
	glfw.PollEvents()
	return !p.Window.ShouldClose()
}

// GetAbsoluteTime returns seconds since the window was opened.
func (p *Platform) GetAbsoluteTime() float64 {
	return glfw.GetTime() - p.startTime
}

func (p *Platform) Sleep(ms float64) {
	time.Sleep(time.Duration(ms * float64(time.Millisecond)))
}

func (p *Platform) FramebufferSize() (uint32, uint32) {
	w, h := p.Window.GetFramebufferSize()
	return uint32(w), uint32(h)
}

func (p *Platform) keyCallback(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
	code, ok := translateKey(key)
	if !ok {
		return
	}
	if err := p.input.ProcessKey(code, translateAction(action)); err != nil {
		core.LogWarn("key event 0x%02x dropped: %s", code, err)
	}
}

func (p *Platform) mouseButtonCallback(w *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
	b, ok := translateButton(button)
	if !ok {
		return
	}
	if err := p.input.ProcessButton(b, action == glfw.Press); err != nil {
		core.LogWarn("button event %d dropped: %s", b, err)
	}
}

func (p *Platform) cursorPosCallback(w *glfw.Window, xpos, ypos float64) {
	if err := p.input.ProcessMouseMove(float32(xpos), float32(ypos)); err != nil {
		core.LogWarn("pointer event dropped: %s", err)
	}
}

func (p *Platform) scrollCallback(w *glfw.Window, xoff, yoff float64) {
	if err := p.input.ProcessMouseWheel(float32(yoff)); err != nil {
		core.LogWarn("wheel event dropped: %s", err)
	}
}

func (p *Platform) framebufferSizeCallback(w *glfw.Window, width, height int) {
	if err := p.input.ProcessResize(uint32(width), uint32(height)); err != nil {
		core.LogWarn("resize event dropped: %s", err)
	}
}
