package core

import (
	"fmt"
	"strings"
)

type Button uint16

const (
	BUTTON_LEFT Button = iota
	BUTTON_RIGHT
	BUTTON_MIDDLE
	BUTTON_MAX_BUTTONS
)

// KeyAction is the transition reported for a key.
type KeyAction uint8

const (
	KEY_ACTION_RELEASE KeyAction = iota
	KEY_ACTION_PRESS
	KEY_ACTION_REPEAT
)

type KeyCode uint16

const (
	KEY_BACKSPACE KeyCode = 0x08
	KEY_TAB       KeyCode = 0x09
	KEY_ENTER     KeyCode = 0x0D
	KEY_SHIFT     KeyCode = 0x10
	KEY_CONTROL   KeyCode = 0x11
	KEY_PAUSE     KeyCode = 0x13
	KEY_ESCAPE    KeyCode = 0x1B
	KEY_SPACE     KeyCode = 0x20
	KEY_END       KeyCode = 0x23
	KEY_HOME      KeyCode = 0x24
	KEY_LEFT      KeyCode = 0x25
	KEY_UP        KeyCode = 0x26
	KEY_RIGHT     KeyCode = 0x27
	KEY_DOWN      KeyCode = 0x28
	KEY_INSERT    KeyCode = 0x2D
	KEY_DELETE    KeyCode = 0x2E
	KEY_0         KeyCode = 0x30
	KEY_1         KeyCode = 0x31
	KEY_2         KeyCode = 0x32
	KEY_3         KeyCode = 0x33
	KEY_4         KeyCode = 0x34
	KEY_5         KeyCode = 0x35
	KEY_6         KeyCode = 0x36
	KEY_7         KeyCode = 0x37
	KEY_8         KeyCode = 0x38
	KEY_9         KeyCode = 0x39
	KEY_A         KeyCode = 0x41
	KEY_B         KeyCode = 0x42
	KEY_C         KeyCode = 0x43
	KEY_D         KeyCode = 0x44
	KEY_E         KeyCode = 0x45
	KEY_F         KeyCode = 0x46
	KEY_G         KeyCode = 0x47
	KEY_H         KeyCode = 0x48
	KEY_I         KeyCode = 0x49
	KEY_J         KeyCode = 0x4A
	KEY_K         KeyCode = 0x4B
	KEY_L         KeyCode = 0x4C
	KEY_M         KeyCode = 0x4D
	KEY_N         KeyCode = 0x4E
	KEY_O         KeyCode = 0x4F
	KEY_P         KeyCode = 0x50
	KEY_Q         KeyCode = 0x51
	KEY_R         KeyCode = 0x52
	KEY_S         KeyCode = 0x53
	KEY_T         KeyCode = 0x54
	KEY_U         KeyCode = 0x55
	KEY_V         KeyCode = 0x56
	KEY_W         KeyCode = 0x57
	KEY_X         KeyCode = 0x58
	KEY_Y         KeyCode = 0x59
	KEY_Z         KeyCode = 0x5A
	KEY_F1        KeyCode = 0x70
	KEY_F2        KeyCode = 0x71
	KEY_F3        KeyCode = 0x72
	KEY_F4        KeyCode = 0x73
	KEY_F5        KeyCode = 0x74
	KEY_F6        KeyCode = 0x75
	KEY_F7        KeyCode = 0x76
	KEY_F8        KeyCode = 0x77
	KEY_F9        KeyCode = 0x78
	KEY_F10       KeyCode = 0x79
	KEY_F11       KeyCode = 0x7A
	KEY_F12       KeyCode = 0x7B
	KEY_LSHIFT    KeyCode = 0xA0
	KEY_RSHIFT    KeyCode = 0xA1
	KEY_LCONTROL  KeyCode = 0xA2
	KEY_RCONTROL  KeyCode = 0xA3
	KEYS_MAX_KEYS KeyCode = 0xFF
)

var namedKeys = map[string]KeyCode{
	"BACKSPACE": KEY_BACKSPACE,
	"TAB":       KEY_TAB,
	"ENTER":     KEY_ENTER,
	"ESCAPE":    KEY_ESCAPE,
	"SPACE":     KEY_SPACE,
	"LEFT":      KEY_LEFT,
	"UP":        KEY_UP,
	"RIGHT":     KEY_RIGHT,
	"DOWN":      KEY_DOWN,
	"LSHIFT":    KEY_LSHIFT,
	"RSHIFT":    KEY_RSHIFT,
	"LCONTROL":  KEY_LCONTROL,
	"RCONTROL":  KEY_RCONTROL,
}

// ParseKeyCode resolves a key name from configuration ("W", "up", "7").
func ParseKeyCode(name string) (KeyCode, error) {
	n := strings.ToUpper(strings.TrimSpace(name))
	if len(n) == 1 {
		c := n[0]
		if (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') {
			return KeyCode(c), nil
		}
	}
	if k, ok := namedKeys[n]; ok {
		return k, nil
	}
	return 0, fmt.Errorf("%w: unknown key %q", ErrInvalidConfig, name)
}

// Mouse state structure
type MouseState struct {
	X       float32
	Y       float32
	Buttons [BUTTON_MAX_BUTTONS]bool
}

// Keyboard state structure
type KeyboardState struct {
	Keys [256]bool
}

// Input holds current and previous states for keyboard and mouse and turns
// state changes into events.
type Input struct {
	events           *EventSystem
	keyboardCurrent  KeyboardState
	keyboardPrevious KeyboardState
	mouseCurrent     MouseState
	mousePrevious    MouseState
}

func NewInput(events *EventSystem) *Input {
	return &Input{events: events}
}

// Update copies current states to previous states. Call once at the end of a frame.
func (in *Input) Update() {
	in.keyboardPrevious = in.keyboardCurrent
	in.mousePrevious = in.mouseCurrent
}

// keyboard input
func (in *Input) IsKeyDown(key KeyCode) bool {
	return in.keyboardCurrent.Keys[uint8(key)]
}

func (in *Input) IsKeyUp(key KeyCode) bool {
	return !in.keyboardCurrent.Keys[uint8(key)]
}

func (in *Input) WasKeyDown(key KeyCode) bool {
	return in.keyboardPrevious.Keys[uint8(key)]
}

// ProcessKey records a key transition and posts the matching event.
// Repeats are ignored.
func (in *Input) ProcessKey(key KeyCode, action KeyAction) error {
	if action == KEY_ACTION_REPEAT {
		return nil
	}
	pressed := action == KEY_ACTION_PRESS
	// Only handle this if the state actually changed.
	if in.keyboardCurrent.Keys[uint8(key)] == pressed {
		return nil
	}
	in.keyboardCurrent.Keys[uint8(key)] = pressed

	code := EVENT_CODE_KEY_RELEASED
	if pressed {
		code = EVENT_CODE_KEY_PRESSED
	}
	return in.events.Post(EventContext{
		Type: code,
		Data: &KeyEvent{KeyCode: key, Action: action},
	})
}

// mouse input
func (in *Input) MousePosition() (float32, float32) {
	return in.mouseCurrent.X, in.mouseCurrent.Y
}

func (in *Input) ProcessButton(button Button, pressed bool) error {
	if button >= BUTTON_MAX_BUTTONS || in.mouseCurrent.Buttons[button] == pressed {
		return nil
	}
	in.mouseCurrent.Buttons[button] = pressed

	code := EVENT_CODE_BUTTON_RELEASED
	if pressed {
		code = EVENT_CODE_BUTTON_PRESSED
	}
	return in.events.Post(EventContext{
		Type: code,
		Data: &MouseEvent{Button: button},
	})
}

// ProcessMouseMove posts every distinct pointer position; consumers rely on
// receiving each motion in order.
func (in *Input) ProcessMouseMove(x, y float32) error {
	if in.mouseCurrent.X == x && in.mouseCurrent.Y == y {
		return nil
	}
	in.mouseCurrent.X = x
	in.mouseCurrent.Y = y

	return in.events.Post(EventContext{
		Type: EVENT_CODE_MOUSE_MOVED,
		Data: &MouseEvent{PosX: x, PosY: y},
	})
}

func (in *Input) ProcessMouseWheel(zDelta float32) error {
	return in.events.Post(EventContext{
		Type: EVENT_CODE_MOUSE_WHEEL,
		Data: &MouseEvent{Scroll: zDelta},
	})
}

func (in *Input) ProcessResize(width, height uint32) error {
	return in.events.Post(EventContext{
		Type: EVENT_CODE_RESIZED,
		Data: &ResizeEvent{Width: width, Height: height},
	})
}
