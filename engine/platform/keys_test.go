package platform

import (
	"testing"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/stretchr/testify/assert"

	"github.com/spaghettifunk/corridor/engine/core"
)

func TestTranslateKey(t *testing.T) {
	tests := []struct {
		key  glfw.Key
		want core.KeyCode
		ok   bool
	}{
		{glfw.KeyW, core.KEY_W, true},
		{glfw.KeyA, core.KEY_A, true},
		{glfw.KeyZ, core.KEY_Z, true},
		{glfw.Key0, core.KEY_0, true},
		{glfw.Key9, core.KEY_9, true},
		{glfw.KeyF1, core.KEY_F1, true},
		{glfw.KeyF12, core.KEY_F12, true},
		{glfw.KeyEscape, core.KEY_ESCAPE, true},
		{glfw.KeyUp, core.KEY_UP, true},
		{glfw.KeyLeftShift, core.KEY_LSHIFT, true},
		{glfw.KeyF13, 0, false},
		{glfw.KeyKP5, 0, false},
	}
	for _, tt := range tests {
		got, ok := translateKey(tt.key)
		assert.Equal(t, tt.ok, ok, "key %d", tt.key)
		assert.Equal(t, tt.want, got, "key %d", tt.key)
	}
}

func TestTranslateAction(t *testing.T) {
	assert.Equal(t, core.KEY_ACTION_PRESS, translateAction(glfw.Press))
	assert.Equal(t, core.KEY_ACTION_RELEASE, translateAction(glfw.Release))
	assert.Equal(t, core.KEY_ACTION_REPEAT, translateAction(glfw.Repeat))
}

func TestTranslateButton(t *testing.T) {
	b, ok := translateButton(glfw.MouseButtonRight)
	assert.True(t, ok)
	assert.Equal(t, core.BUTTON_RIGHT, b)

	_, ok = translateButton(glfw.MouseButton4)
	assert.False(t, ok)
}
