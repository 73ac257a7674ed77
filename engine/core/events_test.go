package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventSystemDispatchOrder(t *testing.T) {
	es := NewEventSystem(8)

	var got []float32
	require.True(t, es.Register(EVENT_CODE_MOUSE_MOVED, "listener", func(ctx EventContext) bool {
		got = append(got, ctx.Data.(*MouseEvent).PosX)
		return true
	}))

	for _, x := range []float32{10, 20, 30} {
		require.NoError(t, es.Post(EventContext{Type: EVENT_CODE_MOUSE_MOVED, Data: &MouseEvent{PosX: x}}))
	}
	assert.Empty(t, got, "posted events wait for Dispatch")
	assert.Equal(t, 3, es.Dispatch())
	assert.Equal(t, []float32{10, 20, 30}, got)
	assert.Equal(t, 0, es.Pending())
}

func TestEventSystemHandledStopsPropagation(t *testing.T) {
	es := NewEventSystem(0)
	calls := 0
	es.Register(EVENT_CODE_APPLICATION_QUIT, "first", func(EventContext) bool { calls++; return true })
	es.Register(EVENT_CODE_APPLICATION_QUIT, "second", func(EventContext) bool { calls++; return true })

	assert.True(t, es.Fire(EventContext{Type: EVENT_CODE_APPLICATION_QUIT}))
	assert.Equal(t, 1, calls)

	assert.True(t, es.Unregister(EVENT_CODE_APPLICATION_QUIT, "first"))
	assert.False(t, es.Unregister(EVENT_CODE_APPLICATION_QUIT, "first"))
	es.Fire(EventContext{Type: EVENT_CODE_APPLICATION_QUIT})
	assert.Equal(t, 2, calls)
}

func TestEventSystemRejectsDuplicateListener(t *testing.T) {
	SetLogLevel(ErrorLevel)
	defer SetLogLevel(DebugLevel)

	es := NewEventSystem(4)
	fn := func(EventContext) bool { return false }
	assert.True(t, es.Register(EVENT_CODE_RESIZED, "dup", fn))
	assert.False(t, es.Register(EVENT_CODE_RESIZED, "dup", fn))
	assert.False(t, es.Register(EVENT_CODE_RESIZED, "nil", nil))
}

func TestEventSystemPostFull(t *testing.T) {
	es := NewEventSystem(1)
	require.NoError(t, es.Post(EventContext{Type: EVENT_CODE_RESIZED}))
	assert.Error(t, es.Post(EventContext{Type: EVENT_CODE_RESIZED}))
}

func TestInputProcessKey(t *testing.T) {
	es := NewEventSystem(8)
	in := NewInput(es)

	var pressed, released int
	es.Register(EVENT_CODE_KEY_PRESSED, "p", func(ctx EventContext) bool {
		assert.Equal(t, KEY_W, ctx.Data.(*KeyEvent).KeyCode)
		pressed++
		return true
	})
	es.Register(EVENT_CODE_KEY_RELEASED, "r", func(EventContext) bool { released++; return true })

	require.NoError(t, in.ProcessKey(KEY_W, KEY_ACTION_PRESS))
	// no state change, no event
	require.NoError(t, in.ProcessKey(KEY_W, KEY_ACTION_PRESS))
	require.NoError(t, in.ProcessKey(KEY_W, KEY_ACTION_REPEAT))
	assert.True(t, in.IsKeyDown(KEY_W))
	assert.False(t, in.WasKeyDown(KEY_W))

	in.Update()
	assert.True(t, in.WasKeyDown(KEY_W))

	require.NoError(t, in.ProcessKey(KEY_W, KEY_ACTION_RELEASE))
	assert.True(t, in.IsKeyUp(KEY_W))

	es.Dispatch()
	assert.Equal(t, 1, pressed)
	assert.Equal(t, 1, released)
}

func TestInputMouseMove(t *testing.T) {
	es := NewEventSystem(8)
	in := NewInput(es)

	require.NoError(t, in.ProcessMouseMove(100, 200))
	require.NoError(t, in.ProcessMouseMove(100, 200))
	require.NoError(t, in.ProcessMouseMove(101, 199))
	x, y := in.MousePosition()
	assert.Equal(t, float32(101), x)
	assert.Equal(t, float32(199), y)
	assert.Equal(t, 2, es.Pending())
}

func TestParseKeyCode(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    KeyCode
		wantErr bool
	}{
		{"upper letter", "W", KEY_W, false},
		{"lower letter", "a", KEY_A, false},
		{"digit", "7", KEY_7, false},
		{"named", "escape", KEY_ESCAPE, false},
		{"padded", " up ", KEY_UP, false},
		{"unknown", "hyper", 0, true},
		{"empty", "", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseKeyCode(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidConfig)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
