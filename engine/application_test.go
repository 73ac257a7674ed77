package engine

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/corridor/engine/core"
	"github.com/spaghettifunk/corridor/engine/math"
)

func TestDefaultApplicationConfig(t *testing.T) {
	config := DefaultApplicationConfig()
	require.NoError(t, config.Validate())

	assert.Equal(t, "Corridor", config.Application.Name)
	assert.Equal(t, uint32(1600), config.Application.StartWidth)
	assert.Equal(t, uint32(900), config.Application.StartHeight)
	assert.Equal(t, "scenes/default.yaml", config.Application.Scene)
	assert.Equal(t, float32(90), config.Renderer.FOV)
	assert.False(t, config.Collision.TightBounds)
	assert.False(t, config.Collision.ExactRotatedBounds)

	camera := config.Camera.Camera()
	assert.Equal(t, math.NewVec3(5, 1.5, 5), camera.Position)
	assert.Equal(t, float32(90), config.Controls.Yaw)
	assert.Equal(t, math.NewVec3(0, 1, 0), camera.Up)

	light, err := config.Light.DirectionalLight()
	require.NoError(t, err)
	assert.InDelta(t, 1.0, light.Direction.Length(), 1e-6)
	assert.InDelta(t, 0.2, light.Ambient, 1e-6)
}

func TestParseApplicationConfig(t *testing.T) {
	data := []byte(`
[application]
name = "Test"
start_width = 800
start_height = 600
log_level = "debug"
hot_reload = false

[controls]
sensitivity = 0.25
yaw = 0.0

[controls.keys]
forward = "UP"
backward = "DOWN"
left = "LEFT"
right = "RIGHT"

[camera]
position = [1.0, 2.0, 3.0]

[collision]
tight_bounds = true

[renderer]
fov = 60.0
shadows = false

[light]
direction = [0.0, -2.0, 0.0]
color = [1.0, 0.5, 0.5]
ambient = 0.5
`)
	config, err := ParseApplicationConfig(data)
	require.NoError(t, err)

	assert.Equal(t, "Test", config.Application.Name)
	assert.Equal(t, uint32(800), config.Application.StartWidth)
	assert.False(t, config.Application.HotReload)
	// untouched keys keep their defaults
	assert.Equal(t, "assets", config.Application.AssetsDir)
	assert.Equal(t, uint32(60), config.Application.FrameLimit)
	assert.Equal(t, float32(0.03), config.Controls.Speed)

	assert.Equal(t, float32(0.25), config.Controls.Sensitivity)
	assert.Equal(t, "UP", config.Controls.Keys.Forward)
	assert.True(t, config.Collision.TightBounds)
	assert.Equal(t, float32(60), config.Renderer.FOV)
	assert.False(t, config.Renderer.Shadows)

	camera := config.Camera.Camera()
	assert.Equal(t, math.NewVec3(1, 2, 3), camera.Position)
	assert.Equal(t, float32(0), config.Controls.Yaw)

	light, err := config.Light.DirectionalLight()
	require.NoError(t, err)
	assert.Equal(t, math.NewVec3(0, -1, 0), light.Direction)
	assert.Equal(t, float32(0.5), light.Ambient)
}

func TestParseApplicationConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"syntax", "[application\nname = 1"},
		{"unknown key", "[application]\ncolour = \"red\""},
		{"unknown section", "[audio]\nvolume = 1"},
		{"empty name", "[application]\nname = \"\""},
		{"zero width", "[application]\nstart_width = 0"},
		{"log level", "[application]\nlog_level = \"loud\""},
		{"negative workers", "[application]\nworkers = -1"},
		{"sensitivity", "[controls]\nsensitivity = 0.0"},
		{"unknown key binding", "[controls.keys]\nforward = \"NOPE\""},
		{"duplicate key binding", "[controls.keys]\nforward = \"A\""},
		{"camera front is not a setting", "[camera]\nfront = [0.0, 0.0, 1.0]"},
		{"fov", "[renderer]\nfov = 0.0"},
		{"near far", "[renderer]\nnear = 10.0\nfar = 5.0"},
		{"backend", "[renderer]\nbackend = \"vulkan\""},
		{"zero light", "[light]\ndirection = [0.0, 0.0, 0.0]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseApplicationConfig([]byte(tt.data))
			assert.ErrorIs(t, err, core.ErrInvalidConfig)
		})
	}
}

func TestLoadApplicationConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "viewer.toml")
	writeFile(t, path, "[application]\nname = \"From file\"\n")

	config, err := LoadApplicationConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "From file", config.Application.Name)

	_, err = LoadApplicationConfig(filepath.Join(dir, "missing.toml"))
	assert.ErrorIs(t, err, core.ErrAssetNotFound)
}
