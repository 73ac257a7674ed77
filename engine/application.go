package engine

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/spaghettifunk/corridor/engine/controls"
	"github.com/spaghettifunk/corridor/engine/core"
	"github.com/spaghettifunk/corridor/engine/math"
	"github.com/spaghettifunk/corridor/engine/renderer/components"
	"github.com/spaghettifunk/corridor/engine/scene"
	"github.com/spaghettifunk/corridor/engine/systems"
)

/** @brief The [application] section: window, logging and asset settings. */
type ApplicationSettings struct {
	// The application name used in windowing, if applicable.
	Name string `toml:"name"`
	// Window starting position x axis, if applicable.
	StartPosX uint32 `toml:"start_pos_x"`
	// Window starting position y axis, if applicable.
	StartPosY uint32 `toml:"start_pos_y"`
	// Window starting width, if applicable.
	StartWidth uint32 `toml:"start_width"`
	// Window starting height, if applicable.
	StartHeight uint32 `toml:"start_height"`
	LogLevel    string `toml:"log_level"`
	/** @brief Root of every asset path, relative to the working directory. */
	AssetsDir string `toml:"assets_dir"`
	/** @brief Scene manifest, relative to AssetsDir. */
	Scene string `toml:"scene"`
	/** @brief Watch AssetsDir and rebuild the world when files change. */
	HotReload bool `toml:"hot_reload"`
	/** @brief Frames per second cap; zero runs unthrottled. */
	FrameLimit uint32 `toml:"frame_limit"`
	/** @brief Hide and lock the cursor for mouse-look. */
	CaptureCursor bool `toml:"capture_cursor"`
	// Job pool size; zero means one worker per CPU.
	Workers int `toml:"workers"`
}

/**
 * @brief The [camera] section: where the first-person camera starts.
 * Its heading comes from controls.yaw and controls.pitch.
 */
type CameraConfig struct {
	Position [3]float32 `toml:"position"`
}

// Camera builds the starting camera. The up vector is always world up.
func (c CameraConfig) Camera() components.Camera {
	camera := components.NewCamera()
	camera.Position = math.NewVec3(c.Position[0], c.Position[1], c.Position[2])
	return *camera
}

/** @brief The [light] section, used when the scene manifest has no light. */
type LightConfig struct {
	Direction [3]float32 `toml:"direction"`
	Color     [3]float32 `toml:"color"`
	Ambient   float32    `toml:"ambient"`
}

func (l LightConfig) DirectionalLight() (scene.DirectionalLight, error) {
	return scene.NewDirectionalLight(
		math.NewVec3(l.Direction[0], l.Direction[1], l.Direction[2]),
		math.NewVec3(l.Color[0], l.Color[1], l.Color[2]),
		l.Ambient,
	)
}

type ApplicationConfig struct {
	Application ApplicationSettings          `toml:"application"`
	Controls    controls.ControllerConfig    `toml:"controls"`
	Camera      CameraConfig                 `toml:"camera"`
	Collision   scene.BoundsConfig           `toml:"collision"`
	Renderer    systems.RendererSystemConfig `toml:"renderer"`
	Textures    systems.TextureSystemConfig  `toml:"textures"`
	Light       LightConfig                  `toml:"light"`
}

func DefaultApplicationConfig() *ApplicationConfig {
	pos := components.DefaultCameraPosition
	light := scene.DefaultDirectionalLight()
	return &ApplicationConfig{
		Application: ApplicationSettings{
			Name:          "Corridor",
			StartPosX:     100,
			StartPosY:     100,
			StartWidth:    1600,
			StartHeight:   900,
			LogLevel:      "info",
			AssetsDir:     "assets",
			Scene:         "scenes/default.yaml",
			HotReload:     true,
			FrameLimit:    60,
			CaptureCursor: true,
		},
		Controls: controls.DefaultControllerConfig(),
		Camera: CameraConfig{
			Position: [3]float32{pos.X, pos.Y, pos.Z},
		},
		Renderer: systems.DefaultRendererSystemConfig(),
		Textures: systems.DefaultTextureSystemConfig(),
		Light: LightConfig{
			Direction: [3]float32{light.Direction.X, light.Direction.Y, light.Direction.Z},
			Color:     [3]float32{light.Color.X, light.Color.Y, light.Color.Z},
			Ambient:   light.Ambient,
		},
	}
}

// LoadApplicationConfig reads a TOML file over the defaults. Keys missing
// from the file keep their default value; unknown keys are an error.
func LoadApplicationConfig(path string) (*ApplicationConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("config %s: %w", path, core.ErrAssetNotFound)
		}
		return nil, err
	}
	return ParseApplicationConfig(data)
}

func ParseApplicationConfig(data []byte) (*ApplicationConfig, error) {
	config := DefaultApplicationConfig()
	decoder := toml.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(config); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return nil, fmt.Errorf("%w: %s", core.ErrInvalidConfig, strict.String())
		}
		return nil, fmt.Errorf("%w: %v", core.ErrInvalidConfig, err)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func (c *ApplicationConfig) Validate() error {
	app := c.Application
	if app.Name == "" {
		return fmt.Errorf("%w: application.name is required", core.ErrInvalidConfig)
	}
	if app.StartWidth == 0 || app.StartHeight == 0 {
		return fmt.Errorf("%w: application window size must be positive, got %dx%d", core.ErrInvalidConfig, app.StartWidth, app.StartHeight)
	}
	if _, err := core.ParseLogLevel(app.LogLevel); err != nil {
		return err
	}
	if app.AssetsDir == "" || app.Scene == "" {
		return fmt.Errorf("%w: application.assets_dir and application.scene are required", core.ErrInvalidConfig)
	}
	if app.Workers < 0 {
		return fmt.Errorf("%w: application.workers must not be negative", core.ErrInvalidConfig)
	}
	if err := c.Controls.Validate(); err != nil {
		return err
	}
	if err := c.Renderer.Validate(); err != nil {
		return err
	}
	if _, err := c.Light.DirectionalLight(); err != nil {
		return fmt.Errorf("%w: light: %v", core.ErrInvalidConfig, err)
	}
	return nil
}

func (c *ApplicationConfig) systemManagerConfig() systems.SystemManagerConfig {
	return systems.SystemManagerConfig{
		ApplicationName: c.Application.Name,
		Width:           c.Application.StartWidth,
		Height:          c.Application.StartHeight,
		Workers:         c.Application.Workers,
		Renderer:        c.Renderer,
		Textures:        c.Textures,
	}
}
