package metadata

/** @brief A floor plane declared by a scene manifest. */
type SceneFloor struct {
	Width  float32 `yaml:"width"`
	Depth  float32 `yaml:"depth"`
	Height float32 `yaml:"height"`
}

/** @brief An OBJ mesh placed in the scene. */
type SceneMesh struct {
	/** @brief Path of the .obj file, relative to the assets directory unless absolute. */
	Path     string     `yaml:"path"`
	Position [3]float32 `yaml:"position"`
	/** @brief Euler angles in degrees around x, y and z. */
	Rotation [3]float32 `yaml:"rotation"`
	Solid    bool       `yaml:"solid"`
	Texture  string     `yaml:"texture"`
}

type SceneLight struct {
	Direction [3]float32 `yaml:"direction"`
	Color     [3]float32 `yaml:"color"`
	Ambient   float32    `yaml:"ambient"`
}

/**
 * @brief The content of a scene manifest. Paths are resolved against the
 * assets directory by the scene loader.
 */
type SceneResourceData struct {
	Name     string       `yaml:"name"`
	Map      string       `yaml:"map"`
	CellSize float32      `yaml:"cell_size"`
	Floors   []SceneFloor `yaml:"floors"`
	Meshes   []SceneMesh  `yaml:"meshes"`
	Textures []string     `yaml:"textures"`
	/** @brief Texture of the map cubes. */
	WallTexture string `yaml:"wall_texture"`
	/** @brief Texture of every floor. */
	FloorTexture string      `yaml:"floor_texture"`
	Light        *SceneLight `yaml:"light"`
}
