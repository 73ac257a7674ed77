package metadata

/** @brief Represents a shader stage. */
type ShaderStage int

const (
	ShaderStageVertex ShaderStage = iota
	ShaderStageFragment
)

func (s ShaderStage) Extension() string {
	if s == ShaderStageVertex {
		return ".vert"
	}
	return ".frag"
}

/**
 * @brief Shader sources loaded from disk. The backend compiles them; the
 * headless backend only records their sizes.
 */
type ShaderResourceData struct {
	/** @brief The name of the shader, the file stem shared by both stages. */
	Name string
	/** @brief The vertex stage source. */
	Vertex string
	/** @brief The fragment stage source. */
	Fragment string
}
