package loaders

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spaghettifunk/corridor/engine/core"
	"github.com/spaghettifunk/corridor/engine/renderer/metadata"
)

// ShaderLoader reads the `<name>.vert` and `<name>.frag` pair sitting next
// to each other. The path may name either stage or the bare stem.
type ShaderLoader struct{}

func (sl *ShaderLoader) Load(path string, params interface{}) (*metadata.Resource, error) {
	stem := path
	if ext := filepath.Ext(path); ext == ".vert" || ext == ".frag" {
		stem = strings.TrimSuffix(path, ext)
	}

	shader := &metadata.ShaderResourceData{Name: filepath.Base(stem)}
	var size uint64
	for _, stage := range []metadata.ShaderStage{metadata.ShaderStageVertex, metadata.ShaderStageFragment} {
		source, err := readAsset(stem + stage.Extension())
		if err != nil {
			return nil, err
		}
		if len(strings.TrimSpace(string(source))) == 0 {
			return nil, fmt.Errorf("%s%s is empty: %w", stem, stage.Extension(), core.ErrInvalidInput)
		}
		size += uint64(len(source))
		if stage == metadata.ShaderStageVertex {
			shader.Vertex = string(source)
		} else {
			shader.Fragment = string(source)
		}
	}

	return &metadata.Resource{
		Type:     metadata.ResourceTypeShader,
		Name:     shader.Name,
		FullPath: stem,
		DataSize: size,
		Data:     shader,
	}, nil
}

func (sl *ShaderLoader) Unload(res *metadata.Resource) error {
	res.Data = nil
	return nil
}
