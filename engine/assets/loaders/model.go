package loaders

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spaghettifunk/corridor/engine/core"
	"github.com/spaghettifunk/corridor/engine/renderer/metadata"
)

// ModelLoader reads Wavefront OBJ files. Only vertex positions and
// triangle faces are read.
type ModelLoader struct{}

func (ml *ModelLoader) Load(path string, params interface{}) (*metadata.Resource, error) {
	f, size, err := openAsset(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	mesh, err := ParseOBJ(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &metadata.Resource{
		Type:     metadata.ResourceTypeMesh,
		Name:     resourceName(path),
		FullPath: path,
		DataSize: uint64(size),
		Data:     mesh,
	}, nil
}

func (ml *ModelLoader) Unload(res *metadata.Resource) error {
	res.Data = nil
	return nil
}

type faceRef struct {
	line    int
	indices [3]int
}

// ParseOBJ reads `v x y z` and `f a b c` lines. A face token such as
// `3/1/2` uses its first index. Indices in the file are 1-based.
func ParseOBJ(r io.Reader) (*metadata.MeshResourceData, error) {
	mesh := &metadata.MeshResourceData{}
	var faces []faceRef

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for line := 1; scanner.Scan(); line++ {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		switch fields[0] {
		case "v":
			v, err := parseVertex(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			mesh.Vertices = append(mesh.Vertices, v)
		case "f":
			idx, err := parseFace(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			faces = append(faces, faceRef{line: line, indices: idx})
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	// faces may reference vertices declared further down the file
	mesh.Faces = make([][3]uint32, 0, len(faces))
	for _, f := range faces {
		var face [3]uint32
		for i, idx := range f.indices {
			if idx < 1 || idx > len(mesh.Vertices) {
				return nil, fmt.Errorf("line %d: vertex index %d out of range [1, %d]: %w", f.line, idx, len(mesh.Vertices), core.ErrInvalidInput)
			}
			face[i] = uint32(idx - 1)
		}
		mesh.Faces = append(mesh.Faces, face)
	}
	return mesh, nil
}

func parseVertex(tokens []string) ([3]float32, error) {
	var v [3]float32
	if len(tokens) < 3 {
		return v, fmt.Errorf("vertex needs 3 coordinates, got %d: %w", len(tokens), core.ErrInvalidInput)
	}
	for i := 0; i < 3; i++ {
		f, err := strconv.ParseFloat(tokens[i], 32)
		if err != nil {
			return v, fmt.Errorf("invalid coordinate %q: %w", tokens[i], core.ErrInvalidInput)
		}
		v[i] = float32(f)
	}
	return v, nil
}

func parseFace(tokens []string) ([3]int, error) {
	var idx [3]int
	if len(tokens) < 3 {
		return idx, fmt.Errorf("face needs 3 vertices, got %d: %w", len(tokens), core.ErrInvalidInput)
	}
	for i := 0; i < 3; i++ {
		part, _, _ := strings.Cut(tokens[i], "/")
		n, err := strconv.Atoi(part)
		if err != nil {
			return idx, fmt.Errorf("invalid face index %q: %w", tokens[i], core.ErrInvalidInput)
		}
		idx[i] = n
	}
	return idx, nil
}
