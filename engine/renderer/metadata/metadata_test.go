package metadata

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeFaces(t *testing.T) {
	mesh := &MeshResourceData{
		Vertices: [][3]float32{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}, {0, 0, 1}},
		Faces:    [][3]uint32{{0, 1, 2}, {3, 2, 1}},
	}
	assert.Equal(t, []float32{
		0, 0, 0, 1, 0, 0, 0, 1, 0,
		0, 0, 1, 0, 1, 0, 1, 0, 0,
	}, mesh.ComputeFaces())

	assert.Empty(t, (&MeshResourceData{}).ComputeFaces())
}

func TestNames(t *testing.T) {
	assert.Equal(t, "scene", ResourceTypeScene.String())
	assert.Equal(t, "none", ResourceType(99).String())
	assert.Equal(t, ".vert", ShaderStageVertex.Extension())
	assert.Equal(t, ".frag", ShaderStageFragment.Extension())
	assert.Equal(t, "back", FaceCullModeBack.String())
	assert.Equal(t, "FaceCullMode(7)", FaceCullMode(7).String())
}

func TestImageConsistent(t *testing.T) {
	var missing *ImageResourceData
	assert.False(t, missing.Consistent())
	assert.True(t, (&ImageResourceData{ChannelCount: 4, Width: 2, Height: 1, Pixels: make([]uint8, 8)}).Consistent())
	assert.False(t, (&ImageResourceData{ChannelCount: 4, Width: 2, Height: 2, Pixels: make([]uint8, 8)}).Consistent())
	assert.False(t, (&ImageResourceData{ChannelCount: 4}).Consistent())
}
