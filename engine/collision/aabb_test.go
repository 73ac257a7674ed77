package collision

import (
	"testing"

	"github.com/spaghettifunk/corridor/engine/core"
	"github.com/spaghettifunk/corridor/engine/math"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// cubeCorners holds the eight corners of a cube with half-extent h around c.
func cubeCorners(c math.Vec3, h float32) []float32 {
	var out []float32
	for _, dx := range []float32{-h, h} {
		for _, dy := range []float32{-h, h} {
			for _, dz := range []float32{-h, h} {
				out = append(out, c.X+dx, c.Y+dy, c.Z+dz)
			}
		}
	}
	return out
}

// interleave adds a dummy normal after every position.
func interleave(positions []float32) []float32 {
	var out []float32
	for i := 0; i < len(positions); i += 3 {
		out = append(out, positions[i:i+3]...)
		out = append(out, 9, 9, 9)
	}
	return out
}

func TestBuildCenteredCube(t *testing.T) {
	box, err := Build(cubeCorners(math.NewVec3Zero(), 1.5), 3)
	require.NoError(t, err)
	assert.Equal(t, math.NewVec3(1.5, 1.5, 1.5), box.Max)
	assert.Equal(t, math.NewVec3(-1.5, -1.5, -1.5), box.Min)
}

func TestBuildSkipsInterleavedAttributes(t *testing.T) {
	box, err := Build(interleave(cubeCorners(math.NewVec3Zero(), 1.5)), 6)
	require.NoError(t, err)
	// the 9s in the normal slots must not leak into the box
	assert.Equal(t, math.NewVec3(1.5, 1.5, 1.5), box.Max)
	assert.Equal(t, math.NewVec3(-1.5, -1.5, -1.5), box.Min)
}

func TestBuildIncludesOrigin(t *testing.T) {
	points := cubeCorners(math.NewVec3(11.5, 11.5, 11.5), 1.5)

	box, err := Build(points, 3)
	require.NoError(t, err)
	assert.Equal(t, math.NewVec3(13, 13, 13), box.Max)
	assert.Equal(t, math.NewVec3(0, 0, 0), box.Min)

	tight, err := BuildTight(points, 3)
	require.NoError(t, err)
	assert.Equal(t, math.NewVec3(13, 13, 13), tight.Max)
	assert.Equal(t, math.NewVec3(10, 10, 10), tight.Min)
}

func TestBuildPartialTrailingRecord(t *testing.T) {
	// second record has a position but is missing its normal
	box, err := BuildTight([]float32{1, 1, 1, 0, 0, 0, 4, 5, 6}, 6)
	require.NoError(t, err)
	assert.Equal(t, math.NewVec3(4, 5, 6), box.Max)
	assert.Equal(t, math.NewVec3(1, 1, 1), box.Min)
}

func TestBuildInvalidInput(t *testing.T) {
	tests := []struct {
		name   string
		points []float32
		stride int
	}{
		{"empty", nil, 3},
		{"short", []float32{1, 2}, 3},
		{"stride too small", []float32{1, 2, 3}, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Build(tt.points, tt.stride)
			assert.ErrorIs(t, err, core.ErrInvalidInput)
			_, err = BuildTight(tt.points, tt.stride)
			assert.ErrorIs(t, err, core.ErrInvalidInput)
		})
	}
}

func TestContains(t *testing.T) {
	box, err := Build(cubeCorners(math.NewVec3Zero(), 1.5), 3)
	require.NoError(t, err)

	tests := []struct {
		name string
		p    math.Vec3
		want bool
	}{
		{"center", math.NewVec3(0, 0, 0), true},
		{"inside", math.NewVec3(1, -1, 0.5), true},
		{"on face", math.NewVec3(1.5, 0, 0), true},
		{"on corner", math.NewVec3(-1.5, -1.5, -1.5), true},
		{"outside x", math.NewVec3(10, 0, 0), false},
		{"outside xy", math.NewVec3(10, 10, 0), false},
		{"just outside z", math.NewVec3(0, 0, 1.5001), false},
		{"below y", math.NewVec3(0, -2, 0), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, box.Contains(tt.p))
		})
	}
}

func TestTransformedByTranslation(t *testing.T) {
	box := AABB{Max: math.NewVec3(1.5, 1.5, 1.5), Min: math.NewVec3(-1.5, -1.5, -1.5)}
	moved := box.TransformedBy(math.NewMat4Translation(math.NewVec3(6, 1.5, 3)))

	assert.Equal(t, math.NewVec3(7.5, 3, 4.5), moved.Max)
	assert.Equal(t, math.NewVec3(4.5, 0, 1.5), moved.Min)
	assert.True(t, moved.Contains(math.NewVec3(6, 2, 3)))
	assert.False(t, moved.Contains(math.NewVec3(0, 2, 0)))
	assert.Equal(t, math.NewVec3(6, 1.5, 3), moved.Center())
}

func TestTransformedByRotationOnlyMovesCorners(t *testing.T) {
	box := AABB{Max: math.NewVec3(2, 1, 1), Min: math.NewVec3(-2, -1, -1)}
	rot := math.NewQuatFromAxisAngle(math.NewVec3Up(), math.K_HALF_PI, true).ToMat4()

	approx := box.TransformedBy(rot)
	// the corners swap order on z, so not even the center is contained
	assert.False(t, approx.Contains(math.NewVec3Zero()))

	exact := box.EnclosingTransformedBy(rot)
	assert.True(t, exact.Max.Compare(math.NewVec3(1, 1, 2), 1e-5), "max %v", exact.Max)
	assert.True(t, exact.Min.Compare(math.NewVec3(-1, -1, -2), 1e-5), "min %v", exact.Min)
	assert.True(t, exact.Contains(math.NewVec3Zero()))
}

func TestFirstContainingScanOrder(t *testing.T) {
	a := Box{Max: math.NewVec3(5, 5, 5), Min: math.NewVec3(0, 0, 0)}
	b := Box{Max: math.NewVec3(6, 6, 6), Min: math.NewVec3(1, 1, 1)}

	got, ok := FirstContaining([]Collidable{a, b}, math.NewVec3(2, 2, 2))
	require.True(t, ok)
	assert.Equal(t, a, got)

	got, ok = FirstContaining([]Collidable{b, a}, math.NewVec3(2, 2, 2))
	require.True(t, ok)
	assert.Equal(t, b, got)

	_, ok = FirstContaining(nil, math.NewVec3Zero())
	assert.False(t, ok)
}
