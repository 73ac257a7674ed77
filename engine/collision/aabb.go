package collision

import (
	"fmt"

	"github.com/spaghettifunk/corridor/engine/core"
	"github.com/spaghettifunk/corridor/engine/math"
)

// AABB is an axis-aligned bounding box. For a box built from a non-empty
// point set Min is at or below Max on every axis.
type AABB struct {
	Max math.Vec3
	Min math.Vec3
}

// Build computes the box of a flat vertex buffer. Every record is stride
// floats long and its first three floats are the position; the rest
// (normals, texture coordinates) is skipped.
//
// Both corners start at the origin, so the box always includes it: points
// that all lie on one side of the origin produce a box that is stretched
// back to zero on that axis. Use BuildTight for the smallest box.
func Build(points []float32, stride int) (AABB, error) {
	if err := checkRecords(points, stride); err != nil {
		return AABB{}, err
	}
	return fold(AABB{}, points, stride), nil
}

// BuildTight computes the smallest box enclosing the points, seeding both
// corners from the first record.
func BuildTight(points []float32, stride int) (AABB, error) {
	if err := checkRecords(points, stride); err != nil {
		return AABB{}, err
	}
	first := math.NewVec3FromSlice(points)
	return fold(AABB{Max: first, Min: first}, points, stride), nil
}

func checkRecords(points []float32, stride int) error {
	if stride < 3 {
		return fmt.Errorf("%w: stride %d is shorter than a position", core.ErrInvalidInput, stride)
	}
	if len(points) < 3 {
		return fmt.Errorf("%w: bounding box needs at least one point, got %d floats", core.ErrInvalidInput, len(points))
	}
	return nil
}

// A trailing partial record still counts when it carries a full position.
func fold(box AABB, points []float32, stride int) AABB {
	for i := 0; i+3 <= len(points); i += stride {
		p := math.NewVec3FromSlice(points[i:])
		box.Max = box.Max.Max(p)
		box.Min = box.Min.Min(p)
	}
	return box
}

// Contains reports whether p lies inside the box or on its faces.
func (b AABB) Contains(p math.Vec3) bool {
	return b.Min.X <= p.X && p.X <= b.Max.X &&
		b.Min.Y <= p.Y && p.Y <= b.Max.Y &&
		b.Min.Z <= p.Z && p.Z <= b.Max.Z
}

// TransformedBy moves both corners by m and returns them as a new box.
//
// This is exact for translations and scales. Under a rotation the two
// corners are no longer the extremes of the rotated object, and may even
// swap order on an axis, so the result does not enclose it. Use
// EnclosingTransformedBy when rotated placements must be bounded.
func (b AABB) TransformedBy(m math.Mat4) AABB {
	return AABB{
		Max: b.Max.Transform(m),
		Min: b.Min.Transform(m),
	}
}

// EnclosingTransformedBy transforms all eight corners and returns the
// box around them.
func (b AABB) EnclosingTransformedBy(m math.Mat4) AABB {
	var out AABB
	for i, c := range b.Corners() {
		p := c.Transform(m)
		if i == 0 {
			out = AABB{Max: p, Min: p}
			continue
		}
		out.Max = out.Max.Max(p)
		out.Min = out.Min.Min(p)
	}
	return out
}

func (b AABB) Corners() [8]math.Vec3 {
	return [8]math.Vec3{
		{X: b.Min.X, Y: b.Min.Y, Z: b.Min.Z},
		{X: b.Max.X, Y: b.Min.Y, Z: b.Min.Z},
		{X: b.Min.X, Y: b.Max.Y, Z: b.Min.Z},
		{X: b.Max.X, Y: b.Max.Y, Z: b.Min.Z},
		{X: b.Min.X, Y: b.Min.Y, Z: b.Max.Z},
		{X: b.Max.X, Y: b.Min.Y, Z: b.Max.Z},
		{X: b.Min.X, Y: b.Max.Y, Z: b.Max.Z},
		{X: b.Max.X, Y: b.Max.Y, Z: b.Max.Z},
	}
}

func (b AABB) Center() math.Vec3 {
	return b.Min.Add(b.Max).MulScalar(0.5)
}

func (b AABB) Extents() math.Extents3D {
	return math.Extents3D{Min: b.Min, Max: b.Max}
}

func (b AABB) String() string {
	return fmt.Sprintf("AABB{min=(%.3f, %.3f, %.3f) max=(%.3f, %.3f, %.3f)}",
		b.Min.X, b.Min.Y, b.Min.Z, b.Max.X, b.Max.Y, b.Max.Z)
}
