package collision

import "github.com/spaghettifunk/corridor/engine/math"

// Collidable is a solid world object the camera cannot enter.
type Collidable interface {
	// WorldAABB returns the object's local box placed in world space.
	WorldAABB() AABB
	// Contains reports whether a world-space point is inside the object.
	Contains(p math.Vec3) bool
}

// Box is a Collidable backed by a fixed world-space AABB.
type Box AABB

func (b Box) WorldAABB() AABB {
	return AABB(b)
}

func (b Box) Contains(p math.Vec3) bool {
	return AABB(b).Contains(p)
}

// FirstContaining scans objects in order and returns the first one whose
// volume holds p.
func FirstContaining(objects []Collidable, p math.Vec3) (Collidable, bool) {
	for _, o := range objects {
		if o.Contains(p) {
			return o, true
		}
	}
	return nil, false
}
