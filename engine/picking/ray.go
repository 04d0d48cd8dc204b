package picking

import (
	"github.com/Carmen-Shannon/oxy-audioviz/common"
	"github.com/chewxy/math32"
)

// Intersect tests a ray against an axis-aligned box with the slab method.
// A ray starting inside the box hits where it leaves the box.
//
// Parameters:
//   - ray: the ray, with a normalized direction
//   - box: the world-space box
//
// Returns:
//   - float32: distance along the ray to the hit point
//   - bool: false if the ray misses or the box lies entirely behind the origin
func Intersect(ray common.Ray, box common.BoundingBox) (float32, bool) {
	tmin := math32.Inf(-1)
	tmax := math32.Inf(1)

	for axis := 0; axis < 3; axis++ {
		o := ray.Origin[axis]
		d := ray.Direction[axis]
		lo, hi := box.Min[axis], box.Max[axis]

		if math32.Abs(d) < 1e-12 {
			// parallel to this slab
			if o < lo || o > hi {
				return 0, false
			}
			continue
		}

		inv := 1 / d
		t1 := (lo - o) * inv
		t2 := (hi - o) * inv
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tmin = math32.Max(tmin, t1)
		tmax = math32.Min(tmax, t2)
		if tmin > tmax {
			return 0, false
		}
	}

	if tmax < 0 {
		return 0, false
	}
	if tmin >= 0 {
		return tmin, true
	}
	return tmax, true
}
