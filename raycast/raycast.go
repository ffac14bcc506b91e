// Package raycast implements recursive-DDA ray-octree traversal: casting
// a ray through a voxcore.Cube and finding the first non-empty voxel it
// strikes.
package raycast

import (
	"github.com/chewxy/math32"
	"github.com/soypat/geometry/ms3"

	"github.com/soypat/voxcore"
	"github.com/soypat/voxcore/vecutil"
)

// epsilon nudges the traversal position past a boundary after an entry
// or step, so the next octant test does not land exactly on the plane.
const epsilon = 1e-5

// Hit describes the first non-empty voxel a ray strikes.
type Hit struct {
	Coord      voxcore.CubeCoord
	HitPos     ms3.Vec
	NormalAxis voxcore.Axis
	NormalSign float32
}

// Normal returns the hit's surface normal as a unit vector along
// NormalAxis, signed by NormalSign.
func (h Hit) Normal() ms3.Vec {
	v := ms3.Vec{}
	switch h.NormalAxis {
	case voxcore.AxisX:
		v.X = h.NormalSign
	case voxcore.AxisY:
		v.Y = h.NormalSign
	case voxcore.AxisZ:
		v.Z = h.NormalSign
	}
	return v
}

// DebugTrace records traversal statistics, for tests and visualization.
type DebugTrace struct {
	EnterCount      int
	MaxDepthReached uint32
	Visited         []voxcore.CubeCoord
}

// Raycast casts a ray, given as origin and direction in center-based
// local space [-1,1]^3, through root up to maxDepth levels, returning
// the first voxel for which isEmpty reports false.
func Raycast[T any](root voxcore.Cube[T], origin, dir ms3.Vec, maxDepth uint32, isEmpty func(T) bool) (Hit, bool) {
	return RaycastDebug(root, origin, dir, maxDepth, isEmpty, nil)
}

// RaycastDebug is Raycast with an optional trace recorder.
func RaycastDebug[T any](root voxcore.Cube[T], origin, dir ms3.Vec, maxDepth uint32, isEmpty func(T) bool, trace *DebugTrace) (Hit, bool) {
	entryDist, axis, sign, ok := boxEntry(origin, dir)
	if !ok {
		return Hit{}, false
	}
	if entryDist < 0 {
		entryDist = 0
	}
	pos := ms3.Add(origin, ms3.Scale(entryDist+epsilon, dir))
	coord := voxcore.NewCubeCoord(vecutil.IVec3{}, maxDepth)
	return descend(root, pos, dir, coord, maxDepth, maxDepth, axis, sign, isEmpty, trace)
}

// boxEntry computes the entry distance of ray (origin,dir) against the
// box [-1,1]^3 via the slab method, and the axis/sign of the face it
// enters through. ok is false on a miss.
func boxEntry(origin, dir ms3.Vec) (dist float32, axis voxcore.Axis, sign float32, ok bool) {
	tmin := float32(math32.Inf(-1))
	tmax := float32(math32.Inf(1))

	axes := [3]voxcore.Axis{voxcore.AxisX, voxcore.AxisY, voxcore.AxisZ}
	origins := [3]float32{origin.X, origin.Y, origin.Z}
	dirs := [3]float32{dir.X, dir.Y, dir.Z}

	for i := 0; i < 3; i++ {
		o, d := origins[i], dirs[i]
		if d == 0 {
			if o < -1 || o > 1 {
				return 0, 0, 0, false
			}
			continue
		}
		t1 := (-1 - o) / d
		t2 := (1 - o) / d
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tmin {
			tmin = t1
			axis = axes[i]
			sign = -signOf(d)
		}
		if t2 < tmax {
			tmax = t2
		}
		if tmin > tmax {
			return 0, 0, 0, false
		}
	}
	if tmax < 0 {
		return 0, 0, 0, false
	}
	return tmin, axis, sign, true
}

func descend[T any](c voxcore.Cube[T], pos, dir ms3.Vec, coord voxcore.CubeCoord, depth, initialDepth uint32, axis voxcore.Axis, sign float32, isEmpty func(T) bool, trace *DebugTrace) (Hit, bool) {
	if trace != nil {
		trace.EnterCount++
		trace.Visited = append(trace.Visited, coord)
		if levels := initialDepth - depth; levels > trace.MaxDepthReached {
			trace.MaxDepthReached = levels
		}
	}

	_, isBranch := c.(voxcore.Branch[T])
	if depth == 0 || !isBranch {
		solid, isSolid := c.(voxcore.Solid[T])
		if isSolid && !isEmpty(solid.Value) {
			return Hit{Coord: coord, HitPos: pos, NormalAxis: axis, NormalSign: sign}, true
		}
		return Hit{}, false
	}

	for iter := 0; iter < 4; iter++ {
		ox, oy, oz := 0, 0, 0
		if pos.X >= 0 {
			ox = 1
		}
		if pos.Y >= 0 {
			oy = 1
		}
		if pos.Z >= 0 {
			oz = 1
		}
		octant := vecutil.OctantIndex(ox, oy, oz)
		child, _ := voxcore.GetChild(c, octant)

		center := ms3.Vec{X: centerComponent(ox), Y: centerComponent(oy), Z: centerComponent(oz)}
		childPos := ms3.Scale(2, ms3.Sub(pos, center))
		childCoord := voxcore.NewCubeCoord(
			coord.Pos.Scale(2).Add(vecutil.OctantOffset(octant)),
			coord.Depth-1,
		)
		childDepth := depth - 1

		if hit, ok := descend(child, childPos, dir, childCoord, childDepth, initialDepth, axis, sign, isEmpty, trace); ok {
			return hit, true
		}

		tx := stepTime(pos.X, dir.X)
		ty := stepTime(pos.Y, dir.Y)
		tz := stepTime(pos.Z, dir.Z)

		tmin, crossedAxis := minAxis(tx, ty, tz)
		if math32.IsInf(tmin, 1) {
			return Hit{}, false
		}
		pos = ms3.Add(pos, ms3.Scale(tmin+epsilon, dir))
		axis = crossedAxis
		sign = -signOf(axisComponent(dir, crossedAxis))

		if math32.Abs(axisComponent(pos, crossedAxis)) >= 1 {
			return Hit{}, false
		}
	}
	return Hit{}, false
}

func centerComponent(bit int) float32 {
	if bit == 1 {
		return 0.5
	}
	return -0.5
}

// stepTime returns the ray-parameter distance from p to the plane
// coordinate=0 along this axis, or +Inf if the step is behind the ray or
// dir is zero on this axis.
func stepTime(p, d float32) float32 {
	if d == 0 {
		return float32(math32.Inf(1))
	}
	t := (0 - p) / d
	if t < 0 {
		return float32(math32.Inf(1))
	}
	return t
}

func minAxis(tx, ty, tz float32) (float32, voxcore.Axis) {
	min, axis := tx, voxcore.AxisX
	if ty < min {
		min, axis = ty, voxcore.AxisY
	}
	if tz < min {
		min, axis = tz, voxcore.AxisZ
	}
	return min, axis
}

func axisComponent(v ms3.Vec, axis voxcore.Axis) float32 {
	switch axis {
	case voxcore.AxisX:
		return v.X
	case voxcore.AxisY:
		return v.Y
	default:
		return v.Z
	}
}

func signOf(v float32) float32 {
	if v < 0 {
		return -1
	}
	return 1
}
