package voxcore

import (
	"golang.org/x/exp/constraints"

	"github.com/soypat/geometry/ms3"
	"github.com/soypat/voxcore/vecutil"
)

// CubeCoord identifies a voxel in the tree: a center-based integer
// position at a given depth. At depth d, positions range over
// [-2^d, 2^d)^3.
type CubeCoord struct {
	Pos   vecutil.IVec3
	Depth uint32
}

// NewCubeCoord constructs a CubeCoord.
func NewCubeCoord(pos vecutil.IVec3, depth uint32) CubeCoord {
	return CubeCoord{Pos: pos, Depth: depth}
}

// RegionBounds describes an axis-aligned box of octant cells at a given
// depth, used to bound face enumeration (mesh.VisitFacesInRegion) and
// collision generation (collide.FromCubeRegion) to a subregion of the
// tree. Size components are each 1 or 2, covering 1 to 8 adjacent
// octants.
type RegionBounds struct {
	Coord CubeCoord
	Size  vecutil.IVec3
}

// NewRegionBounds constructs a RegionBounds directly from octree-space
// coordinates.
func NewRegionBounds(coord CubeCoord, size vecutil.IVec3) RegionBounds {
	return RegionBounds{Coord: coord, Size: size}
}

// RegionFromLocalAABB converts a local-space AABB [0,1]^3 into octree
// coordinate bounds at depth. It returns ok=false if the AABB does not
// intersect [0,1]^3 at all.
func RegionFromLocalAABB(localMin, localMax ms3.Vec, depth uint32) (RegionBounds, bool) {
	if localMax.X < 0 || localMin.X > 1 ||
		localMax.Y < 0 || localMin.Y > 1 ||
		localMax.Z < 0 || localMin.Z > 1 {
		return RegionBounds{}, false
	}
	clampedMin := ms3.Vec{X: maxOrdered(localMin.X, 0), Y: maxOrdered(localMin.Y, 0), Z: maxOrdered(localMin.Z, 0)}
	clampedMax := ms3.Vec{X: minOrdered(localMax.X, 1), Y: minOrdered(localMax.Y, 1), Z: minOrdered(localMax.Z, 1)}

	scale := float32(int32(1) << depth)

	minOctant := vecutil.IVec3{
		X: floorInt32(clampedMin.X * scale),
		Y: floorInt32(clampedMin.Y * scale),
		Z: floorInt32(clampedMin.Z * scale),
	}
	maxOctant := vecutil.IVec3{
		X: ceilInt32(clampedMax.X*scale) - 1,
		Y: ceilInt32(clampedMax.Y*scale) - 1,
		Z: ceilInt32(clampedMax.Z*scale) - 1,
	}
	maxOctant = vecutil.IVec3{
		X: maxOrdered(maxOctant.X, minOctant.X),
		Y: maxOrdered(maxOctant.Y, minOctant.Y),
		Z: maxOrdered(maxOctant.Z, minOctant.Z),
	}

	size := vecutil.IVec3{
		X: clampInt32(maxOctant.X-minOctant.X+1, 1, 2),
		Y: clampInt32(maxOctant.Y-minOctant.Y+1, 1, 2),
		Z: clampInt32(maxOctant.Z-minOctant.Z+1, 1, 2),
	}

	centerOffset := int32(1)<<depth - 1
	centerBasedPos := vecutil.IVec3{
		X: minOctant.X*2 - centerOffset,
		Y: minOctant.Y*2 - centerOffset,
		Z: minOctant.Z*2 - centerOffset,
	}

	return RegionBounds{Coord: NewCubeCoord(centerBasedPos, depth), Size: size}, true
}

// Contains reports whether coord's position lies inside this region. If
// coord is at a different depth than the region, positions are scaled to
// a common depth before comparing.
func (r RegionBounds) Contains(coord CubeCoord) bool {
	depthDiff := int(coord.Depth) - int(r.Coord.Depth)

	if depthDiff < 0 {
		scale := int32(1) << uint(-depthDiff)
		scaledPos := coord.Pos.Scale(scale)
		return scaledPos.X >= r.Coord.Pos.X && scaledPos.X < r.Coord.Pos.X+r.Size.X*2 &&
			scaledPos.Y >= r.Coord.Pos.Y && scaledPos.Y < r.Coord.Pos.Y+r.Size.Y*2 &&
			scaledPos.Z >= r.Coord.Pos.Z && scaledPos.Z < r.Coord.Pos.Z+r.Size.Z*2
	}

	checkPos, checkSize := r.Coord.Pos, r.Size
	if depthDiff > 0 {
		scale := int32(1) << uint(depthDiff)
		checkPos = checkPos.Scale(scale)
		checkSize = checkSize.Scale(scale)
	}

	pos := coord.Pos
	return pos.X >= checkPos.X && pos.X < checkPos.X+checkSize.X*2 &&
		pos.Y >= checkPos.Y && pos.Y < checkPos.Y+checkSize.Y*2 &&
		pos.Z >= checkPos.Z && pos.Z < checkPos.Z+checkSize.Z*2
}

// MightContainDescendants reports whether any voxel at or below coord
// could overlap this region — used to prune whole subtrees early during
// traversal without descending into them.
func (r RegionBounds) MightContainDescendants(coord CubeCoord) bool {
	depthDiff := int(coord.Depth) - int(r.Coord.Depth)
	if depthDiff >= 0 {
		return r.Contains(coord)
	}

	scale := int32(1) << uint(-depthDiff)
	regionMin := vecutil.IVec3{
		X: r.Coord.Pos.X / scale,
		Y: r.Coord.Pos.Y / scale,
		Z: r.Coord.Pos.Z / scale,
	}
	regionMax := vecutil.IVec3{
		X: (r.Coord.Pos.X + r.Size.X*2 - 1) / scale,
		Y: (r.Coord.Pos.Y + r.Size.Y*2 - 1) / scale,
		Z: (r.Coord.Pos.Z + r.Size.Z*2 - 1) / scale,
	}

	cellMin := coord.Pos.Sub(vecutil.IVec3{X: 1, Y: 1, Z: 1})
	cellMax := coord.Pos.Add(vecutil.IVec3{X: 1, Y: 1, Z: 1})

	return cellMax.X >= regionMin.X && cellMin.X <= regionMax.X &&
		cellMax.Y >= regionMin.Y && cellMin.Y <= regionMax.Y &&
		cellMax.Z >= regionMin.Z && cellMin.Z <= regionMax.Z
}

// OctantCount returns the number of octant cells this region covers (1 to
// 8).
func (r RegionBounds) OctantCount() int {
	return int(r.Size.X * r.Size.Y * r.Size.Z)
}

// maxOrdered and minOrdered back every min/max comparison in this file
// (over both float32 and int32 coordinates), via constraints.Ordered
// rather than a separate hand-written pair per numeric type.
func maxOrdered[T constraints.Ordered](a, b T) T {
	if a > b {
		return a
	}
	return b
}

func minOrdered[T constraints.Ordered](a, b T) T {
	if a < b {
		return a
	}
	return b
}

func clampInt32(v, lo, hi int32) int32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func floorInt32(v float32) int32 {
	i := int32(v)
	if v < 0 && float32(i) != v {
		i--
	}
	return i
}

func ceilInt32(v float32) int32 {
	i := int32(v)
	if v > 0 && float32(i) != v {
		i++
	}
	return i
}
