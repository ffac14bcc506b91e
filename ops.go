package voxcore

import (
	"github.com/soypat/geometry/ms3"
	"github.com/soypat/voxcore/vecutil"
)

// SetVoxel returns a new cube with the leaf at (x,y,z) — coordinates in
// [0, 2^depth) — set to Solid(value). Every subtree not on the path from
// root to the modified leaf is shared, unmodified, with c.
//
// If c is Solid, it is lazily materialized into eight Solid children
// before descending, per the octree's persistence invariant. Plane and
// Slice nodes are treated as Solid(zero value) for the purposes of this
// expansion, matching BCF's own fallback rule.
func SetVoxel[T any](c Cube[T], x, y, z int32, depth uint32, value T) Cube[T] {
	if depth == 0 {
		return NewSolid(value)
	}
	half := int32(1) << (depth - 1)
	ox, oy, oz := 0, 0, 0
	if x >= half {
		ox = 1
	}
	if y >= half {
		oy = 1
	}
	if z >= half {
		oz = 1
	}
	octant := vecutil.OctantIndex(ox, oy, oz)
	cx, cy, cz := x%half, y%half, z%half

	var children [8]Cube[T]
	switch v := c.(type) {
	case Branch[T]:
		children = v.Children
	case Solid[T]:
		for i := range children {
			children[i] = NewSolid(v.Value)
		}
	default:
		var zero T
		for i := range children {
			children[i] = NewSolid(zero)
		}
	}
	children[octant] = SetVoxel(children[octant], cx, cy, cz, depth-1, value)
	return NewBranch(children)
}

// ApplySwap returns a Branch whose eight children are reordered per axes,
// without touching the children's own substructure (non-recursive). Cubes
// that are not a Branch are returned unchanged: a Solid, Plane, or Slice
// has nothing to swap at this level.
func ApplySwap[T any](c Cube[T], axes []Axis) Cube[T] {
	b, ok := c.(Branch[T])
	if !ok {
		return c
	}
	children := b.Children
	for _, axis := range axes {
		swapChildren(&children, axis)
	}
	return NewBranch(children)
}

// ApplyMirror returns a Branch whose eight children are reordered per
// axes AND each child is itself recursively mirrored. Applying the same
// axes twice is the identity, same as ApplySwap.
func ApplyMirror[T any](c Cube[T], axes []Axis) Cube[T] {
	b, ok := c.(Branch[T])
	if !ok {
		return c
	}
	var children [8]Cube[T]
	for i, child := range b.Children {
		children[i] = ApplyMirror(child, axes)
	}
	for _, axis := range axes {
		swapChildren(&children, axis)
	}
	return NewBranch(children)
}

func swapChildren[T any](children *[8]Cube[T], axis Axis) {
	switch axis {
	case AxisX:
		children[0], children[4] = children[4], children[0]
		children[1], children[5] = children[5], children[1]
		children[2], children[6] = children[6], children[2]
		children[3], children[7] = children[7], children[3]
	case AxisY:
		children[0], children[2] = children[2], children[0]
		children[1], children[3] = children[3], children[1]
		children[4], children[6] = children[6], children[4]
		children[5], children[7] = children[7], children[5]
	case AxisZ:
		children[0], children[1] = children[1], children[0]
		children[2], children[3] = children[3], children[2]
		children[4], children[5] = children[5], children[4]
		children[6], children[7] = children[7], children[6]
	}
}

// VoxelSample is one non-empty leaf as returned by CollectVoxels: its
// position and size in local normalized [0,1]^3 space, and its value.
type VoxelSample[T any] struct {
	Position ms3.Vec
	Size     float32
	Value    T
}

// CollectVoxels walks c and returns every non-empty leaf, flattened to a
// slice of VoxelSample. isEmpty decides which values are considered
// empty (and thus omitted) — the core has no built-in notion of
// emptiness, matching raycast's own IsEmpty predicate contract. Plane and
// Slice subtrees are not expanded pending a dedicated quadtree/
// slice-stack walker.
func CollectVoxels[T any](c Cube[T], isEmpty func(T) bool) []VoxelSample[T] {
	var out []VoxelSample[T]
	collectVoxels(c, ms3.Vec{}, 1, isEmpty, &out)
	return out
}

func collectVoxels[T any](c Cube[T], pos ms3.Vec, size float32, isEmpty func(T) bool, out *[]VoxelSample[T]) {
	switch v := c.(type) {
	case Solid[T]:
		if !isEmpty(v.Value) {
			*out = append(*out, VoxelSample[T]{Position: pos, Size: size, Value: v.Value})
		}
	case Branch[T]:
		half := size / 2
		for idx, child := range v.Children {
			off := vecutil.OctantOffset01(idx)
			childPos := ms3.Vec{
				X: pos.X + float32(off.X)*half,
				Y: pos.Y + float32(off.Y)*half,
				Z: pos.Z + float32(off.Z)*half,
			}
			collectVoxels(child, childPos, half, isEmpty, out)
		}
	case Plane[T], Slice[T]:
		// Not expanded: no flat voxel representation is defined for 2-D/1-D
		// subdivisions in this core.
	}
}
