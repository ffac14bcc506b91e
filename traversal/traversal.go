// Package traversal implements neighbor-aware octree traversal: a
// sliding 4x4x4 window of voxels (the NeighborGrid) that gives each
// visited leaf access to its neighbors without re-walking the tree from
// the root at every step.
package traversal

import (
	"github.com/soypat/voxcore"
	"github.com/soypat/voxcore/vecutil"
)

// Neighbor direction offsets into NeighborGrid.Voxels / NeighborView,
// added to a center index to reach the adjacent cell.
const (
	OffsetLeft  = -1
	OffsetRight = 1
	OffsetDown  = -4
	OffsetUp    = 4
	OffsetBack  = -16
	OffsetFront = 16
)

// centerIndex is the index of grid position (1,1,1): the low corner of
// the inner 2x2x2 that holds the root's octants.
const centerIndex = 21

// NeighborGrid is a 4x4x4 window of cubes: an inner 2x2x2 holding a
// cube's 8 octants, surrounded by a one-cell border seeded from
// border materials.
type NeighborGrid[T any] struct {
	Voxels [64]voxcore.Cube[T]
}

// IndexToPos converts a linear grid index (0..64) to its (x,y,z)
// position, each in 0..4.
func IndexToPos(index int) vecutil.IVec3 {
	z := index / 16
	rem := index % 16
	y := rem / 4
	x := rem % 4
	return vecutil.IVec3{X: int32(x), Y: int32(y), Z: int32(z)}
}

// PosToIndex converts a grid position back to a linear index.
func PosToIndex(p vecutil.IVec3) int {
	return int(p.X + p.Y*4 + p.Z*16)
}

// NewNeighborGrid builds a grid around root: root's 8 octants fill the
// center 2x2x2, and the surrounding shell is seeded from
// borderMaterials, indexed by grid Y layer (borderMaterials[0] is the
// bottom layer, borderMaterials[3] the top).
func NewNeighborGrid[T any](root voxcore.Cube[T], borderMaterials [4]T) *NeighborGrid[T] {
	g := &NeighborGrid[T]{}
	for i := 0; i < 64; i++ {
		pos := IndexToPos(i)
		isBorder := pos.X == 0 || pos.X == 3 || pos.Y == 0 || pos.Y == 3 || pos.Z == 0 || pos.Z == 3
		if isBorder {
			g.Voxels[i] = voxcore.NewSolid(borderMaterials[pos.Y])
		} else {
			g.Voxels[i] = voxcore.NewSolid(borderMaterials[3])
		}
	}
	for octant := 0; octant < 8; octant++ {
		off := vecutil.OctantOffset01(octant)
		idx := PosToIndex(vecutil.IVec3{X: off.X + 1, Y: off.Y + 1, Z: off.Z + 1})
		g.Voxels[idx] = octantOf(root, octant)
	}
	return g
}

// octantOf returns root's child at octant, lazily materializing a
// Solid or falling back to Solid(zero) for Plane/Slice, matching the
// core's own documented fallback rule.
func octantOf[T any](c voxcore.Cube[T], octant int) voxcore.Cube[T] {
	switch v := c.(type) {
	case voxcore.Branch[T]:
		return v.Children[octant]
	case voxcore.Solid[T]:
		return voxcore.NewSolid(v.Value)
	default:
		var zero T
		return voxcore.NewSolid(zero)
	}
}

// NeighborView is a read-only view of a NeighborGrid centered on one
// voxel, giving directional access to its neighbors.
type NeighborView[T any] struct {
	Grid        *NeighborGrid[T]
	CenterIndex int
}

// Center returns the voxel this view is centered on.
func (v NeighborView[T]) Center() voxcore.Cube[T] {
	return v.Grid.Voxels[v.CenterIndex]
}

// Get returns the neighbor at offset (one of the Offset* constants, or
// any other cell-to-cell delta), or ok=false if the center index plus
// offset falls outside the grid's 64 cells. Only that linear range is
// checked: an offset that wraps across a row or layer edge is not
// detected.
func (v NeighborView[T]) Get(offset int) (cube voxcore.Cube[T], ok bool) {
	idx := v.CenterIndex + offset
	if idx < 0 || idx >= 64 {
		return nil, false
	}
	return v.Grid.Voxels[idx], true
}

// CreateChildGrid builds a new 4x4x4 grid one octree level deeper,
// centered on this view's voxel's children.
func (v NeighborView[T]) CreateChildGrid() *NeighborGrid[T] {
	g := &NeighborGrid[T]{}
	for i := 0; i < 64; i++ {
		pos := IndexToPos(i)
		parentOffset := vecutil.IVec3{
			X: (pos.X+1)/2 - 1,
			Y: (pos.Y+1)/2 - 1,
			Z: (pos.Z+1)/2 - 1,
		}
		childPos := vecutil.IVec3{
			X: (pos.X + 1) % 2,
			Y: (pos.Y + 1) % 2,
			Z: (pos.Z + 1) % 2,
		}
		parentIdx := v.CenterIndex + PosToIndex(parentOffset)
		parent := v.Grid.Voxels[parentIdx]
		childOctant := vecutil.OctantIndex(int(childPos.X), int(childPos.Y), int(childPos.Z))
		g.Voxels[i] = octantOf(parent, childOctant)
	}
	return g
}

// Visitor is called for each leaf voxel encountered by TraverseOctree.
// subleaf reports whether the leaf sits above maximum depth and could
// be subdivided further. Returning true requests the traversal treat
// the leaf as if subdivided into 8 identical children and continue
// descending into them; false stops here.
type Visitor[T any] func(view NeighborView[T], coord voxcore.CubeCoord, subleaf bool) bool

// TraverseOctree walks grid's center cube (and, transitively, its
// descendants) up to maxDepth levels deep, calling visit for every leaf
// reached. Internal (Branch) nodes are descended without a visitor
// call.
func TraverseOctree[T any](grid *NeighborGrid[T], maxDepth uint32, visit Visitor[T]) {
	for octant := 0; octant < 8; octant++ {
		off := vecutil.OctantOffset01(octant)
		idx := centerIndex + PosToIndex(off)
		view := NeighborView[T]{Grid: grid, CenterIndex: idx}
		coord := voxcore.NewCubeCoord(vecutil.OctantOffset(octant), maxDepth)
		traverseRecursive(view, coord, visit)
	}
}

func traverseRecursive[T any](view NeighborView[T], coord voxcore.CubeCoord, visit Visitor[T]) {
	if coord.Depth == 0 {
		visit(view, coord, false)
		return
	}
	if _, isBranch := view.Center().(voxcore.Branch[T]); isBranch {
		descendChildren(view, coord, visit)
		return
	}
	if visit(view, coord, true) {
		descendChildren(view, coord, visit)
	}
}

func descendChildren[T any](view NeighborView[T], coord voxcore.CubeCoord, visit Visitor[T]) {
	childGrid := view.CreateChildGrid()
	parentPos2 := coord.Pos.Scale(2)
	for octant := 0; octant < 8; octant++ {
		off := vecutil.OctantOffset01(octant)
		idx := centerIndex + PosToIndex(off)
		childView := NeighborView[T]{Grid: childGrid, CenterIndex: idx}
		childCoord := voxcore.NewCubeCoord(parentPos2.Add(vecutil.OctantOffset(octant)), coord.Depth-1)
		traverseRecursive(childView, childCoord, visit)
	}
}
