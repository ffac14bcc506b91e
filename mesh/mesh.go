// Package mesh enumerates visible voxel faces: the boundary between a
// solid voxel and an empty (or absent) neighbor, the input a renderer or
// collision bridge turns into geometry.
package mesh

import (
	"fmt"

	"github.com/soypat/geometry/ms3"

	"github.com/soypat/voxcore"
	"github.com/soypat/voxcore/traversal"
)

// Face names one of the six axis-aligned directions a voxel can expose
// a visible surface toward.
type Face uint8

const (
	FaceLeft Face = iota
	FaceRight
	FaceBottom
	FaceTop
	FaceBack
	FaceFront
)

func (f Face) String() string {
	switch f {
	case FaceLeft:
		return "left"
	case FaceRight:
		return "right"
	case FaceBottom:
		return "bottom"
	case FaceTop:
		return "top"
	case FaceBack:
		return "back"
	case FaceFront:
		return "front"
	default:
		return fmt.Sprintf("Face(%d)", uint8(f))
	}
}

// Normal returns the outward unit normal for f.
func (f Face) Normal() ms3.Vec {
	switch f {
	case FaceLeft:
		return ms3.Vec{X: -1}
	case FaceRight:
		return ms3.Vec{X: 1}
	case FaceBottom:
		return ms3.Vec{Y: -1}
	case FaceTop:
		return ms3.Vec{Y: 1}
	case FaceBack:
		return ms3.Vec{Z: -1}
	default:
		return ms3.Vec{Z: 1}
	}
}

// FaceInfo describes one visible face: a solid voxel's surface bordering
// an empty voxel, or the edge of the traversed region.
type FaceInfo struct {
	Face        Face
	Position    ms3.Vec
	Size        float32
	MaterialID  uint8
	ViewerCoord voxcore.CubeCoord
}

var directions = [6]struct {
	face   Face
	offset int
}{
	{FaceLeft, traversal.OffsetLeft},
	{FaceRight, traversal.OffsetRight},
	{FaceBottom, traversal.OffsetDown},
	{FaceTop, traversal.OffsetUp},
	{FaceBack, traversal.OffsetBack},
	{FaceFront, traversal.OffsetFront},
}

// VisitFaces walks root and calls visit for every visible face: a solid
// (material != 0) voxel bordering an empty voxel, or a solid voxel at
// the traversal's outer boundary. maxDepth bounds subdivision the same
// way traversal.TraverseOctree's does.
func VisitFaces(root voxcore.Cube[uint8], maxDepth uint32, borderMaterials [4]uint8, visit func(FaceInfo)) {
	grid := traversal.NewNeighborGrid(root, borderMaterials)
	traversal.TraverseOctree(grid, maxDepth, func(view traversal.NeighborView[uint8], coord voxcore.CubeCoord, subleaf bool) bool {
		return visitVoxelFaces(view, coord, visit)
	})
}

// VisitFacesInRegion is VisitFaces bounded to bounds: subtrees bounds
// cannot possibly overlap are pruned without descending, and voxels
// outside bounds are descended into (for their children) but do not
// themselves emit faces.
func VisitFacesInRegion(root voxcore.Cube[uint8], bounds voxcore.RegionBounds, maxDepth uint32, borderMaterials [4]uint8, visit func(FaceInfo)) {
	grid := traversal.NewNeighborGrid(root, borderMaterials)
	traversal.TraverseOctree(grid, maxDepth, func(view traversal.NeighborView[uint8], coord voxcore.CubeCoord, subleaf bool) bool {
		if !bounds.MightContainDescendants(coord) {
			return false
		}
		if materialOf(view.Center()) == 0 {
			return false
		}
		if !bounds.Contains(coord) {
			return true
		}
		return visitVoxelFaces(view, coord, visit)
	})
}

func visitVoxelFaces(view traversal.NeighborView[uint8], coord voxcore.CubeCoord, visit func(FaceInfo)) bool {
	centerID := materialOf(view.Center())
	if centerID == 0 {
		return false
	}

	voxelSize := 1 / float32(int32(1)<<coord.Depth)
	halfSize := voxelSize * 0.5
	basePos := ms3.Vec{
		X: (float32(coord.Pos.X)-1)*halfSize + 0.5,
		Y: (float32(coord.Pos.Y)-1)*halfSize + 0.5,
		Z: (float32(coord.Pos.Z)-1)*halfSize + 0.5,
	}

	shouldSubdivide := false
	for _, d := range directions {
		neighbor, ok := view.Get(d.offset)
		if !ok {
			visit(FaceInfo{Face: d.face, Position: basePos, Size: voxelSize, MaterialID: centerID, ViewerCoord: coord})
			continue
		}
		if _, isBranch := neighbor.(voxcore.Branch[uint8]); isBranch {
			shouldSubdivide = true
			continue
		}
		if materialOf(neighbor) != 0 {
			continue
		}
		visit(FaceInfo{Face: d.face, Position: basePos, Size: voxelSize, MaterialID: centerID, ViewerCoord: coord})
	}
	return shouldSubdivide
}

// materialOf extracts a leaf's material id, treating Plane/Slice as
// material 0 per the core's documented fallback rule.
func materialOf(c voxcore.Cube[uint8]) uint8 {
	if s, ok := c.(voxcore.Solid[uint8]); ok {
		return s.Value
	}
	return 0
}
