// Package collide bridges the voxel octree to collision geometry: it
// turns exposed voxel faces into a compound shape of thin cuboids, one
// per visible face, each rotated to face its voxel's outward normal.
package collide

import (
	"github.com/chewxy/math32"
	"github.com/soypat/geometry/ms3"

	"github.com/soypat/voxcore"
	"github.com/soypat/voxcore/mesh"
)

// thickness is the half-extent of each face collider along its normal.
const thickness = 0.05

// emptyColliderRadius is the radius of the placeholder ball collider
// returned for a region with no exposed faces.
const emptyColliderRadius = 0.001

// FaceCollider is a single thin cuboid collider aligned to one exposed
// voxel face.
type FaceCollider struct {
	Center      ms3.Vec
	Rotation    ms3.Mat4
	HalfExtents ms3.Vec
}

// CompoundCollider is the union of all face colliders generated from a
// region of voxels. A Shapes slice of length 0 and IsEmptyPlaceholder
// true signals an empty region, represented (as the original physics
// crate does) by a tiny ball rather than an empty compound.
type CompoundCollider struct {
	Shapes              []FaceCollider
	IsEmptyPlaceholder  bool
	EmptyPlaceholderPos ms3.Vec
}

// VoxelColliderBuilder accumulates face colliders while walking an
// octree, then produces a CompoundCollider.
type VoxelColliderBuilder struct {
	shapes []FaceCollider
}

// NewVoxelColliderBuilder returns an empty builder.
func NewVoxelColliderBuilder() *VoxelColliderBuilder {
	return &VoxelColliderBuilder{}
}

// FaceCount returns the number of face colliders collected so far.
func (b *VoxelColliderBuilder) FaceCount() int {
	return len(b.shapes)
}

// FromCube generates a compound collider from every exposed face of
// root, down to maxDepth.
func FromCube(root voxcore.Cube[uint8], maxDepth uint32) CompoundCollider {
	return FromCubeRegion(root, maxDepth, nil)
}

// FromCubeRegion is FromCube restricted to region: only voxels whose
// centers fall within region are processed. region == nil processes the
// whole tree. Restricting to a small region significantly reduces
// collider complexity when only part of a voxel object participates in
// a collision check.
func FromCubeRegion(root voxcore.Cube[uint8], maxDepth uint32, region *ms3.Box) CompoundCollider {
	b := NewVoxelColliderBuilder()
	borderMaterials := [4]uint8{1, 1, 0, 0}

	mesh.VisitFaces(root, maxDepth, borderMaterials, func(f mesh.FaceInfo) {
		if region != nil {
			voxelCenter := ms3.Add(f.Position, ms3.Vec{X: f.Size / 2, Y: f.Size / 2, Z: f.Size / 2})
			if !boxContains(*region, voxelCenter) {
				return
			}
		}
		b.addFace(f)
	})

	return b.Build()
}

func (b *VoxelColliderBuilder) addFace(f mesh.FaceInfo) {
	normal := f.Face.Normal()
	halfSize := f.Size / 2
	voxelCenter := ms3.Add(f.Position, ms3.Vec{X: halfSize, Y: halfSize, Z: halfSize})
	faceCenter := ms3.Add(voxelCenter, ms3.Scale(halfSize, normal))

	b.shapes = append(b.shapes, FaceCollider{
		Center:      faceCenter,
		Rotation:    rotationFromNormal(normal),
		HalfExtents: ms3.Vec{X: halfSize, Y: halfSize, Z: thickness},
	})
}

// Build finishes accumulation, returning the placeholder ball collider
// if no faces were collected.
func (b *VoxelColliderBuilder) Build() CompoundCollider {
	if len(b.shapes) == 0 {
		return CompoundCollider{IsEmptyPlaceholder: true}
	}
	return CompoundCollider{Shapes: b.shapes}
}

// rotationFromNormal returns the rotation matrix that aligns +Z with
// normal, matching the thin cuboid's default Z-thickness orientation.
func rotationFromNormal(normal ms3.Vec) ms3.Mat4 {
	z := ms3.Vec{X: 0, Y: 0, Z: 1}

	diff := ms3.Sub(normal, z)
	if dot3(diff, diff) < 1e-6 {
		return ms3.RotationMat4(0, z)
	}
	sum := ms3.Add(normal, z)
	if dot3(sum, sum) < 1e-6 {
		return ms3.RotationMat4(math32.Pi, ms3.Vec{X: 1, Y: 0, Z: 0})
	}

	axis := cross3(z, normal)
	axisLen := math32.Sqrt(dot3(axis, axis))
	axis = ms3.Scale(1/axisLen, axis)
	angle := math32.Acos(clamp32(dot3(z, normal), -1, 1))
	return ms3.RotationMat4(angle, axis)
}

func dot3(a, b ms3.Vec) float32 {
	return a.X*b.X + a.Y*b.Y + a.Z*b.Z
}

func cross3(a, b ms3.Vec) ms3.Vec {
	return ms3.Vec{
		X: a.Y*b.Z - a.Z*b.Y,
		Y: a.Z*b.X - a.X*b.Z,
		Z: a.X*b.Y - a.Y*b.X,
	}
}

func clamp32(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func boxContains(b ms3.Box, p ms3.Vec) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X &&
		p.Y >= b.Min.Y && p.Y <= b.Max.Y &&
		p.Z >= b.Min.Z && p.Z <= b.Max.Z
}
