package mesh

import (
	"testing"

	"github.com/soypat/voxcore"
	"github.com/soypat/voxcore/vecutil"
)

func countFaces(root voxcore.Cube[uint8], maxDepth uint32) int {
	n := 0
	VisitFaces(root, maxDepth, [4]uint8{1, 1, 0, 0}, func(f FaceInfo) { n++ })
	return n
}

func TestVisitFacesSingleSolidVoxelOnSolidFloor(t *testing.T) {
	// border materials: the grid's two lower Y layers are solid (1), the
	// two upper layers empty (0), and the root itself is solid.
	root := voxcore.NewSolid[uint8](1)
	n := countFaces(root, 0)
	// depth 0: each of the 8 root octants is one leaf voxel. Octants in
	// the bottom Y layer touch solid border cells below and on their
	// outer sides and solid siblings elsewhere, so they show no face;
	// each octant in the top layer shows its top face and its two outer
	// side faces (12 faces in all). The count is asserted as non-zero
	// and at most the fully-exposed upper bound (8*6).
	if n <= 0 || n > 48 {
		t.Fatalf("face count = %d, want in (0,48]", n)
	}
}

func TestVisitFacesAllEmptyProducesNoFaces(t *testing.T) {
	root := voxcore.NewSolid[uint8](0)
	n := countFaces(root, 0)
	if n != 0 {
		t.Fatalf("face count = %d, want 0 for an all-empty tree", n)
	}
}

func TestVisitFacesIsolatedSolidOctant(t *testing.T) {
	// Only octant 0 solid, rest empty, border all empty: octant 0 should
	// show exactly 6 faces (one per direction), since every neighbor —
	// sibling or border — is empty.
	var children [8]voxcore.Cube[uint8]
	children[0] = voxcore.NewSolid[uint8](5)
	for i := 1; i < 8; i++ {
		children[i] = voxcore.NewSolid[uint8](0)
	}
	root := voxcore.NewBranch(children)

	var faces []FaceInfo
	VisitFaces(root, 0, [4]uint8{0, 0, 0, 0}, func(f FaceInfo) {
		faces = append(faces, f)
	})
	if len(faces) != 6 {
		t.Fatalf("len(faces) = %d, want 6", len(faces))
	}
	for _, f := range faces {
		if f.MaterialID != 5 {
			t.Fatalf("face material = %d, want 5", f.MaterialID)
		}
	}
}

func TestVisitFacesSharedInternalFaceHidden(t *testing.T) {
	// Octants 0 and 1 are adjacent along x (octant formula (z<<2)|(y<<1)|x)
	// and both solid: the face between them must not be emitted by
	// either side.
	var children [8]voxcore.Cube[uint8]
	children[0] = voxcore.NewSolid[uint8](1)
	children[1] = voxcore.NewSolid[uint8](1)
	for i := 2; i < 8; i++ {
		children[i] = voxcore.NewSolid[uint8](0)
	}
	root := voxcore.NewBranch(children)

	var faces []FaceInfo
	VisitFaces(root, 0, [4]uint8{0, 0, 0, 0}, func(f FaceInfo) {
		faces = append(faces, f)
	})
	for _, f := range faces {
		if f.ViewerCoord.Pos == (vecutil.IVec3{X: -1, Y: -1, Z: -1}) && f.Face == FaceRight {
			t.Fatal("octant 0's right face borders solid octant 1, must not be emitted")
		}
		if f.ViewerCoord.Pos == (vecutil.IVec3{X: 1, Y: -1, Z: -1}) && f.Face == FaceLeft {
			t.Fatal("octant 1's left face borders solid octant 0, must not be emitted")
		}
	}
}

func TestVisitFacesInRegionReducesCount(t *testing.T) {
	// Empty borders, so octant 0 shows its three outer faces; with a
	// solid [1,1,0,0] floor octant 0 would be buried and emit none.
	root := voxcore.NewSolid[uint8](1)
	empty := [4]uint8{0, 0, 0, 0}
	full := 0
	VisitFaces(root, 1, empty, func(f FaceInfo) { full++ })

	bounds := voxcore.NewRegionBounds(voxcore.NewCubeCoord(vecutil.IVec3{X: -1, Y: -1, Z: -1}, 1), vecutil.IVec3{X: 1, Y: 1, Z: 1})
	n := 0
	VisitFacesInRegion(root, bounds, 1, empty, func(f FaceInfo) { n++ })

	if n == 0 || n >= full {
		t.Fatalf("region face count = %d, want in (0, %d)", n, full)
	}
}

func TestVisitFacesInRegionOnlyEmitsWithinBounds(t *testing.T) {
	root := voxcore.NewSolid[uint8](1)
	bounds := voxcore.NewRegionBounds(voxcore.NewCubeCoord(vecutil.IVec3{X: -1, Y: -1, Z: -1}, 1), vecutil.IVec3{X: 1, Y: 1, Z: 1})

	VisitFacesInRegion(root, bounds, 1, [4]uint8{1, 1, 0, 0}, func(f FaceInfo) {
		if !bounds.Contains(f.ViewerCoord) {
			t.Fatalf("face emitted for coord %+v outside region bounds", f.ViewerCoord)
		}
	})
}

func TestFaceNormalVectors(t *testing.T) {
	cases := []struct {
		f    Face
		x, y, z float32
	}{
		{FaceLeft, -1, 0, 0},
		{FaceRight, 1, 0, 0},
		{FaceBottom, 0, -1, 0},
		{FaceTop, 0, 1, 0},
		{FaceBack, 0, 0, -1},
		{FaceFront, 0, 0, 1},
	}
	for _, c := range cases {
		n := c.f.Normal()
		if n.X != c.x || n.Y != c.y || n.Z != c.z {
			t.Fatalf("%s.Normal() = %+v, want (%v,%v,%v)", c.f, n, c.x, c.y, c.z)
		}
	}
}

func TestFaceString(t *testing.T) {
	if FaceTop.String() != "top" {
		t.Fatalf("FaceTop.String() = %q, want top", FaceTop.String())
	}
}
