package traversal

import (
	"testing"

	"github.com/soypat/voxcore"
	"github.com/soypat/voxcore/vecutil"
)

func TestIndexPosRoundTrip(t *testing.T) {
	for i := 0; i < 64; i++ {
		p := IndexToPos(i)
		if got := PosToIndex(p); got != i {
			t.Fatalf("PosToIndex(IndexToPos(%d)) = %d", i, got)
		}
	}
	if PosToIndex(vecutil.IVec3{X: 0, Y: 0, Z: 0}) != 0 {
		t.Fatal("index(0,0,0) != 0")
	}
	if PosToIndex(vecutil.IVec3{X: 3, Y: 3, Z: 3}) != 63 {
		t.Fatal("index(3,3,3) != 63")
	}
	if PosToIndex(vecutil.IVec3{X: 1, Y: 1, Z: 1}) != centerIndex {
		t.Fatal("index(1,1,1) != centerIndex")
	}
}

func TestNewNeighborGridBorders(t *testing.T) {
	root := voxcore.NewSolid[int32](42)
	border := [4]int32{33, 33, 0, 0}
	g := NewNeighborGrid(root, border)

	for octant := 0; octant < 8; octant++ {
		off := vecutil.OctantOffset01(octant)
		idx := PosToIndex(vecutil.IVec3{X: off.X + 1, Y: off.Y + 1, Z: off.Z + 1})
		s, ok := g.Voxels[idx].(voxcore.Solid[int32])
		if !ok || s.Value != 42 {
			t.Fatalf("center octant %d = %+v, want Solid(42)", octant, g.Voxels[idx])
		}
	}

	corner := g.Voxels[PosToIndex(vecutil.IVec3{X: 0, Y: 0, Z: 0})]
	if s, ok := corner.(voxcore.Solid[int32]); !ok || s.Value != 33 {
		t.Fatalf("bottom corner = %+v, want Solid(33)", corner)
	}
	topCorner := g.Voxels[PosToIndex(vecutil.IVec3{X: 0, Y: 3, Z: 0})]
	if s, ok := topCorner.(voxcore.Solid[int32]); !ok || s.Value != 0 {
		t.Fatalf("top corner = %+v, want Solid(0)", topCorner)
	}
}

func TestNeighborViewOffsets(t *testing.T) {
	var children [8]voxcore.Cube[int32]
	for i := range children {
		children[i] = voxcore.NewSolid(int32(i))
	}
	root := voxcore.NewBranch(children)
	g := NewNeighborGrid(root, [4]int32{33, 33, 0, 0})

	centerIdx := PosToIndex(vecutil.IVec3{X: 1, Y: 1, Z: 1}) // octant 0
	view := NeighborView[int32]{Grid: g, CenterIndex: centerIdx}

	if s := view.Center().(voxcore.Solid[int32]); s.Value != 0 {
		t.Fatalf("center = %d, want 0", s.Value)
	}
	if c, ok := view.Get(OffsetRight); !ok || c.(voxcore.Solid[int32]).Value != 1 {
		t.Fatalf("right neighbor = %+v, want Solid(1)", c)
	}
	if c, ok := view.Get(OffsetUp); !ok || c.(voxcore.Solid[int32]).Value != 2 {
		t.Fatalf("up neighbor = %+v, want Solid(2)", c)
	}
	if c, ok := view.Get(OffsetFront); !ok || c.(voxcore.Solid[int32]).Value != 4 {
		t.Fatalf("front neighbor = %+v, want Solid(4)", c)
	}
}

func TestTraverseOctreeVisitsOnlyLeaves(t *testing.T) {
	var children [8]voxcore.Cube[int32]
	for i := range children {
		children[i] = voxcore.NewSolid(int32(i))
	}
	root := voxcore.NewBranch(children)
	g := NewNeighborGrid(root, [4]int32{0, 0, 0, 0})

	var visited []int32
	TraverseOctree(g, 3, func(view NeighborView[int32], coord voxcore.CubeCoord, subleaf bool) bool {
		visited = append(visited, view.Center().(voxcore.Solid[int32]).Value)
		if !subleaf {
			t.Fatal("leaf reported as non-subleaf at depth > 0")
		}
		return false
	})
	if len(visited) != 8 {
		t.Fatalf("len(visited) = %d, want 8 (one call per octant, no subdivision)", len(visited))
	}
}

func TestTraverseOctreeSubdivides(t *testing.T) {
	root := voxcore.NewSolid[int32](7)
	g := NewNeighborGrid(root, [4]int32{0, 0, 0, 0})

	depth0Count := 0
	TraverseOctree(g, 1, func(view NeighborView[int32], coord voxcore.CubeCoord, subleaf bool) bool {
		if coord.Depth == 0 {
			depth0Count++
			return false
		}
		return true // request subdivision
	})
	if depth0Count != 64 {
		t.Fatalf("depth0Count = %d, want 64 (8 octants x 8 sub-octants)", depth0Count)
	}
}

func TestTraverseOctreeStopsAtMaxDepth(t *testing.T) {
	root := voxcore.NewSolid[int32](7)
	g := NewNeighborGrid(root, [4]int32{0, 0, 0, 0})

	calls := 0
	TraverseOctree(g, 0, func(view NeighborView[int32], coord voxcore.CubeCoord, subleaf bool) bool {
		calls++
		if subleaf {
			t.Fatal("subleaf must be false at max depth")
		}
		return true // ignored: depth 0 never subdivides further
	})
	if calls != 8 {
		t.Fatalf("calls = %d, want 8", calls)
	}
}
