package raycast

import (
	"testing"

	"github.com/soypat/geometry/ms3"
	"github.com/soypat/voxcore"
)

func isZero(v int32) bool { return v == 0 }

func TestRaycastSolidFromBelow(t *testing.T) {
	c := voxcore.NewSolid[int32](1)
	hit, ok := Raycast(c, ms3.Vec{X: 0, Y: 0, Z: -2}, ms3.Vec{X: 0, Y: 0, Z: 1}, 3, isZero)
	if !ok {
		t.Fatal("expected hit")
	}
	if hit.NormalAxis != voxcore.AxisZ || hit.NormalSign != -1 {
		t.Fatalf("normal = %s*%v, want z*-1", hit.NormalAxis, hit.NormalSign)
	}
	if hit.Coord.Depth != 3 {
		t.Fatalf("coord.Depth = %d, want 3", hit.Coord.Depth)
	}
}

func TestRaycastSolidFromSide(t *testing.T) {
	c := voxcore.NewSolid[int32](1)
	hit, ok := Raycast(c, ms3.Vec{X: -2, Y: 0, Z: 0}, ms3.Vec{X: 1, Y: 0, Z: 0}, 3, isZero)
	if !ok {
		t.Fatal("expected hit")
	}
	if hit.NormalAxis != voxcore.AxisX || hit.NormalSign != -1 {
		t.Fatalf("normal = %s*%v, want x*-1", hit.NormalAxis, hit.NormalSign)
	}
}

func TestRaycastSolidFromTop(t *testing.T) {
	c := voxcore.NewSolid[int32](1)
	hit, ok := Raycast(c, ms3.Vec{X: 0, Y: 2, Z: 0}, ms3.Vec{X: 0, Y: -1, Z: 0}, 3, isZero)
	if !ok {
		t.Fatal("expected hit")
	}
	if hit.NormalAxis != voxcore.AxisY || hit.NormalSign != 1 {
		t.Fatalf("normal = %s*%v, want y*+1", hit.NormalAxis, hit.NormalSign)
	}
}

func TestRaycastEmptyMisses(t *testing.T) {
	c := voxcore.NewSolid[int32](0)
	_, ok := Raycast(c, ms3.Vec{X: 0, Y: 0, Z: -2}, ms3.Vec{X: 0, Y: 0, Z: 1}, 3, isZero)
	if ok {
		t.Fatal("empty solid must not report a hit")
	}
}

func TestRaycastOutsideGoingAwayMisses(t *testing.T) {
	c := voxcore.NewSolid[int32](1)
	_, ok := Raycast(c, ms3.Vec{X: 3, Y: 0, Z: 0}, ms3.Vec{X: 1, Y: 0, Z: 0}, 3, isZero)
	if ok {
		t.Fatal("ray starting outside and moving away must miss")
	}
}

func TestRaycastOctantSelection(t *testing.T) {
	var children [8]voxcore.Cube[int32]
	children[0] = voxcore.NewSolid[int32](1) // octant 0: (-,-,-), solid
	for i := 1; i < 8; i++ {
		children[i] = voxcore.NewSolid[int32](0)
	}
	c := voxcore.NewBranch(children)

	// A ray through the (-,-,-) octant along +Z should hit octant 0.
	hit, ok := Raycast(c, ms3.Vec{X: -0.5, Y: -0.5, Z: -2}, ms3.Vec{X: 0, Y: 0, Z: 1}, 1, isZero)
	if !ok {
		t.Fatal("expected hit in solid octant 0")
	}
	if hit.Coord.Depth != 0 {
		t.Fatalf("coord.Depth = %d, want 0 (leaf)", hit.Coord.Depth)
	}

	// A ray through the (+,+,+) octant (all empty) should miss entirely.
	_, ok = Raycast(c, ms3.Vec{X: 0.5, Y: 0.5, Z: -2}, ms3.Vec{X: 0, Y: 0, Z: 1}, 1, isZero)
	if ok {
		t.Fatal("ray through an all-empty octant must miss")
	}
}

func TestRaycastStepsAcrossOctants(t *testing.T) {
	// Octant 0 ((-,-,-)) empty, octant 1 ((+,-,-)) solid: a ray entering
	// through octant 0 along +X must step across the midline and hit
	// octant 1.
	var children [8]voxcore.Cube[int32]
	children[0] = voxcore.NewSolid[int32](0)
	children[1] = voxcore.NewSolid[int32](1)
	for i := 2; i < 8; i++ {
		children[i] = voxcore.NewSolid[int32](0)
	}
	c := voxcore.NewBranch(children)

	var trace DebugTrace
	hit, ok := RaycastDebug(c, ms3.Vec{X: -2, Y: -0.5, Z: -0.5}, ms3.Vec{X: 1, Y: 0, Z: 0}, 1, isZero, &trace)
	if !ok {
		t.Fatal("expected hit after stepping into octant 1")
	}
	if hit.NormalAxis != voxcore.AxisX {
		t.Fatalf("normal axis = %s, want x (stepped across the x midline)", hit.NormalAxis)
	}
	if trace.EnterCount < 2 {
		t.Fatalf("EnterCount = %d, want >= 2 (root + at least one child descent)", trace.EnterCount)
	}
}

func TestHitNormalVector(t *testing.T) {
	h := Hit{NormalAxis: voxcore.AxisY, NormalSign: -1}
	n := h.Normal()
	if n.X != 0 || n.Y != -1 || n.Z != 0 {
		t.Fatalf("Normal() = %+v, want (0,-1,0)", n)
	}
}
