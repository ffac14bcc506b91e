// Package voxcore implements a persistent, structurally-shared voxel
// octree: the Cube sum type, octant indexing, and the structural
// operations (set, swap, mirror, collect) used by every other package in
// this module (bcf, raycast, traversal, mesh, collide).
//
// A Cube is immutable once constructed; mutation (SetVoxel, ApplySwap,
// ApplyMirror) always returns a new root while sharing every untouched
// subtree with its predecessor. Go's garbage collector gives the O(1)
// clone persistent data structures require: a Cube value is a small
// interface handle, never deep-copied by assignment.
package voxcore

import "fmt"

// Axis names a coordinate axis, used by the optional Plane/Slice
// subdivision variants.
type Axis uint8

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	case AxisZ:
		return "z"
	default:
		return fmt.Sprintf("Axis(%d)", uint8(a))
	}
}

// AxisFromChar converts 'x'/'y'/'z' (either case) to an Axis.
func AxisFromChar(c byte) (Axis, bool) {
	switch c {
	case 'x', 'X':
		return AxisX, true
	case 'y', 'Y':
		return AxisY, true
	case 'z', 'Z':
		return AxisZ, true
	default:
		return 0, false
	}
}

// Cube is one node of a voxel octree, polymorphic over a leaf value type
// T (typically uint8 for material id, or int32 for debug/test fixtures).
// It is one of Solid, Branch, Plane, or Slice. Types outside this package
// must not implement Cube themselves; use the constructors below.
type Cube[T any] interface {
	isCube()
}

// Solid is a homogeneous region of value Value. All eight conceptual
// octants of a Solid share the same value; expansion into a Branch is
// lazy and only happens when SetVoxel or BCF decoding needs to descend.
type Solid[T any] struct {
	Value T
}

func (Solid[T]) isCube() {}

// NewSolid constructs a Solid leaf cube.
func NewSolid[T any](value T) Cube[T] {
	return Solid[T]{Value: value}
}

// Branch is an octant subdivision: exactly eight children, indexed by the
// canonical octant_index = (z<<2)|(y<<1)|x ordering (octant 0 is the
// (-,-,-) corner, octant 7 the (+,+,+) corner).
type Branch[T any] struct {
	Children [8]Cube[T]
}

func (Branch[T]) isCube() {}

// NewBranch constructs a Branch cube from exactly eight children.
func NewBranch[T any](children [8]Cube[T]) Cube[T] {
	return Branch[T]{Children: children}
}

// Quad is a 2-D analogue of Cube, used only inside Plane. It is either
// QuadSolid or QuadQuads (a quadtree of four children).
type Quad[T any] interface {
	isQuad()
}

// QuadSolid is a homogeneous 2-D region.
type QuadSolid[T any] struct {
	Value T
}

func (QuadSolid[T]) isQuad() {}

// QuadQuads subdivides a Quad into four children.
type QuadQuads[T any] struct {
	Children [4]Quad[T]
}

func (QuadQuads[T]) isQuad() {}

// Plane is a degenerate 2-D subdivision (a quadtree) along one axis
// perpendicular to Axis. Optional: components that do not support Plane
// must serialize it as Solid(zero value) — see bcf.Serialize.
type Plane[T any] struct {
	Axis Axis
	Quad Quad[T]
}

func (Plane[T]) isCube() {}

// Slice is a degenerate 1-D subdivision: an ordered stack of cubes along
// Axis. Optional, with the same Solid(zero value) fallback rule as Plane.
type Slice[T any] struct {
	Axis   Axis
	Layers []Cube[T]
}

func (Slice[T]) isCube() {}

// OctantCharToIndex converts an octant letter ('a'..'h') to its index
// (0..8), used by path-literal CLI syntax (e.g. "abc" = octant a, then
// b, then c).
func OctantCharToIndex(c byte) (int, bool) {
	if c < 'a' || c > 'h' {
		return 0, false
	}
	return int(c - 'a'), true
}

// OctantIndexToChar is the inverse of OctantCharToIndex.
func OctantIndexToChar(index int) (byte, bool) {
	if index < 0 || index > 7 {
		return 0, false
	}
	return 'a' + byte(index), true
}

// GetChild returns the child of a Branch at octant index (0..8). It
// returns (nil, false) if c is not a Branch or index is out of range.
func GetChild[T any](c Cube[T], index int) (Cube[T], bool) {
	if index < 0 || index >= 8 {
		return nil, false
	}
	b, ok := c.(Branch[T])
	if !ok {
		return nil, false
	}
	return b.Children[index], true
}

// GetAtPath walks a sequence of octant indices from c, returning the
// descendant cube, or (nil, false) if the path is empty or any step is
// invalid.
func GetAtPath[T any](c Cube[T], path []int) (Cube[T], bool) {
	if len(path) == 0 {
		return nil, false
	}
	cur, ok := GetChild(c, path[0])
	if !ok {
		return nil, false
	}
	for _, idx := range path[1:] {
		cur, ok = GetChild(cur, idx)
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

// IsLeaf reports whether c is not subdivided (Solid, or Plane/Slice which
// are treated as opaque leaves by traversal and raycast).
func IsLeaf[T any](c Cube[T]) bool {
	_, isBranch := c.(Branch[T])
	return !isBranch
}

// Equal reports whether a and b are structurally equal: same variant,
// same value(s), and (for Branch) pointwise-equal children. This is the
// identity notion BCF deduplication and round-trip tests use — it is
// independent of whether two equal subtrees happen to share an
// allocation.
func Equal[T comparable](a, b Cube[T]) bool {
	switch av := a.(type) {
	case Solid[T]:
		bv, ok := b.(Solid[T])
		return ok && av.Value == bv.Value
	case Branch[T]:
		bv, ok := b.(Branch[T])
		if !ok {
			return false
		}
		for i := range av.Children {
			if !Equal(av.Children[i], bv.Children[i]) {
				return false
			}
		}
		return true
	case Plane[T]:
		bv, ok := b.(Plane[T])
		return ok && av.Axis == bv.Axis && quadEqual(av.Quad, bv.Quad)
	case Slice[T]:
		bv, ok := b.(Slice[T])
		if !ok || av.Axis != bv.Axis || len(av.Layers) != len(bv.Layers) {
			return false
		}
		for i := range av.Layers {
			if !Equal(av.Layers[i], bv.Layers[i]) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

func quadEqual[T comparable](a, b Quad[T]) bool {
	switch av := a.(type) {
	case QuadSolid[T]:
		bv, ok := b.(QuadSolid[T])
		return ok && av.Value == bv.Value
	case QuadQuads[T]:
		bv, ok := b.(QuadQuads[T])
		if !ok {
			return false
		}
		for i := range av.Children {
			if !quadEqual(av.Children[i], bv.Children[i]) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
