package bcf

import (
	"bytes"
	"encoding/binary"
	"hash/maphash"
	"math/bits"

	"github.com/soypat/voxcore"
)

// Serialize encodes root as a complete BCF file: a 12-byte header
// followed by the node table, with structurally identical subtrees
// deduplicated to a single offset.
func Serialize(root voxcore.Cube[uint8]) ([]byte, error) {
	s := &serializer{
		buf:   make([]byte, headerSize),
		seed:  maphash.MakeSeed(),
		table: make(map[uint64][]dedupEntry),
	}
	rootOffset, err := s.writeCube(root, 0)
	if err != nil {
		return nil, err
	}
	binary.LittleEndian.PutUint32(s.buf[0:4], Magic)
	s.buf[4] = Version
	// bytes 5,6,7 stay zero (reserved)
	binary.LittleEndian.PutUint32(s.buf[8:12], rootOffset)
	return s.buf, nil
}

type dedupEntry struct {
	bytes  []byte
	offset uint32
}

type serializer struct {
	buf   []byte
	seed  maphash.Seed
	table map[uint64][]dedupEntry
}

func (s *serializer) writeCube(c voxcore.Cube[uint8], depth int) (uint32, error) {
	if depth > MaxRecursionDepth {
		return 0, RecursionLimitError{MaxDepth: MaxRecursionDepth}
	}

	switch v := c.(type) {
	case voxcore.Solid[uint8]:
		return s.intern(encodeSolid(v.Value))

	case voxcore.Branch[uint8]:
		if allSolid(v.Children) {
			node := make([]byte, 1+8)
			node[0] = typeOctaLeaves << 4
			for i, ch := range v.Children {
				node[1+i] = ch.(voxcore.Solid[uint8]).Value
			}
			return s.intern(node)
		}

		var offsets [8]uint32
		for i, ch := range v.Children {
			off, err := s.writeCube(ch, depth+1)
			if err != nil {
				return 0, err
			}
			offsets[i] = off
		}
		width := pointerWidth(offsets)
		node := make([]byte, 1+8*width)
		node[0] = (typeOctaPointers << 4) | byte(bits.TrailingZeros(uint(width)))
		for i, off := range offsets {
			putUintLE(node[1+i*width:1+(i+1)*width], uint64(off))
		}
		return s.intern(node)

	default:
		// Plane and Slice: not representable in BCF; fall back to
		// Solid(zero), matching the core's own documented fallback rule.
		return s.intern(encodeSolid(0))
	}
}

func allSolid(children [8]voxcore.Cube[uint8]) bool {
	for _, ch := range children {
		if _, ok := ch.(voxcore.Solid[uint8]); !ok {
			return false
		}
	}
	return true
}

func encodeSolid(value uint8) []byte {
	if value < 128 {
		return []byte{value}
	}
	return []byte{typeExtendedLeaf << 4, value}
}

// pointerWidth picks the smallest of {1,2,4,8} bytes that can hold every
// offset.
func pointerWidth(offsets [8]uint32) int {
	width := 1
	for _, off := range offsets {
		for width < 8 && off >= uint32(1)<<(8*uint(width)) {
			width *= 2
		}
	}
	return width
}

func putUintLE(dst []byte, v uint64) {
	for i := range dst {
		dst[i] = byte(v >> (8 * uint(i)))
	}
}

func (s *serializer) intern(node []byte) (uint32, error) {
	var h maphash.Hash
	h.SetSeed(s.seed)
	h.Write(node)
	key := h.Sum64()

	for _, e := range s.table[key] {
		if bytes.Equal(e.bytes, node) {
			return e.offset, nil
		}
	}
	offset := uint32(len(s.buf))
	s.buf = append(s.buf, node...)
	s.table[key] = append(s.table[key], dedupEntry{bytes: node, offset: offset})
	return offset, nil
}
