package bcf

import (
	"encoding/binary"

	"github.com/soypat/voxcore"
)

// Parse decodes a complete BCF file into a voxcore.Cube[uint8] tree.
func Parse(data []byte) (voxcore.Cube[uint8], error) {
	if len(data) < headerSize {
		return nil, TruncatedDataError{ExpectedBytes: headerSize, AvailableBytes: len(data)}
	}
	magic := binary.LittleEndian.Uint32(data[0:4])
	if magic != Magic {
		return nil, InvalidMagicError{Expected: Magic, Found: magic}
	}
	version := data[4]
	if version != Version {
		return nil, UnsupportedVersionError{Found: version}
	}
	rootOffset := binary.LittleEndian.Uint32(data[8:12])
	if rootOffset < headerSize || uint64(rootOffset) >= uint64(len(data)) {
		return nil, InvalidOffsetError{Offset: uint64(rootOffset), FileSize: uint64(len(data))}
	}

	p := &parser{data: data}
	return p.parseNode(uint64(rootOffset), 0)
}

type parser struct {
	data []byte
}

func (p *parser) parseNode(offset uint64, depth int) (voxcore.Cube[uint8], error) {
	if depth > MaxRecursionDepth {
		return nil, RecursionLimitError{MaxDepth: MaxRecursionDepth}
	}
	if offset >= uint64(len(p.data)) {
		return nil, InvalidOffsetError{Offset: offset, FileSize: uint64(len(p.data))}
	}
	b := p.data[offset]
	if b&inlineLeafMask == 0 {
		return voxcore.NewSolid(b), nil
	}

	typeID := b >> 4
	param := b & 0x0F

	switch typeID {
	case typeExtendedLeaf:
		if err := p.need(offset, 2); err != nil {
			return nil, err
		}
		return voxcore.NewSolid(p.data[offset+1]), nil

	case typeOctaLeaves:
		if err := p.need(offset, 1+8); err != nil {
			return nil, err
		}
		var children [8]voxcore.Cube[uint8]
		for i := 0; i < 8; i++ {
			children[i] = voxcore.NewSolid(p.data[offset+1+uint64(i)])
		}
		return voxcore.NewBranch(children), nil

	case typeOctaPointers:
		if param > 3 {
			return nil, UnsupportedParameterError{TypeID: typeID, Parameter: param}
		}
		width := 1 << param
		if err := p.need(offset, 1+8*width); err != nil {
			return nil, err
		}
		var children [8]voxcore.Cube[uint8]
		for i := 0; i < 8; i++ {
			start := offset + 1 + uint64(i*width)
			childOffset := readUintLE(p.data[start : start+uint64(width)])
			child, err := p.parseNode(childOffset, depth+1)
			if err != nil {
				return nil, err
			}
			children[i] = child
		}
		return voxcore.NewBranch(children), nil

	default:
		return nil, UnsupportedParameterError{TypeID: typeID, Parameter: param}
	}
}

// need reports a TruncatedDataError if fewer than n bytes are available
// starting at offset.
func (p *parser) need(offset uint64, n int) error {
	if offset+uint64(n) > uint64(len(p.data)) {
		return TruncatedDataError{ExpectedBytes: n, AvailableBytes: len(p.data) - int(offset)}
	}
	return nil
}

func readUintLE(b []byte) uint64 {
	var v uint64
	for i, byt := range b {
		v |= uint64(byt) << (8 * uint(i))
	}
	return v
}
