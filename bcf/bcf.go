package bcf

// Magic is the little-endian header magic, spelling "BCF1" in ASCII.
const Magic uint32 = 0x42434631

// Version is the only header version this package writes or accepts.
const Version byte = 1

const headerSize = 12

// Type IDs, the high nibble of a node's type byte once the high bit
// (inline-leaf flag) is set.
const (
	typeExtendedLeaf byte = 0x8
	typeOctaLeaves   byte = 0x9
	typeOctaPointers byte = 0xA
)

// A type byte with its high bit clear is an inline leaf: the whole byte,
// 0..127, is the value. This is checked before the TTTT/SSSS split below,
// since it is not itself an SSSS-parameterized type.
const inlineLeafMask byte = 0x80
