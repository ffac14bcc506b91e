// Package bcf implements the Binary Cube Format: a self-describing binary
// codec for voxcore.Cube[uint8] trees, with content-hash deduplication and
// variable-width child pointers.
package bcf

import "fmt"

// MaxRecursionDepth bounds both parse and serialize: trees nested deeper
// than this are rejected, bounding stack usage against malicious or
// corrupt input.
const MaxRecursionDepth = 64

// TruncatedDataError reports that the buffer ended before a header or
// node could be fully read.
type TruncatedDataError struct {
	ExpectedBytes  int
	AvailableBytes int
}

func (e TruncatedDataError) Error() string {
	return fmt.Sprintf("bcf: truncated data: expected %d bytes, have %d", e.ExpectedBytes, e.AvailableBytes)
}

// InvalidMagicError reports a header whose first four bytes are not the
// BCF magic number.
type InvalidMagicError struct {
	Expected uint32
	Found    uint32
}

func (e InvalidMagicError) Error() string {
	return fmt.Sprintf("bcf: invalid magic: expected %#08x, found %#08x", e.Expected, e.Found)
}

// UnsupportedVersionError reports a header version byte this package
// does not know how to read.
type UnsupportedVersionError struct {
	Found byte
}

func (e UnsupportedVersionError) Error() string {
	return fmt.Sprintf("bcf: unsupported version %d", e.Found)
}

// InvalidOffsetError reports a root or child pointer outside the file.
type InvalidOffsetError struct {
	Offset   uint64
	FileSize uint64
}

func (e InvalidOffsetError) Error() string {
	return fmt.Sprintf("bcf: invalid offset %d (file size %d)", e.Offset, e.FileSize)
}

// RecursionLimitError reports a tree nested past MaxRecursionDepth, on
// either the parse or the serialize side.
type RecursionLimitError struct {
	MaxDepth int
}

func (e RecursionLimitError) Error() string {
	return fmt.Sprintf("bcf: recursion limit exceeded (max depth %d)", e.MaxDepth)
}

// UnsupportedParameterError reports a type byte whose SSSS parameter
// nibble is out of range for its type, or a reserved type ID (0xB,
// 0xC..0xF).
type UnsupportedParameterError struct {
	TypeID    byte
	Parameter byte
}

func (e UnsupportedParameterError) Error() string {
	return fmt.Sprintf("bcf: unsupported type/parameter: type=%#x param=%#x", e.TypeID, e.Parameter)
}
