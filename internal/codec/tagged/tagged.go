// Package tagged implements the compact tagged binary format.
//
// Every value starts with a one-byte tag:
//
//	Number  0xF1  tag, fixed-width big-endian value
//	String  0xF2  tag, u32 BE length, raw bytes
//	Array   0xF3  tag, u32 BE element count, each element with its own tag
//	Model   0xF4  tag, each field in declaration order
//
// Numbers do not record their width or signedness. Reader and writer must agree
// on the declared field type; reading a value at a different width than it was
// written desynchronizes every value after it.
package tagged

import (
	"encoding/binary"
	"math"
)

// Tag IDs from the wire contract.
const (
	TagNumber byte = 0xF1
	TagString byte = 0xF2
	TagArray  byte = 0xF3
	TagModel  byte = 0xF4
)

// LengthLen is the size of a string length or array count.
const LengthLen = 4

// Limits constrains lengths written to or accepted from the wire.
type Limits struct {
	// MaxLength caps string lengths and array counts. Values above
	// math.MaxUint32 are clamped since the wire field is 32 bits.
	MaxLength uint64
}

func DefaultLimits() Limits {
	return Limits{MaxLength: math.MaxUint32}
}

func (l Limits) maxLength() uint64 {
	if l.MaxLength == 0 || l.MaxLength > math.MaxUint32 {
		return math.MaxUint32
	}
	return l.MaxLength
}

func tagName(tag byte) string {
	switch tag {
	case TagNumber:
		return "number"
	case TagString:
		return "string"
	case TagArray:
		return "array"
	case TagModel:
		return "model"
	default:
		return "unknown"
	}
}

// HostByteOrder reports the byte order of the running machine. The codec
// always writes big-endian through explicit conversions, so this is only
// informational.
func HostByteOrder() string {
	var probe [2]byte
	binary.NativeEndian.PutUint16(probe[:], 0x0102)
	if probe[0] == 0x01 {
		return "big-endian"
	}
	return "little-endian"
}
