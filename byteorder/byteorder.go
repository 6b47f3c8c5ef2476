// Package byteorder provides explicit little-endian encode/decode helpers
// for the fixed-width integer and float fields that make up the on-disk
// format. FabricDB's file format is little-endian by contract regardless of
// host endianness, so every multi-byte field on disk must pass through one
// of these functions rather than through an aliased pointer cast.
package byteorder

import (
	"encoding/binary"
	"math"
)

// ToLEU16 encodes v into dst[0:2] as little-endian.
func ToLEU16(dst []byte, v uint16) {
	binary.LittleEndian.PutUint16(dst, v)
}

// FromLEU16 decodes a little-endian uint16 from src[0:2].
func FromLEU16(src []byte) uint16 {
	return binary.LittleEndian.Uint16(src)
}

// ToLEU32 encodes v into dst[0:4] as little-endian.
func ToLEU32(dst []byte, v uint32) {
	binary.LittleEndian.PutUint32(dst, v)
}

// FromLEU32 decodes a little-endian uint32 from src[0:4].
func FromLEU32(src []byte) uint32 {
	return binary.LittleEndian.Uint32(src)
}

// ToLEU64 encodes v into dst[0:8] as little-endian.
func ToLEU64(dst []byte, v uint64) {
	binary.LittleEndian.PutUint64(dst, v)
}

// FromLEU64 decodes a little-endian uint64 from src[0:8].
func FromLEU64(src []byte) uint64 {
	return binary.LittleEndian.Uint64(src)
}

// ToLEI16 encodes v into dst[0:2] as little-endian.
func ToLEI16(dst []byte, v int16) { ToLEU16(dst, uint16(v)) }

// FromLEI16 decodes a little-endian int16 from src[0:2].
func FromLEI16(src []byte) int16 { return int16(FromLEU16(src)) }

// ToLEI32 encodes v into dst[0:4] as little-endian.
func ToLEI32(dst []byte, v int32) { ToLEU32(dst, uint32(v)) }

// FromLEI32 decodes a little-endian int32 from src[0:4].
func FromLEI32(src []byte) int32 { return int32(FromLEU32(src)) }

// ToLEI64 encodes v into dst[0:8] as little-endian.
func ToLEI64(dst []byte, v int64) { ToLEU64(dst, uint64(v)) }

// FromLEI64 decodes a little-endian int64 from src[0:8].
func FromLEI64(src []byte) int64 { return int64(FromLEU64(src)) }

// ToLEF64 encodes v into dst[0:8] as little-endian IEEE-754.
func ToLEF64(dst []byte, v float64) {
	ToLEU64(dst, math.Float64bits(v))
}

// FromLEF64 decodes a little-endian IEEE-754 float64 from src[0:8].
func FromLEF64(src []byte) float64 {
	return math.Float64frombits(FromLEU64(src))
}

// Memrev16 reverses the byte order of a 16-bit value, matching the
// original library's memrev16 primitive.
func Memrev16(v uint16) uint16 {
	return v>>8 | v<<8
}

// Memrev32 reverses the byte order of a 32-bit value.
func Memrev32(v uint32) uint32 {
	return v>>24&0xff | v>>8&0xff00 | v<<8&0xff0000 | v<<24&0xff000000
}

// Memrev64 reverses the byte order of a 64-bit value.
func Memrev64(v uint64) uint64 {
	return v>>56&0xff |
		v>>40&0xff00 |
		v>>24&0xff0000 |
		v>>8&0xff000000 |
		v<<8&0xff00000000 |
		v<<24&0xff0000000000 |
		v<<40&0xff000000000000 |
		v<<56&0xff00000000000000
}
