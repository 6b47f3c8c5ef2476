package record

import "github.com/wardlem/fabricdb/byteorder"

// FStringChunkSize is the granularity FString records are laid out in:
// a 4-byte size header followed by data padded up to a multiple of this
// chunk size.
const FStringChunkSize = 32

// FStringHeaderSize is the size of the size-prefix at the start of an
// FString record.
const FStringHeaderSize = 4

// FString is a variable-length string value, chunked on disk so that
// appends can grow a record's footprint by whole chunks without
// relocating what's already written.
type FString struct {
	ID   uint64
	Size uint32
	Data []byte
}

// FStringDiskSize returns the number of bytes an FString of the given
// string size occupies on disk: the 4-byte header plus size rounded up
// to the next chunk boundary.
func FStringDiskSize(size uint32) uint32 {
	total := FStringHeaderSize + size
	rem := total % FStringChunkSize
	if rem == 0 {
		return total
	}
	return total + (FStringChunkSize - rem)
}

// LoadFString decodes an FString from src, which must be at least
// FStringDiskSize(size) bytes where size is the value stored at offset
// 0.
func LoadFString(id uint64, src []byte) FString {
	size := byteorder.FromLEU32(src[0:4])
	data := make([]byte, size)
	copy(data, src[FStringHeaderSize:FStringHeaderSize+size])
	return FString{ID: id, Size: size, Data: data}
}

// Unload encodes f into dst, which must be at least FStringDiskSize(f.Size)
// bytes. Any trailing bytes beyond the string's data, up to the next
// chunk boundary, are zero-filled.
func (f FString) Unload(dst []byte) {
	byteorder.ToLEU32(dst[0:4], f.Size)
	n := copy(dst[FStringHeaderSize:], f.Data)
	for i := FStringHeaderSize + n; i < len(dst); i++ {
		dst[i] = 0
	}
}

// String returns the FString's data interpreted as a Go string.
func (f FString) String() string {
	return string(f.Data)
}
