package record

import "github.com/wardlem/fabricdb/byteorder"

// SymbolDiskSize is the on-disk size of a Symbol record.
const SymbolDiskSize = 12

// Symbol is a reference-counted interned string, addressed by a u32 id
// external to the record itself (the id is the record's slot number, not
// part of its on-disk bytes). Used for vertex/edge labels, document
// property keys, and as a fast-compare property value.
type Symbol struct {
	ID       uint32
	RefCount uint32
	StringID uint64
}

// LoadSymbol decodes a Symbol from the first SymbolDiskSize bytes of src,
// tagging it with the externally-known id.
func LoadSymbol(id uint32, src []byte) Symbol {
	return Symbol{
		ID:       id,
		RefCount: byteorder.FromLEU32(src[0:4]),
		StringID: byteorder.FromLEU64(src[4:12]),
	}
}

// Unload encodes s into the first SymbolDiskSize bytes of dst.
func (s Symbol) Unload(dst []byte) {
	byteorder.ToLEU32(dst[0:4], s.RefCount)
	byteorder.ToLEU64(dst[4:12], s.StringID)
}
