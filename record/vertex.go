package record

import "github.com/wardlem/fabricdb/byteorder"

// VertexDiskSize is the on-disk size of a Vertex record.
const VertexDiskSize = 21

// Vertex is a graph node: a symbol-typed label, an inline value, and the
// heads of its outgoing and incoming edge lists.
type Vertex struct {
	ID             uint32
	SymbolID       uint32
	Value          Property
	FirstOutEdgeID uint32
	FirstInEdgeID  uint32
}

// LoadVertex decodes a Vertex from the first VertexDiskSize bytes of src,
// tagging it with the externally-known id.
func LoadVertex(id uint32, src []byte) Vertex {
	return Vertex{
		ID:             id,
		SymbolID:       byteorder.FromLEU32(src[0:4]),
		Value:          LoadProperty(src[4:13]),
		FirstOutEdgeID: byteorder.FromLEU32(src[13:17]),
		FirstInEdgeID:  byteorder.FromLEU32(src[17:21]),
	}
}

// Unload encodes v into the first VertexDiskSize bytes of dst.
func (v Vertex) Unload(dst []byte) {
	byteorder.ToLEU32(dst[0:4], v.SymbolID)
	v.Value.Unload(dst[4:13])
	byteorder.ToLEU32(dst[13:17], v.FirstOutEdgeID)
	byteorder.ToLEU32(dst[17:21], v.FirstInEdgeID)
}
