package record

import "github.com/wardlem/fabricdb/byteorder"

// EdgeDiskSize is the on-disk size of an Edge record.
const EdgeDiskSize = 29

// Edge is a graph relationship: a symbol-typed label, an inline value,
// the vertices it connects, and the next edge in each endpoint's
// adjacency list.
type Edge struct {
	ID             uint32
	SymbolID       uint32
	Value          Property
	FromVertexID   uint32
	ToVertexID     uint32
	FromNextEdgeID uint32
	ToNextEdgeID   uint32
}

// LoadEdge decodes an Edge from the first EdgeDiskSize bytes of src,
// tagging it with the externally-known id.
func LoadEdge(id uint32, src []byte) Edge {
	return Edge{
		ID:             id,
		SymbolID:       byteorder.FromLEU32(src[0:4]),
		Value:          LoadProperty(src[4:13]),
		FromVertexID:   byteorder.FromLEU32(src[13:17]),
		ToVertexID:     byteorder.FromLEU32(src[17:21]),
		FromNextEdgeID: byteorder.FromLEU32(src[21:25]),
		ToNextEdgeID:   byteorder.FromLEU32(src[25:29]),
	}
}

// Unload encodes e into the first EdgeDiskSize bytes of dst.
func (e Edge) Unload(dst []byte) {
	byteorder.ToLEU32(dst[0:4], e.SymbolID)
	e.Value.Unload(dst[4:13])
	byteorder.ToLEU32(dst[13:17], e.FromVertexID)
	byteorder.ToLEU32(dst[17:21], e.ToVertexID)
	byteorder.ToLEU32(dst[21:25], e.FromNextEdgeID)
	byteorder.ToLEU32(dst[25:29], e.ToNextEdgeID)
}
