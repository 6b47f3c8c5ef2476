package record

import "github.com/wardlem/fabricdb/byteorder"

// DocumentDiskSize is the on-disk size of a Document record.
const DocumentDiskSize = LabeledPropertyDiskSize + 8

// Document is one node of a singly-linked list of labeled property
// entries, i.e. one key/value pair in a document object plus a pointer
// to the next pair.
type Document struct {
	ID          uint64
	Entry       LabeledProperty
	NextEntryID uint64
}

// LoadDocument decodes a Document from the first DocumentDiskSize bytes
// of src.
func LoadDocument(id uint64, src []byte) Document {
	return Document{
		ID:          id,
		Entry:       LoadLabeledProperty(src[0:13]),
		NextEntryID: byteorder.FromLEU64(src[13:21]),
	}
}

// Unload encodes d into the first DocumentDiskSize bytes of dst.
func (d Document) Unload(dst []byte) {
	d.Entry.Unload(dst[0:13])
	byteorder.ToLEU64(dst[13:21], d.NextEntryID)
}
