package record

import "github.com/wardlem/fabricdb/byteorder"

// FListDiskSize is the on-disk size of an FList record.
const FListDiskSize = PropertyDiskSize + 8

// FList is one node of a singly-linked list of property entries.
type FList struct {
	ID          uint64
	Entry       Property
	NextEntryID uint64
}

// LoadFList decodes an FList from the first FListDiskSize bytes of src.
func LoadFList(id uint64, src []byte) FList {
	return FList{
		ID:          id,
		Entry:       LoadProperty(src[0:9]),
		NextEntryID: byteorder.FromLEU64(src[9:17]),
	}
}

// Unload encodes l into the first FListDiskSize bytes of dst.
func (l FList) Unload(dst []byte) {
	l.Entry.Unload(dst[0:9])
	byteorder.ToLEU64(dst[9:17], l.NextEntryID)
}
