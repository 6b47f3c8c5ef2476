// Package pager implements the Pager: the component owning a database
// file's FileHandle, page cache, and page-type directory, and mediating
// every page read, pragma change, and commit. Grounded on pager.h/pager.c
// (header layout, Pragma/DBState fields, create/init/init_file lifecycle)
// and chirst-cdb/pager/pager.go's Pager-as-central-coordinator shape.
package pager

import "github.com/wardlem/fabricdb/byteorder"

// HeaderSize is the fixed size, in bytes, of the file header occupying
// the first 100 bytes of page 1.
const HeaderSize = 100

// MinPageSize and MaxPageSize bound the valid pageSize pragma.
const (
	MinPageSize = 512
	MaxPageSize = 65536
)

// magic is the literal 16-byte signature every valid database file
// begins with.
var magic = [16]byte{'F', 'a', 'b', 'r', 'i', 'c', 'D', 'B', ' ', 'v', 'e', 'r', 's', ' ', '0', '1'}

const (
	offApplicationID          = 16
	offApplicationVersion     = 20
	offPageSize               = 24
	offWriteFormatVersion     = 28
	offReadFormatVersion      = 29
	offBytesReserved          = 30
	offChangeCounter          = 32
	offPageCount              = 36
	offFreePageCount          = 40
	offSchemaCookie           = 44
	offDefCacheSize           = 48
	offDefAutoVacuum          = 52
	offDefAutoVacuumThreshold = 53
)

// validPageSize reports whether v is a legal pageSize pragma value.
func validPageSize(v uint32) bool {
	return v >= MinPageSize && v <= MaxPageSize
}

// header is the decoded form of the first HeaderSize bytes of page 1.
type header struct {
	applicationID          uint32
	applicationVersion     uint32
	pageSize               uint32
	writeFormatVersion     uint8
	readFormatVersion      uint8
	bytesReserved          uint8
	changeCounter          uint32
	pageCount              uint32
	freePageCount          uint32
	schemaCookie           uint32
	defCacheSize           uint32
	defAutoVacuum          uint8
	defAutoVacuumThreshold uint8
}

// encode serializes h into the first HeaderSize bytes of dst.
func (h header) encode(dst []byte) {
	copy(dst[0:16], magic[:])
	byteorder.ToLEU32(dst[offApplicationID:], h.applicationID)
	byteorder.ToLEU32(dst[offApplicationVersion:], h.applicationVersion)
	byteorder.ToLEU32(dst[offPageSize:], h.pageSize)
	dst[offWriteFormatVersion] = h.writeFormatVersion
	dst[offReadFormatVersion] = h.readFormatVersion
	dst[offBytesReserved] = h.bytesReserved
	byteorder.ToLEU32(dst[offChangeCounter:], h.changeCounter)
	byteorder.ToLEU32(dst[offPageCount:], h.pageCount)
	byteorder.ToLEU32(dst[offFreePageCount:], h.freePageCount)
	byteorder.ToLEU32(dst[offSchemaCookie:], h.schemaCookie)
	byteorder.ToLEU32(dst[offDefCacheSize:], h.defCacheSize)
	dst[offDefAutoVacuum] = h.defAutoVacuum
	dst[offDefAutoVacuumThreshold] = h.defAutoVacuumThreshold
}

// validMagic reports whether the first 16 bytes of src match the file
// signature.
func validMagic(src []byte) bool {
	for i := 0; i < 16; i++ {
		if src[i] != magic[i] {
			return false
		}
	}
	return true
}

// decodeHeader parses the first HeaderSize bytes of src into a header.
// The caller must have already validated the magic; the decoded page size
// is not checked here.
func decodeHeader(src []byte) header {
	return header{
		applicationID:          byteorder.FromLEU32(src[offApplicationID:]),
		applicationVersion:     byteorder.FromLEU32(src[offApplicationVersion:]),
		pageSize:               byteorder.FromLEU32(src[offPageSize:]),
		writeFormatVersion:     src[offWriteFormatVersion],
		readFormatVersion:      src[offReadFormatVersion],
		bytesReserved:          src[offBytesReserved],
		changeCounter:          byteorder.FromLEU32(src[offChangeCounter:]),
		pageCount:              byteorder.FromLEU32(src[offPageCount:]),
		freePageCount:          byteorder.FromLEU32(src[offFreePageCount:]),
		schemaCookie:           byteorder.FromLEU32(src[offSchemaCookie:]),
		defCacheSize:           byteorder.FromLEU32(src[offDefCacheSize:]),
		defAutoVacuum:          src[offDefAutoVacuum],
		defAutoVacuumThreshold: src[offDefAutoVacuumThreshold],
	}
}
