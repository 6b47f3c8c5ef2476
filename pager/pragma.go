package pager

import "github.com/wardlem/fabricdb/ferrors"

// PageSize returns the page size pragma in effect.
func (p *Pager) PageSize() uint32 {
	return p.hdr.pageSize
}

// SetPageSize sets the page size pragma. Only legal before the pager is
// bound to a file via Create or Init; afterward it always fails with
// MisusePragma, since the page size is fixed for the lifetime of a
// database file.
func (p *Pager) SetPageSize(size uint32) error {
	if p.initialized() {
		return ferrors.New(ferrors.MisusePragma)
	}
	if !validPageSize(size) {
		return ferrors.New(ferrors.InvalidFile)
	}
	p.hdr.pageSize = size
	return nil
}

// DefCacheSize returns the persistent suggested-cache-size pragma stored
// in the header: the value a future Init will seed the session-local
// CacheSize pragma from.
func (p *Pager) DefCacheSize() int {
	return int(p.hdr.defCacheSize)
}

// SetDefCacheSize sets the persistent suggested-cache-size pragma. Only
// legal before the pager is bound to a file.
func (p *Pager) SetDefCacheSize(size int) error {
	if p.initialized() {
		return ferrors.New(ferrors.MisusePragma)
	}
	if size <= 0 {
		return ferrors.New(ferrors.InvalidFile)
	}
	p.hdr.defCacheSize = uint32(size)
	p.cacheSize = size
	return nil
}

// CacheSize returns the session-local page-cache capacity pragma
// currently in effect.
func (p *Pager) CacheSize() int {
	return p.cacheSize
}

// SetCacheSize sets the session-local page-cache capacity pragma. Unlike
// DefCacheSize, this is mutable at any time, including after Create or
// Init, per §6's "(mutable after init)" pragmas; it resizes the live
// cache immediately when the pager is already bound to a file.
func (p *Pager) SetCacheSize(size int) error {
	if size <= 0 {
		return ferrors.New(ferrors.InvalidFile)
	}
	p.cacheSize = size
	if p.cache != nil {
		p.cache.SetCapacity(size)
	}
	return nil
}

// BytesReserved returns the per-page bytes-reserved pragma: space at the
// end of every page the pager leaves untouched, for use by layers above
// it.
func (p *Pager) BytesReserved() uint8 {
	return p.hdr.bytesReserved
}

// SetBytesReserved sets the bytes-reserved pragma. Only legal before the
// pager is bound to a file.
func (p *Pager) SetBytesReserved(n uint8) error {
	if p.initialized() {
		return ferrors.New(ferrors.MisusePragma)
	}
	if uint32(n) >= p.hdr.pageSize {
		return ferrors.New(ferrors.InvalidFile)
	}
	p.hdr.bytesReserved = n
	return nil
}

// ApplicationID returns the caller-assigned application identifier
// pragma stored in the header.
func (p *Pager) ApplicationID() uint32 {
	return p.hdr.applicationID
}

// SetApplicationID sets the application identifier pragma. Only legal
// before the pager is bound to a file: it is one of the persistent
// pragmas listed in pager.h's Pragma struct, frozen at creation like
// pageSize.
func (p *Pager) SetApplicationID(id uint32) error {
	if p.initialized() {
		return ferrors.New(ferrors.MisusePragma)
	}
	p.hdr.applicationID = id
	return nil
}

// ApplicationVersion returns the caller-assigned application version
// pragma stored in the header.
func (p *Pager) ApplicationVersion() uint32 {
	return p.hdr.applicationVersion
}

// SetApplicationVersion sets the application version pragma. Only legal
// before the pager is bound to a file.
func (p *Pager) SetApplicationVersion(version uint32) error {
	if p.initialized() {
		return ferrors.New(ferrors.MisusePragma)
	}
	p.hdr.applicationVersion = version
	return nil
}

// WriteFormatVersion returns the file-format write-version pragma.
func (p *Pager) WriteFormatVersion() uint8 {
	return p.hdr.writeFormatVersion
}

// SetWriteFormatVersion sets the file-format write-version pragma. Only
// legal before the pager is bound to a file; per §6, the only valid
// value at present is 1.
func (p *Pager) SetWriteFormatVersion(version uint8) error {
	if p.initialized() {
		return ferrors.New(ferrors.MisusePragma)
	}
	if version != 1 {
		return ferrors.New(ferrors.InvalidFile)
	}
	p.hdr.writeFormatVersion = version
	return nil
}

// ReadFormatVersion returns the file-format read-version pragma.
func (p *Pager) ReadFormatVersion() uint8 {
	return p.hdr.readFormatVersion
}

// SetReadFormatVersion sets the file-format read-version pragma. Only
// legal before the pager is bound to a file; per §6, the only valid
// value at present is 1.
func (p *Pager) SetReadFormatVersion(version uint8) error {
	if p.initialized() {
		return ferrors.New(ferrors.MisusePragma)
	}
	if version != 1 {
		return ferrors.New(ferrors.InvalidFile)
	}
	p.hdr.readFormatVersion = version
	return nil
}

// DefAutoVacuum returns the persistent suggested-auto-vacuum pragma: the
// value a future Init will seed the session-local AutoVacuum pragma
// from.
func (p *Pager) DefAutoVacuum() bool {
	return p.hdr.defAutoVacuum != 0
}

// SetDefAutoVacuum sets the persistent suggested-auto-vacuum pragma.
// Only legal before the pager is bound to a file.
func (p *Pager) SetDefAutoVacuum(on bool) error {
	if p.initialized() {
		return ferrors.New(ferrors.MisusePragma)
	}
	p.hdr.defAutoVacuum = boolToU8(on)
	return nil
}

// DefAutoVacuumThreshold returns the persistent suggested-auto-vacuum-
// threshold pragma: the number of free pages that will later seed the
// session-local AutoVacuumThreshold pragma at Init.
func (p *Pager) DefAutoVacuumThreshold() uint8 {
	return p.hdr.defAutoVacuumThreshold
}

// SetDefAutoVacuumThreshold sets the persistent suggested-auto-vacuum-
// threshold pragma. Only legal before the pager is bound to a file.
func (p *Pager) SetDefAutoVacuumThreshold(n uint8) error {
	if p.initialized() {
		return ferrors.New(ferrors.MisusePragma)
	}
	p.hdr.defAutoVacuumThreshold = n
	return nil
}

// AutoVacuum returns the session-local auto-vacuum pragma currently in
// effect, seeded from DefAutoVacuum at Create/Init.
func (p *Pager) AutoVacuum() bool {
	return p.autoVacuum != 0
}

// SetAutoVacuum sets the session-local auto-vacuum pragma. Mutable at
// any time, including after Create or Init, per §6's "(mutable after
// init)" pragmas.
func (p *Pager) SetAutoVacuum(on bool) {
	p.autoVacuum = boolToU8(on)
}

// AutoVacuumThreshold returns the session-local auto-vacuum-threshold
// pragma currently in effect, seeded from DefAutoVacuumThreshold at
// Create/Init.
func (p *Pager) AutoVacuumThreshold() uint8 {
	return p.autoVacuumThreshold
}

// SetAutoVacuumThreshold sets the session-local auto-vacuum-threshold
// pragma. Mutable at any time, including after Create or Init.
func (p *Pager) SetAutoVacuumThreshold(n uint8) {
	p.autoVacuumThreshold = n
}

func boolToU8(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}

// SchemaCookie returns the schema-cookie pragma: a counter the layer
// above the pager bumps whenever the schema changes, so cached query
// plans can detect staleness.
func (p *Pager) SchemaCookie() uint32 {
	return p.hdr.schemaCookie
}

// SetSchemaCookie sets the schema-cookie pragma. Legal at any time: it
// is DBState, not a persistent Pragma field, the same way changeCounter
// and pageCount move outside of pragma validation.
func (p *Pager) SetSchemaCookie(cookie uint32) {
	p.hdr.schemaCookie = cookie
}

// ChangeCounter returns the header's change counter: 1 for a freshly
// created file, incremented by each committed write transaction.
func (p *Pager) ChangeCounter() uint32 {
	return p.hdr.changeCounter
}

// PageCount returns the highest page number the page-type directory has
// ever recorded.
func (p *Pager) PageCount() uint32 {
	return p.hdr.pageCount
}
