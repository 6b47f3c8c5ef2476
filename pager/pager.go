package pager

import (
	"github.com/wardlem/fabricdb/ferrors"
	"github.com/wardlem/fabricdb/fsio"
	"github.com/wardlem/fabricdb/pagecache"
	"github.com/wardlem/fabricdb/ptypedir"
)

// Default pragma values a newly created database is given, per the
// abstract API's description of fabricdb_pager_create's defaults.
const (
	DefaultPageSize           = 1024
	DefaultCacheSize          = 200
	DefaultBytesReserved      = 0
	DefaultWriteFormatVersion = 1
	DefaultReadFormatVersion  = 1
)

// Pager owns one database file's FileHandle, page cache, and page-type
// directory, mediating every page fetch, pragma change, and commit.
// Grounded on pager.h's Pager struct and chirst-cdb/pager/pager.go's
// Pager-as-central-coordinator shape, with the cache and directory
// delegated to the pagecache and ptypedir packages rather than inlined.
type Pager struct {
	fh        *fsio.FileHandle
	cache     *pagecache.Cache
	directory *ptypedir.Directory

	hdr header

	// Session-local pragmas: seeded from the persistent def* header
	// fields at Create/Init but mutable at any time afterward, per §6's
	// "(mutable after init)" pragmas.
	cacheSize           int
	autoVacuum          uint8
	autoVacuumThreshold uint8

	inWrite bool
}

// New constructs a Pager with the default pragma values and no backing
// file. Pragmas may be changed with the Set* methods until Init or
// Create is called.
func New() *Pager {
	return &Pager{
		hdr: header{
			pageSize:           DefaultPageSize,
			writeFormatVersion: DefaultWriteFormatVersion,
			readFormatVersion:  DefaultReadFormatVersion,
			bytesReserved:      DefaultBytesReserved,
			defCacheSize:       DefaultCacheSize,
		},
		cacheSize: DefaultCacheSize,
	}
}

// initialized reports whether p has already been bound to a file, after
// which pragma changes are rejected with MisusePragma.
func (p *Pager) initialized() bool {
	return p.fh != nil
}

func (p *Pager) usableSize() uint32 {
	return p.hdr.pageSize - uint32(p.hdr.bytesReserved)
}

// Create initializes a brand-new database file at filePath, writing the
// header page with the pager's current pragma values. Grounded on
// fabricdb_pager_create's file-creation and header-initialization path.
func (p *Pager) Create(filePath string) error {
	if p.initialized() {
		return ferrors.New(ferrors.MisusePragma)
	}

	fh, err := fsio.CreateFile(filePath)
	if err != nil {
		return err
	}

	p.hdr.pageCount = 1
	p.hdr.changeCounter = 1

	p.fh = fh
	p.cache = pagecache.New(p.cacheSize)
	p.directory = ptypedir.New()
	p.directory.SetType(1, ptypedir.Header)
	p.autoVacuum = p.hdr.defAutoVacuum
	p.autoVacuumThreshold = p.hdr.defAutoVacuumThreshold

	if err := p.writeHeaderPage(); err != nil {
		fsio.Close(fh)
		p.fh = nil
		p.cache = nil
		p.directory = nil
		return err
	}
	if err := fsio.Sync(fh); err != nil {
		fsio.Close(fh)
		p.fh = nil
		p.cache = nil
		p.directory = nil
		return err
	}

	return nil
}

// Init opens an existing database file at filePath, validating its
// header and loading its page-type directory. Grounded on
// fabricdb_pager_init_from_file's shared-lock-then-read-header-then-
// validate control flow.
func (p *Pager) Init(filePath string) error {
	if p.initialized() {
		return ferrors.New(ferrors.MisusePragma)
	}

	fh, err := fsio.OpenReadWrite(filePath)
	if err != nil {
		return err
	}

	if err := fsio.AcquireSharedLock(fh); err != nil {
		fsio.Close(fh)
		return err
	}

	front := make([]byte, HeaderSize)
	if err := fsio.Read(fh, front, 0); err != nil {
		fsio.Unlock(fh)
		fsio.Close(fh)
		return err
	}
	if !validMagic(front) {
		fsio.Unlock(fh)
		fsio.Close(fh)
		return ferrors.New(ferrors.InvalidFile)
	}

	hdr := decodeHeader(front)
	if !validPageSize(hdr.pageSize) {
		fsio.Unlock(fh)
		fsio.Close(fh)
		return ferrors.New(ferrors.InvalidFile)
	}

	page1 := make([]byte, hdr.pageSize)
	if err := fsio.Read(fh, page1, 0); err != nil {
		fsio.Unlock(fh)
		fsio.Close(fh)
		return err
	}

	var loadErr error
	dirSegment := page1[HeaderSize:]
	directory := ptypedir.Load(dirSegment, func(pageNo uint32) []byte {
		buf := make([]byte, hdr.pageSize)
		offset := int64(pageNo-1) * int64(hdr.pageSize)
		if err := fsio.Read(fh, buf, offset); err != nil {
			loadErr = err
			return nil
		}
		return buf
	})
	if loadErr != nil {
		fsio.Unlock(fh)
		fsio.Close(fh)
		return loadErr
	}

	if err := fsio.Unlock(fh); err != nil {
		fsio.Close(fh)
		return err
	}

	p.fh = fh
	p.hdr = hdr
	p.cacheSize = int(hdr.defCacheSize)
	if p.cacheSize == 0 {
		p.cacheSize = DefaultCacheSize
	}
	p.cache = pagecache.New(p.cacheSize)
	p.directory = directory
	p.autoVacuum = hdr.defAutoVacuum
	p.autoVacuumThreshold = hdr.defAutoVacuumThreshold

	return nil
}

// Destroy releases every resource p holds: the page cache, the page-type
// directory, and the underlying FileHandle. p must not be used again
// afterward.
func (p *Pager) Destroy() error {
	if !p.initialized() {
		return nil
	}
	err := fsio.Close(p.fh)
	p.fh = nil
	p.cache = nil
	p.directory = nil
	return err
}

// FetchPage returns the resident Page for pageNo, reading it from disk
// and inserting it into the cache on a miss. The returned Page's
// RefCount is incremented; callers must call ReleasePage when done.
func (p *Pager) FetchPage(pageNo uint32) (*pagecache.Page, error) {
	if !p.initialized() {
		return nil, ferrors.New(ferrors.MisuseNullPointer)
	}

	if page, ok := p.cache.Get(pageNo); ok {
		page.RefCount++
		return page, nil
	}

	data := make([]byte, p.hdr.pageSize)
	offset := int64(pageNo-1) * int64(p.hdr.pageSize)
	if err := fsio.Read(p.fh, data, offset); err != nil {
		return nil, err
	}

	page := &pagecache.Page{
		PageNo:     pageNo,
		PageSize:   p.hdr.pageSize,
		UsableSize: p.usableSize(),
		PageType:   uint8(p.directory.TypeOf(pageNo)),
		RefCount:   1,
		Data:       data,
	}

	if !p.cache.Put(page) {
		return nil, ferrors.New(ferrors.CacheFull)
	}

	return page, nil
}

// ReleasePage drops one reference held on page, previously obtained from
// FetchPage.
func (p *Pager) ReleasePage(page *pagecache.Page) {
	if page.RefCount > 0 {
		page.RefCount--
	}
}

// WritePage marks page dirty, to be flushed to disk on the next
// EndWrite. The caller must hold at least one reference on page and must
// be between BeginWrite and EndWrite.
func (p *Pager) WritePage(page *pagecache.Page) error {
	if !p.inWrite {
		return ferrors.New(ferrors.MisuseNullPointer)
	}
	page.Dirty = true
	p.directory.SetType(page.PageNo, ptypedir.PageType(page.PageType))
	return nil
}

// BeginRead acquires at least SharedLock, giving the caller a consistent
// read-only view of the file for the duration of the read transaction.
func (p *Pager) BeginRead() error {
	return fsio.AcquireSharedLock(p.fh)
}

// EndRead releases a read transaction begun with BeginRead.
func (p *Pager) EndRead() error {
	if p.inWrite {
		return nil
	}
	return fsio.Unlock(p.fh)
}

// BeginWrite escalates the current read lock to ReservedLock, reserving
// the right to write without yet excluding readers.
func (p *Pager) BeginWrite() error {
	if err := fsio.AcquireReservedLock(p.fh); err != nil {
		return err
	}
	p.inWrite = true
	return nil
}

// EndWrite flushes every dirty page to disk, bumps the change counter,
// persists the page-type directory, and releases the write lock back to
// SharedLock. Grounded on the abstract API's description of the commit
// path: exclusive lock, flush, header rewrite, downgrade.
func (p *Pager) EndWrite() error {
	if !p.inWrite {
		return nil
	}

	if err := fsio.AcquireExclusiveLock(p.fh); err != nil {
		return err
	}

	if err := p.flushDirtyPages(); err != nil {
		return err
	}

	p.hdr.changeCounter++

	if err := p.writeHeaderPage(); err != nil {
		return err
	}

	if err := fsio.Sync(p.fh); err != nil {
		return err
	}

	p.inWrite = false
	return fsio.DowngradeLock(p.fh)
}

func (p *Pager) flushDirtyPages() error {
	for pageNo := uint32(2); pageNo <= p.directory.HighestPage(); pageNo++ {
		page, ok := p.cache.Get(pageNo)
		if !ok || !page.Dirty {
			continue
		}
		offset := int64(pageNo-1) * int64(p.hdr.pageSize)
		if err := fsio.Write(p.fh, page.Data, offset); err != nil {
			return err
		}
		page.Dirty = false
	}
	return nil
}

// writeHeaderPage serializes the page-type directory, allocating
// continuation pages as needed (registered in the directory itself as
// Ptype, never assumed to sit at a fixed page number), then writes the
// header plus the directory's first segment to page 1 and every
// continuation segment to its allocated page. pageCount is finalized
// here, after allocation, since allocating a continuation page can
// itself grow the directory's high-water mark.
func (p *Pager) writeHeaderPage() error {
	segments, contPages := p.directory.Store(
		int(p.hdr.pageSize)-HeaderSize,
		int(p.hdr.pageSize),
		func() uint32 { return p.directory.HighestPage() + 1 },
	)

	p.hdr.pageCount = p.directory.HighestPage()

	buf := make([]byte, p.hdr.pageSize)
	p.hdr.encode(buf)
	copy(buf[HeaderSize:], segments[0])

	if err := fsio.Write(p.fh, buf, 0); err != nil {
		return err
	}

	for i, seg := range segments[1:] {
		offset := int64(contPages[i]-1) * int64(p.hdr.pageSize)
		if err := fsio.Write(p.fh, seg, offset); err != nil {
			return err
		}
	}

	p.directory.Dirty = false
	return nil
}
