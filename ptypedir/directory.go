// Package ptypedir implements the persistent page-type directory: a
// byte-per-page type map stored on page 1 starting at offset 100 and
// continuing onto dedicated PTYPE pages when it overflows one page.
// Grounded on pager.h's PageTypeCache struct (allPages + per-type
// ubytearray/u32array lists), built on package container's U8Array and
// U32Array: one *container.U32Array per type code, held in a fixed array
// whose length is the named constant NumPageTypes.
package ptypedir

import "github.com/wardlem/fabricdb/container"

// PageType enumerates the kinds of page the directory can record.
type PageType uint8

const (
	Unused PageType = 0
	Header PageType = 1
	Vertex PageType = 2
	Edge   PageType = 3
	String PageType = 4
	Doc    PageType = 5
	Array  PageType = 6
	Index  PageType = 7
	Ptype  PageType = 8
	Cont   PageType = 9
	Free   PageType = 10
)

// NumPageTypes is the count of distinct PageType values, used to size
// the per-type page-number lists.
const NumPageTypes = 11

// Directory maps every page number in the file to its PageType and, for
// each type, the list of page numbers holding it. Dirty records whether
// the in-memory view has diverged from what is on disk.
type Directory struct {
	allPages *container.U8Array
	byType   [NumPageTypes]*container.U32Array
	Dirty    bool
}

// New constructs an empty Directory with page 1 not yet recorded.
func New() *Directory {
	d := &Directory{allPages: container.NewU8Array(0)}
	for i := range d.byType {
		d.byType[i] = container.NewU32Array(0)
	}
	return d
}

// TypeOf returns the recorded type for pageNo, or Unused if it has never
// been recorded.
func (d *Directory) TypeOf(pageNo uint32) PageType {
	return PageType(d.allPages.GetOr(pageNo, uint8(Unused)))
}

// PagesOfType returns the page numbers currently recorded under t, in
// the order they were assigned.
func (d *Directory) PagesOfType(t PageType) []uint32 {
	arr := d.byType[t]
	out := make([]uint32, arr.Len())
	for i := range out {
		out[i] = arr.GetOr(uint32(i), 0)
	}
	return out
}

// SetType records pageNo as holding type t, moving it out of whatever
// type list it previously belonged to. Marks the directory dirty.
// allPages is dense, so any pages between the current high-water mark
// and pageNo are first padded with Unused, matching how those pages'
// types would read back as Unused if never explicitly set.
func (d *Directory) SetType(pageNo uint32, t PageType) {
	old := d.TypeOf(pageNo)
	if old == t {
		return
	}
	if old != Unused {
		d.removeFromType(old, pageNo)
	}
	for uint32(d.allPages.Len()) < pageNo {
		d.allPages.Push(uint8(Unused))
	}
	if err := d.allPages.Set(pageNo, uint8(t)); err != nil {
		panic("ptypedir: set pageNo after padding to it")
	}
	if t != Unused {
		d.byType[t].Push(pageNo)
	}
	d.Dirty = true
}

func (d *Directory) removeFromType(t PageType, pageNo uint32) {
	arr := d.byType[t]
	filtered := container.NewU32Array(uint32(arr.Len()))
	for i := 0; i < arr.Len(); i++ {
		v := arr.GetOr(uint32(i), 0)
		if v != pageNo {
			filtered.Push(v)
		}
	}
	d.byType[t] = filtered
}

// HighestPage returns the largest page number the directory has ever
// recorded a type for, or 0 if none has.
func (d *Directory) HighestPage() uint32 {
	n := d.allPages.Len()
	if n == 0 {
		return 0
	}
	return uint32(n - 1)
}
