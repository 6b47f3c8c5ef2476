package ptypedir

import "github.com/wardlem/fabricdb/byteorder"

// contFooterSize is the number of trailing bytes every segment reserves
// for continuation control: one PTYPE marker byte followed by the
// little-endian page number of the page holding the next segment. A
// segment with nothing left to say leaves this region Unused (the zero
// value), which Load reads as "no continuation".
const contFooterSize = 5

// Load decodes a Directory from a sequence of directory segments: the
// first is the bytes starting at offset 100 of page 1, and each
// subsequent one (obtained by calling next) is a full PTYPE continuation
// page starting at its offset 0. The first byte of the first segment is
// always a pad (page numbers start at 1, so there is no page 0 to record
// a type for) and is skipped unconditionally rather than interpreted.
// Reading stops the instant it reaches an Unused byte, in the main body
// or in the footer's marker position. Passing next the decoded page
// number (rather than having it guess) is what lets the caller perform
// the actual positioned read, instead of assuming continuation pages
// occupy any particular page number.
func Load(firstSegment []byte, next func(pageNo uint32) []byte) *Directory {
	d := New()
	d.allPages.Push(uint8(Unused)) // page 0 is never real; occupies the pad slot

	segment := firstSegment
	i := 1 // the first segment's byte 0 is always pad

	for segment != nil {
		footerAt := len(segment) - contFooterSize

		if i >= footerAt {
			if PageType(segment[footerAt]) != Ptype {
				break
			}
			nextPage := byteorder.FromLEU32(segment[footerAt+1:])
			segment = next(nextPage)
			i = 0
			continue
		}

		t := PageType(segment[i])
		if t == Unused {
			break
		}

		pageNo := uint32(d.allPages.Len())
		d.allPages.Push(uint8(t))
		d.byType[t].Push(pageNo)
		i++
	}

	d.Dirty = false
	return d
}

// Store serializes the directory into one or more segments: the first
// sized firstSegmentSize (the room remaining after the 100-byte header
// on page 1), every subsequent one sized contSegmentSize (a full page,
// since continuation pages start at their own offset 0). Whenever a
// segment fills up, Store calls allocPage for a fresh page number,
// records it in the directory itself as Ptype (so continuation pages
// are ordinary directory-tracked pages, never an assumed fixed layout),
// and writes that page number into the current segment's footer
// alongside the PTYPE marker. contPages holds, in order, the page
// number backing each of segments[1:]. The first byte of the first
// segment is left as pad (the zero value, Unused) to mirror Load's
// convention.
func (d *Directory) Store(firstSegmentSize, contSegmentSize int, allocPage func() uint32) (segments [][]byte, contPages []uint32) {
	segSize := firstSegmentSize
	seg := make([]byte, segSize)
	footerAt := segSize - contFooterSize
	offset := 1

	for pageNo := uint32(1); pageNo <= d.HighestPage(); {
		if offset == footerAt {
			next := allocPage()
			d.SetType(next, Ptype)
			contPages = append(contPages, next)

			seg[footerAt] = uint8(Ptype)
			byteorder.ToLEU32(seg[footerAt+1:], next)
			segments = append(segments, seg)

			segSize = contSegmentSize
			footerAt = segSize - contFooterSize
			seg = make([]byte, segSize)
			offset = 0
			continue
		}

		seg[offset] = uint8(d.TypeOf(pageNo))
		offset++
		pageNo++
	}

	segments = append(segments, seg)
	return segments, contPages
}
