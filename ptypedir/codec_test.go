package ptypedir_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wardlem/fabricdb/byteorder"
	"github.com/wardlem/fabricdb/ptypedir"
)

// TestLoadStopsAtUnused mirrors spec.md §8 scenario 6's directory
// encoding: [pad, HEADER, UNUSED, ...].
func TestLoadStopsAtUnused(t *testing.T) {
	segment := make([]byte, 100)
	segment[1] = uint8(ptypedir.Header)
	segment[2] = uint8(ptypedir.Unused)
	segment[3] = uint8(ptypedir.Vertex) // must never be reached

	d := ptypedir.Load(segment, func(uint32) []byte {
		t.Fatal("unexpected continuation")
		return nil
	})

	require.Equal(t, ptypedir.Header, d.TypeOf(1))
	require.Equal(t, ptypedir.Unused, d.TypeOf(3))
	require.False(t, d.Dirty)
}

// TestLoadFollowsContinuationPage mirrors what Store produces: a PTYPE
// marker followed by the page number of the page holding the rest of
// the directory, at the last contFooterSize bytes of the segment.
func TestLoadFollowsContinuationPage(t *testing.T) {
	first := make([]byte, 8)
	first[1] = uint8(ptypedir.Header)
	first[2] = uint8(ptypedir.Vertex)
	first[3] = uint8(ptypedir.Ptype)
	byteorder.ToLEU32(first[4:], 99)

	cont := make([]byte, 8)
	cont[0] = uint8(ptypedir.Edge)
	// cont[1] left Unused (zero value) to stop decoding.

	calls := 0
	var gotPage uint32
	d := ptypedir.Load(first, func(pageNo uint32) []byte {
		calls++
		gotPage = pageNo
		return cont
	})

	require.Equal(t, 1, calls)
	require.Equal(t, uint32(99), gotPage)
	require.Equal(t, ptypedir.Header, d.TypeOf(1))
	require.Equal(t, ptypedir.Vertex, d.TypeOf(2))
	require.Equal(t, ptypedir.Edge, d.TypeOf(3))
	require.Equal(t, ptypedir.Unused, d.TypeOf(4))
}

func TestStoreRoundTrip(t *testing.T) {
	d := ptypedir.New()
	d.SetType(1, ptypedir.Header)
	d.SetType(2, ptypedir.Vertex)
	d.SetType(3, ptypedir.Edge)

	segments, contPages := d.Store(100, 100, func() uint32 {
		t.Fatal("unexpected continuation page allocation")
		return 0
	})
	require.Len(t, segments, 1)
	require.Empty(t, contPages)

	reloaded := ptypedir.Load(segments[0], func(uint32) []byte {
		t.Fatal("unexpected continuation")
		return nil
	})
	require.Equal(t, ptypedir.Header, reloaded.TypeOf(1))
	require.Equal(t, ptypedir.Vertex, reloaded.TypeOf(2))
	require.Equal(t, ptypedir.Edge, reloaded.TypeOf(3))
}

// TestStoreAllocatesContinuationSegment forces overflow with a small
// segment size and checks that continuation pages are allocated as real,
// directory-tracked page numbers (appended past the existing high-water
// mark, not assumed to sit at any fixed offset) and that the whole thing
// round-trips through Load.
func TestStoreAllocatesContinuationSegment(t *testing.T) {
	d := ptypedir.New()
	for p := uint32(1); p <= 5; p++ {
		d.SetType(p, ptypedir.Vertex)
	}

	segments, contPages := d.Store(8, 8, func() uint32 {
		return d.HighestPage() + 1
	})

	require.True(t, len(segments) > 1)
	require.Equal(t, len(segments)-1, len(contPages))

	byPage := make(map[uint32][]byte, len(contPages))
	for i, pageNo := range contPages {
		byPage[pageNo] = segments[i+1]
	}

	reloaded := ptypedir.Load(segments[0], func(pageNo uint32) []byte {
		seg, ok := byPage[pageNo]
		require.True(t, ok, "next asked for untracked page %d", pageNo)
		return seg
	})

	for p := uint32(1); p <= 5; p++ {
		require.Equal(t, ptypedir.Vertex, reloaded.TypeOf(p))
	}
	for _, pageNo := range contPages {
		require.Equal(t, ptypedir.Ptype, reloaded.TypeOf(pageNo))
	}
}
