package pagecache_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wardlem/fabricdb/pagecache"
)

func newPage(no uint32) *pagecache.Page {
	return &pagecache.Page{PageNo: no, PageSize: 1024, Data: make([]byte, 1024)}
}

func TestCachePutGet(t *testing.T) {
	c := pagecache.New(5)
	require.True(t, c.Put(newPage(5)))
	require.True(t, c.Put(newPage(8)))

	p, ok := c.Get(5)
	require.True(t, ok)
	require.Equal(t, uint32(5), p.PageNo)

	_, ok = c.Get(99)
	require.False(t, ok)
}

func TestCacheDuplicatePutPanics(t *testing.T) {
	c := pagecache.New(5)
	c.Put(newPage(1))
	require.Panics(t, func() { c.Put(newPage(1)) })
}

func TestCacheNeverEvictsDirtyOrReferenced(t *testing.T) {
	c := pagecache.New(2)

	dirty := newPage(1)
	dirty.Dirty = true
	referenced := newPage(2)
	referenced.RefCount = 1

	require.True(t, c.Put(dirty))
	require.True(t, c.Put(referenced))

	ok := c.Put(newPage(3))
	require.False(t, ok, "cache full of ineligible pages must refuse the insert")
	require.Equal(t, 2, c.Len())
}

func TestCacheEvictsCleanUnreferencedPage(t *testing.T) {
	c := pagecache.New(2)
	require.True(t, c.Put(newPage(1)))
	require.True(t, c.Put(newPage(2)))

	require.True(t, c.Put(newPage(3)))
	require.Equal(t, 2, c.Len())

	_, ok := c.Get(3)
	require.True(t, ok)
}

func TestCacheRemove(t *testing.T) {
	c := pagecache.New(5)
	c.Put(newPage(1))
	c.Remove(1)

	_, ok := c.Get(1)
	require.False(t, ok)
	require.Equal(t, 0, c.Len())

	require.True(t, c.Put(newPage(1)))
}

func TestCacheClear(t *testing.T) {
	c := pagecache.New(5)
	c.Put(newPage(1))
	c.Put(newPage(2))
	c.Clear()
	require.Equal(t, 0, c.Len())
}
