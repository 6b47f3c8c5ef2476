package pagecache

import "github.com/wardlem/fabricdb/container"

// Cache is a bounded map from page number to resident Page, evicting by
// CLOCK approximation when full. It never evicts a dirty page or a page
// with RefCount > 0; when no page qualifies, Put returns false and
// leaves the incoming page unseated so the pager can decide whether to
// flush a dirty page and retry.
type Cache struct {
	capacity int
	pages    *container.PtrMap[*Page]
	order    []uint32
	touched  map[uint32]bool
	hand     int
}

// New constructs a Cache holding at most capacity pages.
func New(capacity int) *Cache {
	return &Cache{
		capacity: capacity,
		pages:    container.NewPtrMap[*Page](uint32(capacity) + 1),
		touched:  make(map[uint32]bool),
	}
}

// Len returns the number of pages currently resident.
func (c *Cache) Len() int {
	return c.pages.Len()
}

// Get returns the resident page for pageNo, marking it recently used. A
// miss returns nil, false.
func (c *Cache) Get(pageNo uint32) (*Page, bool) {
	p := c.pages.GetRef(pageNo)
	if p == nil {
		return nil, false
	}
	c.touched[pageNo] = true
	return *p, true
}

// Put inserts page, first evicting clean, unreferenced pages until the
// cache is below capacity. Put panics if pageNo is already resident — the
// caller must Remove or Get first, matching the source's duplicate-entry
// caller invariant. ok is false, with nothing inserted, if the cache is
// full and no page is eligible for eviction.
func (c *Cache) Put(page *Page) (ok bool) {
	if c.pages.Has(page.PageNo) {
		panic("pagecache: duplicate entry")
	}

	for c.pages.Len() >= c.capacity {
		if !c.evictOne() {
			return false
		}
	}

	c.pages.Set(page.PageNo, page)
	c.order = append(c.order, page.PageNo)
	return true
}

// Remove drops pageNo from the cache, if present.
func (c *Cache) Remove(pageNo uint32) {
	if !c.pages.Has(pageNo) {
		return
	}
	c.pages.Delete(pageNo)
	delete(c.touched, pageNo)
	for i, k := range c.order {
		if k == pageNo {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}

// SetCapacity changes the capacity pragma. Pages already resident are
// left in place even if that now exceeds capacity; the new limit is
// enforced starting with the next Put.
func (c *Cache) SetCapacity(capacity int) {
	c.capacity = capacity
}

// Clear empties the cache entirely, regardless of dirty or reference
// state; callers must have already flushed anything they care about.
func (c *Cache) Clear() {
	c.pages = container.NewPtrMap[*Page](uint32(c.capacity) + 1)
	c.order = nil
	c.touched = make(map[uint32]bool)
	c.hand = 0
}

// evictOne runs one CLOCK sweep looking for a page that is neither dirty
// nor referenced. Pages with their touched bit set are given a second
// chance (the bit is cleared and the sweep continues) rather than being
// evicted immediately.
func (c *Cache) evictOne() bool {
	n := len(c.order)
	if n == 0 {
		return false
	}

	for sweep := 0; sweep < 2*n; sweep++ {
		if len(c.order) == 0 {
			return false
		}
		c.hand %= len(c.order)
		key := c.order[c.hand]

		pageRef := c.pages.GetRef(key)
		if pageRef == nil {
			c.order = append(c.order[:c.hand], c.order[c.hand+1:]...)
			continue
		}
		page := *pageRef

		if page.Dirty || page.RefCount > 0 {
			c.hand++
			continue
		}

		if c.touched[key] {
			c.touched[key] = false
			c.hand++
			continue
		}

		c.pages.Delete(key)
		c.order = append(c.order[:c.hand], c.order[c.hand+1:]...)
		delete(c.touched, key)
		return true
	}

	return false
}
