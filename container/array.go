package container

import "github.com/wardlem/fabricdb/ferrors"

// number is the set of element types the growable arrays support.
type number interface {
	~uint8 | ~uint32
}

// array is a growable vector with capacity-doubling growth and
// append-at-count semantics, shared by U8Array and U32Array.
type array[T number] struct {
	data []T
}

func newArray[T number](size uint32) *array[T] {
	return &array[T]{data: make([]T, 0, size)}
}

func (a *array[T]) len() int { return len(a.data) }

func (a *array[T]) has(index uint32) bool {
	return int(index) < len(a.data)
}

func (a *array[T]) getOr(index uint32, def T) T {
	if !a.has(index) {
		return def
	}
	return a.data[index]
}

func (a *array[T]) getRef(index uint32) *T {
	if !a.has(index) {
		return nil
	}
	return &a.data[index]
}

// set stores value at index. index == len(a.data) appends, growing the
// backing slice by one. index > len(a.data) returns IndexOutOfBounds,
// matching u8array_set/u32array_set's refusal to leave a gap.
func (a *array[T]) set(index uint32, value T) error {
	if int(index) > len(a.data) {
		return ferrors.New(ferrors.IndexOutOfBounds)
	}
	if int(index) == len(a.data) {
		a.push(value)
		return nil
	}
	a.data[index] = value
	return nil
}

func (a *array[T]) push(value T) {
	if len(a.data) == cap(a.data) {
		grown := make([]T, len(a.data), 2*cap(a.data)+1)
		copy(grown, a.data)
		a.data = grown
	}
	a.data = append(a.data, value)
}

func (a *array[T]) popOr(def T) T {
	n := len(a.data)
	if n == 0 {
		return def
	}
	v := a.data[n-1]
	a.data = a.data[:n-1]
	return v
}

// U8Array is a growable vector of bytes, grounded on u8array.c. It backs
// the page-type directory's AllPages set.
type U8Array struct {
	a array[uint8]
}

// NewU8Array constructs a U8Array with initial capacity size.
func NewU8Array(size uint32) *U8Array { return &U8Array{a: *newArray[uint8](size)} }

// Len returns the number of elements currently stored.
func (u *U8Array) Len() int { return u.a.len() }

// Has reports whether index is within the populated range.
func (u *U8Array) Has(index uint32) bool { return u.a.has(index) }

// GetOr returns the element at index, or def if out of range.
func (u *U8Array) GetOr(index uint32, def uint8) uint8 { return u.a.getOr(index, def) }

// GetRef returns a pointer to the element at index, or nil if out of range.
func (u *U8Array) GetRef(index uint32) *uint8 { return u.a.getRef(index) }

// Set stores value at index. index may equal Len() to append; any
// further index returns IndexOutOfBounds.
func (u *U8Array) Set(index uint32, value uint8) error { return u.a.set(index, value) }

// Push appends value to the end of the array.
func (u *U8Array) Push(value uint8) { u.a.push(value) }

// PopOr removes and returns the last element, or def if the array is empty.
func (u *U8Array) PopOr(def uint8) uint8 { return u.a.popOr(def) }

// U32Array is a growable vector of uint32s, grounded on u32array.c. It
// backs the page-type directory's per-type page-id lists.
type U32Array struct {
	a array[uint32]
}

// NewU32Array constructs a U32Array with initial capacity size.
func NewU32Array(size uint32) *U32Array { return &U32Array{a: *newArray[uint32](size)} }

// Len returns the number of elements currently stored.
func (u *U32Array) Len() int { return u.a.len() }

// Has reports whether index is within the populated range.
func (u *U32Array) Has(index uint32) bool { return u.a.has(index) }

// GetOr returns the element at index, or def if out of range.
func (u *U32Array) GetOr(index uint32, def uint32) uint32 { return u.a.getOr(index, def) }

// GetRef returns a pointer to the element at index, or nil if out of range.
func (u *U32Array) GetRef(index uint32) *uint32 { return u.a.getRef(index) }

// Set stores value at index. index may equal Len() to append; any
// further index returns IndexOutOfBounds.
func (u *U32Array) Set(index uint32, value uint32) error { return u.a.set(index, value) }

// Push appends value to the end of the array.
func (u *U32Array) Push(value uint32) { u.a.push(value) }

// PopOr removes and returns the last element, or def if the array is empty.
func (u *U32Array) PopOr(def uint32) uint32 { return u.a.popOr(def) }
