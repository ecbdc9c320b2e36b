// Package rename provides register renaming: the free list of
// physical tags, the register alias table, and the rename stage that
// turns decoded operations into renamed instruction records.
package rename

// FreeList is the pool of physical tags not currently backing any
// live destination, kept as a ring. Exactly one of the free list, a
// speculative alias-table mapping, or a committed mapping owns a
// non-zero tag at any time; a tag re-enters the pool only when the
// commit stage retires the instruction that superseded it.
type FreeList struct {
	tags  []uint8
	head  int
	tail  int
	count int
}

// NewFreeList creates a free list initially holding the tags
// [first, limit).
func NewFreeList(first, limit int) *FreeList {
	fl := &FreeList{
		tags: make([]uint8, limit-first),
	}
	for tag := first; tag < limit; tag++ {
		fl.tags[tag-first] = uint8(tag)
	}
	fl.count = limit - first
	return fl
}

// Len returns the number of tags available.
func (fl *FreeList) Len() int {
	return fl.count
}

// Empty returns true when no tag is available.
func (fl *FreeList) Empty() bool {
	return fl.count == 0
}

// Alloc hands out the oldest free tag. It returns false when the
// pool is empty.
func (fl *FreeList) Alloc() (uint8, bool) {
	if fl.count == 0 {
		return 0, false
	}
	tag := fl.tags[fl.head]
	fl.head = (fl.head + 1) % len(fl.tags)
	fl.count--
	return tag, true
}

// Free returns a retired tag to the pool.
func (fl *FreeList) Free(tag uint8) {
	fl.tags[fl.tail] = tag
	fl.tail = (fl.tail + 1) % len(fl.tags)
	fl.count++
}
