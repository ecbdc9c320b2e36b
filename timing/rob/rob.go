// Package rob implements the reorder buffer, a ring of in-flight
// instructions that restores program order at retirement.
package rob

// Entry is one reorder-buffer slot.
type Entry struct {
	Occupied bool
	Done     bool

	PC uint32

	// Destination bookkeeping carried from rename. OldTag is the
	// physical tag this instruction supersedes; it returns to the
	// free list when the entry commits.
	DestUsed bool
	NewTag   uint8
	OldTag   uint8
}

// Buffer is a fixed-capacity reorder buffer. Allocation happens at
// dispatch in program order, completion out of order, and commit
// strictly from the head.
type Buffer struct {
	entries []Entry
	head    int
	tail    int
	count   int
}

// New creates a reorder buffer with the given capacity.
func New(capacity int) *Buffer {
	return &Buffer{
		entries: make([]Entry, capacity),
	}
}

// Capacity returns the number of slots.
func (b *Buffer) Capacity() int {
	return len(b.entries)
}

// Len returns the number of in-flight instructions.
func (b *Buffer) Len() int {
	return b.count
}

// Full returns true when no slot is free.
func (b *Buffer) Full() bool {
	return b.count == len(b.entries)
}

// Allocate appends an instruction at the tail and returns its ROB
// tag. It returns false when the buffer is full.
func (b *Buffer) Allocate(pc uint32, destUsed bool, newTag, oldTag uint8) (uint8, bool) {
	if b.Full() {
		return 0, false
	}
	tag := uint8(b.tail)
	b.entries[b.tail] = Entry{
		Occupied: true,
		PC:       pc,
		DestUsed: destUsed,
		NewTag:   newTag,
		OldTag:   oldTag,
	}
	b.tail = (b.tail + 1) % len(b.entries)
	b.count++
	return tag, true
}

// MarkDone records that the instruction holding tag has finished
// executing.
func (b *Buffer) MarkDone(tag uint8) {
	e := &b.entries[tag]
	if !e.Occupied {
		panic("rob: completion for unoccupied entry")
	}
	e.Done = true
}

// CommitValid returns true when the head entry exists and is done.
func (b *Buffer) CommitValid() bool {
	return b.count > 0 && b.entries[b.head].Done
}

// Commit pops the head entry. The caller must have checked
// CommitValid in the same cycle.
func (b *Buffer) Commit() Entry {
	e := b.entries[b.head]
	b.entries[b.head] = Entry{}
	b.head = (b.head + 1) % len(b.entries)
	b.count--
	return e
}

// Head returns the ROB tag the next commit will retire.
func (b *Buffer) Head() uint8 {
	return uint8(b.head)
}

// Flush empties the buffer.
func (b *Buffer) Flush() {
	for i := range b.entries {
		b.entries[i] = Entry{}
	}
	b.head = 0
	b.tail = 0
	b.count = 0
}
