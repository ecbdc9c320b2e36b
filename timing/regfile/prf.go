// Package regfile provides the physical register file with per-tag
// validity tracking.
package regfile

// ZeroTag is the physical tag hardwired to zero. It is permanently
// valid, never allocated, and ignores writes and invalidates.
const ZeroTag uint8 = 0

// File is the physical register file: one value and one validity bit
// per tag. Reads are combinational; the single write port is driven
// by the completion bus and the single invalidate port by dispatch.
//
// A tag is valid exactly when no destination allocation referencing
// it is outstanding. It turns invalid when dispatch allocates it and
// valid again on the completion-bus write for that allocation.
type File struct {
	values []uint32
	valid  []bool
}

// NewFile creates a physical register file with n tags. All tags
// start valid with value zero; allocation-driven invalidation is the
// only path to the invalid state.
func NewFile(n int) *File {
	f := &File{
		values: make([]uint32, n),
		valid:  make([]bool, n),
	}
	for i := range f.valid {
		f.valid[i] = true
	}
	return f
}

// NumTags returns the number of physical tags.
func (f *File) NumTags() int {
	return len(f.values)
}

// Read returns the value stored at tag. Tag 0 always reads as zero.
func (f *File) Read(tag uint8) uint32 {
	if tag == ZeroTag {
		return 0
	}
	return f.values[tag]
}

// Valid returns the validity bit for tag. Tag 0 is always valid.
func (f *File) Valid(tag uint8) bool {
	if tag == ZeroTag {
		return true
	}
	return f.valid[tag]
}

// Write stores value at tag and marks it valid. Writes to tag 0 are
// ignored.
func (f *File) Write(tag uint8, value uint32) {
	if tag == ZeroTag {
		return
	}
	f.values[tag] = value
	f.valid[tag] = true
}

// Invalidate clears the validity bit for tag, marking an outstanding
// destination allocation. Tag 0 cannot be invalidated.
func (f *File) Invalidate(tag uint8) {
	if tag == ZeroTag {
		return
	}
	f.valid[tag] = false
}

// Reset marks every tag valid with value zero.
func (f *File) Reset() {
	for i := range f.values {
		f.values[i] = 0
		f.valid[i] = true
	}
}
