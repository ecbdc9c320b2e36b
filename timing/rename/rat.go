package rename

// AliasTable maps architectural register numbers to physical tags.
// Architectural register 0 is permanently mapped to physical tag 0
// and never remapped.
type AliasTable struct {
	mapping []uint8
}

// NewAliasTable creates an alias table for n architectural registers
// with the identity mapping (arch reg i backed by tag i).
func NewAliasTable(n int) *AliasTable {
	t := &AliasTable{
		mapping: make([]uint8, n),
	}
	for i := range t.mapping {
		t.mapping[i] = uint8(i)
	}
	return t
}

// Lookup returns the physical tag currently backing arch.
func (t *AliasTable) Lookup(arch uint8) uint8 {
	return t.mapping[arch]
}

// Update remaps arch to tag and returns the superseded tag.
// Updates to architectural register 0 are ignored.
func (t *AliasTable) Update(arch, tag uint8) uint8 {
	if arch == 0 {
		return 0
	}
	old := t.mapping[arch]
	t.mapping[arch] = tag
	return old
}

// Reset restores the identity mapping.
func (t *AliasTable) Reset() {
	for i := range t.mapping {
		t.mapping[i] = uint8(i)
	}
}
