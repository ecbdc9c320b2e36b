// Package mem provides the data/instruction memory model and the
// fixed-latency request/response ports the core talks to it through.
package mem

// pageSize is the granularity of backing allocation.
const pageSize = 4096

// Memory is a sparse byte-addressable memory backed by fixed-size
// pages. Unwritten locations read as zero.
type Memory struct {
	pages map[uint32][]byte
}

// NewMemory creates a new empty memory.
func NewMemory() *Memory {
	return &Memory{
		pages: make(map[uint32][]byte),
	}
}

// page returns the page containing addr, allocating it when needed.
func (m *Memory) page(addr uint32, allocate bool) []byte {
	base := addr &^ (pageSize - 1)
	p, ok := m.pages[base]
	if !ok && allocate {
		p = make([]byte, pageSize)
		m.pages[base] = p
	}
	return p
}

// Read8 reads one byte.
func (m *Memory) Read8(addr uint32) uint8 {
	p := m.page(addr, false)
	if p == nil {
		return 0
	}
	return p[addr%pageSize]
}

// Write8 writes one byte.
func (m *Memory) Write8(addr uint32, value uint8) {
	p := m.page(addr, true)
	p[addr%pageSize] = value
}

// Read16 reads a little-endian halfword.
func (m *Memory) Read16(addr uint32) uint16 {
	return uint16(m.Read8(addr)) |
		uint16(m.Read8(addr+1))<<8
}

// Write16 writes a little-endian halfword.
func (m *Memory) Write16(addr uint32, value uint16) {
	m.Write8(addr, uint8(value))
	m.Write8(addr+1, uint8(value>>8))
}

// Read32 reads a little-endian word.
func (m *Memory) Read32(addr uint32) uint32 {
	return uint32(m.Read8(addr)) |
		uint32(m.Read8(addr+1))<<8 |
		uint32(m.Read8(addr+2))<<16 |
		uint32(m.Read8(addr+3))<<24
}

// Write32 writes a little-endian word.
func (m *Memory) Write32(addr uint32, value uint32) {
	m.Write8(addr, uint8(value))
	m.Write8(addr+1, uint8(value>>8))
	m.Write8(addr+2, uint8(value>>16))
	m.Write8(addr+3, uint8(value>>24))
}

// WriteBytes copies data into memory starting at addr.
func (m *Memory) WriteBytes(addr uint32, data []byte) {
	for i, b := range data {
		m.Write8(addr+uint32(i), b)
	}
}

// ReadWord implements Backing with a fixed one-cycle response latency,
// the contract the memory collaborators expose to the core.
func (m *Memory) ReadWord(addr uint32) (uint32, uint64) {
	return m.Read32(addr), 1
}
