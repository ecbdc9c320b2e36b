package cache

import (
	"github.com/sarchlab/o3sim/mem"
)

// MemoryFill adapts the flat simulation memory as a fill source.
type MemoryFill struct {
	memory *mem.Memory
}

// NewMemoryFill creates a fill source over memory.
func NewMemoryFill(memory *mem.Memory) *MemoryFill {
	return &MemoryFill{memory: memory}
}

// ReadBlock fetches one cache line from memory.
func (m *MemoryFill) ReadBlock(addr uint32, size int) []byte {
	data := make([]byte, size)
	for i := 0; i < size; i++ {
		data[i] = m.memory.Read8(addr + uint32(i))
	}
	return data
}
