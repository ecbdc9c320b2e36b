// Package cache models read-only L1 caches using Akita cache
// components for tag and replacement state. The core places one in
// front of the instruction port, the data port, or both.
package cache

import (
	akitacache "github.com/sarchlab/akita/v4/mem/cache"
)

// Config holds cache geometry and timing.
type Config struct {
	// Size in bytes.
	Size int
	// Associativity is the number of ways.
	Associativity int
	// BlockSize in bytes.
	BlockSize int
	// HitLatency in cycles.
	HitLatency uint64
	// MissLatency in cycles, including the fill from memory.
	MissLatency uint64
}

// DefaultL1IConfig returns the default instruction-cache geometry,
// 16KB, 2-way, 64B lines.
func DefaultL1IConfig() Config {
	return Config{
		Size:          16 * 1024,
		Associativity: 2,
		BlockSize:     64,
		HitLatency:    1,
		MissLatency:   10,
	}
}

// DefaultL1DConfig returns the default data-cache geometry, 16KB,
// 4-way, 64B lines.
func DefaultL1DConfig() Config {
	return Config{
		Size:          16 * 1024,
		Associativity: 4,
		BlockSize:     64,
		HitLatency:    1,
		MissLatency:   10,
	}
}

// Fill is the next level of the hierarchy, read at block granularity
// on a miss.
type Fill interface {
	ReadBlock(addr uint32, size int) []byte
}

// Statistics holds cache performance counters.
type Statistics struct {
	Reads     uint64
	Hits      uint64
	Misses    uint64
	Evictions uint64
}

// HitRate returns the hit rate as a percentage.
func (s Statistics) HitRate() float64 {
	if s.Reads == 0 {
		return 0
	}
	return float64(s.Hits) / float64(s.Reads) * 100
}

// Cache is a read-only L1 cache. Tags and LRU state live in an Akita
// cache directory; line data lives alongside, indexed by set and way.
type Cache struct {
	config    Config
	directory *akitacache.DirectoryImpl
	dataStore [][]byte
	fill      Fill
	stats     Statistics
}

// New creates a cache with the given geometry over the fill source.
func New(config Config, fill Fill) *Cache {
	numSets := config.Size / (config.Associativity * config.BlockSize)
	totalBlocks := numSets * config.Associativity

	dataStore := make([][]byte, totalBlocks)
	for i := range dataStore {
		dataStore[i] = make([]byte, config.BlockSize)
	}

	return &Cache{
		config: config,
		directory: akitacache.NewDirectory(
			numSets,
			config.Associativity,
			config.BlockSize,
			akitacache.NewLRUVictimFinder(),
		),
		dataStore: dataStore,
		fill:      fill,
	}
}

// Config returns the cache geometry.
func (c *Cache) Config() Config {
	return c.config
}

// Stats returns the performance counters.
func (c *Cache) Stats() Statistics {
	return c.stats
}

func (c *Cache) blockIndex(block *akitacache.Block) int {
	return block.SetID*c.config.Associativity + block.WayID
}

// ReadWord returns the aligned 32-bit word at addr and the access
// latency in cycles. It satisfies the port's backing interface, so a
// memory port can sit directly on top of the cache.
func (c *Cache) ReadWord(addr uint32) (uint32, uint64) {
	c.stats.Reads++

	addr &^= 3
	blockAddr := addr / uint32(c.config.BlockSize) * uint32(c.config.BlockSize)

	block := c.directory.Lookup(0, uint64(blockAddr))
	if block != nil && block.IsValid {
		c.stats.Hits++
		c.directory.Visit(block)
		return c.wordFromLine(block, addr), c.config.HitLatency
	}

	c.stats.Misses++
	block = c.fillLine(blockAddr)
	return c.wordFromLine(block, addr), c.config.MissLatency
}

func (c *Cache) wordFromLine(block *akitacache.Block, addr uint32) uint32 {
	offset := int(addr) % c.config.BlockSize
	line := c.dataStore[c.blockIndex(block)]

	var word uint32
	for i := 0; i < 4; i++ {
		word |= uint32(line[offset+i]) << (i * 8)
	}
	return word
}

// fillLine evicts a victim and brings the block at blockAddr in from
// the next level.
func (c *Cache) fillLine(blockAddr uint32) *akitacache.Block {
	victim := c.directory.FindVictim(uint64(blockAddr))

	line := c.dataStore[c.blockIndex(victim)]
	if victim.IsValid {
		c.stats.Evictions++
	}

	if c.fill != nil {
		copy(line, c.fill.ReadBlock(blockAddr, c.config.BlockSize))
	} else {
		for i := range line {
			line[i] = 0
		}
	}

	victim.Tag = uint64(blockAddr)
	victim.IsValid = true
	victim.IsDirty = false
	c.directory.Visit(victim)
	return victim
}

// Invalidate drops the line holding addr, if present.
func (c *Cache) Invalidate(addr uint32) {
	blockAddr := addr / uint32(c.config.BlockSize) * uint32(c.config.BlockSize)
	block := c.directory.Lookup(0, uint64(blockAddr))
	if block != nil && block.IsValid {
		block.IsValid = false
	}
}

// InvalidateAll drops every line.
func (c *Cache) InvalidateAll() {
	sets := c.directory.GetSets()
	for _, set := range sets {
		for _, block := range set.Blocks {
			block.IsValid = false
		}
	}
}

// Reset invalidates every line and clears the counters.
func (c *Cache) Reset() {
	c.directory.Reset()
	c.stats = Statistics{}
}
