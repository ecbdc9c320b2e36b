package cache_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/o3sim/mem"
	"github.com/sarchlab/o3sim/timing/cache"
)

var _ = Describe("Cache", func() {
	var (
		c      *cache.Cache
		memory *mem.Memory
	)

	BeforeEach(func() {
		memory = mem.NewMemory()
		// Small cache for testing: 4KB, 4-way, 64B lines, 16 sets.
		config := cache.Config{
			Size:          4 * 1024,
			Associativity: 4,
			BlockSize:     64,
			HitLatency:    1,
			MissLatency:   10,
		}
		c = cache.New(config, cache.NewMemoryFill(memory))
	})

	Describe("Read operations", func() {
		It("should miss on a cold cache", func() {
			memory.Write32(0x1000, 0xDEADBEEF)

			word, latency := c.ReadWord(0x1000)
			Expect(word).To(Equal(uint32(0xDEADBEEF)))
			Expect(latency).To(Equal(uint64(10)))

			stats := c.Stats()
			Expect(stats.Reads).To(Equal(uint64(1)))
			Expect(stats.Misses).To(Equal(uint64(1)))
			Expect(stats.Hits).To(Equal(uint64(0)))
		})

		It("should hit on cached data", func() {
			memory.Write32(0x1000, 0xCAFEBABE)

			c.ReadWord(0x1000)

			word, latency := c.ReadWord(0x1000)
			Expect(word).To(Equal(uint32(0xCAFEBABE)))
			Expect(latency).To(Equal(uint64(1)))

			stats := c.Stats()
			Expect(stats.Reads).To(Equal(uint64(2)))
			Expect(stats.Misses).To(Equal(uint64(1)))
			Expect(stats.Hits).To(Equal(uint64(1)))
		})

		It("should hit on a different word of the same line", func() {
			memory.Write32(0x1000, 0x11111111)
			memory.Write32(0x1004, 0x22222222)

			c.ReadWord(0x1000)

			word, latency := c.ReadWord(0x1004)
			Expect(word).To(Equal(uint32(0x22222222)))
			Expect(latency).To(Equal(uint64(1)))
		})

		It("should align the address to the word", func() {
			memory.Write32(0x1000, 0x0A0B0C0D)

			word, _ := c.ReadWord(0x1002)
			Expect(word).To(Equal(uint32(0x0A0B0C0D)))
		})
	})

	Describe("Eviction", func() {
		It("should evict the LRU way when a set fills", func() {
			// These five block addresses all map to set 0.
			memory.Write32(0x0000, 1)
			memory.Write32(0x0400, 2)
			memory.Write32(0x0800, 3)
			memory.Write32(0x0C00, 4)
			memory.Write32(0x1000, 5)

			c.ReadWord(0x0000)
			c.ReadWord(0x0400)
			c.ReadWord(0x0800)
			c.ReadWord(0x0C00)

			_, latency := c.ReadWord(0x0000)
			Expect(latency).To(Equal(uint64(1)), "all four ways resident")

			c.ReadWord(0x1000)
			Expect(c.Stats().Evictions).To(Equal(uint64(1)))
		})
	})

	Describe("Invalidation", func() {
		It("should miss after the line is invalidated", func() {
			memory.Write32(0x1000, 42)
			c.ReadWord(0x1000)

			c.Invalidate(0x1000)

			_, latency := c.ReadWord(0x1000)
			Expect(latency).To(Equal(uint64(10)))
		})

		It("should drop every line on InvalidateAll", func() {
			c.ReadWord(0x1000)
			c.ReadWord(0x2000)

			c.InvalidateAll()

			_, latency := c.ReadWord(0x1000)
			Expect(latency).To(Equal(uint64(10)))
			_, latency = c.ReadWord(0x2000)
			Expect(latency).To(Equal(uint64(10)))
		})
	})

	Describe("Statistics", func() {
		It("should report the hit rate", func() {
			c.ReadWord(0x1000)
			c.ReadWord(0x1000)
			c.ReadWord(0x1000)
			c.ReadWord(0x1000)

			Expect(c.Stats().HitRate()).To(BeNumerically("~", 75.0, 0.01))
		})

		It("should clear on reset", func() {
			c.ReadWord(0x1000)
			c.Reset()

			Expect(c.Stats().Reads).To(Equal(uint64(0)))
			_, latency := c.ReadWord(0x1000)
			Expect(latency).To(Equal(uint64(10)))
		})
	})

	Describe("Default configurations", func() {
		It("should size the instruction cache", func() {
			config := cache.DefaultL1IConfig()
			Expect(config.Size).To(Equal(16 * 1024))
			Expect(config.Associativity).To(Equal(2))
			Expect(config.BlockSize).To(Equal(64))
		})

		It("should size the data cache", func() {
			config := cache.DefaultL1DConfig()
			Expect(config.Size).To(Equal(16 * 1024))
			Expect(config.Associativity).To(Equal(4))
			Expect(config.BlockSize).To(Equal(64))
		})
	})
})
