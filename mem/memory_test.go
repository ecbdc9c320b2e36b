package mem_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/o3sim/mem"
)

var _ = Describe("Memory", func() {
	var memory *mem.Memory

	BeforeEach(func() {
		memory = mem.NewMemory()
	})

	It("should read zero from unwritten locations", func() {
		Expect(memory.Read32(0x1000)).To(Equal(uint32(0)))
		Expect(memory.Read8(0xFFFF0000)).To(Equal(uint8(0)))
	})

	It("should round-trip words little-endian", func() {
		memory.Write32(0x1000, 0xDEADBEEF)

		Expect(memory.Read32(0x1000)).To(Equal(uint32(0xDEADBEEF)))
		Expect(memory.Read8(0x1000)).To(Equal(uint8(0xEF)))
		Expect(memory.Read8(0x1003)).To(Equal(uint8(0xDE)))
		Expect(memory.Read16(0x1002)).To(Equal(uint16(0xDEAD)))
	})

	It("should handle accesses spanning page boundaries", func() {
		memory.Write32(0x0FFE, 0x11223344)

		Expect(memory.Read16(0x0FFE)).To(Equal(uint16(0x3344)))
		Expect(memory.Read16(0x1000)).To(Equal(uint16(0x1122)))
	})

	It("should copy byte slices with WriteBytes", func() {
		memory.WriteBytes(0x2000, []byte{1, 2, 3, 4})

		Expect(memory.Read32(0x2000)).To(Equal(uint32(0x04030201)))
	})
})

var _ = Describe("Port", func() {
	var (
		memory *mem.Memory
		port   *mem.Port
	)

	BeforeEach(func() {
		memory = mem.NewMemory()
		memory.Write32(0x100, 0xCAFEBABE)
		port = mem.NewPort(memory)
	})

	It("should deliver a response one cycle after the request", func() {
		port.Request(0x100)
		Expect(port.CanRequest()).To(BeFalse())

		_, _, ok := port.Response()
		Expect(ok).To(BeFalse())

		port.Tick()
		data, addr, ok := port.Response()
		Expect(ok).To(BeTrue())
		Expect(data).To(Equal(uint32(0xCAFEBABE)))
		Expect(addr).To(Equal(uint32(0x100)))
		Expect(port.CanRequest()).To(BeTrue())
	})

	It("should hold the response for exactly one cycle", func() {
		port.Request(0x100)
		port.Tick()
		_, _, ok := port.Response()
		Expect(ok).To(BeTrue())

		port.Tick()
		_, _, ok = port.Response()
		Expect(ok).To(BeFalse())
	})

	It("should return the aligned word for unaligned addresses", func() {
		port.Request(0x102)
		port.Tick()

		data, addr, ok := port.Response()
		Expect(ok).To(BeTrue())
		Expect(data).To(Equal(uint32(0xCAFEBABE)))
		Expect(addr).To(Equal(uint32(0x102)))
	})

	It("should drop everything on flush", func() {
		port.Request(0x100)
		port.Flush()
		port.Tick()

		_, _, ok := port.Response()
		Expect(ok).To(BeFalse())
		Expect(port.CanRequest()).To(BeTrue())
	})
})
