package exec_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/o3sim/insts"
	"github.com/sarchlab/o3sim/mem"
	"github.com/sarchlab/o3sim/timing/exec"
	"github.com/sarchlab/o3sim/timing/rstation"
)

func loadInst(op insts.Op, imm uint32, size uint8, unsigned bool) rstation.IssuedInst {
	return rstation.IssuedInst{
		Op:       op,
		Imm:      imm,
		IsLoad:   true,
		MemSize:  size,
		Unsigned: unsigned,
		DestUsed: true,
		DestTag:  41,
		ROBTag:   5,
	}
}

var _ = Describe("LSU", func() {
	var (
		memory *mem.Memory
		port   *mem.Port
		lsu    *exec.LSU
	)

	BeforeEach(func() {
		memory = mem.NewMemory()
		port = mem.NewPort(memory)
		lsu = exec.NewLSU(port)
	})

	step := func() {
		port.Tick()
		lsu.Tick()
	}

	It("should load a word after the memory latency", func() {
		memory.Write32(0x1000, 0xDEADBEEF)

		lsu.Issue(loadInst(insts.OpLW, 0, 4, false), 0x1000)
		Expect(lsu.CanIssue()).To(BeFalse())

		step()

		res, ok := lsu.Output()
		Expect(ok).To(BeTrue())
		Expect(res.Value).To(Equal(uint32(0xDEADBEEF)))
		Expect(res.DestTag).To(Equal(uint8(41)))
		Expect(res.ROBTag).To(Equal(uint8(5)))
	})

	It("should apply the immediate offset to the base register", func() {
		memory.Write32(0x1008, 77)

		lsu.Issue(loadInst(insts.OpLW, 8, 4, false), 0x1000)
		step()

		res, ok := lsu.Output()
		Expect(ok).To(BeTrue())
		Expect(res.Value).To(Equal(uint32(77)))
	})

	It("should sign-extend a byte load", func() {
		memory.Write8(0x1003, 0x80)

		lsu.Issue(loadInst(insts.OpLB, 3, 1, false), 0x1000)
		step()

		res, _ := lsu.Output()
		Expect(res.Value).To(Equal(uint32(0xFFFFFF80)))
	})

	It("should zero-extend an unsigned byte load", func() {
		memory.Write8(0x1003, 0x80)

		lsu.Issue(loadInst(insts.OpLBU, 3, 1, true), 0x1000)
		step()

		res, _ := lsu.Output()
		Expect(res.Value).To(Equal(uint32(0x80)))
	})

	It("should sign-extend a halfword load from the upper lane", func() {
		memory.Write16(0x1002, 0x8001)

		lsu.Issue(loadInst(insts.OpLH, 2, 2, false), 0x1000)
		step()

		res, _ := lsu.Output()
		Expect(res.Value).To(Equal(uint32(0xFFFF8001)))
	})

	It("should zero-extend an unsigned halfword load", func() {
		memory.Write16(0x1002, 0x8001)

		lsu.Issue(loadInst(insts.OpLHU, 2, 2, true), 0x1000)
		step()

		res, _ := lsu.Output()
		Expect(res.Value).To(Equal(uint32(0x8001)))
	})

	It("should stay busy until the held result is granted", func() {
		memory.Write32(0x1000, 1)

		lsu.Issue(loadInst(insts.OpLW, 0, 4, false), 0x1000)
		step()
		Expect(lsu.CanIssue()).To(BeFalse(), "output register occupied")

		step()
		res, ok := lsu.Output()
		Expect(ok).To(BeTrue(), "result survives extra cycles on the bus")
		Expect(res.Value).To(Equal(uint32(1)))

		lsu.TakeOutput()
		Expect(lsu.CanIssue()).To(BeTrue())
	})
})
