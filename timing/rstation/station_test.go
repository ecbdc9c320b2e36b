package rstation_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/o3sim/insts"
	"github.com/sarchlab/o3sim/timing/rename"
	"github.com/sarchlab/o3sim/timing/rstation"
)

func waitingInst(src1, src2 uint8, ready1, ready2 bool) rename.Inst {
	return rename.Inst{
		Op:        insts.OpADD,
		FU:        insts.FUALU,
		Src1Tag:   src1,
		Src2Tag:   src2,
		Src1Ready: ready1,
		Src2Ready: ready2,
		DestUsed:  true,
		NewTag:    50,
	}
}

var _ = Describe("Station", func() {
	var station *rstation.Station

	BeforeEach(func() {
		station = rstation.New(4)
	})

	It("should accept entries until every slot is occupied", func() {
		for i := 0; i < 4; i++ {
			Expect(station.CanPush()).To(BeTrue())
			station.Push(waitingInst(1, 2, true, true), uint8(i))
		}
		Expect(station.CanPush()).To(BeFalse())
		Expect(station.Occupancy()).To(Equal(4))
	})

	It("should select the lowest-numbered ready entry", func() {
		station.Push(waitingInst(40, 2, false, true), 0)
		station.Push(waitingInst(1, 2, true, true), 1)
		station.Push(waitingInst(3, 4, true, true), 2)

		idx, ok := station.SelectReady()
		Expect(ok).To(BeTrue())
		Expect(idx).To(Equal(1))
	})

	It("should not select an entry with a pending source", func() {
		station.Push(waitingInst(40, 2, false, true), 0)

		_, ok := station.SelectReady()
		Expect(ok).To(BeFalse())
	})

	It("should free the slot when an entry issues", func() {
		station.Push(waitingInst(1, 2, true, true), 7)

		idx, ok := station.SelectReady()
		Expect(ok).To(BeTrue())

		issued := station.Take(idx)
		Expect(issued.ROBTag).To(Equal(uint8(7)))
		Expect(issued.DestTag).To(Equal(uint8(50)))
		Expect(station.Occupancy()).To(Equal(0))
		Expect(station.CanPush()).To(BeTrue())
	})

	It("should wake every source waiting on the broadcast tag", func() {
		station.Push(waitingInst(40, 2, false, true), 0)
		station.Push(waitingInst(1, 40, true, false), 1)
		station.Push(waitingInst(40, 40, false, false), 2)

		station.Wakeup(40)

		idx, ok := station.SelectReady()
		Expect(ok).To(BeTrue())
		Expect(idx).To(Equal(0))

		station.Take(0)
		station.Take(1)
		idx, ok = station.SelectReady()
		Expect(ok).To(BeTrue())
		Expect(idx).To(Equal(2))
	})

	It("should leave non-matching sources pending on wakeup", func() {
		station.Push(waitingInst(40, 41, false, false), 0)

		station.Wakeup(40)

		_, ok := station.SelectReady()
		Expect(ok).To(BeFalse())
	})

	It("should stall dispatch at depth one until the occupant issues", func() {
		tiny := rstation.New(1)
		tiny.Push(waitingInst(40, 2, false, true), 0)
		Expect(tiny.CanPush()).To(BeFalse())

		tiny.Wakeup(40)
		idx, ok := tiny.SelectReady()
		Expect(ok).To(BeTrue())
		tiny.Take(idx)

		Expect(tiny.CanPush()).To(BeTrue())
	})

	It("should empty every slot on flush", func() {
		station.Push(waitingInst(1, 2, true, true), 0)
		station.Push(waitingInst(3, 4, true, true), 1)

		station.Flush()

		Expect(station.Occupancy()).To(Equal(0))
		_, ok := station.SelectReady()
		Expect(ok).To(BeFalse())
	})
})
