package rename_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/o3sim/timing/rename"
)

var _ = Describe("FreeList", func() {
	var fl *rename.FreeList

	BeforeEach(func() {
		fl = rename.NewFreeList(32, 64)
	})

	It("should start holding the configured tag range", func() {
		Expect(fl.Len()).To(Equal(32))
		Expect(fl.Empty()).To(BeFalse())
	})

	It("should hand out tags in FIFO order", func() {
		tag, ok := fl.Alloc()
		Expect(ok).To(BeTrue())
		Expect(tag).To(Equal(uint8(32)))

		tag, ok = fl.Alloc()
		Expect(ok).To(BeTrue())
		Expect(tag).To(Equal(uint8(33)))
	})

	It("should refuse to allocate when empty", func() {
		for i := 0; i < 32; i++ {
			_, ok := fl.Alloc()
			Expect(ok).To(BeTrue())
		}
		Expect(fl.Empty()).To(BeTrue())

		_, ok := fl.Alloc()
		Expect(ok).To(BeFalse())
	})

	It("should recycle a freed tag", func() {
		for i := 0; i < 32; i++ {
			fl.Alloc()
		}
		fl.Free(40)

		tag, ok := fl.Alloc()
		Expect(ok).To(BeTrue())
		Expect(tag).To(Equal(uint8(40)))
	})

	It("should never hand out a tag twice while it is live", func() {
		live := map[uint8]bool{}
		var order []uint8

		// Drain, free half back, and drain again. No allocation may
		// return a tag that is still outstanding.
		for i := 0; i < 32; i++ {
			tag, ok := fl.Alloc()
			Expect(ok).To(BeTrue())
			Expect(live[tag]).To(BeFalse())
			live[tag] = true
			order = append(order, tag)
		}
		for i := 0; i < 16; i++ {
			fl.Free(order[i])
			live[order[i]] = false
		}
		for i := 0; i < 16; i++ {
			tag, ok := fl.Alloc()
			Expect(ok).To(BeTrue())
			Expect(live[tag]).To(BeFalse())
			live[tag] = true
		}
	})
})
