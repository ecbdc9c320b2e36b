package regfile_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/o3sim/timing/regfile"
)

var _ = Describe("File", func() {
	var prf *regfile.File

	BeforeEach(func() {
		prf = regfile.NewFile(64)
	})

	It("should start with all tags valid and zero", func() {
		for tag := 0; tag < 64; tag++ {
			Expect(prf.Valid(uint8(tag))).To(BeTrue())
			Expect(prf.Read(uint8(tag))).To(Equal(uint32(0)))
		}
	})

	It("should round-trip a write through a dependent read", func() {
		prf.Invalidate(5)
		Expect(prf.Valid(5)).To(BeFalse())

		prf.Write(5, 42)

		Expect(prf.Valid(5)).To(BeTrue())
		Expect(prf.Read(5)).To(Equal(uint32(42)))
	})

	It("should keep tag 0 valid and zero under any event sequence", func() {
		prf.Invalidate(regfile.ZeroTag)
		Expect(prf.Valid(regfile.ZeroTag)).To(BeTrue())

		prf.Write(regfile.ZeroTag, 0xFFFF)
		Expect(prf.Read(regfile.ZeroTag)).To(Equal(uint32(0)))
		Expect(prf.Valid(regfile.ZeroTag)).To(BeTrue())

		prf.Invalidate(regfile.ZeroTag)
		prf.Write(regfile.ZeroTag, 1)
		Expect(prf.Read(regfile.ZeroTag)).To(Equal(uint32(0)))
	})

	It("should transition invalid to valid exactly on the write", func() {
		prf.Invalidate(7)
		Expect(prf.Valid(7)).To(BeFalse())
		Expect(prf.Valid(8)).To(BeTrue(), "other tags are unaffected")

		prf.Write(7, 99)
		Expect(prf.Valid(7)).To(BeTrue())
	})

	It("should clear values and validity on reset", func() {
		prf.Invalidate(3)
		prf.Write(4, 17)

		prf.Reset()

		Expect(prf.Valid(3)).To(BeTrue())
		Expect(prf.Read(4)).To(Equal(uint32(0)))
	})
})
