package rename_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/o3sim/timing/rename"
)

var _ = Describe("AliasTable", func() {
	var rat *rename.AliasTable

	BeforeEach(func() {
		rat = rename.NewAliasTable(32)
	})

	It("should start with the identity mapping", func() {
		for arch := 0; arch < 32; arch++ {
			Expect(rat.Lookup(uint8(arch))).To(Equal(uint8(arch)))
		}
	})

	It("should return the superseded tag on update", func() {
		old := rat.Update(5, 40)
		Expect(old).To(Equal(uint8(5)))
		Expect(rat.Lookup(5)).To(Equal(uint8(40)))

		old = rat.Update(5, 41)
		Expect(old).To(Equal(uint8(40)))
	})

	It("should ignore updates to architectural register 0", func() {
		rat.Update(0, 50)
		Expect(rat.Lookup(0)).To(Equal(uint8(0)))
	})

	It("should restore the identity mapping on reset", func() {
		rat.Update(3, 33)
		rat.Update(4, 34)

		rat.Reset()

		Expect(rat.Lookup(3)).To(Equal(uint8(3)))
		Expect(rat.Lookup(4)).To(Equal(uint8(4)))
	})
})
