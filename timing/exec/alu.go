package exec

import (
	"github.com/sarchlab/o3sim/insts"
	"github.com/sarchlab/o3sim/timing/rstation"
)

// ALU is the single-cycle integer unit. An issued instruction
// computes during the next Tick and then sits in the output register
// until the completion bus grants it.
type ALU struct {
	in      rstation.IssuedInst
	inSrc1  uint32
	inSrc2  uint32
	inValid bool

	out      Result
	outValid bool
}

// NewALU creates an idle ALU.
func NewALU() *ALU {
	return &ALU{}
}

// CanIssue returns true when the unit can take a new instruction.
func (a *ALU) CanIssue() bool {
	return !a.inValid
}

// Issue latches an instruction with its operand values. The second
// operand is replaced by the immediate for immediate-form ops.
func (a *ALU) Issue(inst rstation.IssuedInst, src1, src2 uint32) {
	a.in = inst
	a.inSrc1 = src1
	a.inSrc2 = src2
	if inst.UseImm {
		a.inSrc2 = inst.Imm
	}
	a.inValid = true
}

// Tick computes the latched instruction when the output register is
// free. A held result keeps the unit busy until the bus drains it.
func (a *ALU) Tick() {
	if !a.inValid || a.outValid {
		return
	}
	a.out = Result{
		ROBTag:   a.in.ROBTag,
		DestUsed: a.in.DestUsed,
		DestTag:  a.in.DestTag,
		Value:    compute(a.in.Op, a.in.PC, a.inSrc1, a.inSrc2),
	}
	a.outValid = true
	a.inValid = false
}

// Output returns the completed result waiting for the bus, if any.
func (a *ALU) Output() (Result, bool) {
	return a.out, a.outValid
}

// TakeOutput drains the output register after a bus grant.
func (a *ALU) TakeOutput() {
	a.outValid = false
}

// Flush drops any in-flight work.
func (a *ALU) Flush() {
	a.inValid = false
	a.outValid = false
}

func compute(op insts.Op, pc, src1, src2 uint32) uint32 {
	switch op {
	case insts.OpADD:
		return src1 + src2
	case insts.OpSUB:
		return src1 - src2
	case insts.OpSLL:
		return src1 << (src2 & 0x1F)
	case insts.OpSLT:
		if int32(src1) < int32(src2) {
			return 1
		}
		return 0
	case insts.OpSLTU:
		if src1 < src2 {
			return 1
		}
		return 0
	case insts.OpXOR:
		return src1 ^ src2
	case insts.OpSRL:
		return src1 >> (src2 & 0x1F)
	case insts.OpSRA:
		return uint32(int32(src1) >> (src2 & 0x1F))
	case insts.OpOR:
		return src1 | src2
	case insts.OpAND:
		return src1 & src2
	case insts.OpLUI:
		return src2
	case insts.OpAUIPC:
		return pc + src2
	default:
		panic("exec: op not handled by the ALU")
	}
}
