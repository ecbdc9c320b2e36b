package exec

import (
	"github.com/sarchlab/o3sim/insts"
	"github.com/sarchlab/o3sim/timing/rstation"
)

// Resolution is the outcome of a branch or jump: where the
// instruction sits, whether it redirects, and where to.
type Resolution struct {
	PC     uint32
	Taken  bool
	Target uint32
	IsJump bool
	ROBTag uint8
}

// BRU is the single-cycle branch unit. Alongside the completion-bus
// result (the link value for jumps) it produces a resolution record
// that restarts the frontend and trains the predictor.
type BRU struct {
	in      rstation.IssuedInst
	inSrc1  uint32
	inSrc2  uint32
	inValid bool

	out      Result
	outValid bool

	res      Resolution
	resValid bool
}

// NewBRU creates an idle branch unit.
func NewBRU() *BRU {
	return &BRU{}
}

// CanIssue returns true when the unit can take a new instruction.
func (b *BRU) CanIssue() bool {
	return !b.inValid
}

// Issue latches a branch or jump with its operand values.
func (b *BRU) Issue(inst rstation.IssuedInst, src1, src2 uint32) {
	b.in = inst
	b.inSrc1 = src1
	b.inSrc2 = src2
	b.inValid = true
}

// Tick resolves the latched instruction when the output register is
// free.
func (b *BRU) Tick() {
	if !b.inValid || b.outValid {
		return
	}

	res := Resolution{
		PC:     b.in.PC,
		IsJump: b.in.IsJump,
		ROBTag: b.in.ROBTag,
	}
	var link uint32
	switch {
	case b.in.Op == insts.OpJAL:
		res.Taken = true
		res.Target = b.in.PC + b.in.Imm
		link = b.in.PC + 4
	case b.in.Op == insts.OpJALR:
		res.Taken = true
		res.Target = (b.inSrc1 + b.in.Imm) &^ 1
		link = b.in.PC + 4
	default:
		res.Taken = evalBranch(b.in.Op, b.inSrc1, b.inSrc2)
		res.Target = b.in.PC + b.in.Imm
	}

	b.out = Result{
		ROBTag:   b.in.ROBTag,
		DestUsed: b.in.DestUsed,
		DestTag:  b.in.DestTag,
		Value:    link,
	}
	b.outValid = true
	b.res = res
	b.resValid = true
	b.inValid = false
}

// Output returns the completed result waiting for the bus, if any.
func (b *BRU) Output() (Result, bool) {
	return b.out, b.outValid
}

// TakeOutput drains the output register after a bus grant.
func (b *BRU) TakeOutput() {
	b.outValid = false
}

// Resolution returns the pending resolution record, if any. Unlike
// the bus result it is consumed the cycle it is read.
func (b *BRU) Resolution() (Resolution, bool) {
	res, ok := b.res, b.resValid
	b.resValid = false
	return res, ok
}

// Flush drops any in-flight work.
func (b *BRU) Flush() {
	b.inValid = false
	b.outValid = false
	b.resValid = false
}

func evalBranch(op insts.Op, src1, src2 uint32) bool {
	switch op {
	case insts.OpBEQ:
		return src1 == src2
	case insts.OpBNE:
		return src1 != src2
	case insts.OpBLT:
		return int32(src1) < int32(src2)
	case insts.OpBGE:
		return int32(src1) >= int32(src2)
	case insts.OpBLTU:
		return src1 < src2
	case insts.OpBGEU:
		return src1 >= src2
	default:
		panic("exec: op not handled by the branch unit")
	}
}
