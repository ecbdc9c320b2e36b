package rename

import (
	"github.com/sarchlab/o3sim/insts"
	"github.com/sarchlab/o3sim/timing/regfile"
)

// Inst is a renamed instruction record: the decoded operation with
// architectural register numbers replaced by physical tags plus
// per-source readiness observed at rename time.
//
// When DestUsed is false the NewTag and OldTag fields are don't-care
// and must not be read.
type Inst struct {
	PC uint32
	Op insts.Op
	FU insts.FUClass

	Imm    uint32
	UseImm bool

	// Memory access attributes.
	IsLoad   bool
	MemSize  uint8
	Unsigned bool

	// Control attributes.
	IsBranch bool
	IsJump   bool
	Halt     bool

	// Source operands.
	Src1Tag   uint8
	Src2Tag   uint8
	Src1Ready bool
	Src2Ready bool

	// Destination bookkeeping.
	DestUsed bool
	NewTag   uint8
	OldTag   uint8
}

// Stage performs register renaming with a one-deep output buffer.
// Each accepted decoded operation produces one renamed instruction,
// held until the dispatcher takes it.
type Stage struct {
	rat      *AliasTable
	freeList *FreeList
	prf      *regfile.File

	out      Inst
	outValid bool
}

// NewStage creates a rename stage over the given alias table, free
// list, and physical register file.
func NewStage(rat *AliasTable, freeList *FreeList, prf *regfile.File) *Stage {
	return &Stage{
		rat:      rat,
		freeList: freeList,
		prf:      prf,
	}
}

// CanAccept returns true when the output buffer is empty and, if the
// operation needs a destination tag, the free list can supply one.
func (s *Stage) CanAccept(op *insts.DecodedOp) bool {
	if s.outValid {
		return false
	}
	if op.RegWrite && s.freeList.Empty() {
		return false
	}
	return true
}

// Accept renames one decoded operation. The caller must have checked
// CanAccept in the same cycle.
//
// Source readiness is the PRF validity of the looked-up tag, with
// architectural register 0 always ready. The alias-table update for
// the destination happens after both source lookups, so an
// instruction's own destination write is never visible to its own
// source reads.
func (s *Stage) Accept(op *insts.DecodedOp, pc uint32) {
	inst := Inst{
		PC:       pc,
		Op:       op.Op,
		FU:       op.FU,
		Imm:      op.Imm,
		UseImm:   op.UseImm,
		IsLoad:   op.IsLoad,
		MemSize:  op.MemSize,
		Unsigned: op.Unsigned,
		IsBranch: op.IsBranch,
		IsJump:   op.IsJump,
		Halt:     op.Halt,
	}

	inst.Src1Tag, inst.Src1Ready = s.lookupSource(op.Rs1)
	inst.Src2Tag, inst.Src2Ready = s.lookupSource(op.Rs2)

	if op.RegWrite {
		newTag, ok := s.freeList.Alloc()
		if !ok {
			// CanAccept guarantees a free tag; an empty pool here is
			// an upstream bookkeeping defect.
			panic("rename: free list exhausted")
		}
		inst.DestUsed = true
		inst.NewTag = newTag
		inst.OldTag = s.rat.Update(op.Rd, newTag)
	}

	s.out = inst
	s.outValid = true
}

// lookupSource maps one architectural source register to its physical
// tag and readiness.
func (s *Stage) lookupSource(arch uint8) (uint8, bool) {
	if arch == 0 {
		return regfile.ZeroTag, true
	}
	tag := s.rat.Lookup(arch)
	return tag, s.prf.Valid(tag)
}

// Output returns the buffered renamed instruction, if any.
func (s *Stage) Output() (Inst, bool) {
	return s.out, s.outValid
}

// Take consumes the buffered renamed instruction.
func (s *Stage) Take() {
	s.outValid = false
}

// Flush drops the buffered instruction.
func (s *Stage) Flush() {
	s.outValid = false
}
