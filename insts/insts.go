// Package insts provides RV32I instruction definitions and decoding.
//
// This package implements decoding of RV32I machine code into structured
// operation records. It supports:
//   - Integer register-register and register-immediate operations
//   - LUI / AUIPC
//   - Loads: LB, LH, LW, LBU, LHU (stores are not supported)
//   - Control flow: JAL, JALR, conditional branches
//   - ECALL / EBREAK as the halt boundary
//
// Usage:
//
//	decoder := insts.NewDecoder()
//	op := decoder.Decode(0x00A08093) // ADDI x1, x1, 10
//	fmt.Printf("Op: %v, Rd: %d, Rs1: %d, Imm: %d\n", op.Op, op.Rd, op.Rs1, op.Imm)
package insts

// Op represents an RV32I operation.
type Op uint8

// RV32I operations. Immediate forms decode to the same Op as their
// register forms, with UseImm set on the decoded record.
const (
	OpUnknown Op = iota

	// Integer ALU operations.
	OpADD
	OpSUB
	OpSLL
	OpSLT
	OpSLTU
	OpXOR
	OpSRL
	OpSRA
	OpOR
	OpAND
	OpLUI
	OpAUIPC

	// Loads.
	OpLB
	OpLH
	OpLW
	OpLBU
	OpLHU

	// Control flow.
	OpJAL
	OpJALR
	OpBEQ
	OpBNE
	OpBLT
	OpBGE
	OpBLTU
	OpBGEU

	// Environment.
	OpECALL
	OpEBREAK
)

// FUClass identifies which functional unit executes an operation.
type FUClass uint8

// Functional unit classes.
const (
	FUALU FUClass = iota // integer ALU
	FULSU                // load unit
	FUBRU                // branch/jump unit
)

// DecodedOp is the pure-combinational decode result for one
// instruction word. It carries everything the rename stage needs;
// register numbers are architectural at this point.
//
// Rs1 and Rs2 are 0 for operand slots the operation does not read, so
// downstream readiness logic can treat both slots uniformly (register
// x0 is always ready).
type DecodedOp struct {
	Op Op
	FU FUClass

	// Architectural register operands.
	Rd  uint8
	Rs1 uint8
	Rs2 uint8

	// Imm is the sign-extended immediate, already shifted into place
	// for LUI and AUIPC. UseImm substitutes Imm for the second ALU
	// operand.
	Imm    uint32
	UseImm bool

	// RegWrite is true when the operation writes Rd and Rd is not x0.
	RegWrite bool

	// Memory access attributes.
	IsLoad   bool
	MemSize  uint8 // access size in bytes: 1, 2, or 4
	Unsigned bool  // zero-extend the loaded value instead of sign-extending

	// Control attributes.
	IsBranch bool // conditional branch
	IsJump   bool // JAL or JALR

	// Halt marks ECALL/EBREAK, which end the instruction stream.
	Halt bool
}
