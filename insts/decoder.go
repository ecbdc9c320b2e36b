package insts

// RV32I major opcodes (instruction word bits [6:0]).
const (
	opcodeLUI    = 0b0110111
	opcodeAUIPC  = 0b0010111
	opcodeJAL    = 0b1101111
	opcodeJALR   = 0b1100111
	opcodeBranch = 0b1100011
	opcodeLoad   = 0b0000011
	opcodeOpImm  = 0b0010011
	opcodeOp     = 0b0110011
	opcodeSystem = 0b1110011
)

// Decoder decodes RV32I machine code into operation records.
type Decoder struct{}

// NewDecoder creates a new RV32I instruction decoder.
func NewDecoder() *Decoder {
	return &Decoder{}
}

// Decode decodes a 32-bit RV32I instruction word.
// Unsupported encodings (including all stores) decode to OpUnknown.
func (d *Decoder) Decode(word uint32) *DecodedOp {
	op := &DecodedOp{Op: OpUnknown}

	switch word & 0x7F {
	case opcodeLUI:
		d.decodeLUI(word, op)
	case opcodeAUIPC:
		d.decodeAUIPC(word, op)
	case opcodeJAL:
		d.decodeJAL(word, op)
	case opcodeJALR:
		d.decodeJALR(word, op)
	case opcodeBranch:
		d.decodeBranch(word, op)
	case opcodeLoad:
		d.decodeLoad(word, op)
	case opcodeOpImm:
		d.decodeOpImm(word, op)
	case opcodeOp:
		d.decodeOp(word, op)
	case opcodeSystem:
		d.decodeSystem(word, op)
	}

	return op
}

// Field extraction helpers. Bit positions follow the RV32I base
// encoding: rd [11:7], funct3 [14:12], rs1 [19:15], rs2 [24:20],
// funct7 [31:25].

func rd(word uint32) uint8     { return uint8((word >> 7) & 0x1F) }
func funct3(word uint32) uint8 { return uint8((word >> 12) & 0x7) }
func rs1(word uint32) uint8    { return uint8((word >> 15) & 0x1F) }
func rs2(word uint32) uint8    { return uint8((word >> 20) & 0x1F) }
func funct7(word uint32) uint8 { return uint8(word >> 25) }

// immI extracts the sign-extended I-type immediate (bits [31:20]).
func immI(word uint32) uint32 {
	return uint32(int32(word) >> 20)
}

// immB extracts the sign-extended B-type immediate
// (imm[12|10:5] in bits [31:25], imm[4:1|11] in bits [11:7]).
func immB(word uint32) uint32 {
	imm := ((word >> 31) << 12) |
		(((word >> 7) & 0x1) << 11) |
		(((word >> 25) & 0x3F) << 5) |
		(((word >> 8) & 0xF) << 1)
	// Sign extend from bit 12.
	return uint32(int32(imm<<19) >> 19)
}

// immJ extracts the sign-extended J-type immediate
// (imm[20|10:1|11|19:12] packed into bits [31:12]).
func immJ(word uint32) uint32 {
	imm := ((word >> 31) << 20) |
		(((word >> 12) & 0xFF) << 12) |
		(((word >> 20) & 0x1) << 11) |
		(((word >> 21) & 0x3FF) << 1)
	// Sign extend from bit 20.
	return uint32(int32(imm<<11) >> 11)
}

// decodeLUI decodes LUI rd, imm20.
// Format: imm[31:12] | rd | 0110111
func (d *Decoder) decodeLUI(word uint32, op *DecodedOp) {
	op.Op = OpLUI
	op.FU = FUALU
	op.Rd = rd(word)
	op.Imm = word & 0xFFFFF000
	op.UseImm = true
	op.RegWrite = op.Rd != 0
}

// decodeAUIPC decodes AUIPC rd, imm20.
// Format: imm[31:12] | rd | 0010111
func (d *Decoder) decodeAUIPC(word uint32, op *DecodedOp) {
	op.Op = OpAUIPC
	op.FU = FUALU
	op.Rd = rd(word)
	op.Imm = word & 0xFFFFF000
	op.UseImm = true
	op.RegWrite = op.Rd != 0
}

// decodeJAL decodes JAL rd, offset.
// Format: imm[20|10:1|11|19:12] | rd | 1101111
func (d *Decoder) decodeJAL(word uint32, op *DecodedOp) {
	op.Op = OpJAL
	op.FU = FUBRU
	op.Rd = rd(word)
	op.Imm = immJ(word)
	op.UseImm = true
	op.IsJump = true
	op.RegWrite = op.Rd != 0
}

// decodeJALR decodes JALR rd, rs1, offset.
// Format: imm[11:0] | rs1 | 000 | rd | 1100111
func (d *Decoder) decodeJALR(word uint32, op *DecodedOp) {
	if funct3(word) != 0 {
		return
	}
	op.Op = OpJALR
	op.FU = FUBRU
	op.Rd = rd(word)
	op.Rs1 = rs1(word)
	op.Imm = immI(word)
	op.UseImm = true
	op.IsJump = true
	op.RegWrite = op.Rd != 0
}

// decodeBranch decodes conditional branches.
// Format: imm[12|10:5] | rs2 | rs1 | funct3 | imm[4:1|11] | 1100011
func (d *Decoder) decodeBranch(word uint32, op *DecodedOp) {
	switch funct3(word) {
	case 0b000:
		op.Op = OpBEQ
	case 0b001:
		op.Op = OpBNE
	case 0b100:
		op.Op = OpBLT
	case 0b101:
		op.Op = OpBGE
	case 0b110:
		op.Op = OpBLTU
	case 0b111:
		op.Op = OpBGEU
	default:
		return
	}

	op.FU = FUBRU
	op.Rs1 = rs1(word)
	op.Rs2 = rs2(word)
	op.Imm = immB(word)
	op.IsBranch = true
}

// decodeLoad decodes LB, LH, LW, LBU, and LHU.
// Format: imm[11:0] | rs1 | funct3 | rd | 0000011
func (d *Decoder) decodeLoad(word uint32, op *DecodedOp) {
	switch funct3(word) {
	case 0b000:
		op.Op = OpLB
		op.MemSize = 1
	case 0b001:
		op.Op = OpLH
		op.MemSize = 2
	case 0b010:
		op.Op = OpLW
		op.MemSize = 4
	case 0b100:
		op.Op = OpLBU
		op.MemSize = 1
		op.Unsigned = true
	case 0b101:
		op.Op = OpLHU
		op.MemSize = 2
		op.Unsigned = true
	default:
		return
	}

	op.FU = FULSU
	op.Rd = rd(word)
	op.Rs1 = rs1(word)
	op.Imm = immI(word)
	op.UseImm = true
	op.IsLoad = true
	op.RegWrite = op.Rd != 0
}

// decodeOpImm decodes register-immediate ALU operations.
// Format: imm[11:0] | rs1 | funct3 | rd | 0010011
// Shift-immediate forms carry the shift amount in imm[4:0] with
// funct7 selecting SRLI vs SRAI.
func (d *Decoder) decodeOpImm(word uint32, op *DecodedOp) {
	switch funct3(word) {
	case 0b000:
		op.Op = OpADD
	case 0b010:
		op.Op = OpSLT
	case 0b011:
		op.Op = OpSLTU
	case 0b100:
		op.Op = OpXOR
	case 0b110:
		op.Op = OpOR
	case 0b111:
		op.Op = OpAND
	case 0b001:
		if funct7(word) != 0 {
			return
		}
		op.Op = OpSLL
	case 0b101:
		switch funct7(word) {
		case 0b0000000:
			op.Op = OpSRL
		case 0b0100000:
			op.Op = OpSRA
		default:
			return
		}
	}

	op.FU = FUALU
	op.Rd = rd(word)
	op.Rs1 = rs1(word)
	op.Imm = immI(word)
	if op.Op == OpSLL || op.Op == OpSRL || op.Op == OpSRA {
		op.Imm &= 0x1F // shift amount only
	}
	op.UseImm = true
	op.RegWrite = op.Rd != 0
}

// decodeOp decodes register-register ALU operations.
// Format: funct7 | rs2 | rs1 | funct3 | rd | 0110011
func (d *Decoder) decodeOp(word uint32, op *DecodedOp) {
	f3 := funct3(word)
	f7 := funct7(word)

	switch {
	case f3 == 0b000 && f7 == 0b0000000:
		op.Op = OpADD
	case f3 == 0b000 && f7 == 0b0100000:
		op.Op = OpSUB
	case f3 == 0b001 && f7 == 0b0000000:
		op.Op = OpSLL
	case f3 == 0b010 && f7 == 0b0000000:
		op.Op = OpSLT
	case f3 == 0b011 && f7 == 0b0000000:
		op.Op = OpSLTU
	case f3 == 0b100 && f7 == 0b0000000:
		op.Op = OpXOR
	case f3 == 0b101 && f7 == 0b0000000:
		op.Op = OpSRL
	case f3 == 0b101 && f7 == 0b0100000:
		op.Op = OpSRA
	case f3 == 0b110 && f7 == 0b0000000:
		op.Op = OpOR
	case f3 == 0b111 && f7 == 0b0000000:
		op.Op = OpAND
	default:
		return
	}

	op.FU = FUALU
	op.Rd = rd(word)
	op.Rs1 = rs1(word)
	op.Rs2 = rs2(word)
	op.RegWrite = op.Rd != 0
}

// decodeSystem decodes ECALL and EBREAK.
// Format: funct12 | 00000 | 000 | 00000 | 1110011
func (d *Decoder) decodeSystem(word uint32, op *DecodedOp) {
	switch word {
	case 0x00000073:
		op.Op = OpECALL
	case 0x00100073:
		op.Op = OpEBREAK
	default:
		return
	}
	op.Halt = true
}
