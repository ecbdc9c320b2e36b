package exec

import (
	"github.com/sarchlab/o3sim/mem"
	"github.com/sarchlab/o3sim/timing/rstation"
)

// LSU is the load unit. It turns an issued load into a data-memory
// request and holds the loaded value in its output register until the
// completion bus grants it. Only one load is outstanding at a time.
type LSU struct {
	port *mem.Port

	in      rstation.IssuedInst
	addr    uint32
	waiting bool

	out      Result
	outValid bool
}

// NewLSU creates a load unit over the given data port.
func NewLSU(port *mem.Port) *LSU {
	return &LSU{port: port}
}

// CanIssue returns true when no load is outstanding and the output
// register is drained.
func (l *LSU) CanIssue() bool {
	return !l.waiting && !l.outValid && l.port.CanRequest()
}

// Issue latches a load and sends its word-aligned address to memory.
// The effective address is the first operand plus the immediate.
func (l *LSU) Issue(inst rstation.IssuedInst, src1 uint32) {
	l.in = inst
	l.addr = src1 + inst.Imm
	l.waiting = true
	l.port.Request(l.addr)
}

// Tick collects a memory response when one arrives. The caller must
// tick the port before the unit in the same cycle.
func (l *LSU) Tick() {
	if !l.waiting {
		return
	}
	word, _, ok := l.port.Response()
	if !ok {
		return
	}
	l.out = Result{
		ROBTag:   l.in.ROBTag,
		DestUsed: l.in.DestUsed,
		DestTag:  l.in.DestTag,
		Value:    extractLane(word, l.addr, l.in.MemSize, l.in.Unsigned),
	}
	l.outValid = true
	l.waiting = false
}

// Output returns the completed load waiting for the bus, if any.
func (l *LSU) Output() (Result, bool) {
	return l.out, l.outValid
}

// TakeOutput drains the output register after a bus grant.
func (l *LSU) TakeOutput() {
	l.outValid = false
}

// Flush drops any in-flight load and the pending memory request.
func (l *LSU) Flush() {
	l.waiting = false
	l.outValid = false
	l.port.Flush()
}

// extractLane picks the addressed bytes out of the aligned memory
// word and extends them to 32 bits.
func extractLane(word, addr uint32, size uint8, unsigned bool) uint32 {
	shift := (addr & 3) * 8
	switch size {
	case 1:
		b := (word >> shift) & 0xFF
		if unsigned {
			return b
		}
		return uint32(int32(b<<24) >> 24)
	case 2:
		h := (word >> shift) & 0xFFFF
		if unsigned {
			return h
		}
		return uint32(int32(h<<16) >> 16)
	default:
		return word
	}
}
