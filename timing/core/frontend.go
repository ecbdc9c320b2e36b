package core

import (
	"github.com/sarchlab/o3sim/insts"
	"github.com/sarchlab/o3sim/mem"
	"github.com/sarchlab/o3sim/timing/predictor"
)

// Frontend fetches and decodes one instruction per cycle. It runs
// the in-order half of the machine: a fetch port, a one-deep fetch
// buffer, and a one-deep decode output buffer.
//
// There is no speculation past unresolved control flow. Direct jumps
// redirect at decode; conditional branches and indirect jumps park
// the frontend until the branch unit resolves them.
type Frontend struct {
	port      *mem.Port
	decoder   *insts.Decoder
	predictor *predictor.Predictor

	pc uint32

	fetchedPC    uint32
	fetchedWord  uint32
	fetchedValid bool

	outOp    *insts.DecodedOp
	outPC    uint32
	outValid bool

	waiting bool
	waitPC  uint32
	stopped bool
}

// NewFrontend creates a frontend fetching through the given port.
// The predictor is optional; when present every decoded branch asks
// it for a prediction so its tables and counters stay live.
func NewFrontend(port *mem.Port, bp *predictor.Predictor) *Frontend {
	return &Frontend{
		port:      port,
		decoder:   insts.NewDecoder(),
		predictor: bp,
	}
}

// SetPC sets the fetch program counter.
func (f *Frontend) SetPC(pc uint32) {
	f.pc = pc
}

// PC returns the next fetch address.
func (f *Frontend) PC() uint32 {
	return f.pc
}

// Tick advances fetch and decode by one cycle.
func (f *Frontend) Tick() {
	f.port.Tick()
	if word, addr, ok := f.port.Response(); ok {
		f.fetchedWord = word
		f.fetchedPC = addr
		f.fetchedValid = true
	}

	f.decode()

	if !f.waiting && !f.stopped && !f.fetchedValid && f.port.CanRequest() {
		f.port.Request(f.pc)
		f.pc += 4
	}
}

// decode drains the fetch buffer into the output buffer and steers
// control flow.
func (f *Frontend) decode() {
	if !f.fetchedValid || f.outValid {
		return
	}

	op := f.decoder.Decode(f.fetchedWord)
	pc := f.fetchedPC
	f.fetchedValid = false

	f.outOp = op
	f.outPC = pc
	f.outValid = true

	if f.predictor != nil && (op.IsBranch || op.IsJump) {
		f.predictor.Predict(pc)
	}

	switch {
	case op.Halt || op.Op == insts.OpUnknown:
		// Nothing past the halt enters the machine.
		f.stopped = true
		f.dropFetched()
	case op.Op == insts.OpJAL:
		// Direct jumps resolve at decode.
		f.pc = pc + op.Imm
		f.dropFetched()
	case op.IsBranch || op.Op == insts.OpJALR:
		f.waiting = true
		f.waitPC = pc
		f.dropFetched()
	}
}

// dropFetched discards sequential fetch done past a control
// instruction, both buffered and in flight.
func (f *Frontend) dropFetched() {
	f.fetchedValid = false
	f.port.Flush()
}

// Resolve restarts fetch after the branch unit settles the control
// instruction the frontend is parked on. Resolutions for other PCs,
// such as decode-resolved jumps, are ignored.
func (f *Frontend) Resolve(pc uint32, taken bool, target uint32) {
	if !f.waiting || pc != f.waitPC {
		return
	}
	f.waiting = false
	if taken {
		f.pc = target
	} else {
		f.pc = pc + 4
	}
}

// Waiting returns true while fetch is parked on unresolved control
// flow.
func (f *Frontend) Waiting() bool {
	return f.waiting
}

// Stopped returns true once a halt instruction has been decoded.
func (f *Frontend) Stopped() bool {
	return f.stopped
}

// Output returns the decoded instruction waiting for rename, if any.
func (f *Frontend) Output() (*insts.DecodedOp, uint32, bool) {
	return f.outOp, f.outPC, f.outValid
}

// Take consumes the decoded instruction.
func (f *Frontend) Take() {
	f.outValid = false
}

// Reset clears all frontend state. The PC is left for the caller to
// set.
func (f *Frontend) Reset() {
	f.port.Flush()
	f.fetchedValid = false
	f.outValid = false
	f.waiting = false
	f.stopped = false
	f.pc = 0
}
