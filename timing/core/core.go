// Package core assembles the dynamically scheduled backend: rename,
// dispatch, three reservation stations with their execution units, a
// shared completion bus, and in-order commit through the reorder
// buffer.
package core

import (
	"github.com/sarchlab/o3sim/insts"
	"github.com/sarchlab/o3sim/mem"
	"github.com/sarchlab/o3sim/timing/cache"
	"github.com/sarchlab/o3sim/timing/config"
	"github.com/sarchlab/o3sim/timing/exec"
	"github.com/sarchlab/o3sim/timing/predictor"
	"github.com/sarchlab/o3sim/timing/regfile"
	"github.com/sarchlab/o3sim/timing/rename"
	"github.com/sarchlab/o3sim/timing/rob"
	"github.com/sarchlab/o3sim/timing/rstation"
)

// Retirement describes one instruction leaving the machine, reported
// in program order.
type Retirement struct {
	ROBTag   uint8
	PC       uint32
	DestUsed bool
	NewTag   uint8
	OldTag   uint8
}

// Core is the cycle-accurate model of a single-issue core with
// out-of-order execution and in-order commit.
type Core struct {
	config *config.Config
	memory *mem.Memory

	icache *cache.Cache
	dcache *cache.Cache
	iPort  *mem.Port
	dPort  *mem.Port

	frontend *Frontend
	renamer  *rename.Stage

	rat      *rename.AliasTable
	freeList *rename.FreeList
	prf      *regfile.File

	aluStation *rstation.Station
	lsuStation *rstation.Station
	bruStation *rstation.Station

	alu *exec.ALU
	lsu *exec.LSU
	bru *exec.BRU
	bus *exec.Bus

	robBuf *rob.Buffer
	bp     *predictor.Predictor

	retireObserver func(Retirement)

	// Wakeup broadcast latched at writeback, applied to the stations
	// after issue selection so newly woken entries issue no earlier
	// than the next cycle.
	wakeupTag   uint8
	wakeupValid bool

	haltTag     uint8
	haltPending bool
	halted      bool

	stats Stats
}

// New creates a core over the given memory.
func New(memory *mem.Memory, opts ...Option) *Core {
	c := &Core{
		config: config.DefaultConfig(),
		memory: memory,
	}
	for _, opt := range opts {
		opt(c)
	}
	cfg := c.config

	if c.bp == nil {
		c.bp = predictor.New(predictor.Config{
			BHTSize: cfg.BHTSize,
			BTBSize: cfg.BTBSize,
		})
	}

	var iBacking mem.Backing = mem.FixedLatency(memory, cfg.MemoryLatency)
	if c.icache != nil {
		iBacking = c.icache
	}
	var dBacking mem.Backing = mem.FixedLatency(memory, cfg.MemoryLatency)
	if c.dcache != nil {
		dBacking = c.dcache
	}
	c.iPort = mem.NewPort(iBacking)
	c.dPort = mem.NewPort(dBacking)

	c.rat = rename.NewAliasTable(cfg.NumArchRegs)
	c.freeList = rename.NewFreeList(cfg.NumArchRegs, cfg.NumPhysRegs)
	c.prf = regfile.NewFile(cfg.NumPhysRegs)

	c.frontend = NewFrontend(c.iPort, c.bp)
	c.renamer = rename.NewStage(c.rat, c.freeList, c.prf)

	c.aluStation = rstation.New(cfg.StationDepth)
	c.lsuStation = rstation.New(cfg.StationDepth)
	c.bruStation = rstation.New(cfg.StationDepth)

	c.alu = exec.NewALU()
	c.lsu = exec.NewLSU(c.dPort)
	c.bru = exec.NewBRU()
	c.bus = exec.NewBus(c.alu, c.lsu, c.bru)

	c.robBuf = rob.New(cfg.ROBSize)

	return c
}

// SetPC sets the fetch program counter.
func (c *Core) SetPC(pc uint32) {
	c.frontend.SetPC(pc)
}

// PC returns the next fetch address.
func (c *Core) PC() uint32 {
	return c.frontend.PC()
}

// Tick advances the core by one cycle. Stages run in reverse pipeline
// order so each consumes state its producer latched in an earlier
// cycle.
func (c *Core) Tick() {
	if c.halted {
		return
	}
	c.stats.Cycles++

	c.commit()

	c.dPort.Tick()
	c.alu.Tick()
	c.lsu.Tick()
	c.bru.Tick()
	if res, ok := c.bru.Resolution(); ok {
		c.resolve(res)
	}

	c.writeback()
	c.issue()
	c.applyWakeup()
	c.dispatch()
	c.renameTick()
	c.frontend.Tick()
}

// commit retires at most one finished instruction from the head of
// the reorder buffer. The superseded tag of the retired mapping
// returns to the free list here and nowhere else.
func (c *Core) commit() {
	if !c.robBuf.CommitValid() {
		return
	}
	tag := c.robBuf.Head()
	e := c.robBuf.Commit()
	c.stats.Instructions++

	if e.DestUsed {
		c.freeList.Free(e.OldTag)
	}
	if c.retireObserver != nil {
		c.retireObserver(Retirement{
			ROBTag:   tag,
			PC:       e.PC,
			DestUsed: e.DestUsed,
			NewTag:   e.NewTag,
			OldTag:   e.OldTag,
		})
	}
	if c.haltPending && tag == c.haltTag {
		c.halted = true
	}
}

// resolve forwards a branch-unit verdict to the parked frontend and
// trains the predictor.
func (c *Core) resolve(res exec.Resolution) {
	c.stats.Branches++
	c.frontend.Resolve(res.PC, res.Taken, res.Target)
	c.bp.Update(res.PC, res.Taken, res.Target)
}

// writeback grants the completion bus: the winning result writes the
// register file, marks its reorder-buffer entry done, and latches the
// wakeup broadcast for this cycle's losers of the issue race.
func (c *Core) writeback() {
	res, ok := c.bus.Grant()
	if !ok {
		return
	}
	if res.DestUsed {
		c.prf.Write(res.DestTag, res.Value)
		c.wakeupTag = res.DestTag
		c.wakeupValid = true
	}
	c.robBuf.MarkDone(res.ROBTag)
}

// issue selects at most one ready entry per station and hands it to
// its unit with operand values read from the register file. Selection
// runs before this cycle's wakeup is applied, so a freshly woken
// entry waits one more cycle.
func (c *Core) issue() {
	if c.alu.CanIssue() {
		if idx, ok := c.aluStation.SelectReady(); ok {
			inst := c.aluStation.Take(idx)
			c.alu.Issue(inst, c.prf.Read(inst.Src1Tag), c.prf.Read(inst.Src2Tag))
		}
	}
	if c.lsu.CanIssue() {
		if idx, ok := c.lsuStation.SelectReady(); ok {
			inst := c.lsuStation.Take(idx)
			c.lsu.Issue(inst, c.prf.Read(inst.Src1Tag))
		}
	}
	if c.bru.CanIssue() {
		if idx, ok := c.bruStation.SelectReady(); ok {
			inst := c.bruStation.Take(idx)
			c.bru.Issue(inst, c.prf.Read(inst.Src1Tag), c.prf.Read(inst.Src2Tag))
		}
	}
}

func (c *Core) applyWakeup() {
	if !c.wakeupValid {
		return
	}
	c.aluStation.Wakeup(c.wakeupTag)
	c.lsuStation.Wakeup(c.wakeupTag)
	c.bruStation.Wakeup(c.wakeupTag)
	c.wakeupValid = false
}

// dispatch moves the renamed instruction into the reorder buffer and
// its reservation station. Source readiness is re-read from the
// register file so a wakeup that fired between rename and dispatch is
// not lost.
func (c *Core) dispatch() {
	inst, ok := c.renamer.Output()
	if !ok {
		return
	}
	if c.robBuf.Full() {
		c.stats.DispatchStalls++
		return
	}

	if inst.Halt || inst.Op == insts.OpUnknown {
		tag, _ := c.robBuf.Allocate(inst.PC, false, 0, 0)
		c.robBuf.MarkDone(tag)
		c.haltTag = tag
		c.haltPending = true
		c.renamer.Take()
		return
	}

	station := c.stationFor(inst.FU)
	if !station.CanPush() {
		c.stats.DispatchStalls++
		return
	}

	if !inst.Src1Ready && c.prf.Valid(inst.Src1Tag) {
		inst.Src1Ready = true
	}
	if !inst.Src2Ready && c.prf.Valid(inst.Src2Tag) {
		inst.Src2Ready = true
	}

	robTag, _ := c.robBuf.Allocate(inst.PC, inst.DestUsed, inst.NewTag, inst.OldTag)
	station.Push(inst, robTag)
	if inst.DestUsed {
		c.prf.Invalidate(inst.NewTag)
	}
	c.renamer.Take()
}

func (c *Core) stationFor(fu insts.FUClass) *rstation.Station {
	switch fu {
	case insts.FULSU:
		return c.lsuStation
	case insts.FUBRU:
		return c.bruStation
	default:
		return c.aluStation
	}
}

func (c *Core) renameTick() {
	op, pc, ok := c.frontend.Output()
	if !ok {
		return
	}
	if !c.renamer.CanAccept(op) {
		c.stats.RenameStalls++
		return
	}
	c.renamer.Accept(op, pc)
	c.frontend.Take()
}

// Halted returns true once the halt instruction has retired.
func (c *Core) Halted() bool {
	return c.halted
}

// ExitCode returns the value of a0 at halt.
func (c *Core) ExitCode() int64 {
	return int64(int32(c.RegValue(10)))
}

// RegValue returns the committed value of an architectural register,
// read through the alias table.
func (c *Core) RegValue(arch uint8) uint32 {
	return c.prf.Read(c.rat.Lookup(arch))
}

// Stats returns the performance counters.
func (c *Core) Stats() Stats {
	stats := c.stats
	stats.BusConflicts = c.bus.Conflicts()
	return stats
}

// PredictorStats returns the branch predictor counters.
func (c *Core) PredictorStats() predictor.Stats {
	return c.bp.Stats()
}

// Run executes until the core halts and returns the exit code.
func (c *Core) Run() int64 {
	for !c.halted {
		c.Tick()
	}
	return c.ExitCode()
}

// RunCycles executes at most the given number of cycles. It returns
// true if the core is still running.
func (c *Core) RunCycles(cycles uint64) bool {
	for i := uint64(0); i < cycles && !c.halted; i++ {
		c.Tick()
	}
	return !c.halted
}

// Reset returns the core to its power-on state. Memory contents are
// untouched.
func (c *Core) Reset() {
	c.rat.Reset()
	c.freeList = rename.NewFreeList(c.config.NumArchRegs, c.config.NumPhysRegs)
	c.prf.Reset()
	c.renamer = rename.NewStage(c.rat, c.freeList, c.prf)
	c.frontend.Reset()
	c.aluStation.Flush()
	c.lsuStation.Flush()
	c.bruStation.Flush()
	c.alu.Flush()
	c.lsu.Flush()
	c.bru.Flush()
	c.robBuf.Flush()
	c.bp.Reset()
	c.dPort.Flush()
	if c.icache != nil {
		c.icache.Reset()
	}
	if c.dcache != nil {
		c.dcache.Reset()
	}
	c.wakeupValid = false
	c.haltPending = false
	c.halted = false
	c.stats = Stats{}
}
