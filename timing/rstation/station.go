// Package rstation implements the reservation stations that hold
// dispatched instructions until their source operands are ready and
// the issue-selection logic that picks one per cycle per station.
package rstation

import (
	"github.com/sarchlab/o3sim/insts"
	"github.com/sarchlab/o3sim/timing/rename"
)

// Entry is one reservation-station slot.
type Entry struct {
	Occupied bool

	Inst   rename.Inst
	ROBTag uint8

	Src1Ready bool
	Src2Ready bool
}

// IssuedInst is an instruction leaving a station for its execution
// unit.
type IssuedInst struct {
	PC uint32
	Op insts.Op

	Imm    uint32
	UseImm bool

	IsLoad   bool
	MemSize  uint8
	Unsigned bool

	IsBranch bool
	IsJump   bool

	Src1Tag uint8
	Src2Tag uint8

	DestUsed bool
	DestTag  uint8
	ROBTag   uint8
}

// Station is a fixed-depth reservation station feeding one execution
// unit.
type Station struct {
	entries []Entry
}

// New creates a station with the given number of slots.
func New(depth int) *Station {
	return &Station{
		entries: make([]Entry, depth),
	}
}

// Depth returns the number of slots.
func (s *Station) Depth() int {
	return len(s.entries)
}

// CanPush returns true when at least one slot is free.
func (s *Station) CanPush() bool {
	for i := range s.entries {
		if !s.entries[i].Occupied {
			return true
		}
	}
	return false
}

// Push places a dispatched instruction into the lowest-numbered free
// slot. The caller must have checked CanPush in the same cycle.
func (s *Station) Push(inst rename.Inst, robTag uint8) {
	for i := range s.entries {
		if s.entries[i].Occupied {
			continue
		}
		s.entries[i] = Entry{
			Occupied:  true,
			Inst:      inst,
			ROBTag:    robTag,
			Src1Ready: inst.Src1Ready,
			Src2Ready: inst.Src2Ready,
		}
		return
	}
	panic("rstation: push into full station")
}

// SelectReady returns the index of the lowest-numbered entry whose
// sources are both ready, or false when nothing can issue.
func (s *Station) SelectReady() (int, bool) {
	for i := range s.entries {
		e := &s.entries[i]
		if e.Occupied && e.Src1Ready && e.Src2Ready {
			return i, true
		}
	}
	return 0, false
}

// Take removes the entry at idx and returns it in issue form.
func (s *Station) Take(idx int) IssuedInst {
	e := &s.entries[idx]
	issued := IssuedInst{
		PC:       e.Inst.PC,
		Op:       e.Inst.Op,
		Imm:      e.Inst.Imm,
		UseImm:   e.Inst.UseImm,
		IsLoad:   e.Inst.IsLoad,
		MemSize:  e.Inst.MemSize,
		Unsigned: e.Inst.Unsigned,
		IsBranch: e.Inst.IsBranch,
		IsJump:   e.Inst.IsJump,
		Src1Tag:  e.Inst.Src1Tag,
		Src2Tag:  e.Inst.Src2Tag,
		DestUsed: e.Inst.DestUsed,
		DestTag:  e.Inst.NewTag,
		ROBTag:   e.ROBTag,
	}
	e.Occupied = false
	return issued
}

// Wakeup marks every waiting source that matches the broadcast tag as
// ready.
func (s *Station) Wakeup(tag uint8) {
	for i := range s.entries {
		e := &s.entries[i]
		if !e.Occupied {
			continue
		}
		if !e.Src1Ready && e.Inst.Src1Tag == tag {
			e.Src1Ready = true
		}
		if !e.Src2Ready && e.Inst.Src2Tag == tag {
			e.Src2Ready = true
		}
	}
}

// Occupancy returns the number of occupied slots.
func (s *Station) Occupancy() int {
	n := 0
	for i := range s.entries {
		if s.entries[i].Occupied {
			n++
		}
	}
	return n
}

// Flush empties every slot.
func (s *Station) Flush() {
	for i := range s.entries {
		s.entries[i] = Entry{}
	}
}
