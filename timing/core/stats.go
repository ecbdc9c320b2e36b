package core

// Stats holds performance counters for the core.
type Stats struct {
	// Cycles is the total number of cycles simulated.
	Cycles uint64
	// Instructions is the number of instructions retired.
	Instructions uint64
	// RenameStalls counts cycles a decoded instruction waited on the
	// rename stage, either for the output buffer or for a free
	// physical tag.
	RenameStalls uint64
	// DispatchStalls counts cycles a renamed instruction waited for
	// reorder-buffer or station space.
	DispatchStalls uint64
	// BusConflicts counts cycles a finished result lost completion-bus
	// arbitration and had to retry.
	BusConflicts uint64
	// Branches is the number of resolved control instructions.
	Branches uint64
}

// IPC returns retired instructions per cycle.
func (s Stats) IPC() float64 {
	if s.Cycles == 0 {
		return 0
	}
	return float64(s.Instructions) / float64(s.Cycles)
}

// CPI returns cycles per retired instruction.
func (s Stats) CPI() float64 {
	if s.Instructions == 0 {
		return 0
	}
	return float64(s.Cycles) / float64(s.Instructions)
}
