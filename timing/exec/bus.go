package exec

// completer is the unit-side view the bus arbitrates over.
type completer interface {
	Output() (Result, bool)
	TakeOutput()
}

// Bus is the single-result completion bus. Each cycle it grants at
// most one unit in fixed priority order, ALU first, then the load
// unit, then the branch unit. Losing units keep their results and
// retry the next cycle.
type Bus struct {
	units []completer

	conflicts uint64
}

// NewBus creates a completion bus over the three units in priority
// order.
func NewBus(alu *ALU, lsu *LSU, bru *BRU) *Bus {
	return &Bus{
		units: []completer{alu, lsu, bru},
	}
}

// Grant picks the highest-priority pending result and drains it from
// its unit. It returns false when no unit has a result.
func (b *Bus) Grant() (Result, bool) {
	granted := false
	var result Result
	for _, u := range b.units {
		res, ok := u.Output()
		if !ok {
			continue
		}
		if granted {
			b.conflicts++
			continue
		}
		result = res
		u.TakeOutput()
		granted = true
	}
	return result, granted
}

// Conflicts returns the number of cycles a unit held a result while
// a higher-priority unit won the bus.
func (b *Bus) Conflicts() uint64 {
	return b.conflicts
}
