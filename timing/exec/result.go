// Package exec implements the execution units of the backend, the
// integer ALU, the load unit, and the branch unit, together with the
// completion bus that arbitrates their results into the register file
// and reorder buffer.
package exec

// Result is one completed instruction leaving an execution unit over
// the completion bus.
type Result struct {
	ROBTag uint8

	// DestUsed gates the register write. A result without a
	// destination still travels the bus so the reorder buffer learns
	// the instruction is done.
	DestUsed bool
	DestTag  uint8
	Value    uint32
}
