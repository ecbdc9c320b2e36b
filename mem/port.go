package mem

// Backing is the word-read interface behind a Port: plain memory
// answers with a one-cycle latency, a cache answers with its
// hit/miss latency.
type Backing interface {
	// ReadWord returns the aligned word at addr and the number of
	// cycles until the response is visible on the port. Latency must
	// be at least 1.
	ReadWord(addr uint32) (value uint32, latency uint64)
}

// FixedLatency wraps a backing store so every access takes the same
// number of cycles, regardless of what the store itself reports.
func FixedLatency(backing Backing, cycles uint64) Backing {
	return &fixedLatency{backing: backing, cycles: cycles}
}

type fixedLatency struct {
	backing Backing
	cycles  uint64
}

func (f *fixedLatency) ReadWord(addr uint32) (uint32, uint64) {
	value, _ := f.backing.ReadWord(addr)
	return value, f.cycles
}

// Port models a single-outstanding-request memory port. A request
// issued in cycle T produces a response in cycle T+latency; the
// response is visible for exactly one cycle.
type Port struct {
	backing Backing

	pending   bool
	addr      uint32
	remaining uint64
	data      uint32

	respValid bool
	respData  uint32
	respAddr  uint32
}

// NewPort creates a port in front of the given backing store.
func NewPort(backing Backing) *Port {
	return &Port{backing: backing}
}

// CanRequest returns true when no request is outstanding.
func (p *Port) CanRequest() bool {
	return !p.pending
}

// Request issues a read for the word containing addr. Only one
// request may be outstanding at a time. The backing store is accessed
// once, at request time; the value is held until its latency elapses.
func (p *Port) Request(addr uint32) {
	data, latency := p.backing.ReadWord(addr &^ 3)
	if latency == 0 {
		latency = 1
	}

	p.pending = true
	p.addr = addr
	p.remaining = latency
	p.data = data
}

// Tick advances the port by one cycle. The previous response, if any,
// is dropped; a request whose latency has elapsed becomes this
// cycle's response.
func (p *Port) Tick() {
	p.respValid = false

	if !p.pending {
		return
	}

	p.remaining--
	if p.remaining == 0 {
		p.respData = p.data
		p.respAddr = p.addr
		p.respValid = true
		p.pending = false
	}
}

// Response returns this cycle's response word, the address it was
// requested for, and whether a response is present.
func (p *Port) Response() (uint32, uint32, bool) {
	return p.respData, p.respAddr, p.respValid
}

// Flush drops any outstanding request and response.
func (p *Port) Flush() {
	p.pending = false
	p.respValid = false
}
