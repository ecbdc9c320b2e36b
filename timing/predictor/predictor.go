// Package predictor implements a bimodal branch predictor with a
// branch target buffer. The core trains it from resolved branches and
// reports its accuracy alongside the pipeline statistics.
package predictor

// Config holds the predictor table geometry. Both sizes must be
// powers of two.
type Config struct {
	// BHTSize is the number of 2-bit counters in the branch history
	// table.
	BHTSize uint32
	// BTBSize is the number of entries in the branch target buffer.
	BTBSize uint32
}

// DefaultConfig returns the default table geometry.
func DefaultConfig() Config {
	return Config{
		BHTSize: 1024,
		BTBSize: 256,
	}
}

// Stats accumulates prediction outcomes.
type Stats struct {
	Predictions    uint64
	Correct        uint64
	Mispredictions uint64
	BTBHits        uint64
	BTBMisses      uint64
}

// Accuracy returns the fraction of resolved branches whose direction
// was predicted correctly, as a percentage.
func (s Stats) Accuracy() float64 {
	resolved := s.Correct + s.Mispredictions
	if resolved == 0 {
		return 0
	}
	return float64(s.Correct) / float64(resolved) * 100
}

// BTBHitRate returns the target-buffer hit rate as a percentage.
func (s Stats) BTBHitRate() float64 {
	total := s.BTBHits + s.BTBMisses
	if total == 0 {
		return 0
	}
	return float64(s.BTBHits) / float64(total) * 100
}

// Prediction is the predictor's answer for one fetch PC.
type Prediction struct {
	Taken       bool
	Target      uint32
	TargetKnown bool
}

type btbEntry struct {
	pc     uint32
	target uint32
}

// Predictor is a 2-bit saturating-counter bimodal predictor paired
// with a direct-mapped branch target buffer. Counter states run from
// 0, strongly not taken, to 3, strongly taken.
type Predictor struct {
	bht []uint8

	btb      []btbEntry
	btbValid []bool

	stats Stats
}

// New creates a predictor with the given table geometry. Every
// counter starts weakly taken.
func New(config Config) *Predictor {
	if config.BHTSize == 0 {
		config.BHTSize = 1024
	}
	if config.BTBSize == 0 {
		config.BTBSize = 256
	}

	p := &Predictor{
		bht:      make([]uint8, config.BHTSize),
		btb:      make([]btbEntry, config.BTBSize),
		btbValid: make([]bool, config.BTBSize),
	}
	for i := range p.bht {
		p.bht[i] = 2
	}
	return p
}

func (p *Predictor) bhtIndex(pc uint32) uint32 {
	return (pc >> 2) & uint32(len(p.bht)-1)
}

func (p *Predictor) btbIndex(pc uint32) uint32 {
	return (pc >> 2) & uint32(len(p.btb)-1)
}

// Predict returns the direction and, on a BTB hit, the target for the
// branch at pc.
func (p *Predictor) Predict(pc uint32) Prediction {
	pred := Prediction{
		Taken: p.bht[p.bhtIndex(pc)] >= 2,
	}

	idx := p.btbIndex(pc)
	if p.btbValid[idx] && p.btb[idx].pc == pc {
		pred.Target = p.btb[idx].target
		pred.TargetKnown = true
		p.stats.BTBHits++
	} else {
		p.stats.BTBMisses++
	}

	p.stats.Predictions++
	return pred
}

// Update trains the predictor with a resolved branch. Taken branches
// also install their target in the BTB.
func (p *Predictor) Update(pc uint32, taken bool, target uint32) {
	idx := p.bhtIndex(pc)
	counter := p.bht[idx]

	if (counter >= 2) == taken {
		p.stats.Correct++
	} else {
		p.stats.Mispredictions++
	}

	if taken && counter < 3 {
		p.bht[idx] = counter + 1
	} else if !taken && counter > 0 {
		p.bht[idx] = counter - 1
	}

	if taken {
		i := p.btbIndex(pc)
		p.btb[i] = btbEntry{pc: pc, target: target}
		p.btbValid[i] = true
	}
}

// Stats returns the accumulated prediction statistics.
func (p *Predictor) Stats() Stats {
	return p.stats
}

// Reset clears the tables and statistics.
func (p *Predictor) Reset() {
	for i := range p.bht {
		p.bht[i] = 2
	}
	for i := range p.btbValid {
		p.btbValid[i] = false
	}
	p.stats = Stats{}
}
