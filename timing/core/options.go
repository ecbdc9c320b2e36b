package core

import (
	"github.com/sarchlab/o3sim/timing/cache"
	"github.com/sarchlab/o3sim/timing/config"
	"github.com/sarchlab/o3sim/timing/predictor"
)

// Option configures a Core at construction time.
type Option func(*Core)

// WithConfig replaces the default core geometry.
func WithConfig(cfg *config.Config) Option {
	return func(c *Core) {
		c.config = cfg
	}
}

// WithPredictor replaces the default branch predictor.
func WithPredictor(bp *predictor.Predictor) Option {
	return func(c *Core) {
		c.bp = bp
	}
}

// WithICache places a cache in front of the fetch port.
func WithICache(ic *cache.Cache) Option {
	return func(c *Core) {
		c.icache = ic
	}
}

// WithDCache places a cache in front of the data port.
func WithDCache(dc *cache.Cache) Option {
	return func(c *Core) {
		c.dcache = dc
	}
}

// WithRetireObserver registers a callback invoked for every retired
// instruction, in program order.
func WithRetireObserver(fn func(Retirement)) Option {
	return func(c *Core) {
		c.retireObserver = fn
	}
}
