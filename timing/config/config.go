// Package config holds the tunable geometry of the simulated core
// and its JSON serialization.
package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// Config holds the core geometry. Every structure the backend sizes
// at construction time is configured here.
type Config struct {
	// NumArchRegs is the number of architectural registers. Fixed at
	// 32 for RV32I.
	NumArchRegs int `json:"num_arch_regs"`

	// NumPhysRegs is the number of physical registers. Must exceed
	// NumArchRegs, the surplus forms the free list.
	NumPhysRegs int `json:"num_phys_regs"`

	// ROBSize is the reorder-buffer capacity.
	ROBSize int `json:"rob_size"`

	// StationDepth is the number of slots in each reservation
	// station.
	StationDepth int `json:"station_depth"`

	// MemoryLatency is the flat memory access latency in cycles,
	// used when no cache sits in front of a port.
	MemoryLatency uint64 `json:"memory_latency"`

	// BHTSize is the number of branch-history counters. Must be a
	// power of 2.
	BHTSize uint32 `json:"bht_size"`

	// BTBSize is the number of branch-target-buffer entries. Must be
	// a power of 2.
	BTBSize uint32 `json:"btb_size"`
}

// DefaultConfig returns the default core geometry.
func DefaultConfig() *Config {
	return &Config{
		NumArchRegs:   32,
		NumPhysRegs:   64,
		ROBSize:       32,
		StationDepth:  8,
		MemoryLatency: 1,
		BHTSize:       1024,
		BTBSize:       256,
	}
}

// LoadConfig reads a Config from a JSON file. Fields absent from the
// file keep their defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return config, nil
}

// SaveConfig writes the Config to a JSON file.
func (c *Config) SaveConfig(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks the geometry for internal consistency.
func (c *Config) Validate() error {
	if c.NumArchRegs != 32 {
		return fmt.Errorf("num_arch_regs must be 32")
	}
	if c.NumPhysRegs <= c.NumArchRegs {
		return fmt.Errorf("num_phys_regs must be > %d", c.NumArchRegs)
	}
	if c.NumPhysRegs > 256 {
		return fmt.Errorf("num_phys_regs must fit an 8-bit tag")
	}
	if c.ROBSize <= 0 || c.ROBSize > 256 {
		return fmt.Errorf("rob_size must be in 1..256")
	}
	if c.StationDepth <= 0 {
		return fmt.Errorf("station_depth must be > 0")
	}
	if c.MemoryLatency == 0 {
		return fmt.Errorf("memory_latency must be > 0")
	}
	if c.BHTSize == 0 || c.BHTSize&(c.BHTSize-1) != 0 {
		return fmt.Errorf("bht_size must be a power of 2")
	}
	if c.BTBSize == 0 || c.BTBSize&(c.BTBSize-1) != 0 {
		return fmt.Errorf("btb_size must be a power of 2")
	}
	return nil
}

// Clone returns a copy of the Config.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}
