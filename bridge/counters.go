// Package bridge implements the cycle accounting shared between the
// processor agent and the picture unit agent.
//
// Every field is written by exactly one agent and accessed through
// sync/atomic, which gives sequentially consistent visibility across
// goroutines. No lock is involved.
package bridge

import "sync/atomic"

// Counters holds the processor and picture unit cycle counters.
//
// Both counters wrap on overflow. CPU is only advanced by the processor
// agent; PPU is only advanced by the picture unit agent.
type Counters struct {
	cpu atomic.Uint32
	ppu atomic.Uint32
}

// AdvanceCPU adds n cycles to the processor counter and returns the new value.
func (c *Counters) AdvanceCPU(n uint32) uint32 {
	return c.cpu.Add(n)
}

// AdvancePPU adds n cycles to the picture unit counter and returns the new value.
func (c *Counters) AdvancePPU(n uint32) uint32 {
	return c.ppu.Add(n)
}

// CPU returns the processor counter.
func (c *Counters) CPU() uint32 {
	return c.cpu.Load()
}

// PPU returns the picture unit counter.
func (c *Counters) PPU() uint32 {
	return c.ppu.Load()
}

// Backlog returns the number of cycles owed to the picture unit.
func (c *Counters) Backlog() uint32 {
	return Diff(c.cpu.Load(), c.ppu.Load())
}

// Reset sets both counters to zero. Only valid while the picture unit
// agent is paused.
func (c *Counters) Reset() {
	c.cpu.Store(0)
	c.ppu.Store(0)
}

// Diff returns the wrapping difference cpu - ppu.
func Diff(cpu, ppu uint32) uint32 {
	return cpu - ppu
}
