package bridge

import (
	"log"
	"sync/atomic"
	"time"

	"github.com/hexaflex/dnes/core"
)

// Stepper advances the picture unit. It is satisfied by core.Core.
type Stepper interface {
	StepPPU(cycles int) core.Interrupt
}

// Bridge translates processor progress into picture unit lines.
type Bridge struct {
	counters *Counters
	latch    *Latch
	ppu      Stepper
	line     uint32
	dropped  [core.None]time.Time // last time a dropped edge was logged, per kind.
	drops    atomic.Uint64
}

// New creates a bridge stepping ppu one line of cyclesPerLine at a time.
func New(counters *Counters, latch *Latch, ppu Stepper, cyclesPerLine int) *Bridge {
	if cyclesPerLine < 1 {
		cyclesPerLine = 1
	}
	return &Bridge{
		counters: counters,
		latch:    latch,
		ppu:      ppu,
		line:     uint32(cyclesPerLine),
	}
}

// Poll runs all whole lines owed to the picture unit and returns how many
// were run. The processor counter is read exactly once.
func (b *Bridge) Poll() int {
	cpu := b.counters.CPU()
	ppu := b.counters.PPU()
	backlog := Diff(cpu, ppu)

	lines := 0
	for backlog >= b.line {
		irq := b.ppu.StepPPU(int(b.line))
		b.counters.AdvancePPU(b.line)
		backlog -= b.line
		lines++

		if !b.latch.Raise(irq) {
			b.drop(irq)
		}
	}

	return lines
}

// Dropped returns the number of interrupt edges discarded because the
// latch was occupied.
func (b *Bridge) Dropped() uint64 {
	return b.drops.Load()
}

// drop records an edge lost to an occupied latch.
func (b *Bridge) drop(irq core.Interrupt) {
	b.drops.Add(1)

	if irq >= core.None {
		return
	}

	now := time.Now()
	if now.Sub(b.dropped[irq]) < time.Second {
		return
	}
	b.dropped[irq] = now
	log.Println("bridge: dropped", irq, "edge; latch holds", b.latch.Peek())
}
