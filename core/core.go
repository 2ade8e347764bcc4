// Package core defines the contract between the scheduler and an emulation core.
//
// A core owns no memory of its own for emulated state: everything it mutates
// lives in the arena regions handed to Init. The scheduler drives the core
// from two agents; StepCPU, Interrupt, UpdateKey, LoadROM and Reset are only
// called by the primary agent while StepPPU is only called by the secondary
// agent.
package core

import "github.com/hexaflex/dnes/arena"

// Core represents an emulation core.
type Core interface {
	// Sizes yields the region sizes the core needs. The framebuffer
	// geometry follows the most recent draw option.
	Sizes() arena.Sizes

	// Init binds the core to the given arena and initializes the
	// processor, system and picture unit regions.
	Init(*arena.Arena) error

	// Timing yields the core's fixed cycle costs.
	Timing() Timing

	// StepCPU executes a single processor instruction and returns
	// the number of cycles it took.
	StepCPU() int

	// StepPPU advances the picture unit by the given number of processor
	// cycles. It returns at most one interrupt edge, or None.
	StepPPU(cycles int) Interrupt

	// Interrupt delivers an interrupt to the processor.
	Interrupt(Interrupt)

	// LoadROM hands the ROM image to the core. The core takes ownership
	// of rom. The caller must Reset the core after a successful load.
	LoadROM(rom []byte) error

	// Reset returns all regions to their power-on state and raises RESET.
	Reset()

	// UpdateKey applies a controller event for the given player.
	UpdateKey(player int, ev KeyEvent)

	// SetDrawOption configures how the picture unit writes the framebuffer.
	SetDrawOption(DrawOption)
}

// Timing defines the fixed cycle costs of a core.
type Timing struct {
	CyclesPerFrame int // Processor cycles in one rendered frame.
	CyclesPerLine  int // Processor cycles in one picture unit line.
}

// Player indices.
const (
	Player1 = 0
	Player2 = 1
)

// Interrupt identifies an interrupt kind.
type Interrupt uint8

// Known interrupts.
const (
	NMI Interrupt = iota
	RESET
	IRQ
	BRK
	None
)

func (i Interrupt) String() string {
	switch i {
	case NMI:
		return "NMI"
	case RESET:
		return "RESET"
	case IRQ:
		return "IRQ"
	case BRK:
		return "BRK"
	case None:
		return "none"
	}
	return "invalid"
}
