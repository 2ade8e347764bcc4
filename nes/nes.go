// Package nes implements a reference NES core whose entire emulated state
// lives in the arena regions it is given.
//
// The processor agent drives StepCPU and the bus; the picture unit agent
// drives StepPPU. Both touch the PPU registers and video memory in the
// system region without synchronization, the way the real hardware shares
// its buses. A torn read there shows up as a single glitched line at worst.
package nes

import (
	"log"

	"github.com/hexaflex/dnes/arena"
	"github.com/hexaflex/dnes/core"
	"github.com/pkg/errors"
)

// Registers holds a snapshot of the processor registers.
type Registers struct {
	A, X, Y, SP, P uint8
	PC             uint16
}

// NES implements core.Core.
type NES struct {
	cpu  *arena.Region
	sys  *arena.Region
	pic  *arena.Region
	fb   *arena.Region
	geom arena.Geometry
	opt  core.DrawOption
	cart *Cartridge
	c    cpu
}

var _ core.Core = (*NES)(nil)

// New creates a core drawing an unscaled picture in RGBA8888.
func New() *NES {
	n := &NES{}
	n.c.n = n
	n.opt = normalizeOption(core.DrawOption{})
	return n
}

// normalizeOption fills in defaults for unset draw option fields.
func normalizeOption(opt core.DrawOption) core.DrawOption {
	opt.Scale = opt.EffectiveScale()
	if opt.Width <= 0 {
		opt.Width = ScreenWidth * opt.Scale
	}
	if opt.Height <= 0 {
		opt.Height = ScreenHeight * opt.Scale
	}
	return opt
}

// Sizes returns the region sizes. The framebuffer follows the draw option.
func (n *NES) Sizes() arena.Sizes {
	return arena.Sizes{
		Framebuffer: arena.Geometry{
			Width:         n.opt.Width,
			Height:        n.opt.Height,
			BytesPerPixel: core.BytesPerPixel,
		},
		Processor: ProcessorSize,
		System:    SystemSize,
		Picture:   PictureSize,
	}
}

// Init binds the core to a.
func (n *NES) Init(a *arena.Arena) error {
	s := a.Sizes()

	switch {
	case s.Processor < ProcessorSize:
		return errors.Errorf("processor region too small: %d < %d", s.Processor, ProcessorSize)
	case s.System < SystemSize:
		return errors.Errorf("system region too small: %d < %d", s.System, SystemSize)
	case s.Picture < PictureSize:
		return errors.Errorf("picture region too small: %d < %d", s.Picture, PictureSize)
	case s.Framebuffer.BytesPerPixel != core.BytesPerPixel:
		return errors.Errorf("unsupported framebuffer depth: %d", s.Framebuffer.BytesPerPixel)
	}

	n.cpu = a.Processor()
	n.sys = a.System()
	n.pic = a.Picture()
	n.fb = a.Framebuffer()
	n.geom = s.Framebuffer

	n.cpu.Zero()
	n.sys.Zero()
	n.pic.Zero()
	n.storeOption()
	return nil
}

// Timing returns the NTSC line and frame costs.
func (n *NES) Timing() core.Timing {
	return core.Timing{
		CyclesPerFrame: CyclesPerFrame,
		CyclesPerLine:  CyclesPerLine,
	}
}

// LoadROM parses an iNES image. The cartridge refers to rom directly.
func (n *NES) LoadROM(rom []byte) error {
	cart, err := ParseCartridge(rom)
	if err != nil {
		return err
	}

	n.cart = cart
	log.Println("nes: loaded", cart.Header)
	return nil
}

// Cartridge returns the loaded cartridge, or nil.
func (n *NES) Cartridge() *Cartridge {
	return n.cart
}

// Reset returns all regions to their power-on state. The draw option and
// the controller state survive a reset.
func (n *NES) Reset() {
	pad1, pad2 := n.sys.U8(padButtons), n.sys.U8(padButtons+1)

	n.cpu.Zero()
	n.sys.Zero()
	n.pic.Zero()
	n.storeOption()

	n.sys.SetU8(padButtons, pad1)
	n.sys.SetU8(padButtons+1, pad2)
	n.pic.SetU16(picLine, powerOnLine)

	if n.cart != nil && len(n.cart.Trainer) > 0 {
		copy(n.sys.Slice(prgRAMAddr+trainerAddr-0x6000, trainerSize), n.cart.Trainer)
	}

	c := &n.c
	c.load()
	c.sp = powerOnSP
	c.p = powerOnP
	c.pc = n.read16(vectorReset)
	c.store()
}

// StepCPU executes one instruction, or services a pending interrupt or
// DMA stall, and returns its cost in cycles.
func (n *NES) StepCPU() int {
	r := n.cpu

	if stall := int(r.U16(cpuStall)); stall > 0 {
		r.SetU16(cpuStall, 0)
		r.SetU32(cpuCycles, r.U32(cpuCycles)+uint32(stall))
		return stall
	}

	c := &n.c
	c.load()

	switch {
	case r.U8(cpuNMI) != 0:
		r.SetU8(cpuNMI, 0)
		c.interrupt(vectorNMI, false)
		c.cycles = interruptCycles

	case r.U8(cpuIRQ) != 0 && !c.flag(flagI):
		r.SetU8(cpuIRQ, 0)
		c.interrupt(vectorIRQ, false)
		c.cycles = interruptCycles

	default:
		c.step()
	}

	c.store()
	r.SetU32(cpuCycles, r.U32(cpuCycles)+uint32(c.cycles))
	return c.cycles
}

// Interrupt delivers an interrupt. NMI and IRQ are serviced before the next
// instruction; RESET and BRK take effect immediately.
func (n *NES) Interrupt(irq core.Interrupt) {
	c := &n.c

	switch irq {
	case core.NMI:
		n.cpu.SetU8(cpuNMI, 1)
	case core.IRQ:
		n.cpu.SetU8(cpuIRQ, 1)
	case core.RESET:
		c.load()
		c.sp -= 3
		c.p |= flagI
		c.pc = n.read16(vectorReset)
		c.store()
	case core.BRK:
		c.load()
		c.interrupt(vectorIRQ, true)
		c.store()
	}
}

// Registers returns the current processor registers.
func (n *NES) Registers() Registers {
	r := n.cpu
	return Registers{
		A:  r.U8(cpuA),
		X:  r.U8(cpuX),
		Y:  r.U8(cpuY),
		SP: r.U8(cpuSP),
		P:  r.U8(cpuP),
		PC: r.U16(cpuPC),
	}
}

// Cycles returns the number of processor cycles since the last reset.
func (n *NES) Cycles() uint32 {
	return n.cpu.U32(cpuCycles)
}

// Frame returns the number of frames the picture unit completed since the
// last reset.
func (n *NES) Frame() uint32 {
	return n.pic.U32(picFrame)
}

// Line returns the line the picture unit runs next.
func (n *NES) Line() int {
	return int(n.pic.U16(picLine))
}

// Peek reads a byte from processor address space without side effects on
// RAM. Reads from registers with read side effects return 0.
func (n *NES) Peek(addr uint16) uint8 {
	if addr >= 0x2000 && addr < 0x6000 {
		return 0
	}
	return n.read(addr)
}

// SetDrawOption sets the draw option. Before Init it also decides the
// framebuffer geometry; afterwards drawing is clipped to the allocated
// framebuffer.
func (n *NES) SetDrawOption(opt core.DrawOption) {
	n.opt = normalizeOption(opt)
	if n.pic != nil {
		n.storeOption()
	}
}

// DrawOption returns the current draw option.
func (n *NES) DrawOption() core.DrawOption {
	return n.opt
}

func (n *NES) storeOption() {
	p := n.pic
	p.SetU16(optWidth, uint16(n.opt.Width))
	p.SetU16(optHeight, uint16(n.opt.Height))
	p.SetU16(optOffsetX, uint16(int16(n.opt.OffsetX)))
	p.SetU16(optOffsetY, uint16(int16(n.opt.OffsetY)))
	p.SetU8(optScale, uint8(n.opt.Scale))
	p.SetU8(optFormat, uint8(n.opt.Format))
}

func (n *NES) loadOption() core.DrawOption {
	p := n.pic
	return core.DrawOption{
		Width:   int(p.U16(optWidth)),
		Height:  int(p.U16(optHeight)),
		OffsetX: int(int16(p.U16(optOffsetX))),
		OffsetY: int(int16(p.U16(optOffsetY))),
		Scale:   int(p.U8(optScale)),
		Format:  core.PixelFormat(p.U8(optFormat)),
	}
}
