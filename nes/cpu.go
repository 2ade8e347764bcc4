package nes

// Status flags.
const (
	flagC = 0x01 // Carry
	flagZ = 0x02 // Zero
	flagI = 0x04 // Interrupt disable
	flagD = 0x08 // Decimal; stored but ignored.
	flagB = 0x10 // Break; only exists on the stack.
	flagU = 0x20 // Unused; always set on the stack.
	flagV = 0x40 // Overflow
	flagN = 0x80 // Negative
)

// Interrupt vectors.
const (
	vectorNMI   = 0xfffa
	vectorReset = 0xfffc
	vectorIRQ   = 0xfffe
)

// Power-on register values.
const (
	powerOnSP = 0xfd
	powerOnP  = flagU | flagI
)

// interruptCycles is the cost of servicing an interrupt.
const interruptCycles = 7

// cpu caches the processor registers for the duration of one step.
// The processor region is authoritative between steps.
type cpu struct {
	n      *NES
	a      uint8
	x      uint8
	y      uint8
	sp     uint8
	p      uint8
	pc     uint16
	cycles int
}

func (c *cpu) load() {
	r := c.n.cpu
	c.a = r.U8(cpuA)
	c.x = r.U8(cpuX)
	c.y = r.U8(cpuY)
	c.sp = r.U8(cpuSP)
	c.p = r.U8(cpuP)
	c.pc = r.U16(cpuPC)
	c.cycles = 0
}

func (c *cpu) store() {
	r := c.n.cpu
	r.SetU8(cpuA, c.a)
	r.SetU8(cpuX, c.x)
	r.SetU8(cpuY, c.y)
	r.SetU8(cpuSP, c.sp)
	r.SetU8(cpuP, c.p)
	r.SetU16(cpuPC, c.pc)
}

// step executes the instruction at pc.
func (c *cpu) step() {
	code := c.n.read(c.pc)
	op := &opcodes[code]
	c.pc++

	addr, crossed := c.address(op.mode)
	c.cycles += int(op.cycles)
	if crossed && op.pagePenalty {
		c.cycles++
	}

	op.exec(c, addr, op.mode)
}

// address resolves the operand address for the given mode and advances pc
// past the operand. It reports whether indexing crossed a page.
func (c *cpu) address(mode mode) (addr uint16, crossed bool) {
	n := c.n

	switch mode {
	case modeImmediate, modeRelative:
		addr = c.pc
		c.pc++
	case modeZeroPage:
		addr = uint16(n.read(c.pc))
		c.pc++
	case modeZeroPageX:
		addr = uint16(n.read(c.pc) + c.x)
		c.pc++
	case modeZeroPageY:
		addr = uint16(n.read(c.pc) + c.y)
		c.pc++
	case modeAbsolute:
		addr = n.read16(c.pc)
		c.pc += 2
	case modeAbsoluteX:
		base := n.read16(c.pc)
		addr = base + uint16(c.x)
		crossed = pageCrossed(base, addr)
		c.pc += 2
	case modeAbsoluteY:
		base := n.read16(c.pc)
		addr = base + uint16(c.y)
		crossed = pageCrossed(base, addr)
		c.pc += 2
	case modeIndirect:
		addr = n.read16bug(n.read16(c.pc))
		c.pc += 2
	case modeIndexedIndirect:
		zp := n.read(c.pc) + c.x
		addr = uint16(n.read(uint16(zp))) | uint16(n.read(uint16(zp+1)))<<8
		c.pc++
	case modeIndirectIndexed:
		zp := n.read(c.pc)
		base := uint16(n.read(uint16(zp))) | uint16(n.read(uint16(zp+1)))<<8
		addr = base + uint16(c.y)
		crossed = pageCrossed(base, addr)
		c.pc++
	}

	return addr, crossed
}

func pageCrossed(a, b uint16) bool {
	return a&0xff00 != b&0xff00
}

func (c *cpu) push(v uint8) {
	c.n.write(0x100|uint16(c.sp), v)
	c.sp--
}

func (c *cpu) pull() uint8 {
	c.sp++
	return c.n.read(0x100 | uint16(c.sp))
}

func (c *cpu) push16(v uint16) {
	c.push(uint8(v >> 8))
	c.push(uint8(v))
}

func (c *cpu) pull16() uint16 {
	lo := uint16(c.pull())
	hi := uint16(c.pull())
	return hi<<8 | lo
}

// interrupt pushes the return state and jumps through vector.
func (c *cpu) interrupt(vector uint16, brk bool) {
	c.push16(c.pc)

	p := c.p | flagU
	if brk {
		p |= flagB
	} else {
		p &^= flagB
	}

	c.push(p)
	c.p |= flagI
	c.pc = c.n.read16(vector)
}

func (c *cpu) flag(f uint8) bool {
	return c.p&f != 0
}

func (c *cpu) setFlag(f uint8, on bool) {
	if on {
		c.p |= f
	} else {
		c.p &^= f
	}
}

func (c *cpu) setZN(v uint8) {
	c.setFlag(flagZ, v == 0)
	c.setFlag(flagN, v&0x80 != 0)
}

func (c *cpu) compare(a, b uint8) {
	c.setZN(a - b)
	c.setFlag(flagC, a >= b)
}

func (c *cpu) branch(addr uint16, taken bool) {
	if !taken {
		return
	}

	offset := int8(c.n.read(addr))
	target := c.pc + uint16(offset)

	c.cycles++
	if pageCrossed(c.pc, target) {
		c.cycles++
	}
	c.pc = target
}
