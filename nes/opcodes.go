package nes

// mode defines an addressing mode.
type mode uint8

// Known addressing modes.
const (
	modeImplied mode = iota
	modeAccumulator
	modeImmediate
	modeZeroPage
	modeZeroPageX
	modeZeroPageY
	modeAbsolute
	modeAbsoluteX
	modeAbsoluteY
	modeIndirect
	modeIndexedIndirect
	modeIndirectIndexed
	modeRelative
)

// operandSize returns the number of operand bytes for the mode.
func (m mode) operandSize() int {
	switch m {
	case modeImplied, modeAccumulator:
		return 0
	case modeAbsolute, modeAbsoluteX, modeAbsoluteY, modeIndirect:
		return 2
	}
	return 1
}

type execFunc func(c *cpu, addr uint16, m mode)

// opcode describes a single instruction encoding.
type opcode struct {
	name        string
	mode        mode
	cycles      uint8
	pagePenalty bool
	exec        execFunc
}

var opcodes [256]opcode

// Name returns the mnemonic for the given opcode, or "???" for
// undocumented encodings.
func Name(code uint8) string {
	return opcodes[code].name
}

// Size returns the encoded size of the given opcode in bytes.
func Size(code uint8) int {
	return 1 + opcodes[code].mode.operandSize()
}

func init() {
	for i := range opcodes {
		opcodes[i] = opcode{"???", modeImplied, 2, false, (*cpu).nop}
	}

	// Instructions sharing the ALU encoding layout.
	alu := func(base uint8, name string, fn execFunc) {
		set(base+0x08, name, modeImmediate, 2, false, fn)
		set(base+0x04, name, modeZeroPage, 3, false, fn)
		set(base+0x14, name, modeZeroPageX, 4, false, fn)
		set(base+0x0c, name, modeAbsolute, 4, false, fn)
		set(base+0x1c, name, modeAbsoluteX, 4, true, fn)
		set(base+0x18, name, modeAbsoluteY, 4, true, fn)
		set(base+0x00, name, modeIndexedIndirect, 6, false, fn)
		set(base+0x10, name, modeIndirectIndexed, 5, true, fn)
	}

	alu(0x61, "ADC", (*cpu).adc)
	alu(0x21, "AND", (*cpu).and)
	alu(0xc1, "CMP", (*cpu).cmp)
	alu(0x41, "EOR", (*cpu).eor)
	alu(0xa1, "LDA", (*cpu).lda)
	alu(0x01, "ORA", (*cpu).ora)
	alu(0xe1, "SBC", (*cpu).sbc)

	set(0x85, "STA", modeZeroPage, 3, false, (*cpu).sta)
	set(0x95, "STA", modeZeroPageX, 4, false, (*cpu).sta)
	set(0x8d, "STA", modeAbsolute, 4, false, (*cpu).sta)
	set(0x9d, "STA", modeAbsoluteX, 5, false, (*cpu).sta)
	set(0x99, "STA", modeAbsoluteY, 5, false, (*cpu).sta)
	set(0x81, "STA", modeIndexedIndirect, 6, false, (*cpu).sta)
	set(0x91, "STA", modeIndirectIndexed, 6, false, (*cpu).sta)

	// Read-modify-write shifts.
	shift := func(base uint8, name string, fn execFunc) {
		set(base+0x04, name, modeAccumulator, 2, false, fn)
		set(base+0x00, name, modeZeroPage, 5, false, fn)
		set(base+0x10, name, modeZeroPageX, 6, false, fn)
		set(base+0x08, name, modeAbsolute, 6, false, fn)
		set(base+0x18, name, modeAbsoluteX, 7, false, fn)
	}

	shift(0x06, "ASL", (*cpu).asl)
	shift(0x26, "ROL", (*cpu).rol)
	shift(0x46, "LSR", (*cpu).lsr)
	shift(0x66, "ROR", (*cpu).ror)

	for _, v := range []struct {
		base uint8
		name string
		fn   execFunc
	}{{0xc6, "DEC", (*cpu).dec}, {0xe6, "INC", (*cpu).inc}} {
		set(v.base+0x00, v.name, modeZeroPage, 5, false, v.fn)
		set(v.base+0x10, v.name, modeZeroPageX, 6, false, v.fn)
		set(v.base+0x08, v.name, modeAbsolute, 6, false, v.fn)
		set(v.base+0x18, v.name, modeAbsoluteX, 7, false, v.fn)
	}

	set(0xa2, "LDX", modeImmediate, 2, false, (*cpu).ldx)
	set(0xa6, "LDX", modeZeroPage, 3, false, (*cpu).ldx)
	set(0xb6, "LDX", modeZeroPageY, 4, false, (*cpu).ldx)
	set(0xae, "LDX", modeAbsolute, 4, false, (*cpu).ldx)
	set(0xbe, "LDX", modeAbsoluteY, 4, true, (*cpu).ldx)

	set(0xa0, "LDY", modeImmediate, 2, false, (*cpu).ldy)
	set(0xa4, "LDY", modeZeroPage, 3, false, (*cpu).ldy)
	set(0xb4, "LDY", modeZeroPageX, 4, false, (*cpu).ldy)
	set(0xac, "LDY", modeAbsolute, 4, false, (*cpu).ldy)
	set(0xbc, "LDY", modeAbsoluteX, 4, true, (*cpu).ldy)

	set(0x86, "STX", modeZeroPage, 3, false, (*cpu).stx)
	set(0x96, "STX", modeZeroPageY, 4, false, (*cpu).stx)
	set(0x8e, "STX", modeAbsolute, 4, false, (*cpu).stx)

	set(0x84, "STY", modeZeroPage, 3, false, (*cpu).sty)
	set(0x94, "STY", modeZeroPageX, 4, false, (*cpu).sty)
	set(0x8c, "STY", modeAbsolute, 4, false, (*cpu).sty)

	set(0xe0, "CPX", modeImmediate, 2, false, (*cpu).cpx)
	set(0xe4, "CPX", modeZeroPage, 3, false, (*cpu).cpx)
	set(0xec, "CPX", modeAbsolute, 4, false, (*cpu).cpx)

	set(0xc0, "CPY", modeImmediate, 2, false, (*cpu).cpy)
	set(0xc4, "CPY", modeZeroPage, 3, false, (*cpu).cpy)
	set(0xcc, "CPY", modeAbsolute, 4, false, (*cpu).cpy)

	set(0x24, "BIT", modeZeroPage, 3, false, (*cpu).bit)
	set(0x2c, "BIT", modeAbsolute, 4, false, (*cpu).bit)

	set(0x10, "BPL", modeRelative, 2, false, (*cpu).bpl)
	set(0x30, "BMI", modeRelative, 2, false, (*cpu).bmi)
	set(0x50, "BVC", modeRelative, 2, false, (*cpu).bvc)
	set(0x70, "BVS", modeRelative, 2, false, (*cpu).bvs)
	set(0x90, "BCC", modeRelative, 2, false, (*cpu).bcc)
	set(0xb0, "BCS", modeRelative, 2, false, (*cpu).bcs)
	set(0xd0, "BNE", modeRelative, 2, false, (*cpu).bne)
	set(0xf0, "BEQ", modeRelative, 2, false, (*cpu).beq)

	set(0x4c, "JMP", modeAbsolute, 3, false, (*cpu).jmp)
	set(0x6c, "JMP", modeIndirect, 5, false, (*cpu).jmp)
	set(0x20, "JSR", modeAbsolute, 6, false, (*cpu).jsr)
	set(0x60, "RTS", modeImplied, 6, false, (*cpu).rts)
	set(0x40, "RTI", modeImplied, 6, false, (*cpu).rti)
	set(0x00, "BRK", modeImplied, 7, false, (*cpu).brk)

	set(0x48, "PHA", modeImplied, 3, false, (*cpu).pha)
	set(0x08, "PHP", modeImplied, 3, false, (*cpu).php)
	set(0x68, "PLA", modeImplied, 4, false, (*cpu).pla)
	set(0x28, "PLP", modeImplied, 4, false, (*cpu).plp)

	set(0x18, "CLC", modeImplied, 2, false, (*cpu).clc)
	set(0x38, "SEC", modeImplied, 2, false, (*cpu).sec)
	set(0x58, "CLI", modeImplied, 2, false, (*cpu).cli)
	set(0x78, "SEI", modeImplied, 2, false, (*cpu).sei)
	set(0xb8, "CLV", modeImplied, 2, false, (*cpu).clv)
	set(0xd8, "CLD", modeImplied, 2, false, (*cpu).cld)
	set(0xf8, "SED", modeImplied, 2, false, (*cpu).sed)

	set(0xaa, "TAX", modeImplied, 2, false, (*cpu).tax)
	set(0xa8, "TAY", modeImplied, 2, false, (*cpu).tay)
	set(0xba, "TSX", modeImplied, 2, false, (*cpu).tsx)
	set(0x8a, "TXA", modeImplied, 2, false, (*cpu).txa)
	set(0x9a, "TXS", modeImplied, 2, false, (*cpu).txs)
	set(0x98, "TYA", modeImplied, 2, false, (*cpu).tya)

	set(0xe8, "INX", modeImplied, 2, false, (*cpu).inx)
	set(0xc8, "INY", modeImplied, 2, false, (*cpu).iny)
	set(0xca, "DEX", modeImplied, 2, false, (*cpu).dex)
	set(0x88, "DEY", modeImplied, 2, false, (*cpu).dey)

	set(0xea, "NOP", modeImplied, 2, false, (*cpu).nop)
}

func set(code uint8, name string, m mode, cycles uint8, pagePenalty bool, fn execFunc) {
	opcodes[code] = opcode{name, m, cycles, pagePenalty, fn}
}

func (c *cpu) nop(uint16, mode) {}

func (c *cpu) adc(addr uint16, _ mode) {
	c.addWithCarry(c.n.read(addr))
}

func (c *cpu) sbc(addr uint16, _ mode) {
	c.addWithCarry(^c.n.read(addr))
}

func (c *cpu) addWithCarry(v uint8) {
	a := c.a
	sum := uint16(a) + uint16(v)
	if c.flag(flagC) {
		sum++
	}

	c.a = uint8(sum)
	c.setZN(c.a)
	c.setFlag(flagC, sum > 0xff)
	c.setFlag(flagV, (a^v)&0x80 == 0 && (a^c.a)&0x80 != 0)
}

func (c *cpu) and(addr uint16, _ mode) {
	c.a &= c.n.read(addr)
	c.setZN(c.a)
}

func (c *cpu) ora(addr uint16, _ mode) {
	c.a |= c.n.read(addr)
	c.setZN(c.a)
}

func (c *cpu) eor(addr uint16, _ mode) {
	c.a ^= c.n.read(addr)
	c.setZN(c.a)
}

func (c *cpu) cmp(addr uint16, _ mode) { c.compare(c.a, c.n.read(addr)) }
func (c *cpu) cpx(addr uint16, _ mode) { c.compare(c.x, c.n.read(addr)) }
func (c *cpu) cpy(addr uint16, _ mode) { c.compare(c.y, c.n.read(addr)) }

func (c *cpu) lda(addr uint16, _ mode) {
	c.a = c.n.read(addr)
	c.setZN(c.a)
}

func (c *cpu) ldx(addr uint16, _ mode) {
	c.x = c.n.read(addr)
	c.setZN(c.x)
}

func (c *cpu) ldy(addr uint16, _ mode) {
	c.y = c.n.read(addr)
	c.setZN(c.y)
}

func (c *cpu) sta(addr uint16, _ mode) { c.n.write(addr, c.a) }
func (c *cpu) stx(addr uint16, _ mode) { c.n.write(addr, c.x) }
func (c *cpu) sty(addr uint16, _ mode) { c.n.write(addr, c.y) }

// modify applies fn to the accumulator or to memory at addr.
func (c *cpu) modify(addr uint16, m mode, fn func(uint8) uint8) {
	if m == modeAccumulator {
		c.a = fn(c.a)
		c.setZN(c.a)
		return
	}

	v := fn(c.n.read(addr))
	c.n.write(addr, v)
	c.setZN(v)
}

func (c *cpu) asl(addr uint16, m mode) {
	c.modify(addr, m, func(v uint8) uint8 {
		c.setFlag(flagC, v&0x80 != 0)
		return v << 1
	})
}

func (c *cpu) lsr(addr uint16, m mode) {
	c.modify(addr, m, func(v uint8) uint8 {
		c.setFlag(flagC, v&1 != 0)
		return v >> 1
	})
}

func (c *cpu) rol(addr uint16, m mode) {
	c.modify(addr, m, func(v uint8) uint8 {
		carry := c.p & flagC
		c.setFlag(flagC, v&0x80 != 0)
		return v<<1 | carry
	})
}

func (c *cpu) ror(addr uint16, m mode) {
	c.modify(addr, m, func(v uint8) uint8 {
		carry := (c.p & flagC) << 7
		c.setFlag(flagC, v&1 != 0)
		return v>>1 | carry
	})
}

func (c *cpu) inc(addr uint16, m mode) {
	c.modify(addr, m, func(v uint8) uint8 { return v + 1 })
}

func (c *cpu) dec(addr uint16, m mode) {
	c.modify(addr, m, func(v uint8) uint8 { return v - 1 })
}

func (c *cpu) bit(addr uint16, _ mode) {
	v := c.n.read(addr)
	c.setFlag(flagZ, v&c.a == 0)
	c.setFlag(flagV, v&0x40 != 0)
	c.setFlag(flagN, v&0x80 != 0)
}

func (c *cpu) bpl(addr uint16, _ mode) { c.branch(addr, !c.flag(flagN)) }
func (c *cpu) bmi(addr uint16, _ mode) { c.branch(addr, c.flag(flagN)) }
func (c *cpu) bvc(addr uint16, _ mode) { c.branch(addr, !c.flag(flagV)) }
func (c *cpu) bvs(addr uint16, _ mode) { c.branch(addr, c.flag(flagV)) }
func (c *cpu) bcc(addr uint16, _ mode) { c.branch(addr, !c.flag(flagC)) }
func (c *cpu) bcs(addr uint16, _ mode) { c.branch(addr, c.flag(flagC)) }
func (c *cpu) bne(addr uint16, _ mode) { c.branch(addr, !c.flag(flagZ)) }
func (c *cpu) beq(addr uint16, _ mode) { c.branch(addr, c.flag(flagZ)) }

func (c *cpu) jmp(addr uint16, _ mode) {
	c.pc = addr
}

func (c *cpu) jsr(addr uint16, _ mode) {
	c.push16(c.pc - 1)
	c.pc = addr
}

func (c *cpu) rts(uint16, mode) {
	c.pc = c.pull16() + 1
}

func (c *cpu) rti(uint16, mode) {
	c.p = c.pull()&^flagB | flagU
	c.pc = c.pull16()
}

func (c *cpu) brk(uint16, mode) {
	c.pc++
	c.interrupt(vectorIRQ, true)
}

func (c *cpu) pha(uint16, mode) { c.push(c.a) }
func (c *cpu) php(uint16, mode) { c.push(c.p | flagB | flagU) }

func (c *cpu) pla(uint16, mode) {
	c.a = c.pull()
	c.setZN(c.a)
}

func (c *cpu) plp(uint16, mode) {
	c.p = c.pull()&^flagB | flagU
}

func (c *cpu) clc(uint16, mode) { c.p &^= flagC }
func (c *cpu) sec(uint16, mode) { c.p |= flagC }
func (c *cpu) cli(uint16, mode) { c.p &^= flagI }
func (c *cpu) sei(uint16, mode) { c.p |= flagI }
func (c *cpu) clv(uint16, mode) { c.p &^= flagV }
func (c *cpu) cld(uint16, mode) { c.p &^= flagD }
func (c *cpu) sed(uint16, mode) { c.p |= flagD }

func (c *cpu) tax(uint16, mode) {
	c.x = c.a
	c.setZN(c.x)
}

func (c *cpu) tay(uint16, mode) {
	c.y = c.a
	c.setZN(c.y)
}

func (c *cpu) tsx(uint16, mode) {
	c.x = c.sp
	c.setZN(c.x)
}

func (c *cpu) txa(uint16, mode) {
	c.a = c.x
	c.setZN(c.a)
}

func (c *cpu) txs(uint16, mode) { c.sp = c.x }

func (c *cpu) tya(uint16, mode) {
	c.a = c.y
	c.setZN(c.a)
}

func (c *cpu) inx(uint16, mode) {
	c.x++
	c.setZN(c.x)
}

func (c *cpu) iny(uint16, mode) {
	c.y++
	c.setZN(c.y)
}

func (c *cpu) dex(uint16, mode) {
	c.x--
	c.setZN(c.x)
}

func (c *cpu) dey(uint16, mode) {
	c.y--
	c.setZN(c.y)
}
