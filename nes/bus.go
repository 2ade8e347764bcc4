package nes

// PPUCTRL bits.
const (
	ctrlNametable  = 0x03
	ctrlIncrement  = 0x04
	ctrlSpriteBase = 0x08
	ctrlBGBase     = 0x10
	ctrlTallSprite = 0x20
	ctrlNMI        = 0x80
)

// PPUMASK bits.
const (
	maskGrayscale  = 0x01
	maskBGLeft     = 0x02
	maskSpriteLeft = 0x04
	maskBG         = 0x08
	maskSprites    = 0x10
)

// PPUSTATUS bits.
const (
	statusOverflow = 0x20
	statusSprite0  = 0x40
	statusVblank   = 0x80
)

// dmaStall is the number of cycles an OAM DMA suspends the processor.
const dmaStall = 513

// read reads a byte from processor address space.
func (n *NES) read(addr uint16) uint8 {
	switch {
	case addr < 0x2000:
		return n.sys.U8(ramAddr + int(addr&0x07ff))
	case addr < 0x4000:
		return n.readPPURegister(addr & 7)
	case addr == 0x4016:
		return n.readPad(0)
	case addr == 0x4017:
		return n.readPad(1)
	case addr < 0x6000:
		return 0
	case addr < 0x8000:
		return n.sys.U8(prgRAMAddr + int(addr-0x6000))
	}

	if n.cart == nil {
		return 0
	}
	return n.readPRG(addr)
}

// read16 reads a little-endian word.
func (n *NES) read16(addr uint16) uint16 {
	return uint16(n.read(addr)) | uint16(n.read(addr+1))<<8
}

// read16bug reads a word without carrying into the high byte of the
// address, like the indirect JMP does.
func (n *NES) read16bug(addr uint16) uint16 {
	hi := addr&0xff00 | uint16(uint8(addr)+1)
	return uint16(n.read(addr)) | uint16(n.read(hi))<<8
}

// write writes a byte to processor address space.
func (n *NES) write(addr uint16, v uint8) {
	switch {
	case addr < 0x2000:
		n.sys.SetU8(ramAddr+int(addr&0x07ff), v)
	case addr < 0x4000:
		n.writePPURegister(addr&7, v)
	case addr == 0x4014:
		n.oamDMA(v)
	case addr == 0x4016:
		n.writePadStrobe(v)
	case addr < 0x6000:
	case addr < 0x8000:
		n.sys.SetU8(prgRAMAddr+int(addr-0x6000), v)
	default:
		if n.cart != nil {
			n.writePRG(addr, v)
		}
	}
}

func (n *NES) readPPURegister(reg uint16) uint8 {
	sys := n.sys

	switch reg {
	case 2:
		v := sys.U8(regBus) & 0x1f
		if n.pic.U8(picSprite0) != 0 {
			v |= statusSprite0
		}
		if n.pic.U8(picOverflow) != 0 {
			v |= statusOverflow
		}

		seq := n.pic.U8(picVblankSeq)
		if n.pic.U8(picVblank) != 0 && sys.U8(regVblankAck) != seq {
			v |= statusVblank
		}

		sys.SetU8(regVblankAck, seq)
		sys.SetU8(regW, 0)
		return v

	case 4:
		return sys.U8(oamAddr + int(sys.U8(regOAMAddr)))

	case 7:
		addr := sys.U16(regV) & 0x3fff
		v := n.readVRAM(addr)

		if addr < 0x3f00 {
			buffered := sys.U8(regReadBuf)
			sys.SetU8(regReadBuf, v)
			v = buffered
		} else {
			sys.SetU8(regReadBuf, n.readVRAM(addr-0x1000))
		}

		n.incrementV()
		return v
	}

	return sys.U8(regBus)
}

func (n *NES) writePPURegister(reg uint16, v uint8) {
	sys := n.sys
	sys.SetU8(regBus, v)

	switch reg {
	case 0:
		old := sys.U8(regCtrl)
		sys.SetU8(regCtrl, v)
		t := sys.U16(regT)&0xf3ff | uint16(v&ctrlNametable)<<10
		sys.SetU16(regT, t)

		// Enabling NMI during vblank raises it right away.
		if old&ctrlNMI == 0 && v&ctrlNMI != 0 && n.pic.U8(picVblank) != 0 &&
			sys.U8(regVblankAck) != n.pic.U8(picVblankSeq) {
			n.cpu.SetU8(cpuNMI, 1)
		}

	case 1:
		sys.SetU8(regMask, v)

	case 3:
		sys.SetU8(regOAMAddr, v)

	case 4:
		a := sys.U8(regOAMAddr)
		sys.SetU8(oamAddr+int(a), v)
		sys.SetU8(regOAMAddr, a+1)

	case 5:
		t := sys.U16(regT)
		if sys.U8(regW) == 0 {
			t = t&0xffe0 | uint16(v)>>3
			sys.SetU8(regX, v&7)
			sys.SetU8(regW, 1)
		} else {
			t = t&0x8fff | uint16(v&7)<<12
			t = t&0xfc1f | uint16(v&0xf8)<<2
			sys.SetU8(regW, 0)
		}
		sys.SetU16(regT, t)

	case 6:
		t := sys.U16(regT)
		if sys.U8(regW) == 0 {
			t = t&0x00ff | uint16(v&0x3f)<<8
			sys.SetU8(regW, 1)
		} else {
			t = t&0xff00 | uint16(v)
			sys.SetU16(regV, t)
			sys.SetU8(regW, 0)
		}
		sys.SetU16(regT, t)

	case 7:
		n.writeVRAM(sys.U16(regV)&0x3fff, v)
		n.incrementV()
	}
}

func (n *NES) incrementV() {
	step := uint16(1)
	if n.sys.U8(regCtrl)&ctrlIncrement != 0 {
		step = 32
	}
	n.sys.SetU16(regV, n.sys.U16(regV)+step)
}

// readVRAM reads a byte from picture unit address space.
func (n *NES) readVRAM(addr uint16) uint8 {
	addr &= 0x3fff

	switch {
	case addr < 0x2000:
		if n.cart == nil {
			return 0
		}
		return n.readCHR(addr)
	case addr < 0x3f00:
		if n.cart == nil {
			return 0
		}
		return n.sys.U8(n.nametable(addr))
	}

	return n.sys.U8(paletteIndex(addr))
}

// writeVRAM writes a byte to picture unit address space.
func (n *NES) writeVRAM(addr uint16, v uint8) {
	addr &= 0x3fff

	switch {
	case addr < 0x2000:
		if n.cart != nil {
			n.writeCHR(addr, v)
		}
	case addr < 0x3f00:
		if n.cart != nil {
			n.sys.SetU8(n.nametable(addr), v)
		}
	default:
		n.sys.SetU8(paletteIndex(addr), v&0x3f)
	}
}

// paletteIndex maps a palette address to its system region offset.
// The sprite backdrop entries mirror the background ones.
func paletteIndex(addr uint16) int {
	a := int(addr & 0x1f)
	if a >= 0x10 && a&3 == 0 {
		a -= 0x10
	}
	return paletteAddr + a
}

// oamDMA copies a 256 byte page into sprite memory and stalls the processor.
func (n *NES) oamDMA(page uint8) {
	base := uint16(page) << 8
	a := n.sys.U8(regOAMAddr)

	for i := 0; i < oamSize; i++ {
		n.sys.SetU8(oamAddr+int(a), n.read(base+uint16(i)))
		a++
	}

	stall := dmaStall
	if n.cpu.U32(cpuCycles)&1 != 0 {
		stall++
	}
	n.cpu.SetU16(cpuStall, n.cpu.U16(cpuStall)+uint16(stall))
}
