package nes

// Supported mapper numbers.
const (
	MapperNROM  = 0
	MapperUxROM = 2
	MapperCNROM = 3
)

// MapperName returns the board name of mapper n.
func MapperName(n int) string {
	switch n {
	case MapperNROM:
		return "NROM"
	case MapperUxROM:
		return "UxROM"
	case MapperCNROM:
		return "CNROM"
	}
	return "unknown"
}

// SupportedMapper returns true if mapper n is implemented.
func SupportedMapper(n int) bool {
	switch n {
	case MapperNROM, MapperUxROM, MapperCNROM:
		return true
	}
	return false
}

// readPRG reads cartridge space at $8000-$FFFF.
func (n *NES) readPRG(addr uint16) uint8 {
	prg := n.cart.PRG
	offset := int(addr - 0x8000)

	if n.cart.Header.Mapper == MapperUxROM {
		banks := len(prg) / prgBankSize
		if addr < 0xc000 {
			bank := int(n.sys.U8(mapPRGBank)) % banks
			return prg[bank*prgBankSize+offset]
		}
		return prg[(banks-1)*prgBankSize+offset-prgBankSize]
	}

	return prg[offset%len(prg)]
}

// writePRG handles writes to cartridge space, which select banks.
func (n *NES) writePRG(addr uint16, v uint8) {
	switch n.cart.Header.Mapper {
	case MapperUxROM:
		n.sys.SetU8(mapPRGBank, v&0x0f)
	case MapperCNROM:
		n.sys.SetU8(mapCHRBank, v&0x03)
	}
}

// readCHR reads pattern table space at $0000-$1FFF.
func (n *NES) readCHR(addr uint16) uint8 {
	addr &= 0x1fff

	chr := n.cart.CHR
	if chr == nil {
		return n.sys.U8(chrRAMAddr + int(addr))
	}

	if n.cart.Header.Mapper == MapperCNROM {
		bank := int(n.sys.U8(mapCHRBank))
		return chr[(bank*chrBankSize+int(addr))%len(chr)]
	}

	return chr[int(addr)%len(chr)]
}

// writeCHR writes pattern table space. CHR ROM ignores writes.
func (n *NES) writeCHR(addr uint16, v uint8) {
	if n.cart.CHR == nil {
		n.sys.SetU8(chrRAMAddr+int(addr&0x1fff), v)
	}
}

// nametable maps a PPU address in $2000-$3EFF to a vram offset.
func (n *NES) nametable(addr uint16) int {
	a := int(addr-0x2000) & 0x0fff
	table := a / 0x400

	switch n.cart.Header.Mirroring {
	case Horizontal:
		table /= 2
	case Vertical:
		table %= 2
	}

	return vramAddr + table*0x400 + a%0x400
}
