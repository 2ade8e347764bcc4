package nes

// Processor region layout.
const (
	cpuA      = 0x00
	cpuX      = 0x01
	cpuY      = 0x02
	cpuSP     = 0x03
	cpuP      = 0x04
	cpuPC     = 0x05 // u16
	cpuNMI    = 0x07 // Pending NMI edge.
	cpuIRQ    = 0x08 // Pending IRQ level.
	cpuStall  = 0x09 // u16; cycles owed to OAM DMA.
	cpuCycles = 0x0b // u32; total cycles since reset.

	ProcessorSize = 0x10
)

// System region layout.
const (
	ramAddr     = 0x0000
	ramSize     = 0x0800
	prgRAMAddr  = 0x0800
	prgRAMSize  = 0x2000
	chrRAMAddr  = 0x2800
	chrRAMSize  = 0x2000
	vramAddr    = 0x4800
	vramSize    = 0x1000 // Room for four-screen layouts.
	paletteAddr = 0x5800
	paletteSize = 0x20
	oamAddr     = 0x5820
	oamSize     = 0x100

	// PPU registers as seen by the processor.
	regCtrl      = 0x5920
	regMask      = 0x5921
	regOAMAddr   = 0x5922
	regV         = 0x5923 // u16
	regT         = 0x5925 // u16
	regX         = 0x5927
	regW         = 0x5928
	regReadBuf   = 0x5929
	regBus       = 0x592a
	regVblankAck = 0x592b // Last vblank sequence number cleared by a status read.

	// Controllers.
	padButtons = 0x5930 // One byte per player.
	padShift   = 0x5932 // One byte per player.
	padStrobe  = 0x5934

	// Mapper registers.
	mapPRGBank = 0x5938
	mapCHRBank = 0x5939

	SystemSize = 0x5940
)

// Picture region layout. Everything up to picOption is written only by the
// picture unit; the draw option is written only by the processor agent.
const (
	picLine      = 0x00 // u16
	picFrame     = 0x02 // u32
	picCycles    = 0x06 // u16; processor cycles carried into the next line.
	picVblank    = 0x08
	picVblankSeq = 0x09
	picSprite0   = 0x0a
	picOverflow  = 0x0b

	picOption  = 0x10
	optWidth   = picOption + 0x0 // u16
	optHeight  = picOption + 0x2 // u16
	optOffsetX = picOption + 0x4 // u16, two's complement
	optOffsetY = picOption + 0x6 // u16, two's complement
	optScale   = picOption + 0x8
	optFormat  = picOption + 0x9

	PictureSize = 0x20
)
