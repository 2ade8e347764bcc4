package nes

import (
	"fmt"

	"github.com/pkg/errors"
)

// HeaderSize is the size of an iNES file header.
const HeaderSize = 16

// "NES" followed by an MS-DOS EOF.
var magic = [4]byte{'N', 'E', 'S', 0x1a}

const (
	prgBankSize = 0x4000
	chrBankSize = 0x2000
	trainerSize = 512
	trainerAddr = 0x7000 // Trainers are copied to PRG RAM at this address.
)

// Format identifies the iNES header revision.
type Format int

// Known header formats.
const (
	INESArchaic Format = iota
	INES1
	INES2
)

func (f Format) String() string {
	switch f {
	case INESArchaic:
		return "archaic iNES"
	case INES1:
		return "iNES 1.0"
	case INES2:
		return "NES 2.0"
	}
	return "invalid"
}

// Mirroring defines the nametable layout.
type Mirroring int

// Known nametable layouts.
const (
	Horizontal Mirroring = iota
	Vertical
	FourScreen
)

func (m Mirroring) String() string {
	switch m {
	case Horizontal:
		return "horizontal"
	case Vertical:
		return "vertical"
	case FourScreen:
		return "four-screen"
	}
	return "invalid"
}

// Header holds the decoded fields of an iNES header.
type Header struct {
	Format    Format
	Mapper    int
	Mirroring Mirroring
	Battery   bool
	Trainer   bool
	PRGSize   int // PRG ROM size in bytes.
	CHRSize   int // CHR ROM size in bytes. 0 means the board uses CHR RAM.
}

func (h Header) String() string {
	return fmt.Sprintf("%v mapper=%d (%s) mirroring=%v prg=%dK chr=%dK battery=%v trainer=%v",
		h.Format, h.Mapper, MapperName(h.Mapper), h.Mirroring,
		h.PRGSize/1024, h.CHRSize/1024, h.Battery, h.Trainer)
}

// ParseHeader decodes the iNES header at the start of rom.
func ParseHeader(rom []byte) (Header, error) {
	var h Header

	if len(rom) < HeaderSize {
		return h, errors.Errorf("rom too short for an iNES header: %d bytes", len(rom))
	}

	if rom[0] != magic[0] || rom[1] != magic[1] || rom[2] != magic[2] || rom[3] != magic[3] {
		return h, errors.Errorf("invalid iNES magic number: % x", rom[:4])
	}

	flags6 := rom[6]
	flags7 := rom[7]

	h.Format = INESArchaic
	switch {
	case flags7&0x0c == 0x08:
		h.Format = INES2
	case flags7&0x0c == 0 && rom[12]|rom[13]|rom[14]|rom[15] == 0:
		h.Format = INES1
	}

	h.Mapper = int(flags6 >> 4)
	if h.Format != INESArchaic {
		h.Mapper |= int(flags7 & 0xf0)
	}

	switch {
	case flags6&0x08 != 0:
		h.Mirroring = FourScreen
	case flags6&0x01 != 0:
		h.Mirroring = Vertical
	default:
		h.Mirroring = Horizontal
	}

	h.Battery = flags6&0x02 != 0
	h.Trainer = flags6&0x04 != 0

	prg := int(rom[4])
	chr := int(rom[5])
	if h.Format == INES2 {
		h.Mapper |= int(rom[8]&0x0f) << 8
		prg |= int(rom[9]&0x0f) << 8
		chr |= int(rom[9]>>4) << 8
	}

	h.PRGSize = prg * prgBankSize
	h.CHRSize = chr * chrBankSize
	return h, nil
}

// Cartridge holds the ROM contents of a game.
type Cartridge struct {
	Header  Header
	PRG     []byte
	CHR     []byte // nil when the board uses CHR RAM.
	Trainer []byte // nil without a trainer.
}

// ParseCartridge decodes an iNES image. The returned cartridge refers to
// slices of rom.
func ParseCartridge(rom []byte) (*Cartridge, error) {
	h, err := ParseHeader(rom)
	if err != nil {
		return nil, err
	}

	if !SupportedMapper(h.Mapper) {
		return nil, errors.Errorf("unsupported mapper %d", h.Mapper)
	}

	if h.PRGSize == 0 {
		return nil, errors.New("rom has no PRG banks")
	}

	offset := HeaderSize
	if h.Trainer {
		offset += trainerSize
	}

	if len(rom) < offset+h.PRGSize+h.CHRSize {
		return nil, errors.Errorf("rom truncated: header wants %d bytes; have %d",
			offset+h.PRGSize+h.CHRSize, len(rom))
	}

	c := &Cartridge{Header: h}
	if h.Trainer {
		c.Trainer = rom[HeaderSize : HeaderSize+trainerSize : HeaderSize+trainerSize]
	}

	c.PRG = rom[offset : offset+h.PRGSize : offset+h.PRGSize]
	offset += h.PRGSize

	if h.CHRSize > 0 {
		c.CHR = rom[offset : offset+h.CHRSize : offset+h.CHRSize]
	}

	return c, nil
}
