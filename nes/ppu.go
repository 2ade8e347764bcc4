package nes

import "github.com/hexaflex/dnes/core"

// Picture unit geometry and timing.
const (
	ScreenWidth    = 256
	ScreenHeight   = 240
	LinesPerFrame  = 262
	CyclesPerLine  = 113 // 341 dots at three dots per processor cycle, rounded down.
	CyclesPerFrame = CyclesPerLine * LinesPerFrame

	vblankLine    = ScreenHeight + 1
	preRenderLine = LinesPerFrame - 1
	maxSprites    = 8

	// powerOnLine is the first line run after a reset. A frame's worth of
	// processor cycles then ends on the vblank line, so an NMI delivered at
	// the end of a frame is serviced while vblank is still set.
	powerOnLine = vblankLine + 1
)

// StepPPU advances the picture unit by the given number of processor cycles,
// running one line for every CyclesPerLine cycles. Cycles that do not fill a
// line carry over into the next call.
func (n *NES) StepPPU(cycles int) core.Interrupt {
	irq := core.None
	acc := int(n.pic.U16(picCycles)) + cycles

	for acc >= CyclesPerLine {
		acc -= CyclesPerLine
		if e := n.runLine(); irq == core.None {
			irq = e
		}
	}

	n.pic.SetU16(picCycles, uint16(acc))
	return irq
}

// runLine runs the current line and advances to the next.
func (n *NES) runLine() core.Interrupt {
	pic := n.pic
	line := int(pic.U16(picLine))
	mask := n.sys.U8(regMask)
	rendering := mask&(maskBG|maskSprites) != 0
	irq := core.None

	switch {
	case line < ScreenHeight:
		if rendering {
			n.copyX()
		}

		n.renderLine(line, mask)

		if rendering {
			n.incrementY()
		}

	case line == vblankLine:
		pic.SetU8(picVblankSeq, pic.U8(picVblankSeq)+1)
		pic.SetU8(picVblank, 1)
		pic.SetU32(picFrame, pic.U32(picFrame)+1)

		if n.sys.U8(regCtrl)&ctrlNMI != 0 {
			irq = core.NMI
		}

	case line == preRenderLine:
		pic.SetU8(picVblank, 0)
		pic.SetU8(picSprite0, 0)
		pic.SetU8(picOverflow, 0)

		if rendering {
			n.copyX()
			n.copyY()
		}
	}

	pic.SetU16(picLine, uint16((line+1)%LinesPerFrame))
	return irq
}

func (n *NES) copyX() {
	v := n.sys.U16(regV)
	t := n.sys.U16(regT)
	n.sys.SetU16(regV, v&0xfbe0|t&0x041f)
}

func (n *NES) copyY() {
	v := n.sys.U16(regV)
	t := n.sys.U16(regT)
	n.sys.SetU16(regV, v&0x841f|t&0x7be0)
}

func (n *NES) incrementY() {
	v := n.sys.U16(regV)

	if v&0x7000 != 0x7000 {
		n.sys.SetU16(regV, v+0x1000)
		return
	}

	v &^= 0x7000
	y := (v & 0x03e0) >> 5

	switch y {
	case 29:
		y = 0
		v ^= 0x0800
	case 31:
		y = 0
	default:
		y++
	}

	n.sys.SetU16(regV, v&^0x03e0|y<<5)
}

// renderLine composes background and sprites for one visible line and
// draws the result into the framebuffer.
func (n *NES) renderLine(line int, mask uint8) {
	var (
		bg     [ScreenWidth]uint8
		spr    [ScreenWidth]uint8
		behind [ScreenWidth]bool
		zero   [ScreenWidth]bool
		colors [ScreenWidth]uint8
	)

	if mask&maskBG != 0 {
		n.fetchBackground(&bg)
		if mask&maskBGLeft == 0 {
			for x := 0; x < 8; x++ {
				bg[x] = 0
			}
		}
	}

	if mask&maskSprites != 0 {
		n.fetchSprites(line, &spr, &behind, &zero)
		if mask&maskSpriteLeft == 0 {
			for x := 0; x < 8; x++ {
				spr[x] = 0
			}
		}
	}

	for x := 0; x < ScreenWidth; x++ {
		b := bg[x]
		s := spr[x]

		var index uint8
		switch {
		case b&3 == 0 && s&3 == 0:
		case b&3 == 0:
			index = s
		case s&3 == 0:
			index = b
		default:
			if zero[x] && x != ScreenWidth-1 {
				n.pic.SetU8(picSprite0, 1)
			}
			if behind[x] {
				index = b
			} else {
				index = s
			}
		}

		c := n.sys.U8(paletteIndex(0x3f00|uint16(index))) & 0x3f
		if mask&maskGrayscale != 0 {
			c &= 0x30
		}
		colors[x] = c
	}

	n.drawLine(line, &colors)
}

// fetchBackground decodes the background pixels of the current line.
// Each entry holds a palette number in bits 2-3 and a pixel value in bits 0-1.
func (n *NES) fetchBackground(bg *[ScreenWidth]uint8) {
	v := n.sys.U16(regV)
	fineY := v >> 12 & 7

	var base uint16
	if n.sys.U8(regCtrl)&ctrlBGBase != 0 {
		base = 0x1000
	}

	x := -int(n.sys.U8(regX))
	for tile := 0; tile <= ScreenWidth/8; tile++ {
		nt := uint16(n.readVRAM(0x2000 | v&0x0fff))
		at := n.readVRAM(0x23c0 | v&0x0c00 | v>>4&0x38 | v>>2&0x07)
		shift := v>>4&4 | v&2
		pal := at >> shift & 3

		addr := base + nt*16 + fineY
		lo := n.readVRAM(addr)
		hi := n.readVRAM(addr + 8)

		for bit := 7; bit >= 0; bit-- {
			if x >= 0 && x < ScreenWidth {
				p := lo>>uint(bit)&1 | (hi>>uint(bit)&1)<<1
				if p != 0 {
					bg[x] = pal<<2 | p
				}
			}
			x++
		}

		if v&0x1f == 31 {
			v &^= 0x1f
			v ^= 0x0400
		} else {
			v++
		}
	}
}

// fetchSprites evaluates sprite memory for the given line. The first opaque
// sprite pixel in memory order wins each column.
func (n *NES) fetchSprites(line int, spr *[ScreenWidth]uint8, behind, zero *[ScreenWidth]bool) {
	ctrl := n.sys.U8(regCtrl)

	height := 8
	if ctrl&ctrlTallSprite != 0 {
		height = 16
	}

	count := 0
	for i := 0; i < oamSize/4; i++ {
		o := oamAddr + i*4
		row := line - (int(n.sys.U8(o)) + 1)
		if row < 0 || row >= height {
			continue
		}

		if count == maxSprites {
			n.pic.SetU8(picOverflow, 1)
			break
		}
		count++

		tile := n.sys.U8(o + 1)
		attr := n.sys.U8(o + 2)
		sx := int(n.sys.U8(o + 3))

		if attr&0x80 != 0 {
			row = height - 1 - row
		}

		var addr uint16
		if height == 16 {
			t := tile &^ 1
			if row >= 8 {
				t++
				row -= 8
			}
			addr = uint16(tile&1)*0x1000 + uint16(t)*16 + uint16(row)
		} else {
			var base uint16
			if ctrl&ctrlSpriteBase != 0 {
				base = 0x1000
			}
			addr = base + uint16(tile)*16 + uint16(row)
		}

		lo := n.readVRAM(addr)
		hi := n.readVRAM(addr + 8)

		for col := 0; col < 8; col++ {
			x := sx + col
			if x >= ScreenWidth {
				break
			}

			bit := uint(7 - col)
			if attr&0x40 != 0 {
				bit = uint(col)
			}

			p := lo>>bit&1 | (hi>>bit&1)<<1
			if p == 0 || spr[x] != 0 {
				continue
			}

			spr[x] = 0x10 | (attr&3)<<2 | p
			behind[x] = attr&0x20 != 0
			zero[x] = i == 0
		}
	}
}

// drawLine writes a line of master palette colors into the framebuffer
// according to the current draw option. Pixels outside the framebuffer
// are clipped.
func (n *NES) drawLine(line int, colors *[ScreenWidth]uint8) {
	opt := n.loadOption()
	scale := opt.EffectiveScale()

	width := n.geom.Width
	if opt.Width < width {
		width = opt.Width
	}

	height := n.geom.Height
	if opt.Height < height {
		height = opt.Height
	}

	fb := n.fb.Bytes()
	stride := n.geom.Stride()
	bpp := n.geom.BytesPerPixel

	for sy := 0; sy < scale; sy++ {
		y := opt.OffsetY + line*scale + sy
		if y < 0 || y >= height {
			continue
		}

		row := fb[y*stride:]
		for x := 0; x < ScreenWidth; x++ {
			c := palette[colors[x]]
			x0 := opt.OffsetX + x*scale

			for sx := 0; sx < scale; sx++ {
				px := x0 + sx
				if px < 0 || px >= width {
					continue
				}
				opt.Format.Put(row[px*bpp:], c.r, c.g, c.b)
			}
		}
	}
}
