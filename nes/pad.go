package nes

import "github.com/hexaflex/dnes/core"

// UpdateKey applies a controller event. Players other than core.Player2
// address the first controller.
func (n *NES) UpdateKey(player int, ev core.KeyEvent) {
	if !ev.Valid() || n.sys == nil {
		return
	}

	if player != core.Player2 {
		player = core.Player1
	}

	addr := padButtons + player
	bit := uint8(1) << uint(ev.Button())
	v := n.sys.U8(addr)

	if ev.Pressed() {
		v |= bit
	} else {
		v &^= bit
	}

	n.sys.SetU8(addr, v)
}

// Buttons returns the button state of the given player as a bit set in
// core.Button order.
func (n *NES) Buttons(player int) uint8 {
	if player != core.Player2 {
		player = core.Player1
	}
	return n.sys.U8(padButtons + player)
}

// writePadStrobe latches the button state of both controllers while the
// strobe bit is set.
func (n *NES) writePadStrobe(v uint8) {
	n.sys.SetU8(padStrobe, v&1)
	if v&1 != 0 {
		n.sys.SetU8(padShift, n.sys.U8(padButtons))
		n.sys.SetU8(padShift+1, n.sys.U8(padButtons+1))
	}
}

// readPad shifts out the next button of the given controller.
func (n *NES) readPad(player int) uint8 {
	if n.sys.U8(padStrobe) != 0 {
		return n.sys.U8(padButtons+player)&1 | 0x40
	}

	shift := n.sys.U8(padShift + player)
	n.sys.SetU8(padShift+player, shift>>1|0x80)
	return shift&1 | 0x40
}
