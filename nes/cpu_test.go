package nes

import (
	"testing"

	"github.com/hexaflex/dnes/core"
)

func TestLDASTA(t *testing.T) {
	//   LDA #$42
	//   STA $0200
	//   LDX $0200
	//   HALT

	ct := newCodeTest()
	ct.emit(0xa9, 0x42)
	ct.emit(0x8d, 0x00, 0x02)
	ct.emit(0xae, 0x00, 0x02)
	ct.emitHalt()

	ct.want["A"] = 0x42
	ct.want["X"] = 0x42
	ct.mem[0x0200] = 0x42
	ct.mem[0x0a00] = 0x42 // RAM mirror.
	runTest(t, ct)
}

func TestADCOverflow(t *testing.T) {
	//   CLC
	//   LDA #$7f
	//   ADC #$01
	//   HALT

	ct := newCodeTest()
	ct.emit(0x18)
	ct.emit(0xa9, 0x7f)
	ct.emit(0x69, 0x01)
	ct.emitHalt()

	ct.want["A"] = 0x80
	ct.want["P"] = flagU | flagI | flagV | flagN
	runTest(t, ct)
}

func TestADCCarry(t *testing.T) {
	//   SEC
	//   LDA #$ff
	//   ADC #$00
	//   HALT

	ct := newCodeTest()
	ct.emit(0x38)
	ct.emit(0xa9, 0xff)
	ct.emit(0x69, 0x00)
	ct.emitHalt()

	ct.want["A"] = 0x00
	ct.want["P"] = flagU | flagI | flagZ | flagC
	runTest(t, ct)
}

func TestSBC(t *testing.T) {
	//   SEC
	//   LDA #$05
	//   SBC #$06
	//   HALT

	ct := newCodeTest()
	ct.emit(0x38)
	ct.emit(0xa9, 0x05)
	ct.emit(0xe9, 0x06)
	ct.emitHalt()

	ct.want["A"] = 0xff
	ct.want["P"] = flagU | flagI | flagN
	runTest(t, ct)
}

func TestCompare(t *testing.T) {
	//   LDA #$10
	//   CMP #$10
	//   HALT

	ct := newCodeTest()
	ct.emit(0xa9, 0x10)
	ct.emit(0xc9, 0x10)
	ct.emitHalt()

	ct.want["P"] = flagU | flagI | flagZ | flagC
	runTest(t, ct)
}

func TestLoop(t *testing.T) {
	//        LDX #$05
	//        LDY #$00
	//  loop: INY
	//        DEX
	//        BNE loop
	//        HALT

	ct := newCodeTest()
	ct.emit(0xa2, 0x05)
	ct.emit(0xa0, 0x00)
	ct.emit(0xc8)
	ct.emit(0xca)
	ct.emit(0xd0, 0xfc)
	ct.emitHalt()

	ct.want["X"] = 0
	ct.want["Y"] = 5
	runTest(t, ct)
}

func TestJSRRTS(t *testing.T) {
	//        JSR sub
	//        LDY #$01
	//        HALT
	//   sub: LDX #$07
	//        RTS

	ct := newCodeTest()
	sub := uint16(origin + 3 + 2 + 3)
	ct.emit(0x20, lo(sub), hi(sub))
	ct.emit(0xa0, 0x01)
	ct.emitHalt()
	ct.emit(0xa2, 0x07)
	ct.emit(0x60)

	ct.want["X"] = 7
	ct.want["Y"] = 1
	ct.want["SP"] = 0xfd
	runTest(t, ct)
}

func TestStack(t *testing.T) {
	//   LDA #$33
	//   PHA
	//   LDA #$00
	//   PLA
	//   PHP
	//   PLA
	//   HALT

	ct := newCodeTest()
	ct.emit(0xa9, 0x33)
	ct.emit(0x48)
	ct.emit(0xa9, 0x00)
	ct.emit(0x68)
	ct.emit(0x08)
	ct.emit(0x68)
	ct.emitHalt()

	// PHP pushes B and U set.
	ct.want["A"] = flagU | flagI | flagB
	ct.want["SP"] = 0xfd
	ct.mem[0x01fd] = flagU | flagI | flagB
	runTest(t, ct)
}

func TestShifts(t *testing.T) {
	//   LDA #$81
	//   ASL A
	//   STA $10
	//   ROR $10
	//   LSR $10
	//   ROL A
	//   HALT

	ct := newCodeTest()
	ct.emit(0xa9, 0x81)
	ct.emit(0x0a)
	ct.emit(0x85, 0x10)
	ct.emit(0x66, 0x10)
	ct.emit(0x46, 0x10)
	ct.emit(0x2a)
	ct.emitHalt()

	// ASL: $02 carry. ROR: $81 no carry. LSR: $40 carry. ROL A: $05.
	ct.want["A"] = 0x05
	ct.mem[0x0010] = 0x40
	runTest(t, ct)
}

func TestIndirectIndexed(t *testing.T) {
	//   LDA #$00
	//   STA $20
	//   LDA #$03
	//   STA $21
	//   LDA #$5a
	//   LDY #$04
	//   STA ($20),Y
	//   LDX $0304
	//   HALT

	ct := newCodeTest()
	ct.emit(0xa9, 0x00)
	ct.emit(0x85, 0x20)
	ct.emit(0xa9, 0x03)
	ct.emit(0x85, 0x21)
	ct.emit(0xa9, 0x5a)
	ct.emit(0xa0, 0x04)
	ct.emit(0x91, 0x20)
	ct.emit(0xae, 0x04, 0x03)
	ct.emitHalt()

	ct.want["X"] = 0x5a
	runTest(t, ct)
}

func TestIndirectJMPWrap(t *testing.T) {
	//   LDA #$34
	//   STA $02ff
	//   LDA #$12
	//   STA $0200
	//   JMP ($02ff)

	ct := newCodeTest()
	ct.emit(0xa9, 0x34)
	ct.emit(0x8d, 0xff, 0x02)
	ct.emit(0xa9, 0x12)
	ct.emit(0x8d, 0x00, 0x02)
	ct.emit(0x6c, 0xff, 0x02)

	n := newTestNES(t, newROM(ct.program.Bytes(), origin, origin, origin), core.DrawOption{})
	for i := 0; i < 5; i++ {
		n.StepCPU()
	}

	if pc := n.Registers().PC; pc != 0x1234 {
		t.Fatalf("want pc 1234; have %04x", pc)
	}
}

func TestCycleCosts(t *testing.T) {
	//   LDX #$01        2
	//   LDA $80ff,X     5 (page crossed)
	//   LDA $8000,X     4
	//   BNE +0          3 (taken)
	//   STA $0200,X     5

	ct := newCodeTest()
	ct.emit(0xa2, 0x01)
	ct.emit(0xbd, 0xff, 0x80)
	ct.emit(0xbd, 0x00, 0x80)
	ct.emit(0xd0, 0x00)
	ct.emit(0x9d, 0x00, 0x02)

	n := newTestNES(t, newROM(ct.program.Bytes(), origin, origin, origin), core.DrawOption{})

	for i, want := range []int{2, 5, 4, 3, 5} {
		if have := n.StepCPU(); have != want {
			t.Fatalf("step %d: want %d cycles; have %d", i, want, have)
		}
	}

	if n.Cycles() != 19 {
		t.Fatalf("want 19 total cycles; have %d", n.Cycles())
	}
}

func TestNMI(t *testing.T) {
	//   reset: JMP reset
	//   nmi:   LDA #$99
	//          RTI

	ct := newCodeTest()
	ct.emit(0x4c, lo(origin), hi(origin))
	nmi := ct.pc()
	ct.emit(0xa9, 0x99)
	ct.emit(0x40)

	n := newTestNES(t, newROM(ct.program.Bytes(), nmi, origin, origin), core.DrawOption{})
	n.Interrupt(core.NMI)

	if have := n.StepCPU(); have != interruptCycles {
		t.Fatalf("want %d cycles; have %d", interruptCycles, have)
	}

	r := n.Registers()
	if r.PC != nmi || r.SP != 0xfa {
		t.Fatalf("after NMI: %+v", r)
	}

	n.StepCPU()
	n.StepCPU()

	r = n.Registers()
	if r.A != 0x99 || r.PC != origin || r.SP != 0xfd {
		t.Fatalf("after RTI: %+v", r)
	}
}

func TestIRQMasked(t *testing.T) {
	ct := newCodeTest()
	ct.emit(0x4c, lo(origin), hi(origin))

	n := newTestNES(t, newROM(ct.program.Bytes(), origin, origin, 0x9000), core.DrawOption{})
	n.Interrupt(core.IRQ)
	n.StepCPU()

	// Interrupts are disabled at power-on.
	if pc := n.Registers().PC; pc != origin {
		t.Fatalf("masked IRQ was serviced; pc=%04x", pc)
	}
}

func TestBRK(t *testing.T) {
	ct := newCodeTest()
	ct.emit(0x00, 0x00)

	n := newTestNES(t, newROM(ct.program.Bytes(), origin, origin, 0x9000), core.DrawOption{})
	if have := n.StepCPU(); have != 7 {
		t.Fatalf("want 7 cycles; have %d", have)
	}

	r := n.Registers()
	if r.PC != 0x9000 || r.SP != 0xfa {
		t.Fatalf("have %+v", r)
	}

	if p := n.Peek(0x01fb); p&flagB == 0 {
		t.Fatalf("pushed status %02x lacks B", p)
	}

	if ret := uint16(n.Peek(0x01fc)) | uint16(n.Peek(0x01fd))<<8; ret != origin+2 {
		t.Fatalf("want return address %04x; have %04x", origin+2, ret)
	}
}

func TestOAMDMA(t *testing.T) {
	//   LDA #$07
	//   STA $0300
	//   LDA #$03
	//   STA $4014

	ct := newCodeTest()
	ct.emit(0xa9, 0x07)
	ct.emit(0x8d, 0x00, 0x03)
	ct.emit(0xa9, 0x03)
	ct.emit(0x8d, 0x14, 0x40)

	n := newTestNES(t, newROM(ct.program.Bytes(), origin, origin, origin), core.DrawOption{})
	for i := 0; i < 4; i++ {
		n.StepCPU()
	}

	// 2+4+2+4 cycles elapsed: even, so no alignment cycle.
	if have := n.StepCPU(); have != dmaStall {
		t.Fatalf("want stall of %d; have %d", dmaStall, have)
	}

	if v := n.sys.U8(oamAddr); v != 0x07 {
		t.Fatalf("oam[0]: want 07; have %02x", v)
	}
}

func TestOpcodeTable(t *testing.T) {
	official := 0
	for code := 0; code < 256; code++ {
		if Name(uint8(code)) != "???" {
			official++
		}
	}

	if official != 151 {
		t.Fatalf("want 151 official opcodes; have %d", official)
	}

	if Size(0x4c) != 3 || Size(0xa9) != 2 || Size(0xea) != 1 {
		t.Fatalf("operand sizes are off")
	}
}
