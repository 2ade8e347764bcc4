package nes

import (
	"bytes"
	"testing"

	"github.com/hexaflex/dnes/arena"
	"github.com/hexaflex/dnes/core"
)

const origin = 0x8000

// newROM builds a 16K NROM image with CHR RAM holding prg at $8000 and the
// given interrupt vectors.
func newROM(prg []byte, nmi, reset, irq uint16) []byte {
	rom := make([]byte, HeaderSize+prgBankSize)
	copy(rom, []byte{'N', 'E', 'S', 0x1a, 1, 0, 0x01, 0})
	copy(rom[HeaderSize:], prg)

	vectors := rom[HeaderSize+prgBankSize-6:]
	vectors[0], vectors[1] = uint8(nmi), uint8(nmi>>8)
	vectors[2], vectors[3] = uint8(reset), uint8(reset>>8)
	vectors[4], vectors[5] = uint8(irq), uint8(irq>>8)
	return rom
}

// newTestNES creates a core with its own arena, loads rom and resets it.
func newTestNES(t *testing.T, rom []byte, opt core.DrawOption) *NES {
	t.Helper()

	n := New()
	n.SetDrawOption(opt)

	a, err := arena.New(n.Sizes(), 0)
	if err != nil {
		t.Fatalf("arena: %v", err)
	}
	t.Cleanup(a.Free)

	if err := n.Init(a); err != nil {
		t.Fatalf("Init: %v", err)
	}

	if err := n.LoadROM(rom); err != nil {
		t.Fatalf("LoadROM: %v", err)
	}

	n.Reset()
	return n
}

type codeTest struct {
	program bytes.Buffer
	want    map[string]int
	mem     map[uint16]uint8
	halt    uint16
}

func newCodeTest() *codeTest {
	return &codeTest{
		want: make(map[string]int),
		mem:  make(map[uint16]uint8),
	}
}

// pc returns the address of the next emitted instruction.
func (ct *codeTest) pc() uint16 {
	return origin + uint16(ct.program.Len())
}

func (ct *codeTest) emit(code uint8, operand ...uint8) {
	ct.program.WriteByte(code)
	ct.program.Write(operand)
}

// emitHalt emits a jump to itself, which ends the test program.
func (ct *codeTest) emitHalt() {
	ct.halt = ct.pc()
	ct.emit(0x4c, lo(ct.halt), hi(ct.halt))
}

func lo(v uint16) uint8 { return uint8(v) }
func hi(v uint16) uint8 { return uint8(v >> 8) }

func runTest(t *testing.T, ct *codeTest) *NES {
	t.Helper()

	n := newTestNES(t, newROM(ct.program.Bytes(), origin, origin, origin), core.DrawOption{})

	for i := 0; i < 10000 && n.Registers().PC != ct.halt; i++ {
		n.StepCPU()
	}

	if pc := n.Registers().PC; pc != ct.halt {
		t.Fatalf("program did not halt; pc=%04x", pc)
	}

	r := n.Registers()
	have := map[string]int{
		"A":  int(r.A),
		"X":  int(r.X),
		"Y":  int(r.Y),
		"SP": int(r.SP),
		"P":  int(r.P),
	}

	for k, v := range ct.want {
		if have[k] != v {
			t.Errorf("register %s: want %02x; have %02x", k, v, have[k])
		}
	}

	for addr, v := range ct.mem {
		if m := n.Peek(addr); m != v {
			t.Errorf("memory %04x: want %02x; have %02x", addr, v, m)
		}
	}

	return n
}

func TestPowerOn(t *testing.T) {
	n := newTestNES(t, newROM(nil, 0x9000, 0x8123, 0xa000), core.DrawOption{})

	want := Registers{A: 0, X: 0, Y: 0, SP: 0xfd, P: 0x24, PC: 0x8123}
	if have := n.Registers(); have != want {
		t.Fatalf("want %+v; have %+v", want, have)
	}

	if n.Cycles() != 0 || n.Frame() != 0 || n.Line() != powerOnLine {
		t.Fatalf("counters not cleared: cycles=%d frame=%d line=%d", n.Cycles(), n.Frame(), n.Line())
	}
}

func TestResetCopiesTrainer(t *testing.T) {
	rom := append(header(1, 0, 0x04, 0), make([]byte, trainerSize+prgBankSize)...)
	rom[HeaderSize] = 0x5a
	rom[HeaderSize+trainerSize-1] = 0xa5

	n := newTestNES(t, rom, core.DrawOption{})

	if v := n.Peek(trainerAddr); v != 0x5a {
		t.Fatalf("$7000: want 5a; have %02x", v)
	}

	if v := n.Peek(trainerAddr + trainerSize - 1); v != 0xa5 {
		t.Fatalf("$71ff: want a5; have %02x", v)
	}

	n.write(trainerAddr, 0)
	n.Reset()

	if v := n.Peek(trainerAddr); v != 0x5a {
		t.Fatalf("trainer not restored by reset: %02x", v)
	}
}

func TestResetKeepsButtons(t *testing.T) {
	n := newTestNES(t, newROM(nil, origin, origin, origin), core.DrawOption{})

	n.UpdateKey(core.Player1, core.PressA)
	n.UpdateKey(core.Player2, core.PressStart)
	n.Reset()

	if n.Buttons(core.Player1) != 1<<core.ButtonA {
		t.Fatalf("player 1: want %08b; have %08b", 1<<core.ButtonA, n.Buttons(core.Player1))
	}

	if n.Buttons(core.Player2) != 1<<core.ButtonStart {
		t.Fatalf("player 2: want %08b; have %08b", 1<<core.ButtonStart, n.Buttons(core.Player2))
	}

	// A release after the reset still reaches the held button.
	n.UpdateKey(core.Player1, core.ReleaseA)
	if n.Buttons(core.Player1) != 0 {
		t.Fatalf("release lost after reset")
	}
}

func TestResetRestoresPowerOn(t *testing.T) {
	ct := newCodeTest()
	ct.emit(0xa9, 0x11) // LDA #$11
	ct.emit(0xa2, 0x22) // LDX #$22
	ct.emit(0x85, 0x10) // STA $10
	ct.emitHalt()

	n := runTest(t, ct)
	n.Reset()

	want := Registers{SP: 0xfd, P: 0x24, PC: origin}
	if have := n.Registers(); have != want {
		t.Fatalf("want %+v; have %+v", want, have)
	}

	if n.Peek(0x10) != 0 {
		t.Fatalf("ram survived reset")
	}
}

func TestResetKeepsDrawOption(t *testing.T) {
	opt := core.DrawOption{Scale: 2, OffsetX: 3, Format: core.BGRA8888}
	n := newTestNES(t, newROM(nil, origin, origin, origin), opt)
	n.Reset()

	have := n.loadOption()
	want := normalizeOption(opt)
	if have != want {
		t.Fatalf("want %+v; have %+v", want, have)
	}
}

func TestLoadROMRejects(t *testing.T) {
	n := New()

	for name, rom := range map[string][]byte{
		"empty":     nil,
		"short":     []byte{'N', 'E', 'S'},
		"magic":     make([]byte, 64),
		"truncated": newROM(nil, 0, 0, 0)[:HeaderSize+100],
	} {
		if err := n.LoadROM(rom); err == nil {
			t.Errorf("%s: want error", name)
		}
	}

	if n.Cartridge() != nil {
		t.Fatalf("rejected rom was kept")
	}
}

func TestInterruptRESET(t *testing.T) {
	n := newTestNES(t, newROM(nil, origin, 0x8010, origin), core.DrawOption{})
	n.Interrupt(core.RESET)

	r := n.Registers()
	if r.PC != 0x8010 || r.SP != 0xfa || r.P&flagI == 0 {
		t.Fatalf("have %+v", r)
	}
}

func TestInterruptNone(t *testing.T) {
	n := newTestNES(t, newROM(nil, origin, origin, origin), core.DrawOption{})
	before := n.Registers()
	n.Interrupt(core.None)

	if n.Registers() != before {
		t.Fatalf("None changed the registers")
	}
}

func TestControllers(t *testing.T) {
	n := newTestNES(t, newROM(nil, origin, origin, origin), core.DrawOption{})

	n.UpdateKey(core.Player1, core.PressA)
	n.UpdateKey(core.Player1, core.PressStart)
	n.UpdateKey(core.Player2, core.PressLeft)
	n.UpdateKey(7, core.PressB) // Unknown players address the first controller.
	n.UpdateKey(core.Player1, core.ReleaseB)

	n.write(0x4016, 1)
	n.write(0x4016, 0)

	want1 := []uint8{1, 0, 0, 1, 0, 0, 0, 0}
	want2 := []uint8{0, 0, 0, 0, 0, 0, 1, 0}

	for i := range want1 {
		if v := n.read(0x4016) & 1; v != want1[i] {
			t.Fatalf("pad 1 bit %d: want %d; have %d", i, want1[i], v)
		}
		if v := n.read(0x4017) & 1; v != want2[i] {
			t.Fatalf("pad 2 bit %d: want %d; have %d", i, want2[i], v)
		}
	}

	// Past the eighth read the shift register yields ones.
	if n.read(0x4016)&1 != 1 {
		t.Fatalf("want 1 after eight reads")
	}
}

func TestInvalidKeyEvent(t *testing.T) {
	n := newTestNES(t, newROM(nil, origin, origin, origin), core.DrawOption{})
	n.UpdateKey(core.Player1, core.KeyEvent(200))

	if n.Buttons(core.Player1) != 0 {
		t.Fatalf("invalid event changed controller state")
	}
}
