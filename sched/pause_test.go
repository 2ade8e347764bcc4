package sched

import (
	"testing"

	"github.com/hexaflex/dnes/bridge"
	"github.com/hexaflex/dnes/core"
)

type idlePPU struct{ calls int }

func (p *idlePPU) StepPPU(int) core.Interrupt {
	p.calls++
	return core.None
}

func TestPauseTransitions(t *testing.T) {
	var c Control

	if c.AckPause() {
		t.Fatalf("ack without request")
	}

	if c.Resume() {
		t.Fatalf("resume while running")
	}

	if !c.RequestPause() {
		t.Fatalf("request from running")
	}

	if c.RequestPause() {
		t.Fatalf("double request")
	}

	if !c.AckPause() || c.State() != Paused {
		t.Fatalf("ack: have %v", c.State())
	}

	if !c.Resume() || c.State() != Running {
		t.Fatalf("resume: have %v", c.State())
	}
}

func TestPausedWithinOneIteration(t *testing.T) {
	var (
		ctl      Control
		counters bridge.Counters
		latch    bridge.Latch
		ppu      idlePPU
	)

	b := bridge.New(&counters, &latch, &ppu, 10)
	s := NewSecondary(&ctl, b)

	counters.AdvanceCPU(50)
	ctl.RequestPause()
	s.Iterate()

	if ctl.State() != Paused {
		t.Fatalf("state: want %v; have %v", Paused, ctl.State())
	}

	// No picture unit work while paused.
	for i := 0; i < 10; i++ {
		s.Iterate()
	}

	if ppu.calls != 0 || counters.PPU() != 0 {
		t.Fatalf("picture unit advanced while paused: %d calls", ppu.calls)
	}

	ctl.Resume()
	s.Iterate()

	if ppu.calls != 5 || counters.PPU() != 50 {
		t.Fatalf("after resume: want 5 lines; have %d", ppu.calls)
	}
}

func TestRunExitsOnAbort(t *testing.T) {
	var (
		ctl      Control
		counters bridge.Counters
		latch    bridge.Latch
		ppu      idlePPU
	)

	s := NewSecondary(&ctl, bridge.New(&counters, &latch, &ppu, 10))
	ctl.Abort()
	s.Run()

	select {
	case <-s.Done():
	default:
		t.Fatalf("done not closed")
	}
}
