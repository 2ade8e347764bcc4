package sched

import (
	"log"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/hexaflex/dnes/arena"
	"github.com/hexaflex/dnes/bridge"
	"github.com/hexaflex/dnes/core"
	"github.com/hexaflex/dnes/fault"
)

// Input yields the key edges received since the last call, in arrival order.
type Input interface {
	Drain(fn func(player int, ev core.KeyEvent))
}

// Presenter submits a finished framebuffer to the host.
type Presenter interface {
	Present(fb []byte) error
}

// Config defines machine properties.
type Config struct {
	Cooperative bool      // Run the picture unit agent inline after every processor step.
	ArenaLimit  int       // Arena ceiling in bytes. 0 means arena.DefaultLimit.
	Input       Input     // Optional key edge source.
	Presenter   Presenter // Optional frame sink.
	Pacer       Pacer     // Optional frame pacer. nil runs unthrottled.
}

// Machine drives a core with a processor agent and a picture unit agent.
//
// Frame, RequestReset, Load and Close must be called from the processor
// agent's goroutine. RequestReset may additionally be called from a host
// callback running on that same goroutine.
type Machine struct {
	core      core.Core
	arena     *arena.Arena
	timing    core.Timing
	counters  bridge.Counters
	latch     bridge.Latch
	bridge    *bridge.Bridge
	ctl       Control
	secondary *Secondary
	wg        sync.WaitGroup
	cfg       Config
	reset     atomic.Bool
	overshoot int // Cycles the last frame ran past its budget.
	frames    atomic.Uint64
	resets    atomic.Uint64
	running   bool
	closed    bool
}

// New allocates the arena for c and initializes the core in it.
// Returned errors are fault.Allocation errors.
func New(c core.Core, cfg Config) (*Machine, error) {
	limit := cfg.ArenaLimit
	if limit <= 0 {
		limit = arena.DefaultLimit
	}

	a, err := arena.New(c.Sizes(), limit)
	if err != nil {
		return nil, err
	}

	if err := c.Init(a); err != nil {
		a.Free()
		return nil, fault.Wrap(fault.Allocation, err, "core init")
	}

	timing := c.Timing()
	if timing.CyclesPerLine <= 0 || timing.CyclesPerFrame <= 0 {
		a.Free()
		return nil, fault.New(fault.Allocation, "invalid core timing %+v", timing)
	}

	m := &Machine{
		core:   c,
		arena:  a,
		timing: timing,
		cfg:    cfg,
	}

	m.bridge = bridge.New(&m.counters, &m.latch, c, timing.CyclesPerLine)
	m.secondary = NewSecondary(&m.ctl, m.bridge)
	return m, nil
}

// Arena returns the machine's arena.
func (m *Machine) Arena() *arena.Arena {
	return m.arena
}

// Core returns the driven core.
func (m *Machine) Core() core.Core {
	return m.core
}

// Control returns the cross-agent control state.
func (m *Machine) Control() *Control {
	return &m.ctl
}

// Counters returns the shared cycle counters.
func (m *Machine) Counters() *bridge.Counters {
	return &m.counters
}

// Latch returns the shared interrupt latch.
func (m *Machine) Latch() *bridge.Latch {
	return &m.latch
}

// Secondary returns the picture unit agent.
func (m *Machine) Secondary() *Secondary {
	return m.secondary
}

// Frames returns the number of frames presented.
func (m *Machine) Frames() uint64 {
	return m.frames.Load()
}

// Resets returns the number of completed reset handshakes.
func (m *Machine) Resets() uint64 {
	return m.resets.Load()
}

// Load hands the ROM to the core and resets it to power-on state.
// A rejected ROM yields a fault.Load error.
func (m *Machine) Load(rom []byte) error {
	var err error
	m.quiesce(func() {
		if err = m.core.LoadROM(rom); err != nil {
			err = fault.Wrap(fault.Load, err, "load rom")
			return
		}
		m.resetState()
	})
	if err != nil {
		return err
	}

	log.Printf("machine: loaded %d byte rom", len(rom))
	return nil
}

// Start launches the picture unit agent on its own goroutine.
// It does nothing in cooperative mode or if the agent is already running.
func (m *Machine) Start() {
	if m.cfg.Cooperative || m.running || m.closed {
		return
	}

	m.running = true
	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		m.secondary.Run()
	}()
}

// RequestReset schedules a reset handshake at the start of the next frame.
func (m *Machine) RequestReset() {
	m.reset.Store(true)
}

// Frame runs one processor agent iteration.
func (m *Machine) Frame() error {
	if m.cfg.Input != nil {
		m.cfg.Input.Drain(m.core.UpdateKey)
	}

	if m.reset.Swap(false) {
		m.quiesce(m.resetState)
		log.Println("machine: reset")
	} else {
		m.runCPU()
	}

	if irq := m.latch.Take(); irq != core.None {
		m.core.Interrupt(irq)
	}

	if m.cfg.Presenter != nil {
		if err := m.cfg.Presenter.Present(m.arena.Framebuffer().Bytes()); err != nil {
			return err
		}
	}

	m.frames.Add(1)

	if m.cfg.Pacer != nil {
		m.cfg.Pacer.Wait()
	}
	return nil
}

// runCPU steps the processor until the frame budget is spent. Cycles run
// past the budget are taken off the next frame's budget, so frame ends stay
// aligned with the picture unit's frames.
func (m *Machine) runCPU() {
	budget := m.overshoot
	for budget < m.timing.CyclesPerFrame {
		n := m.core.StepCPU()
		if n < 1 {
			n = 1
		}

		budget += n
		m.counters.AdvanceCPU(uint32(n))

		if m.cfg.Cooperative {
			m.secondary.Iterate()
		}
	}

	m.overshoot = budget - m.timing.CyclesPerFrame
}

// quiesce runs fn while the picture unit agent is known not to touch the
// core or the counters.
func (m *Machine) quiesce(fn func()) {
	if !m.running {
		fn()
		return
	}

	if !m.ctl.RequestPause() {
		log.Println("machine: pause requested in state", m.ctl.State())
	}

	for m.ctl.State() != Paused {
		select {
		case <-m.secondary.Done():
			fn()
			return
		default:
			runtime.Gosched()
		}
	}

	fn()
	m.ctl.Resume()
}

// resetState returns the core, the counters and the latch to power-on state.
func (m *Machine) resetState() {
	m.core.Reset()
	m.counters.Reset()
	m.latch.Clear()
	m.overshoot = 0
	m.resets.Add(1)
}

// Close stops the picture unit agent, waits for it to exit and releases
// the arena. It is safe to call more than once.
func (m *Machine) Close() error {
	if m.closed {
		return nil
	}

	m.closed = true
	m.ctl.Abort()
	m.wg.Wait()
	m.running = false

	if m.cfg.Pacer != nil {
		m.cfg.Pacer.Stop()
	}

	m.arena.Free()
	log.Println("machine: shutdown")
	return nil
}
