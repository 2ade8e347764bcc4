package sched

import (
	"log"
	"runtime"
	"sync/atomic"

	"github.com/hexaflex/dnes/bridge"
)

// Secondary is the picture unit agent. It feeds processor cycles to the
// picture unit through the bridge and never blocks.
type Secondary struct {
	ctl    *Control
	bridge *bridge.Bridge
	done   chan struct{}
	polls  atomic.Uint64
	lines  atomic.Uint64
}

// NewSecondary creates a picture unit agent.
func NewSecondary(ctl *Control, b *bridge.Bridge) *Secondary {
	return &Secondary{
		ctl:    ctl,
		bridge: b,
		done:   make(chan struct{}),
	}
}

// Run polls until the control is aborted. It is meant to run on its own
// goroutine for the lifetime of the session.
func (s *Secondary) Run() {
	defer close(s.done)

	log.Println("ppu agent: startup")
	for !s.ctl.Aborted() {
		if !s.Iterate() {
			runtime.Gosched()
		}
	}
	log.Println("ppu agent: shutdown")
}

// Done is closed once Run returns.
func (s *Secondary) Done() <-chan struct{} {
	return s.done
}

// Iterate performs a single poll iteration. It acknowledges a pending pause
// request, does nothing while paused and otherwise runs all owed lines.
// Returns true if any picture unit work was done.
func (s *Secondary) Iterate() bool {
	s.polls.Add(1)

	switch s.ctl.State() {
	case PauseRequested:
		s.ctl.AckPause()
		return false
	case Paused:
		return false
	}

	n := s.bridge.Poll()
	if n == 0 {
		return false
	}

	s.lines.Add(uint64(n))
	return true
}

// Polls returns the number of poll iterations performed.
func (s *Secondary) Polls() uint64 {
	return s.polls.Load()
}

// Lines returns the number of picture unit lines run.
func (s *Secondary) Lines() uint64 {
	return s.lines.Load()
}
