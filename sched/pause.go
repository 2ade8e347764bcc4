package sched

import "sync/atomic"

// PauseState defines the pause handshake state.
type PauseState int32

// Known pause states.
const (
	Running        PauseState = iota // The picture unit agent is polling.
	PauseRequested                   // The processor agent wants the picture unit agent to stop.
	Paused                           // The picture unit agent has stopped and is spinning.
)

func (s PauseState) String() string {
	switch s {
	case Running:
		return "running"
	case PauseRequested:
		return "pause requested"
	case Paused:
		return "paused"
	}
	return "invalid"
}

// Control holds the cross-agent control state.
//
// Transitions are compare-and-swap operations, so an agent can only move the
// state along the edges it owns:
//
//	processor agent:    Running -> PauseRequested, Paused -> Running
//	picture unit agent: PauseRequested -> Paused
//
// The abort flag is set once and never cleared.
type Control struct {
	state atomic.Int32
	abort atomic.Bool
}

// State returns the current pause state.
func (c *Control) State() PauseState {
	return PauseState(c.state.Load())
}

// RequestPause moves Running to PauseRequested.
// Returns false if the state was not Running.
func (c *Control) RequestPause() bool {
	return c.state.CompareAndSwap(int32(Running), int32(PauseRequested))
}

// AckPause moves PauseRequested to Paused.
// Returns false if no pause was requested.
func (c *Control) AckPause() bool {
	return c.state.CompareAndSwap(int32(PauseRequested), int32(Paused))
}

// Resume moves Paused to Running.
// Returns false if the state was not Paused.
func (c *Control) Resume() bool {
	return c.state.CompareAndSwap(int32(Paused), int32(Running))
}

// Abort tells the picture unit agent to exit.
func (c *Control) Abort() {
	c.abort.Store(true)
}

// Aborted returns true once Abort has been called.
func (c *Control) Aborted() bool {
	return c.abort.Load()
}
