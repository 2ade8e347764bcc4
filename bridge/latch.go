package bridge

import (
	"sync/atomic"

	"github.com/hexaflex/dnes/core"
)

// Latch holds at most one pending interrupt edge.
//
// Raise is only called by the picture unit agent; Take only by the
// processor agent. A raise while the latch is occupied is discarded.
type Latch struct {
	slot atomic.Uint32 // 0 when empty, interrupt+1 otherwise.
}

// Raise stores irq if the latch is empty. Returns false and leaves the
// latch untouched if it already holds an edge. Raising None is a no-op
// that reports success.
func (l *Latch) Raise(irq core.Interrupt) bool {
	if irq == core.None {
		return true
	}
	return l.slot.CompareAndSwap(0, uint32(irq)+1)
}

// Take removes and returns the pending edge, or None if the latch is empty.
func (l *Latch) Take() core.Interrupt {
	v := l.slot.Swap(0)
	if v == 0 {
		return core.None
	}
	return core.Interrupt(v - 1)
}

// Peek returns the pending edge without clearing it.
func (l *Latch) Peek() core.Interrupt {
	v := l.slot.Load()
	if v == 0 {
		return core.None
	}
	return core.Interrupt(v - 1)
}

// Clear empties the latch.
func (l *Latch) Clear() {
	l.slot.Store(0)
}
