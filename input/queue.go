// Package input turns host key edges into controller events for the core.
package input

import (
	"log"
	"sync"

	"github.com/hexaflex/dnes/core"
)

// DefaultCapacity is the number of events a queue holds between drains.
const DefaultCapacity = 64

// releaseRoom is the space kept past a queue's limit for releases, one for
// every button of both controllers.
const releaseRoom = 2 * int(core.ButtonCount)

// Event is a controller event for a given player.
type Event struct {
	Player int
	Key    core.KeyEvent
}

// Queue buffers controller events in arrival order until the processor
// agent drains them.
//
// Presses are dropped once the queue holds limit events. A release is
// queued exactly when its press was, so a held button is always let go.
type Queue struct {
	mu      sync.Mutex
	events  []Event
	held    [2]uint8 // Queued button state per controller.
	limit   int
	dropped int
}

// NewQueue creates a queue holding at most limit events.
// A limit <= 0 selects DefaultCapacity.
func NewQueue(limit int) *Queue {
	if limit <= 0 {
		limit = DefaultCapacity
	}

	return &Queue{
		events: make([]Event, 0, limit+releaseRoom),
		limit:  limit,
	}
}

// Push appends an event. Presses beyond the queue's limit are dropped, as
// are releases of buttons whose press was dropped.
// Returns false if the event was dropped.
func (q *Queue) Push(player int, ev core.KeyEvent) bool {
	if !ev.Valid() {
		return false
	}

	pad := 0
	if player == core.Player2 {
		pad = 1
	}
	bit := uint8(1) << uint(ev.Button())

	q.mu.Lock()
	defer q.mu.Unlock()

	if ev.Pressed() {
		if len(q.events) >= q.limit {
			q.dropped++
			return false
		}
		q.held[pad] |= bit
	} else {
		if q.held[pad]&bit == 0 {
			return false
		}
		q.held[pad] &^= bit
	}

	q.events = append(q.events, Event{player, ev})
	return true
}

// Len returns the number of pending events.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.events)
}

// Drain hands all pending events to fn in arrival order and empties the queue.
func (q *Queue) Drain(fn func(player int, ev core.KeyEvent)) {
	q.mu.Lock()
	events := q.events
	q.events = make([]Event, 0, q.limit+releaseRoom)
	dropped := q.dropped
	q.dropped = 0
	q.mu.Unlock()

	if dropped > 0 {
		log.Printf("input: dropped %d events", dropped)
	}

	for _, e := range events {
		fn(e.Player, e.Key)
	}
}
