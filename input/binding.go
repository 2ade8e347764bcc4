package input

import (
	"fmt"
	"io"
	"sort"

	"github.com/hexaflex/dnes/core"
)

// Binding maps a host key to a controller button.
type Binding struct {
	Player int
	Button core.Button
}

// Bindings maps host key codes to controller buttons.
type Bindings map[int]Binding

// Bind adds a binding for every button of the given player. Keys are given
// in core.Button order; a negative key leaves the button unbound.
func (b Bindings) Bind(player int, keys [core.ButtonCount]int) {
	for i, key := range keys {
		if key >= 0 {
			b[key] = Binding{player, core.Button(i)}
		}
	}
}

// Handle queues the event for key if it is bound.
// Returns false if the key is not bound.
func (b Bindings) Handle(q *Queue, key int, pressed bool) bool {
	bind, ok := b[key]
	if !ok {
		return false
	}

	ev := core.Release(bind.Button)
	if pressed {
		ev = core.Press(bind.Button)
	}

	q.Push(bind.Player, ev)
	return true
}

// Describe writes one line per binding, ordered by player and button.
// name turns a key code into a readable name.
func (b Bindings) Describe(w io.Writer, name func(key int) string) {
	type entry struct {
		key int
		Binding
	}

	entries := make([]entry, 0, len(b))
	for key, bind := range b {
		entries = append(entries, entry{key, bind})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Player != entries[j].Player {
			return entries[i].Player < entries[j].Player
		}
		if entries[i].Button != entries[j].Button {
			return entries[i].Button < entries[j].Button
		}
		return entries[i].key < entries[j].key
	})

	for _, e := range entries {
		fmt.Fprintf(w, "  player %d %-7s %s\n", e.Player+1, e.Button, name(e.key))
	}
}
