package input

import (
	"bytes"
	"strconv"
	"strings"
	"testing"

	"github.com/hexaflex/dnes/core"
)

func TestPressReleaseOrder(t *testing.T) {
	b := make(Bindings)
	b.Bind(core.Player1, [core.ButtonCount]int{10, 11, 12, 13, 14, 15, 16, 17})

	q := NewQueue(0)
	b.Handle(q, 13, true)
	b.Handle(q, 13, false)

	var have []Event
	q.Drain(func(player int, ev core.KeyEvent) {
		have = append(have, Event{player, ev})
	})

	want := []Event{{core.Player1, core.PressStart}, {core.Player1, core.ReleaseStart}}
	if len(have) != len(want) {
		t.Fatalf("want %v; have %v", want, have)
	}

	for i := range want {
		if have[i] != want[i] {
			t.Fatalf("event %d: want %v; have %v", i, want[i], have[i])
		}
	}

	if q.Len() != 0 {
		t.Fatalf("queue not empty after drain")
	}
}

func TestUnboundKey(t *testing.T) {
	b := make(Bindings)
	b.Bind(core.Player2, [core.ButtonCount]int{1, -1, -1, -1, -1, -1, -1, -1})

	q := NewQueue(0)
	if b.Handle(q, 2, true) {
		t.Fatalf("unbound key handled")
	}

	if !b.Handle(q, 1, true) {
		t.Fatalf("bound key ignored")
	}

	q.Drain(func(player int, ev core.KeyEvent) {
		if player != core.Player2 || ev != core.PressA {
			t.Fatalf("have player %d %v", player, ev)
		}
	})
}

func TestQueueLimit(t *testing.T) {
	q := NewQueue(2)

	for i := 0; i < 3; i++ {
		ok := q.Push(core.Player1, core.PressA)
		if ok != (i < 2) {
			t.Fatalf("push %d: have %v", i, ok)
		}
	}

	if q.Push(core.Player1, core.KeyEvent(99)) {
		t.Fatalf("invalid event queued")
	}

	n := 0
	q.Drain(func(int, core.KeyEvent) { n++ })
	if n != 2 {
		t.Fatalf("want 2 events; have %d", n)
	}
}

func TestReleaseAfterFullQueue(t *testing.T) {
	q := NewQueue(2)

	q.Push(core.Player1, core.PressA)
	q.Push(core.Player2, core.PressB)

	if q.Push(core.Player1, core.PressSelect) {
		t.Fatalf("press queued past the limit")
	}

	// The press was dropped, so its release is too.
	if q.Push(core.Player1, core.ReleaseSelect) {
		t.Fatalf("release queued without its press")
	}

	if !q.Push(core.Player1, core.ReleaseA) || !q.Push(core.Player2, core.ReleaseB) {
		t.Fatalf("release of a queued press dropped")
	}

	var have []Event
	q.Drain(func(player int, ev core.KeyEvent) {
		have = append(have, Event{player, ev})
	})

	want := []Event{
		{core.Player1, core.PressA},
		{core.Player2, core.PressB},
		{core.Player1, core.ReleaseA},
		{core.Player2, core.ReleaseB},
	}

	if len(have) != len(want) {
		t.Fatalf("want %v; have %v", want, have)
	}

	for i := range want {
		if have[i] != want[i] {
			t.Fatalf("event %d: want %v; have %v", i, want[i], have[i])
		}
	}
}

func TestReleaseAcrossDrain(t *testing.T) {
	q := NewQueue(1)
	q.Push(core.Player1, core.PressUp)
	q.Drain(func(int, core.KeyEvent) {})

	q.Push(core.Player1, core.PressDown)
	if !q.Push(core.Player1, core.ReleaseUp) {
		t.Fatalf("release of a drained press dropped")
	}

	if q.Len() != 2 {
		t.Fatalf("want 2 events; have %d", q.Len())
	}
}

func TestDescribe(t *testing.T) {
	b := make(Bindings)
	b.Bind(core.Player1, [core.ButtonCount]int{1, 2, -1, -1, -1, -1, -1, -1})

	var buf bytes.Buffer
	b.Describe(&buf, strconv.Itoa)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 || !strings.Contains(lines[0], "A") || !strings.HasSuffix(lines[1], "2") {
		t.Fatalf("have %q", buf.String())
	}
}
