package core

import "testing"

func TestKeyEvents(t *testing.T) {
	for b := ButtonA; b < ButtonCount; b++ {
		p := Press(b)
		r := Release(b)

		if !p.Pressed() || r.Pressed() {
			t.Fatalf("%v: press/release mixed up", b)
		}
		if p.Button() != b || r.Button() != b {
			t.Fatalf("%v: want button %v; have %v and %v", b, b, p.Button(), r.Button())
		}
	}

	if Press(ButtonRight) != PressRight || Release(ButtonRight) != ReleaseRight {
		t.Fatalf("event ordering does not match button ordering")
	}

	if KeyEvent(16).Valid() {
		t.Fatalf("event 16 should be invalid")
	}
}

func TestPixelFormats(t *testing.T) {
	for _, f := range []PixelFormat{RGBA8888, BGRA8888, ARGB8888} {
		var p [4]byte
		f.Put(p[:], 1, 2, 3)
		r, g, b, a := f.Get(p[:])
		if r != 1 || g != 2 || b != 3 || a != 0xff {
			t.Fatalf("%v: want 1 2 3 ff; have %d %d %d %02x", f, r, g, b, a)
		}
	}

	var p [4]byte
	ARGB8888.Put(p[:], 1, 2, 3)
	if p != [4]byte{0xff, 1, 2, 3} {
		t.Fatalf("ARGB8888: unexpected layout %v", p)
	}
}
