package present

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/hexaflex/dnes/arena"
	"github.com/hexaflex/dnes/core"
)

func testFrame(geom arena.Geometry, format core.PixelFormat) []byte {
	fb := make([]byte, geom.Size())
	for y := 0; y < geom.Height; y++ {
		for x := 0; x < geom.Width; x++ {
			format.Put(fb[y*geom.Stride()+x*4:], uint8(x), uint8(y), 0x80)
		}
	}
	return fb
}

func TestIntegerScale(t *testing.T) {
	tests := []struct {
		in   float64
		want int
		ok   bool
	}{
		{1, 1, true},
		{3, 3, true},
		{2.5, 0, false},
		{0.5, 0, false},
		{0, 0, false},
	}

	for _, tt := range tests {
		n, ok := IntegerScale(tt.in)
		if n != tt.want || ok != tt.ok {
			t.Fatalf("IntegerScale(%v): want %d,%v; have %d,%v", tt.in, tt.want, tt.ok, n, ok)
		}
	}
}

func TestDrawOption(t *testing.T) {
	opt := DrawOption(256, 240, 2, core.BGRA8888)
	if opt.Width != 512 || opt.Height != 480 || opt.Scale != 2 || opt.Format != core.BGRA8888 {
		t.Fatalf("unexpected option: %+v", opt)
	}

	opt = DrawOption(256, 240, 1.5, core.RGBA8888)
	if opt.Width != 256 || opt.Height != 240 || opt.Scale != 1 {
		t.Fatalf("unexpected option: %+v", opt)
	}
}

func TestPresentPassthrough(t *testing.T) {
	geom := arena.Geometry{Width: 4, Height: 3, BytesPerPixel: 4}
	fb := testFrame(geom, core.RGBA8888)

	var rec Recorder
	b, err := New(&rec, geom, core.RGBA8888, 1)
	if err != nil {
		t.Fatal(err)
	}

	if b.HostScaled() {
		t.Fatalf("expected no host scaling")
	}

	if err := b.Present(fb); err != nil {
		t.Fatal(err)
	}

	if rec.Frames() != 1 || b.Frames() != 1 {
		t.Fatalf("frame count mismatch: %d %d", rec.Frames(), b.Frames())
	}

	if !bytes.Equal(rec.Last().Pix, fb) {
		t.Fatalf("frame contents mismatch")
	}
}

func TestPresentConvert(t *testing.T) {
	geom := arena.Geometry{Width: 4, Height: 3, BytesPerPixel: 4}
	want := testFrame(geom, core.RGBA8888)

	for _, format := range []core.PixelFormat{core.BGRA8888, core.ARGB8888} {
		var rec Recorder
		b, err := New(&rec, geom, format, 1)
		if err != nil {
			t.Fatal(err)
		}

		if err := b.Present(testFrame(geom, format)); err != nil {
			t.Fatal(err)
		}

		if !bytes.Equal(rec.Last().Pix, want) {
			t.Fatalf("%v: frame contents mismatch", format)
		}
	}
}

func TestPresentHostScaled(t *testing.T) {
	geom := arena.Geometry{Width: 4, Height: 2, BytesPerPixel: 4}
	fb := testFrame(geom, core.RGBA8888)

	var rec Recorder
	b, err := New(&rec, geom, core.RGBA8888, 1.5)
	if err != nil {
		t.Fatal(err)
	}

	if w, h := b.Size(); w != 6 || h != 3 {
		t.Fatalf("size mismatch: %dx%d", w, h)
	}

	if err := b.Present(fb); err != nil {
		t.Fatal(err)
	}

	img := rec.Last()
	if img.Rect.Dx() != 6 || img.Rect.Dy() != 3 {
		t.Fatalf("frame size mismatch: %v", img.Rect)
	}

	// Nearest neighbour never invents colors.
	for y := 0; y < 3; y++ {
		for x := 0; x < 6; x++ {
			c := img.RGBAAt(x, y)
			if c.R >= 4 || c.G >= 2 || c.B != 0x80 || c.A != 0xff {
				t.Fatalf("pixel %d,%d: unexpected color %v", x, y, c)
			}
		}
	}

	if c := img.RGBAAt(5, 2); c.R != 3 || c.G != 1 {
		t.Fatalf("bottom right pixel: unexpected color %v", c)
	}
}

func TestPresentErrors(t *testing.T) {
	geom := arena.Geometry{Width: 4, Height: 2, BytesPerPixel: 4}

	if _, err := New(&Recorder{}, arena.Geometry{Width: 4, Height: 2, BytesPerPixel: 3}, core.RGBA8888, 1); err == nil {
		t.Fatalf("expected depth error")
	}

	if _, err := New(&Recorder{}, geom, core.RGBA8888, 0); err == nil {
		t.Fatalf("expected scale error")
	}

	b, err := New(&Recorder{}, geom, core.RGBA8888, 1)
	if err != nil {
		t.Fatal(err)
	}

	if err := b.Present(make([]byte, 4)); err == nil {
		t.Fatalf("expected size error")
	}
}

func TestRecorderPNG(t *testing.T) {
	var rec Recorder
	var buf bytes.Buffer

	if err := rec.WritePNG(&buf); err == nil {
		t.Fatalf("expected error without a frame")
	}

	geom := arena.Geometry{Width: 4, Height: 3, BytesPerPixel: 4}
	b, err := New(&rec, geom, core.RGBA8888, 1)
	if err != nil {
		t.Fatal(err)
	}

	if err := b.Present(testFrame(geom, core.RGBA8888)); err != nil {
		t.Fatal(err)
	}

	if err := rec.WritePNG(&buf); err != nil {
		t.Fatal(err)
	}

	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatal(err)
	}

	if img.Bounds().Dx() != 4 || img.Bounds().Dy() != 3 {
		t.Fatalf("decoded size mismatch: %v", img.Bounds())
	}
}
