package core

// PixelFormat defines the byte layout of a framebuffer pixel.
type PixelFormat uint8

// Known pixel formats.
const (
	RGBA8888 PixelFormat = iota
	BGRA8888
	ARGB8888
)

func (f PixelFormat) String() string {
	switch f {
	case RGBA8888:
		return "RGBA8888"
	case BGRA8888:
		return "BGRA8888"
	case ARGB8888:
		return "ARGB8888"
	}
	return "invalid"
}

// BytesPerPixel is the size of a pixel in every supported format.
const BytesPerPixel = 4

// Put writes the given color to p in format f.
func (f PixelFormat) Put(p []byte, r, g, b uint8) {
	switch f {
	case BGRA8888:
		p[0], p[1], p[2], p[3] = b, g, r, 0xff
	case ARGB8888:
		p[0], p[1], p[2], p[3] = 0xff, r, g, b
	default:
		p[0], p[1], p[2], p[3] = r, g, b, 0xff
	}
}

// Get reads the color stored in p in format f.
func (f PixelFormat) Get(p []byte) (r, g, b, a uint8) {
	switch f {
	case BGRA8888:
		return p[2], p[1], p[0], p[3]
	case ARGB8888:
		return p[1], p[2], p[3], p[0]
	default:
		return p[0], p[1], p[2], p[3]
	}
}

// DrawOption defines where and how the picture unit draws into the framebuffer.
type DrawOption struct {
	Width   int         // Framebuffer width in pixels.
	Height  int         // Framebuffer height in pixels.
	OffsetX int         // Horizontal offset of the picture in pixels.
	OffsetY int         // Vertical offset of the picture in pixels.
	Scale   int         // Integer scale factor; values < 1 are treated as 1.
	Format  PixelFormat // Pixel byte layout.
}

// EffectiveScale returns the scale factor, clamped to at least 1.
func (o DrawOption) EffectiveScale() int {
	if o.Scale < 1 {
		return 1
	}
	return o.Scale
}
