// Package present hands finished framebuffers to a host surface.
//
// Integer scale factors are handled by the core through its draw option, so
// the framebuffer already has the final size and, for RGBA8888, is passed to
// the surface without a copy. Fractional scale factors make the core draw at
// scale 1 and the bridge scales each frame on the host with a nearest
// neighbour filter.
//
// There is no double buffering. The picture unit may be writing the
// framebuffer while it is being presented.
package present

import (
	"image"
	"math"

	"github.com/hexaflex/dnes/arena"
	"github.com/hexaflex/dnes/core"
	"github.com/pkg/errors"
	"golang.org/x/image/draw"
)

// Surface receives presented frames.
type Surface interface {
	Upload(img *image.RGBA) error
}

// IntegerScale returns scale as an integer if it has no fractional part.
func IntegerScale(scale float64) (int, bool) {
	if scale < 1 || scale != math.Trunc(scale) {
		return 0, false
	}
	return int(scale), true
}

// DrawOption returns the draw option a core should use to draw a picture
// of the given size for the given host scale factor.
func DrawOption(width, height int, scale float64, format core.PixelFormat) core.DrawOption {
	n, ok := IntegerScale(scale)
	if !ok {
		n = 1
	}

	return core.DrawOption{
		Width:  width * n,
		Height: height * n,
		Scale:  n,
		Format: format,
	}
}

// Bridge converts framebuffers and submits them to a surface.
type Bridge struct {
	surface Surface
	geom    arena.Geometry
	format  core.PixelFormat
	src     *image.RGBA // Converted framebuffer; nil if no conversion is needed.
	dst     *image.RGBA // Host scaled frame; nil for integer scales.
	frames  uint64
}

// New creates a bridge for framebuffers of the given geometry and format.
// A fractional scale makes the bridge scale frames on the host.
func New(s Surface, geom arena.Geometry, format core.PixelFormat, scale float64) (*Bridge, error) {
	if geom.BytesPerPixel != core.BytesPerPixel {
		return nil, errors.Errorf("unsupported framebuffer depth: %d", geom.BytesPerPixel)
	}

	if scale <= 0 || math.IsInf(scale, 0) || math.IsNaN(scale) {
		return nil, errors.Errorf("invalid scale factor: %v", scale)
	}

	b := &Bridge{
		surface: s,
		geom:    geom,
		format:  format,
	}

	rect := image.Rect(0, 0, geom.Width, geom.Height)
	if format != core.RGBA8888 {
		b.src = image.NewRGBA(rect)
	}

	if _, ok := IntegerScale(scale); !ok {
		w := int(math.Round(float64(geom.Width) * scale))
		h := int(math.Round(float64(geom.Height) * scale))
		if w < 1 || h < 1 {
			return nil, errors.Errorf("scale factor %v yields an empty frame", scale)
		}

		b.dst = image.NewRGBA(image.Rect(0, 0, w, h))
		if b.src == nil {
			b.src = image.NewRGBA(rect)
		}
	}

	return b, nil
}

// Size returns the size of the frames handed to the surface.
func (b *Bridge) Size() (int, int) {
	if b.dst != nil {
		return b.dst.Rect.Dx(), b.dst.Rect.Dy()
	}
	return b.geom.Width, b.geom.Height
}

// HostScaled returns true if frames are scaled on the host.
func (b *Bridge) HostScaled() bool {
	return b.dst != nil
}

// Frames returns the number of frames presented.
func (b *Bridge) Frames() uint64 {
	return b.frames
}

// Present submits fb to the surface.
func (b *Bridge) Present(fb []byte) error {
	if len(fb) < b.geom.Size() {
		return errors.Errorf("framebuffer too small: %d < %d", len(fb), b.geom.Size())
	}

	var img *image.RGBA
	if b.src != nil {
		Convert(b.src, fb, b.format)
		img = b.src
	} else {
		img = &image.RGBA{
			Pix:    fb[:b.geom.Size()],
			Stride: b.geom.Stride(),
			Rect:   image.Rect(0, 0, b.geom.Width, b.geom.Height),
		}
	}

	if b.dst != nil {
		draw.NearestNeighbor.Scale(b.dst, b.dst.Rect, img, img.Rect, draw.Src, nil)
		img = b.dst
	}

	b.frames++
	return b.surface.Upload(img)
}

// Convert decodes fb, stored in the given pixel format, into dst.
func Convert(dst *image.RGBA, fb []byte, format core.PixelFormat) {
	if format == core.RGBA8888 {
		copy(dst.Pix, fb)
		return
	}

	pix := dst.Pix
	for i := 0; i+3 < len(pix) && i+3 < len(fb); i += 4 {
		pix[i], pix[i+1], pix[i+2], pix[i+3] = format.Get(fb[i:])
	}
}
