package present

import (
	"image"
	"image/png"
	"io"
)

// Recorder is a surface that keeps a copy of the most recent frame.
type Recorder struct {
	last   *image.RGBA
	frames int
}

// Upload copies img.
func (r *Recorder) Upload(img *image.RGBA) error {
	if r.last == nil || r.last.Rect != img.Rect {
		r.last = image.NewRGBA(img.Rect)
	}

	for y := img.Rect.Min.Y; y < img.Rect.Max.Y; y++ {
		copy(r.last.Pix[r.last.PixOffset(img.Rect.Min.X, y):], img.Pix[img.PixOffset(img.Rect.Min.X, y):img.PixOffset(img.Rect.Max.X, y)])
	}

	r.frames++
	return nil
}

// Frames returns the number of frames received.
func (r *Recorder) Frames() int {
	return r.frames
}

// Last returns the most recent frame, or nil.
func (r *Recorder) Last() *image.RGBA {
	return r.last
}

// WritePNG encodes the most recent frame as PNG.
func (r *Recorder) WritePNG(w io.Writer) error {
	if r.last == nil {
		return io.ErrUnexpectedEOF
	}
	return png.Encode(w, r.last)
}
