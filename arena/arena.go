// Package arena carves one contiguous allocation into the disjoint regions
// holding the framebuffer and the emulation core's state.
package arena

import (
	"fmt"
	"log"

	"github.com/pkg/errors"

	"github.com/hexaflex/dnes/fault"
)

// Kind identifies a region in the arena.
type Kind int

// Known regions, in allocation order.
const (
	Framebuffer Kind = iota
	Processor
	System
	Picture
	regionCount
)

func (k Kind) String() string {
	switch k {
	case Framebuffer:
		return "framebuffer"
	case Processor:
		return "processor"
	case System:
		return "system"
	case Picture:
		return "picture"
	}
	return fmt.Sprintf("region(%d)", int(k))
}

// DefaultLimit is the default ceiling for a single arena allocation.
const DefaultLimit = 64 << 20

// Geometry defines the framebuffer dimensions.
type Geometry struct {
	Width         int // Width in pixels.
	Height        int // Height in pixels.
	BytesPerPixel int // Size of a single pixel in bytes.
}

// Size returns the framebuffer size in bytes.
func (g Geometry) Size() int {
	return g.Width * g.Height * g.BytesPerPixel
}

// Stride returns the number of bytes in a single framebuffer row.
func (g Geometry) Stride() int {
	return g.Width * g.BytesPerPixel
}

// Sizes defines the size requirements for every region.
type Sizes struct {
	Framebuffer Geometry
	Processor   int // Size of the processor state in bytes.
	System      int // Size of the system/bus state in bytes.
	Picture     int // Size of the picture unit state in bytes.
}

// Lengths returns the region lengths in allocation order.
func (s Sizes) Lengths() [regionCount]int {
	return [regionCount]int{
		s.Framebuffer.Size(),
		s.Processor,
		s.System,
		s.Picture,
	}
}

// Total returns the combined size of all regions.
// Returns an error if any size is negative or the sum overflows.
func (s Sizes) Total() (int, error) {
	g := s.Framebuffer
	if g.Width < 0 || g.Height < 0 || g.BytesPerPixel < 0 {
		return 0, errors.Errorf("invalid framebuffer geometry %dx%dx%d", g.Width, g.Height, g.BytesPerPixel)
	}

	if g.Width > 0 && g.Height > 0 && g.BytesPerPixel > 0 {
		const max = int(^uint(0) >> 1)
		if g.Width > max/g.Height || g.Width*g.Height > max/g.BytesPerPixel {
			return 0, errors.Errorf("framebuffer geometry %dx%dx%d overflows", g.Width, g.Height, g.BytesPerPixel)
		}
	}

	total := 0
	for k, n := range s.Lengths() {
		if n < 0 {
			return 0, errors.Errorf("negative size %d for %s region", n, Kind(k))
		}
		if total+n < total {
			return 0, errors.Errorf("arena size overflows at %s region", Kind(k))
		}
		total += n
	}

	return total, nil
}

// Arena owns a single contiguous buffer and its sub-regions.
type Arena struct {
	buf     []byte
	regions [regionCount]Region
	sizes   Sizes
}

// New allocates an arena for the given sizes. The allocation may not exceed limit
// bytes; a limit <= 0 selects DefaultLimit.
//
// Any failure is reported as a fault.Allocation error.
func New(sizes Sizes, limit int) (*Arena, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}

	total, err := sizes.Total()
	if err != nil {
		return nil, fault.Wrap(fault.Allocation, err, "arena")
	}

	if total > limit {
		return nil, fault.New(fault.Allocation, "arena: %d bytes exceeds limit of %d bytes", total, limit)
	}

	buf, err := allocate(total)
	if err != nil {
		return nil, fault.Wrap(fault.Allocation, err, "arena")
	}

	a := &Arena{
		buf:   buf,
		sizes: sizes,
	}

	offset := 0
	for k, n := range sizes.Lengths() {
		a.regions[k] = Region{
			kind:   Kind(k),
			offset: offset,
			data:   buf[offset : offset+n : offset+n],
		}
		offset += n
	}

	log.Printf("arena: allocated %d bytes (fb=%d cpu=%d sys=%d ppu=%d)",
		total, sizes.Framebuffer.Size(), sizes.Processor, sizes.System, sizes.Picture)
	return a, nil
}

// allocate returns a zeroed buffer of n bytes. Allocation panics raised
// by the runtime are turned into errors.
func allocate(n int) (buf []byte, err error) {
	defer func() {
		if x := recover(); x != nil {
			buf = nil
			err = errors.Errorf("failed to allocate %d bytes: %v", n, x)
		}
	}()
	return make([]byte, n), nil
}

// Len returns the size of the underlying allocation.
func (a *Arena) Len() int {
	return len(a.buf)
}

// Sizes returns the sizes the arena was allocated with.
func (a *Arena) Sizes() Sizes {
	return a.sizes
}

// Region returns the region of the given kind.
func (a *Arena) Region(k Kind) *Region {
	if k < 0 || k >= regionCount {
		panic(fmt.Sprintf("arena: unknown region %d", int(k)))
	}
	return &a.regions[k]
}

// Framebuffer returns the framebuffer region.
func (a *Arena) Framebuffer() *Region { return a.Region(Framebuffer) }

// Processor returns the processor state region.
func (a *Arena) Processor() *Region { return a.Region(Processor) }

// System returns the system/bus state region.
func (a *Arena) System() *Region { return a.Region(System) }

// Picture returns the picture unit state region.
func (a *Arena) Picture() *Region { return a.Region(Picture) }

// Free releases the underlying buffer. All regions become empty.
func (a *Arena) Free() {
	if a.buf == nil {
		return
	}
	log.Printf("arena: released %d bytes", len(a.buf))
	for i := range a.regions {
		a.regions[i].data = nil
	}
	a.buf = nil
}
