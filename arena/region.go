package arena

import "fmt"

// Region is a bounds-checked view into the arena.
//
// Multi-byte accessors use little-endian byte order.
type Region struct {
	kind   Kind
	offset int
	data   []byte
}

// Kind returns the region kind.
func (r *Region) Kind() Kind {
	return r.kind
}

// Offset returns the region's offset into the arena.
func (r *Region) Offset() int {
	return r.offset
}

// Len returns the region size in bytes.
func (r *Region) Len() int {
	return len(r.data)
}

// Bytes returns the region's backing memory.
func (r *Region) Bytes() []byte {
	return r.data
}

// Slice returns a view of n bytes starting at addr.
func (r *Region) Slice(addr, n int) []byte {
	r.check(addr, n)
	return r.data[addr : addr+n : addr+n]
}

// U8 returns the 8-bit value at the given address.
func (r *Region) U8(addr int) uint8 {
	r.check(addr, 1)
	return r.data[addr]
}

// SetU8 sets the 8-bit value at the given address.
func (r *Region) SetU8(addr int, v uint8) {
	r.check(addr, 1)
	r.data[addr] = v
}

// U16 returns the 16-bit value at the given address.
func (r *Region) U16(addr int) uint16 {
	r.check(addr, 2)
	return uint16(r.data[addr]) | uint16(r.data[addr+1])<<8
}

// SetU16 sets the 16-bit value at the given address.
func (r *Region) SetU16(addr int, v uint16) {
	r.check(addr, 2)
	r.data[addr] = byte(v)
	r.data[addr+1] = byte(v >> 8)
}

// U32 returns the 32-bit value at the given address.
func (r *Region) U32(addr int) uint32 {
	r.check(addr, 4)
	return uint32(r.data[addr]) | uint32(r.data[addr+1])<<8 |
		uint32(r.data[addr+2])<<16 | uint32(r.data[addr+3])<<24
}

// SetU32 sets the 32-bit value at the given address.
func (r *Region) SetU32(addr int, v uint32) {
	r.check(addr, 4)
	r.data[addr] = byte(v)
	r.data[addr+1] = byte(v >> 8)
	r.data[addr+2] = byte(v >> 16)
	r.data[addr+3] = byte(v >> 24)
}

// Zero clears the region.
func (r *Region) Zero() {
	for i := range r.data {
		r.data[i] = 0
	}
}

// check panics if [addr, addr+n) is not inside the region.
func (r *Region) check(addr, n int) {
	if addr < 0 || n < 0 || addr+n > len(r.data) {
		panic(fmt.Sprintf("arena: %s access [%d:%d] out of range [0:%d]", r.kind, addr, addr+n, len(r.data)))
	}
}
