package emu

// Display geometry.
const (
	DisplayWidth  = 64
	DisplayHeight = 32
)

// Framebuffer is the monochrome display, indexed [row][column]. Every cell
// is 0 or 1. It is a value type; assigning it copies the whole grid.
type Framebuffer [DisplayHeight][DisplayWidth]uint8

// Clear turns every pixel off.
func (f *Framebuffer) Clear() {
	*f = Framebuffer{}
}

// Pixel returns the pixel at column x, row y, wrapping both coordinates.
func (f *Framebuffer) Pixel(x, y int) uint8 {
	return f[wrap(y, DisplayHeight)][wrap(x, DisplayWidth)]
}

// Toggle XORs bit into the pixel at column x, row y (wrapping) and returns
// 1 when a lit pixel was turned off.
func (f *Framebuffer) Toggle(x, y int, bit uint8) uint8 {
	row, col := wrap(y, DisplayHeight), wrap(x, DisplayWidth)
	collision := bit & f[row][col]
	f[row][col] ^= bit
	return collision
}

// LitCount returns the number of pixels turned on.
func (f *Framebuffer) LitCount() int {
	n := 0
	for _, row := range f {
		for _, px := range row {
			n += int(px)
		}
	}
	return n
}

// Snapshot returns a copy of the framebuffer.
func (f *Framebuffer) Snapshot() Framebuffer {
	return *f
}

// Equal reports whether two framebuffers show the same pixels.
func (f *Framebuffer) Equal(other *Framebuffer) bool {
	return *f == *other
}

func wrap(v, size int) int {
	v %= size
	if v < 0 {
		v += size
	}
	return v
}
