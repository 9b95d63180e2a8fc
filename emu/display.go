package emu

import "fmt"

// DisplayUnit executes the clear and draw instructions against the
// framebuffer.
type DisplayUnit struct {
	regFile *RegFile
	memory  *Memory
	fb      *Framebuffer
}

// NewDisplayUnit creates a DisplayUnit.
func NewDisplayUnit(regFile *RegFile, memory *Memory, fb *Framebuffer) *DisplayUnit {
	return &DisplayUnit{regFile: regFile, memory: memory, fb: fb}
}

// CLS turns every pixel off.
func (d *DisplayUnit) CLS() {
	d.fb.Clear()
}

// DRW XORs the n-byte sprite at I onto the framebuffer at (Vx, Vy),
// wrapping at the edges. VF is cleared before the coordinates are read, so
// DFyn and DxFn draw at 0 on that axis, and is then set if any lit pixel is
// turned off.
func (d *DisplayUnit) DRW(x, y, n uint8) error {
	sprite, err := d.memory.ReadBlock(d.regFile.I, int(n))
	if err != nil {
		return fmt.Errorf("DRW V%X, V%X, $%X: %w", x, y, n, err)
	}

	d.regFile.V[FlagRegister] = 0
	originX := int(d.regFile.ReadReg(x))
	originY := int(d.regFile.ReadReg(y))

	for row, bits := range sprite {
		for col := 0; col < 8; col++ {
			bit := (bits >> (7 - col)) & 1
			d.regFile.V[FlagRegister] |= d.fb.Toggle(originX+col, originY+row, bit)
		}
	}

	return nil
}
