package term

import (
	"fmt"
	"strings"

	"github.com/sarchlab/chip8sim/config"
	"github.com/sarchlab/chip8sim/emu"
)

// Half-block glyphs indexed by top<<1 | bottom.
var halfBlocks = [4]string{" ", "▄", "▀", "█"}

// Render draws fb as DisplayHeight/2 lines of DisplayWidth cells, two
// pixel rows per cell, in 24-bit color.
func Render(fb *emu.Framebuffer, fg, bg config.RGB) string {
	var sb strings.Builder

	colors := fmt.Sprintf("\x1b[38;2;%d;%d;%dm\x1b[48;2;%d;%d;%dm",
		fg.R, fg.G, fg.B, bg.R, bg.G, bg.B)

	for y := 0; y < emu.DisplayHeight; y += 2 {
		sb.WriteString(colors)
		for x := 0; x < emu.DisplayWidth; x++ {
			top := fb[y][x] & 1
			bottom := fb[y+1][x] & 1
			sb.WriteString(halfBlocks[top<<1|bottom])
		}
		sb.WriteString(resetColors + "\r\n")
	}

	return sb.String()
}
