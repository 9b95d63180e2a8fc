// Package insts provides CHIP-8 instruction definitions and decoding.
//
// This package implements decoding of 16-bit CHIP-8 instruction words into
// structured instruction representations. Every word decodes to its four
// nibbles and the common operand views:
//   - X, Y: the two middle nibbles, used as register indices
//   - N: the low nibble, used as a sprite height
//   - KK: the low byte, used as an immediate
//   - NNN: the low 12 bits, used as an address
//
// The opcode is classified most-specific-first; words that match no opcode
// decode with OpUnknown.
//
// Usage:
//
//	decoder := insts.NewDecoder()
//	inst := decoder.Decode(0x8AE4) // ADD VA, VE
//	fmt.Printf("Op: %v, X: %d, Y: %d\n", inst.Op, inst.X, inst.Y)
package insts
