// Package main provides the entry point for chip8sim.
// chip8sim is a CHIP-8 interpreter with SDL and terminal frontends.
//
// For the full CLI, use: go run ./cmd/chip8sim
package main

import (
	"fmt"
	"os"
)

func main() {
	fmt.Println("chip8sim - CHIP-8 Interpreter")
	fmt.Println("")
	fmt.Println("Usage: chip8sim [options] <program.ch8>")
	fmt.Println("")
	fmt.Println("Options:")
	fmt.Println("  -config       Path to frontend configuration JSON file")
	fmt.Println("  -frontend     sdl (default), term or headless")
	fmt.Println("  -cycles       Stop after this many cycles")
	fmt.Println("  -fetch-cache  Fetch instructions through a set-associative cache")
	fmt.Println("  -trace        Log every executed instruction")
	fmt.Println("  -v            Verbose output")
	fmt.Println("")
	fmt.Println("Keys: QWERTY -> A..F, U I -> 0 1, A..K -> 2..9; Escape quits.")
	fmt.Println("Run 'go run ./cmd/chip8sim' for the full CLI.")

	if len(os.Args) > 1 {
		fmt.Println("\nNote: You provided arguments. Use 'go run ./cmd/chip8sim' instead.")
	}
}
