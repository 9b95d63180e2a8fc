package emu

import "errors"

// Fatal conditions reported through StepResult.Err or LoadProgram.
var (
	ErrProgramTooLarge   = errors.New("program image does not fit in memory")
	ErrStackUnderflow    = errors.New("return with empty call stack")
	ErrStackOverflow     = errors.New("call stack full")
	ErrAddressOutOfRange = errors.New("address out of range")
	ErrMaxInstructions   = errors.New("max instructions reached")
)
