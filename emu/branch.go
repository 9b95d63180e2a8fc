// Package emu provides functional CHIP-8 emulation.
package emu

import "fmt"

// PCActionKind tells the step engine how to move the program counter once
// an instruction has executed.
type PCActionKind uint8

// Program counter actions.
const (
	PCAdvance PCActionKind = iota // pc += 2
	PCSkip                        // pc += 4
	PCJump                        // pc = Target
	PCWait                        // pc unchanged
)

// PCAction is the program counter outcome of one instruction.
type PCAction struct {
	Kind   PCActionKind
	Target uint16 // Only meaningful for PCJump
}

// Shared actions.
var (
	ActionAdvance = PCAction{Kind: PCAdvance}
	ActionSkip    = PCAction{Kind: PCSkip}
	ActionWait    = PCAction{Kind: PCWait}
)

// JumpTo returns an absolute jump action.
func JumpTo(addr uint16) PCAction {
	return PCAction{Kind: PCJump, Target: addr}
}

// Apply moves pc according to the action.
func (a PCAction) Apply(pc uint16) uint16 {
	switch a.Kind {
	case PCAdvance:
		return pc + 2
	case PCSkip:
		return pc + 4
	case PCJump:
		return a.Target
	default:
		return pc
	}
}

func (a PCAction) String() string {
	switch a.Kind {
	case PCAdvance:
		return "Advance"
	case PCSkip:
		return "Skip"
	case PCJump:
		return fmt.Sprintf("Jump(0x%03X)", a.Target)
	case PCWait:
		return "Wait"
	default:
		return "PCAction(?)"
	}
}

// BranchUnit implements CHIP-8 control flow: jumps, subroutine calls and
// conditional skips.
type BranchUnit struct {
	regFile *RegFile
}

// NewBranchUnit creates a new BranchUnit connected to the given register file.
func NewBranchUnit(regFile *RegFile) *BranchUnit {
	return &BranchUnit{regFile: regFile}
}

// JP jumps to nnn.
func (b *BranchUnit) JP(nnn uint16) PCAction {
	return JumpTo(nnn)
}

// JPV0 jumps to nnn + V0.
func (b *BranchUnit) JPV0(nnn uint16) PCAction {
	return JumpTo(nnn + uint16(b.regFile.V[0]))
}

// CALL pushes the address of the call instruction itself and jumps to nnn.
// The matching RET lands on the call and then advances past it.
func (b *BranchUnit) CALL(nnn uint16) (PCAction, error) {
	if int(b.regFile.SP)+1 >= StackDepth {
		return ActionAdvance, fmt.Errorf("%w: CALL $%03X at PC=0x%03X",
			ErrStackOverflow, nnn, b.regFile.PC)
	}
	b.regFile.SP++
	b.regFile.Stack[b.regFile.SP] = b.regFile.PC
	return JumpTo(nnn), nil
}

// RET pops the return address into pc and advances past it.
func (b *BranchUnit) RET() (PCAction, error) {
	if b.regFile.SP == 0 {
		return ActionAdvance, fmt.Errorf("%w: RET at PC=0x%03X",
			ErrStackUnderflow, b.regFile.PC)
	}
	b.regFile.PC = b.regFile.Stack[b.regFile.SP]
	b.regFile.SP--
	return ActionAdvance, nil
}

// SkipIf returns Skip when cond holds and Advance otherwise.
func (b *BranchUnit) SkipIf(cond bool) PCAction {
	if cond {
		return ActionSkip
	}
	return ActionAdvance
}
