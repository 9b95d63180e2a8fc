// Package emu provides functional CHIP-8 emulation.
package emu

import (
	"context"
	"fmt"

	"github.com/go-logr/logr"

	"github.com/sarchlab/chip8sim/insts"
)

// StepResult represents the result of executing a single machine cycle.
type StepResult struct {
	// Frame is a copy of the framebuffer after the cycle.
	Frame Framebuffer

	// SoundActive is true while the sound timer, read after this cycle's
	// countdown, is non-zero.
	SoundActive bool

	// Waiting is true while a wait-for-key instruction is pending.
	Waiting bool

	// Err is set if the cycle hit a fatal condition. The session should
	// stop; timers and pc were not advanced.
	Err error
}

// Fetcher reads instruction words. The default fetcher reads Memory
// directly; a cache can be installed with WithFetcher.
type Fetcher interface {
	Fetch(addr uint16) (uint16, error)
}

// Emulator executes CHIP-8 instructions functionally.
type Emulator struct {
	regFile *RegFile
	memory  *Memory
	timers  *Timers
	fb      *Framebuffer
	keypad  *Keypad
	keyWait *KeyWait
	decoder *insts.Decoder

	// Execution units
	alu         *ALU
	lsu         *LoadStoreUnit
	branchUnit  *BranchUnit
	displayUnit *DisplayUnit

	rng     ByteSource
	fetcher Fetcher
	logger  logr.Logger

	// Execution state
	instructionCount uint64
	maxInstructions  uint64 // 0 means no limit
}

// EmulatorOption is a functional option for configuring the Emulator.
type EmulatorOption func(*Emulator)

// WithLogger sets the logger. Unrecognized instructions are logged at V(0)
// and every executed instruction at V(2).
func WithLogger(logger logr.Logger) EmulatorOption {
	return func(e *Emulator) {
		e.logger = logger
	}
}

// WithRandom sets the byte source used by RND.
func WithRandom(src ByteSource) EmulatorOption {
	return func(e *Emulator) {
		e.rng = src
	}
}

// WithFetcher routes instruction fetches through f.
func WithFetcher(f Fetcher) EmulatorOption {
	return func(e *Emulator) {
		e.fetcher = f
	}
}

// WithMaxInstructions sets the maximum number of instructions to execute.
// A value of 0 means no limit.
func WithMaxInstructions(max uint64) EmulatorOption {
	return func(e *Emulator) {
		e.maxInstructions = max
	}
}

// NewEmulator creates a new CHIP-8 emulator in its power-on state.
func NewEmulator(opts ...EmulatorOption) *Emulator {
	e := &Emulator{
		decoder: insts.NewDecoder(),
		rng:     NewRandomSource(),
		logger:  logr.Discard(),
	}
	e.resetState()

	for _, opt := range opts {
		opt(e)
	}

	return e
}

func (e *Emulator) resetState() {
	e.regFile = NewRegFile()
	e.memory = NewMemory()
	e.timers = &Timers{}
	e.fb = &Framebuffer{}
	e.keypad = &Keypad{}
	e.keyWait = &KeyWait{}
	e.instructionCount = 0

	e.alu = NewALU(e.regFile)
	e.lsu = NewLoadStoreUnit(e.regFile, e.memory)
	e.branchUnit = NewBranchUnit(e.regFile)
	e.displayUnit = NewDisplayUnit(e.regFile, e.memory, e.fb)
}

// RegFile returns the emulator's register file.
func (e *Emulator) RegFile() *RegFile { return e.regFile }

// Memory returns the emulator's memory.
func (e *Emulator) Memory() *Memory { return e.memory }

// Timers returns the delay and sound timers.
func (e *Emulator) Timers() *Timers { return e.timers }

// Framebuffer returns the live framebuffer.
func (e *Emulator) Framebuffer() *Framebuffer { return e.fb }

// Keypad returns the keypad the host input collaborator writes to.
func (e *Emulator) Keypad() *Keypad { return e.keypad }

// KeyWait returns the wait-for-key state machine.
func (e *Emulator) KeyWait() *KeyWait { return e.keyWait }

// SetFetcher routes instruction fetches through f; nil restores direct
// memory reads.
func (e *Emulator) SetFetcher(f Fetcher) { e.fetcher = f }

// InstructionCount returns the number of instructions executed.
func (e *Emulator) InstructionCount() uint64 { return e.instructionCount }

// LoadProgram copies a program image to 0x200 and points pc at it.
func (e *Emulator) LoadProgram(program []byte) error {
	if err := e.memory.LoadProgram(program); err != nil {
		return err
	}
	e.regFile.PC = ProgramStart
	return nil
}

// Reset restores the power-on state. Memory is cleared, so a program has
// to be loaded again. Any installed fetcher is dropped since it observes the
// old memory.
func (e *Emulator) Reset() {
	e.resetState()
	e.fetcher = nil
}

// Step executes one machine cycle: fetch the word at pc, then Execute it.
func (e *Emulator) Step() StepResult {
	if e.maxInstructions > 0 && e.instructionCount >= e.maxInstructions {
		return StepResult{Frame: *e.fb, Err: ErrMaxInstructions}
	}

	pc := e.regFile.PC
	var (
		word uint16
		err  error
	)
	if e.fetcher != nil {
		word, err = e.fetcher.Fetch(pc)
	} else {
		word, err = e.memory.Read16(pc)
	}
	if err != nil {
		return StepResult{Frame: *e.fb, Err: fmt.Errorf("fetch at PC=0x%03X: %w", pc, err)}
	}

	return e.Execute(word)
}

// Execute runs one cycle for the given instruction word as if it had been
// fetched at the current pc: dispatch, timer countdown, pc update, output.
func (e *Emulator) Execute(word uint16) StepResult {
	inst := e.decoder.Decode(word)
	pc := e.regFile.PC

	if e.logger.V(2).Enabled() {
		e.logger.V(2).Info("exec",
			"pc", fmt.Sprintf("0x%03X", pc),
			"word", fmt.Sprintf("%04X", word),
			"inst", inst.String())
	}

	action, err := e.execute(inst)
	if err != nil {
		return StepResult{Frame: *e.fb, Err: err}
	}

	e.timers.Tick()
	e.regFile.PC = action.Apply(e.regFile.PC)
	e.instructionCount++

	return StepResult{
		Frame:       *e.fb,
		SoundActive: e.timers.SoundActive(),
		Waiting:     e.keyWait.Waiting(),
	}
}

// Run steps until an error occurs or ctx is cancelled. There is no pacing;
// this is meant for headless runs bounded by WithMaxInstructions.
func (e *Emulator) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		result := e.Step()
		if result.Err != nil {
			return result.Err
		}
	}
}

// execute dispatches a decoded instruction to its handler.
func (e *Emulator) execute(inst *insts.Instruction) (PCAction, error) {
	r := e.regFile

	switch inst.Op {
	case insts.OpCLS:
		e.displayUnit.CLS()
	case insts.OpRET:
		return e.branchUnit.RET()
	case insts.OpSYS:
		// Machine code routines are not supported.
	case insts.OpJP:
		return e.branchUnit.JP(inst.NNN), nil
	case insts.OpCALL:
		return e.branchUnit.CALL(inst.NNN)
	case insts.OpSEImm:
		return e.branchUnit.SkipIf(r.ReadReg(inst.X) == inst.KK), nil
	case insts.OpSNEImm:
		return e.branchUnit.SkipIf(r.ReadReg(inst.X) != inst.KK), nil
	case insts.OpSEReg:
		return e.branchUnit.SkipIf(r.ReadReg(inst.X) == r.ReadReg(inst.Y)), nil
	case insts.OpLDImm:
		e.alu.LDImm(inst.X, inst.KK)
	case insts.OpADDImm:
		e.alu.ADDImm(inst.X, inst.KK)
	case insts.OpLDReg:
		e.alu.LD(inst.X, inst.Y)
	case insts.OpOR:
		e.alu.OR(inst.X, inst.Y)
	case insts.OpAND:
		e.alu.AND(inst.X, inst.Y)
	case insts.OpXOR:
		e.alu.XOR(inst.X, inst.Y)
	case insts.OpADDReg:
		e.alu.ADD(inst.X, inst.Y)
	case insts.OpSUB:
		e.alu.SUB(inst.X, inst.Y)
	case insts.OpSHR:
		e.alu.SHR(inst.X)
	case insts.OpSUBN:
		e.alu.SUBN(inst.X, inst.Y)
	case insts.OpSHL:
		e.alu.SHL(inst.X)
	case insts.OpSNEReg:
		return e.branchUnit.SkipIf(r.ReadReg(inst.X) != r.ReadReg(inst.Y)), nil
	case insts.OpLDI:
		e.lsu.LDI(inst.NNN)
	case insts.OpJPV0:
		return e.branchUnit.JPV0(inst.NNN), nil
	case insts.OpRND:
		e.alu.RND(inst.X, inst.KK, e.rng.Byte())
	case insts.OpDRW:
		if err := e.displayUnit.DRW(inst.X, inst.Y, inst.N); err != nil {
			return ActionAdvance, e.wrapErr(err)
		}
	case insts.OpSKP:
		return e.branchUnit.SkipIf(e.keypad.IsPressed(r.ReadReg(inst.X))), nil
	case insts.OpSKNP:
		return e.branchUnit.SkipIf(!e.keypad.IsPressed(r.ReadReg(inst.X))), nil
	case insts.OpLDVxDT:
		r.WriteReg(inst.X, e.timers.Delay)
	case insts.OpLDKey:
		return e.keyWait.Poll(inst.X, e.keypad, r), nil
	case insts.OpLDDTVx:
		e.timers.Delay = r.ReadReg(inst.X)
	case insts.OpLDSTVx:
		e.timers.Sound = r.ReadReg(inst.X)
	case insts.OpADDI:
		e.lsu.ADDI(inst.X)
	case insts.OpLDF:
		e.lsu.LDF(inst.X)
	case insts.OpLDB:
		if err := e.lsu.LDB(inst.X); err != nil {
			return ActionAdvance, e.wrapErr(err)
		}
	case insts.OpLDStore:
		if err := e.lsu.Store(inst.X); err != nil {
			return ActionAdvance, e.wrapErr(err)
		}
	case insts.OpLDLoad:
		if err := e.lsu.Load(inst.X); err != nil {
			return ActionAdvance, e.wrapErr(err)
		}
	default:
		e.logger.Info("unrecognized instruction",
			"pc", fmt.Sprintf("0x%03X", r.PC),
			"word", fmt.Sprintf("%04X", inst.Raw))
	}

	return ActionAdvance, nil
}

func (e *Emulator) wrapErr(err error) error {
	return fmt.Errorf("at PC=0x%03X: %w", e.regFile.PC, err)
}
