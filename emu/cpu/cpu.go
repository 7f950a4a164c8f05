// Package cpu is the CHIP-8 interpreter: memory, registers, stack, timers,
// keypad and framebuffer, and the fetch-decode-execute cycle that runs
// against them.
//
// The package knows nothing about windows, sound devices or wall-clock time.
// A host drives the machine by calling Tick once per 60Hz frame with the
// current keypad state, and reads the framebuffer and sound timer back.
package cpu

import (
	"errors"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/beanboi7/chyp8/logger"
)

// EMU is a complete CHIP-8 machine.
type EMU struct {
	memory [memorySize]uint8

	V [16]uint8 // V0-VF, VF doubles as the flag register
	I uint16    // address register

	pc uint16

	display    Framebuffer
	delayTimer uint8 // counts down at 60Hz
	soundTimer uint8 // same as above, buzzer sounds while non-zero

	stack [stackSize]uint16
	sp    uint16

	keyState Keys
	prevKeys Keys

	// set by CLS and DRW, cleared by Redraw()
	updateScreen bool

	state      State
	pausedFrom State
	waitReg    uint8
	waitArmed  bool

	inst Instruction

	rng         *rand.Rand
	skipUnknown bool
	trace       bool
}

// Option configures an EMU created with NewEMU.
type Option func(*EMU)

// WithSeed seeds the random number generator used by CXNN.
func WithSeed(seed int64) Option {
	return func(emu *EMU) {
		emu.rng = rand.New(rand.NewSource(seed))
	}
}

// SkipUnknownOpcodes changes the policy for opcodes that aren't part of the
// instruction set. The default is to fault and stop. When skip is true the
// opcode is logged and execution continues with the next instruction.
func SkipUnknownOpcodes(skip bool) Option {
	return func(emu *EMU) {
		emu.skipUnknown = skip
	}
}

// WithTrace logs every executed instruction.
func WithTrace(trace bool) Option {
	return func(emu *EMU) {
		emu.trace = trace
	}
}

// NewEMU creates a machine with the font and program in memory, registers
// zeroed and the program counter at the program start address.
func NewEMU(rom []byte, opts ...Option) (*EMU, error) {
	emu := &EMU{
		pc:    romStart,
		state: Running,
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(emu)
	}

	emu.loadFont()
	if err := emu.Load(rom); err != nil {
		return nil, err
	}

	return emu, nil
}

// ReadROM reads a program from disk. The size is checked here so that an
// oversized ROM is rejected before any machine is created.
func ReadROM(filename string) ([]byte, error) {
	rom, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("reading ROM: %w", err)
	}
	if len(rom) > MaxROMSize {
		return nil, fmt.Errorf("%w: %s is %d bytes, can't cross %d bytes", ErrROMTooLarge, filename, len(rom), MaxROMSize)
	}
	return rom, nil
}

// Load copies rom into memory at the program start address. Nothing is
// copied if the program is too big.
func (emu *EMU) Load(rom []byte) error {
	if len(rom) > MaxROMSize {
		return fmt.Errorf("%w: %d bytes, can't cross %d bytes", ErrROMTooLarge, len(rom), MaxROMSize)
	}
	copy(emu.memory[romStart:], rom)
	return nil
}

// Instruction returns the most recently decoded instruction.
func (emu *EMU) Instruction() Instruction {
	return emu.inst
}

// Redraw returns true if the framebuffer changed since the last call.
func (emu *EMU) Redraw() bool {
	r := emu.updateScreen
	emu.updateScreen = false
	return r
}

// Step executes one instruction. Nothing happens if the machine is paused or
// stopped. If the machine is waiting for a key the step only checks for the
// key press.
//
// Any error returned is a *Fault and the machine will have been stopped.
func (emu *EMU) Step() error {
	switch emu.state {
	case Paused, Stopped:
		return nil
	case AwaitingKey:
		emu.checkKeyWait()
		return nil
	}

	pc := emu.pc
	hi, err := emu.read(int(pc))
	if err != nil {
		return emu.fault(err, pc, 0)
	}
	lo, err := emu.read(int(pc) + 1)
	if err != nil {
		return emu.fault(err, pc, 0)
	}
	opcode := uint16(hi)<<8 | uint16(lo)

	// advance before executing so jumps, calls and skips can overwrite or
	// add to the PC freely
	emu.pc += 2

	emu.inst = Decode(opcode)
	if emu.trace {
		logger.Logf("cpu", "%#04x %04x %s", pc, opcode, emu.inst)
	}

	err = emu.execute(emu.inst)
	if err != nil {
		if errors.Is(err, ErrUnknownOpcode) && emu.skipUnknown {
			logger.Logf("cpu", "skipping unknown opcode %04x at %#04x", opcode, pc)
			return nil
		}
		return emu.fault(err, pc, opcode)
	}

	return nil
}

// Tick runs one frame: the keypad snapshot is stored, up to steps
// instructions are executed and the timers decay once. A paused machine only
// takes the keypad snapshot. A stopped machine is left alone.
func (emu *EMU) Tick(keys Keys, steps int) error {
	if emu.state == Stopped {
		return nil
	}
	emu.SetKeys(keys)
	if emu.state == Paused {
		return nil
	}

	for i := 0; i < steps; i++ {
		if err := emu.Step(); err != nil {
			return err
		}
	}

	emu.decayTimers()
	return nil
}

func (emu *EMU) decayTimers() {
	if emu.delayTimer > 0 {
		emu.delayTimer--
	}
	if emu.soundTimer > 0 {
		emu.soundTimer--
	}
}

func (emu *EMU) fault(err error, pc uint16, opcode uint16) error {
	emu.state = Stopped

	var f *Fault
	if errors.As(err, &f) {
		f.PC = pc
		f.Opcode = opcode
		return f
	}
	return &Fault{Err: err, PC: pc, Opcode: opcode}
}

// Snapshot is a copy of the machine registers, for display by debugging
// tools.
type Snapshot struct {
	PC          uint16
	I           uint16
	V           [16]uint8
	Stack       []uint16
	DelayTimer  uint8
	SoundTimer  uint8
	State       State
	Instruction Instruction
	Keys        Keys
}

// Snapshot returns a copy of the machine registers.
func (emu *EMU) Snapshot() Snapshot {
	return Snapshot{
		PC:          emu.pc,
		I:           emu.I,
		V:           emu.V,
		Stack:       emu.Stack(),
		DelayTimer:  emu.delayTimer,
		SoundTimer:  emu.soundTimer,
		State:       emu.state,
		Instruction: emu.inst,
		Keys:        emu.keyState,
	}
}
