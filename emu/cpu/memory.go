package cpu

const (
	memorySize = 4096
	romStart   = 0x200

	// MaxROMSize is the largest program that fits between the program start
	// address and the end of memory.
	MaxROMSize = memorySize - romStart

	stackSize = 12
)

// Screen dimensions in CHIP-8 pixels.
const (
	Width  = 64
	Height = 32
)

// Framebuffer is the monochrome display, row-major. A true cell is lit.
type Framebuffer [Width * Height]bool

// At returns the state of the pixel at x, y. Coordinates wrap.
func (fb *Framebuffer) At(x, y int) bool {
	return fb[(y%Height)*Width+(x%Width)]
}

// Lit returns the number of lit pixels.
func (fb *Framebuffer) Lit() int {
	n := 0
	for _, p := range fb {
		if p {
			n++
		}
	}
	return n
}

// Keys is the pressed state of the 16 keys of the hexadecimal keypad.
//
//	+---+---+---+---+
//	| 1 | 2 | 3 | C |
//	+---+---+---+---+
//	| 4 | 5 | 6 | D |
//	+---+---+---+---+
//	| 7 | 8 | 9 | E |
//	+---+---+---+---+
//	| A | 0 | B | F |
//	+---+---+---+---+
type Keys [16]bool

// Read returns the byte at addr.
func (emu *EMU) Read(addr uint16) (uint8, error) {
	return emu.read(int(addr))
}

// Write stores v at addr. The font area can not be written to.
func (emu *EMU) Write(addr uint16, v uint8) error {
	return emu.write(int(addr), v)
}

// addresses are ints so that I+offset arithmetic can't wrap around into low
// memory before the bounds check sees it
func (emu *EMU) read(addr int) (uint8, error) {
	if addr < 0 || addr >= memorySize {
		return 0, addressFault(ErrAddressOutOfRange, addr)
	}
	return emu.memory[addr], nil
}

func (emu *EMU) write(addr int, v uint8) error {
	if err := emu.checkWrite(addr); err != nil {
		return err
	}
	emu.memory[addr] = v
	return nil
}

func (emu *EMU) checkWrite(addr int) error {
	if addr < 0 || addr >= memorySize {
		return addressFault(ErrAddressOutOfRange, addr)
	}
	if addr < fontStart+fontSize {
		return addressFault(ErrFontWrite, addr)
	}
	return nil
}

func (emu *EMU) push(addr uint16) error {
	if emu.sp >= stackSize {
		return ErrStackOverflow
	}
	emu.stack[emu.sp] = addr
	emu.sp++
	return nil
}

func (emu *EMU) pop() (uint16, error) {
	if emu.sp == 0 {
		return 0, ErrStackUnderflow
	}
	emu.sp--
	return emu.stack[emu.sp], nil
}

// PC returns the program counter.
func (emu *EMU) PC() uint16 {
	return emu.pc
}

// Stack returns a copy of the return addresses currently on the stack, oldest
// first.
func (emu *EMU) Stack() []uint16 {
	s := make([]uint16, emu.sp)
	copy(s, emu.stack[:emu.sp])
	return s
}

// DelayTimer returns the current value of the delay timer.
func (emu *EMU) DelayTimer() uint8 {
	return emu.delayTimer
}

// SoundTimer returns the current value of the sound timer.
func (emu *EMU) SoundTimer() uint8 {
	return emu.soundTimer
}

// SoundActive is true while the buzzer should be sounding.
func (emu *EMU) SoundActive() bool {
	return emu.soundTimer > 0
}

// Framebuffer returns a copy of the display.
func (emu *EMU) Framebuffer() Framebuffer {
	return emu.display
}

// Pixel returns whether the pixel at x, y is lit.
func (emu *EMU) Pixel(x, y int) bool {
	return emu.display.At(x, y)
}

// SetKeys stores the keypad snapshot for the current tick. The previous
// snapshot is kept for key press edge detection.
func (emu *EMU) SetKeys(keys Keys) {
	emu.prevKeys = emu.keyState
	emu.keyState = keys
	emu.waitArmed = true
}

// KeyPressed returns whether key k (low nibble) is held in the current
// snapshot.
func (emu *EMU) KeyPressed(k uint8) bool {
	return emu.keyState[k&0x0F]
}
