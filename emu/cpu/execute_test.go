package cpu

import (
	"errors"
	"testing"

	"github.com/beanboi7/chyp8/test"
)

func TestArithmetic(t *testing.T) {
	tests := []struct {
		name   string
		opcode uint16
		vx, vy uint8
		want   uint8
		flag   uint8
	}{
		{"ld", 0x8120, 0x11, 0x22, 0x22, 0x00},
		{"or", 0x8121, 0xF0, 0x0F, 0xFF, 0x00},
		{"and", 0x8122, 0xF3, 0x3F, 0x33, 0x00},
		{"xor", 0x8123, 0xFF, 0x0F, 0xF0, 0x00},
		{"add overflow", 0x8124, 0xFF, 0x01, 0x00, 0x01},
		{"add", 0x8124, 0x10, 0x20, 0x30, 0x00},
		{"sub", 0x8125, 0x05, 0x02, 0x03, 0x01},
		{"sub equal", 0x8125, 0x05, 0x05, 0x00, 0x01},
		{"sub borrow", 0x8125, 0x01, 0x02, 0xFF, 0x00},
		{"shr odd", 0x8126, 0x03, 0x00, 0x01, 0x01},
		{"shr even", 0x8126, 0x04, 0x00, 0x02, 0x00},
		{"subn", 0x8127, 0x02, 0x05, 0x03, 0x01},
		{"subn borrow", 0x8127, 0x05, 0x02, 0xFD, 0x00},
		{"shl msb", 0x812E, 0x81, 0x00, 0x02, 0x01},
		{"shl", 0x812E, 0x41, 0x00, 0x82, 0x00},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			emu := newTestEMU(t, tt.opcode)
			emu.V[1] = tt.vx
			emu.V[2] = tt.vy
			emu.V[0xF] = 0xAA
			steps(t, emu, 1)
			test.ExpectEquality(t, emu.V[1], tt.want)
			test.ExpectEquality(t, emu.V[2], tt.vy)

			// the logical operations leave VF alone
			if tt.opcode&0x000F <= 3 {
				test.ExpectEquality(t, emu.V[0xF], uint8(0xAA))
			} else {
				test.ExpectEquality(t, emu.V[0xF], tt.flag)
			}
		})
	}
}

func TestFlagRegisterAsOperand(t *testing.T) {
	// the flag overwrites the result when VF is the destination
	emu := newTestEMU(t, 0x8F14)
	emu.V[0xF] = 0xFF
	emu.V[1] = 0x02
	steps(t, emu, 1)
	test.ExpectEquality(t, emu.V[0xF], uint8(1))
}

func TestAddByte(t *testing.T) {
	emu := newTestEMU(t, 0x71FF)
	emu.V[1] = 0x02
	emu.V[0xF] = 0x07
	steps(t, emu, 1)
	test.ExpectEquality(t, emu.V[1], uint8(0x01))
	test.ExpectEquality(t, emu.V[0xF], uint8(0x07))
}

func TestSkips(t *testing.T) {
	tests := []struct {
		name   string
		opcode uint16
		vx, vy uint8
		skip   bool
	}{
		{"se byte", 0x3142, 0x42, 0, true},
		{"se byte no", 0x3142, 0x41, 0, false},
		{"sne byte", 0x4142, 0x41, 0, true},
		{"sne byte no", 0x4142, 0x42, 0, false},
		{"se reg", 0x5120, 7, 7, true},
		{"se reg no", 0x5120, 7, 8, false},
		{"sne reg", 0x9120, 7, 8, true},
		{"sne reg no", 0x9120, 7, 7, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			emu := newTestEMU(t, tt.opcode)
			emu.V[1] = tt.vx
			emu.V[2] = tt.vy
			steps(t, emu, 1)
			if tt.skip {
				test.ExpectEquality(t, emu.PC(), uint16(0x204))
			} else {
				test.ExpectEquality(t, emu.PC(), uint16(0x202))
			}
		})
	}
}

func TestKeySkips(t *testing.T) {
	var keys Keys
	keys[0xA] = true

	emu := newTestEMU(t, 0xE19E, 0x0000, 0xE19E)
	emu.V[1] = 0xA
	test.DemandSuccess(t, emu.Tick(keys, 1))
	test.ExpectEquality(t, emu.PC(), uint16(0x204))
	test.DemandSuccess(t, emu.Tick(Keys{}, 1))
	test.ExpectEquality(t, emu.PC(), uint16(0x206))

	emu = newTestEMU(t, 0xE1A1, 0x0000, 0xE1A1)
	emu.V[1] = 0xA
	test.DemandSuccess(t, emu.Tick(Keys{}, 1))
	test.ExpectEquality(t, emu.PC(), uint16(0x204))
	test.DemandSuccess(t, emu.Tick(keys, 1))
	test.ExpectEquality(t, emu.PC(), uint16(0x206))
}

func TestJumps(t *testing.T) {
	emu := newTestEMU(t, 0x1345)
	steps(t, emu, 1)
	test.ExpectEquality(t, emu.PC(), uint16(0x345))

	emu = newTestEMU(t, 0xB300)
	emu.V[0] = 0x10
	steps(t, emu, 1)
	test.ExpectEquality(t, emu.PC(), uint16(0x310))
}

func TestIndexRegister(t *testing.T) {
	emu := newTestEMU(t, 0xA123, 0xF21E, 0xF21E)
	emu.V[2] = 0xFF
	emu.V[0xF] = 0x07
	steps(t, emu, 2)
	test.ExpectEquality(t, emu.I, uint16(0x222))
	test.ExpectEquality(t, emu.V[0xF], uint8(0x07))

	// 16-bit wrap
	emu.I = 0xFFFF
	emu.V[2] = 0x02
	steps(t, emu, 1)
	test.ExpectEquality(t, emu.I, uint16(0x0001))
}

func TestRandom(t *testing.T) {
	a, err := NewEMU(program(0xC10F, 0xC20F, 0xC30F), WithSeed(99))
	test.DemandSuccess(t, err)
	b, err := NewEMU(program(0xC10F, 0xC20F, 0xC30F), WithSeed(99))
	test.DemandSuccess(t, err)

	steps(t, a, 3)
	steps(t, b, 3)
	test.ExpectEquality(t, a.V, b.V)
	for x := 1; x <= 3; x++ {
		test.ExpectEquality(t, a.V[x]&0xF0, uint8(0))
	}

	emu := newTestEMU(t, 0xC100)
	emu.V[1] = 0xFF
	steps(t, emu, 1)
	test.ExpectEquality(t, emu.V[1], uint8(0))
}

func TestFontAddress(t *testing.T) {
	emu := newTestEMU(t, 0xF129, 0xF129)
	emu.V[1] = 0x0A
	steps(t, emu, 1)
	test.ExpectEquality(t, emu.I, uint16(0x32))

	// only the low nibble selects the glyph
	emu.V[1] = 0x1F
	steps(t, emu, 1)
	test.ExpectEquality(t, emu.I, uint16(0x4B))
}

func TestBCD(t *testing.T) {
	emu := newTestEMU(t, 0xA300, 0xF133)
	emu.V[1] = 254
	steps(t, emu, 2)
	test.ExpectEquality(t, emu.memory[0x300], uint8(2))
	test.ExpectEquality(t, emu.memory[0x301], uint8(5))
	test.ExpectEquality(t, emu.memory[0x302], uint8(4))
	test.ExpectEquality(t, emu.I, uint16(0x300))

	// nothing is written if the last digit would land out of range
	emu = newTestEMU(t, 0xAFFE, 0xF133)
	emu.V[1] = 123
	steps(t, emu, 1)
	err := emu.Step()
	test.ExpectEquality(t, errors.Is(err, ErrAddressOutOfRange), true)
	test.ExpectEquality(t, emu.memory[0xFFE], uint8(0))
}

func TestRegisterDumpLoad(t *testing.T) {
	emu := newTestEMU(t, 0xA300, 0xF355, 0xA400, 0xF265)
	for i := range emu.V {
		emu.V[i] = uint8(i + 1)
	}
	emu.memory[0x400] = 0xAA
	emu.memory[0x401] = 0xBB
	emu.memory[0x402] = 0xCC
	emu.memory[0x403] = 0xDD

	steps(t, emu, 2)
	test.ExpectEquality(t, emu.memory[0x300], uint8(1))
	test.ExpectEquality(t, emu.memory[0x303], uint8(4))
	test.ExpectEquality(t, emu.memory[0x304], uint8(0))
	test.ExpectEquality(t, emu.I, uint16(0x300))

	steps(t, emu, 2)
	test.ExpectEquality(t, emu.V[0], uint8(0xAA))
	test.ExpectEquality(t, emu.V[2], uint8(0xCC))
	test.ExpectEquality(t, emu.V[3], uint8(4))
	test.ExpectEquality(t, emu.I, uint16(0x400))
}

func TestFontIsReadOnly(t *testing.T) {
	emu := newTestEMU(t, 0xA010, 0xF055)
	steps(t, emu, 1)
	err := emu.Step()
	test.ExpectEquality(t, errors.Is(err, ErrFontWrite), true)
	test.ExpectEquality(t, emu.memory[0x10], FontSet[0x10])

	var f *Fault
	test.DemandEquality(t, errors.As(err, &f), true)
	test.ExpectEquality(t, f.Address, 0x10)
	test.ExpectEquality(t, f.PC, uint16(0x202))
}

func TestLoadOutOfRange(t *testing.T) {
	emu := newTestEMU(t, 0xAFFF, 0xF165)
	steps(t, emu, 1)
	err := emu.Step()
	test.ExpectEquality(t, errors.Is(err, ErrAddressOutOfRange), true)
	test.ExpectEquality(t, emu.State(), Stopped)
}

func TestDraw(t *testing.T) {
	// LD I, glyph 0; DRW V0, V1, 5; DRW V0, V1, 5
	emu := newTestEMU(t, 0xA000, 0xD015, 0xD015)
	emu.V[0] = 10
	emu.V[1] = 4

	steps(t, emu, 2)
	test.ExpectEquality(t, emu.V[0xF], uint8(0))
	test.ExpectEquality(t, emu.Redraw(), true)
	test.ExpectEquality(t, emu.Redraw(), false)

	// glyph 0: 0xF0 0x90 0x90 0x90 0xF0
	test.ExpectEquality(t, emu.Pixel(10, 4), true)
	test.ExpectEquality(t, emu.Pixel(13, 4), true)
	test.ExpectEquality(t, emu.Pixel(14, 4), false)
	test.ExpectEquality(t, emu.Pixel(11, 5), false)
	test.ExpectEquality(t, emu.Pixel(13, 6), true)
	test.ExpectEquality(t, emu.Pixel(10, 9), false)
	fb := emu.Framebuffer()
	test.ExpectEquality(t, fb.Lit(), 14)

	// drawing again erases everything and reports the collision
	steps(t, emu, 1)
	test.ExpectEquality(t, emu.V[0xF], uint8(1))
	fb = emu.Framebuffer()
	test.ExpectEquality(t, fb.Lit(), 0)
}

func TestDrawWraps(t *testing.T) {
	emu := newTestEMU(t, 0xA300, 0xD012)
	emu.memory[0x300] = 0xFF
	emu.memory[0x301] = 0x81
	// start position is taken modulo the screen size
	emu.V[0] = 60 + Width
	emu.V[1] = 31 + Height

	steps(t, emu, 2)
	for x := 60; x < 64; x++ {
		test.ExpectEquality(t, emu.Pixel(x, 31), true, x)
	}
	for x := 0; x < 4; x++ {
		test.ExpectEquality(t, emu.Pixel(x, 31), true, x)
	}
	test.ExpectEquality(t, emu.Pixel(60, 0), true)
	test.ExpectEquality(t, emu.Pixel(61, 0), false)
	test.ExpectEquality(t, emu.Pixel(3, 0), true)
	fb := emu.Framebuffer()
	test.ExpectEquality(t, fb.Lit(), 10)
}

func TestDrawPartialCollision(t *testing.T) {
	emu := newTestEMU(t, 0xA300, 0xD011, 0xA301, 0xD011)
	emu.memory[0x300] = 0xC0
	emu.memory[0x301] = 0x60

	steps(t, emu, 4)
	test.ExpectEquality(t, emu.V[0xF], uint8(1))
	test.ExpectEquality(t, emu.Pixel(0, 0), true)
	test.ExpectEquality(t, emu.Pixel(1, 0), false)
	test.ExpectEquality(t, emu.Pixel(2, 0), true)
}

func TestClear(t *testing.T) {
	emu := newTestEMU(t, 0xA000, 0xD015, 0x00E0, 0x00E0)
	steps(t, emu, 2)
	emu.Redraw()

	steps(t, emu, 1)
	fb := emu.Framebuffer()
	test.ExpectEquality(t, fb.Lit(), 0)
	test.ExpectEquality(t, emu.Redraw(), true)

	steps(t, emu, 1)
	fb = emu.Framebuffer()
	test.ExpectEquality(t, fb.Lit(), 0)
}

func TestWaitForKey(t *testing.T) {
	// LD V3, K; LD V4, 1
	emu := newTestEMU(t, 0xF30A, 0x6401)

	var five Keys
	five[5] = true

	// key already held when the wait starts doesn't count
	test.DemandSuccess(t, emu.Tick(five, 1))
	test.ExpectEquality(t, emu.State(), AwaitingKey)
	test.ExpectEquality(t, emu.PC(), uint16(0x202))

	for i := 0; i < 3; i++ {
		test.DemandSuccess(t, emu.Tick(five, 1))
		test.ExpectEquality(t, emu.State(), AwaitingKey)
		test.ExpectEquality(t, emu.PC(), uint16(0x202))
	}

	test.DemandSuccess(t, emu.Tick(Keys{}, 1))
	test.ExpectEquality(t, emu.State(), AwaitingKey)

	var nine Keys
	nine[9] = true
	test.DemandSuccess(t, emu.Tick(nine, 1))
	test.ExpectEquality(t, emu.State(), Running)
	test.ExpectEquality(t, emu.V[3], uint8(9))
	test.ExpectEquality(t, emu.PC(), uint16(0x202))
	test.ExpectEquality(t, emu.V[4], uint8(0))

	test.DemandSuccess(t, emu.Tick(nine, 1))
	test.ExpectEquality(t, emu.V[4], uint8(1))
}

func TestWaitForKeyTimersDecay(t *testing.T) {
	emu := newTestEMU(t, 0xF00A)
	emu.delayTimer = 3
	test.DemandSuccess(t, emu.Tick(Keys{}, 1))
	test.DemandSuccess(t, emu.Tick(Keys{}, 1))
	test.ExpectEquality(t, emu.State(), AwaitingKey)
	test.ExpectEquality(t, emu.DelayTimer(), uint8(1))
}

func TestWaitForKeyPause(t *testing.T) {
	emu := newTestEMU(t, 0xF20A)
	test.DemandSuccess(t, emu.Tick(Keys{}, 1))
	test.DemandEquality(t, emu.State(), AwaitingKey)

	test.ExpectEquality(t, emu.TogglePause(), Paused)
	var one Keys
	one[1] = true
	test.DemandSuccess(t, emu.Tick(one, 1))
	test.ExpectEquality(t, emu.V[2], uint8(0))

	// resume into the wait, the key is still held so there's no new edge
	test.ExpectEquality(t, emu.TogglePause(), AwaitingKey)
	test.DemandSuccess(t, emu.Tick(one, 1))
	test.ExpectEquality(t, emu.State(), AwaitingKey)

	test.DemandSuccess(t, emu.Tick(Keys{}, 1))
	test.DemandSuccess(t, emu.Tick(one, 1))
	test.ExpectEquality(t, emu.State(), Running)
	test.ExpectEquality(t, emu.V[2], uint8(1))
}
