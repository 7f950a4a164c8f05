package cpu

// execute performs the instruction. The PC has already been advanced past
// it.
func (emu *EMU) execute(inst Instruction) error {
	vx := &emu.V[inst.X]
	vy := emu.V[inst.Y]

	switch inst.Op {
	case OpCLS:
		emu.display = Framebuffer{}
		emu.updateScreen = true

	case OpRET:
		addr, err := emu.pop()
		if err != nil {
			return err
		}
		emu.pc = addr

	case OpJP:
		emu.pc = inst.NNN

	case OpCALL:
		if err := emu.push(emu.pc); err != nil {
			return err
		}
		emu.pc = inst.NNN

	case OpSEByte:
		emu.skipIf(*vx == inst.NN)

	case OpSNEByte:
		emu.skipIf(*vx != inst.NN)

	case OpSEReg:
		emu.skipIf(*vx == vy)

	case OpLDByte:
		*vx = inst.NN

	case OpADDByte:
		// no carry flag
		*vx += inst.NN

	case OpLDReg:
		*vx = vy

	case OpOR:
		*vx |= vy

	case OpAND:
		*vx &= vy

	case OpXOR:
		*vx ^= vy

	// the flag is calculated from the operands before the result is stored
	// and written after it, so VF as the destination ends up holding the flag
	case OpADDReg:
		sum := uint16(*vx) + uint16(vy)
		*vx = uint8(sum)
		emu.V[0xF] = boolToFlag(sum > 0xFF)

	case OpSUB:
		noBorrow := *vx >= vy
		*vx -= vy
		emu.V[0xF] = boolToFlag(noBorrow)

	case OpSHR:
		lsb := *vx & 0x01
		*vx >>= 1
		emu.V[0xF] = lsb

	case OpSUBN:
		noBorrow := vy >= *vx
		*vx = vy - *vx
		emu.V[0xF] = boolToFlag(noBorrow)

	case OpSHL:
		msb := *vx >> 7
		*vx <<= 1
		emu.V[0xF] = msb

	case OpSNEReg:
		emu.skipIf(*vx != vy)

	case OpLDI:
		emu.I = inst.NNN

	case OpJPV0:
		emu.pc = inst.NNN + uint16(emu.V[0])

	case OpRND:
		*vx = uint8(emu.rng.Intn(256)) & inst.NN

	case OpDRW:
		return emu.drawSprite(*vx, vy, inst.N)

	case OpSKP:
		emu.skipIf(emu.KeyPressed(*vx))

	case OpSKNP:
		emu.skipIf(!emu.KeyPressed(*vx))

	case OpLDVxDT:
		*vx = emu.delayTimer

	case OpLDVxK:
		emu.awaitKey(inst.X)

	case OpLDDTVx:
		emu.delayTimer = *vx

	case OpLDSTVx:
		emu.soundTimer = *vx

	case OpADDI:
		// 16-bit wrap, VF untouched
		emu.I += uint16(*vx)

	case OpLDF:
		emu.I = glyphAddress(*vx)

	case OpLDB:
		return emu.storeBCD(*vx)

	case OpLDIVx:
		return emu.storeRegisters(inst.X)

	case OpLDVxI:
		return emu.loadRegisters(inst.X)

	default:
		return ErrUnknownOpcode
	}

	return nil
}

func (emu *EMU) skipIf(cond bool) {
	if cond {
		emu.pc += 2
	}
}

func boolToFlag(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}

// drawSprite XORs n rows of sprite data from memory[I] onto the display at
// x, y. The start position wraps onto the screen and so do pixels drawn past
// the right or bottom edge. VF is set if any lit pixel was turned off.
func (emu *EMU) drawSprite(x, y uint8, n uint8) error {
	// read the whole sprite first so an out of range row leaves the display
	// as it was
	var sprite [15]uint8
	for row := 0; row < int(n); row++ {
		b, err := emu.read(int(emu.I) + row)
		if err != nil {
			return err
		}
		sprite[row] = b
	}

	x0 := int(x) % Width
	y0 := int(y) % Height
	collision := false

	for row := 0; row < int(n); row++ {
		py := (y0 + row) % Height
		for bit := 0; bit < 8; bit++ {
			// most significant bit is the leftmost pixel
			if sprite[row]&(0x80>>bit) == 0 {
				continue
			}
			idx := py*Width + (x0+bit)%Width
			if emu.display[idx] {
				collision = true
			}
			emu.display[idx] = !emu.display[idx]
		}
	}

	emu.V[0xF] = boolToFlag(collision)
	emu.updateScreen = true
	return nil
}

// storeBCD writes the hundreds, tens and units of v to I, I+1 and I+2.
func (emu *EMU) storeBCD(v uint8) error {
	digits := [3]uint8{v / 100, (v / 10) % 10, v % 10}
	for i := range digits {
		if err := emu.checkWrite(int(emu.I) + i); err != nil {
			return err
		}
	}
	for i, d := range digits {
		emu.memory[int(emu.I)+i] = d
	}
	return nil
}

// storeRegisters writes V0..VX to memory starting at I. I is unchanged.
func (emu *EMU) storeRegisters(x uint8) error {
	for i := 0; i <= int(x); i++ {
		if err := emu.checkWrite(int(emu.I) + i); err != nil {
			return err
		}
	}
	for i := 0; i <= int(x); i++ {
		emu.memory[int(emu.I)+i] = emu.V[i]
	}
	return nil
}

// loadRegisters reads V0..VX from memory starting at I. I is unchanged.
func (emu *EMU) loadRegisters(x uint8) error {
	var v [16]uint8
	for i := 0; i <= int(x); i++ {
		b, err := emu.read(int(emu.I) + i)
		if err != nil {
			return err
		}
		v[i] = b
	}
	copy(emu.V[:int(x)+1], v[:int(x)+1])
	return nil
}
