package cpu

import "fmt"

// Op identifies the kind of a decoded instruction. The set is closed: every
// 16-bit word decodes to exactly one Op, OpUnknown included.
type Op int

// List of valid Op values. Mnemonics follow Cowgod's technical reference.
const (
	OpUnknown Op = iota
	OpCLS        // 00E0
	OpRET        // 00EE
	OpJP         // 1NNN
	OpCALL       // 2NNN
	OpSEByte     // 3XNN
	OpSNEByte    // 4XNN
	OpSEReg      // 5XY0
	OpLDByte     // 6XNN
	OpADDByte    // 7XNN
	OpLDReg      // 8XY0
	OpOR         // 8XY1
	OpAND        // 8XY2
	OpXOR        // 8XY3
	OpADDReg     // 8XY4
	OpSUB        // 8XY5
	OpSHR        // 8XY6
	OpSUBN       // 8XY7
	OpSHL        // 8XYE
	OpSNEReg     // 9XY0
	OpLDI        // ANNN
	OpJPV0       // BNNN
	OpRND        // CXNN
	OpDRW        // DXYN
	OpSKP        // EX9E
	OpSKNP       // EXA1
	OpLDVxDT     // FX07
	OpLDVxK      // FX0A
	OpLDDTVx     // FX15
	OpLDSTVx     // FX18
	OpADDI       // FX1E
	OpLDF        // FX29
	OpLDB        // FX33
	OpLDIVx      // FX55
	OpLDVxI      // FX65

	numOps
)

// Instruction is a decoded opcode. It is rebuilt for every step.
type Instruction struct {
	Opcode uint16
	Op     Op

	NNN uint16 // 12-bit address
	NN  uint8  // 8-bit literal
	N   uint8  // 4-bit literal
	X   uint8  // register index
	Y   uint8  // register index
}

// Decode extracts the fields of opcode and classifies it.
func Decode(opcode uint16) Instruction {
	inst := Instruction{
		Opcode: opcode,
		NNN:    opcode & 0x0FFF,
		NN:     uint8(opcode & 0x00FF),
		N:      uint8(opcode & 0x000F),
		X:      uint8((opcode >> 8) & 0x0F),
		Y:      uint8((opcode >> 4) & 0x0F),
	}
	inst.Op = classify(opcode, inst)
	return inst
}

func classify(opcode uint16, inst Instruction) Op {
	switch opcode >> 12 {
	case 0x0:
		switch opcode {
		case 0x00E0:
			return OpCLS
		case 0x00EE:
			return OpRET
		}
	case 0x1:
		return OpJP
	case 0x2:
		return OpCALL
	case 0x3:
		return OpSEByte
	case 0x4:
		return OpSNEByte
	case 0x5:
		if inst.N == 0 {
			return OpSEReg
		}
	case 0x6:
		return OpLDByte
	case 0x7:
		return OpADDByte
	case 0x8:
		switch inst.N {
		case 0x0:
			return OpLDReg
		case 0x1:
			return OpOR
		case 0x2:
			return OpAND
		case 0x3:
			return OpXOR
		case 0x4:
			return OpADDReg
		case 0x5:
			return OpSUB
		case 0x6:
			return OpSHR
		case 0x7:
			return OpSUBN
		case 0xE:
			return OpSHL
		}
	case 0x9:
		if inst.N == 0 {
			return OpSNEReg
		}
	case 0xA:
		return OpLDI
	case 0xB:
		return OpJPV0
	case 0xC:
		return OpRND
	case 0xD:
		return OpDRW
	case 0xE:
		switch inst.NN {
		case 0x9E:
			return OpSKP
		case 0xA1:
			return OpSKNP
		}
	case 0xF:
		switch inst.NN {
		case 0x07:
			return OpLDVxDT
		case 0x0A:
			return OpLDVxK
		case 0x15:
			return OpLDDTVx
		case 0x18:
			return OpLDSTVx
		case 0x1E:
			return OpADDI
		case 0x29:
			return OpLDF
		case 0x33:
			return OpLDB
		case 0x55:
			return OpLDIVx
		case 0x65:
			return OpLDVxI
		}
	}
	return OpUnknown
}

// String returns the instruction in assembler notation.
func (inst Instruction) String() string {
	switch inst.Op {
	case OpCLS:
		return "CLS"
	case OpRET:
		return "RET"
	case OpJP:
		return fmt.Sprintf("JP 0x%03X", inst.NNN)
	case OpCALL:
		return fmt.Sprintf("CALL 0x%03X", inst.NNN)
	case OpSEByte:
		return fmt.Sprintf("SE V%X, 0x%02X", inst.X, inst.NN)
	case OpSNEByte:
		return fmt.Sprintf("SNE V%X, 0x%02X", inst.X, inst.NN)
	case OpSEReg:
		return fmt.Sprintf("SE V%X, V%X", inst.X, inst.Y)
	case OpLDByte:
		return fmt.Sprintf("LD V%X, 0x%02X", inst.X, inst.NN)
	case OpADDByte:
		return fmt.Sprintf("ADD V%X, 0x%02X", inst.X, inst.NN)
	case OpLDReg:
		return fmt.Sprintf("LD V%X, V%X", inst.X, inst.Y)
	case OpOR:
		return fmt.Sprintf("OR V%X, V%X", inst.X, inst.Y)
	case OpAND:
		return fmt.Sprintf("AND V%X, V%X", inst.X, inst.Y)
	case OpXOR:
		return fmt.Sprintf("XOR V%X, V%X", inst.X, inst.Y)
	case OpADDReg:
		return fmt.Sprintf("ADD V%X, V%X", inst.X, inst.Y)
	case OpSUB:
		return fmt.Sprintf("SUB V%X, V%X", inst.X, inst.Y)
	case OpSHR:
		return fmt.Sprintf("SHR V%X", inst.X)
	case OpSUBN:
		return fmt.Sprintf("SUBN V%X, V%X", inst.X, inst.Y)
	case OpSHL:
		return fmt.Sprintf("SHL V%X", inst.X)
	case OpSNEReg:
		return fmt.Sprintf("SNE V%X, V%X", inst.X, inst.Y)
	case OpLDI:
		return fmt.Sprintf("LD I, 0x%03X", inst.NNN)
	case OpJPV0:
		return fmt.Sprintf("JP V0, 0x%03X", inst.NNN)
	case OpRND:
		return fmt.Sprintf("RND V%X, 0x%02X", inst.X, inst.NN)
	case OpDRW:
		return fmt.Sprintf("DRW V%X, V%X, %d", inst.X, inst.Y, inst.N)
	case OpSKP:
		return fmt.Sprintf("SKP V%X", inst.X)
	case OpSKNP:
		return fmt.Sprintf("SKNP V%X", inst.X)
	case OpLDVxDT:
		return fmt.Sprintf("LD V%X, DT", inst.X)
	case OpLDVxK:
		return fmt.Sprintf("LD V%X, K", inst.X)
	case OpLDDTVx:
		return fmt.Sprintf("LD DT, V%X", inst.X)
	case OpLDSTVx:
		return fmt.Sprintf("LD ST, V%X", inst.X)
	case OpADDI:
		return fmt.Sprintf("ADD I, V%X", inst.X)
	case OpLDF:
		return fmt.Sprintf("LD F, V%X", inst.X)
	case OpLDB:
		return fmt.Sprintf("LD B, V%X", inst.X)
	case OpLDIVx:
		return fmt.Sprintf("LD [I], V%X", inst.X)
	case OpLDVxI:
		return fmt.Sprintf("LD V%X, [I]", inst.X)
	}
	return fmt.Sprintf("DW 0x%04X", inst.Opcode)
}
