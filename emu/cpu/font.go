package cpu

// FontSet holds the built-in hexadecimal glyphs 0-F. Each glyph is 4 pixels
// wide and 5 rows tall, one byte per row with the pixels in the high nibble.
var FontSet = [fontSize]uint8{
	0xF0, 0x90, 0x90, 0x90, 0xF0, // 0
	0x20, 0x60, 0x20, 0x20, 0x70, // 1
	0xF0, 0x10, 0xF0, 0x80, 0xF0, // 2
	0xF0, 0x10, 0xF0, 0x10, 0xF0, // 3
	0x90, 0x90, 0xF0, 0x10, 0x10, // 4
	0xF0, 0x80, 0xF0, 0x10, 0xF0, // 5
	0xF0, 0x80, 0xF0, 0x90, 0xF0, // 6
	0xF0, 0x10, 0x20, 0x40, 0x40, // 7
	0xF0, 0x90, 0xF0, 0x90, 0xF0, // 8
	0xF0, 0x90, 0xF0, 0x10, 0xF0, // 9
	0xF0, 0x90, 0xF0, 0x90, 0x90, // A
	0xE0, 0x90, 0xE0, 0x90, 0xE0, // B
	0xF0, 0x80, 0x80, 0x80, 0xF0, // C
	0xE0, 0x90, 0x90, 0x90, 0xE0, // D
	0xF0, 0x80, 0xF0, 0x80, 0xF0, // E
	0xF0, 0x80, 0xF0, 0x80, 0x80, // F
}

const (
	fontStart     = 0x000
	fontGlyphSize = 5
	fontSize      = 16 * fontGlyphSize
)

func (emu *EMU) loadFont() {
	copy(emu.memory[fontStart:], FontSet[:])
}

// glyphAddress returns the address of the glyph for the low nibble of digit.
func glyphAddress(digit uint8) uint16 {
	return fontStart + uint16(digit&0x0F)*fontGlyphSize
}
