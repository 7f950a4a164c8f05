// Package term is the terminal frontend, for hosts without a graphical
// display. The framebuffer is drawn with ANSI escape sequences and keys are
// read from the terminal in raw mode.
package term

import (
	"bytes"
	"io"

	"github.com/beanboi7/chyp8/emu/cpu"
)

const (
	escClear      = "\x1b[2J"
	escHome       = "\x1b[H"
	escHideCursor = "\x1b[?25l"
	escShowCursor = "\x1b[?25h"

	// two columns per pixel keeps the aspect ratio close to square
	lit   = "██"
	unlit = "  "
)

// Display draws the framebuffer to a terminal.
type Display struct {
	out     io.Writer
	buf     bytes.Buffer
	started bool
}

// NewDisplay creates a display writing to out.
func NewDisplay(out io.Writer) *Display {
	return &Display{out: out}
}

// Draw implements the runner.Display interface. The whole frame goes out in
// a single write so the terminal never shows half a frame.
func (d *Display) Draw(fb cpu.Framebuffer) error {
	d.buf.Reset()
	if !d.started {
		d.buf.WriteString(escClear)
		d.buf.WriteString(escHideCursor)
		d.started = true
	}
	d.buf.WriteString(escHome)
	for y := 0; y < cpu.Height; y++ {
		for x := 0; x < cpu.Width; x++ {
			if fb.At(x, y) {
				d.buf.WriteString(lit)
			} else {
				d.buf.WriteString(unlit)
			}
		}
		// raw mode doesn't translate newlines
		d.buf.WriteString("\r\n")
	}
	_, err := d.out.Write(d.buf.Bytes())
	return err
}

// Close gives the cursor back.
func (d *Display) Close() error {
	if !d.started {
		return nil
	}
	_, err := io.WriteString(d.out, escShowCursor)
	return err
}
