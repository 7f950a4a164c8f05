// Package screen is the windowed frontend. It draws the framebuffer in a
// pixelgl window and reads the keypad from the host keyboard.
//
// pixelgl must be used from the main thread, see pixelgl.Run.
package screen

import (
	"fmt"
	"image/color"

	"github.com/beanboi7/chyp8/config"
	"github.com/beanboi7/chyp8/emu/cpu"
	"github.com/beanboi7/chyp8/emu/runner"
	"github.com/faiface/pixel"
	"github.com/faiface/pixel/imdraw"
	"github.com/faiface/pixel/pixelgl"
)

// Window is a display sink and input source backed by pixelgl.
type Window struct {
	*pixelgl.Window
	KeyMap [16]pixelgl.Button

	imd    *imdraw.IMDraw
	fg, bg color.RGBA
	scale  int
	height int
}

// NewWindow opens a window of cfg.Width*cfg.Scale by cfg.Height*cfg.Scale
// pixels.
func NewWindow(title string, cfg config.Config) (*Window, error) {
	keymap, err := KeyMap(cfg.Keymap)
	if err != nil {
		return nil, err
	}

	w := cfg.Width * cfg.Scale
	h := cfg.Height * cfg.Scale

	win, err := pixelgl.NewWindow(pixelgl.WindowConfig{
		Title:  title,
		Bounds: pixel.R(0, 0, float64(w), float64(h)),
		VSync:  true,
	})
	if err != nil {
		return nil, fmt.Errorf("screen: %w", err)
	}

	return &Window{
		Window: win,
		KeyMap: keymap,
		imd:    imdraw.New(nil),
		fg:     cfg.ForegroundColor(),
		bg:     cfg.BackgroundColor(),
		scale:  cfg.Scale,
		height: h,
	}, nil
}

// Draw implements the runner.Display interface. The frame is only prepared
// here; it reaches the screen on the next Poll.
func (w *Window) Draw(fb cpu.Framebuffer) error {
	w.imd.Clear()
	w.imd.Color = w.fg
	for y := 0; y < cpu.Height; y++ {
		for x := 0; x < cpu.Width; x++ {
			if !fb.At(x, y) {
				continue
			}
			min, max := cellBounds(x, y, w.scale, w.height)
			w.imd.Push(min, max)
			w.imd.Rectangle(0)
		}
	}
	return nil
}

// Poll implements the runner.Input interface.
//
// pixelgl swaps buffers and collects events in the same call, so the most
// recently drawn frame is presented here, once per tick.
func (w *Window) Poll() runner.Poll {
	w.Clear(w.bg)
	w.imd.Draw(w)
	w.Update()

	var p runner.Poll
	for k, b := range w.KeyMap {
		p.Keys[k] = w.Pressed(b)
	}
	p.Quit = w.Closed() || w.JustPressed(pixelgl.KeyEscape)
	p.Pause = w.JustPressed(pixelgl.KeySpace)
	return p
}
