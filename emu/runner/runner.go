// Package runner drives a CHIP-8 machine at a fixed rate and connects it to
// a display, an input source and a buzzer.
//
// The interpreter itself has no notion of time. Every tick of the runner
// polls input, executes a batch of instructions, decays the timers and
// passes the results on to the host.
package runner

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/beanboi7/chyp8/emu/cpu"
	"github.com/beanboi7/chyp8/logger"
)

// Display receives a copy of the framebuffer whenever it changes.
type Display interface {
	Draw(fb cpu.Framebuffer) error
}

// Poll is the state of the input source at the start of a tick.
type Poll struct {
	Keys  cpu.Keys
	Quit  bool
	Pause bool // toggle
}

// Input is polled once per tick.
type Input interface {
	Poll() Poll
}

// Buzzer is told once per tick whether the sound timer is running.
type Buzzer interface {
	Beep(on bool)
}

// Runner owns the machine and its collaborators.
type Runner struct {
	emu     *cpu.EMU
	display Display
	input   Input
	buzzer  Buzzer

	rate time.Duration
	ipt  int

	ticks uint64
}

// New creates a runner that ticks refresh times per second, executing ipt
// instructions per tick.
func New(emu *cpu.EMU, display Display, input Input, buzzer Buzzer, refresh int, ipt int) (*Runner, error) {
	if refresh <= 0 {
		return nil, fmt.Errorf("runner: refresh rate must be positive (%d)", refresh)
	}
	if ipt <= 0 {
		return nil, fmt.Errorf("runner: instructions per tick must be positive (%d)", ipt)
	}
	return &Runner{
		emu:     emu,
		display: display,
		input:   input,
		buzzer:  buzzer,
		rate:    time.Second / time.Duration(refresh),
		ipt:     ipt,
	}, nil
}

// ErrQuit is returned by Frame when the input source asked to quit.
var ErrQuit = errors.New("quit")

// Ticks returns the number of frames run so far.
func (r *Runner) Ticks() uint64 {
	return r.ticks
}

// Frame runs a single tick. The returned error is ErrQuit after a quit
// request, a *cpu.Fault if the machine faulted, or an error from the
// display.
func (r *Runner) Frame() error {
	if r.emu.State() == cpu.Stopped {
		return ErrQuit
	}

	p := r.input.Poll()
	if p.Quit {
		r.emu.Stop()
		r.buzzer.Beep(false)
		logger.Log("runner", "quit")
		return ErrQuit
	}
	if p.Pause {
		logger.Logf("runner", "%s", r.emu.TogglePause())
	}

	r.ticks++

	if err := r.emu.Tick(p.Keys, r.ipt); err != nil {
		r.buzzer.Beep(false)
		return err
	}

	if r.emu.Redraw() {
		if err := r.display.Draw(r.emu.Framebuffer()); err != nil {
			return fmt.Errorf("display: %w", err)
		}
	}

	r.buzzer.Beep(r.emu.SoundActive() && r.emu.State() != cpu.Paused)

	return nil
}

// Run calls Frame at the fixed rate until quit, a fault or cancellation of
// the context. Quitting and cancellation are not errors.
func (r *Runner) Run(ctx context.Context) error {
	ticker := time.NewTicker(r.rate)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.emu.Stop()
			r.buzzer.Beep(false)
			return nil
		case <-ticker.C:
			if err := r.Frame(); err != nil {
				if errors.Is(err, ErrQuit) {
					return nil
				}
				return err
			}
		}
	}
}
