package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/beanboi7/chyp8/config"
	"github.com/beanboi7/chyp8/emu/audio"
	"github.com/beanboi7/chyp8/emu/cpu"
	"github.com/beanboi7/chyp8/emu/runner"
	"github.com/beanboi7/chyp8/emu/screen"
	"github.com/beanboi7/chyp8/emu/term"
	"github.com/beanboi7/chyp8/logger"
	"github.com/beanboi7/chyp8/statsview"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var startCmd = &cobra.Command{
	Use:   "start path/ROM",
	Short: "load and start the Emulator",
	Args:  cobra.ExactArgs(1),
	PreRun: func(cmd *cobra.Command, args []string) {
		bindFlags(cmd)
	},
	RunE: Start,
}

// chyp8 start 'path/to/ROM' -r 69
func Start(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return err
	}

	rom, err := cpu.ReadROM(args[0])
	if err != nil {
		return err
	}
	emu, err := cpu.NewEMU(rom, machineOptions(cfg)...)
	if err != nil {
		return err
	}
	logger.Logf("chyp8", "loaded %s (%d bytes)", args[0], len(rom))

	if cfg.Statsview {
		statsview.Launch(os.Stderr)
	}

	buzzer := newBuzzer(cfg)
	defer func() {
		if err := buzzer.Close(); err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
	}()

	var display runner.Display
	var input runner.Input

	switch cfg.Frontend {
	case config.FrontendWindow:
		logger.SetEcho(os.Stderr)
		defer logger.SetEcho(nil)

		win, err := screen.NewWindow("Chyp8", cfg)
		if err != nil {
			return err
		}
		defer win.Destroy()
		display, input = win, win

	case config.FrontendTerminal:
		kb, err := term.OpenKeyboard(cfg.Keymap)
		if err != nil {
			return err
		}
		d := term.NewDisplay(os.Stdout)
		defer func() {
			d.Close()
			kb.Close()

			// the log isn't echoed while the terminal is in raw mode
			logger.Tail(os.Stderr, 10)
		}()
		display, input = d, kb
	}

	r, err := runner.New(emu, display, input, buzzer, cfg.Refresh, cfg.IPT)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := r.Run(ctx); err != nil {
		return fmt.Errorf("emulation halted: %w", err)
	}
	logger.Logf("chyp8", "stopped after %d frames", r.Ticks())

	return nil
}

func machineOptions(cfg config.Config) []cpu.Option {
	opts := []cpu.Option{
		cpu.SkipUnknownOpcodes(cfg.UnknownOpcode == config.UnknownSkip),
		cpu.WithTrace(cfg.Trace),
	}
	if cfg.Seed != 0 {
		opts = append(opts, cpu.WithSeed(cfg.Seed))
	}
	return opts
}

// newBuzzer returns the speaker and, if requested, a WAV recorder. A missing
// audio device is not fatal.
func newBuzzer(cfg config.Config) audio.Buzzer {
	var m audio.Multi

	spk, err := audio.NewSpeaker(cfg.BeepHz, cfg.BeepFile)
	if err != nil {
		logger.Logf("audio", "no sound: %v", err)
	} else {
		m = append(m, spk)
	}

	if cfg.Record != "" {
		rec, err := audio.NewRecorder(cfg.Record, cfg.BeepHz, cfg.Refresh)
		if err != nil {
			logger.Logf("audio", "not recording: %v", err)
		} else {
			m = append(m, rec)
		}
	}

	if len(m) == 0 {
		return audio.Silent{}
	}
	return m
}

func init() {
	f := startCmd.Flags()
	f.IntP("refresh", "r", 60, "sets the refresh rate of the display in Hz")
	f.IntP("scale", "s", 20, "size of a Chip-8 pixel on screen")
	f.Int("ipt", 10, "instructions executed per frame")
	f.String("foreground", "#FFFFFFFF", "foreground colour as #RRGGBBAA")
	f.String("background", "#000000FF", "background colour as #RRGGBBAA")
	f.StringP("frontend", "f", config.FrontendWindow, "window or terminal")
	f.String("unknown-opcode", config.UnknownHalt, "halt or skip on opcodes outside the instruction set")
	f.Int("beep-hz", 440, "frequency of the buzzer")
	f.String("beep-file", "", "mp3 sample to use for the buzzer")
	f.String("record", "", "record the buzzer to this WAV file")
	f.Int64("seed", 0, "seed for the random number instruction (0 is time based)")
	f.Bool("trace", false, "log every instruction")
	f.Bool("statsview", false, "serve runtime statistics on "+statsview.Address)
}
