package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/beanboi7/chyp8/emu/cpu"
	"github.com/bradleyjkemp/memviz"
	"github.com/spf13/cobra"
)

var (
	inspectSteps int
	inspectIPT   int
	inspectDot   string
)

var inspectCmd = &cobra.Command{
	Use:   "inspect path/ROM",
	Short: "run a ROM without a display and print the machine state",
	Long: `Run a ROM for a number of frames with no display, no sound and no keys
pressed, then print the registers, stack, timers and screen. The machine state
can also be written as a graphviz dot file.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rom, err := cpu.ReadROM(args[0])
		if err != nil {
			return err
		}
		emu, err := cpu.NewEMU(rom, cpu.WithSeed(1))
		if err != nil {
			return err
		}

		runErr := inspect(cmd.OutOrStdout(), emu, inspectSteps, inspectIPT)

		if inspectDot != "" {
			f, err := os.Create(inspectDot)
			if err != nil {
				return err
			}
			defer f.Close()
			snap := emu.Snapshot()
			memviz.Map(f, &snap)
		}

		return runErr
	},
}

// inspect runs frames ticks and prints the state of the machine. A fault is
// printed along with the state and then returned.
func inspect(w io.Writer, emu *cpu.EMU, frames int, ipt int) error {
	var runErr error
	for i := 0; i < frames && runErr == nil; i++ {
		runErr = emu.Tick(cpu.Keys{}, ipt)
	}

	s := emu.Snapshot()
	fmt.Fprintf(w, "state %s\n", s.State)
	fmt.Fprintf(w, "PC  %04X  %s\n", s.PC, s.Instruction)
	fmt.Fprintf(w, "I   %04X\n", s.I)
	for x, v := range s.V {
		fmt.Fprintf(w, "V%X  %02X", x, v)
		if x%4 == 3 {
			fmt.Fprintln(w)
		} else {
			fmt.Fprint(w, "    ")
		}
	}
	fmt.Fprintf(w, "DT  %02X    ST  %02X\n", s.DelayTimer, s.SoundTimer)
	fmt.Fprintf(w, "stack %04X\n", s.Stack)

	fb := emu.Framebuffer()
	for y := 0; y < cpu.Height; y++ {
		row := make([]byte, cpu.Width)
		for x := range row {
			row[x] = '.'
			if fb.At(x, y) {
				row[x] = '#'
			}
		}
		fmt.Fprintf(w, "%s\n", row)
	}

	if runErr != nil {
		fmt.Fprintf(w, "fault: %v\n", runErr)
	}
	return runErr
}

func init() {
	inspectCmd.Flags().IntVarP(&inspectSteps, "steps", "n", 60, "number of frames to run")
	inspectCmd.Flags().IntVar(&inspectIPT, "ipt", 10, "instructions executed per frame")
	inspectCmd.Flags().StringVar(&inspectDot, "dot", "", "write the machine state to this graphviz file")
}
