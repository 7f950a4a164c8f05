package cmd

import (
	"fmt"
	"io"

	"github.com/beanboi7/chyp8/emu/cpu"
	"github.com/spf13/cobra"
)

var disasmCmd = &cobra.Command{
	Use:   "disasm path/ROM",
	Short: "print the instructions of a ROM",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rom, err := cpu.ReadROM(args[0])
		if err != nil {
			return err
		}
		return disassemble(cmd.OutOrStdout(), rom)
	},
}

// disassemble writes one line per word of rom. ROMs mix code and sprite data
// freely so every word is decoded, whether it is code or not.
func disassemble(w io.Writer, rom []byte) error {
	for i := 0; i+1 < len(rom); i += 2 {
		opcode := uint16(rom[i])<<8 | uint16(rom[i+1])
		if _, err := fmt.Fprintf(w, "0x%03X  %04X  %s\n", 0x200+i, opcode, cpu.Decode(opcode)); err != nil {
			return err
		}
	}
	if len(rom)%2 == 1 {
		_, err := fmt.Fprintf(w, "0x%03X  %02X    DB 0x%02X\n", 0x200+len(rom)-1, rom[len(rom)-1], rom[len(rom)-1])
		return err
	}
	return nil
}
