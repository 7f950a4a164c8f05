package cmd

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/beanboi7/chyp8/config"
	"github.com/beanboi7/chyp8/emu/cpu"
	"github.com/beanboi7/chyp8/test"
	"github.com/spf13/viper"
)

func TestDisassemble(t *testing.T) {
	var b bytes.Buffer
	test.DemandSuccess(t, disassemble(&b, []byte{0x60, 0x05, 0x70, 0x03, 0x12, 0x04, 0xFF}))

	lines := strings.Split(strings.TrimSuffix(b.String(), "\n"), "\n")
	test.DemandEquality(t, len(lines), 4)
	test.ExpectEquality(t, lines[0], "0x200  6005  LD V0, 0x05")
	test.ExpectEquality(t, lines[1], "0x202  7003  ADD V0, 0x03")
	test.ExpectEquality(t, lines[2], "0x204  1204  JP 0x204")
	test.ExpectEquality(t, lines[3], "0x206  FF    DB 0xFF")
}

func TestInspect(t *testing.T) {
	// LD I, glyph 0; DRW V0, V0, 5; JP 0x204
	emu, err := cpu.NewEMU([]byte{0xA0, 0x00, 0xD0, 0x05, 0x12, 0x04})
	test.DemandSuccess(t, err)

	var b bytes.Buffer
	test.DemandSuccess(t, inspect(&b, emu, 2, 3))

	s := b.String()
	test.ExpectEquality(t, strings.Contains(s, "state running\n"), true)
	test.ExpectEquality(t, strings.Contains(s, "PC  0204  JP 0x204\n"), true)
	test.ExpectEquality(t, strings.Contains(s, "\n####....."), true)
	test.ExpectEquality(t, strings.Contains(s, "\n#..#....."), true)
}

func TestInspectFault(t *testing.T) {
	emu, err := cpu.NewEMU([]byte{0x00, 0xEE})
	test.DemandSuccess(t, err)

	var b bytes.Buffer
	err = inspect(&b, emu, 5, 1)
	test.ExpectEquality(t, errors.Is(err, cpu.ErrStackUnderflow), true)
	test.ExpectEquality(t, strings.Contains(b.String(), "fault: stack underflow"), true)
	test.ExpectEquality(t, strings.Contains(b.String(), "state stopped\n"), true)
}

func TestReadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chyp8.yaml")
	test.DemandSuccess(t, os.WriteFile(path, []byte("scale: 12\nipt: 20\n"), 0o644))

	v := viper.New()
	config.SetDefaults(v)
	test.DemandSuccess(t, readConfig(v, path))

	cfg, err := config.Load(v)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, cfg.Scale, 12)
	test.ExpectEquality(t, cfg.IPT, 20)
	test.ExpectEquality(t, cfg.Refresh, 60)
}

func TestReadConfigMissingFile(t *testing.T) {
	v := viper.New()
	test.ExpectFailure(t, readConfig(v, filepath.Join(t.TempDir(), "missing.yaml")))
}
