// Package config holds the startup configuration of the emulator. Values are
// read once through viper, from a config file, the environment and command
// line flags, and are not changed afterwards.
package config

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/spf13/viper"
)

// Frontend names.
const (
	FrontendWindow   = "window"
	FrontendTerminal = "terminal"
)

// Unknown opcode policies.
const (
	UnknownHalt = "halt"
	UnknownSkip = "skip"
)

// Config is the complete startup configuration.
type Config struct {
	Width      int    `mapstructure:"width"`
	Height     int    `mapstructure:"height"`
	Scale      int    `mapstructure:"scale"`
	Foreground string `mapstructure:"foreground"`
	Background string `mapstructure:"background"`

	// ticks per second and instructions executed per tick
	Refresh int `mapstructure:"refresh"`
	IPT     int `mapstructure:"ipt"`

	// host key for each of the CHIP-8 keys 0 to F
	Keymap []string `mapstructure:"keymap"`

	Frontend      string `mapstructure:"frontend"`
	UnknownOpcode string `mapstructure:"unknown-opcode"`

	BeepHz   int    `mapstructure:"beep-hz"`
	BeepFile string `mapstructure:"beep-file"`
	Record   string `mapstructure:"record"`

	Seed      int64 `mapstructure:"seed"`
	Trace     bool  `mapstructure:"trace"`
	Statsview bool  `mapstructure:"statsview"`
}

// DefaultKeymap is the usual mapping of the hexadecimal keypad onto the left
// hand side of a QWERTY keyboard.
//
//	1 2 3 C      1 2 3 4
//	4 5 6 D  ->  q w e r
//	7 8 9 E      a s d f
//	A 0 B F      z x c v
var DefaultKeymap = []string{
	"x", "1", "2", "3",
	"q", "w", "e", "a",
	"s", "d", "z", "c",
	"4", "r", "f", "v",
}

// SetDefaults registers the default value of every key with v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("width", 64)
	v.SetDefault("height", 32)
	v.SetDefault("scale", 20)
	v.SetDefault("foreground", "#FFFFFFFF")
	v.SetDefault("background", "#000000FF")
	v.SetDefault("refresh", 60)
	v.SetDefault("ipt", 10)
	v.SetDefault("keymap", DefaultKeymap)
	v.SetDefault("frontend", FrontendWindow)
	v.SetDefault("unknown-opcode", UnknownHalt)
	v.SetDefault("beep-hz", 440)
	v.SetDefault("beep-file", "")
	v.SetDefault("record", "")
	v.SetDefault("seed", 0)
	v.SetDefault("trace", false)
	v.SetDefault("statsview", false)
}

// Load decodes and validates the configuration held by v.
func Load(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that every value is usable.
func (cfg Config) Validate() error {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return fmt.Errorf("config: window size must be positive (%dx%d)", cfg.Width, cfg.Height)
	}
	if cfg.Scale <= 0 {
		return fmt.Errorf("config: scale must be positive (%d)", cfg.Scale)
	}
	if cfg.Refresh <= 0 {
		return fmt.Errorf("config: refresh rate must be positive (%d)", cfg.Refresh)
	}
	if cfg.IPT <= 0 {
		return fmt.Errorf("config: instructions per tick must be positive (%d)", cfg.IPT)
	}
	if cfg.BeepHz <= 0 {
		return fmt.Errorf("config: beep frequency must be positive (%d)", cfg.BeepHz)
	}
	if _, err := ParseColor(cfg.Foreground); err != nil {
		return fmt.Errorf("config: foreground: %w", err)
	}
	if _, err := ParseColor(cfg.Background); err != nil {
		return fmt.Errorf("config: background: %w", err)
	}

	switch cfg.Frontend {
	case FrontendWindow, FrontendTerminal:
	default:
		return fmt.Errorf("config: unknown frontend %q", cfg.Frontend)
	}

	switch cfg.UnknownOpcode {
	case UnknownHalt, UnknownSkip:
	default:
		return fmt.Errorf("config: unknown opcode policy %q", cfg.UnknownOpcode)
	}

	if len(cfg.Keymap) != 16 {
		return fmt.Errorf("config: keymap needs 16 keys, has %d", len(cfg.Keymap))
	}
	seen := make(map[string]int)
	for k, key := range cfg.Keymap {
		key = strings.ToLower(key)
		if key == "" {
			return fmt.Errorf("config: keymap entry %X is empty", k)
		}
		if prev, ok := seen[key]; ok {
			return fmt.Errorf("config: keymap entries %X and %X are both %q", prev, k, key)
		}
		seen[key] = k
	}

	return nil
}

// ForegroundColor returns the parsed foreground colour. Only valid after
// Validate has succeeded.
func (cfg Config) ForegroundColor() color.RGBA {
	c, _ := ParseColor(cfg.Foreground)
	return c
}

// BackgroundColor returns the parsed background colour. Only valid after
// Validate has succeeded.
func (cfg Config) BackgroundColor() color.RGBA {
	c, _ := ParseColor(cfg.Background)
	return c
}
