package config

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// ParseColor parses an RGBA8888 colour written as #RRGGBBAA or 0xRRGGBBAA.
// The alpha byte may be left off, in which case the colour is opaque.
func ParseColor(s string) (color.RGBA, error) {
	h := strings.TrimSpace(s)
	switch {
	case strings.HasPrefix(h, "#"):
		h = h[1:]
	case strings.HasPrefix(h, "0x"), strings.HasPrefix(h, "0X"):
		h = h[2:]
	}

	switch len(h) {
	case 6:
		h += "ff"
	case 8:
	default:
		return color.RGBA{}, fmt.Errorf("colour %q is not RRGGBB or RRGGBBAA", s)
	}

	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("colour %q: %w", s, err)
	}

	return color.RGBA{
		R: uint8(v >> 24),
		G: uint8(v >> 16),
		B: uint8(v >> 8),
		A: uint8(v),
	}, nil
}
