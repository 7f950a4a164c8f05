package screen

import (
	"fmt"
	"strings"

	"github.com/faiface/pixel"
	"github.com/faiface/pixel/pixelgl"
)

// buttons by lower case name, as written in the keymap configuration
var buttons = func() map[string]pixelgl.Button {
	m := make(map[string]pixelgl.Button)
	for b := pixelgl.KeySpace; b <= pixelgl.KeyLast; b++ {
		name := b.String()
		if name == "" || name == "Invalid" {
			continue
		}
		m[strings.ToLower(name)] = b
	}
	return m
}()

// KeyMap resolves the configured host key names for CHIP-8 keys 0 to F.
func KeyMap(names []string) ([16]pixelgl.Button, error) {
	var keymap [16]pixelgl.Button
	if len(names) != len(keymap) {
		return keymap, fmt.Errorf("screen: keymap needs 16 keys, has %d", len(names))
	}
	for k, n := range names {
		b, ok := buttons[strings.ToLower(n)]
		if !ok {
			return keymap, fmt.Errorf("screen: unknown key %q for %X", n, k)
		}
		if b == pixelgl.KeyEscape || b == pixelgl.KeySpace {
			return keymap, fmt.Errorf("screen: %q is reserved for quit and pause", n)
		}
		keymap[k] = b
	}
	return keymap, nil
}

// cellBounds returns the corners of the square for CHIP-8 pixel x, y. pixel
// puts the origin at the bottom left so the y axis is flipped.
func cellBounds(x, y int, scale int, height int) (pixel.Vec, pixel.Vec) {
	left := float64(x * scale)
	top := float64(height - y*scale)
	return pixel.V(left, top-float64(scale)), pixel.V(left+float64(scale), top)
}
