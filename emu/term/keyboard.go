package term

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/beanboi7/chyp8/emu/cpu"
	"github.com/beanboi7/chyp8/emu/runner"
	"github.com/beanboi7/chyp8/logger"
	"github.com/pkg/term"
)

// terminals only report key presses, never releases. a key counts as held
// for this long after the last byte for it arrived, which covers the gap
// before the host's key repeat starts
const keyRepeatDuration = time.Second / 5

const (
	keyEscape = 0x1b
	keyCtrlC  = 0x03
	keySpace  = ' '
)

// Keyboard is an input source reading the controlling terminal.
type Keyboard struct {
	t *term.Term

	mu     sync.Mutex
	keymap map[byte]int
	held   [16]time.Time
	quit   bool
	pause  bool

	now func() time.Time
}

func newKeyboard(names []string) (*Keyboard, error) {
	if len(names) != 16 {
		return nil, fmt.Errorf("term: keymap needs 16 keys, has %d", len(names))
	}
	kb := &Keyboard{
		keymap: make(map[byte]int),
		now:    time.Now,
	}
	for k, n := range names {
		n = strings.ToLower(n)
		if len(n) != 1 {
			return nil, fmt.Errorf("term: key %q for %X is not a single character", n, k)
		}
		if n[0] == keySpace {
			return nil, fmt.Errorf("term: space is reserved for pause")
		}
		kb.keymap[n[0]] = k
	}
	return kb, nil
}

// OpenKeyboard puts the terminal at /dev/tty into raw mode and starts
// reading keys from it.
func OpenKeyboard(names []string) (*Keyboard, error) {
	kb, err := newKeyboard(names)
	if err != nil {
		return nil, err
	}

	kb.t, err = term.Open("/dev/tty", term.RawMode)
	if err != nil {
		return nil, fmt.Errorf("term: %w", err)
	}

	go kb.read()

	return kb, nil
}

func (kb *Keyboard) read() {
	b := make([]byte, 16)
	for {
		n, err := kb.t.Read(b)
		if err != nil {
			logger.Logf("term", "keyboard: %v", err)
			return
		}
		for _, c := range b[:n] {
			kb.handle(c)
		}
	}
}

func (kb *Keyboard) handle(c byte) {
	kb.mu.Lock()
	defer kb.mu.Unlock()

	switch c {
	case keyEscape, keyCtrlC:
		kb.quit = true
		return
	case keySpace:
		kb.pause = true
		return
	}

	if c >= 'A' && c <= 'Z' {
		c += 'a' - 'A'
	}
	if k, ok := kb.keymap[c]; ok {
		kb.held[k] = kb.now().Add(keyRepeatDuration)
	}
}

// Poll implements the runner.Input interface.
func (kb *Keyboard) Poll() runner.Poll {
	kb.mu.Lock()
	defer kb.mu.Unlock()

	now := kb.now()
	var keys cpu.Keys
	for k, until := range kb.held {
		keys[k] = now.Before(until)
	}

	p := runner.Poll{Keys: keys, Quit: kb.quit, Pause: kb.pause}
	kb.pause = false
	return p
}

// Close restores the terminal.
func (kb *Keyboard) Close() error {
	if kb.t == nil {
		return nil
	}
	if err := kb.t.Restore(); err != nil {
		return fmt.Errorf("term: %w", err)
	}
	return kb.t.Close()
}
