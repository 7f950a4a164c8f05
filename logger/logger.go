// Package logger is the central log for the emulator. Entries are tagged
// with the part of the emulator that created them and can optionally be
// echoed to a writer as they arrive.
//
// Identical consecutive entries are collapsed into one entry with a repeat
// count, which keeps a ROM that spins on an unknown opcode from flooding the
// log.
package logger

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
)

// Entry is a single line in the log.
type Entry struct {
	Timestamp time.Time
	Tag       string
	Detail    string
	repeated  int
}

func (e Entry) String() string {
	s := strings.Builder{}
	s.WriteString(fmt.Sprintf("%s: %s", e.Tag, e.Detail))
	if e.repeated > 0 {
		s.WriteString(fmt.Sprintf(" (repeat x%d)", e.repeated+1))
	}
	s.WriteString("\n")
	return s.String()
}

// maximum number of entries kept by the central log
const maxEntries = 256

type logger struct {
	mu      sync.Mutex
	entries []Entry
	echo    io.Writer
}

var central = &logger{entries: make([]Entry, 0, maxEntries)}

func (l *logger) log(tag, detail string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	tag = strings.ReplaceAll(tag, "\n", "")
	detail = strings.ReplaceAll(detail, "\n", "")

	if n := len(l.entries); n > 0 && l.entries[n-1].Tag == tag && l.entries[n-1].Detail == detail {
		l.entries[n-1].repeated++
		l.entries[n-1].Timestamp = time.Now()
	} else {
		l.entries = append(l.entries, Entry{Timestamp: time.Now(), Tag: tag, Detail: detail})
		if len(l.entries) > maxEntries {
			l.entries = l.entries[len(l.entries)-maxEntries:]
		}

		// repeats are not echoed
		if l.echo != nil {
			io.WriteString(l.echo, l.entries[len(l.entries)-1].String())
		}
	}
}

// Log adds an entry to the central log.
func Log(tag, detail string) {
	central.log(tag, detail)
}

// Logf adds a formatted entry to the central log.
func Logf(tag, detail string, args ...interface{}) {
	central.log(tag, fmt.Sprintf(detail, args...))
}

// SetEcho mirrors new entries to w. A nil writer turns echoing off.
func SetEcho(w io.Writer) {
	central.mu.Lock()
	defer central.mu.Unlock()
	central.echo = w
}

// Clear removes all entries.
func Clear() {
	central.mu.Lock()
	defer central.mu.Unlock()
	central.entries = central.entries[:0]
}

// Write the whole log to w.
func Write(w io.Writer) {
	Tail(w, maxEntries)
}

// Tail writes the most recent number of entries to w.
func Tail(w io.Writer, number int) {
	central.mu.Lock()
	defer central.mu.Unlock()

	if number > len(central.entries) {
		number = len(central.entries)
	}
	if number < 0 {
		number = 0
	}
	for _, e := range central.entries[len(central.entries)-number:] {
		io.WriteString(w, e.String())
	}
}
