// Package audio implements the CHIP-8 buzzer. The machine only knows whether
// its sound timer is running. The buzzers in this package turn that into a
// tone on the speaker, a WAV file or both.
package audio

// Buzzer is told once per tick whether the tone should be sounding.
type Buzzer interface {
	Beep(on bool)
	Close() error
}

// Silent discards the buzzer signal.
type Silent struct{}

// Beep implements the Buzzer interface.
func (Silent) Beep(bool) {}

// Close implements the Buzzer interface.
func (Silent) Close() error { return nil }

// Multi sends the buzzer signal to every buzzer in the list.
type Multi []Buzzer

// Beep implements the Buzzer interface.
func (m Multi) Beep(on bool) {
	for _, b := range m {
		b.Beep(on)
	}
}

// Close implements the Buzzer interface. All buzzers are closed and the first
// error is returned.
func (m Multi) Close() error {
	var first error
	for _, b := range m {
		if err := b.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// square returns the value of a square wave of the given frequency at sample
// n, as -1 or +1.
func square(n int, freq int, sampleRate int) float64 {
	period := sampleRate / freq
	if period < 2 {
		period = 2
	}
	if n%period < period/2 {
		return 1
	}
	return -1
}
