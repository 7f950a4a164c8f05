package audio

import (
	"fmt"
	"os"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"
)

const (
	sampleRate = beep.SampleRate(44100)

	// quiet enough not to clip when played at full scale
	volume = 0.2
)

// Speaker plays the buzzer through the default audio device.
type Speaker struct {
	ctrl   *beep.Ctrl
	closer func() error
}

// NewSpeaker opens the audio device and prepares a square wave of freq Hz.
// If beepFile names an mp3 file, that sample is looped instead of the square
// wave.
func NewSpeaker(freq int, beepFile string) (*Speaker, error) {
	if freq <= 0 {
		return nil, fmt.Errorf("speaker: frequency must be positive (%d)", freq)
	}

	spk := &Speaker{closer: func() error { return nil }}

	var src beep.Streamer
	if beepFile == "" {
		n := 0
		src = beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
			for i := range samples {
				v := square(n, freq, int(sampleRate)) * volume
				samples[i][0] = v
				samples[i][1] = v
				n++
			}
			return len(samples), true
		})
	} else {
		f, err := os.Open(beepFile)
		if err != nil {
			return nil, fmt.Errorf("speaker: %w", err)
		}
		streamer, format, err := mp3.Decode(f)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("speaker: %s: %w", beepFile, err)
		}
		spk.closer = streamer.Close
		src = beep.Resample(4, format.SampleRate, sampleRate, beep.Loop(-1, streamer))
	}

	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/30)); err != nil {
		spk.closer()
		return nil, fmt.Errorf("speaker: %w", err)
	}

	spk.ctrl = &beep.Ctrl{Streamer: src, Paused: true}
	speaker.Play(spk.ctrl)

	return spk, nil
}

// Beep implements the Buzzer interface.
func (spk *Speaker) Beep(on bool) {
	speaker.Lock()
	spk.ctrl.Paused = !on
	speaker.Unlock()
}

// Close implements the Buzzer interface.
func (spk *Speaker) Close() error {
	speaker.Clear()
	return spk.closer()
}
