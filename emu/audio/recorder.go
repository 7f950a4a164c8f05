package audio

import (
	"fmt"
	"os"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

const (
	recordRate  = 22050
	recordDepth = 16

	// wav format tag for uncompressed PCM
	pcmFormat = 1

	amplitude = 8000
)

// Recorder writes the buzzer to a mono WAV file. Every call to Beep adds one
// tick worth of tone or silence. Samples are buffered in memory and written
// out when Close is called.
type Recorder struct {
	filename string
	freq     int
	perTick  int
	samples  []int
	n        int
}

// NewRecorder creates a recorder for a machine ticking refresh times per
// second with a buzzer of freq Hz.
func NewRecorder(filename string, freq int, refresh int) (*Recorder, error) {
	if freq <= 0 || refresh <= 0 {
		return nil, fmt.Errorf("recorder: frequency (%d) and refresh rate (%d) must be positive", freq, refresh)
	}
	return &Recorder{
		filename: filename,
		freq:     freq,
		perTick:  recordRate / refresh,
	}, nil
}

// Beep implements the Buzzer interface.
func (rec *Recorder) Beep(on bool) {
	for i := 0; i < rec.perTick; i++ {
		v := 0
		if on {
			v = int(square(rec.n, rec.freq, recordRate) * amplitude)
		}
		rec.samples = append(rec.samples, v)
		rec.n++
	}
}

// Len returns the number of samples recorded so far.
func (rec *Recorder) Len() int {
	return len(rec.samples)
}

// Close implements the Buzzer interface.
func (rec *Recorder) Close() error {
	f, err := os.Create(rec.filename)
	if err != nil {
		return fmt.Errorf("recorder: %w", err)
	}
	defer f.Close()

	enc := wav.NewEncoder(f, recordRate, recordDepth, 1, pcmFormat)
	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: 1, SampleRate: recordRate},
		Data:           rec.samples,
		SourceBitDepth: recordDepth,
	}
	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("recorder: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("recorder: %w", err)
	}
	return nil
}
