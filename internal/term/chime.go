//go:build sound

package term

import (
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const (
	chimeRate   = beep.SampleRate(44100)
	chimeLength = 60 * time.Millisecond
)

// Chime plays short sine tones as audible feedback for input.
type Chime struct {
	sr beep.SampleRate
}

// NewChime opens the default audio device.
func NewChime() (*Chime, error) {
	if err := speaker.Init(chimeRate, chimeRate.N(time.Second/10)); err != nil {
		return nil, err
	}
	return &Chime{sr: chimeRate}, nil
}

// Play emits a tone at freq Hz. A nil Chime is silent.
func (c *Chime) Play(freq float64) {
	if c == nil {
		return
	}
	tone, err := generators.SineTone(c.sr, freq)
	if err != nil {
		return
	}
	speaker.Play(beep.Take(c.sr.N(chimeLength), tone))
}
