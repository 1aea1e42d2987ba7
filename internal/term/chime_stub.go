//go:build !sound

package term

import "errors"

// Chime is silent unless built with the sound tag.
type Chime struct{}

// NewChime reports that audio support was not compiled in.
func NewChime() (*Chime, error) {
	return nil, errors.New("audio support is not enabled; rebuild with -tags sound")
}

// Play does nothing.
func (c *Chime) Play(float64) {}
