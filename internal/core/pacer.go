package core

import (
	"context"
	"time"
)

// Pacer spaces headless frames to a fixed refresh rate so a probe run sees
// the same cadence as a display.
type Pacer struct {
	step time.Duration
	next time.Time
	now  func() time.Time
}

// NewPacer targets the given frames per second. Non-positive rates fall
// back to 60.
func NewPacer(fps int) *Pacer {
	p := &Pacer{now: time.Now}
	p.SetRate(fps)
	return p
}

// SetRate changes the target rate.
func (p *Pacer) SetRate(fps int) {
	if fps <= 0 {
		fps = 60
	}
	p.step = time.Second / time.Duration(fps)
}

// Step returns the interval between frames.
func (p *Pacer) Step() time.Duration { return p.step }

// Wait blocks until the next frame is due or ctx is done. A caller that
// falls behind by more than one frame is resynchronized instead of bursting.
func (p *Pacer) Wait(ctx context.Context) error {
	now := p.now()
	if p.next.IsZero() || now.Sub(p.next) > p.step {
		p.next = now
	}
	delay := p.next.Sub(now)
	p.next = p.next.Add(p.step)
	if delay <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(delay)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
