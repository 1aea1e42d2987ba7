// Package term runs the field engine inside a terminal using half-block
// characters, with mouse input driving the brush.
package term

import (
	"context"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"

	"cgle/internal/core"
	"cgle/internal/engine"
	"cgle/internal/render"
)

var (
	statusStyle = tcell.StyleDefault.Foreground(tcell.NewRGBColor(220, 220, 230)).Background(tcell.NewRGBColor(26, 27, 38))
	errorStyle  = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorDarkRed)
)

// Host connects a tcell screen to a started driver.
type Host struct {
	screen tcell.Screen
	drv    *engine.Driver
	frame  *render.Frame
	step   time.Duration
	chime  *Chime

	down bool
}

// NewHost returns a host ticking the driver at tps frames per second.
// chime may be nil.
func NewHost(screen tcell.Screen, drv *engine.Driver, frame *render.Frame, tps int, chime *Chime) *Host {
	if tps <= 0 {
		tps = 30
	}
	return &Host{
		screen: screen,
		drv:    drv,
		frame:  frame,
		step:   time.Second / time.Duration(tps),
		chime:  chime,
	}
}

// Run drives the loop until the user quits or ctx is done. Fatal engine
// errors are shown on the status line and the loop keeps waiting for quit.
func (h *Host) Run(ctx context.Context) error {
	h.screen.EnableMouse(tcell.MouseMotionEvents)
	events := make(chan tcell.Event, 100)
	quit := make(chan struct{})
	defer close(quit)
	go func() {
		for {
			ev := h.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-quit:
				return
			}
		}
	}()

	ticker := time.NewTicker(h.step)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-events:
			if !h.Handle(ev) {
				return nil
			}
		case <-ticker.C:
			h.Frame()
		}
	}
}

// Frame advances the driver once and redraws.
func (h *Host) Frame() {
	if h.drv.State() != engine.StateFailed {
		_ = h.drv.Tick()
	}
	h.draw()
}

func (h *Host) draw() {
	_, rows := h.screen.Size()
	status := rows - 1
	if err := h.drv.Err(); err != nil {
		h.screen.Clear()
		drawText(h.screen, 0, 0, "simulation stopped: "+err.Error(), errorStyle)
		drawText(h.screen, 0, status, "q: quit", statusStyle)
		h.screen.Show()
		return
	}
	if h.drv.Frame() > 0 {
		Blit(h.screen, h.frame)
	}
	coeff := h.drv.Controller().Coefficients()
	line := fmt.Sprintf(" %s  frame %d  b=%.2f c=%.2f  [space] pause [p] palette [[/]] b [-/=] c [q] quit ",
		h.drv.State(), h.drv.Frame(), coeff.B, coeff.C)
	drawText(h.screen, 0, status, line, statusStyle)
	h.screen.Show()
}

// Handle applies one terminal event. It returns false when the user quits.
func (h *Host) Handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return h.handleKey(ev)
	case *tcell.EventMouse:
		h.handleMouse(ev)
	case *tcell.EventResize:
		h.screen.Sync()
	}
	return true
}

func (h *Host) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyRune:
	default:
		return true
	}
	ctl := h.drv.Controller()
	coeff := ctl.Coefficients()
	switch ev.Rune() {
	case 'q':
		return false
	case ' ':
		if h.drv.Pause() == engine.StatePaused {
			h.chime.Play(220)
		} else {
			h.chime.Play(330)
		}
	case 'p':
		h.cyclePalette()
	case '[':
		ctl.SetCoefficients(coeff.B-0.1, coeff.C)
	case ']':
		ctl.SetCoefficients(coeff.B+0.1, coeff.C)
	case '-':
		ctl.SetCoefficients(coeff.B, coeff.C-0.1)
	case '=', '+':
		ctl.SetCoefficients(coeff.B, coeff.C+0.1)
	}
	return true
}

func (h *Host) handleMouse(ev *tcell.EventMouse) {
	tx, ty := ev.Position()
	_, rows := h.screen.Size()
	x, y := CellToSurface(tx, ty)
	pressed := ev.Buttons()&tcell.Button1 != 0
	onField := ty < rows-1

	switch {
	case pressed && !h.down && onField:
		h.down = true
		h.drv.Post(core.PointerEvent{Kind: core.PointerPress, X: x, Y: y})
		size := h.drv.Size()
		h.chime.Play(220 + 660*x/float64(2*size.W))
	case !pressed && h.down:
		h.down = false
		h.drv.Post(core.PointerEvent{Kind: core.PointerRelease, X: x, Y: y})
	default:
		h.drv.Post(core.PointerEvent{Kind: core.PointerMove, X: x, Y: y})
	}
}

func (h *Host) cyclePalette() {
	next := render.PalettePhase
	switch h.frame.Palette() {
	case render.PalettePhase:
		next = render.PaletteAmplitude
	case render.PaletteAmplitude:
		next = render.PaletteReal
	}
	h.frame.SetPalette(next)
	if f := h.drv.Field(); f != nil {
		_ = h.frame.Render(f)
	}
}
