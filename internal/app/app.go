//go:build ebiten

package app

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"cgle/internal/core"
	"cgle/internal/engine"
	"cgle/internal/render"
	"cgle/internal/ui"
)

// surfaceScale is the ratio between pointer surface pixels and grid cells
// assumed by the brush mapping.
const surfaceScale = 2

var errorBackground = color.RGBA{R: 64, G: 8, B: 12, A: 255}

// Game adapts a running session to the ebiten.Game interface.
type Game struct {
	session *Session
	driver  *engine.Driver
	painter *render.FieldPainter
	hud     *ui.HUD
	overlay *ui.Overlay

	scale    int
	debug    bool
	uploaded uint64
	down     bool
	lastX    int
	lastY    int
}

// New constructs a Game for a started session.
func New(s *Session, cfg *Config) *Game {
	size := s.Driver.Size()
	scale := cfg.Scale
	if scale <= 0 {
		scale = 1
	}
	return &Game{
		session:  s,
		driver:   s.Driver,
		painter:  render.NewFieldPainter(size.W, size.H),
		hud:      ui.NewHUD(s.Driver.Controller(), cfg.HUDWidth),
		overlay:  ui.NewOverlay(s.Driver.Controller(), size, core.DefaultIntegration().BrushRadius, scale),
		scale:    scale,
		debug:    cfg.Debug,
		uploaded: ^uint64(0),
		lastX:    -1,
		lastY:    -1,
	}
}

// Update handles per-frame input and advances the simulation.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if g.driver.State() == engine.StateFailed {
		return nil
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.driver.Pause()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		g.cyclePalette()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyD) {
		g.debug = !g.debug
	}
	g.overlay.Update()

	fieldW := g.driver.Size().W * g.scale
	onPanel := g.hud.Update(fieldW)
	g.postPointer(fieldW, onPanel)

	if g.debug {
		st := g.driver.Stats()
		g.hud.SetStatus(
			fmt.Sprintf("state: %s", g.driver.State()),
			fmt.Sprintf("frame: %d", st.Frames),
			fmt.Sprintf("substeps: %d", st.Substeps),
			fmt.Sprintf("step time: %s", st.LastFrame),
			fmt.Sprintf("dropped input: %d", st.DroppedInput),
		)
	} else {
		g.hud.SetStatus(fmt.Sprintf("state: %s", g.driver.State()))
	}

	// Tick errors are kept by the driver and shown by Draw.
	_ = g.driver.Tick()
	return nil
}

// postPointer converts mouse state into raw pointer events in surface pixels.
func (g *Game) postPointer(fieldW int, onPanel bool) {
	cx, cy := ebiten.CursorPosition()
	x := float64(cx) * surfaceScale / float64(g.scale)
	y := float64(cy) * surfaceScale / float64(g.scale)

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) && !onPanel && cx < fieldW {
		g.down = true
		g.driver.Post(core.PointerEvent{Kind: core.PointerPress, X: x, Y: y})
	} else if cx != g.lastX || cy != g.lastY {
		g.driver.Post(core.PointerEvent{Kind: core.PointerMove, X: x, Y: y})
	}
	// The engine applies events on its next tick, so its pointer state lags.
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) && g.down {
		g.down = false
		g.driver.Post(core.PointerEvent{Kind: core.PointerRelease, X: x, Y: y})
	}
	g.lastX, g.lastY = cx, cy
}

func (g *Game) cyclePalette() {
	fr := g.session.Frame
	next := render.PalettePhase
	switch fr.Palette() {
	case render.PalettePhase:
		next = render.PaletteAmplitude
	case render.PaletteAmplitude:
		next = render.PaletteReal
	}
	fr.SetPalette(next)
	// Repaint the current field so paused sessions show the change.
	if f := g.driver.Field(); f != nil {
		_ = fr.Render(f)
		g.uploaded = ^uint64(0)
	}
}

// Draw renders the current frame, or the error indicator after a fatal
// error.
func (g *Game) Draw(screen *ebiten.Image) {
	if err := g.driver.Err(); err != nil {
		screen.Fill(errorBackground)
		ebitenutil.DebugPrintAt(screen, "simulation stopped:\n"+err.Error()+"\n\npress Q to quit", 8, 8)
		return
	}
	if n := g.driver.Frame(); n != g.uploaded && n > 0 {
		g.painter.Upload(g.session.Frame)
		g.uploaded = n
	}
	g.painter.Draw(screen, g.scale)
	g.overlay.Draw(screen)
	size := g.driver.Size()
	g.hud.Draw(screen, size.W*g.scale, size.H*g.scale)
	if g.debug {
		ebitenutil.DebugPrint(screen, fmt.Sprintf("TPS %.1f  FPS %.1f", ebiten.ActualTPS(), ebiten.ActualFPS()))
	}
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	s := g.driver.Size()
	return s.W*g.scale + g.hud.Width(), s.H * g.scale
}
