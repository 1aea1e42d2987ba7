//go:build ebiten

package ui

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"

	"cgle/internal/core"
)

var (
	panelColor = color.RGBA{R: 16, G: 16, B: 20, A: 255}
	titleColor = color.RGBA{R: 200, G: 200, B: 210, A: 255}
	labelColor = color.RGBA{R: 220, G: 220, B: 230, A: 255}
	dimColor   = color.RGBA{R: 160, G: 160, B: 170, A: 255}
)

// HUD renders the parameter panel to the right of the field view.
type HUD struct {
	controls   *Controls
	width      int
	panel      *ebiten.Image
	lastHeight int
	snapshot   core.ParameterSnapshot
	status     []string

	panelOffsetX int
	pixel        *ebiten.Image
}

// NewHUD constructs a HUD for src with the given panel width.
func NewHUD(src ParamSource, width int) *HUD {
	if width < 0 {
		width = 0
	}
	h := &HUD{width: width, controls: NewControls(src, width)}
	if width > 0 {
		h.pixel = ebiten.NewImage(1, 1)
		h.pixel.Fill(color.White)
	}
	return h
}

// Width returns the panel width.
func (h *HUD) Width() int {
	if h == nil {
		return 0
	}
	return h.width
}

// SetStatus replaces the informational lines drawn under the controls.
func (h *HUD) SetStatus(lines ...string) {
	if h == nil {
		return
	}
	h.status = append(h.status[:0], lines...)
}

// Update refreshes values and handles clicks. It reports whether the mouse
// press landed on the panel.
func (h *HUD) Update(panelOffsetX int) bool {
	if h == nil {
		return false
	}
	h.panelOffsetX = panelOffsetX
	h.snapshot = h.controls.Refresh()
	if !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return false
	}
	mx, my := ebiten.CursorPosition()
	if mx < h.panelOffsetX {
		return false
	}
	h.controls.Click(mx-h.panelOffsetX, my)
	return true
}

// Draw paints the panel at offsetX with the given height.
func (h *HUD) Draw(screen *ebiten.Image, offsetX, height int) {
	if h == nil || h.width <= 0 || height <= 0 {
		return
	}
	if h.panel == nil || h.lastHeight != height {
		h.panel = ebiten.NewImage(h.width, height)
		h.lastHeight = height
	}
	h.panel.Fill(panelColor)
	h.drawControls()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(offsetX), 0)
	screen.DrawImage(h.panel, op)
}

func (h *HUD) drawControls() {
	face := basicfont.Face7x13
	headerY := panelPadding + headerBaseline
	text.Draw(h.panel, "CGLE Controls", face, panelPadding, headerY, titleColor)

	for i := range h.controls.states {
		st := &h.controls.states[i]
		labelY := st.top + labelBaseline
		text.Draw(h.panel, st.control.Label, face, panelPadding, labelY, labelColor)
		valueColor := labelColor
		if !st.hasValue {
			valueColor = dimColor
		}
		bounds := text.BoundString(face, st.value)
		valueX := st.minusRect.Min.X - buttonGap - bounds.Dx()
		text.Draw(h.panel, st.value, face, valueX, labelY, valueColor)

		_, minusOK := st.target(-1)
		_, plusOK := st.target(1)
		h.drawButton(st.minusRect, "-", st.hasValue && minusOK)
		h.drawButton(st.plusRect, "+", st.hasValue && plusOK)
	}

	y := h.controls.Bottom() + infoSpacing
	if p, ok := h.snapshot.Lookup("brush"); ok {
		text.Draw(h.panel, p.Label+": "+p.Value, face, panelPadding, y, dimColor)
		y += infoSpacing
	}
	for _, line := range h.status {
		text.Draw(h.panel, line, face, panelPadding, y, dimColor)
		y += infoSpacing
	}
}

func (h *HUD) drawButton(rect image.Rectangle, label string, enabled bool) {
	if h.pixel == nil {
		return
	}
	bg := color.RGBA{R: 54, G: 56, B: 64, A: 255}
	fg := color.RGBA{R: 230, G: 230, B: 240, A: 255}
	if !enabled {
		bg = color.RGBA{R: 32, G: 34, B: 40, A: 255}
		fg = color.RGBA{R: 120, G: 120, B: 130, A: 255}
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(rect.Dx()), float64(rect.Dy()))
	op.GeoM.Translate(float64(rect.Min.X), float64(rect.Min.Y))
	op.ColorScale.ScaleWithColor(bg)
	h.panel.DrawImage(h.pixel, op)

	face := basicfont.Face7x13
	bounds := text.BoundString(face, label)
	x := rect.Min.X + (rect.Dx()-bounds.Dx())/2
	y := rect.Min.Y + (rect.Dy()-bounds.Dy())/2 + bounds.Dy()
	text.Draw(h.panel, label, face, x, y, fg)
}
