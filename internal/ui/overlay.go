//go:build ebiten

package ui

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"cgle/internal/core"
)

type brushSource interface {
	Brush() core.Brush
}

// Overlay outlines the brush disc on top of the field while the pointer is
// held. Key B toggles it.
type Overlay struct {
	src    brushSource
	size   core.Size
	radius float32
	scale  int
	show   bool
}

// NewOverlay constructs an overlay for a grid of the given size.
func NewOverlay(src brushSource, size core.Size, radius float32, scale int) *Overlay {
	return &Overlay{src: src, size: size, radius: radius, scale: scale, show: true}
}

// Update handles the toggle key.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyB) {
		o.show = !o.show
	}
}

// Draw renders the brush outline onto screen.
func (o *Overlay) Draw(screen *ebiten.Image) {
	if !o.show || o.src == nil {
		return
	}
	cx, cy, rx, ry, ok := BrushEllipse(o.size, o.src.Brush(), o.radius, o.scale)
	if !ok {
		return
	}
	const segments = 48
	col := color.RGBA{R: 255, G: 255, B: 255, A: 200}
	px, py := cx+rx, cy
	for i := 1; i <= segments; i++ {
		a := 2 * math.Pi * float64(i) / segments
		x := cx + rx*float32(math.Cos(a))
		y := cy + ry*float32(math.Sin(a))
		vector.StrokeLine(screen, px, py, x, y, 1, col, true)
		px, py = x, y
	}
}
