//go:build ebiten

package render

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// FieldPainter uploads rendered frames into an ebiten image and draws them
// scaled onto the screen.
type FieldPainter struct {
	w, h int
	img  *ebiten.Image
}

// NewFieldPainter allocates a painter for a grid of size w*h.
func NewFieldPainter(w, h int) *FieldPainter {
	return &FieldPainter{w: w, h: h, img: ebiten.NewImage(w, h)}
}

// Upload copies the frame pixels into the GPU image. Frames of the wrong
// size are ignored.
func (fp *FieldPainter) Upload(fr *Frame) {
	if fr == nil || len(fr.Pixels()) != 4*fp.w*fp.h {
		return
	}
	fp.img.WritePixels(fr.Pixels())
}

// Draw paints the last uploaded frame at the given integer scale.
func (fp *FieldPainter) Draw(dst *ebiten.Image, scale int) {
	if scale <= 0 {
		scale = 1
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(scale), float64(scale))
	dst.DrawImage(fp.img, op)
}

// Size returns the dimensions of the underlying image.
func (fp *FieldPainter) Size() (int, int) { return fp.w, fp.h }
