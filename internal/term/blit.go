package term

import (
	"github.com/gdamore/tcell/v2"

	"cgle/internal/core"
	"cgle/internal/render"
)

// upperHalf paints the top grid row with the foreground color and the
// bottom one with the background color, so each terminal cell shows two rows.
const upperHalf = '▀'

// GridSize returns the field size that fills a cols*rows terminal while
// leaving the last row for the status line.
func GridSize(cols, rows int) core.Size {
	if rows > 1 {
		rows--
	}
	return core.Size{W: cols, H: 2 * rows}
}

// CellToSurface converts a terminal cell to pointer surface pixels, which are
// twice the grid resolution. The point lands on the shared edge of the two
// grid rows the cell shows.
func CellToSurface(tx, ty int) (x, y float64) {
	return 2 * (float64(tx) + 0.5), 2 * float64(2*ty+1)
}

// Blit copies the frame onto the screen, two grid rows per terminal row.
// Cells outside the frame are left alone.
func Blit(screen tcell.Screen, fr *render.Frame) {
	img := fr.Image()
	w, h := img.Rect.Dx(), img.Rect.Dy()
	cols, rows := screen.Size()
	for ty := 0; ty < rows && 2*ty < h; ty++ {
		for tx := 0; tx < cols && tx < w; tx++ {
			top := pixelColor(img.Pix, w, tx, 2*ty)
			bottom := tcell.ColorBlack
			if 2*ty+1 < h {
				bottom = pixelColor(img.Pix, w, tx, 2*ty+1)
			}
			style := tcell.StyleDefault.Foreground(top).Background(bottom)
			screen.SetContent(tx, ty, upperHalf, nil, style)
		}
	}
}

func pixelColor(pix []byte, w, x, y int) tcell.Color {
	i := 4 * (y*w + x)
	return tcell.NewRGBColor(int32(pix[i]), int32(pix[i+1]), int32(pix[i+2]))
}

// drawText writes s at (x, y), clipped to the screen width.
func drawText(screen tcell.Screen, x, y int, s string, style tcell.Style) {
	cols, _ := screen.Size()
	for _, r := range s {
		if x >= cols {
			return
		}
		screen.SetContent(x, y, r, nil, style)
		x++
	}
}
