package render

import (
	"fmt"
	"image"
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"cgle/internal/core"
)

// Palette selects how a complex amplitude becomes a color.
type Palette int

const (
	// PalettePhase maps arg(A) to hue and |A| to brightness.
	PalettePhase Palette = iota
	// PaletteAmplitude maps |A| to gray.
	PaletteAmplitude
	// PaletteReal maps Re(A) to a blue-white-red ramp.
	PaletteReal
)

func (p Palette) String() string {
	switch p {
	case PaletteAmplitude:
		return "amplitude"
	case PaletteReal:
		return "real"
	default:
		return "phase"
	}
}

// ParsePalette maps a flag value to a palette.
func ParsePalette(name string) (Palette, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "phase":
		return PalettePhase, nil
	case "amplitude", "amp":
		return PaletteAmplitude, nil
	case "real", "re":
		return PaletteReal, nil
	default:
		return PalettePhase, fmt.Errorf("unknown palette %q", name)
	}
}

// Frame is the render stage: it color-maps a settled field into an RGBA
// pixel buffer the host can upload or encode.
type Frame struct {
	palette Palette
	img     *image.RGBA
}

// NewFrame allocates a frame for a grid of size w*h.
func NewFrame(w, h int, palette Palette) *Frame {
	return &Frame{palette: palette, img: image.NewRGBA(image.Rect(0, 0, w, h))}
}

// Palette returns the active palette.
func (fr *Frame) Palette() Palette { return fr.palette }

// SetPalette switches the palette used by the next Render.
func (fr *Frame) SetPalette(p Palette) { fr.palette = p }

// Pixels exposes the RGBA bytes, row-major from the top-left corner.
func (fr *Frame) Pixels() []byte { return fr.img.Pix }

// Image exposes the frame as an image.RGBA sharing the pixel buffer.
func (fr *Frame) Image() *image.RGBA { return fr.img }

// Render fills the pixel buffer from f. It only reads f.
func (fr *Frame) Render(f *core.Field) error {
	b := fr.img.Bounds()
	if b.Dx() != f.W || b.Dy() != f.H {
		return fmt.Errorf("render: frame is %dx%d, field is %dx%d", b.Dx(), b.Dy(), f.W, f.H)
	}
	data := f.Data()
	pix := fr.img.Pix
	for i := 0; i < f.W*f.H; i++ {
		re, im := data[i*core.Channels], data[i*core.Channels+1]
		r, g, bl := colorFor(fr.palette, float64(re), float64(im))
		base := i * 4
		pix[base+0] = r
		pix[base+1] = g
		pix[base+2] = bl
		pix[base+3] = 255
	}
	return nil
}

func colorFor(p Palette, re, im float64) (uint8, uint8, uint8) {
	switch p {
	case PaletteAmplitude:
		v := toByte(clamp01(math.Hypot(re, im)))
		return v, v, v
	case PaletteReal:
		return diverging(re)
	default:
		hue := (math.Atan2(im, re) + math.Pi) / (2 * math.Pi)
		return hsv(hue, 1, clamp01(math.Hypot(re, im)))
	}
}

var (
	coldColor    = colorful.Color{R: 0, G: 0, B: 1}
	neutralColor = colorful.Color{R: 1, G: 1, B: 1}
	hotColor     = colorful.Color{R: 1, G: 0, B: 0}
)

// hsv converts hue in [0,1], saturation and value to 8-bit RGB.
func hsv(h, s, v float64) (uint8, uint8, uint8) {
	deg := math.Mod(h*360, 360)
	if deg < 0 {
		deg += 360
	}
	return colorful.Hsv(deg, s, v).Clamped().RGB255()
}

// diverging maps [-1,1] to blue through white to red.
func diverging(v float64) (uint8, uint8, uint8) {
	v = math.Max(-1, math.Min(1, v))
	if v >= 0 {
		return neutralColor.BlendRgb(hotColor, v).Clamped().RGB255()
	}
	return neutralColor.BlendRgb(coldColor, -v).Clamped().RGB255()
}

func clamp01(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func toByte(v float64) uint8 {
	return uint8(math.Round(clamp01(v) * 255))
}
