package core

// Channels is the number of float32 values stored per cell. Only the first
// two (real, imaginary) carry state; the rest pad to the 4-channel layout
// float textures and OpenCL float4 buffers expect.
const Channels = 4

// Field stores a complex amplitude per cell in row-major order. Row 0 is the
// top row of the displayed image.
type Field struct {
	W, H int
	data []float32
}

// NewField allocates a zeroed field with the given dimensions.
func NewField(w, h int) *Field {
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	return &Field{W: w, H: h, data: make([]float32, Channels*w*h)}
}

// Size returns the field dimensions.
func (f *Field) Size() Size { return Size{W: f.W, H: f.H} }

// Data exposes the backing slice so devices can upload or fill it directly.
func (f *Field) Data() []float32 { return f.data }

// Index returns the offset of the first channel of cell (x, y).
func (f *Field) Index(x, y int) int { return Channels * (y*f.W + x) }

// At returns the complex amplitude at (x, y).
func (f *Field) At(x, y int) (re, im float32) {
	i := f.Index(x, y)
	return f.data[i], f.data[i+1]
}

// Set stores a complex amplitude at (x, y).
func (f *Field) Set(x, y int, re, im float32) {
	i := f.Index(x, y)
	f.data[i] = re
	f.data[i+1] = im
}

// Wrap applies periodic wrapping to the provided coordinates.
func (f *Field) Wrap(x, y int) (int, int) {
	x = (x%f.W + f.W) % f.W
	y = (y%f.H + f.H) % f.H
	return x, y
}

// CopyFrom copies src into f. Both fields must have the same size.
func (f *Field) CopyFrom(src *Field) {
	copy(f.data, src.data)
}
