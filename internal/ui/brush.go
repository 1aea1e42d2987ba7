package ui

import "cgle/internal/core"

// BrushEllipse returns the on-screen center and radii of the brush disc.
// The disc is round in normalized field coordinates, so it is an ellipse on
// non-square grids. ok is false when the brush is inactive.
func BrushEllipse(size core.Size, brush core.Brush, radius float32, scale int) (cx, cy, rx, ry float32, ok bool) {
	if !brush.Active() || size.W <= 0 || size.H <= 0 {
		return 0, 0, 0, 0, false
	}
	if scale <= 0 {
		scale = 1
	}
	w := float32(size.W * scale)
	h := float32(size.H * scale)
	return brush.X * w, (1 - brush.Y) * h, radius * w, radius * h, true
}
