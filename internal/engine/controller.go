package engine

import (
	"strconv"

	"cgle/internal/core"
)

// Controller holds the coefficients and brush read by every substep. It is
// the only writer of simulation parameters. Setters accept any value; keeping
// the integration stable is the kernel's job.
//
// Controller is not synchronized: it belongs to the goroutine that drives
// Tick, and pointer input reaches it through the InputQueue.
type Controller struct {
	coeff core.Coefficients
	brush core.Brush
}

// NewController returns a controller with the given coefficients and an
// inactive brush.
func NewController(coeff core.Coefficients) *Controller {
	return &Controller{coeff: coeff, brush: core.InactiveBrush}
}

// SetCoefficients replaces b and c. The next substep sees the new values.
func (c *Controller) SetCoefficients(b, cc float32) {
	c.coeff = core.Coefficients{B: b, C: cc}
}

// Coefficients returns the most recently set coefficients.
func (c *Controller) Coefficients() core.Coefficients { return c.coeff }

// SetBrush activates forcing at the normalized position (x, y).
func (c *Controller) SetBrush(x, y float32) {
	c.brush = core.Brush{X: x, Y: y}
}

// ClearBrush writes the inactive sentinel.
func (c *Controller) ClearBrush() {
	c.brush = core.InactiveBrush
}

// Brush returns the most recently set brush.
func (c *Controller) Brush() core.Brush { return c.brush }

// BrushActive reports whether forcing is applied.
func (c *Controller) BrushActive() bool { return c.brush.Active() }

// Parameters exposes the coefficients and brush to the HUD.
func (c *Controller) Parameters() core.ParameterSnapshot {
	brush := "off"
	if c.brush.Active() {
		brush = strconv.FormatFloat(float64(c.brush.X), 'f', 3, 32) + ", " +
			strconv.FormatFloat(float64(c.brush.Y), 'f', 3, 32)
	}
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{
		{
			Name: "Coefficients",
			Params: []core.Parameter{
				floatParam("b", "b (dispersion)", c.coeff.B),
				floatParam("c", "c (nonlinearity)", c.coeff.C),
			},
		},
		{
			Name: "Brush",
			Params: []core.Parameter{
				{Key: "brush", Label: "Brush", Type: core.ParamTypeText, Value: brush},
			},
		},
	}}
}

// ParameterControls lists the HUD buttons for b and c.
func (c *Controller) ParameterControls() []core.ParameterControl {
	return []core.ParameterControl{
		{Key: "b", Label: "b", Step: 0.1, Min: -5, Max: 5, HasMin: true, HasMax: true},
		{Key: "c", Label: "c", Step: 0.1, Min: -5, Max: 5, HasMin: true, HasMax: true},
	}
}

// SetFloatParameter updates b or c by key.
func (c *Controller) SetFloatParameter(key string, value float64) bool {
	switch key {
	case "b":
		c.SetCoefficients(float32(value), c.coeff.C)
	case "c":
		c.SetCoefficients(c.coeff.B, float32(value))
	default:
		return false
	}
	return true
}

func floatParam(key, label string, v float32) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeFloat,
		Value: strconv.FormatFloat(float64(v), 'f', -1, 32),
	}
}
