package ui

import (
	"image"
	"math"
	"strconv"

	"cgle/internal/core"
)

// ParamSource is what the HUD needs from the parameter controller.
type ParamSource interface {
	core.ParameterProvider
	core.ParameterControlsProvider
	core.FloatParameterSetter
}

const (
	panelPadding   = 12
	lineHeight     = 36
	buttonSize     = 24
	buttonGap      = 6
	headerBaseline = 18
	labelBaseline  = 24
	infoSpacing    = 18
	controlsTop    = panelPadding + headerBaseline + 14

	defaultStep = 0.05
)

type controlState struct {
	control core.ParameterControl
	value   string

	floatValue float64
	hasValue   bool

	top       int
	minusRect image.Rectangle
	plusRect  image.Rectangle
}

// Controls holds the +/- button state for every adjustable parameter. It
// carries no rendering so it can be driven without a window.
type Controls struct {
	src    ParamSource
	width  int
	states []controlState
}

// NewControls lays out one row per control exposed by src inside a panel of
// the given width.
func NewControls(src ParamSource, width int) *Controls {
	c := &Controls{src: src, width: width}
	if src == nil {
		return c
	}
	ctrls := src.ParameterControls()
	c.states = make([]controlState, len(ctrls))
	for i, ctrl := range ctrls {
		c.states[i] = controlState{control: ctrl, value: "--"}
	}
	c.layout()
	return c
}

// Len returns the number of controls.
func (c *Controls) Len() int { return len(c.states) }

// Value returns the formatted value shown for control i.
func (c *Controls) Value(i int) string { return c.states[i].value }

// Bottom returns the y coordinate below the last control row.
func (c *Controls) Bottom() int { return controlsTop + len(c.states)*lineHeight }

// Refresh pulls the current values from the source.
func (c *Controls) Refresh() core.ParameterSnapshot {
	if c.src == nil {
		return core.ParameterSnapshot{}
	}
	snap := c.src.Parameters()
	for i := range c.states {
		st := &c.states[i]
		param, ok := snap.Lookup(st.control.Key)
		if !ok || param.Type != core.ParamTypeFloat {
			st.hasValue = false
			st.value = "--"
			continue
		}
		v, err := strconv.ParseFloat(param.Value, 64)
		if err != nil {
			st.hasValue = false
			st.value = "--"
			continue
		}
		st.floatValue = v
		st.value = formatFloat(st.control, v)
		st.hasValue = true
	}
	return snap
}

// Click handles a press at panel-local coordinates. It reports whether a
// button was hit.
func (c *Controls) Click(px, py int) bool {
	for i := range c.states {
		st := &c.states[i]
		if !st.hasValue {
			continue
		}
		if pointInRect(px, py, st.minusRect) {
			c.adjust(st, -1)
			return true
		}
		if pointInRect(px, py, st.plusRect) {
			c.adjust(st, 1)
			return true
		}
	}
	return false
}

func (c *Controls) adjust(st *controlState, direction int) {
	target, ok := st.target(direction)
	if !ok || math.Abs(target-st.floatValue) < 1e-9 {
		return
	}
	if c.src.SetFloatParameter(st.control.Key, target) {
		st.floatValue = target
		st.value = formatFloat(st.control, target)
	}
}

// target clamps one step in the given direction. ok is false when the
// current value already sits on the bound in that direction.
func (st *controlState) target(direction int) (float64, bool) {
	step := st.control.Step
	if step <= 0 {
		step = defaultStep
	}
	t := st.floatValue + float64(direction)*step
	if st.control.HasMin && t < st.control.Min {
		if direction < 0 && st.floatValue <= st.control.Min {
			return st.floatValue, false
		}
		t = st.control.Min
	}
	if st.control.HasMax && t > st.control.Max {
		if direction > 0 && st.floatValue >= st.control.Max {
			return st.floatValue, false
		}
		t = st.control.Max
	}
	return t, true
}

func (c *Controls) layout() {
	if c.width <= 0 {
		return
	}
	for i := range c.states {
		top := controlsTop + i*lineHeight
		buttonY := top + (lineHeight-buttonSize)/2
		plus := image.Rect(c.width-panelPadding-buttonSize, buttonY, c.width-panelPadding, buttonY+buttonSize)
		minus := image.Rect(plus.Min.X-buttonGap-buttonSize, buttonY, plus.Min.X-buttonGap, buttonY+buttonSize)
		c.states[i].top = top
		c.states[i].minusRect = minus
		c.states[i].plusRect = plus
	}
}

func formatFloat(ctrl core.ParameterControl, value float64) string {
	step := ctrl.Step
	if step <= 0 {
		step = defaultStep
	}
	precision := 1
	switch {
	case step < 0.001:
		precision = 4
	case step < 0.01:
		precision = 3
	case step < 0.1:
		precision = 2
	}
	return strconv.FormatFloat(value, 'f', precision, 64)
}

func pointInRect(x, y int, rect image.Rectangle) bool {
	return image.Pt(x, y).In(rect)
}
