package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/guptarohit/asciigraph"
	"github.com/wcharczuk/go-chart/v2"

	"cgle/internal/diag"
)

// history collects per-frame diagnostics for plotting.
type history struct {
	frames  []float64
	mean    []float64
	std     []float64
	defects []float64
}

func (h *history) add(frame uint64, amp diag.Amplitude, defects int) {
	h.frames = append(h.frames, float64(frame))
	h.mean = append(h.mean, amp.Mean)
	h.std = append(h.std, amp.Std)
	h.defects = append(h.defects, float64(defects))
}

func (h *history) len() int { return len(h.frames) }

// plot renders mean |A| as a terminal line chart.
func (h *history) plot() string {
	if h.len() == 0 {
		return ""
	}
	return asciigraph.Plot(h.mean, asciigraph.Height(8), asciigraph.Width(60), asciigraph.Caption("mean |A| per frame"))
}

// writeChart saves the amplitude and defect series as a PNG chart.
func (h *history) writeChart(path string) error {
	if h.len() < 2 {
		return errors.New("chart needs at least two frames")
	}
	graph := chart.Chart{
		Width:  900,
		Height: 360,
		XAxis:  chart.XAxis{Name: "frame"},
		YAxis:  chart.YAxis{Name: "|A|"},
		YAxisSecondary: chart.YAxis{
			Name: "defects",
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    "mean |A|",
				XValues: h.frames,
				YValues: h.mean,
				Style:   chart.Style{StrokeColor: chart.ColorBlue, StrokeWidth: 2},
			},
			chart.ContinuousSeries{
				Name:    "std |A|",
				XValues: h.frames,
				YValues: h.std,
				Style:   chart.Style{StrokeColor: chart.ColorGreen, StrokeWidth: 2},
			},
			chart.ContinuousSeries{
				Name:    "defects",
				YAxis:   chart.YAxisSecondary,
				XValues: h.frames,
				YValues: h.defects,
				Style:   chart.Style{StrokeColor: chart.ColorRed, StrokeWidth: 2},
			},
		},
	}
	if r := flatRange(h.mean, h.std); r != nil {
		graph.YAxis.Range = r
	}
	if r := flatRange(h.defects); r != nil {
		graph.YAxisSecondary.Range = r
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := graph.Render(chart.PNG, f); err != nil {
		f.Close()
		return fmt.Errorf("rendering %s: %w", path, err)
	}
	return f.Close()
}

// flatRange returns a padded range when the series span no values, which
// the chart renderer rejects; otherwise nil.
func flatRange(series ...[]float64) chart.Range {
	first := true
	var lo, hi float64
	for _, values := range series {
		for _, v := range values {
			if first {
				lo, hi, first = v, v, false
				continue
			}
			lo, hi = min(lo, v), max(hi, v)
		}
	}
	if first || hi > lo {
		return nil
	}
	return &chart.ContinuousRange{Min: lo - 1, Max: hi + 1}
}
