// Package diag summarizes a field for headless runs: amplitude statistics,
// the dominant spatial wavenumber and the number of phase defects.
package diag

import (
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"cgle/internal/core"
)

// Amplitude holds statistics of |A| over the grid.
type Amplitude struct {
	Mean, Std float64
	Min, Max  float64
}

// Amplitudes returns |A| for every cell in row-major order.
func Amplitudes(f *core.Field) []float64 {
	out := make([]float64, f.W*f.H)
	data := f.Data()
	for i := range out {
		re, im := data[i*core.Channels], data[i*core.Channels+1]
		out[i] = math.Hypot(float64(re), float64(im))
	}
	return out
}

// AmplitudeStats computes the mean, standard deviation and range of |A|.
func AmplitudeStats(f *core.Field) Amplitude {
	amp := Amplitudes(f)
	if len(amp) == 0 {
		return Amplitude{}
	}
	mean, std := stat.MeanStdDev(amp, nil)
	if len(amp) == 1 {
		std = 0
	}
	return Amplitude{Mean: mean, Std: std, Min: floats.Min(amp), Max: floats.Max(amp)}
}

// Wavenumber is the strongest non-constant Fourier mode of A.
type Wavenumber struct {
	// KX, KY are signed mode indices along x and y.
	KX, KY int
	// Cycles is the spatial frequency in cycles per cell.
	Cycles float64
	// Fraction is the mode's share of the non-constant spectral power.
	Fraction float64
}

// DominantWavenumber transforms the complex field and returns its strongest
// mode, ignoring the k = 0 component. A constant field yields the zero value.
func DominantWavenumber(f *core.Field) Wavenumber {
	if f.W == 0 || f.H == 0 {
		return Wavenumber{}
	}
	grid := make([][]complex128, f.H)
	for y := range grid {
		row := make([]complex128, f.W)
		for x := range row {
			re, im := f.At(x, y)
			row[x] = complex(float64(re), float64(im))
		}
		grid[y] = row
	}
	spectrum := fft.FFT2(grid)

	var best Wavenumber
	var bestPower, total float64
	for y, row := range spectrum {
		for x, v := range row {
			if x == 0 && y == 0 {
				continue
			}
			p := cmplx.Abs(v)
			p *= p
			total += p
			if p > bestPower {
				bestPower = p
				best.KX = signedMode(x, f.W)
				best.KY = signedMode(y, f.H)
			}
		}
	}
	// Rounding noise on a constant field is not a mode.
	dc := cmplx.Abs(spectrum[0][0])
	if total <= 1e-12*(dc*dc+total) {
		return Wavenumber{}
	}
	best.Cycles = math.Hypot(float64(best.KX)/float64(f.W), float64(best.KY)/float64(f.H))
	best.Fraction = bestPower / total
	return best
}

func signedMode(i, n int) int {
	if i > n/2 {
		return i - n
	}
	return i
}

// Defects counts phase singularities by their winding around each
// plaquette of the periodic grid.
func Defects(f *core.Field) (positive, negative int) {
	for y := 0; y < f.H; y++ {
		for x := 0; x < f.W; x++ {
			a := phaseAt(f, x, y)
			b := phaseAt(f, x+1, y)
			c := phaseAt(f, x+1, y+1)
			d := phaseAt(f, x, y+1)
			w := wrapAngle(b-a) + wrapAngle(c-b) + wrapAngle(d-c) + wrapAngle(a-d)
			switch n := math.Round(w / (2 * math.Pi)); {
			case n > 0:
				positive++
			case n < 0:
				negative++
			}
		}
	}
	return positive, negative
}

func phaseAt(f *core.Field, x, y int) float64 {
	x, y = f.Wrap(x, y)
	re, im := f.At(x, y)
	return math.Atan2(float64(im), float64(re))
}

func wrapAngle(a float64) float64 {
	for a > math.Pi {
		a -= 2 * math.Pi
	}
	for a <= -math.Pi {
		a += 2 * math.Pi
	}
	return a
}
