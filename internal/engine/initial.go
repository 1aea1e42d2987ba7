package engine

import (
	"math"
	"strings"

	"github.com/ojrac/opensimplex-go"

	"cgle/internal/core"
)

// noiseFeature is the typical feature size of InitNoise, in cells.
const noiseFeature = 24.0

// InitialCondition selects how the first field is seeded.
type InitialCondition int

const (
	InitRandom InitialCondition = iota
	InitPhaseGradient
	InitUniform
	// InitNoise is smooth periodic simplex noise in both channels.
	InitNoise
)

func (c InitialCondition) String() string {
	switch c {
	case InitRandom:
		return "random"
	case InitPhaseGradient:
		return "gradient"
	case InitNoise:
		return "noise"
	default:
		return "uniform"
	}
}

// ParseInitialCondition maps a flag value to a choice. Unknown names fall
// back to InitUniform, the same policy Seed applies to unknown values.
func ParseInitialCondition(name string) InitialCondition {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "random", "rand", "0":
		return InitRandom
	case "gradient", "phase", "phase-gradient", "1":
		return InitPhaseGradient
	case "noise", "simplex", "3":
		return InitNoise
	default:
		return InitUniform
	}
}

// Seed builds the initial field for the given choice. rng is only consulted
// for InitRandom and InitNoise.
func Seed(size core.Size, choice InitialCondition, rng *core.RNG) *core.Field {
	if choice == InitNoise {
		return seedNoise(size, rng)
	}
	f := core.NewField(size.W, size.H)
	w, h := float64(f.W), float64(f.H)
	for y := 0; y < f.H; y++ {
		for x := 0; x < f.W; x++ {
			switch choice {
			case InitRandom:
				re := rng.Symmetric()
				im := rng.Symmetric()
				f.Set(x, y, re, im)
			case InitPhaseGradient:
				re := math.Cos(2 * math.Pi * float64(x) / w)
				im := math.Sin(2 * math.Pi * float64(y) / h)
				f.Set(x, y, float32(re), float32(im))
			default:
				f.Set(x, y, 1, 0)
			}
		}
	}
	return f
}

// seedNoise samples 4D simplex noise on a torus so the field wraps without
// seams. Values are clamped to [-1, 1].
func seedNoise(size core.Size, rng *core.RNG) *core.Field {
	f := core.NewField(size.W, size.H)
	noise := opensimplex.New(int64(rng.Source().Uint64()))
	rx := float64(size.W) / (2 * math.Pi * noiseFeature)
	ry := float64(size.H) / (2 * math.Pi * noiseFeature)
	const imOffset = 97.3
	for y := 0; y < f.H; y++ {
		ay := 2 * math.Pi * float64(y) / float64(f.H)
		nz, nw := ry*math.Cos(ay), ry*math.Sin(ay)
		for x := 0; x < f.W; x++ {
			ax := 2 * math.Pi * float64(x) / float64(f.W)
			nx, ny := rx*math.Cos(ax), rx*math.Sin(ax)
			re := noise.Eval4(nx, ny, nz, nw)
			im := noise.Eval4(nx+imOffset, ny, nz, nw+imOffset)
			f.Set(x, y, float32(clampUnit(re)), float32(clampUnit(im)))
		}
	}
	return f
}

func clampUnit(v float64) float64 {
	return math.Max(-1, math.Min(1, v))
}
