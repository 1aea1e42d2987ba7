package engine

import (
	"math"
	"testing"

	"cgle/internal/core"
)

func TestSeedRandomBounds(t *testing.T) {
	size := core.Size{W: 32, H: 16}
	f := Seed(size, InitRandom, core.NewRNG(3))
	for y := 0; y < size.H; y++ {
		for x := 0; x < size.W; x++ {
			re, im := f.At(x, y)
			if re < -1 || re >= 1 || im < -1 || im >= 1 {
				t.Fatalf("cell (%d,%d) = (%v,%v) outside [-1,1)", x, y, re, im)
			}
		}
	}
}

func TestSeedRandomDeterministic(t *testing.T) {
	size := core.Size{W: 8, H: 8}
	a := Seed(size, InitRandom, core.NewRNG(11))
	b := Seed(size, InitRandom, core.NewRNG(11))
	for i, v := range a.Data() {
		if b.Data()[i] != v {
			t.Fatalf("same seed produced different fields at %d", i)
		}
	}
}

func TestSeedPhaseGradient(t *testing.T) {
	size := core.Size{W: 16, H: 12}
	f := Seed(size, InitPhaseGradient, nil)
	for y := 0; y < size.H; y++ {
		for x := 0; x < size.W; x++ {
			re, im := f.At(x, y)
			wantRe := math.Cos(2 * math.Pi * float64(x) / float64(size.W))
			wantIm := math.Sin(2 * math.Pi * float64(y) / float64(size.H))
			if math.Abs(float64(re)-wantRe) > 1e-6 || math.Abs(float64(im)-wantIm) > 1e-6 {
				t.Fatalf("cell (%d,%d) = (%v,%v), want (%v,%v)", x, y, re, im, wantRe, wantIm)
			}
			if re < -1 || re > 1 || im < -1 || im > 1 {
				t.Fatalf("cell (%d,%d) outside [-1,1]", x, y)
			}
		}
	}
}

func TestSeedUniformAndFallback(t *testing.T) {
	size := core.Size{W: 5, H: 5}
	for _, choice := range []InitialCondition{InitUniform, InitialCondition(99), InitialCondition(-1)} {
		f := Seed(size, choice, nil)
		for y := 0; y < size.H; y++ {
			for x := 0; x < size.W; x++ {
				if re, im := f.At(x, y); re != 1 || im != 0 {
					t.Fatalf("choice %d cell (%d,%d) = (%v,%v), want (1,0)", choice, x, y, re, im)
				}
			}
		}
	}
}

func TestParseInitialCondition(t *testing.T) {
	cases := map[string]InitialCondition{
		"random":   InitRandom,
		"Gradient": InitPhaseGradient,
		"uniform":  InitUniform,
		"bogus":    InitUniform,
		"":         InitUniform,
	}
	for in, want := range cases {
		if got := ParseInitialCondition(in); got != want {
			t.Fatalf("ParseInitialCondition(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestSeedNoise(t *testing.T) {
	size := core.Size{W: 48, H: 32}
	a := Seed(size, InitNoise, core.NewRNG(5))
	b := Seed(size, InitNoise, core.NewRNG(5))
	var spread float32
	for y := 0; y < size.H; y++ {
		for x := 0; x < size.W; x++ {
			re, im := a.At(x, y)
			if re < -1 || re > 1 || im < -1 || im > 1 {
				t.Fatalf("cell (%d,%d) = (%v,%v) outside [-1,1]", x, y, re, im)
			}
			if bre, bim := b.At(x, y); bre != re || bim != im {
				t.Fatalf("same seed produced different noise at (%d,%d)", x, y)
			}
			if re > spread {
				spread = re
			} else if -re > spread {
				spread = -re
			}
		}
	}
	if spread == 0 {
		t.Fatal("noise field is flat")
	}
	if got := ParseInitialCondition("noise"); got != InitNoise {
		t.Fatalf("ParseInitialCondition(noise) = %v", got)
	}
}
