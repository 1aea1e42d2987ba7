package diag

import (
	"math"
	"testing"

	"cgle/internal/core"
)

func planeWave(w, h, kx, ky int) *core.Field {
	f := core.NewField(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			phase := 2 * math.Pi * (float64(kx*x)/float64(w) + float64(ky*y)/float64(h))
			f.Set(x, y, float32(math.Cos(phase)), float32(math.Sin(phase)))
		}
	}
	return f
}

func TestAmplitudeStatsUniform(t *testing.T) {
	f := core.NewField(4, 4)
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			f.Set(x, y, 0.6, 0.8)
		}
	}
	s := AmplitudeStats(f)
	if math.Abs(s.Mean-1) > 1e-6 || s.Std > 1e-6 {
		t.Fatalf("stats = %+v, want mean 1 std 0", s)
	}
	if math.Abs(s.Min-1) > 1e-6 || math.Abs(s.Max-1) > 1e-6 {
		t.Fatalf("range = [%v,%v], want [1,1]", s.Min, s.Max)
	}
}

func TestAmplitudeStatsRange(t *testing.T) {
	f := core.NewField(2, 1)
	f.Set(0, 0, 0, 0)
	f.Set(1, 0, 2, 0)
	s := AmplitudeStats(f)
	if s.Min != 0 || s.Max != 2 || s.Mean != 1 {
		t.Fatalf("stats = %+v", s)
	}
}

func TestDominantWavenumberPlaneWave(t *testing.T) {
	cases := []struct{ kx, ky int }{{3, 0}, {0, 2}, {-2, 1}}
	for _, c := range cases {
		got := DominantWavenumber(planeWave(16, 8, c.kx, c.ky))
		if got.KX != c.kx || got.KY != c.ky {
			t.Fatalf("plane wave (%d,%d): got mode (%d,%d)", c.kx, c.ky, got.KX, got.KY)
		}
		if got.Fraction < 0.99 {
			t.Fatalf("plane wave (%d,%d): fraction %v, want ~1", c.kx, c.ky, got.Fraction)
		}
		want := math.Hypot(float64(c.kx)/16, float64(c.ky)/8)
		if math.Abs(got.Cycles-want) > 1e-9 {
			t.Fatalf("cycles = %v, want %v", got.Cycles, want)
		}
	}
}

func TestDominantWavenumberConstant(t *testing.T) {
	if got := DominantWavenumber(planeWave(8, 8, 0, 0)); got != (Wavenumber{}) {
		t.Fatalf("constant field mode = %+v, want zero", got)
	}
}

func TestDefectsVortex(t *testing.T) {
	const n = 9
	f := core.NewField(n, n)
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			// Single vortex centered inside plaquette (4,4).
			dx, dy := float64(x)-4.5, float64(y)-4.5
			phase := math.Atan2(dy, dx)
			f.Set(x, y, float32(math.Cos(phase)), float32(math.Sin(phase)))
		}
	}
	pos, neg := Defects(f)
	if pos < 1 {
		t.Fatalf("expected a positive defect, got pos=%d neg=%d", pos, neg)
	}
	// Total charge on a torus is zero.
	if pos != neg {
		t.Fatalf("net charge %d, want 0", pos-neg)
	}
}

func TestDefectsNoneForPlaneWave(t *testing.T) {
	pos, neg := Defects(planeWave(12, 12, 1, 1))
	if pos != 0 || neg != 0 {
		t.Fatalf("plane wave defects = %d/%d, want 0/0", pos, neg)
	}
}
