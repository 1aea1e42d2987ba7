package cpu

import (
	"math"
	"testing"

	"cgle/internal/core"
)

func uniformField(w, h int, re, im float32) *core.Field {
	f := core.NewField(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			f.Set(x, y, re, im)
		}
	}
	return f
}

func step(t *testing.T, d *Device, init *core.Field, coeff core.Coefficients, brush core.Brush) *core.Field {
	t.Helper()
	size := init.Size()
	src, err := d.Alloc(size, init)
	if err != nil {
		t.Fatalf("Alloc: %v", err)
	}
	dst, err := d.Alloc(size, nil)
	if err != nil {
		t.Fatalf("Alloc: %v", err)
	}
	if err := d.Step(dst, src, coeff, brush); err != nil {
		t.Fatalf("Step: %v", err)
	}
	out := core.NewField(size.W, size.H)
	if err := d.Read(out, dst); err != nil {
		t.Fatalf("Read: %v", err)
	}
	return out
}

func TestUniformStateIsFixedPointWithoutNonlinearShift(t *testing.T) {
	d := New(DefaultOptions())
	out := step(t, d, uniformField(16, 8, 1, 0), core.Coefficients{B: 1.3, C: 0}, core.InactiveBrush)
	for y := 0; y < 8; y++ {
		for x := 0; x < 16; x++ {
			re, im := out.At(x, y)
			if math.Abs(float64(re-1)) > 1e-6 || math.Abs(float64(im)) > 1e-6 {
				t.Fatalf("cell (%d,%d) = (%v,%v), want (1,0)", x, y, re, im)
			}
		}
	}
}

func TestUniformStateRotatesWithNonlinearShift(t *testing.T) {
	opts := DefaultOptions()
	d := New(opts)
	c := float32(0.5)
	out := step(t, d, uniformField(4, 4, 1, 0), core.Coefficients{C: c}, core.InactiveBrush)
	re, im := out.At(1, 2)
	// dA/dt = A - (1+ic)A = -ic for A = 1.
	if math.Abs(float64(re-1)) > 1e-6 || math.Abs(float64(im+opts.Dt*c)) > 1e-6 {
		t.Fatalf("cell = (%v,%v), want (1,%v)", re, im, -opts.Dt*c)
	}
}

func TestBrushZeroesDisc(t *testing.T) {
	d := New(DefaultOptions())
	out := step(t, d, uniformField(64, 64, 1, 0), core.Coefficients{}, core.Brush{X: 0.5, Y: 0.5})
	if re, im := out.At(32, 32); re != 0 || im != 0 {
		t.Fatalf("cell under brush = (%v,%v), want 0", re, im)
	}
	if re, _ := out.At(2, 2); re == 0 {
		t.Fatal("cell far from brush was cleared")
	}
}

func TestWorkerCountDoesNotChangeResult(t *testing.T) {
	init := core.NewField(17, 13)
	rng := core.NewRNG(5)
	for y := 0; y < 13; y++ {
		for x := 0; x < 17; x++ {
			init.Set(x, y, rng.Symmetric(), rng.Symmetric())
		}
	}
	coeff := core.Coefficients{B: 0.7, C: -1.1}
	opts := DefaultOptions()
	opts.Workers = 1
	serial := step(t, New(opts), init, coeff, core.InactiveBrush)
	opts.Workers = 6
	parallel := step(t, New(opts), init, coeff, core.InactiveBrush)
	for i, v := range serial.Data() {
		if parallel.Data()[i] != v {
			t.Fatalf("value %d differs: serial %v parallel %v", i, v, parallel.Data()[i])
		}
	}
}

func TestStepRejectsInPlace(t *testing.T) {
	d := New(DefaultOptions())
	buf, err := d.Alloc(core.Size{W: 4, H: 4}, nil)
	if err != nil {
		t.Fatalf("Alloc: %v", err)
	}
	if err := d.Step(buf, buf, core.Coefficients{}, core.InactiveBrush); err == nil {
		t.Fatal("expected error for in-place step")
	}
}

func TestRegistered(t *testing.T) {
	f, ok := core.Devices()["cpu"]
	if !ok {
		t.Fatal("cpu device not registered")
	}
	dev, err := f()
	if err != nil {
		t.Fatalf("factory: %v", err)
	}
	if dev.Capabilities().MaxGridSize < 512 {
		t.Fatal("cpu device must support 512x512 grids")
	}
}
