package core

import "testing"

func TestFieldSetAt(t *testing.T) {
	f := NewField(4, 3)
	f.Set(3, 2, 0.5, -0.25)
	re, im := f.At(3, 2)
	if re != 0.5 || im != -0.25 {
		t.Fatalf("At(3,2) = (%v,%v), want (0.5,-0.25)", re, im)
	}
	if got := len(f.Data()); got != Channels*4*3 {
		t.Fatalf("data length = %d, want %d", got, Channels*4*3)
	}
	// Reserved channels stay untouched by Set.
	i := f.Index(3, 2)
	if f.Data()[i+2] != 0 || f.Data()[i+3] != 0 {
		t.Fatal("Set must not write reserved channels")
	}
}

func TestFieldWrap(t *testing.T) {
	f := NewField(5, 7)
	cases := []struct{ x, y, wx, wy int }{
		{0, 0, 0, 0},
		{-1, -1, 4, 6},
		{5, 7, 0, 0},
		{12, -8, 2, 6},
	}
	for _, c := range cases {
		x, y := f.Wrap(c.x, c.y)
		if x != c.wx || y != c.wy {
			t.Fatalf("Wrap(%d,%d) = (%d,%d), want (%d,%d)", c.x, c.y, x, y, c.wx, c.wy)
		}
	}
}

func TestBrushActive(t *testing.T) {
	if InactiveBrush.Active() {
		t.Fatal("inactive sentinel reported active")
	}
	if !(Brush{X: 0, Y: 0}).Active() {
		t.Fatal("origin brush must be active")
	}
	// Only both components negative means inactive.
	if !(Brush{X: -1, Y: 0.5}).Active() {
		t.Fatal("brush with one negative component must stay active")
	}
}

func TestRNGSymmetricBounds(t *testing.T) {
	r := NewRNG(7)
	for i := 0; i < 10000; i++ {
		v := r.Symmetric()
		if v < -1 || v >= 1 {
			t.Fatalf("Symmetric() = %v outside [-1,1)", v)
		}
	}
}
