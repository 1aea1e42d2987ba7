package engine

import (
	"testing"

	"cgle/internal/core"
)

func TestBrushCoordinateRange(t *testing.T) {
	size := core.Size{W: 256, H: 128}
	for rx := 0.0; rx <= float64(2*size.W); rx += 17 {
		for ry := 0.0; ry <= float64(2*size.H); ry += 13 {
			bx, by := BrushCoordinate(size, rx, ry)
			if bx < 0 || bx > 1 || by < 0 || by > 1 {
				t.Fatalf("BrushCoordinate(%v,%v) = (%v,%v) outside unit square", rx, ry, bx, by)
			}
		}
	}
	bx, by := BrushCoordinate(size, 0, 0)
	if bx != 0 || by != 1 {
		t.Fatalf("top-left maps to (%v,%v), want (0,1)", bx, by)
	}
	bx, by = BrushCoordinate(size, 512, 256)
	if bx != 1 || by != 0 {
		t.Fatalf("bottom-right maps to (%v,%v), want (1,0)", bx, by)
	}
}

func TestPointerStateMachine(t *testing.T) {
	size := core.Size{W: 100, H: 100}
	ctl := NewController(core.Coefficients{})
	p := NewPointer(size, ctl)

	p.Handle(core.PointerEvent{Kind: core.PointerMove, X: 20, Y: 40})
	if ctl.BrushActive() {
		t.Fatal("move while up must not activate the brush")
	}
	if x, y := p.Last(); x != 20 || y != 40 {
		t.Fatalf("last position = (%v,%v), want (20,40)", x, y)
	}

	p.Handle(core.PointerEvent{Kind: core.PointerPress, X: 50, Y: 100})
	if !p.Down() {
		t.Fatal("press must set Down")
	}
	if b := ctl.Brush(); b.X != 0.25 || b.Y != 0.5 {
		t.Fatalf("press brush = %+v, want {0.25 0.5}", b)
	}
	if x, y := p.Anchor(); x != 50 || y != 100 {
		t.Fatalf("anchor = (%v,%v), want (50,100)", x, y)
	}

	p.Handle(core.PointerEvent{Kind: core.PointerMove, X: 100, Y: 0})
	if b := ctl.Brush(); b.X != 0.5 || b.Y != 1 {
		t.Fatalf("drag brush = %+v, want {0.5 1}", b)
	}

	p.Handle(core.PointerEvent{Kind: core.PointerRelease, X: 180, Y: 10})
	if p.Down() {
		t.Fatal("release must clear Down")
	}
	if b := ctl.Brush(); b != core.InactiveBrush {
		t.Fatalf("release brush = %+v, want inactive sentinel", b)
	}

	p.Handle(core.PointerEvent{Kind: core.PointerMove, X: 10, Y: 10})
	if ctl.BrushActive() {
		t.Fatal("move after release must not reactivate the brush")
	}
}

func TestInputQueueFIFOAndOverflow(t *testing.T) {
	q := NewInputQueue(3)
	for i := 0; i < 5; i++ {
		q.Push(core.PointerEvent{Kind: core.PointerMove, X: float64(i)})
	}
	if q.Len() != 3 {
		t.Fatalf("Len = %d, want 3", q.Len())
	}
	if q.Dropped() != 2 {
		t.Fatalf("Dropped = %d, want 2", q.Dropped())
	}
	got := q.Drain(nil)
	want := []float64{2, 3, 4}
	if len(got) != len(want) {
		t.Fatalf("drained %d events, want %d", len(got), len(want))
	}
	for i, ev := range got {
		if ev.X != want[i] {
			t.Fatalf("event %d X = %v, want %v", i, ev.X, want[i])
		}
	}
	if q.Len() != 0 {
		t.Fatal("queue must be empty after Drain")
	}
	q.Push(core.PointerEvent{X: 9})
	if got := q.Drain(nil); len(got) != 1 || got[0].X != 9 {
		t.Fatalf("queue unusable after drain: %+v", got)
	}
}
