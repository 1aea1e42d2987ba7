package engine

import (
	"errors"
	"testing"

	"cgle/internal/core"
)

func newTestScheduler(t *testing.T, dev *fakeDevice, substeps int) (*Scheduler, *Store, *Controller) {
	t.Helper()
	size := core.Size{W: 4, H: 4}
	store, err := NewStore(dev, size, Seed(size, InitUniform, nil))
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	ctl := NewController(core.Coefficients{})
	return NewScheduler(dev, store, ctl, substeps), store, ctl
}

func TestSchedulerPingPong(t *testing.T) {
	dev := newFakeDevice()
	sched, store, _ := newTestScheduler(t, dev, 7)
	first := bufferID(store.Current())

	if err := sched.RunFrame(0); err != nil {
		t.Fatalf("RunFrame: %v", err)
	}
	if len(dev.calls) != 7 {
		t.Fatalf("kernel calls = %d, want 7", len(dev.calls))
	}
	for i, c := range dev.calls {
		if c.dst == c.src {
			t.Fatalf("pass %d read and wrote the same buffer", i)
		}
		if i > 0 && c.src != dev.calls[i-1].dst {
			t.Fatalf("pass %d read buffer %d, want buffer %d written by pass %d", i, c.src, dev.calls[i-1].dst, i-1)
		}
	}
	if dev.calls[0].src != first {
		t.Fatalf("first pass read buffer %d, want seeded buffer %d", dev.calls[0].src, first)
	}
	// Odd pass count leaves the other buffer current.
	if bufferID(store.Current()) == first {
		t.Fatal("current buffer must be the last written one")
	}
	if sched.Executed() != 7 {
		t.Fatalf("Executed = %d, want 7", sched.Executed())
	}
}

func TestSchedulerReadsParametersEverySubstep(t *testing.T) {
	dev := newFakeDevice()
	sched, _, ctl := newTestScheduler(t, dev, 4)
	ctl.SetCoefficients(0.5, -0.2)
	sched.OnSubstep = func(_ uint64, i int) {
		if i == 1 {
			ctl.SetCoefficients(1.5, 0.75)
			ctl.SetBrush(0.3, 0.6)
		}
	}
	if err := sched.RunFrame(0); err != nil {
		t.Fatalf("RunFrame: %v", err)
	}
	want := []core.Coefficients{{B: 0.5, C: -0.2}, {B: 0.5, C: -0.2}, {B: 1.5, C: 0.75}, {B: 1.5, C: 0.75}}
	for i, c := range dev.calls {
		if c.coeff != want[i] {
			t.Fatalf("pass %d coefficients = %+v, want %+v", i, c.coeff, want[i])
		}
	}
	if dev.calls[1].brush.Active() {
		t.Fatal("brush set after pass 1 leaked into pass 1")
	}
	if b := dev.calls[2].brush; b.X != 0.3 || b.Y != 0.6 {
		t.Fatalf("pass 2 brush = %+v, want {0.3 0.6}", b)
	}
}

func TestSchedulerAbortsOnKernelFailure(t *testing.T) {
	dev := newFakeDevice()
	dev.failAt = 3
	sched, store, _ := newTestScheduler(t, dev, 10)

	err := sched.RunFrame(4)
	if err == nil {
		t.Fatal("expected error")
	}
	var stepErr *StepError
	if !errors.As(err, &stepErr) {
		t.Fatalf("error %T is not *StepError", err)
	}
	if stepErr.Frame != 4 || stepErr.Substep != 2 {
		t.Fatalf("StepError = frame %d substep %d, want frame 4 substep 2", stepErr.Frame, stepErr.Substep)
	}
	if !errors.Is(err, ErrExecution) || !errors.Is(err, errDeviceLost) {
		t.Fatalf("error %v must match ErrExecution and the device error", err)
	}
	if len(dev.calls) != 3 {
		t.Fatalf("kernel calls = %d, want 3", len(dev.calls))
	}
	// The failed pass must not swap: current is what pass 2 wrote.
	if got := bufferID(store.Current()); got != dev.calls[1].dst {
		t.Fatalf("current = %d, want last completed write %d", got, dev.calls[1].dst)
	}
}
