package engine

import (
	"testing"

	"cgle/internal/core"
)

func TestStoreAlternation(t *testing.T) {
	dev := newFakeDevice()
	size := core.Size{W: 4, H: 4}
	store, err := NewStore(dev, size, Seed(size, InitUniform, nil))
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	if bufferID(store.Current()) == bufferID(store.Next()) {
		t.Fatal("current and next must be distinct buffers")
	}

	prevNext := bufferID(store.Next())
	prevCurrent := bufferID(store.Current())
	for i := 1; i <= 9; i++ {
		store.Swap()
		if got := bufferID(store.Current()); got != prevNext {
			t.Fatalf("swap %d: current = %d, want previous next %d", i, got, prevNext)
		}
		if got := bufferID(store.Next()); got != prevCurrent {
			t.Fatalf("swap %d: next = %d, want previous current %d", i, got, prevCurrent)
		}
		prevNext, prevCurrent = bufferID(store.Next()), bufferID(store.Current())
	}
}

func TestStoreSeedsOnlyCurrent(t *testing.T) {
	dev := newFakeDevice()
	size := core.Size{W: 3, H: 2}
	store, err := NewStore(dev, size, Seed(size, InitUniform, nil))
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	cur := store.Current().(*fakeBuffer).field
	if re, im := cur.At(2, 1); re != 1 || im != 0 {
		t.Fatalf("current not seeded: (%v,%v)", re, im)
	}
	next := store.Next().(*fakeBuffer).field
	if re, _ := next.At(2, 1); re != 0 {
		t.Fatalf("next buffer received seed data: %v", re)
	}
}

func TestStoreRejectsMismatchedSeed(t *testing.T) {
	dev := newFakeDevice()
	_, err := NewStore(dev, core.Size{W: 4, H: 4}, core.NewField(2, 2))
	if err == nil {
		t.Fatal("expected error for mismatched seed size")
	}
}
