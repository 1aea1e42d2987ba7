package engine

import (
	"fmt"

	"cgle/internal/core"
)

// Store owns the two field buffers and the single index that says which one
// is current. Next is always the other one.
type Store struct {
	size core.Size
	dev  core.Device
	bufs [2]core.Buffer
	cur  int
}

// NewStore allocates both buffers on dev. seed initializes the current
// buffer; the next buffer is left for the first substep to fill.
func NewStore(dev core.Device, size core.Size, seed *core.Field) (*Store, error) {
	if seed != nil && seed.Size() != size {
		return nil, fmt.Errorf("%w: seed is %dx%d, store is %dx%d",
			ErrResourceBinding, seed.W, seed.H, size.W, size.H)
	}
	first, err := dev.Alloc(size, seed)
	if err != nil {
		return nil, fmt.Errorf("%w: allocating current buffer: %w", ErrResourceBinding, err)
	}
	second, err := dev.Alloc(size, nil)
	if err != nil {
		if c, ok := first.(interface{ Release() }); ok {
			c.Release()
		}
		return nil, fmt.Errorf("%w: allocating next buffer: %w", ErrResourceBinding, err)
	}
	return &Store{size: size, dev: dev, bufs: [2]core.Buffer{first, second}}, nil
}

// Size returns the grid dimensions shared by both buffers.
func (s *Store) Size() core.Size { return s.size }

// Current returns the buffer read by the running substep.
func (s *Store) Current() core.Buffer { return s.bufs[s.cur] }

// Next returns the buffer written by the running substep.
func (s *Store) Next() core.Buffer { return s.bufs[s.cur^1] }

// Swap makes the just-written buffer current.
func (s *Store) Swap() { s.cur ^= 1 }

// Snapshot reads the current buffer back into dst.
func (s *Store) Snapshot(dst *core.Field) error {
	return s.dev.Read(dst, s.Current())
}

// Release frees both buffers when the device buffers support it.
func (s *Store) Release() {
	for i, b := range s.bufs {
		if r, ok := b.(interface{ Release() }); ok {
			r.Release()
		}
		s.bufs[i] = nil
	}
}
