package engine

import (
	"sync"

	"cgle/internal/core"
)

// DefaultQueueSize bounds the number of pointer events buffered between ticks.
const DefaultQueueSize = 256

// InputQueue is a bounded FIFO of pointer events. Hosts may push from any
// goroutine; the driver drains it once per tick. When full, the oldest event
// is overwritten.
type InputQueue struct {
	mu      sync.Mutex
	events  []core.PointerEvent
	head    int
	count   int
	dropped uint64
}

// NewInputQueue returns a queue holding at most size events.
func NewInputQueue(size int) *InputQueue {
	if size <= 0 {
		size = DefaultQueueSize
	}
	return &InputQueue{events: make([]core.PointerEvent, size)}
}

// Push appends an event, dropping the oldest one on overflow.
func (q *InputQueue) Push(ev core.PointerEvent) {
	q.mu.Lock()
	defer q.mu.Unlock()
	capacity := len(q.events)
	if q.count == capacity {
		q.head = (q.head + 1) % capacity
		q.count--
		q.dropped++
	}
	q.events[(q.head+q.count)%capacity] = ev
	q.count++
}

// Drain appends all pending events to dst in FIFO order and empties the queue.
func (q *InputQueue) Drain(dst []core.PointerEvent) []core.PointerEvent {
	q.mu.Lock()
	defer q.mu.Unlock()
	capacity := len(q.events)
	for i := 0; i < q.count; i++ {
		dst = append(dst, q.events[(q.head+i)%capacity])
	}
	q.head = 0
	q.count = 0
	return dst
}

// Len returns the number of pending events.
func (q *InputQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.count
}

// Dropped returns how many events were discarded due to overflow.
func (q *InputQueue) Dropped() uint64 {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.dropped
}

// Pointer converts raw pointer events into brush updates on a Controller.
type Pointer struct {
	size core.Size
	ctl  *Controller

	down         bool
	lastX, lastY float64
	anchorX      float64
	anchorY      float64
}

// NewPointer returns a pointer in the Up state mapping into a grid of size.
func NewPointer(size core.Size, ctl *Controller) *Pointer {
	return &Pointer{size: size, ctl: ctl}
}

// Down reports whether the pointer is pressed.
func (p *Pointer) Down() bool { return p.down }

// Last returns the last known raw position.
func (p *Pointer) Last() (float64, float64) { return p.lastX, p.lastY }

// Anchor returns the raw position of the most recent press.
func (p *Pointer) Anchor() (float64, float64) { return p.anchorX, p.anchorY }

// Handle applies one event.
func (p *Pointer) Handle(ev core.PointerEvent) {
	switch ev.Kind {
	case core.PointerPress:
		// The press event's own coordinates win over any earlier move.
		p.lastX, p.lastY = ev.X, ev.Y
		p.anchorX, p.anchorY = ev.X, ev.Y
		p.down = true
		p.push()
	case core.PointerMove:
		p.lastX, p.lastY = ev.X, ev.Y
		if p.down {
			p.push()
		}
	case core.PointerRelease:
		p.down = false
		p.ctl.ClearBrush()
	}
}

func (p *Pointer) push() {
	x, y := BrushCoordinate(p.size, p.lastX, p.lastY)
	p.ctl.SetBrush(x, y)
}

// BrushCoordinate maps a raw surface position to normalized brush space as
// bx = rx/(2W), by = 1 - ry/(2H). The factor two assumes the surface shows
// the grid at twice its size; other surfaces get no renormalization.
func BrushCoordinate(size core.Size, rx, ry float64) (float32, float32) {
	bx := rx / (2 * float64(size.W))
	by := 1 - ry/(2*float64(size.H))
	return float32(bx), float32(by)
}
