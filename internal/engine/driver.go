package engine

import (
	"context"
	"fmt"
	"time"

	"cgle/internal/core"
)

// MinGridSize is the smallest maximum grid edge a device must support.
const MinGridSize = 512

// State is the animation state of a Driver.
type State int

const (
	StateIdle State = iota
	StateRunning
	StatePaused
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StatePaused:
		return "paused"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Renderer turns the settled field into a displayable image. It receives a
// host copy of the current buffer and must not retain it past the call.
type Renderer interface {
	Render(f *core.Field) error
}

// Config controls the simulation run.
type Config struct {
	Size         core.Size
	Substeps     int
	Initial      InitialCondition
	Seed         int64
	Coefficients core.Coefficients
	QueueSize    int
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		Size:      core.Size{W: 256, H: 256},
		Substeps:  DefaultSubsteps,
		Initial:   InitRandom,
		Seed:      42,
		QueueSize: DefaultQueueSize,
	}
}

// Stats summarizes driver activity.
type Stats struct {
	Frames       uint64
	Substeps     uint64
	DroppedInput uint64
	LastFrame    time.Duration
}

// Driver owns the whole simulation context and advances it once per display
// refresh. All methods except Post must be called from one goroutine.
type Driver struct {
	cfg      Config
	dev      core.Device
	renderer Renderer

	ctl     *Controller
	pointer *Pointer
	queue   *InputQueue
	store   *Store
	sched   *Scheduler
	host    *core.Field
	pending []core.PointerEvent

	onSubstep func(frame uint64, substep int)

	state    State
	prepared bool
	started  bool
	closed   bool
	err      error

	frame     uint64
	lastFrame time.Duration
}

// New returns an idle driver. Invalid sizes and substep counts are replaced
// with defaults.
func New(cfg Config, dev core.Device, renderer Renderer) *Driver {
	def := DefaultConfig()
	if cfg.Size.W <= 0 || cfg.Size.H <= 0 {
		cfg.Size = def.Size
	}
	if cfg.Substeps <= 0 {
		cfg.Substeps = def.Substeps
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = def.QueueSize
	}
	ctl := NewController(cfg.Coefficients)
	return &Driver{
		cfg:      cfg,
		dev:      dev,
		renderer: renderer,
		ctl:      ctl,
		pointer:  NewPointer(cfg.Size, ctl),
		queue:    NewInputQueue(cfg.QueueSize),
	}
}

// Config returns the effective configuration.
func (d *Driver) Config() Config { return d.cfg }

// Size returns the grid size.
func (d *Driver) Size() core.Size { return d.cfg.Size }

// Controller exposes the parameter controller for host-side changes.
func (d *Driver) Controller() *Controller { return d.ctl }

// Pointer exposes the interaction state for overlays.
func (d *Driver) Pointer() *Pointer { return d.pointer }

// Store returns the field store, or nil before Start.
func (d *Driver) Store() *Store { return d.store }

// Device returns the compute device.
func (d *Driver) Device() core.Device { return d.dev }

// State returns the current animation state.
func (d *Driver) State() State { return d.state }

// Err returns the fatal error that moved the driver to StateFailed.
func (d *Driver) Err() error { return d.err }

// Frame returns the number of frames completed.
func (d *Driver) Frame() uint64 { return d.frame }

// Stats reports counters for overlays and logs.
func (d *Driver) Stats() Stats {
	s := Stats{Frames: d.frame, DroppedInput: d.queue.Dropped(), LastFrame: d.lastFrame}
	if d.sched != nil {
		s.Substeps = d.sched.Executed()
	}
	return s
}

// SetSubstepHook registers fn to run after every pass.
func (d *Driver) SetSubstepHook(fn func(frame uint64, substep int)) {
	d.onSubstep = fn
	if d.sched != nil {
		d.sched.OnSubstep = fn
	}
}

// Post queues a pointer event. Safe to call from any goroutine.
func (d *Driver) Post(ev core.PointerEvent) {
	d.queue.Push(ev)
}

// Prepare checks device capabilities, loads the kernel source and builds it.
// It must complete before Start. Prepare may block on the loader; it gives
// up when ctx is done.
func (d *Driver) Prepare(ctx context.Context, loader SourceLoader) error {
	if d.prepared {
		return ErrAlreadyPrepared
	}
	if d.state == StateFailed {
		return d.err
	}
	if err := d.checkCapabilities(); err != nil {
		return d.fail(err)
	}
	var src []byte
	if name := d.dev.SourceName(); name != "" {
		if loader == nil {
			return d.fail(fmt.Errorf("%w: no loader for kernel source %q", ErrResourceBinding, name))
		}
		var err error
		src, err = loader.Load(ctx, name)
		if err != nil {
			return d.fail(fmt.Errorf("%w: loading kernel source %q: %w", ErrResourceBinding, name, err))
		}
	}
	if err := ctx.Err(); err != nil {
		return d.fail(fmt.Errorf("%w: %w", ErrResourceBinding, err))
	}
	if err := d.dev.Build(src); err != nil {
		return d.fail(fmt.Errorf("%w: building kernel on %s: %w", ErrResourceBinding, d.dev.Name(), err))
	}
	d.prepared = true
	Logger().Info("engine prepared", "device", d.dev.Name(), "w", d.cfg.Size.W, "h", d.cfg.Size.H)
	return nil
}

func (d *Driver) checkCapabilities() error {
	caps := d.dev.Capabilities()
	if !caps.FloatBuffers {
		return fmt.Errorf("%w: %s has no float buffer support", ErrCapability, d.dev.Name())
	}
	if caps.MaxGridSize < MinGridSize {
		return fmt.Errorf("%w: %s only supports %dx%d grids", ErrCapability, d.dev.Name(), caps.MaxGridSize, caps.MaxGridSize)
	}
	if d.cfg.Size.W > caps.MaxGridSize || d.cfg.Size.H > caps.MaxGridSize {
		return fmt.Errorf("%w: grid %dx%d exceeds device limit %d", ErrCapability, d.cfg.Size.W, d.cfg.Size.H, caps.MaxGridSize)
	}
	return nil
}

// Start seeds the field store and begins running. It is a no-op once the
// driver has started, so accumulated state is never rebuilt.
func (d *Driver) Start() error {
	if d.started {
		return nil
	}
	if d.state == StateFailed {
		return d.err
	}
	if !d.prepared {
		return ErrNotPrepared
	}
	seed := Seed(d.cfg.Size, d.cfg.Initial, core.NewRNG(d.cfg.Seed))
	store, err := NewStore(d.dev, d.cfg.Size, seed)
	if err != nil {
		return d.fail(err)
	}
	d.store = store
	d.sched = NewScheduler(d.dev, store, d.ctl, d.cfg.Substeps)
	d.sched.OnSubstep = d.onSubstep
	d.host = core.NewField(d.cfg.Size.W, d.cfg.Size.H)
	d.started = true
	d.state = StateRunning
	Logger().Info("engine started", "initial", d.cfg.Initial.String(), "substeps", d.cfg.Substeps)
	return nil
}

// Pause toggles between running and paused. It does nothing in any other
// state. The new state is returned.
func (d *Driver) Pause() State {
	switch d.state {
	case StateRunning:
		d.state = StatePaused
	case StatePaused:
		d.state = StateRunning
	default:
		return d.state
	}
	Logger().Info("engine pause toggled", "state", d.state.String())
	return d.state
}

// Tick advances one display frame: drain input, run all substeps, render.
// While paused it only drains input, so a release seen during the pause
// still clears the brush. It does nothing when idle. After a fatal error
// every call returns that error without doing work.
func (d *Driver) Tick() error {
	switch d.state {
	case StateRunning, StatePaused:
	case StateFailed:
		return d.err
	default:
		return nil
	}

	d.pending = d.queue.Drain(d.pending[:0])
	for _, ev := range d.pending {
		d.pointer.Handle(ev)
	}
	if d.state == StatePaused {
		return nil
	}

	start := time.Now()
	if err := d.sched.RunFrame(d.frame); err != nil {
		return d.fail(err)
	}
	if err := d.store.Snapshot(d.host); err != nil {
		return d.fail(fmt.Errorf("%w: reading back field: %w", ErrExecution, err))
	}
	if d.renderer != nil {
		if err := d.renderer.Render(d.host); err != nil {
			return d.fail(fmt.Errorf("%w: render: %w", ErrExecution, err))
		}
	}
	d.lastFrame = time.Since(start)
	d.frame++
	if len(d.pending) > 0 {
		Logger().Debug("frame", "n", d.frame, "events", len(d.pending), "took", d.lastFrame)
	}
	return nil
}

// Field returns the host copy of the field rendered by the last tick.
func (d *Driver) Field() *core.Field { return d.host }

// Close releases the buffers and the device. The driver cannot be restarted
// and later calls return nil.
func (d *Driver) Close() error {
	if d.closed {
		return nil
	}
	d.closed = true
	if d.store != nil {
		d.store.Release()
		d.store = nil
	}
	if d.state != StateFailed {
		d.state = StateIdle
	}
	d.started = true
	return d.dev.Close()
}

func (d *Driver) fail(err error) error {
	d.state = StateFailed
	d.err = err
	Logger().Error("engine failed", "err", err)
	return err
}
