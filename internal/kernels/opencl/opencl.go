//go:build opencl

package opencl

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/jgillich/go-opencl/cl"

	"cgle/internal/core"
	"cgle/internal/engine"
)

const bytesPerCell = core.Channels * 4

type buffer struct {
	mem  *cl.MemObject
	size core.Size
}

func (b *buffer) Size() core.Size { return b.size }

// Release frees the device memory.
func (b *buffer) Release() {
	if b.mem != nil {
		b.mem.Release()
		b.mem = nil
	}
}

// Device owns an OpenCL context, an in-order queue and the built kernel.
type Device struct {
	integ core.Integration

	device  *cl.Device
	context *cl.Context
	queue   *cl.CommandQueue
	program *cl.Program
	kernel  *cl.Kernel

	name    string
	maxGrid int
}

// New picks the first GPU, falling back to a CPU device, and opens a context
// and queue on it. The kernel is built later by Build.
func New(integ core.Integration) (*Device, error) {
	platforms, err := cl.GetPlatforms()
	if err != nil {
		msg := "querying OpenCL platforms"
		if strings.Contains(err.Error(), "-1001") {
			msg += ": no ICD loader reported any platforms; install OpenCL drivers and verify with `clinfo`"
		}
		return nil, fmt.Errorf("%w: %s: %w", engine.ErrCapability, msg, err)
	}
	if len(platforms) == 0 {
		return nil, fmt.Errorf("%w: no OpenCL platforms available", engine.ErrCapability)
	}
	device := pickDevice(platforms, cl.DeviceTypeGPU)
	if device == nil {
		device = pickDevice(platforms, cl.DeviceTypeCPU)
	}
	if device == nil {
		return nil, fmt.Errorf("%w: no suitable OpenCL devices found", engine.ErrCapability)
	}

	context, err := cl.CreateContext([]*cl.Device{device})
	if err != nil {
		return nil, fmt.Errorf("creating OpenCL context: %w", err)
	}
	queue, err := context.CreateCommandQueue(device, 0)
	if err != nil {
		context.Release()
		return nil, fmt.Errorf("creating OpenCL command queue: %w", err)
	}

	d := &Device{
		integ:   integ,
		device:  device,
		context: context,
		queue:   queue,
		name:    device.Name(),
		maxGrid: gridLimit(device.MaxMemAllocSize()),
	}
	engine.Logger().Info("OpenCL device selected", "device", d.name, "max_grid", d.maxGrid)
	return d, nil
}

func pickDevice(platforms []*cl.Platform, kind cl.DeviceType) *cl.Device {
	for _, p := range platforms {
		devices, err := p.GetDevices(kind)
		if err != nil && err != cl.ErrDeviceNotFound {
			continue
		}
		if len(devices) > 0 {
			return devices[0]
		}
	}
	return nil
}

// gridLimit converts the largest single allocation into the largest square
// grid edge that fits in one buffer.
func gridLimit(maxAlloc int64) int {
	if maxAlloc <= 0 {
		return 0
	}
	return int(math.Sqrt(float64(maxAlloc / bytesPerCell)))
}

func (d *Device) Name() string { return "opencl:" + d.name }

func (d *Device) Capabilities() core.Capabilities {
	return core.Capabilities{FloatBuffers: true, MaxGridSize: d.maxGrid}
}

func (d *Device) SourceName() string { return SourceName }

// Build compiles the kernel source for the selected device.
func (d *Device) Build(src []byte) error {
	if len(src) == 0 {
		return errors.New("empty kernel source")
	}
	program, err := d.context.CreateProgramWithSource([]string{string(src)})
	if err != nil {
		return fmt.Errorf("creating OpenCL program: %w", err)
	}
	if err := program.BuildProgram([]*cl.Device{d.device}, ""); err != nil {
		program.Release()
		if buildErr, ok := err.(cl.BuildError); ok {
			return fmt.Errorf("building OpenCL program: %s", string(buildErr))
		}
		return fmt.Errorf("building OpenCL program: %w", err)
	}
	kernel, err := program.CreateKernel(KernelName)
	if err != nil {
		program.Release()
		return fmt.Errorf("creating OpenCL kernel %q: %w", KernelName, err)
	}
	if d.kernel != nil {
		d.kernel.Release()
	}
	if d.program != nil {
		d.program.Release()
	}
	d.program = program
	d.kernel = kernel
	return nil
}

// Alloc creates a read-write device buffer, uploading init when given.
func (d *Device) Alloc(size core.Size, init *core.Field) (core.Buffer, error) {
	if size.W <= 0 || size.H <= 0 {
		return nil, fmt.Errorf("opencl: invalid buffer size %dx%d", size.W, size.H)
	}
	mem, err := d.context.CreateEmptyBuffer(cl.MemReadWrite, size.Cells()*bytesPerCell)
	if err != nil {
		return nil, fmt.Errorf("allocating field buffer: %w", err)
	}
	buf := &buffer{mem: mem, size: size}
	if init != nil {
		if init.Size() != size {
			buf.Release()
			return nil, fmt.Errorf("opencl: init field is %dx%d, buffer is %dx%d", init.W, init.H, size.W, size.H)
		}
		if _, err := d.queue.EnqueueWriteBufferFloat32(mem, true, 0, init.Data(), nil); err != nil {
			buf.Release()
			return nil, fmt.Errorf("uploading initial field: %w", err)
		}
	}
	return buf, nil
}

func (d *Device) own(b core.Buffer) (*buffer, error) {
	buf, ok := b.(*buffer)
	if !ok || buf == nil || buf.mem == nil {
		return nil, fmt.Errorf("opencl: foreign or released buffer %T", b)
	}
	return buf, nil
}

// Step enqueues one full-grid pass. The queue is in-order, so the next pass
// or read observes this write in full.
func (d *Device) Step(dst, src core.Buffer, coeff core.Coefficients, brush core.Brush) error {
	if d.kernel == nil {
		return errors.New("opencl: kernel not built")
	}
	out, err := d.own(dst)
	if err != nil {
		return err
	}
	in, err := d.own(src)
	if err != nil {
		return err
	}
	if out == in {
		return errors.New("opencl: step source and destination are the same buffer")
	}
	size := in.size
	invDx2 := 1 / (d.integ.Dx * d.integ.Dx)
	if err := d.kernel.SetArgs(
		int32(size.W),
		int32(size.H),
		d.integ.Dt,
		invDx2,
		coeff.B,
		coeff.C,
		brush.X,
		brush.Y,
		d.integ.BrushRadius*d.integ.BrushRadius,
		in.mem,
		out.mem,
	); err != nil {
		return fmt.Errorf("setting kernel arguments: %w", err)
	}
	if _, err := d.queue.EnqueueNDRangeKernel(d.kernel, nil, []int{size.Cells()}, nil, nil); err != nil {
		return fmt.Errorf("enqueueing kernel: %w", err)
	}
	return nil
}

// Read blocks until every queued pass has finished and copies src to dst.
func (d *Device) Read(dst *core.Field, src core.Buffer) error {
	in, err := d.own(src)
	if err != nil {
		return err
	}
	if dst.Size() != in.size {
		return fmt.Errorf("opencl: read into %dx%d from %dx%d", dst.W, dst.H, in.size.W, in.size.H)
	}
	if _, err := d.queue.EnqueueReadBufferFloat32(in.mem, true, 0, dst.Data(), nil); err != nil {
		return fmt.Errorf("reading field buffer: %w", err)
	}
	return nil
}

// Close releases the kernel, program, queue and context.
func (d *Device) Close() error {
	if d.kernel != nil {
		d.kernel.Release()
		d.kernel = nil
	}
	if d.program != nil {
		d.program.Release()
		d.program = nil
	}
	if d.queue != nil {
		d.queue.Release()
		d.queue = nil
	}
	if d.context != nil {
		d.context.Release()
		d.context = nil
	}
	return nil
}

func init() {
	core.RegisterDevice("opencl", func() (core.Device, error) {
		d, err := New(core.DefaultIntegration())
		if err != nil {
			return nil, err
		}
		return d, nil
	})
}
