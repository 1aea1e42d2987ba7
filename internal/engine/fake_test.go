package engine

import (
	"context"
	"errors"

	"cgle/internal/core"
)

type fakeBuffer struct {
	id    int
	field *core.Field
}

func (b *fakeBuffer) Size() core.Size { return b.field.Size() }

type stepCall struct {
	dst, src int
	coeff    core.Coefficients
	brush    core.Brush
}

// fakeDevice copies src to dst on every step and records each call.
type fakeDevice struct {
	caps    core.Capabilities
	source  string
	built   []byte
	buildFn func([]byte) error

	allocs int
	calls  []stepCall
	failAt int // 1-based step call that fails; 0 disables
	reads  []int
	closes int
}

var errDeviceLost = errors.New("device lost")

func newFakeDevice() *fakeDevice {
	return &fakeDevice{caps: core.Capabilities{FloatBuffers: true, MaxGridSize: 4096}}
}

func (d *fakeDevice) Name() string                    { return "fake" }
func (d *fakeDevice) Capabilities() core.Capabilities { return d.caps }
func (d *fakeDevice) SourceName() string              { return d.source }

func (d *fakeDevice) Build(src []byte) error {
	d.built = src
	if d.buildFn != nil {
		return d.buildFn(src)
	}
	return nil
}

func (d *fakeDevice) Alloc(size core.Size, init *core.Field) (core.Buffer, error) {
	d.allocs++
	f := core.NewField(size.W, size.H)
	if init != nil {
		f.CopyFrom(init)
	}
	return &fakeBuffer{id: d.allocs, field: f}, nil
}

func (d *fakeDevice) Step(dst, src core.Buffer, coeff core.Coefficients, brush core.Brush) error {
	out, in := dst.(*fakeBuffer), src.(*fakeBuffer)
	d.calls = append(d.calls, stepCall{dst: out.id, src: in.id, coeff: coeff, brush: brush})
	if d.failAt > 0 && len(d.calls) == d.failAt {
		return errDeviceLost
	}
	out.field.CopyFrom(in.field)
	return nil
}

func (d *fakeDevice) Read(dst *core.Field, src core.Buffer) error {
	in := src.(*fakeBuffer)
	d.reads = append(d.reads, in.id)
	dst.CopyFrom(in.field)
	return nil
}

func (d *fakeDevice) Close() error {
	d.closes++
	return nil
}

type recordingRenderer struct {
	frames int
	last   *core.Field
	err    error
}

func (r *recordingRenderer) Render(f *core.Field) error {
	r.frames++
	r.last = f
	return r.err
}

func bufferID(b core.Buffer) int { return b.(*fakeBuffer).id }

func smallConfig() Config {
	cfg := DefaultConfig()
	cfg.Size = core.Size{W: 8, H: 6}
	cfg.Substeps = 5
	cfg.Initial = InitUniform
	return cfg
}

func startedDriver(cfg Config, dev *fakeDevice, r Renderer) (*Driver, error) {
	d := New(cfg, dev, r)
	if err := d.Prepare(context.Background(), nil); err != nil {
		return nil, err
	}
	if err := d.Start(); err != nil {
		return nil, err
	}
	return d, nil
}
