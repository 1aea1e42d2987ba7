// Package cpu implements the CGLE kernel on the host.
//
// One pass advances the field by one explicit Euler step of
//
//	dA/dt = A + (1 + ib) ∇²A - (1 + ic) |A|² A
//
// on a periodic grid, then zeroes the amplitude inside the brush disc.
package cpu

import (
	"errors"
	"fmt"
	"runtime"
	"sync"

	"cgle/internal/core"
)

// Options controls the host device.
type Options struct {
	core.Integration
	Workers int
}

// DefaultOptions uses the shared integration constants and one worker per CPU.
func DefaultOptions() Options {
	return Options{Integration: core.DefaultIntegration(), Workers: runtime.NumCPU()}
}

// MaxGridSize is the largest grid edge the host device accepts.
const MaxGridSize = 8192

var errInPlace = errors.New("cpu: step source and destination are the same buffer")

type buffer struct {
	field *core.Field
}

func (b *buffer) Size() core.Size { return b.field.Size() }

// Device runs the kernel with row bands spread over worker goroutines.
type Device struct {
	opts Options
}

// New returns a host device.
func New(opts Options) *Device {
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	return &Device{opts: opts}
}

func (d *Device) Name() string { return "cpu" }

func (d *Device) Capabilities() core.Capabilities {
	return core.Capabilities{FloatBuffers: true, MaxGridSize: MaxGridSize}
}

// SourceName is empty: the kernel is compiled into the binary.
func (d *Device) SourceName() string { return "" }

func (d *Device) Build([]byte) error { return nil }

func (d *Device) Alloc(size core.Size, init *core.Field) (core.Buffer, error) {
	if size.W <= 0 || size.H <= 0 {
		return nil, fmt.Errorf("cpu: invalid buffer size %dx%d", size.W, size.H)
	}
	f := core.NewField(size.W, size.H)
	if init != nil {
		if init.Size() != size {
			return nil, fmt.Errorf("cpu: init field is %dx%d, buffer is %dx%d", init.W, init.H, size.W, size.H)
		}
		f.CopyFrom(init)
	}
	return &buffer{field: f}, nil
}

func (d *Device) Read(dst *core.Field, src core.Buffer) error {
	in, err := d.own(src)
	if err != nil {
		return err
	}
	if dst.Size() != in.field.Size() {
		return fmt.Errorf("cpu: read into %dx%d from %dx%d", dst.W, dst.H, in.field.W, in.field.H)
	}
	dst.CopyFrom(in.field)
	return nil
}

func (d *Device) Close() error { return nil }

func (d *Device) own(b core.Buffer) (*buffer, error) {
	buf, ok := b.(*buffer)
	if !ok || buf == nil {
		return nil, fmt.Errorf("cpu: foreign buffer %T", b)
	}
	return buf, nil
}

// Step writes one integration pass of src into dst.
func (d *Device) Step(dst, src core.Buffer, coeff core.Coefficients, brush core.Brush) error {
	out, err := d.own(dst)
	if err != nil {
		return err
	}
	in, err := d.own(src)
	if err != nil {
		return err
	}
	if out == in {
		return errInPlace
	}
	if out.field.Size() != in.field.Size() {
		return fmt.Errorf("cpu: size mismatch %v vs %v", out.field.Size(), in.field.Size())
	}

	h := in.field.H
	workers := d.opts.Workers
	if workers > h {
		workers = h
	}
	rowsPer := (h + workers - 1) / workers
	var wg sync.WaitGroup
	for y0 := 0; y0 < h; y0 += rowsPer {
		y1 := y0 + rowsPer
		if y1 > h {
			y1 = h
		}
		wg.Add(1)
		go func(y0, y1 int) {
			defer wg.Done()
			d.stepRows(out.field, in.field, coeff, brush, y0, y1)
		}(y0, y1)
	}
	wg.Wait()
	return nil
}

func (d *Device) stepRows(out, in *core.Field, coeff core.Coefficients, brush core.Brush, y0, y1 int) {
	w, h := in.W, in.H
	src := in.Data()
	dst := out.Data()
	dt := d.opts.Dt
	invDx2 := 1 / (d.opts.Dx * d.opts.Dx)
	b, c := coeff.B, coeff.C
	active := brush.Active()
	r2 := d.opts.BrushRadius * d.opts.BrushRadius

	for y := y0; y < y1; y++ {
		up := (y - 1 + h) % h
		down := (y + 1) % h
		v := 1 - (float32(y)+0.5)/float32(h)
		for x := 0; x < w; x++ {
			i := core.Channels * (y*w + x)
			if active {
				u := (float32(x) + 0.5) / float32(w)
				du, dv := u-brush.X, v-brush.Y
				if du*du+dv*dv < r2 {
					dst[i], dst[i+1], dst[i+2], dst[i+3] = 0, 0, 0, 0
					continue
				}
			}
			left := core.Channels * (y*w + (x-1+w)%w)
			right := core.Channels * (y*w + (x+1)%w)
			top := core.Channels * (up*w + x)
			bottom := core.Channels * (down*w + x)

			ar, ai := src[i], src[i+1]
			lr := (src[left] + src[right] + src[top] + src[bottom] - 4*ar) * invDx2
			li := (src[left+1] + src[right+1] + src[top+1] + src[bottom+1] - 4*ai) * invDx2
			n := ar*ar + ai*ai

			dr := ar + (lr - b*li) - n*(ar-c*ai)
			di := ai + (li + b*lr) - n*(ai+c*ar)

			dst[i] = ar + dt*dr
			dst[i+1] = ai + dt*di
			dst[i+2], dst[i+3] = 0, 0
		}
	}
}

func init() {
	core.RegisterDevice("cpu", func() (core.Device, error) {
		return New(DefaultOptions()), nil
	})
}
