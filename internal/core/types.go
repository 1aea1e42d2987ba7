package core

import "sort"

// Size describes the dimensions of a simulation grid.
type Size struct {
	W int
	H int
}

// Cells returns the number of grid cells.
func (s Size) Cells() int { return s.W * s.H }

// Coefficients are the two global CGLE coefficients. B scales the dispersive
// part of the diffusion term and C the nonlinear frequency shift.
type Coefficients struct {
	B float32
	C float32
}

// Brush is a normalized forcing position. Both components negative means no
// forcing is applied.
type Brush struct {
	X float32
	Y float32
}

// InactiveBrush is the sentinel written when the pointer is released.
var InactiveBrush = Brush{X: -1, Y: -1}

// Active reports whether the brush applies forcing.
func (b Brush) Active() bool { return !(b.X < 0 && b.Y < 0) }

// Capabilities describes what a compute device supports.
type Capabilities struct {
	FloatBuffers bool
	MaxGridSize  int
}

// Buffer is a device-resident field. Only the device that allocated it may
// read or write its contents.
type Buffer interface {
	Size() Size
}

// Device runs the compute kernel over device buffers.
//
// Step reads all of src and writes all of dst in one full-grid pass. It must
// not return before dst is completely written.
type Device interface {
	Name() string
	Capabilities() Capabilities
	// SourceName names the kernel source the device needs before Build, or
	// "" when it carries its kernel in code.
	SourceName() string
	Build(src []byte) error
	Alloc(size Size, init *Field) (Buffer, error)
	Step(dst, src Buffer, coeff Coefficients, brush Brush) error
	Read(dst *Field, src Buffer) error
	Close() error
}

// DeviceFactory constructs a Device. Factories should defer expensive setup
// to Build so that listing devices stays cheap.
type DeviceFactory func() (Device, error)

var devices = map[string]DeviceFactory{}

// RegisterDevice adds a device factory under the provided name.
func RegisterDevice(name string, f DeviceFactory) {
	if name == "" || f == nil {
		return
	}
	devices[name] = f
}

// Devices exposes the registry of available device factories.
func Devices() map[string]DeviceFactory {
	return devices
}

// DeviceNames returns the registered device names in sorted order.
func DeviceNames() []string {
	names := make([]string, 0, len(devices))
	for name := range devices {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Integration holds the numerical constants every kernel implementation
// shares, so devices produce comparable fields.
type Integration struct {
	Dt          float32
	Dx          float32
	BrushRadius float32
}

// DefaultIntegration returns the constants used by the GUI and probe.
func DefaultIntegration() Integration {
	return Integration{Dt: 0.01, Dx: 0.5, BrushRadius: 0.02}
}
