package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"cgle/internal/core"
	"cgle/internal/engine"
	_ "cgle/internal/kernels/cpu"
	"cgle/internal/kernels/opencl"
	"cgle/internal/render"
)

// Session is a started driver together with the frame it renders into.
type Session struct {
	Driver *engine.Driver
	Frame  *render.Frame
}

// OpenDevice constructs a registered compute device by name.
func OpenDevice(name string) (core.Device, error) {
	factory, ok := core.Devices()[name]
	if !ok {
		return nil, fmt.Errorf("%w: unknown device %q (have %s)", engine.ErrCapability, name, strings.Join(core.DeviceNames(), ", "))
	}
	dev, err := factory()
	if err != nil {
		return nil, fmt.Errorf("%w: opening %s: %w", engine.ErrCapability, name, err)
	}
	return dev, nil
}

// KernelLoader returns a loader that prefers files in dir and falls back to
// the embedded sources.
func KernelLoader(dir string) engine.SourceLoader {
	var layers engine.Layered
	if dir != "" {
		layers = append(layers, engine.FSLoader{FS: os.DirFS(dir)})
	}
	return append(layers, engine.FSLoader{FS: opencl.Sources})
}

// NewSession opens the device, prepares and starts a driver. On failure the
// device is closed.
func NewSession(ctx context.Context, c *Config) (*Session, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if c.Verbose {
		engine.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}
	palette, _ := render.ParsePalette(c.Palette)
	dev, err := OpenDevice(c.Device)
	if err != nil {
		return nil, err
	}
	frame := render.NewFrame(c.Width, c.Height, palette)
	drv := engine.New(c.Engine(), dev, frame)
	if err := drv.Prepare(ctx, KernelLoader(c.KernelDir)); err != nil {
		drv.Close()
		return nil, err
	}
	if err := drv.Start(); err != nil {
		drv.Close()
		return nil, err
	}
	return &Session{Driver: drv, Frame: frame}, nil
}

// Close releases the driver's device resources.
func (s *Session) Close() error { return s.Driver.Close() }
