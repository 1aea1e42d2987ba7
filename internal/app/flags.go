package app

import (
	"flag"
	"fmt"

	"cgle/internal/core"
	"cgle/internal/engine"
	"cgle/internal/render"
)

// Config represents the command-line parameters for the application.
type Config struct {
	Device    string
	Width     int
	Height    int
	Scale     int
	TPS       int
	Substeps  int
	Init      string
	Seed      int64
	B         float64
	C         float64
	KernelDir string
	Palette   string
	HUDWidth  int
	Debug     bool
	Verbose   bool
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	def := engine.DefaultConfig()
	return &Config{
		Device:   "cpu",
		Width:    def.Size.W,
		Height:   def.Size.H,
		Scale:    2,
		TPS:      60,
		Substeps: def.Substeps,
		Init:     def.Initial.String(),
		Seed:     def.Seed,
		Palette:  render.PalettePhase.String(),
		HUDWidth: 220,
	}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.Device, "device", c.Device, "compute device (cpu or opencl)")
	fs.IntVar(&c.Width, "w", c.Width, "grid width in cells")
	fs.IntVar(&c.Height, "h", c.Height, "grid height in cells")
	fs.IntVar(&c.Scale, "scale", c.Scale, "pixel scale multiplier")
	fs.IntVar(&c.TPS, "tps", c.TPS, "ticks per second")
	fs.IntVar(&c.Substeps, "substeps", c.Substeps, "integration substeps per frame")
	fs.StringVar(&c.Init, "init", c.Init, "initial condition: random, gradient, noise or uniform")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for the random initial condition")
	fs.Float64Var(&c.B, "b", c.B, "linear dispersion coefficient")
	fs.Float64Var(&c.C, "c", c.C, "nonlinear dispersion coefficient")
	fs.StringVar(&c.KernelDir, "kernels", c.KernelDir, "directory overriding the embedded kernel sources")
	fs.StringVar(&c.Palette, "palette", c.Palette, "color palette: phase, amplitude or real")
	fs.IntVar(&c.HUDWidth, "hud", c.HUDWidth, "HUD panel width in pixels (0 hides it)")
	fs.BoolVar(&c.Debug, "debug", c.Debug, "show frame statistics")
	fs.BoolVar(&c.Verbose, "v", c.Verbose, "log engine events to stderr")
}

// Engine converts the flags into an engine configuration.
func (c *Config) Engine() engine.Config {
	cfg := engine.DefaultConfig()
	cfg.Size = core.Size{W: c.Width, H: c.Height}
	cfg.Substeps = c.Substeps
	cfg.Initial = engine.ParseInitialCondition(c.Init)
	cfg.Seed = c.Seed
	cfg.Coefficients = core.Coefficients{B: float32(c.B), C: float32(c.C)}
	return cfg
}

// Validate rejects values the engine would otherwise silently replace.
func (c *Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("grid size %dx%d must be positive", c.Width, c.Height)
	}
	if c.Substeps <= 0 {
		return fmt.Errorf("substeps must be positive, got %d", c.Substeps)
	}
	if c.Scale <= 0 {
		return fmt.Errorf("scale must be positive, got %d", c.Scale)
	}
	if _, err := render.ParsePalette(c.Palette); err != nil {
		return err
	}
	return nil
}
