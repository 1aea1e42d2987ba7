// Command cgle-probe runs the field engine without a window and prints
// diagnostics, optionally saving the last rendered frame as a PNG.
package main

import (
	"context"
	"flag"
	"fmt"
	"image/png"
	"log"
	"os"
	"os/signal"
	"time"

	"cgle/internal/app"
	"cgle/internal/core"
	"cgle/internal/diag"
	"cgle/internal/engine"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	frames := flag.Int("frames", 60, "frames to simulate")
	every := flag.Int("every", 10, "print diagnostics every N frames (0 prints only the final frame)")
	out := flag.String("out", "", "write the final frame to this PNG file")
	press := flag.String("press", "", "hold the brush at surface pixel x,y")
	hold := flag.Int("hold", 10, "frames to hold the -press brush")
	realtime := flag.Bool("realtime", false, "pace frames at -tps instead of running flat out")
	plot := flag.Bool("plot", false, "print a terminal chart of mean |A| at the end")
	chartOut := flag.String("chart", "", "write a PNG chart of |A| and defect counts to this file")
	var overrides kvList
	flag.Var(&overrides, "set", "parameter override in [frame:]key=value form (repeatable)")
	flag.Parse()

	plan, err := parseOverrides(overrides)
	if err != nil {
		log.Fatal(err)
	}
	var brush *core.PointerEvent
	if *press != "" {
		ev, err := parsePress(*press)
		if err != nil {
			log.Fatal(err)
		}
		brush = &ev
		if *hold < 1 {
			log.Fatalf("-hold must be at least 1, got %d", *hold)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	session, err := app.NewSession(ctx, cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer session.Close()
	drv := session.Driver

	fmt.Printf("device=%s grid=%dx%d substeps=%d init=%s b=%.3f c=%.3f\n",
		drv.Device().Name(), cfg.Width, cfg.Height, cfg.Substeps, cfg.Init, cfg.B, cfg.C)

	var pacer *core.Pacer
	if *realtime {
		pacer = core.NewPacer(cfg.TPS)
	}

	var hist *history
	if *plot || *chartOut != "" {
		hist = &history{}
	}

	start := time.Now()
	for n := 0; n < *frames; n++ {
		if pacer != nil {
			_ = pacer.Wait(ctx)
		}
		if ctx.Err() != nil {
			fmt.Println("interrupted")
			break
		}
		for _, o := range plan.at(n) {
			if !drv.Controller().SetFloatParameter(o.key, o.value) {
				log.Fatalf("unknown parameter %q", o.key)
			}
		}
		if brush != nil {
			for _, ev := range brushEvents(*brush, *hold, n) {
				drv.Post(ev)
			}
		}
		if err := drv.Tick(); err != nil {
			log.Fatal(err)
		}
		if hist != nil {
			pos, neg := diag.Defects(drv.Field())
			hist.add(drv.Frame(), diag.AmplitudeStats(drv.Field()), pos+neg)
		}
		last := n == *frames-1
		if last || (*every > 0 && (n+1)%*every == 0) {
			report(drv)
		}
	}

	st := drv.Stats()
	fmt.Printf("done: %d frames, %d substeps in %s\n", st.Frames, st.Substeps, time.Since(start).Round(time.Millisecond))

	if *plot && hist.len() > 0 {
		fmt.Println(hist.plot())
	}
	if *chartOut != "" {
		if err := hist.writeChart(*chartOut); err != nil {
			log.Fatal(err)
		}
		fmt.Printf("wrote %s\n", *chartOut)
	}
	if *out != "" {
		if err := writePNG(*out, session); err != nil {
			log.Fatal(err)
		}
		fmt.Printf("wrote %s\n", *out)
	}
}

func report(drv *engine.Driver) {
	f := drv.Field()
	amp := diag.AmplitudeStats(f)
	k := diag.DominantWavenumber(f)
	pos, neg := diag.Defects(f)
	coeff := drv.Controller().Coefficients()
	fmt.Printf("frame %5d  b=%.2f c=%.2f  |A| mean=%.4f std=%.4f min=%.4f max=%.4f  k=(%d,%d) %.4f cyc/cell (%.0f%%)  defects +%d/-%d\n",
		drv.Frame(), coeff.B, coeff.C, amp.Mean, amp.Std, amp.Min, amp.Max, k.KX, k.KY, k.Cycles, 100*k.Fraction, pos, neg)
}

func writePNG(path string, s *app.Session) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, s.Frame.Image()); err != nil {
		f.Close()
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	return f.Close()
}
