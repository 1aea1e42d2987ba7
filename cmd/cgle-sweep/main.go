// Command cgle-sweep scans a grid of (b, c) coefficients headlessly and
// classifies the regime each pair settles into.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"runtime"
	"sort"
	"sync"
	"time"

	"cgle/internal/core"
	"cgle/internal/diag"
	"cgle/internal/engine"
	"cgle/internal/kernels/cpu"
)

type pair struct{ b, c float64 }

func (p pair) String() string { return fmt.Sprintf("b=%+.2f c=%+.2f", p.b, p.c) }

type scenarioResult struct {
	params   pair
	amp      diag.Amplitude
	wave     diag.Wavenumber
	positive int
	negative int
	substeps uint64
	err      error
	elapsed  time.Duration
	unstable bool
	regime   string
}

func main() {
	frames := flag.Int("frames", 40, "frames to simulate per scenario")
	substeps := flag.Int("substeps", 50, "substeps per frame")
	size := flag.Int("size", 96, "grid edge in cells")
	seed := flag.Int64("seed", 1337, "seed for the random initial condition")
	workers := flag.Int("workers", runtime.NumCPU(), "number of worker goroutines")
	bMin := flag.Float64("bmin", -2, "smallest b")
	bMax := flag.Float64("bmax", 2, "largest b")
	cMin := flag.Float64("cmin", -2, "smallest c")
	cMax := flag.Float64("cmax", 2, "largest c")
	steps := flag.Int("steps", 5, "values per axis")
	flag.Parse()

	base := engine.DefaultConfig()
	base.Size = core.Size{W: *size, H: *size}
	base.Substeps = *substeps
	base.Seed = *seed

	sets := grid(*bMin, *bMax, *cMin, *cMax, *steps)
	fmt.Printf("Sweeping %d coefficient pairs (%d workers, %d frames x %d substeps)\n", len(sets), *workers, *frames, *substeps)

	jobs := make(chan pair)
	results := make(chan scenarioResult)
	var wg sync.WaitGroup

	for i := 0; i < *workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for params := range jobs {
				results <- runScenario(base, params, *frames)
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	go func() {
		for _, params := range sets {
			jobs <- params
		}
		close(jobs)
	}()

	start := time.Now()
	var all []scenarioResult
	for res := range results {
		if res.err != nil {
			log.Fatalf("%s: %v", res.params, res.err)
		}
		all = append(all, res)
	}

	sort.Slice(all, func(i, j int) bool {
		if all[i].params.b != all[j].params.b {
			return all[i].params.b < all[j].params.b
		}
		return all[i].params.c < all[j].params.c
	})

	fmt.Printf("\nResults (elapsed %s):\n", time.Since(start).Round(time.Millisecond))
	for _, res := range all {
		bf := ""
		if res.unstable {
			bf = " BF-unstable"
		}
		fmt.Printf("%s  %-10s |A| mean=%.3f std=%.3f  defects +%d/-%d  k=%.4f  (%d substeps, %s)%s\n",
			res.params, res.regime, res.amp.Mean, res.amp.Std, res.positive, res.negative, res.wave.Cycles,
			res.substeps, res.elapsed.Round(time.Millisecond), bf)
	}
}

func grid(bMin, bMax, cMin, cMax float64, n int) []pair {
	if n < 1 {
		n = 1
	}
	axis := func(lo, hi float64) []float64 {
		if n == 1 {
			return []float64{lo}
		}
		out := make([]float64, n)
		for i := range out {
			out[i] = lo + (hi-lo)*float64(i)/float64(n-1)
		}
		return out
	}
	var sets []pair
	for _, b := range axis(bMin, bMax) {
		for _, c := range axis(cMin, cMax) {
			sets = append(sets, pair{b: b, c: c})
		}
	}
	return sets
}

func runScenario(base engine.Config, params pair, frames int) scenarioResult {
	res := scenarioResult{params: params, unstable: 1+params.b*params.c < 0}
	start := time.Now()

	cfg := base
	cfg.Coefficients = core.Coefficients{B: float32(params.b), C: float32(params.c)}
	dev := cpu.New(cpu.Options{Integration: core.DefaultIntegration(), Workers: 1})
	drv := engine.New(cfg, dev, nil)
	defer drv.Close()

	if err := drv.Prepare(context.Background(), nil); err != nil {
		res.err = err
		return res
	}
	if err := drv.Start(); err != nil {
		res.err = err
		return res
	}
	for n := 0; n < frames; n++ {
		if err := drv.Tick(); err != nil {
			res.err = err
			return res
		}
	}

	f := drv.Field()
	res.amp = diag.AmplitudeStats(f)
	res.wave = diag.DominantWavenumber(f)
	res.positive, res.negative = diag.Defects(f)
	res.substeps = drv.Stats().Substeps
	res.elapsed = time.Since(start)
	res.regime = classify(res)
	return res
}

func classify(res scenarioResult) string {
	switch {
	case res.positive+res.negative > 0:
		return "turbulent"
	case res.amp.Std < 0.01 && res.wave.Fraction < 0.5:
		return "uniform"
	default:
		return "waves"
	}
}
