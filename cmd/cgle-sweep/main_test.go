package main

import (
	"testing"

	"cgle/internal/core"
	"cgle/internal/engine"
)

func TestGridCoversCorners(t *testing.T) {
	sets := grid(-1, 1, -2, 2, 3)
	if len(sets) != 9 {
		t.Fatalf("len = %d, want 9", len(sets))
	}
	if sets[0] != (pair{b: -1, c: -2}) || sets[8] != (pair{b: 1, c: 2}) {
		t.Fatalf("corners = %v, %v", sets[0], sets[8])
	}
	if got := grid(0.5, 3, 0.25, 3, 1); len(got) != 1 || got[0] != (pair{b: 0.5, c: 0.25}) {
		t.Fatalf("single step grid = %v", got)
	}
}

func TestRunScenarioUniformStaysUniform(t *testing.T) {
	base := engine.DefaultConfig()
	base.Size = core.Size{W: 16, H: 16}
	base.Substeps = 5
	base.Initial = engine.InitUniform

	res := runScenario(base, pair{}, 3)
	if res.err != nil {
		t.Fatalf("runScenario: %v", res.err)
	}
	if res.regime != "uniform" {
		t.Fatalf("regime = %q, want uniform (amp %+v)", res.regime, res.amp)
	}
	if res.substeps != 15 {
		t.Fatalf("substeps = %d, want 15", res.substeps)
	}
}

func TestBenjaminFeirFlag(t *testing.T) {
	base := engine.DefaultConfig()
	base.Size = core.Size{W: 8, H: 8}
	base.Substeps = 1
	base.Initial = engine.InitUniform
	if res := runScenario(base, pair{b: 2, c: -1}, 1); !res.unstable {
		t.Fatal("1+bc < 0 should be flagged unstable")
	}
	if res := runScenario(base, pair{b: 1, c: 1}, 1); res.unstable {
		t.Fatal("1+bc > 0 flagged unstable")
	}
}
