// Package main provides tcal-bench, a benchmark tool that opens a
// synthetic trajectory and reports frame cache hit/miss timing.
package main

import (
	"fmt"
	"os"
	"time"

	flag "github.com/spf13/pflag"

	"github.com/openmd-labs/tcal/internal/fakeformat"
	"github.com/openmd-labs/tcal/pkg/framecache"
	"github.com/openmd-labs/tcal/pkg/trajectory"
	"github.com/openmd-labs/tcal/pkg/trajio"
)

// config holds all benchmark configuration.
type config struct {
	atomCount      int
	numFrames      int
	cacheSizeMB    int64
	warmupFrames   int
	coldRuns       int
	warmRuns       int
	randomAccess   bool
}

func main() {
	cfg := config{}

	flag.IntVar(&cfg.atomCount, "atoms", 10_000, "Atoms in the synthetic trajectory")
	flag.IntVar(&cfg.numFrames, "frames", 2_000, "Frames in the synthetic trajectory")
	flag.Int64Var(&cfg.cacheSizeMB, "cache-mb", framecache.DefaultCacheSizeBytes>>20, "Frame cache budget in MiB")
	flag.IntVar(&cfg.warmupFrames, "warmup", 50, "Distinct frames decoded once before timing starts")
	flag.IntVar(&cfg.coldRuns, "cold-runs", 200, "Number of first-touch (miss) decodes to time")
	flag.IntVar(&cfg.warmRuns, "warm-runs", 2000, "Number of repeat (hit) decodes to time")
	flag.BoolVar(&cfg.randomAccess, "random", false, "Access warm frames in pseudo-random order instead of round-robin")

	flag.Usage = func() {
		fmt.Fprint(os.Stderr, "Usage: tcal-bench [flags]\n\n")
		fmt.Fprint(os.Stderr, "Times frame cache misses against hits on a synthetic trajectory.\n\n")
		flag.PrintDefaults()
	}

	flag.Parse()

	if err := run(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "tcal-bench: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg config) error {
	if cfg.warmupFrames > cfg.numFrames {
		return fmt.Errorf("warmup frames (%d) exceeds total frames (%d)", cfg.warmupFrames, cfg.numFrames)
	}

	mol := fakeformat.Molecule(cfg.atomCount, cfg.atomCount, nil)
	backend := fakeformat.NewTrajectory(cfg.atomCount, cfg.numFrames, trajio.UnitCell{})

	ctx := trajectory.NewContext(nil)

	h, err := ctx.OpenFile("synthetic.bench", func(string) (trajio.TrajectoryBackend, error) {
		return backend, nil
	}, mol, nil, cfg.cacheSizeMB<<20)
	if err != nil {
		return fmt.Errorf("open synthetic trajectory: %w", err)
	}
	defer func() { _ = ctx.Close(h) }()

	fmt.Printf("atoms=%d frames=%d cache_mb=%d\n", cfg.atomCount, cfg.numFrames, cfg.cacheSizeMB)

	var out trajio.FrameData

	for i := 0; i < cfg.warmupFrames; i++ {
		if err := ctx.LoadFrame(h, i, &out); err != nil {
			return fmt.Errorf("warmup frame %d: %w", i, err)
		}
	}

	coldStart := time.Now()

	for i := 0; i < cfg.coldRuns; i++ {
		idx := cfg.warmupFrames + (i % (cfg.numFrames - cfg.warmupFrames))
		if err := ctx.LoadFrame(h, idx, &out); err != nil {
			return fmt.Errorf("cold frame %d: %w", idx, err)
		}
	}

	coldElapsed := time.Since(coldStart)

	warmStart := time.Now()

	for i := 0; i < cfg.warmRuns; i++ {
		idx := frameIndexForRun(cfg, i)
		if err := ctx.LoadFrame(h, idx, &out); err != nil {
			return fmt.Errorf("warm frame %d: %w", idx, err)
		}
	}

	warmElapsed := time.Since(warmStart)

	report("cold (miss)", cfg.coldRuns, coldElapsed)
	report("warm (hit)", cfg.warmRuns, warmElapsed)

	n, _ := ctx.NumCacheFrames(h)
	fmt.Printf("cache_frames_resident=%d\n", n)

	return nil
}

// frameIndexForRun picks a warm-set frame index for run i; round-robin by
// default, or a fixed pseudo-random permutation when -random is set.
func frameIndexForRun(cfg config, i int) int {
	if !cfg.randomAccess {
		return i % cfg.warmupFrames
	}

	// A multiplicative step over the warm set; the prime multiplier is
	// coprime to any smaller warm-set size, so it visits every warm frame.
	// Deterministic across runs so results are comparable, but not
	// sequential.
	const multiplier = 2654435761

	return (i * multiplier) % cfg.warmupFrames
}

func report(label string, runs int, elapsed time.Duration) {
	if runs == 0 {
		return
	}

	perOp := elapsed / time.Duration(runs)
	fmt.Printf("%-12s runs=%-6d total=%-12s per_op=%s\n", label, runs, elapsed, perOp)
}
