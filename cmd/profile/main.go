// Package main provides a profiling wrapper that runs a CHIP-8 program
// headless, flat out, to find hot spots in the step loop.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"runtime/pprof"
	"time"

	"github.com/sarchlab/chip8sim/cache"
	"github.com/sarchlab/chip8sim/emu"
	"github.com/sarchlab/chip8sim/loader"
)

var (
	cpuProfile  = flag.String("cpuprofile", "", "write cpu profile to file")
	memProfile  = flag.String("memprofile", "", "write memory profile to file")
	duration    = flag.Duration("duration", 30*time.Second, "max duration to run (for profiling)")
	instruction = flag.Uint64("max-instr", 10000000, "max instructions to execute")
	fetchCache  = flag.Bool("fetch-cache", false, "Fetch instructions through a set-associative cache")
)

type profileOptions struct {
	programPath string
	cpuProfile  string
	memProfile  string
	duration    time.Duration
	maxInstr    uint64
	fetchCache  bool
}

func main() {
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "Usage: profile [options] <program.ch8>\n")
		fmt.Fprintf(os.Stderr, "\nOptions:\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

	opts := profileOptions{
		programPath: flag.Arg(0),
		cpuProfile:  *cpuProfile,
		memProfile:  *memProfile,
		duration:    *duration,
		maxInstr:    *instruction,
		fetchCache:  *fetchCache,
	}
	if err := run(opts); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(opts profileOptions) error {
	if opts.maxInstr == 0 {
		return errors.New("-max-instr must be > 0")
	}

	if opts.cpuProfile != "" {
		f, err := os.Create(opts.cpuProfile)
		if err != nil {
			return fmt.Errorf("creating CPU profile: %w", err)
		}
		defer func() { _ = f.Close() }()

		if err := pprof.StartCPUProfile(f); err != nil {
			return fmt.Errorf("starting CPU profile: %w", err)
		}
		defer pprof.StopCPUProfile()
	}

	prog, err := loader.Load(opts.programPath)
	if err != nil {
		return fmt.Errorf("loading program: %w", err)
	}

	fmt.Printf("Loaded: %s (%d bytes)\n", opts.programPath, prog.Size())

	emulator := emu.NewEmulator(emu.WithMaxInstructions(opts.maxInstr))
	if err := prog.LoadInto(emulator); err != nil {
		return fmt.Errorf("loading program: %w", err)
	}

	var fetcher *cache.InstructionFetcher
	if opts.fetchCache {
		fetcher, err = cache.NewInstructionFetcher(cache.DefaultConfig(), emulator.Memory())
		if err != nil {
			return fmt.Errorf("creating fetch cache: %w", err)
		}
		emulator.SetFetcher(fetcher)
	}

	ctx, cancel := context.WithTimeout(context.Background(), opts.duration)
	defer cancel()

	start := time.Now()
	runErr := emulator.Run(ctx)
	elapsed := time.Since(start)

	if opts.memProfile != "" {
		if err := writeHeapProfile(opts.memProfile); err != nil {
			return err
		}
	}

	instrCount := emulator.InstructionCount()

	fmt.Printf("\nProfiling Results:\n")
	switch {
	case errors.Is(runErr, emu.ErrMaxInstructions):
		fmt.Printf("Stopped: instruction limit\n")
	case errors.Is(runErr, context.DeadlineExceeded):
		fmt.Printf("Stopped: timeout after %v\n", opts.duration)
	default:
		fmt.Printf("Stopped: %v\n", runErr)
	}
	fmt.Printf("Instructions executed: %d\n", instrCount)
	fmt.Printf("Elapsed time: %v\n", elapsed)
	if instrCount > 0 {
		fmt.Printf("Instructions/second: %.0f\n", float64(instrCount)/elapsed.Seconds())
	}
	if fetcher != nil {
		stats := fetcher.Cache().Stats()
		fmt.Printf("Fetch cache: %d hits, %d misses, %.1f%% hit rate\n",
			stats.Hits, stats.Misses, 100*stats.HitRate())
	}

	return nil
}

func writeHeapProfile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating memory profile: %w", err)
	}
	defer func() { _ = f.Close() }()

	if err := pprof.WriteHeapProfile(f); err != nil {
		return fmt.Errorf("writing memory profile: %w", err)
	}
	return nil
}
