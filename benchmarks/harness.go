// Package benchmarks provides a throughput harness that runs small CHIP-8
// programs headless, with and without the fetch cache.
package benchmarks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sarchlab/chip8sim/cache"
	"github.com/sarchlab/chip8sim/emu"
)

// BenchmarkResult holds the results for a single benchmark run.
type BenchmarkResult struct {
	// Name identifies the benchmark
	Name string `json:"name"`

	// Description explains what the benchmark exercises
	Description string `json:"description"`

	// Instructions is the number of instructions executed
	Instructions uint64 `json:"instructions"`

	// MIPS is millions of instructions per wall-clock second
	MIPS float64 `json:"mips"`

	// Fetch cache counters (if the cache is enabled)
	CacheReads         uint64  `json:"cache_reads,omitempty"`
	CacheHits          uint64  `json:"cache_hits,omitempty"`
	CacheMisses        uint64  `json:"cache_misses,omitempty"`
	CacheEvictions     uint64  `json:"cache_evictions,omitempty"`
	CacheInvalidations uint64  `json:"cache_invalidations,omitempty"`
	CacheHitRate       float64 `json:"cache_hit_rate,omitempty"`

	// LitPixels is the number of pixels on at the end of the run
	LitPixels int `json:"lit_pixels"`

	// Error is set if the run failed or its final state was wrong
	Error string `json:"error,omitempty"`

	// WallTime is the actual time taken to run the program
	WallTime time.Duration `json:"wall_time_ns"`
}

// Benchmark defines a single benchmark program.
type Benchmark struct {
	// Name identifies the benchmark
	Name string

	// Description explains what the benchmark exercises
	Description string

	// Program is the image loaded at 0x200
	Program []byte

	// Instructions is how many instructions to run
	Instructions uint64

	// Verify checks the final machine state. Optional.
	Verify func(e *emu.Emulator) error
}

// HarnessConfig configures the benchmark harness.
type HarnessConfig struct {
	// EnableFetchCache routes fetches through a cache.
	EnableFetchCache bool

	// Cache is the fetch cache geometry.
	Cache cache.Config

	// Seed feeds the RND byte source so runs are repeatable.
	Seed uint64

	// Output is where to write results (default: os.Stdout)
	Output io.Writer
}

// DefaultConfig returns a default harness configuration.
func DefaultConfig() HarnessConfig {
	return HarnessConfig{
		EnableFetchCache: true,
		Cache:            cache.DefaultConfig(),
		Seed:             1,
		Output:           os.Stdout,
	}
}

// Harness runs benchmarks and reports results.
type Harness struct {
	config     HarnessConfig
	benchmarks []Benchmark
}

// NewHarness creates a new benchmark harness.
func NewHarness(config HarnessConfig) *Harness {
	if config.Output == nil {
		config.Output = os.Stdout
	}
	return &Harness{
		config:     config,
		benchmarks: []Benchmark{},
	}
}

// AddBenchmark adds a benchmark to the harness.
func (h *Harness) AddBenchmark(b Benchmark) {
	h.benchmarks = append(h.benchmarks, b)
}

// AddBenchmarks adds multiple benchmarks to the harness.
func (h *Harness) AddBenchmarks(benchmarks []Benchmark) {
	h.benchmarks = append(h.benchmarks, benchmarks...)
}

// RunAll executes all benchmarks and returns results.
func (h *Harness) RunAll() []BenchmarkResult {
	results := make([]BenchmarkResult, 0, len(h.benchmarks))

	for _, bench := range h.benchmarks {
		results = append(results, h.runBenchmark(bench))
	}

	return results
}

func (h *Harness) runBenchmark(bench Benchmark) BenchmarkResult {
	result := BenchmarkResult{
		Name:        bench.Name,
		Description: bench.Description,
	}

	e := emu.NewEmulator(
		emu.WithMaxInstructions(bench.Instructions),
		emu.WithRandom(emu.NewSeededSource(h.config.Seed)),
	)
	if err := e.LoadProgram(bench.Program); err != nil {
		result.Error = err.Error()
		return result
	}

	var fetcher *cache.InstructionFetcher
	if h.config.EnableFetchCache {
		var err error
		fetcher, err = cache.NewInstructionFetcher(h.config.Cache, e.Memory())
		if err != nil {
			result.Error = err.Error()
			return result
		}
		e.SetFetcher(fetcher)
	}

	start := time.Now()
	err := e.Run(context.Background())
	result.WallTime = time.Since(start)

	result.Instructions = e.InstructionCount()
	if secs := result.WallTime.Seconds(); secs > 0 {
		result.MIPS = float64(result.Instructions) / secs / 1e6
	}
	result.LitPixels = e.Framebuffer().LitCount()

	if fetcher != nil {
		stats := fetcher.Cache().Stats()
		result.CacheReads = stats.Reads
		result.CacheHits = stats.Hits
		result.CacheMisses = stats.Misses
		result.CacheEvictions = stats.Evictions
		result.CacheInvalidations = stats.Invalidations
		result.CacheHitRate = stats.HitRate()
	}

	switch {
	case !errors.Is(err, emu.ErrMaxInstructions):
		result.Error = err.Error()
	case bench.Verify != nil:
		if verr := bench.Verify(e); verr != nil {
			result.Error = verr.Error()
		}
	}

	return result
}

// PrintResults outputs benchmark results in a human-readable format.
func (h *Harness) PrintResults(results []BenchmarkResult) {
	_, _ = fmt.Fprintln(h.config.Output, "=== chip8sim Benchmark Results ===")
	_, _ = fmt.Fprintln(h.config.Output, "")

	for _, r := range results {
		_, _ = fmt.Fprintf(h.config.Output, "Benchmark: %s\n", r.Name)
		_, _ = fmt.Fprintf(h.config.Output, "  Description: %s\n", r.Description)
		_, _ = fmt.Fprintf(h.config.Output, "  Instructions: %d\n", r.Instructions)
		_, _ = fmt.Fprintf(h.config.Output, "  MIPS:         %.2f\n", r.MIPS)
		_, _ = fmt.Fprintf(h.config.Output, "  Lit Pixels:   %d\n", r.LitPixels)

		if r.CacheReads > 0 {
			_, _ = fmt.Fprintln(h.config.Output, "  --- Fetch Cache ---")
			_, _ = fmt.Fprintf(h.config.Output, "  Hits:          %d\n", r.CacheHits)
			_, _ = fmt.Fprintf(h.config.Output, "  Misses:        %d\n", r.CacheMisses)
			_, _ = fmt.Fprintf(h.config.Output, "  Evictions:     %d\n", r.CacheEvictions)
			_, _ = fmt.Fprintf(h.config.Output, "  Invalidations: %d\n", r.CacheInvalidations)
			_, _ = fmt.Fprintf(h.config.Output, "  Hit Rate:      %.1f%%\n", 100*r.CacheHitRate)
		}

		if r.Error != "" {
			_, _ = fmt.Fprintf(h.config.Output, "  Error: %s\n", r.Error)
		}

		_, _ = fmt.Fprintf(h.config.Output, "  Wall Time: %v\n", r.WallTime)
		_, _ = fmt.Fprintln(h.config.Output, "")
	}
}

// PrintCSV outputs benchmark results in CSV format for easy comparison.
func (h *Harness) PrintCSV(results []BenchmarkResult) {
	_, _ = fmt.Fprintln(h.config.Output,
		"name,instructions,mips,cache_hits,cache_misses,cache_evictions,cache_invalidations,lit_pixels,wall_time_ns,error")

	for _, r := range results {
		_, _ = fmt.Fprintf(h.config.Output, "%s,%d,%.3f,%d,%d,%d,%d,%d,%d,%q\n",
			r.Name,
			r.Instructions,
			r.MIPS,
			r.CacheHits,
			r.CacheMisses,
			r.CacheEvictions,
			r.CacheInvalidations,
			r.LitPixels,
			r.WallTime.Nanoseconds(),
			r.Error,
		)
	}
}

// BenchmarkReport is the complete output format for benchmark results.
type BenchmarkReport struct {
	// Metadata about the benchmark run
	Metadata ReportMetadata `json:"metadata"`

	// Results is the list of individual benchmark results
	Results []BenchmarkResult `json:"results"`

	// Summary contains aggregate statistics
	Summary ReportSummary `json:"summary"`
}

// ReportMetadata contains information about the benchmark run.
type ReportMetadata struct {
	// Timestamp when the benchmark was run
	Timestamp string `json:"timestamp"`

	// FetchCacheEnabled records the harness configuration
	FetchCacheEnabled bool `json:"fetch_cache_enabled"`
}

// ReportSummary contains aggregate statistics across all benchmarks.
type ReportSummary struct {
	// TotalBenchmarks is the number of benchmarks run
	TotalBenchmarks int `json:"total_benchmarks"`

	// Failed is the number of benchmarks with an error
	Failed int `json:"failed"`

	// TotalInstructions is the sum of all instructions executed
	TotalInstructions uint64 `json:"total_instructions"`

	// TotalWallTime is the total wall clock time for all benchmarks
	TotalWallTime time.Duration `json:"total_wall_time_ns"`
}

// PrintJSON outputs benchmark results in JSON format for automated comparison.
func (h *Harness) PrintJSON(results []BenchmarkResult) error {
	summary := ReportSummary{TotalBenchmarks: len(results)}
	for _, r := range results {
		summary.TotalInstructions += r.Instructions
		summary.TotalWallTime += r.WallTime
		if r.Error != "" {
			summary.Failed++
		}
	}

	report := BenchmarkReport{
		Metadata: ReportMetadata{
			Timestamp:         time.Now().UTC().Format(time.RFC3339),
			FetchCacheEnabled: h.config.EnableFetchCache,
		},
		Results: results,
		Summary: summary,
	}

	encoder := json.NewEncoder(h.config.Output)
	encoder.SetIndent("", "  ")
	return encoder.Encode(report)
}
