// Command benchmark runs the chip8sim throughput harness.
//
// Usage:
//
//	go run ./cmd/benchmark [flags]
//
// Flags:
//
//	-csv            Output results in CSV format (default: human-readable)
//	-json           Output results as a JSON report
//	-no-fetch-cache Fetch straight from memory
//
// Example:
//
//	# Compare cached and uncached runs
//	go run ./cmd/benchmark
//	go run ./cmd/benchmark -no-fetch-cache
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/sarchlab/chip8sim/benchmarks"
)

func main() {
	csvOutput := flag.Bool("csv", false, "Output results in CSV format")
	jsonOutput := flag.Bool("json", false, "Output results as JSON")
	noFetchCache := flag.Bool("no-fetch-cache", false, "Disable the instruction fetch cache")
	flag.Parse()

	config := benchmarks.DefaultConfig()
	config.EnableFetchCache = !*noFetchCache
	config.Output = os.Stdout

	harness := benchmarks.NewHarness(config)
	harness.AddBenchmarks(benchmarks.GetMicrobenchmarks())

	if !*csvOutput && !*jsonOutput {
		fmt.Println("chip8sim Benchmark Harness")
		fmt.Println("==========================")
		fmt.Printf("Fetch cache: %v\n", config.EnableFetchCache)
		if config.EnableFetchCache {
			fmt.Printf("  %d bytes, %d-way, %d-byte lines\n",
				config.Cache.Size, config.Cache.Associativity, config.Cache.BlockSize)
		}
		fmt.Println("")
	}

	results := harness.RunAll()

	switch {
	case *jsonOutput:
		if err := harness.PrintJSON(results); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing JSON: %v\n", err)
			os.Exit(1)
		}
	case *csvOutput:
		harness.PrintCSV(results)
	default:
		harness.PrintResults(results)
	}

	for _, r := range results {
		if r.Error != "" {
			os.Exit(1)
		}
	}
}
