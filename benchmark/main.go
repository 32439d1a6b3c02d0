// Package main provides a performance benchmarking tool for the loadout CLI.
// It runs a fixed set of search scenarios several times each, treating the
// first successful run as cold and averaging the rest as warm, and writes a
// CSV for performance tracking.
//
// Prerequisites:
// - loadout binary installed and available in PATH
//
// Usage: go run benchmark/main.go [runs]
package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"time"

	"github.com/tidwall/gjson"
)

// BenchmarkScenario is one search to time.
type BenchmarkScenario struct {
	Name string
	Args []string
}

// BenchmarkResult holds the timings of one scenario.
type BenchmarkResult struct {
	Scenario  string
	ColdTime  string
	WarmTime  string
	Evaluated int64
	Truncated bool
}

// BenchmarkConfig holds configuration for the benchmark run.
type BenchmarkConfig struct {
	Timeout   time.Duration
	Runs      int
	Scenarios []BenchmarkScenario
}

func main() {
	runs := 4
	if len(os.Args) == 2 {
		n, err := strconv.Atoi(os.Args[1])
		if err != nil || n < 1 {
			fmt.Printf("Usage: %s [runs]\n", os.Args[0])
			os.Exit(1)
		}
		runs = n
	}

	config := BenchmarkConfig{
		Timeout: 2 * time.Minute,
		Runs:    runs,
		Scenarios: []BenchmarkScenario{
			{Name: "zero-targets", Args: []string{"--tier", "1"}},
			{Name: "two-targets", Args: []string{"--weapon", "100", "--health", "60"}},
			{Name: "slotted", Args: []string{"--melee", "120", "--super", "90", "--small-slots", "2", "--large-slots", "3"}},
			{Name: "fixed", Args: []string{"--grenade", "110", "--fix", "bulwark:weapon:exotic", "--fix", "any:30/30/30"}},
			{Name: "unreachable", Args: []string{"--weapon", "200", "--health", "200", "--class", "200", "--large-slots", "5"}},
			{Name: "factorized", Args: []string{"--class", "90", "--grenade", "90", "--factorize"}},
		},
	}

	if _, err := exec.LookPath("loadout"); err != nil {
		fmt.Println("Prerequisites check failed: loadout binary not found in PATH")
		os.Exit(1)
	}

	results := runBenchmarks(config)

	if err := saveResults(results); err != nil {
		fmt.Printf("Failed to save results: %v\n", err)
		os.Exit(1)
	}

	printSummary(results)
}

// runBenchmarks executes every scenario.
func runBenchmarks(config BenchmarkConfig) []BenchmarkResult {
	fmt.Printf("Starting benchmark: %d scenarios, %v timeout, %d runs each\n",
		len(config.Scenarios), config.Timeout, config.Runs)

	results := make([]BenchmarkResult, 0, len(config.Scenarios))
	for _, scenario := range config.Scenarios {
		fmt.Printf("Running %s\n", scenario.Name)
		results = append(results, runScenario(config, scenario))
	}
	return results
}

// runScenario runs one scenario config.Runs times and summarizes the timings.
func runScenario(config BenchmarkConfig, scenario BenchmarkScenario) BenchmarkResult {
	result := BenchmarkResult{Scenario: scenario.Name, ColdTime: "TIMEOUT", WarmTime: "TIMEOUT"}

	args := append([]string{"search", "--output", "json", "--pinned-backend", "none", "--time-budget", "0"}, scenario.Args...)

	var times []float64
	for range config.Runs {
		ctx, cancel := context.WithTimeout(context.Background(), config.Timeout)
		start := time.Now()
		output, err := exec.CommandContext(ctx, "loadout", args...).Output()
		elapsed := time.Since(start).Seconds()
		cancel()

		if err != nil || !gjson.ValidBytes(output) {
			continue
		}
		times = append(times, elapsed)
		result.Evaluated = gjson.GetBytes(output, "evaluated").Int()
		result.Truncated = gjson.GetBytes(output, "truncated").Bool()
	}

	if len(times) > 0 {
		result.ColdTime = fmt.Sprintf("%.3fs", times[0])
	}
	if len(times) > 1 {
		var sum float64
		for _, t := range times[1:] {
			sum += t
		}
		result.WarmTime = fmt.Sprintf("%.3fs", sum/float64(len(times)-1))
	}

	fmt.Printf("  Cold time: %s, Warm average: %s, Evaluated: %d\n", result.ColdTime, result.WarmTime, result.Evaluated)
	return result
}

// saveResults writes benchmark results to a timestamped CSV file
func saveResults(results []BenchmarkResult) error {
	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("/tmp/loadout_benchmark_%s.csv", timestamp)

	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			fmt.Printf("Warning: failed to close file %s: %v\n", filename, closeErr)
		}
	}()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write([]string{"scenario", "cold_time", "warm_avg", "evaluated", "truncated"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, r := range results {
		record := []string{r.Scenario, r.ColdTime, r.WarmTime, strconv.FormatInt(r.Evaluated, 10), strconv.FormatBool(r.Truncated)}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	fmt.Printf("Results saved to %s\n", filename)
	return nil
}

// printSummary displays the final benchmark results summary
func printSummary(results []BenchmarkResult) {
	fmt.Printf("Benchmark complete\n")
	for _, r := range results {
		fmt.Printf("  %-14s: Cold: %s, Warm: %s, Evaluated: %d\n", r.Scenario, r.ColdTime, r.WarmTime, r.Evaluated)
	}
}
