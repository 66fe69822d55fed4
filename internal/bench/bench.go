// Package bench provides benchmarking primitives for the morphology bench
// command: timing a repeated method application and reporting throughput.
package bench

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"
)

// ---------------------------------------------------------------------------
// Run result and stats
// ---------------------------------------------------------------------------

// RunResult holds the timing and throughput metadata for a single apply run.
type RunResult struct {
	Index         int
	Cold          bool // true for the first run (cold-start, workers not yet warmed)
	Duration      time.Duration
	ChangedPixels int
	Throughput    float64 // pixels per second, PixelCount/Duration
}

// Stats holds aggregate timing statistics across all runs.
type Stats struct {
	Min  time.Duration
	Max  time.Duration
	Mean time.Duration
}

// ComputeStats calculates min, max and mean over a slice of durations.
// The slice must be non-empty.
func ComputeStats(durations []time.Duration) Stats {
	if len(durations) == 0 {
		return Stats{}
	}
	mn, mx := durations[0], durations[0]
	var sum time.Duration
	for _, d := range durations {
		if d < mn {
			mn = d
		}
		if d > mx {
			mx = d
		}
		sum += d
	}
	return Stats{
		Min:  mn,
		Max:  mx,
		Mean: sum / time.Duration(len(durations)),
	}
}

// ---------------------------------------------------------------------------
// Throughput helpers
// ---------------------------------------------------------------------------

// CalcThroughput returns pixelCount / dur, in pixels per second.
// Returns 0 if dur is zero to avoid division by zero.
func CalcThroughput(pixelCount int, dur time.Duration) float64 {
	if dur <= 0 {
		return 0
	}
	return float64(pixelCount) / dur.Seconds()
}

// CheckDurationThreshold returns an error if meanDur exceeds threshold.
// A threshold of 0 disables the gate.
func CheckDurationThreshold(meanDur, threshold time.Duration) error {
	if threshold <= 0 {
		return nil
	}
	if meanDur > threshold {
		return fmt.Errorf("mean duration %s exceeds threshold %s", meanDur, threshold)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Output formatters
// ---------------------------------------------------------------------------

// FormatTable writes a human-readable ASCII table of bench results to w.
func FormatTable(runs []RunResult, stats Stats, w io.Writer) {
	sb := &strings.Builder{}

	fmt.Fprintf(sb, "%-5s  %-5s  %10s  %12s  %14s\n", "Run", "Cold", "MS", "Pixels", "Mpix/s")
	fmt.Fprintln(sb, strings.Repeat("-", 52))

	for _, r := range runs {
		cold := ""
		if r.Cold {
			cold = "yes"
		}
		fmt.Fprintf(sb, "%-5d  %-5s  %10.1f  %12d  %14.2f\n",
			r.Index+1,
			cold,
			float64(r.Duration.Milliseconds()),
			r.ChangedPixels,
			r.Throughput/1e6,
		)
	}

	fmt.Fprintln(sb, strings.Repeat("-", 52))
	fmt.Fprintf(sb, "%-5s  %-5s  %10.1f  %12s  %14s  (min)\n", "", "", float64(stats.Min.Milliseconds()), "", "")
	fmt.Fprintf(sb, "%-5s  %-5s  %10.1f  %12s  %14s  (mean)\n", "", "", float64(stats.Mean.Milliseconds()), "", "")
	fmt.Fprintf(sb, "%-5s  %-5s  %10.1f  %12s  %14s  (max)\n", "", "", float64(stats.Max.Milliseconds()), "", "")

	fmt.Fprint(w, sb.String())
}

// jsonReport is the top-level JSON structure emitted by FormatJSON.
type jsonReport struct {
	Runs  []jsonRun `json:"runs"`
	Stats jsonStats `json:"stats"`
}

type jsonRun struct {
	Index         int     `json:"index"`
	Cold          bool    `json:"cold"`
	DurationMS    float64 `json:"duration_ms"`
	ChangedPixels int     `json:"changed_pixels"`
	Throughput    float64 `json:"throughput_pixels_per_sec"`
}

type jsonStats struct {
	MinMS  float64 `json:"min_ms"`
	MeanMS float64 `json:"mean_ms"`
	MaxMS  float64 `json:"max_ms"`
}

// FormatJSON writes a JSON report of bench results to w.
func FormatJSON(runs []RunResult, stats Stats, w io.Writer) {
	jr := jsonReport{
		Runs: make([]jsonRun, len(runs)),
		Stats: jsonStats{
			MinMS:  float64(stats.Min.Milliseconds()),
			MeanMS: float64(stats.Mean.Milliseconds()),
			MaxMS:  float64(stats.Max.Milliseconds()),
		},
	}
	for i, r := range runs {
		jr.Runs[i] = jsonRun{
			Index:         r.Index,
			Cold:          r.Cold,
			DurationMS:    float64(r.Duration.Milliseconds()),
			ChangedPixels: r.ChangedPixels,
			Throughput:    r.Throughput,
		}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(jr)
}
