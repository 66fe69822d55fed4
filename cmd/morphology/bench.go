package main

import (
	"fmt"
	"os"
	"time"

	"github.com/example/go-morphology/internal/bench"
	"github.com/example/go-morphology/internal/image"
	"github.com/example/go-morphology/internal/kernel"
	"github.com/example/go-morphology/internal/morphology"
	"github.com/spf13/cobra"
)

func newBenchCmd() *cobra.Command {
	var (
		in               string
		methodName       string
		kernelStr        string
		maskStr          string
		bias             float64
		iterations       int
		runs             int
		format           string
		durationThreshMS int64
	)

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Benchmark repeated application of a method against an image",
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := requireConfig()
			if err != nil {
				return err
			}
			if in == "" {
				return fmt.Errorf("--in is required for bench")
			}
			if runs < 1 {
				return fmt.Errorf("--runs must be at least 1")
			}
			if format != "table" && format != "json" {
				return fmt.Errorf("--format must be 'table' or 'json'")
			}

			method, err := morphology.ParseMethodName(methodName)
			if err != nil {
				return err
			}
			kernels, err := kernel.Parse(kernelStr)
			if err != nil {
				return fmt.Errorf("parse kernel: %w", err)
			}
			mask, err := image.ParseMask(maskStr)
			if err != nil {
				return err
			}

			f, err := os.Open(in)
			if err != nil {
				return err
			}
			defer f.Close()
			src, err := image.Decode(f)
			if err != nil {
				return fmt.Errorf("decode %s: %w", in, err)
			}

			morphology.SetWorkers(cfg.Runtime.Workers)

			results := runBench(src, morphology.Options{
				Mask:    mask,
				Method:  method,
				N:       iterations,
				Kernels: kernels,
				Bias:    bias,
			}, runs)

			durations := make([]time.Duration, len(results))
			for i, r := range results {
				durations[i] = r.Duration
			}
			stats := bench.ComputeStats(durations)

			switch format {
			case "json":
				bench.FormatJSON(results, stats, os.Stdout)
			default:
				bench.FormatTable(results, stats, os.Stdout)
			}

			if durationThreshMS > 0 {
				if err := bench.CheckDurationThreshold(stats.Mean, time.Duration(durationThreshMS)*time.Millisecond); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&in, "in", "", "Input image path (required)")
	cmd.Flags().StringVar(&methodName, "method", "convolve", "Method to benchmark")
	cmd.Flags().StringVar(&kernelStr, "kernel", "unity:1", "Kernel expression")
	cmd.Flags().StringVar(&maskStr, "mask", "all", "Channel mask")
	cmd.Flags().Float64Var(&bias, "bias", 0, "Bias added after aggregation")
	cmd.Flags().IntVar(&iterations, "iterations", 1, "Iterations per apply (method's N)")
	cmd.Flags().IntVar(&runs, "runs", 5, "Number of timed runs")
	cmd.Flags().StringVar(&format, "format", "table", "Output format: table|json")
	cmd.Flags().Int64Var(&durationThreshMS, "duration-threshold-ms", 0, "Exit non-zero if mean run duration exceeds this many milliseconds (0 = disabled)")

	return cmd
}

func runBench(src *image.MemImage, opts morphology.Options, runs int) []bench.RunResult {
	pixelCount := src.Width() * src.Height()
	results := make([]bench.RunResult, 0, runs)

	for i := 0; i < runs; i++ {
		start := time.Now()
		_, changed, err := morphology.Run(src, opts)
		dur := time.Since(start)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warn: run %d failed: %v\n", i+1, err)
			continue
		}

		results = append(results, bench.RunResult{
			Index:         i,
			Cold:          i == 0,
			Duration:      dur,
			ChangedPixels: changed,
			Throughput:    bench.CalcThroughput(pixelCount, dur),
		})
	}

	return results
}
