// Package doctor provides environment preflight checks for the morphology
// engine CLI and server.
package doctor

import (
	"fmt"
	"io"
	"os"

	"github.com/example/go-morphology/internal/kernel"
)

// PassMark and FailMark are the prefix symbols printed for each check result.
const (
	PassMark = "✓"
	FailMark = "✗"
)

// Config holds injectable dependencies for each doctor check.
type Config struct {
	// Workers is the configured row-parallel worker count; must be positive.
	Workers int
	// KernelLibraryPath is an optional kernel library file. The check only
	// confirms that the file exists; its contents are not parsed. Empty
	// skips the check.
	KernelLibraryPath string
	// SampleKernel is parsed as a smoke test of the kernel grammar; empty
	// means "gaussian".
	SampleKernel string
}

// Result collects the outcome of all checks.
type Result struct {
	failures []string
}

// Failed returns true if any check failed.
func (r *Result) Failed() bool { return len(r.failures) > 0 }

// Failures returns the list of failure messages.
func (r *Result) Failures() []string { return append([]string(nil), r.failures...) }

// AddFailure appends an external failure message to the result.
func (r *Result) AddFailure(msg string) { r.failures = append(r.failures, msg) }

func (r *Result) fail(msg string) { r.failures = append(r.failures, msg) }

// Run executes all configured checks and writes human-readable output to w.
// Each check line is prefixed with PassMark or FailMark.
func Run(cfg Config, w io.Writer) Result {
	var res Result

	// ---- worker count -------------------------------------------------
	if cfg.Workers <= 0 {
		res.fail(fmt.Sprintf("workers: must be positive, got %d", cfg.Workers))
		fmt.Fprintf(w, "%s workers: invalid value %d\n", FailMark, cfg.Workers)
	} else {
		fmt.Fprintf(w, "%s workers: %d\n", PassMark, cfg.Workers)
	}

	// ---- kernel grammar smoke test --------------------------------------
	sample := cfg.SampleKernel
	if sample == "" {
		sample = "gaussian"
	}
	if _, err := kernel.Parse(sample); err != nil {
		res.fail(fmt.Sprintf("kernel grammar: %v", err))
		fmt.Fprintf(w, "%s kernel grammar: %v\n", FailMark, err)
	} else {
		fmt.Fprintf(w, "%s kernel grammar: %s generator ok\n", PassMark, sample)
	}

	// ---- kernel library file --------------------------------------------
	if cfg.KernelLibraryPath != "" {
		if _, err := os.Stat(cfg.KernelLibraryPath); err != nil {
			res.fail(fmt.Sprintf("kernel library %q: %v", cfg.KernelLibraryPath, err))
			fmt.Fprintf(w, "%s kernel library: not found at %s\n", FailMark, cfg.KernelLibraryPath)
		} else {
			fmt.Fprintf(w, "%s kernel library: %s\n", PassMark, cfg.KernelLibraryPath)
		}
	} else {
		fmt.Fprintf(w, "%s kernel library: skipped (none configured)\n", PassMark)
	}

	return res
}
