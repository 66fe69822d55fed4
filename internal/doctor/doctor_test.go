package doctor_test

import (
	"strings"
	"testing"

	"github.com/example/go-morphology/internal/doctor"
)

func TestRun_AllChecksPass(t *testing.T) {
	cfg := doctor.Config{
		Workers:      4,
		SampleKernel: "gaussian",
	}

	var out strings.Builder
	result := doctor.Run(cfg, &out)

	if result.Failed() {
		t.Errorf("expected all checks to pass; failures: %v", result.Failures())
	}
	if !strings.Contains(out.String(), "workers: 4") {
		t.Error("output should mention the worker count")
	}
}

func TestRun_NonPositiveWorkersFails(t *testing.T) {
	cfg := doctor.Config{Workers: 0}

	var out strings.Builder
	result := doctor.Run(cfg, &out)

	if !result.Failed() {
		t.Fatal("expected zero workers to fail")
	}
	if !strings.Contains(out.String(), doctor.FailMark) {
		t.Error("output should contain a fail mark")
	}
}

func TestRun_BadKernelGrammarFails(t *testing.T) {
	cfg := doctor.Config{Workers: 1, SampleKernel: "not-a-real-kernel-name"}

	result := doctor.Run(cfg, &strings.Builder{})

	if !result.Failed() {
		t.Fatal("expected an unknown kernel name to fail the grammar check")
	}
}

func TestRun_MissingKernelLibraryFails(t *testing.T) {
	cfg := doctor.Config{Workers: 1, KernelLibraryPath: "/nonexistent/kernels.lib"}

	result := doctor.Run(cfg, &strings.Builder{})

	if !result.Failed() {
		t.Fatal("expected a missing kernel library path to fail")
	}
}

func TestRun_NoKernelLibrarySkipped(t *testing.T) {
	cfg := doctor.Config{Workers: 1}

	var out strings.Builder
	result := doctor.Run(cfg, &out)

	if result.Failed() {
		t.Errorf("expected skip rather than failure; failures: %v", result.Failures())
	}
	if !strings.Contains(out.String(), "skipped") {
		t.Error("output should mention the kernel library check was skipped")
	}
}
