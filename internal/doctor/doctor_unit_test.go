package doctor

import (
	"strings"
	"testing"
)

func TestResult_AddFailure(t *testing.T) {
	var r Result
	if r.Failed() {
		t.Fatal("zero-value Result should not report failure")
	}
	r.AddFailure("external check failed")
	if !r.Failed() {
		t.Fatal("expected Failed() true after AddFailure")
	}
	if got := r.Failures(); len(got) != 1 || got[0] != "external check failed" {
		t.Errorf("Failures() = %v", got)
	}
}

func TestResult_FailuresReturnsCopy(t *testing.T) {
	var r Result
	r.AddFailure("one")
	got := r.Failures()
	got[0] = "mutated"
	if r.Failures()[0] != "one" {
		t.Error("Failures() must return a defensive copy")
	}
}

func TestRun_OutputMentionsEachCheck(t *testing.T) {
	var out strings.Builder
	Run(Config{Workers: 2, SampleKernel: "disk"}, &out)

	for _, want := range []string{"workers", "kernel grammar", "kernel library"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output missing %q: %s", want, out.String())
		}
	}
}
