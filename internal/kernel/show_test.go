package kernel

import (
	"strings"
	"testing"
)

func TestDump_ContainsHeaderAndValues(t *testing.T) {
	k := New(3, 1)
	k.Values = []float64{1, 2, 3}
	k.RecomputeStatistics()

	out := Dump(k, 2)
	if !strings.Contains(out, "3x1") {
		t.Errorf("Dump missing size: %q", out)
	}
	if !strings.Contains(out, "1.00") || !strings.Contains(out, "3.00") {
		t.Errorf("Dump missing formatted values: %q", out)
	}
}

func TestDump_MaskedCellSpelledNan(t *testing.T) {
	k := New(3, 1)
	k.Values = []float64{1, MaskedCell, 3}
	k.RecomputeStatistics()

	out := Dump(k, 0)
	if !strings.Contains(out, "nan") {
		t.Errorf("Dump of a masked cell missing \"nan\": %q", out)
	}
}

func TestDump_ZeroSummingClassification(t *testing.T) {
	k := New(2, 1)
	k.Values = []float64{1, -1}
	k.RecomputeStatistics()

	out := Dump(k, 2)
	if !strings.Contains(out, "zero-summing") {
		t.Errorf("Dump of a zero-sum kernel missing classification: %q", out)
	}
}

func TestDump_NormalisedClassification(t *testing.T) {
	k := New(2, 1)
	k.Values = []float64{0.5, 0.5}
	k.RecomputeStatistics()

	out := Dump(k, 2)
	if !strings.Contains(out, "normalised") {
		t.Errorf("Dump of a normalised kernel missing classification: %q", out)
	}
}

func TestDump_AngleIncludedWhenNonZero(t *testing.T) {
	k := New(3, 3)
	k.Angle = 90
	k.RecomputeStatistics()

	out := Dump(k, 0)
	if !strings.Contains(out, "@90") {
		t.Errorf("Dump missing angle suffix: %q", out)
	}
}

func TestDumpList_RendersEachMember(t *testing.T) {
	a := New(1, 1)
	a.Values[0] = 1
	a.RecomputeStatistics()
	b := New(1, 1)
	b.Values[0] = 2
	b.RecomputeStatistics()
	a.Next = b

	out := DumpList(a, 0)
	if strings.Count(out, "Kernel") < 2 {
		t.Errorf("DumpList did not render both members: %q", out)
	}
}
