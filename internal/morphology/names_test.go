package morphology

import "testing"

func TestParseMethodName_KnownNames(t *testing.T) {
	cases := map[string]Method{
		"convolve":   MConvolve,
		"Erode":      MErode,
		" DILATE ":   MDilate,
		"hitandmiss": MHitAndMiss,
		"distance":   MDistance,
	}
	for in, want := range cases {
		got, err := ParseMethodName(in)
		if err != nil {
			t.Fatalf("ParseMethodName(%q): %v", in, err)
		}
		if got != want {
			t.Errorf("ParseMethodName(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestParseMethodName_UnknownFails(t *testing.T) {
	if _, err := ParseMethodName("not-a-method"); err == nil {
		t.Fatal("want error for an unknown method name")
	}
}

func TestParseComposeName_EmptyMeansUnset(t *testing.T) {
	kind, ok, err := ParseComposeName("")
	if err != nil {
		t.Fatalf("ParseComposeName(\"\"): %v", err)
	}
	if ok {
		t.Error("empty compose name must report ok=false")
	}
	if kind != ComposeNone {
		t.Errorf("kind = %v, want ComposeNone", kind)
	}
}

func TestParseComposeName_ExplicitNone(t *testing.T) {
	kind, ok, err := ParseComposeName("none")
	if err != nil {
		t.Fatalf("ParseComposeName(\"none\"): %v", err)
	}
	if !ok {
		t.Error("explicit \"none\" must report ok=true")
	}
	if kind != ComposeNone {
		t.Errorf("kind = %v, want ComposeNone", kind)
	}
}

func TestParseComposeName_UnionAndIntersect(t *testing.T) {
	if kind, ok, err := ParseComposeName("union"); err != nil || !ok || kind != ComposeUnion {
		t.Errorf("ParseComposeName(\"union\") = (%v,%v,%v)", kind, ok, err)
	}
	if kind, ok, err := ParseComposeName("intersect"); err != nil || !ok || kind != ComposeIntersect {
		t.Errorf("ParseComposeName(\"intersect\") = (%v,%v,%v)", kind, ok, err)
	}
}

func TestParseComposeName_UnknownFails(t *testing.T) {
	if _, _, err := ParseComposeName("xor"); err == nil {
		t.Fatal("want error for an unknown compose kind")
	}
}
