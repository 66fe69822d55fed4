package morphology

import (
	"fmt"
	"strings"
)

var methodNames = map[string]Method{
	"convolve":        MConvolve,
	"correlate":       MCorrelate,
	"erode":           MErode,
	"dilate":          MDilate,
	"erodeintensity":  MErodeIntensity,
	"dilateintensity": MDilateIntensity,
	"open":            MOpen,
	"close":           MClose,
	"openintensity":   MOpenIntensity,
	"closeintensity":  MCloseIntensity,
	"tophat":          MTopHat,
	"bottomhat":       MBottomHat,
	"edgein":          MEdgeIn,
	"edgeout":         MEdgeOut,
	"edge":            MEdge,
	"smooth":          MSmooth,
	"hitandmiss":      MHitAndMiss,
	"thin":            MThin,
	"thicken":         MThicken,
	"distance":        MDistance,
}

// ParseMethodName resolves a case-insensitive method name (as accepted by
// the CLI --method flag and the HTTP apply endpoint) to a Method.
func ParseMethodName(s string) (Method, error) {
	m, ok := methodNames[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return 0, fmt.Errorf("morphology: unknown method name %q", s)
	}
	return m, nil
}

// ParseComposeName resolves a case-insensitive compose name to a
// ComposeKind. An empty string returns ComposeNone with ok=false so callers
// can tell "unset" from an explicit "none".
func ParseComposeName(s string) (ComposeKind, bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return ComposeNone, false, nil
	case "none":
		return ComposeNone, true, nil
	case "union":
		return ComposeUnion, true, nil
	case "intersect":
		return ComposeIntersect, true, nil
	default:
		return 0, false, fmt.Errorf("morphology: unknown compose kind %q", s)
	}
}
